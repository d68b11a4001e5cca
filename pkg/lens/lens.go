package lens

// BuildInfo holds build info such as Git revision, Git SHA-1, and build
// datetime.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

const (
	// Executable is the name of the CLI binary.
	Executable = "polaris-lens"

	// UserAgent identifies direct requests made to a Polaris dashboard.
	UserAgent = "PolarisLens"
)
