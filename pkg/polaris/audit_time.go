package polaris

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-version"
)

// SupportedOutputVersions is the constraint that PolarisOutputVersion is
// expected to satisfy.
const SupportedOutputVersions = ">= 1.0, < 2.0"

// CheckOutputVersion returns an error if the document was produced with an
// output format this package was not written against.
func CheckOutputVersion(outputVersion string) error {
	v, err := version.NewVersion(outputVersion)
	if err != nil {
		return fmt.Errorf("parsing output version %q: %w", outputVersion, err)
	}
	constraints, err := version.NewConstraint(SupportedOutputVersions)
	if err != nil {
		return err
	}
	if !constraints.Check(v) {
		return fmt.Errorf("unsupported output version %s, want %s", v, SupportedOutputVersions)
	}
	return nil
}

// FormatAuditTime renders the age of an audit relative to now. A timestamp
// that cannot be parsed is returned unchanged.
func FormatAuditTime(now time.Time, auditTime string) string {
	t, err := time.Parse(time.RFC3339, auditTime)
	if err != nil {
		return auditTime
	}
	minutes := int(now.Sub(t) / time.Minute)
	if minutes < 1 {
		return "just now"
	}
	if minutes < 60 {
		return plural(minutes, "minute") + " ago"
	}
	hours := minutes / 60
	if hours < 24 {
		return plural(hours, "hour") + " ago"
	}
	return plural(hours/24, "day") + " ago"
}

func plural(n int, unit string) string {
	if n > 1 {
		return fmt.Sprintf("%d %ss", n, unit)
	}
	return fmt.Sprintf("%d %s", n, unit)
}
