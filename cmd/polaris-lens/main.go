package main

import (
	"fmt"
	"os"

	"github.com/aquasecurity/polaris-lens/pkg/cmd"
	"github.com/aquasecurity/polaris-lens/pkg/lens"
	"k8s.io/klog/v2"

	// Load all known auth plugins
	_ "k8s.io/client-go/plugin/pkg/client/auth"
)

var (
	// These variables are populated by GoReleaser via ldflags
	version = "dev"
	commit  = "none"
	date    = "unknown"

	buildInfo = lens.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}
)

// main is the entrypoint of the polaris-lens executable command.
func main() {
	defer klog.Flush()
	klog.InitFlags(nil)

	if err := cmd.Run(buildInfo, os.Args, os.Stdout, os.Stderr); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
