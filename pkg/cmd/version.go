package cmd

import (
	"fmt"
	"io"

	"github.com/aquasecurity/polaris-lens/pkg/lens"
	"github.com/spf13/cobra"
)

func NewVersionCmd(buildInfo lens.BuildInfo, outWriter io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _ = fmt.Fprintf(outWriter, "polaris-lens Version: %+v\n", buildInfo)
			return nil
		},
	}
}
