package cmd

import (
	"io"

	"github.com/aquasecurity/polaris-lens/pkg/report"
	"github.com/spf13/cobra"
)

func NewOverviewCmd(env *environment, outWriter io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Print the cluster score, check distribution and top issues",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, err := env.printer()
			if err != nil {
				return err
			}
			data, err := env.auditData(cmd.Context())
			if err != nil {
				return err
			}
			return printer.Print(report.NewOverview(*data, env.clock.Now()), outWriter)
		},
	}
}
