package cmd

import (
	"fmt"
	"io"

	"github.com/aquasecurity/polaris-lens/pkg/report"
	"github.com/spf13/cobra"
)

func NewNamespacesCmd(env *environment, outWriter io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:     "namespaces",
		Aliases: []string{"ns"},
		Short:   "Print the score of every audited namespace",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, err := env.printer()
			if err != nil {
				return err
			}
			data, err := env.auditData(cmd.Context())
			if err != nil {
				return err
			}
			return printer.Print(report.NamespaceRows(*data), outWriter)
		},
	}
}

func NewNamespaceCmd(executable string, env *environment, outWriter io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "namespace NAME",
		Short: "Print the score of a namespace and of each audited resource in it",
		Example: fmt.Sprintf(`  # Print the audit of the default namespace
  %[1]s namespace default

  # Print the audit of the kube-system namespace in YAML output format
  %[1]s namespace kube-system -o yaml`, executable),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, err := env.printer()
			if err != nil {
				return err
			}
			data, err := env.auditData(cmd.Context())
			if err != nil {
				return err
			}
			return printer.Print(report.NamespaceDetail(*data, args[0]), outWriter)
		},
	}
}
