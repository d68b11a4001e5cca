package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/aquasecurity/polaris-lens/pkg/kube"
	"github.com/aquasecurity/polaris-lens/pkg/report"
	"github.com/spf13/cobra"
)

func NewWorkloadCmd(executable string, env *environment, outWriter io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "workload (NAME | TYPE/NAME)",
		Short: "Print the Polaris audit of a workload",
		Long: `Print the Polaris audit of the specified workload

TYPE is one of Deployment, StatefulSet, DaemonSet, Job or CronJob. Shortcuts and API groups will be resolved, e.g. 'deploy' or 'deployments.apps'.
NAME is the name of a particular Kubernetes workload. Without TYPE it refers to a Deployment.
`,
		Example: fmt.Sprintf(`  # Print the audit of a Deployment with the specified name
  %[1]s workload deploy/nginx

  # Print the audit of a StatefulSet with the specified name in the specified namespace
  %[1]s workload sts/redis -n staging

  # Print the audit of a CronJob with the specified name in JSON output format
  %[1]s workload cj/my-job -o json`, executable),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, err := env.printer()
			if err != nil {
				return err
			}
			ns, err := env.namespace()
			if err != nil {
				return err
			}
			workload, err := kube.WorkloadFromArgs(ns, args)
			if err != nil {
				return err
			}
			data, err := env.auditData(cmd.Context())
			if err != nil {
				return err
			}
			audit, err := report.WorkloadAudit(*data, string(workload.Kind), workload.Namespace, workload.Name)
			switch {
			case errors.Is(err, report.ErrNotAudited):
				return fmt.Errorf("%s in namespace %s: %w", workload, workload.Namespace, err)
			case err != nil:
				return fmt.Errorf("%s: %w", workload, err)
			}
			return printer.Print(audit, outWriter)
		},
	}
}
