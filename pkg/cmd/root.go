package cmd

import (
	"flag"
	"io"
	"path/filepath"
	"strings"

	"github.com/aquasecurity/polaris-lens/pkg/etc"
	"github.com/aquasecurity/polaris-lens/pkg/lens"
	"github.com/aquasecurity/polaris-lens/pkg/report"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/cli-runtime/pkg/genericclioptions"
	"k8s.io/utils/clock"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

func NewRootCmd(buildInfo lens.BuildInfo, args []string, outWriter io.Writer, errWriter io.Writer) *cobra.Command {
	env := &environment{
		cf:    genericclioptions.NewConfigFlags(true),
		clock: clock.RealClock{},
	}

	rootCmd := &cobra.Command{
		Use:           lens.Executable,
		Short:         "Polaris audit results for your Kubernetes cluster",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
			env.config, err = etc.GetConfig()
			if err != nil {
				return
			}
			log.SetLogger(zap.New(zap.UseDevMode(env.config.LogDevMode), zap.WriteTo(errWriter)))
			return
		},
	}

	executable := executable(args)

	rootCmd.AddCommand(NewVersionCmd(buildInfo, outWriter))
	rootCmd.AddCommand(NewOverviewCmd(env, outWriter))
	rootCmd.AddCommand(NewNamespacesCmd(env, outWriter))
	rootCmd.AddCommand(NewNamespaceCmd(executable, env, outWriter))
	rootCmd.AddCommand(NewWorkloadCmd(executable, env, outWriter))
	rootCmd.AddCommand(NewConfigCmd(executable, env, outWriter))
	rootCmd.AddCommand(NewTestConnectionCmd(env, outWriter))
	rootCmd.AddCommand(NewWatchCmd(env, outWriter))

	env.cf.AddFlags(rootCmd.PersistentFlags())
	rootCmd.PersistentFlags().StringVarP(&env.output, "output", "o", report.FormatTable,
		"Output format. One of "+strings.Join(report.Formats, "|"))
	rootCmd.PersistentFlags().StringVar(&env.dashboardURL, "dashboard-url", "",
		"Polaris dashboard URL, either an API server proxy path or an absolute http(s) URL. Overrides the stored setting")
	rootCmd.PersistentFlags().BoolVar(&env.noPersist, "no-persist", false,
		"Keep settings in memory instead of reading and writing the settings ConfigMap")

	rootCmd.SetArgs(args[1:])
	rootCmd.SetOut(outWriter)
	rootCmd.SetErr(errWriter)

	return rootCmd
}

func executable(args []string) string {
	if strings.HasPrefix(filepath.Base(args[0]), "kubectl-") {
		return "kubectl polaris-lens"
	}
	return lens.Executable
}

// Run is the entry point of the polaris-lens CLI. It runs the specified
// command based on the specified args.
func Run(buildInfo lens.BuildInfo, args []string, outWriter io.Writer, errWriter io.Writer) error {

	initFlags()

	return NewRootCmd(buildInfo, args, outWriter, errWriter).Execute()
}

func initFlags() {
	pflag.CommandLine.AddGoFlagSet(flag.CommandLine)

	// Hide all klog flags except for -v
	flag.CommandLine.VisitAll(func(f *flag.Flag) {
		if f.Name != "v" {
			pflag.Lookup(f.Name).Hidden = true
		}
	})
}
