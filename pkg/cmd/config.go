package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/aquasecurity/polaris-lens/pkg/settings"
	"github.com/spf13/cobra"
)

type settingsView struct {
	RefreshInterval int    `json:"refreshInterval"`
	DashboardURL    string `json:"dashboardURL"`
}

func (v settingsView) WriteTable(w io.Writer) error {
	_, _ = fmt.Fprintf(w, "REFRESH INTERVAL:\t%ds\n", v.RefreshInterval)
	_, _ = fmt.Fprintf(w, "DASHBOARD URL:\t%s\n", v.DashboardURL)
	return nil
}

type intervalOptions []settings.IntervalOption

func (o intervalOptions) WriteTable(w io.Writer) error {
	_, _ = fmt.Fprintln(w, "LABEL\tSECONDS")
	for _, option := range o {
		_, _ = fmt.Fprintf(w, "%s\t%d\n", option.Label, option.Seconds)
	}
	return nil
}

func NewConfigCmd(executable string, env *environment, outWriter io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View the refresh interval and Polaris dashboard URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, err := env.printer()
			if err != nil {
				return err
			}
			s, err := env.settings()
			if err != nil {
				return err
			}
			return printer.Print(settingsView{
				RefreshInterval: s.RefreshInterval(cmd.Context()),
				DashboardURL:    s.DashboardURL(cmd.Context()),
			}, outWriter)
		},
	}
	cmd.AddCommand(newConfigSetIntervalCmd(executable, env, outWriter))
	cmd.AddCommand(newConfigSetURLCmd(executable, env, outWriter))
	cmd.AddCommand(newConfigOptionsCmd(env, outWriter))
	return cmd
}

func newConfigSetIntervalCmd(executable string, env *environment, outWriter io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "set-interval SECONDS",
		Short: "Set the auto-refresh interval",
		Example: fmt.Sprintf(`  # Refresh audit data every 10 minutes
  %[1]s config set-interval 600`, executable),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid refresh interval %q: must be a number of seconds", args[0])
			}
			s, err := env.settings()
			if err != nil {
				return err
			}
			if err := s.SetRefreshInterval(cmd.Context(), seconds); err != nil {
				return fmt.Errorf("saving refresh interval: %w", err)
			}
			_, _ = fmt.Fprintf(outWriter, "Refresh interval set to %ds\n", s.RefreshInterval(cmd.Context()))
			return nil
		},
	}
}

func newConfigSetURLCmd(executable string, env *environment, outWriter io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "set-url URL",
		Short: "Set the Polaris dashboard URL",
		Long: `Set the Polaris dashboard URL

URL is either a path proxied by the Kubernetes API server, which uses your kubeconfig credentials,
or an absolute http(s) URL, which is fetched without any credentials. An empty URL restores the default.
`,
		Example: fmt.Sprintf(`  # Use the dashboard installed in the polaris-system namespace
  %[1]s config set-url /api/v1/namespaces/polaris-system/services/polaris-dashboard:80/proxy/

  # Use a dashboard exposed outside of the cluster
  %[1]s config set-url https://polaris.example.com/`, executable),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := env.settings()
			if err != nil {
				return err
			}
			if err := s.SetDashboardURL(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("saving dashboard URL: %w", err)
			}
			_, _ = fmt.Fprintf(outWriter, "Dashboard URL set to %s\n", s.DashboardURL(cmd.Context()))
			return nil
		},
	}
}

func newConfigOptionsCmd(env *environment, outWriter io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List the preset refresh intervals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, err := env.printer()
			if err != nil {
				return err
			}
			return printer.Print(intervalOptions(settings.IntervalOptions), outWriter)
		},
	}
}
