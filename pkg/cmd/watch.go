package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aquasecurity/polaris-lens/pkg/provider"
	"github.com/aquasecurity/polaris-lens/pkg/refresh"
	"github.com/aquasecurity/polaris-lens/pkg/report"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"sigs.k8s.io/controller-runtime/pkg/log"
)

const metricsBindAddressFlagName = "metrics-bind-address"

func NewWatchCmd(env *environment, outWriter io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep audit data fresh and print the cluster score whenever it changes",
		Long: `Keep audit data fresh and print the cluster score whenever it changes

The refresh interval and dashboard URL are re-read from the settings while watching,
so 'config set-interval' and 'config set-url' take effect without a restart.
Press Ctrl+C to stop.
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			metricsBindAddress, err := cmd.Flags().GetString(metricsBindAddressFlagName)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return watch(ctx, env, metricsBindAddress, outWriter)
		},
	}
	cmd.Flags().String(metricsBindAddressFlagName, "",
		"The address the Prometheus metrics endpoint binds to, e.g. :8080. Metrics are not served when empty")
	return cmd
}

func watch(ctx context.Context, env *environment, metricsBindAddress string, outWriter io.Writer) error {
	logger := log.Log.WithName("watch")

	s, err := env.settings()
	if err != nil {
		return err
	}
	fetcher, err := env.fetcher(s.DashboardURL(ctx))
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	metrics := refresh.NewMetrics(registry)

	p := provider.New(s, fetcher,
		provider.WithPollInterval(env.config.SettingsPollInterval),
		provider.WithMetrics(metrics),
		provider.WithRegisterFunc(func(namespace string) {
			_, _ = fmt.Fprintf(outWriter, "Audited namespace: %s\n", namespace)
		}),
	)
	ctx = provider.NewContext(ctx, p)

	if metricsBindAddress != "" {
		server := &http.Server{
			Addr:              metricsBindAddress,
			Handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			logger.Info("Serving metrics", "address", metricsBindAddress)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error(err, "Serving metrics")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
		}()
	}

	return watchState(ctx, p, outWriter)
}

// watchState prints every state transition of the provider found in ctx
// until ctx is done.
func watchState(ctx context.Context, p *provider.Provider, outWriter io.Writer) error {
	consumer, err := provider.FromContext(ctx)
	if err != nil {
		return err
	}
	unsubscribe := consumer.Subscribe(func(state refresh.State) {
		printState(outWriter, state)
	})
	defer unsubscribe()

	p.Start(ctx)
	defer p.Stop()

	<-ctx.Done()
	return nil
}

func printState(w io.Writer, state refresh.State) {
	switch {
	case state.Loading:
		_, _ = fmt.Fprintln(w, "Loading Polaris audit data...")
	case state.Error != "":
		_, _ = fmt.Fprintf(w, "Error: %s\n", state.Error)
	default:
		if badge, ok := report.Badge(state); ok {
			_, _ = fmt.Fprintf(w, "%s (%s)\n", badge.Label, badge.Color)
		}
	}
}
