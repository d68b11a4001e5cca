package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/aquasecurity/polaris-lens/pkg/fetch"
	"github.com/spf13/cobra"
)

var errConnectionFailed = errors.New("connection test failed")

type connectionView struct {
	fetch.ConnectionResult `json:",inline"`
	DashboardURL           string `json:"dashboardURL"`
}

func (v connectionView) WriteTable(w io.Writer) error {
	_, _ = fmt.Fprintf(w, "DASHBOARD URL:\t%s\n", v.DashboardURL)
	_, _ = fmt.Fprintf(w, "RESULT:\t%s\n", v.Message)
	if v.Warning != "" {
		_, _ = fmt.Fprintf(w, "WARNING:\t%s\n", v.Warning)
	}
	return nil
}

func NewTestConnectionCmd(env *environment, outWriter io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "test-connection",
		Short: "Check that the Polaris dashboard can be reached",
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
			dashboardURL := s.DashboardURL(cmd.Context())
			fetcher, err := env.fetcher(dashboardURL)
			if err != nil {
				return err
			}
			result := fetch.TestConnection(cmd.Context(), fetcher, dashboardURL)
			if err := printer.Print(connectionView{ConnectionResult: result, DashboardURL: dashboardURL}, outWriter); err != nil {
				return err
			}
			if !result.Success {
				return errConnectionFailed
			}
			return nil
		},
	}
}
