package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/aquasecurity/polaris-lens/pkg/polaris"
)

// ConnectionResult is the outcome of a single connection test.
type ConnectionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	// Warning is set when the dashboard answered with an output version
	// this tool was not written against.
	Warning string `json:"warning,omitempty"`
}

// TestConnection fetches the audit document once and reports whether the
// dashboard is usable. It does not classify errors.
func TestConnection(ctx context.Context, fetcher *Fetcher, dashboardURL string) ConnectionResult {
	data, err := fetcher.Fetch(ctx, dashboardURL)
	if err != nil {
		return ConnectionResult{
			Success: false,
			Message: fmt.Sprintf("Connection failed: %v", err),
		}
	}
	result := ConnectionResult{
		Success: true,
		Message: fmt.Sprintf("Connected successfully! Version: %s, Last audit: %s",
			data.PolarisOutputVersion, formatTimestamp(data.AuditTime)),
	}
	if err := polaris.CheckOutputVersion(data.PolarisOutputVersion); err != nil {
		result.Warning = err.Error()
	}
	return result
}

func formatTimestamp(value string) string {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}
	return t.Format(time.RFC1123)
}
