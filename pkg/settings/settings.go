package settings

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
	"sigs.k8s.io/controller-runtime/pkg/log"
)

const (
	// RefreshIntervalKey is the storage key of the refresh interval in seconds.
	RefreshIntervalKey = "polaris-plugin-refresh-interval"
	// DashboardURLKey is the storage key of the Polaris dashboard URL.
	DashboardURLKey = "polaris-plugin-dashboard-url"

	// DefaultRefreshInterval is used whenever the stored interval is missing
	// or invalid.
	DefaultRefreshInterval = 300
	// DefaultDashboardURL routes through the API server service proxy to the
	// dashboard installed by the Polaris Helm chart.
	DefaultDashboardURL = "/api/v1/namespaces/polaris/services/polaris-dashboard:80/proxy/"
)

// IntervalOption is a preset refresh interval.
type IntervalOption struct {
	Label   string `json:"label"`
	Seconds int    `json:"seconds"`
}

var IntervalOptions = []IntervalOption{
	{Label: "1 minute", Seconds: 60},
	{Label: "5 minutes", Seconds: 300},
	{Label: "10 minutes", Seconds: 600},
	{Label: "30 minutes", Seconds: 1800},
}

// Settings reads and writes the user preferences. Values are validated when
// read, never when written, so a corrupt entry only ever falls back to its
// default and does not affect the other entry.
type Settings struct {
	storage Storage
	logger  logr.Logger
}

func New(storage Storage) *Settings {
	return &Settings{
		storage: storage,
		logger:  log.Log.WithName("settings"),
	}
}

// RefreshInterval returns the refresh interval in seconds.
func (s *Settings) RefreshInterval(ctx context.Context) int {
	stored, found, err := s.storage.Get(ctx, RefreshIntervalKey)
	if err != nil {
		s.logger.Error(err, "Reading refresh interval", "key", RefreshIntervalKey)
		return DefaultRefreshInterval
	}
	if !found {
		return DefaultRefreshInterval
	}
	seconds, err := parseLeadingInt(stored)
	if err != nil || seconds <= 0 {
		return DefaultRefreshInterval
	}
	return seconds
}

// parseLeadingInt parses the optionally signed run of digits at the start
// of value, ignoring leading whitespace and anything after the digits, so
// "60s" reads as 60 and "1.5" as 1.
func parseLeadingInt(value string) (int, error) {
	value = strings.TrimSpace(value)
	end := 0
	if end < len(value) && (value[end] == '+' || value[end] == '-') {
		end++
	}
	digits := end
	for end < len(value) && value[end] >= '0' && value[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, fmt.Errorf("no leading integer in %q", value)
	}
	return strconv.Atoi(value[:end])
}

func (s *Settings) SetRefreshInterval(ctx context.Context, seconds int) error {
	return s.storage.Set(ctx, RefreshIntervalKey, strconv.Itoa(seconds))
}

// DashboardURL returns either a service proxy path relative to the API
// server or an absolute http(s) URL.
func (s *Settings) DashboardURL(ctx context.Context) string {
	stored, found, err := s.storage.Get(ctx, DashboardURLKey)
	if err != nil {
		s.logger.Error(err, "Reading dashboard URL", "key", DashboardURLKey)
		return DefaultDashboardURL
	}
	if !found || strings.TrimSpace(stored) == "" {
		return DefaultDashboardURL
	}
	return strings.TrimSpace(stored)
}

func (s *Settings) SetDashboardURL(ctx context.Context, url string) error {
	return s.storage.Set(ctx, DashboardURLKey, strings.TrimSpace(url))
}
