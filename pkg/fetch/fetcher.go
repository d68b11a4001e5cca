package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aquasecurity/polaris-lens/pkg/lens"
	"github.com/aquasecurity/polaris-lens/pkg/polaris"
	"k8s.io/klog/v2"
)

const (
	defaultTimeout = 30 * time.Second
	resultsFile    = "results.json"
)

var ErrNoProxy = errors.New("no API server proxy configured")

// ResultsURL appends results.json to the dashboard URL without doubling
// the separating slash.
func ResultsURL(dashboardURL string) string {
	if strings.HasSuffix(dashboardURL, "/") {
		return dashboardURL + resultsFile
	}
	return dashboardURL + "/" + resultsFile
}

// IsFullURL returns true for absolute http(s) URLs and false for paths
// that are meant to be proxied by the API server.
func IsFullURL(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}

type Option func(*Fetcher)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(f *Fetcher) {
		f.httpClient = httpClient
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(f *Fetcher) {
		f.httpClient.Timeout = timeout
	}
}

// Fetcher downloads audit documents either through the API server proxy,
// which carries the caller's credentials, or straight from an absolute URL
// without any.
type Fetcher struct {
	proxy      ProxyRequester
	httpClient *http.Client
}

// NewFetcher constructs a Fetcher. The proxy may be nil if only absolute
// URLs are going to be fetched.
func NewFetcher(proxy ProxyRequester, opts ...Option) *Fetcher {
	f := &Fetcher{
		proxy: proxy,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves and decodes the audit document served under dashboardURL.
func (f *Fetcher) Fetch(ctx context.Context, dashboardURL string) (*polaris.AuditData, error) {
	url := ResultsURL(dashboardURL)
	if IsFullURL(url) {
		return f.fetchDirect(ctx, url)
	}
	return f.fetchProxy(ctx, url)
}

func (f *Fetcher) fetchProxy(ctx context.Context, path string) (*polaris.AuditData, error) {
	if f.proxy == nil {
		return nil, ErrNoProxy
	}
	klog.V(3).Infof("Fetching audit data through API server proxy: %s", path)
	body, err := f.proxy.Request(ctx, path)
	if err != nil {
		return nil, err
	}
	data, err := polaris.ReadAuditData(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (f *Fetcher) fetchDirect(ctx context.Context, url string) (*polaris.AuditData, error) {
	klog.V(3).Infof("Fetching audit data: %s", url)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Add("Accept", "application/json")
	req.Header.Add("User-Agent", lens.UserAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Status: resp.StatusCode, Text: http.StatusText(resp.StatusCode)}
	}
	data, err := polaris.ReadAuditData(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", url, err)
	}
	return &data, nil
}
