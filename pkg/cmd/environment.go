package cmd

import (
	"context"
	"strings"

	"github.com/aquasecurity/polaris-lens/pkg/etc"
	"github.com/aquasecurity/polaris-lens/pkg/fetch"
	"github.com/aquasecurity/polaris-lens/pkg/polaris"
	"github.com/aquasecurity/polaris-lens/pkg/report"
	"github.com/aquasecurity/polaris-lens/pkg/settings"
	"k8s.io/cli-runtime/pkg/genericclioptions"
	"k8s.io/client-go/kubernetes"
	"k8s.io/klog/v2"
	"k8s.io/utils/clock"
)

// environment holds the global flags and builds the clients commands need
// from them.
type environment struct {
	cf     *genericclioptions.ConfigFlags
	config etc.Config
	clock  clock.PassiveClock

	output       string
	dashboardURL string
	noPersist    bool

	storage settings.Storage
}

func (e *environment) kubeClient() (kubernetes.Interface, error) {
	config, err := e.cf.ToRESTConfig()
	if err != nil {
		return nil, err
	}
	return kubernetes.NewForConfig(config)
}

func (e *environment) namespace() (string, error) {
	if e.cf.Namespace != nil && *e.cf.Namespace != "" {
		return *e.cf.Namespace, nil
	}
	ns, _, err := e.cf.ToRawKubeConfigLoader().Namespace()
	return ns, err
}

func (e *environment) settings() (*settings.Settings, error) {
	if e.storage == nil {
		if e.noPersist {
			e.storage = settings.NewMemoryStorage()
		} else {
			client, err := e.kubeClient()
			if err != nil {
				return nil, err
			}
			klog.V(3).Infof("Using settings ConfigMap %s/%s", e.config.Namespace, e.config.ConfigMap)
			e.storage = settings.NewConfigMapStorage(client, e.config.Namespace, e.config.ConfigMap)
		}
	}
	if e.dashboardURL != "" {
		return settings.New(&dashboardURLOverride{Storage: e.storage, url: e.dashboardURL}), nil
	}
	return settings.New(e.storage), nil
}

// fetcher returns a Fetcher able to fetch from dashboardURL. Absolute URLs
// do not need the API server proxy, so a missing kubeconfig is not an error
// for them.
func (e *environment) fetcher(dashboardURL string) (*fetch.Fetcher, error) {
	opts := []fetch.Option{fetch.WithTimeout(e.config.HTTPTimeout)}
	client, err := e.kubeClient()
	if err != nil {
		if fetch.IsFullURL(dashboardURL) {
			klog.V(3).Infof("API server proxy unavailable: %v", err)
			return fetch.NewFetcher(nil, opts...), nil
		}
		return nil, err
	}
	return fetch.NewFetcher(fetch.NewKubeProxyRequester(client.CoreV1().RESTClient()), opts...), nil
}

func (e *environment) printer() (*report.Printer, error) {
	return report.NewPrinter(e.output)
}

// auditData fetches the audit document once. Failures are classified the
// same way the refresh controller classifies them.
func (e *environment) auditData(ctx context.Context) (*polaris.AuditData, error) {
	s, err := e.settings()
	if err != nil {
		return nil, err
	}
	dashboardURL := s.DashboardURL(ctx)
	fetcher, err := e.fetcher(dashboardURL)
	if err != nil {
		return nil, err
	}
	data, err := fetcher.Fetch(ctx, dashboardURL)
	if err != nil {
		return nil, fetch.Classify(dashboardURL, err)
	}
	if err := polaris.CheckOutputVersion(data.PolarisOutputVersion); err != nil {
		klog.Warningf("Polaris output may not be understood: %v", err)
	}
	return data, nil
}

// dashboardURLOverride serves the dashboard URL given on the command line
// instead of the stored one.
type dashboardURLOverride struct {
	settings.Storage
	url string
}

func (o *dashboardURLOverride) Get(ctx context.Context, key string) (string, bool, error) {
	if key == settings.DashboardURLKey {
		return strings.TrimSpace(o.url), true, nil
	}
	return o.Storage.Get(ctx, key)
}
