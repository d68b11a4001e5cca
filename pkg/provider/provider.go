package provider

import (
	"context"
	"sync"
	"time"

	"github.com/aquasecurity/polaris-lens/pkg/ext"
	"github.com/aquasecurity/polaris-lens/pkg/fetch"
	"github.com/aquasecurity/polaris-lens/pkg/polaris"
	"github.com/aquasecurity/polaris-lens/pkg/refresh"
	"github.com/aquasecurity/polaris-lens/pkg/settings"
	"github.com/go-logr/logr"
	"k8s.io/utils/clock"
	"sigs.k8s.io/controller-runtime/pkg/log"
)

const defaultPollInterval = time.Second

// Fetcher retrieves the audit document served under a dashboard URL.
type Fetcher interface {
	Fetch(ctx context.Context, dashboardURL string) (*polaris.AuditData, error)
}

type Option func(*Provider)

// WithPollInterval sets how often the stored refresh interval is re-read.
func WithPollInterval(interval time.Duration) Option {
	return func(p *Provider) {
		p.pollInterval = interval
	}
}

func WithClock(clk clock.WithTicker) Option {
	return func(p *Provider) {
		p.clock = clk
	}
}

func WithLogger(logger logr.Logger) Option {
	return func(p *Provider) {
		p.logger = logger
	}
}

func WithMetrics(metrics *refresh.Metrics) Option {
	return func(p *Provider) {
		p.metrics = metrics
	}
}

func WithIDGenerator(idGenerator ext.IDGenerator) Option {
	return func(p *Provider) {
		p.idGenerator = idGenerator
	}
}

// WithRegisterFunc sets the function called for every newly audited
// namespace.
func WithRegisterFunc(register RegisterFunc) Option {
	return func(p *Provider) {
		p.register = register
	}
}

// Provider owns the single refresh.Controller shared by every consumer
// within its scope. It keeps the controller in line with the stored
// settings for as long as it is running.
type Provider struct {
	settings     *settings.Settings
	fetcher      Fetcher
	pollInterval time.Duration
	clock        clock.WithTicker
	logger       logr.Logger
	metrics      *refresh.Metrics
	idGenerator  ext.IDGenerator
	register     RegisterFunc

	id         string
	controller *refresh.Controller
	registrar  *Registrar

	mu          sync.Mutex
	started     bool
	stopped     bool
	stop        chan struct{}
	pollDone    chan struct{}
	unsubscribe func()
}

func New(s *settings.Settings, fetcher Fetcher, opts ...Option) *Provider {
	p := &Provider{
		settings:     s,
		fetcher:      fetcher,
		pollInterval: defaultPollInterval,
		clock:        clock.RealClock{},
		logger:       log.Log.WithName("provider"),
		idGenerator:  ext.NewUUIDGenerator(),
		stop:         make(chan struct{}),
		pollDone:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.id = p.idGenerator.GenerateID()
	p.logger = p.logger.WithValues("provider", p.id)
	p.registrar = NewRegistrar(p.register)
	p.controller = refresh.NewController(p.fetch,
		refresh.WithClock(p.clock),
		refresh.WithLogger(p.logger.WithName("refresh")),
		refresh.WithMetrics(p.metrics),
	)
	return p
}

// ID returns the identifier of this provider scope.
func (p *Provider) ID() string {
	return p.id
}

// Start reads the stored refresh interval, issues the initial fetch and
// starts watching the settings for changes.
func (p *Provider) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started || p.stopped {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.controller.SetInterval(p.settings.RefreshInterval(ctx))
	p.unsubscribe = p.controller.Subscribe(func(state refresh.State) {
		if state.Data == nil {
			return
		}
		if added := p.registrar.Sync(*state.Data); len(added) > 0 {
			p.logger.V(1).Info("Registered namespaces", "namespaces", added)
		}
	})
	p.mu.Unlock()

	p.logger.Info("Starting provider", "interval", p.controller.Interval())
	go p.pollSettings(ctx, p.clock.NewTicker(p.pollInterval))
	p.controller.Start(ctx)
}

// Stop tears the provider down. It is safe to call more than once.
func (p *Provider) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	started := p.started
	p.mu.Unlock()

	close(p.stop)
	if started {
		<-p.pollDone
		p.unsubscribe()
	}
	p.controller.Stop()
	p.registrar.Close()
	p.logger.Info("Stopped provider")
}

func (p *Provider) State() refresh.State {
	return p.controller.State()
}

func (p *Provider) Refresh() {
	p.controller.Refresh()
}

func (p *Provider) Subscribe(fn func(refresh.State)) func() {
	return p.controller.Subscribe(fn)
}

// Interval returns the refresh interval the controller currently uses.
func (p *Provider) Interval() int {
	return p.controller.Interval()
}

// Namespaces returns the namespaces registered within this scope.
func (p *Provider) Namespaces() []string {
	return p.registrar.Registered()
}

func (p *Provider) fetch(ctx context.Context) (*polaris.AuditData, error) {
	dashboardURL := p.settings.DashboardURL(ctx)
	data, err := p.fetcher.Fetch(ctx, dashboardURL)
	if err != nil {
		return nil, fetch.Classify(dashboardURL, err)
	}
	return data, nil
}

func (p *Provider) pollSettings(ctx context.Context, ticker clock.Ticker) {
	defer close(p.pollDone)
	defer ticker.Stop()
	for {
		select {
		case <-p.stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C():
			p.controller.SetInterval(p.settings.RefreshInterval(ctx))
		}
	}
}
