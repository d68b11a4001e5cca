package refresh

import (
	"context"
	"sync"
	"time"

	"github.com/aquasecurity/polaris-lens/pkg/polaris"
	"github.com/go-logr/logr"
	"k8s.io/utils/clock"
	"sigs.k8s.io/controller-runtime/pkg/log"
)

// State is a snapshot of what the controller knows about the most recent
// audit. An empty Error means there is no error.
type State struct {
	Data    *polaris.AuditData
	Loading bool
	Error   string
}

// Source produces the audit document for one fetch cycle. The error it
// returns is shown to users as is, so it should already be classified.
type Source func(ctx context.Context) (*polaris.AuditData, error)

type Option func(*Controller)

// WithInterval sets the auto-refresh period in seconds. A value <= 0
// disables auto-refresh.
func WithInterval(seconds int) Option {
	return func(c *Controller) {
		c.interval = seconds
	}
}

func WithClock(clk clock.WithTicker) Option {
	return func(c *Controller) {
		c.clock = clk
	}
}

func WithLogger(logger logr.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(c *Controller) {
		c.metrics = metrics
	}
}

// Controller keeps the latest audit data fresh. It fetches once when it is
// started, again whenever Refresh is called, and on every tick of the
// refresh interval.
//
// While a fetch is in flight the previous Data and Error are kept and only
// Loading is set. Fetches are not serialized and the last one to resolve
// wins. Nothing resolved after Stop is applied.
type Controller struct {
	source   Source
	clock    clock.WithTicker
	logger   logr.Logger
	metrics  *Metrics
	interval int

	mu        sync.Mutex
	state     State
	started   bool
	stopped   bool
	ctx       context.Context
	cancel    context.CancelFunc
	scheduler *Scheduler
	cycles    uint64

	listenersMu  sync.Mutex
	listeners    map[int]func(State)
	nextListener int
}

func NewController(source Source, opts ...Option) *Controller {
	c := &Controller{
		source:    source,
		clock:     clock.RealClock{},
		logger:    log.Log.WithName("refresh"),
		listeners: make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start activates the controller and issues the initial fetch. Calling
// Start more than once, or after Stop, does nothing.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	if c.started || c.stopped {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.ctx, c.cancel = context.WithCancel(ctx)
	c.scheduler = NewScheduler(c.clock, seconds(c.interval), c.tick)
	c.logger.V(1).Info("Starting", "interval", c.interval)
	c.mu.Unlock()

	c.Refresh()
}

// Stop deactivates the controller. In-flight fetches are cancelled and
// their results discarded. Stop is idempotent.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.stopped = true
	scheduler := c.scheduler
	if c.cancel != nil {
		c.cancel()
	}
	c.mu.Unlock()

	if scheduler != nil {
		scheduler.Stop()
	}
	c.logger.V(1).Info("Stopped")
}

// Refresh starts one fetch cycle immediately. It does not affect when the
// next automatic refresh happens.
func (c *Controller) Refresh() {
	c.mu.Lock()
	if !c.started || c.stopped {
		c.mu.Unlock()
		return
	}
	ctx := c.ctx
	c.cycles++
	cycle := c.cycles
	c.state.Loading = true
	snapshot := c.state
	c.mu.Unlock()

	c.notify(snapshot)
	go c.fetch(ctx, cycle)
}

// SetInterval changes the auto-refresh period. The timer restarts at the
// full new period. A value <= 0 disables auto-refresh.
func (c *Controller) SetInterval(interval int) {
	c.mu.Lock()
	if interval == c.interval {
		c.mu.Unlock()
		return
	}
	c.interval = interval
	scheduler := c.scheduler
	stopped := c.stopped
	c.mu.Unlock()

	c.logger.V(1).Info("Changing refresh interval", "interval", interval)
	if scheduler != nil && !stopped {
		scheduler.SetDelay(seconds(interval))
	}
}

// Interval returns the current auto-refresh period in seconds.
func (c *Controller) Interval() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interval
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers fn to be called with the new state after every
// transition. The returned function removes the subscription.
func (c *Controller) Subscribe(fn func(State)) func() {
	c.listenersMu.Lock()
	defer c.listenersMu.Unlock()
	id := c.nextListener
	c.nextListener++
	c.listeners[id] = fn
	return func() {
		c.listenersMu.Lock()
		defer c.listenersMu.Unlock()
		delete(c.listeners, id)
	}
}

func (c *Controller) tick() {
	go c.Refresh()
}

func (c *Controller) fetch(ctx context.Context, cycle uint64) {
	started := c.clock.Now()
	data, err := c.source(ctx)
	elapsed := c.clock.Since(started)

	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		c.logger.V(1).Info("Discarding fetch result after stop", "cycle", cycle)
		return
	}
	c.metrics.observe(elapsed, data, err)
	if err != nil {
		c.state = State{Error: err.Error()}
	} else {
		c.state = State{Data: data}
	}
	snapshot := c.state
	c.mu.Unlock()

	if err != nil {
		c.logger.Error(err, "Fetching audit data failed", "cycle", cycle)
	} else if data != nil {
		c.logger.V(1).Info("Fetched audit data", "cycle", cycle, "results", len(data.Results))
	}
	c.notify(snapshot)
}

func (c *Controller) notify(state State) {
	c.listenersMu.Lock()
	listeners := make([]func(State), 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	c.listenersMu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}

func seconds(interval int) time.Duration {
	if interval <= 0 {
		return 0
	}
	return time.Duration(interval) * time.Second
}
