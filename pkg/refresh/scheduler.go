package refresh

import (
	"sync"
	"time"

	"k8s.io/utils/clock"
)

// Scheduler periodically executes `action`, with a pause of `delay` between
// invocations, until it is stopped. A delay <= 0 leaves it disarmed.
type Scheduler struct {
	clock    clock.WithTicker
	delay    time.Duration
	timer    clock.Timer
	setDelay chan delayRequest
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	action   func()
}

type delayRequest struct {
	delay time.Duration
	armed chan struct{}
}

// NewScheduler arms the first timer before returning and then runs the
// scheduling loop in its own goroutine.
func NewScheduler(clk clock.WithTicker, delay time.Duration, action func()) *Scheduler {
	scheduler := &Scheduler{
		clock:    clk,
		delay:    delay,
		setDelay: make(chan delayRequest),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		action:   action,
	}
	scheduler.arm()
	go scheduler.start()
	return scheduler
}

func (scheduler *Scheduler) arm() {
	if scheduler.timer != nil {
		scheduler.timer.Stop()
		scheduler.timer = nil
	}
	if scheduler.delay > 0 {
		scheduler.timer = scheduler.clock.NewTimer(scheduler.delay)
	}
}

func (scheduler *Scheduler) tick() <-chan time.Time {
	if scheduler.timer == nil {
		return nil
	}
	return scheduler.timer.C()
}

func (scheduler *Scheduler) start() {
	defer close(scheduler.done)
	for {
		select {
		case <-scheduler.stop:
			if scheduler.timer != nil {
				scheduler.timer.Stop()
			}
			return
		case <-scheduler.tick():
			scheduler.action()
			scheduler.timer = nil
			scheduler.arm()
		case req := <-scheduler.setDelay:
			scheduler.delay = req.delay
			scheduler.arm()
			close(req.armed)
		}
	}
}

// SetDelay sets the delay and restarts the current period from now. It
// returns once the new timer is armed, or immediately if the scheduler has
// been stopped.
func (scheduler *Scheduler) SetDelay(delay time.Duration) {
	req := delayRequest{delay: delay, armed: make(chan struct{})}
	select {
	case scheduler.setDelay <- req:
		<-req.armed
	case <-scheduler.done:
	}
}

// Stop terminates the scheduling loop and waits for it to exit. It is safe
// to call more than once.
func (scheduler *Scheduler) Stop() {
	scheduler.stopOnce.Do(func() {
		close(scheduler.stop)
	})
	<-scheduler.done
}
