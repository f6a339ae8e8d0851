package probe

import (
	"context"
	"sync"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/xmidt-org/vigil/clock"
	"github.com/xmidt-org/vigil/logging"
)

// ProberOption configures optional behavior on a Prober.
type ProberOption func(*Prober)

// WithClient supplies the HTTP client used for probe requests.
func WithClient(client Client) ProberOption {
	return func(p *Prober) {
		p.client = client
	}
}

// WithClock supplies an alternate time source, primarily for testing.
func WithClock(c clock.Interface) ProberOption {
	return func(p *Prober) {
		p.clock = c
	}
}

// WithMetrics supplies prometheus instrumentation for probe results.
func WithMetrics(m *Metrics) ProberOption {
	return func(p *Prober) {
		p.metrics = m
	}
}

// WithStatusListeners appends listeners notified on status transitions.
func WithStatusListeners(listeners ...StatusListener) ProberOption {
	return func(p *Prober) {
		p.listeners = append(p.listeners, listeners...)
	}
}

// Prober drives the health state machine for a single monitored process.
// It runs on its own timer, in a single goroutine, with exactly one probe
// in flight at any time.
type Prober struct {
	checker     *Checker
	client      Client
	interval    time.Duration
	startPeriod time.Duration
	retries     int
	clock       clock.Interface
	logger      log.Logger
	metrics     *Metrics
	listeners   []StatusListener

	lock  sync.RWMutex
	state HealthState
	once  sync.Once
}

// New constructs a Prober from a set of options.  The options object may be
// nil, in which case all defaults apply.  The logger may be nil, in which
// case the default NOP logger is used.
func New(o *Options, logger log.Logger, options ...ProberOption) *Prober {
	if logger == nil {
		logger = logging.DefaultLogger()
	}

	p := &Prober{
		interval:    o.interval(),
		startPeriod: o.startPeriod(),
		retries:     o.retries(),
		clock:       clock.System(),
		logger:      log.With(logger, "url", o.url()),
	}

	for _, option := range options {
		option(p)
	}

	p.checker = NewChecker(p.client, o)
	p.checker.clock = p.clock
	return p
}

// State returns a copy of the current health state.  Safe for concurrent use.
func (p *Prober) State() HealthState {
	p.lock.RLock()
	defer p.lock.RUnlock()
	return p.state
}

// Run starts the probe loop.  This method is idempotent:  once a Prober is
// Run, it cannot be Run again.  The loop runs until the shutdown channel is
// closed; probe failures never terminate it.
//
// Ticks that fire while a probe is in flight are dropped, except for the one
// tick the ticker channel buffers.  A probe that outlives the interval is
// therefore followed by at most one immediate probe before the loop realigns
// with the interval.  The default timeout is well under the default interval,
// so this only matters when a timeout larger than the interval is configured.
func (p *Prober) Run(waitGroup *sync.WaitGroup, shutdown <-chan struct{}) error {
	p.once.Do(func() {
		launch := p.clock.Now()
		p.logger.Log(level.Key(), level.InfoValue(), logging.MessageKey(), "prober started",
			"interval", p.interval, "startPeriod", p.startPeriod, "retries", p.retries)

		waitGroup.Add(1)
		go func() {
			ticker := p.clock.NewTicker(p.interval)

			defer ticker.Stop()
			defer p.logger.Log(level.Key(), level.InfoValue(), logging.MessageKey(), "prober stopped")
			defer waitGroup.Done()

			for {
				select {
				case <-shutdown:
					return

				case <-ticker.C():
					p.probe(launch)
				}
			}
		}()
	})

	return nil
}

// probe issues exactly one check and folds its result into the state.
// The grace decision is made at the instant the probe is issued.
func (p *Prober) probe(launch time.Time) {
	graceElapsed := p.clock.Now().Sub(launch) >= p.startPeriod
	result := p.checker.Check(context.Background())

	p.lock.Lock()
	previous := p.state
	next := previous.Observe(result.Outcome, graceElapsed, p.retries)
	p.state = next
	p.lock.Unlock()

	if p.metrics != nil {
		p.metrics.Observe(result, next)
	}

	if previous.Status != next.Status {
		p.logger.Log(level.Key(), level.InfoValue(), logging.MessageKey(), "health status changed",
			"from", previous.Status, "to", next.Status,
			"outcome", result.Outcome, "failingStreak", next.FailingStreak)

		for _, listener := range p.listeners {
			listener.OnTransition(previous.Status, next.Status, next)
		}

		return
	}

	p.logger.Log(level.Key(), level.DebugValue(), logging.MessageKey(), "probe completed",
		"outcome", result.Outcome, "status", next.Status,
		"failingStreak", next.FailingStreak, "latency", result.Latency,
		logging.ErrorKey(), result.Err)
}
