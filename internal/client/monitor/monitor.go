// Package monitor watches server reachability by polling the liveness
// endpoint. Checks are serialized: a new cycle starts only after the
// previous check settled or was cancelled, and a cancelled check never
// counts as an offline signal.
package monitor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rowenbonaobra23-codecode/WellWork/internal/pkg/cron"
	"go.uber.org/zap"
)

// State is the current connectivity belief.
type State string

const (
	StateChecking State = "checking"
	StateOnline   State = "online"
	StateOffline  State = "offline"
)

// DefaultInterval is the probe period.
const DefaultInterval = 5 * time.Second

// CheckFunc probes the server once. A nil return means reachable.
type CheckFunc func(ctx context.Context) error

// TransitionFunc is called on every state change, in the monitor goroutine.
type TransitionFunc func(from, to State)

// Monitor polls a CheckFunc and publishes transitions.
type Monitor struct {
	check    CheckFunc
	interval time.Duration
	clock    cron.Clock
	logger   *zap.Logger
	onChange TransitionFunc

	mu    sync.Mutex
	state State

	done chan struct{}
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithInterval overrides the probe period.
func WithInterval(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithClock injects the clock used between probes.
func WithClock(c cron.Clock) Option {
	return func(m *Monitor) {
		if c != nil {
			m.clock = c
		}
	}
}

// WithLogger sets the logger for transition events.
func WithLogger(l *zap.Logger) Option {
	return func(m *Monitor) {
		if l != nil {
			m.logger = l
		}
	}
}

// OnTransition registers the subscriber notified on each state change.
func OnTransition(fn TransitionFunc) Option {
	return func(m *Monitor) { m.onChange = fn }
}

// New creates a Monitor in the checking state.
func New(check CheckFunc, opts ...Option) *Monitor {
	m := &Monitor{
		check:    check,
		interval: DefaultInterval,
		clock:    cron.SystemClock(),
		logger:   zap.NewNop(),
		state:    StateChecking,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start launches the probe loop: one immediate check, then one per interval,
// until ctx is cancelled. Cancelling ctx also aborts the in-flight check.
func (m *Monitor) Start(ctx context.Context) {
	go m.run(ctx)
}

// Done is closed once the probe loop has exited.
func (m *Monitor) Done() <-chan struct{} { return m.done }

// State returns the current connectivity belief.
func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Monitor) run(ctx context.Context) {
	defer close(m.done)

	m.probe(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-m.clock.After(m.interval):
			m.probe(ctx)
		}
	}
}

// probe runs one check. Cancellation is distinct from failure: if the check
// was aborted by teardown, the previous state stands.
func (m *Monitor) probe(ctx context.Context) {
	cctx, cancel := context.WithCancel(ctx)
	err := m.check(cctx)
	cancel()

	if errors.Is(err, context.Canceled) || ctx.Err() != nil {
		return
	}
	if err != nil {
		m.setState(StateOffline)
	} else {
		m.setState(StateOnline)
	}
}

func (m *Monitor) setState(next State) {
	m.mu.Lock()
	prev := m.state
	if prev == next {
		m.mu.Unlock()
		return
	}
	m.state = next
	m.mu.Unlock()

	m.logger.Info("connectivity transition",
		zap.String("from", string(prev)),
		zap.String("to", string(next)),
	)
	if m.onChange != nil {
		m.onChange(prev, next)
	}
}
