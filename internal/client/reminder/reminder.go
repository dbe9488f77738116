// Package reminder delivers periodic wellness nudges. The timer lives on an
// explicit scheduler owned by the caller and stops with its context; there
// are no package-level timers.
package reminder

import (
	"context"
	"time"

	"github.com/rowenbonaobra23-codecode/WellWork/internal/client/api"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/pkg/cron"
	"go.uber.org/zap"
)

const (
	// DefaultInterval is the base period between nudges.
	DefaultInterval = 45 * time.Minute
	// DefaultJitter randomizes each nudge inside [interval, interval+jitter).
	DefaultJitter = 30 * time.Minute

	jobName = "wellness_reminder"
)

// fallbackTip is used when the server cannot be reached for a fresh one.
const fallbackTip = "Time for a short break."

// NotifyFunc presents one tip to the user.
type NotifyFunc func(tip string)

// Reminder schedules wellness nudges for a running client.
type Reminder struct {
	api      *api.Client
	notify   NotifyFunc
	interval time.Duration
	jitter   time.Duration
	clock    cron.Clock
	logger   *zap.Logger

	sched *cron.Scheduler
}

// Option configures a Reminder.
type Option func(*Reminder)

// WithInterval overrides the base period.
func WithInterval(d time.Duration) Option {
	return func(r *Reminder) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithJitter overrides the randomization window.
func WithJitter(d time.Duration) Option {
	return func(r *Reminder) {
		if d >= 0 {
			r.jitter = d
		}
	}
}

// WithClock injects the clock driving the schedule.
func WithClock(c cron.Clock) Option {
	return func(r *Reminder) {
		if c != nil {
			r.clock = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Reminder) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a Reminder; nothing runs until Start.
func New(apiClient *api.Client, notify NotifyFunc, opts ...Option) *Reminder {
	r := &Reminder{
		api:      apiClient,
		notify:   notify,
		interval: DefaultInterval,
		jitter:   DefaultJitter,
		clock:    cron.SystemClock(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.sched = cron.New(cron.WithClock(r.clock))
	r.sched.Register(cron.Job{
		Name:        jobName,
		Description: "periodic wellness nudge",
		Interval:    r.interval,
		Jitter:      r.jitter,
		Fn:          r.fire,
	})
	return r
}

// Start launches the schedule; cancelling ctx tears it down.
func (r *Reminder) Start(ctx context.Context) {
	r.sched.Start(ctx)
}

// Trigger fires one nudge immediately (non-blocking).
func (r *Reminder) Trigger() {
	_ = r.sched.Run(jobName)
}

func (r *Reminder) fire(ctx context.Context) error {
	tip, err := r.api.WellnessTip(ctx)
	if err != nil {
		r.logger.Debug("tip fetch failed, using fallback", zap.Error(err))
		tip = fallbackTip
	}
	r.notify(tip)
	return nil
}
