// Package syncer reconciles offline work with the server. It is a
// three-state machine: Synced (server is source of truth), Degraded
// (connectivity lost, cache is source of truth, mutations queue up) and
// Reconciling (connectivity just returned; the queue is replayed and the
// cache overwritten from server truth). A mutex guarantees at most one
// reconciliation pass at a time; a connectivity flap during a pass is
// recorded and resolved once the pass finishes. If connectivity came back
// before the pass ended, the pass runs again rather than settling on a
// state derived from a stale signal.
package syncer

import (
	"context"
	"errors"
	"sync"

	"github.com/rowenbonaobra23-codecode/WellWork/internal/client/api"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/client/cache"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/client/monitor"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/client/queue"
	"go.uber.org/zap"
)

// State is the reconciliation state.
type State string

const (
	StateSynced      State = "synced"
	StateDegraded    State = "degraded"
	StateReconciling State = "reconciling"
)

// DropFunc is notified when operations are discarded after exhausting their
// retry budget, so the UI can tell the user instead of losing the changes
// silently.
type DropFunc func(dropped []queue.Operation)

// Syncer owns the reconciliation state for one logged-in user.
type Syncer struct {
	api    *api.Client
	cache  *cache.Cache
	q      *queue.Queue
	userID string
	logger *zap.Logger
	onDrop DropFunc

	mu      sync.Mutex
	state   State
	flapped bool // offline signal arrived while a pass was in flight
	rerun   bool // connectivity came back after a mid-pass flap

	ctx context.Context
	wg  sync.WaitGroup
}

// Option configures a Syncer.
type Option func(*Syncer)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Syncer) {
		if l != nil {
			s.logger = l
		}
	}
}

// OnDrop registers the callback for dropped operations.
func OnDrop(fn DropFunc) Option {
	return func(s *Syncer) { s.onDrop = fn }
}

// New creates a Syncer. It starts Degraded when operations queued by an
// earlier run are still pending, so the first online probe replays them.
func New(apiClient *api.Client, c *cache.Cache, q *queue.Queue, userID string, opts ...Option) *Syncer {
	s := &Syncer{
		api:    apiClient,
		cache:  c,
		q:      q,
		userID: userID,
		logger: zap.NewNop(),
		state:  StateSynced,
		ctx:    context.Background(),
	}
	if q.Len() > 0 {
		s.state = StateDegraded
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start binds the context used for passes triggered by connectivity
// transitions. Cancelling it aborts an in-flight pass.
func (s *Syncer) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()
}

// Wait blocks until any in-flight reconciliation pass has finished.
func (s *Syncer) Wait() { s.wg.Wait() }

// State returns the current reconciliation state.
func (s *Syncer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// HandleTransition is the monitor subscriber. Offline flips to Degraded;
// the first online probe after a Degraded period triggers one reconciliation
// pass (edge-triggered: repeat online probes do nothing once Synced).
func (s *Syncer) HandleTransition(from, to monitor.State) {
	switch to {
	case monitor.StateOffline:
		s.mu.Lock()
		if s.state == StateReconciling {
			s.flapped = true
		} else {
			s.state = StateDegraded
		}
		s.mu.Unlock()
	case monitor.StateOnline:
		s.mu.Lock()
		if s.state == StateReconciling && s.flapped {
			// Connectivity recovered mid-pass. The running pass picks
			// this up when it finishes and runs again.
			s.rerun = true
			s.mu.Unlock()
			return
		}
		if s.state != StateDegraded {
			s.mu.Unlock()
			return
		}
		s.state = StateReconciling
		ctx := s.ctx
		s.mu.Unlock()

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.runPass(ctx)
		}()
	}
}

// ErrPassInFlight is returned by Reconcile when a pass is already running.
var ErrPassInFlight = errors.New("reconciliation already in progress")

// Reconcile runs one pass synchronously (manual trigger).
func (s *Syncer) Reconcile(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateReconciling {
		s.mu.Unlock()
		return ErrPassInFlight
	}
	s.state = StateReconciling
	s.mu.Unlock()

	s.runPass(ctx)
	return nil
}

// runPass drains the queue, then overwrites the cache from server truth.
// The overwrite (rather than a merge) is what makes a crashed or repeated
// pass harmless.
func (s *Syncer) runPass(ctx context.Context) {
	for {
		res, drainErr := s.q.Drain(ctx, s.executor)
		if len(res.Dropped) > 0 {
			s.logger.Warn("changes could not be synced and were dropped",
				zap.Int("count", len(res.Dropped)))
			if s.onDrop != nil {
				s.onDrop(res.Dropped)
			}
		}

		var fetchErr error
		if drainErr == nil {
			serverNotes, err := s.api.ListNotes(ctx)
			fetchErr = err
			if err == nil {
				if cerr := s.cache.SaveNotes(s.userID, serverNotes); cerr != nil {
					s.logger.Warn("cache overwrite failed", zap.Error(cerr))
				}
			} else if !api.IsConnectivity(err) {
				s.logger.Warn("note refresh rejected", zap.Error(err))
			}
		}

		s.mu.Lock()
		if drainErr == nil && s.rerun {
			// Connectivity dropped and came back while this pass ran.
			// Anything queued or changed during the flap is picked up
			// by another pass; each rerun needs its own online signal,
			// so this cannot loop forever.
			s.flapped = false
			s.rerun = false
			s.mu.Unlock()
			continue
		}
		switch {
		case drainErr != nil:
			// Pass aborted by cancellation; the queue still holds work.
			s.state = StateDegraded
		case s.flapped, api.IsConnectivity(fetchErr):
			s.state = StateDegraded
		default:
			s.state = StateSynced
		}
		s.flapped = false
		s.rerun = false
		s.mu.Unlock()
		return
	}
}

// executor replays one queued operation. Connectivity failures and 5xx
// responses are retryable; a 4xx means the server received the request and
// made a decision that a retry cannot change, so the operation is settled.
// A DELETE answered with 404 lands here, which is exactly the idempotence
// the queue relies on.
func (s *Syncer) executor(ctx context.Context, op queue.Operation) error {
	err := s.api.Replay(ctx, op.Method, op.Path, op.Body)
	if err == nil {
		return nil
	}
	var se *api.StatusError
	if errors.As(err, &se) && se.Code < 500 {
		s.logger.Info("queued operation settled by server rejection",
			zap.String("method", op.Method),
			zap.String("path", op.Path),
			zap.Int("status", se.Code),
		)
		return nil
	}
	return err
}
