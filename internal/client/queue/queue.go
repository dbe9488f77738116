// Package queue records mutating requests that failed for connectivity
// reasons so they can be replayed once the server is reachable again. The
// queue is durable: every change is flushed before it is acknowledged, and
// an operation leaves the queue only after a confirmed successful replay or
// after its retry budget is spent.
package queue

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/client/storage"
	"go.uber.org/zap"
)

// MaxRetries is the per-operation retry budget. After this many failed
// replays the operation is dropped and reported to the caller.
const MaxRetries = 5

// Operation is one recorded mutating request.
type Operation struct {
	ID         string          `json:"id"`
	Method     string          `json:"method"`
	Path       string          `json:"path"`
	Body       json.RawMessage `json:"body,omitempty"`
	EnqueuedAt time.Time       `json:"enqueuedAt"`
	RetryCount int             `json:"retryCount"`
}

// Executor replays one operation against the live server. A nil return
// settles the operation and removes it from the queue.
type Executor func(ctx context.Context, op Operation) error

// Result summarizes one drain pass.
type Result struct {
	Replayed  int
	Dropped   []Operation
	Remaining int
}

// Queue is a durable FIFO of pending operations for one user.
type Queue struct {
	kv     *storage.Store
	key    string
	logger *zap.Logger

	mu  sync.Mutex
	ops []Operation
}

// Option configures a Queue.
type Option func(*Queue)

// WithLogger sets the logger used for drop warnings.
func WithLogger(l *zap.Logger) Option {
	return func(q *Queue) {
		if l != nil {
			q.logger = l
		}
	}
}

// Open loads the persisted queue for one user. A corrupted queue file
// degrades to empty.
func Open(kv *storage.Store, userID string, opts ...Option) *Queue {
	q := &Queue{kv: kv, key: "queue-" + userID, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(q)
	}
	kv.Get(q.key, &q.ops)
	return q
}

// Enqueue appends an operation with a fresh retry budget and persists it
// before returning.
func (q *Queue) Enqueue(method, path string, body json.RawMessage) (Operation, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	op := Operation{
		ID:         uuid.New().String(),
		Method:     method,
		Path:       path,
		Body:       body,
		EnqueuedAt: time.Now(),
	}
	q.ops = append(q.ops, op)
	if err := q.persistLocked(); err != nil {
		q.ops = q.ops[:len(q.ops)-1]
		return Operation{}, err
	}
	return op, nil
}

// Drain replays queued operations oldest-first. Successful operations are
// removed; failures keep their place with an incremented retry count until
// the budget is spent, at which point the operation is dropped and returned
// in Result.Dropped. Draining an empty queue is a no-op. A cancelled context
// stops the pass; everything not yet settled stays queued.
func (q *Queue) Drain(ctx context.Context, exec Executor) (Result, error) {
	var res Result

	for _, op := range q.PeekAll() {
		if err := ctx.Err(); err != nil {
			res.Remaining = q.Len()
			return res, err
		}

		err := exec(ctx, op)
		if err != nil && ctx.Err() != nil {
			res.Remaining = q.Len()
			return res, ctx.Err()
		}

		q.mu.Lock()
		idx := q.indexLocked(op.ID)
		if idx < 0 {
			q.mu.Unlock()
			continue
		}
		if err == nil {
			q.removeLocked(op.ID)
			res.Replayed++
		} else {
			q.ops[idx].RetryCount++
			if q.ops[idx].RetryCount >= MaxRetries {
				dropped := q.ops[idx]
				q.removeLocked(op.ID)
				res.Dropped = append(res.Dropped, dropped)
				q.logger.Warn("pending operation dropped after retry budget",
					zap.String("method", dropped.Method),
					zap.String("path", dropped.Path),
					zap.Int("retries", dropped.RetryCount),
				)
			}
		}
		if perr := q.persistLocked(); perr != nil {
			q.logger.Warn("queue persist failed", zap.Error(perr))
		}
		q.mu.Unlock()
	}

	res.Remaining = q.Len()
	return res, nil
}

// PeekAll returns a copy of the queued operations in order.
func (q *Queue) PeekAll() []Operation {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Operation, len(q.ops))
	copy(out, q.ops)
	return out
}

// Len returns the number of queued operations.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.ops)
}

// Clear resets the queue (used on logout).
func (q *Queue) Clear() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.ops = nil
	return q.kv.Delete(q.key)
}

// RemoveMatching drops queued operations the predicate selects, e.g. a
// pending create for a note that was deleted again before it ever synced.
func (q *Queue) RemoveMatching(pred func(Operation) bool) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	kept := q.ops[:0]
	removed := 0
	for _, op := range q.ops {
		if pred(op) {
			removed++
		} else {
			kept = append(kept, op)
		}
	}
	if removed == 0 {
		return 0, nil
	}
	q.ops = kept
	return removed, q.persistLocked()
}

func (q *Queue) indexLocked(id string) int {
	for i, op := range q.ops {
		if op.ID == id {
			return i
		}
	}
	return -1
}

func (q *Queue) removeLocked(id string) {
	if idx := q.indexLocked(id); idx >= 0 {
		q.ops = append(q.ops[:idx], q.ops[idx+1:]...)
	}
}

func (q *Queue) persistLocked() error {
	return q.kv.Put(q.key, q.ops)
}
