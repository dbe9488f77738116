package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/rowenbonaobra23-codecode/WellWork/internal/client/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func newQueue(t *testing.T) (*Queue, *storage.Store) {
	t.Helper()
	kv, err := storage.Open(t.TempDir())
	require.NoError(t, err)
	return Open(kv, "u1"), kv
}

func alwaysFail(ctx context.Context, op Operation) error {
	return errors.New("connection refused")
}

func TestEnqueueAndOrder(t *testing.T) {
	q, _ := newQueue(t)

	_, err := q.Enqueue(http.MethodPost, "/api/notes", json.RawMessage(`{"date":"2026-08-30"}`))
	require.NoError(t, err)
	_, err = q.Enqueue(http.MethodDelete, "/api/notes/abc", nil)
	require.NoError(t, err)

	ops := q.PeekAll()
	require.Len(t, ops, 2)
	assert.Equal(t, http.MethodPost, ops[0].Method, "oldest first")
	assert.Equal(t, http.MethodDelete, ops[1].Method)
}

func TestQueueSurvivesReopen(t *testing.T) {
	kv, err := storage.Open(t.TempDir())
	require.NoError(t, err)

	q := Open(kv, "u1")
	_, err = q.Enqueue(http.MethodPost, "/api/notes", json.RawMessage(`{"date":"2026-08-30"}`))
	require.NoError(t, err)

	q2 := Open(kv, "u1")
	require.Equal(t, 1, q2.Len())
	assert.Equal(t, "/api/notes", q2.PeekAll()[0].Path)
}

func TestDrainEmptyIsNoOp(t *testing.T) {
	q, _ := newQueue(t)

	calls := 0
	res, err := q.Drain(context.Background(), func(ctx context.Context, op Operation) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Zero(t, calls)
	assert.Equal(t, Result{}, res)
}

func TestDrainRemovesOnlyConfirmed(t *testing.T) {
	q, _ := newQueue(t)

	_, err := q.Enqueue(http.MethodPost, "/api/notes", json.RawMessage(`{"date":"2026-08-30"}`))
	require.NoError(t, err)
	_, err = q.Enqueue(http.MethodDelete, "/api/notes/abc", nil)
	require.NoError(t, err)

	// first op succeeds, second fails
	res, err := q.Drain(context.Background(), func(ctx context.Context, op Operation) error {
		if op.Method == http.MethodDelete {
			return errors.New("connection reset")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Replayed)
	assert.Empty(t, res.Dropped)
	assert.Equal(t, 1, res.Remaining)

	ops := q.PeekAll()
	require.Len(t, ops, 1)
	assert.Equal(t, http.MethodDelete, ops[0].Method)
	assert.Equal(t, 1, ops[0].RetryCount)
}

func TestRetryBudgetDropsOperation(t *testing.T) {
	q, _ := newQueue(t)

	_, err := q.Enqueue(http.MethodDelete, "/api/notes/abc", nil)
	require.NoError(t, err)

	// the operation survives the first MaxRetries-1 failed passes
	for i := 0; i < MaxRetries-1; i++ {
		res, err := q.Drain(context.Background(), alwaysFail)
		require.NoError(t, err)
		assert.Empty(t, res.Dropped, "pass %d", i+1)
		require.Equal(t, 1, q.Len())
	}

	// the next failure spends the budget; a further pass never sees it
	res, err := q.Drain(context.Background(), alwaysFail)
	require.NoError(t, err)
	require.Len(t, res.Dropped, 1)
	assert.Equal(t, "/api/notes/abc", res.Dropped[0].Path)
	assert.Equal(t, MaxRetries, res.Dropped[0].RetryCount)
	assert.Zero(t, q.Len())
}

func TestDrainStopsOnCancel(t *testing.T) {
	q, _ := newQueue(t)

	for i := 0; i < 3; i++ {
		_, err := q.Enqueue(http.MethodPost, fmt.Sprintf("/api/notes/%d", i), nil)
		require.NoError(t, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	res, err := q.Drain(ctx, func(ctx context.Context, op Operation) error {
		calls++
		cancel()
		return ctx.Err()
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls, "cancellation stops the pass")
	assert.Equal(t, 3, res.Remaining, "a cancelled replay never counts as a failure")

	for _, op := range q.PeekAll() {
		assert.Zero(t, op.RetryCount)
	}
}

func TestRemoveMatching(t *testing.T) {
	q, _ := newQueue(t)

	_, err := q.Enqueue(http.MethodPost, "/api/notes", json.RawMessage(`{"date":"2026-08-30","content":"x"}`))
	require.NoError(t, err)
	_, err = q.Enqueue(http.MethodPost, "/api/notes", json.RawMessage(`{"date":"2026-08-31","content":"y"}`))
	require.NoError(t, err)

	removed, err := q.RemoveMatching(func(op Operation) bool {
		var body struct {
			Date string `json:"date"`
		}
		return json.Unmarshal(op.Body, &body) == nil && body.Date == "2026-08-30"
	})
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	require.Equal(t, 1, q.Len())
}

func TestClear(t *testing.T) {
	q, kv := newQueue(t)

	_, err := q.Enqueue(http.MethodPost, "/api/notes", nil)
	require.NoError(t, err)
	require.NoError(t, q.Clear())
	assert.Zero(t, q.Len())

	// the persisted queue is gone too
	assert.Zero(t, Open(kv, "u1").Len())
}

// Every enqueued operation is accounted for after any sequence of drain
// passes: either replayed, still pending, or dropped with a spent budget.
func TestDrainRetentionProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		kv, err := storage.Open(t.TempDir())
		if err != nil {
			rt.Fatal(err)
		}
		q := Open(kv, "u1")

		n := rapid.IntRange(1, 8).Draw(rt, "ops")
		for i := 0; i < n; i++ {
			if _, err := q.Enqueue(http.MethodPost, fmt.Sprintf("/api/notes/%d", i), nil); err != nil {
				rt.Fatal(err)
			}
		}

		passes := rapid.IntRange(1, MaxRetries+2).Draw(rt, "passes")
		replayed, dropped := 0, 0
		for p := 0; p < passes; p++ {
			fail := rapid.Bool().Draw(rt, "fail")
			res, err := q.Drain(context.Background(), func(ctx context.Context, op Operation) error {
				if fail {
					return errors.New("down")
				}
				return nil
			})
			if err != nil {
				rt.Fatal(err)
			}
			replayed += res.Replayed
			dropped += len(res.Dropped)
		}

		if replayed+dropped+q.Len() != n {
			rt.Fatalf("accounting broke: %d replayed + %d dropped + %d pending != %d enqueued",
				replayed, dropped, q.Len(), n)
		}
		for _, op := range q.PeekAll() {
			if op.RetryCount >= MaxRetries {
				rt.Fatalf("operation outlived its retry budget: %+v", op)
			}
		}
	})
}
