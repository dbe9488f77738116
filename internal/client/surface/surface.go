// Package surface is the user-facing read/write path for notes. Reads
// consult cache or network depending on connectivity; writes go to the
// network first and degrade to an optimistic local mutation plus a queued
// replay when the server is unreachable.
package surface

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/client/api"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/client/cache"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/client/queue"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/client/syncer"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/models"
	"go.uber.org/zap"
)

// Surface mediates between the UI, the cache, the queue and the server.
type Surface struct {
	api    *api.Client
	cache  *cache.Cache
	q      *queue.Queue
	sync   *syncer.Syncer
	userID string
	logger *zap.Logger
}

// Option configures a Surface.
type Option func(*Surface)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Surface) {
		if l != nil {
			s.logger = l
		}
	}
}

// New wires the editing surface for one user.
func New(apiClient *api.Client, c *cache.Cache, q *queue.Queue, sy *syncer.Syncer, userID string, opts ...Option) *Surface {
	s := &Surface{
		api:    apiClient,
		cache:  c,
		q:      q,
		sync:   sy,
		userID: userID,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Notes returns the note list: cache when degraded, otherwise the server
// with a cache fallback on connectivity failure. Successful fetches are
// written through to the cache.
func (s *Surface) Notes(ctx context.Context) ([]models.NoteModel, error) {
	if s.sync.State() == syncer.StateDegraded {
		return s.cache.LoadNotes(s.userID), nil
	}

	notes, err := s.api.ListNotes(ctx)
	if err == nil {
		if cerr := s.cache.SaveNotes(s.userID, notes); cerr != nil {
			s.logger.Warn("cache write-through failed", zap.Error(cerr))
		}
		return notes, nil
	}
	if api.IsConnectivity(err) {
		s.logger.Info("note fetch unreachable, serving cache", zap.Error(err))
		return s.cache.LoadNotes(s.userID), nil
	}
	return nil, err
}

// Save upserts the note for one calendar day. queued reports whether the
// change only happened locally and awaits reconciliation.
func (s *Surface) Save(ctx context.Context, date, content string) (notes []models.NoteModel, queued bool, err error) {
	list, err := s.api.UpsertNote(ctx, date, content)
	if err == nil {
		if cerr := s.cache.SaveNotes(s.userID, list); cerr != nil {
			s.logger.Warn("cache write-through failed", zap.Error(cerr))
		}
		return list, false, nil
	}
	if !api.IsConnectivity(err) {
		// The server answered and said no; an optimistic local copy would
		// never converge.
		return nil, false, err
	}

	now := time.Now()
	local := s.cache.LoadNotes(s.userID)
	updated := false
	for i, n := range local {
		if n.Date == date {
			local[i].Content = content
			local[i].UpdatedAt = now
			updated = true
			break
		}
	}
	if !updated {
		local = append(local, models.NoteModel{
			ID:        models.TempIDPrefix + uuid.New().String(),
			UserID:    s.userID,
			Date:      date,
			Content:   content,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	if cerr := s.cache.SaveNotes(s.userID, local); cerr != nil {
		return nil, false, cerr
	}

	// One queued upsert per date is enough; the latest content wins.
	if _, err := s.q.RemoveMatching(matchUpsert(date)); err != nil {
		s.logger.Warn("queue dedup failed", zap.Error(err))
	}
	body, _ := json.Marshal(map[string]string{"date": date, "content": content})
	if _, qerr := s.q.Enqueue(http.MethodPost, "/api/notes", body); qerr != nil {
		return nil, false, qerr
	}
	return local, true, nil
}

// Delete removes one note by id, locally when the server is unreachable.
func (s *Surface) Delete(ctx context.Context, id string) (notes []models.NoteModel, queued bool, err error) {
	list, err := s.api.DeleteNote(ctx, id)
	if err == nil {
		if cerr := s.cache.SaveNotes(s.userID, list); cerr != nil {
			s.logger.Warn("cache write-through failed", zap.Error(cerr))
		}
		return list, false, nil
	}
	if !api.IsConnectivity(err) {
		return nil, false, err
	}

	local := s.cache.LoadNotes(s.userID)
	var removed *models.NoteModel
	kept := local[:0]
	for _, n := range local {
		if n.ID == id {
			nn := n
			removed = &nn
			continue
		}
		kept = append(kept, n)
	}
	if removed == nil {
		return local, false, nil
	}
	if cerr := s.cache.SaveNotes(s.userID, kept); cerr != nil {
		return nil, false, cerr
	}

	if removed.IsTemp() {
		// The server never saw this note; cancelling its queued create is
		// the whole delete.
		if _, err := s.q.RemoveMatching(matchUpsert(removed.Date)); err != nil {
			s.logger.Warn("queue dedup failed", zap.Error(err))
		}
		return kept, true, nil
	}
	if _, qerr := s.q.Enqueue(http.MethodDelete, "/api/notes/"+id, nil); qerr != nil {
		return nil, false, qerr
	}
	return kept, true, nil
}

// matchUpsert selects queued note upserts for one calendar day.
func matchUpsert(date string) func(queue.Operation) bool {
	return func(op queue.Operation) bool {
		if op.Method != http.MethodPost || op.Path != "/api/notes" {
			return false
		}
		var body struct {
			Date string `json:"date"`
		}
		if json.Unmarshal(op.Body, &body) != nil {
			return false
		}
		return body.Date == date
	}
}
