// Package cache keeps the last-known note set and login session on disk so
// the app works across restarts without the server. Pure write-through; no
// eviction.
package cache

import (
	"github.com/rowenbonaobra23-codecode/WellWork/internal/client/api"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/client/storage"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/models"
)

const sessionKey = "session"

// Cache is the persistent client cache, namespaced per user for notes.
type Cache struct {
	kv *storage.Store
}

// New wraps a storage store.
func New(kv *storage.Store) *Cache {
	return &Cache{kv: kv}
}

func notesKey(userID string) string { return "notes-" + userID }

// SaveNotes replaces the cached note set for one user.
func (c *Cache) SaveNotes(userID string, notes []models.NoteModel) error {
	if notes == nil {
		notes = []models.NoteModel{}
	}
	return c.kv.Put(notesKey(userID), notes)
}

// LoadNotes returns the cached note set. Missing or corrupted entries come
// back as an empty slice, never an error.
func (c *Cache) LoadNotes(userID string) []models.NoteModel {
	var notes []models.NoteModel
	if !c.kv.Get(notesKey(userID), &notes) || notes == nil {
		return []models.NoteModel{}
	}
	return notes
}

// ClearNotes drops the cached note set for one user.
func (c *Cache) ClearNotes(userID string) error {
	return c.kv.Delete(notesKey(userID))
}

// SaveSession persists the login session across restarts.
func (c *Cache) SaveSession(sess api.Session) error {
	return c.kv.Put(sessionKey, sess)
}

// LoadSession returns the persisted session, if any.
func (c *Cache) LoadSession() (api.Session, bool) {
	var sess api.Session
	if !c.kv.Get(sessionKey, &sess) || sess.Token == "" {
		return api.Session{}, false
	}
	return sess, true
}

// ClearSession removes the persisted session (logout).
func (c *Cache) ClearSession() error {
	return c.kv.Delete(sessionKey)
}
