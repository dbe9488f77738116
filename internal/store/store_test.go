package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCreateUserAndLookup(t *testing.T) {
	s := openTestStore(t)

	u, err := s.CreateUser("alice", "hash")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)

	got, ok := s.UserByName("ALICE")
	require.True(t, ok, "lookup should be case-insensitive")
	assert.Equal(t, u.ID, got.ID)

	got, ok = s.UserByID(u.ID)
	require.True(t, ok)
	assert.Equal(t, "alice", got.Username)

	_, ok = s.UserByName("bob")
	assert.False(t, ok)
}

func TestCreateUserDuplicate(t *testing.T) {
	s := openTestStore(t)

	_, err := s.CreateUser("alice", "hash")
	require.NoError(t, err)

	_, err = s.CreateUser("Alice", "other")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestUpsertNoteOnePerDay(t *testing.T) {
	s := openTestStore(t)

	first, err := s.UpsertNote("u1", "2026-08-30", "morning")
	require.NoError(t, err)

	second, err := s.UpsertNote("u1", "2026-08-30", "evening")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "same day must replace, not append")
	assert.Equal(t, "evening", second.Content)

	notes := s.NotesByUser("u1")
	require.Len(t, notes, 1)
	assert.Equal(t, "evening", notes[0].Content)
}

func TestNotesByUserSortedAndScoped(t *testing.T) {
	s := openTestStore(t)

	_, err := s.UpsertNote("u1", "2026-08-28", "a")
	require.NoError(t, err)
	_, err = s.UpsertNote("u1", "2026-08-30", "b")
	require.NoError(t, err)
	_, err = s.UpsertNote("u2", "2026-08-29", "other user")
	require.NoError(t, err)

	notes := s.NotesByUser("u1")
	require.Len(t, notes, 2)
	assert.Equal(t, "2026-08-30", notes[0].Date)
	assert.Equal(t, "2026-08-28", notes[1].Date)
}

func TestUpdateAndDeleteNote(t *testing.T) {
	s := openTestStore(t)

	n, err := s.UpsertNote("u1", "2026-08-30", "draft")
	require.NoError(t, err)

	updated, found, err := s.UpdateNote("u1", n.ID, "final")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "final", updated.Content)

	_, found, err = s.UpdateNote("u2", n.ID, "x")
	require.NoError(t, err)
	assert.False(t, found, "notes are scoped to their owner")

	found, err = s.DeleteNote("u1", n.ID)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = s.DeleteNote("u1", n.ID)
	require.NoError(t, err)
	assert.False(t, found, "second delete is a no-op")
	assert.Empty(t, s.NotesByUser("u1"))
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)
	u, err := s.CreateUser("alice", "hash")
	require.NoError(t, err)
	_, err = s.UpsertNote(u.ID, "2026-08-30", "persisted")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s2, err := Open(dir)
	require.NoError(t, err)
	defer s2.Close()

	_, ok := s2.UserByName("alice")
	assert.True(t, ok)
	notes := s2.NotesByUser(u.ID)
	require.Len(t, notes, 1)
	assert.Equal(t, "persisted", notes[0].Content)
}

func TestCorruptedCollectionLoadsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.json"), []byte("{not json"), 0o644))

	s, err := Open(dir)
	require.NoError(t, err, "corruption must not be fatal")
	defer s.Close()

	assert.Empty(t, s.NotesByUser("u1"))

	// the store still accepts writes afterwards
	_, err = s.UpsertNote("u1", "2026-08-30", "fresh start")
	require.NoError(t, err)
}

func TestSessionLifecycle(t *testing.T) {
	s := openTestStore(t)

	sess, err := s.CreateSession("u1", time.Hour)
	require.NoError(t, err)

	assert.True(t, s.SessionActive("u1", sess.ID))
	assert.False(t, s.SessionActive("u2", sess.ID), "session is bound to its user")
	assert.True(t, s.SessionActive("u1", ""), "legacy tokens carry no session id")

	require.NoError(t, s.RevokeSession("u1", sess.ID))
	assert.False(t, s.SessionActive("u1", sess.ID))
}

func TestPruneSessions(t *testing.T) {
	s := openTestStore(t)

	expired, err := s.CreateSession("u1", time.Millisecond)
	require.NoError(t, err)
	live, err := s.CreateSession("u1", time.Hour)
	require.NoError(t, err)

	removed, err := s.PruneSessions(time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.True(t, s.SessionActive("u1", live.ID))
	assert.False(t, s.SessionActive("u1", expired.ID))
}

func TestPruneSessionsKeepsStateWhenPersistFails(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	s, err := Open(dir)
	require.NoError(t, err)

	_, err = s.CreateSession("u1", time.Millisecond)
	require.NoError(t, err)
	_, err = s.CreateSession("u1", time.Hour)
	require.NoError(t, err)

	// yank the data directory out from under the store so the flush fails
	require.NoError(t, s.Close())
	require.NoError(t, os.RemoveAll(dir))

	_, err = s.PruneSessions(time.Now().Add(time.Minute))
	require.Error(t, err)

	s.mu.RLock()
	n := len(s.sessions)
	s.mu.RUnlock()
	assert.Equal(t, 2, n, "a failed flush must leave the in-memory sessions untouched")
}

func TestBackupCopiesCollections(t *testing.T) {
	s := openTestStore(t)
	_, err := s.UpsertNote("u1", "2026-08-30", "keep me")
	require.NoError(t, err)

	dst := t.TempDir()
	require.NoError(t, s.Backup(dst))

	entries, err := os.ReadDir(dst)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}
