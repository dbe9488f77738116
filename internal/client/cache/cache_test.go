package cache

import (
	"testing"

	"github.com/rowenbonaobra23-codecode/WellWork/internal/client/api"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/client/storage"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func newCache(t *testing.T) *Cache {
	t.Helper()
	kv, err := storage.Open(t.TempDir())
	require.NoError(t, err)
	return New(kv)
}

func noteGen() *rapid.Generator[models.NoteModel] {
	return rapid.Custom(func(t *rapid.T) models.NoteModel {
		return models.NoteModel{
			ID:      rapid.StringMatching(`[a-z0-9-]{8,36}`).Draw(t, "id"),
			UserID:  "u1",
			Date:    rapid.StringMatching(`20[0-9]{2}-(0[1-9]|1[0-2])-(0[1-9]|2[0-8])`).Draw(t, "date"),
			Content: rapid.String().Draw(t, "content"),
		}
	})
}

func TestNotesRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		kv, err := storage.Open(t.TempDir())
		if err != nil {
			rt.Fatal(err)
		}
		c := New(kv)

		notes := rapid.SliceOfN(noteGen(), 0, 10).Draw(rt, "notes")
		if err := c.SaveNotes("u1", notes); err != nil {
			rt.Fatal(err)
		}

		got := c.LoadNotes("u1")
		if len(got) != len(notes) {
			rt.Fatalf("got %d notes, want %d", len(got), len(notes))
		}
		for i := range notes {
			if got[i].ID != notes[i].ID || got[i].Content != notes[i].Content {
				rt.Fatalf("note %d mismatch: %+v vs %+v", i, got[i], notes[i])
			}
		}
	})
}

func TestLoadNotesNeverNil(t *testing.T) {
	c := newCache(t)

	got := c.LoadNotes("nobody")
	require.NotNil(t, got)
	assert.Empty(t, got)

	require.NoError(t, c.SaveNotes("u1", nil))
	got = c.LoadNotes("u1")
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNotesNamespacedPerUser(t *testing.T) {
	c := newCache(t)

	require.NoError(t, c.SaveNotes("u1", []models.NoteModel{{ID: "a", UserID: "u1", Date: "2026-08-30"}}))
	require.NoError(t, c.SaveNotes("u2", []models.NoteModel{{ID: "b", UserID: "u2", Date: "2026-08-30"}}))

	assert.Equal(t, "a", c.LoadNotes("u1")[0].ID)
	assert.Equal(t, "b", c.LoadNotes("u2")[0].ID)

	require.NoError(t, c.ClearNotes("u1"))
	assert.Empty(t, c.LoadNotes("u1"))
	assert.Len(t, c.LoadNotes("u2"), 1)
}

func TestSessionRoundTrip(t *testing.T) {
	c := newCache(t)

	_, ok := c.LoadSession()
	assert.False(t, ok)

	sess := api.Session{Token: "tok-123", User: models.PublicUser{ID: "u1", Username: "alice"}}
	require.NoError(t, c.SaveSession(sess))

	got, ok := c.LoadSession()
	require.True(t, ok)
	assert.Equal(t, sess, got)

	require.NoError(t, c.ClearSession())
	_, ok = c.LoadSession()
	assert.False(t, ok)
}
