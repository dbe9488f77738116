package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutGetRoundTrip(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	require.NoError(t, s.Put("thing", payload{Name: "x", Count: 3}))

	var got payload
	require.True(t, s.Get("thing", &got))
	assert.Equal(t, payload{Name: "x", Count: 3}, got)
}

func TestGetMissingKey(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	var v map[string]string
	assert.False(t, s.Get("nope", &v))
}

func TestGetCorruptedEntry(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{truncated"), 0o600))

	var v map[string]string
	assert.False(t, s.Get("bad", &v), "corruption degrades to not-found")
}

func TestDelete(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Put("thing", 42))
	require.NoError(t, s.Delete("thing"))

	var v int
	assert.False(t, s.Get("thing", &v))

	assert.NoError(t, s.Delete("thing"), "double delete is a no-op")
}

func TestInvalidKeyRejected(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, s.Put("../escape", 1))
	assert.Error(t, s.Put("", 1))

	var v int
	assert.False(t, s.Get("../escape", &v))
}

func TestSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Put("thing", "durable"))

	s2, err := Open(dir)
	require.NoError(t, err)

	var v string
	require.True(t, s2.Get("thing", &v))
	assert.Equal(t, "durable", v)
}
