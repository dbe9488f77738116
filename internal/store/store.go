// Package store is the file-based JSON persistence layer. Each collection
// lives in its own JSON file under the data directory; all reads are served
// from memory and every mutation is flushed back with an atomic
// write-then-rename.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rowenbonaobra23-codecode/WellWork/internal/models"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/pkg/atomicfile"
	"go.uber.org/zap"
)

const (
	usersFile    = "users.json"
	notesFile    = "notes.json"
	sessionsFile = "sessions.json"
)

// Store holds the in-memory state of all collections and keeps the backing
// files in sync. Safe for concurrent use.
type Store struct {
	dir    string
	logger *zap.Logger

	mu       sync.RWMutex
	users    []models.UserModel
	notes    []models.NoteModel
	sessions []models.UserSession

	watch *watcher
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load warnings and watch events.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Open loads (or creates) the data directory and all collections. Corrupted
// or missing collection files load as empty; they are not fatal.
func Open(dir string, opts ...Option) (*Store, error) {
	if dir == "" {
		return nil, errors.New("store: data directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create data dir: %w", err)
	}

	s := &Store{dir: dir, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	s.mu.Lock()
	s.loadAllLocked()
	s.mu.Unlock()

	w, err := newWatcher(s)
	if err != nil {
		s.logger.Warn("store: file watch unavailable", zap.Error(err))
	} else {
		s.watch = w
	}
	return s, nil
}

// Close stops the directory watcher. In-memory state is already durable.
func (s *Store) Close() error {
	if s.watch != nil {
		return s.watch.close()
	}
	return nil
}

// Dir returns the data directory backing this store.
func (s *Store) Dir() string { return s.dir }

func (s *Store) loadAllLocked() {
	s.loadCollectionLocked(usersFile)
	s.loadCollectionLocked(notesFile)
	s.loadCollectionLocked(sessionsFile)
}

// loadCollectionLocked re-reads one collection file into memory. The caller
// must hold s.mu for writing.
func (s *Store) loadCollectionLocked(name string) {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("store: read collection", zap.String("file", name), zap.Error(err))
		}
		s.resetCollectionLocked(name)
		return
	}

	var decodeErr error
	switch name {
	case usersFile:
		var v []models.UserModel
		if decodeErr = json.Unmarshal(data, &v); decodeErr == nil {
			s.users = v
		}
	case notesFile:
		var v []models.NoteModel
		if decodeErr = json.Unmarshal(data, &v); decodeErr == nil {
			s.notes = v
		}
	case sessionsFile:
		var v []models.UserSession
		if decodeErr = json.Unmarshal(data, &v); decodeErr == nil {
			s.sessions = v
		}
	}
	if decodeErr != nil {
		s.logger.Warn("store: corrupted collection, starting empty",
			zap.String("file", name), zap.Error(decodeErr))
		s.resetCollectionLocked(name)
	}
}

func (s *Store) resetCollectionLocked(name string) {
	switch name {
	case usersFile:
		s.users = nil
	case notesFile:
		s.notes = nil
	case sessionsFile:
		s.sessions = nil
	}
}

// persistLocked flushes one collection. The caller must hold s.mu.
func (s *Store) persistLocked(name string) error {
	var v interface{}
	switch name {
	case usersFile:
		v = s.users
	case notesFile:
		v = s.notes
	case sessionsFile:
		v = s.sessions
	default:
		return fmt.Errorf("store: unknown collection %q", name)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", name, err)
	}
	if err := atomicfile.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("store: persist %s: %w", name, err)
	}
	return nil
}

// Backup copies every collection file into dstDir, timestamped.
func (s *Store) Backup(dstDir string) error {
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("store: create backup dir: %w", err)
	}
	stamp := time.Now().Format("20060102-150405")
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, name := range []string{usersFile, notesFile, sessionsFile} {
		src := filepath.Join(s.dir, name)
		if _, err := os.Stat(src); errors.Is(err, os.ErrNotExist) {
			continue
		}
		dst := filepath.Join(dstDir, stamp+"-"+name)
		if err := copyFile(src, dst); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
