// Package storage is the client-side durable key-value layer: one JSON file
// per key under the state directory, written atomically. Reads never fail to
// the caller; a corrupted or missing entry degrades to "not found".
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/rowenbonaobra23-codecode/WellWork/internal/pkg/atomicfile"
	"go.uber.org/zap"
)

var keyRe = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// Store persists JSON values under string keys.
type Store struct {
	dir    string
	logger *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for degradation warnings.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Open creates the state directory if needed.
func Open(dir string, opts ...Option) (*Store, error) {
	if dir == "" {
		return nil, errors.New("storage: state directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("storage: create state dir: %w", err)
	}
	s := &Store{dir: dir, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Dir returns the state directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(key string) (string, error) {
	if !keyRe.MatchString(key) {
		return "", fmt.Errorf("storage: invalid key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

// Put serializes v under key, durably.
func (s *Store) Put(key string, v interface{}) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: encode %s: %w", key, err)
	}
	if err := atomicfile.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("storage: persist %s: %w", key, err)
	}
	return nil
}

// Get deserializes key into v. Returns false when the entry is missing or
// unreadable; corruption is logged, never propagated.
func (s *Store) Get(key string, v interface{}) bool {
	path, err := s.path(key)
	if err != nil {
		s.logger.Warn("storage: bad key", zap.String("key", key), zap.Error(err))
		return false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("storage: read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Warn("storage: corrupted entry", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Delete removes the entry for key. Missing entries are a no-op.
func (s *Store) Delete(key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage: delete %s: %w", key, err)
	}
	return nil
}
