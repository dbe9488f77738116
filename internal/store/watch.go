package store

import (
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/pkg/atomicfile"
	"go.uber.org/zap"
)

// watcher reloads a collection when its backing file is rewritten by an
// external editor. Our own atomic writes also land here; reloading what we
// just wrote is harmless.
type watcher struct {
	fw   *fsnotify.Watcher
	done chan struct{}
}

func newWatcher(s *Store) (*watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(s.dir); err != nil {
		fw.Close()
		return nil, err
	}

	w := &watcher{fw: fw, done: make(chan struct{})}
	go w.run(s)
	return w, nil
}

func (w *watcher) run(s *Store) {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			name := filepath.Base(ev.Name)
			if strings.HasPrefix(name, atomicfile.TempPrefix) {
				continue
			}
			switch name {
			case usersFile, notesFile, sessionsFile:
				s.mu.Lock()
				s.loadCollectionLocked(name)
				s.mu.Unlock()
				s.logger.Debug("store: collection reloaded", zap.String("file", name))
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			s.logger.Warn("store: watch error", zap.Error(err))
		}
	}
}

func (w *watcher) close() error {
	close(w.done)
	return w.fw.Close()
}
