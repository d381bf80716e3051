package fs

import (
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	"github.com/notyesbut/NitroGen/internal/ports"
)

// StopFile implements ports.StopSignal. It watches the stop-file's parent
// directory with fsnotify and latches a flag when the file appears.
// Triggered also stats the path directly, so a missed event never masks a
// stop request; the loop polls it once per tick.
type StopFile struct {
	path      string
	watcher   *fsnotify.Watcher
	triggered atomic.Bool
	done      chan struct{}
	logger    ports.Logger
}

// NewStopFile starts watching for the given path. The file may or may not
// exist yet; if it already exists the signal is triggered immediately.
func NewStopFile(path string, logger ports.Logger) (*StopFile, error) {
	s := &StopFile{
		path:   filepath.Clean(path),
		done:   make(chan struct{}),
		logger: logger,
	}

	if _, err := os.Stat(s.path); err == nil {
		s.triggered.Store(true)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		// Degraded: no watcher, Triggered falls back to stat alone.
		logger.Warn("stop-file watcher unavailable, polling only", ports.Err(err))
		return s, nil
	}
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		logger.Warn("stop-file watch failed, polling only",
			ports.String("path", s.path), ports.Err(err))
		return s, nil
	}

	s.watcher = watcher
	go s.watch()
	return s, nil
}

func (s *StopFile) watch() {
	for {
		select {
		case <-s.done:
			return
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != s.path {
				continue
			}
			if ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Write) {
				s.logger.Info("stop file detected", ports.String("path", s.path))
				s.triggered.Store(true)
			}
		case _, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// Triggered reports whether the stop file exists.
func (s *StopFile) Triggered() bool {
	if s.triggered.Load() {
		return true
	}
	if _, err := os.Stat(s.path); err == nil {
		s.triggered.Store(true)
		return true
	}
	return false
}

// Close stops the watcher. It does not remove the stop file.
func (s *StopFile) Close() error {
	close(s.done)
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}
