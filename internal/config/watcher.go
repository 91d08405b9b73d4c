package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher calls onChange when a single file is written, created,
// renamed or removed. Bursts of events are collapsed into one call.
//
// The parent directory is watched rather than the file itself, so editors
// that save by rename-and-replace keep triggering events.
type FileWatcher struct {
	path     string
	debounce time.Duration
	logger   *slog.Logger
}

// NewFileWatcher creates a watcher for path. A zero debounce fires
// immediately on every event.
func NewFileWatcher(path string, debounce time.Duration, logger *slog.Logger) *FileWatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileWatcher{
		path:     filepath.Clean(path),
		debounce: debounce,
		logger:   logger.With("component", "config.watcher"),
	}
}

// Watch blocks until ctx is cancelled or the underlying watcher fails.
func (fw *FileWatcher) Watch(ctx context.Context, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	defer w.Close()

	dir := filepath.Dir(fw.path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	fw.logger.Info("file watcher started", "path", fw.path, "debounce", fw.debounce)

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	fire := func() {
		if fw.debounce <= 0 {
			onChange()
			return
		}
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(fw.debounce, func() {
			if ctx.Err() == nil {
				onChange()
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			fw.logger.Info("file watcher stopped")
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if filepath.Clean(event.Name) != fw.path || event.Op == fsnotify.Chmod {
				continue
			}
			fw.logger.Debug("file event", "path", event.Name, "op", event.Op.String())
			fire()

		case err, ok := <-w.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			fw.logger.Error("file watcher error", "error", err)
		}
	}
}
