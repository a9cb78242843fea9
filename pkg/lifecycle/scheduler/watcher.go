package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// configWatchDebounce coalesces the event bursts editors and config
// management tools produce for a single save.
const configWatchDebounce = 500 * time.Millisecond

// ConfigWatcher watches the configuration file and invokes a reload
// callback when it changes. The parent directory is watched rather than
// the file itself so atomic replace-by-rename saves are seen.
type ConfigWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onChange func() error
	logger   *slog.Logger

	mu    sync.Mutex
	timer *time.Timer
}

// NewConfigWatcher creates a watcher for the config file at path. onChange
// runs after changes settle; its error is logged, not fatal, so a bad
// reload never takes the daemon down.
func NewConfigWatcher(path string, onChange func() error) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch config directory: %w", err)
	}

	return &ConfigWatcher{
		path:     path,
		watcher:  watcher,
		onChange: onChange,
		logger:   slog.Default().With("component", "lifecycle.configwatcher"),
	}, nil
}

// Watch processes file events until the context is cancelled.
func (w *ConfigWatcher) Watch(ctx context.Context) {
	w.logger.Info("watching config file for changes", "path", w.path)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("config watcher error", "error", err)
		}
	}
}

// handleEvent schedules a debounced reload for events touching the config
// file.
func (w *ConfigWatcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != filepath.Clean(w.path) {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(configWatchDebounce, w.reload)
}

func (w *ConfigWatcher) reload() {
	w.logger.Info("config file changed, reloading", "path", w.path)

	if err := w.onChange(); err != nil {
		w.logger.Error("config reload failed, keeping previous config",
			"path", w.path,
			"error", err,
		)
		return
	}

	w.logger.Info("config reloaded")
}

// Close stops watching and releases watcher resources.
func (w *ConfigWatcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	return w.watcher.Close()
}
