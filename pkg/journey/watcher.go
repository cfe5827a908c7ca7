package journey

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// TableWatcher watches the limitations YAML file and reloads the table when
// the file changes. Editors often emit bursts of write events, so reloads
// are debounced.
type TableWatcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	path     string
	table    *LimitationsTable
	debounce *debouncer

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// DefaultDebounceInterval is the quiet period before a reload fires.
const DefaultDebounceInterval = 100 * time.Millisecond

// NewTableWatcher creates a watcher for the given limitations file. The
// parent directory is watched rather than the file itself, so atomic
// rename-into-place saves are still observed.
func NewTableWatcher(path string, table *LimitationsTable, logger *slog.Logger) (*TableWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &TableWatcher{
		watcher:  watcher,
		logger:   logger,
		path:     path,
		table:    table,
		debounce: newDebouncer(DefaultDebounceInterval),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Watch blocks processing file events until the context is cancelled or
// Stop is called. Reload failures are logged and the previous table
// contents stay in effect.
func (tw *TableWatcher) Watch(ctx context.Context) error {
	tw.mu.Lock()
	if tw.running {
		tw.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	tw.running = true
	tw.mu.Unlock()

	defer func() {
		tw.mu.Lock()
		tw.running = false
		tw.mu.Unlock()
		close(tw.doneCh)
	}()

	if err := tw.watcher.Add(filepath.Dir(tw.path)); err != nil {
		return fmt.Errorf("failed to watch %q: %w", filepath.Dir(tw.path), err)
	}

	tw.logger.Info("Limitations watcher started",
		"path", tw.path,
		"debounce_ms", DefaultDebounceInterval.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			tw.logger.Info("Limitations watcher stopped (context cancelled)")
			return nil

		case <-tw.stopCh:
			tw.logger.Info("Limitations watcher stopped")
			return nil

		case event, ok := <-tw.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if !tw.shouldProcessEvent(event) {
				continue
			}

			tw.logger.Debug("File event detected",
				"path", event.Name,
				"op", event.Op.String(),
			)

			tw.debounce.trigger(func() {
				tw.logger.Info("Reloading limitations table", "path", tw.path)

				if err := tw.table.LoadFile(tw.path); err != nil {
					tw.logger.Error("Limitations reload failed", "error", err)
				}
			})

		case err, ok := <-tw.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}

			tw.logger.Error("Limitations watcher error", "error", err)
			// Continue watching despite errors
		}
	}
}

// Stop stops the watcher and waits for the event loop to exit.
func (tw *TableWatcher) Stop() error {
	tw.mu.Lock()
	if !tw.running {
		tw.mu.Unlock()
		return nil
	}
	tw.mu.Unlock()

	close(tw.stopCh)
	<-tw.doneCh

	tw.debounce.stop()

	if err := tw.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}

	return nil
}

func (tw *TableWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&fsnotify.Chmod == fsnotify.Chmod {
		return false
	}
	// Only react to the watched file within its directory.
	return filepath.Clean(event.Name) == filepath.Clean(tw.path)
}

// debouncer collects rapid events and fires the callback only after a
// quiet period.
type debouncer struct {
	interval time.Duration
	timer    *time.Timer
	mu       sync.Mutex
	callback func()
	stopCh   chan struct{}
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

func (d *debouncer) trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.callback = callback

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.interval, func() {
		select {
		case <-d.stopCh:
			return
		default:
			d.mu.Lock()
			cb := d.callback
			d.mu.Unlock()

			if cb != nil {
				cb()
			}
		}
	})
}

func (d *debouncer) stop() {
	close(d.stopCh)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.callback = nil
}
