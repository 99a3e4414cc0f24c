// Package watch recounts a file's selection every time the file changes,
// standing in for an editor's selection-change notifications.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hexcount-dev/hexcount/internal/config"
	"github.com/hexcount-dev/hexcount/internal/selection"
	"github.com/hexcount-dev/hexcount/internal/status"
)

// Update is emitted after the watched file settles.
type Update struct {
	Path      string        `json:"path"`
	Status    status.Status `json:"status"`
	Removed   bool          `json:"removed,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// Watcher watches a single file and emits its status on change.
type Watcher struct {
	path      string
	sel       selection.Selection
	formatter status.Formatter
	config    config.WatcherConfig
	logger    *slog.Logger
	fsWatcher *fsnotify.Watcher
	updates   chan Update
	errors    chan error
	pending   *time.Timer
	pendingMu sync.Mutex
	done      chan struct{}
	started   bool
	stopped   bool
	stoppedMu sync.Mutex
	ctx       context.Context
	cancel    context.CancelFunc
}

// New creates a watcher for path. The file itself may not exist yet, but its
// directory must.
func New(path string, sel selection.Selection, formatter status.Formatter, cfg config.WatcherConfig, logger *slog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(filepath.Dir(abs))
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, os.ErrNotExist
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		path:      abs,
		sel:       sel,
		formatter: formatter,
		config:    cfg,
		logger:    logger,
		fsWatcher: fsWatcher,
		updates:   make(chan Update, 16),
		errors:    make(chan error, 10),
		done:      make(chan struct{}),
	}, nil
}

// Start emits the current status and begins watching for changes.
// The parent directory is watched so that editors that save by renaming a
// temp file over the original are still seen.
func (w *Watcher) Start(ctx context.Context) error {
	w.stoppedMu.Lock()
	if w.stopped {
		w.stoppedMu.Unlock()
		return fmt.Errorf("watcher for %s already stopped", w.path)
	}
	w.started = true
	w.stoppedMu.Unlock()

	w.ctx, w.cancel = context.WithCancel(ctx)

	if err := w.fsWatcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}

	w.emit(w.refresh())

	go w.processEvents()
	return nil
}

func (w *Watcher) processEvents() {
	defer close(w.done)

	for {
		select {
		case <-w.ctx.Done():
			w.cancelPending()
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			w.logger.Debug("file event", "path", event.Name, "op", event.Op.String())
			w.debounce()

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.reportError(err)
		}
	}
}

// debounce restarts the settle timer; only the last event in a burst recounts.
func (w *Watcher) debounce() {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(w.config.DebounceDuration(), func() {
		w.pendingMu.Lock()
		w.pending = nil
		w.pendingMu.Unlock()

		w.emit(w.refresh())
	})
}

// refresh reads the file and recomputes its status.
func (w *Watcher) refresh() Update {
	update := Update{Path: w.path, Status: status.Hidden, Timestamp: time.Now()}

	info, err := os.Stat(w.path)
	if os.IsNotExist(err) {
		update.Removed = true
		return update
	}
	if err != nil {
		w.reportError(err)
		return update
	}
	if w.config.MaxFileSize > 0 && info.Size() > w.config.MaxFileSize {
		w.reportError(fmt.Errorf("%s is %d bytes, over the %d byte limit", w.path, info.Size(), w.config.MaxFileSize))
		return update
	}

	content, err := os.ReadFile(w.path)
	if err != nil {
		w.reportError(err)
		return update
	}

	update.Status = w.formatter.ForSelection(w.sel.Extract(content))
	return update
}

func (w *Watcher) emit(update Update) {
	select {
	case w.updates <- update:
	case <-w.ctx.Done():
	}
}

func (w *Watcher) reportError(err error) {
	w.logger.Warn("watch error", "path", w.path, "error", err)
	select {
	case w.errors <- err:
	default:
		// Drop error if channel is full
	}
}

func (w *Watcher) cancelPending() {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	if w.pending != nil {
		w.pending.Stop()
		w.pending = nil
	}
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Updates returns a receive-only channel of status updates
func (w *Watcher) Updates() <-chan Update {
	return w.updates
}

// Errors returns a receive-only channel for errors
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Done returns a channel that is closed when the watcher stops
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

// Stop stops the watcher and releases the fsnotify handle. It is safe to call
// more than once.
func (w *Watcher) Stop() error {
	w.stoppedMu.Lock()
	if w.stopped {
		w.stoppedMu.Unlock()
		return nil
	}
	w.stopped = true
	started := w.started
	w.stoppedMu.Unlock()

	if !started {
		close(w.done)
		return w.fsWatcher.Close()
	}

	w.cancel()

	if err := w.fsWatcher.Close(); err != nil {
		return err
	}

	select {
	case <-w.done:
	case <-time.After(time.Second):
	}

	return nil
}
