package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches grammar description files and invokes a callback when
// one changes. Watching a directory covers every matching file in it,
// including files created after the watch started.
type Watcher struct {
	watcher    *fsnotify.Watcher
	path       string
	extensions map[string]bool
	interval   time.Duration
	onChange   func(path string)
	logger     *slog.Logger

	mu         sync.Mutex
	debouncers map[string]*Debouncer

	stopCh   chan struct{}
	stopOnce sync.Once
}

// WatcherConfig configures a file watcher. Path may name a single file
// or a directory. Extensions filters directory events; a file watch
// ignores it.
type WatcherConfig struct {
	Path             string
	Extensions       []string
	DebounceInterval time.Duration
	Logger           *slog.Logger
}

// NewWatcher creates a watcher for the given path. onChange runs once
// per changed file after the debounce interval of quiet.
func NewWatcher(cfg WatcherConfig, onChange func(path string)) (*Watcher, error) {
	if onChange == nil {
		return nil, fmt.Errorf("watcher requires an onChange callback")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	interval := cfg.DebounceInterval
	if interval <= 0 {
		interval = 200 * time.Millisecond
	}

	extensions := make(map[string]bool, len(cfg.Extensions))
	for _, ext := range cfg.Extensions {
		extensions[strings.ToLower(ext)] = true
	}

	w := &Watcher{
		watcher:    fsw,
		path:       cfg.Path,
		extensions: extensions,
		interval:   interval,
		onChange:   onChange,
		logger:     logger.With("component", "build.watcher"),
		debouncers: make(map[string]*Debouncer),
		stopCh:     make(chan struct{}),
	}

	if err := w.addPath(cfg.Path); err != nil {
		fsw.Close()
		return nil, err
	}

	return w, nil
}

// Watch runs the event loop until the context is cancelled or Stop is
// called.
func (w *Watcher) Watch(ctx context.Context) error {
	w.logger.Info("watching for grammar changes", "path", w.path)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-w.stopCh:
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

// Stop shuts the watcher down and cancels pending debounced callbacks.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.watcher.Close()

		w.mu.Lock()
		for _, d := range w.debouncers {
			d.Stop()
		}
		w.debouncers = nil
		w.mu.Unlock()
	})
}

// addPath registers a file or directory with the underlying watcher.
// For a single file the containing directory is watched instead, since
// editors replace files by rename and the new inode would otherwise be
// lost.
func (w *Watcher) addPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to access watch path %q: %w", path, err)
	}

	if info.IsDir() {
		return w.watcher.Add(path)
	}
	return w.watcher.Add(filepath.Dir(path))
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !w.shouldProcess(event) {
		return
	}

	w.logger.Debug("grammar file changed",
		"path", event.Name,
		"op", event.Op.String(),
	)

	path := event.Name
	w.debouncerFor(path).Trigger(func() {
		w.onChange(path)
	})
}

// shouldProcess filters events down to meaningful writes on files the
// watcher cares about.
func (w *Watcher) shouldProcess(event fsnotify.Event) bool {
	// Chmod-only events carry no content change.
	if event.Op == fsnotify.Chmod {
		return false
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}

	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}

	// When watching a single file, only events for that file matter.
	if !w.watchingDir() {
		return sameFile(event.Name, w.path)
	}

	if len(w.extensions) == 0 {
		return true
	}
	return w.extensions[strings.ToLower(filepath.Ext(event.Name))]
}

func (w *Watcher) watchingDir() bool {
	info, err := os.Stat(w.path)
	return err == nil && info.IsDir()
}

func (w *Watcher) debouncerFor(path string) *Debouncer {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debouncers == nil {
		// Stopped; hand back a throwaway that never fires.
		d := NewDebouncer(w.interval)
		d.Stop()
		return d
	}

	d, ok := w.debouncers[path]
	if !ok {
		d = NewDebouncer(w.interval)
		w.debouncers[path] = d
	}
	return d
}

func sameFile(a, b string) bool {
	aa, err := filepath.Abs(a)
	if err != nil {
		return a == b
	}
	bb, err := filepath.Abs(b)
	if err != nil {
		return a == b
	}
	return aa == bb
}
