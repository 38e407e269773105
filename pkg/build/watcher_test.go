package build

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestWatcher_RequiresCallback(t *testing.T) {
	if _, err := NewWatcher(WatcherConfig{Path: t.TempDir()}, nil); err == nil {
		t.Error("NewWatcher(nil callback) succeeded, want error")
	}
}

func TestWatcher_MissingPath(t *testing.T) {
	_, err := NewWatcher(WatcherConfig{Path: "no/such/dir"}, func(string) {})
	if err == nil {
		t.Error("NewWatcher(missing path) succeeded, want error")
	}
}

func TestWatcher_DetectsGrammarChange(t *testing.T) {
	dir := t.TempDir()

	changed := make(chan string, 4)
	watcher, err := NewWatcher(WatcherConfig{
		Path:             dir,
		Extensions:       []string{".json"},
		DebounceInterval: 20 * time.Millisecond,
	}, func(path string) {
		changed <- path
	})
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	defer watcher.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watcher.Watch(ctx)

	// Let the event loop come up before writing.
	time.Sleep(50 * time.Millisecond)

	grammar := filepath.Join(dir, "words.json")
	if err := os.WriteFile(grammar, []byte(`{"name":"words","rules":{}}`), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	select {
	case path := <-changed:
		if path != grammar {
			t.Errorf("changed path = %q, want %q", path, grammar)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change callback")
	}
}

func TestWatcher_IgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()

	changed := make(chan string, 4)
	watcher, err := NewWatcher(WatcherConfig{
		Path:             dir,
		Extensions:       []string{".json"},
		DebounceInterval: 20 * time.Millisecond,
	}, func(path string) {
		changed <- path
	})
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	defer watcher.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watcher.Watch(ctx)
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	select {
	case path := <-changed:
		t.Errorf("callback fired for %q, want no callback for .txt", path)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestShouldProcess(t *testing.T) {
	dir := t.TempDir()
	w := &Watcher{
		path:       dir,
		extensions: map[string]bool{".json": true, ".yaml": true},
	}

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{
			"write to grammar",
			fsnotify.Event{Name: filepath.Join(dir, "g.json"), Op: fsnotify.Write},
			true,
		},
		{
			"create grammar",
			fsnotify.Event{Name: filepath.Join(dir, "g.yaml"), Op: fsnotify.Create},
			true,
		},
		{
			"chmod only",
			fsnotify.Event{Name: filepath.Join(dir, "g.json"), Op: fsnotify.Chmod},
			false,
		},
		{
			"remove",
			fsnotify.Event{Name: filepath.Join(dir, "g.json"), Op: fsnotify.Remove},
			false,
		},
		{
			"wrong extension",
			fsnotify.Event{Name: filepath.Join(dir, "g.go"), Op: fsnotify.Write},
			false,
		},
		{
			"hidden file",
			fsnotify.Event{Name: filepath.Join(dir, ".g.json"), Op: fsnotify.Write},
			false,
		},
		{
			"editor backup",
			fsnotify.Event{Name: filepath.Join(dir, "g.json~"), Op: fsnotify.Write},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.shouldProcess(tt.event); got != tt.want {
				t.Errorf("shouldProcess(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}
