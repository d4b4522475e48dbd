package backend

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/atomicstack/navmenu/internal/content"
)

func nextEvent(t *testing.T, w *Watcher, timeout time.Duration) Event {
	t.Helper()
	select {
	case evt, ok := <-w.Events():
		if !ok {
			t.Fatalf("events channel closed")
		}
		return evt
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for watcher event")
	}
	return Event{}
}

func TestWatcherScansOnWatch(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	w, err := NewWatcher(content.Options{}, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer func() {
		w.Stop()
		w.Wait()
	}()

	if err := w.Watch(dir); err != nil {
		t.Fatalf("watch: %v", err)
	}
	evt := nextEvent(t, w, 2*time.Second)
	if evt.Err != nil {
		t.Fatalf("unexpected error: %v", evt.Err)
	}
	snap, ok := evt.Data.(content.Snapshot)
	if !ok {
		t.Fatalf("expected snapshot, got %T", evt.Data)
	}
	if len(snap.Entries) != 1 || snap.Entries[0].Name != "a.txt" {
		t.Fatalf("unexpected entries %#v", snap.Entries)
	}
	if w.Watched() != 1 {
		t.Fatalf("expected one watched dir, got %d", w.Watched())
	}
}

func TestWatcherRescansAfterChange(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(content.Options{}, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer func() {
		w.Stop()
		w.Wait()
	}()
	if err := w.Watch(dir); err != nil {
		t.Fatalf("watch: %v", err)
	}
	nextEvent(t, w, 2*time.Second)

	if err := os.WriteFile(filepath.Join(dir, "new.bin"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		evt := nextEvent(t, w, 3*time.Second)
		snap, _ := evt.Data.(content.Snapshot)
		if len(snap.Entries) == 1 && snap.Entries[0].Name == "new.bin" {
			return
		}
	}
	t.Fatalf("expected a snapshot containing new.bin")
}

func TestWatcherUnwatch(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(content.Options{}, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer func() {
		w.Stop()
		w.Wait()
	}()
	if err := w.Watch(dir); err != nil {
		t.Fatalf("watch: %v", err)
	}
	w.Unwatch(dir)
	w.Unwatch(filepath.Join(dir, "unknown"))
	if w.Watched() != 0 {
		t.Fatalf("expected no watched dirs, got %d", w.Watched())
	}
}

func TestWatcherWatchMissingDirectory(t *testing.T) {
	w, err := NewWatcher(content.Options{}, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer func() {
		w.Stop()
		w.Wait()
	}()
	if err := w.Watch(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected error watching a missing directory")
	}
}

func TestThrottleSpacesCalls(t *testing.T) {
	th := newThrottle(30 * time.Millisecond)
	start := time.Now()
	th.wait()
	th.wait()
	th.wait()
	if elapsed := time.Since(start); elapsed < 55*time.Millisecond {
		t.Fatalf("expected throttled calls to take at least 60ms, took %v", elapsed)
	}
	var nilThrottle *throttle
	nilThrottle.wait()
}
