package backend

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/atomicstack/navmenu/internal/content"
	"github.com/atomicstack/navmenu/internal/logging/events"
	"github.com/fsnotify/fsnotify"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindContent Kind = iota
)

// Event conveys updated data or an error from a directory rescan. Data holds
// a content.Snapshot; on error the snapshot only carries Dir.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// Watcher watches the directories shown by the menu and publishes a fresh
// snapshot whenever one of them changes.
type Watcher struct {
	opts     content.Options
	debounce time.Duration
	throttle *throttle

	fs *fsnotify.Watcher

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	watched map[string]bool

	requests chan string
	events   chan Event
	wg       sync.WaitGroup
}

// NewWatcher creates a watcher. Bursts of filesystem events are coalesced for
// debounce before the affected directories are rescanned.
func NewWatcher(opts content.Options, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		opts:     opts,
		debounce: debounce,
		throttle: newThrottle(100 * time.Millisecond),
		fs:       fsw,
		ctx:      ctx,
		cancel:   cancel,
		watched:  make(map[string]bool),
		requests: make(chan string, 8),
		events:   make(chan Event, 16),
	}

	w.wg.Add(1)
	go w.run()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w, nil
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Watch starts watching dir and queues an immediate scan of it.
func (w *Watcher) Watch(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", dir, err)
	}
	w.mu.Lock()
	already := w.watched[abs]
	if !already {
		if err := w.fs.Add(abs); err != nil {
			w.mu.Unlock()
			return fmt.Errorf("watch %s: %w", abs, err)
		}
		w.watched[abs] = true
	}
	w.mu.Unlock()
	if !already {
		events.Content.Watch(abs)
	}
	select {
	case <-w.ctx.Done():
	case w.requests <- abs:
	}
	return nil
}

// Unwatch stops watching dir. Unknown directories are ignored.
func (w *Watcher) Unwatch(dir string) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.watched[abs] {
		return
	}
	delete(w.watched, abs)
	_ = w.fs.Remove(abs)
}

// Watched returns the number of directories currently watched.
func (w *Watcher) Watched() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.watched)
}

// Stop cancels the watcher and releases the fsnotify handle. Use Wait if a
// clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
	_ = w.fs.Close()
}

// Wait blocks until the watcher goroutine has exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) run() {
	defer w.wg.Done()

	dirty := make(map[string]struct{})
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case dir := <-w.requests:
			delete(dirty, dir)
			if !w.rescan(dir) {
				return
			}
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			dir, watched := w.owner(ev.Name)
			if !watched {
				continue
			}
			events.Content.Change(dir, ev.Op.String())
			dirty[dir] = struct{}{}
			timer.Reset(w.debounce)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			if !w.emit(Event{Kind: KindContent, Err: fmt.Errorf("watch: %w", err)}) {
				return
			}
		case <-timer.C:
			for dir := range dirty {
				delete(dirty, dir)
				if !w.rescan(dir) {
					return
				}
			}
		}
	}
}

// owner maps an fsnotify path to the watched directory it belongs to.
func (w *Watcher) owner(name string) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watched[name] {
		return name, true
	}
	parent := filepath.Dir(name)
	if w.watched[parent] {
		return parent, true
	}
	return "", false
}

func (w *Watcher) rescan(dir string) bool {
	w.throttle.wait()
	snap, err := content.Scan(dir, w.opts)
	if err != nil {
		events.Content.Error(dir, err)
		return w.emit(Event{Kind: KindContent, Data: content.Snapshot{Dir: dir}, Err: err})
	}
	events.Content.Scan(dir, len(snap.Entries))
	return w.emit(Event{Kind: KindContent, Data: snap})
}

func (w *Watcher) emit(evt Event) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}
