package dispatcher

import (
	"github.com/atomicstack/navmenu/internal/backend"
	"github.com/atomicstack/navmenu/internal/content"
	"github.com/atomicstack/navmenu/internal/state"
)

// Result reports which directory, if any, received a fresh snapshot.
type Result struct {
	ContentUpdated bool
	Dir            string
	Removed        bool
}

type Dispatcher struct {
	content state.ContentStore
}

func New(c state.ContentStore) *Dispatcher {
	return &Dispatcher{content: c}
}

// Handle applies a backend event to the stores. A failed rescan of a known
// directory drops its snapshot so loaders stop serving stale entries.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Kind != backend.KindContent {
		return res
	}
	snap, ok := evt.Data.(content.Snapshot)
	if !ok {
		return res
	}
	if evt.Err != nil {
		if snap.Dir == "" {
			return res
		}
		if _, known := d.content.Snapshot(snap.Dir); known {
			d.content.Forget(snap.Dir)
			res.Dir = snap.Dir
			res.Removed = true
		}
		return res
	}
	d.content.SetSnapshot(snap)
	res.ContentUpdated = true
	res.Dir = snap.Dir
	return res
}
