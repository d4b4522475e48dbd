package ui

import (
	"github.com/atomicstack/navmenu/internal/logging/events"
	"github.com/atomicstack/navmenu/internal/navigation"
)

const (
	moveUp   = "up"
	moveDown = "down"
)

// levelDriver receives the navigation hooks for one level and keeps the
// presentation in step with the selection.
type levelDriver struct {
	m   *Model
	lvl *level
}

func (d *levelDriver) NavigationSet(scroll bool) {
	if scroll {
		d.m.syncViewport(d.lvl)
	}
	events.Nav.Set(d.lvl.ID, d.lvl.Cursor(), scroll)
}

func (d *levelDriver) NavigationClear(pendingPush bool) {
	d.lvl.ViewportOffset = 0
	events.Nav.Clear(d.lvl.ID, pendingPush)
}

func (d *levelDriver) NavigationSetLast() {
	d.lvl.PinViewportToEnd(d.m.maxVisibleItems())
	events.Nav.SetLast(d.lvl.ID, d.lvl.Cursor())
}

func (d *levelDriver) NavigationIncrement() {
	d.m.lastMove = moveDown
	events.Nav.Increment(d.lvl.ID, d.lvl.Cursor())
}

func (d *levelDriver) NavigationDecrement() {
	d.m.lastMove = moveUp
	events.Nav.Decrement(d.lvl.ID, d.lvl.Cursor())
}

func (d *levelDriver) NavigationDescendAlphabet(pos int) {
	d.alphabet("descend", pos)
}

func (d *levelDriver) NavigationAscendAlphabet(pos int) {
	d.alphabet("ascend", pos)
}

func (d *levelDriver) alphabet(direction string, pos int) {
	bucket := ""
	if pos >= 0 && pos < len(d.lvl.Items) {
		bucket = string(navigation.Bucket(d.lvl.Items[pos].SortKey()))
	}
	d.m.jumpHint = bucket
	events.Nav.Alphabet(d.lvl.ID, direction, pos, bucket)
}
