package events

import "github.com/atomicstack/navmenu/internal/logging"

// NavTracer records the navigation hooks observed by the menu driver.
type NavTracer struct{}

var Nav = NavTracer{}

func (NavTracer) Set(levelID string, selection int, scroll bool) {
	logging.Trace("nav.set", map[string]interface{}{"level": levelID, "selection": selection, "scroll": scroll})
}

func (NavTracer) SetLast(levelID string, selection int) {
	logging.Trace("nav.set-last", map[string]interface{}{"level": levelID, "selection": selection})
}

func (NavTracer) Clear(levelID string, pendingPush bool) {
	logging.Trace("nav.clear", map[string]interface{}{"level": levelID, "pending_push": pendingPush})
}

func (NavTracer) Increment(levelID string, selection int) {
	logging.Trace("nav.increment", map[string]interface{}{"level": levelID, "selection": selection})
}

func (NavTracer) Decrement(levelID string, selection int) {
	logging.Trace("nav.decrement", map[string]interface{}{"level": levelID, "selection": selection})
}

func (NavTracer) Alphabet(levelID, direction string, pos int, bucket string) {
	logging.Trace("nav.alphabet", map[string]interface{}{
		"level":     levelID,
		"direction": direction,
		"pos":       pos,
		"bucket":    bucket,
	})
}
