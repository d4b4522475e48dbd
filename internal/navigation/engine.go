package navigation

// Engine applies navigation operations to a State and notifies its driver.
// Every operation takes the list size as an explicit snapshot; callers must
// not let the list change between reading the size and the call returning.
type Engine struct {
	driver Driver
}

// NewEngine returns an engine that notifies driver. driver may be nil.
func NewEngine(driver Driver) *Engine {
	return &Engine{driver: driver}
}

// Driver returns the driver the engine notifies.
func (e *Engine) Driver() Driver {
	if e == nil {
		return nil
	}
	return e.driver
}

// SetSelection writes idx without checking it against the list size; the
// caller owns that bound.
func (e *Engine) SetSelection(s *State, idx int, scroll bool) {
	if s == nil {
		return
	}
	s.selection = idx
	if n, ok := e.Driver().(SetNotifier); ok {
		n.NavigationSet(scroll)
	}
}

// SetLast moves the cursor to size-1. It does nothing for an empty list.
func (e *Engine) SetLast(s *State, size int) {
	if s == nil || size <= 0 {
		return
	}
	s.selection = size - 1
	if n, ok := e.Driver().(SetLastNotifier); ok {
		n.NavigationSetLast()
	}
}

// Clear resets the cursor to 0 and forwards pendingPush to the driver.
func (e *Engine) Clear(s *State, pendingPush bool) {
	if s == nil {
		return
	}
	e.SetSelection(s, 0, true)
	if n, ok := e.Driver().(ClearNotifier); ok {
		n.NavigationClear(pendingPush)
	}
}

// Decrement moves the cursor up by speed. Moving above the top either wraps
// to the last item or stops at 0, depending on the state's policy. The
// driver always sees a set followed by a decrement.
func (e *Engine) Decrement(s *State, size, speed int) {
	if s == nil {
		return
	}
	speed = normalizeSpeed(speed)
	switch {
	case size <= 0:
		e.SetSelection(s, 0, true)
	case s.selection >= speed:
		e.SetSelection(s, s.selection-speed, true)
	case s.wraparound:
		e.SetSelection(s, size-1, true)
	default:
		e.SetSelection(s, 0, true)
	}
	if n, ok := e.Driver().(DecrementNotifier); ok {
		n.NavigationDecrement()
	}
}

// Increment moves the cursor down by speed. Moving past the end either
// clears the cursor back to 0 or stops on the last item. A wrap goes through
// Clear and does not send an increment notification, unlike Decrement's
// wrap; drivers that animate gestures rely on that difference.
func (e *Engine) Increment(s *State, size, speed int) {
	if s == nil || size <= 0 {
		return
	}
	speed = normalizeSpeed(speed)
	if s.selection+speed < size {
		e.SetSelection(s, s.selection+speed, true)
		e.notifyIncrement()
		return
	}
	if s.wraparound {
		e.Clear(s, false)
		return
	}
	e.SetLast(s, size)
	e.notifyIncrement()
}

func (e *Engine) notifyIncrement() {
	if n, ok := e.Driver().(IncrementNotifier); ok {
		n.NavigationIncrement()
	}
}

// DescendAlphabet moves *pos to the start of the previous letter group and
// reports whether it moved. The selection is left alone; commit the new
// position with SetSelection.
func (e *Engine) DescendAlphabet(s *State, index AlphabetIndex, pos *int) bool {
	if s == nil || pos == nil || index.Len() == 0 || *pos <= 0 {
		return false
	}
	target, ok := index.previous(*pos)
	if !ok {
		return false
	}
	*pos = target
	if n, ok := e.Driver().(DescendAlphabetNotifier); ok {
		n.NavigationDescendAlphabet(*pos)
	}
	return true
}

// AscendAlphabet moves *pos to the start of the next letter group and
// reports whether it moved. Like DescendAlphabet it does not commit.
func (e *Engine) AscendAlphabet(s *State, index AlphabetIndex, pos *int) bool {
	if s == nil || pos == nil || index.Len() == 0 {
		return false
	}
	target, ok := index.next(*pos)
	if !ok {
		return false
	}
	*pos = target
	if n, ok := e.Driver().(AscendAlphabetNotifier); ok {
		n.NavigationAscendAlphabet(*pos)
	}
	return true
}

// normalizeSpeed clamps negative speeds to 0. A zero speed is a
// zero-distance move that still notifies.
func normalizeSpeed(speed int) int {
	if speed < 0 {
		return 0
	}
	return speed
}
