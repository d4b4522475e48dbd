package navigation

// State is the cursor of one menu session.
type State struct {
	selection  int
	wraparound bool
}

// NewState returns a cursor at position 0. wraparound is a snapshot of the
// vertical wraparound setting; it does not follow later config changes.
func NewState(wraparound bool) *State {
	return &State{wraparound: wraparound}
}

// Selection returns the cursor position. ok is false when s is nil.
func (s *State) Selection() (idx int, ok bool) {
	if s == nil {
		return 0, false
	}
	return s.selection, true
}

// Wraparound reports whether moves past either end re-enter from the other.
func (s *State) Wraparound() bool {
	if s == nil {
		return false
	}
	return s.wraparound
}
