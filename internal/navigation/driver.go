package navigation

// Driver is any value the Engine notifies after it mutates a State. The
// Engine checks for each of the single-method interfaces below and calls
// the ones the driver implements; missing hooks are skipped silently. A nil
// Driver receives nothing.
type Driver any

// IncrementNotifier is told about a completed increment gesture.
type IncrementNotifier interface {
	NavigationIncrement()
}

// DecrementNotifier is told about a completed decrement gesture.
type DecrementNotifier interface {
	NavigationDecrement()
}

// ClearNotifier is told that the cursor was reset to the top. pendingPush
// is passed through untouched from the caller.
type ClearNotifier interface {
	NavigationClear(pendingPush bool)
}

// SetNotifier is told that the selection was written. scroll asks the
// presentation layer to bring the selection into view.
type SetNotifier interface {
	NavigationSet(scroll bool)
}

// SetLastNotifier is told that the cursor was moved to the last item.
type SetLastNotifier interface {
	NavigationSetLast()
}

// DescendAlphabetNotifier receives the position computed by a descend.
type DescendAlphabetNotifier interface {
	NavigationDescendAlphabet(pos int)
}

// AscendAlphabetNotifier receives the position computed by an ascend.
type AscendAlphabetNotifier interface {
	NavigationAscendAlphabet(pos int)
}

// Hooks adapts plain functions to the driver interfaces. Nil fields are
// no-ops, so a Hooks value can stand in for any subset of a driver.
type Hooks struct {
	Increment       func()
	Decrement       func()
	Clear           func(pendingPush bool)
	Set             func(scroll bool)
	SetLast         func()
	DescendAlphabet func(pos int)
	AscendAlphabet  func(pos int)
}

func (h Hooks) NavigationIncrement() {
	if h.Increment != nil {
		h.Increment()
	}
}

func (h Hooks) NavigationDecrement() {
	if h.Decrement != nil {
		h.Decrement()
	}
}

func (h Hooks) NavigationClear(pendingPush bool) {
	if h.Clear != nil {
		h.Clear(pendingPush)
	}
}

func (h Hooks) NavigationSet(scroll bool) {
	if h.Set != nil {
		h.Set(scroll)
	}
}

func (h Hooks) NavigationSetLast() {
	if h.SetLast != nil {
		h.SetLast()
	}
}

func (h Hooks) NavigationDescendAlphabet(pos int) {
	if h.DescendAlphabet != nil {
		h.DescendAlphabet(pos)
	}
}

func (h Hooks) NavigationAscendAlphabet(pos int) {
	if h.AscendAlphabet != nil {
		h.AscendAlphabet(pos)
	}
}
