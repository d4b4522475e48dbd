package state

// Cursor returns the selected index, or 0 when the level has no state.
func (l *Level) Cursor() int {
	sel, ok := l.Nav.Selection()
	if !ok {
		return 0
	}
	return sel
}

// SetCursor selects idx and asks the driver to scroll it into view.
func (l *Level) SetCursor(idx int) bool {
	old := l.Cursor()
	l.Engine().SetSelection(l.Nav, idx, true)
	return old != l.Cursor()
}

// Reset moves the cursor to the top. pendingPush marks a reset that happens
// because the level is about to be shown.
func (l *Level) Reset(pendingPush bool) {
	l.Engine().Clear(l.Nav, pendingPush)
}

// MoveCursorUp moves the cursor speed rows up, wrapping when enabled.
func (l *Level) MoveCursorUp(speed int) bool {
	old := l.Cursor()
	l.Engine().Decrement(l.Nav, len(l.Items), speed)
	return old != l.Cursor()
}

// MoveCursorDown moves the cursor speed rows down, wrapping when enabled.
func (l *Level) MoveCursorDown(speed int) bool {
	old := l.Cursor()
	l.Engine().Increment(l.Nav, len(l.Items), speed)
	return old != l.Cursor()
}

// MoveCursorHome moves the cursor to the first item.
func (l *Level) MoveCursorHome() bool {
	if len(l.Items) == 0 {
		return false
	}
	return l.SetCursor(0)
}

// MoveCursorEnd moves the cursor to the last item.
func (l *Level) MoveCursorEnd() bool {
	old := l.Cursor()
	l.Engine().SetLast(l.Nav, len(l.Items))
	return old != l.Cursor()
}

// MoveCursorPageUp moves the cursor up by the given page size.
func (l *Level) MoveCursorPageUp(maxVisible int) bool {
	if len(l.Items) == 0 {
		return false
	}
	return l.MoveCursorUp(l.pageSize(maxVisible))
}

// MoveCursorPageDown moves the cursor down by the given page size.
func (l *Level) MoveCursorPageDown(maxVisible int) bool {
	if len(l.Items) == 0 {
		return false
	}
	return l.MoveCursorDown(l.pageSize(maxVisible))
}

// JumpPrevGroup moves to the start of the previous alphabet group.
func (l *Level) JumpPrevGroup() bool {
	pos := l.Cursor()
	if !l.Engine().DescendAlphabet(l.Nav, l.Alphabet, &pos) {
		return false
	}
	return l.SetCursor(pos)
}

// JumpNextGroup moves to the start of the next alphabet group.
func (l *Level) JumpNextGroup() bool {
	pos := l.Cursor()
	if !l.Engine().AscendAlphabet(l.Nav, l.Alphabet, &pos) {
		return false
	}
	return l.SetCursor(pos)
}

func (l *Level) pageSize(maxVisible int) int {
	total := len(l.Items)
	if total == 0 {
		return 0
	}
	size := maxVisible
	if size <= 0 || size > total {
		size = total
	}
	if size < 1 {
		size = 1
	}
	return size
}

// EnsureCursorVisible clamps the cursor into range and adjusts the viewport
// offset so it stays visible.
func (l *Level) EnsureCursorVisible(maxVisible int) {
	if len(l.Items) == 0 {
		if l.Cursor() != 0 {
			l.Engine().SetSelection(l.Nav, 0, false)
		}
		l.ViewportOffset = 0
		return
	}
	cursor := l.Cursor()
	if cursor < 0 {
		cursor = 0
	}
	if cursor >= len(l.Items) {
		cursor = len(l.Items) - 1
	}
	if cursor != l.Cursor() {
		l.Engine().SetSelection(l.Nav, cursor, false)
	}
	if maxVisible <= 0 {
		l.ViewportOffset = 0
		return
	}
	maxOffset := len(l.Items) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if l.ViewportOffset > maxOffset {
		l.ViewportOffset = maxOffset
	}
	if l.ViewportOffset < 0 {
		l.ViewportOffset = 0
	}
	if cursor < l.ViewportOffset {
		l.ViewportOffset = cursor
	}
	upper := l.ViewportOffset + maxVisible - 1
	if cursor > upper {
		l.ViewportOffset = cursor - maxVisible + 1
		if l.ViewportOffset < 0 {
			l.ViewportOffset = 0
		}
		if l.ViewportOffset > maxOffset {
			l.ViewportOffset = maxOffset
		}
	}
}

// PinViewportToEnd shows the last page of items.
func (l *Level) PinViewportToEnd(maxVisible int) {
	if maxVisible <= 0 || len(l.Items) <= maxVisible {
		l.ViewportOffset = 0
		return
	}
	l.ViewportOffset = len(l.Items) - maxVisible
}
