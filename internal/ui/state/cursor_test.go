package state

import (
	"testing"

	"github.com/atomicstack/navmenu/internal/menu"
	"github.com/atomicstack/navmenu/internal/navigation"
)

func newTestLevel(ids ...string) *Level {
	items := make([]menu.Item, len(ids))
	for i, id := range ids {
		items[i] = menu.Item{ID: id, Label: id}
	}
	return NewLevel("test", "Test", items, nil, true)
}

func newClampedLevel(ids ...string) *Level {
	l := newTestLevel(ids...)
	l.Nav = navigation.NewState(false)
	return l
}

func TestMoveCursorHome(t *testing.T) {
	l := newTestLevel("a", "b", "c")
	l.SetCursor(2)
	if !l.MoveCursorHome() {
		t.Fatalf("expected move when items exist")
	}
	if l.Cursor() != 0 {
		t.Fatalf("expected cursor 0, got %d", l.Cursor())
	}

	empty := newTestLevel()
	if empty.MoveCursorHome() {
		t.Fatalf("expected no movement for empty level")
	}
}

func TestMoveCursorEnd(t *testing.T) {
	l := newTestLevel("a", "b", "c")
	if !l.MoveCursorEnd() {
		t.Fatalf("expected movement to end")
	}
	if l.Cursor() != 2 {
		t.Fatalf("expected cursor 2, got %d", l.Cursor())
	}

	empty := newTestLevel()
	if empty.MoveCursorEnd() {
		t.Fatalf("expected no movement for empty level")
	}
	if empty.Cursor() != 0 {
		t.Fatalf("expected cursor 0, got %d", empty.Cursor())
	}
}

func TestMoveCursorUpDownWraps(t *testing.T) {
	l := newTestLevel("a", "b", "c")
	if !l.MoveCursorUp(1) || l.Cursor() != 2 {
		t.Fatalf("expected wrap to last item, got %d", l.Cursor())
	}
	if !l.MoveCursorDown(1) || l.Cursor() != 0 {
		t.Fatalf("expected wrap to first item, got %d", l.Cursor())
	}
	l.MoveCursorDown(1)
	if l.Cursor() != 1 {
		t.Fatalf("expected cursor 1, got %d", l.Cursor())
	}
}

func TestMoveCursorUpDownClampsWithoutWrap(t *testing.T) {
	l := newClampedLevel("a", "b", "c")
	if l.MoveCursorUp(1) {
		t.Fatalf("expected no movement at the top")
	}
	l.MoveCursorDown(5)
	if l.Cursor() != 2 {
		t.Fatalf("expected clamp to last item, got %d", l.Cursor())
	}
	if l.MoveCursorDown(1) {
		t.Fatalf("expected no movement at the bottom")
	}
}

func TestMoveCursorPaging(t *testing.T) {
	l := newClampedLevel("a", "b", "c", "d", "e")
	if !l.MoveCursorPageDown(2) {
		t.Fatalf("expected movement on first page down")
	}
	if l.Cursor() != 2 {
		t.Fatalf("expected cursor 2, got %d", l.Cursor())
	}
	l.MoveCursorPageDown(2)
	l.MoveCursorPageDown(2)
	if l.Cursor() != 4 {
		t.Fatalf("expected cursor clamped to 4, got %d", l.Cursor())
	}
	if !l.MoveCursorPageUp(3) || l.Cursor() != 1 {
		t.Fatalf("expected cursor 1 after page up, got %d", l.Cursor())
	}
	l.MoveCursorPageUp(3)
	if l.Cursor() != 0 {
		t.Fatalf("expected cursor clamped to 0, got %d", l.Cursor())
	}

	empty := newTestLevel()
	if empty.MoveCursorPageDown(3) || empty.MoveCursorPageUp(3) {
		t.Fatalf("expected no paging on empty level")
	}
}

func TestPageDownWrapsToTop(t *testing.T) {
	l := newTestLevel("a", "b", "c", "d", "e")
	l.SetCursor(3)
	l.MoveCursorPageDown(2)
	if l.Cursor() != 0 {
		t.Fatalf("expected overflow with wraparound to reset to 0, got %d", l.Cursor())
	}
}

func TestJumpGroups(t *testing.T) {
	l := newTestLevel("alpha", "apple", "banana", "cherry", "cobalt", "date")
	// groups start at 0 (a), 2 (b), 3 (c), 5 (d, also the last position)
	if !l.JumpNextGroup() || l.Cursor() != 2 {
		t.Fatalf("expected jump to 2, got %d", l.Cursor())
	}
	if !l.JumpNextGroup() || l.Cursor() != 3 {
		t.Fatalf("expected jump to 3, got %d", l.Cursor())
	}
	l.SetCursor(4)
	if !l.JumpPrevGroup() || l.Cursor() != 3 {
		t.Fatalf("expected jump back to 3, got %d", l.Cursor())
	}
	l.SetCursor(5)
	if l.JumpNextGroup() {
		t.Fatalf("expected no jump past the last group")
	}
	l.SetCursor(0)
	if l.JumpPrevGroup() {
		t.Fatalf("expected no jump before the first group")
	}
}

func TestJumpGroupsNotifyDriverBeforeCommit(t *testing.T) {
	l := newTestLevel("alpha", "beta", "gamma")
	var events []string
	l.SetDriver(navigation.Hooks{
		AscendAlphabet: func(pos int) {
			events = append(events, "ascend")
		},
		Set: func(scroll bool) {
			events = append(events, "set")
		},
	})
	l.JumpNextGroup()
	if len(events) != 2 || events[0] != "ascend" || events[1] != "set" {
		t.Fatalf("expected ascend then set, got %v", events)
	}
}

func TestResetNotifiesClear(t *testing.T) {
	l := newTestLevel("a", "b")
	l.SetCursor(1)
	var pushed []bool
	l.SetDriver(navigation.Hooks{Clear: func(pendingPush bool) { pushed = append(pushed, pendingPush) }})
	l.Reset(true)
	if l.Cursor() != 0 {
		t.Fatalf("expected cursor 0 after reset, got %d", l.Cursor())
	}
	if len(pushed) != 1 || !pushed[0] {
		t.Fatalf("expected clear(true), got %v", pushed)
	}
}

func TestEnsureCursorVisible(t *testing.T) {
	l := newTestLevel("a", "b", "c", "d", "e")
	l.SetCursor(4)
	l.EnsureCursorVisible(2)
	if l.ViewportOffset != 3 {
		t.Fatalf("expected viewport offset 3, got %d", l.ViewportOffset)
	}
	l.SetCursor(1)
	l.EnsureCursorVisible(2)
	if l.ViewportOffset != 1 {
		t.Fatalf("expected viewport offset 1, got %d", l.ViewportOffset)
	}

	l.SetCursor(10)
	l.EnsureCursorVisible(2)
	if l.Cursor() != 4 {
		t.Fatalf("expected cursor clamped to 4, got %d", l.Cursor())
	}
}

func TestPinViewportToEnd(t *testing.T) {
	l := newTestLevel("a", "b", "c", "d", "e")
	l.PinViewportToEnd(2)
	if l.ViewportOffset != 3 {
		t.Fatalf("expected offset 3, got %d", l.ViewportOffset)
	}
	l.PinViewportToEnd(10)
	if l.ViewportOffset != 0 {
		t.Fatalf("expected offset 0, got %d", l.ViewportOffset)
	}
}

func TestUpdateItemsKeepsSelectedItem(t *testing.T) {
	l := newTestLevel("a", "b", "c")
	l.SetCursor(2)
	l.UpdateItems([]menu.Item{{ID: "0", Label: "0"}, {ID: "a", Label: "a"}, {ID: "b", Label: "b"}, {ID: "c", Label: "c"}})
	if l.Cursor() != 3 {
		t.Fatalf("expected cursor to follow item c to 3, got %d", l.Cursor())
	}
	l.UpdateItems([]menu.Item{{ID: "x", Label: "x"}})
	if l.Cursor() != 0 {
		t.Fatalf("expected cursor clamped to 0, got %d", l.Cursor())
	}
	if got := l.Alphabet.Positions(); len(got) != 1 || got[0] != 0 {
		t.Fatalf("expected rebuilt alphabet [0], got %v", got)
	}
}

func TestCurrentAndDir(t *testing.T) {
	l := newTestLevel("a", "b")
	l.SetCursor(1)
	item, ok := l.Current()
	if !ok || item.ID != "b" {
		t.Fatalf("expected current b, got %#v", item)
	}
	if l.Dir() != "" {
		t.Fatalf("expected empty dir")
	}
	l.Data = "/roms"
	if l.Dir() != "/roms" {
		t.Fatalf("expected /roms, got %q", l.Dir())
	}
	empty := newTestLevel()
	if _, ok := empty.Current(); ok {
		t.Fatalf("expected no current item")
	}
}
