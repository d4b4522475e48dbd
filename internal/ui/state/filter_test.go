package state

import (
	"reflect"
	"testing"

	"github.com/atomicstack/navmenu/internal/content"
	"github.com/atomicstack/navmenu/internal/menu"
)

func TestSetFilterTracksCursorAndRestoresPosition(t *testing.T) {
	level := newTestLevel("one", "two", "three")
	level.SetCursor(2)
	level.SetFilter("two", len("two"))

	if level.Filter != "two" {
		t.Fatalf("expected filter persisted, got %q", level.Filter)
	}
	if level.FilterCursor != len("two") {
		t.Fatalf("expected cursor at end, got %d", level.FilterCursor)
	}
	if level.Cursor() != 0 {
		t.Fatalf("expected filtered cursor at 0, got %d", level.Cursor())
	}
	if len(level.Items) != 1 || level.Items[0].ID != "two" {
		t.Fatalf("expected filtered items to contain only 'two', got %#v", level.Items)
	}

	level.SetFilter("", 0)
	if level.Cursor() != 2 {
		t.Fatalf("expected cursor restored to 2, got %d", level.Cursor())
	}
	if level.LastCursor != -1 {
		t.Fatalf("expected last cursor reset, got %d", level.LastCursor)
	}
}

func TestSetFilterRebuildsAlphabet(t *testing.T) {
	level := newTestLevel("apple", "avocado", "banana", "blueberry", "cherry")
	if got := level.Alphabet.Positions(); !reflect.DeepEqual(got, []int{0, 2, 4}) {
		t.Fatalf("unexpected initial alphabet %v", got)
	}
	level.SetFilter("b", 1)
	if got := level.Alphabet.Positions(); !reflect.DeepEqual(got, []int{0, 1}) {
		t.Fatalf("expected alphabet over filtered items, got %v (items %#v)", got, level.Items)
	}
}

func TestInsertAndDeleteFilterText(t *testing.T) {
	level := newTestLevel("alpha")

	if !level.InsertFilterText("ab") {
		t.Fatal("expected insert to succeed")
	}
	if level.Filter != "ab" || level.FilterCursor != 2 {
		t.Fatalf("unexpected filter state %q/%d", level.Filter, level.FilterCursor)
	}

	level.FilterCursor = 1
	if !level.InsertFilterText("z") {
		t.Fatal("expected insert in middle to succeed")
	}
	if level.Filter != "azb" || level.FilterCursor != 2 {
		t.Fatalf("unexpected filter state %q/%d", level.Filter, level.FilterCursor)
	}

	if !level.DeleteFilterRuneBackward() {
		t.Fatal("expected rune deletion to succeed")
	}
	if level.Filter != "ab" || level.FilterCursor != 1 {
		t.Fatalf("unexpected filter state after delete %q/%d", level.Filter, level.FilterCursor)
	}

	level.SetFilter("abc def", len("abc def"))
	if !level.DeleteFilterWordBackward() {
		t.Fatal("expected word deletion to succeed")
	}
	if level.Filter != "abc " {
		t.Fatalf("expected trailing word removed, got %q", level.Filter)
	}

	level.SetFilter("abc", 0)
	if level.DeleteFilterRuneBackward() {
		t.Fatal("expected delete at start to fail")
	}
}

func TestFilterCursorRuneMovement(t *testing.T) {
	level := newTestLevel("one")
	level.SetFilter("on", 2)
	if level.MoveFilterCursorRuneForward() {
		t.Fatal("expected no movement past the end")
	}
	if !level.MoveFilterCursorRuneBackward() || level.FilterCursor != 1 {
		t.Fatalf("expected cursor 1, got %d", level.FilterCursor)
	}
	if !level.MoveFilterCursorRuneForward() || level.FilterCursor != 2 {
		t.Fatalf("expected cursor 2, got %d", level.FilterCursor)
	}
}

func TestFilterItemsMatchesEntryNames(t *testing.T) {
	alpha := content.Entry{Name: "Alpha.nes"}
	beta := content.Entry{Name: "Beta.nes"}
	items := []menu.Item{
		{ID: "1", Label: "Alpha.nes   12 KiB", Entry: &alpha},
		{ID: "2", Label: "Beta.nes    12 KiB", Entry: &beta},
	}
	filtered := FilterItems(items, "alp")
	if len(filtered) != 1 || filtered[0].ID != "1" {
		t.Fatalf("unexpected filtered results %#v", filtered)
	}
	if len(FilterItems(items, "kib")) != 0 {
		t.Fatal("expected size column to be ignored")
	}
	if len(FilterItems(items, "")) != 2 {
		t.Fatal("expected all items for an empty query")
	}
}

func TestFilterItemsAndClone(t *testing.T) {
	items := []menu.Item{{ID: "1", Label: "Alpha"}, {ID: "2", Label: "Beta"}}
	filtered := FilterItems(items, "ta")
	if len(filtered) != 1 || filtered[0].Label != "Beta" {
		t.Fatalf("expected match for Beta, got %#v", filtered)
	}

	clone := CloneItems(items)
	if &clone[0] == &items[0] {
		t.Fatal("expected clone to allocate new backing array")
	}
	filtered[0].Label = "changed"
	if items[1].Label != "Beta" {
		t.Fatal("expected original slice to remain unchanged")
	}
	if len(FilterItems(items, "nomatch")) != 0 {
		t.Fatal("expected empty results when nothing matches")
	}
}

func TestBestMatchIndex(t *testing.T) {
	items := []menu.Item{
		{ID: "one", Label: "First"},
		{ID: "two", Label: "Second"},
		{ID: "three", Label: "Third"},
	}

	if idx := BestMatchIndex(items, "second"); idx != 1 {
		t.Fatalf("expected exact match index 1, got %d", idx)
	}
	if idx := BestMatchIndex(items, "th"); idx != 2 {
		t.Fatalf("expected prefix match index 2, got %d", idx)
	}
	if idx := BestMatchIndex(items, "con"); idx != 1 {
		t.Fatalf("expected substring match index 1, got %d", idx)
	}
	if idx := BestMatchIndex(items, "zzz"); idx != 0 {
		t.Fatalf("expected fallback index 0, got %d", idx)
	}
	if idx := BestMatchIndex(nil, "anything"); idx != -1 {
		t.Fatalf("expected -1 for empty slice, got %d", idx)
	}
}

func TestSetFilterSelectsFuzzyMatch(t *testing.T) {
	items := []menu.Item{{ID: "1", Label: "Alpha"}, {ID: "2", Label: "Beta"}}
	level := NewLevel("id", "title", items, nil, true)
	level.SetFilter("bet", 3)
	if level.Cursor() != 0 {
		t.Fatalf("expected match to select first filtered item, got %d", level.Cursor())
	}
	if !reflect.DeepEqual(level.Items, []menu.Item{{ID: "2", Label: "Beta"}}) {
		t.Fatalf("expected filtered items to contain Beta, got %#v", level.Items)
	}
}
