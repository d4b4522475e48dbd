package state

import (
	"strings"
	"unicode"

	"github.com/atomicstack/navmenu/internal/menu"
	"github.com/atomicstack/navmenu/internal/navigation"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SetFilter updates the filter query and cursor position. Entering a filter
// remembers the unfiltered cursor; clearing it restores that cursor.
func (l *Level) SetFilter(query string, cursor int) {
	trimmed := strings.TrimSpace(query)
	prevTrimmed := strings.TrimSpace(l.Filter)
	restore := -1
	l.Filter = query
	runes := []rune(l.Filter)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}
	l.FilterCursor = cursor
	if trimmed != "" && prevTrimmed == "" {
		l.LastCursor = l.Cursor()
	} else if trimmed == "" && prevTrimmed != "" {
		restore = l.LastCursor
	}
	l.applyFilter()
	if trimmed != "" {
		if idx := BestMatchIndex(l.Items, trimmed); idx >= 0 {
			l.SetCursor(idx)
		}
		return
	}
	if prevTrimmed != "" {
		if restore >= 0 && restore < len(l.Items) {
			l.SetCursor(restore)
		} else {
			l.SetCursor(0)
		}
		l.LastCursor = -1
	}
}

// applyFilter recomputes the visible items and their alphabet index, then
// clamps the selection to the new size.
func (l *Level) applyFilter() {
	l.Items = FilterItems(l.Full, l.Filter)
	l.Alphabet = navigation.BuildAlphabetIndex(SortKeys(l.Items))
	if len(l.Items) == 0 {
		if l.Cursor() != 0 {
			l.Engine().SetSelection(l.Nav, 0, false)
		}
		l.ViewportOffset = 0
		return
	}
	if cursor := l.Cursor(); cursor >= len(l.Items) {
		l.Engine().SetSelection(l.Nav, len(l.Items)-1, false)
	} else if cursor < 0 {
		l.Engine().SetSelection(l.Nav, 0, false)
	}
	if l.ViewportOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
	}
}

// FilterCursorPos returns the rune offset of the filter cursor.
func (l *Level) FilterCursorPos() int {
	runes := []rune(l.Filter)
	if l.FilterCursor < 0 {
		return 0
	}
	if l.FilterCursor > len(runes) {
		return len(runes)
	}
	return l.FilterCursor
}

// InsertFilterText inserts text into the filter at the cursor position.
func (l *Level) InsertFilterText(text string) bool {
	if text == "" {
		return false
	}
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(l.Filter)
	pos := l.FilterCursorPos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	l.SetFilter(string(updated), pos+len(insert))
	return true
}

// DeleteFilterRuneBackward deletes a rune before the filter cursor.
func (l *Level) DeleteFilterRuneBackward() bool {
	runes := []rune(l.Filter)
	pos := l.FilterCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	updated := append(runes[:pos-1], runes[pos:]...)
	l.SetFilter(string(updated), pos-1)
	return true
}

// DeleteFilterWordBackward deletes the word preceding the cursor.
func (l *Level) DeleteFilterWordBackward() bool {
	runes := []rune(l.Filter)
	pos := l.FilterCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	updated := append(runes[:i], runes[pos:]...)
	l.SetFilter(string(updated), i)
	return true
}

// MoveFilterCursorRuneBackward moves the filter cursor one rune backward.
func (l *Level) MoveFilterCursorRuneBackward() bool {
	if l.FilterCursorPos() == 0 {
		return false
	}
	l.FilterCursor = l.FilterCursorPos() - 1
	return true
}

// MoveFilterCursorRuneForward moves the filter cursor one rune forward.
func (l *Level) MoveFilterCursorRuneForward() bool {
	runes := []rune(l.Filter)
	pos := l.FilterCursorPos()
	if pos >= len(runes) {
		return false
	}
	l.FilterCursor = pos + 1
	return true
}

// FilterItems returns items whose sort key fuzzy-matches query, in their
// original order. Matching falls back to a plain substring test.
func FilterItems(items []menu.Item, query string) []menu.Item {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return CloneItems(items)
	}
	keys := SortKeys(items)
	ranks := fuzzy.RankFindNormalizedFold(trimmed, keys)
	matches := make(map[int]struct{}, len(ranks))
	for _, rank := range ranks {
		matches[rank.OriginalIndex] = struct{}{}
	}
	if len(matches) == 0 {
		lower := strings.ToLower(trimmed)
		for i, key := range keys {
			if strings.Contains(strings.ToLower(key), lower) {
				matches[i] = struct{}{}
			}
		}
	}
	filtered := make([]menu.Item, 0, len(matches))
	for idx, item := range items {
		if _, ok := matches[idx]; ok {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// BestMatchIndex returns the best index for the query among the provided
// items: exact key, then prefix, then substring, then closest fuzzy match.
func BestMatchIndex(items []menu.Item, query string) int {
	if len(items) == 0 {
		return -1
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)
	keys := SortKeys(items)
	tests := []func(string) bool{
		func(key string) bool { return strings.EqualFold(key, trimmed) },
		func(key string) bool { return strings.HasPrefix(strings.ToLower(key), lower) },
		func(key string) bool { return strings.Contains(strings.ToLower(key), lower) },
	}
	for _, test := range tests {
		for i, key := range keys {
			if test(key) {
				return i
			}
		}
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, keys)
	if len(ranks) == 0 {
		return 0
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance ||
			(rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	return best.OriginalIndex
}
