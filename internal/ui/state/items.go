package state

import "github.com/atomicstack/navmenu/internal/menu"

// CloneItems produces a shallow copy of the provided menu items.
func CloneItems(items []menu.Item) []menu.Item {
	dup := make([]menu.Item, len(items))
	copy(dup, items)
	return dup
}

// SortKeys returns the grouping key of each item, in order.
func SortKeys(items []menu.Item) []string {
	keys := make([]string, len(items))
	for i, item := range items {
		keys[i] = item.SortKey()
	}
	return keys
}
