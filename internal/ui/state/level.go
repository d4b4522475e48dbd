package state

import (
	"strings"

	"github.com/atomicstack/navmenu/internal/menu"
	"github.com/atomicstack/navmenu/internal/navigation"
)

// Level encapsulates menu level state: items, filter, navigation state,
// alphabet index and viewport.
type Level struct {
	ID             string
	Title          string
	Items          []menu.Item
	Full           []menu.Item
	Filter         string
	FilterCursor   int
	Nav            *navigation.State
	Alphabet       navigation.AlphabetIndex
	Data           interface{}
	LastCursor     int
	Node           *menu.Node
	ViewportOffset int

	engine *navigation.Engine
}

// NewLevel constructs a Level using the provided items and menu node. The
// wraparound setting is captured here for the lifetime of the level.
func NewLevel(id, title string, items []menu.Item, node *menu.Node, wraparound bool) *Level {
	l := &Level{
		ID:         id,
		Title:      title,
		Nav:        navigation.NewState(wraparound),
		LastCursor: -1,
		Node:       node,
		engine:     navigation.NewEngine(nil),
	}
	l.UpdateItems(items)
	return l
}

// SetDriver routes navigation notifications for this level to driver.
func (l *Level) SetDriver(driver navigation.Driver) {
	l.engine = navigation.NewEngine(driver)
}

// Engine returns the navigation engine bound to this level.
func (l *Level) Engine() *navigation.Engine {
	if l.engine == nil {
		l.engine = navigation.NewEngine(nil)
	}
	return l.engine
}

// Dir returns the directory a content level lists, if any.
func (l *Level) Dir() string {
	dir, _ := l.Data.(string)
	return dir
}

// IndexOf returns the index for a given item identifier.
func (l *Level) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	if idx := strings.LastIndex(id, ":"); idx >= 0 {
		suffix := id[idx+1:]
		for i, item := range l.Items {
			if item.ID == suffix {
				return i
			}
		}
	}
	return -1
}

// Current returns the item under the cursor.
func (l *Level) Current() (menu.Item, bool) {
	cursor := l.Cursor()
	if cursor < 0 || cursor >= len(l.Items) {
		return menu.Item{}, false
	}
	return l.Items[cursor], true
}

// UpdateItems refreshes the level items, keeping the cursor on the same item
// when it is still present.
func (l *Level) UpdateItems(items []menu.Item) {
	prevOffset := l.ViewportOffset
	selectedID := ""
	if item, ok := l.Current(); ok {
		selectedID = item.ID
	}
	l.Full = CloneItems(items)
	l.applyFilter()
	if selectedID != "" {
		if idx := l.IndexOf(selectedID); idx >= 0 && idx != l.Cursor() {
			l.Engine().SetSelection(l.Nav, idx, false)
		}
	}
	if len(l.Items) == 0 {
		l.ViewportOffset = 0
		return
	}
	if prevOffset < 0 {
		prevOffset = 0
	}
	if prevOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
		return
	}
	l.ViewportOffset = prevOffset
}
