package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/navmenu/internal/content"
)

// Item represents a selectable menu entry. Entry is set for items that
// stand for a file or directory.
type Item struct {
	ID    string
	Label string
	Entry *content.Entry
}

// SortKey is the text used to group items alphabetically.
func (i Item) SortKey() string {
	if i.Entry != nil {
		return i.Entry.Name
	}
	return i.Label
}

// IsDir reports whether the item opens a directory level.
func (i Item) IsDir() bool {
	return i.Entry != nil && i.Entry.Dir
}

// Context carries runtime data needed by loader and action functions.
type Context struct {
	Root    string
	Dir     string
	Options content.Options
	// Cached is the stored snapshot of Dir when one is available.
	Cached *content.Snapshot
	Recent []content.Entry
}

// Loader populates submenu entries on demand.
type Loader func(Context) ([]Item, error)

type Action func(Context, Item) tea.Cmd

// ActionResult communicates the outcome of executing a menu action.
type ActionResult struct {
	Info string
	Err  error
}

// LaunchRequest asks the application shell to leave the menu and launch
// the entry.
type LaunchRequest struct {
	Entry content.Entry
}

const (
	RootID    = "root"
	ContentID = "content"
	RecentID  = "recent"
)

// RootItems returns the top-level menu entries.
func RootItems() []Item {
	return []Item{
		{ID: ContentID, Label: "browse"},
		{ID: RecentID, Label: "recent"},
	}
}

// CategoryLoaders lists submenu loaders keyed by root item ID.
func CategoryLoaders() map[string]Loader {
	return map[string]Loader{
		ContentID: loadContentMenu,
		RecentID:  loadRecentMenu,
	}
}

// ActionHandlers maps submenu identifiers to their execution logic.
func ActionHandlers() map[string]Action {
	return map[string]Action{
		ContentID: LaunchAction,
		RecentID:  LaunchAction,
	}
}

// LaunchAction requests a launch for file items.
func LaunchAction(_ Context, item Item) tea.Cmd {
	return func() tea.Msg {
		if item.Entry == nil || item.Entry.Dir {
			return ActionResult{Err: errNotLaunchable(item)}
		}
		return LaunchRequest{Entry: *item.Entry}
	}
}

func errNotLaunchable(item Item) error {
	return fmt.Errorf("%s cannot be launched", strings.TrimSpace(item.Label))
}
