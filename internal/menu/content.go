package menu

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/atomicstack/navmenu/internal/content"
	"github.com/atomicstack/navmenu/internal/format/table"
)

func loadContentMenu(ctx Context) ([]Item, error) {
	if ctx.Cached != nil && ctx.Cached.Dir == ctx.Dir {
		return EntryItems(ctx.Cached.Entries), nil
	}
	snap, err := content.Scan(ctx.Dir, ctx.Options)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", ctx.Dir, err)
	}
	return EntryItems(snap.Entries), nil
}

func loadRecentMenu(ctx Context) ([]Item, error) {
	return EntryItems(ctx.Recent), nil
}

// EntryItems converts directory entries into items whose labels align the
// name and size columns.
func EntryItems(entries []content.Entry) []Item {
	if len(entries) == 0 {
		return nil
	}
	rows := make([][]string, len(entries))
	for i, entry := range entries {
		rows[i] = []string{EntryName(entry), EntrySize(entry)}
	}
	labels := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignRight})
	items := make([]Item, len(entries))
	for i := range entries {
		entry := entries[i]
		items[i] = Item{ID: entry.Path, Label: labels[i], Entry: &entry}
	}
	return items
}

// EntryName returns the display name, with a trailing slash for directories.
func EntryName(entry content.Entry) string {
	if entry.Dir {
		return entry.Name + "/"
	}
	return entry.Name
}

// EntrySize returns a human readable size, or "dir" for directories.
func EntrySize(entry content.Entry) string {
	if entry.Dir {
		return "dir"
	}
	return humanize.IBytes(uint64(entry.Size))
}
