package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/navmenu/internal/content"
	"github.com/atomicstack/navmenu/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

func detailsModel(t *testing.T, width int) *Model {
	t.Helper()
	m := newTestModel(t, Options{Width: width, Height: 12, ShowDetails: true})
	entries := []content.Entry{
		{Name: "zelda.nes", Path: "/srv/roms/zelda.nes", Size: 2048, ModTime: time.Now().Add(-2 * time.Hour)},
		{Name: "metroid.nes", Path: "/srv/roms/metroid.nes", Size: 1024},
	}
	node, _ := m.registry.Find(menu.ContentID)
	lvl := m.newLevel(menu.ContentID, "roms", menu.EntryItems(entries), node)
	lvl.Data = "/srv/roms"
	m.stack = append(m.stack, lvl)
	lvl.Reset(true)
	return m
}

func TestViewShowsDetailsPanel(t *testing.T) {
	m := detailsModel(t, 100)
	view := m.View()
	for _, want := range []string{"NES file", "2.0 KiB", "2,048 bytes", "2 hours ago", "/srv/roms/zelda.nes"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view, got:\n%s", want, view)
		}
	}
}

func TestViewDetailsFollowCursor(t *testing.T) {
	m := detailsModel(t, 100)
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	view := m.View()
	if !strings.Contains(view, "/srv/roms/metroid.nes") {
		t.Fatalf("expected details for metroid, got:\n%s", view)
	}
}

func TestViewHidesDetailsWhenNarrow(t *testing.T) {
	m := detailsModel(t, 50)
	if strings.Contains(m.View(), "NES file") {
		t.Fatalf("expected no details panel at width 50")
	}
}

func TestViewHidesDetailsWhenDisabled(t *testing.T) {
	m := detailsModel(t, 100)
	m.showDetails = false
	if strings.Contains(m.View(), "NES file") {
		t.Fatalf("expected no details panel when disabled")
	}
}

func TestViewShowsJumpHint(t *testing.T) {
	m := newTestModel(t, Options{Width: 60, Height: 10})
	pushEntries(m, "/srv/roms", "alpha.nes", "beta.nes")
	m.Update(tea.KeyMsg{Type: tea.KeyShiftDown})
	if view := m.View(); !strings.Contains(view, "Jump: B") {
		t.Fatalf("expected jump hint in view, got:\n%s", view)
	}
}

func TestViewFooterListsKeys(t *testing.T) {
	m := newTestModel(t, Options{Width: 120, Height: 10, ShowFooter: true})
	view := m.View()
	if !strings.Contains(view, "quit") || !strings.Contains(view, "next letter") {
		t.Fatalf("expected key help in footer, got:\n%s", view)
	}
}

func TestViewShowsEmptyAndNoMatchMessages(t *testing.T) {
	m := newTestModel(t, Options{Width: 60, Height: 10})
	lvl := pushEntries(m, "/srv/roms")
	if view := m.View(); !strings.Contains(view, "(no entries)") {
		t.Fatalf("expected empty message, got:\n%s", view)
	}
	lvl.UpdateItems(menu.EntryItems([]content.Entry{{Name: "a.nes", Path: "/srv/roms/a.nes"}}))
	lvl.SetFilter("zzz", 3)
	if view := m.View(); !strings.Contains(view, `No matches for "zzz"`) {
		t.Fatalf("expected no-match message, got:\n%s", view)
	}
}

func TestViewShowsWatcherError(t *testing.T) {
	m := newTestModel(t, Options{Width: 80, Height: 10})
	m.backendErr = "watch: too many open files"
	if view := m.View(); !strings.Contains(view, "Watcher: watch: too many open files") {
		t.Fatalf("expected watcher error in view, got:\n%s", view)
	}
}
