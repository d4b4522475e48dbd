package menu

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/navmenu/internal/content"
)

func TestRegistryWiresRootChildren(t *testing.T) {
	reg := BuildRegistry()
	for _, id := range []string{ContentID, RecentID} {
		node, ok := reg.Child(RootID, id)
		if !ok {
			t.Fatalf("expected %s under root", id)
		}
		if node.Loader == nil || node.Action == nil {
			t.Fatalf("expected loader and action for %s", id)
		}
	}
	if _, ok := reg.Find("missing"); ok {
		t.Fatalf("unexpected node for missing id")
	}
	items, err := reg.Root().Loader(Context{})
	if err != nil || len(items) != 2 {
		t.Fatalf("unexpected root items %v %v", items, err)
	}
}

func TestParentKey(t *testing.T) {
	if p, k := parentKey("content"); p != RootID || k != "content" {
		t.Fatalf("unexpected parent key %s %s", p, k)
	}
	if p, k := parentKey("a:b:c"); p != "a:b" || k != "c" {
		t.Fatalf("unexpected parent key %s %s", p, k)
	}
}

func TestEntryItemsAlignsColumns(t *testing.T) {
	items := EntryItems([]content.Entry{
		{Name: "saves", Path: "/r/saves", Dir: true},
		{Name: "zelda.nes", Path: "/r/zelda.nes", Size: 131072},
		{Name: "a.sfc", Path: "/r/a.sfc", Size: 12},
	})
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	want := []string{
		"saves/         dir",
		"zelda.nes  128 KiB",
		"a.sfc         12 B",
	}
	for i, item := range items {
		if item.Label != want[i] {
			t.Fatalf("item %d: expected %q, got %q", i, want[i], item.Label)
		}
	}
	if items[1].ID != "/r/zelda.nes" || items[1].Entry.Name != "zelda.nes" {
		t.Fatalf("unexpected item %#v", items[1])
	}
	if items[0].Entry == items[1].Entry {
		t.Fatalf("expected distinct entry pointers")
	}
	if !items[0].IsDir() || items[1].IsDir() {
		t.Fatalf("unexpected dir flags")
	}
	if items[2].SortKey() != "a.sfc" {
		t.Fatalf("expected sort key from entry name, got %q", items[2].SortKey())
	}
}

func TestLoadContentMenuPrefersCache(t *testing.T) {
	cached := &content.Snapshot{Dir: "/cached", Entries: []content.Entry{{Name: "x", Path: "/cached/x"}}}
	items, err := loadContentMenu(Context{Dir: "/cached", Cached: cached})
	if err != nil || len(items) != 1 || items[0].ID != "/cached/x" {
		t.Fatalf("unexpected items %v %v", items, err)
	}
}

func TestLoadContentMenuScansDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "b.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	items, err := loadContentMenu(Context{Dir: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || !strings.HasPrefix(items[0].Label, "b.txt") {
		t.Fatalf("unexpected items %#v", items)
	}

	if _, err := loadContentMenu(Context{Dir: filepath.Join(dir, "missing")}); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestLaunchAction(t *testing.T) {
	entry := content.Entry{Name: "game.nes", Path: "/r/game.nes"}
	msg := LaunchAction(Context{}, Item{ID: entry.Path, Label: "game", Entry: &entry})()
	req, ok := msg.(LaunchRequest)
	if !ok || req.Entry.Path != "/r/game.nes" {
		t.Fatalf("expected launch request, got %#v", msg)
	}

	dir := content.Entry{Name: "saves", Dir: true}
	msg = LaunchAction(Context{}, Item{Label: "saves/", Entry: &dir})()
	if res, ok := msg.(ActionResult); !ok || res.Err == nil {
		t.Fatalf("expected error result for directory, got %#v", msg)
	}

	msg = LaunchAction(Context{}, Item{Label: "plain"})()
	if res, ok := msg.(ActionResult); !ok || res.Err == nil {
		t.Fatalf("expected error result for plain item, got %#v", msg)
	}
}

func TestLoadRecentMenu(t *testing.T) {
	items, err := loadRecentMenu(Context{Recent: []content.Entry{{Name: "a", Path: "/a"}}})
	if err != nil || len(items) != 1 {
		t.Fatalf("unexpected items %v %v", items, err)
	}
	items, _ = loadRecentMenu(Context{})
	if items != nil {
		t.Fatalf("expected no items for empty history")
	}
}
