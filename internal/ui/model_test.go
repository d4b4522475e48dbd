package ui

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/atomicstack/navmenu/internal/content"
	"github.com/atomicstack/navmenu/internal/logging"
	"github.com/atomicstack/navmenu/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel(t *testing.T, opts Options) *Model {
	t.Helper()
	logging.Configure(filepath.Join(t.TempDir(), "navmenu.log"))
	return NewModel(opts)
}

// pushEntries pushes a content level listing files named names under dir.
func pushEntries(m *Model, dir string, names ...string) *level {
	entries := make([]content.Entry, len(names))
	for i, name := range names {
		entries[i] = content.Entry{Name: name, Path: filepath.Join(dir, name), Size: int64(i + 1)}
	}
	node, _ := m.registry.Find(menu.ContentID)
	lvl := m.newLevel(menu.ContentID, filepath.Base(dir), menu.EntryItems(entries), node)
	lvl.Data = dir
	m.stack = append(m.stack, lvl)
	lvl.Reset(true)
	return lvl
}

func TestNewModelStartsAtRoot(t *testing.T) {
	m := newTestModel(t, Options{Root: "/srv/roms"})
	if len(m.stack) != 1 {
		t.Fatalf("expected a single root level, got %d", len(m.stack))
	}
	root := m.currentLevel()
	if root.ID != menu.RootID {
		t.Fatalf("expected root level, got %s", root.ID)
	}
	if len(root.Items) != 2 {
		t.Fatalf("expected browse and recent items, got %d", len(root.Items))
	}
	if m.root != "/srv/roms" {
		t.Fatalf("expected root /srv/roms, got %s", m.root)
	}
}

func TestMenuHeaderRootLevel(t *testing.T) {
	m := newTestModel(t, Options{})
	if got := m.menuHeader(); got != defaultRootTitle {
		t.Fatalf("expected %q, got %q", defaultRootTitle, got)
	}
}

func TestMenuHeaderNestedLevels(t *testing.T) {
	m := newTestModel(t, Options{})
	pushEntries(m, "/srv/roms")
	pushEntries(m, "/srv/roms/snes")
	want := "navmenu→roms→snes"
	if got := m.menuHeader(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestLaunchRequestStoresEntryAndQuits(t *testing.T) {
	m := newTestModel(t, Options{})
	entry := content.Entry{Name: "a.nes", Path: "/srv/roms/a.nes"}
	cmd := m.handleLaunchRequestMsg(menu.LaunchRequest{Entry: entry})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	got, ok := m.PendingLaunch()
	if !ok || got.Path != entry.Path {
		t.Fatalf("expected pending launch %s, got %#v (ok=%v)", entry.Path, got, ok)
	}
	m.RecordLaunch(got, nil)
	if _, ok := m.PendingLaunch(); ok {
		t.Fatalf("expected pending launch cleared")
	}
}

func TestRequestLaunchQueuesEntry(t *testing.T) {
	m := newTestModel(t, Options{})
	m.RequestLaunch(content.Entry{Name: "b.nes", Path: "/srv/roms/b.nes"})
	got, ok := m.PendingLaunch()
	if !ok || got.Name != "b.nes" {
		t.Fatalf("expected b.nes queued, got %#v (ok=%v)", got, ok)
	}
}

func TestRecordLaunchAddsRecentAndRefreshesLevel(t *testing.T) {
	m := newTestModel(t, Options{Verbose: true})
	recentNode, _ := m.registry.Find(menu.RecentID)
	recent := m.newLevel(menu.RecentID, "recent", nil, recentNode)
	m.stack = append(m.stack, recent)

	entry := content.Entry{Name: "a.nes", Path: "/srv/roms/a.nes"}
	m.RecordLaunch(entry, nil)

	if got := m.store.Recent(); len(got) != 1 || got[0].Path != entry.Path {
		t.Fatalf("expected recent list with %s, got %#v", entry.Path, got)
	}
	if len(recent.Items) != 1 || recent.Items[0].ID != entry.Path {
		t.Fatalf("expected recent level refreshed, got %#v", recent.Items)
	}
	if m.infoMsg != "Launched a.nes" {
		t.Fatalf("expected launch info, got %q", m.infoMsg)
	}
}

func TestRecordLaunchFailureSetsError(t *testing.T) {
	m := newTestModel(t, Options{})
	m.RecordLaunch(content.Entry{Name: "a.nes", Path: "/srv/roms/a.nes"}, errors.New("exit status 1"))
	if m.errMsg != "exit status 1" {
		t.Fatalf("expected error message, got %q", m.errMsg)
	}
	if got := m.store.Recent(); len(got) != 0 {
		t.Fatalf("expected no recent entries, got %#v", got)
	}
}

func TestBeginRunResetsLoadingState(t *testing.T) {
	m := newTestModel(t, Options{})
	m.beginLoading(menu.ContentID, "/srv/roms", "roms")
	m.BeginRun()
	defer m.EndRun()
	if m.loading || m.pendingID != "" || m.pendingDir != "" {
		t.Fatalf("expected loading state cleared")
	}
	if m.context().Err() != nil {
		t.Fatalf("expected live run context")
	}
	ctx := m.context()
	m.EndRun()
	if ctx.Err() == nil {
		t.Fatalf("expected run context cancelled by EndRun")
	}
}

func TestHandlerForRoutesPointerMessages(t *testing.T) {
	m := newTestModel(t, Options{})
	if m.handlerFor(&tea.WindowSizeMsg{}) == nil {
		t.Fatalf("expected handler for pointer message")
	}
	if m.handlerFor(struct{}{}) != nil {
		t.Fatalf("expected no handler for unknown message")
	}
}
