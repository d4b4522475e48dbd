package ui

import (
	"fmt"
	"path/filepath"

	"github.com/atomicstack/navmenu/internal/logging/events"
	"github.com/atomicstack/navmenu/internal/menu"
	"github.com/atomicstack/navmenu/internal/ui/command"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleEscapeKey() tea.Cmd {
	current := m.currentLevel()
	if current == nil {
		return tea.Quit
	}
	if m.loading {
		m.finishLoading()
		current.LastCursor = -1
		return nil
	}
	if len(m.stack) <= 1 {
		return tea.Quit
	}
	parent := m.stack[len(m.stack)-2]
	m.stack = m.stack[:len(m.stack)-1]
	if dir := current.Dir(); dir != "" && !m.dirInStack(dir) && m.backend != nil {
		m.backend.Unwatch(dir)
	}
	if parent != nil {
		restore := -1
		if parent.LastCursor >= 0 && parent.LastCursor < len(parent.Items) {
			restore = parent.LastCursor
		} else if idx := parent.IndexOf(current.Dir()); idx >= 0 {
			restore = idx
		} else if idx := parent.IndexOf(current.ID); idx >= 0 {
			restore = idx
		}
		if restore >= 0 {
			parent.SetCursor(restore)
		} else {
			m.syncViewport(parent)
		}
		parent.LastCursor = -1
		events.UI.MenuPop(current.ID, parent.Cursor())
	}
	m.errMsg = ""
	m.forceClearInfo()
	return nil
}

func (m *Model) dirInStack(dir string) bool {
	for _, lvl := range m.stack {
		if lvl.Dir() == dir {
			return true
		}
	}
	return false
}

func (m *Model) handleEnterKey() tea.Cmd {
	if m.loading {
		return nil
	}
	current := m.currentLevel()
	if current == nil {
		return nil
	}
	item, ok := current.Current()
	if !ok {
		return nil
	}
	events.UI.MenuEnter(current.ID, item.ID, item.Label, current.Filter)
	if current.Filter != "" {
		m.editFilter(func(l *level) bool {
			l.SetFilter("", 0)
			return true
		}, func(l *level) { events.Filter.Cleared(l.ID) }, true)
		if idx := current.IndexOf(item.ID); idx >= 0 {
			current.SetCursor(idx)
		}
	}
	if item.IsDir() {
		current.LastCursor = current.Cursor()
		return m.openDir(item.Entry.Path, item.Entry.Name)
	}
	node := current.Node
	if node == nil {
		node, _ = m.registry.Find(current.ID)
	}
	if node != nil {
		if child, ok := m.registry.Child(node.ID, item.ID); ok && child.Loader != nil {
			current.LastCursor = current.Cursor()
			if child.ID == menu.ContentID {
				return m.openDir(m.root, filepath.Base(m.root))
			}
			m.beginLoading(child.ID, "", item.Label)
			return m.loadMenuCmd(child.ID, item.Label, "", child.Loader)
		}
		if node.Action != nil {
			m.beginLoading(node.ID, "", item.Label)
			return m.bus.Execute(m.menuContext(current.Dir()), command.Request{ID: node.ID, Label: item.Label, Handler: node.Action, Item: item})
		}
	}
	m.setInfo(fmt.Sprintf("Selected %s (no action defined yet)", item.Label))
	return nil
}

// openDir loads dir into a new content level.
func (m *Model) openDir(dir, title string) tea.Cmd {
	node, ok := m.registry.Find(menu.ContentID)
	if !ok || node.Loader == nil {
		return nil
	}
	m.beginLoading(node.ID, dir, title)
	return m.loadMenuCmd(node.ID, title, dir, node.Loader)
}

func (m *Model) beginLoading(id, dir, label string) {
	m.loading = true
	m.pendingID = id
	m.pendingDir = dir
	m.pendingLabel = label
	m.errMsg = ""
	m.forceClearInfo()
}

func (m *Model) finishLoading() {
	m.loading = false
	m.pendingID = ""
	m.pendingDir = ""
	m.pendingLabel = ""
}

func (m *Model) moveCursorUp(speed int) {
	if current := m.currentLevel(); current != nil {
		if moved := current.MoveCursorUp(speed); moved {
			events.UI.MenuCursor(current.ID, current.Cursor())
		}
	}
}

func (m *Model) moveCursorDown(speed int) {
	if current := m.currentLevel(); current != nil {
		if moved := current.MoveCursorDown(speed); moved {
			events.UI.MenuCursor(current.ID, current.Cursor())
		}
	}
}

func (m *Model) moveCursorPageUp() {
	if current := m.currentLevel(); current != nil {
		if moved := current.MoveCursorPageUp(m.maxVisibleItems()); moved {
			events.UI.MenuCursor(current.ID, current.Cursor())
		}
	}
}

func (m *Model) moveCursorPageDown() {
	if current := m.currentLevel(); current != nil {
		if moved := current.MoveCursorPageDown(m.maxVisibleItems()); moved {
			events.UI.MenuCursor(current.ID, current.Cursor())
		}
	}
}

func (m *Model) moveCursorHome() {
	if current := m.currentLevel(); current != nil {
		if moved := current.MoveCursorHome(); moved {
			events.UI.MenuCursor(current.ID, current.Cursor())
		}
	}
}

func (m *Model) moveCursorEnd() {
	if current := m.currentLevel(); current != nil {
		if moved := current.MoveCursorEnd(); moved {
			events.UI.MenuCursor(current.ID, current.Cursor())
		}
	}
}

func (m *Model) jumpPrevGroup() {
	if current := m.currentLevel(); current != nil {
		if moved := current.JumpPrevGroup(); moved {
			events.UI.MenuCursor(current.ID, current.Cursor())
		}
	}
}

func (m *Model) jumpNextGroup() {
	if current := m.currentLevel(); current != nil {
		if moved := current.JumpNextGroup(); moved {
			events.UI.MenuCursor(current.ID, current.Cursor())
		}
	}
}

func (m *Model) syncViewport(l *level) {
	if l == nil {
		return
	}
	l.EnsureCursorVisible(m.maxVisibleItems())
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	m.jumpHint = ""
	if m.handleTextInput(keyMsg) {
		return nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return tea.Quit
	case key.Matches(keyMsg, m.keys.Back):
		return m.handleEscapeKey()
	case key.Matches(keyMsg, m.keys.Enter):
		return m.handleEnterKey()
	case key.Matches(keyMsg, m.keys.PrevGroup):
		m.jumpPrevGroup()
	case key.Matches(keyMsg, m.keys.NextGroup):
		m.jumpNextGroup()
	case key.Matches(keyMsg, m.keys.Up):
		m.moveCursorUp(1)
	case key.Matches(keyMsg, m.keys.Down):
		m.moveCursorDown(1)
	case key.Matches(keyMsg, m.keys.PageUp):
		m.moveCursorPageUp()
	case key.Matches(keyMsg, m.keys.PageDown):
		m.moveCursorPageDown()
	case key.Matches(keyMsg, m.keys.Home):
		m.moveCursorHome()
	case key.Matches(keyMsg, m.keys.End):
		m.moveCursorEnd()
	}
	return nil
}

func (m *Model) handleCategoryLoadedMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(categoryLoadedMsg)
	if !ok {
		return nil
	}
	if update.id != m.pendingID || update.dir != m.pendingDir {
		return nil
	}
	m.finishLoading()
	if update.err != nil {
		m.errMsg = update.err.Error()
		if parent := m.currentLevel(); parent != nil {
			parent.LastCursor = -1
		}
		return nil
	}
	m.errMsg = ""
	node, _ := m.registry.Find(update.id)
	lvl := m.newLevel(update.id, update.title, update.items, node)
	if update.dir != "" {
		lvl.Data = update.dir
	}
	m.stack = append(m.stack, lvl)
	lvl.Reset(true)
	if len(lvl.Items) == 0 {
		m.setInfo("No entries found.")
	} else if m.infoMsg != "" {
		m.clearInfo()
	}
	return m.watchCmd(update.dir)
}
