package ui

import (
	"github.com/atomicstack/navmenu/internal/logging"
	"github.com/atomicstack/navmenu/internal/logging/events"
	"github.com/atomicstack/navmenu/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(menu.ActionResult)
	if !ok {
		return nil
	}
	m.finishLoading()
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		m.forceClearInfo()
		events.Action.Error(result.Err)
		return nil
	}
	if result.Info != "" && m.verbose {
		m.setInfo(result.Info)
	} else {
		m.forceClearInfo()
	}
	events.Action.Success(result.Info)
	return nil
}

// handleLaunchRequestMsg ends the program so the shell can launch the entry.
func (m *Model) handleLaunchRequestMsg(msg tea.Msg) tea.Cmd {
	req, ok := msg.(menu.LaunchRequest)
	if !ok {
		return nil
	}
	m.finishLoading()
	m.errMsg = ""
	entry := req.Entry
	m.pendingLaunch = &entry
	events.Action.Success("launch " + entry.Path)
	return tea.Quit
}

func (m *Model) loadMenuCmd(id, title, dir string, loader menu.Loader) tea.Cmd {
	ctx := m.menuContext(dir)
	return func() tea.Msg {
		items, err := loader(ctx)
		if err != nil {
			logging.Error(err)
		}
		return categoryLoadedMsg{id: id, title: title, dir: dir, items: items, err: err}
	}
}

// categoryLoadedMsg mirrors the async loader response.
type categoryLoadedMsg struct {
	id    string
	title string
	dir   string
	items []menu.Item
	err   error
}

func (m *Model) menuContext(dir string) menu.Context {
	ctx := menu.Context{
		Root:    m.root,
		Dir:     dir,
		Options: m.contentOpts,
		Recent:  m.store.Recent(),
	}
	if dir != "" {
		if snap, ok := m.store.Snapshot(dir); ok {
			ctx.Cached = &snap
		}
	}
	return ctx
}
