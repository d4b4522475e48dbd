package ui

import (
	"context"

	"github.com/atomicstack/navmenu/internal/backend"
	"github.com/atomicstack/navmenu/internal/logging"
	"github.com/atomicstack/navmenu/internal/logging/events"
	"github.com/atomicstack/navmenu/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

// waitForBackendEvent reads one watcher event. It returns nil once ctx is
// cancelled so a finished program leaves no reader behind.
func waitForBackendEvent(ctx context.Context, w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-w.Events():
			if !ok {
				return backendDoneMsg{}
			}
			return backendEventMsg{event: evt}
		}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

type watchFailedMsg struct {
	dir string
	err error
}

// watchCmd asks the watcher to follow dir.
func (m *Model) watchCmd(dir string) tea.Cmd {
	if dir == "" || m.backend == nil {
		return nil
	}
	w := m.backend
	return func() tea.Msg {
		if err := w.Watch(dir); err != nil {
			logging.Error(err)
			return watchFailedMsg{dir: dir, err: err}
		}
		return nil
	}
}

// rewatchCmds refreshes every directory on the stack, used when a program
// resumes after a launch.
func (m *Model) rewatchCmds() []tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.stack))
	for _, lvl := range m.stack {
		if cmd := m.watchCmd(lvl.Dir()); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

func (m *Model) handleWatchFailedMsg(msg tea.Msg) tea.Cmd {
	failed, ok := msg.(watchFailedMsg)
	if !ok {
		return nil
	}
	events.Content.Error(failed.dir, failed.err)
	m.backendErr = failed.err.Error()
	return nil
}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	cmd := m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		waitCmd := waitForBackendEvent(m.context(), m.backend)
		if cmd != nil {
			return tea.Batch(cmd, waitCmd)
		}
		return waitCmd
	}
	return cmd
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent stores the event and refreshes every level that lists
// the affected directory.
func (m *Model) applyBackendEvent(evt backend.Event) tea.Cmd {
	res := m.dispatcher.Handle(evt)
	if evt.Err != nil {
		m.backendErr = evt.Err.Error()
		logging.Error(evt.Err)
		if res.Removed {
			m.refreshDir(res.Dir, nil)
		}
		return nil
	}
	m.backendErr = ""
	if !res.ContentUpdated {
		return nil
	}
	snap, ok := m.store.Snapshot(res.Dir)
	if !ok {
		return nil
	}
	m.refreshDir(res.Dir, menu.EntryItems(snap.Entries))
	return nil
}

func (m *Model) refreshDir(dir string, items []menu.Item) {
	for _, lvl := range m.stack {
		if lvl.ID != menu.ContentID || lvl.Dir() != dir {
			continue
		}
		lvl.UpdateItems(items)
		m.syncViewport(lvl)
		events.UI.Refresh(lvl.ID, len(lvl.Items))
	}
}
