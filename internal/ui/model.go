package ui

import (
	"context"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/atomicstack/navmenu/internal/backend"
	"github.com/atomicstack/navmenu/internal/content"
	"github.com/atomicstack/navmenu/internal/data/dispatcher"
	"github.com/atomicstack/navmenu/internal/menu"
	"github.com/atomicstack/navmenu/internal/state"
	"github.com/atomicstack/navmenu/internal/theme"
	"github.com/atomicstack/navmenu/internal/ui/command"
	uistate "github.com/atomicstack/navmenu/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
)

type level = uistate.Level

const (
	menuHeaderSeparator = "→"
	defaultRootTitle    = "navmenu"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	Root        string
	Content     content.Options
	Wraparound  bool
	Width       int
	Height      int
	ShowFooter  bool
	ShowDetails bool
	Verbose     bool
	// Watcher is optional; without it directory levels are never refreshed.
	Watcher *backend.Watcher
	// Store defaults to a fresh in-memory store.
	Store state.ContentStore
}

// Model implements the Bubble Tea model for the content menu. A Model
// survives several program runs: the stack and every level's navigation
// state are kept while a launch is in progress.
type Model struct {
	stack        []*level
	loading      bool
	pendingID    string
	pendingDir   string
	pendingLabel string
	errMsg       string
	infoMsg      string
	infoExpire   time.Time
	jumpHint     string
	lastMove     string
	width        int
	height       int
	fixedWidth   bool
	fixedHeight  bool
	showFooter   bool
	showDetails  bool
	verbose      bool
	wraparound   bool

	backend    *backend.Watcher
	backendErr string
	runCtx     context.Context
	runCancel  context.CancelFunc

	filterCursor      cursor.Model
	filterCursorDirty bool
	keys              keyMap
	help              help.Model

	handlers map[reflect.Type]msgHandler

	registry    *menu.Registry
	bus         *command.Bus
	rootTitle   string
	root        string
	contentOpts content.Options
	store       state.ContentStore
	dispatcher  *dispatcher.Dispatcher

	pendingLaunch *content.Entry
}

// NewModel initialises the UI state with the root menu and configuration.
func NewModel(opts Options) *Model {
	registry := menu.BuildRegistry()
	store := opts.Store
	if store == nil {
		store = state.NewContentStore()
	}
	root := strings.TrimSpace(opts.Root)
	if root == "" {
		root = "."
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	m := &Model{
		registry:    registry,
		bus:         command.New(),
		backend:     opts.Watcher,
		showFooter:  opts.ShowFooter,
		showDetails: opts.ShowDetails,
		verbose:     opts.Verbose,
		wraparound:  opts.Wraparound,
		rootTitle:   defaultRootTitle,
		root:        root,
		contentOpts: opts.Content,
		store:       store,
		dispatcher:  dispatcher.New(store),
		keys:        defaultKeyMap(),
		help:        help.New(),
	}
	rootLevel := m.newLevel(menu.RootID, defaultRootTitle, menu.RootItems(), registry.Root())
	m.stack = []*level{rootLevel}
	rootLevel.Reset(true)
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
		m.help.Width = opts.Width
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerHandlers()
	return m
}

// newLevel builds a level whose navigation hooks report back to m.
func (m *Model) newLevel(id, title string, items []menu.Item, node *menu.Node) *level {
	lvl := uistate.NewLevel(id, title, items, node, m.wraparound)
	lvl.SetDriver(&levelDriver{m: m, lvl: lvl})
	return lvl
}

// BeginRun prepares the model for a new Bubble Tea program.
func (m *Model) BeginRun() {
	m.EndRun()
	m.runCtx, m.runCancel = context.WithCancel(context.Background())
	m.loading = false
	m.pendingID = ""
	m.pendingDir = ""
	m.pendingLabel = ""
}

// EndRun stops backend reads started by the finished program.
func (m *Model) EndRun() {
	if m.runCancel != nil {
		m.runCancel()
	}
	m.runCancel = nil
}

// PendingLaunch returns the entry chosen by the last run, if any.
func (m *Model) PendingLaunch() (content.Entry, bool) {
	if m.pendingLaunch == nil {
		return content.Entry{}, false
	}
	return *m.pendingLaunch, true
}

// RequestLaunch queues entry as if it had been picked from the menu.
func (m *Model) RequestLaunch(entry content.Entry) {
	m.pendingLaunch = &entry
}

// RecordLaunch stores the outcome of launching entry. Successful launches
// are added to the recent list.
func (m *Model) RecordLaunch(entry content.Entry, err error) {
	m.pendingLaunch = nil
	if err != nil {
		m.errMsg = err.Error()
		m.forceClearInfo()
		return
	}
	m.errMsg = ""
	m.store.AddRecent(entry)
	if m.verbose {
		m.setInfo("Launched " + entry.Name)
	}
	for _, lvl := range m.stack {
		if lvl.ID == menu.RecentID {
			lvl.UpdateItems(menu.EntryItems(m.store.Recent()))
			m.syncViewport(lvl)
		}
	}
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.context(), m.backend))
		cmds = append(cmds, m.rewatchCmds()...)
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) context() context.Context {
	if m.runCtx == nil {
		return context.Background()
	}
	return m.runCtx
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):         m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):  m.handleWindowSizeMsg,
		reflect.TypeOf(categoryLoadedMsg{}):  m.handleCategoryLoadedMsg,
		reflect.TypeOf(menu.ActionResult{}):  m.handleActionResultMsg,
		reflect.TypeOf(menu.LaunchRequest{}): m.handleLaunchRequestMsg,
		reflect.TypeOf(backendEventMsg{}):    m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):     m.handleBackendDoneMsg,
		reflect.TypeOf(watchFailedMsg{}):     m.handleWatchFailedMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) currentLevel() *level {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}
