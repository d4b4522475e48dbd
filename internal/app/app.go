package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atomicstack/navmenu/internal/backend"
	"github.com/atomicstack/navmenu/internal/content"
	"github.com/atomicstack/navmenu/internal/launch"
	"github.com/atomicstack/navmenu/internal/logging"
	"github.com/atomicstack/navmenu/internal/logging/events"
	"github.com/atomicstack/navmenu/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

const watchDebounce = 200 * time.Millisecond

// ErrNotLaunchable reports a startup launch path that the menu would not list
// as a file.
var ErrNotLaunchable = errors.New("not a launchable file")

// Config describes user-provided application options.
type Config struct {
	Root          string
	Extensions    []string
	ShowHidden    bool
	Wraparound    bool
	Launcher      string
	LaunchCommand string
	SocketPath    string
	Width         int
	Height        int
	ShowFooter    bool
	ShowDetails   bool
	Verbose       bool
	// Launch names a file to start before the menu is shown.
	Launch        string
}

// Mode is the state of the application loop.
type Mode int

const (
	ModeMenu Mode = iota
	ModeLaunch
	ModeShutdown
)

func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	case ModeLaunch:
		return "launch"
	case ModeShutdown:
		return "shutdown"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

var runProgram = func(model tea.Model) error {
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// Run resolves the content root, starts the directory watcher and switches
// between the menu and the launcher until the menu is closed.
func Run(cfg Config) error {
	logging.NewSession()
	root, err := resolveRoot(cfg.Root)
	if err != nil {
		return err
	}
	launcher, err := launch.New(cfg.Launcher, cfg.LaunchCommand, cfg.SocketPath)
	if err != nil {
		return fmt.Errorf("create launcher: %w", err)
	}
	opts := content.Options{ShowHidden: cfg.ShowHidden, Extensions: cfg.Extensions}
	var autostart content.Entry
	if cfg.Launch != "" {
		if autostart, err = resolveLaunch(cfg.Launch, opts); err != nil {
			return err
		}
	}
	watcher, err := backend.NewWatcher(opts, watchDebounce)
	if err != nil {
		return err
	}
	defer func() {
		watcher.Stop()
		watcher.Wait()
	}()
	model := ui.NewModel(ui.Options{
		Root:        root,
		Content:     opts,
		Wraparound:  cfg.Wraparound,
		Width:       cfg.Width,
		Height:      cfg.Height,
		ShowFooter:  cfg.ShowFooter,
		ShowDetails: cfg.ShowDetails,
		Verbose:     cfg.Verbose,
		Watcher:     watcher,
	})
	if autostart.Path != "" {
		model.RequestLaunch(autostart)
	}
	return loop(context.Background(), model, launcher)
}

// loop runs the mode state machine. The same model is reused for every menu
// run so the stack and selections survive a launch. A launch requested
// before the first run starts the loop in ModeLaunch.
func loop(ctx context.Context, model *ui.Model, launcher launch.Launcher) error {
	mode := ModeMenu
	if _, ok := model.PendingLaunch(); ok {
		mode = ModeLaunch
	}
	for {
		events.App.Mode(mode.String())
		switch mode {
		case ModeMenu:
			model.BeginRun()
			err := runProgram(model)
			model.EndRun()
			if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return err
			}
			mode = ModeShutdown
			if _, ok := model.PendingLaunch(); ok && err == nil {
				mode = ModeLaunch
			}
		case ModeLaunch:
			entry, _ := model.PendingLaunch()
			err := launcher.Launch(ctx, launch.Request{Path: entry.Path, Name: entry.Name})
			if err != nil {
				logging.Error(err)
			}
			model.RecordLaunch(entry, err)
			mode = ModeMenu
		default:
			events.App.Shutdown("menu closed")
			return nil
		}
	}
}

func resolveRoot(root string) (string, error) {
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve content root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("content root: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("content root %s is not a directory", abs)
	}
	return abs, nil
}

// resolveLaunch looks path up in its parent directory listing so the
// startup launch obeys the same hidden and extension rules as the menu.
func resolveLaunch(path string, opts content.Options) (content.Entry, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return content.Entry{}, fmt.Errorf("resolve launch path: %w", err)
	}
	snap, err := content.Scan(filepath.Dir(abs), opts)
	if err != nil {
		return content.Entry{}, fmt.Errorf("launch path: %w", err)
	}
	entry, ok := snap.Find(abs)
	switch {
	case !ok:
		return content.Entry{}, fmt.Errorf("launch path %s: %w", abs, ErrNotLaunchable)
	case entry.Dir:
		return content.Entry{}, fmt.Errorf("launch path %s is a directory: %w", abs, ErrNotLaunchable)
	}
	return entry, nil
}
