// Package launch runs the program chosen for a selected file.
package launch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/atomicstack/navmenu/internal/logging/events"
)

const pathPlaceholder = "{path}"

var ErrNoCommand = errors.New("no launch command configured")

// Request describes a file to launch.
type Request struct {
	Path string
	Name string
}

// Launcher starts content. Launch blocks until the launched program exits
// or, for detached launchers, until it has been handed off.
type Launcher interface {
	Name() string
	Launch(ctx context.Context, req Request) error
}

// New returns the launcher registered under name.
func New(name, command, socketPath string) (Launcher, error) {
	switch name {
	case "", "exec":
		if strings.TrimSpace(command) == "" {
			return nil, ErrNoCommand
		}
		return &ExecLauncher{Template: command}, nil
	case "tmux":
		return &TmuxLauncher{SocketPath: socketPath, Template: command}, nil
	default:
		return nil, fmt.Errorf("unknown launcher %q", name)
	}
}

// ExecLauncher runs a command template attached to the terminal.
type ExecLauncher struct {
	Template string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (l *ExecLauncher) Name() string { return "exec" }

func (l *ExecLauncher) Launch(ctx context.Context, req Request) error {
	args, err := Expand(l.Template, req.Path)
	if err != nil {
		return err
	}
	events.Launch.Start(l.Name(), req.Path, args)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = orReader(l.Stdin, os.Stdin)
	cmd.Stdout = orWriter(l.Stdout, os.Stdout)
	cmd.Stderr = orWriter(l.Stderr, os.Stderr)
	err = cmd.Run()
	if err != nil {
		err = fmt.Errorf("run %s: %w", args[0], err)
	}
	events.Launch.Finish(l.Name(), req.Path, err)
	return err
}

// Expand splits template on whitespace and substitutes path for every
// {path} placeholder. A template without a placeholder gets path appended.
func Expand(template, path string) ([]string, error) {
	fields := strings.Fields(template)
	if len(fields) == 0 {
		return nil, ErrNoCommand
	}
	substituted := false
	args := make([]string, len(fields))
	for i, field := range fields {
		if strings.Contains(field, pathPlaceholder) {
			field = strings.ReplaceAll(field, pathPlaceholder, path)
			substituted = true
		}
		args[i] = field
	}
	if !substituted {
		args = append(args, path)
	}
	return args, nil
}

func orReader(r io.Reader, fallback io.Reader) io.Reader {
	if r != nil {
		return r
	}
	return fallback
}

func orWriter(w io.Writer, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
