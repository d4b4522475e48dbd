package launch

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"

	"github.com/atomicstack/navmenu/internal/logging/events"
)

type tmuxClient interface {
	NewWindow(name, dir, command string) error
	Close() error
}

type gotmuxClient struct {
	tmux *gotmux.Tmux
}

func (c *gotmuxClient) NewWindow(name, dir, command string) error {
	args := []string{"new-window", "-n", name, "-c", dir}
	if command != "" {
		args = append(args, command)
	}
	_, err := c.tmux.Command(args...)
	return err
}

func (c *gotmuxClient) Close() error {
	return c.tmux.Close()
}

var newTmux = func(socketPath string) (tmuxClient, error) {
	var (
		t   *gotmux.Tmux
		err error
	)
	if socketPath != "" {
		t, err = gotmux.NewTmux(socketPath)
	} else {
		t, err = gotmux.DefaultTmux()
	}
	if err != nil {
		return nil, err
	}
	return &gotmuxClient{tmux: t}, nil
}

// TmuxLauncher opens content in a new tmux window. With an empty template
// the window starts a shell in the file's directory.
type TmuxLauncher struct {
	SocketPath string
	Template   string
}

func (l *TmuxLauncher) Name() string { return "tmux" }

func (l *TmuxLauncher) Launch(ctx context.Context, req Request) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	socket, err := ResolveSocketPath(l.SocketPath)
	if err != nil {
		return fmt.Errorf("resolve socket path: %w", err)
	}
	command := ""
	if strings.TrimSpace(l.Template) != "" {
		args, err := Expand(l.Template, req.Path)
		if err != nil {
			return err
		}
		command = shellJoin(args)
	}
	name := req.Name
	if name == "" {
		name = filepath.Base(req.Path)
	}
	events.Launch.Start(l.Name(), req.Path, []string{socket, command})

	client, err := newTmux(socket)
	if err != nil {
		err = fmt.Errorf("connect to tmux at %s: %w", socket, err)
		events.Launch.Finish(l.Name(), req.Path, err)
		return err
	}
	defer client.Close()
	if err := client.NewWindow(name, filepath.Dir(req.Path), command); err != nil {
		err = fmt.Errorf("tmux new-window: %w", err)
		events.Launch.Finish(l.Name(), req.Path, err)
		return err
	}
	events.Launch.Finish(l.Name(), req.Path, nil)
	return nil
}

// ResolveSocketPath picks the tmux socket: explicit value, then the socket
// of the enclosing tmux session, then tmux's default location.
func ResolveSocketPath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if tmuxEnv := os.Getenv("TMUX"); tmuxEnv != "" {
		parts := strings.Split(tmuxEnv, ",")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0], nil
		}
	}
	baseDir := os.Getenv("TMUX_TMPDIR")
	if baseDir == "" {
		baseDir = "/tmp"
	}
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return filepath.Join(baseDir, fmt.Sprintf("tmux-%s", u.Uid), "default"), nil
}

func shellJoin(args []string) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		quoted[i] = shellQuote(arg)
	}
	return strings.Join(quoted, " ")
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.IndexFunc(s, func(r rune) bool {
		return !(r == '/' || r == '.' || r == '-' || r == '_' || r == '=' || r == ':' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'))
	}) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
