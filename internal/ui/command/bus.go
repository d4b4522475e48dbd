package command

import (
	"fmt"
	"sync/atomic"

	"github.com/atomicstack/navmenu/internal/logging"
	"github.com/atomicstack/navmenu/internal/logging/events"
	"github.com/atomicstack/navmenu/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

// Request names a menu action and the item it runs on.
type Request struct {
	ID      string
	Label   string
	Handler menu.Action
	Item    menu.Item
}

// Bus runs menu actions as Bubble Tea commands.
type Bus struct {
	inflight atomic.Int32
}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Inflight returns the number of queued actions that have not finished.
func (b *Bus) Inflight() int {
	return int(b.inflight.Load())
}

// Execute wraps a menu action into a Bubble Tea command. A panicking action
// is reported as a failed menu.ActionResult.
func (b *Bus) Execute(ctx menu.Context, req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	b.inflight.Add(1)
	return func() (msg tea.Msg) {
		defer b.inflight.Add(-1)
		defer func() {
			if r := recover(); r != nil {
				err := fmt.Errorf("action %s panicked: %v", req.ID, r)
				logging.Error(err)
				msg = menu.ActionResult{Err: err}
			}
		}()
		if req.Handler == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		cmd := req.Handler(ctx, req.Item)
		if cmd == nil {
			events.Command.NoOp(req.ID, req.Label)
			return nil
		}
		msg = cmd()
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}
