// Package ui contains the Bubble Tea program that browses content
// directories. The Model type focuses on message orchestration while
// dedicated files own navigation, input, rendering, and backend updates.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Key presses are matched against a bubbles/key keymap. Cursor movement is
//     delegated to the level's navigation engine (internal/navigation); the
//     engine calls back into a per-level driver (driver.go) which keeps the
//     viewport on the selection, records the move direction, and shows the
//     letter reached by an alphabet jump. Every hook is traced.
//
// State ownership:
//   - Menu level state lives in internal/ui/state.Level: items, filter,
//     navigation state, alphabet index and viewport.
//   - Directory snapshots and the recent list live in internal/state and are
//     updated by the dispatcher from watcher events.
//   - Actions run through the internal/ui/command bus. Choosing a file yields
//     a menu.LaunchRequest; the model records it and quits so the application
//     shell can launch it and start a new program on the same Model.
//
// Backend interactions:
//   - A backend.Watcher follows every directory on the stack. Each event is
//     applied by applyBackendEvent, which refreshes the levels listing the
//     changed directory. Reads are bound to the current run's context.
package ui
