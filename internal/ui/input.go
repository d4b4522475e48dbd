package ui

import (
	"unicode"

	"github.com/atomicstack/navmenu/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	filterPromptText  = "» "
	filterPlaceholder = "(type to search)"
)

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

// editFilter applies edit to the current level's query. Query edits clear
// stale status text and keep the cursor row visible; pure caret moves only
// mark the caret dirty.
func (m *Model) editFilter(edit func(*level) bool, trace func(*level), caretOnly bool) bool {
	current := m.currentLevel()
	if current == nil {
		return false
	}
	before := current.FilterCursorPos()
	if !edit(current) {
		return false
	}
	if before != current.FilterCursorPos() {
		m.filterCursorDirty = true
	}
	if !caretOnly {
		m.forceClearInfo()
		m.errMsg = ""
		m.syncViewport(current)
	}
	trace(current)
	return true
}

func (m *Model) handleTextInput(msg tea.KeyMsg) bool {
	if m.loading || m.currentLevel() == nil {
		return false
	}
	switch msg.String() {
	case "ctrl+u":
		return m.editFilter(func(l *level) bool {
			if l.Filter == "" {
				return false
			}
			l.SetFilter("", 0)
			return true
		}, func(l *level) { events.Filter.Cleared(l.ID) }, false)
	case "ctrl+w":
		return m.editFilter((*level).DeleteFilterWordBackward,
			func(l *level) { events.Filter.WordBackspace(l.ID, l.Filter) }, false)
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		return m.editFilter((*level).DeleteFilterRuneBackward,
			func(l *level) { events.Filter.Backspace(l.ID, l.Filter) }, false)
	case tea.KeyRunes:
		if msg.Alt || !printable(msg.Runes) {
			return false
		}
		return m.appendToFilter(string(msg.Runes))
	case tea.KeySpace:
		return m.appendToFilter(" ")
	case tea.KeyLeft:
		return m.editFilter((*level).MoveFilterCursorRuneBackward, m.traceFilterCursor, true)
	case tea.KeyRight:
		return m.editFilter((*level).MoveFilterCursorRuneForward, m.traceFilterCursor, true)
	}
	return false
}

func printable(runes []rune) bool {
	if len(runes) == 0 {
		return false
	}
	for _, r := range runes {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func (m *Model) traceFilterCursor(l *level) {
	events.Filter.Cursor(l.ID, l.FilterCursor)
}

func (m *Model) appendToFilter(text string) bool {
	if text == "" {
		return false
	}
	return m.editFilter(func(l *level) bool { return l.InsertFilterText(text) },
		func(l *level) { events.Filter.Append(l.ID, l.Filter) }, false)
}

// filterPrompt renders the query line with the caret at the filter cursor,
// or the placeholder when the query is empty.
func (m *Model) filterPrompt() (string, *lipgloss.Style) {
	current := m.currentLevel()
	if current == nil {
		return ">", styles.Filter
	}
	m.filterCursor.TextStyle = lipgloss.Style{}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	}
	if styles.Cursor != nil {
		m.filterCursor.Style = styles.Cursor.Copy()
	}
	prompt := renderWith(styles.FilterPrompt, filterPromptText)

	if current.Filter == "" {
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		runes := []rune(filterPlaceholder)
		return prompt + m.renderFilterCursor(string(runes[:1])) + renderWith(styles.FilterPlaceholder, string(runes[1:])), nil
	}

	runes := []rune(current.Filter)
	pos := max(0, min(current.FilterCursorPos(), len(runes)))
	caret, after := " ", ""
	if pos < len(runes) {
		caret = string(runes[pos])
		after = renderWith(styles.Filter, string(runes[pos+1:]))
	}
	return prompt + renderWith(styles.Filter, string(runes[:pos])) + m.renderFilterCursor(caret) + after, nil
}

func renderWith(style *lipgloss.Style, value string) string {
	if style == nil || value == "" {
		return value
	}
	return style.Render(value)
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)
	base := m.filterCursor.TextStyle.Copy().Inline(true)
	switch {
	case m.filterCursor.Blink:
		return base.Render(char)
	case styles.Cursor != nil:
		return base.Inherit(styles.Cursor.Copy().Inline(true)).Blink(false).Render(char)
	default:
		return base.Reverse(true).Render(char)
	}
}
