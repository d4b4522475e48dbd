package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/navmenu/internal/content"
	"github.com/atomicstack/navmenu/internal/format/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

const (
	detailsPanelMinWidth = 28
	detailsPanelFraction = 0.4
	menuColumnMinWidth   = 24
)

var detailsBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes
}

// selectedEntry returns the entry under the cursor of the current level.
func (m *Model) selectedEntry() (content.Entry, bool) {
	current := m.currentLevel()
	if current == nil {
		return content.Entry{}, false
	}
	item, ok := current.Current()
	if !ok || item.Entry == nil {
		return content.Entry{}, false
	}
	return *item.Entry, true
}

// hasSideDetails reports whether the details panel is drawn to the right of
// the menu.
func (m *Model) hasSideDetails() bool {
	if !m.showDetails {
		return false
	}
	if _, ok := m.selectedEntry(); !ok {
		return false
	}
	return m.detailsPanelWidth() > 0
}

// detailsPanelWidth returns the panel width in columns, or 0 when the
// terminal is too narrow to split.
func (m *Model) detailsPanelWidth() int {
	if m.width <= 0 {
		return 0
	}
	w := int(float64(m.width) * detailsPanelFraction)
	if w < detailsPanelMinWidth || m.width-w < menuColumnMinWidth {
		return 0
	}
	return w
}

func (m *Model) menuColumnWidth() int {
	return m.width - m.detailsPanelWidth()
}

// View implements tea.Model.
func (m *Model) View() string {
	header := m.menuHeader()
	if m.hasSideDetails() {
		return m.viewSideBySide(header)
	}
	return m.viewVertical(header)
}

func (m *Model) viewVertical(header string) string {
	lines := m.menuLines(header, m.width)
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)
	bottom := applyWidth(m.bottomLines(), m.width)
	return renderLines(append(lines, bottom...))
}

// viewSideBySide renders the menu on the left and the details panel on the
// right, with the status and prompt rows spanning both.
func (m *Model) viewSideBySide(header string) string {
	menuW := m.menuColumnWidth()
	panelW := m.detailsPanelWidth()

	const bottomBarRows = 2
	panelH := m.height - bottomBarRows
	if panelH < 3 {
		panelH = 3
	}

	contentLines := m.menuLines(header, menuW)
	if len(contentLines) > panelH {
		contentLines = contentLines[:panelH]
	}
	for len(contentLines) < panelH {
		contentLines = append(contentLines, styledLine{})
	}
	contentLines = applyWidth(contentLines, menuW)
	leftRows := strings.Split(renderLines(contentLines), "\n")
	for i, row := range leftRows {
		w := lipgloss.Width(row)
		if w > menuW {
			leftRows[i] = truncate.StringWithTail(row, uint(menuW-1), "…")
		} else if w < menuW {
			leftRows[i] = row + strings.Repeat(" ", menuW-w)
		}
	}
	leftStr := strings.Join(leftRows, "\n")

	entry, _ := m.selectedEntry()
	rightStr := m.renderDetailsPanel(entry, panelW, panelH)

	top := lipgloss.JoinHorizontal(lipgloss.Top, leftStr, rightStr)
	bottom := renderLines(applyWidth(m.bottomLines(), m.width))
	return top + "\n" + bottom
}

// menuLines builds the header, visible items, info and footer rows.
func (m *Model) menuLines(header string, width int) []styledLine {
	lines := make([]styledLine, 0, 16)
	if header != "" {
		lines = append(lines, styledLine{text: header, style: styles.Header})
	}
	if current := m.currentLevel(); current != nil {
		m.syncViewport(current)
		start := 0
		displayItems := current.Items
		if maxItems := m.maxVisibleItems(); maxItems > 0 && len(displayItems) > maxItems {
			start = current.ViewportOffset
			if start < 0 {
				start = 0
			}
			if start+maxItems > len(displayItems) {
				start = len(displayItems) - maxItems
				if start < 0 {
					start = 0
				}
				current.ViewportOffset = start
			}
			displayItems = displayItems[start : start+maxItems]
		}
		if m.loading {
			lines = append(lines, styledLine{text: fmt.Sprintf("Loading %s…", m.pendingLabel), style: styles.Loading})
		} else if len(current.Items) == 0 {
			msg := "(no entries)"
			if current.Filter != "" {
				msg = fmt.Sprintf("No matches for %q", current.Filter)
			}
			lines = append(lines, styledLine{text: msg, style: styles.Info})
		} else {
			for i, item := range displayItems {
				lines = append(lines, m.buildItemLine(item.Label, start+i, current, width))
			}
		}
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: m.footerText(width), raw: true})
	}
	return lines
}

func (m *Model) footerText(width int) string {
	m.help.Width = width
	return m.help.View(m.keys)
}

// bottomLines returns the status row and the filter prompt.
func (m *Model) bottomLines() []styledLine {
	var status styledLine
	switch {
	case m.errMsg != "":
		status = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	case m.backendErr != "":
		status = styledLine{text: fmt.Sprintf("Watcher: %s", m.backendErr), style: styles.Error}
	case m.jumpHint != "":
		status = styledLine{text: fmt.Sprintf("Jump: %s", m.jumpHint), style: styles.Hint}
	}
	promptText, _ := m.filterPrompt()
	return []styledLine{status, {text: promptText}}
}

// buildItemLine constructs a single styledLine for a menu item, padded to
// width so the selection background spans the column.
func (m *Model) buildItemLine(label string, idx int, current *level, width int) styledLine {
	indicator := "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if idx == current.Cursor() {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	fullText := indicator + " " + label
	if width > 0 {
		if pad := width - runewidth.StringWidth(fullText); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

// detailLines describes entry as aligned label/value rows.
func detailLines(entry content.Entry) []string {
	kind := "directory"
	if !entry.Dir {
		kind = "file"
		if ext := entry.Ext(); ext != "" {
			kind = strings.ToUpper(ext) + " file"
		}
	}
	rows := [][]string{{"kind", kind}}
	if !entry.Dir {
		rows = append(rows, []string{"size", fmt.Sprintf("%s (%s bytes)", humanize.IBytes(uint64(entry.Size)), humanize.Comma(entry.Size))})
	}
	if !entry.ModTime.IsZero() {
		rows = append(rows, []string{"modified", humanize.Time(entry.ModTime)})
	}
	rows = append(rows, []string{"path", entry.Path})
	return table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft})
}

// renderDetailsPanel draws the bordered details box with exactly height rows
// and totalWidth columns.
func (m *Model) renderDetailsPanel(entry content.Entry, totalWidth, height int) string {
	const (
		tlc = "╭"
		trc = "╮"
		blc = "╰"
		brc = "╯"
		hz  = "─"
		vt  = "│"
	)

	innerW := totalWidth - 2
	innerH := height - 2
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}

	titleSeg := " " + entry.Name + " "
	if entry.Name == "" {
		titleSeg = " Details "
	}
	titleSeg = table.Fit(titleSeg, totalWidth-4, "… ")
	dashes := totalWidth - 4 - runewidth.StringWidth(titleSeg)
	if dashes < 0 {
		dashes = 0
	}
	topLine := detailsBorderStyle.Render(tlc+hz) +
		styles.DetailsTitle.Render(titleSeg) +
		detailsBorderStyle.Render(strings.Repeat(hz, dashes)) +
		detailsBorderStyle.Render(hz+trc)
	bottomLine := detailsBorderStyle.Render(blc + strings.Repeat(hz, innerW) + brc)

	body := detailLines(entry)
	rows := make([]string, 0, height)
	rows = append(rows, topLine)
	for i := 0; i < innerH; i++ {
		var text string
		if i < len(body) {
			text = body[i]
		}
		text = table.Fit(text, innerW, "…")
		if w := runewidth.StringWidth(text); w < innerW {
			text += strings.Repeat(" ", innerW-w)
		}
		rows = append(rows, detailsBorderStyle.Render(vt)+styles.DetailsBody.Render(text)+detailsBorderStyle.Render(vt))
	}
	rows = append(rows, bottomLine)
	return strings.Join(rows, "\n")
}

func (m *Model) menuHeader() string {
	segments := m.headerSegments()
	if len(segments) == 0 {
		return ""
	}
	return strings.Join(segments, menuHeaderSeparator)
}

func (m *Model) headerSegments() []string {
	depth := len(m.stack)
	if depth == 0 {
		return nil
	}
	root := strings.TrimSpace(m.rootTitle)
	if root == "" {
		root = defaultRootTitle
	}
	segments := make([]string, 0, depth)
	segments = append(segments, root)
	for i := 1; i < depth; i++ {
		if segment := headerSegmentForLevel(m.stack[i]); segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}

func headerSegmentForLevel(l *level) string {
	if l == nil {
		return ""
	}
	if title := strings.TrimSpace(l.Title); title != "" {
		return title
	}
	return strings.TrimSpace(l.ID)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	if current := m.currentLevel(); current != nil {
		m.syncViewport(current)
	}
	return nil
}

// maxVisibleItems returns the number of item rows that fit, or -1 when the
// height is unknown.
func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 2 // status + filter prompt
	if header := m.menuHeader(); header != "" {
		used++
	}
	if info := m.currentInfo(); info != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) clearInfo() {
	if m.infoMsg == "" {
		return
	}
	if !m.infoExpire.IsZero() && time.Now().Before(m.infoExpire) {
		return
	}
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if lipgloss.Width(text) > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		line.text = text
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	return table.Fit(text, width, "…")
}
