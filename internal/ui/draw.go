package ui

// draw.go renders the table frame: header and rows, the scrollbar, the
// footer and the help or details popup.

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/thesavant42/repotablo/internal/models"
)

const (
	footerHeight = 4
	minTopHeight = 5

	scrollTrack = "║"
	scrollThumb = "█"
)

var infoText = [2]string{
	"Sort by: (1) Name | (2) Stars | (3) Forks | (4) Age | (5) Updated",
	"(O) Open | (Y) Copy | (?) Help",
}

// regionHeights splits the terminal height into the table and footer regions
func regionHeights(h int) (top, bottom int) {
	if h >= minTopHeight+footerHeight {
		return h - footerHeight, footerHeight
	}
	top = min(h, minTopHeight)
	return top, h - top
}

func (m TableModel) Init() tea.Cmd {
	return nil
}

func (m TableModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.syncViewport()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case effectDoneMsg:
		m.logEffect(msg)
	}

	return m, nil
}

func (m TableModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	w, h := m.width, m.height
	topH, bottomH := regionHeights(h)

	lines := make([]string, 0, h)
	lines = append(lines, m.renderTable(w, topH)...)
	lines = append(lines, m.renderFooter(w, bottomH)...)

	switch {
	case m.showHelp:
		overlayBlock(lines, m.renderHelp(w/2, h/2), w/4, h/4)
	case m.showDetails:
		overlayBlock(lines, m.renderDetails(w/2, h/2), w/4, h/4)
	}

	return strings.Join(lines, "\n")
}

// renderTable draws exactly height lines of width w
func (m TableModel) renderTable(w, height int) []string {
	if height <= 0 {
		return nil
	}
	p := m.palette
	cols := tableColumns(w)
	now := m.now()

	lines := make([]string, 0, height)
	backgrounds := make([]lipgloss.TerminalColor, 0, height)

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = fit(c.Title, c.Width)
	}
	lines = append(lines, fit(highlightPrefix+strings.Join(header, strings.Repeat(" ", columnSpacing)), w))
	backgrounds = append(backgrounds, lipgloss.NoColor{})

	for i := m.offset; i < len(m.filtered) && len(lines) < height; i++ {
		bg := p.NormalRow
		if i%2 == 1 {
			bg = p.AltRow
		}
		lines = append(lines, m.renderRow(i, cols, w, bg, now))
		if i == m.selected {
			backgrounds = append(backgrounds, p.SelectedRowBg)
		} else {
			backgrounds = append(backgrounds, bg)
		}
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", w))
		backgrounds = append(backgrounds, lipgloss.NoColor{})
	}

	m.drawScrollbar(lines, backgrounds, w)
	return lines
}

// renderRow draws the i-th filtered row. The selected row takes the highlight
// style over every cell.
func (m TableModel) renderRow(i int, cols []Column, w int, bg lipgloss.Color, now time.Time) string {
	p := m.palette
	repo := m.items[m.filtered[i]]
	cells := models.RowCells(repo, now)

	base := lipgloss.NewStyle().Foreground(p.RowFg).Background(bg)
	selected := i == m.selected
	if selected {
		base = lipgloss.NewStyle().Foreground(p.RowFg).Background(p.SelectedRowBg)
	}

	var b strings.Builder
	used := 0
	write := func(s string, style lipgloss.Style) {
		if room := w - used; room > 0 {
			s = ansi.Truncate(s, room, "")
			used += ansi.StringWidth(s)
			b.WriteString(style.Render(s))
		}
	}

	write(highlightPrefix, base)
	for j, c := range cols {
		if j > 0 {
			write(strings.Repeat(" ", columnSpacing), base)
		}
		style := base
		if !selected {
			switch j {
			case 1, 2:
				style = style.Foreground(p.PopularityColor(repo.Stars))
			case 5:
				style = style.Foreground(p.AbandonedColor(repo.PushedAt, now))
			}
		}
		write(fit(cells[j], c.Width), style)
	}
	if used < w {
		write(strings.Repeat(" ", w-used), base)
	}
	return b.String()
}

// drawScrollbar splices the scrollbar into the table lines, inset by one row
// and one column from the table's edges
func (m TableModel) drawScrollbar(lines []string, backgrounds []lipgloss.TerminalColor, w int) {
	track := len(lines) - 2
	total := len(m.filtered)
	if track <= 0 || w < 3 || total == 0 {
		return
	}
	x := w - 2
	start, end := scrollbarThumb(m.scroll, total, track)
	for i := 0; i < track; i++ {
		symbol := scrollTrack
		if i >= start && i < end {
			symbol = scrollThumb
		}
		row := i + 1
		style := lipgloss.NewStyle().Foreground(m.palette.FooterBorder).Background(backgrounds[row])
		lines[row] = placeOver(lines[row], style.Render(symbol), x)
	}
}

// renderFooter draws the bordered footer in exactly height lines
func (m TableModel) renderFooter(w, height int) []string {
	if height <= 0 {
		return nil
	}
	p := m.palette
	inner := max(w-2, 0)

	text := infoText[:]
	if m.filtering {
		text = []string{fmt.Sprintf("Filter: %s_", m.filter)}
	}
	fitted := make([]string, len(text))
	for i, line := range text {
		fitted[i] = ansi.Truncate(line, inner, "")
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.FooterBorder).
		Foreground(p.RowFg).
		Align(lipgloss.Center).
		Width(inner).
		Height(footerHeight - 2).
		Render(strings.Join(fitted, "\n"))

	lines := strings.Split(box, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", w))
	}
	return lines
}

// helpLines is the help popup content, generated from the key bindings
func helpLines() []string {
	out := []string{
		"  Keybindings",
		"  ──────────────────────────",
	}
	for _, b := range keys.helpBindings() {
		h := b.Help()
		out = append(out, fmt.Sprintf("  %-6s %s", h.Key, h.Desc))
	}
	return out
}

func (m TableModel) renderHelp(w, h int) []string {
	return drawBox(" Help ", helpLines(), w, h, m.palette.HelpBorder)
}

// renderDetails draws the selected repository as markdown
func (m TableModel) renderDetails(w, h int) []string {
	repo, ok := m.SelectedRepo()
	if !ok || w < 2 {
		return nil
	}
	md := m.markdown.render(detailsMarkdown(repo, m.now()), w-2)
	return drawBox(" "+repo.FullName()+" ", strings.Split(md, "\n"), w, h, m.palette.HelpBorder)
}
