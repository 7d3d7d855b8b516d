package ui

import (
	"context"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/thesavant42/repotablo/internal/models"
)

// render sizes the model and returns its frame as plain text lines
func render(t *testing.T, m TableModel, w, h int) []string {
	t.Helper()
	next, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	view := next.(TableModel).View()
	return strings.Split(ansi.Strip(view), "\n")
}

func cellAt(line string, x int) string {
	r := []rune(line)
	if x < 0 || x >= len(r) {
		return ""
	}
	return string(r[x])
}

func TestRegionHeights(t *testing.T) {
	tests := []struct {
		h, top, bottom int
	}{
		{40, 36, 4},
		{9, 5, 4},
		{8, 5, 3},
		{5, 5, 0},
		{3, 3, 0},
		{0, 0, 0},
	}
	for _, tt := range tests {
		top, bottom := regionHeights(tt.h)
		if top != tt.top || bottom != tt.bottom {
			t.Errorf("regionHeights(%d) = %d, %d, want %d, %d", tt.h, top, bottom, tt.top, tt.bottom)
		}
	}
}

func TestTableColumns(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		updated int
	}{
		{"wide terminal grows Updated", 100, 32},
		{"narrow terminal keeps the minimum", 60, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols := tableColumns(tt.width)
			titles := make([]string, len(cols))
			for i, c := range cols {
				titles[i] = c.Title
			}
			if want := []string{"Name", "Stars", "Forks", "License", "Age", "Updated"}; !slices.Equal(titles, want) {
				t.Fatalf("titles = %v, want %v", titles, want)
			}
			widths := []int{cols[0].Width, cols[1].Width, cols[2].Width, cols[3].Width, cols[4].Width}
			if want := []int{15, 8, 8, 15, 15}; !slices.Equal(widths, want) {
				t.Errorf("fixed widths = %v, want %v", widths, want)
			}
			if cols[5].Width != tt.updated {
				t.Errorf("Updated width = %d, want %d", cols[5].Width, tt.updated)
			}
		})
	}
}

func TestViewLayout(t *testing.T) {
	m := newTestModel(repo("rocket", 22000), repo("axum", 15000))
	lines := render(t, m, 100, 20)

	if len(lines) != 20 {
		t.Fatalf("frame has %d lines, want 20", len(lines))
	}
	if want := "  Name" + strings.Repeat(" ", 12) + "Stars"; !strings.HasPrefix(lines[0], want) {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "  axum") {
		t.Errorf("first row = %q, want axum first by name", lines[1])
	}
	if !strings.Contains(lines[2], "22.0k") {
		t.Errorf("second row = %q, want compact stars", lines[2])
	}
	for i, line := range lines[:16] {
		if n := ansi.StringWidth(line); n != 100 {
			t.Errorf("table line %d is %d cells wide", i, n)
		}
	}

	if !strings.HasPrefix(lines[16], "╭") || !strings.HasPrefix(lines[19], "╰") {
		t.Errorf("footer border missing: %q / %q", lines[16], lines[19])
	}
	if !strings.Contains(lines[17], infoText[0]) || !strings.Contains(lines[18], infoText[1]) {
		t.Errorf("footer text = %q / %q", lines[17], lines[18])
	}
}

func TestFooterWhileFiltering(t *testing.T) {
	m := newTestModel(repo("actix", 1))
	m, _ = press(t, m, "/", "a", "c")
	lines := render(t, m, 80, 12)

	if !strings.Contains(lines[9], "Filter: ac_") {
		t.Errorf("footer = %q, want the filter prompt", lines[9])
	}
	if strings.Contains(strings.Join(lines, "\n"), "Sort by:") {
		t.Error("hint lines shown while filtering")
	}
}

func TestScrollbar(t *testing.T) {
	m := newTestModel(repo("a", 1), repo("b", 2), repo("c", 3))
	lines := render(t, m, 40, 12)
	x := 40 - 2

	if got := cellAt(lines[1], x); got != scrollThumb {
		t.Errorf("row 1 scrollbar = %q, want thumb", got)
	}
	if got := cellAt(lines[6], x); got != scrollTrack {
		t.Errorf("row 6 scrollbar = %q, want track", got)
	}
	if got := cellAt(lines[0], x); got == scrollTrack || got == scrollThumb {
		t.Error("scrollbar drawn over the header row")
	}
	if got := cellAt(lines[7], x); got == scrollTrack || got == scrollThumb {
		t.Error("scrollbar drawn on the last table row")
	}

	empty := render(t, newTestModel(), 40, 12)
	for i, line := range empty[:8] {
		if got := cellAt(line, x); got == scrollTrack || got == scrollThumb {
			t.Errorf("empty table draws a scrollbar on row %d", i)
		}
	}
}

func TestScrollingKeepsSelectionVisible(t *testing.T) {
	var repos []models.Repo
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		repos = append(repos, repo(name, 1))
	}
	m := newTestModel(repos...)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 9})
	m = next.(TableModel)

	// 5 table lines: header plus 4 rows
	m, _ = press(t, m, "j", "j", "j", "j", "j")
	lines := strings.Split(ansi.Strip(m.View()), "\n")
	if !strings.HasPrefix(lines[4], "  f") {
		t.Errorf("last visible row = %q, want f", lines[4])
	}

	m, _ = press(t, m, "k", "k", "k", "k", "k")
	lines = strings.Split(ansi.Strip(m.View()), "\n")
	if !strings.HasPrefix(lines[1], "  a") {
		t.Errorf("first visible row = %q, want a", lines[1])
	}
}

func TestHelpOverlay(t *testing.T) {
	m := newTestModel(repo("a", 1))
	m, _ = press(t, m, "?")
	lines := render(t, m, 100, 40)

	if len(lines) != 40 {
		t.Fatalf("frame has %d lines, want 40", len(lines))
	}
	if got := string([]rune(lines[10])[25:33]); got != "╭ Help ─" {
		t.Errorf("popup top border = %q", got)
	}
	body := strings.Join(lines[11:29], "\n")
	for _, want := range []string{"Keybindings", "1-5    Sort by column", "q/Esc  Quit", "y      Yank URL to clipboard"} {
		if !strings.Contains(body, want) {
			t.Errorf("help popup missing %q", want)
		}
	}
	if got := cellAt(lines[29], 25); got != "╰" {
		t.Errorf("popup bottom-left = %q", got)
	}
}

func TestDetailsOverlay(t *testing.T) {
	r := repo("axum", 15000)
	r.Description = "Ergonomic web framework"
	m := newTestModel(r)
	m, _ = press(t, m, "i")
	view := strings.Join(render(t, m, 100, 40), "\n")

	if !strings.Contains(view, "owner/axum") {
		t.Error("details popup has no title")
	}
	if !strings.Contains(view, "Ergonomic web framework") {
		t.Error("details popup has no description")
	}
}

func TestViewBeforeResize(t *testing.T) {
	if view := newTestModel(repo("a", 1)).View(); view != "" {
		t.Errorf("View() before the first resize = %q, want empty", view)
	}
}

func TestColorThresholds(t *testing.T) {
	p := DefaultPalette()

	starTests := []struct {
		stars uint32
		want  lipgloss.Color
	}{
		{10_000, tailwindLime500},
		{9_999, tailwindYellow500},
		{1_000, tailwindYellow500},
		{999, tailwindWhite},
	}
	for _, tt := range starTests {
		if got := p.PopularityColor(tt.stars); got != tt.want {
			t.Errorf("PopularityColor(%d) = %v, want %v", tt.stars, got, tt.want)
		}
	}

	ageTests := []struct {
		days int
		want lipgloss.Color
	}{
		{730, tailwindOrange600},
		{365, tailwindYellow500},
		{364, tailwindWhite},
		{0, tailwindWhite},
	}
	for _, tt := range ageTests {
		pushed := testNow.AddDate(0, 0, -tt.days)
		if got := p.AbandonedColor(pushed, testNow); got != tt.want {
			t.Errorf("AbandonedColor(%d days) = %v, want %v", tt.days, got, tt.want)
		}
	}
}

func TestPlaceOver(t *testing.T) {
	tests := []struct {
		base, overlay string
		x             int
		want          string
	}{
		{"abcdef", "XY", 2, "abXYef"},
		{"abcdef", "XY", 0, "XYcdef"},
		{"abcdef", "XY", 5, "abcdeXY"},
		{"ab", "X", 4, "ab  X"},
		{"", "X", 1, " X"},
	}
	for _, tt := range tests {
		if got := placeOver(tt.base, tt.overlay, tt.x); got != tt.want {
			t.Errorf("placeOver(%q, %q, %d) = %q, want %q", tt.base, tt.overlay, tt.x, got, tt.want)
		}
	}
}

func TestScrollbarThumb(t *testing.T) {
	tests := []struct {
		name                    string
		position, length, track int
		start, end              int
	}{
		{"top", 0, 10, 5, 0, 2},
		{"bottom", 9, 10, 5, 3, 5},
		{"single item fills track", 0, 1, 5, 0, 5},
		{"empty", 0, 0, 5, 0, 0},
		{"position clamped", 50, 10, 5, 3, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := scrollbarThumb(tt.position, tt.length, tt.track)
			if start != tt.start || end != tt.end {
				t.Errorf("scrollbarThumb() = %d, %d, want %d, %d", start, end, tt.start, tt.end)
			}
		})
	}
}

func TestDrawBox(t *testing.T) {
	if box := drawBox(" T ", nil, 1, 5, tailwindWhite); box != nil {
		t.Errorf("box narrower than its border = %q", box)
	}

	box := drawBox(" T ", []string{"hello world"}, 8, 3, tailwindWhite)
	want := []string{"╭ T ───╮", "│hello │", "╰──────╯"}
	got := make([]string, len(box))
	for i, line := range box {
		got[i] = ansi.Strip(line)
	}
	if !slices.Equal(got, want) {
		t.Errorf("drawBox() = %q, want %q", got, want)
	}
}

func TestLoadingModel(t *testing.T) {
	events := make(chan models.Progress)
	_, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := newLoadingModel(3, events, cancel)
	if got := m.View(); got != "Fetching 0/3..." {
		t.Errorf("View() before resize = %q", got)
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 9})
	next, cmd := next.(loadingModel).Update(progressMsg{Done: 2, Total: 3})
	m = next.(loadingModel)
	if cmd == nil {
		t.Fatal("progress did not schedule the next read")
	}

	lines := strings.Split(ansi.Strip(m.View()), "\n")
	if len(lines) != 9 {
		t.Fatalf("frame has %d lines, want 9", len(lines))
	}
	if got := strings.TrimSpace(lines[4]); got != "Fetching 2/3..." {
		t.Errorf("middle line = %q", got)
	}

	close(events)
	if msg := m.wait()(); msg != (fetchDoneMsg{}) {
		t.Errorf("wait() on a closed channel = %#v", msg)
	}
	next, cmd = m.Update(fetchDoneMsg{})
	if !next.(loadingModel).finished || !isQuit(cmd) {
		t.Error("fetch completion did not quit")
	}
}

func TestLoadingProgressOutOfOrder(t *testing.T) {
	_, cancel := context.WithCancel(context.Background())
	defer cancel()

	var next tea.Model = newLoadingModel(5, make(chan models.Progress), cancel)
	for _, done := range []int{2, 5, 4} {
		next, _ = next.(loadingModel).Update(progressMsg{Done: done, Total: 5})
	}
	if got := next.(loadingModel).View(); got != "Fetching 5/5..." {
		t.Errorf("View() = %q, want the highest count", got)
	}
}

func TestLoadingCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := newLoadingModel(1, make(chan models.Progress), cancel)
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if ctx.Err() == nil {
		t.Error("ctrl+c did not cancel the fetch")
	}
}

func TestHelpLines(t *testing.T) {
	lines := helpLines()
	if lines[0] != "  Keybindings" {
		t.Errorf("first line = %q", lines[0])
	}
	if !slices.Contains(lines, "  1-5    Sort by column") || !slices.Contains(lines, "  q/Esc  Quit") {
		t.Errorf("help lines = %q", lines)
	}
}
