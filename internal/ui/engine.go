package ui

// engine.go owns the table state: the fixed repository set, the sorted and
// filtered projection over it, and the selection cursor.

import (
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/thesavant42/repotablo/internal/logging"
	"github.com/thesavant42/repotablo/internal/models"
)

// NoSelection is the selected index when nothing is visible
const NoSelection = -1

// Options carries the engine's collaborators. Every field may be left zero.
type Options struct {
	Clipboard Clipboard // nil when the environment has no clipboard
	Browser   Browser
	Exporter  Exporter
	Palette   *Palette
	Logger    *log.Logger
	Now       func() time.Time
}

// TableModel is the interactive table
type TableModel struct {
	items    []models.Repo
	filtered []int // indices into items, in items order
	sortBy   models.SortBy
	selected int // index into filtered, NoSelection when empty
	scroll   int // scrollbar position, mirrors selected
	offset   int // first visible row of filtered

	filter    string
	hasFilter bool
	filtering bool

	showHelp    bool
	showDetails bool

	width  int
	height int

	clipboard Clipboard
	browser   Browser
	exporter  Exporter
	palette   *Palette
	logger    *log.Logger
	now       func() time.Time
	markdown  *markdownCache
}

// NewTableModel builds the engine over stats, sorted by name
func NewTableModel(stats models.Stats, opts Options) TableModel {
	m := TableModel{
		items:     slices.Clone(stats.Repos),
		sortBy:    models.SortByName,
		selected:  NoSelection,
		clipboard: opts.Clipboard,
		browser:   opts.Browser,
		exporter:  opts.Exporter,
		palette:   opts.Palette,
		logger:    logging.OrDiscard(opts.Logger).WithPrefix("ui"),
		now:       opts.Now,
		markdown:  newMarkdownCache(),
	}
	if m.palette == nil {
		m.palette = DefaultPalette()
	}
	if m.now == nil {
		m.now = time.Now
	}
	m.Sort()
	return m
}

// Sort orders items by the current sort column and reapplies the filter
func (m *TableModel) Sort() {
	models.SortRepos(m.items, m.sortBy)
	m.ApplyFilter()
}

// SetSort changes the sort column and re-sorts
func (m *TableModel) SetSort(by models.SortBy) {
	m.sortBy = by
	m.Sort()
}

// ApplyFilter rebuilds filtered from items and resets the cursor to the top
func (m *TableModel) ApplyFilter() {
	query := ""
	if m.hasFilter {
		query = m.filter
	}

	filtered := make([]int, 0, len(m.items))
	for i, r := range m.items {
		if models.MatchesFilter(r, query) {
			filtered = append(filtered, i)
		}
	}
	m.filtered = filtered

	if len(m.filtered) == 0 {
		m.selected = NoSelection
	} else {
		m.selected = 0
	}
	m.scroll = max(m.selected, 0)
	m.offset = 0
}

// NextRow moves the cursor down, wrapping to the top
func (m *TableModel) NextRow() {
	if len(m.filtered) == 0 {
		return
	}
	if m.selected < len(m.filtered)-1 {
		m.selected++
	} else {
		m.selected = 0
	}
	m.scroll = m.selected
	m.syncViewport()
}

// PreviousRow moves the cursor up, wrapping to the bottom
func (m *TableModel) PreviousRow() {
	if len(m.filtered) == 0 {
		return
	}
	if m.selected > 0 {
		m.selected--
	} else {
		m.selected = len(m.filtered) - 1
	}
	m.scroll = m.selected
	m.syncViewport()
}

// StartFilter enters filter editing with an empty query
func (m *TableModel) StartFilter() {
	m.filter = ""
	m.hasFilter = true
	m.filtering = true
	m.ApplyFilter()
}

// AppendFilter adds typed text to the query
func (m *TableModel) AppendFilter(s string) {
	m.filter += s
	m.ApplyFilter()
}

// PopFilter removes the last rune of the query
func (m *TableModel) PopFilter() {
	if m.filter != "" {
		r := []rune(m.filter)
		m.filter = string(r[:len(r)-1])
	}
	m.ApplyFilter()
}

// CommitFilter leaves filter editing and keeps a non-empty query applied
func (m *TableModel) CommitFilter() {
	m.filtering = false
	if m.filter == "" {
		m.hasFilter = false
	}
}

// CancelFilter leaves filter editing and drops the query
func (m *TableModel) CancelFilter() {
	m.filtering = false
	m.hasFilter = false
	m.filter = ""
	m.ApplyFilter()
}

// syncViewport scrolls the minimum needed to keep the selection visible
func (m *TableModel) syncViewport() {
	m.offset = viewportOffset(m.offset, m.selected, m.visibleRows(), len(m.filtered))
}

// visibleRows is the number of data rows the top region can show
func (m TableModel) visibleRows() int {
	if m.height == 0 {
		return len(m.filtered)
	}
	top, _ := regionHeights(m.height)
	return max(top-1, 0)
}

// viewportOffset returns the first row to draw so that selected stays on screen
func viewportOffset(offset, selected, visible, total int) int {
	if visible <= 0 || total == 0 {
		return 0
	}
	if selected >= 0 {
		if selected < offset {
			offset = selected
		}
		if selected >= offset+visible {
			offset = selected - visible + 1
		}
	}
	return max(0, min(offset, total-visible))
}

// SelectedRepo returns the repository under the cursor
func (m TableModel) SelectedRepo() (models.Repo, bool) {
	if m.selected == NoSelection || m.selected >= len(m.filtered) {
		return models.Repo{}, false
	}
	return m.items[m.filtered[m.selected]], true
}

// VisibleRepos returns the filtered view in display order
func (m TableModel) VisibleRepos() []models.Repo {
	out := make([]models.Repo, len(m.filtered))
	for i, idx := range m.filtered {
		out[i] = m.items[idx]
	}
	return out
}

// Selected returns the cursor position in the filtered view
func (m TableModel) Selected() int { return m.selected }

// Filter returns the query and whether one is applied
func (m TableModel) Filter() (string, bool) { return m.filter, m.hasFilter }

// Filtering reports whether the query is being edited
func (m TableModel) Filtering() bool { return m.filtering }

// SortColumn returns the active sort column
func (m TableModel) SortColumn() models.SortBy { return m.sortBy }
