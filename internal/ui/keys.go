package ui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/thesavant42/repotablo/internal/models"
)

// keyMap holds the browsing-mode bindings. The help overlay is generated
// from their help text, so every binding shows up there in this order.
type keyMap struct {
	Sort    key.Binding
	Filter  key.Binding
	Open    key.Binding
	Yank    key.Binding
	Export  key.Binding
	Details key.Binding
	Down    key.Binding
	Up      key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Sort: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "5"),
		key.WithHelp("1-5", "Sort by column"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "Filter repos"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "Open in browser"),
	),
	Yank: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "Yank URL to clipboard"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "Export visible rows"),
	),
	Details: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "Repository details"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "Move down"),
	),
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "Move up"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "Toggle this help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q/Esc", "Quit"),
	),
}

func (k keyMap) helpBindings() []key.Binding {
	return []key.Binding{k.Sort, k.Filter, k.Open, k.Yank, k.Export, k.Details, k.Down, k.Up, k.Help, k.Quit}
}

// sortKeys maps the digit keys to sort columns
var sortKeys = map[string]models.SortBy{
	"1": models.SortByName,
	"2": models.SortByStars,
	"3": models.SortByForks,
	"4": models.SortByCreated,
	"5": models.SortByUpdated,
}

// handleKey applies one key press. Filter editing is checked first so that
// typed letters such as q land in the query.
func (m TableModel) handleKey(msg tea.KeyMsg) (TableModel, tea.Cmd) {
	if m.filtering {
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Down):
		m.NextRow()

	case key.Matches(msg, keys.Up):
		m.PreviousRow()

	case key.Matches(msg, keys.Sort):
		m.SetSort(sortKeys[msg.String()])

	case key.Matches(msg, keys.Open):
		if repo, ok := m.SelectedRepo(); ok && m.browser != nil {
			return m, openCmd(m.browser, repo.URL())
		}

	case key.Matches(msg, keys.Yank):
		if repo, ok := m.SelectedRepo(); ok && m.clipboard != nil {
			return m, copyCmd(m.clipboard, repo.URL())
		}

	case key.Matches(msg, keys.Export):
		if m.exporter != nil {
			return m, exportCmd(m.exporter, m.VisibleRepos())
		}

	case key.Matches(msg, keys.Filter):
		m.showDetails = false
		m.StartFilter()

	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
		if m.showHelp {
			m.showDetails = false
		}

	case key.Matches(msg, keys.Details):
		if _, ok := m.SelectedRepo(); ok {
			m.showDetails = !m.showDetails
			if m.showDetails {
				m.showHelp = false
			}
		}
	}

	return m, nil
}

// handleFilterKey edits the query. Enter commits it, Esc drops it.
func (m TableModel) handleFilterKey(msg tea.KeyMsg) (TableModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyEnter:
		m.CommitFilter()

	case tea.KeyEsc:
		m.CancelFilter()

	case tea.KeyBackspace:
		m.PopFilter()

	case tea.KeySpace:
		m.AppendFilter(" ")

	case tea.KeyRunes:
		if s := printable(msg.Runes); s != "" {
			m.AppendFilter(s)
		}
	}

	return m, nil
}

// printable drops control characters, pasted newlines included
func printable(runes []rune) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, string(runes))
}
