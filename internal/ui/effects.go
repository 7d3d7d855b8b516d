package ui

// effects.go runs the table's side effects (browser, clipboard, export) as
// commands. They are best effort: failures are logged and never shown.

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/thesavant42/repotablo/internal/models"
)

// Clipboard receives copied URLs
type Clipboard interface {
	SetText(text string) error
}

// Browser opens URLs
type Browser interface {
	Browse(url string) error
}

// Exporter writes the visible rows somewhere and returns where
type Exporter interface {
	Export(repos []models.Repo) (string, error)
}

// effectDoneMsg reports the outcome of a side effect
type effectDoneMsg struct {
	action string
	target string
	err    error
}

func openCmd(b Browser, url string) tea.Cmd {
	return func() tea.Msg {
		return effectDoneMsg{action: "open", target: url, err: b.Browse(url)}
	}
}

func copyCmd(c Clipboard, url string) tea.Cmd {
	return func() tea.Msg {
		return effectDoneMsg{action: "copy", target: url, err: c.SetText(url)}
	}
}

func exportCmd(e Exporter, repos []models.Repo) tea.Cmd {
	return func() tea.Msg {
		path, err := e.Export(repos)
		return effectDoneMsg{action: "export", target: path, err: err}
	}
}

// logEffect records a finished side effect
func (m TableModel) logEffect(msg effectDoneMsg) {
	switch {
	case msg.err != nil && msg.action == "export":
		m.logger.Warn("Side effect failed", "action", msg.action, "target", msg.target, "error", msg.err)
	case msg.err != nil:
		m.logger.Debug("Side effect failed", "action", msg.action, "target", msg.target, "error", msg.err)
	default:
		m.logger.Info("Side effect done", "action", msg.action, "target", msg.target)
	}
}
