package ui

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cli/go-gh/v2/pkg/term"
	"github.com/thesavant42/repotablo/internal/models"
)

// RunTable runs the interactive table on the alternate screen until the user
// quits. The clipboard is held for the whole session and closed afterwards
// when it supports closing.
func RunTable(stats models.Stats, opts Options) error {
	if c, ok := opts.Clipboard.(io.Closer); ok {
		defer c.Close()
	}

	m := NewTableModel(stats, opts)
	m.logger.Info("Table started", "repos", len(stats.Repos))

	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if !term.IsTerminal(os.Stdin) {
		// stdin carried the input list; read keys from the terminal instead
		progOpts = append(progOpts, tea.WithInputTTY())
	}
	p := tea.NewProgram(m, progOpts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("table program error: %w", err)
	}
	m.logger.Info("Table closed")
	return nil
}
