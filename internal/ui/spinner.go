package ui

// spinner.go provides a blocking spinner for long-running operations that
// report no progress, such as downloading a link page.

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// actionDoneMsg signals the action completed
type actionDoneMsg struct {
	err error
}

// blockingSpinnerModel runs a spinner while an action executes
type blockingSpinnerModel struct {
	spinner spinner.Model
	title   string
	style   lipgloss.Style
	ctx     context.Context
	cancel  context.CancelFunc
	action  func(ctx context.Context) error
	done    bool
	err     error
}

// RunWithSpinner executes action while displaying a spinner on stderr.
// Ctrl+C cancels the context handed to action.
//
// Example:
//
//	var refs []models.RepoRef
//	err := RunWithSpinner(ctx, "Downloading links...", func(ctx context.Context) error {
//	    var err error
//	    refs, err = resolver.Resolve(ctx, arg)
//	    return err
//	})
func RunWithSpinner(ctx context.Context, title string, action func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := DefaultPalette()
	m := blockingSpinnerModel{
		spinner: NewAppSpinner(p),
		title:   title,
		style:   lipgloss.NewStyle().Foreground(p.RowFg),
		ctx:     ctx,
		cancel:  cancel,
		action:  action,
	}

	prog := tea.NewProgram(m, tea.WithOutput(os.Stderr))
	finalModel, err := prog.Run()
	if err != nil {
		return fmt.Errorf("spinner program error: %w", err)
	}

	final := finalModel.(blockingSpinnerModel)
	return final.err
}

func (m blockingSpinnerModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.runAction(),
	)
}

func (m blockingSpinnerModel) runAction() tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{err: m.action(m.ctx)}
	}
}

func (m blockingSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case actionDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		// Cancel and wait for the action to notice
		if msg.String() == "ctrl+c" {
			m.cancel()
		}
	}

	return m, nil
}

func (m blockingSpinnerModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), m.style.Render(m.title))
}
