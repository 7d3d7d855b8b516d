package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// sanitizeInput removes null bytes and other invisible control characters,
// keeping tabs and line breaks
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		if r == 0 || (r < 32 && r != '\t' && r != '\n' && r != '\r') {
			return -1
		}
		return r
	}, s)
}

// NewAppTheme creates a huh theme from the table palette
func NewAppTheme(p *Palette) *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().
		Foreground(p.RowFg).
		Bold(true)
	t.Blurred.Title = t.Focused.Title

	t.Focused.Description = lipgloss.NewStyle().
		Foreground(p.FooterBorder)
	t.Blurred.Description = t.Focused.Description

	t.Focused.Base = t.Focused.Base.BorderForeground(p.HelpBorder)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(p.HelpBorder)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(p.FooterBorder)
	t.Focused.TextInput.Text = lipgloss.NewStyle().
		Foreground(p.RowFg)

	return t
}

// PromptForRepos asks for repository links in a multi-line text field. It is
// the fallback when no editor is configured.
func PromptForRepos() (string, error) {
	var text string

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Enter GitHub Repositories").
				Description("Links or owner/repo, one per line").
				Placeholder("https://github.com/charmbracelet/bubbletea").
				Lines(10).
				Value(&text),
		),
	).WithTheme(NewAppTheme(DefaultPalette())).Run()
	if err != nil {
		return "", fmt.Errorf("prompt cancelled: %w", err)
	}

	return sanitizeInput(text), nil
}
