package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// Tailwind palette values
const (
	tailwindWhite      = lipgloss.Color("#ffffff")
	tailwindViolet900  = lipgloss.Color("#4c1d95")
	tailwindViolet400  = lipgloss.Color("#a78bfa")
	tailwindSlate950   = lipgloss.Color("#020617")
	tailwindSlate900   = lipgloss.Color("#0f172a")
	tailwindNeutral600 = lipgloss.Color("#525252")
	tailwindLime500    = lipgloss.Color("#84cc16")
	tailwindYellow500  = lipgloss.Color("#eab308")
	tailwindOrange600  = lipgloss.Color("#ea580c")
)

// Palette holds every color the table uses. It is built once and shared
// read-only by pointer.
type Palette struct {
	RowFg         lipgloss.Color
	SelectedRowBg lipgloss.Color
	NormalRow     lipgloss.Color
	AltRow        lipgloss.Color
	FooterBorder  lipgloss.Color
	HelpBorder    lipgloss.Color

	Popular   lipgloss.Color // >= 10k stars
	Known     lipgloss.Color // >= 1k stars
	Plain     lipgloss.Color
	Stale     lipgloss.Color // not pushed for a year
	Abandoned lipgloss.Color // not pushed for two years
}

// DefaultPalette returns the application palette
func DefaultPalette() *Palette {
	return &Palette{
		RowFg:         tailwindWhite,
		SelectedRowBg: tailwindViolet900,
		NormalRow:     tailwindSlate950,
		AltRow:        tailwindSlate900,
		FooterBorder:  tailwindNeutral600,
		HelpBorder:    tailwindViolet400,

		Popular:   tailwindLime500,
		Known:     tailwindYellow500,
		Plain:     tailwindWhite,
		Stale:     tailwindYellow500,
		Abandoned: tailwindOrange600,
	}
}

// PopularityColor colors star (and fork) cells by star count
func (p *Palette) PopularityColor(stars uint32) lipgloss.Color {
	switch {
	case stars >= 10_000:
		return p.Popular
	case stars >= 1_000:
		return p.Known
	default:
		return p.Plain
	}
}

// AbandonedColor colors the Updated cell by whole days since the last push
func (p *Palette) AbandonedColor(pushedAt, now time.Time) lipgloss.Color {
	days := int(now.Sub(pushedAt).Hours() / 24)
	switch {
	case days >= 730:
		return p.Abandoned
	case days >= 365:
		return p.Stale
	default:
		return p.Plain
	}
}

// NewAppSpinner returns the spinner used while inputs resolve
func NewAppSpinner(p *Palette) spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(p.HelpBorder)
	return s
}

// PrintError prints a styled error message to stderr
func PrintError(message string) {
	errorStyle := lipgloss.NewStyle().
		Foreground(tailwindOrange600).
		Bold(true)
	fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+message))
}

// PrintWarning prints a styled warning to stderr
func PrintWarning(message string) {
	warningStyle := lipgloss.NewStyle().
		Foreground(tailwindYellow500)
	fmt.Fprintln(os.Stderr, warningStyle.Render("Warning: "+message))
}

// PrintHint prints a dimmed follow-up line to stderr
func PrintHint(message string) {
	hintStyle := lipgloss.NewStyle().
		Foreground(tailwindNeutral600).
		Italic(true)
	fmt.Fprintln(os.Stderr, hintStyle.Render(message))
}
