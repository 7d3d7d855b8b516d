package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// fit truncates s to width cells and pads it with spaces to exactly width
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// placeOver writes overlay into base starting at cell x, keeping what base
// shows on either side. Styled base text keeps its escape sequences.
func placeOver(base, overlay string, x int) string {
	if x < 0 {
		x = 0
	}
	left := ansi.Truncate(base, x, "")
	if pad := x - ansi.StringWidth(left); pad > 0 {
		left += strings.Repeat(" ", pad)
	}
	right := ansi.TruncateLeft(base, x+ansi.StringWidth(overlay), "")
	return left + overlay + right
}

// overlayBlock places block lines over lines starting at row y, column x
func overlayBlock(lines, block []string, x, y int) {
	for i, row := range block {
		if y+i < 0 || y+i >= len(lines) {
			continue
		}
		lines[y+i] = placeOver(lines[y+i], row, x)
	}
}

// scrollbarThumb returns the half-open range of track cells covered by the
// thumb. The thumb is always at least one cell long.
func scrollbarThumb(position, contentLength, track int) (start, end int) {
	if contentLength <= 0 || track <= 0 {
		return 0, 0
	}
	maxPosition := float64(contentLength - 1)
	pos := math.Max(0, math.Min(float64(position), maxPosition))
	span := maxPosition + float64(track)

	start = int(math.Round(pos * float64(track) / span))
	end = int(math.Round((pos + float64(track)) * float64(track) / span))
	if end <= start {
		end = start + 1
	}
	return min(start, track-1), min(end, track)
}

// drawBox renders a rounded box of exactly width x height cells with a title
// in the top border. The interior is blanked before content is written.
func drawBox(title string, content []string, width, height int, border lipgloss.TerminalColor) []string {
	if width < 2 || height < 2 {
		return nil
	}
	b := lipgloss.RoundedBorder()
	edge := lipgloss.NewStyle().Foreground(border)
	inner := width - 2

	title = ansi.Truncate(title, inner, "")
	top := b.TopLeft + title + strings.Repeat(b.Top, inner-ansi.StringWidth(title)) + b.TopRight

	box := make([]string, 0, height)
	box = append(box, edge.Render(top))
	for i := 0; i < height-2; i++ {
		line := ""
		if i < len(content) {
			line = content[i]
		}
		box = append(box, edge.Render(b.Left)+fit(line, inner)+edge.Render(b.Right))
	}
	box = append(box, edge.Render(b.BottomLeft+strings.Repeat(b.Bottom, inner)+b.BottomRight))
	return box
}
