package components

import (
	"github.com/dsakenov/minebudget/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the
// left, the active data file on the right.
func RenderStatusBar(width int, dataFile string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " [j/k]move  [enter]timeline  [r]efresh  [q]uit"
	right := ""
	if dataFile != "" {
		right = dataFile + " "
	}

	// Pad middle
	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	bar := left
	for i := 0; i < padding; i++ {
		bar += " "
	}
	bar += right

	return style.Render(bar)
}
