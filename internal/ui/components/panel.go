package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/spacequiz/internal/ui/theme"
)

// LaunchButtonWidth is the fixed width of launch menu buttons.
const LaunchButtonWidth = 24

// ContentWidth is the inner width shared by every panel on a screen of
// frameWidth columns, clamped to [20, 60].
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 60)
}

// Console draws the double-bordered console around a whole screen and
// centers content in it.
func Console(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(max(width-2, 0)).
		Height(max(height-2, 0)).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// QuestionCard frames a question panel. The border takes the level accent
// so the difficulty is visible at a glance.
func QuestionCard(content string, cw int, accent color.Color) string {
	if accent == nil {
		accent = theme.Border
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}

// LaunchButton renders one launch menu button. A selected button is filled
// with accent; nil falls back to corona gold.
func LaunchButton(label string, selected bool, accent color.Color) string {
	if accent == nil {
		accent = theme.ArcadeYellow
	}
	style := lipgloss.NewStyle().
		Width(LaunchButtonWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	if !selected {
		return style.Foreground(theme.Text).BorderForeground(theme.Border).Render(label)
	}
	return style.
		Bold(true).
		Foreground(theme.BgDark).
		Background(accent).
		BorderForeground(accent).
		Render("▸ " + label)
}
