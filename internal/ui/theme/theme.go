package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/spacequiz/internal/quiz"
)

// Palette: deep space background with solar accents.
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#14B8A6") // Aurora teal
	Accent    = lipgloss.Color("#F97316") // Flare orange
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#0F172A")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")

	ArcadeYellow = lipgloss.Color("#FACC15") // Corona gold
	ArcadeCyan   = lipgloss.Color("#22D3EE") // Magnetosphere cyan
)

// LevelColor is the accent for a difficulty level: teal for easy, gold for
// medium, flare orange for hard.
func LevelColor(d quiz.Difficulty) color.Color {
	switch d {
	case quiz.Hard:
		return Accent
	case quiz.Medium:
		return ArcadeYellow
	default:
		return Secondary
	}
}

// Level renders a level name in its accent color.
func Level(d quiz.Difficulty) string {
	return lipgloss.NewStyle().Foreground(LevelColor(d)).Bold(true).Render(d.String())
}

// Answer options
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Progress and the action button
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)
)
