package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/spacequiz/internal/quiz"
	"github.com/abhisek/spacequiz/internal/router"
	"github.com/abhisek/spacequiz/internal/screen"
	"github.com/abhisek/spacequiz/internal/session"
	"github.com/abhisek/spacequiz/internal/ui/layout"
	"github.com/abhisek/spacequiz/internal/ui/theme"
)

// SummaryScreen displays the tallies of a finished quiz.
type SummaryScreen struct {
	summary session.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary session.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Mission Report"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render("Quiz complete!"))
	b.WriteString("\n\n")

	if sum.Answered == 0 {
		b.WriteString(center.Foreground(theme.TextDim).Render("No questions answered."))
		return b.String()
	}

	stats := fmt.Sprintf("Answered: %d        Correct: %d        Accuracy: %.0f%%",
		sum.Answered, sum.Correct, sum.Accuracy*100)
	b.WriteString(center.Foreground(theme.Text).Render(stats))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	b.WriteString(center.Foreground(theme.TextDim).Render(
		fmt.Sprintf("Batches completed: %d", sum.Batches)))
	b.WriteString("\n")
	level := quiz.ParseDifficulty(sum.Difficulty)
	b.WriteString(center.Foreground(theme.LevelColor(level)).Bold(true).Render(
		fmt.Sprintf("Reached level: %s", strings.ToUpper(level.String()))))

	return b.String()
}
