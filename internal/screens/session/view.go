package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/spacequiz/internal/session"
	"github.com/abhisek/spacequiz/internal/ui/components"
	"github.com/abhisek/spacequiz/internal/ui/layout"
	"github.com/abhisek/spacequiz/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	if s.confirmQuit {
		return renderQuitConfirm(width)
	}

	st := s.session.State()
	var body string
	switch st.Phase {
	case sess.PhasePresenting, sess.PhaseAnswered:
		body = s.renderQuestionView(st, width)
	case sess.PhaseError:
		body = s.renderError(st, width)
	default:
		body = s.renderLoading(st, width)
	}

	// Short terminals rely on the header status for level and score.
	if layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight) {
		return body
	}
	return renderTally(st, width) + "\n\n" + body
}

// renderTally renders the in-session summary line.
func renderTally(st sess.SessionState, width int) string {
	sum := sess.BuildSummary(st)
	line := fmt.Sprintf("Level %s   Answered %d   Correct %d   Batches %d",
		strings.ToUpper(sum.Difficulty), sum.Answered, sum.Correct, sum.Batches)
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(line)
}

func (s *SessionScreen) renderQuestionView(st sess.SessionState, width int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	bar := components.NewBatchProgress(st.BatchIndex, st.Batch.Len(), s.session.Progress(), cw)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	card := components.QuestionCard(s.choice.View(), cw, theme.LevelColor(st.Difficulty))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
	b.WriteString("\n\n")

	if st.Phase == sess.PhaseAnswered {
		b.WriteString(s.renderFeedback(st, width, cw))
	}

	return b.String()
}

// renderFeedback shows correctness and the explanation once an answer is
// locked.
func (s *SessionScreen) renderFeedback(st sess.SessionState, width, cw int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	if s.session.LastCorrect() {
		b.WriteString(center.Foreground(theme.Success).Bold(true).Render("Correct!"))
	} else {
		b.WriteString(center.Foreground(theme.Error).Bold(true).Render("Not quite"))
	}
	b.WriteString("\n")

	if q, ok := s.session.Current(); ok && q.Explanation != "" {
		exp := lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Render(q.Explanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
		b.WriteString("\n")
	}

	next := "Press Enter for the next question"
	if st.BatchIndex+1 >= st.Batch.Len() {
		next = "Press Enter to load the next batch"
	}
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render(next))
	return b.String()
}

func (s *SessionScreen) renderLoading(st sess.SessionState, width int) string {
	text := fmt.Sprintf("%s Generating %s questions...", s.spinner.View(), st.Difficulty)
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n" + text)
}

func (s *SessionScreen) renderError(st sess.SessionState, width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString(center.Foreground(theme.Error).Bold(true).Render("Could not load questions"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Text).Render(st.Err))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.retry.View()))
	return b.String()
}

func renderQuitConfirm(width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Text).Bold(true).Render("End quiz?"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("Scores are not saved."))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Success).Render("[Y] Yes, end quiz"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Render("[N] No, keep going"))
	return b.String()
}
