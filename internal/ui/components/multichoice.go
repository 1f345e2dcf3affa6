package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/spacequiz/internal/ui/theme"
)

// optionLabels are the display letters for the four answer slots.
var optionLabels = []string{"A", "B", "C", "D"}

// MultiChoice renders a multiple-choice question with a movable cursor.
// It never decides correctness on its own: the owner locks the chosen
// option with Lock, and only then is the correct option highlighted.
type MultiChoice struct {
	Question     string
	Options      []string
	CorrectIndex int
	Cursor       int
	Locked       bool
	ChosenIndex  int
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(question string, options []string, correctIndex int) MultiChoice {
	return MultiChoice{
		Question:     question,
		Options:      options,
		CorrectIndex: correctIndex,
		ChosenIndex:  -1,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update moves the cursor. Selection is left to the owner.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Locked {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	}

	return m, nil
}

// Lock records the chosen option and reveals the correct one.
func (m MultiChoice) Lock(chosen int) MultiChoice {
	m.Locked = true
	m.ChosenIndex = chosen
	m.Cursor = chosen
	return m
}

// OptionForKey maps "1".."4" and "a".."d" to an option index.
func OptionForKey(key string) (int, bool) {
	switch strings.ToLower(key) {
	case "1", "a":
		return 0, true
	case "2", "b":
		return 1, true
	case "3", "c":
		return 2, true
	case "4", "d":
		return 3, true
	}
	return -1, false
}

// View renders the multiple-choice component.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		label := "?"
		if i < len(optionLabels) {
			label = optionLabels[i]
		}
		prefix := "  "
		if i == m.Cursor && !m.Locked {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)

		var style lipgloss.Style
		switch {
		case m.Locked && i == m.CorrectIndex:
			style = theme.Correct
			line += "  ✓"
		case m.Locked && i == m.ChosenIndex:
			style = theme.Incorrect
			line += "  ✗"
		case m.Locked:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Cursor:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

// IsCorrect returns true if the locked choice is the correct option.
func (m MultiChoice) IsCorrect() bool {
	return m.Locked && m.ChosenIndex == m.CorrectIndex
}
