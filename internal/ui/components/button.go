package components

import (
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/spacequiz/internal/ui/theme"
)

// Button is a single action bound to one or more keys, such as retrying a
// failed batch.
type Button struct {
	Label   string
	Keys    []string
	OnPress func() tea.Cmd
}

// NewButton binds onPress to keys. Enter always presses the button.
func NewButton(label string, onPress func() tea.Cmd, keys ...string) Button {
	if !slices.Contains(keys, "enter") {
		keys = append(keys, "enter")
	}
	return Button{Label: label, Keys: keys, OnPress: onPress}
}

func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || b.OnPress == nil {
		return b, nil
	}
	if slices.Contains(b.Keys, kmsg.String()) {
		return b, b.OnPress()
	}
	return b, nil
}

// View renders the button with its first key as a hint, e.g. "[R] Retry".
func (b Button) View() string {
	label := "▸ " + b.Label
	if len(b.Keys) > 0 && b.Keys[0] != "enter" {
		label = "[" + strings.ToUpper(b.Keys[0]) + "] " + b.Label
	}
	return theme.ButtonActive.Render(label)
}
