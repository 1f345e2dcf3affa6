package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/spacequiz/internal/quiz"
	"github.com/abhisek/spacequiz/internal/router"
	"github.com/abhisek/spacequiz/internal/screen"
	sessionscreen "github.com/abhisek/spacequiz/internal/screens/session"
	"github.com/abhisek/spacequiz/internal/ui/components"
	"github.com/abhisek/spacequiz/internal/ui/layout"
	"github.com/abhisek/spacequiz/internal/ui/theme"
)

const titleFull = `  ___ ___  _   ___ ___    ___  _   _ ___ ____
 / __| _ \/_\ / __| __|  / _ \| | | |_ _|_  /
 \__ \  _/ _ \ (__| _|  | (_) | |_| || | / /
 |___/_|/_/ \_\___|___|  \__\_\\___/|___/___|`

const titleCompact = "S · P · A · C · E   Q · U · I · Z"

const tagline = "Solar flares, auroras and the solar wind"

// HomeScreen is the launch menu: pick a starting level or exit.
type HomeScreen struct {
	menu      components.Menu
	serverURL string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a HomeScreen whose quiz sessions fetch batches from fetcher.
// serverURL is only displayed.
func New(fetcher sessionscreen.BatchFetcher, serverURL string) *HomeScreen {
	var items []components.MenuItem
	for _, d := range quiz.Difficulties {
		items = append(items, components.MenuItem{
			Label:  "LAUNCH: " + strings.ToUpper(d.String()),
			Hotkey: d.String()[:1],
			Accent: theme.LevelColor(d),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: sessionscreen.New(fetcher, d)}
				}
			},
		})
	}
	items = append(items, components.MenuItem{Label: "EXIT", Hotkey: "q", Accent: theme.Error, Action: func() tea.Cmd {
		return tea.Quit
	}})

	return &HomeScreen{
		menu:      components.NewMenu(items),
		serverURL: serverURL,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactWidth(width) ||
		layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight)
	cw := components.ContentWidth(width)
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)

	title := titleFull
	if compact {
		title = titleCompact
	}

	sections := []string{
		center.Render(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(title)),
	}
	if !compact {
		sections = append(sections, center.Foreground(theme.ArcadeCyan).Render(tagline))
	}
	sections = append(sections, h.menu.View(cw))
	if h.serverURL != "" {
		sections = append(sections, center.Foreground(theme.TextDim).Render(fmt.Sprintf("Server: %s", h.serverURL)))
	}

	return components.Console(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Launch"},
		{Key: "E/M/H", Description: "Quick launch"},
		{Key: "Q", Description: "Exit"},
	}
}

func (h *HomeScreen) Title() string {
	return "Home"
}
