package session

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/spacequiz/internal/quiz"
	"github.com/abhisek/spacequiz/internal/router"
	"github.com/abhisek/spacequiz/internal/screen"
	"github.com/abhisek/spacequiz/internal/screens/summary"
	sess "github.com/abhisek/spacequiz/internal/session"
	"github.com/abhisek/spacequiz/internal/ui/components"
	"github.com/abhisek/spacequiz/internal/ui/layout"
	"github.com/abhisek/spacequiz/internal/ui/theme"
)

// BatchFetcher retrieves one batch of questions. *session.Client
// implements it against the HTTP endpoint.
type BatchFetcher interface {
	FetchBatch(ctx context.Context, d quiz.Difficulty) (quiz.Batch, error)
}

// SessionScreen implements screen.Screen for a running quiz. It owns one
// session state machine and executes the tickets it hands out.
type SessionScreen struct {
	fetcher     BatchFetcher
	session     *sess.Session
	start       quiz.Difficulty
	choice      components.MultiChoice
	spinner     spinner.Model
	retry       components.Button
	confirmQuit bool

	// cancelLoad aborts the request for the newest ticket. Issuing a new
	// ticket cancels the previous one first, so at most one request runs.
	cancelLoad context.CancelFunc
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.StatusProvider = (*SessionScreen)(nil)
var _ screen.BackHandler = (*SessionScreen)(nil)

// New creates a SessionScreen that starts at difficulty start.
func New(fetcher BatchFetcher, start quiz.Difficulty) *SessionScreen {
	s := &SessionScreen{
		fetcher: fetcher,
		session: sess.New(),
		start:   start,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.ArcadeYellow)),
		),
	}
	s.retry = components.NewButton("Retry", s.retryLoad, "r")
	return s
}

func (s *SessionScreen) Init() tea.Cmd {
	ticket, ok := s.session.Start(s.start)
	if !ok {
		return nil
	}
	return s.beginLoad(ticket)
}

func (s *SessionScreen) Title() string {
	return "Quiz"
}

func (s *SessionScreen) HandlesBack() bool {
	return true
}

// Status shows the current level and the running score.
func (s *SessionScreen) Status() string {
	st := s.session.State()
	return fmt.Sprintf("%s  ✓ %d/%d  ", strings.ToUpper(st.Difficulty.String()), st.CorrectCount, st.AnsweredCount)
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "End quiz"},
			{Key: "N", Description: "Keep going"},
		}
	}
	switch s.session.Phase() {
	case sess.PhasePresenting:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Move"},
			{Key: "Enter", Description: "Answer"},
			{Key: "1-4", Description: "Quick answer"},
			{Key: "Esc", Description: "Quit"},
		}
	case sess.PhaseAnswered:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Shift+R", Description: "Restart"},
			{Key: "Esc", Description: "Quit"},
		}
	case sess.PhaseError:
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Shift+R", Description: "Restart"},
			{Key: "Esc", Description: "Quit"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Shift+R", Description: "Restart"},
			{Key: "Esc", Description: "Quit"},
		}
	}
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case batchLoadedMsg:
		if !s.session.Resolve(msg.Gen, msg.Batch, msg.Err) {
			return s, nil
		}
		s.stopLoad()
		if s.session.Phase() == sess.PhasePresenting {
			s.loadChoice()
		}
		return s, nil

	case spinner.TickMsg:
		if s.session.Phase() != sess.PhaseLoading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case endSessionMsg:
		s.stopLoad()
		sum := sess.BuildSummary(s.session.State())
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: summary.New(sum)} }

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			return s, func() tea.Msg { return endSessionMsg{} }
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.confirmQuit = true
		return s, nil
	case "R", "shift+r":
		return s, s.beginLoad(s.session.Restart())
	}

	switch s.session.Phase() {
	case sess.PhasePresenting:
		if k, ok := components.OptionForKey(key); ok {
			s.selectOption(k)
			return s, nil
		}
		switch key {
		case "enter", "space":
			s.selectOption(s.choice.Cursor)
			return s, nil
		}
		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		return s, cmd

	case sess.PhaseAnswered:
		switch key {
		case "enter", "space", "n", "right":
			return s, s.advance()
		}

	case sess.PhaseError:
		var cmd tea.Cmd
		s.retry, cmd = s.retry.Update(msg)
		return s, cmd
	}

	return s, nil
}

func (s *SessionScreen) selectOption(k int) {
	if s.session.Select(k) {
		s.choice = s.choice.Lock(k)
	}
}

func (s *SessionScreen) advance() tea.Cmd {
	ticket, loading := s.session.Advance()
	if loading {
		return s.beginLoad(ticket)
	}
	s.loadChoice()
	return nil
}

func (s *SessionScreen) retryLoad() tea.Cmd {
	ticket, ok := s.session.Retry()
	if !ok {
		return nil
	}
	return s.beginLoad(ticket)
}

// loadChoice rebuilds the option list for the current question.
func (s *SessionScreen) loadChoice() {
	q, ok := s.session.Current()
	if !ok {
		return
	}
	s.choice = components.NewMultiChoice(q.Question, q.Options, q.CorrectIndex)
}

// beginLoad executes ticket t in the background and animates the spinner
// until the batch arrives. Any request still running for an older ticket is
// cancelled.
func (s *SessionScreen) beginLoad(t sess.Ticket) tea.Cmd {
	s.stopLoad()
	ctx, cancel := context.WithCancel(context.Background())
	s.cancelLoad = cancel
	return tea.Batch(fetchBatch(ctx, s.fetcher, t), s.spinner.Tick)
}

func (s *SessionScreen) stopLoad() {
	if s.cancelLoad != nil {
		s.cancelLoad()
		s.cancelLoad = nil
	}
}

// fetchBatch performs the request for t and stamps the result with its
// generation.
func fetchBatch(ctx context.Context, fetcher BatchFetcher, t sess.Ticket) tea.Cmd {
	return func() tea.Msg {
		batch, err := fetcher.FetchBatch(ctx, t.Difficulty)
		return batchLoadedMsg{Gen: t.Generation, Batch: batch, Err: err}
	}
}
