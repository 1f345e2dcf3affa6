package session

import (
	"slices"

	"github.com/abhisek/spacequiz/internal/quiz"
)

// ErrNoQuestions is the reason shown when a request succeeds with an empty
// batch.
const ErrNoQuestions = "no questions returned"

// Session is the client-side adaptive quiz state machine. It performs no
// I/O: every operation that needs a batch returns a Ticket, and the driver
// reports the outcome through Resolve. A Session is not safe for
// concurrent use; drive it from one goroutine.
type Session struct {
	state       SessionState
	lastCorrect bool
}

// New creates an idle session at easy difficulty.
func New() *Session {
	return &Session{state: SessionState{Phase: PhaseIdle, Difficulty: quiz.Easy}}
}

// Start requests the first batch at difficulty d. It is valid only from
// PhaseIdle or PhaseError and reports false otherwise.
func (s *Session) Start(d quiz.Difficulty) (Ticket, bool) {
	if s.state.Phase != PhaseIdle && s.state.Phase != PhaseError {
		return Ticket{}, false
	}
	if !d.Valid() {
		d = quiz.Easy
	}
	return s.load(d), true
}

// Retry repeats the failed request at the current difficulty. Nothing is
// retried automatically; this is the learner's manual affordance.
func (s *Session) Retry() (Ticket, bool) {
	return s.Start(s.state.Difficulty)
}

// Restart abandons everything, including any in-flight request, and loads
// a fresh batch at easy. Tallies reset.
func (s *Session) Restart() Ticket {
	s.state.AnsweredCount = 0
	s.state.CorrectCount = 0
	s.state.BatchesCompleted = 0
	s.lastCorrect = false
	return s.load(quiz.Easy)
}

// load moves to PhaseLoading at d under a new generation, which supersedes
// any request still in flight.
func (s *Session) load(d quiz.Difficulty) Ticket {
	s.state.Generation++
	s.state.Phase = PhaseLoading
	s.state.Difficulty = d
	s.state.Batch = nil
	s.state.BatchIndex = 0
	s.state.Selected = nil
	s.state.Answered = false
	s.state.Err = ""
	return Ticket{Generation: s.state.Generation, Difficulty: d}
}

// Resolve applies the outcome of the request issued under gen. Stale
// outcomes, from a superseded generation or arriving outside PhaseLoading,
// are discarded and Resolve reports false.
func (s *Session) Resolve(gen uint64, batch quiz.Batch, err error) bool {
	if gen != s.state.Generation || s.state.Phase != PhaseLoading {
		return false
	}

	switch {
	case err != nil:
		s.fail(err.Error())
	case batch.Len() == 0:
		s.fail(ErrNoQuestions)
	default:
		s.state.Phase = PhasePresenting
		s.state.Batch = batch.Clone()
		s.state.BatchIndex = 0
	}
	return true
}

func (s *Session) fail(reason string) {
	s.state.Phase = PhaseError
	s.state.Err = reason
	s.state.Batch = nil
	s.state.BatchIndex = 0
}

// Select locks answer k for the current question. It is a no-op, reporting
// false, unless a question is being presented and k is a valid option.
func (s *Session) Select(k int) bool {
	if s.state.Phase != PhasePresenting || k < 0 || k >= quiz.OptionCount {
		return false
	}
	q, ok := s.state.Batch.At(s.state.BatchIndex)
	if !ok {
		return false
	}

	sel := k
	s.state.Selected = &sel
	s.state.Answered = true
	s.state.Phase = PhaseAnswered

	s.lastCorrect = q.IsCorrect(k)
	s.state.AnsweredCount++
	if s.lastCorrect {
		s.state.CorrectCount++
	}
	return true
}

// Advance moves past an answered question. Within a batch it presents the
// next question and returns false. After the last question it computes the
// next difficulty from the correctness of that last answer only, starts
// loading the next batch and returns its Ticket with true.
func (s *Session) Advance() (Ticket, bool) {
	if s.state.Phase != PhaseAnswered {
		return Ticket{}, false
	}

	if next := s.state.BatchIndex + 1; next < s.state.Batch.Len() {
		s.state.BatchIndex = next
		s.state.Selected = nil
		s.state.Answered = false
		s.state.Phase = PhasePresenting
		return Ticket{}, false
	}

	s.state.BatchesCompleted++
	return s.load(s.state.Difficulty.Next(s.lastCorrect)), true
}

// State returns a snapshot of the session. The snapshot shares no memory
// with the session.
func (s *Session) State() SessionState {
	st := s.state
	st.Batch = st.Batch.Clone()
	if st.Selected != nil {
		sel := *st.Selected
		st.Selected = &sel
	}
	return st
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.state.Phase
}

// Difficulty returns the level of the current or pending batch.
func (s *Session) Difficulty() quiz.Difficulty {
	return s.state.Difficulty
}

// Current returns the question at the current position, if a batch is
// loaded.
func (s *Session) Current() (quiz.Question, bool) {
	if s.state.Phase != PhasePresenting && s.state.Phase != PhaseAnswered {
		return quiz.Question{}, false
	}
	q, ok := s.state.Batch.At(s.state.BatchIndex)
	q.Options = slices.Clone(q.Options)
	return q, ok
}

// Progress is (BatchIndex+1) / max(len(Batch), 1).
func (s *Session) Progress() float64 {
	return float64(s.state.BatchIndex+1) / float64(max(s.state.Batch.Len(), 1))
}

// LastCorrect reports whether the most recent answer was correct.
func (s *Session) LastCorrect() bool {
	return s.lastCorrect
}
