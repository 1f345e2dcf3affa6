package session

import "github.com/abhisek/spacequiz/internal/quiz"

// Phase is the current phase of a quiz session.
type Phase int

const (
	PhaseIdle       Phase = iota // Not started
	PhaseLoading                 // Waiting for a batch
	PhasePresenting              // Showing a question, no answer yet
	PhaseAnswered                // Answer locked, feedback shown
	PhaseError                   // Last request failed; manual retry only
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhasePresenting:
		return "presenting"
	case PhaseAnswered:
		return "answered"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// SessionState is a read-only snapshot of a session.
type SessionState struct {
	Phase Phase

	// Batch is the batch being presented. Empty while loading.
	Batch quiz.Batch

	// BatchIndex is the position of the current question in Batch.
	// Always in [0, max(len(Batch), 1)).
	BatchIndex int

	// Difficulty is the level of the current or pending batch.
	Difficulty quiz.Difficulty

	// Selected is the locked answer for BatchIndex, or nil before the
	// learner answers.
	Selected *int

	// Answered is true once Selected is set for BatchIndex.
	Answered bool

	// Err is the reason shown in PhaseError.
	Err string

	// Generation identifies the most recent request. Responses carrying any
	// other generation are stale.
	Generation uint64

	// In-session tallies for the summary line. Never persisted.
	AnsweredCount    int
	CorrectCount     int
	BatchesCompleted int
}

// Ticket is a batch request the driver must execute and later hand back to
// Resolve with the same Generation.
type Ticket struct {
	Generation uint64
	Difficulty quiz.Difficulty
}
