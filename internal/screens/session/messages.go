package session

import "github.com/abhisek/spacequiz/internal/quiz"

// batchLoadedMsg carries the outcome of one batch request. Gen is the
// generation of the ticket that issued it; the session discards it when a
// newer request has superseded that ticket.
type batchLoadedMsg struct {
	Gen   uint64
	Batch quiz.Batch
	Err   error
}

// endSessionMsg leaves the quiz and shows the summary.
type endSessionMsg struct{}
