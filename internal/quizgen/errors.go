package quizgen

import "fmt"

// MalformedResponseError indicates the upstream text could not be parsed
// into the batch shape, even after recovery parsing. It is terminal for the
// request and never retried.
type MalformedResponseError struct {
	// Raw is the unmodified upstream text, kept for diagnosis.
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
