package quiz

import "slices"

// OptionCount is the number of answer options every surfaced question carries.
const OptionCount = 4

// MaxBatchSize is the largest number of questions a single generation call
// may yield.
const MaxBatchSize = 5

// Question is a single multiple-choice question ready for display.
type Question struct {
	// ID is unique within its batch. Defaults to the 1-based position when
	// the model omits it.
	ID string `json:"id"`

	// Question is the prompt shown to the learner. Never empty.
	Question string `json:"question"`

	// Options holds exactly OptionCount answer choices in display order.
	Options []string `json:"options"`

	// CorrectIndex is the position of the correct option, in [0, OptionCount).
	// Presentation code must not reveal it before the learner answers.
	CorrectIndex int `json:"correctIndex"`

	// Explanation is a one-sentence justification shown after answering.
	Explanation string `json:"explanation"`
}

// IsCorrect reports whether choosing option k answers q correctly.
func (q Question) IsCorrect(k int) bool {
	return k == q.CorrectIndex
}

// Batch is the ordered set of questions returned by one generation call.
// It is never modified after creation.
type Batch []Question

// Len returns the number of questions in the batch.
func (b Batch) Len() int { return len(b) }

// Clone returns a copy of b that shares no memory with it. A nil batch
// stays nil.
func (b Batch) Clone() Batch {
	if b == nil {
		return nil
	}
	out := slices.Clone(b)
	for i := range out {
		out[i].Options = slices.Clone(out[i].Options)
	}
	return out
}

// At returns the question at position i and whether it exists.
func (b Batch) At(i int) (Question, bool) {
	if i < 0 || i >= len(b) {
		return Question{}, false
	}
	return b[i], true
}
