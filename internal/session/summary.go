package session

// Summary holds the in-session tallies shown on the summary line.
type Summary struct {
	Answered   int
	Correct    int
	Batches    int
	Accuracy   float64
	Difficulty string
}

// BuildSummary creates a Summary from the current session state.
func BuildSummary(state SessionState) Summary {
	var accuracy float64
	if state.AnsweredCount > 0 {
		accuracy = float64(state.CorrectCount) / float64(state.AnsweredCount)
	}

	return Summary{
		Answered:   state.AnsweredCount,
		Correct:    state.CorrectCount,
		Batches:    state.BatchesCompleted,
		Accuracy:   accuracy,
		Difficulty: state.Difficulty.String(),
	}
}
