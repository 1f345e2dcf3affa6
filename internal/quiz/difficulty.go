package quiz

import "strings"

// Difficulty is the ordered level a batch is generated for.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// Difficulties lists every level in ascending order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// String returns the wire name of the difficulty.
func (d Difficulty) String() string {
	switch d {
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return "easy"
	}
}

// Valid reports whether d is one of the three defined levels.
func (d Difficulty) Valid() bool {
	return d >= Easy && d <= Hard
}

// ParseDifficulty maps a raw request value to a Difficulty. The mapping is
// total: "easy", "medium" and "hard" (any case, surrounding whitespace
// ignored) map to themselves and every other value, including the empty
// string, maps to Easy.
func ParseDifficulty(s string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "medium":
		return Medium
	case "hard":
		return Hard
	default:
		return Easy
	}
}

// Next applies the batch-boundary transition: one step up after a correct
// final answer, one step down after an incorrect one, clamped to the range.
func (d Difficulty) Next(lastCorrect bool) Difficulty {
	if !d.Valid() {
		d = Easy
	}
	if lastCorrect {
		if d < Hard {
			return d + 1
		}
		return Hard
	}
	if d > Easy {
		return d - 1
	}
	return Easy
}

// MarshalText implements encoding.TextMarshaler.
func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseDifficulty.
func (d *Difficulty) UnmarshalText(b []byte) error {
	*d = ParseDifficulty(string(b))
	return nil
}
