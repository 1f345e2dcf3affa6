package quizgen

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/abhisek/spacequiz/internal/quiz"
)

var (
	errTrailingData = errors.New("unexpected data after JSON value")
	errNoObject     = errors.New("no JSON object found")
)

// Normalize turns raw upstream text into a Batch.
//
// The whole text is decoded first; if that fails, the span from the first
// '{' to the last '}' is decoded instead. The decoded value must be an
// object with a "questions" array, otherwise *MalformedResponseError is
// returned. Up to quiz.MaxBatchSize entries are coerced and unusable ones
// are dropped, so an empty Batch with a nil error is a valid outcome.
//
// Normalize is pure: the same input always yields the same Batch.
func Normalize(raw string) (quiz.Batch, error) {
	v, err := decode(raw)
	if err != nil {
		return nil, &MalformedResponseError{Raw: raw, Err: err}
	}

	if err := checkShape(v); err != nil {
		return nil, &MalformedResponseError{Raw: raw, Err: err}
	}

	entries := v.(map[string]any)["questions"].([]any)
	if len(entries) > quiz.MaxBatchSize {
		entries = entries[:quiz.MaxBatchSize]
	}

	batch := make(quiz.Batch, 0, len(entries))
	for i, entry := range entries {
		if q, ok := coerceQuestion(entry, i+1); ok {
			batch = append(batch, q)
		}
	}
	return batch, nil
}

// decode tries a strict parse of the full text, then a recovery parse of
// the outermost brace span.
func decode(raw string) (any, error) {
	v, strictErr := decodeStrict(raw)
	if strictErr == nil {
		return v, nil
	}

	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start < 0 || end < start {
		return nil, fmt.Errorf("%w: %v", errNoObject, strictErr)
	}

	v, err := decodeStrict(raw[start : end+1])
	if err != nil {
		return nil, fmt.Errorf("recovery parse: %w", err)
	}
	return v, nil
}

// decodeStrict decodes s as exactly one JSON value. Numbers are kept as
// json.Number so integral checks are exact.
func decodeStrict(s string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errTrailingData
	}
	return v, nil
}

// coerceQuestion derives a Question from one decoded entry. position is the
// entry's 1-based index in the upstream list and becomes the ID when the
// entry has none. It reports false when the entry must be dropped.
func coerceQuestion(entry any, position int) (quiz.Question, bool) {
	obj, ok := entry.(map[string]any)
	if !ok {
		return quiz.Question{}, false
	}

	id, ok := coerceString(obj["id"])
	if !ok {
		id = strconv.Itoa(position)
	}
	text, _ := coerceString(obj["question"])
	explanation, _ := coerceString(obj["explanation"])

	q := quiz.Question{
		ID:           id,
		Question:     text,
		Options:      coerceOptions(obj["options"]),
		CorrectIndex: coerceIndex(obj["correctIndex"]),
		Explanation:  explanation,
	}

	if q.Question == "" || len(q.Options) != quiz.OptionCount {
		return quiz.Question{}, false
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= quiz.OptionCount {
		return quiz.Question{}, false
	}
	return q, true
}

// coerceString renders a decoded JSON value as text. It reports false for
// null or absent values.
func coerceString(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, true
	case json.Number:
		return numberText(t), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return "", false
		}
		return string(b), true
	}
}

// numberText formats a JSON number the way a JavaScript String() call does,
// so 1.0 reads "1", 1e2 reads "100" and 1e400 reads "Infinity".
func numberText(n json.Number) string {
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return n.String()
	}
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e21 || abs < 1e-6 {
		mant, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
		sign := exp[:1]
		exp = strings.TrimLeft(exp[1:], "0")
		return mant + "e" + sign + exp
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// coerceOptions returns the first quiz.OptionCount elements of an options
// array as strings. Anything that is not an array, or an array with a null
// among the kept elements, yields no options.
func coerceOptions(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return []string{}
	}
	if len(arr) > quiz.OptionCount {
		arr = arr[:quiz.OptionCount]
	}

	out := make([]string, 0, len(arr))
	for _, el := range arr {
		s, ok := coerceString(el)
		if !ok {
			return []string{}
		}
		out = append(out, s)
	}
	return out
}

// coerceIndex returns the value of an integral JSON number, or 0 for
// anything else. Values outside int range collapse to -1 so the caller
// drops them.
func coerceIndex(v any) int {
	n, ok := v.(json.Number)
	if !ok {
		return 0
	}
	f, err := n.Float64()
	if err != nil || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return -1
	}
	return int(f)
}
