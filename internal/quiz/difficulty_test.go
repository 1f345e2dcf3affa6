package quiz

import "testing"

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		input string
		want  Difficulty
	}{
		{"easy", Easy},
		{"medium", Medium},
		{"hard", Hard},
		{"HARD", Hard},
		{"  medium ", Medium},
		{"", Easy},
		{"expert", Easy},
		{"0", Easy},
		{"null", Easy},
	}
	for _, tt := range tests {
		if got := ParseDifficulty(tt.input); got != tt.want {
			t.Errorf("ParseDifficulty(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestDifficultyRoundTripsThroughString(t *testing.T) {
	for _, d := range Difficulties {
		if got := ParseDifficulty(d.String()); got != d {
			t.Errorf("ParseDifficulty(%q) = %v, want %v", d.String(), got, d)
		}
	}
}

func TestDifficultyNext(t *testing.T) {
	tests := []struct {
		from    Difficulty
		correct bool
		want    Difficulty
	}{
		{Easy, true, Medium},
		{Medium, true, Hard},
		{Hard, true, Hard},
		{Hard, false, Medium},
		{Medium, false, Easy},
		{Easy, false, Easy},
	}
	for _, tt := range tests {
		if got := tt.from.Next(tt.correct); got != tt.want {
			t.Errorf("%v.Next(%t) = %v, want %v", tt.from, tt.correct, got, tt.want)
		}
	}
}

func TestDifficultyNext_NeverSkipsALevel(t *testing.T) {
	for _, d := range Difficulties {
		for _, correct := range []bool{true, false} {
			next := d.Next(correct)
			if !next.Valid() {
				t.Fatalf("%v.Next(%t) left the level set: %d", d, correct, next)
			}
			step := int(next) - int(d)
			if step < -1 || step > 1 {
				t.Errorf("%v.Next(%t) = %v skips a level", d, correct, next)
			}
		}
	}
}

func TestDifficultyNext_ConvergesWithinTwoSteps(t *testing.T) {
	for _, start := range Difficulties {
		d := start
		for i := 0; i < 2; i++ {
			d = d.Next(true)
		}
		if d != Hard {
			t.Errorf("from %v after 2 correct batches got %v, want hard", start, d)
		}
		for i := 0; i < 5; i++ {
			if d = d.Next(true); d != Hard {
				t.Fatalf("left hard after further correct batches: %v", d)
			}
		}

		d = start
		for i := 0; i < 2; i++ {
			d = d.Next(false)
		}
		if d != Easy {
			t.Errorf("from %v after 2 incorrect batches got %v, want easy", start, d)
		}
		for i := 0; i < 5; i++ {
			if d = d.Next(false); d != Easy {
				t.Fatalf("left easy after further incorrect batches: %v", d)
			}
		}
	}
}

func TestDifficultyNext_InvalidTreatedAsEasy(t *testing.T) {
	if got := Difficulty(7).Next(true); got != Medium {
		t.Errorf("Difficulty(7).Next(true) = %v, want medium", got)
	}
}

func TestBatchAt(t *testing.T) {
	b := Batch{{ID: "1"}, {ID: "2"}}
	if q, ok := b.At(1); !ok || q.ID != "2" {
		t.Errorf("At(1) = %+v, %t", q, ok)
	}
	if _, ok := b.At(2); ok {
		t.Error("At(2) should not exist")
	}
	if _, ok := b.At(-1); ok {
		t.Error("At(-1) should not exist")
	}
}

func TestBatchClone(t *testing.T) {
	b := Batch{{ID: "1", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 1}}
	c := b.Clone()
	c[0].CorrectIndex = 3
	c[0].Options[0] = "x"

	if b[0].CorrectIndex != 1 || b[0].Options[0] != "a" {
		t.Fatalf("clone shares memory with original: %+v", b[0])
	}
	if Batch(nil).Clone() != nil {
		t.Error("nil batch should clone to nil")
	}
}
