package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestContentHeight(t *testing.T) {
	tests := []struct {
		total int
		want  int
	}{
		{30, 24},
		{6, 0},
		{2, 0},
	}
	for _, tt := range tests {
		if got := ContentHeight(tt.total); got != tt.want {
			t.Errorf("ContentHeight(%d) = %d, want %d", tt.total, got, tt.want)
		}
	}
}

func TestCompactThresholds(t *testing.T) {
	if !IsCompactWidth(80) || IsCompactWidth(100) {
		t.Error("compact width should start below 100 columns")
	}
	if !IsCompactHeight(24) || IsCompactHeight(30) {
		t.Error("compact height should start below 30 rows")
	}
	if !IsTooSmall(79, 30) || IsTooSmall(80, 24) {
		t.Error("minimum size is 80x24")
	}
}

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Quiz", "HARD  ✓ 4/5", 100)
	for _, want := range []string{"Space Quiz", "Quiz", "HARD  ✓ 4/5"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q", want)
		}
	}
	if got := lipgloss.Height(h); got != HeaderHeight {
		t.Errorf("header height = %d, want %d", got, HeaderHeight)
	}
}

func TestRenderFooterDropsOverflow(t *testing.T) {
	hints := []KeyHint{
		{Key: "Enter", Description: "Answer"},
		{Key: "1-4", Description: "Quick answer"},
		{Key: "Esc", Description: "Quit"},
	}
	wide := RenderFooter(hints, 100)
	if !strings.Contains(wide, "Quit") {
		t.Error("expected every hint on a wide footer")
	}

	narrow := RenderFooter(hints, 30)
	if !strings.Contains(narrow, "Answer") {
		t.Error("expected the first hint to survive")
	}
	if strings.Contains(narrow, "Quit") {
		t.Error("expected trailing hints to be dropped")
	}
	if got := lipgloss.Height(narrow); got != FooterHeight {
		t.Errorf("footer height = %d, want %d", got, FooterHeight)
	}
}
