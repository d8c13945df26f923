package bidi

import (
	"fmt"
	"testing"
)

func TestParagraphs(t *testing.T) {
	testcases := []struct {
		input string
		base  BaseDirection
		want  []Paragraph
	}{
		{"", Auto, []Paragraph{{0, 0, 0, DirectionLTR}}},
		{"hello", Auto, []Paragraph{{0, 5, 0, DirectionLTR}}},
		{"שלום", Auto, []Paragraph{{0, 8, 1, DirectionRTL}}},
		{"hello\nworld", Auto, []Paragraph{
			{0, 6, 0, DirectionLTR},
			{6, 11, 0, DirectionLTR},
		}},
	}

	for i, tc := range testcases {
		t.Run(fmt.Sprintf("%d: %q", i, tc.input), func(t *testing.T) {
			got := Paragraphs(tc.input, tc.base)
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for j := range got {
				if got[j] != tc.want[j] {
					t.Errorf("paragraph %d = %+v, want %+v", j, got[j], tc.want[j])
				}
			}
		})
	}
}

func TestMixedParagraphDirection(t *testing.T) {
	paras := Paragraphs("abc אבג", Auto)
	if len(paras) != 1 {
		t.Fatalf("got %d paragraphs", len(paras))
	}
	if paras[0].Direction != DirectionMixed {
		t.Errorf("direction = %v, want DirectionMixed", paras[0].Direction)
	}
	if paras[0].Level != 0 {
		t.Errorf("level = %d, want 0", paras[0].Level)
	}
}

func TestLevelsPerByte(t *testing.T) {
	text := "abc אבג"
	levels := LevelsPerByte(text, LeftToRight)
	if len(levels) != len(text) {
		t.Fatalf("got %d levels for %d bytes", len(levels), len(text))
	}
	for i := 0; i < 3; i++ {
		if levels[i] != 0 {
			t.Errorf("levels[%d] = %d, want 0", i, levels[i])
		}
	}
	// The Hebrew letters start at byte 4 and are 2 bytes each.
	for i := 4; i < len(text); i++ {
		if levels[i] != 1 {
			t.Errorf("levels[%d] = %d, want 1", i, levels[i])
		}
	}
}

func TestVisualRuns(t *testing.T) {
	text := "abc אבג"
	runs := VisualRuns(text, LeftToRight, 0, len(text))
	if len(runs) != 2 {
		t.Fatalf("got %d runs %v, want 2", len(runs), runs)
	}
	if runs[0].RTL() || runs[0].Start != 0 || runs[0].End != 4 {
		t.Errorf("first run = %+v, want LTR [0, 4)", runs[0])
	}
	if !runs[1].RTL() || runs[1].Start != 4 || runs[1].End != len(text) {
		t.Errorf("second run = %+v, want RTL [4, %d)", runs[1], len(text))
	}
}

func TestVisualRunsRTLBase(t *testing.T) {
	text := "אבג abc"
	runs := VisualRuns(text, Auto, 0, len(text))
	if len(runs) != 2 {
		t.Fatalf("got %d runs %v, want 2", len(runs), runs)
	}
	// With an RTL paragraph the Latin run draws first, on the left.
	if runs[0].RTL() || runs[0].Start != 7 || runs[0].End != len(text) {
		t.Errorf("first run = %+v, want LTR [7, %d)", runs[0], len(text))
	}
	if !runs[1].RTL() || runs[1].Start != 0 || runs[1].End != 7 {
		t.Errorf("second run = %+v, want RTL [0, 7)", runs[1])
	}
}

func TestVisualIndexMapRTLBase(t *testing.T) {
	text := "אבג abc"
	got := VisualIndexMap(text, Auto, 0, len(text))
	want := []int{4, 5, 6, 3, 2, 1, 0}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestParagraphLevelOverride(t *testing.T) {
	testcases := []struct {
		input string
		base  BaseDirection
		level uint8
	}{
		{"אבג abc", LeftToRight, 0},
		{"abc אבג", RightToLeft, 1},
		{"אבג", LeftToRight, 0},
	}

	for i, tc := range testcases {
		t.Run(fmt.Sprintf("%d: %q", i, tc.input), func(t *testing.T) {
			paras := Paragraphs(tc.input, tc.base)
			if len(paras) != 1 {
				t.Fatalf("got %d paragraphs", len(paras))
			}
			if paras[0].Level != tc.level {
				t.Errorf("level = %d, want %d", paras[0].Level, tc.level)
			}
		})
	}
}

func TestVisualRunsAssertsSingleParagraph(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for a cross-paragraph line")
		}
	}()
	VisualRuns("a\nb", Auto, 0, 3)
}

func TestVisualIndexMap(t *testing.T) {
	text := "abc אבג"
	got := VisualIndexMap(text, LeftToRight, 0, len(text))
	want := []int{0, 1, 2, 3, 6, 5, 4}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestVisualIndexMapPermutation(t *testing.T) {
	testcases := []string{
		"hello",
		"abc אבג",
		"אבג abc",
		"a אב b גד c",
	}

	for i, tc := range testcases {
		t.Run(fmt.Sprintf("%d: %s", i, tc), func(t *testing.T) {
			m := VisualIndexMap(tc, Auto, 0, len(tc))
			runes := len([]rune(tc))
			if len(m) != runes {
				t.Fatalf("map has %d entries for %d runes", len(m), runes)
			}
			seen := make([]bool, runes)
			for _, idx := range m {
				if idx < 0 || idx >= runes || seen[idx] {
					t.Fatalf("not a permutation: %v", m)
				}
				seen[idx] = true
			}
		})
	}
}

func TestMirroredBracket(t *testing.T) {
	pairs := map[rune]rune{
		'(': ')', ')': '(',
		'[': ']', ']': '[',
		'{': '}', '}': '{',
		'<': '>', '>': '<',
	}
	for in, want := range pairs {
		if got := MirroredBracket(in); got != want {
			t.Errorf("MirroredBracket(%c) = %c, want %c", in, got, want)
		}
	}
	if got := MirroredBracket('a'); got != 'a' {
		t.Errorf("MirroredBracket(a) = %c, want a", got)
	}
}
