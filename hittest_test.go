package typeset

import (
	"fmt"
	"testing"

	"golang.org/x/image/math/fixed"

	"github.com/oligo/typeset/segment"
)

func TestHitTestClamp(t *testing.T) {
	l := New("hello\nworld", uniformOpts())

	testcases := []struct {
		x      fixed.Int26_6
		y      int
		offset int
		line   int
	}{
		{fixed.I(0), 0, 0, 0},
		{fixed.I(14), 5, 1, 0},
		{fixed.I(16), 5, 2, 0},
		{fixed.I(900), 5, 5, 0},
		{fixed.I(-50), 15, 6, 1},
		{fixed.I(23), 15, 8, 1},
		// Below all lines clamps to the last one.
		{fixed.I(23), 500, 8, 1},
		{fixed.I(23), -50, 2, 0},
	}

	for i, tc := range testcases {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			hit, ok := l.HitTest(tc.x, tc.y, HitClamp)
			if !ok {
				t.Fatal("clamped hit test reported no result")
			}
			if hit.Offset != tc.offset || hit.Line != tc.line {
				t.Errorf("hit = %+v, want offset %d line %d", hit, tc.offset, tc.line)
			}
		})
	}
}

func TestHitTestStrict(t *testing.T) {
	l := New("hello", uniformOpts())

	if _, ok := l.HitTest(fixed.I(10), -1, HitStrict); ok {
		t.Error("strict hit above the layout should fail")
	}
	if _, ok := l.HitTest(fixed.I(10), 50, HitStrict); ok {
		t.Error("strict hit below the layout should fail")
	}
	if _, ok := l.HitTest(fixed.I(200), 5, HitStrict); ok {
		t.Error("strict hit right of the line should fail")
	}
	if hit, ok := l.HitTest(fixed.I(22), 5, HitStrict); !ok || hit.Offset != 2 {
		t.Errorf("strict in-bounds hit = %+v, %v", hit, ok)
	}
}

func TestHitTestMidpointRounding(t *testing.T) {
	l := New("ab", uniformOpts())
	// The first cluster spans 0..10px; past its midpoint the hit rounds
	// to the next boundary.
	if hit, _ := l.HitTest(fixed.I(4), 5, HitClamp); hit.Offset != 0 {
		t.Errorf("hit at 4px = %d, want 0", hit.Offset)
	}
	if hit, _ := l.HitTest(fixed.I(6), 5, HitClamp); hit.Offset != 1 {
		t.Errorf("hit at 6px = %d, want 1", hit.Offset)
	}
}

func TestHitTestEmptyText(t *testing.T) {
	l := New("", uniformOpts())
	hit, ok := l.HitTest(fixed.I(3), 2, HitClamp)
	if !ok || hit.Offset != 0 || hit.Line != 0 {
		t.Errorf("hit = %+v, %v", hit, ok)
	}
}

func TestOffsetToPosition(t *testing.T) {
	l := New("hello\nworld", uniformOpts())

	pos, ok := l.OffsetToPosition(8, Downstream)
	if !ok {
		t.Fatal("no position")
	}
	if pos.X != fixed.I(20) || pos.Line != 1 || pos.Y != 10 {
		t.Errorf("pos = %+v, want x=20px line=1 y=10", pos)
	}

	base, ok := l.OffsetToBaselinePosition(8, Downstream)
	if !ok || base.Y != 18 {
		t.Errorf("baseline pos = %+v, want y=18", base)
	}

	if _, ok := l.OffsetToPosition(-1, Downstream); ok {
		t.Error("negative offset should have no position")
	}
	if _, ok := l.OffsetToPosition(100, Downstream); ok {
		t.Error("out of range offset should have no position")
	}
}

func TestCursorRect(t *testing.T) {
	l := New("hello\nworld", uniformOpts())
	rect, ok := l.CursorRect(CursorPosition{Offset: 7})
	if !ok {
		t.Fatal("no cursor rect")
	}
	if rect.Min.X != 10 || rect.Max.X != 11 {
		t.Errorf("rect x = [%d, %d), want [10, 11)", rect.Min.X, rect.Max.X)
	}
	if rect.Min.Y != 10 || rect.Max.Y != 20 {
		t.Errorf("rect y = [%d, %d), want [10, 20)", rect.Min.Y, rect.Max.Y)
	}
}

func TestRoundTrip(t *testing.T) {
	texts := []struct {
		text     string
		maxWidth int
		mode     WrapMode
	}{
		{"hello world", 0, NoWrap},
		{"hello world", 60, WrapWord},
		{"hello world\nfoo", 60, WrapWord},
		{"héllo wörld with ação", 80, WrapWord},
		{"a\U0001F468\u200d\U0001F469\u200d\U0001F467\u200d\U0001F466b cdef", 40, WrapWord},
		{"one\n\ntwo\n", 0, NoWrap},
	}

	for i, tc := range texts {
		t.Run(fmt.Sprintf("%d: %q", i, tc.text), func(t *testing.T) {
			l := New(tc.text, wrappedOpts(tc.maxWidth, tc.mode))
			for _, off := range segment.GraphemeBoundaries(tc.text) {
				pos, ok := l.OffsetToPosition(off, Downstream)
				if !ok {
					t.Fatalf("offset %d: no position", off)
				}
				hit, ok := l.HitTest(pos.X, pos.Y, HitClamp)
				if !ok {
					t.Fatalf("offset %d: no hit", off)
				}
				if hit.Offset != off {
					t.Errorf("offset %d round-tripped to %d (pos %+v)", off, hit.Offset, pos)
				}
			}
		})
	}
}

func TestHitSoftWrapAffinity(t *testing.T) {
	l := New("hello world", wrappedOpts(60, WrapWord))
	// Far right of the first wrapped line: the offset equals the next
	// line's start, disambiguated by upstream affinity.
	hit, ok := l.HitTest(fixed.I(500), 5, HitClamp)
	if !ok {
		t.Fatal("no hit")
	}
	if hit.Offset != 6 || hit.Affinity != Upstream || hit.Line != 0 {
		t.Errorf("hit = %+v, want offset 6 upstream on line 0", hit)
	}
}
