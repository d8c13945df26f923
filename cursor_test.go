package typeset

import (
	"testing"

	"golang.org/x/image/math/fixed"
)

func TestMoveByGrapheme(t *testing.T) {
	family := "\U0001F468\u200d\U0001F469\u200d\U0001F467\u200d\U0001F466"
	text := "Hello " + family + " World"
	l := New(text, uniformOpts())

	seqStart := 6
	seqEnd := seqStart + len(family)

	if got := l.MoveRight(seqStart); got != seqEnd {
		t.Errorf("MoveRight(%d) = %d, want %d", seqStart, got, seqEnd)
	}
	if got := l.MoveLeft(seqEnd); got != seqStart {
		t.Errorf("MoveLeft(%d) = %d, want %d", seqEnd, got, seqStart)
	}
}

func TestMoveIdempotentAtEdges(t *testing.T) {
	l := New("hello", uniformOpts())
	if got := l.MoveLeft(0); got != 0 {
		t.Errorf("MoveLeft(0) = %d, want 0", got)
	}
	if got := l.MoveRight(5); got != 5 {
		t.Errorf("MoveRight(5) = %d, want 5", got)
	}
	if got := l.MoveLeft(l.MoveLeft(0)); got != 0 {
		t.Errorf("repeated MoveLeft at edge = %d", got)
	}
}

func TestMoveByWord(t *testing.T) {
	l := New("hello big world", uniformOpts())
	if got := l.MoveWordRight(0); got != 5 {
		t.Errorf("MoveWordRight(0) = %d, want 5", got)
	}
	if got := l.MoveWordLeft(15); got != 10 {
		t.Errorf("MoveWordLeft(15) = %d, want 10", got)
	}
}

func TestMoveVerticalKeepsColumn(t *testing.T) {
	l := New("abcdef\nab\nabcdef", uniformOpts())

	// From column 4 on the last line, up through the short line and back.
	off, x := l.MoveUp(14, -1)
	if off != 9 {
		t.Errorf("MoveUp landed at %d, want 9 (end of short line)", off)
	}
	if x != fixed.I(40) {
		t.Errorf("preferred x = %v, want 40px", x)
	}

	off, x = l.MoveUp(off, x)
	if off != 4 {
		t.Errorf("second MoveUp landed at %d, want 4", off)
	}

	off, x = l.MoveDown(off, x)
	if off != 9 {
		t.Errorf("MoveDown landed at %d, want 9", off)
	}
	off, _ = l.MoveDown(off, x)
	if off != 14 {
		t.Errorf("second MoveDown landed at %d, want 14", off)
	}
}

func TestMoveVerticalAtEdges(t *testing.T) {
	l := New("ab\ncd", uniformOpts())
	if off, _ := l.MoveUp(1, -1); off != 0 {
		t.Errorf("MoveUp on first line = %d, want 0", off)
	}
	if off, _ := l.MoveDown(4, -1); off != 5 {
		t.Errorf("MoveDown on last line = %d, want 5", off)
	}
}

func TestMoveLineStartEnd(t *testing.T) {
	l := New("hello world\nfoo", uniformOpts())
	if got := l.MoveLineStart(8, Downstream); got != 0 {
		t.Errorf("MoveLineStart(8) = %d, want 0", got)
	}
	if got := l.MoveLineEnd(8, Downstream); got != 11 {
		t.Errorf("MoveLineEnd(8) = %d, want 11", got)
	}
	if got := l.MoveLineEnd(13, Downstream); got != 15 {
		t.Errorf("MoveLineEnd(13) = %d, want 15", got)
	}
}

func TestMoveLineEndSoftWrapAffinity(t *testing.T) {
	l := New("hello world", wrappedOpts(60, WrapWord))
	// Offset 6 sits on the wrap boundary between both lines.
	if got := l.MoveLineEnd(6, Upstream); got != 6 {
		t.Errorf("Upstream MoveLineEnd(6) = %d, want 6", got)
	}
	if got := l.MoveLineEnd(6, Downstream); got != 11 {
		t.Errorf("Downstream MoveLineEnd(6) = %d, want 11", got)
	}
	if got := l.MoveLineStart(6, Upstream); got != 0 {
		t.Errorf("Upstream MoveLineStart(6) = %d, want 0", got)
	}
}

func TestMoveTextEdges(t *testing.T) {
	l := New("hello", uniformOpts())
	if got := l.MoveTextStart(); got != 0 {
		t.Errorf("MoveTextStart = %d", got)
	}
	if got := l.MoveTextEnd(); got != 5 {
		t.Errorf("MoveTextEnd = %d, want 5", got)
	}
}

func TestSnapToGraphemeBoundary(t *testing.T) {
	family := "\U0001F468\u200d\U0001F469\u200d\U0001F467\u200d\U0001F466"
	l := New("a"+family+"b", uniformOpts())
	if got := l.SnapToGraphemeBoundary(5); got != 1 {
		t.Errorf("SnapToGraphemeBoundary(5) = %d, want 1", got)
	}
	if got := l.SnapToGraphemeBoundary(1); got != 1 {
		t.Errorf("SnapToGraphemeBoundary(1) = %d, want 1", got)
	}
}
