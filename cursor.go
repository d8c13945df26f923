package typeset

import (
	"golang.org/x/image/math/fixed"

	"github.com/oligo/typeset/segment"
)

// Affinity picks the visual side of an ambiguous offset, such as a soft
// line wrap where the end of one line equals the start of the next.
type Affinity uint8

const (
	// Downstream associates the offset with the following character.
	Downstream Affinity = iota
	// Upstream associates the offset with the preceding character.
	Upstream
)

// CursorPosition is a byte offset snapped to a grapheme boundary plus the
// affinity disambiguating its visual placement.
type CursorPosition struct {
	Offset   int
	Affinity Affinity
}

// SnapToGraphemeBoundary moves off backwards to the nearest grapheme
// boundary. Boundary offsets are returned unchanged.
func (l *TextLayout) SnapToGraphemeBoundary(off int) int {
	return segment.SnapToBoundary(l.text, off)
}

// MoveLeft returns the grapheme boundary before off, clamping at 0.
func (l *TextLayout) MoveLeft(off int) int {
	off = l.clampOffset(off)
	prev, ok := segment.PrevGraphemeBoundary(l.text, off)
	if !ok {
		return 0
	}
	return prev
}

// MoveRight returns the grapheme boundary after off, clamping at the text
// end.
func (l *TextLayout) MoveRight(off int) int {
	off = l.clampOffset(off)
	next, ok := segment.NextGraphemeBoundary(l.text, off)
	if !ok {
		return len(l.text)
	}
	return next
}

// MoveWordLeft returns the start of the word before off.
func (l *TextLayout) MoveWordLeft(off int) int {
	return segment.PrevWordBoundary(l.text, l.clampOffset(off))
}

// MoveWordRight returns the end of the word after off.
func (l *TextLayout) MoveWordRight(off int) int {
	return segment.NextWordBoundary(l.text, l.clampOffset(off))
}

// MoveUp moves the cursor one line up, keeping the visual column stored in
// preferredX across repeated presses. Pass a negative preferredX on the
// first press to derive the column from off. On the first line the cursor
// moves to the text start.
func (l *TextLayout) MoveUp(off int, preferredX fixed.Int26_6) (int, fixed.Int26_6) {
	off = l.clampOffset(off)
	line := l.lineFor(off, Downstream)
	if preferredX < 0 {
		preferredX = l.xAtOffset(l.lines[line], off)
	}
	if line == 0 {
		return 0, preferredX
	}
	return l.hitLineAtX(l.lines[line-1], preferredX), preferredX
}

// MoveDown is the inverse of MoveUp. On the last line the cursor moves to
// the text end.
func (l *TextLayout) MoveDown(off int, preferredX fixed.Int26_6) (int, fixed.Int26_6) {
	off = l.clampOffset(off)
	line := l.lineFor(off, Downstream)
	if preferredX < 0 {
		preferredX = l.xAtOffset(l.lines[line], off)
	}
	if line == len(l.lines)-1 {
		return len(l.text), preferredX
	}
	return l.hitLineAtX(l.lines[line+1], preferredX), preferredX
}

// MoveLineStart returns the offset of the start of the line the cursor
// sits on. Affinity matters at soft wrap boundaries.
func (l *TextLayout) MoveLineStart(off int, aff Affinity) int {
	off = l.clampOffset(off)
	return l.lines[l.lineFor(off, aff)].Start
}

// MoveLineEnd returns the offset of the end of the line's visible content,
// before any trailing break.
func (l *TextLayout) MoveLineEnd(off int, aff Affinity) int {
	off = l.clampOffset(off)
	return l.lines[l.lineFor(off, aff)].ContentEnd
}

// MoveTextStart returns 0.
func (l *TextLayout) MoveTextStart() int {
	return 0
}

// MoveTextEnd returns the offset past the last character.
func (l *TextLayout) MoveTextEnd() int {
	return len(l.text)
}
