package typeset

import (
	"strings"

	"github.com/oligo/typeset/segment"
)

// InsertString inserts s at off and returns the cursor offset after the
// inserted text. Off is clamped to a grapheme boundary first.
func (l *TextLayout) InsertString(off int, s string) int {
	off = l.clampOffset(off)
	if s == "" {
		return off
	}
	l.splice(off, off, s)
	return off + len(s)
}

// InsertRune inserts a single rune at off.
func (l *TextLayout) InsertRune(off int, r rune) int {
	return l.InsertString(off, string(r))
}

// InsertNewline inserts a line break at off.
func (l *TextLayout) InsertNewline(off int) int {
	return l.InsertString(off, "\n")
}

// InsertTab inserts a tab character at off.
func (l *TextLayout) InsertTab(off int) int {
	return l.InsertString(off, "\t")
}

// ReplaceSelection deletes the selected range and inserts s in its place,
// returning the cursor offset after the inserted text.
func (l *TextLayout) ReplaceSelection(sel Selection, s string) int {
	start, end := l.snapSelection(sel)
	l.splice(start, end, s)
	return start + len(s)
}

// DeleteBackward deletes the grapheme cluster ending at off, never a
// partial cluster. At the text start it is a no-op.
func (l *TextLayout) DeleteBackward(off int) int {
	off = l.clampOffset(off)
	prev, ok := segment.PrevGraphemeBoundary(l.text, off)
	if !ok {
		return off
	}
	l.splice(prev, off, "")
	return prev
}

// DeleteForward deletes the grapheme cluster starting at off. At the text
// end it is a no-op.
func (l *TextLayout) DeleteForward(off int) int {
	off = l.clampOffset(off)
	next, ok := segment.NextGraphemeBoundary(l.text, off)
	if !ok {
		return off
	}
	l.splice(off, next, "")
	return off
}

// DeleteWordBackward deletes from the start of the word before off to off.
func (l *TextLayout) DeleteWordBackward(off int) int {
	off = l.clampOffset(off)
	start := segment.PrevWordBoundary(l.text, off)
	if start == off {
		return off
	}
	l.splice(start, off, "")
	return start
}

// DeleteWordForward deletes from off to the end of the word after off.
func (l *TextLayout) DeleteWordForward(off int) int {
	off = l.clampOffset(off)
	end := segment.NextWordBoundary(l.text, off)
	if end == off {
		return off
	}
	l.splice(off, end, "")
	return off
}

// DeleteSelection removes the selected range and returns its start.
func (l *TextLayout) DeleteSelection(sel Selection) int {
	start, end := l.snapSelection(sel)
	if start == end {
		return start
	}
	l.splice(start, end, "")
	return start
}

// DeleteLine removes the whole logical line containing off, from the
// character after the previous newline through the next newline inclusive,
// and returns the line's start offset. Soft-wrapped rows are not lines for
// this purpose.
func (l *TextLayout) DeleteLine(off int) int {
	off = l.clampOffset(off)
	start := 0
	if i := strings.LastIndexByte(l.text[:off], '\n'); i >= 0 {
		start = i + 1
	}
	end := len(l.text)
	if i := strings.IndexByte(l.text[off:], '\n'); i >= 0 {
		end = off + i + 1
	}
	if start == end {
		return start
	}
	l.splice(start, end, "")
	return start
}

// splice replaces [start, end) with s, records undo state, shifts markers
// and lays the text out again.
func (l *TextLayout) splice(start, end int, s string) {
	removed := l.text[start:end]
	if removed == "" && s == "" {
		return
	}

	if l.undo != nil {
		l.undo.record(editOp{At: start, Removed: removed, Inserted: s})
	}

	l.text = l.text[:start] + s + l.text[end:]
	if l.markers != nil {
		l.markers.applyEdit(start, len(removed), len(s))
	}
	l.relayout()
}

// applySplice is splice without undo recording, used to replay undo and
// redo operations.
func (l *TextLayout) applySplice(start, end int, s string) {
	l.text = l.text[:start] + s + l.text[end:]
	if l.markers != nil {
		l.markers.applyEdit(start, end-start, len(s))
	}
	l.relayout()
}
