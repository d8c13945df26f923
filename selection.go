package typeset

import (
	"strings"

	"golang.org/x/image/math/fixed"

	"github.com/oligo/typeset/segment"
)

// Selection is an anchor/focus pair of byte offsets. The focus is the
// moving end; either end may be the larger offset.
type Selection struct {
	Anchor int
	Focus  int
}

// Range returns the selection normalized to ascending order.
func (s Selection) Range() (start, end int) {
	if s.Anchor <= s.Focus {
		return s.Anchor, s.Focus
	}
	return s.Focus, s.Anchor
}

// IsCollapsed reports whether the selection is empty.
func (s Selection) IsCollapsed() bool {
	return s.Anchor == s.Focus
}

// Contains reports whether off falls inside the normalized range.
func (s Selection) Contains(off int) bool {
	start, end := s.Range()
	return off >= start && off < end
}

// ExtendTo moves the focus, keeping the anchor.
func (s Selection) ExtendTo(off int) Selection {
	return Selection{Anchor: s.Anchor, Focus: off}
}

// Collapse returns a collapsed selection at the focus.
func (s Selection) Collapse() Selection {
	return Selection{Anchor: s.Focus, Focus: s.Focus}
}

// snapSelection normalizes the selection ends onto grapheme boundaries.
func (l *TextLayout) snapSelection(sel Selection) (start, end int) {
	start, end = sel.Range()
	start = l.clampOffset(start)
	end = l.clampOffset(end)
	return start, end
}

// SelectionRects decomposes a selection into one region per visually
// contiguous run per line, in visual order, so selections across RTL
// embeddings highlight contiguous spans. Collapsed selections produce
// nothing.
func (l *TextLayout) SelectionRects(sel Selection) []Region {
	start, end := l.snapSelection(sel)
	if start == end {
		return nil
	}

	var regions []Region
	first := l.lineFor(start, Downstream)
	for i := first; i < len(l.lines); i++ {
		line := l.lines[i]
		if line.Start >= end {
			break
		}

		lineStart := max(start, line.Start)
		lineEnd := min(end, line.ContentEnd)
		if lineStart > lineEnd {
			continue
		}
		if lineStart == lineEnd && line.ContentEnd > line.Start {
			// The selection only covers this line's trailing break.
			continue
		}

		regions = append(regions, l.lineSelectionRegions(line, lineStart, lineEnd)...)
	}

	return regions
}

// lineSelectionRegions intersects [start, end) with each visual run of
// the line, merging regions of adjacent runs that touch.
func (l *TextLayout) lineSelectionRegions(line LineBox, start, end int) []Region {
	if len(line.Runs) == 0 {
		// An empty line inside the selection marks its spot with a
		// zero-width region.
		return []Region{makeRegion(line, 0, 0)}
	}

	var regions []Region
	x := fixed.Int26_6(0)
	for _, run := range line.Runs {
		a := max(start, run.Start)
		b := min(end, run.End)
		if a < b {
			minX := x + xInRun(run, a)
			maxX := x + xInRun(run, b)
			region := makeRegion(line, minX, maxX)
			if n := len(regions); n > 0 && regions[n-1].Bounds.Max.X == region.Bounds.Min.X {
				regions[n-1].Bounds.Max.X = region.Bounds.Max.X
			} else {
				regions = append(regions, region)
			}
		}
		x += run.Advance
	}

	if len(regions) == 0 {
		regions = append(regions, makeRegion(line, 0, 0))
	}
	return regions
}

// SelectWordAt returns the word containing off, or a collapsed selection
// for empty text.
func (l *TextLayout) SelectWordAt(off int) Selection {
	off = l.clampOffset(off)
	seg, ok := segment.WordAt(l.text, off)
	if !ok {
		return Selection{Anchor: off, Focus: off}
	}
	return Selection{Anchor: seg.Start, Focus: seg.End}
}

// SelectLineAt returns the visible content of the line containing off,
// excluding any trailing break.
func (l *TextLayout) SelectLineAt(off int) Selection {
	off = l.clampOffset(off)
	line := l.lines[l.lineFor(off, Downstream)]
	return Selection{Anchor: line.Start, Focus: line.ContentEnd}
}

// SelectParagraphAt returns the paragraph containing off, excluding its
// trailing break.
func (l *TextLayout) SelectParagraphAt(off int) Selection {
	off = l.clampOffset(off)
	start := 0
	if i := strings.LastIndexByte(l.text[:off], '\n'); i >= 0 {
		start = i + 1
	}
	end := len(l.text)
	if i := strings.IndexByte(l.text[off:], '\n'); i >= 0 {
		end = off + i
	}
	return Selection{Anchor: start, Focus: end}
}
