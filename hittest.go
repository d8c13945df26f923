package typeset

import (
	"image"
	"sort"

	"golang.org/x/image/math/fixed"

	"github.com/oligo/typeset/shaper"
)

// HitPolicy controls how hit testing treats points outside the layout.
type HitPolicy uint8

const (
	// HitClamp snaps out-of-bounds points to the nearest valid offset.
	HitClamp HitPolicy = iota
	// HitStrict reports no result for out-of-bounds points.
	HitStrict
)

// Hit is the result of a point query.
type Hit struct {
	Offset   int
	Line     int
	Affinity Affinity
}

// Position is a layout-local coordinate of a cursor offset.
type Position struct {
	X fixed.Int26_6
	Y int
	// Line is the index of the line box the position falls in.
	Line int
}

// HitTest maps a layout-local point to the nearest cursor offset. Under
// HitStrict it reports false when the point lies outside the rendered
// bounds.
func (l *TextLayout) HitTest(x fixed.Int26_6, y int, policy HitPolicy) (Hit, bool) {
	lineIdx, ok := l.lineAtY(y, policy)
	if !ok {
		return Hit{}, false
	}
	line := l.lines[lineIdx]

	if policy == HitStrict && (x < 0 || x > line.Width) {
		return Hit{}, false
	}

	off, aff := l.hitLine(line, x)
	return Hit{Offset: off, Line: lineIdx, Affinity: aff}, true
}

// lineAtY finds the line box containing the y coordinate.
func (l *TextLayout) lineAtY(y int, policy HitPolicy) (int, bool) {
	if len(l.lines) == 0 {
		return 0, false
	}
	last := l.lines[len(l.lines)-1]
	if y < 0 || y >= last.Bottom() {
		if policy == HitStrict {
			return 0, false
		}
		if y < 0 {
			return 0, true
		}
		return len(l.lines) - 1, true
	}
	idx := sort.Search(len(l.lines), func(i int) bool {
		return l.lines[i].Bottom() > y
	})
	return idx, true
}

// hitLine maps an x coordinate within a line to an offset. The affinity is
// Upstream when the hit lands past the end of a soft-wrapped line.
func (l *TextLayout) hitLine(line LineBox, x fixed.Int26_6) (int, Affinity) {
	if x < 0 {
		return l.visualStartOffset(line), Downstream
	}
	if x >= line.Width {
		off := l.visualEndOffset(line)
		if !line.hardBreak() && off == line.End {
			return off, Upstream
		}
		return off, Downstream
	}

	runX := fixed.Int26_6(0)
	for _, run := range line.Runs {
		if x < runX+run.Advance {
			off := hitRun(run, x-runX)
			aff := Downstream
			if !line.hardBreak() && off == line.End {
				aff = Upstream
			}
			return off, aff
		}
		runX += run.Advance
	}
	return l.visualEndOffset(line), Downstream
}

// hitLineAtX is hitLine for callers that only need the offset.
func (l *TextLayout) hitLineAtX(line LineBox, x fixed.Int26_6) int {
	off, _ := l.hitLine(line, x)
	return off
}

// hitRun maps an x coordinate within a run, walking its clusters in
// visual order and rounding at each cluster's midpoint.
func hitRun(run shaper.Run, x fixed.Int26_6) int {
	cx := fixed.Int26_6(0)
	for _, c := range shaper.Clusters(run) {
		if x >= cx+c.Width {
			cx += c.Width
			continue
		}
		before := x-cx < c.Width/2
		if run.RTL() {
			if before {
				return c.End
			}
			return c.Start
		}
		if before {
			return c.Start
		}
		return c.End
	}
	if run.RTL() {
		return run.Start
	}
	return run.End
}

// xAtOffset returns the visual x of a cursor offset on the given line.
func (l *TextLayout) xAtOffset(line LineBox, off int) fixed.Int26_6 {
	runX := fixed.Int26_6(0)
	for i, run := range line.Runs {
		last := i == len(line.Runs)-1
		if off >= run.Start && (off < run.End || (last && off == run.End)) {
			return runX + xInRun(run, off)
		}
		runX += run.Advance
	}

	if off >= line.ContentEnd {
		return line.Width
	}
	return 0
}

// xInRun returns the caret x of a logical offset relative to the run's
// left edge.
func xInRun(run shaper.Run, off int) fixed.Int26_6 {
	cx := fixed.Int26_6(0)
	if run.RTL() {
		for _, c := range shaper.Clusters(run) {
			if c.Start >= off {
				cx += c.Width
				continue
			}
			break
		}
		return cx
	}
	for _, c := range shaper.Clusters(run) {
		if c.End <= off {
			cx += c.Width
			continue
		}
		break
	}
	return cx
}

// visualStartOffset returns the offset drawn at the line's left edge.
func (l *TextLayout) visualStartOffset(line LineBox) int {
	if len(line.Runs) == 0 {
		return line.Start
	}
	first := line.Runs[0]
	if first.RTL() {
		return first.End
	}
	return first.Start
}

// visualEndOffset returns the offset drawn at the line's right edge.
func (l *TextLayout) visualEndOffset(line LineBox) int {
	if len(line.Runs) == 0 {
		return line.Start
	}
	last := line.Runs[len(line.Runs)-1]
	if last.RTL() {
		return last.Start
	}
	return last.End
}

// OffsetToPosition maps a cursor offset to the top of its caret on the
// containing line. It reports false for out-of-range offsets.
func (l *TextLayout) OffsetToPosition(off int, aff Affinity) (Position, bool) {
	if off < 0 || off > len(l.text) {
		return Position{}, false
	}
	off = l.SnapToGraphemeBoundary(off)
	lineIdx := l.lineFor(off, aff)
	line := l.lines[lineIdx]
	return Position{X: l.xAtOffset(line, off), Y: line.Y, Line: lineIdx}, true
}

// OffsetToBaselinePosition is OffsetToPosition with Y on the line's
// baseline, for aligning decorations to the text.
func (l *TextLayout) OffsetToBaselinePosition(off int, aff Affinity) (Position, bool) {
	pos, ok := l.OffsetToPosition(off, aff)
	if !ok {
		return Position{}, false
	}
	pos.Y = l.lines[pos.Line].Baseline()
	return pos, true
}

// CursorRect returns the caret rectangle of a cursor position. The
// rectangle is one pixel wide and spans the line box's height.
func (l *TextLayout) CursorRect(pos CursorPosition) (image.Rectangle, bool) {
	p, ok := l.OffsetToPosition(pos.Offset, pos.Affinity)
	if !ok {
		return image.Rectangle{}, false
	}
	line := l.lines[p.Line]
	x := p.X.Round()
	return image.Rect(x, line.Y, x+1, line.Bottom()), true
}
