// Package typeset is a text layout and cursor/selection engine. It turns a
// UTF-8 string plus a wrapping width into positioned line boxes, and maps
// between byte offsets and layout-local coordinates for cursor rendering,
// hit testing and selection highlighting. Layout instances are not safe
// for concurrent use; the optional Cache is.
package typeset

import (
	"image"

	"golang.org/x/image/math/fixed"

	"github.com/oligo/typeset/shaper"
)

// LineBox is one laid-out line. Its byte range includes the trailing
// mandatory break, if any, so consecutive ranges tile the whole text.
type LineBox struct {
	// Byte range of the line in the source text.
	Start int
	End   int
	// ContentEnd excludes the trailing mandatory break characters. Runs
	// and Width cover [Start, ContentEnd) only.
	ContentEnd int

	// Runs holds the line's shaped runs in visual order.
	Runs []shaper.Run

	// Width is the summed advance of all runs.
	Width fixed.Int26_6
	// Vertical metrics, maxed over the participating runs. Descent is
	// positive downwards.
	Ascent  fixed.Int26_6
	Descent fixed.Int26_6
	Leading fixed.Int26_6

	// Y is the top of the line box relative to the layout origin.
	Y int
}

// Height is the full height of the line box in pixels.
func (l LineBox) Height() int {
	return (l.Ascent + l.Descent + l.Leading).Ceil()
}

// Baseline is the y coordinate of the line's baseline.
func (l LineBox) Baseline() int {
	return l.Y + l.Ascent.Ceil()
}

// Bottom is the y coordinate just below the line box.
func (l LineBox) Bottom() int {
	return l.Y + l.Height()
}

// hardBreak reports whether the line ends with a mandatory break.
func (l LineBox) hardBreak() bool {
	return l.ContentEnd < l.End
}

// Region is a rectangular area of the layout, used for selection and
// marker highlighting.
type Region struct {
	// Bounds is the coordinate of the region relative to the layout
	// origin.
	Bounds image.Rectangle
	// Baseline is the baseline's y offset from the region top.
	Baseline int
}

func makeRegion(line LineBox, minX, maxX fixed.Int26_6) Region {
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	return Region{
		Bounds:   image.Rect(minX.Floor(), line.Y, maxX.Ceil(), line.Bottom()),
		Baseline: line.Ascent.Ceil(),
	}
}
