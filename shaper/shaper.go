// Package shaper turns text runs into positioned glyphs. The production
// implementation wraps go-text's HarfBuzz port; Uniform is a deterministic
// substitute for tests and measurement without font files.
package shaper

import (
	"unicode/utf8"

	"github.com/go-text/typesetting/font"
	"golang.org/x/image/math/fixed"

	"github.com/oligo/typeset/fontface"
)

// Glyph is a single positioned glyph of a shaped run. Cluster is the byte
// offset, relative to the run start, of the cluster the glyph belongs to.
type Glyph struct {
	ID       font.GID
	Cluster  int
	XAdvance fixed.Int26_6
	XOffset  fixed.Int26_6
	YOffset  fixed.Int26_6
}

// Run is the shaped form of a single-direction span of text.
type Run struct {
	// Byte range of the run in the source text.
	Start int
	End   int
	// Level is the bidi embedding level; odd levels are right-to-left.
	Level uint8
	// Glyphs in visual order. For RTL runs clusters descend.
	Glyphs []Glyph
	// Advance is the sum of glyph advances.
	Advance fixed.Int26_6
	// Line metrics of the run's face at the shaped size. Descent is
	// positive downwards.
	Ascent  fixed.Int26_6
	Descent fixed.Int26_6
	Leading fixed.Int26_6
}

// RTL reports whether the run is right-to-left.
func (r Run) RTL() bool {
	return r.Level%2 == 1
}

// Shaper shapes one run of text. The byte range [start, end) must lie on
// rune boundaries of text and hold a single bidi level.
type Shaper interface {
	Shape(text string, start, end int, face *fontface.Face, size fixed.Int26_6, level uint8) Run
}

// Cluster groups the glyphs of run by cluster, in visual order. Each
// element of the returned slice is the glyph range of one cluster.
type Cluster struct {
	// Byte range in the source text.
	Start int
	End   int
	// Glyph range in run.Glyphs.
	GlyphStart int
	GlyphEnd   int
	// Width is the summed advance of the cluster's glyphs.
	Width fixed.Int26_6
}

// Clusters splits run.Glyphs into clusters. Cluster text ranges are
// derived from neighbouring cluster values, so trailing clusters extend to
// the run end.
func Clusters(run Run) []Cluster {
	if len(run.Glyphs) == 0 {
		return nil
	}

	var clusters []Cluster
	for i := 0; i < len(run.Glyphs); {
		j := i + 1
		for j < len(run.Glyphs) && run.Glyphs[j].Cluster == run.Glyphs[i].Cluster {
			j++
		}
		c := Cluster{
			Start:      run.Start + run.Glyphs[i].Cluster,
			GlyphStart: i,
			GlyphEnd:   j,
		}
		for _, g := range run.Glyphs[i:j] {
			c.Width += g.XAdvance
		}
		clusters = append(clusters, c)
		i = j
	}

	// Close each cluster's byte range against its logical successor.
	if run.RTL() {
		// Visual order is reversed logical order.
		end := run.End
		for i := range clusters {
			clusters[i].End = end
			end = clusters[i].Start
		}
	} else {
		for i := range clusters {
			if i+1 < len(clusters) {
				clusters[i].End = clusters[i+1].Start
			} else {
				clusters[i].End = run.End
			}
		}
	}

	return clusters
}

// runeByteOffsets maps rune indices of s to byte offsets, with a final
// entry of len(s).
func runeByteOffsets(s string) []int {
	offs := make([]int, 0, utf8.RuneCountInString(s)+1)
	for i := range s {
		offs = append(offs, i)
	}
	offs = append(offs, len(s))
	return offs
}
