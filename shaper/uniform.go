package shaper

import (
	"golang.org/x/image/math/fixed"

	"github.com/oligo/typeset/fontface"
	"github.com/oligo/typeset/segment"
)

// Uniform is a deterministic shaper that assigns every grapheme cluster
// the same advance. It needs no font files, which makes layout geometry
// predictable in tests: a line of n clusters is exactly n*Advance wide.
type Uniform struct {
	// Advance is the width of one cluster. Zero means fixed.I(10).
	Advance fixed.Int26_6
	// Ascent, Descent and Leading default to 8, 2 and 0 pixels.
	Ascent  fixed.Int26_6
	Descent fixed.Int26_6
	Leading fixed.Int26_6
}

func (u Uniform) advance() fixed.Int26_6 {
	if u.Advance == 0 {
		return fixed.I(10)
	}
	return u.Advance
}

func (u Uniform) ascent() fixed.Int26_6 {
	if u.Ascent == 0 {
		return fixed.I(8)
	}
	return u.Ascent
}

func (u Uniform) descent() fixed.Int26_6 {
	if u.Descent == 0 {
		return fixed.I(2)
	}
	return u.Descent
}

func (u Uniform) Shape(text string, start, end int, face *fontface.Face, size fixed.Int26_6, level uint8) Run {
	run := Run{
		Start:   start,
		End:     end,
		Level:   level,
		Ascent:  u.ascent(),
		Descent: u.descent(),
		Leading: u.Leading,
	}
	if start >= end {
		return run
	}

	clusters := segment.Graphemes(text[start:end])
	if level%2 == 1 {
		// Visual order for RTL runs runs from the logical end.
		for i := len(clusters) - 1; i >= 0; i-- {
			run.Glyphs = append(run.Glyphs, u.glyph(text, start, clusters[i]))
		}
	} else {
		for _, c := range clusters {
			run.Glyphs = append(run.Glyphs, u.glyph(text, start, c))
		}
	}
	for _, g := range run.Glyphs {
		run.Advance += g.XAdvance
	}

	return run
}

func (u Uniform) glyph(text string, runStart int, c segment.GraphemeCluster) Glyph {
	adv := u.advance()
	// Line breaks take no horizontal space.
	if s := text[runStart+c.Start : runStart+c.End]; s == "\n" || s == "\r\n" || s == "\r" {
		adv = 0
	}
	return Glyph{Cluster: c.Start, XAdvance: adv}
}
