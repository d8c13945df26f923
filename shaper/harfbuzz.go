package shaper

import (
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/oligo/typeset/fontface"
)

// HarfBuzz shapes runs with go-text's HarfBuzz port. The zero value is
// ready to use. The internal shaper state is pooled, so a HarfBuzz value
// may be shared between goroutines as long as each call uses its own face.
type HarfBuzz struct {
	pool sync.Pool
}

// NewHarfBuzz returns a shaper backed by go-text/typesetting.
func NewHarfBuzz() *HarfBuzz {
	return &HarfBuzz{}
}

func (h *HarfBuzz) Shape(text string, start, end int, face *fontface.Face, size fixed.Int26_6, level uint8) Run {
	metrics := face.Metrics(size)
	run := Run{
		Start:   start,
		End:     end,
		Level:   level,
		Ascent:  metrics.Ascent,
		Descent: metrics.Descent,
		Leading: metrics.LineGap,
	}
	if start >= end {
		return run
	}

	slice := text[start:end]
	runes := []rune(slice)
	byteOff := runeByteOffsets(slice)

	dir := di.DirectionLTR
	if level%2 == 1 {
		dir = di.DirectionRTL
	}

	hb, _ := h.pool.Get().(*shaping.HarfbuzzShaper)
	if hb == nil {
		hb = &shaping.HarfbuzzShaper{}
	}
	out := hb.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		Face:      face.Raw(),
		Size:      size,
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	})
	h.pool.Put(hb)

	run.Glyphs = make([]Glyph, 0, len(out.Glyphs))
	for _, g := range out.Glyphs {
		run.Glyphs = append(run.Glyphs, Glyph{
			ID:       g.GlyphID,
			Cluster:  byteOff[g.ClusterIndex],
			XAdvance: g.XAdvance,
			XOffset:  g.XOffset,
			YOffset:  g.YOffset,
		})
		run.Advance += g.XAdvance
	}
	run.Ascent = out.LineBounds.Ascent
	run.Descent = -out.LineBounds.Descent
	run.Leading = out.LineBounds.Gap

	return run
}

// detectScript returns the script of the first non-space rune. Mixed
// script runs should be split by the caller before shaping.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
