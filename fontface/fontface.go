// Package fontface loads font files and exposes the metrics the layout
// engine needs. A Face wraps a parsed go-text font; it is not safe for
// concurrent use, load one per layout engine or guard it externally.
package fontface

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// Face is a parsed font ready for shaping.
type Face struct {
	face *font.Face
	// Line metrics per pixel size, filled lazily.
	metrics map[fixed.Int26_6]Metrics
}

// Metrics are the vertical line metrics of a face at a given size, in
// 26.6 fixed point pixels. Descent is positive downwards.
type Metrics struct {
	Ascent  fixed.Int26_6
	Descent fixed.Int26_6
	LineGap fixed.Int26_6
}

// Height is the default distance between consecutive baselines.
func (m Metrics) Height() fixed.Int26_6 {
	return m.Ascent + m.Descent + m.LineGap
}

// Parse parses a TTF or OTF font from data.
func Parse(data []byte) (*Face, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("fontface: parsing font: %w", err)
	}
	return &Face{face: face}, nil
}

// Load reads and parses the font file at path.
func Load(path string) (*Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fontface: reading %s: %w", path, err)
	}
	face, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fontface: loading %s: %w", path, err)
	}
	return face, nil
}

// Raw returns the underlying go-text face for shaping.
func (f *Face) Raw() *font.Face {
	return f.face
}

// Upem returns the font's units per em.
func (f *Face) Upem() uint16 {
	return f.face.Upem()
}

// Metrics returns the face's line metrics at the given pixel size. The
// metrics come from shaping a probe run, so they match what shaped runs of
// this face report.
func (f *Face) Metrics(size fixed.Int26_6) Metrics {
	if m, ok := f.metrics[size]; ok {
		return m
	}

	probe := []rune{' '}
	var shaper shaping.HarfbuzzShaper
	out := shaper.Shape(shaping.Input{
		Text:      probe,
		RunStart:  0,
		RunEnd:    len(probe),
		Direction: di.DirectionLTR,
		Face:      f.face,
		Size:      size,
		Script:    language.Latin,
	})

	m := Metrics{
		Ascent:  out.LineBounds.Ascent,
		Descent: -out.LineBounds.Descent,
		LineGap: out.LineBounds.Gap,
	}
	if f.metrics == nil {
		f.metrics = make(map[fixed.Int26_6]Metrics)
	}
	f.metrics[size] = m
	return m
}
