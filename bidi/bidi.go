// Package bidi resolves bidirectional text: it splits text into
// paragraphs, derives per-character embedding levels and reorders line
// content into visual runs. All offsets are byte offsets into the
// original string.
package bidi

import (
	"fmt"
	"unicode/utf8"

	xbidi "golang.org/x/text/unicode/bidi"
)

// BaseDirection is the caller supplied paragraph direction hint.
type BaseDirection uint8

const (
	// Auto derives the paragraph direction from its first strong
	// character, defaulting to left-to-right.
	Auto BaseDirection = iota
	LeftToRight
	RightToLeft
)

// Direction is the resolved direction of a paragraph.
type Direction uint8

const (
	DirectionLTR Direction = iota
	DirectionRTL
	// DirectionMixed marks paragraphs holding both LTR and RTL runs.
	DirectionMixed
)

// Paragraph is a bidi paragraph of the source text. Its range includes the
// terminating paragraph separator, if any.
type Paragraph struct {
	Start     int
	End       int
	Level     uint8
	Direction Direction
}

// Run is a contiguous span sharing one embedding level.
type Run struct {
	Start int
	End   int
	Level uint8
}

// RTL reports whether the run is right-to-left.
func (r Run) RTL() bool {
	return r.Level%2 == 1
}

// Paragraphs splits text into bidi paragraphs and resolves the base level
// of each. A forced base direction overrides the level derived from the
// paragraph content. Empty text yields a single empty paragraph.
func Paragraphs(text string, base BaseDirection) []Paragraph {
	if text == "" {
		level := base.level()
		return []Paragraph{{Level: level, Direction: directionOf(nil, level)}}
	}

	var paras []Paragraph
	pos := 0
	for pos < len(text) {
		n := paragraphLength(text[pos:])
		para := Paragraph{Start: pos, End: pos + n}
		para.Level = baseLevel(text[pos:pos+n], base)
		para.Direction = directionOf(resolveLevels(text[pos:pos+n], para.Level), para.Level)
		paras = append(paras, para)
		pos += n
	}

	return paras
}

// LevelsPerByte returns one resolved embedding level per byte of text.
// All bytes of a multi-byte character share its level.
func LevelsPerByte(text string, base BaseDirection) []uint8 {
	levels := make([]uint8, len(text))
	for _, para := range Paragraphs(text, base) {
		runeLevels := resolveLevels(text[para.Start:para.End], para.Level)
		off := para.Start
		i := 0
		for _, r := range text[para.Start:para.End] {
			size := utf8.RuneLen(r)
			for b := 0; b < size; b++ {
				levels[off+b] = runeLevels[i]
			}
			off += size
			i++
		}
	}
	return levels
}

// VisualRuns reorders the line [lineStart, lineEnd) into visual order.
// Levels are resolved over the whole containing paragraph, so a line
// sliced out of a longer paragraph keeps its context. The line must lie
// within a single paragraph of text.
func VisualRuns(text string, base BaseDirection, lineStart, lineEnd int) []Run {
	para := paragraphContaining(text, base, lineStart, lineEnd)
	if lineStart == lineEnd {
		return nil
	}

	levels, byteOff := paragraphLevels(text, para)
	i0, i1 := runeRange(byteOff, lineStart, lineEnd)
	if i0 >= i1 {
		return nil
	}

	var runs []Run
	for i := i0; i < i1; {
		j := i + 1
		for j < i1 && levels[j] == levels[i] {
			j++
		}
		runs = append(runs, Run{Start: byteOff[i], End: byteOff[j], Level: levels[i]})
		i = j
	}
	return reorderRuns(runs)
}

// VisualIndexMap returns, for each visual character position of the line,
// the logical rune index (relative to lineStart) it draws. The result is a
// permutation of [0, runeCount).
func VisualIndexMap(text string, base BaseDirection, lineStart, lineEnd int) []int {
	para := paragraphContaining(text, base, lineStart, lineEnd)
	if lineStart == lineEnd {
		return nil
	}

	levels, byteOff := paragraphLevels(text, para)
	i0, i1 := runeRange(byteOff, lineStart, lineEnd)
	if i0 >= i1 {
		return nil
	}
	return reorderVisual(levels[i0:i1])
}

// baseLevel resolves the paragraph embedding level. A forced hint wins;
// Auto scans for the first strong character per rule P2.
func baseLevel(para string, base BaseDirection) uint8 {
	if base != Auto {
		return base.level()
	}
	for _, r := range para {
		props, _ := xbidi.LookupRune(r)
		switch props.Class() {
		case xbidi.L:
			return 0
		case xbidi.R, xbidi.AL:
			return 1
		}
	}
	return 0
}

// paragraphLength returns the byte length of the first paragraph of s,
// including its terminating separator.
func paragraphLength(s string) int {
	var p xbidi.Paragraph
	n, err := p.SetString(s)
	if err != nil || n <= 0 {
		return len(s)
	}
	return n
}

// resolveLevels returns one embedding level per rune of para. The x/text
// resolver reports run directions in logical order; levels are synthesized
// from the paragraph level plus the direction parity of each run.
func resolveLevels(para string, paraLevel uint8) []uint8 {
	n := utf8.RuneCountInString(para)
	levels := make([]uint8, n)
	for i := range levels {
		levels[i] = paraLevel
	}
	if para == "" {
		return levels
	}

	hint := xbidi.LeftToRight
	if paraLevel%2 == 1 {
		hint = xbidi.RightToLeft
	}
	var p xbidi.Paragraph
	if _, err := p.SetString(para, xbidi.DefaultDirection(hint)); err != nil {
		return levels
	}
	ordering, err := p.Order()
	if err != nil {
		return levels
	}

	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		start, end := run.Pos()
		level := paraLevel
		if (run.Direction() == xbidi.RightToLeft) != (paraLevel%2 == 1) {
			level = paraLevel + 1
		}
		for j := start; j <= end && j < n; j++ {
			levels[j] = level
		}
	}
	return levels
}

// paragraphLevels resolves levels for the whole paragraph and returns
// them alongside the byte offset of each rune. byteOff has one extra
// trailing entry holding para.End.
func paragraphLevels(text string, para Paragraph) ([]uint8, []int) {
	slice := text[para.Start:para.End]
	levels := resolveLevels(slice, para.Level)
	byteOff := make([]int, 0, len(levels)+1)
	for i := range slice {
		byteOff = append(byteOff, para.Start+i)
	}
	byteOff = append(byteOff, para.End)
	return levels, byteOff
}

// runeRange maps the byte range [lineStart, lineEnd) to the rune index
// range [i0, i1) of byteOff.
func runeRange(byteOff []int, lineStart, lineEnd int) (int, int) {
	i0, i1 := 0, len(byteOff)-1
	for i0 < len(byteOff)-1 && byteOff[i0] < lineStart {
		i0++
	}
	for i1 > i0 && byteOff[i1-1] >= lineEnd {
		i1--
	}
	return i0, i1
}

// reorderRuns applies rule L2 at run granularity: from the highest level
// down to the lowest odd level, reverse every maximal span of runs at or
// above that level.
func reorderRuns(runs []Run) []Run {
	maxLevel, minOdd := uint8(0), uint8(0)
	hasOdd := false
	for _, r := range runs {
		if r.Level > maxLevel {
			maxLevel = r.Level
		}
		if r.Level%2 == 1 && (!hasOdd || r.Level < minOdd) {
			minOdd = r.Level
			hasOdd = true
		}
	}
	if !hasOdd {
		return runs
	}

	for level := maxLevel; level >= minOdd; level-- {
		for i := 0; i < len(runs); {
			if runs[i].Level < level {
				i++
				continue
			}
			j := i
			for j < len(runs) && runs[j].Level >= level {
				j++
			}
			for lo, hi := i, j-1; lo < hi; lo, hi = lo+1, hi-1 {
				runs[lo], runs[hi] = runs[hi], runs[lo]
			}
			i = j
		}
	}
	return runs
}

// reorderVisual applies rule L2 per character: the result maps each
// visual position to the logical index holding that character.
func reorderVisual(levels []uint8) []int {
	m := make([]int, len(levels))
	for i := range m {
		m[i] = i
	}

	maxLevel, minOdd := uint8(0), uint8(0)
	hasOdd := false
	for _, l := range levels {
		if l > maxLevel {
			maxLevel = l
		}
		if l%2 == 1 && (!hasOdd || l < minOdd) {
			minOdd = l
			hasOdd = true
		}
	}
	if !hasOdd {
		return m
	}

	for level := maxLevel; level >= minOdd; level-- {
		for i := 0; i < len(levels); {
			if levels[i] < level {
				i++
				continue
			}
			j := i
			for j < len(levels) && levels[j] >= level {
				j++
			}
			for lo, hi := i, j-1; lo < hi; lo, hi = lo+1, hi-1 {
				m[lo], m[hi] = m[hi], m[lo]
			}
			i = j
		}
	}
	return m
}

func paragraphContaining(text string, base BaseDirection, lineStart, lineEnd int) Paragraph {
	for _, para := range Paragraphs(text, base) {
		if lineStart >= para.Start && lineEnd <= para.End {
			return para
		}
	}
	panic(fmt.Sprintf("bidi: line [%d, %d) spans paragraph boundaries", lineStart, lineEnd))
}

func directionOf(levels []uint8, paraLevel uint8) Direction {
	sawLTR, sawRTL := false, false
	for _, l := range levels {
		if l%2 == 1 {
			sawRTL = true
		} else {
			sawLTR = true
		}
	}
	switch {
	case sawLTR && sawRTL:
		return DirectionMixed
	case sawRTL:
		return DirectionRTL
	case sawLTR:
		return DirectionLTR
	}
	if paraLevel%2 == 1 {
		return DirectionRTL
	}
	return DirectionLTR
}

func (d BaseDirection) level() uint8 {
	if d == RightToLeft {
		return 1
	}
	return 0
}
