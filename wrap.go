package typeset

import (
	"unicode/utf8"

	"golang.org/x/image/math/fixed"

	"github.com/oligo/typeset/bidi"
	"github.com/oligo/typeset/segment"
	"github.com/oligo/typeset/shaper"
)

// WrapMode selects how lines are broken against the maximum width.
type WrapMode uint8

const (
	// NoWrap only breaks at mandatory break positions.
	NoWrap WrapMode = iota
	// WrapWord prefers UAX #14 break opportunities, falling back to
	// grapheme boundaries for tokens wider than the whole line.
	WrapWord
	// WrapGraphemes breaks at any grapheme boundary.
	WrapGraphemes
)

// layoutText wraps the whole text into line boxes. The returned slice is
// never empty: empty text produces a single empty line.
func layoutText(text string, opts Options) []LineBox {
	var lines []LineBox
	breaks := segment.LineBreaks(text)

	paraStart := 0
	for _, br := range breaks {
		if br.Kind != segment.BreakMandatory {
			continue
		}
		if br.Offset > paraStart {
			lines = append(lines, layoutParagraph(text, paraStart, br.Offset, opts)...)
		}
		paraStart = br.Offset
	}

	if len(lines) == 0 || endsWithBreak(text) {
		// A trailing mandatory break opens one more, empty line.
		lines = append(lines, buildLine(text, len(text), len(text), len(text), opts))
	}

	y := 0
	for i := range lines {
		lines[i].Y = y
		y += lines[i].Height()
	}

	return lines
}

// layoutParagraph wraps one paragraph, [start, end) including its trailing
// break characters, into lines.
func layoutParagraph(text string, start, end int, opts Options) []LineBox {
	contentEnd := trimBreak(text, start, end)

	if opts.Wrap == NoWrap || opts.MaxWidth <= 0 {
		return []LineBox{buildLine(text, start, end, contentEnd, opts)}
	}

	candidates := breakCandidates(text, start, contentEnd, opts.Wrap)

	maxWidth := fixed.I(opts.MaxWidth)
	var lines []LineBox
	lineStart := start
	lastFit := -1

	for i := 0; i < len(candidates); {
		cand := candidates[i]
		if cand <= lineStart {
			i++
			continue
		}

		width := measure(text, lineStart, cand, opts)
		if width <= maxWidth {
			lastFit = cand
			i++
			continue
		}

		if lastFit > lineStart {
			// Commit the last fitting candidate and retry this one on
			// the next line.
			lines = append(lines, buildLine(text, lineStart, lastFit, lastFit, opts))
			lineStart = lastFit
			lastFit = -1
			continue
		}

		// The first token alone exceeds the width; consume as many
		// graphemes as fit, but always at least one.
		split := graphemeFit(text, lineStart, cand, maxWidth, opts)
		lines = append(lines, buildLine(text, lineStart, split, split, opts))
		lineStart = split
		lastFit = -1
	}

	if lineStart < contentEnd || len(lines) == 0 {
		lines = append(lines, buildLine(text, lineStart, end, contentEnd, opts))
	} else {
		// All content fit exactly at the last candidate; the trailing
		// break still belongs to the final line.
		last := &lines[len(lines)-1]
		last.End = end
	}

	return lines
}

// breakCandidates returns the break positions usable inside a paragraph,
// ending with contentEnd itself.
func breakCandidates(text string, start, contentEnd int, mode WrapMode) []int {
	var candidates []int
	if mode == WrapGraphemes {
		for _, c := range segment.Graphemes(text[start:contentEnd]) {
			candidates = append(candidates, start+c.End)
		}
	} else {
		for _, br := range segment.LineBreaks(text[start:contentEnd]) {
			candidates = append(candidates, start+br.Offset)
		}
	}
	if n := len(candidates); n == 0 || candidates[n-1] != contentEnd {
		candidates = append(candidates, contentEnd)
	}
	return candidates
}

// graphemeFit returns the widest prefix of [start, end) that stays within
// maxWidth, in whole graphemes, consuming at least one.
func graphemeFit(text string, start, end int, maxWidth fixed.Int26_6, opts Options) int {
	clusters := segment.Graphemes(text[start:end])
	split := start
	for i, c := range clusters {
		width := measure(text, start, start+c.End, opts)
		if width > maxWidth && i > 0 {
			break
		}
		split = start + c.End
		if width > maxWidth {
			break
		}
	}
	if split == start {
		split = end
	}
	return split
}

// measure shapes [start, end) as a single run and returns its advance.
func measure(text string, start, end int, opts Options) fixed.Int26_6 {
	run := opts.Shaper.Shape(text, start, end, opts.Face, opts.Size, 0)
	return run.Advance
}

// buildLine shapes the line [start, end) with visual content
// [start, contentEnd) into its bidi runs.
func buildLine(text string, start, end, contentEnd int, opts Options) LineBox {
	line := LineBox{Start: start, End: end, ContentEnd: contentEnd}

	var runs []shaper.Run
	if contentEnd > start {
		for _, r := range bidi.VisualRuns(text, opts.Base, start, contentEnd) {
			runs = append(runs, opts.Shaper.Shape(text, r.Start, r.End, opts.Face, opts.Size, r.Level))
		}
	} else {
		// Empty lines still need metrics; shape a zero-length run.
		runs = append(runs, opts.Shaper.Shape(text, start, start, opts.Face, opts.Size, 0))
	}

	for _, r := range runs {
		line.Width += r.Advance
		line.Ascent = max(line.Ascent, r.Ascent)
		line.Descent = max(line.Descent, r.Descent)
		line.Leading = max(line.Leading, r.Leading)
	}
	if contentEnd > start {
		line.Runs = runs
	}

	return line
}

// trimBreak strips the single mandatory break sequence terminating
// [start, end), if any, and returns the new end.
func trimBreak(text string, start, end int) int {
	r, size := utf8.DecodeLastRuneInString(text[start:end])
	switch r {
	case '\n':
		end -= size
		if r2, size2 := utf8.DecodeLastRuneInString(text[start:end]); r2 == '\r' {
			end -= size2
		}
	case '\r', '\v', '\f', '\u0085', '\u2028', '\u2029':
		end -= size
	}
	return end
}

func endsWithBreak(text string) bool {
	return len(text) > 0 && trimBreak(text, 0, len(text)) < len(text)
}
