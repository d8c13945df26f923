package segment

import (
	"github.com/go-text/typesetting/segmenter"
)

// BreakKind distinguishes mandatory breaks from break opportunities.
type BreakKind uint8

const (
	// BreakOpportunity marks a position a line is allowed to wrap at.
	BreakOpportunity BreakKind = iota
	// BreakMandatory marks a position a line must end at, such as after
	// a newline.
	BreakMandatory
)

// LineBreak is a UAX #14 break position. Offset is the byte offset just
// after the segment the break terminates.
type LineBreak struct {
	Offset int
	Kind   BreakKind
}

// LineBreaks returns all break positions of text in ascending order. The
// final position always sits at len(text) and is mandatory.
func LineBreaks(text string) []LineBreak {
	if text == "" {
		return []LineBreak{{Offset: 0, Kind: BreakMandatory}}
	}

	runes := []rune(text)
	byteOff := runeToByteTable(text, runes)

	var seg segmenter.Segmenter
	seg.Init(runes)

	var breaks []LineBreak
	iter := seg.LineIterator()
	for iter.Next() {
		line := iter.Line()
		kind := BreakOpportunity
		if line.IsMandatoryBreak {
			kind = BreakMandatory
		}
		breaks = append(breaks, LineBreak{
			Offset: byteOff[line.Offset+len(line.Text)],
			Kind:   kind,
		})
	}

	if n := len(breaks); n == 0 || breaks[n-1].Offset != len(text) {
		breaks = append(breaks, LineBreak{Offset: len(text), Kind: BreakMandatory})
	} else {
		breaks[n-1].Kind = BreakMandatory
	}

	return breaks
}
