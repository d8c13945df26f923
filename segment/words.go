package segment

import (
	"unicode"

	"github.com/rivo/uniseg"
	"golang.org/x/exp/slices"
)

// WordKind classifies a word segment.
type WordKind uint8

const (
	// NonWord covers whitespace and punctuation runs.
	NonWord WordKind = iota
	// Word covers segments containing at least one letter or digit.
	Word
)

// WordSegment is a single UAX #29 word segment.
type WordSegment struct {
	Start int
	End   int
	Kind  WordKind
}

// Words splits text into word segments. The segments are contiguous and
// cover the whole text.
func Words(text string) []WordSegment {
	if text == "" {
		return nil
	}

	var segs []WordSegment
	state := -1
	off := 0
	rest := text
	for len(rest) > 0 {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		segs = append(segs, WordSegment{
			Start: off,
			End:   off + len(word),
			Kind:  classifyWord(word),
		})
		off += len(word)
	}

	return segs
}

// WordAt returns the word segment containing off. The end of text belongs
// to the last segment. It returns false for empty text or out of range
// offsets.
func WordAt(text string, off int) (WordSegment, bool) {
	if off < 0 || off > len(text) {
		return WordSegment{}, false
	}
	segs := Words(text)
	if len(segs) == 0 {
		return WordSegment{}, false
	}
	if off == len(text) {
		return segs[len(segs)-1], true
	}
	idx, found := slices.BinarySearchFunc(segs, off, func(s WordSegment, off int) int {
		return s.Start - off
	})
	if !found {
		idx--
	}
	return segs[idx], true
}

// PrevWordBoundary returns the start of the word segment before off,
// skipping a leading run of non-word segments. This is the offset a
// word-wise backward motion lands on.
func PrevWordBoundary(text string, off int) int {
	if off <= 0 {
		return 0
	}
	if off > len(text) {
		off = len(text)
	}

	segs := Words(text)
	for i := len(segs) - 1; i >= 0; i-- {
		if segs[i].Start >= off {
			continue
		}
		if segs[i].Kind == NonWord {
			continue
		}
		return segs[i].Start
	}
	return 0
}

// NextWordBoundary returns the end of the word segment after off, skipping
// a leading run of non-word segments. This is the offset a word-wise
// forward motion lands on.
func NextWordBoundary(text string, off int) int {
	if off >= len(text) {
		return len(text)
	}
	if off < 0 {
		off = 0
	}

	for _, seg := range Words(text) {
		if seg.End <= off {
			continue
		}
		if seg.Kind == NonWord {
			continue
		}
		return seg.End
	}
	return len(text)
}

func classifyWord(word string) WordKind {
	for _, r := range word {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return Word
		}
	}
	return NonWord
}
