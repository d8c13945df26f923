package typeset

import (
	"unicode/utf8"

	"golang.org/x/exp/slices"
)

// lineIndex holds prefix sums over the line boxes: the byte and rune
// offsets of each line start, plus a final entry at the text end. Lookups
// are binary searches over these tables.
type lineIndex struct {
	byteStarts []int
	runeStarts []int
}

func buildLineIndex(text string, lines []LineBox) lineIndex {
	idx := lineIndex{
		byteStarts: make([]int, 0, len(lines)+1),
		runeStarts: make([]int, 0, len(lines)+1),
	}

	runeOff := 0
	byteOff := 0
	for _, line := range lines {
		idx.byteStarts = append(idx.byteStarts, line.Start)
		for byteOff < line.Start {
			_, size := utf8.DecodeRuneInString(text[byteOff:])
			byteOff += size
			runeOff++
		}
		idx.runeStarts = append(idx.runeStarts, runeOff)
	}

	idx.byteStarts = append(idx.byteStarts, len(text))
	idx.runeStarts = append(idx.runeStarts, runeOff+utf8.RuneCountInString(text[byteOff:]))
	return idx
}

// lineForByte returns the index of the line whose range contains off.
// Out of range offsets clamp to the first or last line.
func (x lineIndex) lineForByte(off int) int {
	n := len(x.byteStarts) - 1
	if n <= 0 {
		return 0
	}
	idx, found := slices.BinarySearch(x.byteStarts[:n], off)
	if !found {
		idx--
	}
	if idx < 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}

// lineForRune is lineForByte over rune offsets.
func (x lineIndex) lineForRune(runeOff int) int {
	n := len(x.runeStarts) - 1
	if n <= 0 {
		return 0
	}
	idx, found := slices.BinarySearch(x.runeStarts[:n], runeOff)
	if !found {
		idx--
	}
	if idx < 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}

// byteStart returns the byte offset of line i's start.
func (x lineIndex) byteStart(i int) int {
	return x.byteStarts[i]
}

// runeStart returns the rune offset of line i's start.
func (x lineIndex) runeStart(i int) int {
	return x.runeStarts[i]
}
