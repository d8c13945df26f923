// Package segment provides Unicode segmentation over UTF-8 text: grapheme
// cluster boundaries, word boundaries and line break opportunities. All
// offsets are byte offsets into the original string.
package segment

import (
	"strings"
	"unicode/utf8"

	"github.com/go-text/typesetting/segmenter"
	"golang.org/x/exp/slices"
)

// GraphemeCluster is a single user-perceived character.
type GraphemeCluster struct {
	Start int
	End   int
}

// Graphemes splits text into grapheme clusters. The returned clusters are
// contiguous and cover the whole text.
func Graphemes(text string) []GraphemeCluster {
	if text == "" {
		return nil
	}

	runes := []rune(text)
	byteOff := runeToByteTable(text, runes)

	var seg segmenter.Segmenter
	seg.Init(runes)

	var clusters []GraphemeCluster
	iter := seg.GraphemeIterator()
	for iter.Next() {
		gr := iter.Grapheme()
		clusters = append(clusters, GraphemeCluster{
			Start: byteOff[gr.Offset],
			End:   byteOff[gr.Offset+len(gr.Text)],
		})
	}

	return clusters
}

// GraphemeBoundaries returns the sorted byte offsets of all grapheme
// boundaries in text, including 0 and len(text).
func GraphemeBoundaries(text string) []int {
	bounds := make([]int, 0, len(text)+1)
	bounds = append(bounds, 0)
	for _, c := range Graphemes(text) {
		bounds = append(bounds, c.End)
	}
	if bounds[len(bounds)-1] != len(text) {
		bounds = append(bounds, len(text))
	}
	return bounds
}

// IsGraphemeBoundary reports whether off falls on a grapheme cluster
// boundary. Offsets outside [0, len(text)] are never boundaries.
func IsGraphemeBoundary(text string, off int) bool {
	if off < 0 || off > len(text) {
		return false
	}
	if off == 0 || off == len(text) {
		return true
	}

	start, end := boundaryWindow(text, off)
	bounds := GraphemeBoundaries(text[start:end])
	_, found := slices.BinarySearch(bounds, off-start)
	return found
}

// PrevGraphemeBoundary returns the closest grapheme boundary strictly
// before off. It returns false when off is at or before the start of text.
func PrevGraphemeBoundary(text string, off int) (int, bool) {
	if off <= 0 {
		return 0, false
	}
	if off > len(text) {
		off = len(text)
	}

	start, end := boundaryWindow(text, off)
	bounds := GraphemeBoundaries(text[start:end])
	// bounds[idx] is off itself when off is a boundary; either way the
	// previous boundary sits at idx-1.
	idx, _ := slices.BinarySearch(bounds, off-start)
	return start + bounds[idx-1], true
}

// NextGraphemeBoundary returns the closest grapheme boundary strictly
// after off. It returns false when off is at or past the end of text.
func NextGraphemeBoundary(text string, off int) (int, bool) {
	if off >= len(text) {
		return len(text), false
	}
	if off < 0 {
		off = 0
	}

	start, end := boundaryWindow(text, off)
	bounds := GraphemeBoundaries(text[start:end])
	idx, found := slices.BinarySearch(bounds, off-start)
	if found {
		idx++
	}
	return start + bounds[idx], true
}

// SnapToBoundary moves off backwards to the nearest grapheme boundary.
// Offsets already on a boundary are returned unchanged.
func SnapToBoundary(text string, off int) int {
	if off <= 0 {
		return 0
	}
	if off >= len(text) {
		return len(text)
	}

	start, end := boundaryWindow(text, off)
	bounds := GraphemeBoundaries(text[start:end])
	idx, found := slices.BinarySearch(bounds, off-start)
	if found {
		return off
	}
	return start + bounds[idx-1]
}

// boundaryWindow returns a span of text around off that no grapheme
// cluster crosses. Clusters never span a line feed, so the window runs
// from just past the previous newline through the next one inclusive.
// The backward search stops before off-1 so a CR LF pair ending at off
// stays inside the window.
func boundaryWindow(text string, off int) (int, int) {
	start := 0
	if off > 0 {
		if i := strings.LastIndexByte(text[:off-1], '\n'); i >= 0 {
			start = i + 1
		}
	}
	end := len(text)
	if i := strings.IndexByte(text[off:], '\n'); i >= 0 {
		end = off + i + 1
	}
	return start, end
}

func runeToByteTable(text string, runes []rune) []int {
	table := make([]int, 0, len(runes)+1)
	off := 0
	for _, r := range runes {
		table = append(table, off)
		off += utf8.RuneLen(r)
	}
	table = append(table, len(text))
	return table
}
