package typeset

import (
	"cmp"

	"github.com/rdleal/intervalst/interval"
)

// MarkerBias resolves the ambiguity when an edit happens exactly at a
// marker's boundary.
type MarkerBias uint8

const (
	// BiasForward pushes the boundary past text inserted at it.
	BiasForward MarkerBias = iota
	// BiasBackward keeps the boundary before text inserted at it.
	BiasBackward
)

// Marker is a byte range annotation that stays logically stationary as
// the text is edited, such as a diagnostic underline or a search match.
type Marker struct {
	Start int
	End   int
	Bias  MarkerBias
	// Source tags the producer of the marker so it can remove its own
	// markers without touching others.
	Source string

	deleted bool
}

// Deleted reports whether the marker's range was removed entirely by an
// edit.
func (m *Marker) Deleted() bool {
	return m.deleted
}

// MarkerSet tracks markers over a layout's text. Lookup is backed by an
// interval search tree; edits rebuild the tree after shifting the marker
// ranges.
type MarkerSet struct {
	tree    *interval.MultiValueSearchTree[*Marker, int]
	markers []*Marker
}

func NewMarkerSet() *MarkerSet {
	return &MarkerSet{tree: newMarkerTree()}
}

func newMarkerTree() *interval.MultiValueSearchTree[*Marker, int] {
	return interval.NewMultiValueSearchTree[*Marker](func(a, b int) int {
		return cmp.Compare(a, b)
	})
}

// Markers returns the marker set of the layout, creating it on first use.
func (l *TextLayout) Markers() *MarkerSet {
	if l.markers == nil {
		l.markers = NewMarkerSet()
	}
	return l.markers
}

// Add inserts a marker covering [start, end).
func (s *MarkerSet) Add(start, end int, bias MarkerBias, source string) *Marker {
	if end < start {
		start, end = end, start
	}
	m := &Marker{Start: start, End: end, Bias: bias, Source: source}
	s.markers = append(s.markers, m)
	if end > start {
		s.tree.Insert(start, end, m)
	}
	return m
}

// Intersecting returns the live markers overlapping [start, end).
func (s *MarkerSet) Intersecting(start, end int) []*Marker {
	all, _ := s.tree.AllIntersections(start, end)
	live := all[:0]
	for _, m := range all {
		if !m.deleted {
			live = append(live, m)
		}
	}
	return live
}

// All returns every live marker.
func (s *MarkerSet) All() []*Marker {
	var live []*Marker
	for _, m := range s.markers {
		if !m.deleted {
			live = append(live, m)
		}
	}
	return live
}

// RemoveSource drops all markers tagged with source.
func (s *MarkerSet) RemoveSource(source string) {
	for _, m := range s.markers {
		if m.Source == source {
			m.deleted = true
		}
	}
	s.rebuild()
}

// applyEdit shifts all markers across a replacement of removed bytes by
// inserted bytes at offset at.
func (s *MarkerSet) applyEdit(at, removed, inserted int) {
	for _, m := range s.markers {
		if m.deleted {
			continue
		}
		// A non-empty marker swallowed whole by a deletion dies.
		if removed > 0 && m.End > m.Start && m.Start >= at && m.End <= at+removed {
			m.deleted = true
			continue
		}
		m.Start = shiftOffset(m.Start, at, removed, inserted, m.Bias)
		m.End = shiftOffset(m.End, at, removed, inserted, m.Bias)
		if m.End < m.Start {
			m.End = m.Start
		}
	}
	s.rebuild()
}

func shiftOffset(off, at, removed, inserted int, bias MarkerBias) int {
	switch {
	case off < at:
		return off
	case off > at+removed:
		return off - removed + inserted
	default:
		// On or inside the edited range: the bias picks the side of the
		// inserted text the offset lands on.
		if bias == BiasForward {
			return at + inserted
		}
		return at
	}
}

func (s *MarkerSet) rebuild() {
	tree := newMarkerTree()
	live := s.markers[:0]
	for _, m := range s.markers {
		if m.deleted {
			continue
		}
		live = append(live, m)
		if m.End > m.Start {
			tree.Insert(m.Start, m.End, m)
		}
	}
	s.markers = live
	s.tree = tree
}

// MarkerRects returns the highlight regions of a marker on the layout, in
// visual order.
func (l *TextLayout) MarkerRects(m *Marker) []Region {
	if m == nil || m.deleted || m.Start == m.End {
		return nil
	}
	return l.SelectionRects(Selection{Anchor: m.Start, Focus: m.End})
}
