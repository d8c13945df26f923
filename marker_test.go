package typeset

import (
	"testing"
)

func TestMarkerTracksInsertBefore(t *testing.T) {
	l := New("hello world", uniformOpts())
	m := l.Markers().Add(6, 11, BiasBackward, "spell")

	l.InsertString(0, ">> ")
	if m.Start != 9 || m.End != 14 {
		t.Errorf("marker = [%d, %d), want [9, 14)", m.Start, m.End)
	}
	if l.Text()[m.Start:m.End] != "world" {
		t.Errorf("marker covers %q", l.Text()[m.Start:m.End])
	}
}

func TestMarkerUnaffectedByInsertAfter(t *testing.T) {
	l := New("hello world", uniformOpts())
	m := l.Markers().Add(0, 5, BiasBackward, "spell")

	l.InsertString(11, "!!!")
	if m.Start != 0 || m.End != 5 {
		t.Errorf("marker = [%d, %d), want [0, 5)", m.Start, m.End)
	}
}

func TestMarkerBiasAtBoundary(t *testing.T) {
	l := New("abc", uniformOpts())
	fwd := l.Markers().Add(1, 1, BiasForward, "caret")
	bwd := l.Markers().Add(1, 1, BiasBackward, "caret")

	l.InsertString(1, "xy")
	if fwd.Start != 3 || fwd.End != 3 {
		t.Errorf("forward marker = [%d, %d), want [3, 3)", fwd.Start, fwd.End)
	}
	if bwd.Start != 1 || bwd.End != 1 {
		t.Errorf("backward marker = [%d, %d), want [1, 1)", bwd.Start, bwd.End)
	}
}

func TestMarkerDeletedWithRange(t *testing.T) {
	l := New("hello world", uniformOpts())
	m := l.Markers().Add(6, 11, BiasBackward, "spell")

	l.DeleteSelection(Selection{Anchor: 5, Focus: 11})
	if !m.Deleted() {
		t.Error("marker should die with its range")
	}
	if got := len(l.Markers().All()); got != 0 {
		t.Errorf("%d live markers remain", got)
	}
}

func TestMarkerShrinksOnPartialDelete(t *testing.T) {
	l := New("hello world", uniformOpts())
	m := l.Markers().Add(6, 11, BiasBackward, "spell")

	// Delete "wor": the marker keeps the surviving tail.
	l.DeleteSelection(Selection{Anchor: 6, Focus: 9})
	if m.Deleted() {
		t.Fatal("partially covered marker should survive")
	}
	if m.Start != 6 || m.End != 8 {
		t.Errorf("marker = [%d, %d), want [6, 8)", m.Start, m.End)
	}
}

func TestMarkerIntersecting(t *testing.T) {
	l := New("one two three", uniformOpts())
	l.Markers().Add(0, 3, BiasBackward, "a")
	l.Markers().Add(4, 7, BiasBackward, "b")
	l.Markers().Add(8, 13, BiasBackward, "c")

	hits := l.Markers().Intersecting(5, 9)
	if len(hits) != 2 {
		t.Fatalf("got %d markers, want 2", len(hits))
	}
}

func TestMarkerRemoveSource(t *testing.T) {
	l := New("one two", uniformOpts())
	l.Markers().Add(0, 3, BiasBackward, "spell")
	kept := l.Markers().Add(4, 7, BiasBackward, "search")

	l.Markers().RemoveSource("spell")
	all := l.Markers().All()
	if len(all) != 1 || all[0] != kept {
		t.Errorf("All() = %v", all)
	}
}

func TestMarkerRects(t *testing.T) {
	l := New("hello world\nfoo", wrappedOpts(60, WrapWord))
	m := l.Markers().Add(2, 14, BiasBackward, "search")

	regions := l.MarkerRects(m)
	if len(regions) != 3 {
		t.Fatalf("got %d regions, want 3", len(regions))
	}
}
