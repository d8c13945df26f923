package typeset

import (
	"strings"
	"time"
)

const (
	// DefaultUndoLimit caps the number of undoable operations.
	DefaultUndoLimit = 1000
	// typingGroupWindow is how close together two edits must land to be
	// merged into one undo step.
	typingGroupWindow = 500 * time.Millisecond
)

// editOp is one reversible text mutation: Removed was replaced by
// Inserted at byte offset At.
type editOp struct {
	At       int
	Removed  string
	Inserted string
}

// UndoStack records edit operations with typing-run grouping: consecutive
// insertions or backward deletions close in time merge into a single
// step.
type UndoStack struct {
	limit      int
	ops        []editOp
	redo       []editOp
	lastRecord time.Time

	// now is swapped out in tests.
	now func() time.Time
}

// NewUndoStack returns a stack keeping at most limit operations. A non
// positive limit selects DefaultUndoLimit.
func NewUndoStack(limit int) *UndoStack {
	if limit <= 0 {
		limit = DefaultUndoLimit
	}
	return &UndoStack{limit: limit, now: time.Now}
}

// EnableUndo attaches an undo stack to the layout. Subsequent editing
// operations are recorded; a zero limit selects DefaultUndoLimit.
func (l *TextLayout) EnableUndo(limit int) {
	l.undo = NewUndoStack(limit)
}

// CanUndo reports whether an undo step is available.
func (l *TextLayout) CanUndo() bool {
	return l.undo != nil && len(l.undo.ops) > 0
}

// CanRedo reports whether a redo step is available.
func (l *TextLayout) CanRedo() bool {
	return l.undo != nil && len(l.undo.redo) > 0
}

// Undo reverts the most recent edit step and returns the resulting
// cursor offset. It reports false when nothing can be undone.
func (l *TextLayout) Undo() (int, bool) {
	if !l.CanUndo() {
		return 0, false
	}
	u := l.undo
	op := u.ops[len(u.ops)-1]
	u.ops = u.ops[:len(u.ops)-1]
	u.redo = append(u.redo, op)

	l.applySplice(op.At, op.At+len(op.Inserted), op.Removed)
	return op.At + len(op.Removed), true
}

// Redo reapplies the most recently undone step and returns the resulting
// cursor offset.
func (l *TextLayout) Redo() (int, bool) {
	if !l.CanRedo() {
		return 0, false
	}
	u := l.undo
	op := u.redo[len(u.redo)-1]
	u.redo = u.redo[:len(u.redo)-1]
	u.ops = append(u.ops, op)

	l.applySplice(op.At, op.At+len(op.Removed), op.Inserted)
	return op.At + len(op.Inserted), true
}

func (u *UndoStack) record(op editOp) {
	now := u.now()
	defer func() { u.lastRecord = now }()

	u.redo = u.redo[:0]

	if len(u.ops) > 0 && now.Sub(u.lastRecord) <= typingGroupWindow {
		last := &u.ops[len(u.ops)-1]
		if merged, ok := mergeOps(*last, op); ok {
			*last = merged
			return
		}
	}

	u.ops = append(u.ops, op)
	if len(u.ops) > u.limit {
		u.ops = u.ops[len(u.ops)-u.limit:]
	}
}

// mergeOps merges two adjacent operations of the same kind: a typing run
// of plain insertions, or a run of backward deletions.
func mergeOps(prev, next editOp) (editOp, bool) {
	switch {
	case prev.Removed == "" && next.Removed == "":
		if next.At == prev.At+len(prev.Inserted) && !strings.Contains(next.Inserted, "\n") {
			prev.Inserted += next.Inserted
			return prev, true
		}
	case prev.Inserted == "" && next.Inserted == "":
		if next.At+len(next.Removed) == prev.At {
			prev.At = next.At
			prev.Removed = next.Removed + prev.Removed
			return prev, true
		}
	}
	return editOp{}, false
}
