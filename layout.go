package typeset

import (
	"image"

	"golang.org/x/image/math/fixed"

	"github.com/oligo/typeset/bidi"
	"github.com/oligo/typeset/fontface"
	"github.com/oligo/typeset/shaper"
)

// Options configures a TextLayout. Face may be nil when the Shaper does
// not consult it, as the deterministic test shaper does not.
type Options struct {
	Face *fontface.Face
	// Size is the font size in 26.6 fixed point pixels.
	Size fixed.Int26_6
	// Shaper produces glyphs and advances. Nil selects the HarfBuzz
	// backed shaper.
	Shaper shaper.Shaper
	// MaxWidth bounds line width in pixels. Zero or negative disables
	// wrapping.
	MaxWidth int
	Wrap     WrapMode
	// Base is the paragraph direction hint.
	Base bidi.BaseDirection
	// Cache, when set, memoizes wrapped lines across layouts sharing it.
	Cache *Cache
}

// TextLayout owns a text snapshot and its laid-out lines. Editing
// operations mutate the snapshot and relayout. A TextLayout is not safe
// for concurrent use.
type TextLayout struct {
	text  string
	opts  Options
	lines []LineBox
	index lineIndex

	markers *MarkerSet
	undo    *UndoStack
}

// New lays out text with the given options.
func New(text string, opts Options) *TextLayout {
	if opts.Shaper == nil {
		opts.Shaper = shaper.NewHarfBuzz()
	}
	l := &TextLayout{text: text, opts: opts}
	l.relayout()
	return l
}

// NewWrapped lays out text wrapped to maxWidth pixels.
func NewWrapped(text string, opts Options, maxWidth int, mode WrapMode) *TextLayout {
	opts.MaxWidth = maxWidth
	opts.Wrap = mode
	return New(text, opts)
}

// Text returns the current text snapshot.
func (l *TextLayout) Text() string {
	return l.text
}

// Lines returns the laid-out line boxes. The slice is owned by the layout
// and valid until the next edit.
func (l *TextLayout) Lines() []LineBox {
	return l.lines
}

// LineCount returns the number of line boxes. It is always at least 1.
func (l *TextLayout) LineCount() int {
	return len(l.lines)
}

// Bounds returns the occupied size of the layout in pixels.
func (l *TextLayout) Bounds() image.Point {
	var p image.Point
	for _, line := range l.lines {
		if w := line.Width.Ceil(); w > p.X {
			p.X = w
		}
		p.Y = line.Bottom()
	}
	return p
}

// SetText replaces the whole text and lays it out again.
func (l *TextLayout) SetText(text string) {
	l.text = text
	l.relayout()
}

// SetOptions replaces the layout options and lays the text out again.
func (l *TextLayout) SetOptions(opts Options) {
	if opts.Shaper == nil {
		opts.Shaper = shaper.NewHarfBuzz()
	}
	l.opts = opts
	l.relayout()
}

// LineForOffset returns the index of the line containing the byte offset.
func (l *TextLayout) LineForOffset(off int) int {
	return l.index.lineForByte(off)
}

// LineForRune returns the index of the line containing the rune offset.
func (l *TextLayout) LineForRune(runeOff int) int {
	return l.index.lineForRune(runeOff)
}

// OffsetOfLine returns the byte offset of line i's start.
func (l *TextLayout) OffsetOfLine(i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(l.lines) {
		return len(l.text)
	}
	return l.index.byteStart(i)
}

// RuneOffsetOfLine returns the rune offset of line i's start.
func (l *TextLayout) RuneOffsetOfLine(i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(l.lines) {
		i = len(l.lines)
	}
	return l.index.runeStart(i)
}

func (l *TextLayout) relayout() {
	if c := l.opts.Cache; c != nil {
		if lines, ok := c.get(l.text, l.opts); ok {
			l.lines = lines
			l.index = buildLineIndex(l.text, l.lines)
			return
		}
	}

	l.lines = layoutText(l.text, l.opts)
	l.index = buildLineIndex(l.text, l.lines)

	if c := l.opts.Cache; c != nil {
		c.put(l.text, l.opts, l.lines)
	}
}

// lineFor returns the line a cursor at off with the given affinity sits
// on. At a soft wrap boundary Upstream keeps the cursor on the earlier
// line.
func (l *TextLayout) lineFor(off int, aff Affinity) int {
	i := l.index.lineForByte(off)
	if aff == Upstream && i > 0 {
		prev := l.lines[i-1]
		if prev.End == off && !prev.hardBreak() {
			return i - 1
		}
	}
	return i
}

// clampOffset snaps off into [0, len(text)] and onto a grapheme boundary.
func (l *TextLayout) clampOffset(off int) int {
	if off < 0 {
		return 0
	}
	if off > len(l.text) {
		return len(l.text)
	}
	return l.SnapToGraphemeBoundary(off)
}
