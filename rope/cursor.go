package rope

import (
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// CursorPosition locates a cursor both as a byte offset into the rope and
// as a (line, visual column) pair, so callers doing layout never need to
// re-walk the rope to find out where a cursor lands on screen.
type CursorPosition struct {
	Offset int // byte offset into the rope
	Line   int // zero-based line number
	Column int // zero-based visual column (accounts for wide runes)
}

// Selection is an anchor/active pair of byte offsets. Anchor is where the
// selection began; Active is the end the cursor is currently at and moves
// as the selection is extended. Anchor == Active means no selection.
type Selection struct {
	Anchor int
	Active int
}

// Empty reports whether the selection covers no text.
func (s Selection) Empty() bool { return s.Anchor == s.Active }

// Range returns the selection normalized to (low, high) byte offsets.
func (s Selection) Range() (int, int) {
	if s.Anchor <= s.Active {
		return s.Anchor, s.Active
	}
	return s.Active, s.Anchor
}

// CursorNavigator computes grapheme-cluster-correct and word-aware cursor
// motion over a Rope. Every movement lands on a grapheme cluster boundary
// (never splitting a combining-mark sequence or multi-rune emoji), per
// rivo/uniseg's implementation of UAX #29. Visual column math uses
// mattn/go-runewidth so double-width (CJK) and zero-width runes are
// accounted for.
type CursorNavigator struct {
	text *Rope
}

// NewCursorNavigator creates a navigator over text.
func NewCursorNavigator(text *Rope) *CursorNavigator {
	return &CursorNavigator{text: text}
}

// SetText updates the rope the navigator operates over, e.g. after an edit.
func (n *CursorNavigator) SetText(text *Rope) {
	n.text = text
}

// GraphemeRight returns the offset of the start of the grapheme cluster
// immediately after pos, or Len() if pos is already at (or past) the end.
func (n *CursorNavigator) GraphemeRight(pos int) int {
	if pos >= n.text.Len() {
		return n.text.Len()
	}
	rest := n.text.Slice(pos, n.text.Len())
	_, clusterLen, _, _ := uniseg.FirstGraphemeClusterInString(rest, -1)
	if clusterLen <= 0 {
		return n.text.Len()
	}
	return pos + clusterLen
}

// GraphemeLeft returns the offset of the start of the grapheme cluster
// immediately before pos, or 0 if pos is already at (or before) the start.
func (n *CursorNavigator) GraphemeLeft(pos int) int {
	if pos <= 0 {
		return 0
	}
	// Walk clusters forward from line start (or buffer start) until the one
	// ending at pos is found; ropes have no backward grapheme iterator, and
	// lines are short enough that this stays cheap.
	lineStart := n.text.LineStart(pos)
	s := n.text.Slice(lineStart, pos)
	if s == "" {
		// pos is just after a '\n': the cluster before it is that newline,
		// or "\r\n" as one cluster
		if pos >= 2 && n.text.At(pos-2) == '\r' {
			return pos - 2
		}
		return pos - 1
	}
	last := 0
	rest := s
	off := 0
	for len(rest) > 0 {
		_, clusterLen, _, _ := uniseg.FirstGraphemeClusterInString(rest, -1)
		if clusterLen <= 0 {
			break
		}
		last = off
		off += clusterLen
		rest = rest[clusterLen:]
	}
	return lineStart + last
}

// WordRight returns the offset of the start of the next word run: it skips
// the rest of the word or punctuation run at pos, then any whitespace after
// it, the way "w" does in a modal editor.
func (n *CursorNavigator) WordRight(pos int) int {
	text := n.text
	end := text.Len()
	if pos >= end {
		return end
	}
	p := pos
	// skip current word-class run
	cls := runeClassAt(text, p)
	for p < end && runeClassAt(text, p) == cls && cls != classSpace {
		p = n.GraphemeRight(p)
	}
	// skip separating whitespace
	for p < end && runeClassAt(text, p) == classSpace {
		p = n.GraphemeRight(p)
	}
	return p
}

// WordLeft returns the offset of the start of the word run at or before
// pos, mirroring WordRight.
func (n *CursorNavigator) WordLeft(pos int) int {
	if pos <= 0 {
		return 0
	}
	p := pos
	// skip preceding whitespace
	for p > 0 && runeClassAt(n.text, n.GraphemeLeft(p)) == classSpace {
		p = n.GraphemeLeft(p)
	}
	if p == 0 {
		return 0
	}
	cls := runeClassAt(n.text, n.GraphemeLeft(p))
	for p > 0 {
		prev := n.GraphemeLeft(p)
		if runeClassAt(n.text, prev) != cls {
			break
		}
		p = prev
	}
	return p
}

type runeClass int

const (
	classSpace runeClass = iota
	classWord
	classPunct
)

func runeClassAt(text *Rope, pos int) runeClass {
	if pos >= text.Len() {
		return classSpace
	}
	rest := text.Slice(pos, min(pos+4, text.Len()))
	for _, r := range rest {
		switch {
		case unicode.IsSpace(r):
			return classSpace
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_':
			return classWord
		default:
			return classPunct
		}
	}
	return classSpace
}

// Position converts a byte offset into a full CursorPosition, computing
// line number and visual column by scanning back to the line start and
// measuring display width with go-runewidth.
func (n *CursorNavigator) Position(offset int) CursorPosition {
	text := n.text
	if offset > text.Len() {
		offset = text.Len()
	}
	lineStart := text.LineStart(offset)
	line := countNewlinesBefore(text, lineStart)
	col := visualWidth(text.Slice(lineStart, offset))
	return CursorPosition{Offset: offset, Line: line, Column: col}
}

func countNewlinesBefore(text *Rope, pos int) int {
	return countByte(text.Slice(0, pos), '\n')
}

func countByte(s string, b byte) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			n++
		}
	}
	return n
}

func visualWidth(s string) int {
	w := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		cluster := gr.Str()
		cw := runewidth.StringWidth(cluster)
		if cw < 0 {
			cw = 0
		}
		w += cw
	}
	return w
}

// OffsetAtColumn finds the byte offset on the line starting at lineStart
// whose visual column is closest to (without exceeding) col. Used for
// vertical cursor motion that should preserve visual column across lines
// of differing content.
func (n *CursorNavigator) OffsetAtColumn(lineStart, col int) int {
	text := n.text
	lineEnd := text.LineEnd(lineStart)
	s := text.Slice(lineStart, lineEnd)
	w := 0
	off := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		cluster := gr.Str()
		cw := runewidth.StringWidth(cluster)
		if w+cw > col {
			break
		}
		w += cw
		off += len(cluster)
	}
	return lineStart + off
}
