// Package editor implements a rope-backed text buffer with grapheme-correct
// cursor and selection handling and structured undo/redo. It sanitizes every
// inserted string through sanitize.ForBlock so control characters and stray
// escape sequences pasted from elsewhere in a terminal session can never
// reach the rope (and from there the renderer) unfiltered.
package editor

import (
	"github.com/kungfusheep/glyphframe/rope"
	"github.com/kungfusheep/glyphframe/sanitize"
)

// EditOpKind distinguishes the two primitive edits an Editor records.
type EditOpKind uint8

const (
	OpInsert EditOpKind = iota
	OpDelete
)

// EditOp is one recorded primitive edit, carrying enough information to
// invert itself for undo: an insert is undone by deleting what it inserted,
// a delete is undone by re-inserting what it removed.
type EditOp struct {
	Kind   EditOpKind
	Offset int
	Text   string // inserted text (OpInsert) or removed text (OpDelete)
}

// invert returns the op that undoes this one.
func (op EditOp) invert() EditOp {
	switch op.Kind {
	case OpInsert:
		return EditOp{Kind: OpDelete, Offset: op.Offset, Text: op.Text}
	default:
		return EditOp{Kind: OpInsert, Offset: op.Offset, Text: op.Text}
	}
}

// Limits bounds the undo history so a long editing session can't grow
// memory without limit. When either bound is exceeded, the oldest history
// entries are pruned until back under the limit — entries are never
// dropped from the middle, preserving a contiguous undo chain from "now"
// backward.
type Limits struct {
	MaxDepth int // maximum number of undoable groups retained
	MaxBytes int // maximum total bytes of recorded op text retained
}

// DefaultLimits is a reasonable bound for an interactive text field.
var DefaultLimits = Limits{MaxDepth: 1000, MaxBytes: 4 << 20}

// group is one undo step: a sequence of primitive ops applied together
// (e.g. a multi-byte paste, or an auto-indent's several inserts) that undo
// and redo as a single unit.
type group struct {
	ops   []EditOp
	bytes int
}

// Editor is a single rope-backed text buffer with cursor, selection, and
// bounded undo/redo.
type Editor struct {
	text   *rope.Rope
	nav    *rope.CursorNavigator
	cursor int
	sel    rope.Selection

	undo       []group
	redo       []group
	pending    *group // current in-progress group, merged by coalescing inserts
	undoBytes  int
	limits     Limits
	groupBreak bool // forces the next edit to start a new group
}

// New creates an empty editor with default undo limits.
func New() *Editor {
	return NewWithLimits(DefaultLimits)
}

// NewWithLimits creates an empty editor with custom undo bounds.
func NewWithLimits(limits Limits) *Editor {
	r := rope.New("")
	return &Editor{text: r, nav: rope.NewCursorNavigator(r), limits: limits}
}

// Text returns the full buffer contents.
func (e *Editor) Text() string { return e.text.String() }

// Len returns the buffer length in bytes.
func (e *Editor) Len() int { return e.text.Len() }

// Cursor returns the current cursor byte offset.
func (e *Editor) Cursor() int { return e.cursor }

// Selection returns the current selection (Anchor==Active when empty).
func (e *Editor) Selection() rope.Selection { return e.sel }

// Position returns the cursor's line/visual-column position.
func (e *Editor) Position() rope.CursorPosition { return e.nav.Position(e.cursor) }

// BreakUndoGroup forces the next edit to start a new undo group instead of
// coalescing into the previous one. Callers call this between logically
// distinct actions, e.g. before starting a new word of typed input after a
// cursor move.
func (e *Editor) BreakUndoGroup() {
	e.groupBreak = true
	e.commitPending()
}

// Insert sanitizes and inserts s at the cursor (replacing the selection if
// one is active), then advances the cursor past the inserted text.
func (e *Editor) Insert(s string) {
	clean := sanitize.ForBlock.String(s)
	if clean == "" {
		return
	}
	if !e.sel.Empty() {
		e.deleteSelection()
	}
	e.applyInsert(e.cursor, clean)
	e.cursor += len(clean)
	e.sel = rope.Selection{Anchor: e.cursor, Active: e.cursor}
}

// DeleteBackward removes the grapheme cluster before the cursor, or the
// selection if one is active.
func (e *Editor) DeleteBackward() {
	if !e.sel.Empty() {
		e.deleteSelection()
		return
	}
	if e.cursor == 0 {
		return
	}
	start := e.nav.GraphemeLeft(e.cursor)
	e.applyDelete(start, e.cursor)
	e.cursor = start
	e.sel = rope.Selection{Anchor: e.cursor, Active: e.cursor}
}

// DeleteForward removes the grapheme cluster after the cursor, or the
// selection if one is active.
func (e *Editor) DeleteForward() {
	if !e.sel.Empty() {
		e.deleteSelection()
		return
	}
	if e.cursor >= e.text.Len() {
		return
	}
	end := e.nav.GraphemeRight(e.cursor)
	e.applyDelete(e.cursor, end)
	e.sel = rope.Selection{Anchor: e.cursor, Active: e.cursor}
}

func (e *Editor) deleteSelection() {
	start, end := e.sel.Range()
	e.applyDelete(start, end)
	e.cursor = start
	e.sel = rope.Selection{Anchor: start, Active: start}
}

// DeleteWordBackward removes the word before the cursor, or the selection
// if one is active. Reports whether anything was deleted.
func (e *Editor) DeleteWordBackward() bool {
	if !e.sel.Empty() {
		e.deleteSelection()
		return true
	}
	if e.cursor == 0 {
		return false
	}
	start := e.nav.WordLeft(e.cursor)
	if start == e.cursor {
		return false
	}
	e.applyDelete(start, e.cursor)
	e.cursor = start
	e.sel = rope.Selection{Anchor: e.cursor, Active: e.cursor}
	return true
}

// DeleteToEndOfLine removes from the cursor to the end of its line, or the
// selection if one is active. If the cursor is already at end-of-line, it
// instead joins with the next line by deleting the terminating newline.
// Reports whether anything was deleted.
func (e *Editor) DeleteToEndOfLine() bool {
	if !e.sel.Empty() {
		e.deleteSelection()
		return true
	}
	end := e.text.LineEnd(e.cursor)
	if end == e.cursor {
		if e.cursor >= e.text.Len() {
			return false
		}
		e.applyDelete(e.cursor, e.cursor+1)
		e.sel = rope.Selection{Anchor: e.cursor, Active: e.cursor}
		return true
	}
	e.applyDelete(e.cursor, end)
	e.sel = rope.Selection{Anchor: e.cursor, Active: e.cursor}
	return true
}

// MoveGraphemeRight/Left, MoveWordRight/Left and MoveLineStart/End move the
// cursor, extending the selection instead of collapsing it when extend is true.
func (e *Editor) MoveGraphemeRight(extend bool) {
	e.moveTo(e.nav.GraphemeRight(e.cursor), extend)
}

func (e *Editor) MoveGraphemeLeft(extend bool) {
	e.moveTo(e.nav.GraphemeLeft(e.cursor), extend)
}

func (e *Editor) MoveWordRight(extend bool) {
	e.moveTo(e.nav.WordRight(e.cursor), extend)
}

func (e *Editor) MoveWordLeft(extend bool) {
	e.moveTo(e.nav.WordLeft(e.cursor), extend)
}

func (e *Editor) MoveLineStart(extend bool) {
	e.moveTo(e.text.LineStart(e.cursor), extend)
}

func (e *Editor) MoveLineEnd(extend bool) {
	e.moveTo(e.text.LineEnd(e.cursor), extend)
}

// MoveVertical moves the cursor delta lines up (negative) or down
// (positive), preserving visual column where the target line allows it.
func (e *Editor) MoveVertical(delta int, extend bool) {
	pos := e.nav.Position(e.cursor)
	line := pos.Line + delta
	if line < 0 {
		e.moveTo(0, extend)
		return
	}
	lineStart := e.lineStartForLine(line)
	if lineStart < 0 {
		e.moveTo(e.text.Len(), extend)
		return
	}
	e.moveTo(e.nav.OffsetAtColumn(lineStart, pos.Column), extend)
}

func (e *Editor) lineStartForLine(target int) int {
	if target == 0 {
		return 0
	}
	full := e.text.String()
	line := 0
	for i := 0; i < len(full); i++ {
		if full[i] == '\n' {
			line++
			if line == target {
				return i + 1
			}
		}
	}
	return -1
}

func (e *Editor) moveTo(offset int, extend bool) {
	e.commitPending()
	e.cursor = offset
	if extend {
		e.sel.Active = offset
	} else {
		e.sel = rope.Selection{Anchor: offset, Active: offset}
	}
}

// SelectAll selects the entire buffer.
func (e *Editor) SelectAll() {
	e.sel = rope.Selection{Anchor: 0, Active: e.text.Len()}
	e.cursor = e.text.Len()
}

// ClearSelection collapses the selection to the cursor.
func (e *Editor) ClearSelection() {
	e.sel = rope.Selection{Anchor: e.cursor, Active: e.cursor}
}

// SetText replaces the entire buffer with s (sanitized the same as Insert),
// moves the cursor to the end, and purges undo/redo history — a fresh
// document has no history to undo into.
func (e *Editor) SetText(s string) {
	clean := sanitize.ForBlock.String(s)
	e.text = rope.New(clean)
	e.nav.SetText(e.text)
	e.cursor = e.text.Len()
	e.sel = rope.Selection{Anchor: e.cursor, Active: e.cursor}
	e.purgeHistory()
}

// Clear empties the buffer, moves the cursor to the origin, and purges
// undo/redo history.
func (e *Editor) Clear() {
	e.text = rope.New("")
	e.nav.SetText(e.text)
	e.cursor = 0
	e.sel = rope.Selection{}
	e.purgeHistory()
}

// purgeHistory drops all undo/redo state, used by SetText/Clear since a
// wholesale content replacement has no meaningful history to preserve.
func (e *Editor) purgeHistory() {
	e.undo = nil
	e.redo = nil
	e.pending = nil
	e.undoBytes = 0
	e.groupBreak = false
}

// --- undo/redo plumbing ---

func (e *Editor) applyInsert(at int, s string) {
	e.text = e.text.Insert(at, s)
	e.nav.SetText(e.text)
	e.record(EditOp{Kind: OpInsert, Offset: at, Text: s})
}

func (e *Editor) applyDelete(start, end int) {
	removed := e.text.Slice(start, end)
	e.text = e.text.Delete(start, end)
	e.nav.SetText(e.text)
	e.record(EditOp{Kind: OpDelete, Offset: start, Text: removed})
}

// record appends op to the in-progress undo group, coalescing consecutive
// single-character inserts/deletes at adjacent offsets into one group the
// way most editors batch a run of typing into a single undo step.
func (e *Editor) record(op EditOp) {
	e.redo = nil

	if e.pending != nil && !e.groupBreak && coalesces(e.pending, op) {
		e.pending.ops = append(e.pending.ops, op)
		e.pending.bytes += len(op.Text)
		return
	}
	e.commitPending()
	e.pending = &group{ops: []EditOp{op}, bytes: len(op.Text)}
	e.groupBreak = false
}

func coalesces(g *group, op EditOp) bool {
	if len(g.ops) == 0 {
		return false
	}
	last := g.ops[len(g.ops)-1]
	if last.Kind != op.Kind {
		return false
	}
	if len([]rune(op.Text)) != 1 || len([]rune(last.Text)) != 1 {
		return false
	}
	switch op.Kind {
	case OpInsert:
		return op.Offset == last.Offset+len(last.Text)
	default:
		return op.Offset == last.Offset || op.Offset+len(op.Text) == last.Offset
	}
}

func (e *Editor) commitPending() {
	if e.pending == nil {
		return
	}
	e.undo = append(e.undo, *e.pending)
	e.undoBytes += e.pending.bytes
	e.pending = nil
	e.prune()
}

// prune enforces Limits by dropping the oldest undo groups until both the
// depth and byte bounds are satisfied.
func (e *Editor) prune() {
	for (e.limits.MaxDepth > 0 && len(e.undo) > e.limits.MaxDepth) ||
		(e.limits.MaxBytes > 0 && e.undoBytes > e.limits.MaxBytes) {
		if len(e.undo) == 0 {
			break
		}
		e.undoBytes -= e.undo[0].bytes
		e.undo = e.undo[1:]
	}
}

// Undo reverts the most recent undo group, if any.
func (e *Editor) Undo() bool {
	e.commitPending()
	if len(e.undo) == 0 {
		return false
	}
	g := e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]
	e.undoBytes -= g.bytes

	for i := len(g.ops) - 1; i >= 0; i-- {
		e.applyRaw(g.ops[i].invert())
	}
	inverted := make([]EditOp, len(g.ops))
	for i, op := range g.ops {
		inverted[len(g.ops)-1-i] = op.invert()
	}
	e.redo = append(e.redo, group{ops: inverted, bytes: g.bytes})

	if last := g.ops[len(g.ops)-1]; last.Kind == OpInsert {
		e.cursor = g.ops[0].Offset
	} else {
		e.cursor = g.ops[len(g.ops)-1].Offset
	}
	e.sel = rope.Selection{Anchor: e.cursor, Active: e.cursor}
	return true
}

// Redo reapplies the most recently undone group, if any.
func (e *Editor) Redo() bool {
	if len(e.redo) == 0 {
		return false
	}
	g := e.redo[len(e.redo)-1]
	e.redo = e.redo[:len(e.redo)-1]

	undone := make([]EditOp, len(g.ops))
	for i := len(g.ops) - 1; i >= 0; i-- {
		op := g.ops[i].invert()
		e.applyRaw(op)
		undone[len(g.ops)-1-i] = op
	}
	e.undo = append(e.undo, group{ops: undone, bytes: g.bytes})
	e.undoBytes += g.bytes
	e.prune()

	last := g.ops[len(g.ops)-1]
	if last.Kind == OpInsert {
		e.cursor = last.Offset + len(last.Text)
	} else {
		e.cursor = last.Offset
	}
	e.sel = rope.Selection{Anchor: e.cursor, Active: e.cursor}
	return true
}

// applyRaw applies op to the rope without touching the undo/redo stacks
// (used internally while replaying during Undo/Redo).
func (e *Editor) applyRaw(op EditOp) {
	switch op.Kind {
	case OpInsert:
		e.text = e.text.Insert(op.Offset, op.Text)
	default:
		e.text = e.text.Delete(op.Offset, op.Offset+len(op.Text))
	}
	e.nav.SetText(e.text)
}

// UndoDepth reports how many committed undo groups are currently retained.
func (e *Editor) UndoDepth() int { return len(e.undo) }
