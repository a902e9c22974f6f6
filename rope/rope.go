// Package rope implements a rope-backed text buffer for the editor: O(log n)
// insert/delete/index into arbitrarily large text without the O(n) copies a
// flat string or []rune buffer would need on every keystroke. Indices are
// always measured in bytes to stay string-compatible; callers that need
// rune, grapheme-cluster, or visual-column positions go through
// CursorNavigator, which layers rivo/uniseg grapheme segmentation and
// mattn/go-runewidth column measurement on top of the raw byte rope.
package rope

import "strings"

// splitThreshold is the largest leaf New builds; longer text is split into
// balanced children. Insert adds the inserted text as new leaves rather than
// growing an existing one.
const splitThreshold = 1024

// rebalanceDepth triggers a full flatten+rebuild when a rope's tree depth
// exceeds this, bounding the cost of later operations after many small
// edits skew the tree.
const rebalanceDepth = 64

// Rope is an immutable-leaning, persistent-friendly text rope. Mutating
// operations (Insert, Delete) return a new *Rope sharing unchanged
// subtrees with the receiver, so callers that keep old snapshots (for undo)
// pay only for the edited path.
type Rope struct {
	weight int    // byte length of the left subtree (or of leaf itself)
	length int     // total byte length of this subtree
	depth  int
	leaf   string // non-empty only at leaves
	left   *Rope
	right  *Rope
}

// New builds a rope from s.
func New(s string) *Rope {
	if len(s) == 0 {
		return &Rope{}
	}
	return buildBalanced(s)
}

func buildBalanced(s string) *Rope {
	if len(s) <= splitThreshold {
		return &Rope{leaf: s, weight: len(s), length: len(s)}
	}
	mid := len(s) / 2
	// avoid splitting a UTF-8 sequence
	for mid < len(s) && isContinuationByte(s[mid]) {
		mid++
	}
	left := buildBalanced(s[:mid])
	right := buildBalanced(s[mid:])
	return concatNodes(left, right)
}

func isContinuationByte(b byte) bool {
	return b&0xc0 == 0x80
}

func concatNodes(l, r *Rope) *Rope {
	if l.length == 0 {
		return r
	}
	if r.length == 0 {
		return l
	}
	d := l.depth
	if r.depth > d {
		d = r.depth
	}
	return &Rope{weight: l.length, length: l.length + r.length, left: l, right: r, depth: d + 1}
}

// Len returns the byte length of the rope's text.
func (r *Rope) Len() int {
	if r == nil {
		return 0
	}
	return r.length
}

// String materializes the rope's full text. Prefer Slice for partial reads.
func (r *Rope) String() string {
	if r == nil {
		return ""
	}
	var b strings.Builder
	b.Grow(r.length)
	r.writeTo(&b)
	return b.String()
}

func (r *Rope) writeTo(b *strings.Builder) {
	if r.leaf != "" || (r.left == nil && r.right == nil) {
		b.WriteString(r.leaf)
		return
	}
	r.left.writeTo(b)
	r.right.writeTo(b)
}

// Slice returns the text in byte range [start, end).
func (r *Rope) Slice(start, end int) string {
	if r == nil || start >= end {
		return ""
	}
	var b strings.Builder
	b.Grow(end - start)
	r.sliceTo(start, end, &b)
	return b.String()
}

func (r *Rope) sliceTo(start, end int, b *strings.Builder) {
	if start < 0 {
		start = 0
	}
	if end > r.length {
		end = r.length
	}
	if start >= end {
		return
	}
	if r.left == nil && r.right == nil {
		b.WriteString(r.leaf[start:end])
		return
	}
	if start < r.weight {
		r.left.sliceTo(start, min(end, r.weight), b)
	}
	if end > r.weight {
		r.right.sliceTo(max(start, r.weight)-r.weight, end-r.weight, b)
	}
}

// At returns the byte at position i.
func (r *Rope) At(i int) byte {
	for {
		if r.left == nil && r.right == nil {
			return r.leaf[i]
		}
		if i < r.weight {
			r = r.left
		} else {
			i -= r.weight
			r = r.right
		}
	}
}

// Insert returns a new rope with s inserted at byte offset at.
func (r *Rope) Insert(at int, s string) *Rope {
	if s == "" {
		return r
	}
	if r == nil || r.length == 0 {
		return New(s)
	}
	if at <= 0 {
		return concatNodes(New(s), r)
	}
	if at >= r.length {
		return concatNodes(r, New(s))
	}
	left, right := r.split(at)
	result := concatNodes(concatNodes(left, New(s)), right)
	if result.depth > rebalanceDepth {
		result = New(result.String())
	}
	return result
}

// Delete returns a new rope with the byte range [start, end) removed.
func (r *Rope) Delete(start, end int) *Rope {
	if r == nil || start >= end {
		return r
	}
	if start < 0 {
		start = 0
	}
	if end > r.length {
		end = r.length
	}
	left, mid := r.split(start)
	_, right := mid.split(end - start)
	result := concatNodes(left, right)
	if result.depth > rebalanceDepth {
		result = New(result.String())
	}
	return result
}

// split divides r into (text before at, text from at onward).
func (r *Rope) split(at int) (*Rope, *Rope) {
	if at <= 0 {
		return &Rope{}, r
	}
	if at >= r.length {
		return r, &Rope{}
	}
	if r.left == nil && r.right == nil {
		return &Rope{leaf: r.leaf[:at], weight: at, length: at},
			&Rope{leaf: r.leaf[at:], weight: r.length - at, length: r.length - at}
	}
	if at <= r.weight {
		ll, lr := r.left.split(at)
		return ll, concatNodes(lr, r.right)
	}
	rl, rr := r.right.split(at - r.weight)
	return concatNodes(r.left, rl), rr
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// LineStart returns the byte offset of the start of the line containing
// byte offset pos (the offset just after the preceding '\n', or 0).
func (r *Rope) LineStart(pos int) int {
	s := r.Slice(0, pos)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return i + 1
	}
	return 0
}

// LineEnd returns the byte offset of the '\n' terminating the line
// containing pos, or Len() if pos is on the final, unterminated line.
func (r *Rope) LineEnd(pos int) int {
	s := r.Slice(pos, r.Len())
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return pos + i
	}
	return r.Len()
}

// LineCount returns the number of lines (1 + number of '\n' bytes).
func (r *Rope) LineCount() int {
	return strings.Count(r.String(), "\n") + 1
}
