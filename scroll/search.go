package scroll

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// SearchIndex supports incremental substring search over scrollback lines.
// Lines and queries are both run through NFKC normalization before
// comparison, so visually-identical text that arrived via different
// Unicode compositions (common when scrollback mixes pasted text from
// several sources) still matches.
type SearchIndex struct {
	lines    []string // original lines, for result retrieval
	folded   []string // NFKC-normalized, case-folded lines, for matching
}

// NewSearchIndex builds an index over lines.
func NewSearchIndex(lines []string) *SearchIndex {
	idx := &SearchIndex{lines: lines, folded: make([]string, len(lines))}
	for i, l := range lines {
		idx.folded[i] = fold(l)
	}
	return idx
}

// Append adds one more line to the end of the index (for streaming
// scrollback content as it arrives).
func (idx *SearchIndex) Append(line string) {
	idx.lines = append(idx.lines, line)
	idx.folded = append(idx.folded, fold(line))
}

func fold(s string) string {
	return strings.ToLower(norm.NFKC.String(s))
}

// Match is one search hit: the line index and the byte range of the match
// within the ORIGINAL (non-folded) line.
type Match struct {
	Line       int
	Start, End int
}

// Search returns every line containing query (case-insensitive, NFKC
// normalized), in line order.
func (idx *SearchIndex) Search(query string) []Match {
	q := fold(query)
	if q == "" {
		return nil
	}
	var matches []Match
	for i, folded := range idx.folded {
		pos := strings.Index(folded, q)
		if pos < 0 {
			continue
		}
		// folded and original lines can differ in byte length (case
		// folding/normalization isn't always length-preserving); map the
		// match back onto the original line by rune position.
		start, end := mapMatchToOriginal(idx.lines[i], folded, pos, pos+len(q))
		matches = append(matches, Match{Line: i, Start: start, End: end})
	}
	return matches
}

// mapMatchToOriginal approximates the original-line byte offsets
// corresponding to a match found in the folded text, by rune-counting.
// Exact for the common case where folding doesn't change rune count.
func mapMatchToOriginal(original, folded string, foldStart, foldEnd int) (int, int) {
	runeStart := runeCount(folded[:foldStart])
	runeEnd := runeCount(folded[:foldEnd])

	origRunes := []rune(original)
	if runeStart > len(origRunes) {
		runeStart = len(origRunes)
	}
	if runeEnd > len(origRunes) {
		runeEnd = len(origRunes)
	}
	start := len(string(origRunes[:runeStart]))
	end := len(string(origRunes[:runeEnd]))
	return start, end
}

func runeCount(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

// NearestFrom returns the index into a Search result slice of the match
// closest to (at or after) fromLine, wrapping around to the start if none
// is found after it — the usual "n" (next match) behavior in a search UI.
func NearestFrom(matches []Match, fromLine int) (int, bool) {
	if len(matches) == 0 {
		return 0, false
	}
	for i, m := range matches {
		if m.Line >= fromLine {
			return i, true
		}
	}
	return 0, true
}
