// Package sanitize strips or neutralizes control sequences from untrusted
// text before it reaches a terminal: C0/C1 controls, bare ESC, and full
// ANSI/CSI/OSC/DCS escape sequences. It never trusts an upstream renderer to
// have done this already — text coming from tool output, pasted clipboard
// content, or a network peer is treated as hostile until scanned.
//
// The scanner runs a cheap fast path over the whole input first; if nothing
// dangerous is present the original string is returned unmodified (no
// allocation). Only input that actually contains something to strip pays for
// the slow, allocating rewrite path. Sanitizing already-clean output a second
// time is a no-op (idempotent).
package sanitize

import (
	"strings"
	"unicode/utf8"
)

// Options controls which byte classes the scanner treats as dangerous.
type Options struct {
	// AllowTab keeps literal tab bytes instead of stripping them.
	AllowTab bool
	// AllowNewline keeps \n (and \r\n is normalized to \n) instead of stripping.
	AllowNewline bool
	// Replacement is substituted for each stripped byte/sequence. Empty
	// (the default) removes them entirely.
	Replacement string
}

// Default is the zero-value Options: strip everything dangerous, keep
// neither tabs nor newlines, replace with nothing.
var Default = Options{}

// ForLine sanitizes a single display line: tabs are kept (callers typically
// expand them before layout) but newlines are stripped since a line is by
// definition one row.
var ForLine = Options{AllowTab: true}

// ForBlock sanitizes multi-line text such as a scrollback entry or a log
// line: both tabs and newlines survive.
var ForBlock = Options{AllowTab: true, AllowNewline: true}

// String sanitizes s under the default options.
func String(s string) string {
	return Default.String(s)
}

// String scans s and returns a sanitized copy, or s itself if nothing needed
// stripping (fast path, zero allocation).
func (o Options) String(s string) string {
	if i := o.firstDangerous(s); i < 0 {
		return s
	} else {
		return o.slowPath(s, i)
	}
}

// firstDangerous returns the byte offset of the first byte that the slow
// path would need to act on, or -1 if s is already clean. This is the fast
// path: a single linear scan with no allocation.
func (o Options) firstDangerous(s string) int {
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch {
		case b == 0x1b: // ESC: start of any ANSI/CSI/OSC/DCS sequence
			return i
		case b == '\t':
			if !o.AllowTab {
				return i
			}
		case b == '\n':
			if !o.AllowNewline {
				return i
			}
		case b == '\r':
			return i // always needs normalizing or stripping
		case b < 0x20:
			return i // other C0 controls
		case b == 0x7f:
			return i // DEL
		case b >= 0xc0:
			// UTF-8 lead byte: skip the whole rune unless it is a C1 control
			if r, size := utf8.DecodeRuneInString(s[i:]); r >= 0x80 && r <= 0x9f {
				return i
			} else {
				i += size - 1
			}
		case b >= 0x80 && b <= 0x9f:
			return i // C1 controls, including 8-bit CSI (0x9b) and OSC (0x9d)
		}
	}
	return -1
}

// slowPath rebuilds s from byte offset `from` onward (the prefix up to
// `from` is already known clean), stripping or neutralizing every dangerous
// byte and escape sequence it finds.
func (o Options) slowPath(s string, from int) string {
	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(s[:from])

	i := from
	for i < len(s) {
		c := s[i]
		switch {
		case c == 0x1b:
			i = o.skipEscape(s, i, &b)
		case c == 0x9b || c == 0x9d || c == 0x90 || c == 0x9e || c == 0x9f:
			// 8-bit CSI/OSC/DCS/PM/APC introducer, same shape as ESC + final byte
			i = o.skip8BitIntroducer(s, i, &b)
		case c == '\r':
			// swallow bare CR and any CRLF pair; a lone \n is emitted by the
			// newline branch below if the next byte is \n, else dropped
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
				continue
			}
			b.WriteString(o.Replacement)
			i++
		case c == '\t':
			if o.AllowTab {
				b.WriteByte(c)
			} else {
				b.WriteString(o.Replacement)
			}
			i++
		case c == '\n':
			if o.AllowNewline {
				b.WriteByte(c)
			} else {
				b.WriteString(o.Replacement)
			}
			i++
		case c < 0x20 || c == 0x7f:
			b.WriteString(o.Replacement)
			i++
		case c >= 0xc0:
			// UTF-8 lead byte: keep the whole rune unless it is a C1 control
			r, size := utf8.DecodeRuneInString(s[i:])
			if r >= 0x80 && r <= 0x9f {
				b.WriteString(o.Replacement)
			} else {
				b.WriteString(s[i : i+size])
			}
			i += size
		case c >= 0x80 && c <= 0x9f:
			b.WriteString(o.Replacement)
			i++
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

// skipEscape consumes one ESC-introduced sequence starting at s[i] (s[i] ==
// 0x1b) and returns the index just past it. Recognizes CSI (ESC [ ... final),
// OSC/DCS/PM/APC (ESC ] or P or ^ or _ ... terminated by BEL or ST), and
// two-byte ESC sequences (ESC followed by an intermediate/final byte). An
// unterminated sequence consumes to end of input.
func (o Options) skipEscape(s string, i int, b *strings.Builder) int {
	b.WriteString(o.Replacement)
	if i+1 >= len(s) {
		return i + 1
	}
	switch s[i+1] {
	case '[':
		return o.skipCSI(s, i+2, b)
	case ']', 'P', '^', '_':
		return o.skipStringTerminated(s, i+2, b)
	default:
		// two-byte escape, e.g. ESC followed by a single intermediate/final;
		// any other byte after a bare ESC is left for the caller's loop
		if c := s[i+1]; c >= 0x20 && c <= 0x7e {
			return i + 2
		}
		return i + 1
	}
}

// skip8BitIntroducer handles the 8-bit equivalents of CSI (0x9b) and
// OSC/DCS/PM/APC (0x9d/0x90/0x9e/0x9f), which need no ESC prefix.
func (o Options) skip8BitIntroducer(s string, i int, b *strings.Builder) int {
	b.WriteString(o.Replacement)
	if s[i] == 0x9b {
		return o.skipCSI(s, i+1, b)
	}
	return o.skipStringTerminated(s, i+1, b)
}

// skipCSI consumes a CSI parameter/intermediate run followed by a single
// final byte in 0x40-0x7e, starting at index i (just past the introducer).
func (o Options) skipCSI(s string, i int, b *strings.Builder) int {
	for i < len(s) {
		c := s[i]
		i++
		if c >= 0x40 && c <= 0x7e {
			return i
		}
	}
	return i
}

// skipStringTerminated consumes an OSC/DCS/PM/APC payload up to and
// including its terminator: ST (ESC \) or BEL (0x07) or the 8-bit ST (0x9c).
func (o Options) skipStringTerminated(s string, i int, b *strings.Builder) int {
	for i < len(s) {
		c := s[i]
		if c == 0x07 || c == 0x9c {
			return i + 1
		}
		if c == 0x1b && i+1 < len(s) && s[i+1] == '\\' {
			return i + 2
		}
		i++
	}
	return i
}
