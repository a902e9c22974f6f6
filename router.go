package forme

import (
	"bufio"
	"io"
	"strings"
)

// Mod is a keyboard modifier mask.
type Mod uint8

const (
	ModNone Mod = 0
	ModCtrl Mod = 1 << iota
	ModShift
	ModAlt
)

// Key is a single decoded keyboard event.
type Key struct {
	Rune rune   // printable rune, 0 for named keys
	Name string // named key such as "Tab", "Esc", "Up", "Home"
	Mod  Mod
}

// Match describes a dispatched key-sequence match.
type Match struct {
	Pattern string
	Count   int // leading numeric repeat count, e.g. "3j" -> 3
}

// KeyHandler is consulted when no bound pattern consumes a key.
type KeyHandler func(Key) bool

var namedKeys = map[string]string{
	"tab": "Tab", "esc": "Esc", "escape": "Esc", "enter": "Enter", "return": "Enter",
	"up": "Up", "down": "Down", "left": "Left", "right": "Right",
	"home": "Home", "end": "End", "pageup": "PageUp", "pagedown": "PageDown",
	"backspace": "Backspace", "delete": "Delete", "space": "Space",
	"f1": "F1", "f2": "F2", "f3": "F3", "f4": "F4", "f5": "F5", "f6": "F6",
	"f7": "F7", "f8": "F8", "f9": "F9", "f10": "F10", "f11": "F11", "f12": "F12",
}

// parsePattern splits a binding pattern such as "gg" or "<C-w>j" into the
// sequence of Key tokens it represents.
func parsePattern(pattern string) []Key {
	var keys []Key
	for i := 0; i < len(pattern); {
		if pattern[i] == '<' {
			end := strings.IndexByte(pattern[i:], '>')
			if end < 0 {
				keys = append(keys, Key{Rune: rune(pattern[i])})
				i++
				continue
			}
			token := pattern[i+1 : i+end]
			i += end + 1
			keys = append(keys, parseToken(token))
			continue
		}
		r, size := decodeRune(pattern[i:])
		keys = append(keys, Key{Rune: r})
		i += size
	}
	return keys
}

func decodeRune(s string) (rune, int) {
	for i, r := range s {
		_ = i
		n := len(string(r))
		return r, n
	}
	return 0, 1
}

func parseToken(token string) Key {
	var mod Mod
	parts := strings.Split(token, "-")
	for len(parts) > 1 {
		switch strings.ToUpper(parts[0]) {
		case "C":
			mod |= ModCtrl
		case "S":
			mod |= ModShift
		case "A", "M":
			mod |= ModAlt
		default:
			// not a modifier prefix after all; treat whole token as a name
			return Key{Name: token, Mod: mod}
		}
		parts = parts[1:]
	}
	last := parts[0]
	if name, ok := namedKeys[strings.ToLower(last)]; ok {
		return Key{Name: name, Mod: mod}
	}
	if len([]rune(last)) == 1 {
		return Key{Rune: []rune(last)[0], Mod: mod}
	}
	return Key{Name: last, Mod: mod}
}

func keyToken(k Key) string {
	var b strings.Builder
	if k.Mod&ModCtrl != 0 {
		b.WriteString("C-")
	}
	if k.Mod&ModAlt != 0 {
		b.WriteString("A-")
	}
	if k.Mod&ModShift != 0 {
		b.WriteString("S-")
	}
	if k.Name != "" {
		b.WriteString(k.Name)
	} else {
		b.WriteRune(k.Rune)
	}
	return b.String()
}

// routerNode is a trie node over key-token sequences.
type routerNode struct {
	children map[string]*routerNode
	pattern  string
	handler  func(Match)
}

// Router dispatches decoded key sequences to bound handlers, vim-style:
// multi-key sequences ("gg"), chorded keys ("<C-w>j"), and an optional
// leading numeric repeat count are all supported. A single key that
// matches no binding falls through to the unmatched handler, typically
// a focused text field or a FocusManager.
type Router struct {
	root        *routerNode
	cur         *routerNode
	names       map[string]string // name -> pattern, for HandleNamed bookkeeping
	unmatched   KeyHandler
	noCounts    bool
	countBuf    strings.Builder
	textValue   *string
	textCursor  *int
}

// NewRouter creates an empty key router.
func NewRouter() *Router {
	r := &Router{root: &routerNode{children: map[string]*routerNode{}}, names: map[string]string{}}
	r.cur = r.root
	return r
}

// NoCounts disables leading-digit repeat-count parsing (digits become plain
// bound keys instead). Useful for menus where "1".."9" select an item.
func (r *Router) NoCounts() *Router {
	r.noCounts = true
	return r
}

// Handle binds pattern to fn.
func (r *Router) Handle(pattern string, fn func(Match)) *Router {
	node := r.root
	for _, k := range parsePattern(pattern) {
		tok := keyToken(k)
		child, ok := node.children[tok]
		if !ok {
			child = &routerNode{children: map[string]*routerNode{}}
			node.children[tok] = child
		}
		node = child
	}
	node.pattern = pattern
	node.handler = fn
	return r
}

// HandleNamed binds pattern to fn under a name, allowing later introspection.
func (r *Router) HandleNamed(name, pattern string, fn func(Match)) *Router {
	r.names[name] = pattern
	return r.Handle(pattern, fn)
}

// HandleUnmatched sets the fallback handler invoked when a key does not
// extend any bound sequence. A nil handler clears the fallback.
func (r *Router) HandleUnmatched(fn KeyHandler) *Router {
	r.unmatched = fn
	return r
}

// TextInput wires the router directly to a plain text buffer, bypassing
// pattern dispatch entirely for any key not otherwise bound.
func (r *Router) TextInput(value *string, cursor *int) *Router {
	r.textValue, r.textCursor = value, cursor
	th := NewTextHandler(value, cursor)
	return r.HandleUnmatched(th.HandleKey)
}

// Dispatch feeds a decoded key into the router. It returns true if the key
// was consumed either by a completed sequence or by the unmatched handler.
func (r *Router) Dispatch(k Key) bool {
	if !r.noCounts && k.Name == "" && k.Mod == ModNone {
		isLeadingDigit := k.Rune >= '1' && k.Rune <= '9'
		isContinuingZero := k.Rune == '0' && r.countBuf.Len() > 0
		if isLeadingDigit || isContinuingZero {
			r.countBuf.WriteRune(k.Rune)
			return true
		}
	}

	tok := keyToken(k)
	next, ok := r.cur.children[tok]
	if !ok {
		r.cur = r.root
		r.countBuf.Reset()
		if r.unmatched != nil {
			return r.unmatched(k)
		}
		return false
	}
	r.cur = next
	if r.cur.handler != nil {
		count := 0
		if r.countBuf.Len() > 0 {
			for _, c := range r.countBuf.String() {
				count = count*10 + int(c-'0')
			}
		}
		if count == 0 {
			count = 1
		}
		m := Match{Pattern: r.cur.pattern, Count: count}
		handler := r.cur.handler
		r.cur = r.root
		r.countBuf.Reset()
		handler(m)
		return true
	}
	// mid-sequence: wait for more keys
	return true
}

// TextHandler edits a plain string buffer in place, for simple single-line
// inputs that don't need the rope-backed Editor.
type TextHandler struct {
	value    *string
	cursor   *int
	OnChange func(string)
}

// NewTextHandler creates a handler bound to value/cursor.
func NewTextHandler(value *string, cursor *int) *TextHandler {
	return &TextHandler{value: value, cursor: cursor}
}

// HandleKey applies k to the bound buffer and reports whether it was consumed.
func (h *TextHandler) HandleKey(k Key) bool {
	if h.value == nil || h.cursor == nil {
		return false
	}
	runes := []rune(*h.value)
	pos := *h.cursor
	if pos < 0 {
		pos = 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}

	changed := true
	switch {
	case k.Name == "Left":
		if pos > 0 {
			pos--
		}
	case k.Name == "Right":
		if pos < len(runes) {
			pos++
		}
	case k.Name == "Home":
		pos = 0
	case k.Name == "End":
		pos = len(runes)
	case k.Name == "Backspace":
		if pos > 0 {
			runes = append(runes[:pos-1], runes[pos:]...)
			pos--
		}
	case k.Name == "Delete":
		if pos < len(runes) {
			runes = append(runes[:pos], runes[pos+1:]...)
		}
	case k.Mod&ModCtrl != 0:
		return false
	case k.Rune != 0 && k.Name == "":
		runes = append(runes[:pos], append([]rune{k.Rune}, runes[pos:]...)...)
		pos++
	default:
		changed = false
		return false
	}

	if changed {
		*h.value = string(runes)
		*h.cursor = pos
		if h.OnChange != nil {
			h.OnChange(*h.value)
		}
	}
	return true
}

// Reader decodes a byte stream into Key events, understanding common C0
// control codes and CSI escape sequences (arrows, Home/End, PageUp/Down,
// function keys) in addition to plain runes.
type Reader struct {
	br *bufio.Reader
}

// NewReader wraps r for key decoding.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReaderSize(r, 256)}
}

var csiFinal = map[byte]string{
	'A': "Up", 'B': "Down", 'C': "Right", 'D': "Left",
	'H': "Home", 'F': "End",
}

var tildeCodes = map[string]string{
	"1": "Home", "2": "Insert" /* insert, unused */, "3": "Delete",
	"4": "End", "5": "PageUp", "6": "PageDown",
	"15": "F5", "17": "F6", "18": "F7", "19": "F8",
	"20": "F9", "21": "F10", "23": "F11", "24": "F12",
}

// ReadKey blocks until the next key is available and returns its decoding.
func (r *Reader) ReadKey() (Key, error) {
	b, err := r.br.ReadByte()
	if err != nil {
		return Key{}, err
	}

	switch {
	case b == 0x1b:
		return r.readEscape()
	case b == '\r' || b == '\n':
		return Key{Name: "Enter"}, nil
	case b == '\t':
		return Key{Name: "Tab"}, nil
	case b == 0x7f || b == 0x08:
		return Key{Name: "Backspace"}, nil
	case b == 0x03:
		return Key{Rune: 'c', Mod: ModCtrl}, nil
	case b < 0x20:
		return Key{Rune: rune('a' + b - 1), Mod: ModCtrl}, nil
	case b < 0x80:
		return Key{Rune: rune(b)}, nil
	default:
		return r.readUTF8Rest(b)
	}
}

func (r *Reader) readEscape() (Key, error) {
	next, err := r.br.Peek(1)
	if err != nil || len(next) == 0 {
		return Key{Name: "Esc"}, nil
	}
	if next[0] != '[' && next[0] != 'O' {
		return Key{Name: "Esc"}, nil
	}
	r.br.ReadByte() // consume '[' or 'O'

	var buf []byte
	for {
		c, err := r.br.ReadByte()
		if err != nil {
			return Key{Name: "Esc"}, nil
		}
		if c >= 0x40 && c <= 0x7e {
			if name, ok := csiFinal[c]; ok {
				return Key{Name: name}, nil
			}
			if c == '~' {
				if name, ok := tildeCodes[string(buf)]; ok {
					return Key{Name: name}, nil
				}
			}
			return Key{Name: "Esc"}, nil
		}
		buf = append(buf, c)
	}
}

func (r *Reader) readUTF8Rest(first byte) (Key, error) {
	var n int
	switch {
	case first&0xe0 == 0xc0:
		n = 1
	case first&0xf0 == 0xe0:
		n = 2
	case first&0xf8 == 0xf0:
		n = 3
	default:
		return Key{Rune: rune(first)}, nil
	}
	buf := []byte{first}
	for i := 0; i < n; i++ {
		b, err := r.br.ReadByte()
		if err != nil {
			break
		}
		buf = append(buf, b)
	}
	rs := []rune(string(buf))
	if len(rs) == 0 {
		return Key{Rune: rune(first)}, nil
	}
	return Key{Rune: rs[0]}, nil
}

// Input drives the read-decode-dispatch loop against a stack of routers,
// the top of which receives every key (modal dialogs Push a router and Pop
// it on dismissal).
type Input struct {
	base  *Router
	stack []*Router
}

// NewInput creates an Input whose base router is r.
func NewInput(r *Router) *Input {
	return &Input{base: r}
}

// SetRouter replaces the base router, clearing any pushed modal routers.
func (in *Input) SetRouter(r *Router) {
	in.base = r
	in.stack = nil
}

// Push installs r as the active router until the next Pop.
func (in *Input) Push(r *Router) {
	in.stack = append(in.stack, r)
}

// Pop removes the most recently pushed router.
func (in *Input) Pop() {
	if len(in.stack) > 0 {
		in.stack = in.stack[:len(in.stack)-1]
	}
}

func (in *Input) active() *Router {
	if len(in.stack) > 0 {
		return in.stack[len(in.stack)-1]
	}
	return in.base
}

// Run reads keys from reader until it returns an error, dispatching each to
// the active router and invoking after with whether the key was handled.
func (in *Input) Run(reader *Reader, after func(handled bool)) error {
	for {
		k, err := reader.ReadKey()
		if err != nil {
			return err
		}
		router := in.active()
		handled := false
		if router != nil {
			handled = router.Dispatch(k)
		}
		if after != nil {
			after(handled)
		}
	}
}
