package rope

import "testing"

func TestGraphemeRightSkipsCombiningMark(t *testing.T) {
	// "e" + combining acute accent is one grapheme cluster
	r := New("éx")
	n := NewCursorNavigator(r)
	next := n.GraphemeRight(0)
	if next != len("é") {
		t.Fatalf("expected cluster boundary at %d, got %d", len("é"), next)
	}
}

func TestGraphemeLeftMatchesRight(t *testing.T) {
	r := New("éx")
	n := NewCursorNavigator(r)
	mid := n.GraphemeRight(0)
	back := n.GraphemeLeft(mid)
	if back != 0 {
		t.Fatalf("expected 0, got %d", back)
	}
}

func TestWordRightSkipsWhitespace(t *testing.T) {
	r := New("foo   bar")
	n := NewCursorNavigator(r)
	got := n.WordRight(0)
	if got != len("foo   ") {
		t.Fatalf("got %d want %d", got, len("foo   "))
	}
}

func TestWordLeft(t *testing.T) {
	r := New("foo   bar")
	n := NewCursorNavigator(r)
	got := n.WordLeft(r.Len())
	if got != len("foo   ") {
		t.Fatalf("got %d want %d", got, len("foo   "))
	}
}

func TestPositionComputesLineAndColumn(t *testing.T) {
	r := New("abc\nde")
	n := NewCursorNavigator(r)
	pos := n.Position(5)
	if pos.Line != 1 || pos.Column != 1 {
		t.Fatalf("got %+v", pos)
	}
}

func TestPositionAccountsForWideRunes(t *testing.T) {
	r := New("日本")
	n := NewCursorNavigator(r)
	pos := n.Position(len("日"))
	if pos.Column != 2 {
		t.Fatalf("expected column 2 for one wide rune, got %d", pos.Column)
	}
}
