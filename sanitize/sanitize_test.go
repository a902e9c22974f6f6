package sanitize

import "testing"

func TestCleanInputIsZeroCopy(t *testing.T) {
	s := "hello, world — no surprises here"
	out := String(s)
	if out != s {
		t.Fatalf("expected unchanged string, got %q", out)
	}
}

func TestStripsBareESC(t *testing.T) {
	// ESC followed by a final byte ('a') is a two-byte escape: both go
	out := String("before\x1bafter")
	if out != "beforefter" {
		t.Fatalf("got %q", out)
	}
}

func TestStripsCSISequence(t *testing.T) {
	// cursor-position + SGR reset embedded in otherwise plain text
	in := "start\x1b[31mRED\x1b[0mend"
	out := String(in)
	if out != "startREDend" {
		t.Fatalf("got %q", out)
	}
}

func TestStripsOSCTerminatedByBEL(t *testing.T) {
	in := "a\x1b]0;evil title\x07b"
	out := String(in)
	if out != "ab" {
		t.Fatalf("got %q", out)
	}
}

func TestStripsOSCTerminatedByST(t *testing.T) {
	in := "a\x1b]8;;http://evil\x1b\\b"
	out := String(in)
	if out != "ab" {
		t.Fatalf("got %q", out)
	}
}

func TestStrips8BitCSI(t *testing.T) {
	in := "a\x9b31mb"
	out := String(in)
	if out != "ab" {
		t.Fatalf("got %q", out)
	}
}

func TestStripsC0Controls(t *testing.T) {
	in := "a\x01\x02\x03b"
	out := String(in)
	if out != "ab" {
		t.Fatalf("got %q", out)
	}
}

func TestStripsDEL(t *testing.T) {
	in := "a\x7fb"
	out := String(in)
	if out != "ab" {
		t.Fatalf("got %q", out)
	}
}

func TestCRLFNormalizedToNewlineWhenAllowed(t *testing.T) {
	in := "a\r\nb"
	out := ForBlock.String(in)
	if out != "a\nb" {
		t.Fatalf("got %q", out)
	}
}

func TestBareCRStrippedWhenNewlinesAllowed(t *testing.T) {
	in := "a\rb"
	out := ForBlock.String(in)
	if out != "ab" {
		t.Fatalf("got %q", out)
	}
}

func TestTabPreservedForLine(t *testing.T) {
	in := "a\tb"
	out := ForLine.String(in)
	if out != "a\tb" {
		t.Fatalf("got %q", out)
	}
}

func TestNewlineStrippedForLine(t *testing.T) {
	in := "a\nb"
	out := ForLine.String(in)
	if out != "ab" {
		t.Fatalf("got %q", out)
	}
}

func TestIdempotent(t *testing.T) {
	in := "x\x1b[1;2Hy\x01z"
	once := String(in)
	twice := String(once)
	if once != twice {
		t.Fatalf("not idempotent: %q != %q", once, twice)
	}
}

func TestUnterminatedEscapeConsumesToEnd(t *testing.T) {
	in := "a\x1b[31"
	out := String(in)
	if out != "a" {
		t.Fatalf("got %q", out)
	}
}

func TestReplacementSubstitution(t *testing.T) {
	opt := Options{Replacement: "�"}
	out := opt.String("a\x01b")
	if out != "a�b" {
		t.Fatalf("got %q", out)
	}
}
