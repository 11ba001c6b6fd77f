package grid

import (
	"errors"
	"math/rand"
	"testing"
)

const helloWorld = ">              v\nv  ,,,,,\"Hello\"<\n>48*,          v\nv,,,,,,\"World!\"<\n>25*,@"

func TestLoadPadsToLongestLine(t *testing.T) {
	g, err := Load(helloWorld)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Width() != 16 || g.Height() != 5 {
		t.Fatalf("expected 16x5, got %dx%d", g.Width(), g.Height())
	}
	checks := []struct {
		x, y int
		c    byte
	}{
		{0, 0, '>'},
		{15, 0, 'v'},
		{15, 4, ' '},
		{0, 4, '>'},
		{16, 5, '>'}, // wraps to (0, 0)
	}
	for _, c := range checks {
		if got := g.Get(c.x, c.y); got != c.c {
			t.Fatalf("Get(%d, %d) = %q, want %q", c.x, c.y, got, c.c)
		}
	}
}

func TestLoadTrailingNewline(t *testing.T) {
	g, err := Load("12@\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Height() != 1 {
		t.Fatalf("expected a single row, got %d", g.Height())
	}

	g, err = Load("ab\r\ncd\r\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Width() != 2 || g.Height() != 2 {
		t.Fatalf("expected 2x2, got %dx%d", g.Width(), g.Height())
	}
	if g.Get(1, 1) != 'd' {
		t.Fatalf("expected carriage returns to be dropped")
	}
}

func TestLoadEmpty(t *testing.T) {
	for _, src := range []string{"", "\n", "\r\n"} {
		if _, err := Load(src); !errors.Is(err, ErrEmpty) {
			t.Fatalf("Load(%q): expected ErrEmpty, got %v", src, err)
		}
	}
}

func TestLoadBlankLines(t *testing.T) {
	g, err := Load("\n\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Width() != 1 || g.Height() != 2 {
		t.Fatalf("expected 1x2, got %dx%d", g.Width(), g.Height())
	}
	if g.Get(0, 1) != Blank {
		t.Fatalf("expected blank cell")
	}
}

func TestSetWrapsOutOfRange(t *testing.T) {
	g, _ := Load("abc\ndef")
	g.Set(4, -1, 'Z') // (1, 1)
	if g.Get(1, 1) != 'Z' {
		t.Fatalf("expected write to wrap to (1, 1), grid:\n%s", g)
	}
	if g.Get(-2, 3) != 'Z' {
		t.Fatalf("expected read to wrap to (1, 1)")
	}
	if g.Width() != 3 || g.Height() != 2 {
		t.Fatalf("grid must not grow, got %dx%d", g.Width(), g.Height())
	}
}

func TestRowsRoundTrip(t *testing.T) {
	g, _ := Load("ab\nc")
	back, err := FromRows(g.Rows())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back.String() != g.String() {
		t.Fatalf("expected %q, got %q", g.String(), back.String())
	}
	rows := g.Rows()
	rows[0][0] = 'X'
	if g.Get(0, 0) != 'a' {
		t.Fatalf("Rows must return a copy")
	}
}

func TestStringMarksNonPrintable(t *testing.T) {
	g := New(2, 1)
	g.Set(0, 0, 0x07)
	if got := g.String(); got != "□ \n" {
		t.Fatalf("unexpected rendering %q", got)
	}
}

func TestRandom(t *testing.T) {
	g := Random(128, 64, rand.New(rand.NewSource(1)))
	if g.Width() != 128 || g.Height() != 64 {
		t.Fatalf("expected 128x64, got %dx%d", g.Width(), g.Height())
	}
	if len(g.Rows()) != 64 {
		t.Fatalf("expected 64 rows")
	}
	for _, r := range g.Rows() {
		if len(r) != 128 {
			t.Fatalf("expected rows of 128 cells, got %d", len(r))
		}
	}
}
