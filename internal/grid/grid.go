// Package grid holds the program's two-dimensional cell matrix.
//
// Every coordinate is wrapped onto the torus [0, Width) x [0, Height), so
// reads and writes never fail and the grid never changes size after Load.
package grid

import (
	"errors"
	"math/rand"
	"strings"
)

const Blank byte = ' '

var ErrEmpty = errors.New("program text has no lines")

type Grid struct {
	width  int
	height int
	cells  []byte // row-major, width*height
}

// Load splits text into lines and pads each one with blanks to the longest
// line. A single trailing newline ends the last line instead of opening a
// new one, and carriage returns before a newline are dropped.
func Load(text string) (*Grid, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil, ErrEmpty
	}

	lines := strings.Split(text, "\n")
	width := 0
	for _, line := range lines {
		if len(line) > width {
			width = len(line)
		}
	}
	if width == 0 {
		// Only blank lines: keep one column so every row is addressable.
		width = 1
	}

	g := New(width, len(lines))
	for y, line := range lines {
		copy(g.cells[y*width:], line)
	}
	return g, nil
}

// New returns a width x height grid filled with blanks.
func New(width, height int) *Grid {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	cells := make([]byte, width*height)
	for i := range cells {
		cells[i] = Blank
	}
	return &Grid{width: width, height: height, cells: cells}
}

// Random fills a width x height grid with arbitrary bytes.
func Random(width, height int, r *rand.Rand) *Grid {
	g := New(width, height)
	for i := range g.cells {
		g.cells[i] = byte(r.Intn(256))
	}
	return g
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Wrap maps any coordinate onto the grid.
func (g *Grid) Wrap(x, y int) (int, int) {
	return mod(x, g.width), mod(y, g.height)
}

func (g *Grid) Get(x, y int) byte {
	x, y = g.Wrap(x, y)
	return g.cells[y*g.width+x]
}

func (g *Grid) Set(x, y int, c byte) {
	x, y = g.Wrap(x, y)
	g.cells[y*g.width+x] = c
}

// Row returns a copy of row y (wrapped).
func (g *Grid) Row(y int) []byte {
	y = mod(y, g.height)
	out := make([]byte, g.width)
	copy(out, g.cells[y*g.width:(y+1)*g.width])
	return out
}

// Rows returns a copy of every row.
func (g *Grid) Rows() [][]byte {
	out := make([][]byte, g.height)
	for y := range out {
		out[y] = g.Row(y)
	}
	return out
}

// FromRows rebuilds a grid from rows as returned by Rows. Short rows are padded.
func FromRows(rows [][]byte) (*Grid, error) {
	if len(rows) == 0 {
		return nil, ErrEmpty
	}
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	g := New(width, len(rows))
	for y, r := range rows {
		copy(g.cells[y*g.width:], r)
	}
	return g, nil
}

// String renders the grid one row per line; bytes outside printable ASCII
// are shown as a box.
func (g *Grid) String() string {
	var b strings.Builder
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			c := g.cells[y*g.width+x]
			if c >= 0x20 && c <= 0x7e {
				b.WriteByte(c)
			} else {
				b.WriteRune('□')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
