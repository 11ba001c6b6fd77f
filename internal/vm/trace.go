package vm

import (
	"fmt"
	"io"

	"funge/internal/stack"
)

// TracerFunc adapts a function to Tracer.
type TracerFunc func(m *Machine)

func (f TracerFunc) Trace(m *Machine) { f(m) }

// TextTracer writes a block per step: registers, stack and the grid with the
// current cell in brackets.
type TextTracer struct {
	w   io.Writer
	err error
}

func NewTextTracer(w io.Writer) *TextTracer {
	return &TextTracer{w: w}
}

// Err returns the first write error, after which tracing stops.
func (t *TextTracer) Err() error {
	return t.err
}

func (t *TextTracer) Trace(m *Machine) {
	if t.err != nil {
		return
	}
	t.err = WriteState(t.w, m)
}

// WriteState renders the machine the way TextTracer does.
func WriteState(w io.Writer, m *Machine) error {
	st := m.State()
	stk := stack.New(st.Stack...)

	ew := &errWriter{w: w}
	ew.printf("\n=== Step Debug Info ===\n")
	ew.printf("Position: (%d, %d)\n", st.X, st.Y)
	ew.printf("Current instruction: %c\n", rune(st.Cell))
	ew.printf("Direction: %s\n", st.Dir)
	ew.printf("Stack: %s\n", stk)
	ew.printf("Mode: %s\n", st.Mode())

	g := m.grid
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			c := rune(g.Get(x, y))
			if x == st.X && y == st.Y {
				ew.printf("[%c]", c)
			} else {
				ew.printf(" %c ", c)
			}
		}
		ew.printf("\n")
	}
	ew.printf("==================\n\n")
	return ew.err
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
