package main

import (
	"bufio"
	"io"
	"strings"

	"funge/internal/runtimeio"
	"funge/internal/vm"
)

// stepper waits for a line on in after each traced state. "c" stops
// waiting for the rest of the run, as does the end of in.
type stepper struct {
	in      *bufio.Reader
	out     io.Writer
	next    vm.Tracer
	running bool
}

func (s *stepper) Trace(m *vm.Machine) {
	s.next.Trace(m)
	if s.running {
		return
	}
	line, err := runtimeio.Prompt(s.in, s.out, "-- enter: step, c: continue > ")
	if err != nil || strings.TrimSpace(line) == "c" {
		s.running = true
	}
}
