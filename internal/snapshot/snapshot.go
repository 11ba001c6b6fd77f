// Package snapshot serializes the final state of a run for later inspection.
package snapshot

import (
	"fmt"
	"io"
	"os"

	"funge/internal/grid"
	"funge/internal/stack"
	"funge/internal/vm"

	"github.com/fxamacker/cbor/v2"
)

const Version = 1

// Snapshot is the machine state after a run.
type Snapshot struct {
	Version     int      `cbor:"1,keyasint"`
	Status      string   `cbor:"2,keyasint"`
	Steps       int64    `cbor:"3,keyasint"`
	X           int      `cbor:"4,keyasint"`
	Y           int      `cbor:"5,keyasint"`
	Direction   string   `cbor:"6,keyasint"`
	StringMode  bool     `cbor:"7,keyasint"`
	Stack       []int64  `cbor:"8,keyasint,omitempty"`
	Rows        [][]byte `cbor:"9,keyasint"`
	Output      []byte   `cbor:"10,keyasint,omitempty"`
	InputFaults int      `cbor:"11,keyasint,omitempty"`
}

var encMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("snapshot: failed to create CBOR enc mode: %v", err))
	}
	encMode = em
}

// Capture copies the state of m. The machine is not modified.
func Capture(m *vm.Machine) *Snapshot {
	st := m.State()
	res := m.Result()
	return &Snapshot{
		Version:     Version,
		Status:      st.Status.String(),
		Steps:       st.Steps,
		X:           st.X,
		Y:           st.Y,
		Direction:   st.Dir.String(),
		StringMode:  st.StringMode,
		Stack:       st.Stack,
		Rows:        m.Grid().Rows(),
		Output:      res.Output,
		InputFaults: res.InputFaults,
	}
}

func Marshal(s *Snapshot) ([]byte, error) {
	return encMode.Marshal(s)
}

func Unmarshal(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := cbor.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("snapshot: unmarshal: %w", err)
	}
	if s.Version != Version {
		return nil, fmt.Errorf("snapshot: unsupported version %d", s.Version)
	}
	return &s, nil
}

func WriteFile(path string, s *Snapshot) error {
	data, err := Marshal(s)
	if err != nil {
		return fmt.Errorf("snapshot: marshal: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func ReadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}

// Grid rebuilds the captured grid.
func (s *Snapshot) Grid() (*grid.Grid, error) {
	return grid.FromRows(s.Rows)
}

// Format prints a human-readable report.
func (s *Snapshot) Format(w io.Writer) error {
	g, err := s.Grid()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "status: %s\nsteps: %d\nposition: (%d, %d) %s\nstring mode: %t\nstack: %s\ninput faults: %d\noutput: %q\ngrid (%dx%d):\n%s",
		s.Status, s.Steps, s.X, s.Y, s.Direction, s.StringMode,
		stack.New(s.Stack...), s.InputFaults, s.Output,
		g.Width(), g.Height(), g)
	return err
}
