package vm

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"funge/internal/code"
	"funge/internal/grid"
	"funge/internal/limits"
	"funge/internal/runtimeio"
	"funge/internal/stack"

	"github.com/tliron/commonlog"
)

// ErrEmptyProgram is returned by New when the program text has no lines.
var ErrEmptyProgram = errors.New("empty program")

// checkEvery is how many steps RunContext executes between context checks.
const checkEvery = 1024

// Rand is the source for the random-direction opcode. Only the low two bits
// of Intn(4) are used.
type Rand interface {
	Intn(n int) int
}

// Tracer observes the machine before every step.
type Tracer interface {
	Trace(m *Machine)
}

type Option func(*Machine)

// WithMaxSteps sets the iteration ceiling; 0 means unlimited.
func WithMaxSteps(n int64) Option {
	return func(m *Machine) { m.budget = limits.NewBudget(n) }
}

func WithRand(r Rand) Option {
	return func(m *Machine) { m.rand = r }
}

func WithSeed(seed int64) Option {
	return func(m *Machine) { m.rand = rand.New(rand.NewSource(seed)) }
}

func WithTracer(t Tracer) Option {
	return func(m *Machine) { m.tracer = t }
}

func WithLogger(l commonlog.Logger) Option {
	return func(m *Machine) { m.log = l }
}

// Machine executes one program. Grid, stack, pointer and I/O channel are owned
// by the machine and never shared, so independent machines may run concurrently.
type Machine struct {
	grid       *grid.Grid
	stack      *stack.Stack
	ip         Pointer
	stringMode bool
	io         *runtimeio.Channel

	status Status
	err    error

	budget *limits.Budget
	rand   Rand
	tracer Tracer
	log    commonlog.Logger
}

func New(program string, opts ...Option) (*Machine, error) {
	g, err := grid.Load(program)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmptyProgram, err)
	}
	m := &Machine{
		grid:   g,
		stack:  stack.New(),
		ip:     Pointer{Dir: Right},
		io:     runtimeio.NewChannel(),
		status: Running,
		budget: limits.NewBudget(0),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rand == nil {
		m.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if m.log == nil {
		m.log = commonlog.GetLogger("funge.vm")
	}
	return m, nil
}

func (m *Machine) SetInput(data []byte) {
	m.io.SetInput(data)
}

func (m *Machine) SetInputString(s string) {
	m.io.SetInput([]byte(s))
}

func (m *Machine) Grid() *grid.Grid {
	return m.grid
}

func (m *Machine) Status() Status {
	return m.status
}

// Err is the error that stopped the machine abnormally, if any.
func (m *Machine) Err() error {
	return m.err
}

func (m *Machine) Run() (*Result, error) {
	return m.RunContext(context.Background())
}

// RunContext executes until the program halts, the step ceiling is reached or
// ctx is done. The Result is non-nil in every case.
func (m *Machine) RunContext(ctx context.Context) (*Result, error) {
	m.log.Debugf("run start: %dx%d grid, max steps %d", m.grid.Width(), m.grid.Height(), m.budget.Limit())
	for n := 0; ; n++ {
		if n%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				m.status = Canceled
				m.err = err
				break
			}
		}
		if !m.Step() {
			break
		}
	}
	res := m.Result()
	switch m.status {
	case StepLimit:
		m.log.Noticef("run stopped: %s", m.err)
	case Canceled:
		m.log.Noticef("run canceled after %d steps", res.Steps)
	default:
		m.log.Debugf("run finished: %s", res.Summary())
	}
	return res, m.err
}

// Result snapshots the host-visible outcome.
func (m *Machine) Result() *Result {
	return &Result{
		Status:      m.status,
		Output:      m.io.Output(),
		Stack:       m.stack.Values(),
		Steps:       m.budget.Used(),
		InputFaults: m.io.Faults(),
	}
}

// Step executes one cycle and reports whether the machine can keep running.
func (m *Machine) Step() bool {
	if m.status != Running {
		return false
	}
	if err := m.budget.Charge(1); err != nil {
		m.status = StepLimit
		m.err = err
		return false
	}
	if m.tracer != nil {
		m.tracer.Trace(m)
	}

	c := m.grid.Get(m.ip.X, m.ip.Y)
	if m.stringMode {
		if c == '"' {
			m.stringMode = false
		} else {
			m.stack.Push(int64(c))
		}
		m.advance()
		return true
	}

	if !m.execute(code.Decode(c), c) {
		m.status = Halted
		return false
	}
	m.advance()
	return true
}

func (m *Machine) advance() {
	m.ip.Advance(m.grid.Width(), m.grid.Height())
}

// State is a copy of the machine registers, for tracing and inspection.
type State struct {
	X, Y       int
	Dir        Direction
	StringMode bool
	Cell       byte
	Stack      []int64
	Steps      int64
	Status     Status
}

func (s State) Mode() string {
	if s.StringMode {
		return "AsciiPush"
	}
	return "Interpret"
}

func (m *Machine) State() State {
	return State{
		X:          m.ip.X,
		Y:          m.ip.Y,
		Dir:        m.ip.Dir,
		StringMode: m.stringMode,
		Cell:       m.grid.Get(m.ip.X, m.ip.Y),
		Stack:      m.stack.Values(),
		Steps:      m.budget.Used(),
		Status:     m.status,
	}
}
