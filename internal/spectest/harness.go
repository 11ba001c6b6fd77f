// Package spectest runs conformance fixtures: YAML documents describing a
// program, its input and the output, stack and final state it must produce.
package spectest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"funge/internal/vm"

	"gopkg.in/yaml.v3"
)

const (
	defaultMaxSteps = 1_000_000
	defaultTimeout  = 10 * time.Second
)

type Cell struct {
	X     int   `yaml:"x"`
	Y     int   `yaml:"y"`
	Value int64 `yaml:"value"`
}

// Case is one fixture document. Nil pointer fields are not checked.
type Case struct {
	Name        string   `yaml:"name"`
	Program     string   `yaml:"program"`
	ProgramFile string   `yaml:"program_file"`
	Input       string   `yaml:"input"`
	MaxSteps    int64    `yaml:"max_steps"`
	Seed        *int64   `yaml:"seed"`
	Random      []int    `yaml:"random"`
	Stdout      *string  `yaml:"stdout"`
	StdoutHas   string   `yaml:"stdout_contains"`
	StdoutFile  string   `yaml:"stdout_file"`
	Stack       *[]int64 `yaml:"stack"`
	Status      string   `yaml:"status"`
	Error       string   `yaml:"error"`
	Steps       *int64   `yaml:"steps"`
	InputFaults *int     `yaml:"input_faults"`
	HaltAt      []int    `yaml:"halt_at"`
	Cells       []Cell   `yaml:"cells"`

	dir string
}

// Result is what a fixture run observed.
type Result struct {
	Stdout      string
	Stack       []int64
	Status      vm.Status
	Steps       int64
	InputFaults int
	X, Y        int
	Cells       map[[2]int]byte
	Err         error
}

// LoadFile decodes every YAML document in path as a Case. Unknown keys are errors.
func LoadFile(path string) ([]Case, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var cases []Case
	for i := 1; ; i++ {
		var c Case
		err := dec.Decode(&c)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: document %d: %w", path, i, err)
		}
		if c.Name == "" {
			c.Name = fmt.Sprintf("%s#%d", strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), i)
		}
		if c.Program == "" && c.ProgramFile == "" {
			return nil, fmt.Errorf("%s: %s: no program", path, c.Name)
		}
		c.dir = filepath.Dir(path)
		cases = append(cases, c)
	}
	return cases, nil
}

// LoadDir loads every *.yaml file in dir in name order.
func LoadDir(dir string) ([]Case, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	var all []Case
	for _, p := range paths {
		cases, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		all = append(all, cases...)
	}
	return all, nil
}

type seqRand struct {
	dirs []int
	i    int
}

func (r *seqRand) Intn(n int) int {
	if len(r.dirs) == 0 {
		return 0
	}
	d := r.dirs[r.i%len(r.dirs)]
	r.i++
	return d % n
}

func (c Case) source() (string, error) {
	if c.ProgramFile == "" {
		return c.Program, nil
	}
	b, err := os.ReadFile(filepath.Join(c.dir, c.ProgramFile))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Execute runs one case on a fresh machine.
func Execute(c Case) Result {
	src, err := c.source()
	if err != nil {
		return Result{Err: err}
	}

	maxSteps := c.MaxSteps
	if maxSteps == 0 {
		maxSteps = defaultMaxSteps
	}
	opts := []vm.Option{vm.WithMaxSteps(maxSteps)}
	switch {
	case len(c.Random) > 0:
		opts = append(opts, vm.WithRand(&seqRand{dirs: c.Random}))
	case c.Seed != nil:
		opts = append(opts, vm.WithSeed(*c.Seed))
	}

	m, err := vm.New(src, opts...)
	if err != nil {
		return Result{Err: err}
	}
	m.SetInputString(c.Input)

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	res, err := m.RunContext(ctx)

	st := m.State()
	out := Result{
		Stdout:      string(res.Output),
		Stack:       res.Stack,
		Status:      res.Status,
		Steps:       res.Steps,
		InputFaults: res.InputFaults,
		X:           st.X,
		Y:           st.Y,
		Cells:       map[[2]int]byte{},
		Err:         err,
	}
	for _, cell := range c.Cells {
		out.Cells[[2]int{cell.X, cell.Y}] = m.Grid().Get(cell.X, cell.Y)
	}
	return out
}

// Check compares a result against the case and returns every mismatch.
func Check(c Case, res Result) []string {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	wantStatus := c.Status
	if wantStatus == "" {
		wantStatus = vm.Halted.String()
	}
	if res.Status.String() != wantStatus {
		add("status: expected %s, got %s (err %v)", wantStatus, res.Status, res.Err)
	}

	switch {
	case c.Error != "" && res.Err == nil:
		add("expected error containing %q, got none", c.Error)
	case c.Error != "" && !strings.Contains(res.Err.Error(), c.Error):
		add("error: expected to contain %q, got %q", c.Error, res.Err)
	case c.Error == "" && res.Err != nil && wantStatus == vm.Halted.String():
		add("unexpected error: %v", res.Err)
	}

	for _, exp := range c.stdoutExpectations() {
		ok, reason, err := MatchStdout(res.Stdout, exp, c.dir)
		if err != nil {
			add("stdout check failed: %v", err)
		} else if !ok {
			add("%s", reason)
		}
	}

	if c.Stack != nil && !equalStack(*c.Stack, res.Stack) {
		add("stack: expected %v, got %v", *c.Stack, res.Stack)
	}
	if c.Steps != nil && *c.Steps != res.Steps {
		add("steps: expected %d, got %d", *c.Steps, res.Steps)
	}
	if c.InputFaults != nil && *c.InputFaults != res.InputFaults {
		add("input faults: expected %d, got %d", *c.InputFaults, res.InputFaults)
	}
	if len(c.HaltAt) == 2 && (c.HaltAt[0] != res.X || c.HaltAt[1] != res.Y) {
		add("position: expected (%d, %d), got (%d, %d)", c.HaltAt[0], c.HaltAt[1], res.X, res.Y)
	}
	for _, cell := range c.Cells {
		got := res.Cells[[2]int{cell.X, cell.Y}]
		if int64(got) != cell.Value {
			add("cell (%d, %d): expected %d, got %d", cell.X, cell.Y, cell.Value, got)
		}
	}
	return problems
}

func (c Case) stdoutExpectations() []StdoutExpectation {
	var exps []StdoutExpectation
	if c.Stdout != nil {
		exps = append(exps, StdoutExpectation{Mode: StdoutExact, Value: *c.Stdout})
	}
	if c.StdoutHas != "" {
		exps = append(exps, StdoutExpectation{Mode: StdoutContains, Value: c.StdoutHas})
	}
	if c.StdoutFile != "" {
		exps = append(exps, StdoutExpectation{Mode: StdoutFile, Value: c.StdoutFile})
	}
	return exps
}

func equalStack(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// RunDir runs every fixture in dir as a subtest.
func RunDir(t *testing.T, dir string) {
	t.Helper()
	cases, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("load fixtures: %v", err)
	}
	if len(cases) == 0 {
		t.Fatalf("no fixtures in %s", dir)
	}
	for _, c := range cases {
		c := c
		t.Run(c.Name, func(t *testing.T) {
			t.Parallel()
			for _, p := range Check(c, Execute(c)) {
				t.Error(p)
			}
		})
	}
}
