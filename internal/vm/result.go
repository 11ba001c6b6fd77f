package vm

import "fmt"

type Status int

const (
	Running Status = iota
	Halted
	StepLimit
	Canceled
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Halted:
		return "halted"
	case StepLimit:
		return "step-limit"
	case Canceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Result is what a run hands back to the host. It is returned for abnormal
// endings too, so partial output is never lost.
type Result struct {
	Status      Status
	Output      []byte
	Stack       []int64
	Steps       int64
	InputFaults int
}

func (r *Result) String() string {
	return string(r.Output)
}

// OK reports a normal halt.
func (r *Result) OK() bool {
	return r != nil && r.Status == Halted
}

// Summary is a single diagnostic line describing how the run ended.
func (r *Result) Summary() string {
	return fmt.Sprintf("%s after %d steps, stack %v", r.Status, r.Steps, r.Stack)
}
