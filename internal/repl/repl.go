package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"funge/internal/lint"
	"funge/internal/vm"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("funge.repl")

const (
	prompt1 = "funge> "
	prompt2 = "....> "
)

type Limits struct {
	MaxSteps int64
	Seed     *int64
}

// Start reads program rows from in. An empty line runs the rows entered so
// far and clears them. Lines starting with ':' are commands when no rows are
// pending, or always for :reset.
func Start(in io.Reader, out io.Writer, limits Limits) {
	scanner := bufio.NewScanner(in)
	var rows []string
	var input string

	fmt.Fprint(out, "funge REPL: enter rows, a blank line runs them (Ctrl+D to exit)\n")

	for {
		if len(rows) == 0 {
			fmt.Fprint(out, prompt1)
		} else {
			fmt.Fprint(out, prompt2)
		}

		if !scanner.Scan() {
			fmt.Fprint(out, "\n")
			return
		}

		line := strings.TrimRight(scanner.Text(), "\r")
		trim := strings.TrimSpace(line)

		if len(rows) == 0 && (trim == "exit" || trim == "quit") {
			return
		}
		if trim == ":reset" {
			rows = nil
			input = ""
			fmt.Fprintln(out, "cleared")
			continue
		}
		if len(rows) == 0 && strings.HasPrefix(trim, ":") {
			input = command(out, trim, input)
			continue
		}

		if trim != "" {
			rows = append(rows, line)
			continue
		}
		if len(rows) == 0 {
			continue
		}

		src := strings.Join(rows, "\n")
		rows = nil
		run(out, src, input, limits)
	}
}

func command(out io.Writer, cmd, input string) string {
	name, arg, _ := strings.Cut(cmd, " ")
	switch name {
	case ":input":
		arg = strings.ReplaceAll(arg, `\n`, "\n")
		fmt.Fprintf(out, "input set (%d bytes)\n", len(arg))
		return arg
	case ":help":
		fmt.Fprintln(out, ":input TEXT  set input for the next runs (\\n for newline)")
		fmt.Fprintln(out, ":reset       drop pending rows and input")
		fmt.Fprintln(out, "exit, quit   leave")
	default:
		fmt.Fprintf(out, "unknown command %s (try :help)\n", name)
	}
	return input
}

func run(out io.Writer, src, input string, limits Limits) {
	for _, d := range lint.Run(src) {
		fmt.Fprintln(out, d.Format("<repl>"))
	}

	opts := []vm.Option{vm.WithMaxSteps(limits.MaxSteps), vm.WithLogger(log)}
	if limits.Seed != nil {
		opts = append(opts, vm.WithSeed(*limits.Seed))
	}
	m, err := vm.New(src, opts...)
	if err != nil {
		fmt.Fprintf(out, "error: %s\n", err)
		return
	}
	m.SetInputString(input)

	res, err := m.Run()
	if len(res.Output) > 0 {
		out.Write(res.Output)
		if res.Output[len(res.Output)-1] != '\n' {
			fmt.Fprint(out, "\n")
		}
	}
	if err != nil {
		fmt.Fprintf(out, "error: %s\n", err)
	}
	fmt.Fprintf(out, "-- %s\n", res.Summary())
}
