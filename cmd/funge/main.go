package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"funge/internal/code"
	"funge/internal/config"
	"funge/internal/diag"
	"funge/internal/gfx"
	"funge/internal/lint"
	"funge/internal/repl"
	"funge/internal/runtimeio"
	"funge/internal/snapshot"
	"funge/internal/tools"
	"funge/internal/vm"

	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("funge.cli")

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "init":
			runInit(os.Args[2:])
			return
		case "lint":
			runLint(os.Args[2:])
			return
		case "tools":
			runTools(os.Args[2:])
			return
		case "test":
			runTest(os.Args[2:])
			return
		case "inspect":
			runInspect(os.Args[2:])
			return
		}
	}

	verbosity := flag.Int("v", 0, "log verbosity (0 quiet, 1 info, 2 debug)")
	maxSteps := flag.Int64("max-steps", 0, "step ceiling (0 means unlimited; default from funge.toml or 100000000)")
	seed := flag.Int64("seed", 0, "seed for the ? instruction")
	inputPath := flag.String("input", "", "file whose bytes are the program input")
	trace := flag.Bool("trace", false, "write the machine state to stderr before every step")
	dumpPath := flag.String("dump", "", "write a snapshot of the final state to this file")
	disMode := flag.Bool("dis", false, "list the decoded instructions instead of running")
	timeout := flag.Duration("timeout", 0, "stop the run after this long")
	cellSize := flag.Int("cell", gfx.DefaultCellSize, "gfx: cell size in pixels")
	speed := flag.Int("speed", 1, "gfx: steps per frame")
	paused := flag.Bool("paused", false, "gfx: start paused")
	flag.Parse()

	commonlog.Configure(*verbosity, nil)

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	overrides := flagOverrides{}
	if set["max-steps"] {
		overrides.MaxSteps = maxSteps
	}
	if set["seed"] {
		overrides.Seed = seed
	}
	if set["input"] {
		overrides.Input = *inputPath
	}
	overrides.Trace = *trace

	args := flag.Args()
	cmd := "run"
	if len(args) > 0 {
		switch args[0] {
		case "run", "repl", "gfx", "debug":
			cmd = args[0]
			args = args[1:]
		}
	}

	if cmd == "repl" {
		if len(args) != 0 || *disMode {
			fmt.Println("usage: funge repl")
			os.Exit(1)
		}
		s := resolveSettings(nil, overrides)
		repl.Start(os.Stdin, os.Stdout, repl.Limits{MaxSteps: s.MaxSteps, Seed: s.Seed})
		return
	}

	if len(args) > 1 {
		fmt.Printf("usage: funge %s [file|dir]\n", cmd)
		os.Exit(1)
	}
	target := "."
	if len(args) == 1 {
		target = args[0]
	}

	entryPath, man, err := resolveRunTarget(target)
	if err != nil {
		fmt.Printf("%s error: %s\n", cmd, err)
		os.Exit(1)
	}
	src, err := os.ReadFile(entryPath)
	if err != nil {
		fmt.Println("read error:", err)
		os.Exit(1)
	}
	s := resolveSettings(man, overrides)
	log.Debugf("%s %s: max steps %d, trace %v", cmd, entryPath, s.MaxSteps, s.Trace)

	stdin := bufio.NewReader(os.Stdin)
	m, err := newMachine(string(src), s, cmd == "debug", stdin)
	if err != nil {
		fmt.Println("load error:", err)
		os.Exit(1)
	}

	if *disMode {
		fmt.Print(code.Listing(m.Grid()))
		return
	}

	input, err := loadInput(s.Input, src, stdin)
	if err != nil {
		fmt.Println("input error:", err)
		os.Exit(1)
	}
	m.SetInput(input)

	if cmd == "gfx" {
		err := gfx.Run(m, gfx.Options{
			CellSize:     *cellSize,
			StepsPerTick: *speed,
			Paused:       *paused,
			Title:        "funge: " + filepath.Base(entryPath),
		})
		if err != nil {
			fmt.Println("gfx error:", err)
			os.Exit(1)
		}
		res := m.Result()
		os.Stdout.Write(res.Output)
		finish(m, *dumpPath)
		if reportRun(os.Stdout, res, m.Err(), 0) {
			os.Exit(1)
		}
		return
	}

	ctx := context.Background()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}
	res, runErr := m.RunContext(ctx)
	os.Stdout.Write(res.Output)
	finish(m, *dumpPath)
	if reportRun(os.Stdout, res, runErr, *timeout) {
		os.Exit(1)
	}
}

// reportRun prints why a run gave up and reports whether it did.
func reportRun(w io.Writer, res *vm.Result, err error, timeout time.Duration) bool {
	if err == nil {
		return false
	}
	if len(res.Output) > 0 && res.Output[len(res.Output)-1] != '\n' {
		fmt.Fprintln(w)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		fmt.Fprintf(w, "run error: timed out after %s (%d steps)\n", timeout, res.Steps)
	} else {
		fmt.Fprintln(w, "run error:", err)
	}
	return true
}

type flagOverrides struct {
	MaxSteps *int64
	Seed     *int64
	Input    string
	Trace    bool
}

// settings are the effective run options after merging funge.toml and flags.
type settings struct {
	MaxSteps int64
	Seed     *int64
	Input    string
	Trace    bool
}

func resolveSettings(man *config.Manifest, o flagOverrides) settings {
	s := settings{MaxSteps: config.DefaultMaxSteps}
	if man != nil {
		s.MaxSteps = man.StepLimit()
		s.Seed = man.Seed
		s.Input = man.InputPath()
		s.Trace = man.Trace
	}
	if o.MaxSteps != nil {
		s.MaxSteps = *o.MaxSteps
	}
	if o.Seed != nil {
		s.Seed = o.Seed
	}
	if o.Input != "" {
		s.Input = o.Input
	}
	s.Trace = s.Trace || o.Trace
	return s
}

// newMachine builds the machine for a run. In debug mode the trace goes to
// stdout and, on a terminal, each step waits for Enter on stdin.
func newMachine(src string, s settings, debug bool, stdin *bufio.Reader) (*vm.Machine, error) {
	opts := []vm.Option{vm.WithMaxSteps(s.MaxSteps)}
	if s.Seed != nil {
		opts = append(opts, vm.WithSeed(*s.Seed))
	}
	switch {
	case debug && runtimeio.IsInteractive():
		opts = append(opts, vm.WithTracer(&stepper{in: stdin, out: os.Stdout, next: vm.NewTextTracer(os.Stdout)}))
	case debug:
		opts = append(opts, vm.WithTracer(vm.NewTextTracer(os.Stdout)))
	case s.Trace:
		opts = append(opts, vm.WithTracer(vm.NewTextTracer(os.Stderr)))
	}
	return vm.New(src, opts...)
}

// loadInput returns the program input: the configured file, piped stdin, or
// lines typed at a prompt when the program reads input and stdin is a terminal.
func loadInput(path string, src []byte, stdin *bufio.Reader) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	if !strings.ContainsAny(string(src), "&~") {
		return nil, nil
	}
	if !runtimeio.IsInteractive() {
		return io.ReadAll(stdin)
	}
	return promptInput(stdin, os.Stderr)
}

func promptInput(in *bufio.Reader, out io.Writer) ([]byte, error) {
	fmt.Fprintln(out, "program input, one value per line (blank line or Ctrl+D to start):")
	var b strings.Builder
	for {
		line, err := runtimeio.Prompt(in, out, "input> ")
		if errors.Is(err, runtimeio.ErrInputUnavailable) {
			break
		}
		if err != nil {
			return nil, err
		}
		if line == "" {
			break
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return []byte(b.String()), nil
}

func finish(m *vm.Machine, dumpPath string) {
	if dumpPath == "" {
		return
	}
	if err := snapshot.WriteFile(dumpPath, snapshot.Capture(m)); err != nil {
		fmt.Println("dump error:", err)
		os.Exit(1)
	}
	log.Infof("snapshot written to %s", dumpPath)
}

func runInspect(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: funge inspect <snapshot>")
		os.Exit(2)
	}
	snap, err := snapshot.ReadFile(args[0])
	if err != nil {
		fmt.Println("inspect error:", err)
		os.Exit(1)
	}
	if err := snap.Format(os.Stdout); err != nil {
		fmt.Println("inspect error:", err)
		os.Exit(1)
	}
}

func runLint(args []string) {
	if len(args) == 0 {
		fmt.Println("usage: funge lint <file|dir> [more...]")
		os.Exit(2)
	}

	files, err := collectProgramFiles(args)
	if err != nil {
		fmt.Println("lint error:", err)
		os.Exit(1)
	}
	sort.Strings(files)

	hadErrors := false
	for _, path := range files {
		b, err := os.ReadFile(path)
		if err != nil {
			fmt.Println("lint error:", err)
			hadErrors = true
			continue
		}
		diags := lint.Run(string(b))
		for _, d := range diags {
			fmt.Println(d.Format(path))
		}
		if diag.HasErrors(diags) {
			hadErrors = true
		}
	}

	if hadErrors {
		os.Exit(1)
	}
}

func runTools(args []string) {
	if len(args) == 0 || args[0] != "install" {
		fmt.Println("usage: funge tools install [--bin <dir>] [tool...]")
		os.Exit(2)
	}

	fs := flag.NewFlagSet("tools install", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	binDir := fs.String("bin", "bin", "output directory for tools")
	if err := fs.Parse(args[1:]); err != nil {
		fmt.Println("usage: funge tools install [--bin <dir>] [tool...]")
		os.Exit(2)
	}

	opts := tools.InstallOptions{BinDir: *binDir, Only: fs.Args()}
	steps, err := tools.Plan(opts)
	if err != nil {
		fmt.Println("install error:", err)
		os.Exit(1)
	}
	if err := tools.Install(opts); err != nil {
		fmt.Println("install error:", err)
		os.Exit(1)
	}
	outs := make([]string, 0, len(steps))
	for _, s := range steps {
		outs = append(outs, s.Out)
	}
	fmt.Printf("installed: %s\n", strings.Join(outs, ", "))
}

func collectProgramFiles(targets []string) ([]string, error) {
	var files []string
	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, target)
			continue
		}

		err = filepath.WalkDir(target, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				base := filepath.Base(path)
				if base == ".git" || base == "node_modules" {
					return filepath.SkipDir
				}
				return nil
			}
			if config.IsProgramFile(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}
