package tools

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/tliron/commonlog"
)

// Target is one binary built by Install.
type Target struct {
	Name string
	Pkg  string
}

var Targets = []Target{
	{Name: "funge", Pkg: "./cmd/funge"},
	{Name: "funge-lsp", Pkg: "./cmd/funge-lsp"},
}

type InstallOptions struct {
	BinDir string
	// Only restricts the build to the named targets when non-empty.
	Only []string
}

// Step is a single build command.
type Step struct {
	Target Target
	Out    string
}

func (s Step) Args() []string {
	return []string{"go", "build", "-o", s.Out, s.Target.Pkg}
}

// Plan lists the builds Install would run.
func Plan(opts InstallOptions) ([]Step, error) {
	if opts.BinDir == "" {
		opts.BinDir = "bin"
	}
	want := map[string]bool{}
	for _, name := range opts.Only {
		want[name] = true
	}

	var steps []Step
	for _, t := range Targets {
		if len(want) > 0 && !want[t.Name] {
			continue
		}
		delete(want, t.Name)
		steps = append(steps, Step{Target: t, Out: filepath.Join(opts.BinDir, exeName(t.Name))})
	}
	for name := range want {
		return nil, fmt.Errorf("unknown tool %q", name)
	}
	return steps, nil
}

func Install(opts InstallOptions) error {
	steps, err := Plan(opts)
	if err != nil {
		return err
	}
	if len(steps) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(steps[0].Out), 0o755); err != nil {
		return err
	}

	log := commonlog.GetLogger("funge.tools")
	for _, s := range steps {
		log.Infof("building %s -> %s", s.Target.Pkg, s.Out)
		if err := goBuild(s); err != nil {
			return fmt.Errorf("build %s: %w", s.Target.Name, err)
		}
	}
	return nil
}

func goBuild(s Step) error {
	args := s.Args()
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func exeName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}
