package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"funge/internal/config"
)

// resolveRunTarget maps a file or project directory to the program to run.
// Directories must hold a funge.toml naming the entry program.
func resolveRunTarget(target string) (string, *config.Manifest, error) {
	info, err := os.Stat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("path not found: %s", target)
		}
		return "", nil, err
	}
	if !info.IsDir() {
		abs, err := filepath.Abs(target)
		if err != nil {
			return "", nil, err
		}
		return abs, nil, nil
	}

	manifestPath := filepath.Join(target, config.FileName)
	man, err := config.LoadManifest(manifestPath)
	if err != nil {
		return "", nil, err
	}
	if strings.TrimSpace(man.Entry) == "" {
		return "", nil, fmt.Errorf("%s: missing entry", manifestPath)
	}
	return man.EntryPath(), man, nil
}

func runInit(args []string) {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	name := fs.String("name", "", "project name")
	entry := fs.String("entry", "main.bf", "entry file")
	force := fs.Bool("force", false, "overwrite existing files")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		fmt.Println("usage: funge init [--name <name>] [--entry <file>] [--force]")
		os.Exit(1)
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	if err := initProject(cwd, *name, *entry, *force); err != nil {
		fmt.Println("init error:", err)
		os.Exit(1)
	}
}

func initProject(dir, name, entry string, force bool) error {
	if strings.TrimSpace(entry) == "" {
		return fmt.Errorf("entry cannot be empty")
	}

	manifestPath := filepath.Join(dir, config.FileName)
	manifestExists, err := pathExists(manifestPath)
	if err != nil {
		return err
	}
	if manifestExists && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
	}

	manifest, err := config.Encode(&config.Manifest{Name: name, Entry: entry})
	if err != nil {
		return err
	}
	if err := os.WriteFile(manifestPath, []byte(manifest), 0o644); err != nil {
		return err
	}

	entryPath := filepath.Join(dir, entry)
	if err := ensureDir(entryPath); err != nil {
		return err
	}
	entryExists, err := pathExists(entryPath)
	if err != nil {
		return err
	}
	if !entryExists || force {
		return os.WriteFile(entryPath, []byte(starterProgram()), 0o644)
	}
	return nil
}

func starterProgram() string {
	return ">              v\nv  ,,,,,\"Hello\"<\n>48*,          v\nv,,,,,,\"World!\"<\n>25*,@\n"
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
