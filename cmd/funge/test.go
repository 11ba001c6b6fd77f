package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"funge/internal/spectest"
)

// runTest executes YAML fixture files, the same format the conformance suite uses.
func runTest(args []string) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(os.Stdout)
	verbose := fs.Bool("verbose", false, "print passing cases too")
	if err := fs.Parse(args); err != nil {
		fmt.Println("usage: funge test [--verbose] [file.yaml|dir]...")
		os.Exit(1)
	}

	targets := fs.Args()
	if len(targets) == 0 {
		targets = []string{"."}
	}

	files, err := collectFixtureFiles(targets)
	if err != nil {
		fmt.Println("test error:", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Println("no tests found")
		return
	}
	sort.Strings(files)

	passed, failed := 0, 0
	for _, path := range files {
		cases, err := spectest.LoadFile(path)
		if err != nil {
			fmt.Println("test error:", err)
			failed++
			continue
		}
		for _, c := range cases {
			problems := spectest.Check(c, spectest.Execute(c))
			if len(problems) == 0 {
				passed++
				if *verbose {
					fmt.Printf("ok   %s: %s\n", path, c.Name)
				}
				continue
			}
			failed++
			fmt.Printf("FAIL %s: %s: %s\n", path, c.Name, strings.Join(problems, "; "))
		}
	}
	fmt.Printf("passed %d, failed %d\n", passed, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func collectFixtureFiles(targets []string) ([]string, error) {
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
			if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
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
