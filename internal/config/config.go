// Package config handles funge.toml project configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const FileName = "funge.toml"

// Extensions lists the file extensions treated as programs.
var Extensions = []string{".bf", ".b93", ".befunge"}

// DefaultMaxSteps bounds CLI runs that configure no ceiling.
const DefaultMaxSteps int64 = 100_000_000

type Manifest struct {
	Name     string `toml:"name,omitempty"`
	Entry    string `toml:"entry"`
	Input    string `toml:"input,omitempty"`
	MaxSteps *int64 `toml:"max_steps,omitempty"`
	Seed     *int64 `toml:"seed,omitempty"`
	Trace    bool   `toml:"trace,omitempty"`

	// Dir is the directory containing the manifest (set at load time).
	Dir string `toml:"-"`
}

func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	m := &Manifest{}
	md, err := toml.Decode(string(data), m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if m.MaxSteps != nil && *m.MaxSteps < 0 {
		return nil, fmt.Errorf("%s: max_steps must not be negative", path)
	}

	m.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	return m, nil
}

// EntryPath resolves the entry program relative to the manifest.
func (m *Manifest) EntryPath() string {
	return m.resolve(m.Entry)
}

// InputPath resolves the input file, or "" if none is configured.
func (m *Manifest) InputPath() string {
	if m.Input == "" {
		return ""
	}
	return m.resolve(m.Input)
}

// StepLimit is the configured ceiling, or DefaultMaxSteps when unset.
func (m *Manifest) StepLimit() int64 {
	if m == nil || m.MaxSteps == nil {
		return DefaultMaxSteps
	}
	return *m.MaxSteps
}

func (m *Manifest) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.Dir, p)
}

// Encode renders a manifest for `funge init`.
func Encode(m *Manifest) (string, error) {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(m); err != nil {
		return "", err
	}
	return b.String(), nil
}

// IsProgramFile reports whether path has one of the program Extensions.
func IsProgramFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
