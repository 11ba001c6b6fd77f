package lint

import (
	"strings"

	"funge/internal/diag"
	"funge/internal/grid"
)

const (
	CodeEmpty           = "FL0000"
	CodeNoHalt          = "FL0001"
	CodeOddQuotes       = "FL0002"
	CodeNonASCII        = "FL0003"
	CodeTab             = "FL0004"
	CodeHaltUnreachable = "FL0005"
)

type Options struct {
	CheckReachability bool
}

func DefaultOptions() Options {
	return Options{CheckReachability: true}
}

type Linter struct {
	opts Options
}

func New() *Linter {
	return &Linter{opts: DefaultOptions()}
}

func NewWithOptions(opts Options) *Linter {
	return &Linter{opts: opts}
}

func Run(src string) []diag.Diagnostic {
	return New().Run(src)
}

func RunWithOptions(src string, opts Options) []diag.Diagnostic {
	return NewWithOptions(opts).Run(src)
}

func (l *Linter) Run(src string) []diag.Diagnostic {
	g, err := grid.Load(src)
	if err != nil {
		return []diag.Diagnostic{{
			Code:     CodeEmpty,
			Message:  "program has no lines",
			Severity: diag.SeverityError,
			Range:    diag.Range{Line: 1, Col: 1, Length: 1},
		}}
	}

	var diags []diag.Diagnostic
	lines := strings.Split(strings.TrimSuffix(strings.ReplaceAll(src, "\r\n", "\n"), "\n"), "\n")
	for y, line := range lines {
		diags = append(diags, checkLine(y, line)...)
	}

	if !strings.Contains(src, "@") {
		diags = append(diags, diag.Diagnostic{
			Code:     CodeNoHalt,
			Message:  "program has no @ and can only stop at the step limit",
			Severity: diag.SeverityWarning,
			Range:    diag.Cell(0, 0),
		})
	} else if l.opts.CheckReachability && !strings.Contains(src, "p") {
		if !haltReachable(g) {
			diags = append(diags, diag.Diagnostic{
				Code:     CodeHaltUnreachable,
				Message:  "no @ is reachable from the start of the program",
				Severity: diag.SeverityWarning,
				Range:    diag.Cell(0, 0),
			})
		}
	}
	return diags
}

func checkLine(y int, line string) []diag.Diagnostic {
	var diags []diag.Diagnostic
	quotes := 0
	lastQuote := 0
	for x := 0; x < len(line); x++ {
		switch c := line[x]; {
		case c == '"':
			quotes++
			lastQuote = x
		case c == '\t':
			diags = append(diags, diag.Diagnostic{
				Code:     CodeTab,
				Message:  "tab is a single no-op cell, not indentation",
				Severity: diag.SeverityInfo,
				Range:    diag.Cell(x, y),
			})
		case c >= 0x80:
			diags = append(diags, diag.Diagnostic{
				Code:     CodeNonASCII,
				Message:  "non-ASCII byte; every byte of a multi-byte character is its own cell",
				Severity: diag.SeverityWarning,
				Range:    diag.Cell(x, y),
			})
		}
	}
	if quotes%2 == 1 {
		diags = append(diags, diag.Diagnostic{
			Code:     CodeOddQuotes,
			Message:  "string mode stays on past the end of this row",
			Severity: diag.SeverityInfo,
			Range:    diag.Cell(lastQuote, y),
		})
	}
	return diags
}
