package gfx

import (
	"fmt"
	"image/color"
	"strings"

	"funge/internal/code"
	"funge/internal/stack"
	"funge/internal/vm"
)

const (
	DefaultCellSize = 16
	glyphWidth      = 6
	lineHeight      = 16
	statusLines     = 3

	minSpeed = 1
	maxSpeed = 4096
)

var (
	background = color.RGBA{0x10, 0x12, 0x18, 0xFF}
	pointerFG  = color.RGBA{0xFF, 0xD7, 0x00, 0xFF}
	statusBG   = color.RGBA{0x20, 0x24, 0x30, 0xFF}
)

var palette = map[code.Class]color.RGBA{
	code.ClassNone:       {0x18, 0x1B, 0x24, 0xFF},
	code.ClassLiteral:    {0x2E, 0x5E, 0x8C, 0xFF},
	code.ClassArithmetic: {0x6B, 0x3F, 0x8F, 0xFF},
	code.ClassLogic:      {0x8F, 0x3F, 0x6B, 0xFF},
	code.ClassDirection:  {0x2F, 0x7D, 0x4F, 0xFF},
	code.ClassBranch:     {0x7D, 0x6B, 0x2F, 0xFF},
	code.ClassStack:      {0x3F, 0x6B, 0x8F, 0xFF},
	code.ClassIO:         {0x8C, 0x4A, 0x2E, 0xFF},
	code.ClassGrid:       {0x8C, 0x2E, 0x2E, 0xFF},
	code.ClassFlow:       {0x4F, 0x4F, 0x4F, 0xFF},
	code.ClassString:     {0x5E, 0x8C, 0x2E, 0xFF},
}

// CellColor picks the fill for a cell by the class of the opcode it decodes to.
func CellColor(c byte) color.RGBA {
	def := code.Describe(c)
	if def == nil {
		return palette[code.ClassNone]
	}
	return palette[def.Class]
}

type Options struct {
	CellSize     int
	StepsPerTick int
	Title        string
	Paused       bool
}

func (o Options) withDefaults() Options {
	if o.CellSize <= 0 {
		o.CellSize = DefaultCellSize
	}
	if o.StepsPerTick <= 0 {
		o.StepsPerTick = 1
	}
	if o.Title == "" {
		o.Title = "funge"
	}
	return o
}

// ScreenSize is the logical screen for a width x height grid plus the status bar.
func ScreenSize(width, height, cell int) (int, int) {
	return width * cell, height*cell + statusLines*lineHeight
}

// Controller holds the playback state driven by the keyboard.
type Controller struct {
	paused  bool
	pending bool
	speed   int
}

func NewController(opts Options) *Controller {
	opts = opts.withDefaults()
	return &Controller{paused: opts.Paused, speed: clampSpeed(opts.StepsPerTick)}
}

func (c *Controller) Paused() bool { return c.paused }
func (c *Controller) Speed() int   { return c.speed }

func (c *Controller) TogglePause() { c.paused = !c.paused }

// RequestStep queues a single step; it only has an effect while paused.
func (c *Controller) RequestStep() { c.pending = true }

func (c *Controller) Faster() { c.speed = clampSpeed(c.speed * 2) }
func (c *Controller) Slower() { c.speed = clampSpeed(c.speed / 2) }

// StepsThisTick returns how many steps to run in the current update and
// consumes any queued single step.
func (c *Controller) StepsThisTick() int {
	if !c.paused {
		c.pending = false
		return c.speed
	}
	if c.pending {
		c.pending = false
		return 1
	}
	return 0
}

func clampSpeed(n int) int {
	if n < minSpeed {
		return minSpeed
	}
	if n > maxSpeed {
		return maxSpeed
	}
	return n
}

// Advance runs up to n steps and returns how many ran.
func Advance(m *vm.Machine, n int) int {
	ran := 0
	for ran < n && m.Step() {
		ran++
	}
	return ran
}

// StatusText renders the lines shown under the grid.
func StatusText(st vm.State, c *Controller, output []byte, maxCols int) []string {
	state := st.Status.String()
	if c.Paused() && st.Status == vm.Running {
		state = "paused"
	}
	head := fmt.Sprintf("%s  step %d  (%d,%d) %s  %s  x%d", state, st.Steps, st.X, st.Y, st.Dir, st.Mode(), c.Speed())
	return []string{
		clip(head, maxCols),
		clip("stack: "+stack.New(st.Stack...).String(), maxCols),
		clip("out: "+lastLine(output), maxCols),
	}
}

func lastLine(out []byte) string {
	s := strings.TrimRight(string(out), "\n")
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return s
}

func clip(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}

func glyph(c byte) string {
	if c >= 0x21 && c < 0x7F {
		return string(c)
	}
	return ""
}
