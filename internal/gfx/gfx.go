// Package gfx is a windowed step-through view of a running machine.
//
// Keys: space pauses or resumes, n steps once while paused, up and down
// double or halve the steps run per frame, escape or q closes the window.
package gfx

import (
	"image/color"

	"funge/internal/vm"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tliron/commonlog"
)

type command interface {
	draw(dst *ebiten.Image)
}

type rectCmd struct {
	x, y, w, h float32
	c          color.RGBA
}

func (r rectCmd) draw(dst *ebiten.Image) {
	vector.DrawFilledRect(dst, r.x, r.y, r.w, r.h, r.c, false)
}

type textCmd struct {
	x, y int
	s    string
}

func (t textCmd) draw(dst *ebiten.Image) {
	ebitenutil.DebugPrintAt(dst, t.s, t.x, t.y)
}

// Run opens a window and drives m until the window is closed. The machine
// keeps its state afterwards, so the caller can read m.Result().
func Run(m *vm.Machine, opts Options) error {
	opts = opts.withDefaults()
	g := m.Grid()
	w, h := ScreenSize(g.Width(), g.Height(), opts.CellSize)

	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	game := &viewer{
		m:    m,
		opts: opts,
		ctl:  NewController(opts),
		log:  commonlog.GetLogger("funge.gfx"),
	}
	game.log.Infof("visualizer open: %dx%d cells", g.Width(), g.Height())
	err := ebiten.RunGame(game)
	if err == ebiten.Termination {
		err = nil
	}
	return err
}

type viewer struct {
	m        *vm.Machine
	opts     Options
	ctl      *Controller
	log      commonlog.Logger
	reported bool
}

func (v *viewer) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		v.ctl.TogglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		v.ctl.RequestStep()
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		v.ctl.Faster()
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		v.ctl.Slower()
	}

	Advance(v.m, v.ctl.StepsThisTick())
	if v.m.Status() != vm.Running && !v.reported {
		v.reported = true
		v.log.Infof("machine stopped: %s", v.m.Result().Summary())
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	for _, cmd := range v.frame() {
		cmd.draw(screen)
	}
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	g := v.m.Grid()
	return ScreenSize(g.Width(), g.Height(), v.opts.CellSize)
}

func (v *viewer) frame() []command {
	g := v.m.Grid()
	st := v.m.State()
	cell := v.opts.CellSize
	cmds := make([]command, 0, g.Width()*g.Height()*2+8)

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			c := g.Get(x, y)
			px, py := float32(x*cell), float32(y*cell)
			cmds = append(cmds, rectCmd{px, py, float32(cell - 1), float32(cell - 1), CellColor(c)})
			if x == st.X && y == st.Y {
				cmds = append(cmds, rectCmd{px, py, float32(cell - 1), float32(cell - 1), pointerFG})
			}
			if s := glyph(c); s != "" {
				cmds = append(cmds, textCmd{x*cell + (cell-glyphWidth)/2, y*cell + (cell-lineHeight)/2, s})
			}
		}
	}

	w, _ := ScreenSize(g.Width(), g.Height(), cell)
	top := g.Height() * cell
	cmds = append(cmds, rectCmd{0, float32(top), float32(w), float32(statusLines * lineHeight), statusBG})
	for i, line := range StatusText(st, v.ctl, v.m.Result().Output, w/glyphWidth) {
		cmds = append(cmds, textCmd{2, top + i*lineHeight, line})
	}
	return cmds
}
