package vm

// Direction is one of the four cardinal movement vectors.
type Direction int

const (
	Right Direction = iota
	Down
	Left
	Up
)

var directionNames = [...]string{"Right", "Down", "Left", "Up"}

func (d Direction) String() string {
	if d < Right || d > Up {
		return "Unknown"
	}
	return directionNames[d]
}

// Delta returns the unit step for d.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Up:
		return 0, -1
	}
	return 0, 0
}

// Pointer is the instruction pointer: a cell coordinate and a heading.
type Pointer struct {
	X, Y int
	Dir  Direction
}

// Turn sets the heading used by the next Advance.
func (p *Pointer) Turn(d Direction) {
	p.Dir = d
}

// Advance moves one cell along the heading, re-entering at the opposite edge
// of the same row or column when it leaves a width x height grid.
func (p *Pointer) Advance(width, height int) {
	dx, dy := p.Dir.Delta()
	p.X = (p.X + dx + width) % width
	p.Y = (p.Y + dy + height) % height
}
