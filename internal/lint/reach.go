package lint

import (
	"funge/internal/code"
	"funge/internal/grid"
)

type walkState struct {
	x, y, dir int
	str       bool
}

var deltas = [4][2]int{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}

const (
	dirRight = iota
	dirDown
	dirLeft
	dirUp
)

// haltReachable explores every path from (0, 0) heading right, taking both
// sides of each branch and all four exits of '?'. Stack contents are ignored,
// so the answer is an over-approximation that is exact for the grid as loaded.
func haltReachable(g *grid.Grid) bool {
	seen := map[walkState]bool{}
	work := []walkState{{dir: dirRight}}

	step := func(s walkState, dir int, cells int) walkState {
		d := deltas[dir]
		x, y := g.Wrap(s.x+d[0]*cells, s.y+d[1]*cells)
		return walkState{x: x, y: y, dir: dir, str: s.str}
	}

	for len(work) > 0 {
		s := work[len(work)-1]
		work = work[:len(work)-1]
		if seen[s] {
			continue
		}
		seen[s] = true

		c := g.Get(s.x, s.y)
		if s.str {
			next := step(s, s.dir, 1)
			if c == '"' {
				next.str = false
			}
			work = append(work, next)
			continue
		}

		switch code.Decode(c) {
		case code.OpHalt:
			return true
		case code.OpString:
			next := step(s, s.dir, 1)
			next.str = true
			work = append(work, next)
		case code.OpRight:
			work = append(work, step(s, dirRight, 1))
		case code.OpLeft:
			work = append(work, step(s, dirLeft, 1))
		case code.OpUp:
			work = append(work, step(s, dirUp, 1))
		case code.OpDown:
			work = append(work, step(s, dirDown, 1))
		case code.OpRandom:
			for d := range deltas {
				work = append(work, step(s, d, 1))
			}
		case code.OpBranchH:
			work = append(work, step(s, dirRight, 1), step(s, dirLeft, 1))
		case code.OpBranchV:
			work = append(work, step(s, dirDown, 1), step(s, dirUp, 1))
		case code.OpBridge:
			work = append(work, step(s, s.dir, 2))
		default:
			work = append(work, step(s, s.dir, 1))
		}
	}
	return false
}
