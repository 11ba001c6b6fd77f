package vm

import "funge/internal/code"

// execute applies op, decoded from cell c. It returns false only for Halt.
func (m *Machine) execute(op code.Opcode, c byte) bool {
	s := m.stack

	switch op {
	case code.OpNop:

	case code.OpDigit:
		s.Push(int64(c - '0'))

	case code.OpAdd:
		a, b := s.Pop(), s.Pop()
		s.Push(b + a)
	case code.OpSub:
		a, b := s.Pop(), s.Pop()
		s.Push(b - a)
	case code.OpMul:
		a, b := s.Pop(), s.Pop()
		s.Push(b * a)
	case code.OpDiv:
		a, b := s.Pop(), s.Pop()
		if a == 0 {
			s.Push(0)
		} else {
			s.Push(b / a)
		}
	case code.OpMod:
		a, b := s.Pop(), s.Pop()
		if a == 0 {
			s.Push(0)
		} else {
			s.Push(b % a)
		}

	case code.OpNot:
		if s.Pop() == 0 {
			s.Push(1)
		} else {
			s.Push(0)
		}
	case code.OpGreater:
		a, b := s.Pop(), s.Pop()
		if b > a {
			s.Push(1)
		} else {
			s.Push(0)
		}

	case code.OpRight:
		m.ip.Turn(Right)
	case code.OpLeft:
		m.ip.Turn(Left)
	case code.OpUp:
		m.ip.Turn(Up)
	case code.OpDown:
		m.ip.Turn(Down)
	case code.OpRandom:
		m.ip.Turn(Direction(m.rand.Intn(4) & 3))

	case code.OpBranchH:
		if s.Pop() == 0 {
			m.ip.Turn(Right)
		} else {
			m.ip.Turn(Left)
		}
	case code.OpBranchV:
		if s.Pop() == 0 {
			m.ip.Turn(Down)
		} else {
			m.ip.Turn(Up)
		}

	case code.OpString:
		m.stringMode = true

	case code.OpDup:
		s.Dup()
	case code.OpSwap:
		s.Swap()
	case code.OpDiscard:
		s.Pop()

	case code.OpOutNumber:
		m.io.WriteNumber(s.Pop())
	case code.OpOutChar:
		m.io.WriteChar(s.Pop())
	case code.OpInNumber:
		s.Push(m.io.ReadNumber())
	case code.OpInChar:
		s.Push(m.io.ReadChar())

	case code.OpBridge:
		m.advance()

	case code.OpGet:
		y, x := s.Pop(), s.Pop()
		cx, cy := m.cellAt(x, y)
		s.Push(int64(m.grid.Get(cx, cy)))
	case code.OpPut:
		y, x, v := s.Pop(), s.Pop(), s.Pop()
		cx, cy := m.cellAt(x, y)
		m.grid.Set(cx, cy, byte(v))

	case code.OpHalt:
		return false
	}
	return true
}

// cellAt wraps stack-sized coordinates onto the grid.
func (m *Machine) cellAt(x, y int64) (int, int) {
	w, h := int64(m.grid.Width()), int64(m.grid.Height())
	return int((x%w + w) % w), int((y%h + h) % h)
}
