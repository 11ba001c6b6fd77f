package stack

import (
	"fmt"
	"strings"
)

// Stack is a LIFO of int64 values. Popping an empty stack yields 0.
type Stack struct {
	values []int64
}

func New(values ...int64) *Stack {
	return &Stack{values: append([]int64(nil), values...)}
}

func (s *Stack) Push(v int64) {
	s.values = append(s.values, v)
}

func (s *Stack) Pop() int64 {
	n := len(s.values)
	if n == 0 {
		return 0
	}
	v := s.values[n-1]
	s.values = s.values[:n-1]
	return v
}

// Peek returns the top value without removing it, or 0 when empty.
func (s *Stack) Peek() int64 {
	if len(s.values) == 0 {
		return 0
	}
	return s.values[len(s.values)-1]
}

// Dup pops (0 on empty) and pushes the value twice.
func (s *Stack) Dup() {
	v := s.Pop()
	s.Push(v)
	s.Push(v)
}

// Swap exchanges the top two values, treating missing ones as 0.
func (s *Stack) Swap() {
	a := s.Pop()
	b := s.Pop()
	s.Push(a)
	s.Push(b)
}

func (s *Stack) Len() int {
	return len(s.values)
}

// Values returns a copy, bottom first.
func (s *Stack) Values() []int64 {
	return append([]int64{}, s.values...)
}

// FormatValue renders v as hex, followed by the ASCII character for printable values.
func FormatValue(v int64) string {
	hex := fmt.Sprintf("0x%02X", uint64(v))
	if v >= 0x20 && v <= 0x7e {
		return fmt.Sprintf("%s ('%c')", hex, rune(v))
	}
	return hex
}

func (s *Stack) String() string {
	parts := make([]string, len(s.values))
	for i, v := range s.values {
		parts[i] = FormatValue(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
