package stack

import (
	"reflect"
	"testing"
)

func TestPopEmptyYieldsZero(t *testing.T) {
	s := New()
	for i := 0; i < 3; i++ {
		if v := s.Pop(); v != 0 {
			t.Fatalf("expected 0 on underflow, got %d", v)
		}
	}
	if s.Len() != 0 {
		t.Fatalf("underflow must not change length")
	}
}

func TestPushPopOrder(t *testing.T) {
	s := New()
	s.Push(1)
	s.Push(2)
	if got := s.Values(); !reflect.DeepEqual(got, []int64{1, 2}) {
		t.Fatalf("expected [1 2], got %v", got)
	}
	if s.Peek() != 2 {
		t.Fatalf("expected peek 2, got %d", s.Peek())
	}
	if s.Pop() != 2 || s.Pop() != 1 {
		t.Fatalf("expected LIFO order")
	}
}

func TestDupAndSwap(t *testing.T) {
	tests := []struct {
		name string
		in   []int64
		op   func(*Stack)
		want []int64
	}{
		{"dup", []int64{7, 3}, (*Stack).Dup, []int64{7, 3, 3}},
		{"dup empty", nil, (*Stack).Dup, []int64{0, 0}},
		{"swap", []int64{7, 3, 6}, (*Stack).Swap, []int64{7, 6, 3}},
		{"swap one", []int64{5}, (*Stack).Swap, []int64{5, 0}},
		{"swap empty", nil, (*Stack).Swap, []int64{0, 0}},
	}
	for _, tt := range tests {
		s := New(tt.in...)
		tt.op(s)
		if got := s.Values(); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestValuesIsCopy(t *testing.T) {
	s := New(1)
	v := s.Values()
	v[0] = 9
	if s.Peek() != 1 {
		t.Fatalf("Values must return a copy")
	}
}

func TestString(t *testing.T) {
	s := New(0x41, 10, -1)
	want := "[0x41 ('A'), 0x0A, 0xFFFFFFFFFFFFFFFF]"
	if got := s.String(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if got := New().String(); got != "[]" {
		t.Fatalf("expected [], got %q", got)
	}
}
