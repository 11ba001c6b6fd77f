package vm

import "testing"

func TestPointerAdvanceWraps(t *testing.T) {
	tests := []struct {
		start Pointer
		wantX int
		wantY int
	}{
		{Pointer{X: 0, Y: 1, Dir: Left}, 3, 1},
		{Pointer{X: 3, Y: 1, Dir: Right}, 0, 1},
		{Pointer{X: 2, Y: 0, Dir: Up}, 2, 2},
		{Pointer{X: 2, Y: 2, Dir: Down}, 2, 0},
		{Pointer{X: 1, Y: 1, Dir: Right}, 2, 1},
	}
	for _, tt := range tests {
		p := tt.start
		p.Advance(4, 3)
		if p.X != tt.wantX || p.Y != tt.wantY {
			t.Fatalf("%s from (%d, %d): expected (%d, %d), got (%d, %d)",
				tt.start.Dir, tt.start.X, tt.start.Y, tt.wantX, tt.wantY, p.X, p.Y)
		}
	}
}

func TestTurnTakesEffectOnAdvance(t *testing.T) {
	p := Pointer{Dir: Right}
	p.Turn(Down)
	if p.X != 0 || p.Y != 0 {
		t.Fatalf("Turn must not move the pointer")
	}
	p.Advance(2, 2)
	if p.X != 0 || p.Y != 1 {
		t.Fatalf("expected (0, 1), got (%d, %d)", p.X, p.Y)
	}
}

func TestDirectionString(t *testing.T) {
	names := map[Direction]string{Right: "Right", Down: "Down", Left: "Left", Up: "Up", Direction(9): "Unknown"}
	for d, want := range names {
		if d.String() != want {
			t.Fatalf("expected %q, got %q", want, d.String())
		}
	}
}
