package core

import "testing"

func TestBoundsContains(t *testing.T) {
	b := NewBounds(10, 5)

	tests := []struct {
		name     string
		c        Coord
		expected bool
	}{
		{"origin", C(0, 0), true},
		{"inside", C(4, 2), true},
		{"last cell", C(9, 4), true},
		{"right edge (exclusive)", C(10, 2), false},
		{"top edge (exclusive)", C(3, 5), false},
		{"negative x", C(-1, 0), false},
		{"negative y", C(0, -1), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.Contains(tc.c); got != tc.expected {
				t.Errorf("Contains(%v) = %v, expected %v", tc.c, got, tc.expected)
			}
		})
	}
}

func TestBoundsArea(t *testing.T) {
	if got := NewBounds(4, 3).Area(); got != 12 {
		t.Errorf("Area() = %d, expected 12", got)
	}
	if got := NewBounds(-1, 3).Area(); got != 0 {
		t.Errorf("Area() of degenerate bounds = %d, expected 0", got)
	}
}

func TestDirectionDelta(t *testing.T) {
	tests := []struct {
		dir      Direction
		expected Coord
	}{
		{Up, C(0, 1)},
		{Left, C(-1, 0)},
		{Down, C(0, -1)},
		{Right, C(1, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.dir.String(), func(t *testing.T) {
			if got := tc.dir.Delta(); got != tc.expected {
				t.Errorf("Delta() = %v, expected %v", got, tc.expected)
			}
			// Opposite directions cancel out
			if sum := tc.dir.Delta().Add(tc.dir.Opposite().Delta()); sum != C(0, 0) {
				t.Errorf("Delta()+Opposite().Delta() = %v, expected (0,0)", sum)
			}
		})
	}
}

func TestCanonicalOrder(t *testing.T) {
	order := CanonicalOrder()
	expected := [DirectionCount]Direction{Up, Left, Down, Right}
	if order != expected {
		t.Errorf("CanonicalOrder() = %v, expected %v", order, expected)
	}
	for i, d := range order {
		if int(d) != i {
			t.Errorf("direction %s has index %d, expected %d", d, d, i)
		}
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in       string
		expected Direction
		wantErr  bool
	}{
		{"up", Up, false},
		{"LEFT", Left, false},
		{" d ", Down, false},
		{"r", Right, false},
		{"north", 0, true},
	}

	for _, tc := range tests {
		got, err := ParseDirection(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseDirection(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDirection(%q) unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.expected {
			t.Errorf("ParseDirection(%q) = %v, expected %v", tc.in, got, tc.expected)
		}
	}
}

func TestCoordStepAndSub(t *testing.T) {
	c := C(3, 3)
	if got := c.Step(Up).Step(Right); got != C(4, 4) {
		t.Errorf("Step(Up).Step(Right) = %v, expected (4,4)", got)
	}
	if got := C(6, 4).Sub(C(5, 5)); got != C(1, -1) {
		t.Errorf("Sub() = %v, expected (1,-1)", got)
	}
}
