package core

import "testing"

func TestDirectionRotate(t *testing.T) {
	tests := []struct {
		name     string
		d        Direction
		n        int
		expected Direction
	}{
		{"left clockwise", DirLeft, 1, DirUp},
		{"up clockwise", DirUp, 1, DirRight},
		{"down clockwise wraps", DirDown, 1, DirLeft},
		{"left counter-clockwise wraps", DirLeft, -1, DirDown},
		{"half turn", DirRight, 2, DirLeft},
		{"three quarters equals counter-clockwise", DirUp, 3, DirLeft},
		{"full turn", DirDown, 4, DirDown},
		{"large negative", DirRight, -7, DirDown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.d.Rotate(tc.n); got != tc.expected {
				t.Errorf("%v.Rotate(%d) = %v, expected %v", tc.d, tc.n, got, tc.expected)
			}
		})
	}
}

func TestDirectionRelations(t *testing.T) {
	for _, d := range AllDirections {
		if d.Opposite().Opposite() != d {
			t.Errorf("%v: double opposite should be identity", d)
		}
		if d.Clockwise().CounterClockwise() != d {
			t.Errorf("%v: clockwise then counter-clockwise should be identity", d)
		}
		if !d.IsOpposite(d.Opposite()) {
			t.Errorf("%v should be opposite to %v", d, d.Opposite())
		}
		if d.IsOpposite(d.Clockwise()) {
			t.Errorf("%v should not be opposite to its perpendicular %v", d, d.Clockwise())
		}

		delta := d.Delta()
		back := d.Opposite().Delta()
		if delta.X+back.X != 0 || delta.Y+back.Y != 0 {
			t.Errorf("%v: delta %v and opposite delta %v should cancel", d, delta, back)
		}
	}
}

func TestPointStep(t *testing.T) {
	p := Pt(5, 5)

	tests := []struct {
		d        Direction
		expected Point
	}{
		{DirLeft, Pt(4, 5)},
		{DirUp, Pt(5, 4)},
		{DirRight, Pt(6, 5)},
		{DirDown, Pt(5, 6)},
	}

	for _, tc := range tests {
		if got := p.Step(tc.d); got != tc.expected {
			t.Errorf("Step(%v) = %v, expected %v", tc.d, got, tc.expected)
		}
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range AllDirections {
		parsed, ok := ParseDirection(d.String())
		if !ok || parsed != d {
			t.Errorf("ParseDirection(%q) = %v, %v", d.String(), parsed, ok)
		}
	}
	if _, ok := ParseDirection("sideways"); ok {
		t.Error("ParseDirection should reject unknown names")
	}
	if Direction(7).Valid() {
		t.Error("Direction(7) should not be valid")
	}
}

func TestAbs(t *testing.T) {
	if Abs(5) != 5 {
		t.Error("Abs(5) should be 5")
	}
	if Abs(-5) != 5 {
		t.Error("Abs(-5) should be 5")
	}
	if Abs(0) != 0 {
		t.Error("Abs(0) should be 0")
	}
}

func TestDirectionText(t *testing.T) {
	b, err := DirDown.MarshalText()
	if err != nil || string(b) != "down" {
		t.Errorf("MarshalText() = %q, %v", b, err)
	}
	if _, err := Direction(9).MarshalText(); err == nil {
		t.Error("MarshalText of invalid direction should fail")
	}

	var d Direction
	if err := d.UnmarshalText([]byte("west")); err != nil || d != DirLeft {
		t.Errorf("UnmarshalText(west) = %v, %v", d, err)
	}
	if err := d.UnmarshalText([]byte("sideways")); err == nil {
		t.Error("UnmarshalText of unknown name should fail")
	}
}
