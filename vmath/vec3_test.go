package vmath

import "testing"

func TestV3AddSub(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{0.5, -1, 4}

	if got := V3Sub(V3Add(a, b), b); got != a {
		t.Errorf("Expected %v, got %v", a, got)
	}
}

func TestV3LerpEndpoints(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{2, -4, 8}

	if got := V3Lerp(a, b, 0); got != a {
		t.Errorf("Expected start %v, got %v", a, got)
	}
	if got := V3Lerp(a, b, 1); got != b {
		t.Errorf("Expected end %v, got %v", b, got)
	}
	if got := V3Lerp(a, b, 0.5); got != (Vec3{1, -2, 4}) {
		t.Errorf("Expected midpoint, got %v", got)
	}
}

func TestV3Mag(t *testing.T) {
	if got := V3Mag(Vec3{3, 4, 0}); got != 5 {
		t.Errorf("Expected 5, got %f", got)
	}
	if got := V3Mag(V3Scale(Vec3{3, 4, 0}, 2)); got != 10 {
		t.Errorf("Expected 10, got %f", got)
	}
}

func TestClamp(t *testing.T) {
	cases := []struct{ v, want float64 }{
		{-1, 0},
		{0.25, 0.25},
		{3, 1},
	}
	for _, c := range cases {
		if got := Clamp(c.v, 0, 1); got != c.want {
			t.Errorf("Clamp(%v): expected %v, got %v", c.v, c.want, got)
		}
	}
}
