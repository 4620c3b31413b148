package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)
	if r.Right() != 25 || r.Bottom() != 25 {
		t.Errorf("edges = (%d, %d), expected (25, 25)", r.Right(), r.Bottom())
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestRectFIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     RectF
		expected bool
	}{
		{"overlapping", RectF{0, 0, 10, 10}, RectF{5, 5, 10, 10}, true},
		{"touching edge", RectF{0, 0, 10, 10}, RectF{10, 0, 10, 10}, false},
		{"fractional overlap", RectF{0, 0, 10, 10}, RectF{9.5, 9.5, 1, 1}, true},
		{"zero height never hits", RectF{0, 0, 10, 10}, RectF{2, 2, 5, 0}, false},
		{"far apart", RectF{0, 0, 1, 1}, RectF{100, 100, 1, 1}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestCenteredRectF(t *testing.T) {
	r := CenteredRectF(100, 50, 60, 20)
	if r.X != 70 || r.Y != 40 || r.Right() != 130 || r.Bottom() != 60 {
		t.Errorf("CenteredRectF() = %+v", r)
	}
}
