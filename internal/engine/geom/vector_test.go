package geom

import (
	"math"
	"testing"
)

const eps = 1e-4

func TestVectorArithmetic(t *testing.T) {
	a := V(1, 2)
	b := V(3, -4)

	if got := a.Add(b); got != V(4, -2) {
		t.Errorf("Add() = %v, want (4,-2)", got)
	}
	if got := a.Sub(b); got != V(-2, 6) {
		t.Errorf("Sub() = %v, want (-2,6)", got)
	}
	if got := a.Scale(2); got != V(2, 4) {
		t.Errorf("Scale() = %v, want (2,4)", got)
	}
	if got := V(0, 0).Distance(V(3, 4)); got != 5 {
		t.Errorf("Distance() = %v, want 5", got)
	}
}

func TestDistanceToSegment(t *testing.T) {
	a, b := V(0, 0), V(10, 0)
	tests := []struct {
		name string
		p    Vector2
		want float32
	}{
		{"above middle", V(5, 3), 3},
		{"on segment", V(2, 0), 0},
		{"beyond end", V(13, 4), 5},
		{"before start", V(-3, 0), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.DistanceToSegment(a, b); math.Abs(float64(got-tt.want)) > eps {
				t.Errorf("DistanceToSegment() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDistanceToDegenerateSegment(t *testing.T) {
	if got := V(3, 4).DistanceToSegment(V(0, 0), V(0, 0)); got != 5 {
		t.Errorf("DistanceToSegment() = %v, want 5", got)
	}
}

func TestRotateAround(t *testing.T) {
	got := V(10, 0).RotateAround(V(0, 0), math.Pi/2)
	if !got.ApproxEqual(V(0, 10), eps) {
		t.Errorf("RotateAround() = %v, want (0,10)", got)
	}
	back := got.RotateAround(V(0, 0), -math.Pi/2)
	if !back.ApproxEqual(V(10, 0), eps) {
		t.Errorf("inverse rotation = %v, want (10,0)", back)
	}
}

func TestSegmentIntersection(t *testing.T) {
	p, ok := SegmentIntersection(V(0, 0), V(10, 10), V(0, 10), V(10, 0))
	if !ok || !p.ApproxEqual(V(5, 5), eps) {
		t.Errorf("SegmentIntersection() = %v, %v; want (5,5), true", p, ok)
	}

	if _, ok := SegmentIntersection(V(0, 0), V(10, 0), V(0, 1), V(10, 1)); ok {
		t.Error("parallel segments should not intersect")
	}
	if _, ok := SegmentIntersection(V(0, 0), V(1, 0), V(5, -1), V(5, 1)); ok {
		t.Error("disjoint segments should not intersect")
	}
}

func TestUnwrapSpan(t *testing.T) {
	tests := []struct {
		start, end, want float32
	}{
		{0, math.Pi / 2, math.Pi / 2},
		{math.Pi / 2, 0, 2 * math.Pi},
		{-math.Pi / 2, math.Pi / 2, math.Pi / 2},
		{1, 1, 1},
	}
	for _, tt := range tests {
		got := UnwrapSpan(tt.start, tt.end)
		if math.Abs(float64(got-tt.want)) > eps {
			t.Errorf("UnwrapSpan(%v, %v) = %v, want %v", tt.start, tt.end, got, tt.want)
		}
		if got < tt.start {
			t.Errorf("UnwrapSpan(%v, %v) = %v is below start", tt.start, tt.end, got)
		}
	}
}

func TestEnvelope(t *testing.T) {
	r := Envelope([]Vector2{V(3, -1), V(-2, 4), V(0, 0)})
	if r.Min != V(-2, -1) || r.Max != V(3, 4) {
		t.Errorf("Envelope() = %v", r)
	}
	if !r.Contains(V(0, 0)) || r.Contains(V(5, 5)) {
		t.Error("Contains() mismatch")
	}
}
