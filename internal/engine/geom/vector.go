package geom

import "math"

// Vector2 represents a 2D point or vector.
type Vector2 struct {
	X, Y float32
}

// V is a convenience function to create a Vector2.
func V(x, y float32) Vector2 {
	return Vector2{X: x, Y: y}
}

// Add returns the sum of two vectors.
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns the difference of two vectors.
func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Neg returns the vector pointing the opposite way.
func (v Vector2) Neg() Vector2 {
	return Vector2{X: -v.X, Y: -v.Y}
}

// Scale returns the vector multiplied by a scalar.
func (v Vector2) Scale(s float32) Vector2 {
	return Vector2{X: v.X * s, Y: v.Y * s}
}

// Dot returns the dot product of two vectors.
func (v Vector2) Dot(o Vector2) float32 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z component of the 3D cross product.
func (v Vector2) Cross(o Vector2) float32 {
	return v.X*o.Y - v.Y*o.X
}

// Length returns the length of the vector.
func (v Vector2) Length() float32 {
	return float32(math.Hypot(float64(v.X), float64(v.Y)))
}

// Distance returns the distance between two points.
func (v Vector2) Distance(o Vector2) float32 {
	return v.Sub(o).Length()
}

// Angle returns the direction of the vector in radians, in (-π, π].
func (v Vector2) Angle() float32 {
	return float32(math.Atan2(float64(v.Y), float64(v.X)))
}

// Lerp interpolates between v (t=0) and o (t=1).
func (v Vector2) Lerp(o Vector2, t float32) Vector2 {
	return Vector2{
		X: v.X + (o.X-v.X)*t,
		Y: v.Y + (o.Y-v.Y)*t,
	}
}

// Midpoint returns the point halfway between v and o.
func (v Vector2) Midpoint(o Vector2) Vector2 {
	return v.Lerp(o, 0.5)
}

// RotateAround rotates v by angle radians counter-clockwise around pivot.
func (v Vector2) RotateAround(pivot Vector2, angle float32) Vector2 {
	sin, cos := math.Sincos(float64(angle))
	dx := float64(v.X - pivot.X)
	dy := float64(v.Y - pivot.Y)
	return Vector2{
		X: pivot.X + float32(dx*cos-dy*sin),
		Y: pivot.Y + float32(dx*sin+dy*cos),
	}
}

// ScaleFrom scales v away from base by factor.
func (v Vector2) ScaleFrom(base Vector2, factor float32) Vector2 {
	return Vector2{
		X: base.X + (v.X-base.X)*factor,
		Y: base.Y + (v.Y-base.Y)*factor,
	}
}

// Min returns the component-wise minimum of two vectors.
func (v Vector2) Min(o Vector2) Vector2 {
	return Vector2{X: min(v.X, o.X), Y: min(v.Y, o.Y)}
}

// Max returns the component-wise maximum of two vectors.
func (v Vector2) Max(o Vector2) Vector2 {
	return Vector2{X: max(v.X, o.X), Y: max(v.Y, o.Y)}
}

// ApproxEqual reports whether both components differ by at most eps.
func (v Vector2) ApproxEqual(o Vector2, eps float32) bool {
	return abs32(v.X-o.X) <= eps && abs32(v.Y-o.Y) <= eps
}

// IsFinite reports whether neither component is NaN or infinite.
func (v Vector2) IsFinite() bool {
	return !math.IsNaN(float64(v.X)) && !math.IsInf(float64(v.X), 0) &&
		!math.IsNaN(float64(v.Y)) && !math.IsInf(float64(v.Y), 0)
}

// DistanceToSegment returns the distance from v to the segment a-b.
func (v Vector2) DistanceToSegment(a, b Vector2) float32 {
	return v.Distance(ClosestOnSegment(v, a, b))
}

// ClosestOnSegment returns the point of segment a-b nearest to p.
func ClosestOnSegment(p, a, b Vector2) Vector2 {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return a
	}
	t := p.Sub(a).Dot(ab) / lenSq
	switch {
	case t < 0:
		t = 0
	case t > 1:
		t = 1
	}
	return a.Add(ab.Scale(t))
}

// SegmentIntersection returns the intersection point of segments p1-p2 and
// q1-q2. Parallel and collinear segments report no intersection.
func SegmentIntersection(p1, p2, q1, q2 Vector2) (Vector2, bool) {
	r := p2.Sub(p1)
	s := q2.Sub(q1)
	denom := r.Cross(s)
	if abs32(denom) < 1e-9 {
		return Vector2{}, false
	}
	qp := q1.Sub(p1)
	t := qp.Cross(s) / denom
	u := qp.Cross(r) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Vector2{}, false
	}
	return p1.Add(r.Scale(t)), true
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
