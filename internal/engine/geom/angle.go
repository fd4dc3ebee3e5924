package geom

import "math"

// TwoPi is a full turn in radians.
const TwoPi = 2 * math.Pi

// NormalizeAngle maps a to [0, 2π).
func NormalizeAngle(a float32) float32 {
	r := math.Mod(float64(a), TwoPi)
	if r < 0 {
		r += TwoPi
	}
	return float32(r)
}

// UnwrapSpan returns end adjusted by whole turns so that start <= end < start+2π.
// Equal angles stay equal, giving an empty span.
func UnwrapSpan(start, end float32) float32 {
	delta := NormalizeAngle(end - start)
	return start + delta
}

// PointOnCircle returns the point at angle on the circle around center.
func PointOnCircle(center Vector2, radius, angle float32) Vector2 {
	sin, cos := math.Sincos(float64(angle))
	return Vector2{
		X: center.X + radius*float32(cos),
		Y: center.Y + radius*float32(sin),
	}
}
