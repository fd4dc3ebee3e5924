package geom

// Rect is an axis-aligned box given by its minimum and maximum corners.
type Rect struct {
	Min, Max Vector2
}

// RectFromPoints returns the box spanned by two opposite corners in any order.
func RectFromPoints(a, b Vector2) Rect {
	return Rect{Min: a.Min(b), Max: a.Max(b)}
}

// Width returns the horizontal extent.
func (r Rect) Width() float32 { return r.Max.X - r.Min.X }

// Height returns the vertical extent.
func (r Rect) Height() float32 { return r.Max.Y - r.Min.Y }

// Center returns the center of the box.
func (r Rect) Center() Vector2 { return r.Min.Midpoint(r.Max) }

// Union returns the smallest box containing both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{Min: r.Min.Min(o.Min), Max: r.Max.Max(o.Max)}
}

// Expand grows the box by d on every side.
func (r Rect) Expand(d float32) Rect {
	return Rect{
		Min: Vector2{X: r.Min.X - d, Y: r.Min.Y - d},
		Max: Vector2{X: r.Max.X + d, Y: r.Max.Y + d},
	}
}

// Contains reports whether p lies inside or on the box.
func (r Rect) Contains(p Vector2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Corners returns the four corners counter-clockwise from Min.
func (r Rect) Corners() [4]Vector2 {
	return [4]Vector2{
		r.Min,
		{X: r.Max.X, Y: r.Min.Y},
		r.Max,
		{X: r.Min.X, Y: r.Max.Y},
	}
}

// Envelope returns the axis-aligned box around pts.
// An empty slice yields the zero Rect.
func Envelope(pts []Vector2) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		r.Min = r.Min.Min(p)
		r.Max = r.Max.Max(p)
	}
	return r
}
