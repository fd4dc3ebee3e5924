package entity

import (
	"github.com/Hakkology/MuginCAD-sub001/internal/engine/geom"
)

// Kind identifies an entity variant.
type Kind uint8

const (
	// KindLine is a straight segment.
	KindLine Kind = iota
	// KindCircle is a full circle.
	KindCircle
	// KindRectangle is an axis-aligned rectangle.
	KindRectangle
	// KindArc is a counter-clockwise circular arc.
	KindArc
	// KindText is a text label anchored at a point.
	KindText
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindCircle:
		return "circle"
	case KindRectangle:
		return "rectangle"
	case KindArc:
		return "arc"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Shape is the closed set of geometric variants an Entity can hold.
// Only the types in this package implement it.
type Shape interface {
	Kind() Kind
	isShape()
}

// Line is an open two-point segment.
type Line struct {
	Start, End geom.Vector2
}

// Circle is a closed circle.
type Circle struct {
	Center geom.Vector2
	Radius float32
	Filled bool
}

// Rectangle is a closed axis-aligned rectangle with Min <= Max.
type Rectangle struct {
	Min, Max geom.Vector2
	Filled   bool
}

// Arc is an open circular arc traversed counter-clockwise from StartAngle
// to EndAngle. Angles are in radians and EndAngle >= StartAngle.
type Arc struct {
	Center     geom.Vector2
	Radius     float32
	StartAngle float32
	EndAngle   float32
	Filled     bool
}

// TextStyle holds presentation attributes for Text.
type TextStyle struct {
	FontSize float32
	Content  string
}

// Text is a label. Its geometry is the single Position point.
type Text struct {
	Position geom.Vector2
	Anchors  []geom.Vector2
	Style    TextStyle
}

func (Line) Kind() Kind      { return KindLine }
func (Circle) Kind() Kind    { return KindCircle }
func (Rectangle) Kind() Kind { return KindRectangle }
func (Arc) Kind() Kind       { return KindArc }
func (Text) Kind() Kind      { return KindText }

func (Line) isShape()      {}
func (Circle) isShape()    {}
func (Rectangle) isShape() {}
func (Arc) isShape()       {}
func (Text) isShape()      {}

// NewRectangle returns the rectangle spanned by two opposite corners.
func NewRectangle(a, b geom.Vector2, filled bool) Rectangle {
	r := geom.RectFromPoints(a, b)
	return Rectangle{Min: r.Min, Max: r.Max, Filled: filled}
}

// NewArc returns an arc whose end angle is unwrapped to lie at or after start.
func NewArc(center geom.Vector2, radius, start, end float32) Arc {
	return Arc{
		Center:     center,
		Radius:     radius,
		StartAngle: start,
		EndAngle:   geom.UnwrapSpan(start, end),
	}
}

// Span returns the swept angle of the arc.
func (a Arc) Span() float32 {
	return a.EndAngle - a.StartAngle
}

// StartPoint returns the point at StartAngle.
func (a Arc) StartPoint() geom.Vector2 {
	return geom.PointOnCircle(a.Center, a.Radius, a.StartAngle)
}

// EndPoint returns the point at EndAngle.
func (a Arc) EndPoint() geom.Vector2 {
	return geom.PointOnCircle(a.Center, a.Radius, a.EndAngle)
}

func (t Text) clone() Text {
	if t.Anchors != nil {
		anchors := make([]geom.Vector2, len(t.Anchors))
		copy(anchors, t.Anchors)
		t.Anchors = anchors
	}
	return t
}
