package entity

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/Hakkology/MuginCAD-sub001/internal/engine/geom"
)

// Tessellation density for curved variants.
const (
	CircleSegments = 32
	ArcSegments    = 24
)

// Entity is one geometric primitive in the scene.
//
// ID is assigned once at creation and survives translation, rotation,
// scaling, and undo/redo. Clones made for copy operations get a fresh ID.
type Entity struct {
	ID    uuid.UUID
	Shape Shape
}

// New wraps a shape in an entity with a fresh ID.
func New(s Shape) Entity {
	return Entity{ID: uuid.New(), Shape: s}
}

// Kind returns the variant of the entity's shape.
func (e Entity) Kind() Kind {
	return e.Shape.Kind()
}

// Clone returns a deep copy that keeps the same ID.
func (e Entity) Clone() Entity {
	if t, ok := e.Shape.(Text); ok {
		e.Shape = t.clone()
	}
	return e
}

// Duplicate returns a deep copy with a new ID.
func (e Entity) Duplicate() Entity {
	c := e.Clone()
	c.ID = uuid.New()
	return c
}

// String returns a short description such as "line 1a2b3c4d".
func (e Entity) String() string {
	return fmt.Sprintf("%s %s", e.Kind(), e.ID.String()[:8])
}

// HitTest reports whether pos is within tolerance of the entity.
//
// Circles use a ring test regardless of Filled, so interior clicks miss.
// Rectangles use containment of [Min-tolerance, Max+tolerance] rather than
// the bare [Min, Max] box, so a click just outside an edge still picks the
// rectangle the same way a near miss picks a line.
func (e Entity) HitTest(pos geom.Vector2, tolerance float32) bool {
	switch s := e.Shape.(type) {
	case Line:
		return pos.DistanceToSegment(s.Start, s.End) <= tolerance
	case Circle:
		return abs32(pos.Distance(s.Center)-s.Radius) <= tolerance
	case Rectangle:
		return geom.Rect{Min: s.Min, Max: s.Max}.Expand(tolerance).Contains(pos)
	case Arc:
		return polylineDistance(pos, arcPolyline(s)) <= tolerance
	case Text:
		return pos.Distance(s.Position) <= tolerance
	default:
		panic(unknownShape(e.Shape))
	}
}

// Center returns the geometric center of the entity.
func (e Entity) Center() geom.Vector2 {
	switch s := e.Shape.(type) {
	case Line:
		return s.Start.Midpoint(s.End)
	case Circle:
		return s.Center
	case Rectangle:
		return s.Min.Midpoint(s.Max)
	case Arc:
		return s.Center
	case Text:
		return s.Position
	default:
		panic(unknownShape(e.Shape))
	}
}

// BoundingBox returns the axis-aligned bounds of the entity.
// Arcs report the box of their full circle.
func (e Entity) BoundingBox() geom.Rect {
	switch s := e.Shape.(type) {
	case Line:
		return geom.RectFromPoints(s.Start, s.End)
	case Circle:
		return circleBox(s.Center, s.Radius)
	case Rectangle:
		return geom.Rect{Min: s.Min, Max: s.Max}
	case Arc:
		return circleBox(s.Center, s.Radius)
	case Text:
		return geom.Rect{Min: s.Position, Max: s.Position}
	default:
		panic(unknownShape(e.Shape))
	}
}

// Translate moves the entity by delta.
func (e *Entity) Translate(delta geom.Vector2) {
	switch s := e.Shape.(type) {
	case Line:
		s.Start = s.Start.Add(delta)
		s.End = s.End.Add(delta)
		e.Shape = s
	case Circle:
		s.Center = s.Center.Add(delta)
		e.Shape = s
	case Rectangle:
		s.Min = s.Min.Add(delta)
		s.Max = s.Max.Add(delta)
		e.Shape = s
	case Arc:
		s.Center = s.Center.Add(delta)
		e.Shape = s
	case Text:
		s = s.clone()
		s.Position = s.Position.Add(delta)
		for i := range s.Anchors {
			s.Anchors[i] = s.Anchors[i].Add(delta)
		}
		e.Shape = s
	default:
		panic(unknownShape(e.Shape))
	}
}

// Rotate rotates the entity counter-clockwise by angle radians around pivot.
//
// A rectangle is replaced by the axis-aligned envelope of its four rotated
// corners, so rotating it is not reversible.
func (e *Entity) Rotate(pivot geom.Vector2, angle float32) {
	switch s := e.Shape.(type) {
	case Line:
		s.Start = s.Start.RotateAround(pivot, angle)
		s.End = s.End.RotateAround(pivot, angle)
		e.Shape = s
	case Circle:
		s.Center = s.Center.RotateAround(pivot, angle)
		e.Shape = s
	case Rectangle:
		corners := geom.Rect{Min: s.Min, Max: s.Max}.Corners()
		rotated := make([]geom.Vector2, len(corners))
		for i, c := range corners {
			rotated[i] = c.RotateAround(pivot, angle)
		}
		env := geom.Envelope(rotated)
		s.Min, s.Max = env.Min, env.Max
		e.Shape = s
	case Arc:
		s.Center = s.Center.RotateAround(pivot, angle)
		s.StartAngle += angle
		s.EndAngle += angle
		e.Shape = s
	case Text:
		s = s.clone()
		s.Position = s.Position.RotateAround(pivot, angle)
		for i := range s.Anchors {
			s.Anchors[i] = s.Anchors[i].RotateAround(pivot, angle)
		}
		e.Shape = s
	default:
		panic(unknownShape(e.Shape))
	}
}

// Scale scales the entity by factor away from base.
//
// Radii and font sizes scale by |factor|. A negative factor mirrors the
// entity through base; arcs then turn by half a revolution.
func (e *Entity) Scale(base geom.Vector2, factor float32) {
	mag := abs32(factor)
	switch s := e.Shape.(type) {
	case Line:
		s.Start = s.Start.ScaleFrom(base, factor)
		s.End = s.End.ScaleFrom(base, factor)
		e.Shape = s
	case Circle:
		s.Center = s.Center.ScaleFrom(base, factor)
		s.Radius *= mag
		e.Shape = s
	case Rectangle:
		r := geom.RectFromPoints(s.Min.ScaleFrom(base, factor), s.Max.ScaleFrom(base, factor))
		s.Min, s.Max = r.Min, r.Max
		e.Shape = s
	case Arc:
		s.Center = s.Center.ScaleFrom(base, factor)
		s.Radius *= mag
		if factor < 0 {
			span := s.Span()
			s.StartAngle = geom.NormalizeAngle(s.StartAngle + math.Pi)
			s.EndAngle = s.StartAngle + span
		}
		e.Shape = s
	case Text:
		s = s.clone()
		s.Position = s.Position.ScaleFrom(base, factor)
		for i := range s.Anchors {
			s.Anchors[i] = s.Anchors[i].ScaleFrom(base, factor)
		}
		s.Style.FontSize *= mag
		e.Shape = s
	default:
		panic(unknownShape(e.Shape))
	}
}

// AsPolyline returns the piecewise-linear approximation used for picking,
// snapping, and export. Closed variants repeat their first point at the end.
func (e Entity) AsPolyline() []geom.Vector2 {
	switch s := e.Shape.(type) {
	case Line:
		return []geom.Vector2{s.Start, s.End}
	case Circle:
		pts := make([]geom.Vector2, CircleSegments+1)
		for i := 0; i < CircleSegments; i++ {
			a := float32(i) * geom.TwoPi / CircleSegments
			pts[i] = geom.PointOnCircle(s.Center, s.Radius, a)
		}
		pts[CircleSegments] = pts[0]
		return pts
	case Rectangle:
		c := geom.Rect{Min: s.Min, Max: s.Max}.Corners()
		return []geom.Vector2{c[0], c[1], c[2], c[3], c[0]}
	case Arc:
		return arcPolyline(s)
	case Text:
		return []geom.Vector2{s.Position}
	default:
		panic(unknownShape(e.Shape))
	}
}

// IsClosed reports whether the outline of the entity is a closed loop.
func (e Entity) IsClosed() bool {
	switch e.Shape.(type) {
	case Circle, Rectangle:
		return true
	case Line, Arc, Text:
		return false
	default:
		panic(unknownShape(e.Shape))
	}
}

// IsFilled reports whether the entity is drawn filled.
func (e Entity) IsFilled() bool {
	switch s := e.Shape.(type) {
	case Circle:
		return s.Filled
	case Rectangle:
		return s.Filled
	case Arc:
		return s.Filled
	case Line, Text:
		return false
	default:
		panic(unknownShape(e.Shape))
	}
}

// Endpoints returns the points the snap engine treats as endpoints:
// segment ends, rectangle corners, arc ends and the text insertion point.
func (e Entity) Endpoints() []geom.Vector2 {
	switch s := e.Shape.(type) {
	case Line:
		return []geom.Vector2{s.Start, s.End}
	case Circle:
		return nil
	case Rectangle:
		c := geom.Rect{Min: s.Min, Max: s.Max}.Corners()
		return c[:]
	case Arc:
		return []geom.Vector2{s.StartPoint(), s.EndPoint()}
	case Text:
		return []geom.Vector2{s.Position}
	default:
		panic(unknownShape(e.Shape))
	}
}

// Midpoints returns segment and edge midpoints, and the middle of an arc.
func (e Entity) Midpoints() []geom.Vector2 {
	switch s := e.Shape.(type) {
	case Line:
		return []geom.Vector2{s.Start.Midpoint(s.End)}
	case Circle, Text:
		return nil
	case Rectangle:
		c := geom.Rect{Min: s.Min, Max: s.Max}.Corners()
		return []geom.Vector2{
			c[0].Midpoint(c[1]),
			c[1].Midpoint(c[2]),
			c[2].Midpoint(c[3]),
			c[3].Midpoint(c[0]),
		}
	case Arc:
		mid := s.StartAngle + s.Span()/2
		return []geom.Vector2{geom.PointOnCircle(s.Center, s.Radius, mid)}
	default:
		panic(unknownShape(e.Shape))
	}
}

// Centers returns the snap centers of circles and arcs.
func (e Entity) Centers() []geom.Vector2 {
	switch s := e.Shape.(type) {
	case Circle:
		return []geom.Vector2{s.Center}
	case Arc:
		return []geom.Vector2{s.Center}
	case Line, Rectangle, Text:
		return nil
	default:
		panic(unknownShape(e.Shape))
	}
}

func arcPolyline(a Arc) []geom.Vector2 {
	pts := make([]geom.Vector2, ArcSegments+1)
	step := a.Span() / ArcSegments
	for i := 0; i <= ArcSegments; i++ {
		pts[i] = geom.PointOnCircle(a.Center, a.Radius, a.StartAngle+float32(i)*step)
	}
	return pts
}

func polylineDistance(p geom.Vector2, pts []geom.Vector2) float32 {
	if len(pts) == 1 {
		return p.Distance(pts[0])
	}
	best := float32(math.MaxFloat32)
	for i := 1; i < len(pts); i++ {
		if d := p.DistanceToSegment(pts[i-1], pts[i]); d < best {
			best = d
		}
	}
	return best
}

func circleBox(c geom.Vector2, r float32) geom.Rect {
	return geom.Rect{
		Min: geom.Vector2{X: c.X - r, Y: c.Y - r},
		Max: geom.Vector2{X: c.X + r, Y: c.Y + r},
	}
}

func unknownShape(s Shape) string {
	return fmt.Sprintf("entity: unknown shape %T", s)
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
