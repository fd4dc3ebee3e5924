// Package entity defines the geometric primitives of a drawing.
//
// An Entity wraps exactly one Shape variant: Line, Circle, Rectangle, Arc or
// Text. The variant set is closed; every geometric operation (hit testing,
// bounds, transforms, tessellation, snap features) is an exhaustive type
// switch over it, so adding a variant means extending every switch in
// entity.go.
//
// Transforms mutate the entity in place:
//
//	e := entity.New(entity.Line{Start: geom.V(0, 0), End: geom.V(10, 0)})
//	e.Rotate(geom.V(0, 0), math.Pi/2)
//	pts := e.AsPolyline() // [(0,0) (0,10)]
//
// Curved variants are approximated by fixed-density polylines: 32 segments
// for circles and 24 for arcs, independent of radius.
package entity
