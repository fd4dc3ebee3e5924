// Package snap corrects raw cursor positions to geometrically significant
// points of the drawing.
//
// Candidates are grouped into categories that are tried in a fixed order:
// endpoint, midpoint, center, intersection, axis, grid. The first category
// with any candidate within tolerance wins, and inside a category the closest
// candidate wins. If nothing qualifies the cursor is returned unchanged with
// KindNone.
//
// Tolerance is in scene units, not screen pixels, so zooming a view does not
// change which point a click snaps to.
package snap

import (
	"math"

	"github.com/Hakkology/MuginCAD-sub001/internal/engine/entity"
	"github.com/Hakkology/MuginCAD-sub001/internal/engine/geom"
)

// Kind classifies a snap result.
type Kind uint8

const (
	// KindNone means the cursor was not corrected.
	KindNone Kind = iota
	// KindEndpoint is a segment end, rectangle corner, arc end or text point.
	KindEndpoint
	// KindMidpoint is the middle of a segment, edge or arc.
	KindMidpoint
	// KindCenter is the center of a circle or arc.
	KindCenter
	// KindIntersection is a crossing between two entities' outlines.
	KindIntersection
	// KindAxis is a projection onto a construction axis.
	KindAxis
	// KindGrid is a grid lattice point.
	KindGrid
)

// String returns a human-readable snap kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindEndpoint:
		return "endpoint"
	case KindMidpoint:
		return "midpoint"
	case KindCenter:
		return "center"
	case KindIntersection:
		return "intersection"
	case KindAxis:
		return "axis"
	case KindGrid:
		return "grid"
	default:
		return "unknown"
	}
}

// Precedence lists the categories in the order they are tried.
var Precedence = []Kind{
	KindEndpoint,
	KindMidpoint,
	KindCenter,
	KindIntersection,
	KindAxis,
	KindGrid,
}

// Config controls which categories are considered and the capture distance.
type Config struct {
	// Tolerance is the maximum distance, in scene units, at which a
	// candidate captures the cursor. It applies to every category.
	Tolerance float32

	Endpoint     bool
	Midpoint     bool
	Center       bool
	Intersection bool
	Axis         bool
	Grid         bool

	// GridSize is the lattice spacing. Grid snapping is off when <= 0.
	GridSize float32
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Tolerance:    0.5,
		Endpoint:     true,
		Midpoint:     true,
		Center:       true,
		Intersection: true,
		Axis:         false,
		Grid:         true,
		GridSize:     1,
	}
}

// Enabled reports whether category k is switched on.
func (c Config) Enabled(k Kind) bool {
	switch k {
	case KindEndpoint:
		return c.Endpoint
	case KindMidpoint:
		return c.Midpoint
	case KindCenter:
		return c.Center
	case KindIntersection:
		return c.Intersection
	case KindAxis:
		return c.Axis
	case KindGrid:
		return c.Grid && c.GridSize > 0
	default:
		return false
	}
}

// Result is the outcome of resolving a cursor position.
type Result struct {
	// Point is the corrected position, or the raw cursor for KindNone.
	Point geom.Vector2
	Kind  Kind
	// Entity is the index of the entity that produced the snap, or -1
	// for axis, grid, intersection and none.
	Entity int
	// Distance is how far Point is from the raw cursor.
	Distance float32
}

// Snapped reports whether the cursor was corrected.
func (r Result) Snapped() bool {
	return r.Kind != KindNone
}

// Resolve returns the best snap for cursor among entities.
//
// reference, when non-nil, adds horizontal and vertical tracking axes through
// that point to the world axes used by KindAxis.
func Resolve(cursor geom.Vector2, entities []entity.Entity, cfg Config, reference *geom.Vector2) Result {
	for _, k := range Precedence {
		if !cfg.Enabled(k) {
			continue
		}
		if r, ok := resolveKind(k, cursor, entities, cfg, reference); ok {
			return r
		}
	}
	return Result{Point: cursor, Kind: KindNone, Entity: -1}
}

func resolveKind(k Kind, cursor geom.Vector2, entities []entity.Entity, cfg Config, reference *geom.Vector2) (Result, bool) {
	best := candidate{dist: float32(math.MaxFloat32), entity: -1}
	tol := cfg.Tolerance

	switch k {
	case KindEndpoint:
		for i := range entities {
			best.considerAll(cursor, entities[i].Endpoints(), i, tol)
		}
	case KindMidpoint:
		for i := range entities {
			best.considerAll(cursor, entities[i].Midpoints(), i, tol)
		}
	case KindCenter:
		for i := range entities {
			best.considerAll(cursor, entities[i].Centers(), i, tol)
		}
	case KindIntersection:
		best.considerAll(cursor, Intersections(cursor, entities, tol), -1, tol)
	case KindAxis:
		for _, p := range axisProjections(cursor, reference) {
			best.consider(cursor, p, -1, tol)
		}
	case KindGrid:
		best.consider(cursor, nearestGridPoint(cursor, cfg.GridSize), -1, tol)
	}

	if !best.found {
		return Result{}, false
	}
	return Result{Point: best.point, Kind: k, Entity: best.entity, Distance: best.dist}, true
}

// candidate tracks the closest point seen so far within tolerance.
type candidate struct {
	point  geom.Vector2
	dist   float32
	entity int
	found  bool
}

func (c *candidate) consider(cursor, p geom.Vector2, entityIdx int, tol float32) {
	d := cursor.Distance(p)
	if d > tol || d >= c.dist {
		return
	}
	c.point, c.dist, c.entity, c.found = p, d, entityIdx, true
}

func (c *candidate) considerAll(cursor geom.Vector2, pts []geom.Vector2, entityIdx int, tol float32) {
	for _, p := range pts {
		c.consider(cursor, p, entityIdx, tol)
	}
}

// Intersections returns the crossings between the polylines of every pair
// of entities whose bounding box, grown by tolerance, contains cursor.
func Intersections(cursor geom.Vector2, entities []entity.Entity, tolerance float32) []geom.Vector2 {
	var near [][]geom.Vector2
	for i := range entities {
		if entities[i].BoundingBox().Expand(tolerance).Contains(cursor) {
			near = append(near, entities[i].AsPolyline())
		}
	}

	var out []geom.Vector2
	for i := 0; i < len(near); i++ {
		for j := i + 1; j < len(near); j++ {
			out = appendCrossings(out, near[i], near[j])
		}
	}
	return out
}

func appendCrossings(out, a, b []geom.Vector2) []geom.Vector2 {
	for i := 1; i < len(a); i++ {
		for j := 1; j < len(b); j++ {
			if p, ok := geom.SegmentIntersection(a[i-1], a[i], b[j-1], b[j]); ok {
				out = append(out, p)
			}
		}
	}
	return out
}

// axisProjections projects cursor onto the world X and Y axes and, if set,
// the horizontal and vertical lines through reference.
func axisProjections(cursor geom.Vector2, reference *geom.Vector2) []geom.Vector2 {
	pts := []geom.Vector2{
		{X: cursor.X, Y: 0},
		{X: 0, Y: cursor.Y},
	}
	if reference != nil {
		pts = append(pts,
			geom.Vector2{X: cursor.X, Y: reference.Y},
			geom.Vector2{X: reference.X, Y: cursor.Y},
		)
	}
	return pts
}

func nearestGridPoint(p geom.Vector2, size float32) geom.Vector2 {
	s := float64(size)
	return geom.Vector2{
		X: float32(math.Round(float64(p.X)/s) * s),
		Y: float32(math.Round(float64(p.Y)/s) * s),
	}
}
