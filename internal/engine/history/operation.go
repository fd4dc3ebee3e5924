package history

import (
	"fmt"
	"math"
	"time"

	"github.com/Hakkology/MuginCAD-sub001/internal/engine/entity"
	"github.com/Hakkology/MuginCAD-sub001/internal/engine/geom"
)

// TransformKind identifies a geometric manipulation.
type TransformKind uint8

const (
	// TransformTranslate moves by Delta.
	TransformTranslate TransformKind = iota
	// TransformRotate turns by Angle around Origin.
	TransformRotate
	// TransformScale scales by Factor away from Origin.
	TransformScale
)

// String returns a human-readable transform name.
func (k TransformKind) String() string {
	switch k {
	case TransformTranslate:
		return "move"
	case TransformRotate:
		return "rotate"
	case TransformScale:
		return "scale"
	default:
		return "unknown"
	}
}

// Transform is a single geometric manipulation applied to entities.
type Transform struct {
	Kind   TransformKind
	Delta  geom.Vector2 // translate
	Origin geom.Vector2 // rotate pivot or scale base
	Angle  float32      // radians, counter-clockwise
	Factor float32
}

// Translate returns a translation by delta.
func Translate(delta geom.Vector2) Transform {
	return Transform{Kind: TransformTranslate, Delta: delta}
}

// Rotate returns a rotation by angle around pivot.
func Rotate(pivot geom.Vector2, angle float32) Transform {
	return Transform{Kind: TransformRotate, Origin: pivot, Angle: angle}
}

// Scale returns a scaling by factor from base.
func Scale(base geom.Vector2, factor float32) Transform {
	return Transform{Kind: TransformScale, Origin: base, Factor: factor}
}

// Apply transforms e in place.
func (t Transform) Apply(e *entity.Entity) {
	switch t.Kind {
	case TransformTranslate:
		e.Translate(t.Delta)
	case TransformRotate:
		e.Rotate(t.Origin, t.Angle)
	case TransformScale:
		e.Scale(t.Origin, t.Factor)
	}
}

// String describes the transform for status messages.
func (t Transform) String() string {
	switch t.Kind {
	case TransformTranslate:
		return fmt.Sprintf("move by (%.3g, %.3g)", t.Delta.X, t.Delta.Y)
	case TransformRotate:
		return fmt.Sprintf("rotate %.4g°", float64(t.Angle)*180/math.Pi)
	case TransformScale:
		return fmt.Sprintf("scale ×%.4g", t.Factor)
	default:
		return "transform"
	}
}

// indexedEntity records an entity together with the index it occupied.
type indexedEntity struct {
	Index  int
	Entity entity.Entity
}

// OperationInfo provides read-only info about a history entry.
// Used for displaying undo/redo history to users.
type OperationInfo struct {
	Description string    // Human-readable description
	Timestamp   time.Time // When the entry was recorded
}
