package scene

import (
	"github.com/Hakkology/MuginCAD-sub001/internal/engine/entity"
	"github.com/Hakkology/MuginCAD-sub001/internal/engine/geom"
)

// Snapshot provides a read-only view of a model at a specific point in time.
// It will not change even if the original model is modified.
type Snapshot struct {
	entities []entity.Entity
}

// Len returns the number of entities.
func (s *Snapshot) Len() int {
	return len(s.entities)
}

// At returns the entity at index i.
func (s *Snapshot) At(i int) entity.Entity {
	return s.entities[i]
}

// Entities returns the entity sequence in paint order.
// The slice must not be modified.
func (s *Snapshot) Entities() []entity.Entity {
	return s.entities
}

// Bounds reports the same value Model.Bounds did when the snapshot was taken.
func (s *Snapshot) Bounds() geom.Rect {
	return (&Model{entities: s.entities}).Bounds()
}
