// Package scene holds the ordered collection of entities that make up a
// drawing, together with aggregate queries over it.
//
// Indices are insertion order and double as paint order: higher indices are
// drawn later and therefore sit on top. Removing an entity shifts every later
// index down by one, so callers that hold indices across a removal must
// re-resolve them, for example through IndexOf.
//
// A Model is owned by a single controller and is not safe for concurrent
// mutation. Renderers read a Snapshot instead.
package scene

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/Hakkology/MuginCAD-sub001/internal/engine/entity"
	"github.com/Hakkology/MuginCAD-sub001/internal/engine/geom"
)

// ErrIndexOutOfRange is returned when an entity index does not exist.
var ErrIndexOutOfRange = errors.New("entity index out of range")

// DefaultBounds is reported by Bounds for an empty model.
var DefaultBounds = geom.Rect{Min: geom.V(0, 0), Max: geom.V(100, 100)}

// minExtent is the smallest axis extent Bounds reports before padding.
const minExtent = 1.0

// Model is an ordered, index-addressed collection of entities.
type Model struct {
	entities []entity.Entity
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{}
}

// Len returns the number of entities.
func (m *Model) Len() int {
	return len(m.entities)
}

// AddEntity appends e. Its index is Len()-1 afterwards.
func (m *Model) AddEntity(e entity.Entity) {
	m.entities = append(m.entities, e)
}

// Insert places e at index i, shifting later entities up.
// i may equal Len() to append.
func (m *Model) Insert(i int, e entity.Entity) error {
	if i < 0 || i > len(m.entities) {
		return fmt.Errorf("insert at %d of %d: %w", i, len(m.entities), ErrIndexOutOfRange)
	}
	m.entities = append(m.entities, entity.Entity{})
	copy(m.entities[i+1:], m.entities[i:])
	m.entities[i] = e
	return nil
}

// Remove deletes and returns the entity at index i.
func (m *Model) Remove(i int) (entity.Entity, error) {
	if i < 0 || i >= len(m.entities) {
		return entity.Entity{}, fmt.Errorf("remove at %d of %d: %w", i, len(m.entities), ErrIndexOutOfRange)
	}
	e := m.entities[i]
	m.entities = slices.Delete(m.entities, i, i+1)
	return e, nil
}

// At returns a deep copy of the entity at index i.
func (m *Model) At(i int) (entity.Entity, bool) {
	if i < 0 || i >= len(m.entities) {
		return entity.Entity{}, false
	}
	return m.entities[i].Clone(), true
}

// Replace overwrites the entity at index i.
func (m *Model) Replace(i int, e entity.Entity) error {
	if i < 0 || i >= len(m.entities) {
		return fmt.Errorf("replace at %d of %d: %w", i, len(m.entities), ErrIndexOutOfRange)
	}
	m.entities[i] = e
	return nil
}

// Update applies fn to the entity at index i in place.
func (m *Model) Update(i int, fn func(e *entity.Entity)) error {
	if i < 0 || i >= len(m.entities) {
		return fmt.Errorf("update at %d of %d: %w", i, len(m.entities), ErrIndexOutOfRange)
	}
	fn(&m.entities[i])
	return nil
}

// IndexOf returns the current index of the entity with the given ID.
func (m *Model) IndexOf(id uuid.UUID) (int, bool) {
	for i := range m.entities {
		if m.entities[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

// Entities returns a deep copy of the entity sequence.
func (m *Model) Entities() []entity.Entity {
	out := make([]entity.Entity, len(m.entities))
	for i, e := range m.entities {
		out[i] = e.Clone()
	}
	return out
}

// PickEntity returns the index of the topmost entity hit at pos.
//
// The scan runs from the highest index down, so the most recently added
// match wins. There is no spatial index; cost is linear in the entity count.
func (m *Model) PickEntity(pos geom.Vector2, tolerance float32) (int, bool) {
	for i := len(m.entities) - 1; i >= 0; i-- {
		if m.entities[i].HitTest(pos, tolerance) {
			return i, true
		}
	}
	return -1, false
}

// Bounds returns the union of every entity's bounding box.
//
// An empty model yields DefaultBounds. An axis narrower than 1.0 is padded
// by half a unit on each side so the result never has zero size.
func (m *Model) Bounds() geom.Rect {
	if len(m.entities) == 0 {
		return DefaultBounds
	}
	b := m.entities[0].BoundingBox()
	for _, e := range m.entities[1:] {
		b = b.Union(e.BoundingBox())
	}
	if b.Width() < minExtent {
		b.Min.X -= minExtent / 2
		b.Max.X += minExtent / 2
	}
	if b.Height() < minExtent {
		b.Min.Y -= minExtent / 2
		b.Max.Y += minExtent / 2
	}
	return b
}

// Snapshot returns a read-only copy of the model for renderers.
func (m *Model) Snapshot() *Snapshot {
	return &Snapshot{entities: m.Entities()}
}

// Clone returns an independent deep copy of the model.
func (m *Model) Clone() *Model {
	return &Model{entities: m.Entities()}
}
