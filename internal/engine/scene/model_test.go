package scene

import (
	"errors"
	"testing"

	"github.com/Hakkology/MuginCAD-sub001/internal/engine/entity"
	"github.com/Hakkology/MuginCAD-sub001/internal/engine/geom"
)

func line(x0, y0, x1, y1 float32) entity.Entity {
	return entity.New(entity.Line{Start: geom.V(x0, y0), End: geom.V(x1, y1)})
}

func TestEmptyBounds(t *testing.T) {
	m := NewModel()
	b := m.Bounds()
	if b.Min != geom.V(0, 0) || b.Max != geom.V(100, 100) {
		t.Errorf("Bounds() = %v, want (0,0)-(100,100)", b)
	}
}

func TestBoundsPadsDegenerateAxis(t *testing.T) {
	m := NewModel()
	m.AddEntity(line(0, 5, 10, 5))

	b := m.Bounds()
	if b.Width() != 10 {
		t.Errorf("width = %v, want 10", b.Width())
	}
	if b.Height() < 1 {
		t.Errorf("height = %v, want >= 1", b.Height())
	}
	if b.Center() != geom.V(5, 5) {
		t.Errorf("center = %v, want (5,5)", b.Center())
	}
}

func TestBoundsUnion(t *testing.T) {
	m := NewModel()
	m.AddEntity(line(0, 0, 10, 10))
	m.AddEntity(entity.New(entity.Circle{Center: geom.V(20, 20), Radius: 5}))

	b := m.Bounds()
	if b.Min != geom.V(0, 0) || b.Max != geom.V(25, 25) {
		t.Errorf("Bounds() = %v", b)
	}
}

func TestPickEntityTopmost(t *testing.T) {
	m := NewModel()
	m.AddEntity(line(0, 0, 10, 0))
	m.AddEntity(line(5, -5, 5, 5))
	m.AddEntity(entity.New(entity.NewRectangle(geom.V(100, 100), geom.V(110, 110), false)))

	i, ok := m.PickEntity(geom.V(5, 0), 0.5)
	if !ok || i != 1 {
		t.Errorf("PickEntity() = %d, %v; want 1, true", i, ok)
	}

	if _, ok := m.PickEntity(geom.V(50, 50), 0.5); ok {
		t.Error("PickEntity() on empty space should miss")
	}
}

func TestInsertRemove(t *testing.T) {
	m := NewModel()
	a, b, c := line(0, 0, 1, 0), line(0, 1, 1, 1), line(0, 2, 1, 2)
	m.AddEntity(a)
	m.AddEntity(c)

	if err := m.Insert(1, b); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if i, _ := m.IndexOf(c.ID); i != 2 {
		t.Errorf("IndexOf(c) = %d, want 2", i)
	}

	removed, err := m.Remove(0)
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if removed.ID != a.ID {
		t.Error("Remove() returned the wrong entity")
	}
	if i, _ := m.IndexOf(c.ID); i != 1 {
		t.Errorf("IndexOf(c) after removal = %d, want 1", i)
	}

	if _, err := m.Remove(5); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Remove(5) error = %v, want ErrIndexOutOfRange", err)
	}
	if err := m.Insert(-1, a); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Insert(-1) error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	m := NewModel()
	m.AddEntity(line(0, 0, 1, 0))
	snap := m.Snapshot()

	if err := m.Update(0, func(e *entity.Entity) { e.Translate(geom.V(5, 0)) }); err != nil {
		t.Fatal(err)
	}
	m.AddEntity(line(0, 0, 2, 0))

	if snap.Len() != 1 {
		t.Errorf("snapshot Len() = %d, want 1", snap.Len())
	}
	if l := snap.At(0).Shape.(entity.Line); l.Start != geom.V(0, 0) {
		t.Errorf("snapshot entity moved: %v", l.Start)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m := NewModel()
	m.AddEntity(line(0, 0, 1, 0))
	c := m.Clone()

	c.AddEntity(line(0, 0, 2, 0))
	if err := c.Update(0, func(e *entity.Entity) { e.Translate(geom.V(0, 3)) }); err != nil {
		t.Fatal(err)
	}

	if m.Len() != 1 {
		t.Errorf("original Len() = %d, want 1", m.Len())
	}
	got, _ := m.At(0)
	if l := got.Shape.(entity.Line); l.Start != geom.V(0, 0) {
		t.Errorf("original entity moved: %v", l.Start)
	}
	if c.Len() != 2 {
		t.Errorf("clone Len() = %d, want 2", c.Len())
	}
}

func TestRemoveReleasesTail(t *testing.T) {
	m := NewModel()
	m.AddEntity(line(0, 0, 1, 0))
	m.AddEntity(line(0, 1, 1, 1))
	m.AddEntity(entity.New(entity.Text{
		Position: geom.V(2, 2),
		Anchors:  []geom.Vector2{geom.V(2, 2)},
		Style:    entity.TextStyle{FontSize: 12, Content: "A"},
	}))

	if _, err := m.Remove(0); err != nil {
		t.Fatal(err)
	}
	tail := m.entities[:3][2]
	if tail.Shape != nil {
		t.Errorf("stale %T left past the end", tail.Shape)
	}
	if got, _ := m.At(1); got.Kind() != entity.KindText {
		t.Errorf("At(1) = %s, want text", got.Kind())
	}
}
