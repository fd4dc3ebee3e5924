package entity

import (
	"math"
	"testing"

	"github.com/Hakkology/MuginCAD-sub001/internal/engine/geom"
)

const eps = 1e-3

func sampleEntities() []Entity {
	return []Entity{
		New(Line{Start: geom.V(1, 2), End: geom.V(11, -3)}),
		New(Circle{Center: geom.V(4, 4), Radius: 3}),
		New(NewRectangle(geom.V(-2, -1), geom.V(5, 6), true)),
		New(NewArc(geom.V(2, 2), 5, 0.25, 2.5)),
		New(Text{
			Position: geom.V(3, 3),
			Anchors:  []geom.Vector2{geom.V(0, 0), geom.V(1, 1)},
			Style:    TextStyle{FontSize: 12, Content: "A1"},
		}),
	}
}

func approxShape(t *testing.T, got, want Entity) {
	t.Helper()
	gp := got.AsPolyline()
	wp := want.AsPolyline()
	if len(gp) != len(wp) {
		t.Fatalf("%s: polyline length %d, want %d", got.Kind(), len(gp), len(wp))
	}
	for i := range gp {
		if !gp[i].ApproxEqual(wp[i], eps) {
			t.Errorf("%s: point %d = %v, want %v", got.Kind(), i, gp[i], wp[i])
		}
	}
	if tg, ok := got.Shape.(Text); ok {
		tw := want.Shape.(Text)
		if math.Abs(float64(tg.Style.FontSize-tw.Style.FontSize)) > eps {
			t.Errorf("font size = %v, want %v", tg.Style.FontSize, tw.Style.FontSize)
		}
		for i := range tg.Anchors {
			if !tg.Anchors[i].ApproxEqual(tw.Anchors[i], eps) {
				t.Errorf("anchor %d = %v, want %v", i, tg.Anchors[i], tw.Anchors[i])
			}
		}
	}
}

func TestTranslateRoundTrip(t *testing.T) {
	delta := geom.V(7.5, -3.25)
	for _, e := range sampleEntities() {
		t.Run(e.Kind().String(), func(t *testing.T) {
			orig := e.Clone()
			e.Translate(delta)
			e.Translate(delta.Neg())
			approxShape(t, e, orig)
		})
	}
}

func TestRotateRoundTrip(t *testing.T) {
	pivot := geom.V(-1, 2)
	for _, e := range sampleEntities() {
		if e.Kind() == KindRectangle {
			continue
		}
		t.Run(e.Kind().String(), func(t *testing.T) {
			orig := e.Clone()
			e.Rotate(pivot, 0.7)
			e.Rotate(pivot, -0.7)
			approxShape(t, e, orig)
		})
	}
}

func TestScaleRoundTrip(t *testing.T) {
	base := geom.V(1, 1)
	for _, f := range []float32{2, 0.5, -3} {
		for _, e := range sampleEntities() {
			t.Run(e.Kind().String(), func(t *testing.T) {
				orig := e.Clone()
				e.Scale(base, f)
				e.Scale(base, 1/f)
				approxShape(t, e, orig)
			})
		}
	}
}

func TestScaleIsAffine(t *testing.T) {
	base := geom.V(2, 3)
	e := New(Line{Start: geom.V(5, 7), End: geom.V(-1, 3)})
	before := e.Shape.(Line)
	e.Scale(base, 2.5)
	after := e.Shape.(Line)

	want := before.Start.Distance(base) * 2.5
	if got := after.Start.Distance(base); math.Abs(float64(got-want)) > eps {
		t.Errorf("distance from base = %v, want %v", got, want)
	}

	c := New(Circle{Center: geom.V(0, 0), Radius: 2})
	c.Scale(base, 3)
	if r := c.Shape.(Circle).Radius; r != 6 {
		t.Errorf("radius = %v, want 6", r)
	}

	txt := New(Text{Position: geom.V(0, 0), Style: TextStyle{FontSize: 10}})
	txt.Scale(base, 2)
	if fs := txt.Shape.(Text).Style.FontSize; fs != 20 {
		t.Errorf("font size = %v, want 20", fs)
	}
}

func TestLineScenario(t *testing.T) {
	e := New(Line{Start: geom.V(0, 0), End: geom.V(10, 0)})

	pts := e.AsPolyline()
	if len(pts) != 2 || pts[0] != geom.V(0, 0) || pts[1] != geom.V(10, 0) {
		t.Errorf("AsPolyline() = %v", pts)
	}
	if !e.HitTest(geom.V(5, 0.5), 1.0) {
		t.Error("HitTest((5,0.5), 1) = false, want true")
	}
	if e.HitTest(geom.V(5, 5), 1.0) {
		t.Error("HitTest((5,5), 1) = true, want false")
	}
}

func TestCircleScenario(t *testing.T) {
	e := New(Circle{Center: geom.V(0, 0), Radius: geom.V(0, 0).Distance(geom.V(5, 0))})

	if r := e.Shape.(Circle).Radius; r != 5 {
		t.Fatalf("radius = %v, want 5", r)
	}
	if !e.HitTest(geom.V(5, 0.2), 0.5) {
		t.Error("ring click should hit")
	}
	if e.HitTest(geom.V(0, 0), 0.5) {
		t.Error("interior click should miss an unfilled circle")
	}

	filled := New(Circle{Center: geom.V(0, 0), Radius: 5, Filled: true})
	if filled.HitTest(geom.V(0, 0), 0.5) {
		t.Error("filled circles keep boundary-only hit testing")
	}
}

func TestRectangleHitTest(t *testing.T) {
	e := New(NewRectangle(geom.V(0, 0), geom.V(4, 2), false))
	tests := []struct {
		name string
		pos  geom.Vector2
		want bool
	}{
		{"interior", geom.V(2, 1), true},
		{"edge", geom.V(4, 1), true},
		{"within tolerance outside", geom.V(4.4, 2.4), true},
		{"beyond tolerance", geom.V(4.6, 1), false},
		{"far below", geom.V(2, -3), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.HitTest(tt.pos, 0.5); got != tt.want {
				t.Errorf("HitTest(%v, 0.5) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestRotateLineScenario(t *testing.T) {
	e := New(Line{Start: geom.V(0, 0), End: geom.V(10, 0)})
	e.Rotate(geom.V(0, 0), math.Pi/2)
	l := e.Shape.(Line)
	if !l.Start.ApproxEqual(geom.V(0, 0), eps) || !l.End.ApproxEqual(geom.V(0, 10), eps) {
		t.Errorf("rotated line = %v - %v, want (0,0) - (0,10)", l.Start, l.End)
	}
}

func TestRotateRectangleEnvelope(t *testing.T) {
	e := New(NewRectangle(geom.V(0, 0), geom.V(2, 2), false))
	e.Rotate(geom.V(1, 1), math.Pi/4)
	r := e.Shape.(Rectangle)
	half := float32(math.Sqrt2)
	if !r.Min.ApproxEqual(geom.V(1-half, 1-half), eps) || !r.Max.ApproxEqual(geom.V(1+half, 1+half), eps) {
		t.Errorf("envelope = %v - %v", r.Min, r.Max)
	}
}

func TestPolylineDensity(t *testing.T) {
	tests := []struct {
		e      Entity
		n      int
		closed bool
	}{
		{New(Line{End: geom.V(1, 0)}), 2, false},
		{New(Circle{Radius: 1}), CircleSegments + 1, true},
		{New(NewArc(geom.V(0, 0), 1, 0, math.Pi)), ArcSegments + 1, false},
		{New(NewRectangle(geom.V(0, 0), geom.V(1, 1), false)), 5, true},
		{New(Text{Position: geom.V(1, 1)}), 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.e.Kind().String(), func(t *testing.T) {
			pts := tt.e.AsPolyline()
			if len(pts) != tt.n {
				t.Fatalf("len = %d, want %d", len(pts), tt.n)
			}
			if tt.e.IsClosed() != tt.closed {
				t.Errorf("IsClosed() = %v, want %v", tt.e.IsClosed(), tt.closed)
			}
			if tt.closed && pts[0] != pts[len(pts)-1] {
				t.Errorf("closed polyline does not repeat its first point")
			}
		})
	}
}

func TestArcHitTestAndBounds(t *testing.T) {
	e := New(NewArc(geom.V(0, 0), 5, 0, math.Pi/2))

	if !e.HitTest(geom.V(0, 5), 0.2) {
		t.Error("arc end should hit")
	}
	if e.HitTest(geom.V(0, -5), 0.2) {
		t.Error("point on the missing part of the circle should not hit")
	}
	box := e.BoundingBox()
	if box.Min != geom.V(-5, -5) || box.Max != geom.V(5, 5) {
		t.Errorf("BoundingBox() = %v, want full circle box", box)
	}
}

func TestCloneKeepsIDDuplicateDoesNot(t *testing.T) {
	e := New(Text{Position: geom.V(0, 0), Anchors: []geom.Vector2{geom.V(1, 1)}})
	c := e.Clone()
	if c.ID != e.ID {
		t.Error("Clone() changed the ID")
	}
	c.Translate(geom.V(1, 0))
	if e.Shape.(Text).Anchors[0] != geom.V(1, 1) {
		t.Error("translating a clone changed the original anchors")
	}
	if d := e.Duplicate(); d.ID == e.ID {
		t.Error("Duplicate() kept the ID")
	}
}

func TestSnapFeatures(t *testing.T) {
	r := New(NewRectangle(geom.V(0, 0), geom.V(4, 2), false))
	if n := len(r.Endpoints()); n != 4 {
		t.Errorf("rectangle endpoints = %d, want 4", n)
	}
	if mids := r.Midpoints(); len(mids) != 4 || mids[0] != geom.V(2, 0) {
		t.Errorf("rectangle midpoints = %v", mids)
	}
	c := New(Circle{Center: geom.V(3, 3), Radius: 1})
	if cs := c.Centers(); len(cs) != 1 || cs[0] != geom.V(3, 3) {
		t.Errorf("circle centers = %v", cs)
	}
}
