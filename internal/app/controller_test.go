package app

import (
	"errors"
	"reflect"
	"testing"

	"github.com/Hakkology/MuginCAD-sub001/internal/command"
	"github.com/Hakkology/MuginCAD-sub001/internal/config"
	"github.com/Hakkology/MuginCAD-sub001/internal/engine/entity"
	"github.com/Hakkology/MuginCAD-sub001/internal/engine/geom"
	"github.com/Hakkology/MuginCAD-sub001/internal/input"
	"github.com/Hakkology/MuginCAD-sub001/internal/input/key"
	"github.com/Hakkology/MuginCAD-sub001/internal/snap"
)

func newController(t *testing.T, cfg *config.Config) *Controller {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	c, err := New(WithConfig(cfg), WithLogger(NullLogger))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func press(t *testing.T, c *Controller, spec string) string {
	t.Helper()
	ev, err := input.KeySpec(spec)
	if err != nil {
		t.Fatalf("KeySpec(%q) error = %v", spec, err)
	}
	return c.ProcessInput(ev)
}

func click(c *Controller, x, y float32) string {
	return c.ProcessInput(input.Click(geom.V(x, y), key.ModNone))
}

func shiftClick(c *Controller, x, y float32) string {
	return c.ProcessInput(input.Click(geom.V(x, y), key.ModShift))
}

func drawLine(t *testing.T, c *Controller, x0, y0, x1, y1 float32) {
	t.Helper()
	press(t, c, "l")
	click(c, x0, y0)
	if got := click(c, x1, y1); got != "Add line" {
		t.Fatalf("line commit status = %q", got)
	}
}

func approx(a, b geom.Vector2) bool {
	return a.ApproxEqual(b, 1e-4)
}

func TestLineScenario(t *testing.T) {
	c := newController(t, nil)

	steps := []struct {
		do   func() string
		want string
	}{
		{func() string { return press(t, c, "l") }, "Line: pick start point"},
		{func() string { return click(c, 0, 0) }, "Line: pick end point"},
		{func() string { return click(c, 10, 0) }, "Add line"},
	}
	for i, s := range steps {
		if got := s.do(); got != s.want {
			t.Fatalf("step %d status = %q, want %q", i, got, s.want)
		}
	}

	snap := c.Snapshot()
	if len(snap.Entities) != 1 {
		t.Fatalf("entities = %d, want 1", len(snap.Entities))
	}
	e := snap.Entities[0]
	want := []geom.Vector2{{X: 0, Y: 0}, {X: 10, Y: 0}}
	if got := e.AsPolyline(); !reflect.DeepEqual(got, want) {
		t.Errorf("AsPolyline() = %v, want %v", got, want)
	}
	if !e.HitTest(geom.V(5, 0.5), 1) {
		t.Error("HitTest((5,0.5), 1) = false, want true")
	}
	if e.HitTest(geom.V(5, 5), 1) {
		t.Error("HitTest((5,5), 1) = true, want false")
	}
	if snap.Tool != command.ToolNone || snap.Step != command.StepIdle {
		t.Errorf("machine not idle: %s %s", snap.Tool, snap.Step)
	}
}

func TestCircleScenario(t *testing.T) {
	c := newController(t, nil)

	press(t, c, "c")
	click(c, 0, 0)
	if got := click(c, 5, 0); got != "Add circle" {
		t.Fatalf("status = %q", got)
	}

	e := c.Snapshot().Entities[0]
	circle, ok := e.Shape.(entity.Circle)
	if !ok {
		t.Fatalf("shape = %T, want Circle", e.Shape)
	}
	if circle.Radius != 5 {
		t.Errorf("Radius = %v, want 5", circle.Radius)
	}
	if !e.HitTest(geom.V(5, 0.2), 0.5) {
		t.Error("ring hit should succeed")
	}
	if e.HitTest(geom.V(0, 0), 0.5) {
		t.Error("interior of unfilled circle should miss")
	}
}

func TestRotateScenario(t *testing.T) {
	c := newController(t, nil)
	drawLine(t, c, 0, 0, 10, 0)

	if got := click(c, 5, 0); got != "1 entity selected" {
		t.Fatalf("select status = %q", got)
	}
	if got := press(t, c, "o"); got != "Rotate: pick pivot" {
		t.Fatalf("rotate status = %q", got)
	}
	click(c, 0, 0)
	if got := click(c, 10, 0); got != "Rotate: pick target direction" {
		t.Fatalf("status = %q", got)
	}
	if got := click(c, 0, 10); got != "Rotate 1 entity" {
		t.Fatalf("commit status = %q", got)
	}

	line := c.Snapshot().Entities[0].Shape.(entity.Line)
	if !approx(line.Start, geom.V(0, 0)) || !approx(line.End, geom.V(0, 10)) {
		t.Errorf("rotated line = %v -> %v, want (0,0) -> (0,10)", line.Start, line.End)
	}
}

func TestManipulationNeedsSelection(t *testing.T) {
	c := newController(t, nil)
	drawLine(t, c, 0, 0, 10, 0)

	for _, spec := range []string{"m", "o", "s", "y", "x"} {
		got := press(t, c, spec)
		if got == "" || c.Snapshot().Tool != command.ToolNone {
			t.Errorf("%s: status %q, tool %s; want rejection and idle", spec, got, c.Snapshot().Tool)
		}
	}
	if got := press(t, c, "m"); got != "Move: select entities first" {
		t.Errorf("status = %q", got)
	}
}

func TestSelectionClicks(t *testing.T) {
	c := newController(t, nil)
	drawLine(t, c, 0, 0, 10, 0)
	drawLine(t, c, 0, 5, 10, 5)

	steps := []struct {
		do   func() string
		want string
		sel  []int
	}{
		{func() string { return click(c, 5, 0) }, "1 entity selected", []int{0}},
		{func() string { return shiftClick(c, 5, 5) }, "2 entities selected", []int{0, 1}},
		{func() string { return shiftClick(c, 5, 0) }, "1 entity selected", []int{1}},
		{func() string { return click(c, 5, 0) }, "1 entity selected", []int{0}},
		{func() string { return shiftClick(c, 50, 50) }, "1 entity selected", []int{0}},
		{func() string { return click(c, 50, 50) }, "Selection cleared", []int{}},
		{func() string { return click(c, 50, 50) }, "Ready", []int{}},
		{func() string { return press(t, c, "Ctrl+a") }, "2 entities selected", []int{0, 1}},
		{func() string { return press(t, c, "Ctrl+d") }, "Selection cleared", []int{}},
	}
	for i, s := range steps {
		if got := s.do(); got != s.want {
			t.Errorf("step %d status = %q, want %q", i, got, s.want)
		}
		if got := c.Snapshot().Selection; !reflect.DeepEqual(got, s.sel) {
			t.Errorf("step %d selection = %v, want %v", i, got, s.sel)
		}
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	c := newController(t, nil)
	drawLine(t, c, 0, 0, 10, 0)
	press(t, c, "r")
	click(c, 20, 20)
	click(c, 30, 25)

	before := c.Snapshot().Entities

	press(t, c, "Ctrl+a")
	press(t, c, "m")
	click(c, 0, 0)
	if got := click(c, 3, 4); got != "Move 2 entities" {
		t.Fatalf("move status = %q", got)
	}
	after := c.Snapshot().Entities
	if reflect.DeepEqual(before, after) {
		t.Fatal("move changed nothing")
	}

	if got := press(t, c, "Ctrl+z"); got != "Undo: Move 2 entities" {
		t.Errorf("undo status = %q", got)
	}
	if got := c.Snapshot().Entities; !reflect.DeepEqual(got, before) {
		t.Errorf("after undo = %v, want %v", got, before)
	}
	if got := c.Snapshot().Selection; len(got) != 0 {
		t.Errorf("selection after undo = %v, want cleared", got)
	}

	if got := press(t, c, "Ctrl+y"); got != "Redo: Move 2 entities" {
		t.Errorf("redo status = %q", got)
	}
	if got := c.Snapshot().Entities; !reflect.DeepEqual(got, after) {
		t.Errorf("after redo = %v, want %v", got, after)
	}
}

func TestUndoRedoEmptyStacks(t *testing.T) {
	c := newController(t, nil)
	if got := press(t, c, "u"); got != "Nothing to undo" {
		t.Errorf("undo = %q", got)
	}
	if got := press(t, c, "U"); got != "Nothing to redo" {
		t.Errorf("redo = %q", got)
	}
	if s := c.Snapshot(); s.CanUndo || s.CanRedo || len(s.Entities) != 0 {
		t.Errorf("snapshot = %+v", s)
	}
}

func TestDeleteThroughHistory(t *testing.T) {
	c := newController(t, nil)
	drawLine(t, c, 0, 0, 10, 0)
	drawLine(t, c, 0, 5, 10, 5)

	if got := press(t, c, "Delete"); got != "Nothing selected" {
		t.Errorf("delete with empty selection = %q", got)
	}

	click(c, 5, 5)
	if got := press(t, c, "Delete"); got != "Remove 1 entity" {
		t.Errorf("delete status = %q", got)
	}
	if c.Len() != 1 {
		t.Fatalf("Len = %d, want 1", c.Len())
	}

	press(t, c, "u")
	if c.Len() != 2 {
		t.Errorf("Len after undo = %d, want 2", c.Len())
	}
	if line := c.Snapshot().Entities[1].Shape.(entity.Line); line.Start != geom.V(0, 5) {
		t.Errorf("restored entity = %v", line)
	}
}

func TestDeleteCancelsActiveCommand(t *testing.T) {
	c := newController(t, nil)
	drawLine(t, c, 0, 0, 10, 0)
	drawLine(t, c, 0, 20, 10, 20)

	click(c, 5, 0)
	if got := press(t, c, "m"); got != "Move: pick base point" {
		t.Fatalf("move status = %q", got)
	}
	if got := press(t, c, "Delete"); got != "Remove 1 entity" {
		t.Fatalf("delete status = %q", got)
	}
	if s := c.Snapshot(); s.Tool != command.ToolNone || len(s.Selection) != 0 {
		t.Fatalf("after delete: tool %s, selection %v", s.Tool, s.Selection)
	}

	click(c, 50, 50)
	click(c, 50, 60)

	s := c.Snapshot()
	if len(s.Entities) != 1 {
		t.Fatalf("entities = %d, want 1", len(s.Entities))
	}
	if line := s.Entities[0].Shape.(entity.Line); line.Start != geom.V(0, 20) || line.End != geom.V(10, 20) {
		t.Errorf("surviving line moved to %v", line)
	}
	if s.CanRedo || !s.CanUndo {
		t.Errorf("history flags undo=%v redo=%v", s.CanUndo, s.CanRedo)
	}
}

func TestCancel(t *testing.T) {
	c := newController(t, nil)

	press(t, c, "l")
	click(c, 0, 0)
	if got := press(t, c, "Escape"); got != "Cancelled" {
		t.Errorf("cancel status = %q", got)
	}
	if got := press(t, c, "Escape"); got != "Ready" {
		t.Errorf("second cancel = %q", got)
	}
	s := c.Snapshot()
	if len(s.Entities) != 0 || s.CanUndo || s.Tool != command.ToolNone {
		t.Errorf("cancel left state behind: %+v", s)
	}
}

func TestStartingToolReplacesActive(t *testing.T) {
	c := newController(t, nil)
	press(t, c, "l")
	click(c, 0, 0)
	if got := press(t, c, "c"); got != "Circle: pick center" {
		t.Errorf("status = %q", got)
	}
	if s := c.Snapshot(); s.Tool != command.ToolCircle || len(s.Points) != 0 {
		t.Errorf("snapshot = %s with %d points", s.Tool, len(s.Points))
	}
}

func TestDegenerateInputRejected(t *testing.T) {
	c := newController(t, nil)
	drawLine(t, c, 0, 0, 10, 0)
	click(c, 5, 0)

	press(t, c, "s")
	click(c, 0, 0)
	click(c, 0, 0)
	got := click(c, 5, 0)
	if got != "Scale rejected: scale: scale reference on its base: degenerate input" {
		t.Errorf("status = %q", got)
	}
	s := c.Snapshot()
	if s.Tool != command.ToolNone {
		t.Errorf("machine should be idle, tool = %s", s.Tool)
	}
	if line := s.Entities[0].Shape.(entity.Line); line.End != geom.V(10, 0) {
		t.Errorf("entity mutated: %v", line)
	}
}

func TestCutIsOneUndoUnit(t *testing.T) {
	c := newController(t, nil)
	drawLine(t, c, 0, 0, 10, 0)
	before := c.Snapshot().Entities

	click(c, 5, 0)
	press(t, c, "x")
	click(c, 0, 0)
	if got := click(c, 0, 20); got != "Cut 1 entity" {
		t.Fatalf("cut status = %q", got)
	}
	s := c.Snapshot()
	if len(s.Entities) != 1 || len(s.Selection) != 0 {
		t.Fatalf("after cut: %d entities, selection %v", len(s.Entities), s.Selection)
	}
	if line := s.Entities[0].Shape.(entity.Line); line.Start != geom.V(0, 20) {
		t.Errorf("cut entity at %v", line.Start)
	}

	press(t, c, "u")
	if got := c.Snapshot().Entities; !reflect.DeepEqual(got, before) {
		t.Errorf("undo cut = %v, want %v", got, before)
	}
}

func TestTextTool(t *testing.T) {
	cfg := config.Default()
	cfg.Draw.Text = "A-1"
	cfg.Draw.FontSize = 20
	c := newController(t, cfg)

	press(t, c, "t")
	if got := click(c, 3, 4); got != "Add text" {
		t.Fatalf("status = %q", got)
	}
	text := c.Snapshot().Entities[0].Shape.(entity.Text)
	if text.Position != geom.V(3, 4) || text.Style.Content != "A-1" || text.Style.FontSize != 20 {
		t.Errorf("text = %+v", text)
	}
}

func TestSnapDuringDrawing(t *testing.T) {
	c := newController(t, nil)
	drawLine(t, c, 0, 0, 10, 0)

	press(t, c, "l")
	click(c, 10.2, 0.3)
	if s := c.Snapshot(); s.SnapKind != snap.KindEndpoint || s.Points[0] != geom.V(10, 0) {
		t.Errorf("first point = %v (%s), want endpoint (10,0)", s.Points, s.SnapKind)
	}
	click(c, 10, 5)
	line := c.Snapshot().Entities[1].Shape.(entity.Line)
	if line.Start != geom.V(10, 0) {
		t.Errorf("Start = %v, want (10,0)", line.Start)
	}
}

func TestHoverAndCursor(t *testing.T) {
	c := newController(t, nil)
	drawLine(t, c, 0, 0, 10, 0)

	c.ProcessInput(input.Move(geom.V(4.9, 0.2)))
	s := c.Snapshot()
	if s.Hover != 0 {
		t.Errorf("Hover = %d, want 0", s.Hover)
	}
	if s.SnapKind != snap.KindMidpoint || s.Cursor != geom.V(5, 0) {
		t.Errorf("cursor = %v (%s), want midpoint (5,0)", s.Cursor, s.SnapKind)
	}

	c.ProcessInput(input.Move(geom.V(40.3, 40.3)))
	s = c.Snapshot()
	if s.Hover != -1 || s.SnapKind != snap.KindGrid {
		t.Errorf("hover %d kind %s, want -1 grid", s.Hover, s.SnapKind)
	}
}

func TestToggles(t *testing.T) {
	c := newController(t, nil)

	if got := press(t, c, "g"); got != "Grid snap off" {
		t.Errorf("toggle grid = %q", got)
	}
	if c.SnapConfig().Grid {
		t.Error("grid still enabled")
	}
	if got := press(t, c, "d"); got != "Arc direction: clockwise" {
		t.Errorf("toggle arc = %q", got)
	}
	if !c.Snapshot().Clockwise {
		t.Error("Clockwise = false")
	}
}

func TestUnboundKeyAndUnknownAction(t *testing.T) {
	c := newController(t, nil)
	if got := press(t, c, "q"); got != "q is not bound" {
		t.Errorf("status = %q", got)
	}
	if _, err := c.Do("tool.teleport"); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("Do error = %v", err)
	}
	if got, err := c.Do("tool.line"); err != nil || got != "Line: pick start point" {
		t.Errorf("Do(tool.line) = %q, %v", got, err)
	}
}

func TestApplyConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Keymap = map[string]string{"q": "tool.line", "l": "none"}
	c := newController(t, cfg)

	if got := press(t, c, "q"); got != "Line: pick start point" {
		t.Errorf("q = %q", got)
	}
	if got := press(t, c, "l"); got != "l is not bound" {
		t.Errorf("l = %q", got)
	}

	next := config.Default()
	next.Snap.GridSize = 0
	if err := c.ApplyConfig(next); err != nil {
		t.Fatal(err)
	}
	if got := press(t, c, "l"); got != "Line: pick start point" {
		t.Errorf("after reload l = %q", got)
	}
	if c.SnapConfig().GridSize != 0 {
		t.Errorf("GridSize = %v", c.SnapConfig().GridSize)
	}

	bad := config.Default()
	bad.Keymap = map[string]string{"Hyper+k": "tool.line"}
	if err := c.ApplyConfig(bad); err == nil {
		t.Error("invalid keymap should fail")
	}
}
