package command

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/Hakkology/MuginCAD-sub001/internal/engine/entity"
	"github.com/Hakkology/MuginCAD-sub001/internal/engine/geom"
	"github.com/Hakkology/MuginCAD-sub001/internal/engine/history"
	"github.com/Hakkology/MuginCAD-sub001/internal/engine/scene"
)

// Options are the drawing settings a command captures when it starts.
type Options struct {
	Filled    bool
	Clockwise bool
	FontSize  float32
	Text      string
}

// Command accumulates the clicks of one tool invocation.
//
// Targets are the selected indices when the command started. Pin records
// the IDs behind them so Build can find the same entities even if indices
// shifted in between.
type Command struct {
	Tool      Tool
	Points    []geom.Vector2
	Targets   []int
	TargetIDs []uuid.UUID
	Options   Options
}

// New creates a command for tool t. targets is copied.
func New(t Tool, targets []int, opts Options) (*Command, error) {
	spec, ok := specs[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, t)
	}
	c := &Command{Tool: t, Options: opts}
	if spec.Manipulation {
		if len(targets) == 0 {
			return nil, fmt.Errorf("%s: %w", t, ErrEmptySelection)
		}
		c.Targets = slices.Clone(targets)
	}
	return c, nil
}

// Pin records the IDs of the targets as they are in m.
func (c *Command) Pin(m *scene.Model) error {
	ids := make([]uuid.UUID, 0, len(c.Targets))
	for _, i := range c.Targets {
		e, ok := m.At(i)
		if !ok {
			return fmt.Errorf("%s target %d: %w", c.Tool, i, scene.ErrIndexOutOfRange)
		}
		ids = append(ids, e.ID)
	}
	c.TargetIDs = ids
	return nil
}

// targets returns the current indices of the pinned targets, or Targets
// as given when nothing was pinned.
func (c *Command) targets(m *scene.Model) ([]int, error) {
	if c.TargetIDs == nil {
		return c.Targets, nil
	}
	out := make([]int, 0, len(c.TargetIDs))
	for _, id := range c.TargetIDs {
		i, ok := m.IndexOf(id)
		if !ok {
			return nil, fmt.Errorf("entity %s: %w", id.String()[:8], ErrTargetRemoved)
		}
		out = append(out, i)
	}
	return out, nil
}

// Spec returns the command's contract.
func (c *Command) Spec() Spec {
	return specs[c.Tool]
}

// Add appends p and reports whether the command is now complete.
func (c *Command) Add(p geom.Vector2) bool {
	if !c.Complete() {
		c.Points = append(c.Points, p)
	}
	return c.Complete()
}

// Complete reports whether every required point has been captured.
func (c *Command) Complete() bool {
	return len(c.Points) >= c.Spec().Points()
}

// Step returns the point the command is waiting for.
func (c *Command) Step() Step {
	spec := c.Spec()
	if len(c.Points) >= len(spec.Steps) {
		return StepIdle
	}
	return spec.Steps[len(c.Points)]
}

// Prompt returns the hint for the current step.
func (c *Command) Prompt() string {
	spec := c.Spec()
	if len(c.Points) >= len(spec.Prompts) {
		return ""
	}
	return spec.Prompts[len(c.Points)]
}

// Last returns the most recently captured point.
func (c *Command) Last() (geom.Vector2, bool) {
	if len(c.Points) == 0 {
		return geom.Vector2{}, false
	}
	return c.Points[len(c.Points)-1], true
}

// Clone returns a deep copy.
func (c *Command) Clone() *Command {
	cp := *c
	cp.Points = slices.Clone(c.Points)
	cp.Targets = slices.Clone(c.Targets)
	cp.TargetIDs = slices.Clone(c.TargetIDs)
	return &cp
}

// Build turns a complete command into the scene mutation it describes.
// m is read, never modified.
func (c *Command) Build(m *scene.Model) (history.Command, error) {
	if !c.Complete() {
		return nil, fmt.Errorf("%s: %d of %d points captured", c.Tool, len(c.Points), c.Spec().Points())
	}
	p := c.Points

	var targets []int
	if c.Spec().Manipulation {
		var err error
		if targets, err = c.targets(m); err != nil {
			return nil, err
		}
	}

	switch c.Tool {
	case ToolLine:
		return history.NewAddCommand(entity.New(entity.Line{Start: p[0], End: p[1]})), nil

	case ToolCircle:
		return history.NewAddCommand(entity.New(entity.Circle{
			Center: p[0],
			Radius: p[0].Distance(p[1]),
			Filled: c.Options.Filled,
		})), nil

	case ToolRectangle:
		return history.NewAddCommand(entity.New(entity.NewRectangle(p[0], p[1], c.Options.Filled))), nil

	case ToolArc:
		if p[1] == p[0] {
			return nil, fmt.Errorf("arc start on its center: %w", ErrDegenerateInput)
		}
		start := p[1].Sub(p[0]).Angle()
		end := p[2].Sub(p[0]).Angle()
		if c.Options.Clockwise {
			start, end = end, start
		}
		arc := entity.NewArc(p[0], p[0].Distance(p[1]), start, end)
		arc.Filled = c.Options.Filled
		return history.NewAddCommand(entity.New(arc)), nil

	case ToolText:
		return history.NewAddCommand(entity.New(entity.Text{
			Position: p[0],
			Anchors:  []geom.Vector2{p[0]},
			Style:    entity.TextStyle{FontSize: c.Options.FontSize, Content: c.Options.Text},
		})), nil

	case ToolMove:
		return history.NewTransformCommand(targets, history.Translate(p[1].Sub(p[0]))), nil

	case ToolRotate:
		if p[1] == p[0] || p[2] == p[0] {
			return nil, fmt.Errorf("rotate direction through pivot: %w", ErrDegenerateInput)
		}
		angle := p[2].Sub(p[0]).Angle() - p[1].Sub(p[0]).Angle()
		return history.NewTransformCommand(targets, history.Rotate(p[0], angle)), nil

	case ToolScale:
		ref := p[0].Distance(p[1])
		if ref == 0 {
			return nil, fmt.Errorf("scale reference on its base: %w", ErrDegenerateInput)
		}
		factor := p[0].Distance(p[2]) / ref
		return history.NewTransformCommand(targets, history.Scale(p[0], factor)), nil

	case ToolCopy, ToolCut:
		return c.buildDuplicate(m, targets, p[1].Sub(p[0]))

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, c.Tool)
	}
}

// buildDuplicate adds translated duplicates of the targets and, for Cut,
// removes the originals in the same undo unit.
func (c *Command) buildDuplicate(m *scene.Model, targets []int, delta geom.Vector2) (history.Command, error) {
	targets = slices.Clone(targets)
	slices.Sort(targets)
	targets = slices.Compact(targets)

	verb := "Copy"
	if c.Tool == ToolCut {
		verb = "Cut"
	}
	compound := history.NewCompoundCommand(fmt.Sprintf("%s %s", verb, entities(len(targets))))

	for _, i := range targets {
		e, ok := m.At(i)
		if !ok {
			return nil, fmt.Errorf("%s entity %d: %w", c.Tool, i, scene.ErrIndexOutOfRange)
		}
		dup := e.Duplicate()
		dup.Translate(delta)
		compound.Add(history.NewAddCommand(dup))
	}
	if c.Tool == ToolCut {
		compound.Add(history.NewRemoveCommand(targets))
	}
	return compound, nil
}

func entities(n int) string {
	if n == 1 {
		return "1 entity"
	}
	return fmt.Sprintf("%d entities", n)
}
