package history

import (
	"fmt"
	"slices"

	"github.com/Hakkology/MuginCAD-sub001/internal/engine/entity"
	"github.com/Hakkology/MuginCAD-sub001/internal/engine/scene"
)

// Command represents a composable scene mutation that can be executed and undone.
type Command interface {
	// Execute performs the command and returns an error if it fails.
	Execute(m *scene.Model) error

	// Undo reverses the command and returns an error if it fails.
	Undo(m *scene.Model) error

	// Description returns a human-readable description of the command.
	Description() string
}

// AddCommand inserts one entity.
type AddCommand struct {
	Entity entity.Entity
	Index  int // insertion index; negative appends

	at int
}

// NewAddCommand creates a command that appends e.
func NewAddCommand(e entity.Entity) *AddCommand {
	return &AddCommand{Entity: e, Index: -1}
}

// Execute inserts the entity and remembers where it went.
func (c *AddCommand) Execute(m *scene.Model) error {
	at := c.Index
	if at < 0 {
		at = m.Len()
	}
	if err := m.Insert(at, c.Entity.Clone()); err != nil {
		return fmt.Errorf("add %s: %w", c.Entity.Kind(), err)
	}
	c.at = at
	return nil
}

// Undo removes the inserted entity.
func (c *AddCommand) Undo(m *scene.Model) error {
	if _, err := m.Remove(c.at); err != nil {
		return fmt.Errorf("undo add %s: %w", c.Entity.Kind(), err)
	}
	return nil
}

// Description returns a human-readable description.
func (c *AddCommand) Description() string {
	return fmt.Sprintf("Add %s", c.Entity.Kind())
}

// RemoveCommand removes a set of entities by index.
type RemoveCommand struct {
	Indices []int

	removed []indexedEntity // ascending by index
}

// NewRemoveCommand creates a command removing the given indices.
// Duplicates are ignored.
func NewRemoveCommand(indices []int) *RemoveCommand {
	idx := slices.Clone(indices)
	slices.Sort(idx)
	return &RemoveCommand{Indices: slices.Compact(idx)}
}

// Execute removes the entities, highest index first so lower ones stay valid.
func (c *RemoveCommand) Execute(m *scene.Model) error {
	removed := make([]indexedEntity, 0, len(c.Indices))
	for i := len(c.Indices) - 1; i >= 0; i-- {
		idx := c.Indices[i]
		e, err := m.Remove(idx)
		if err != nil {
			// Put back what we already took
			for j := len(removed) - 1; j >= 0; j-- {
				_ = m.Insert(removed[j].Index, removed[j].Entity)
			}
			return fmt.Errorf("remove entity %d: %w", idx, err)
		}
		removed = append(removed, indexedEntity{Index: idx, Entity: e})
	}
	slices.Reverse(removed)
	c.removed = removed
	return nil
}

// Undo reinserts the removed entities at their original indices.
func (c *RemoveCommand) Undo(m *scene.Model) error {
	for _, r := range c.removed {
		if err := m.Insert(r.Index, r.Entity.Clone()); err != nil {
			return fmt.Errorf("undo remove entity %d: %w", r.Index, err)
		}
	}
	return nil
}

// Description returns a human-readable description.
func (c *RemoveCommand) Description() string {
	return fmt.Sprintf("Remove %s", plural(len(c.Indices)))
}

// TransformCommand applies a Transform to a set of entities.
//
// The first Execute records the affected entities before and after the
// transform. Undo restores the "before" copies and later redos restore the
// "after" copies, so both directions are exact even for lossy rectangle
// rotation.
type TransformCommand struct {
	Indices   []int
	Transform Transform

	before []indexedEntity
	after  []indexedEntity
}

// NewTransformCommand creates a command applying t to the given indices.
func NewTransformCommand(indices []int, t Transform) *TransformCommand {
	idx := slices.Clone(indices)
	slices.Sort(idx)
	return &TransformCommand{Indices: slices.Compact(idx), Transform: t}
}

// Execute applies the transform, or replays the recorded result on redo.
func (c *TransformCommand) Execute(m *scene.Model) error {
	if c.after != nil {
		return restore(m, c.after, "redo "+c.Transform.Kind.String())
	}

	before := make([]indexedEntity, 0, len(c.Indices))
	after := make([]indexedEntity, 0, len(c.Indices))
	for _, idx := range c.Indices {
		err := m.Update(idx, func(e *entity.Entity) {
			before = append(before, indexedEntity{Index: idx, Entity: e.Clone()})
			c.Transform.Apply(e)
			after = append(after, indexedEntity{Index: idx, Entity: e.Clone()})
		})
		if err != nil {
			_ = restore(m, before, "rollback")
			return fmt.Errorf("%s entity %d: %w", c.Transform.Kind, idx, err)
		}
	}
	c.before, c.after = before, after
	return nil
}

// Undo restores the entities as they were before the transform.
func (c *TransformCommand) Undo(m *scene.Model) error {
	return restore(m, c.before, "undo "+c.Transform.Kind.String())
}

// Description returns a human-readable description.
func (c *TransformCommand) Description() string {
	return fmt.Sprintf("%s %s", capitalize(c.Transform.Kind.String()), plural(len(c.Indices)))
}

func restore(m *scene.Model, entries []indexedEntity, op string) error {
	for _, r := range entries {
		if err := m.Replace(r.Index, r.Entity.Clone()); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}

// CompoundCommand groups multiple commands as one undo unit.
type CompoundCommand struct {
	Name     string
	Commands []Command
}

// NewCompoundCommand creates a new compound command.
func NewCompoundCommand(name string, commands ...Command) *CompoundCommand {
	return &CompoundCommand{
		Name:     name,
		Commands: commands,
	}
}

// Execute runs all commands in order.
func (c *CompoundCommand) Execute(m *scene.Model) error {
	for i, cmd := range c.Commands {
		if err := cmd.Execute(m); err != nil {
			// On error, try to undo what we've done
			for j := i - 1; j >= 0; j-- {
				_ = c.Commands[j].Undo(m)
			}
			return fmt.Errorf("compound command '%s' step %d: %w", c.Name, i, err)
		}
	}
	return nil
}

// Undo reverses all commands in reverse order.
func (c *CompoundCommand) Undo(m *scene.Model) error {
	for i := len(c.Commands) - 1; i >= 0; i-- {
		if err := c.Commands[i].Undo(m); err != nil {
			return fmt.Errorf("undo compound command '%s' step %d: %w", c.Name, i, err)
		}
	}
	return nil
}

// Description returns the compound command's name.
func (c *CompoundCommand) Description() string {
	if c.Name != "" {
		return c.Name
	}
	if len(c.Commands) == 1 {
		return c.Commands[0].Description()
	}
	return fmt.Sprintf("%d operations", len(c.Commands))
}

// Add adds a command to the compound command.
func (c *CompoundCommand) Add(cmd Command) {
	c.Commands = append(c.Commands, cmd)
}

func plural(n int) string {
	if n == 1 {
		return "1 entity"
	}
	return fmt.Sprintf("%d entities", n)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
