package app

import (
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Hakkology/MuginCAD-sub001/internal/command"
	"github.com/Hakkology/MuginCAD-sub001/internal/config"
	"github.com/Hakkology/MuginCAD-sub001/internal/engine/entity"
	"github.com/Hakkology/MuginCAD-sub001/internal/engine/geom"
	"github.com/Hakkology/MuginCAD-sub001/internal/engine/history"
	"github.com/Hakkology/MuginCAD-sub001/internal/engine/scene"
	"github.com/Hakkology/MuginCAD-sub001/internal/input"
	"github.com/Hakkology/MuginCAD-sub001/internal/input/key"
	"github.com/Hakkology/MuginCAD-sub001/internal/input/keymap"
	"github.com/Hakkology/MuginCAD-sub001/internal/snap"
)

// userKeymap names the keymap built from the [keymap] config section.
const (
	userKeymap         = "user"
	userKeymapPriority = 10
)

// Option configures a Controller.
type Option func(*options)

type options struct {
	cfg    *config.Config
	logger *Logger
	lang   language.Tag
}

// WithConfig applies cfg instead of config.Default().
func WithConfig(cfg *config.Config) Option {
	return func(o *options) {
		o.cfg = cfg
	}
}

// WithLogger sets the logger. The default is GetLogger().
func WithLogger(l *Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithLanguage sets the language used to format numbers in status text.
func WithLanguage(tag language.Tag) Option {
	return func(o *options) {
		o.lang = tag
	}
}

// Controller turns input events into scene mutations.
type Controller struct {
	mu sync.Mutex

	model   *scene.Model
	history *history.History
	machine *command.Machine
	snap    *snap.Engine
	keymaps *keymap.Registry

	draw          config.DrawConfig
	pickTolerance float32

	selection map[int]struct{}
	hover     int
	cursor    snap.Result
	status    string

	session uuid.UUID
	logger  *Logger
	printer *message.Printer
	title   cases.Caser
}

// New creates a controller with an empty scene.
func New(opts ...Option) (*Controller, error) {
	o := options{lang: language.English}
	for _, opt := range opts {
		opt(&o)
	}
	if o.cfg == nil {
		o.cfg = config.Default()
	}
	if o.logger == nil {
		o.logger = GetLogger()
	}

	model := scene.NewModel()
	hist := history.NewHistory(o.cfg.History.MaxEntries)
	c := &Controller{
		model:     model,
		history:   hist,
		machine:   command.NewMachine(model, hist),
		snap:      snap.NewEngine(o.cfg.Snap.Engine()),
		keymaps:   keymap.NewRegistry(),
		selection: make(map[int]struct{}),
		hover:     -1,
		cursor:    snap.Result{Kind: snap.KindNone, Entity: -1},
		session:   uuid.New(),
		printer:   message.NewPrinter(o.lang),
		title:     cases.Title(o.lang),
	}
	c.logger = o.logger.WithComponent("controller").WithField("session", c.session.String()[:8])

	if err := c.keymaps.Register(keymap.Default()); err != nil {
		return nil, NewOperationError("register", "default keymap", err)
	}
	if err := c.applyConfigLocked(o.cfg); err != nil {
		return nil, err
	}
	if o.cfg.Draw.Clockwise {
		c.machine.ToggleArcDirection()
	}

	c.machine.OnChange(func(from, to command.Step) {
		c.logger.Debug("step %s -> %s", from, to)
	})

	c.status = "Ready"
	return c, nil
}

// Session identifies this controller in logs and exports.
func (c *Controller) Session() uuid.UUID {
	return c.session
}

// ApplyConfig swaps in new settings. The scene, history and any command
// in progress are kept.
func (c *Controller) ApplyConfig(cfg *config.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applyConfigLocked(cfg)
}

func (c *Controller) applyConfigLocked(cfg *config.Config) error {
	if len(cfg.Keymap) > 0 {
		source := cfg.Path
		if source == "" {
			source = "config"
		}
		km := keymap.FromMap(userKeymap, cfg.Keymap).
			WithPriority(userKeymapPriority).
			WithSource(source)
		if err := c.keymaps.Register(km); err != nil {
			return NewOperationError("apply", "keymap", err)
		}
	} else {
		c.keymaps.Unregister(userKeymap)
	}

	c.snap.SetConfig(cfg.Snap.Engine())
	c.draw = cfg.Draw
	c.pickTolerance = cfg.View.PickTolerance
	c.history.SetMaxEntries(cfg.History.MaxEntries)

	c.logger.Debug("config applied {tolerance=%v, grid=%v}", cfg.Snap.Tolerance, cfg.Snap.GridSize)
	return nil
}

// SetSnapConfig replaces only the snap settings.
func (c *Controller) SetSnapConfig(cfg snap.Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap.SetConfig(cfg)
}

// SnapConfig returns the active snap settings.
func (c *Controller) SnapConfig() snap.Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap.Config()
}

// Keymaps returns the registry the controller resolves keys with.
func (c *Controller) Keymaps() *keymap.Registry {
	return c.keymaps
}

// ProcessInput handles one event and returns the status line.
func (c *Controller) ProcessInput(ev input.Event) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch ev.Kind {
	case input.KindClick:
		c.status = c.clickLocked(ev)
	case input.KindMove:
		c.moveLocked(ev)
	case input.KindKey:
		c.status = c.keyLocked(ev)
	default:
		c.logger.Warn("ignoring %s event from %s", ev.Kind, ev.Source)
	}
	return c.status
}

// Do runs a keymap action by name, as if its key had been pressed.
func (c *Controller) Do(action string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	status, err := c.dispatchLocked(action)
	if err != nil {
		return c.status, err
	}
	c.status = status
	return status, nil
}

// Status returns the last status line.
func (c *Controller) Status() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Len returns the number of entities in the scene.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.model.Len()
}

// Bounds returns the scene bounds used to fit views and exports.
func (c *Controller) Bounds() geom.Rect {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.model.Bounds()
}

func (c *Controller) clickLocked(ev input.Event) string {
	res := c.resolveLocked(ev.Pos)

	if !c.machine.Active() {
		return c.selectAtLocked(ev.Pos, ev.Modifiers.Has(key.ModShift))
	}

	tool := c.machine.Tool()
	out, err := c.machine.Feed(res.Point)
	c.syncReferenceLocked()
	if err != nil {
		c.logger.WithFields(map[string]any{"tool": tool, "snap": res.Kind}).Warn("rejected: %v", err)
		return c.errorStatus(tool, err)
	}
	if !out.Committed {
		c.logger.Debug("captured %s point (%.4g, %.4g) snap=%s", tool, res.Point.X, res.Point.Y, res.Kind)
		return c.promptLocked()
	}

	c.afterCommitLocked(tool)
	c.logger.WithFields(map[string]any{
		"tool":     tool,
		"entities": c.model.Len(),
		"snap":     res.Kind,
	}).Info("committed %s", out.Description)
	return out.Description
}

func (c *Controller) moveLocked(ev input.Event) {
	c.resolveLocked(ev.Pos)
	if i, ok := c.model.PickEntity(ev.Pos, c.pickTolerance); ok {
		c.hover = i
	} else {
		c.hover = -1
	}
}

func (c *Controller) keyLocked(ev input.Event) string {
	b, ok := c.keymaps.Lookup(ev.Key)
	if !ok {
		return c.printer.Sprintf("%s is not bound", ev.Key.Spec())
	}

	status, err := c.dispatchLocked(b.Action)
	if err != nil {
		c.logger.Error("key %s: %v", ev.Key.Spec(), err)
		return err.Error()
	}
	return status
}

func (c *Controller) resolveLocked(p geom.Vector2) snap.Result {
	c.cursor = c.snap.Resolve(p, c.model.Entities())
	return c.cursor
}

// syncReferenceLocked points the snap tracking axes at the last captured
// point, or clears them when the machine is idle.
func (c *Controller) syncReferenceLocked() {
	if ref, ok := c.machine.Reference(); ok {
		c.snap.SetReference(ref)
	} else {
		c.snap.ClearReference()
	}
}

// afterCommitLocked keeps the selection valid once tool's mutation ran.
func (c *Controller) afterCommitLocked(tool command.Tool) {
	if tool == command.ToolCut {
		c.clearSelectionLocked()
	}
	if c.hover >= c.model.Len() {
		c.hover = -1
	}
}

// selectAtLocked handles an idle click. A hit replaces the selection, or
// toggles the entity when shift is held. A miss without shift clears it.
func (c *Controller) selectAtLocked(pos geom.Vector2, shift bool) string {
	i, hit := c.model.PickEntity(pos, c.pickTolerance)
	switch {
	case !hit && shift:
		// keep the selection
	case !hit:
		if len(c.selection) == 0 {
			return "Ready"
		}
		c.clearSelectionLocked()
		return "Selection cleared"
	case shift:
		if _, ok := c.selection[i]; ok {
			delete(c.selection, i)
		} else {
			c.selection[i] = struct{}{}
		}
	default:
		c.clearSelectionLocked()
		c.selection[i] = struct{}{}
	}
	return c.selectionStatus()
}

func (c *Controller) clearSelectionLocked() {
	clear(c.selection)
}

// selected returns the selection in ascending index order.
func (c *Controller) selected() []int {
	out := make([]int, 0, len(c.selection))
	for i := range c.selection {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

// Snapshot is a copy of the controller state for renderers.
type Snapshot struct {
	Entities  []entity.Entity
	Selection []int
	Hover     int // -1 when nothing is under the pointer

	Tool   command.Tool
	Step   command.Step
	Prompt string
	Points []geom.Vector2

	Cursor    geom.Vector2
	SnapKind  snap.Kind
	Clockwise bool

	Bounds  geom.Rect
	Status  string
	CanUndo bool
	CanRedo bool
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		Entities:  c.model.Entities(),
		Selection: c.selected(),
		Hover:     c.hover,
		Tool:      command.ToolNone,
		Step:      command.StepIdle,
		Cursor:    c.cursor.Point,
		SnapKind:  c.cursor.Kind,
		Clockwise: c.machine.Clockwise(),
		Bounds:    c.model.Bounds(),
		Status:    c.status,
		CanUndo:   c.history.CanUndo(),
		CanRedo:   c.history.CanRedo(),
	}
	if cmd, ok := c.machine.Pending(); ok {
		s.Tool = cmd.Tool
		s.Step = cmd.Step()
		s.Prompt = cmd.Prompt()
		s.Points = cmd.Points
	}
	return s
}

func isAny(err error, targets ...error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}
