package command

import (
	"fmt"
	"sync"

	"github.com/Hakkology/MuginCAD-sub001/internal/engine/geom"
	"github.com/Hakkology/MuginCAD-sub001/internal/engine/history"
	"github.com/Hakkology/MuginCAD-sub001/internal/engine/scene"
)

// StepChangeCallback is called when the machine moves between steps.
type StepChangeCallback func(from, to Step)

// Outcome describes what a fed point did.
type Outcome struct {
	// Step is the step the machine is in after the point.
	Step Step

	// Committed is set when the point completed the command and its
	// mutation was recorded in history.
	Committed bool

	// Description names the committed mutation.
	Description string
}

// Machine drives one command at a time from Idle through its steps and
// commits the result to the model through history.
type Machine struct {
	mu sync.Mutex

	model   *scene.Model
	history *history.History

	active    *Command
	clockwise bool

	callbacks []StepChangeCallback
}

// NewMachine creates an idle machine that mutates m and records into h.
func NewMachine(m *scene.Model, h *history.History) *Machine {
	return &Machine{model: m, history: h}
}

// OnChange registers a callback for step transitions.
// Callbacks run outside the machine's lock.
func (m *Machine) OnChange(cb StepChangeCallback) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, cb)
}

// Start begins tool t on the given selection.
// Any command in progress is discarded first. If t cannot start, the
// machine is left Idle and the error says why.
func (m *Machine) Start(t Tool, selection []int, opts Options) error {
	m.mu.Lock()
	from := m.stepLocked()

	if t == ToolArc {
		opts.Clockwise = m.clockwise
	}
	cmd, err := New(t, selection, opts)
	if err == nil {
		err = cmd.Pin(m.model)
	}
	if err != nil {
		m.active = nil
	} else {
		m.active = cmd
	}
	to := m.stepLocked()
	callbacks := m.callbacksLocked()
	m.mu.Unlock()

	notify(callbacks, from, to)
	return err
}

// Feed captures a resolved point for the active command.
// When the point completes the command, its mutation is built, executed
// through history and the machine returns to Idle. A build or execute
// failure also returns to Idle, leaving model and history untouched.
func (m *Machine) Feed(p geom.Vector2) (Outcome, error) {
	m.mu.Lock()
	if m.active == nil {
		m.mu.Unlock()
		return Outcome{Step: StepIdle}, ErrNotActive
	}

	from := m.stepLocked()
	cmd := m.active
	if !cmd.Add(p) {
		to := m.stepLocked()
		callbacks := m.callbacksLocked()
		m.mu.Unlock()
		notify(callbacks, from, to)
		return Outcome{Step: to}, nil
	}

	m.active = nil
	callbacks := m.callbacksLocked()

	var out Outcome
	mutation, err := cmd.Build(m.model)
	if err == nil {
		err = m.history.Execute(mutation, m.model)
	}
	if err == nil {
		out = Outcome{Step: StepIdle, Committed: true, Description: mutation.Description()}
	} else {
		err = fmt.Errorf("%s: %w", cmd.Tool, err)
		out = Outcome{Step: StepIdle}
	}
	m.mu.Unlock()

	notify(callbacks, from, StepIdle)
	return out, err
}

// Cancel discards the active command. It is always legal and reports
// whether anything was discarded.
func (m *Machine) Cancel() bool {
	m.mu.Lock()
	if m.active == nil {
		m.mu.Unlock()
		return false
	}
	from := m.stepLocked()
	m.active = nil
	callbacks := m.callbacksLocked()
	m.mu.Unlock()

	notify(callbacks, from, StepIdle)
	return true
}

// ToggleArcDirection flips the direction the next arc is drawn in and
// returns true for clockwise. An arc that has not captured its center yet
// picks up the change too.
func (m *Machine) ToggleArcDirection() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clockwise = !m.clockwise
	if m.active != nil && m.active.Tool == ToolArc && len(m.active.Points) == 0 {
		m.active.Options.Clockwise = m.clockwise
	}
	return m.clockwise
}

// Clockwise reports the arc direction the next arc will capture.
func (m *Machine) Clockwise() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clockwise
}

// Active reports whether a command is in progress.
func (m *Machine) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active != nil
}

// Tool returns the active tool, or ToolNone when idle.
func (m *Machine) Tool() Tool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return ToolNone
	}
	return m.active.Tool
}

// Step returns the current step.
func (m *Machine) Step() Step {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stepLocked()
}

// Pending returns a copy of the command in progress.
func (m *Machine) Pending() (*Command, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return nil, false
	}
	return m.active.Clone(), true
}

// Reference returns the last captured point of the active command, which
// the snap engine uses for tracking axes.
func (m *Machine) Reference() (geom.Vector2, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return geom.Vector2{}, false
	}
	return m.active.Last()
}

func (m *Machine) stepLocked() Step {
	if m.active == nil {
		return StepIdle
	}
	return m.active.Step()
}

func (m *Machine) callbacksLocked() []StepChangeCallback {
	callbacks := make([]StepChangeCallback, len(m.callbacks))
	copy(callbacks, m.callbacks)
	return callbacks
}

func notify(callbacks []StepChangeCallback, from, to Step) {
	if from == to {
		return
	}
	for _, cb := range callbacks {
		if cb != nil {
			cb(from, to)
		}
	}
}
