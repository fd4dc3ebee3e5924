package snap

import (
	"sync"

	"github.com/Hakkology/MuginCAD-sub001/internal/engine/entity"
	"github.com/Hakkology/MuginCAD-sub001/internal/engine/geom"
)

// Engine holds the snap configuration and the current tracking reference.
// It is safe for concurrent use, so a config reload can swap settings while
// the view resolves the cursor.
type Engine struct {
	mu        sync.Mutex
	cfg       Config
	reference geom.Vector2
	tracking  bool
}

// NewEngine creates an engine with the given configuration.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the active configuration.
func (e *Engine) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// SetConfig replaces the configuration.
func (e *Engine) SetConfig(cfg Config) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cfg = cfg
}

// Toggle flips category k and returns its new state.
func (e *Engine) Toggle(k Kind) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch k {
	case KindEndpoint:
		e.cfg.Endpoint = !e.cfg.Endpoint
		return e.cfg.Endpoint
	case KindMidpoint:
		e.cfg.Midpoint = !e.cfg.Midpoint
		return e.cfg.Midpoint
	case KindCenter:
		e.cfg.Center = !e.cfg.Center
		return e.cfg.Center
	case KindIntersection:
		e.cfg.Intersection = !e.cfg.Intersection
		return e.cfg.Intersection
	case KindAxis:
		e.cfg.Axis = !e.cfg.Axis
		return e.cfg.Axis
	case KindGrid:
		e.cfg.Grid = !e.cfg.Grid
		return e.cfg.Grid
	default:
		return false
	}
}

// SetReference sets the point that tracking axes pass through.
func (e *Engine) SetReference(p geom.Vector2) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reference = p
	e.tracking = true
}

// ClearReference removes the tracking axes.
func (e *Engine) ClearReference() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tracking = false
}

// Reference returns the tracking point, if any.
func (e *Engine) Reference() (geom.Vector2, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reference, e.tracking
}

// Resolve snaps cursor against entities using the engine's state.
func (e *Engine) Resolve(cursor geom.Vector2, entities []entity.Entity) Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	var ref *geom.Vector2
	if e.tracking {
		r := e.reference
		ref = &r
	}
	return Resolve(cursor, entities, e.cfg, ref)
}
