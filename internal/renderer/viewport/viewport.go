// Package viewport maps scene coordinates onto terminal cells.
package viewport

import (
	"math"
	"sync"

	"github.com/Hakkology/MuginCAD-sub001/internal/engine/geom"
)

// CellAspect is the height of a terminal cell in units of its width.
const CellAspect = 2

// Zoom limits, in scene units per column.
const (
	MinScale = 1e-4
	MaxScale = 1e6
)

// Viewport is a window onto the scene. Columns grow to the right and rows
// grow downward; scene y grows upward.
type Viewport struct {
	mu sync.RWMutex

	// Size in screen cells
	width  int
	height int

	// Scene point shown at the middle of the viewport.
	center geom.Vector2
	// Scene units per column. A row covers CellAspect times as much.
	scale float32
	// Blank cells kept around fitted content.
	margin int
}

// New creates a viewport with the given size, one scene unit per column,
// centered on the origin. Width and height are clamped to a minimum of 1.
func New(width, height int) *Viewport {
	return &Viewport{
		width:  max(width, 1),
		height: max(height, 1),
		scale:  1,
	}
}

// Width returns the viewport width.
func (v *Viewport) Width() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.width
}

// Height returns the viewport height.
func (v *Viewport) Height() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.height
}

// Scale returns the scene units covered by one column.
func (v *Viewport) Scale() float32 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.scale
}

// Center returns the scene point at the middle of the viewport.
func (v *Viewport) Center() geom.Vector2 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.center
}

// Resize updates the viewport size, keeping the center and scale.
func (v *Viewport) Resize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.width = max(width, 1)
	v.height = max(height, 1)
}

// SetMargin sets the blank border Fit leaves, in cells.
func (v *Viewport) SetMargin(cells int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.margin = max(cells, 0)
}

// Fit centers bounds and picks the smallest scale that shows all of it
// inside the margin. A margin that leaves no room is ignored.
func (v *Viewport) Fit(bounds geom.Rect) {
	v.mu.Lock()
	defer v.mu.Unlock()

	cols := v.width - 2*v.margin
	rows := v.height - 2*v.margin
	if cols < 1 || rows < 1 {
		cols, rows = v.width, v.height
	}

	scale := max(bounds.Width()/float32(cols), bounds.Height()/(float32(rows)*CellAspect))
	v.center = bounds.Center()
	v.scale = clampScale(scale)
}

// Pan moves the view by whole cells. Positive dcols shows content further
// right; positive drows shows content further down.
func (v *Viewport) Pan(dcols, drows int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.center.X += float32(dcols) * v.scale
	v.center.Y -= float32(drows) * v.scale * CellAspect
}

// Zoom magnifies the view by factor around its center. Factors above 1
// zoom in. Non-positive factors are ignored.
func (v *Viewport) Zoom(factor float32) {
	if factor <= 0 {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.scale = clampScale(v.scale / factor)
}

// ToCell returns the cell containing scene point p. The result may lie
// outside the viewport.
func (v *Viewport) ToCell(p geom.Vector2) (col, row int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	x, y := v.toCellF(p)
	return int(math.Floor(float64(x))), int(math.Floor(float64(y)))
}

// ToCellF is ToCell without rounding to whole cells.
func (v *Viewport) ToCellF(p geom.Vector2) (x, y float32) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.toCellF(p)
}

func (v *Viewport) toCellF(p geom.Vector2) (x, y float32) {
	x = (p.X-v.center.X)/v.scale + float32(v.width)/2
	y = float32(v.height)/2 - (p.Y-v.center.Y)/(v.scale*CellAspect)
	return x, y
}

// ToWorld returns the scene point at the middle of cell (col, row).
func (v *Viewport) ToWorld(col, row int) geom.Vector2 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return geom.V(
		v.center.X+(float32(col)+0.5-float32(v.width)/2)*v.scale,
		v.center.Y+(float32(v.height)/2-float32(row)-0.5)*v.scale*CellAspect,
	)
}

// Contains reports whether cell (col, row) is on screen.
func (v *Viewport) Contains(col, row int) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return col >= 0 && col < v.width && row >= 0 && row < v.height
}

// VisibleRect returns the scene area shown.
func (v *Viewport) VisibleRect() geom.Rect {
	v.mu.RLock()
	defer v.mu.RUnlock()
	hw := float32(v.width) / 2 * v.scale
	hh := float32(v.height) / 2 * v.scale * CellAspect
	return geom.Rect{
		Min: geom.V(v.center.X-hw, v.center.Y-hh),
		Max: geom.V(v.center.X+hw, v.center.Y+hh),
	}
}

func clampScale(s float32) float32 {
	switch {
	case s <= 0 || math.IsNaN(float64(s)):
		return 1
	case s < MinScale:
		return MinScale
	case s > MaxScale:
		return MaxScale
	}
	return s
}
