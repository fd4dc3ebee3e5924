package export

import (
	"github.com/Hakkology/MuginCAD-sub001/internal/engine/geom"
)

// Fit maps scene coordinates onto a pixel grid: uniform scale, centered,
// y pointing down.
type Fit struct {
	Scale   float32
	offsetX float32
	offsetY float32
	height  float32
}

// NewFit fits bounds into a width x height image leaving margin pixels on
// every side. A margin that leaves no room is ignored.
func NewFit(bounds geom.Rect, width, height, margin int) Fit {
	availW := float32(width - 2*margin)
	availH := float32(height - 2*margin)
	if availW <= 0 || availH <= 0 {
		margin = 0
		availW, availH = float32(width), float32(height)
	}

	bw, bh := bounds.Width(), bounds.Height()
	if bw <= 0 {
		bw = 1
	}
	if bh <= 0 {
		bh = 1
	}
	scale := min(availW/bw, availH/bh)

	return Fit{
		Scale:   scale,
		offsetX: float32(margin) + (availW-bw*scale)/2 - bounds.Min.X*scale,
		offsetY: float32(margin) + (availH-bh*scale)/2 - bounds.Min.Y*scale,
		height:  float32(height),
	}
}

// Apply returns the pixel position of p.
func (f Fit) Apply(p geom.Vector2) (x, y float32) {
	return p.X*f.Scale + f.offsetX, f.height - (p.Y*f.Scale + f.offsetY)
}

// Invert returns the scene position of pixel (x, y).
func (f Fit) Invert(x, y float32) geom.Vector2 {
	return geom.V((x-f.offsetX)/f.Scale, (f.height-y-f.offsetY)/f.Scale)
}
