package renderer

import (
	"fmt"
	"math"
	"sync"

	"github.com/Hakkology/MuginCAD-sub001/internal/app"
	"github.com/Hakkology/MuginCAD-sub001/internal/command"
	"github.com/Hakkology/MuginCAD-sub001/internal/config"
	"github.com/Hakkology/MuginCAD-sub001/internal/engine/entity"
	"github.com/Hakkology/MuginCAD-sub001/internal/engine/geom"
	"github.com/Hakkology/MuginCAD-sub001/internal/renderer/backend"
	"github.com/Hakkology/MuginCAD-sub001/internal/renderer/statusline"
	"github.com/Hakkology/MuginCAD-sub001/internal/renderer/viewport"
	"github.com/Hakkology/MuginCAD-sub001/internal/snap"
)

// Options configures the renderer.
type Options struct {
	// ShowGrid marks grid points every GridSize scene units.
	ShowGrid bool
	GridSize float32

	// Margin is the blank border, in cells, kept around fitted content.
	Margin int
}

// DefaultOptions returns options with the grid hidden and a one-cell margin.
func DefaultOptions() Options {
	return Options{Margin: 1}
}

// OptionsFromConfig takes the grid from the view and snap sections.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := DefaultOptions()
	opts.ShowGrid = cfg.View.ShowGrid
	opts.GridSize = cfg.Snap.GridSize
	return opts
}

// Styles of the drawing view.
var (
	styleEntity   = backend.DefaultStyle()
	styleSelected = backend.DefaultStyle().WithForeground(backend.ColorYellow).With(backend.AttrBold)
	styleHover    = backend.DefaultStyle().WithForeground(backend.ColorCyan)
	stylePreview  = backend.DefaultStyle().WithForeground(backend.ColorGreen).With(backend.AttrDim)
	stylePoint    = backend.DefaultStyle().WithForeground(backend.ColorGreen).With(backend.AttrBold)
	styleSnap     = backend.DefaultStyle().WithForeground(backend.ColorMagenta).With(backend.AttrBold)
	styleGrid     = backend.DefaultStyle().WithForeground(backend.ColorGray).With(backend.AttrDim)
)

// snapMarkers are drawn at the cursor for each snap kind.
var snapMarkers = map[snap.Kind]rune{
	snap.KindEndpoint:     '□',
	snap.KindMidpoint:     '△',
	snap.KindCenter:       '○',
	snap.KindIntersection: '×',
	snap.KindAxis:         '+',
	snap.KindGrid:         '#',
}

// Renderer draws snapshots. The last backend row is the status line; the
// rows above it are the drawing area.
type Renderer struct {
	mu sync.Mutex

	opts    Options
	backend backend.Backend
	width   int
	height  int

	view   *viewport.Viewport
	status *statusline.StatusLine

	// fitted is false until the first frame has fitted the scene.
	fitted bool
}

// New creates a renderer sized to the backend.
func New(b backend.Backend, opts Options) *Renderer {
	width, height := b.Size()
	r := &Renderer{
		opts:    opts,
		backend: b,
		width:   width,
		height:  height,
		view:    viewport.New(width, height-1),
		status:  statusline.New(width),
	}
	r.view.SetMargin(opts.Margin)
	return r
}

// Viewport returns the view used to map cells to the scene.
func (r *Renderer) Viewport() *viewport.Viewport {
	return r.view
}

// SetOptions replaces the options. The next frame uses them.
func (r *Renderer) SetOptions(opts Options) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opts = opts
	r.view.SetMargin(opts.Margin)
}

// Resize adapts to a new backend size.
func (r *Renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width, r.height = width, height
	r.view.Resize(width, height-1)
	r.status.Resize(width)
}

// Fit shows all of bounds.
func (r *Renderer) Fit(bounds geom.Rect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.view.Fit(bounds)
	r.fitted = true
}

// CellToWorld returns the scene point under a drawing-area cell. It
// reports false for the status line and cells off screen.
func (r *Renderer) CellToWorld(col, row int) (geom.Vector2, bool) {
	if !r.view.Contains(col, row) {
		return geom.Vector2{}, false
	}
	return r.view.ToWorld(col, row), true
}

// Render draws s and shows the frame.
func (r *Renderer) Render(s app.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.fitted {
		r.view.Fit(s.Bounds)
		r.fitted = true
	}

	r.backend.Clear()
	if r.opts.ShowGrid && r.opts.GridSize > 0 {
		r.drawGrid(r.opts.GridSize)
	}

	selected := make(map[int]bool, len(s.Selection))
	for _, i := range s.Selection {
		selected[i] = true
	}
	for i, e := range s.Entities {
		style := styleEntity
		switch {
		case selected[i]:
			style = styleSelected
		case i == s.Hover:
			style = styleHover
		}
		r.drawEntity(e, style)
	}

	if s.Tool != command.ToolNone {
		if n := len(s.Points); n > 0 {
			r.drawSegment(s.Points[n-1], s.Cursor, stylePreview)
		}
		for _, p := range s.Points {
			r.plot(p, '+', stylePoint)
		}
	}

	col, row := r.view.ToCell(s.Cursor)
	if marker, ok := snapMarkers[s.SnapKind]; ok {
		r.setCell(col, row, marker, styleSnap)
	}
	if r.view.Contains(col, row) {
		r.backend.ShowCursor(col, row)
	} else {
		r.backend.HideCursor()
	}

	r.status.SetMode(s.Tool.String())
	r.status.SetMessage(s.Status)
	r.status.SetInfo(summary(s))
	r.status.Render(r.backend, r.height-1)

	r.backend.Show()
}

// summary is the right side of the status line.
func summary(s app.Snapshot) string {
	out := fmt.Sprintf("%d ents", len(s.Entities))
	if s.SnapKind != snap.KindNone {
		out = s.SnapKind.String() + " | " + out
	}
	if s.Tool == command.ToolArc {
		if s.Clockwise {
			out = "cw | " + out
		} else {
			out = "ccw | " + out
		}
	}
	return out
}

func (r *Renderer) drawEntity(e entity.Entity, style backend.Style) {
	if t, ok := e.Shape.(entity.Text); ok {
		col, row := r.view.ToCell(t.Position)
		for _, ch := range t.Style.Content {
			r.setCell(col, row, ch, style)
			col++
		}
		return
	}
	pts := e.AsPolyline()
	for i := 1; i < len(pts); i++ {
		r.drawSegment(pts[i-1], pts[i], style)
	}
}

// drawSegment traces a-b through the cells it crosses, clipped to the
// drawing area.
func (r *Renderer) drawSegment(a, b geom.Vector2, style backend.Style) {
	x0, y0 := r.view.ToCellF(a)
	x1, y1 := r.view.ToCellF(b)
	ch := segmentGlyph(x1-x0, y1-y0)

	w, h := float32(r.view.Width()), float32(r.view.Height())
	x0, y0, x1, y1, ok := clipSegment(x0, y0, x1, y1, 0, 0, w, h)
	if !ok {
		return
	}

	steps := int(math.Ceil(float64(max(abs32(x1-x0), abs32(y1-y0)))))
	for i := 0; i <= steps; i++ {
		t := float32(0)
		if steps > 0 {
			t = float32(i) / float32(steps)
		}
		x := x0 + (x1-x0)*t
		y := y0 + (y1-y0)*t
		r.setCell(int(math.Floor(float64(x))), int(math.Floor(float64(y))), ch, style)
	}
}

func (r *Renderer) plot(p geom.Vector2, ch rune, style backend.Style) {
	col, row := r.view.ToCell(p)
	r.setCell(col, row, ch, style)
}

func (r *Renderer) setCell(col, row int, ch rune, style backend.Style) {
	if r.view.Contains(col, row) {
		r.backend.SetCell(col, row, backend.NewCell(ch, style))
	}
}

// minGridCells is the closest grid marks may be drawn, in columns.
const minGridCells = 2

func (r *Renderer) drawGrid(size float32) {
	if size/r.view.Scale() < minGridCells {
		return
	}
	vis := r.view.VisibleRect()
	for gy := float32(math.Ceil(float64(vis.Min.Y/size))) * size; gy <= vis.Max.Y; gy += size {
		for gx := float32(math.Ceil(float64(vis.Min.X/size))) * size; gx <= vis.Max.X; gx += size {
			r.plot(geom.V(gx, gy), '·', styleGrid)
		}
	}
}

// segmentGlyph picks the character closest to the direction (dx, dy) in
// cell units, rows growing downward.
func segmentGlyph(dx, dy float32) rune {
	// A row is CellAspect columns tall on screen.
	ax, ay := abs32(dx), abs32(dy)*viewport.CellAspect
	switch {
	case ay <= ax*0.4:
		return '-'
	case ax <= ay*0.4:
		return '|'
	case (dx > 0) == (dy < 0):
		return '/'
	default:
		return '\\'
	}
}

// clipSegment clips a segment to [xmin, xmax) x [ymin, ymax) with the
// Liang-Barsky algorithm.
func clipSegment(x0, y0, x1, y1, xmin, ymin, xmax, ymax float32) (float32, float32, float32, float32, bool) {
	// Keep the far edges inside the last cell.
	const inset = 1e-3
	xmax -= inset
	ymax -= inset

	dx, dy := x1-x0, y1-y0
	t0, t1 := float32(0), float32(1)
	for _, edge := range [4][2]float32{
		{-dx, x0 - xmin},
		{dx, xmax - x0},
		{-dy, y0 - ymin},
		{dy, ymax - y0},
	} {
		p, q := edge[0], edge[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = max(t0, t)
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = min(t1, t)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
