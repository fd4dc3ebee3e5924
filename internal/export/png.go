package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/vector"

	"github.com/Hakkology/MuginCAD-sub001/internal/config"
	"github.com/Hakkology/MuginCAD-sub001/internal/engine/geom"
)

// PNGOptions control raster output.
type PNGOptions struct {
	Width, Height int
	Margin        int
	// StrokeWidth is the outline width in pixels.
	StrokeWidth float32
	// GridSize draws grid lines at this spacing in scene units. Zero
	// disables the grid.
	GridSize float32

	Background color.Color
	Stroke     color.Color
	Fill       color.Color
	Grid       color.Color
}

// DefaultPNGOptions returns an 800x600 black-on-white raster.
func DefaultPNGOptions() PNGOptions {
	return PNGOptions{
		Width:       800,
		Height:      600,
		Margin:      16,
		StrokeWidth: 1.5,
		Background:  color.White,
		Stroke:      color.Black,
		Fill:        color.RGBA{R: 0xc8, G: 0xd2, B: 0xdc, A: 0xff},
		Grid:        color.RGBA{R: 0xe6, G: 0xe6, B: 0xe6, A: 0xff},
	}
}

// PNGOptionsFromConfig applies the [view] section, and the snap grid when
// the view shows it.
func PNGOptionsFromConfig(cfg *config.Config) PNGOptions {
	opts := DefaultPNGOptions()
	opts.Width = cfg.View.ExportWidth
	opts.Height = cfg.View.ExportHeight
	opts.Margin = cfg.View.Margin
	if cfg.View.ShowGrid {
		opts.GridSize = cfg.Snap.GridSize
	}
	return opts
}

// minGridSpacing is the closest grid lines may be drawn, in pixels.
const minGridSpacing = 4

// Rasterize draws doc into a new image.
func Rasterize(doc Document, opts PNGOptions) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("raster size %dx%d must be positive", opts.Width, opts.Height)
	}
	if opts.StrokeWidth <= 0 {
		opts.StrokeWidth = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	fit := NewFit(doc.Bounds, opts.Width, opts.Height, opts.Margin)
	r := &raster{img: img, z: vector.NewRasterizer(opts.Width, opts.Height), fit: fit}

	if opts.GridSize > 0 && opts.GridSize*fit.Scale >= minGridSpacing {
		r.grid(opts.GridSize, opts.Grid)
	}
	for _, p := range doc.Polylines {
		if p.Filled && len(p.Points) > 2 {
			r.fill(p.Points, opts.Fill)
		}
	}
	for _, p := range doc.Polylines {
		r.stroke(p.Points, opts.StrokeWidth, opts.Stroke)
	}
	return img, nil
}

// EncodePNG rasterizes doc and writes it to w.
func EncodePNG(w io.Writer, doc Document, opts PNGOptions) error {
	img, err := Rasterize(doc, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// WritePNG rasterizes doc to path.
func WritePNG(path string, doc Document, opts PNGOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := EncodePNG(f, doc, opts); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

type raster struct {
	img *image.RGBA
	z   *vector.Rasterizer
	fit Fit
}

func (r *raster) flush(c color.Color) {
	r.z.Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{})
	r.z.Reset(r.img.Bounds().Dx(), r.img.Bounds().Dy())
}

func (r *raster) fill(pts []geom.Vector2, c color.Color) {
	x, y := r.fit.Apply(pts[0])
	r.z.MoveTo(x, y)
	for _, p := range pts[1:] {
		x, y = r.fit.Apply(p)
		r.z.LineTo(x, y)
	}
	r.z.ClosePath()
	r.flush(c)
}

// stroke outlines pts with one quad per segment. All quads wind the same
// way so overlaps at joints do not cancel.
func (r *raster) stroke(pts []geom.Vector2, width float32, c color.Color) {
	hw := width / 2
	if len(pts) == 1 {
		x, y := r.fit.Apply(pts[0])
		r.quad(x-hw, y-hw, x+hw, y-hw, x+hw, y+hw, x-hw, y+hw)
		r.flush(c)
		return
	}
	for i := 1; i < len(pts); i++ {
		x0, y0 := r.fit.Apply(pts[i-1])
		x1, y1 := r.fit.Apply(pts[i])
		dx, dy := x1-x0, y1-y0
		l := float32(math.Hypot(float64(dx), float64(dy)))
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*hw, dx/l*hw
		r.quad(x0+nx, y0+ny, x1+nx, y1+ny, x1-nx, y1-ny, x0-nx, y0-ny)
	}
	r.flush(c)
}

func (r *raster) quad(ax, ay, bx, by, cx, cy, dx, dy float32) {
	r.z.MoveTo(ax, ay)
	r.z.LineTo(bx, by)
	r.z.LineTo(cx, cy)
	r.z.LineTo(dx, dy)
	r.z.ClosePath()
}

// grid draws lines at multiples of size across the whole image.
func (r *raster) grid(size float32, c color.Color) {
	b := r.img.Bounds()
	lo := r.fit.Invert(0, float32(b.Dy()))
	hi := r.fit.Invert(float32(b.Dx()), 0)

	w, h := float32(b.Dx()), float32(b.Dy())
	for gx := float32(math.Ceil(float64(lo.X/size))) * size; gx <= hi.X; gx += size {
		x, _ := r.fit.Apply(geom.V(gx, 0))
		r.quad(x-0.5, 0, x+0.5, 0, x+0.5, h, x-0.5, h)
	}
	for gy := float32(math.Ceil(float64(lo.Y/size))) * size; gy <= hi.Y; gy += size {
		_, y := r.fit.Apply(geom.V(0, gy))
		r.quad(0, y-0.5, w, y-0.5, w, y+0.5, 0, y+0.5)
	}
	r.flush(c)
}
