package config

import (
	"github.com/Hakkology/MuginCAD-sub001/internal/snap"
)

// Section names used for change notification.
const (
	SectionSnap    = "snap"
	SectionDraw    = "draw"
	SectionHistory = "history"
	SectionLogging = "logging"
	SectionKeymap  = "keymap"
	SectionView    = "view"
)

// Sections lists every section name in file order.
var Sections = []string{
	SectionSnap,
	SectionDraw,
	SectionHistory,
	SectionLogging,
	SectionKeymap,
	SectionView,
}

// SnapConfig holds the snap engine settings.
type SnapConfig struct {
	// Tolerance is the capture distance in scene units.
	Tolerance float32 `toml:"tolerance"`

	// GridSize is the grid lattice spacing. Grid snapping is off when 0.
	GridSize float32 `toml:"gridSize"`

	Grid         bool `toml:"grid"`
	Endpoint     bool `toml:"endpoint"`
	Midpoint     bool `toml:"midpoint"`
	Center       bool `toml:"center"`
	Intersection bool `toml:"intersection"`
	Axis         bool `toml:"axis"`
}

// Engine converts the section into snap engine settings.
func (s SnapConfig) Engine() snap.Config {
	return snap.Config{
		Tolerance:    s.Tolerance,
		GridSize:     s.GridSize,
		Grid:         s.Grid,
		Endpoint:     s.Endpoint,
		Midpoint:     s.Midpoint,
		Center:       s.Center,
		Intersection: s.Intersection,
		Axis:         s.Axis,
	}
}

// DrawConfig holds defaults for newly drawn entities.
type DrawConfig struct {
	// Filled marks new circles, rectangles and arcs as filled.
	Filled bool `toml:"filled"`

	// Clockwise is the initial arc direction.
	Clockwise bool `toml:"clockwise"`

	// FontSize is the size given to new text entities.
	FontSize float32 `toml:"fontSize"`

	// Text is the content given to new text entities.
	Text string `toml:"text"`
}

// HistoryConfig bounds the undo stack.
type HistoryConfig struct {
	MaxEntries int `toml:"maxEntries"`
}

// LoggingConfig controls the application logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`

	// File receives log output. Empty means stderr.
	File string `toml:"file"`
}

// ViewConfig controls the terminal view and raster export.
type ViewConfig struct {
	// PickTolerance is the hit test distance in scene units.
	PickTolerance float32 `toml:"pickTolerance"`

	// ExportWidth and ExportHeight size PNG exports in pixels.
	ExportWidth  int `toml:"exportWidth"`
	ExportHeight int `toml:"exportHeight"`

	// Margin is the blank border, in pixels or cells, around fitted content.
	Margin int `toml:"margin"`

	// ShowGrid draws grid dots in the terminal view.
	ShowGrid bool `toml:"showGrid"`
}
