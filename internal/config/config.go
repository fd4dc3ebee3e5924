package config

import (
	"fmt"
	"maps"
	"reflect"
	"strings"

	"github.com/Hakkology/MuginCAD-sub001/internal/config/loader"
	"github.com/Hakkology/MuginCAD-sub001/internal/engine/history"
	"github.com/Hakkology/MuginCAD-sub001/internal/snap"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "mugincad.toml"

// Config is the fully merged and validated configuration.
type Config struct {
	Snap    SnapConfig        `toml:"snap"`
	Draw    DrawConfig        `toml:"draw"`
	History HistoryConfig     `toml:"history"`
	Logging LoggingConfig     `toml:"logging"`
	Keymap  map[string]string `toml:"keymap"`
	View    ViewConfig        `toml:"view"`

	// Path is the file the configuration was read from, if any.
	Path string `toml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	s := snap.DefaultConfig()
	return &Config{
		Snap: SnapConfig{
			Tolerance:    s.Tolerance,
			GridSize:     s.GridSize,
			Grid:         s.Grid,
			Endpoint:     s.Endpoint,
			Midpoint:     s.Midpoint,
			Center:       s.Center,
			Intersection: s.Intersection,
			Axis:         s.Axis,
		},
		Draw: DrawConfig{
			FontSize: 12,
			Text:     "Text",
		},
		History: HistoryConfig{
			MaxEntries: history.DefaultMaxEntries,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Keymap: map[string]string{},
		View: ViewConfig{
			PickTolerance: 0.5,
			ExportWidth:   800,
			ExportHeight:  600,
			Margin:        16,
		},
	}
}

// Load reads path (which may be empty or missing) and the MUGINCAD_
// environment over the defaults, then validates the result.
func Load(path string) (*Config, error) {
	return load(loader.NewTOMLLoader(path), loader.NewEnvLoader(loader.DefaultEnvPrefix))
}

func load(file *loader.TOMLLoader, env loader.Loader) (*Config, error) {
	merged := make(map[string]any)

	path := file.Path()
	source := path
	if source == "" {
		source = "<defaults>"
	}

	data, err := file.Load()
	if err != nil {
		return nil, err
	}
	merged = loader.DeepMerge(merged, data)

	if env != nil {
		envData, err := env.Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, envData)
	}

	cfg := Default()
	if err := loader.Decode(source, merged, cfg); err != nil {
		return nil, err
	}
	cfg.Path = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every section and returns all failures at once.
func (c *Config) Validate() error {
	var errs ValidationErrors
	add := func(path, msg string, v any) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: v})
	}

	if c.Snap.Tolerance < 0 {
		add("snap.tolerance", "must not be negative", c.Snap.Tolerance)
	}
	if c.Snap.GridSize < 0 {
		add("snap.gridSize", "must not be negative", c.Snap.GridSize)
	}
	if c.Draw.FontSize <= 0 {
		add("draw.fontSize", "must be positive", c.Draw.FontSize)
	}
	if c.History.MaxEntries < 0 {
		add("history.maxEntries", "must not be negative", c.History.MaxEntries)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		add("logging.level", "must be debug, info, warn or error", c.Logging.Level)
	}
	if c.View.PickTolerance < 0 {
		add("view.pickTolerance", "must not be negative", c.View.PickTolerance)
	}
	if c.View.ExportWidth <= 0 || c.View.ExportHeight <= 0 {
		add("view.exportWidth", "export size must be positive",
			fmt.Sprintf("%dx%d", c.View.ExportWidth, c.View.ExportHeight))
	}
	if c.View.Margin < 0 {
		add("view.margin", "must not be negative", c.View.Margin)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Keymap = maps.Clone(c.Keymap)
	if out.Keymap == nil {
		out.Keymap = map[string]string{}
	}
	return &out
}

// Section returns the named section value.
func (c *Config) Section(name string) (any, error) {
	switch name {
	case SectionSnap:
		return c.Snap, nil
	case SectionDraw:
		return c.Draw, nil
	case SectionHistory:
		return c.History, nil
	case SectionLogging:
		return c.Logging, nil
	case SectionKeymap:
		km := maps.Clone(c.Keymap)
		if km == nil {
			km = map[string]string{}
		}
		return km, nil
	case SectionView:
		return c.View, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSection, name)
	}
}

// ChangedSections lists the sections whose values differ between old and
// next, in file order.
func ChangedSections(old, next *Config) []string {
	var changed []string
	for _, name := range Sections {
		a, _ := old.Section(name)
		b, _ := next.Section(name)
		if !reflect.DeepEqual(a, b) {
			changed = append(changed, name)
		}
	}
	return changed
}
