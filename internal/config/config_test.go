package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/Hakkology/MuginCAD-sub001/internal/config/loader"
	"github.com/Hakkology/MuginCAD-sub001/internal/config/notify"
	"github.com/Hakkology/MuginCAD-sub001/internal/snap"
)

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func envOf(vars ...string) loader.Loader {
	return loader.NewEnvLoader(loader.DefaultEnvPrefix).WithEnviron(func() []string { return vars })
}

func loadWith(t *testing.T, path string, vars ...string) (*Config, error) {
	t.Helper()
	return load(loader.NewTOMLLoader(path), envOf(vars...))
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if got := cfg.Snap.Engine(); got != snap.DefaultConfig() {
		t.Errorf("Snap.Engine() = %+v, want %+v", got, snap.DefaultConfig())
	}
}

func TestLoadNoFile(t *testing.T) {
	cfg, err := loadWith(t, filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("load error = %v", err)
	}
	want := Default()
	want.Path = cfg.Path
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("load without file = %+v, want defaults", cfg)
	}
}

func TestLoadFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mugincad.toml")
	writeConfig(t, path, `
[snap]
tolerance = 0.25
gridSize = 5
axis = true
midpoint = false

[draw]
filled = true
fontSize = 18

[keymap]
"F5" = "snap.toggleGrid"
`)

	cfg, err := loadWith(t, path)
	if err != nil {
		t.Fatalf("load error = %v", err)
	}

	wantSnap := SnapConfig{
		Tolerance:    0.25,
		GridSize:     5,
		Grid:         true,
		Endpoint:     true,
		Midpoint:     false,
		Center:       true,
		Intersection: true,
		Axis:         true,
	}
	if cfg.Snap != wantSnap {
		t.Errorf("Snap = %+v, want %+v", cfg.Snap, wantSnap)
	}
	if !cfg.Draw.Filled || cfg.Draw.FontSize != 18 || cfg.Draw.Text != "Text" {
		t.Errorf("Draw = %+v", cfg.Draw)
	}
	if cfg.Keymap["F5"] != "snap.toggleGrid" {
		t.Errorf("Keymap = %v", cfg.Keymap)
	}
	if cfg.History.MaxEntries != Default().History.MaxEntries {
		t.Errorf("History.MaxEntries = %d, want default", cfg.History.MaxEntries)
	}
	if cfg.Path != path {
		t.Errorf("Path = %q, want %q", cfg.Path, path)
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mugincad.toml")
	writeConfig(t, path, "[snap]\ntolerance = 0.25\ngridSize = 5\n\n[logging]\nlevel = \"warn\"\n")

	cfg, err := loadWith(t, path,
		"MUGINCAD_TOLERANCE=2",
		"MUGINCAD_SNAP_AXIS=true",
		"MUGINCAD_LOG_LEVEL=debug",
	)
	if err != nil {
		t.Fatalf("load error = %v", err)
	}
	if cfg.Snap.Tolerance != 2 {
		t.Errorf("Tolerance = %v, want 2", cfg.Snap.Tolerance)
	}
	if cfg.Snap.GridSize != 5 {
		t.Errorf("GridSize = %v, want 5 from file", cfg.Snap.GridSize)
	}
	if !cfg.Snap.Axis {
		t.Error("Axis should be enabled from environment")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		path string
	}{
		{"negative tolerance", "[snap]\ntolerance = -1\n", "snap.tolerance"},
		{"negative grid", "[snap]\ngridSize = -2.5\n", "snap.gridSize"},
		{"bad level", "[logging]\nlevel = \"loud\"\n", "logging.level"},
		{"zero font", "[draw]\nfontSize = 0\n", "draw.fontSize"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "mugincad.toml")
			writeConfig(t, path, tt.body)

			_, err := loadWith(t, path)
			if !errors.Is(err, ErrValidationFailed) {
				t.Fatalf("error = %v, want ErrValidationFailed", err)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Path != tt.path {
				t.Errorf("ValidationError = %+v, want path %s", ve, tt.path)
			}
		})
	}
}

func TestLoadSyntaxError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mugincad.toml")
	writeConfig(t, path, "[snap\n")

	_, err := loadWith(t, path)
	var pe *loader.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *loader.ParseError", err)
	}
}

func TestValidateCollectsAll(t *testing.T) {
	cfg := Default()
	cfg.Snap.Tolerance = -1
	cfg.Snap.GridSize = -1

	err := cfg.Validate()
	var errs ValidationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("error = %T, want ValidationErrors", err)
	}
	if len(errs) != 2 {
		t.Errorf("got %d failures, want 2: %v", len(errs), err)
	}
}

func TestChangedSections(t *testing.T) {
	a := Default()
	b := a.Clone()
	if got := ChangedSections(a, b); len(got) != 0 {
		t.Errorf("clone differs in %v", got)
	}

	b.Snap.GridSize = 10
	b.Keymap["x"] = "tool.cut"
	got := ChangedSections(a, b)
	want := []string{SectionSnap, SectionKeymap}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ChangedSections = %v, want %v", got, want)
	}

	if _, err := a.Section("colors"); !errors.Is(err, ErrUnknownSection) {
		t.Errorf("Section(colors) error = %v", err)
	}
}

func TestManagerReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mugincad.toml")
	writeConfig(t, path, "[snap]\ngridSize = 1\n")

	m, err := NewManager(path, WithEnvLoader(nil))
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	var got []notify.Change
	m.Subscribe(func(c notify.Change) { got = append(got, c) })

	writeConfig(t, path, "[snap]\ngridSize = 2\n")
	changed, err := m.Reload()
	if err != nil {
		t.Fatalf("Reload error = %v", err)
	}
	if !reflect.DeepEqual(changed, []string{SectionSnap}) {
		t.Errorf("changed = %v", changed)
	}
	if m.Current().Snap.GridSize != 2 {
		t.Errorf("GridSize = %v, want 2", m.Current().Snap.GridSize)
	}

	if len(got) != 2 || got[0].Section != SectionSnap || got[1].Type != notify.ChangeReload {
		t.Fatalf("changes = %+v", got)
	}
	if old := got[0].Old.(SnapConfig); old.GridSize != 1 {
		t.Errorf("Old.GridSize = %v", old.GridSize)
	}

	// A broken file keeps the previous values.
	writeConfig(t, path, "[snap]\ngridSize = -1\n")
	if _, err := m.Reload(); err == nil {
		t.Fatal("expected validation error")
	}
	if m.Current().Snap.GridSize != 2 {
		t.Errorf("GridSize after failed reload = %v, want 2", m.Current().Snap.GridSize)
	}
	if last := got[len(got)-1]; last.Type != notify.ChangeError || last.Err == nil {
		t.Errorf("last change = %+v, want error event", last)
	}
}

func TestManagerCurrentIsCopy(t *testing.T) {
	m, err := NewManager("", WithEnvLoader(nil))
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	c := m.Current()
	c.Keymap["q"] = "tool.line"
	if _, ok := m.Current().Keymap["q"]; ok {
		t.Error("mutating Current() leaked into the manager")
	}
	if err := m.Watch(); err == nil {
		t.Error("Watch without a path should fail")
	}
}

func TestManagerClosed(t *testing.T) {
	m, err := NewManager("", WithEnvLoader(nil))
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
	if err := m.Close(); err != nil {
		t.Errorf("second Close = %v", err)
	}
	if _, err := m.Reload(); !errors.Is(err, ErrManagerClosed) {
		t.Errorf("Reload after Close = %v", err)
	}
}

func TestManagerWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mugincad.toml")
	writeConfig(t, path, "[snap]\ntolerance = 0.5\n")

	m, err := NewManager(path, WithEnvLoader(nil), WithReloadDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	var once sync.Once
	done := make(chan SnapConfig, 1)
	m.SubscribeSection(SectionSnap, func(c notify.Change) {
		once.Do(func() { done <- c.New.(SnapConfig) })
	})

	if err := m.Watch(); err != nil {
		t.Fatalf("Watch error = %v", err)
	}
	writeConfig(t, path, "[snap]\ntolerance = 3\n")

	select {
	case s := <-done:
		if s.Tolerance != 3 {
			t.Errorf("Tolerance = %v, want 3", s.Tolerance)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}
