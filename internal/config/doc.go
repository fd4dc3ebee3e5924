// Package config provides the configuration system for MuginCAD.
//
// Settings are organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← MUGINCAD_*, highest priority
//	├─────────────────────────────┤
//	│  2. Config File             │  ← mugincad.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Default()
//	└─────────────────────────────┘
//
// The merged result is decoded into typed sections (Snap, Draw, History,
// Logging, Keymap, View) and validated before it is handed out.
//
// # Sub-packages
//
//   - loader: TOML file and environment variable loading
//   - watcher: File watching for live reload
//   - notify: Section-level change notification
//
// # Basic Usage
//
//	cfg, err := config.Load("mugincad.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	engine := snap.NewEngine(cfg.Snap.Engine())
//
// Live reload goes through a Manager:
//
//	m, err := config.NewManager("mugincad.toml")
//	sub := m.SubscribeSection(config.SectionSnap, func(c notify.Change) {
//	    ctrl.SetSnapConfig(m.Current().Snap.Engine())
//	})
//	defer sub.Unsubscribe()
//	_ = m.Watch()
//	defer m.Close()
//
// # Configuration Files
//
//	[snap]
//	tolerance = 0.5
//	gridSize = 1.0
//	grid = true
//	endpoint = true
//	axis = false
//
//	[draw]
//	filled = false
//	fontSize = 12
//
//	[keymap]
//	"Ctrl+z" = "edit.undo"
//	"F5" = "snap.toggleGrid"
package config
