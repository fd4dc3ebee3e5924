// Package renderer shows a drawing in a terminal.
//
// The renderer draws an app.Snapshot onto a backend.Backend: entities are
// traced cell by cell along their polylines, the pending command's picked
// points and rubber band are overlaid, the snapped cursor is marked and
// the last row holds the status line.
//
//	┌─────────────────────────────────────────┐
//	│   Loop (events → controller, redraw)    │
//	├─────────────────────────────────────────┤
//	│   Renderer    │ Viewport │ StatusLine   │
//	├─────────────────────────────────────────┤
//	│           Backend Abstraction           │
//	├─────────────────────────────────────────┤
//	│  Terminal (tcell) │ NullBackend         │
//	└─────────────────────────────────────────┘
//
// Usage:
//
//	term, _ := backend.NewTerminal()
//	r := renderer.New(term, renderer.OptionsFromConfig(cfg))
//	loop := renderer.NewLoop(term, r, ctrl, ctrl, logger)
//	err := loop.Run(ctx)
package renderer
