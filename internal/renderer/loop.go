package renderer

import (
	"context"

	"github.com/Hakkology/MuginCAD-sub001/internal/app"
	"github.com/Hakkology/MuginCAD-sub001/internal/input"
	"github.com/Hakkology/MuginCAD-sub001/internal/input/key"
	"github.com/Hakkology/MuginCAD-sub001/internal/renderer/backend"
)

// Host consumes input. *app.Controller and *replay.Recorder satisfy it.
type Host interface {
	ProcessInput(ev input.Event) string
}

// Source provides the state to draw.
type Source interface {
	Snapshot() app.Snapshot
}

// View navigation steps.
const (
	panColumns = 4
	panRows    = 2
	zoomStep   = 1.25
)

// Loop feeds terminal events to a Host and redraws after each one.
//
// Keys handled by the loop itself:
//   - Ctrl+Q, Ctrl+C: quit
//   - arrows: pan
//   - PgUp / PgDn, mouse wheel: zoom
//   - Home: fit the drawing
//
// Every other key goes to the Host.
type Loop struct {
	backend  backend.Backend
	renderer *Renderer
	host     Host
	source   Source
	logger   *app.Logger

	// buttons is the mouse button held at the previous mouse event.
	buttons backend.MouseButton
}

// NewLoop creates an event loop. A nil logger discards output.
func NewLoop(b backend.Backend, r *Renderer, host Host, source Source, logger *app.Logger) *Loop {
	if logger == nil {
		logger = app.NullLogger
	}
	return &Loop{
		backend:  b,
		renderer: r,
		host:     host,
		source:   source,
		logger:   logger.WithComponent("terminal"),
	}
}

// Run draws and processes events until the user quits or ctx is done.
// Both are normal exits and return nil.
func (l *Loop) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			l.Refresh()
		case <-done:
		}
	}()

	l.draw()
	for {
		ev := l.backend.PollEvent()
		if ctx.Err() != nil {
			return nil
		}
		if l.handle(ev) {
			return nil
		}
		l.draw()
	}
}

// Refresh wakes the loop so it redraws, e.g. after a configuration reload.
// It is safe to call from any goroutine.
func (l *Loop) Refresh() {
	l.backend.PostEvent(backend.Event{Type: backend.EventInterrupt})
}

func (l *Loop) draw() {
	l.renderer.Render(l.source.Snapshot())
}

// handle processes one event and reports whether the loop should stop.
func (l *Loop) handle(ev backend.Event) bool {
	switch ev.Type {
	case backend.EventResize:
		l.renderer.Resize(ev.Width, ev.Height)
	case backend.EventKey:
		return l.handleKey(ev)
	case backend.EventMouse:
		l.handleMouse(ev)
	}
	return false
}

func (l *Loop) handleKey(ev backend.Event) bool {
	view := l.renderer.Viewport()
	switch ev.Key {
	case backend.KeyRune:
		if ev.Mod.Has(backend.ModCtrl) && (ev.Rune == 'q' || ev.Rune == 'c') {
			l.logger.Debug("quit requested")
			return true
		}
	case backend.KeyUp:
		view.Pan(0, -panRows)
		return false
	case backend.KeyDown:
		view.Pan(0, panRows)
		return false
	case backend.KeyLeft:
		view.Pan(-panColumns, 0)
		return false
	case backend.KeyRight:
		view.Pan(panColumns, 0)
		return false
	case backend.KeyPageUp:
		view.Zoom(zoomStep)
		return false
	case backend.KeyPageDown:
		view.Zoom(1 / zoomStep)
		return false
	case backend.KeyHome:
		l.renderer.Fit(l.source.Snapshot().Bounds)
		return false
	}

	k, ok := convertToKeyEvent(ev)
	if !ok {
		return false
	}
	status := l.host.ProcessInput(input.Key(k).From(input.SourceTerminal))
	l.logger.Debug("key %s: %s", k.Spec(), status)
	return false
}

func (l *Loop) handleMouse(ev backend.Event) {
	prev := l.buttons
	l.buttons = ev.MouseButton

	switch ev.MouseButton {
	case backend.MouseWheelUp:
		l.renderer.Viewport().Zoom(zoomStep)
		return
	case backend.MouseWheelDown:
		l.renderer.Viewport().Zoom(1 / zoomStep)
		return
	}

	pos, ok := l.renderer.CellToWorld(ev.MouseX, ev.MouseY)
	if !ok {
		return
	}
	switch {
	case ev.MouseButton == backend.MouseLeft && prev != backend.MouseLeft:
		status := l.host.ProcessInput(input.Click(pos, convertMods(ev.Mod)).From(input.SourceTerminal))
		l.logger.Debug("click (%g, %g): %s", pos.X, pos.Y, status)
	case ev.MouseButton == backend.MouseNone:
		l.host.ProcessInput(input.Move(pos).From(input.SourceTerminal))
	}
}

// convertToKeyEvent maps a backend key event to a key.Event. Keys without
// an equivalent report false.
func convertToKeyEvent(ev backend.Event) (key.Event, bool) {
	mods := convertMods(ev.Mod)
	if ev.Key == backend.KeyRune {
		if ev.Rune == 0 {
			return key.Event{}, false
		}
		return key.NewRuneEvent(ev.Rune, mods), true
	}
	k := mapBackendKey(ev.Key)
	if k == key.KeyNone {
		return key.Event{}, false
	}
	return key.NewSpecialEvent(k, mods), true
}

func convertMods(m backend.ModMask) key.Modifier {
	mods := key.ModNone
	if m.Has(backend.ModCtrl) {
		mods = mods.With(key.ModCtrl)
	}
	if m.Has(backend.ModAlt) {
		mods = mods.With(key.ModAlt)
	}
	if m.Has(backend.ModShift) {
		mods = mods.With(key.ModShift)
	}
	if m.Has(backend.ModMeta) {
		mods = mods.With(key.ModMeta)
	}
	return mods
}

func mapBackendKey(bk backend.Key) key.Key {
	switch bk {
	case backend.KeyEscape:
		return key.KeyEscape
	case backend.KeyEnter:
		return key.KeyEnter
	case backend.KeyTab:
		return key.KeyTab
	case backend.KeyBackspace:
		return key.KeyBackspace
	case backend.KeyDelete:
		return key.KeyDelete
	case backend.KeyInsert:
		return key.KeyInsert
	case backend.KeyEnd:
		return key.KeyEnd
	}
	if bk >= backend.KeyF1 && bk <= backend.KeyF12 {
		return key.KeyF1 + key.Key(bk-backend.KeyF1)
	}
	return key.KeyNone
}
