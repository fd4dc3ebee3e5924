package lua

import (
	"context"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/Hakkology/MuginCAD-sub001/internal/app"
	"github.com/Hakkology/MuginCAD-sub001/internal/command"
	"github.com/Hakkology/MuginCAD-sub001/internal/engine/geom"
	"github.com/Hakkology/MuginCAD-sub001/internal/input"
	"github.com/Hakkology/MuginCAD-sub001/internal/input/key"
	"github.com/Hakkology/MuginCAD-sub001/internal/input/keymap"
)

// ModuleName is the global table and require name of the drafting API.
const ModuleName = "cad"

// Host is what macros drive. *app.Controller implements it.
type Host interface {
	ProcessInput(ev input.Event) string
	Do(action string) (string, error)
	Len() int
	Status() string
	Snapshot() app.Snapshot
}

// Grouper runs fn as one undo unit. *app.Controller implements it; RunFile
// uses it when the host does.
type Grouper interface {
	Macro(name string, fn func() error) error
}

// Historian lists committed undo and redo entries, oldest first.
type Historian interface {
	History() (undo, redo []string)
}

// Module exposes a Host to Lua as the cad table.
type Module struct {
	host   Host
	logger *app.Logger
}

// NewModule creates the cad module for host. A nil logger discards output.
func NewModule(host Host, logger *app.Logger) *Module {
	if logger == nil {
		logger = app.NullLogger
	}
	return &Module{host: host, logger: logger.WithComponent("lua")}
}

// Install registers the module in s.
func (m *Module) Install(s *State) {
	s.RegisterModule(ModuleName, map[string]lua.LGFunction{
		"tool":      m.tool,
		"click":     m.click,
		"move":      m.move,
		"key":       m.key,
		"action":    m.action,
		"undo":      m.do(keymap.ActionUndo),
		"redo":      m.do(keymap.ActionRedo),
		"cancel":    m.do(keymap.ActionCancel),
		"delete":    m.do(keymap.ActionDelete),
		"count":     m.count,
		"status":    m.status,
		"bounds":    m.bounds,
		"entities":  m.entities,
		"selection": m.selection,
		"history":   m.history,
	})
}

// cad.tool(name) starts a drawing or manipulation tool.
func (m *Module) tool(L *lua.LState) int {
	name := L.CheckString(1)
	t, err := command.ParseTool(name)
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	return m.dispatch(L, "tool."+t.String())
}

// cad.click(x, y [, shift]) or cad.click({x=, y=} [, shift]).
func (m *Module) click(L *lua.LState) int {
	p, next := m.checkPoint(L, 1)
	mods := key.ModNone
	if L.OptBool(next, false) {
		mods = key.ModShift
	}
	return m.feed(L, input.Click(p, mods))
}

// cad.move(x, y) moves the pointer.
func (m *Module) move(L *lua.LState) int {
	p, _ := m.checkPoint(L, 1)
	return m.feed(L, input.Move(p))
}

// cad.key(spec) presses a key, e.g. "l" or "Ctrl+z".
func (m *Module) key(L *lua.LState) int {
	spec := L.CheckString(1)
	ev, err := input.KeySpec(spec)
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	return m.feed(L, ev)
}

// cad.action(name) runs a keymap action by name.
func (m *Module) action(L *lua.LState) int {
	return m.dispatch(L, L.CheckString(1))
}

func (m *Module) do(action string) lua.LGFunction {
	return func(L *lua.LState) int {
		return m.dispatch(L, action)
	}
}

func (m *Module) count(L *lua.LState) int {
	L.Push(lua.LNumber(m.host.Len()))
	return 1
}

func (m *Module) status(L *lua.LState) int {
	L.Push(lua.LString(m.host.Status()))
	return 1
}

// cad.bounds() returns {min={x,y}, max={x,y}}.
func (m *Module) bounds(L *lua.LState) int {
	L.Push(NewBridge(L).ToLuaValue(m.host.Snapshot().Bounds))
	return 1
}

// cad.entities() returns one table per entity: id, kind, closed, filled
// and points.
func (m *Module) entities(L *lua.LState) int {
	L.Push(NewBridge(L).ToLuaValue(m.host.Snapshot().Entities))
	return 1
}

// cad.selection() returns the selected entities as 1-based indices.
func (m *Module) selection(L *lua.LState) int {
	sel := m.host.Snapshot().Selection
	t := L.NewTable()
	for i, idx := range sel {
		t.RawSetInt(i+1, lua.LNumber(idx+1))
	}
	L.Push(t)
	return 1
}

// cad.history() returns {undo = {...}, redo = {...}}, oldest first. Hosts
// that keep no history return empty lists.
func (m *Module) history(L *lua.LState) int {
	var undo, redo []string
	if h, ok := m.host.(Historian); ok {
		undo, redo = h.History()
	}
	t := L.NewTable()
	t.RawSetString("undo", stringList(L, undo))
	t.RawSetString("redo", stringList(L, redo))
	L.Push(t)
	return 1
}

func stringList(L *lua.LState, items []string) *lua.LTable {
	t := L.CreateTable(len(items), 0)
	for _, s := range items {
		t.Append(lua.LString(s))
	}
	return t
}

func (m *Module) feed(L *lua.LState, ev input.Event) int {
	ev = ev.From(input.SourceScript)
	status := m.host.ProcessInput(ev)
	m.logger.WithField("event", ev.String()).Debug("%s", status)
	L.Push(lua.LString(status))
	return 1
}

func (m *Module) dispatch(L *lua.LState, action string) int {
	status, err := m.host.Do(action)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	m.logger.WithField("action", action).Debug("%s", status)
	L.Push(lua.LString(status))
	return 1
}

// checkPoint reads either a {x=, y=} table or two numbers starting at n and
// returns the index of the next argument.
func (m *Module) checkPoint(L *lua.LState, n int) (geom.Vector2, int) {
	if t, ok := L.Get(n).(*lua.LTable); ok {
		b := NewBridge(L)
		x, okX := b.GetTableNumber(t, "x")
		y, okY := b.GetTableNumber(t, "y")
		if !okX || !okY {
			L.ArgError(n, "point table needs numeric x and y")
		}
		return geom.V(float32(x), float32(y)), n + 1
	}
	x := L.CheckNumber(n)
	y := L.CheckNumber(n + 1)
	return geom.V(float32(x), float32(y)), n + 2
}

// RunFile executes the macro at path against host in a fresh sandbox and
// returns the host's final status. When host is a Grouper the whole run is
// one undo unit named after the file.
func RunFile(ctx context.Context, path string, host Host, logger *app.Logger, opts ...StateOption) (string, error) {
	state, err := NewState(append([]StateOption{WithOutput(printWriter{logger})}, opts...)...)
	if err != nil {
		return "", err
	}
	defer state.Close()

	NewModule(host, logger).Install(state)
	run := func() error { return state.DoFile(ctx, path) }
	if g, ok := host.(Grouper); ok {
		err = g.Macro(filepath.Base(path), run)
	} else {
		err = run()
	}
	if err != nil {
		if logger != nil {
			logger.Error("macro %s: %s", path, firstLine(err))
		}
		return host.Status(), err
	}
	return host.Status(), nil
}

// printWriter sends print output to the logger at info level.
type printWriter struct {
	logger *app.Logger
}

func (w printWriter) Write(p []byte) (int, error) {
	if w.logger != nil {
		w.logger.WithComponent("lua").Info("%s", strings.TrimRight(string(p), "\n"))
	}
	return len(p), nil
}
