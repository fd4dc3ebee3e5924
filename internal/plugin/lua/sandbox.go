package lua

import (
	"io"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// removedGlobals can load code from disk or strings, or reach around the
// sandbox.
var removedGlobals = []string{
	"dofile",
	"loadfile",
	"load",
	"loadstring",
	"module",
	"getfenv",
	"setfenv",
	"newproxy",
	"collectgarbage",
	"_printregs",
}

// builtinModules may be required by name. They are opened by NewState.
var builtinModules = []string{"string", "table", "math"}

// Sandbox restricts what scripts can reach.
type Sandbox struct {
	L *lua.LState

	output  io.Writer
	modules map[string]lua.LValue
}

// NewSandbox creates a sandbox for L. print writes to output.
func NewSandbox(L *lua.LState, output io.Writer) *Sandbox {
	if output == nil {
		output = io.Discard
	}
	return &Sandbox{
		L:       L,
		output:  output,
		modules: make(map[string]lua.LValue),
	}
}

// Install removes unsafe globals and replaces print and require.
func (s *Sandbox) Install() {
	for _, name := range removedGlobals {
		s.L.SetGlobal(name, lua.LNil)
	}
	for _, name := range builtinModules {
		s.modules[name] = s.L.GetGlobal(name)
	}
	s.L.SetGlobal("print", s.L.NewFunction(s.print))
	s.L.SetGlobal("require", s.L.NewFunction(s.require))
}

// Provide makes mod available to require(name).
func (s *Sandbox) Provide(name string, mod lua.LValue) {
	s.modules[name] = mod
}

// Allowed reports whether require(name) succeeds.
func (s *Sandbox) Allowed(name string) bool {
	_, ok := s.modules[name]
	return ok
}

func (s *Sandbox) print(L *lua.LState) int {
	top := L.GetTop()
	parts := make([]string, 0, top)
	for i := 1; i <= top; i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	_, _ = io.WriteString(s.output, strings.Join(parts, "\t")+"\n")
	return 0
}

func (s *Sandbox) require(L *lua.LState) int {
	name := L.CheckString(1)
	mod, ok := s.modules[name]
	if !ok || mod == lua.LNil {
		L.RaiseError("%s: %q", ErrModuleUnavailable, name)
		return 0
	}
	L.Push(mod)
	return 1
}
