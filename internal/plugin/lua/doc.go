// Package lua runs drafting macros written in Lua.
//
// This package wraps the gopher-lua library to provide:
//   - a sandboxed State with only the base, string, table and math libraries
//   - a cad module that drives an app.Controller
//   - per-run timeouts enforced through the state's context
//
// # State
//
//	state, err := lua.NewState(lua.WithExecutionTimeout(2 * time.Second))
//	if err != nil {
//	    return err
//	}
//	defer state.Close()
//
// # Sandbox
//
// The sandbox removes the functions that load code (dofile, loadfile,
// load, loadstring, module) and never opens io, os, debug or package.
// require only returns the built-in libraries and modules registered with
// State.RegisterModule. print goes to the writer given by WithOutput.
//
// # The cad module
//
//	cad.tool("line")          -- start a tool by name
//	cad.click(0, 0)           -- click; returns the status line
//	cad.click({x = 10, y = 0})
//	cad.click(5, 0, true)     -- shift-click
//	cad.move(3, 4)
//	cad.key("Ctrl+z")
//	cad.action("selection.all")
//	cad.undo(); cad.redo(); cad.cancel(); cad.delete()
//	cad.count(); cad.status(); cad.bounds(); cad.entities(); cad.selection()
//
// RunFile executes a macro file against a controller in a fresh state.
package lua
