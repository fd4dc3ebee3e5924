// Package app coordinates the drafting kernel.
//
// A Controller owns the scene, the undo history, the command machine, the
// snap engine and the keymap registry. Front ends (the terminal view, Lua
// macros, replay files, tests) feed it input.Event values one at a time
// through ProcessInput and show the status string it returns:
//
//	ctrl, err := app.New(app.WithConfig(cfg), app.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	ctrl.ProcessInput(input.Key(key.NewRuneEvent('l', key.ModNone)))
//	ctrl.ProcessInput(input.Click(geom.V(0, 0), key.ModNone))
//	status := ctrl.ProcessInput(input.Click(geom.V(10, 0), key.ModNone))
//	// status == "Add line"
//
// Snapshot returns a copy of everything a renderer needs. The controller
// serializes access with a mutex so a config reload running on the
// watcher's goroutine can swap settings between events.
//
// The package also carries the application logger (Logger) used by every
// other package.
package app
