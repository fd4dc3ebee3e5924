// Package keymap maps key presses to named actions.
//
// A Keymap is a named collection of bindings. The Registry layers keymaps
// by priority, so a user keymap loaded from configuration overrides the
// built-in defaults binding by binding.
//
// Key specifications are parsed once at registration and compared in
// canonical form, so "Ctrl+Z", "<C-S-z>" and a terminal Ctrl+Shift+Z all
// select the same binding.
//
//	r := keymap.NewRegistry()
//	r.Register(keymap.Default())
//	if b, ok := r.Lookup(ev); ok {
//	    // dispatch b.Action
//	}
package keymap
