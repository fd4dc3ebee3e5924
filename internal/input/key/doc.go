// Package key provides key event types and parsing for the input system.
//
//   - Key: identifies a special key, or KeyRune for characters
//   - Modifier: Ctrl, Alt, Shift, Meta bit flags
//   - Event: a single key press with modifiers
//
// # Key Specifications
//
// Bindings and scripts name keys with specifications:
//
//   - Simple keys: "l", "L", "Delete", "Escape"
//   - With modifiers: "Ctrl+Z", "Ctrl+Shift+Z"
//   - Bracketed: "<C-z>", "<Esc>", "<Del>"
//
// Spec returns the canonical specification of an event, so a parsed key
// and a key coming from the terminal compare equal by Spec.
package key
