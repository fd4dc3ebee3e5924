// Package input defines the events the drafting controller consumes.
//
// An Event is one pointer click, one pointer move or one key press.
// Pointer positions are already in scene coordinates; mapping from screen
// cells or pixels is the front end's job. Key events carry a key.Event so
// they can be matched against keymap specifications.
//
// Events also record where they came from (terminal, script, replay) so
// logs can tell interactive input from automation.
package input
