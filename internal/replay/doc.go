// Package replay records and replays input sessions as YAML.
//
// A script is either a bare list of steps or a mapping with a name and a
// steps list:
//
//	name: square
//	stopOnError: true
//	steps:
//	  - tool: line
//	  - click: [0, 0]
//	  - click: [10, 0]
//	    expect: Add line
//	  - move: [5, 5]
//	  - key: Ctrl+z
//	  - action: selection.all
//	  - click: [5, 0]
//	    shift: true
//
// Each step names exactly one input. Player feeds the steps to a Host
// (normally an app.Controller) and logs the status line each produces.
// Recorder wraps a Host and captures what passes through it, so an
// interactive session can be saved and replayed later.
package replay
