// Package command implements the interactive tools of the drafting kernel.
//
// A Command accumulates clicks for one tool. What a tool needs is declared
// once in its Spec: how many points, the name of the step waiting for each
// point, and whether it acts on a selection captured at start.
//
// The Machine owns the active Command. It starts tools, feeds them resolved
// points and, once a Command is complete, builds the matching history
// command and executes it so the mutation can be undone:
//
//	m := command.NewMachine(model, hist)
//	m.Start(command.ToolLine, nil, command.Options{})
//	m.Feed(geom.V(0, 0))  // WaitingForLineEnd
//	m.Feed(geom.V(10, 0)) // committed, back to Idle
//
// Cancel discards the command in progress without touching the model or
// history. It is legal in every state.
package command
