package history

// BeginGroup opens a group named name and reports whether it did. Commands
// pushed until EndGroup become one undo entry. A group is already open
// when it returns false; nested groups fold into the outer one.
func (h *History) BeginGroup(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		return false
	}
	h.grouping = true
	h.groupName = name
	h.groupUndo = nil
	h.groupRedo = nil
	return true
}

// EndGroup closes the open group and reports whether it recorded an entry.
// The commands still standing in the group are pushed as one
// CompoundCommand in the order they ran; commands undone inside the group
// are dropped. An empty group records nothing.
func (h *History) EndGroup() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.grouping {
		return false
	}
	entries := h.groupUndo
	h.grouping = false
	h.groupUndo = nil
	h.groupRedo = nil

	if len(entries) == 0 {
		return false
	}
	compound := NewCompoundCommand(h.groupName)
	for _, e := range entries {
		compound.Add(e.command)
	}
	h.pushLocked(&undoEntry{command: compound, timestamp: entries[0].timestamp})
	return true
}

// GroupScope is an open group that ends once.
//
//	scope := h.GroupScope("Macro house.lua")
//	defer scope.End()
type GroupScope struct {
	history *History
	active  bool
}

// GroupScope opens a group. If a group is already open the scope is
// inert and its commands join the outer group.
func (h *History) GroupScope(name string) *GroupScope {
	return &GroupScope{history: h, active: h.BeginGroup(name)}
}

// End closes the scope's group and reports whether it recorded an entry.
// Later calls do nothing.
func (g *GroupScope) End() bool {
	if !g.active {
		return false
	}
	g.active = false
	return g.history.EndGroup()
}
