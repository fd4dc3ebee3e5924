package keymap

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Hakkology/MuginCAD-sub001/internal/input/key"
)

// ActionNone in a higher-priority keymap unbinds the key.
const ActionNone = "none"

// Keymap holds a named set of key bindings.
type Keymap struct {
	// Name is the keymap identifier.
	Name string

	// Bindings are the key-to-action mappings.
	Bindings []Binding

	// Priority determines precedence when multiple keymaps bind a key.
	// Higher priority wins. Default is 0.
	Priority int

	// Source indicates where this keymap was defined.
	// Examples: "default", "config"
	Source string
}

// NewKeymap creates a new keymap with the given name.
func NewKeymap(name string) *Keymap {
	return &Keymap{Name: name}
}

// FromMap builds a keymap from key spec to action pairs, as found in the
// [keymap] configuration table. Bindings are sorted by key for stable
// validation errors.
func FromMap(name string, m map[string]string) *Keymap {
	km := NewKeymap(name)
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		km.Add(k, m[k])
	}
	return km
}

// WithPriority sets the priority for this keymap.
func (k *Keymap) WithPriority(priority int) *Keymap {
	k.Priority = priority
	return k
}

// WithSource sets the source for this keymap.
func (k *Keymap) WithSource(source string) *Keymap {
	k.Source = source
	return k
}

// Add adds a binding to this keymap.
func (k *Keymap) Add(keys, action string) *Keymap {
	k.Bindings = append(k.Bindings, NewBinding(keys, action))
	return k
}

// Validate checks that all bindings in the keymap are valid.
func (k *Keymap) Validate() error {
	_, err := k.parse()
	return err
}

// Clone creates a deep copy of the keymap.
func (k *Keymap) Clone() *Keymap {
	clone := *k
	clone.Bindings = append([]Binding(nil), k.Bindings...)
	return &clone
}

func (k *Keymap) parse() (map[string]Binding, error) {
	parsed := make(map[string]Binding, len(k.Bindings))
	for i, b := range k.Bindings {
		if b.Action == "" {
			return nil, fmt.Errorf("binding %d (%s): empty action", i, b.Keys)
		}
		spec, err := key.NormalizeSpec(b.Keys)
		if err != nil {
			return nil, fmt.Errorf("binding %d (%s): %w", i, b.Keys, err)
		}
		parsed[spec] = b
	}
	return parsed, nil
}

type registered struct {
	keymap *Keymap
	byKey  map[string]Binding
	order  int
}

// Registry holds keymaps and resolves key presses against them.
type Registry struct {
	mu      sync.RWMutex
	keymaps map[string]*registered
	next    int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{keymaps: make(map[string]*registered)}
}

// Register adds a keymap. A keymap with the same name is replaced.
func (r *Registry) Register(km *Keymap) error {
	if km == nil {
		return fmt.Errorf("cannot register nil keymap")
	}
	byKey, err := km.parse()
	if err != nil {
		return fmt.Errorf("parsing keymap %q: %w", km.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.keymaps[km.Name] = &registered{keymap: km.Clone(), byKey: byKey, order: r.next}
	return nil
}

// Unregister removes a keymap.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.keymaps, name)
}

// Lookup returns the binding for ev. Among keymaps binding the same key the
// highest priority wins, then the most recently registered. A winning
// binding to ActionNone reports no binding.
func (r *Registry) Lookup(ev key.Event) (Binding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	spec := ev.Spec()
	var best *registered
	var found Binding
	for _, km := range r.keymaps {
		b, ok := km.byKey[spec]
		if !ok {
			continue
		}
		if best == nil || outranks(km, best) {
			best, found = km, b
		}
	}
	if best == nil || found.Action == ActionNone {
		return Binding{}, false
	}
	return found, true
}

// KeysFor returns the canonical keys currently bound to action, sorted.
func (r *Registry) KeysFor(action string) []string {
	var keys []string
	for _, b := range r.Effective() {
		if b.Action == action {
			keys = append(keys, b.Keys)
		}
	}
	return keys
}

// Effective returns every active binding with Keys in canonical form,
// sorted by key.
func (r *Registry) Effective() []Binding {
	r.mu.RLock()
	specs := make(map[string]struct{})
	for _, km := range r.keymaps {
		for spec := range km.byKey {
			specs[spec] = struct{}{}
		}
	}
	r.mu.RUnlock()

	out := make([]Binding, 0, len(specs))
	for spec := range specs {
		ev, err := key.Parse(spec)
		if err != nil {
			continue
		}
		if b, ok := r.Lookup(ev); ok {
			b.Keys = spec
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Keys < out[j].Keys })
	return out
}

func outranks(a, b *registered) bool {
	if a.keymap.Priority != b.keymap.Priority {
		return a.keymap.Priority > b.keymap.Priority
	}
	return a.order > b.order
}
