package keymap

import (
	"fmt"
	"sort"
	"sync"

	"github.com/termput/termput/internal/input/key"
)

// ErrKeymapAlreadyRegistered is returned when registering a duplicate name.
var ErrKeymapAlreadyRegistered = fmt.Errorf("keymap already registered")

// ErrNoBinding is returned by Dispatch when no binding matches an event.
var ErrNoBinding = fmt.Errorf("no binding for event")

// ErrNoHandler is returned by Dispatch when a binding's action has no
// registered handler.
var ErrNoHandler = fmt.Errorf("no handler for action")

// HandlerFunc executes one action. Args carries the binding's fixed
// arguments and may be nil.
type HandlerFunc func(e key.Event, args map[string]any) error

// Registry layers keymaps and dispatches resolved actions to handlers.
// It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	keymaps  map[string]*Compiled
	ordered  []*Compiled
	handlers map[string]HandlerFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		keymaps:  make(map[string]*Compiled),
		handlers: make(map[string]HandlerFunc),
	}
}

// Register compiles and adds a keymap. Registering a name twice is an
// error; use Replace to swap a layer in place.
func (r *Registry) Register(km *Keymap) error {
	compiled, err := km.Compile()
	if err != nil {
		return fmt.Errorf("compiling keymap %q: %w", km.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.keymaps[km.Name]; exists {
		return fmt.Errorf("%w: %s", ErrKeymapAlreadyRegistered, km.Name)
	}
	r.keymaps[km.Name] = compiled
	r.reorder()
	return nil
}

// Replace registers a keymap, replacing any existing layer with the same
// name.
func (r *Registry) Replace(km *Keymap) error {
	compiled, err := km.Compile()
	if err != nil {
		return fmt.Errorf("compiling keymap %q: %w", km.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.keymaps[km.Name] = compiled
	r.reorder()
	return nil
}

// Unregister removes a keymap by name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.keymaps, name)
	r.reorder()
}

// Keymaps returns the registered keymaps in resolution order.
func (r *Registry) Keymaps() []*Keymap {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Keymap, 0, len(r.ordered))
	for _, c := range r.ordered {
		result = append(result, c.Keymap)
	}
	return result
}

// reorder rebuilds the resolution order: priority descending, then name
// for determinism. Caller holds the lock.
func (r *Registry) reorder() {
	r.ordered = r.ordered[:0]
	for _, c := range r.keymaps {
		r.ordered = append(r.ordered, c)
	}
	sort.Slice(r.ordered, func(i, j int) bool {
		if r.ordered[i].Priority != r.ordered[j].Priority {
			return r.ordered[i].Priority > r.ordered[j].Priority
		}
		return r.ordered[i].Name < r.ordered[j].Name
	})
}

// Resolve returns the binding for an event, consulting keymaps in
// priority order. The second result is false if nothing matches.
func (r *Registry) Resolve(e key.Event) (Binding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.ordered {
		if b := c.Resolve(e); b != nil {
			return *b, true
		}
	}
	return Binding{}, false
}

// Handle registers a handler for an action identifier, replacing any
// previous handler.
func (r *Registry) Handle(action string, fn HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[action] = fn
}

// Dispatch resolves an event and runs its action's handler. Events with
// no binding return ErrNoBinding; bound actions with no handler return
// ErrNoHandler.
func (r *Registry) Dispatch(e key.Event) error {
	binding, ok := r.Resolve(e)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoBinding, e)
	}

	r.mu.RLock()
	fn, ok := r.handlers[binding.Action]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoHandler, binding.Action)
	}
	return fn(e, binding.Args)
}
