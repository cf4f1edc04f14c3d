package history

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/pushcore/internal/core"
)

// Handler is the type-independent face of a Track.
type Handler interface {
	Apply(cmd Command)
	Forget(id core.EntityID)
}

// Registry enumerates the tracked component types and broadcasts every
// history command to all of them in the same tick.
type Registry struct {
	mu       sync.RWMutex
	names    []string
	handlers map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
	}
}

// Register adds a handler under a unique name.
// Panics if the name is already registered.
func (r *Registry) Register(name string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[name]; exists {
		panic(fmt.Sprintf("history: handler %q already registered", name))
	}
	r.handlers[name] = h
	r.names = append(r.names, name)
}

// Names returns the registered handler names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Handler returns a registered handler by name.
func (r *Registry) Handler(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.handlers[name]
	return h, ok
}

// Broadcast applies one command to every handler. None is a no-op.
func (r *Registry) Broadcast(cmd Command) {
	if cmd == None {
		return
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range r.names {
		r.handlers[name].Apply(cmd)
	}
}

// Forget drops an entity's stacks from every handler.
func (r *Registry) Forget(id core.EntityID) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range r.names {
		r.handlers[name].Forget(id)
	}
}
