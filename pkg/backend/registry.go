package backend

import (
	"slices"
	"sync"

	"github.com/matzehuels/canvasbench/pkg/errors"
)

// Constructor creates a fresh backend instance.
type Constructor func() Backend

// Registry maps backend names to constructors.
type Registry struct {
	mu    sync.RWMutex
	ctors map[string]Constructor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

// Register adds a backend under name. Registering a name twice replaces the
// earlier constructor.
func (r *Registry) Register(name string, c Constructor) error {
	if err := errors.ValidateBackendName(name); err != nil {
		return err
	}
	if c == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nil constructor for backend %q", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctors[name] = c
	return nil
}

// MustRegister is Register that panics on error.
func (r *Registry) MustRegister(name string, c Constructor) {
	if err := r.Register(name, c); err != nil {
		panic(err)
	}
}

// New creates the backend registered under name.
func (r *Registry) New(name string) (Backend, error) {
	r.mu.RLock()
	c, ok := r.ctors[name]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidBackend, "unknown backend %q (available: %v)", name, r.Names())
	}
	return c(), nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.ctors))
	for n := range r.ctors {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ctors[name]
	return ok
}
