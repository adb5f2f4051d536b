package render

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// ErrUnknownBackend reports a lookup for a backend name that was never
// registered.
var ErrUnknownBackend = errors.New("render: unknown backend")

// Registry keeps the backends that can terminate a template chain, keyed by
// their lower-cased Name.
type Registry struct {
	mu       sync.RWMutex
	backends map[string]DefaultRenderer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{backends: make(map[string]DefaultRenderer)}
}

// Register adds backend under its Name. Names are unique.
func (r *Registry) Register(backend DefaultRenderer) error {
	if backend == nil {
		return errors.New("render: backend is required")
	}
	name := backendKey(backend.Name())
	if name == "" {
		return errors.New("render: backend name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.backends[name]; exists {
		return fmt.Errorf("render: backend %q already registered", name)
	}
	r.backends[name] = backend
	return nil
}

// MustRegister panics when Register fails.
func (r *Registry) MustRegister(backend DefaultRenderer) {
	if err := r.Register(backend); err != nil {
		panic(err)
	}
}

// Get returns the backend registered under name, matching case-insensitively.
func (r *Registry) Get(name string) (DefaultRenderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	backend, ok := r.backends[backendKey(name)]
	if !ok {
		return nil, fmt.Errorf("%w %q (registered: %s)", ErrUnknownBackend, name, strings.Join(r.names(), ", "))
	}
	return backend, nil
}

// List returns the registered names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.names()
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.backends[backendKey(name)]
	return ok
}

func (r *Registry) names() []string {
	return slices.Sorted(maps.Keys(r.backends))
}

func backendKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
