package template

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Catalog stores engines by name so configuration files can refer to them
// ("pongo2", "expr", "static").
type Catalog struct {
	mu      sync.RWMutex
	engines map[string]Engine
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{engines: make(map[string]Engine)}
}

// Register adds an engine under name. Duplicate names return an error.
func (c *Catalog) Register(name string, engine Engine) error {
	name = normalizeName(name)
	if name == "" {
		return fmt.Errorf("template: engine name is required")
	}
	if engine == nil {
		return fmt.Errorf("template: engine %q is nil", name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.engines[name]; exists {
		return fmt.Errorf("template: engine %q already registered", name)
	}
	c.engines[name] = engine
	return nil
}

// MustRegister panics on registration failure.
func (c *Catalog) MustRegister(name string, engine Engine) {
	if err := c.Register(name, engine); err != nil {
		panic(err)
	}
}

// Get retrieves an engine by name.
func (c *Catalog) Get(name string) (Engine, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	engine, ok := c.engines[normalizeName(name)]
	if !ok {
		return nil, fmt.Errorf("template: engine %q not found", name)
	}
	return engine, nil
}

// List returns the sorted engine names.
func (c *Catalog) List() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.engines))
	for name := range c.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is registered.
func (c *Catalog) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.engines[normalizeName(name)]
	return ok
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
