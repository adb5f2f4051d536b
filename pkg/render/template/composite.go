package template

import (
	"fmt"
	"slices"
	"sync"

	"github.com/goliatone/go-doctemplate/pkg/render"
)

// Binding pairs a pattern with the engine that compiles matching files.
type Binding struct {
	Pattern Pattern
	Engine  Engine
}

// Composite is an ordered set of bindings. Resolution walks the bindings in
// registration order and the first match wins; later registrations never
// override earlier ones implicitly.
type Composite struct {
	mu       sync.RWMutex
	bindings []Binding
	err      error
}

// Ensure Composite can stand in for a single engine.
var _ Engine = (*Composite)(nil)

// NewComposite creates an empty composite engine.
func NewComposite() *Composite {
	return &Composite{}
}

// Register binds pattern to engine and returns c for chaining. The first
// failure is retained and reported by Err; subsequent registrations are
// still attempted so every binding that is valid stays in order.
func (c *Composite) Register(pattern string, engine Engine) *Composite {
	p, err := ParsePattern(pattern)
	if err == nil && engine == nil {
		err = render.NewConfigurationError("engine", pattern, fmt.Errorf("engine is nil"))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		if c.err == nil {
			c.err = err
		}
		return c
	}
	c.bindings = append(c.bindings, Binding{Pattern: p, Engine: engine})
	return c
}

// MustRegister mirrors Register but panics on an invalid binding.
func (c *Composite) MustRegister(pattern string, engine Engine) *Composite {
	c.Register(pattern, engine)
	if err := c.Err(); err != nil {
		panic(err)
	}
	return c
}

// Bind appends bindings whose patterns were built with ParsePattern. A zero
// Pattern or a nil engine is recorded as the first error, like Register.
func (c *Composite) Bind(bindings ...Binding) *Composite {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, binding := range bindings {
		if !binding.Pattern.Valid() {
			if c.err == nil {
				c.err = render.NewConfigurationError("pattern", binding.Pattern.String(), fmt.Errorf("pattern is not parsed"))
			}
			continue
		}
		if binding.Engine == nil {
			if c.err == nil {
				c.err = render.NewConfigurationError("engine", binding.Pattern.String(), fmt.Errorf("engine is nil"))
			}
			continue
		}
		c.bindings = append(c.bindings, binding)
	}
	return c
}

// Err reports the first registration failure.
func (c *Composite) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// Resolve returns the engine of the first binding matching fileName.
func (c *Composite) Resolve(fileName string) (Engine, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, binding := range c.bindings {
		if binding.Pattern.Match(fileName) {
			return binding.Engine, true
		}
	}
	return nil, false
}

// Bindings returns a copy of the bindings in registration order.
func (c *Composite) Bindings() []Binding {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.bindings)
}

// Len reports the number of bindings.
func (c *Composite) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.bindings)
}

// Compile resolves the engine for src.Name and delegates to it.
func (c *Composite) Compile(src Source) (render.RenderFunc, error) {
	engine, ok := c.Resolve(src.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoEngine, src.Name)
	}
	return engine.Compile(src)
}
