package sim

import "log"

// A Named object is an object that has a name.
type Named interface {
	Name() string
}

// NameMustBeValid panics if name is empty. Every named simulation object
// (component, buffer) needs a non-empty name so trace output and the
// monitoring dashboard can identify it.
func NameMustBeValid(name string) {
	if name == "" {
		log.Panic("name cannot be empty")
	}
}

// A Component is an element that participates in the discrete-event
// simulation. Components in this engine talk to each other through direct,
// borrowed method calls rather than through simulated network ports: the
// only cross-component boundary that matters here is "who owns this event".
type Component interface {
	Named
	Handler
	Hookable
}

// ComponentBase provides the bookkeeping every Component needs.
type ComponentBase struct {
	HookableBase

	name string
}

// NewComponentBase creates a new ComponentBase.
func NewComponentBase(name string) *ComponentBase {
	NameMustBeValid(name)

	return &ComponentBase{name: name}
}

// Name returns the name of the component.
func (c *ComponentBase) Name() string {
	return c.name
}
