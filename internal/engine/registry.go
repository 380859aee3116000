package engine

import (
	"fmt"
	"log/slog"
	"sort"
)

// Module is the interface that engine adapter packages implement to be
// registered with an application instance.
type Module interface {
	Register(r *Registry)
}

// Registry holds the engines available to a single application
// instance, keyed by engine name.
type Registry struct {
	engines map[string]Engine
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		engines: make(map[string]Engine),
	}
}

// Register adds an engine to the registry. Registering the same name
// twice is a programmer error and panics.
func (r *Registry) Register(e Engine) {
	name := e.Name()
	if _, exists := r.engines[name]; exists {
		panic(fmt.Sprintf("engine with name '%s' already registered", name))
	}
	slog.Debug("Registering engine.", "name", name)
	r.engines[name] = e
}

// Lookup returns the engine registered under name.
func (r *Registry) Lookup(name string) (Engine, error) {
	e, ok := r.engines[name]
	if !ok {
		return nil, fmt.Errorf("no engine registered under name '%s'", name)
	}
	return e, nil
}

// Names returns the sorted names of all registered engines.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.engines))
	for name := range r.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
