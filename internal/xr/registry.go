package xr

import "fmt"

// RuntimeFactory creates a Runtime from a session configuration. Factories
// for real runtime bindings register during package init; the in-process
// reference runtime registers as "fake".
type RuntimeFactory func(cfg SessionConfig) (Runtime, error)

var registry = make(map[string]RuntimeFactory)

// RegisterRuntime registers a runtime factory under the given name.
// This should be called during package init.
func RegisterRuntime(name string, factory RuntimeFactory) {
	registry[name] = factory
}

// NewRuntime instantiates the named runtime.
func NewRuntime(name string, cfg SessionConfig) (Runtime, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown runtime: %s", name)
	}
	return factory(cfg)
}

// RegisteredRuntimes returns the names of all registered runtime factories.
func RegisteredRuntimes() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	return names
}
