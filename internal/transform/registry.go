package transform

import (
	"fmt"
	"sort"
)

// Factory builds a Transformer from a parsed institution config.
type Factory func(cfg *Config) Transformer

var registry = map[string]Factory{}

// Register associates a source name with a transformer factory. Called
// from init in each variant file; registering the same name twice is a
// programming error and panics.
func Register(source string, factory Factory) {
	if _, exists := registry[source]; exists {
		panic(fmt.Sprintf("transform: source %q registered twice", source))
	}
	registry[source] = factory
}

// New builds the transformer registered under source.
func New(source string, cfg *Config) (Transformer, error) {
	factory, ok := registry[source]
	if !ok {
		return nil, fmt.Errorf("transform: unknown source %q (known: %v)", source, Sources())
	}
	return factory(cfg), nil
}

// Sources lists the registered source names, sorted.
func Sources() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
