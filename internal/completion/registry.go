package completion

import (
	"fmt"
	"strings"
)

// Registry maps resolver identifiers to implementations. It is populated once
// at startup and only read afterwards.
type Registry struct {
	resolvers map[string]Resolver
	order     []string
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{resolvers: make(map[string]Resolver)}
}

// Register adds a resolver. The identifier may be given with or without PluginPrefix.
func (r *Registry) Register(id string, resolver Resolver) error {
	id = strings.TrimPrefix(id, PluginPrefix)
	if id == "" {
		return fmt.Errorf("resolver identifier must not be empty")
	}
	if resolver == nil {
		return fmt.Errorf("resolver %q is nil", id)
	}
	if _, exists := r.resolvers[id]; exists {
		return fmt.Errorf("resolver %q already registered", id)
	}

	r.resolvers[id] = resolver
	r.order = append(r.order, id)
	return nil
}

// Lookup returns the resolver registered under id
func (r *Registry) Lookup(id string) (Resolver, bool) {
	if r == nil {
		return nil, false
	}
	resolver, ok := r.resolvers[strings.TrimPrefix(id, PluginPrefix)]
	return resolver, ok
}

// Has reports whether a resolver is registered under id
func (r *Registry) Has(id string) bool {
	_, ok := r.Lookup(id)
	return ok
}

// IDs returns the registered identifiers in registration order
func (r *Registry) IDs() []string {
	if r == nil {
		return nil
	}
	return append([]string{}, r.order...)
}
