package asset

import (
	"fmt"
	"path/filepath"

	"github.com/Norgate-AV/scssc/internal/config"
)

// Registry holds the declared assets. It is read-only after construction.
type Registry struct {
	defs  []Definition
	index map[string]int
}

// NewRegistry builds a registry, keeping declaration order
func NewRegistry(defs []Definition) (*Registry, error) {
	r := &Registry{
		defs:  make([]Definition, 0, len(defs)),
		index: make(map[string]int, len(defs)),
	}

	for _, def := range defs {
		if def.Name == "" {
			return nil, &config.ConfigurationError{Message: "asset name must not be empty"}
		}

		if def.Source == "" {
			return nil, &config.ConfigurationError{Asset: def.Name, Message: "src is required"}
		}

		if _, exists := r.index[def.Name]; exists {
			return nil, &config.ConfigurationError{Asset: def.Name, Message: "asset is declared more than once"}
		}

		r.index[def.Name] = len(r.defs)
		r.defs = append(r.defs, def.Clone())
	}

	return r, nil
}

// RegistryFromConfig builds a registry from the assets of a validated config
func RegistryFromConfig(cfg *config.Config) (*Registry, error) {
	defs := make([]Definition, 0, len(cfg.Assets))
	for _, a := range cfg.Assets {
		defs = append(defs, FromConfig(a))
	}

	r, err := NewRegistry(defs)
	if err != nil {
		return nil, fmt.Errorf("failed to build asset registry: %w", err)
	}

	return r, nil
}

// Get returns the definition registered under name
func (r *Registry) Get(name string) (Definition, bool) {
	i, ok := r.index[name]
	if !ok {
		return Definition{}, false
	}

	return r.defs[i].Clone(), true
}

// Lookup finds a definition by logical name or by its declared source path
func (r *Registry) Lookup(path string) (Definition, bool) {
	if def, ok := r.Get(path); ok {
		return def, true
	}

	for _, def := range r.defs {
		if def.Source == path || filepath.ToSlash(def.Source) == path {
			return def.Clone(), true
		}
	}

	return Definition{}, false
}

// Names returns all names in declaration order
func (r *Registry) Names() []string {
	names := make([]string, len(r.defs))
	for i, def := range r.defs {
		names[i] = def.Name
	}

	return names
}

// Definitions returns a deep copy of all definitions in declaration order
func (r *Registry) Definitions() []Definition {
	defs := make([]Definition, len(r.defs))
	for i, def := range r.defs {
		defs[i] = def.Clone()
	}

	return defs
}

// IsEmpty reports whether no assets are registered
func (r *Registry) IsEmpty() bool {
	return len(r.defs) == 0
}
