// Package plugins keeps the set of search plugins available to the host.
package plugins

import (
	"fmt"
	"sync"

	"quicksearch.dev/qsbp/internal/core/domain"
	"quicksearch.dev/qsbp/internal/core/ports"
)

// Registry holds plugins in registration order
type Registry struct {
	plugins map[string]ports.Plugin
	order   []string
	mutex   sync.RWMutex
}

// NewRegistry creates a registry with the given plugins
func NewRegistry(plugins ...ports.Plugin) (*Registry, error) {
	r := &Registry{plugins: make(map[string]ports.Plugin)}
	for _, p := range plugins {
		if err := r.Register(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a plugin. Names must be unique.
func (r *Registry) Register(p ports.Plugin) error {
	if p == nil {
		return fmt.Errorf("register plugin: nil plugin")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	name := p.Name()
	if _, exists := r.plugins[name]; exists {
		return fmt.Errorf("plugin %s already registered", name)
	}
	r.plugins[name] = p
	r.order = append(r.order, name)
	return nil
}

// Lookup finds a plugin by name
func (r *Registry) Lookup(name string) (ports.Plugin, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	p, ok := r.plugins[name]
	if !ok {
		return nil, fmt.Errorf("plugin %s: %w", name, domain.ErrNotFound)
	}
	return p, nil
}

// All returns the plugins in registration order
func (r *Registry) All() []ports.Plugin {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	out := make([]ports.Plugin, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.plugins[name])
	}
	return out
}

// Names returns the plugin names in registration order
func (r *Registry) Names() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return append([]string(nil), r.order...)
}

// ActionFor returns the first registered action that applies to results
func (r *Registry) ActionFor(results []domain.Result) (ports.Action, bool) {
	for _, p := range r.All() {
		action := p.Action()
		if action != nil && action.AppliesToResults(results) {
			return action, true
		}
	}
	return nil, false
}
