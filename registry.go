package dataplist

import (
	"fmt"
	"sort"
	"sync"
)

// ArchivedObject is the capability every reconstructible type implements.
// ReplaceArchived receives the instance's reified field mapping, with the
// class reference already removed, and returns the value that stands in for
// the instance in the reconstructed tree. Implementations return themselves
// to keep a typed wrapper, or unbox into a native value.
type ArchivedObject interface {
	ReplaceArchived(fields map[string]any) (any, error)
}

// Factory produces a fresh candidate instance for one archived class. The
// reifier only accepts results implementing ArchivedObject; anything else is
// reported and the instance stays an untyped mapping.
type Factory func() any

// Registry maps archived class names to factories. Class names are
// case-sensitive. The zero value is unusable; construct with NewRegistry.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register stores factory under name, guarding against duplicates.
func (r *Registry) Register(name string, factory Factory) error {
	if factory == nil {
		return fmt.Errorf("%w: %q", ErrNilFactory, name)
	}
	if name == "" {
		return ErrEmptyClassName
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.factories == nil {
		r.factories = make(map[string]Factory)
	}
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("%w: %q", ErrClassRegistered, name)
	}
	r.factories[name] = factory
	return nil
}

// Lookup returns the factory registered for name.
func (r *Registry) Lookup(name string) (Factory, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.factories[name]
	return factory, ok
}

// Clone returns a shallow copy of the registry.
func (r *Registry) Clone() *Registry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := &Registry{
		factories: make(map[string]Factory, len(r.factories)),
	}
	for name, factory := range r.factories {
		clone.factories[name] = factory
	}
	return clone
}

// Names returns registered class names sorted alphabetically.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
