package homework

import (
	"slices"

	"github.com/pkg/errors"
)

// Factory makes a fresh, uninitialized homework.
type Factory func() Homework

type Entry struct {
	Name        string
	Description string
	New         Factory
}

// Registry maps names to homework factories.
type Registry struct {
	entries map[string]Entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register adds a homework. Names are unique.
func (r *Registry) Register(name, description string, factory Factory) error {
	if name == "" || factory == nil {
		return errors.New("homework needs a name and a factory")
	}
	if _, dup := r.entries[name]; dup {
		return errors.Errorf("homework %q already registered", name)
	}
	r.entries[name] = Entry{Name: name, Description: description, New: factory}
	return nil
}

// MustRegister is Register for package initialization.
func (r *Registry) MustRegister(name, description string, factory Factory) {
	if err := r.Register(name, description, factory); err != nil {
		panic(err)
	}
}

func (r *Registry) Lookup(name string) (Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Entries returns every entry ordered by name.
func (r *Registry) Entries() []Entry {
	names := r.Names()
	entries := make([]Entry, len(names))
	for i, name := range names {
		entries[i] = r.entries[name]
	}
	return entries
}
