package script

import "sort"

// Key is one built-in function callable from scripts. Implementations come
// from the engine adapter; the core only needs names for validation.
type Key interface {
	Name() string
}

// Registry is the process-wide set of built-in keys. It is built once at
// startup and read-only afterwards, so it is shared across concurrent
// invocations without locking.
type Registry struct {
	keys map[string]Key
}

func NewRegistry(keys ...Key) *Registry {
	m := make(map[string]Key, len(keys))
	for _, k := range keys {
		m[k.Name()] = k
	}
	return &Registry{keys: m}
}

func (r *Registry) Get(name string) (Key, bool) {
	k, ok := r.keys[name]
	return k, ok
}

func (r *Registry) Has(name string) bool {
	_, ok := r.keys[name]
	return ok
}

func (r *Registry) Len() int {
	return len(r.keys)
}

// Names returns the registered key names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.keys))
	for name := range r.keys {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
