// Package nav owns the per-visitor navigation state (language and sidebar
// expansion) and resolves a route id to a renderable page.
package nav

import "sort"

// Expansion is the set of part ids whose sections are visible in the
// sidebar.
type Expansion map[string]struct{}

// NewExpansion builds a set from ids.
func NewExpansion(ids ...string) Expansion {
	e := make(Expansion, len(ids))
	for _, id := range ids {
		e[id] = struct{}{}
	}
	return e
}

// Toggle flips membership of id.
func (e Expansion) Toggle(id string) {
	if _, ok := e[id]; ok {
		delete(e, id)
		return
	}
	e[id] = struct{}{}
}

// Has reports whether id is expanded.
func (e Expansion) Has(id string) bool {
	_, ok := e[id]
	return ok
}

// IDs returns the members sorted.
func (e Expansion) IDs() []string {
	ids := make([]string, 0, len(e))
	for id := range e {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns an independent copy.
func (e Expansion) Clone() Expansion {
	return NewExpansion(e.IDs()...)
}

// Equal reports whether both sets hold the same ids.
func (e Expansion) Equal(o Expansion) bool {
	if len(e) != len(o) {
		return false
	}
	for id := range e {
		if !o.Has(id) {
			return false
		}
	}
	return true
}
