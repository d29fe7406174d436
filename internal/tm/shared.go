package tm

import "github.com/funvibe/typemap/internal/tmconfig"

// ExceptKeyName exposes tmconfig.ExceptKey to scope-sharing clients
// without requiring them to import tmconfig themselves (spec §6
// "Scope-sharing clients").
func ExceptKeyName() string {
	return tmconfig.ExceptKey
}

// SetShared writes value under key in the current (top) scope's shared
// slot (spec §6: "%except stores a single string under the well-known
// key ... in the current scope").
func (s *Store) SetShared(key, value string) {
	sc := s.scopeAt(s.topIndex())
	sc.shared[key] = value
}

// GetSharedTopDown searches the scope stack top-down for key, returning
// the first value found (spec §6: "reads it back with top-down scope
// search").
func (s *Store) GetSharedTopDown(key string) (string, bool) {
	for idx := s.topIndex(); idx >= 0; idx-- {
		sc := s.scopeAt(idx)
		if v, ok := sc.shared[key]; ok {
			return v, true
		}
	}
	return "", false
}
