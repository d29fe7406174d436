// Package except implements the %except scope-sharing client (spec §6
// "Scope-sharing clients"): the only collaborator outside internal/tm that
// touches the scope stack directly, and only through the single
// well-known key tmconfig.ExceptKey.
package except

import "github.com/funvibe/typemap/internal/tm"

// Set stores handler under the well-known except key in the store's
// current (top) scope.
func Set(s *tm.Store, handler string) {
	s.SetShared(tm.ExceptKeyName(), handler)
}

// Get searches the scope stack top-down for the nearest %except handler,
// returning ("", false) if none of the scopes on the stack has one.
func Get(s *tm.Store) (string, bool) {
	return s.GetSharedTopDown(tm.ExceptKeyName())
}
