package tm

import (
	"fmt"

	"github.com/funvibe/typemap/internal/ctype"
	"github.com/funvibe/typemap/internal/param"
	"github.com/funvibe/typemap/internal/tmconfig"
)

// Store is the scoped typemap store (spec §4.1): a stack of scopes, each a
// two-level keyed map from (type, name) to per-method entries. It owns
// every node it contains; callers receive borrowed views that become
// invalid once the owning scope is popped (spec §5).
//
// Store also owns the type-utilities registry (typedef table and
// remembered-descriptor set) and the method-name interning table (spec §5
// "Resource lifecycle"), since both are process-wide state the engine must
// hold as an owned value rather than as a package global.
type Store struct {
	stack    []*scope
	registry *ctype.Registry
	intern   map[string]string

	// links holds the "tmap:op:next" attachment attach() writes (spec
	// §4.6 step 6): a pointer to the parameter following a consumed
	// multi-argument group, keyed by the consumed group's first
	// parameter and op. This is the one attachment attach() makes that
	// the param.Param attribute contract (string-valued getattr/setattr)
	// cannot represent directly.
	links map[string]*param.Param
}

// NewStore constructs a Store already initialized with a single global
// scope, equivalent to calling Init() on a zero Store.
func NewStore() *Store {
	s := &Store{}
	s.Init()
	return s
}

// Init resets the stack to a single, empty global scope (spec §4.1). It
// also resets the type-utilities registry and the interning table, giving
// the engine a completely fresh identity.
func (s *Store) Init() {
	s.stack = []*scope{newScope()}
	s.registry = ctype.NewRegistry()
	s.intern = make(map[string]string)
	s.links = make(map[string]*param.Param)
}

func linkKey(p *param.Param, op string) string {
	return fmt.Sprintf("%p|%s", p, op)
}

// setNextLink records the "tmap:op:next" attachment for the group starting
// at p (spec §4.6 step 6).
func (s *Store) setNextLink(p *param.Param, op string, next *param.Param) {
	s.links[linkKey(p, op)] = next
}

// NextLink returns the parameter attach() recorded as following the
// multi-argument group that starts at p for op, if any.
func (s *Store) NextLink(p *param.Param, op string) (*param.Param, bool) {
	next, ok := s.links[linkKey(p, op)]
	return next, ok
}

// Registry returns the store's type-utilities registry.
func (s *Store) Registry() *ctype.Registry {
	return s.registry
}

// Depth returns the current number of scopes on the stack (>= 1).
func (s *Store) Depth() int {
	return len(s.stack)
}

// internKey memoizes tmconfig.MethodKeyPrefix+op, matching spec §5's
// "method-name interning map" resource.
func (s *Store) internKey(op string) string {
	if key, ok := s.intern[op]; ok {
		return key
	}
	key := tmconfig.MethodKeyPrefix + op
	s.intern[op] = key
	return key
}

// PushScope pushes a fresh, empty scope. It panics with a *ScopeOverflowError
// if doing so would exceed tmconfig.MaxScopeDepth: spec §7 classifies scope
// overflow as fatal ("report and abort"), not a recoverable condition.
func (s *Store) PushScope() {
	if len(s.stack) >= tmconfig.MaxScopeDepth {
		panic(NewScopeOverflowError(len(s.stack), tmconfig.MaxScopeDepth))
	}
	s.stack = append(s.stack, newScope())
}

// PopScope removes and returns the top scope. The bottom scope is sticky:
// popping at depth 1 is a no-op that returns false (spec §4.1, §7 "Scope
// underflow").
func (s *Store) PopScope() (popped *scope, ok bool) {
	if len(s.stack) <= 1 {
		return nil, false
	}
	top := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return top, true
}

// topIndex returns the index of the top scope.
func (s *Store) topIndex() int {
	return len(s.stack) - 1
}

// scopeAt returns the scope at index idx, or nil if idx is out of range.
func (s *Store) scopeAt(idx int) *scope {
	if idx < 0 || idx >= len(s.stack) {
		return nil
	}
	return s.stack[idx]
}

// getTypeNode returns the typeNode for t in scope s, creating it if
// create is true.
func (s *scope) getTypeNode(t ctype.T, create bool) (*typeNode, bool) {
	tn, ok := s.types[t]
	if !ok && create {
		tn = newTypeNode()
		s.types[t] = tn
		ok = true
	}
	return tn, ok
}

// getNameNode returns the nameNode for name under tn, creating it if
// create is true.
func (tn *typeNode) getNameNode(name string, create bool) (*nameNode, bool) {
	nn, ok := tn.names[name]
	if !ok && create {
		nn = newNameNode()
		tn.names[name] = nn
		ok = true
	}
	return nn, ok
}

// methodHolder is satisfied by both *typeNode and *nameNode: whichever
// node a lookup lands on, it can store and retrieve per-method entries.
type methodHolder interface {
	entry(key string) (*Entry, bool)
	setEntry(key string, e *Entry)
	deleteEntry(key string)
	keys() []string
}

// GetNode fetches the typeNode for t (or, if name is non-empty, its
// nameNode) from the scope at index scopeIdx (spec §4.1). It returns
// (nil, false) if scopeIdx is out of range or no such node exists; the
// returned value is a borrowed view and must not be mutated by callers
// outside this package.
func (s *Store) GetNode(t ctype.T, name string, scopeIdx int) (methodHolder, bool) {
	sc := s.scopeAt(scopeIdx)
	if sc == nil {
		return nil, false
	}
	tn, ok := sc.getTypeNode(t, false)
	if !ok {
		return nil, false
	}
	if name == "" {
		return tn, true
	}
	nn, ok := tn.getNameNode(name, false)
	if !ok {
		return nil, false
	}
	return nn, true
}
