// Package tm implements the typemap engine's core: the scoped store (§4.1),
// the key codec (§4.2), the registrar (§4.3), the lookup engine (§4.4), the
// variable substitution engine (§4.5) and the attach/lookup facade (§4.6).
//
// The file layout mirrors how the teacher codebase splits a single
// conceptual component (its symbol table) across many small, focused
// files: core.go holds the shared record types, and each concern gets its
// own file (store.go, codec.go, register.go, lookup.go, subst.go,
// facade.go, debug.go).
package tm

import "github.com/funvibe/typemap/internal/ctype"

// Entry is a rule record (spec §3 "Rule entry E"). Every field is set via
// deep copy on registration; no Entry ever aliases a caller's parameter
// list or a value owned by another scope.
type Entry struct {
	Code    string
	Type    ctype.T
	PName   string
	Typemap string
	Locals  []*Local
	Kwargs  []KwArg

	// A shell entry (one left behind by clear) has Code == ""; HasCode
	// tells it apart from an entry that carries code, which is the
	// distinction spec §4.4 needs ("the first candidate that yields an
	// entry with non-empty code").
}

// HasCode reports whether e carries a non-empty code template (spec §4.4).
func (e *Entry) HasCode() bool {
	return e != nil && e.Code != ""
}

// Clone returns a deep copy of e, independent of the original's locals and
// kwargs slices (spec §3 "Deep-copy on insert").
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	clone := &Entry{
		Code:    e.Code,
		Type:    e.Type,
		PName:   e.PName,
		Typemap: e.Typemap,
	}
	if e.Locals != nil {
		clone.Locals = make([]*Local, len(e.Locals))
		for i, l := range e.Locals {
			clone.Locals[i] = l.Clone()
		}
	}
	if e.Kwargs != nil {
		clone.Kwargs = make([]KwArg, len(e.Kwargs))
		copy(clone.Kwargs, e.Kwargs)
	}
	return clone
}

// Local is an auxiliary variable declaration a rule asks the wrapper
// builder to inject (spec §3 "Local", §4.7).
type Local struct {
	Name string
	Type ctype.T
}

// Clone returns a copy of l.
func (l *Local) Clone() *Local {
	if l == nil {
		return nil
	}
	return &Local{Name: l.Name, Type: l.Type}
}

// KwArg is a name/value keyword-argument pair attached alongside an entry's
// code (spec §3 "kwargs").
type KwArg struct {
	Name  string
	Value string
}

// methodSet is the per-method entry dictionary shared by typeNode and
// nameNode (spec §3: both "may hold ... per-method entries").
type methodSet struct {
	methods map[string]*Entry
}

func newMethodSet() methodSet {
	return methodSet{methods: make(map[string]*Entry)}
}

func (m *methodSet) entry(key string) (*Entry, bool) {
	e, ok := m.methods[key]
	return e, ok
}

func (m *methodSet) setEntry(key string, e *Entry) {
	m.methods[key] = e
}

func (m *methodSet) deleteEntry(key string) {
	delete(m.methods, key)
}

func (m *methodSet) keys() []string {
	keys := make([]string, 0, len(m.methods))
	for k := range m.methods {
		keys = append(keys, k)
	}
	return keys
}

// nameNode holds the per-method entries filed directly under a
// (type, name) pair (spec §3 "nameNode").
type nameNode struct {
	methodSet
}

func newNameNode() *nameNode {
	return &nameNode{methodSet: newMethodSet()}
}

// typeNode holds the per-method entries filed directly under a bare type,
// plus the nested per-name map (spec §3 "typeNode").
type typeNode struct {
	methodSet
	names map[string]*nameNode
}

func newTypeNode() *typeNode {
	return &typeNode{
		methodSet: newMethodSet(),
		names:     make(map[string]*nameNode),
	}
}

// scope is one frame of the lookup stack (spec §3 "Scope S").
type scope struct {
	types map[ctype.T]*typeNode

	// shared is the generic string-keyed slot scope-sharing clients use
	// (spec §6 "%except"); it is not part of the type/name node tree.
	shared map[string]string
}

func newScope() *scope {
	return &scope{
		types:  make(map[ctype.T]*typeNode),
		shared: make(map[string]string),
	}
}
