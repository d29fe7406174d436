// Package param implements the parameter-node contract the typemap engine
// consumes (spec §6): an attribute bag with at least type/name/lname/value,
// linked into an ordered list via NextSibling, with a clone operation the
// engine uses to avoid aliasing caller state (spec §3 invariants: "no entry
// ever holds a raw reference to a parameter node from the caller's parse
// tree").
package param

import "github.com/funvibe/typemap/internal/ctype"

// Param is the engine's parameter-node implementation. Real front-ends
// (the out-of-scope lexer/parser, spec §1) would adapt their own node type
// to this shape instead of using Param directly; the engine itself only
// depends on the behavior documented here, never on this concrete type.
type Param struct {
	Type  ctype.T
	Name  string
	LName string
	Value string

	// Extra holds attributes beyond the fixed fields above, keeping the
	// bag open for forward-compatible collaborators (spec §9 "Dynamic
	// dispatch via string keys").
	Extra map[string]string

	Next *Param
}

// New constructs a single parameter node with no list link.
func New(t ctype.T, name string) *Param {
	return &Param{Type: t, Name: name}
}

// GetAttr implements the getattr half of the parameter-node contract.
func (p *Param) GetAttr(key string) (string, bool) {
	if p == nil {
		return "", false
	}
	switch key {
	case "type":
		return string(p.Type), true
	case "name":
		return p.Name, true
	case "lname":
		return p.LName, true
	case "value":
		return p.Value, true
	}
	if p.Extra == nil {
		return "", false
	}
	v, ok := p.Extra[key]
	return v, ok
}

// SetAttr implements the setattr half of the parameter-node contract.
func (p *Param) SetAttr(key, value string) {
	switch key {
	case "type":
		p.Type = ctype.T(value)
		return
	case "name":
		p.Name = value
		return
	case "lname":
		p.LName = value
		return
	case "value":
		p.Value = value
		return
	}
	if p.Extra == nil {
		p.Extra = make(map[string]string)
	}
	p.Extra[key] = value
}

// NextSibling returns the next parameter in the list, or nil at the end.
func (p *Param) NextSibling() *Param {
	if p == nil {
		return nil
	}
	return p.Next
}

// Clone returns a deep copy of p alone, with Next set to nil.
func (p *Param) Clone() *Param {
	if p == nil {
		return nil
	}
	clone := &Param{
		Type:  p.Type,
		Name:  p.Name,
		LName: p.LName,
		Value: p.Value,
	}
	if p.Extra != nil {
		clone.Extra = make(map[string]string, len(p.Extra))
		for k, v := range p.Extra {
			clone.Extra[k] = v
		}
	}
	return clone
}

// CloneList returns a deep copy of the whole list starting at p.
func CloneList(p *Param) *Param {
	if p == nil {
		return nil
	}
	head := p.Clone()
	cur := head
	for src := p.Next; src != nil; src = src.Next {
		cur.Next = src.Clone()
		cur = cur.Next
	}
	return head
}

// Len counts the nodes in the list starting at p.
func Len(p *Param) int {
	n := 0
	for ; p != nil; p = p.Next {
		n++
	}
	return n
}

// At returns the i-th node (0-based) in the list starting at p, or nil if
// the list is shorter than i+1.
func At(p *Param, i int) *Param {
	for ; p != nil && i > 0; i-- {
		p = p.Next
	}
	return p
}

// ToSlice flattens the list starting at p into a slice, without copying
// nodes.
func ToSlice(p *Param) []*Param {
	var out []*Param
	for ; p != nil; p = p.Next {
		out = append(out, p)
	}
	return out
}

// FromSlice links a slice of nodes into a list, mutating each node's Next
// pointer. It returns the head (ps[0], or nil for an empty slice).
func FromSlice(ps []*Param) *Param {
	for i := 0; i+1 < len(ps); i++ {
		ps[i].Next = ps[i+1]
	}
	if len(ps) == 0 {
		return nil
	}
	ps[len(ps)-1].Next = nil
	return ps[0]
}
