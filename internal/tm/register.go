package tm

import (
	"strings"

	"github.com/funvibe/typemap/internal/param"
	"github.com/funvibe/typemap/internal/tmconfig"
)

func cloneLocals(locals []*Local) []*Local {
	if locals == nil {
		return nil
	}
	out := make([]*Local, len(locals))
	for i, l := range locals {
		out[i] = l.Clone()
	}
	return out
}

func cloneKwargs(kwargs []KwArg) []KwArg {
	if kwargs == nil {
		return nil
	}
	return append([]KwArg(nil), kwargs...)
}

// Register stores a rule in the top scope (spec §4.3). parms == nil is a
// no-op. Re-registering the same (op, parms) replaces all fields.
func (s *Store) Register(op string, parms *param.Param, code string, locals []*Local, kwargs []KwArg) {
	if parms == nil {
		return
	}
	sc := s.scopeAt(s.topIndex())
	s.registerWalk(sc, op, op, parms, code, locals, kwargs)
}

// registerWalk implements spec §4.3's recursive registration: origOp is
// the human-readable method name (stored verbatim as Entry.Typemap);
// keyOp accumulates the signature suffix as the walk advances past each
// non-terminal parameter.
func (s *Store) registerWalk(sc *scope, origOp, keyOp string, parms *param.Param, code string, locals []*Local, kwargs []KwArg) {
	p := parms
	tn, _ := sc.getTypeNode(p.Type, true)
	var node methodHolder = tn
	if p.Name != "" {
		nn, _ := tn.getNameNode(p.Name, true)
		node = nn
	}
	if p.Next == nil {
		key := s.internKey(keyOp)
		node.setEntry(key, &Entry{
			Code:    code,
			Type:    p.Type,
			PName:   p.Name,
			Typemap: origOp,
			Locals:  cloneLocals(locals),
			Kwargs:  cloneKwargs(kwargs),
		})
		return
	}
	s.registerWalk(sc, origOp, EncodeTail(keyOp, p), p.Next, code, locals, kwargs)
}

// findWalk locates (without creating) the entry that Register(keyOp,
// parms, ...) would have written, searching only scope sc. ok is false if
// any node along the way, or the final entry, does not exist.
func (s *Store) findWalk(sc *scope, keyOp string, parms *param.Param) (*Entry, bool) {
	p := parms
	tn, ok := sc.getTypeNode(p.Type, false)
	if !ok {
		return nil, false
	}
	var node methodHolder = tn
	if p.Name != "" {
		nn, ok2 := tn.getNameNode(p.Name, false)
		if !ok2 {
			return nil, false
		}
		node = nn
	}
	if p.Next == nil {
		return node.entry(s.internKey(keyOp))
	}
	return s.findWalk(sc, EncodeTail(keyOp, p), p.Next)
}

// Copy implements %apply (spec §4.3 "copy"): it requires len(src) ==
// len(dst), then searches scopes top-to-bottom for a rule registered
// under (op, src); the first one found is re-registered under (op, dst)
// in the top scope. Returns an *ArityMismatchError on length mismatch, or
// (false, nil) if no scope has a matching rule.
func (s *Store) Copy(op string, src, dst *param.Param) (bool, error) {
	srcLen, dstLen := param.Len(src), param.Len(dst)
	if srcLen != dstLen {
		return false, NewArityMismatchError(srcLen, dstLen)
	}
	if src == nil {
		return false, nil
	}
	for idx := s.topIndex(); idx >= 0; idx-- {
		sc := s.scopeAt(idx)
		if e, ok := s.findWalk(sc, op, src); ok {
			s.Register(op, dst, e.Code, e.Locals, e.Kwargs)
			return true, nil
		}
	}
	return false, nil
}

// Clear removes code/locals/kwargs from the entry in the top scope matched
// by (op, parms); the shell node is left behind. Silent if no such entry
// exists (spec §4.3 "clear").
func (s *Store) Clear(op string, parms *param.Param) {
	if parms == nil {
		return
	}
	sc := s.scopeAt(s.topIndex())
	e, ok := s.findWalk(sc, op, parms)
	if !ok {
		return
	}
	e.Code = ""
	e.Locals = nil
	e.Kwargs = nil
}

// ensureNode locates (creating if necessary) the node for p's (type, name)
// in sc, without writing any entry.
func (sc *scope) ensureNode(p *param.Param) methodHolder {
	tn, _ := sc.getTypeNode(p.Type, true)
	if p.Name == "" {
		return tn
	}
	nn, _ := tn.getNameNode(p.Name, true)
	return nn
}

func (sc *scope) lookupNode(p *param.Param) (methodHolder, bool) {
	tn, ok := sc.getTypeNode(p.Type, false)
	if !ok {
		return nil, false
	}
	if p.Name == "" {
		return tn, true
	}
	nn, ok2 := tn.getNameNode(p.Name, false)
	if !ok2 {
		return nil, false
	}
	return nn, true
}

// ApplyMulti implements the stronger %apply form for multi-parameter
// signatures (spec §4.3 "apply_multi"): every per-method entry filed under
// src's last (type, name) node, in any scope, whose key's signature suffix
// and arity match src's leading parameters, is re-registered under dst
// with the suffix rewritten — without overwriting any key that already
// exists at the destination.
//
// Per spec §9's open question, the destination's last-parameter node is
// located (and, if absent, created as an empty shell) in the top scope
// even when no source rule matches; this mirrors observed ambient
// behavior rather than asserting it was intentional.
func (s *Store) ApplyMulti(src, dst *param.Param) error {
	srcLen, dstLen := param.Len(src), param.Len(dst)
	if srcLen != dstLen {
		return NewArityMismatchError(srcLen, dstLen)
	}
	if srcLen == 0 {
		return nil
	}
	srcSlice := param.ToSlice(src)
	dstSlice := param.ToSlice(dst)
	srcLast := srcSlice[len(srcSlice)-1]
	dstLast := dstSlice[len(dstSlice)-1]

	topScope := s.scopeAt(s.topIndex())
	topScope.ensureNode(dstLast) // ambient shell-creation, see doc comment

	expectedSuffix := EncodeTail("", srcSlice[:len(srcSlice)-1]...)
	arity := srcLen - 1

	for idx := s.topIndex(); idx >= 0; idx-- {
		sc := s.scopeAt(idx)
		node, ok := sc.lookupNode(srcLast)
		if !ok {
			continue
		}
		for _, key := range node.keys() {
			if !strings.HasPrefix(key, tmconfig.MethodKeyPrefix) {
				continue
			}
			rest := strings.TrimPrefix(key, tmconfig.MethodKeyPrefix)
			if CountArgs(rest) != arity || !strings.HasSuffix(rest, expectedSuffix) {
				continue
			}
			baseOp := strings.TrimSuffix(rest, expectedSuffix)
			e, _ := node.entry(key)

			if _, found := s.findWalk(topScope, baseOp, dst); found {
				continue // preserve existing destination key
			}
			s.Register(baseOp, dst, e.Code, e.Locals, e.Kwargs)
		}
	}
	return nil
}

// ClearApplyMulti removes every per-method entry under the last
// parameter's node (top scope only) whose key contains parms' tail
// signature and whose arity equals parms' arity (spec §4.3).
func (s *Store) ClearApplyMulti(parms *param.Param) {
	n := param.Len(parms)
	if n == 0 {
		return
	}
	slice := param.ToSlice(parms)
	last := slice[len(slice)-1]
	expectedSuffix := EncodeTail("", slice[:len(slice)-1]...)
	arity := n - 1

	sc := s.scopeAt(s.topIndex())
	node, ok := sc.lookupNode(last)
	if !ok {
		return
	}
	for _, key := range node.keys() {
		if !strings.HasPrefix(key, tmconfig.MethodKeyPrefix) {
			continue
		}
		rest := strings.TrimPrefix(key, tmconfig.MethodKeyPrefix)
		if CountArgs(rest) == arity && strings.HasSuffix(rest, expectedSuffix) {
			node.deleteEntry(key)
		}
	}
}
