package tm

import (
	"github.com/funvibe/typemap/internal/ctype"
	"github.com/funvibe/typemap/internal/param"
)

// candidate is one (type, name) pair tried during a specificity-ordered
// search (spec §4.4).
type candidate struct {
	t    ctype.T
	name string
}

// buildCandidates expands (t, name) into the ordered sequence of
// candidates spec §4.4 describes: type+name, then type-only, for the type
// itself, its array-wildcarded form, each qualifier-stripped and
// typedef-resolved descendant in turn, and finally the type utilities'
// primitive default.
func buildCandidates(t ctype.T, name string, reg *ctype.Registry) []candidate {
	var out []candidate
	seen := make(map[ctype.T]bool)

	var add func(ty ctype.T)
	add = func(ty ctype.T) {
		if name != "" {
			out = append(out, candidate{ty, name})
		}
		out = append(out, candidate{ty, ""})
		if ctype.IsArray(ty) {
			if wild := ctype.ArrayAllWild(ty); wild != ty {
				if name != "" {
					out = append(out, candidate{wild, name})
				}
				out = append(out, candidate{wild, ""})
			}
		}
	}

	var walk func(ty ctype.T)
	walk = func(ty ctype.T) {
		if seen[ty] {
			return
		}
		seen[ty] = true
		add(ty)

		if stripped := ctype.StripQualifiers(ty); stripped != ty {
			walk(stripped)
			return
		}
		if resolved, ok := reg.TypedefResolve(ty); ok {
			walk(resolved)
			return
		}
	}
	walk(t)

	out = append(out, candidate{reg.DefaultFor(t), ""})
	return out
}

// Search returns the most specific matching entry across all scopes for
// (op, type, name) (spec §4.4). The returned *Entry is a borrowed view
// into the store; it is nil if nothing matches at all, code-bearing or
// not.
func (s *Store) Search(op string, t ctype.T, name string) *Entry {
	candidates := buildCandidates(t, name, s.registry)
	key := s.internKey(op)

	var fallback *Entry
	for idx := s.topIndex(); idx >= 0; idx-- {
		sc := s.scopeAt(idx)
		for _, c := range candidates {
			node, ok := sc.lookupNode(&param.Param{Type: c.t, Name: c.name})
			if !ok {
				continue
			}
			e, ok := node.entry(key)
			if !ok {
				continue
			}
			if e.HasCode() {
				return e
			}
			if fallback == nil {
				fallback = e
			}
		}
	}
	return fallback
}

// SearchMulti resolves a multi-argument rule anchored at the start of
// parms (spec §4.4). It walks parms exactly as Register's registerWalk
// descends when filing a rule — accumulating the signature suffix through
// each leading parameter — and runs Search at every step, the same way
// Register files an entry at every length it is asked to. A rule
// registered under an m-parameter signature is therefore found once the
// walk has accumulated exactly that many parameters, regardless of how
// many further parameters follow in parms; the longest prefix that yields
// a code-bearing entry wins (a single-argument rule at the head and an
// m-ary rule spanning the same head are never both registered for the
// same leading parameter, so the longest match is unambiguous in
// practice). It returns (nil, 0) if no prefix matches.
func (s *Store) SearchMulti(op string, parms *param.Param) (*Entry, int) {
	items := param.ToSlice(parms)
	var best *Entry
	bestN := 0
	keyOp := op
	for i, p := range items {
		if i > 0 {
			keyOp = EncodeTail(keyOp, items[i-1])
		}
		if e := s.Search(keyOp, p.Type, p.Name); e != nil && e.HasCode() {
			best = e
			bestN = i + 1
		}
	}
	return best, bestN
}
