package tm

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/funvibe/typemap/internal/ctype"
	"github.com/funvibe/typemap/internal/param"
)

// Wrapper is the wrapper-builder collaborator contract (spec §6
// "Wrapper builder contract"): given a proposed local-variable name and
// its full declaration text, it registers the local and returns the
// actual name it was given (the builder resolves collisions).
type Wrapper interface {
	NewLocalVar(proposedName, declarationText string) string
}

// declareLocals implements spec §4.7's local-declaration rule: for each
// named local, compose a candidate declaration name (suffixed with argnum
// when argnum >= 0, i.e. when called from attach rather than lookup),
// hand it to wrapper, then rewrite every identifier-boundary occurrence
// of the local's own name in code with the name the builder actually
// assigned.
func declareLocals(code string, locals []*Local, wrapper Wrapper, argnum int) string {
	for _, l := range locals {
		if l == nil || l.Name == "" {
			continue
		}
		candidate := l.Name
		if argnum >= 0 {
			candidate = l.Name + strconv.Itoa(argnum)
		}
		declText := ctype.Str(l.Type, candidate)
		actual := wrapper.NewLocalVar(candidate, declText)
		code = replaceIdentifier(code, l.Name, actual)
	}
	return code
}

func replaceIdentifier(code, from, to string) string {
	if from == "" || from == to {
		return code
	}
	pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(from) + `\b`)
	return pattern.ReplaceAllString(code, to)
}

// Lookup is the single-argument convenience facade (spec §4.6 "lookup").
// It returns (code, true) if a code-bearing rule matched, or ("", false)
// otherwise.
func (s *Store) Lookup(op string, t ctype.T, pname, lname, source, target string, wrapper Wrapper) (string, bool) {
	e := s.Search(op, t, pname)
	if !e.HasCode() {
		return "", false
	}
	code, locals := Substitute(e.Code, cloneLocals(e.Locals), t, pname, lname, 1, s.registry)

	if wrapper != nil && len(locals) > 0 {
		code = declareLocals(code, locals, wrapper, -1)
	}

	code = strings.ReplaceAll(code, "$source", source)
	code = strings.ReplaceAll(code, "$target", target)
	code = strings.ReplaceAll(code, "$typemap", e.Typemap)
	code = strings.ReplaceAll(code, "$parmname", pname)
	return code, true
}

// Attach implements spec §4.6 "attach": it walks parms, firing
// search_multi at every unconsumed position, substituting, declaring
// locals, and attaching the rendered code (plus kwargs and the "next"
// link) to the first parameter of each consumed group.
func (s *Store) Attach(op string, parms *param.Param, wrapper Wrapper) {
	key := s.internKey(op)

	pos := 1
	cur := parms
	for cur != nil {
		e, nmatch := s.SearchMulti(op, cur)
		if e == nil {
			pos++
			cur = cur.Next
			continue
		}

		code := e.Code
		locals := cloneLocals(e.Locals)
		p := cur
		for i := 0; i < nmatch && p != nil; i++ {
			code, locals = Substitute(code, locals, p.Type, p.Name, p.LName, i+1, s.registry)
			p = p.Next
		}

		if wrapper != nil && len(locals) > 0 {
			code = declareLocals(code, locals, wrapper, pos)
		}
		code = strings.ReplaceAll(code, "$argnum", strconv.Itoa(pos))

		cur.SetAttr(key, code)
		s.setNextLink(cur, op, p)
		for _, kw := range e.Kwargs {
			cur.SetAttr(key+":"+kw.Name, kw.Value)
		}

		pos += nmatch
		cur = p
	}
}
