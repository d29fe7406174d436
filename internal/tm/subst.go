package tm

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/funvibe/typemap/internal/ctype"
)

// variablePattern matches every $-variable form spec §4.5 defines for a single
// substitution pass: an optional "*"/"&" pointer modifier, then either a
// 1-based index followed by "_<suffix>", a bare index with no suffix (the
// "$<i>" lname shorthand), or a bare suffix with no index at all. The bare
// "typemap" alternative is listed before "type" so that "$typemap" is
// matched whole and left for Lookup's post-pass instead of having its
// "$type" prefix expanded.
var variablePattern = regexp.MustCompile(
	`\$([*&]?)(?:(\d+)(?:_(dim\d+|type|ltype|mangle|descriptor|basetype|basemangle|name))?|(dim\d+|typemap|type|ltype|mangle|descriptor|basetype|basemangle|parmname))`,
)

// resolveTypeSuffix resolves one of the type-derived suffixes (spec §4.5's
// table), applying the "*"/"&" pointer modifier first. ok is false for a
// tolerated misuse (e.g. "*" on a non-pointer type, or "dim" on a
// non-array type), in which case the caller leaves the original token
// untouched.
func resolveTypeSuffix(amp, suf string, t ctype.T, pname string, reg *ctype.Registry) (string, bool) {
	effective := t
	switch amp {
	case "*":
		if !ctype.IsPointer(t) {
			return "", false
		}
		effective = ctype.DelPointer(t)
	case "&":
		effective = ctype.AddPointer(t)
	}

	switch {
	case suf == "type":
		return ctype.Str(effective, ""), true
	case suf == "ltype":
		return ctype.Str(ctype.Ltype(effective), ""), true
	case suf == "mangle":
		return ctype.Mangle(effective), true
	case suf == "descriptor":
		reg.Remember(effective)
		return "SWIGTYPE" + ctype.Mangle(effective), true
	case suf == "basetype":
		return ctype.Base(effective), true
	case suf == "basemangle":
		return ctype.Mangle(ctype.T(ctype.Base(effective))), true
	case suf == "parmname" || suf == "name":
		return pname, true
	case strings.HasPrefix(suf, "dim"):
		if amp != "" {
			return "", false
		}
		if !ctype.IsArray(t) {
			return "", false
		}
		k, err := strconv.Atoi(suf[len("dim"):])
		if err != nil {
			return "", false
		}
		dim := ctype.ArrayDim(t, k)
		if dim == "" {
			return "", false
		}
		return dim, true
	}
	return "", false
}

// substituteOne runs a single substitution pass over code for one
// parameter position (spec §4.5). Only tokens addressed to this index
// (indexed form with a matching index, or bare form when index == 1) are
// touched; every other token is left untouched for a later call.
func substituteOne(code string, t ctype.T, pname, lname string, index int, reg *ctype.Registry) string {
	return variablePattern.ReplaceAllStringFunc(code, func(tok string) string {
		m := variablePattern.FindStringSubmatch(tok)
		amp, idxStr, idxSuf, bareSuf := m[1], m[2], m[3], m[4]

		if idxStr != "" {
			idx, err := strconv.Atoi(idxStr)
			if err != nil || idx != index {
				return tok
			}
			if idxSuf == "" {
				if amp != "" {
					return tok
				}
				return lname
			}
			if repl, ok := resolveTypeSuffix(amp, idxSuf, t, pname, reg); ok {
				return repl
			}
			return tok
		}

		if index != 1 {
			return tok
		}
		if repl, ok := resolveTypeSuffix(amp, bareSuf, t, pname, reg); ok {
			return repl
		}
		return tok
	})
}

// Substitute expands $-variables in code for the parameter at the given
// 1-based index (spec §4.5), and performs the identical substitution pass
// on every local whose type string contains a "$", before the locals are
// ever handed to a wrapper builder.
func Substitute(code string, locals []*Local, t ctype.T, pname, lname string, index int, reg *ctype.Registry) (string, []*Local) {
	newCode := substituteOne(code, t, pname, lname, index, reg)

	if len(locals) == 0 {
		return newCode, locals
	}
	out := make([]*Local, len(locals))
	for i, l := range locals {
		if l == nil || !strings.Contains(string(l.Type), "$") {
			out[i] = l
			continue
		}
		newType := substituteOne(string(l.Type), t, pname, lname, index, reg)
		out[i] = &Local{Name: l.Name, Type: ctype.T(newType)}
	}
	return newCode, out
}
