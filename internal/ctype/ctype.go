// Package ctype implements the type-utilities contract required by the
// typemap engine (spec §3, §6: "SwigType_*"). A type string is an opaque,
// dot-separated encoding of a C/C++ type: "p." prefixes a pointer, "r."
// a reference, "a(DIM)." an array dimension, "q(QUAL)." a qualifier, and
// the remainder is the base type name (which may itself carry "::"
// scoping, e.g. "std::vector<int>"). "int", "p.int", "a(10).int" and
// "q(const).p.Foo" are all valid type strings.
//
// Every function here is pure and stateless; the typedef table and the
// "remembered" descriptor set live in Registry (registry.go) because they
// are the only pieces of type-utility state the engine needs to own.
package ctype

import (
	"strconv"
	"strings"
)

// T is a type string. Equality is textual, per spec §3.
type T string

const arrayWildcard = "ANY"

// ArrayWildcard is the literal dimension used to make an array type match
// any concrete dimension during lookup (spec §4.4 step 3).
const ArrayWildcard = arrayWildcard

func splitHead(t T) (head string, rest T, ok bool) {
	s := string(t)
	if strings.HasPrefix(s, "p.") {
		return "p.", T(s[2:]), true
	}
	if strings.HasPrefix(s, "r.") {
		return "r.", T(s[2:]), true
	}
	if strings.HasPrefix(s, "a(") {
		idx := strings.Index(s, ").")
		if idx > 0 {
			return s[:idx+2], T(s[idx+2:]), true
		}
	}
	if strings.HasPrefix(s, "q(") {
		idx := strings.Index(s, ").")
		if idx > 0 {
			return s[:idx+2], T(s[idx+2:]), true
		}
	}
	return "", t, false
}

// IsArray reports whether t's outermost decoration is an array dimension.
func IsArray(t T) bool {
	return strings.HasPrefix(string(t), "a(")
}

// IsPointer reports whether t's outermost decoration is a pointer.
func IsPointer(t T) bool {
	return strings.HasPrefix(string(t), "p.")
}

// arrayDims returns the text of every "a(DIM)." segment, outermost first.
func arrayDims(t T) []string {
	var dims []string
	for {
		head, rest, ok := splitHead(t)
		if !ok {
			break
		}
		if strings.HasPrefix(head, "a(") {
			dims = append(dims, head[2:len(head)-2])
		}
		t = rest
	}
	return dims
}

// ArrayNDim returns the number of array dimensions t carries at its
// outermost run of array decorations.
func ArrayNDim(t T) int {
	n := 0
	for IsArray(t) {
		_, rest, _ := splitHead(t)
		t = rest
		n++
	}
	return n
}

// ArrayDim returns the text of the i-th array dimension (0-based, outermost
// first), or "" if t has no such dimension.
func ArrayDim(t T, i int) string {
	dims := arrayDims(t)
	if i < 0 || i >= len(dims) {
		return ""
	}
	return dims[i]
}

// ArraySetDim returns a copy of t with its i-th array dimension replaced by
// v. If t has no such dimension, t is returned unchanged.
func ArraySetDim(t T, i int, v string) T {
	s := string(t)
	cur := -1
	pos := 0
	for {
		rest := T(s[pos:])
		head, _, ok := splitHead(rest)
		if !ok || !strings.HasPrefix(head, "a(") {
			break
		}
		cur++
		if cur == i {
			return T(s[:pos] + "a(" + v + ")." + s[pos+len(head):])
		}
		pos += len(head)
	}
	return t
}

// ArrayAllWild returns t with every array dimension replaced by the "ANY"
// wildcard, used by the array-stripping fallback during lookup (spec §4.4
// step 3). If t is not an array, t is returned unchanged.
func ArrayAllWild(t T) T {
	n := ArrayNDim(t)
	for i := 0; i < n; i++ {
		t = ArraySetDim(t, i, arrayWildcard)
	}
	return t
}

// StripQualifiers removes every leading "q(...)." segment from t.
func StripQualifiers(t T) T {
	for {
		head, rest, ok := splitHead(t)
		if !ok || !strings.HasPrefix(head, "q(") {
			return t
		}
		t = rest
	}
}

// Qualifiers returns the qualifier names found in t's leading qualifier run
// (e.g. "const", "volatile"), outermost first.
func Qualifiers(t T) []string {
	var quals []string
	for {
		head, rest, ok := splitHead(t)
		if !ok || !strings.HasPrefix(head, "q(") {
			return quals
		}
		quals = append(quals, head[2:len(head)-2])
		t = rest
	}
}

// AddPointer returns t with an extra outer pointer decoration.
func AddPointer(t T) T {
	return T("p." + string(t))
}

// DelPointer removes one outer pointer decoration from t. If t is not a
// pointer it is returned unchanged (the caller is expected to have checked
// IsPointer first; §4.5 treats this as a tolerated no-op misuse case).
func DelPointer(t T) T {
	if !IsPointer(t) {
		return t
	}
	return T(strings.TrimPrefix(string(t), "p."))
}

// Base strips every decoration (pointer, reference, array, qualifier),
// returning the bare base type name.
func Base(t T) string {
	for {
		_, rest, ok := splitHead(t)
		if !ok {
			return string(t)
		}
		t = rest
	}
}

// decorations returns the ordered list of decoration segments ("p.", "a(10).",
// "q(const).", ...) from outermost to innermost, plus the bare base name.
func decorations(t T) (segs []string, base string) {
	for {
		head, rest, ok := splitHead(t)
		if !ok {
			return segs, string(t)
		}
		segs = append(segs, head)
		t = rest
	}
}

// Mangle produces a deterministic, identifier-safe encoding of t, suitable
// for building descriptor names ($descriptor expands to "SWIGTYPE" +
// Mangle(t)). It is this engine's own mangling scheme: every run of
// characters outside [A-Za-z0-9] becomes a single '_', a trailing '_' is
// dropped, and the result is prefixed with "_", so "Foo*" (i.e. "p.Foo")
// mangles to "_p_Foo" and "a(10).int" to "_a_10_int".
func Mangle(t T) string {
	s := string(t)
	var b strings.Builder
	b.WriteByte('_')
	prevUnderscore := true
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			prevUnderscore = false
			continue
		}
		if !prevUnderscore {
			b.WriteByte('_')
			prevUnderscore = true
		}
	}
	out := b.String()
	return strings.TrimSuffix(out, "_")
}

// Ltype returns the "local" variant of t used for wrapper-local variable
// declarations: arrays decay to a pointer to their element type, matching
// how a function parameter of array type decays in C. Everything else is
// returned unchanged.
func Ltype(t T) T {
	if !IsArray(t) {
		return t
	}
	elem := t
	for IsArray(elem) {
		_, rest, _ := splitHead(elem)
		elem = rest
	}
	return AddPointer(elem)
}

// Str renders a declaration of t for the variable name (name may be empty
// for an abstract declarator). Pointers/arrays/qualifiers nest the way C
// declarator syntax requires.
func Str(t T, name string) string {
	segs, base := decorations(t)
	decl := name
	// Apply decorations outermost-to-innermost onto the declarator:
	// pointers and references prefix it, arrays suffix it, and an array
	// applied to a pointer/reference declarator parenthesizes it first
	// ("p.a(10).int" renders as "int (*x)[10]").
	for _, seg := range segs {
		switch {
		case seg == "p.":
			decl = "*" + decl
		case seg == "r.":
			decl = "&" + decl
		case strings.HasPrefix(seg, "a("):
			if strings.HasPrefix(decl, "*") || strings.HasPrefix(decl, "&") {
				decl = "(" + decl + ")"
			}
			dim := seg[2 : len(seg)-2]
			decl = decl + "[" + dim + "]"
		case strings.HasPrefix(seg, "q("):
			// qualifiers are rendered as a prefix on the base type below
		}
	}
	quals := Qualifiers(t)
	baseDecl := base
	if len(quals) > 0 {
		baseDecl = strings.Join(quals, " ") + " " + base
	}
	if decl == "" {
		return baseDecl
	}
	return baseDecl + " " + decl
}

// isKnownPrimitive reports whether name is one of the built-in C primitive
// type names the engine knows a sensible zero-initializer default for.
func isKnownPrimitive(name string) bool {
	switch name {
	case "void", "bool", "char", "short", "int", "long", "float", "double",
		"signed char", "unsigned char", "unsigned short", "unsigned int",
		"unsigned long", "long long", "unsigned long long":
		return true
	}
	return false
}

// isDimNumeric reports whether a dimension string is a plain decimal
// literal (as opposed to the wildcard "ANY" or a named constant).
func isDimNumeric(dim string) bool {
	if dim == "" {
		return false
	}
	_, err := strconv.Atoi(dim)
	return err == nil
}
