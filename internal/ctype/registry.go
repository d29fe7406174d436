package ctype

import "sort"

// Registry owns the mutable type-utility state the typemap engine needs:
// the typedef table and the set of descriptors actually emitted into code
// ("remembered", spec §3/§6 SwigType_remember). It is constructed per
// engine instance rather than kept in package globals, matching spec §5's
// instruction to model the store as an owned engine value.
type Registry struct {
	typedefs   map[string]T
	remembered map[string]bool
}

// NewRegistry returns an empty type-utilities registry.
func NewRegistry() *Registry {
	return &Registry{
		typedefs:   make(map[string]T),
		remembered: make(map[string]bool),
	}
}

// DefineTypedef registers name as a typedef for underlying.
func (r *Registry) DefineTypedef(name string, underlying T) {
	r.typedefs[name] = underlying
}

// TypedefResolve resolves one level of typedef on t's base name, preserving
// t's outer decorations (pointer/array/qualifier). It returns the resolved
// type and true if t's base was a known typedef, or t unchanged and false
// otherwise.
func (r *Registry) TypedefResolve(t T) (T, bool) {
	segs, base := decorations(t)
	underlying, ok := r.typedefs[base]
	if !ok {
		return t, false
	}
	result := string(underlying)
	for i := len(segs) - 1; i >= 0; i-- {
		result = segs[i] + result
	}
	return T(result), true
}

// DefaultFor returns the type-utilities' primitive/generic default for t:
// known primitives default to themselves, every pointer defaults to a
// generic "void *" handle, and anything else (an opaque struct/class
// passed by value, an unresolved typedef) also defaults to "void *" since
// the engine has no other generic fallback available.
func (r *Registry) DefaultFor(t T) T {
	base := Base(t)
	if IsPointer(t) {
		return T("p.void")
	}
	if isKnownPrimitive(base) {
		return T(base)
	}
	return T("p.void")
}

// Remember records that a descriptor for t was actually expanded into
// emitted code (spec §4.5 $descriptor, §6 SwigType_remember).
func (r *Registry) Remember(t T) {
	r.remembered[string(t)] = true
}

// IsRemembered reports whether Remember(t) has been called.
func (r *Registry) IsRemembered(t T) bool {
	return r.remembered[string(t)]
}

// RememberedTypes returns every remembered type string, sorted for
// deterministic iteration (used by debug dumps and tests).
func (r *Registry) RememberedTypes() []string {
	out := make([]string, 0, len(r.remembered))
	for t := range r.remembered {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
