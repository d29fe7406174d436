package tm

import (
	"fmt"
	"io"
	"sort"

	"github.com/funvibe/typemap/internal/ctype"
)

// Debug dumps the scope stack top-down to w (spec §6 "Debug surface"),
// mirroring the teacher's io.Writer-sink diagnostic dumps
// (internal/vm/debugger.go) rather than logging to a fixed global sink.
func (s *Store) Debug(w io.Writer) {
	for idx := s.topIndex(); idx >= 0; idx-- {
		sc := s.scopeAt(idx)
		fmt.Fprintf(w, "scope %d:\n", idx)

		types := make([]string, 0, len(sc.types))
		for t := range sc.types {
			types = append(types, string(t))
		}
		sort.Strings(types)

		for _, t := range types {
			tn := sc.types[ctype.T(t)]
			fmt.Fprintf(w, "  type %s:\n", t)
			dumpMethodSet(w, "    ", &tn.methodSet)

			names := make([]string, 0, len(tn.names))
			for n := range tn.names {
				names = append(names, n)
			}
			sort.Strings(names)
			for _, n := range names {
				fmt.Fprintf(w, "    name %s:\n", n)
				dumpMethodSet(w, "      ", &tn.names[n].methodSet)
			}
		}

		keys := make([]string, 0, len(sc.shared))
		for k := range sc.shared {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "  shared %s=%q\n", k, sc.shared[k])
		}
	}
}

func dumpMethodSet(w io.Writer, indent string, m *methodSet) {
	keys := m.keys()
	sort.Strings(keys)
	for _, k := range keys {
		e, _ := m.entry(k)
		state := "shell"
		if e.HasCode() {
			state = "code"
		}
		fmt.Fprintf(w, "%s%s [%s] typemap=%q\n", indent, k, state, e.Typemap)
	}
}
