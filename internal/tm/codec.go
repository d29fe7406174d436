package tm

import (
	"strings"

	"github.com/funvibe/typemap/internal/param"
)

// EncodeTail builds the signature-suffixed method name under which a
// multi-argument rule is filed at its last parameter's node (spec §3
// "Signature-encoded method key", §4.2). Given op="in" and a single leading parameter
// (int, "argc"), it returns "in-int+argc:".
func EncodeTail(op string, params ...*param.Param) string {
	var b strings.Builder
	b.WriteString(op)
	for _, p := range params {
		b.WriteByte('-')
		b.WriteString(string(p.Type))
		b.WriteByte('+')
		b.WriteString(p.Name)
		b.WriteByte(':')
	}
	return b.String()
}

// CountArgs returns the number of parameters a signature-suffixed key
// represents: the number of '+' characters it contains (spec §4.2).
func CountArgs(key string) int {
	return strings.Count(key, "+")
}
