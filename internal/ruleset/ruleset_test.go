package ruleset

import (
	"testing"

	"github.com/funvibe/typemap/internal/param"
	"github.com/funvibe/typemap/internal/tm"
)

const sample = `
typedefs:
  - name: size_t
    underlying: "unsigned long"
rules:
  - op: in
    parms:
      - {type: int, name: x}
    code: "$1 = PyInt_AsLong($input);"
applies:
  - op: in
    src:
      - {type: int, name: x}
    dst:
      - {type: double, name: y}
`

func TestParseAndApply(t *testing.T) {
	f, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(f.Rules) != 1 || len(f.Typedefs) != 1 || len(f.Applies) != 1 {
		t.Fatalf("unexpected parse result: %#v", f)
	}

	s := tm.NewStore()
	f.Apply(s)

	if e := s.Search("in", "int", "x"); !e.HasCode() {
		t.Fatalf("expected the registered rule to be visible")
	}
	if e := s.Search("in", "double", "y"); !e.HasCode() {
		t.Fatalf("expected the applied copy to be visible")
	}
	if _, ok := s.Registry().TypedefResolve("size_t"); !ok {
		t.Fatalf("expected the typedef to have been defined")
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("not: [valid")); err == nil {
		t.Fatalf("expected a parse error")
	}
}

const multiArgSample = `
rules:
  - op: in
    parms:
      - {type: int, name: argc}
      - {type: "p.p.char", name: argv}
    code: "multi-arg code"
clears:
  - parms:
      - {type: int, name: argc}
      - {type: "p.p.char", name: argv}
`

func TestClearsDirectiveRoutesToClearApplyMulti(t *testing.T) {
	f, err := Parse([]byte(multiArgSample))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(f.Clears) != 1 {
		t.Fatalf("unexpected parse result: %#v", f)
	}

	s := tm.NewStore()
	f.Apply(s)

	argc := param.New("int", "argc")
	argc.Next = param.New("p.p.char", "argv")
	if e, _ := s.SearchMulti("in", argc); e != nil {
		t.Fatalf("expected the cleared multi-arg rule to be gone, got %#v", e)
	}
}
