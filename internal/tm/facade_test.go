package tm

import (
	"strconv"
	"testing"

	"github.com/funvibe/typemap/internal/param"
)

type fakeWrapper struct {
	seen   []string
	counts map[string]int
}

func newFakeWrapper() *fakeWrapper {
	return &fakeWrapper{counts: make(map[string]int)}
}

func (w *fakeWrapper) NewLocalVar(proposed, decl string) string {
	w.seen = append(w.seen, decl)
	w.counts[proposed]++
	if w.counts[proposed] == 1 {
		return proposed
	}
	return proposed + "_" + strconv.Itoa(w.counts[proposed])
}

func TestLookupSingleArg(t *testing.T) {
	s := NewStore()
	s.Register("in", param.New("int", "x"), "$1 = PyInt_AsLong($input);", nil, nil)

	code, ok := s.Lookup("in", "int", "x", "arg1", "obj0", "result", nil)
	if !ok {
		t.Fatalf("expected a match")
	}
	if code != "arg1 = PyInt_AsLong($input);" {
		t.Fatalf("code = %q", code)
	}
}

func TestLookupPostPassReplacements(t *testing.T) {
	s := NewStore()
	s.Register("out", param.New("int", "x"), "$target = $source; /* $typemap */", nil, nil)

	code, ok := s.Lookup("out", "int", "x", "arg1", "obj0", "result", nil)
	if !ok {
		t.Fatalf("expected a match")
	}
	if code != "result = obj0; /* out */" {
		t.Fatalf("code = %q", code)
	}
}

func TestLookupNoMatch(t *testing.T) {
	s := NewStore()
	if _, ok := s.Lookup("in", "Widget", "w", "arg1", "obj0", "result", nil); ok {
		t.Fatalf("expected no match")
	}
}

func TestLookupDeclaresLocalsThroughWrapper(t *testing.T) {
	s := NewStore()
	s.Register("in", param.New("p.Foo", "x"),
		"tmp = $1; $target = tmp;",
		[]*Local{{Name: "tmp", Type: "p.Foo"}}, nil)

	w := newFakeWrapper()
	// A local named "tmp" is already declared, so the builder renames the
	// new one to "tmp_2" and the code must follow that name.
	w.counts["tmp"] = 1
	code, ok := s.Lookup("in", "p.Foo", "x", "arg1", "obj0", "result", w)
	if !ok {
		t.Fatalf("expected a match")
	}
	if len(w.seen) != 1 {
		t.Fatalf("expected exactly one local declared, got %v", w.seen)
	}
	if code != "tmp_2 = arg1; result = tmp_2;" {
		t.Fatalf("code does not use the builder-assigned local name: %q", code)
	}
}

func TestAttachSingleArg(t *testing.T) {
	s := NewStore()
	s.Register("in", param.New("int", "x"), "$1 = PyInt_AsLong($input); /* $argnum */", nil, nil)

	p := param.New("int", "x")
	p.LName = "arg1"
	s.Attach("in", p, nil)

	code, ok := p.GetAttr("tmap:in")
	if !ok {
		t.Fatalf("expected tmap:in attribute to be attached")
	}
	if code != "arg1 = PyInt_AsLong($input); /* 1 */" {
		t.Fatalf("code = %q", code)
	}
}

func TestAttachMultiArgConsumesBothAndAdvances(t *testing.T) {
	s := NewStore()
	argc := param.New("int", "argc")
	argv := param.New("p.p.char", "argv")
	argc.Next = argv
	s.Register("in", argc, "multi $1 $2", nil, nil)

	list := param.New("int", "argc")
	list.LName = "arg1"
	list.Next = param.New("p.p.char", "argv")
	list.Next.LName = "arg2"
	third := param.New("int", "trailing")
	third.LName = "arg3"
	list.Next.Next = third

	s.Attach("in", list, nil)

	code, ok := list.GetAttr("tmap:in")
	if !ok || code != "multi arg1 arg2" {
		t.Fatalf("code = %q, ok=%v", code, ok)
	}

	next, ok := s.NextLink(list, "in")
	if !ok || next != third {
		t.Fatalf("NextLink = %v, ok=%v, want third parameter", next, ok)
	}
}

func TestAttachKwargsAttached(t *testing.T) {
	s := NewStore()
	s.Register("in", param.New("int", "x"), "code",
		nil, []KwArg{{Name: "numinputs", Value: "0"}})

	p := param.New("int", "x")
	p.LName = "arg1"
	s.Attach("in", p, nil)

	v, ok := p.GetAttr("tmap:in:numinputs")
	if !ok || v != "0" {
		t.Fatalf("kwarg attribute = %q, ok=%v", v, ok)
	}
}
