package tm

import (
	"testing"

	"github.com/funvibe/typemap/internal/param"
)

func TestSpecificityNameBeatsTypeOnly(t *testing.T) {
	s := NewStore()
	s.Register("in", param.New("int", ""), "type-only", nil, nil)
	s.Register("in", param.New("int", "x"), "name+type", nil, nil)

	e := s.Search("in", "int", "x")
	if e.Code != "name+type" {
		t.Fatalf("Code = %q, want name+type", e.Code)
	}
}

func TestArrayStrippingFallback(t *testing.T) {
	s := NewStore()
	s.Register("in", param.New("a(ANY).int", ""),
		"memcpy($1, $input, sizeof(int)*$dim0);", nil, nil)

	e := s.Search("in", "a(10).int", "")
	if !e.HasCode() {
		t.Fatalf("expected the ANY-dimension rule to match int[10]")
	}
}

func TestQualifierStrippingFallback(t *testing.T) {
	s := NewStore()
	s.Register("in", param.New("int", ""), "plain int", nil, nil)

	e := s.Search("in", "q(const).int", "")
	if !e.HasCode() || e.Code != "plain int" {
		t.Fatalf("expected qualifier-stripped fallback, got %#v", e)
	}
}

func TestTypedefResolveFallback(t *testing.T) {
	s := NewStore()
	s.Registry().DefineTypedef("MyInt", "int")
	s.Register("in", param.New("int", ""), "plain int", nil, nil)

	e := s.Search("in", "MyInt", "")
	if !e.HasCode() || e.Code != "plain int" {
		t.Fatalf("expected typedef-resolved fallback, got %#v", e)
	}
}

func TestSearchNoneWhenNothingMatches(t *testing.T) {
	s := NewStore()
	if e := s.Search("in", "Widget", "w"); e.HasCode() {
		t.Fatalf("expected no match, got %#v", e)
	}
}

func TestSearchMultiNoMatchReturnsZero(t *testing.T) {
	s := NewStore()
	argc := param.New("int", "argc")
	argv := param.New("p.p.char", "argv")
	argc.Next = argv

	e, n := s.SearchMulti("in", argc)
	if e != nil || n != 0 {
		t.Fatalf("SearchMulti = (%v, %d), want (nil, 0)", e, n)
	}
}

func TestSearchMultiSingleArgIsArityOne(t *testing.T) {
	s := NewStore()
	s.Register("in", param.New("int", "x"), "code", nil, nil)

	e, n := s.SearchMulti("in", param.New("int", "x"))
	if e == nil || n != 1 {
		t.Fatalf("SearchMulti = (%v, %d), want (entry, 1)", e, n)
	}
}
