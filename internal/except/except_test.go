package except

import (
	"testing"

	"github.com/funvibe/typemap/internal/tm"
)

func TestSetGetRoundTripsInSameScope(t *testing.T) {
	s := tm.NewStore()
	Set(s, "catch (...) { SWIG_exception(...); }")

	got, ok := Get(s)
	if !ok || got != "catch (...) { SWIG_exception(...); }" {
		t.Fatalf("Get() = (%q, %v)", got, ok)
	}
}

func TestGetSearchesTopDown(t *testing.T) {
	s := tm.NewStore()
	Set(s, "outer handler")
	s.PushScope()

	got, ok := Get(s)
	if !ok || got != "outer handler" {
		t.Fatalf("expected to inherit the outer scope's handler, got (%q, %v)", got, ok)
	}

	Set(s, "inner handler")
	got, ok = Get(s)
	if !ok || got != "inner handler" {
		t.Fatalf("expected the inner scope's handler to shadow, got (%q, %v)", got, ok)
	}

	s.PopScope()
	got, ok = Get(s)
	if !ok || got != "outer handler" {
		t.Fatalf("expected outer handler after pop, got (%q, %v)", got, ok)
	}
}

func TestGetNoneWhenUnset(t *testing.T) {
	s := tm.NewStore()
	if _, ok := Get(s); ok {
		t.Fatalf("expected no handler in a fresh store")
	}
}
