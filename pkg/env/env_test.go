package env

import (
	"math"
	"testing"
)

var (
	spacing = NewKey[float64]("test.spacing")
	title   = NewKey[string]("test.title")
)

func TestAddingShadowsWithoutMutatingParent(t *testing.T) {
	parent := Adding(Empty(), spacing, 8)
	child := Adding(parent, spacing, 16)

	if got := Get(parent, spacing); got != 8 {
		t.Fatalf("parent spacing = %v, want 8", got)
	}
	if got := Get(child, spacing); got != 16 {
		t.Fatalf("child spacing = %v, want 16", got)
	}
}

func TestSameIsIdentity(t *testing.T) {
	e := Adding(Empty(), spacing, 8)
	if !e.Same(e) {
		t.Fatal("environment not Same as itself")
	}
	overlay := Adding(e, title, "hello")
	if e.Same(overlay) {
		t.Fatal("overlay environment Same as its parent")
	}
	// Rebinding to an equal value still yields a fresh store.
	rebound := Adding(e, spacing, 8)
	if e.Same(rebound) {
		t.Fatal("rebound environment Same as its parent")
	}
}

func TestGetUnboundPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Get on an unbound key did not panic")
		}
	}()
	Get(Empty(), title)
}

func TestTryGetAndGetOr(t *testing.T) {
	e := Adding(Empty(), title, "quill")
	if v, ok := TryGet(e, title); !ok || v != "quill" {
		t.Fatalf("TryGet = %q, %v", v, ok)
	}
	if _, ok := TryGet(e, spacing); ok {
		t.Fatal("TryGet reported an unbound key as present")
	}
	if got := GetOr(e, spacing, 4); got != 4 {
		t.Fatalf("GetOr fallback = %v, want 4", got)
	}
}

func TestReboundTypeMismatchPanics(t *testing.T) {
	clash := NewKey[int]("test.title")
	e := Adding(Empty(), title, "quill")
	defer func() {
		if recover() == nil {
			t.Fatal("rebinding a key name with a new type did not panic")
		}
	}()
	Adding(e, clash, 7)
}

func TestKeyChanged(t *testing.T) {
	old := Adding(Empty(), spacing, 8)

	if KeyChanged(old, Adding(old, title, "x"), spacing) {
		t.Fatal("unrelated binding reported spacing as changed")
	}
	if !KeyChanged(old, Adding(old, spacing, 12), spacing) {
		t.Fatal("rebinding spacing not reported as changed")
	}
	if !KeyChanged(old, Empty(), spacing) {
		t.Fatal("dropping a binding not reported as changed")
	}
	// Bitwise float comparison: NaN bindings with identical payloads match.
	nan := Adding(Empty(), spacing, math.NaN())
	if KeyChanged(nan, Adding(Empty(), spacing, math.NaN()), spacing) {
		t.Fatal("identical NaN payloads reported as changed")
	}
}

func TestZeroValueEnvIsEmpty(t *testing.T) {
	var e Env
	if e.Len() != 0 {
		t.Fatalf("zero env Len = %d", e.Len())
	}
	if _, ok := TryGet(e, spacing); ok {
		t.Fatal("zero env reported a binding")
	}
	bound := Adding(e, spacing, 2)
	if got := Get(bound, spacing); got != 2 {
		t.Fatalf("binding on zero env = %v, want 2", got)
	}
}
