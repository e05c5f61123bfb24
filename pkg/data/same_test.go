package data

import (
	"math"
	"testing"
)

type point struct {
	X float64
	Y float64
}

func (p point) Same(other point) bool {
	return SameStruct(p, other)
}

type record struct {
	Name    string
	Weight  float64 `data:"same_fn=eqFloat"`
	Scratch int     `data:"ignore"`
}

func (r record) Same(other record) bool {
	return SameStruct(r, other)
}

// shape is a sum type; variants are structs implementing the interface.
type shape interface{ isShape() }

type circle struct {
	Radius float64
}

type square struct {
	Side float64
}

func (circle) isShape() {}
func (square) isShape() {}

func init() {
	RegisterSameFn("eqFloat", Eq[float64]())
}

func TestSameReflexiveUnderCopy(t *testing.T) {
	p := point{X: 1.5, Y: -2.25}
	q := p
	if !Same(p, q) {
		t.Error("a value must be same as its copy")
	}
}

func TestFloatSameIsBitwiseNotIEEE(t *testing.T) {
	nan := math.NaN()
	if !SameFloat64(nan, nan) {
		t.Error("identical-bit NaNs must be same")
	}
	if nan == nan {
		t.Fatal("sanity: IEEE == on NaN")
	}
	if SameFloat64(0.0, math.Copysign(0, -1)) {
		t.Error("0.0 and -0.0 differ in bits and must not be same")
	}
	// A NaN with a different payload is not the same.
	otherNaN := math.Float64frombits(math.Float64bits(nan) ^ 1)
	if SameFloat64(nan, otherNaN) {
		t.Error("NaNs with different bit patterns must not be same")
	}
}

func TestStructSameShortCircuitsPerField(t *testing.T) {
	a := point{X: 1, Y: 2}
	if !Same(a, point{X: 1, Y: 2}) {
		t.Error("equal fields should be same")
	}
	if Same(a, point{X: 1, Y: 3}) {
		t.Error("differing field should break sameness")
	}
}

func TestIgnoredFieldDoesNotAffectSame(t *testing.T) {
	a := record{Name: "a", Weight: 1, Scratch: 10}
	b := record{Name: "a", Weight: 1, Scratch: 99}
	if !Same(a, b) {
		t.Error("change to an ignored field must leave values same")
	}
}

func TestSameFnOverridesDefaultPolicy(t *testing.T) {
	nan := math.NaN()
	a := record{Name: "a", Weight: nan}
	b := record{Name: "a", Weight: nan}
	// Under the default bitwise policy these would be same; the eqFloat
	// same_fn uses IEEE ==, under which NaN never equals NaN.
	if Same(a, b) {
		t.Error("same_fn field must be governed by the registered predicate")
	}
}

func TestSumTypeVariantsNeverSame(t *testing.T) {
	var a shape = circle{Radius: 1}
	var b shape = square{Side: 1}
	if Same(a, b) {
		t.Error("different variants must never be same")
	}
	if !Same[shape](circle{Radius: 1}, circle{Radius: 1}) {
		t.Error("same variant with same payload should be same")
	}
	if Same[shape](circle{Radius: 1}, circle{Radius: 2}) {
		t.Error("same variant with differing payload must not be same")
	}
}

func TestSliceIdentityNotStructure(t *testing.T) {
	a := []int{1, 2, 3}
	b := []int{1, 2, 3}
	if SameValue(a, b) {
		t.Error("independently allocated slices must not be same")
	}
	if !SameValue(a, a) {
		t.Error("a slice must be same as itself")
	}
	if !SameValue(a[:2], a[:2]) {
		t.Error("same backing array and length must be same")
	}
	if SameValue(a[:2], a[:3]) {
		t.Error("different lengths must not be same")
	}
}

func TestPointerIdentity(t *testing.T) {
	x, y := 5, 5
	if SameValue(&x, &y) {
		t.Error("distinct allocations must not be same")
	}
	p := &x
	if !SameValue(p, p) {
		t.Error("a pointer must be same as itself")
	}
}

func TestNilInterfaceValues(t *testing.T) {
	if !SameValue(nil, nil) {
		t.Error("nil is same as nil")
	}
	if SameValue(nil, 1) || SameValue(1, nil) {
		t.Error("nil is not same as a value")
	}
}

func TestRegisterSameFnRejectsBadSignature(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("ill-formed same_fn should panic at registration")
		}
	}()
	RegisterSameFn("bad", func(a int) bool { return true })
}
