package data

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"
)

// SameFloat64 compares two float64 values by bit pattern.
func SameFloat64(a, b float64) bool {
	return math.Float64bits(a) == math.Float64bits(b)
}

// SameFloat32 compares two float32 values by bit pattern.
func SameFloat32(a, b float32) bool {
	return math.Float32bits(a) == math.Float32bits(b)
}

// Same compares two values of the same static type under the package's
// comparison policy. It is the generic entry point for code that does not
// know whether T has a Same method: if it does, the method is used,
// otherwise the structural policy of [SameValue] applies.
func Same[T any](a, b T) bool {
	return SameValue(a, b)
}

// sameTag is the struct tag key read by the derived comparison.
const sameTag = "data"

var sameFnRegistry sync.Map // name -> reflect.Value of func(T, T) bool

// RegisterSameFn registers a named comparison function for use with the
// `data:"same_fn=name"` struct tag. The function must have the form
// func(T, T) bool. Registration with an ill-formed function panics, as
// this is a programming error equivalent to a failed derive.
func RegisterSameFn(name string, fn any) {
	v := reflect.ValueOf(fn)
	t := v.Type()
	if t.Kind() != reflect.Func || t.NumIn() != 2 || t.NumOut() != 1 ||
		t.In(0) != t.In(1) || t.Out(0).Kind() != reflect.Bool {
		panic(fmt.Sprintf("data: RegisterSameFn(%q): want func(T, T) bool, got %v", name, t))
	}
	sameFnRegistry.Store(name, v)
}

// Eq returns a comparison function that uses ==, for registering as a
// same_fn where ordinary equality is wanted instead of the default policy
// (for example to make value-equal NaNs compare unequal).
func Eq[T comparable]() func(T, T) bool {
	return func(a, b T) bool { return a == b }
}

// SameValue compares two values under the comparison policy, dispatching
// on the dynamic type. Both values must have the same dynamic type to
// compare same; in particular, two variants of a sum type (an interface
// holding different concrete types) are never same.
func SameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	return sameReflect(va, vb, true)
}

// SameStruct compares two struct values field by field, honoring the
// `data` struct tags:
//
//   - `data:"ignore"` excludes the field from the comparison entirely.
//   - `data:"same_fn=name"` compares the field with the registered function
//     instead of the default policy.
//
// Unlike [SameValue], SameStruct never consults a Same method on T itself,
// so it is safe to call from inside that method. Only exported fields
// participate; types whose identity lives in unexported fields should use
// generated or hand-written comparisons.
func SameStruct[T any](a, b T) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Kind() != reflect.Struct {
		panic(fmt.Sprintf("data: SameStruct on non-struct type %T", a))
	}
	return sameStructValue(va, vb)
}

func sameStructValue(va, vb reflect.Value) bool {
	t := va.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := field.Tag.Get(sameTag)
		if tag == "ignore" {
			continue
		}
		fa, fb := va.Field(i), vb.Field(i)
		if name, ok := strings.CutPrefix(tag, "same_fn="); ok {
			if !callSameFn(name, fa, fb) {
				return false
			}
			continue
		}
		if !sameReflect(fa, fb, true) {
			return false
		}
	}
	return true
}

func callSameFn(name string, fa, fb reflect.Value) bool {
	fn, ok := sameFnRegistry.Load(name)
	if !ok {
		panic(fmt.Sprintf("data: same_fn %q is not registered", name))
	}
	v := fn.(reflect.Value)
	if v.Type().In(0) != fa.Type() {
		panic(fmt.Sprintf("data: same_fn %q compares %v, field has type %v",
			name, v.Type().In(0), fa.Type()))
	}
	return v.Call([]reflect.Value{fa, fb})[0].Bool()
}

// sameMethod looks for a Same method of the canonical shape on the value's
// type and invokes it. Returns ok=false when no such method exists.
func sameMethod(va, vb reflect.Value) (same, ok bool) {
	m := va.MethodByName("Same")
	if !m.IsValid() {
		return false, false
	}
	t := m.Type()
	if t.NumIn() != 1 || t.In(0) != va.Type() || t.NumOut() != 1 || t.Out(0).Kind() != reflect.Bool {
		return false, false
	}
	return m.Call([]reflect.Value{vb})[0].Bool(), true
}

func sameReflect(va, vb reflect.Value, useMethod bool) bool {
	if useMethod {
		if same, ok := sameMethod(va, vb); ok {
			return same
		}
	}
	switch va.Kind() {
	case reflect.Float32:
		return SameFloat32(float32(va.Float()), float32(vb.Float()))
	case reflect.Float64:
		return SameFloat64(va.Float(), vb.Float())
	case reflect.Bool:
		return va.Bool() == vb.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return va.Int() == vb.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return va.Uint() == vb.Uint()
	case reflect.String:
		return va.String() == vb.String()
	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer, reflect.Func:
		// Identity of the allocation, not the pointee.
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		// Same backing allocation and length. Two independently built but
		// structurally equal slices are not same.
		if va.Len() != vb.Len() {
			return false
		}
		if va.Len() == 0 {
			return va.IsNil() == vb.IsNil()
		}
		return va.Pointer() == vb.Pointer()
	case reflect.Map:
		return va.Pointer() == vb.Pointer()
	case reflect.Interface:
		if va.IsNil() || vb.IsNil() {
			return va.IsNil() && vb.IsNil()
		}
		ea, eb := va.Elem(), vb.Elem()
		if ea.Type() != eb.Type() {
			// Different variants of a sum type are never same.
			return false
		}
		return sameReflect(ea, eb, true)
	case reflect.Struct:
		return sameStructValue(va, vb)
	case reflect.Array:
		for i := 0; i < va.Len(); i++ {
			if !sameReflect(va.Index(i), vb.Index(i), true) {
				return false
			}
		}
		return true
	case reflect.Complex64, reflect.Complex128:
		ca, cb := va.Complex(), vb.Complex()
		return SameFloat64(real(ca), real(cb)) && SameFloat64(imag(ca), imag(cb))
	default:
		return false
	}
}
