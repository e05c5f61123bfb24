// Package env provides the environment passed down through all widget
// traversals: an immutable mapping from typed keys to values, holding
// theme and configuration parameters.
//
// Environments use scoped overlay semantics. Adding a binding produces a
// new environment sharing nothing observable with its ancestor; a subtree
// given the new environment sees the overlay, while the ancestor's view is
// untouched. Comparison between environments is by identity of the
// underlying store, matching the data package's policy for shared
// allocations: any overlay yields an environment that is not Same as its
// parent, which is what triggers update passes below an EnvScope.
package env

import (
	"fmt"

	"github.com/go-quill/quill/pkg/data"
)

// Key is a typed environment key.
//
// Keys should be package-level variables with unique, dotted names:
//
//	var LabelColor = env.NewKey[graphics.Color]("quill.theme.label-color")
//
// A key must be bound (usually by the theme package) before it is read;
// reading an unbound key is a programmer error.
type Key[T any] struct {
	name string
}

// NewKey creates a key with the given unique name.
func NewKey[T any](name string) Key[T] {
	return Key[T]{name: name}
}

// Name returns the key's unique name.
func (k Key[T]) Name() string {
	return k.name
}

// Env is an immutable environment. The zero value is an empty environment.
type Env struct {
	store *store
}

type store struct {
	values map[string]any
}

// Empty returns an environment with no bindings.
func Empty() Env {
	return Env{store: &store{values: map[string]any{}}}
}

// Same reports whether two environments share the same underlying store.
// Like all shared-allocation comparisons this is identity, not structure.
func (e Env) Same(other Env) bool {
	return e.store == other.store
}

// Len returns the number of bindings.
func (e Env) Len() int {
	if e.store == nil {
		return 0
	}
	return len(e.store.values)
}

func (e Env) lookup(name string) (any, bool) {
	if e.store == nil {
		return nil, false
	}
	v, ok := e.store.values[name]
	return v, ok
}

// overlay returns a copy of the environment's bindings ready for mutation.
func (e Env) overlay() map[string]any {
	size := e.Len() + 1
	values := make(map[string]any, size)
	if e.store != nil {
		for k, v := range e.store.values {
			values[k] = v
		}
	}
	return values
}

// Adding returns a new environment with the key bound to value, shadowing
// any previous binding for the key. The receiver is unchanged. Rebinding a
// key to a value of a different concrete type panics; a key's type is fixed
// by its first binding.
func Adding[T any](e Env, key Key[T], value T) Env {
	if existing, ok := e.lookup(key.name); ok {
		if _, matches := existing.(T); !matches {
			panic(fmt.Sprintf("env: key %q rebound with mismatched type %T (was %T)",
				key.name, value, existing))
		}
	}
	values := e.overlay()
	values[key.name] = value
	return Env{store: &store{values: values}}
}

// TryGet returns the value bound to the key, if any.
func TryGet[T any](e Env, key Key[T]) (T, bool) {
	v, ok := e.lookup(key.name)
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}

// Get returns the value bound to the key, panicking if the key is unbound.
// Reading an unbound key is a programming error on par with an
// out-of-bounds index; themes must bind every key they expose.
func Get[T any](e Env, key Key[T]) T {
	v, ok := TryGet(e, key)
	if !ok {
		panic(fmt.Sprintf("env: key %q is not bound", key.name))
	}
	return v
}

// GetOr returns the value bound to the key, or fallback if unbound.
func GetOr[T any](e Env, key Key[T], fallback T) T {
	if v, ok := TryGet(e, key); ok {
		return v
	}
	return fallback
}

// KeyChanged reports whether the key's binding differs between two
// environments under the data comparison policy. Widgets use this in
// update passes to react to individual theme changes.
func KeyChanged[T any](old, current Env, key Key[T]) bool {
	ov, ook := TryGet(old, key)
	cv, cok := TryGet(current, key)
	if ook != cok {
		return true
	}
	if !ook {
		return false
	}
	return !data.SameValue(ov, cv)
}
