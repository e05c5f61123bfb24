package lens

import "github.com/go-quill/quill/pkg/data"

// Deref returns a lens through a shared cell to its held value.
//
// The mutable path is copy-on-write: the closure operates on a copy, and
// the cell is replaced (gaining a fresh identity) only when the copy is no
// longer same as the original. An access with no mutation therefore leaves
// the cell's identity untouched.
func Deref[T any]() Lens[data.Shared[T], T] {
	return derefLens[T]{}
}

type derefLens[T any] struct{}

func (derefLens[T]) With(whole *data.Shared[T], f func(*T)) {
	if p := whole.Borrow(); p != nil {
		f(p)
		return
	}
	var zero T
	f(&zero)
}

func (derefLens[T]) WithMut(whole *data.Shared[T], f func(*T)) {
	old := whole.Value()
	updated := old
	f(&updated)
	if !data.SameValue(old, updated) {
		*whole = data.NewShared(updated)
	}
}

// Index returns a lens into one element of a shared list.
//
// Like Deref, mutation is copy-on-write: the list identity changes only
// when the element actually changed. Index access outside the list bounds
// is the caller's logic error and panics like a slice access would.
func Index[T any](i int) Lens[data.List[T], T] {
	return indexLens[T]{index: i}
}

type indexLens[T any] struct {
	index int
}

func (l indexLens[T]) With(whole *data.List[T], f func(*T)) {
	item := whole.At(l.index)
	f(&item)
}

func (l indexLens[T]) WithMut(whole *data.List[T], f func(*T)) {
	old := whole.At(l.index)
	updated := old
	f(&updated)
	if !data.SameValue(old, updated) {
		*whole = whole.Set(l.index, updated)
	}
}
