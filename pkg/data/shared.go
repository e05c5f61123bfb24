package data

// Shared is a cheap-to-copy handle to a shared, immutable-by-convention
// allocation. Copying a Shared copies the handle, not the value, and Same
// compares the identity of the allocation: two handles are the same only
// if they point at the same allocation. Mutation goes through copy-on-
// write, producing a handle with a fresh identity, which is exactly what
// lets the update pass notice the change.
//
// The zero Shared holds no allocation and is same only with other empty
// handles.
type Shared[T any] struct {
	ptr *T
}

// NewShared allocates a new shared cell holding v.
func NewShared[T any](v T) Shared[T] {
	return Shared[T]{ptr: &v}
}

// Same reports whether both handles reference the same allocation.
func (s Shared[T]) Same(other Shared[T]) bool {
	return s.ptr == other.ptr
}

// Value returns a copy of the held value, or the zero value for an empty handle.
func (s Shared[T]) Value() T {
	if s.ptr == nil {
		var zero T
		return zero
	}
	return *s.ptr
}

// Borrow returns a read-only pointer to the held value, or nil for an
// empty handle. Callers must not mutate through it; use Mutate instead.
func (s Shared[T]) Borrow() *T {
	return s.ptr
}

// IsEmpty reports whether the handle holds no allocation.
func (s Shared[T]) IsEmpty() bool {
	return s.ptr == nil
}

// Mutate applies f to a copy of the held value and returns a handle to the
// result with a fresh allocation identity. The receiver is unchanged.
func (s Shared[T]) Mutate(f func(*T)) Shared[T] {
	v := s.Value()
	f(&v)
	return Shared[T]{ptr: &v}
}

// List is a shared slice with allocation-identity comparison and
// copy-on-write mutation. It is the natural element container for
// list-style widgets: passing a List around is cheap, and any mutating
// operation yields a List that compares not-same with its ancestor.
type List[T any] struct {
	items *[]T
}

// NewList builds a list holding the given items. The slice is copied.
func NewList[T any](items ...T) List[T] {
	owned := make([]T, len(items))
	copy(owned, items)
	return List[T]{items: &owned}
}

// Same reports whether both lists share the same backing allocation.
func (l List[T]) Same(other List[T]) bool {
	return l.items == other.items
}

// Len returns the number of items.
func (l List[T]) Len() int {
	if l.items == nil {
		return 0
	}
	return len(*l.items)
}

// At returns the item at index i.
func (l List[T]) At(i int) T {
	return (*l.items)[i]
}

// Append returns a new list with v added at the end.
func (l List[T]) Append(v T) List[T] {
	updated := make([]T, l.Len(), l.Len()+1)
	if l.items != nil {
		copy(updated, *l.items)
	}
	updated = append(updated, v)
	return List[T]{items: &updated}
}

// Set returns a new list with the item at index i replaced by v.
func (l List[T]) Set(i int, v T) List[T] {
	updated := make([]T, l.Len())
	copy(updated, *l.items)
	updated[i] = v
	return List[T]{items: &updated}
}

// Remove returns a new list with the item at index i removed.
func (l List[T]) Remove(i int) List[T] {
	updated := make([]T, 0, l.Len()-1)
	updated = append(updated, (*l.items)[:i]...)
	updated = append(updated, (*l.items)[i+1:]...)
	return List[T]{items: &updated}
}

// Each calls f for every item in order.
func (l List[T]) Each(f func(i int, v T)) {
	if l.items == nil {
		return
	}
	for i, v := range *l.items {
		f(i, v)
	}
}
