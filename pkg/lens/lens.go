// Package lens provides structural accessors from a whole data value to a
// part of it. A widget written against a narrow data type can be embedded
// in a tree with a larger ambient data type by wrapping it with a lens
// (see the widgets package LensWrap).
//
// Access is scoped: rather than returning a reference, a lens runs a
// caller-supplied closure against the part, which lets a lens synthesize
// the part on the fly and write it back afterwards (as the Map and list
// Index lenses do).
package lens

// Lens is a total, bidirectional accessor from a whole S to a part A that
// is always present.
//
// Implementations must be get/set consistent: applying a lens and making
// no mutation must leave the whole unchanged, and any mutation made inside
// a WithMut closure must be observable in the whole immediately after
// WithMut returns.
type Lens[S, A any] interface {
	// With runs f with read access to the part. f must not mutate it.
	With(whole *S, f func(part *A))

	// WithMut runs f with mutable access to the part.
	WithMut(whole *S, f func(part *A))
}

// Get copies the targeted part out of the whole.
func Get[S, A any](l Lens[S, A], whole *S) A {
	var out A
	l.With(whole, func(part *A) { out = *part })
	return out
}

// Put replaces the targeted part inside the whole.
func Put[S, A any](l Lens[S, A], whole *S, value A) {
	l.WithMut(whole, func(part *A) { *part = value })
}

// Field builds a lens from a single field accessor returning a pointer
// into the whole. The one function serves both read and mutable access:
//
//	nameLens := lens.Field(func(p *Person) *string { return &p.Name })
func Field[S, A any](access func(*S) *A) Lens[S, A] {
	return fieldLens[S, A]{access: access}
}

type fieldLens[S, A any] struct {
	access func(*S) *A
}

func (l fieldLens[S, A]) With(whole *S, f func(*A))    { f(l.access(whole)) }
func (l fieldLens[S, A]) WithMut(whole *S, f func(*A)) { f(l.access(whole)) }

// Map builds a lens for a part that does not physically exist in the whole
// but can be computed from it. get derives the part; put writes a modified
// part back. On the read path put is never called.
func Map[S, A any](get func(*S) A, put func(*S, A)) Lens[S, A] {
	return mapLens[S, A]{get: get, put: put}
}

type mapLens[S, A any] struct {
	get func(*S) A
	put func(*S, A)
}

func (l mapLens[S, A]) With(whole *S, f func(*A)) {
	part := l.get(whole)
	f(&part)
}

func (l mapLens[S, A]) WithMut(whole *S, f func(*A)) {
	part := l.get(whole)
	f(&part)
	l.put(whole, part)
}

// Id returns the identity lens from a type to itself.
func Id[S any]() Lens[S, S] {
	return idLens[S]{}
}

type idLens[S any] struct{}

func (idLens[S]) With(whole *S, f func(*S))    { f(whole) }
func (idLens[S]) WithMut(whole *S, f func(*S)) { f(whole) }

// Then composes two lenses into a lens for the deeper part. Composition is
// associative: Then(Then(a, b), c) behaves identically to Then(a, Then(b, c)).
func Then[S, M, A any](outer Lens[S, M], inner Lens[M, A]) Lens[S, A] {
	return thenLens[S, M, A]{outer: outer, inner: inner}
}

type thenLens[S, M, A any] struct {
	outer Lens[S, M]
	inner Lens[M, A]
}

func (l thenLens[S, M, A]) With(whole *S, f func(*A)) {
	l.outer.With(whole, func(mid *M) {
		l.inner.With(mid, f)
	})
}

func (l thenLens[S, M, A]) WithMut(whole *S, f func(*A)) {
	l.outer.WithMut(whole, func(mid *M) {
		l.inner.WithMut(mid, f)
	})
}
