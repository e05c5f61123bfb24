package lens

// Prism is a partial accessor from a whole S to a part A that may be
// absent, the typical case being variant access into a sum type.
//
// With and WithMut report whether the part was present. When it is not,
// the closure is not run and the whole must be left untouched.
type Prism[S, A any] interface {
	// With runs f with read access to the part if present.
	With(whole *S, f func(part *A)) bool

	// WithMut runs f with mutable access to the part if present.
	WithMut(whole *S, f func(part *A)) bool
}

// GetOpt copies the targeted part out of the whole, if present.
func GetOpt[S, A any](p Prism[S, A], whole *S) (A, bool) {
	var out A
	ok := p.With(whole, func(part *A) { out = *part })
	return out, ok
}

// Variant builds a prism matching one concrete variant A of a sum type S,
// where S is an interface type implemented by A. Mutations replace the
// variant value inside the whole; a non-matching whole is never touched.
func Variant[A any, S any]() Prism[S, A] {
	return variantPrism[A, S]{}
}

type variantPrism[A any, S any] struct{}

func (variantPrism[A, S]) With(whole *S, f func(*A)) bool {
	part, ok := any(*whole).(A)
	if !ok {
		return false
	}
	f(&part)
	return true
}

func (variantPrism[A, S]) WithMut(whole *S, f func(*A)) bool {
	part, ok := any(*whole).(A)
	if !ok {
		return false
	}
	f(&part)
	*whole = any(part).(S)
	return true
}

// Guard builds a prism from an explicit presence test and accessor pair,
// for sum types not expressed as interfaces (e.g. an optional field).
// access must return nil exactly when the part is absent.
func Guard[S, A any](access func(*S) *A) Prism[S, A] {
	return guardPrism[S, A]{access: access}
}

type guardPrism[S, A any] struct {
	access func(*S) *A
}

func (p guardPrism[S, A]) With(whole *S, f func(*A)) bool {
	part := p.access(whole)
	if part == nil {
		return false
	}
	f(part)
	return true
}

func (p guardPrism[S, A]) WithMut(whole *S, f func(*A)) bool {
	part := p.access(whole)
	if part == nil {
		return false
	}
	f(part)
	return true
}

// ThenPrism narrows a lens with a prism, yielding a prism for the deeper part.
func ThenPrism[S, M, A any](outer Lens[S, M], inner Prism[M, A]) Prism[S, A] {
	return lensPrism[S, M, A]{outer: outer, inner: inner}
}

type lensPrism[S, M, A any] struct {
	outer Lens[S, M]
	inner Prism[M, A]
}

func (p lensPrism[S, M, A]) With(whole *S, f func(*A)) bool {
	matched := false
	p.outer.With(whole, func(mid *M) {
		matched = p.inner.With(mid, f)
	})
	return matched
}

func (p lensPrism[S, M, A]) WithMut(whole *S, f func(*A)) bool {
	matched := false
	p.outer.WithMut(whole, func(mid *M) {
		matched = p.inner.WithMut(mid, f)
	})
	return matched
}

// PrismThen widens a prism with a lens, yielding a prism for the deeper part.
func PrismThen[S, M, A any](outer Prism[S, M], inner Lens[M, A]) Prism[S, A] {
	return prismLens[S, M, A]{outer: outer, inner: inner}
}

type prismLens[S, M, A any] struct {
	outer Prism[S, M]
	inner Lens[M, A]
}

func (p prismLens[S, M, A]) With(whole *S, f func(*A)) bool {
	return p.outer.With(whole, func(mid *M) {
		p.inner.With(mid, f)
	})
}

func (p prismLens[S, M, A]) WithMut(whole *S, f func(*A)) bool {
	return p.outer.WithMut(whole, func(mid *M) {
		p.inner.WithMut(mid, f)
	})
}
