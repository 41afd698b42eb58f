package mutator

import "math/rand"

// AnyMutator is the type-erased counterpart of Mutator, used exactly where
// Go's lack of associated types prevents a single type parameter list from
// covering heterogeneous children: Alternation (several strategies over
// the same T, each with its own Cache/Step/Unmut types) and Recursive
// (a mutator that must refer to itself before it finishes constructing).
// This is the Go realization of the spec's Box<T> combinator: boxing a
// concrete Mutator into AnyMutator is the one-to-one, transparent wrapper
// the spec describes, paid for with interface{} boxing of cache/step/token
// instead of a heap pointer — the closest honest analogue, since Go's
// generics have no existential/trait-object form that preserves static
// typing the way Rust's Box<dyn Mutator<T>> does.
type AnyMutator[T any] interface {
	MaxComplexity() float64
	MinComplexity() float64

	ValidateValue(value T) (cache any, ok bool)

	DefaultMutationStep(value T, cache any) (step any)
	DefaultArbitraryStep() (step any)

	Complexity(value T, cache any) float64

	OrderedArbitrary(step any, maxCplx float64) (value T, complexity float64, newStep any, ok bool)
	RandomArbitrary(rng *rand.Rand, maxCplx float64) (value T, complexity float64)

	OrderedMutate(value T, cache any, step any, maxCplx float64) (newValue T, newCache any, token any, complexity float64, newStep any, ok bool)
	RandomMutate(rng *rand.Rand, value T, cache any, maxCplx float64) (newValue T, newCache any, token any, complexity float64)

	Unmutate(value T, cache any, token any) (restoredValue T, restoredCache any)
}

// boxed adapts a concrete Mutator[T,C,S,A,U] into an AnyMutator[T] by
// type-asserting the boxed any values back to their concrete types at each
// call. Panics if handed a cache/step/token it did not itself produce,
// which can only happen from a caller bug (mixing boxed mutators).
type boxed[T, C, S, A, U any] struct {
	inner Mutator[T, C, S, A, U]
}

// AsAny boxes a concrete mutator for use as an Alternation or Recursive
// child.
func AsAny[T, C, S, A, U any](m Mutator[T, C, S, A, U]) AnyMutator[T] {
	return &boxed[T, C, S, A, U]{inner: m}
}

func (b *boxed[T, C, S, A, U]) MaxComplexity() float64 { return b.inner.MaxComplexity() }
func (b *boxed[T, C, S, A, U]) MinComplexity() float64 { return b.inner.MinComplexity() }

func (b *boxed[T, C, S, A, U]) ValidateValue(value T) (any, bool) {
	c, ok := b.inner.ValidateValue(value)
	return c, ok
}

func (b *boxed[T, C, S, A, U]) DefaultMutationStep(value T, cache any) any {
	return b.inner.DefaultMutationStep(value, cache.(C))
}

func (b *boxed[T, C, S, A, U]) DefaultArbitraryStep() any {
	return b.inner.DefaultArbitraryStep()
}

func (b *boxed[T, C, S, A, U]) Complexity(value T, cache any) float64 {
	return b.inner.Complexity(value, cache.(C))
}

func (b *boxed[T, C, S, A, U]) OrderedArbitrary(step any, maxCplx float64) (T, float64, any, bool) {
	s := step.(A)
	v, cplx, ok := b.inner.OrderedArbitrary(&s, maxCplx)

	return v, cplx, s, ok
}

func (b *boxed[T, C, S, A, U]) RandomArbitrary(rng *rand.Rand, maxCplx float64) (T, float64) {
	return b.inner.RandomArbitrary(rng, maxCplx)
}

func (b *boxed[T, C, S, A, U]) OrderedMutate(value T, cache any, step any, maxCplx float64) (T, any, any, float64, any, bool) {
	c := cache.(C)
	s := step.(S)

	token, cplx, ok := b.inner.OrderedMutate(&value, &c, &s, maxCplx)

	return value, c, token, cplx, s, ok
}

func (b *boxed[T, C, S, A, U]) RandomMutate(rng *rand.Rand, value T, cache any, maxCplx float64) (T, any, any, float64) {
	c := cache.(C)

	token, cplx := b.inner.RandomMutate(rng, &value, &c, maxCplx)

	return value, c, token, cplx
}

func (b *boxed[T, C, S, A, U]) Unmutate(value T, cache any, token any) (T, any) {
	c := cache.(C)
	u := token.(U)

	b.inner.Unmutate(&value, &c, u)

	return value, c
}

// erased further type-erases a boxed[T,...] down to AnyMutator[any], the
// shape NewVariants needs for a tag whose payload type differs from its
// sibling tags' payload types (Variant.Payload is itself any).
type erased[T, C, S, A, U any] struct {
	inner *boxed[T, C, S, A, U]
}

// AsAnyErased boxes a concrete mutator for use as a VariantsMutator payload,
// where every tag's payload travels through the same any-typed field.
func AsAnyErased[T, C, S, A, U any](m Mutator[T, C, S, A, U]) AnyMutator[any] {
	return &erased[T, C, S, A, U]{inner: &boxed[T, C, S, A, U]{inner: m}}
}

func (e *erased[T, C, S, A, U]) MaxComplexity() float64 { return e.inner.MaxComplexity() }
func (e *erased[T, C, S, A, U]) MinComplexity() float64 { return e.inner.MinComplexity() }

func (e *erased[T, C, S, A, U]) ValidateValue(value any) (any, bool) {
	v, ok := value.(T)
	if !ok {
		return nil, false
	}

	return e.inner.ValidateValue(v)
}

func (e *erased[T, C, S, A, U]) DefaultMutationStep(value any, cache any) any {
	return e.inner.DefaultMutationStep(value.(T), cache)
}

func (e *erased[T, C, S, A, U]) DefaultArbitraryStep() any { return e.inner.DefaultArbitraryStep() }

func (e *erased[T, C, S, A, U]) Complexity(value any, cache any) float64 {
	return e.inner.Complexity(value.(T), cache)
}

func (e *erased[T, C, S, A, U]) OrderedArbitrary(step any, maxCplx float64) (any, float64, any, bool) {
	v, cplx, newStep, ok := e.inner.OrderedArbitrary(step, maxCplx)
	return v, cplx, newStep, ok
}

func (e *erased[T, C, S, A, U]) RandomArbitrary(rng *rand.Rand, maxCplx float64) (any, float64) {
	v, cplx := e.inner.RandomArbitrary(rng, maxCplx)
	return v, cplx
}

func (e *erased[T, C, S, A, U]) OrderedMutate(value any, cache any, step any, maxCplx float64) (any, any, any, float64, any, bool) {
	v, newCache, token, cplx, newStep, ok := e.inner.OrderedMutate(value.(T), cache, step, maxCplx)
	return v, newCache, token, cplx, newStep, ok
}

func (e *erased[T, C, S, A, U]) RandomMutate(rng *rand.Rand, value any, cache any, maxCplx float64) (any, any, any, float64) {
	v, newCache, token, cplx := e.inner.RandomMutate(rng, value.(T), cache, maxCplx)
	return v, newCache, token, cplx
}

func (e *erased[T, C, S, A, U]) Unmutate(value any, cache any, token any) (any, any) {
	v, restoredCache := e.inner.Unmutate(value.(T), cache, token)
	return v, restoredCache
}
