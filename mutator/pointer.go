package mutator

import "math/rand"

// PointerToken re-exports the inner mutator's token unchanged: the pointer
// mutator is a transparent 1-to-1 wrapper, so undoing a mutation on *T is
// exactly undoing the wrapped mutation on T.
type PointerToken[U any] struct{ inner U }

// PointerMutator adapts a Mutator[T, ...] into one over *T by boxing and
// unboxing the pointee on every call. Distinct from AnyMutator's boxing:
// here the wrapped type is still known statically, so no type assertions
// and no interface{} are involved — this exists purely to let combinators
// like Vector or Tuple hold indirected fields without changing the
// reversible mutation contract.
type PointerMutator[T, C, S, A, U any] struct {
	inner Mutator[T, C, S, A, U]
}

func NewPointer[T, C, S, A, U any](inner Mutator[T, C, S, A, U]) *PointerMutator[T, C, S, A, U] {
	return &PointerMutator[T, C, S, A, U]{inner: inner}
}

func (m *PointerMutator[T, C, S, A, U]) MaxComplexity() float64 { return m.inner.MaxComplexity() }
func (m *PointerMutator[T, C, S, A, U]) MinComplexity() float64 { return m.inner.MinComplexity() }

func (m *PointerMutator[T, C, S, A, U]) ValidateValue(value *T) (C, bool) {
	if value == nil {
		var zero C
		return zero, false
	}

	return m.inner.ValidateValue(*value)
}

func (m *PointerMutator[T, C, S, A, U]) DefaultMutationStep(value *T, cache C) S {
	return m.inner.DefaultMutationStep(*value, cache)
}

func (m *PointerMutator[T, C, S, A, U]) DefaultArbitraryStep() A {
	return m.inner.DefaultArbitraryStep()
}

func (m *PointerMutator[T, C, S, A, U]) Complexity(value *T, cache C) float64 {
	return m.inner.Complexity(*value, cache)
}

func (m *PointerMutator[T, C, S, A, U]) OrderedArbitrary(step *A, maxCplx float64) (*T, float64, bool) {
	v, cplx, ok := m.inner.OrderedArbitrary(step, maxCplx)
	if !ok {
		return nil, 0, false
	}

	return &v, cplx, true
}

func (m *PointerMutator[T, C, S, A, U]) RandomArbitrary(rng *rand.Rand, maxCplx float64) (*T, float64) {
	v, cplx := m.inner.RandomArbitrary(rng, maxCplx)
	return &v, cplx
}

func (m *PointerMutator[T, C, S, A, U]) OrderedMutate(value **T, cache *C, step *S, maxCplx float64) (PointerToken[U], float64, bool) {
	token, cplx, ok := m.inner.OrderedMutate(*value, cache, step, maxCplx)
	if !ok {
		return PointerToken[U]{}, 0, false
	}

	return PointerToken[U]{inner: token}, cplx, true
}

func (m *PointerMutator[T, C, S, A, U]) RandomMutate(rng *rand.Rand, value **T, cache *C, maxCplx float64) (PointerToken[U], float64) {
	token, cplx := m.inner.RandomMutate(rng, *value, cache, maxCplx)
	return PointerToken[U]{inner: token}, cplx
}

func (m *PointerMutator[T, C, S, A, U]) Unmutate(value **T, cache *C, token PointerToken[U]) {
	m.inner.Unmutate(*value, cache, token.inner)
}
