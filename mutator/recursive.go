package mutator

import "math/rand"

// RecursiveMutator is the deferred-binding handle a cyclic mutator
// definition needs: you construct the handle first, hand the handle
// itself (it implements AnyMutator[T]) to whatever inner mutator definition needs to
// refer to itself (e.g. one alternation branch being "a pointer to
// another value of this same type"), and only then call Bind once the
// full recursive definition exists. Every call before Bind panics, which
// can only happen from a construction-order bug.
type RecursiveMutator[T any] struct {
	inner AnyMutator[T]
}

// NewRecursive returns an unbound handle. Bind it before first use.
func NewRecursive[T any]() *RecursiveMutator[T] {
	return &RecursiveMutator[T]{}
}

// Bind completes construction by supplying the (now fully built, possibly
// self-referencing) mutator this handle stands in for.
func (m *RecursiveMutator[T]) Bind(inner AnyMutator[T]) {
	m.inner = inner
}

func (m *RecursiveMutator[T]) require() AnyMutator[T] {
	if m.inner == nil {
		panic("mutator: RecursiveMutator used before Bind")
	}

	return m.inner
}

func (m *RecursiveMutator[T]) MaxComplexity() float64 { return m.require().MaxComplexity() }
func (m *RecursiveMutator[T]) MinComplexity() float64 { return m.require().MinComplexity() }

func (m *RecursiveMutator[T]) ValidateValue(value T) (any, bool) {
	return m.require().ValidateValue(value)
}

func (m *RecursiveMutator[T]) DefaultMutationStep(value T, cache any) any {
	return m.require().DefaultMutationStep(value, cache)
}

func (m *RecursiveMutator[T]) DefaultArbitraryStep() any {
	return m.require().DefaultArbitraryStep()
}

func (m *RecursiveMutator[T]) Complexity(value T, cache any) float64 {
	return m.require().Complexity(value, cache)
}

func (m *RecursiveMutator[T]) OrderedArbitrary(step any, maxCplx float64) (T, float64, any, bool) {
	return m.require().OrderedArbitrary(step, maxCplx)
}

func (m *RecursiveMutator[T]) RandomArbitrary(rng *rand.Rand, maxCplx float64) (T, float64) {
	return m.require().RandomArbitrary(rngOrDefault(rng), maxCplx)
}

func (m *RecursiveMutator[T]) OrderedMutate(value T, cache any, step any, maxCplx float64) (T, any, any, float64, any, bool) {
	return m.require().OrderedMutate(value, cache, step, maxCplx)
}

func (m *RecursiveMutator[T]) RandomMutate(rng *rand.Rand, value T, cache any, maxCplx float64) (T, any, any, float64) {
	return m.require().RandomMutate(rngOrDefault(rng), value, cache, maxCplx)
}

func (m *RecursiveMutator[T]) Unmutate(value T, cache any, token any) (T, any) {
	return m.require().Unmutate(value, cache, token)
}
