package mutator

import "math/rand"

// FixedVectorCache mirrors VectorCache but for a length that never changes.
type FixedVectorCache[C any] struct {
	elements []C
	sumCplx  float64
}

// FixedVectorArbStep advances every slot's own ordered_arbitrary step
// together: each call takes the next value of every slot, and the sequence
// ends as soon as any slot is exhausted. Unlike the tuple combinator, it
// does not enumerate the cross product of the slots' sequences.
type FixedVectorArbStep[A any] struct {
	slotSteps []A
	initDone  bool
}

// FixedVectorMutStep rotates across slots, offering each slot's own
// ordered mutation before declaring the whole array exhausted. slotSteps
// persists each slot's own mutation-step cursor across calls so a slot's
// ordered_mutate keeps advancing instead of restarting from its default
// every call.
type FixedVectorMutStep[S any] struct {
	turn      int
	slotSteps []S
	initDone  bool
}

// FixedVectorToken records which slot mutated.
type FixedVectorToken[U any] struct {
	index int
	tok   U
}

// FixedVectorMutator mutates a fixed-length []T (the array combinator):
// no insert/remove/swap, only per-slot replacement, matching the spec's
// length-preserving array variant of the vector combinator.
type FixedVectorMutator[T, C, S, A, U any] struct {
	elem   Mutator[T, C, S, A, U]
	length int
}

func NewFixedVector[T, C, S, A, U any](elem Mutator[T, C, S, A, U], length int) *FixedVectorMutator[T, C, S, A, U] {
	return &FixedVectorMutator[T, C, S, A, U]{elem: elem, length: length}
}

func (m *FixedVectorMutator[T, C, S, A, U]) MaxComplexity() float64 {
	return 1 + float64(m.length)*m.elem.MaxComplexity()
}

func (m *FixedVectorMutator[T, C, S, A, U]) MinComplexity() float64 {
	return 1 + float64(m.length)*m.elem.MinComplexity()
}

func (m *FixedVectorMutator[T, C, S, A, U]) ValidateValue(value []T) (FixedVectorCache[C], bool) {
	if len(value) != m.length {
		return FixedVectorCache[C]{}, false
	}

	caches := make([]C, m.length)
	sum := 0.0

	for i, v := range value {
		c, ok := m.elem.ValidateValue(v)
		if !ok {
			return FixedVectorCache[C]{}, false
		}

		caches[i] = c
		sum += m.elem.Complexity(v, c)
	}

	return FixedVectorCache[C]{elements: caches, sumCplx: sum}, true
}

func (m *FixedVectorMutator[T, C, S, A, U]) DefaultMutationStep([]T, FixedVectorCache[C]) FixedVectorMutStep[S] {
	return FixedVectorMutStep[S]{}
}

func (m *FixedVectorMutator[T, C, S, A, U]) DefaultArbitraryStep() FixedVectorArbStep[A] {
	return FixedVectorArbStep[A]{}
}

func (m *FixedVectorMutator[T, C, S, A, U]) Complexity(value []T, cache FixedVectorCache[C]) float64 {
	return 1 + cache.sumCplx
}

func (m *FixedVectorMutator[T, C, S, A, U]) OrderedArbitrary(step *FixedVectorArbStep[A], maxCplx float64) ([]T, float64, bool) {
	if !step.initDone {
		step.slotSteps = make([]A, m.length)
		for i := range step.slotSteps {
			step.slotSteps[i] = m.elem.DefaultArbitraryStep()
		}
		step.initDone = true
	}

	values := make([]T, m.length)
	sum := 0.0

	for i := 0; i < m.length; i++ {
		remaining := maxCplx - sum

		v, cplx, ok := m.elem.OrderedArbitrary(&step.slotSteps[i], remaining)
		if !ok {
			return nil, 0, false
		}

		values[i] = v
		sum += cplx
	}

	return values, 1 + sum, true
}

func (m *FixedVectorMutator[T, C, S, A, U]) RandomArbitrary(rng *rand.Rand, maxCplx float64) ([]T, float64) {
	rng = rngOrDefault(rng)
	values := make([]T, m.length)
	sum := 0.0

	for i := 0; i < m.length; i++ {
		remaining := maxCplx - sum
		if remaining < 0 {
			remaining = 0
		}

		v, cplx := m.elem.RandomArbitrary(rng, remaining)
		values[i] = v
		sum += cplx
	}

	return values, 1 + sum
}

func (m *FixedVectorMutator[T, C, S, A, U]) OrderedMutate(value *[]T, cache *FixedVectorCache[C], step *FixedVectorMutStep[S], maxCplx float64) (FixedVectorToken[U], float64, bool) {
	if m.length == 0 {
		return FixedVectorToken[U]{}, 0, false
	}

	if !step.initDone {
		step.slotSteps = make([]S, m.length)
		for i := range step.slotSteps {
			step.slotSteps[i] = m.elem.DefaultMutationStep((*value)[i], cache.elements[i])
		}
		step.initDone = true
	}

	for tries := 0; tries < m.length; tries++ {
		idx := step.turn % m.length
		step.turn++

		tok, cplx, ok := m.elem.OrderedMutate(&(*value)[idx], &cache.elements[idx], &step.slotSteps[idx], maxCplx)
		if ok {
			others := cache.sumCplx - m.elem.Complexity((*value)[idx], cache.elements[idx])
			return FixedVectorToken[U]{index: idx, tok: tok}, 1 + others + cplx, true
		}
	}

	return FixedVectorToken[U]{}, 0, false
}

func (m *FixedVectorMutator[T, C, S, A, U]) RandomMutate(rng *rand.Rand, value *[]T, cache *FixedVectorCache[C], maxCplx float64) (FixedVectorToken[U], float64) {
	rng = rngOrDefault(rng)
	idx := rng.Intn(m.length)

	others := cache.sumCplx - m.elem.Complexity((*value)[idx], cache.elements[idx])
	tok, cplx := m.elem.RandomMutate(rng, &(*value)[idx], &cache.elements[idx], maxCplx)

	return FixedVectorToken[U]{index: idx, tok: tok}, 1 + others + cplx
}

func (m *FixedVectorMutator[T, C, S, A, U]) Unmutate(value *[]T, cache *FixedVectorCache[C], token FixedVectorToken[U]) {
	m.elem.Unmutate(&(*value)[token.index], &cache.elements[token.index], token.tok)
}
