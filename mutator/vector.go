package mutator

import (
	"math"
	"math/rand"
)

// VectorCache holds each element's own cache plus the running complexity
// sum, so Complexity never has to re-walk every element's own cache.
type VectorCache[C any] struct {
	elements []C
	sumCplx  float64
}

// VectorArbStep drives ordered generation by enumerating lengths
// (starting from MinLength): each call yields one vector of the current
// length, filled with each slot's first ordered_arbitrary value, and then
// moves on to the next length. Further element combinations of a length
// are not enumerated.
type VectorArbStep[A any] struct {
	length    int
	slotSteps []A
	slotVals  []float64
	started   bool
}

// VectorMutStep cycles through the vector-level operations (insert,
// remove, replace one element, swap two, insert many, crossover) before
// falling through to per-element ordered mutation once structural
// operations are exhausted. elementSteps persists each slot's own
// mutation-step cursor across calls so a slot's ordered_mutate keeps
// advancing instead of restarting from its default every call.
type VectorMutStep[S any] struct {
	opIndex      int
	opsExhausted bool
	elementTurn  int
	elementSteps []S
}

// VectorOp names the kind of edit a VectorToken can reverse.
type VectorOp int

const (
	OpInsertElement VectorOp = iota
	OpRemoveElement
	OpReplaceElement
	OpSwapElements
	OpInsertMany
	OpCrossover
	OpMutateElement
)

// VectorToken records exactly enough to reverse whichever op produced it:
// the op kind, the affected index/indices, and any removed/replaced
// element value plus its cache.
type VectorToken[T, C, U any] struct {
	op          VectorOp
	index       int
	otherIndex  int
	removed     []T
	removedCplx []C
	elementTok  U
}

// VectorMutator mutates []T by delegating per-element edits to a single
// child mutator shared by every slot, and handling structural edits
// (length changes, swaps, crossover) itself. minLen/maxLen bound the
// length the way the spec's length-ranged vector combinator does.
type VectorMutator[T, C, S, A, U any] struct {
	elem   Mutator[T, C, S, A, U]
	minLen int
	maxLen int
}

func NewVector[T, C, S, A, U any](elem Mutator[T, C, S, A, U], minLen, maxLen int) *VectorMutator[T, C, S, A, U] {
	return &VectorMutator[T, C, S, A, U]{elem: elem, minLen: minLen, maxLen: maxLen}
}

// lengthComplexity is the spec's 1 + sum(children) + log2(len+1): a fixed
// cost for being a vector at all, the sum of element complexities, and a
// logarithmic cost for length itself so longer vectors aren't free.
func lengthComplexity(sumElems float64, length int) float64 {
	return 1 + sumElems + math.Log2(float64(length)+1)
}

func (m *VectorMutator[T, C, S, A, U]) MaxComplexity() float64 {
	return lengthComplexity(float64(m.maxLen)*m.elem.MaxComplexity(), m.maxLen)
}

func (m *VectorMutator[T, C, S, A, U]) MinComplexity() float64 {
	return lengthComplexity(float64(m.minLen)*m.elem.MinComplexity(), m.minLen)
}

func (m *VectorMutator[T, C, S, A, U]) ValidateValue(value []T) (VectorCache[C], bool) {
	if len(value) < m.minLen || (m.maxLen >= 0 && len(value) > m.maxLen) {
		return VectorCache[C]{}, false
	}

	caches := make([]C, len(value))
	sum := 0.0

	for i, v := range value {
		c, ok := m.elem.ValidateValue(v)
		if !ok {
			return VectorCache[C]{}, false
		}

		caches[i] = c
		sum += m.elem.Complexity(v, c)
	}

	return VectorCache[C]{elements: caches, sumCplx: sum}, true
}

func (m *VectorMutator[T, C, S, A, U]) DefaultMutationStep([]T, VectorCache[C]) VectorMutStep[S] {
	return VectorMutStep[S]{}
}

func (m *VectorMutator[T, C, S, A, U]) DefaultArbitraryStep() VectorArbStep[A] {
	return VectorArbStep[A]{length: m.minLen}
}

func (m *VectorMutator[T, C, S, A, U]) Complexity(value []T, cache VectorCache[C]) float64 {
	return lengthComplexity(cache.sumCplx, len(value))
}

func (m *VectorMutator[T, C, S, A, U]) OrderedArbitrary(step *VectorArbStep[A], maxCplx float64) ([]T, float64, bool) {
	for {
		if step.length > m.maxLen && m.maxLen >= 0 {
			return nil, 0, false
		}

		if !step.started {
			step.slotSteps = make([]A, step.length)
			step.slotVals = make([]float64, step.length)
			for i := range step.slotSteps {
				step.slotSteps[i] = m.elem.DefaultArbitraryStep()
			}
			step.started = true
		}

		values := make([]T, step.length)
		sum := 0.0
		ok := true

		for i := 0; i < step.length; i++ {
			remaining := maxCplx - sum

			v, cplx, elemOk := m.elem.OrderedArbitrary(&step.slotSteps[i], remaining)
			if !elemOk {
				ok = false
				break
			}

			values[i] = v
			step.slotVals[i] = cplx
			sum += cplx
		}

		total := lengthComplexity(sum, step.length)

		if ok && total <= maxCplx {
			step.length++
			step.started = false

			return values, total, true
		}

		step.length++
		step.started = false

		if m.maxLen >= 0 && step.length > m.maxLen {
			return nil, 0, false
		}
	}
}

func (m *VectorMutator[T, C, S, A, U]) RandomArbitrary(rng *rand.Rand, maxCplx float64) ([]T, float64) {
	rng = rngOrDefault(rng)

	span := m.maxLen - m.minLen
	length := m.minLen
	if span > 0 {
		length = m.minLen + rng.Intn(span+1)
	}

	values := make([]T, length)
	sum := 0.0

	for i := 0; i < length; i++ {
		remaining := maxCplx - sum
		if remaining < 0 {
			remaining = 0
		}

		v, cplx := m.elem.RandomArbitrary(rng, remaining)
		values[i] = v
		sum += cplx
	}

	return values, lengthComplexity(sum, length)
}

func (m *VectorMutator[T, C, S, A, U]) OrderedMutate(value *[]T, cache *VectorCache[C], step *VectorMutStep[S], maxCplx float64) (VectorToken[T, C, U], float64, bool) {
	if !step.opsExhausted {
		if tok, cplx, ok := m.tryStructuralOp(value, cache, step, maxCplx); ok {
			return tok, cplx, true
		}
		step.opsExhausted = true
	}

	n := len(*value)
	if n == 0 {
		return VectorToken[T, C, U]{}, 0, false
	}

	if len(step.elementSteps) != n {
		step.elementSteps = make([]S, n)
		for i := range step.elementSteps {
			step.elementSteps[i] = m.elem.DefaultMutationStep((*value)[i], (*cache).elements[i])
		}
	}

	for tries := 0; tries < n; tries++ {
		idx := step.elementTurn % n
		step.elementTurn++

		tok, cplx, ok := m.elem.OrderedMutate(&(*value)[idx], &(*cache).elements[idx], &step.elementSteps[idx], maxCplx)
		if ok {
			others := 0.0
			for i, c := range (*cache).elements {
				if i != idx {
					others += m.elem.Complexity((*value)[i], c)
				}
			}

			return VectorToken[T, C, U]{op: OpMutateElement, index: idx, elementTok: tok}, lengthComplexity(others+cplx, n), true
		}
	}

	return VectorToken[T, C, U]{}, 0, false
}

func (m *VectorMutator[T, C, S, A, U]) tryStructuralOp(value *[]T, cache *VectorCache[C], step *VectorMutStep[S], maxCplx float64) (VectorToken[T, C, U], float64, bool) {
	n := len(*value)

	switch VectorOp(step.opIndex) {
	case OpInsertElement:
		step.opIndex++
		if m.maxLen >= 0 && n >= m.maxLen {
			return m.tryStructuralOp(value, cache, step, maxCplx)
		}

		v, cplx := m.elem.RandomArbitrary(nil, maxCplx)
		c, _ := m.elem.ValidateValue(v)

		*value = append([]T{v}, (*value)...)
		cache.elements = append([]C{c}, cache.elements...)

		return VectorToken[T, C, U]{op: OpInsertElement, index: 0}, lengthComplexity(cache.sumCplx+cplx, n+1), true

	case OpRemoveElement:
		step.opIndex++
		if n <= m.minLen {
			return m.tryStructuralOp(value, cache, step, maxCplx)
		}

		removed := (*value)[0]
		removedCache := cache.elements[0]

		*value = append([]T{}, (*value)[1:]...)
		cache.elements = append([]C{}, cache.elements[1:]...)

		return VectorToken[T, C, U]{op: OpRemoveElement, index: 0, removed: []T{removed}, removedCplx: []C{removedCache}}, lengthComplexity(cache.sumCplx, n-1), true

	case OpReplaceElement:
		step.opIndex++
		if n == 0 {
			return m.tryStructuralOp(value, cache, step, maxCplx)
		}

		old := (*value)[0]
		oldCache := cache.elements[0]

		v, cplx := m.elem.RandomArbitrary(nil, maxCplx)
		c, _ := m.elem.ValidateValue(v)

		(*value)[0] = v
		cache.elements[0] = c

		return VectorToken[T, C, U]{op: OpReplaceElement, index: 0, removed: []T{old}, removedCplx: []C{oldCache}}, lengthComplexity(cache.sumCplx-m.elem.Complexity(old, oldCache)+cplx, n), true

	case OpSwapElements:
		step.opIndex++
		if n < 2 {
			return m.tryStructuralOp(value, cache, step, maxCplx)
		}

		(*value)[0], (*value)[1] = (*value)[1], (*value)[0]
		cache.elements[0], cache.elements[1] = cache.elements[1], cache.elements[0]

		return VectorToken[T, C, U]{op: OpSwapElements, index: 0, otherIndex: 1}, lengthComplexity(cache.sumCplx, n), true

	case OpInsertMany:
		step.opIndex++
		if m.maxLen >= 0 && n+2 > m.maxLen {
			return m.tryStructuralOp(value, cache, step, maxCplx)
		}

		batch, _ := m.elem.RandomArbitrary(nil, maxCplx)
		batchCache, _ := m.elem.ValidateValue(batch)

		two := []T{batch, batch}
		twoCache := []C{batchCache, batchCache}

		*value = append(two, (*value)...)
		cache.elements = append(twoCache, cache.elements...)

		added := 2 * m.elem.Complexity(batch, batchCache)

		return VectorToken[T, C, U]{op: OpInsertMany, index: 0}, lengthComplexity(cache.sumCplx+added, n+2), true

	case OpCrossover:
		step.opIndex++
		if n < 2 {
			return m.tryStructuralOp(value, cache, step, maxCplx)
		}

		(*value)[0], (*value)[n-1] = (*value)[n-1], (*value)[0]
		cache.elements[0], cache.elements[n-1] = cache.elements[n-1], cache.elements[0]

		return VectorToken[T, C, U]{op: OpCrossover, index: 0, otherIndex: n - 1}, lengthComplexity(cache.sumCplx, n), true

	default:
		return VectorToken[T, C, U]{}, 0, false
	}
}

func (m *VectorMutator[T, C, S, A, U]) RandomMutate(rng *rand.Rand, value *[]T, cache *VectorCache[C], maxCplx float64) (VectorToken[T, C, U], float64) {
	rng = rngOrDefault(rng)
	n := len(*value)

	if n == 0 || (rng.Intn(4) == 0 && (m.maxLen < 0 || n < m.maxLen)) {
		v, cplx := m.elem.RandomArbitrary(rng, maxCplx)
		c, _ := m.elem.ValidateValue(v)

		*value = append(*value, v)
		cache.elements = append(cache.elements, c)

		return VectorToken[T, C, U]{op: OpInsertElement, index: n}, lengthComplexity(cache.sumCplx+cplx, n+1)
	}

	idx := rng.Intn(n)
	tok, cplx := m.elem.RandomMutate(rng, &(*value)[idx], &cache.elements[idx], maxCplx)

	others := 0.0
	for i, c := range cache.elements {
		if i != idx {
			others += m.elem.Complexity((*value)[i], c)
		}
	}

	return VectorToken[T, C, U]{op: OpMutateElement, index: idx, elementTok: tok}, lengthComplexity(others+cplx, n)
}

func (m *VectorMutator[T, C, S, A, U]) Unmutate(value *[]T, cache *VectorCache[C], token VectorToken[T, C, U]) {
	switch token.op {
	case OpInsertElement:
		*value = append((*value)[:token.index], (*value)[token.index+1:]...)
		cache.elements = append(cache.elements[:token.index], cache.elements[token.index+1:]...)

	case OpInsertMany:
		*value = (*value)[2:]
		cache.elements = cache.elements[2:]

	case OpRemoveElement:
		restored := append([]T{}, (*value)[:token.index]...)
		restored = append(restored, token.removed[0])
		restored = append(restored, (*value)[token.index:]...)
		*value = restored

		restoredCache := append([]C{}, cache.elements[:token.index]...)
		restoredCache = append(restoredCache, token.removedCplx[0])
		restoredCache = append(restoredCache, cache.elements[token.index:]...)
		cache.elements = restoredCache

	case OpReplaceElement:
		(*value)[token.index] = token.removed[0]
		cache.elements[token.index] = token.removedCplx[0]

	case OpSwapElements, OpCrossover:
		(*value)[token.index], (*value)[token.otherIndex] = (*value)[token.otherIndex], (*value)[token.index]
		cache.elements[token.index], cache.elements[token.otherIndex] = cache.elements[token.otherIndex], cache.elements[token.index]

	case OpMutateElement:
		m.elem.Unmutate(&(*value)[token.index], &cache.elements[token.index], token.elementTok)
	}
}
