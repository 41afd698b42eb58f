package mutator

import "math/rand"

// Pair is the value type for the 2-ary tuple combinator.
type Pair[T1, T2 any] struct {
	First  T1
	Second T2
}

// Triple is the value type for the 3-ary tuple combinator.
type Triple[T1, T2, T3 any] struct {
	First  T1
	Second T2
	Third  T3
}

// Tuple2Cache pairs the two fields' own caches; nothing else needs to be
// stored since every field complexity is cheaply recomputed from its own
// (value, cache) pair rather than cached redundantly here.
type Tuple2Cache[C1, C2 any] struct {
	First  C1
	Second C2
}

// Tuple2ArbStep drives ordered generation as a cross-product enumeration:
// advance field 2 to exhaustion for the current field-1 value, then
// advance field 1 and reset field 2, until field 1 itself is exhausted.
type Tuple2ArbStep[T1 any, A1, A2 any] struct {
	aStep    A1
	bStep    A2
	haveA    bool
	curA     T1
	curACplx float64
}

// Tuple2MutStep mutates one field at a time, alternating which field is
// offered next; a field stops being offered once its own ordered_mutate is
// exhausted, and the tuple itself is exhausted once both are.
type Tuple2MutStep[S1, S2 any] struct {
	s1Step          S1
	s2Step          S2
	s2Initialized   bool
	field1Exhausted bool
	field2Exhausted bool
	turn            int
}

// Tuple2Token identifies which field mutated and carries its token.
type Tuple2Token[U1, U2 any] struct {
	field int // 1 or 2
	u1    U1
	u2    U2
}

// Tuple2Mutator mutates (T1, T2) by delegating one field at a time to its
// child mutators; complexity is always the sum of field complexities.
type Tuple2Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2 any] struct {
	m1 Mutator[T1, C1, S1, A1, U1]
	m2 Mutator[T2, C2, S2, A2, U2]
}

func NewTuple2[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2 any](
	m1 Mutator[T1, C1, S1, A1, U1],
	m2 Mutator[T2, C2, S2, A2, U2],
) *Tuple2Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2] {
	return &Tuple2Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2]{m1: m1, m2: m2}
}

func (m *Tuple2Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2]) MaxComplexity() float64 {
	return m.m1.MaxComplexity() + m.m2.MaxComplexity()
}

func (m *Tuple2Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2]) MinComplexity() float64 {
	return m.m1.MinComplexity() + m.m2.MinComplexity()
}

func (m *Tuple2Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2]) ValidateValue(value Pair[T1, T2]) (Tuple2Cache[C1, C2], bool) {
	c1, ok1 := m.m1.ValidateValue(value.First)
	if !ok1 {
		return Tuple2Cache[C1, C2]{}, false
	}

	c2, ok2 := m.m2.ValidateValue(value.Second)
	if !ok2 {
		return Tuple2Cache[C1, C2]{}, false
	}

	return Tuple2Cache[C1, C2]{First: c1, Second: c2}, true
}

func (m *Tuple2Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2]) DefaultMutationStep(value Pair[T1, T2], cache Tuple2Cache[C1, C2]) Tuple2MutStep[S1, S2] {
	return Tuple2MutStep[S1, S2]{
		s1Step:        m.m1.DefaultMutationStep(value.First, cache.First),
		s2Step:        m.m2.DefaultMutationStep(value.Second, cache.Second),
		s2Initialized: true,
	}
}

func (m *Tuple2Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2]) DefaultArbitraryStep() Tuple2ArbStep[T1, A1, A2] {
	return Tuple2ArbStep[T1, A1, A2]{aStep: m.m1.DefaultArbitraryStep()}
}

func (m *Tuple2Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2]) Complexity(value Pair[T1, T2], cache Tuple2Cache[C1, C2]) float64 {
	return m.m1.Complexity(value.First, cache.First) + m.m2.Complexity(value.Second, cache.Second)
}

func (m *Tuple2Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2]) OrderedArbitrary(step *Tuple2ArbStep[T1, A1, A2], maxCplx float64) (Pair[T1, T2], float64, bool) {
	for {
		if !step.haveA {
			a, aCplx, ok := m.m1.OrderedArbitrary(&step.aStep, maxCplx)
			if !ok {
				var zero Pair[T1, T2]
				return zero, 0, false
			}

			step.curA = a
			step.curACplx = aCplx
			step.haveA = true
			step.bStep = m.m2.DefaultArbitraryStep()
		}

		remaining := maxCplx - step.curACplx

		b, bCplx, ok := m.m2.OrderedArbitrary(&step.bStep, remaining)
		if !ok {
			step.haveA = false
			continue
		}

		return Pair[T1, T2]{First: step.curA, Second: b}, step.curACplx + bCplx, true
	}
}

func (m *Tuple2Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2]) RandomArbitrary(rng *rand.Rand, maxCplx float64) (Pair[T1, T2], float64) {
	rng = rngOrDefault(rng)
	a, aCplx := m.m1.RandomArbitrary(rng, maxCplx)
	b, bCplx := m.m2.RandomArbitrary(rng, maxCplx-aCplx)

	return Pair[T1, T2]{First: a, Second: b}, aCplx + bCplx
}

func (m *Tuple2Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2]) OrderedMutate(value *Pair[T1, T2], cache *Tuple2Cache[C1, C2], step *Tuple2MutStep[S1, S2], maxCplx float64) (Tuple2Token[U1, U2], float64, bool) {
	if !step.s2Initialized {
		step.s2Step = m.m2.DefaultMutationStep(value.Second, cache.Second)
		step.s2Initialized = true
	}

	for attempts := 0; attempts < 2; attempts++ {
		if step.turn == 0 {
			step.turn = 1

			if !step.field1Exhausted {
				budget := maxCplx - m.m2.Complexity(value.Second, cache.Second)

				u1, cplx, ok := m.m1.OrderedMutate(&value.First, &cache.First, &step.s1Step, budget)
				if ok {
					total := cplx + m.m2.Complexity(value.Second, cache.Second)
					return Tuple2Token[U1, U2]{field: 1, u1: u1}, total, true
				}

				step.field1Exhausted = true
			}
		} else {
			step.turn = 0

			if !step.field2Exhausted {
				budget := maxCplx - m.m1.Complexity(value.First, cache.First)

				u2, cplx, ok := m.m2.OrderedMutate(&value.Second, &cache.Second, &step.s2Step, budget)
				if ok {
					total := cplx + m.m1.Complexity(value.First, cache.First)
					return Tuple2Token[U1, U2]{field: 2, u2: u2}, total, true
				}

				step.field2Exhausted = true
			}
		}
	}

	return Tuple2Token[U1, U2]{}, 0, false
}

func (m *Tuple2Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2]) RandomMutate(rng *rand.Rand, value *Pair[T1, T2], cache *Tuple2Cache[C1, C2], maxCplx float64) (Tuple2Token[U1, U2], float64) {
	rng = rngOrDefault(rng)

	if rng.Intn(2) == 0 {
		budget := maxCplx - m.m2.Complexity(value.Second, cache.Second)
		u1, cplx := m.m1.RandomMutate(rng, &value.First, &cache.First, budget)
		total := cplx + m.m2.Complexity(value.Second, cache.Second)

		return Tuple2Token[U1, U2]{field: 1, u1: u1}, total
	}

	budget := maxCplx - m.m1.Complexity(value.First, cache.First)
	u2, cplx := m.m2.RandomMutate(rng, &value.Second, &cache.Second, budget)
	total := cplx + m.m1.Complexity(value.First, cache.First)

	return Tuple2Token[U1, U2]{field: 2, u2: u2}, total
}

func (m *Tuple2Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2]) Unmutate(value *Pair[T1, T2], cache *Tuple2Cache[C1, C2], token Tuple2Token[U1, U2]) {
	if token.field == 1 {
		m.m1.Unmutate(&value.First, &cache.First, token.u1)
		return
	}

	m.m2.Unmutate(&value.Second, &cache.Second, token.u2)
}

// Tuple3Cache pairs all three fields' own caches.
type Tuple3Cache[C1, C2, C3 any] struct {
	First  C1
	Second C2
	Third  C3
}

// Tuple3ArbStep drives ordered generation as a cross-product enumeration,
// one nested level per extra field: advance field 3 to exhaustion for the
// current (field 1, field 2) pair, then advance field 2, then field 1.
type Tuple3ArbStep[T1, T2 any, A1, A2, A3 any] struct {
	aStep    A1
	bStep    A2
	cStep    A3
	haveA    bool
	haveB    bool
	curA     T1
	curACplx float64
	curB     T2
	curBCplx float64
}

// Tuple3MutStep round-robins across the three fields, each dropping out of
// the rotation once its own ordered_mutate is exhausted.
type Tuple3MutStep[S1, S2, S3 any] struct {
	s1Step     S1
	s2Step     S2
	s3Step     S3
	s2Init     bool
	s3Init     bool
	exhausted1 bool
	exhausted2 bool
	exhausted3 bool
	turn       int
}

// Tuple3Token identifies which field mutated and carries its token.
type Tuple3Token[U1, U2, U3 any] struct {
	field int // 1, 2, or 3
	u1    U1
	u2    U2
	u3    U3
}

// Tuple3Mutator mutates (T1, T2, T3) one field at a time; complexity is
// always the sum of the three field complexities.
type Tuple3Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2, T3, C3, S3, A3, U3 any] struct {
	m1 Mutator[T1, C1, S1, A1, U1]
	m2 Mutator[T2, C2, S2, A2, U2]
	m3 Mutator[T3, C3, S3, A3, U3]
}

func NewTuple3[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2, T3, C3, S3, A3, U3 any](
	m1 Mutator[T1, C1, S1, A1, U1],
	m2 Mutator[T2, C2, S2, A2, U2],
	m3 Mutator[T3, C3, S3, A3, U3],
) *Tuple3Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2, T3, C3, S3, A3, U3] {
	return &Tuple3Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2, T3, C3, S3, A3, U3]{m1: m1, m2: m2, m3: m3}
}

func (m *Tuple3Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2, T3, C3, S3, A3, U3]) MaxComplexity() float64 {
	return m.m1.MaxComplexity() + m.m2.MaxComplexity() + m.m3.MaxComplexity()
}

func (m *Tuple3Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2, T3, C3, S3, A3, U3]) MinComplexity() float64 {
	return m.m1.MinComplexity() + m.m2.MinComplexity() + m.m3.MinComplexity()
}

func (m *Tuple3Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2, T3, C3, S3, A3, U3]) ValidateValue(value Triple[T1, T2, T3]) (Tuple3Cache[C1, C2, C3], bool) {
	c1, ok := m.m1.ValidateValue(value.First)
	if !ok {
		return Tuple3Cache[C1, C2, C3]{}, false
	}

	c2, ok := m.m2.ValidateValue(value.Second)
	if !ok {
		return Tuple3Cache[C1, C2, C3]{}, false
	}

	c3, ok := m.m3.ValidateValue(value.Third)
	if !ok {
		return Tuple3Cache[C1, C2, C3]{}, false
	}

	return Tuple3Cache[C1, C2, C3]{First: c1, Second: c2, Third: c3}, true
}

func (m *Tuple3Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2, T3, C3, S3, A3, U3]) DefaultMutationStep(value Triple[T1, T2, T3], cache Tuple3Cache[C1, C2, C3]) Tuple3MutStep[S1, S2, S3] {
	return Tuple3MutStep[S1, S2, S3]{
		s1Step: m.m1.DefaultMutationStep(value.First, cache.First),
		s2Step: m.m2.DefaultMutationStep(value.Second, cache.Second),
		s3Step: m.m3.DefaultMutationStep(value.Third, cache.Third),
		s2Init: true,
		s3Init: true,
	}
}

func (m *Tuple3Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2, T3, C3, S3, A3, U3]) DefaultArbitraryStep() Tuple3ArbStep[T1, T2, A1, A2, A3] {
	return Tuple3ArbStep[T1, T2, A1, A2, A3]{aStep: m.m1.DefaultArbitraryStep()}
}

func (m *Tuple3Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2, T3, C3, S3, A3, U3]) Complexity(value Triple[T1, T2, T3], cache Tuple3Cache[C1, C2, C3]) float64 {
	return m.m1.Complexity(value.First, cache.First) + m.m2.Complexity(value.Second, cache.Second) + m.m3.Complexity(value.Third, cache.Third)
}

func (m *Tuple3Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2, T3, C3, S3, A3, U3]) OrderedArbitrary(step *Tuple3ArbStep[T1, T2, A1, A2, A3], maxCplx float64) (Triple[T1, T2, T3], float64, bool) {
	for {
		if !step.haveA {
			a, aCplx, ok := m.m1.OrderedArbitrary(&step.aStep, maxCplx)
			if !ok {
				var zero Triple[T1, T2, T3]
				return zero, 0, false
			}

			step.curA = a
			step.curACplx = aCplx
			step.haveA = true
			step.bStep = m.m2.DefaultArbitraryStep()
			step.haveB = false
		}

		remainingAfterA := maxCplx - step.curACplx

		if !step.haveB {
			b, bCplx, ok := m.m2.OrderedArbitrary(&step.bStep, remainingAfterA)
			if !ok {
				step.haveA = false
				continue
			}

			step.curB = b
			step.curBCplx = bCplx
			step.haveB = true
			step.cStep = m.m3.DefaultArbitraryStep()
		}

		remainingAfterB := remainingAfterA - step.curBCplx

		c, cCplx, ok := m.m3.OrderedArbitrary(&step.cStep, remainingAfterB)
		if !ok {
			step.haveB = false
			continue
		}

		value := Triple[T1, T2, T3]{First: step.curA, Second: step.curB, Third: c}
		return value, step.curACplx + step.curBCplx + cCplx, true
	}
}

func (m *Tuple3Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2, T3, C3, S3, A3, U3]) RandomArbitrary(rng *rand.Rand, maxCplx float64) (Triple[T1, T2, T3], float64) {
	rng = rngOrDefault(rng)

	a, aCplx := m.m1.RandomArbitrary(rng, maxCplx)
	b, bCplx := m.m2.RandomArbitrary(rng, maxCplx-aCplx)
	c, cCplx := m.m3.RandomArbitrary(rng, maxCplx-aCplx-bCplx)

	return Triple[T1, T2, T3]{First: a, Second: b, Third: c}, aCplx + bCplx + cCplx
}

func (m *Tuple3Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2, T3, C3, S3, A3, U3]) OrderedMutate(value *Triple[T1, T2, T3], cache *Tuple3Cache[C1, C2, C3], step *Tuple3MutStep[S1, S2, S3], maxCplx float64) (Tuple3Token[U1, U2, U3], float64, bool) {
	if !step.s2Init {
		step.s2Step = m.m2.DefaultMutationStep(value.Second, cache.Second)
		step.s2Init = true
	}

	if !step.s3Init {
		step.s3Step = m.m3.DefaultMutationStep(value.Third, cache.Third)
		step.s3Init = true
	}

	for attempts := 0; attempts < 3; attempts++ {
		field := step.turn
		step.turn = (step.turn + 1) % 3

		switch field {
		case 0:
			if step.exhausted1 {
				continue
			}

			budget := maxCplx - m.m2.Complexity(value.Second, cache.Second) - m.m3.Complexity(value.Third, cache.Third)

			u1, cplx, ok := m.m1.OrderedMutate(&value.First, &cache.First, &step.s1Step, budget)
			if ok {
				total := cplx + m.m2.Complexity(value.Second, cache.Second) + m.m3.Complexity(value.Third, cache.Third)
				return Tuple3Token[U1, U2, U3]{field: 1, u1: u1}, total, true
			}

			step.exhausted1 = true
		case 1:
			if step.exhausted2 {
				continue
			}

			budget := maxCplx - m.m1.Complexity(value.First, cache.First) - m.m3.Complexity(value.Third, cache.Third)

			u2, cplx, ok := m.m2.OrderedMutate(&value.Second, &cache.Second, &step.s2Step, budget)
			if ok {
				total := cplx + m.m1.Complexity(value.First, cache.First) + m.m3.Complexity(value.Third, cache.Third)
				return Tuple3Token[U1, U2, U3]{field: 2, u2: u2}, total, true
			}

			step.exhausted2 = true
		default:
			if step.exhausted3 {
				continue
			}

			budget := maxCplx - m.m1.Complexity(value.First, cache.First) - m.m2.Complexity(value.Second, cache.Second)

			u3, cplx, ok := m.m3.OrderedMutate(&value.Third, &cache.Third, &step.s3Step, budget)
			if ok {
				total := cplx + m.m1.Complexity(value.First, cache.First) + m.m2.Complexity(value.Second, cache.Second)
				return Tuple3Token[U1, U2, U3]{field: 3, u3: u3}, total, true
			}

			step.exhausted3 = true
		}
	}

	return Tuple3Token[U1, U2, U3]{}, 0, false
}

func (m *Tuple3Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2, T3, C3, S3, A3, U3]) RandomMutate(rng *rand.Rand, value *Triple[T1, T2, T3], cache *Tuple3Cache[C1, C2, C3], maxCplx float64) (Tuple3Token[U1, U2, U3], float64) {
	rng = rngOrDefault(rng)

	switch rng.Intn(3) {
	case 0:
		budget := maxCplx - m.m2.Complexity(value.Second, cache.Second) - m.m3.Complexity(value.Third, cache.Third)
		u1, cplx := m.m1.RandomMutate(rng, &value.First, &cache.First, budget)
		total := cplx + m.m2.Complexity(value.Second, cache.Second) + m.m3.Complexity(value.Third, cache.Third)

		return Tuple3Token[U1, U2, U3]{field: 1, u1: u1}, total
	case 1:
		budget := maxCplx - m.m1.Complexity(value.First, cache.First) - m.m3.Complexity(value.Third, cache.Third)
		u2, cplx := m.m2.RandomMutate(rng, &value.Second, &cache.Second, budget)
		total := cplx + m.m1.Complexity(value.First, cache.First) + m.m3.Complexity(value.Third, cache.Third)

		return Tuple3Token[U1, U2, U3]{field: 2, u2: u2}, total
	default:
		budget := maxCplx - m.m1.Complexity(value.First, cache.First) - m.m2.Complexity(value.Second, cache.Second)
		u3, cplx := m.m3.RandomMutate(rng, &value.Third, &cache.Third, budget)
		total := cplx + m.m1.Complexity(value.First, cache.First) + m.m2.Complexity(value.Second, cache.Second)

		return Tuple3Token[U1, U2, U3]{field: 3, u3: u3}, total
	}
}

func (m *Tuple3Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2, T3, C3, S3, A3, U3]) Unmutate(value *Triple[T1, T2, T3], cache *Tuple3Cache[C1, C2, C3], token Tuple3Token[U1, U2, U3]) {
	switch token.field {
	case 1:
		m.m1.Unmutate(&value.First, &cache.First, token.u1)
	case 2:
		m.m2.Unmutate(&value.Second, &cache.Second, token.u2)
	default:
		m.m3.Unmutate(&value.Third, &cache.Third, token.u3)
	}
}
