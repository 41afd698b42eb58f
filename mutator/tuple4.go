package mutator

import "math/rand"

// Quad is the value type for the 4-ary tuple combinator.
type Quad[T1, T2, T3, T4 any] struct {
	First  T1
	Second T2
	Third  T3
	Fourth T4
}

// Tuple4Cache pairs all four fields' own caches.
type Tuple4Cache[C1, C2, C3, C4 any] struct {
	First  C1
	Second C2
	Third  C3
	Fourth C4
}

// Tuple4ArbStep drives ordered generation as a cross-product enumeration,
// one nested level per field: advance field 4 to exhaustion for the
// current (1, 2, 3) combination, then 3, then 2, then 1.
type Tuple4ArbStep[T1, T2, T3 any, A1, A2, A3, A4 any] struct {
	aStep    A1
	bStep    A2
	cStep    A3
	dStep    A4
	haveA    bool
	haveB    bool
	haveC    bool
	curA     T1
	curACplx float64
	curB     T2
	curBCplx float64
	curC     T3
	curCCplx float64
}

// Tuple4MutStep round-robins across the four fields, each dropping out of
// the rotation once its own ordered_mutate is exhausted.
type Tuple4MutStep[S1, S2, S3, S4 any] struct {
	s1Step     S1
	s2Step     S2
	s3Step     S3
	s4Step     S4
	s2Init     bool
	s3Init     bool
	s4Init     bool
	exhausted1 bool
	exhausted2 bool
	exhausted3 bool
	exhausted4 bool
	turn       int
}

// Tuple4Token identifies which field mutated and carries its token.
type Tuple4Token[U1, U2, U3, U4 any] struct {
	field int // 1, 2, 3, or 4
	u1    U1
	u2    U2
	u3    U3
	u4    U4
}

// Tuple4Mutator mutates (T1, T2, T3, T4) one field at a time; complexity is
// always the sum of the four field complexities.
type Tuple4Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2, T3, C3, S3, A3, U3, T4, C4, S4, A4, U4 any] struct {
	m1 Mutator[T1, C1, S1, A1, U1]
	m2 Mutator[T2, C2, S2, A2, U2]
	m3 Mutator[T3, C3, S3, A3, U3]
	m4 Mutator[T4, C4, S4, A4, U4]
}

func NewTuple4[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2, T3, C3, S3, A3, U3, T4, C4, S4, A4, U4 any](
	m1 Mutator[T1, C1, S1, A1, U1],
	m2 Mutator[T2, C2, S2, A2, U2],
	m3 Mutator[T3, C3, S3, A3, U3],
	m4 Mutator[T4, C4, S4, A4, U4],
) *Tuple4Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2, T3, C3, S3, A3, U3, T4, C4, S4, A4, U4] {
	return &Tuple4Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2, T3, C3, S3, A3, U3, T4, C4, S4, A4, U4]{m1: m1, m2: m2, m3: m3, m4: m4}
}

func (m *Tuple4Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2, T3, C3, S3, A3, U3, T4, C4, S4, A4, U4]) MaxComplexity() float64 {
	return m.m1.MaxComplexity() + m.m2.MaxComplexity() + m.m3.MaxComplexity() + m.m4.MaxComplexity()
}

func (m *Tuple4Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2, T3, C3, S3, A3, U3, T4, C4, S4, A4, U4]) MinComplexity() float64 {
	return m.m1.MinComplexity() + m.m2.MinComplexity() + m.m3.MinComplexity() + m.m4.MinComplexity()
}

func (m *Tuple4Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2, T3, C3, S3, A3, U3, T4, C4, S4, A4, U4]) ValidateValue(value Quad[T1, T2, T3, T4]) (Tuple4Cache[C1, C2, C3, C4], bool) {
	c1, ok := m.m1.ValidateValue(value.First)
	if !ok {
		return Tuple4Cache[C1, C2, C3, C4]{}, false
	}

	c2, ok := m.m2.ValidateValue(value.Second)
	if !ok {
		return Tuple4Cache[C1, C2, C3, C4]{}, false
	}

	c3, ok := m.m3.ValidateValue(value.Third)
	if !ok {
		return Tuple4Cache[C1, C2, C3, C4]{}, false
	}

	c4, ok := m.m4.ValidateValue(value.Fourth)
	if !ok {
		return Tuple4Cache[C1, C2, C3, C4]{}, false
	}

	return Tuple4Cache[C1, C2, C3, C4]{First: c1, Second: c2, Third: c3, Fourth: c4}, true
}

func (m *Tuple4Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2, T3, C3, S3, A3, U3, T4, C4, S4, A4, U4]) DefaultMutationStep(value Quad[T1, T2, T3, T4], cache Tuple4Cache[C1, C2, C3, C4]) Tuple4MutStep[S1, S2, S3, S4] {
	return Tuple4MutStep[S1, S2, S3, S4]{
		s1Step: m.m1.DefaultMutationStep(value.First, cache.First),
		s2Step: m.m2.DefaultMutationStep(value.Second, cache.Second),
		s3Step: m.m3.DefaultMutationStep(value.Third, cache.Third),
		s4Step: m.m4.DefaultMutationStep(value.Fourth, cache.Fourth),
		s2Init: true,
		s3Init: true,
		s4Init: true,
	}
}

func (m *Tuple4Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2, T3, C3, S3, A3, U3, T4, C4, S4, A4, U4]) DefaultArbitraryStep() Tuple4ArbStep[T1, T2, T3, A1, A2, A3, A4] {
	return Tuple4ArbStep[T1, T2, T3, A1, A2, A3, A4]{aStep: m.m1.DefaultArbitraryStep()}
}

func (m *Tuple4Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2, T3, C3, S3, A3, U3, T4, C4, S4, A4, U4]) Complexity(value Quad[T1, T2, T3, T4], cache Tuple4Cache[C1, C2, C3, C4]) float64 {
	return m.m1.Complexity(value.First, cache.First) + m.m2.Complexity(value.Second, cache.Second) +
		m.m3.Complexity(value.Third, cache.Third) + m.m4.Complexity(value.Fourth, cache.Fourth)
}

func (m *Tuple4Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2, T3, C3, S3, A3, U3, T4, C4, S4, A4, U4]) OrderedArbitrary(step *Tuple4ArbStep[T1, T2, T3, A1, A2, A3, A4], maxCplx float64) (Quad[T1, T2, T3, T4], float64, bool) {
	for {
		if !step.haveA {
			a, aCplx, ok := m.m1.OrderedArbitrary(&step.aStep, maxCplx)
			if !ok {
				var zero Quad[T1, T2, T3, T4]
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
			step.haveC = false
		}

		remainingAfterB := remainingAfterA - step.curBCplx

		if !step.haveC {
			c, cCplx, ok := m.m3.OrderedArbitrary(&step.cStep, remainingAfterB)
			if !ok {
				step.haveB = false
				continue
			}

			step.curC = c
			step.curCCplx = cCplx
			step.haveC = true
			step.dStep = m.m4.DefaultArbitraryStep()
		}

		remainingAfterC := remainingAfterB - step.curCCplx

		d, dCplx, ok := m.m4.OrderedArbitrary(&step.dStep, remainingAfterC)
		if !ok {
			step.haveC = false
			continue
		}

		value := Quad[T1, T2, T3, T4]{First: step.curA, Second: step.curB, Third: step.curC, Fourth: d}
		return value, step.curACplx + step.curBCplx + step.curCCplx + dCplx, true
	}
}

func (m *Tuple4Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2, T3, C3, S3, A3, U3, T4, C4, S4, A4, U4]) RandomArbitrary(rng *rand.Rand, maxCplx float64) (Quad[T1, T2, T3, T4], float64) {
	rng = rngOrDefault(rng)

	a, aCplx := m.m1.RandomArbitrary(rng, maxCplx)
	b, bCplx := m.m2.RandomArbitrary(rng, maxCplx-aCplx)
	c, cCplx := m.m3.RandomArbitrary(rng, maxCplx-aCplx-bCplx)
	d, dCplx := m.m4.RandomArbitrary(rng, maxCplx-aCplx-bCplx-cCplx)

	return Quad[T1, T2, T3, T4]{First: a, Second: b, Third: c, Fourth: d}, aCplx + bCplx + cCplx + dCplx
}

func (m *Tuple4Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2, T3, C3, S3, A3, U3, T4, C4, S4, A4, U4]) OrderedMutate(value *Quad[T1, T2, T3, T4], cache *Tuple4Cache[C1, C2, C3, C4], step *Tuple4MutStep[S1, S2, S3, S4], maxCplx float64) (Tuple4Token[U1, U2, U3, U4], float64, bool) {
	if !step.s2Init {
		step.s2Step = m.m2.DefaultMutationStep(value.Second, cache.Second)
		step.s2Init = true
	}

	if !step.s3Init {
		step.s3Step = m.m3.DefaultMutationStep(value.Third, cache.Third)
		step.s3Init = true
	}

	if !step.s4Init {
		step.s4Step = m.m4.DefaultMutationStep(value.Fourth, cache.Fourth)
		step.s4Init = true
	}

	for attempts := 0; attempts < 4; attempts++ {
		field := step.turn
		step.turn = (step.turn + 1) % 4

		switch field {
		case 0:
			if step.exhausted1 {
				continue
			}

			budget := maxCplx - m.m2.Complexity(value.Second, cache.Second) - m.m3.Complexity(value.Third, cache.Third) - m.m4.Complexity(value.Fourth, cache.Fourth)

			u1, cplx, ok := m.m1.OrderedMutate(&value.First, &cache.First, &step.s1Step, budget)
			if ok {
				total := cplx + m.m2.Complexity(value.Second, cache.Second) + m.m3.Complexity(value.Third, cache.Third) + m.m4.Complexity(value.Fourth, cache.Fourth)
				return Tuple4Token[U1, U2, U3, U4]{field: 1, u1: u1}, total, true
			}

			step.exhausted1 = true
		case 1:
			if step.exhausted2 {
				continue
			}

			budget := maxCplx - m.m1.Complexity(value.First, cache.First) - m.m3.Complexity(value.Third, cache.Third) - m.m4.Complexity(value.Fourth, cache.Fourth)

			u2, cplx, ok := m.m2.OrderedMutate(&value.Second, &cache.Second, &step.s2Step, budget)
			if ok {
				total := cplx + m.m1.Complexity(value.First, cache.First) + m.m3.Complexity(value.Third, cache.Third) + m.m4.Complexity(value.Fourth, cache.Fourth)
				return Tuple4Token[U1, U2, U3, U4]{field: 2, u2: u2}, total, true
			}

			step.exhausted2 = true
		case 2:
			if step.exhausted3 {
				continue
			}

			budget := maxCplx - m.m1.Complexity(value.First, cache.First) - m.m2.Complexity(value.Second, cache.Second) - m.m4.Complexity(value.Fourth, cache.Fourth)

			u3, cplx, ok := m.m3.OrderedMutate(&value.Third, &cache.Third, &step.s3Step, budget)
			if ok {
				total := cplx + m.m1.Complexity(value.First, cache.First) + m.m2.Complexity(value.Second, cache.Second) + m.m4.Complexity(value.Fourth, cache.Fourth)
				return Tuple4Token[U1, U2, U3, U4]{field: 3, u3: u3}, total, true
			}

			step.exhausted3 = true
		default:
			if step.exhausted4 {
				continue
			}

			budget := maxCplx - m.m1.Complexity(value.First, cache.First) - m.m2.Complexity(value.Second, cache.Second) - m.m3.Complexity(value.Third, cache.Third)

			u4, cplx, ok := m.m4.OrderedMutate(&value.Fourth, &cache.Fourth, &step.s4Step, budget)
			if ok {
				total := cplx + m.m1.Complexity(value.First, cache.First) + m.m2.Complexity(value.Second, cache.Second) + m.m3.Complexity(value.Third, cache.Third)
				return Tuple4Token[U1, U2, U3, U4]{field: 4, u4: u4}, total, true
			}

			step.exhausted4 = true
		}
	}

	return Tuple4Token[U1, U2, U3, U4]{}, 0, false
}

func (m *Tuple4Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2, T3, C3, S3, A3, U3, T4, C4, S4, A4, U4]) RandomMutate(rng *rand.Rand, value *Quad[T1, T2, T3, T4], cache *Tuple4Cache[C1, C2, C3, C4], maxCplx float64) (Tuple4Token[U1, U2, U3, U4], float64) {
	rng = rngOrDefault(rng)

	switch rng.Intn(4) {
	case 0:
		budget := maxCplx - m.m2.Complexity(value.Second, cache.Second) - m.m3.Complexity(value.Third, cache.Third) - m.m4.Complexity(value.Fourth, cache.Fourth)
		u1, cplx := m.m1.RandomMutate(rng, &value.First, &cache.First, budget)
		total := cplx + m.m2.Complexity(value.Second, cache.Second) + m.m3.Complexity(value.Third, cache.Third) + m.m4.Complexity(value.Fourth, cache.Fourth)

		return Tuple4Token[U1, U2, U3, U4]{field: 1, u1: u1}, total
	case 1:
		budget := maxCplx - m.m1.Complexity(value.First, cache.First) - m.m3.Complexity(value.Third, cache.Third) - m.m4.Complexity(value.Fourth, cache.Fourth)
		u2, cplx := m.m2.RandomMutate(rng, &value.Second, &cache.Second, budget)
		total := cplx + m.m1.Complexity(value.First, cache.First) + m.m3.Complexity(value.Third, cache.Third) + m.m4.Complexity(value.Fourth, cache.Fourth)

		return Tuple4Token[U1, U2, U3, U4]{field: 2, u2: u2}, total
	case 2:
		budget := maxCplx - m.m1.Complexity(value.First, cache.First) - m.m2.Complexity(value.Second, cache.Second) - m.m4.Complexity(value.Fourth, cache.Fourth)
		u3, cplx := m.m3.RandomMutate(rng, &value.Third, &cache.Third, budget)
		total := cplx + m.m1.Complexity(value.First, cache.First) + m.m2.Complexity(value.Second, cache.Second) + m.m4.Complexity(value.Fourth, cache.Fourth)

		return Tuple4Token[U1, U2, U3, U4]{field: 3, u3: u3}, total
	default:
		budget := maxCplx - m.m1.Complexity(value.First, cache.First) - m.m2.Complexity(value.Second, cache.Second) - m.m3.Complexity(value.Third, cache.Third)
		u4, cplx := m.m4.RandomMutate(rng, &value.Fourth, &cache.Fourth, budget)
		total := cplx + m.m1.Complexity(value.First, cache.First) + m.m2.Complexity(value.Second, cache.Second) + m.m3.Complexity(value.Third, cache.Third)

		return Tuple4Token[U1, U2, U3, U4]{field: 4, u4: u4}, total
	}
}

func (m *Tuple4Mutator[T1, C1, S1, A1, U1, T2, C2, S2, A2, U2, T3, C3, S3, A3, U3, T4, C4, S4, A4, U4]) Unmutate(value *Quad[T1, T2, T3, T4], cache *Tuple4Cache[C1, C2, C3, C4], token Tuple4Token[U1, U2, U3, U4]) {
	switch token.field {
	case 1:
		m.m1.Unmutate(&value.First, &cache.First, token.u1)
	case 2:
		m.m2.Unmutate(&value.Second, &cache.Second, token.u2)
	case 3:
		m.m3.Unmutate(&value.Third, &cache.Third, token.u3)
	default:
		m.m4.Unmutate(&value.Fourth, &cache.Fourth, token.u4)
	}
}
