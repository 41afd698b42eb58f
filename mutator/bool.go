package mutator

import "math/rand"

type BoolCache struct{}

// BoolArbStep enumerates the two bool values in order: false, then true.
type BoolArbStep struct{ next int }

// BoolMutStep drives the single ordered mutation ("flip") available for a
// bool; once flipped it is exhausted for ordered mutation.
type BoolMutStep struct{ done bool }

// BoolToken carries the previous value so Unmutate can restore it exactly.
type BoolToken struct{ previous bool }

// BoolMutator is the mutator for bool. Fixed complexity of 1.0 matches the
// tuple round-trip scenario: (u8, bool) complexity is 8.0 + 1.0 = 9.0.
type BoolMutator struct{}

func NewBool() BoolMutator { return BoolMutator{} }

func (BoolMutator) MaxComplexity() float64 { return 1 }
func (BoolMutator) MinComplexity() float64 { return 1 }

func (BoolMutator) ValidateValue(bool) (BoolCache, bool) { return BoolCache{}, true }

func (BoolMutator) DefaultMutationStep(bool, BoolCache) BoolMutStep { return BoolMutStep{} }
func (BoolMutator) DefaultArbitraryStep() BoolArbStep               { return BoolArbStep{} }

func (BoolMutator) Complexity(bool, BoolCache) float64 { return 1 }

func (BoolMutator) OrderedArbitrary(step *BoolArbStep, maxCplx float64) (bool, float64, bool) {
	if step.next >= 2 || maxCplx < 1 {
		return false, 0, false
	}

	v := step.next == 1
	step.next++

	return v, 1, true
}

func (BoolMutator) RandomArbitrary(rng *rand.Rand, maxCplx float64) (bool, float64) {
	return rngOrDefault(rng).Intn(2) == 1, 1
}

func (BoolMutator) OrderedMutate(value *bool, cache *BoolCache, step *BoolMutStep, maxCplx float64) (BoolToken, float64, bool) {
	if step.done {
		return BoolToken{}, 0, false
	}

	step.done = true
	prev := *value
	*value = !*value

	return BoolToken{previous: prev}, 1, true
}

func (BoolMutator) RandomMutate(rng *rand.Rand, value *bool, cache *BoolCache, maxCplx float64) (BoolToken, float64) {
	prev := *value
	*value = rngOrDefault(rng).Intn(2) == 1

	return BoolToken{previous: prev}, 1
}

func (BoolMutator) Unmutate(value *bool, cache *BoolCache, token BoolToken) {
	*value = token.previous
}
