package mutator

import "math/rand"

// UnitCache and UnitToken are empty: () has exactly one value and zero
// complexity, so there is nothing to cache or reverse. UnitStep and
// UnitArbStep only record whether their single mutation/value has been
// produced.
type (
	UnitCache   struct{}
	UnitStep    struct{ done bool }
	UnitArbStep struct{ done bool }
	UnitToken   struct{}
)

// UnitMutator is the mutator for struct{} (Go's equivalent of Rust's ()).
type UnitMutator struct{}

func NewUnit() UnitMutator { return UnitMutator{} }

func (UnitMutator) MaxComplexity() float64 { return 0 }
func (UnitMutator) MinComplexity() float64 { return 0 }

func (UnitMutator) ValidateValue(struct{}) (UnitCache, bool) { return UnitCache{}, true }

func (UnitMutator) DefaultMutationStep(struct{}, UnitCache) UnitStep { return UnitStep{} }
func (UnitMutator) DefaultArbitraryStep() UnitArbStep                { return UnitArbStep{} }

func (UnitMutator) Complexity(struct{}, UnitCache) float64 { return 0 }

func (UnitMutator) OrderedArbitrary(step *UnitArbStep, maxCplx float64) (struct{}, float64, bool) {
	if step.done {
		return struct{}{}, 0, false
	}

	step.done = true

	return struct{}{}, 0, true
}

func (UnitMutator) RandomArbitrary(rng *rand.Rand, maxCplx float64) (struct{}, float64) {
	return struct{}{}, 0
}

func (UnitMutator) OrderedMutate(value *struct{}, cache *UnitCache, step *UnitStep, maxCplx float64) (UnitToken, float64, bool) {
	if step.done {
		return UnitToken{}, 0, false
	}

	step.done = true

	return UnitToken{}, 0, true
}

func (UnitMutator) RandomMutate(rng *rand.Rand, value *struct{}, cache *UnitCache, maxCplx float64) (UnitToken, float64) {
	return UnitToken{}, 0
}

func (UnitMutator) Unmutate(value *struct{}, cache *UnitCache, token UnitToken) {}
