// Package mutator implements the typed mutator framework: a compositional,
// reversible algebra of edits over arbitrary Go values under a complexity
// budget. Mutators are the leaves and combinators the fuzzing loop drives
// to generate and evolve test cases; the loop itself never inspects T.
package mutator

import "math/rand"

// Mutator is the core reversible, complexity-bounded mutation contract for
// a single value type T. Cache, MutStep, ArbStep, and Unmut are the
// mutator's own per-value cache, mutation-step cursor, arbitrary-step
// cursor, and unmutate-token types — Go has no associated types, so each
// concrete mutator fixes all four as concrete type parameters rather than
// boxing them in interface{}. Combinators that must hold *heterogeneous*
// children (Alternation, Recursive) box through AnyMutator instead; see
// any_adapter.go.
//
// Mutation is performed in place through pointers so that a rejected trial
// costs one token allocation rather than a clone, per the engine's
// mutate/unmutate contract.
type Mutator[T, Cache, MutStep, ArbStep, Unmut any] interface {
	// MaxComplexity is a static upper bound on any value this mutator can
	// report a complexity for.
	MaxComplexity() float64
	// MinComplexity is a static lower bound, symmetric to MaxComplexity.
	MinComplexity() float64

	// ValidateValue reconstructs a Cache for value, or reports that this
	// mutator could not have produced value.
	ValidateValue(value T) (Cache, bool)

	// DefaultMutationStep returns the starting cursor for ordered mutation
	// of value.
	DefaultMutationStep(value T, cache Cache) MutStep
	// DefaultArbitraryStep returns the starting cursor for ordered
	// generation from nothing.
	DefaultArbitraryStep() ArbStep

	// Complexity reports the informational size of value given its cache.
	Complexity(value T, cache Cache) float64

	// OrderedArbitrary enumerates the next value in a deterministic,
	// least-complex-first sequence. Returns ok=false once the sequence is
	// exhausted under maxCplx.
	OrderedArbitrary(step *ArbStep, maxCplx float64) (value T, complexity float64, ok bool)
	// RandomArbitrary samples a value approaching but never exceeding
	// maxCplx. Always succeeds.
	RandomArbitrary(rng *rand.Rand, maxCplx float64) (value T, complexity float64)

	// OrderedMutate applies the next small mutation from step's position,
	// in place. Returns ok=false once this value is exhausted for ordered
	// mutation (random_mutate may still be called).
	OrderedMutate(value *T, cache *Cache, step *MutStep, maxCplx float64) (token Unmut, complexity float64, ok bool)
	// RandomMutate samples and applies a mutation in place. Always
	// succeeds on a valid value.
	RandomMutate(rng *rand.Rand, value *T, cache *Cache, maxCplx float64) (token Unmut, complexity float64)

	// Unmutate reverses the most recently applied mutation identified by
	// token, restoring value and cache byte-for-byte.
	Unmutate(value *T, cache *Cache, token Unmut)
}

// rngOrDefault is used by combinators that need a source but were not
// handed one (e.g. a nil *rand.Rand from a careless caller): it returns a
// fresh source seeded with the constant 1, so every such call starts the
// same deterministic sequence again.
func rngOrDefault(rng *rand.Rand) *rand.Rand {
	if rng == nil {
		return rand.New(rand.NewSource(1))
	}

	return rng
}
