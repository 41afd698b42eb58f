package mutator

import "math/rand"

// Variant is a tagged union value: Tag selects which of a VariantsMutator's
// per-tag payload mutators owns Payload. This is the value shape the
// variants helper builds an alternation over — Go has no native sum type,
// so the tag travels alongside the payload instead of being encoded in
// the type itself.
type Variant struct {
	Tag     int
	Payload any
}

// VariantsMutator is a thin naming layer over AlternationMutator for the
// common case of mutating an enum: each tag gets its own payload mutator
// (typically a tuple of that variant's fields, or UnitMutator for a
// payload-less tag), and generation/mutation picks a tag exactly the way
// alternation picks a child.
type VariantsMutator struct {
	alt *AlternationMutator[Variant]
}

// variantAdapter boxes a per-tag AnyMutator[any] as an AnyMutator[Variant]
// fixed to one tag, so the underlying alternation machinery can be reused
// unchanged.
type variantAdapter struct {
	tag   int
	inner AnyMutator[any]
}

func (v *variantAdapter) MaxComplexity() float64 { return v.inner.MaxComplexity() }
func (v *variantAdapter) MinComplexity() float64 { return v.inner.MinComplexity() }

func (v *variantAdapter) ValidateValue(value Variant) (any, bool) {
	if value.Tag != v.tag {
		return nil, false
	}

	return v.inner.ValidateValue(value.Payload)
}

func (v *variantAdapter) DefaultMutationStep(value Variant, cache any) any {
	return v.inner.DefaultMutationStep(value.Payload, cache)
}

func (v *variantAdapter) DefaultArbitraryStep() any { return v.inner.DefaultArbitraryStep() }

func (v *variantAdapter) Complexity(value Variant, cache any) float64 {
	return v.inner.Complexity(value.Payload, cache)
}

func (v *variantAdapter) OrderedArbitrary(step any, maxCplx float64) (Variant, float64, any, bool) {
	payload, cplx, newStep, ok := v.inner.OrderedArbitrary(step, maxCplx)
	if !ok {
		return Variant{}, 0, nil, false
	}

	return Variant{Tag: v.tag, Payload: payload}, cplx, newStep, true
}

func (v *variantAdapter) RandomArbitrary(rng *rand.Rand, maxCplx float64) (Variant, float64) {
	payload, cplx := v.inner.RandomArbitrary(rng, maxCplx)
	return Variant{Tag: v.tag, Payload: payload}, cplx
}

func (v *variantAdapter) OrderedMutate(value Variant, cache any, step any, maxCplx float64) (Variant, any, any, float64, any, bool) {
	payload, newCache, token, cplx, newStep, ok := v.inner.OrderedMutate(value.Payload, cache, step, maxCplx)
	if !ok {
		return value, cache, nil, 0, step, false
	}

	return Variant{Tag: v.tag, Payload: payload}, newCache, token, cplx, newStep, true
}

func (v *variantAdapter) RandomMutate(rng *rand.Rand, value Variant, cache any, maxCplx float64) (Variant, any, any, float64) {
	payload, newCache, token, cplx := v.inner.RandomMutate(rng, value.Payload, cache, maxCplx)
	return Variant{Tag: v.tag, Payload: payload}, newCache, token, cplx
}

func (v *variantAdapter) Unmutate(value Variant, cache any, token any) (Variant, any) {
	payload, restoredCache := v.inner.Unmutate(value.Payload, cache, token)
	return Variant{Tag: v.tag, Payload: payload}, restoredCache
}

// NewVariants builds an enum mutator from one payload mutator per tag,
// tags numbered 0..len(payloads)-1 in the order given.
func NewVariants(payloads ...AnyMutator[any]) *VariantsMutator {
	children := make([]AnyMutator[Variant], len(payloads))
	for i, p := range payloads {
		children[i] = &variantAdapter{tag: i, inner: p}
	}

	return &VariantsMutator{alt: NewAlternation(children...)}
}

func (m *VariantsMutator) MaxComplexity() float64 { return m.alt.MaxComplexity() }
func (m *VariantsMutator) MinComplexity() float64 { return m.alt.MinComplexity() }

func (m *VariantsMutator) ValidateValue(value Variant) (AlternationCache, bool) {
	return m.alt.ValidateValue(value)
}

func (m *VariantsMutator) DefaultMutationStep(value Variant, cache AlternationCache) AlternationMutStep {
	return m.alt.DefaultMutationStep(value, cache)
}

func (m *VariantsMutator) DefaultArbitraryStep() AlternationArbStep {
	return m.alt.DefaultArbitraryStep()
}

func (m *VariantsMutator) Complexity(value Variant, cache AlternationCache) float64 {
	return m.alt.Complexity(value, cache)
}

func (m *VariantsMutator) OrderedArbitrary(step *AlternationArbStep, maxCplx float64) (Variant, float64, bool) {
	return m.alt.OrderedArbitrary(step, maxCplx)
}

func (m *VariantsMutator) RandomArbitrary(rng *rand.Rand, maxCplx float64) (Variant, float64) {
	return m.alt.RandomArbitrary(rng, maxCplx)
}

func (m *VariantsMutator) OrderedMutate(value *Variant, cache *AlternationCache, step *AlternationMutStep, maxCplx float64) (AlternationToken, float64, bool) {
	return m.alt.OrderedMutate(value, cache, step, maxCplx)
}

func (m *VariantsMutator) RandomMutate(rng *rand.Rand, value *Variant, cache *AlternationCache, maxCplx float64) (AlternationToken, float64) {
	return m.alt.RandomMutate(rng, value, cache, maxCplx)
}

func (m *VariantsMutator) Unmutate(value *Variant, cache *AlternationCache, token AlternationToken) {
	m.alt.Unmutate(value, cache, token)
}
