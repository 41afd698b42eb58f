package mutator

import "testing"

func TestUint8OrderedArbitraryIdentity(t *testing.T) {
	m := NewUint8()
	step := m.DefaultArbitraryStep()

	seen := make(map[uint8]bool, 256)

	for i := 0; i < 256; i++ {
		v, cplx, ok := m.OrderedArbitrary(&step, 4096)
		if !ok {
			t.Fatalf("call %d: expected ok=true, got false", i)
		}

		if cplx != 8 {
			t.Fatalf("call %d: expected complexity 8, got %v", i, cplx)
		}

		if seen[v] {
			t.Fatalf("call %d: value %d repeated", i, v)
		}

		seen[v] = true
	}

	if len(seen) != 256 {
		t.Fatalf("expected 256 distinct values, got %d", len(seen))
	}

	if _, _, ok := m.OrderedArbitrary(&step, 4096); ok {
		t.Fatalf("expected 257th call to return ok=false")
	}
}

func TestUint8ComplexityBounds(t *testing.T) {
	m := NewUint8()
	if m.MinComplexity() != 8 || m.MaxComplexity() != 8 {
		t.Fatalf("expected min=max=8, got min=%v max=%v", m.MinComplexity(), m.MaxComplexity())
	}
}

func TestUint8MutateUnmutateRoundTrip(t *testing.T) {
	m := NewUint8()

	var value uint8 = 42

	cache, ok := m.ValidateValue(value)
	if !ok {
		t.Fatalf("expected ValidateValue to succeed")
	}

	original := value
	originalCache := cache

	token, cplx := m.RandomMutate(nil, &value, &cache, 100)
	if cplx != 8 {
		t.Fatalf("expected complexity 8, got %v", cplx)
	}

	m.Unmutate(&value, &cache, token)

	if value != original {
		t.Fatalf("expected value restored to %d, got %d", original, value)
	}

	if cache != originalCache {
		t.Fatalf("expected cache restored")
	}
}

func TestUint8OrderedMutateRespectsBudget(t *testing.T) {
	m := NewUint8()

	var value uint8 = 1

	cache, _ := m.ValidateValue(value)
	step := m.DefaultMutationStep(value, cache)

	for {
		_, cplx, ok := m.OrderedMutate(&value, &cache, &step, 100)
		if !ok {
			break
		}

		if cplx > 100 {
			t.Fatalf("complexity %v exceeds budget", cplx)
		}
	}
}
