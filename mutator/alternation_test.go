package mutator

import "testing"

func TestAlternationValidateValuePicksFirstMatchingChild(t *testing.T) {
	m := NewAlternation[uint8](AsAny[uint8, IntCache, IntMutStep, IntArbStep, IntToken](NewUint8()))

	cache, ok := m.ValidateValue(42)
	if !ok {
		t.Fatalf("expected ValidateValue to succeed")
	}

	if cache.child != 0 {
		t.Fatalf("expected child index 0, got %d", cache.child)
	}
}

func TestAlternationOrderedArbitraryDropsExhaustedChildren(t *testing.T) {
	m := NewAlternation[uint8](
		AsAny[uint8, IntCache, IntMutStep, IntArbStep, IntToken](NewUint8()),
		AsAny[uint8, IntCache, IntMutStep, IntArbStep, IntToken](NewUint8()),
	)

	step := m.DefaultArbitraryStep()

	count := 0
	for {
		_, _, ok := m.OrderedArbitrary(&step, 4096)
		if !ok {
			break
		}

		count++
		if count > 1000 {
			t.Fatalf("expected alternation to exhaust, did not after 1000 calls")
		}
	}

	if count != 512 {
		t.Fatalf("expected 256 values per child (512 total), got %d", count)
	}
}

func TestAlternationMutateUnmutateRoundTrip(t *testing.T) {
	m := NewAlternation[uint8](AsAny[uint8, IntCache, IntMutStep, IntArbStep, IntToken](NewUint8()))

	var value uint8 = 11
	cache, _ := m.ValidateValue(value)

	original := value

	token, _ := m.RandomMutate(nil, &value, &cache, 100)
	m.Unmutate(&value, &cache, token)

	if value != original {
		t.Fatalf("expected value restored to %d, got %d", original, value)
	}
}
