package mutator

import "testing"

func TestVectorValidateValueRespectsLengthBounds(t *testing.T) {
	m := NewVector[uint8, IntCache, IntMutStep, IntArbStep, IntToken](NewUint8(), 1, 4)

	if _, ok := m.ValidateValue([]uint8{}); ok {
		t.Fatalf("expected empty slice to fail validation under minLen=1")
	}

	if _, ok := m.ValidateValue([]uint8{1, 2, 3, 4, 5}); ok {
		t.Fatalf("expected 5-element slice to fail validation under maxLen=4")
	}

	if _, ok := m.ValidateValue([]uint8{1, 2}); !ok {
		t.Fatalf("expected 2-element slice to validate")
	}
}

func TestVectorComplexityGrowsWithLength(t *testing.T) {
	m := NewVector[uint8, IntCache, IntMutStep, IntArbStep, IntToken](NewUint8(), 0, 8)

	short := []uint8{1}
	long := []uint8{1, 2, 3, 4}

	shortCache, _ := m.ValidateValue(short)
	longCache, _ := m.ValidateValue(long)

	if m.Complexity(long, longCache) <= m.Complexity(short, shortCache) {
		t.Fatalf("expected longer vector to report higher complexity")
	}
}

func TestVectorRandomMutateThenUnmutateRestoresLength(t *testing.T) {
	m := NewVector[uint8, IntCache, IntMutStep, IntArbStep, IntToken](NewUint8(), 0, 16)

	value := []uint8{1, 2, 3}
	cache, _ := m.ValidateValue(value)

	originalLen := len(value)

	token, _ := m.RandomMutate(nil, &value, &cache, 1000)
	m.Unmutate(&value, &cache, token)

	if len(value) != originalLen {
		t.Fatalf("expected length restored to %d, got %d", originalLen, len(value))
	}
}

func TestVectorOrderedMutateEventuallyExhausts(t *testing.T) {
	m := NewVector[uint8, IntCache, IntMutStep, IntArbStep, IntToken](NewUint8(), 1, 1)

	value := []uint8{1}
	cache, _ := m.ValidateValue(value)
	step := m.DefaultMutationStep(value, cache)

	exhausted := false
	for i := 0; i < 100000; i++ {
		_, _, ok := m.OrderedMutate(&value, &cache, &step, 100)
		if !ok {
			exhausted = true
			break
		}
	}

	if !exhausted {
		t.Fatalf("expected ordered_mutate to exhaust once every slot's own step is exhausted")
	}
}

func TestVectorOrderedArbitraryProducesIncreasingLengths(t *testing.T) {
	m := NewVector[uint8, IntCache, IntMutStep, IntArbStep, IntToken](NewUint8(), 0, 3)
	step := m.DefaultArbitraryStep()

	var lastLen = -1
	for i := 0; i < 4; i++ {
		v, _, ok := m.OrderedArbitrary(&step, 4096)
		if !ok {
			break
		}

		if len(v) < lastLen {
			t.Fatalf("expected non-decreasing lengths, got %d after %d", len(v), lastLen)
		}

		lastLen = len(v)
	}
}
