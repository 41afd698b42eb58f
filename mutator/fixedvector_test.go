package mutator

import "testing"

func TestFixedVectorValidateValueRejectsWrongLength(t *testing.T) {
	m := NewFixedVector[uint8](NewUint8(), 6)

	if _, ok := m.ValidateValue([]uint8{1, 2, 3}); ok {
		t.Fatalf("expected a 3-element slice to fail validation against length 6")
	}

	if _, ok := m.ValidateValue(make([]uint8, 6)); !ok {
		t.Fatalf("expected a 6-element slice to validate")
	}
}

func TestFixedVectorRandomMutateThenUnmutateRestoresValue(t *testing.T) {
	m := NewFixedVector[uint8](NewUint8(), 6)

	value := []uint8{1, 2, 3, 4, 5, 6}
	cache, _ := m.ValidateValue(value)
	original := append([]uint8(nil), value...)

	token, _ := m.RandomMutate(nil, &value, &cache, 1000)
	m.Unmutate(&value, &cache, token)

	for i := range original {
		if value[i] != original[i] {
			t.Fatalf("expected value restored to %v, got %v", original, value)
		}
	}
}

func TestFixedVectorComplexityIsOnePlusSumOfSlots(t *testing.T) {
	m := NewFixedVector[uint8](NewUint8(), 6)

	value := make([]uint8, 6)
	cache, _ := m.ValidateValue(value)

	sum := 0.0
	for i, v := range value {
		sum += m.elem.Complexity(v, cache.elements[i])
	}

	if got, want := m.Complexity(value, cache), 1+sum; got != want {
		t.Fatalf("expected complexity %v, got %v", want, got)
	}
}

func TestFixedVectorOrderedArbitraryNeverChangesLength(t *testing.T) {
	m := NewFixedVector[uint8](NewUint8(), 6)
	step := m.DefaultArbitraryStep()

	for i := 0; i < 3; i++ {
		v, _, ok := m.OrderedArbitrary(&step, 4096)
		if !ok {
			break
		}

		if len(v) != 6 {
			t.Fatalf("expected fixed length 6, got %d", len(v))
		}
	}
}

func TestFixedVectorOrderedMutateEventuallyExhausts(t *testing.T) {
	m := NewFixedVector[uint8](NewUint8(), 6)

	value := make([]uint8, 6)
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

func TestFixedVectorRandomMutateKeepsLengthFixed(t *testing.T) {
	m := NewFixedVector[uint8](NewUint8(), 6)

	value := make([]uint8, 6)
	cache, _ := m.ValidateValue(value)

	m.RandomMutate(nil, &value, &cache, 1000)

	if len(value) != 6 {
		t.Fatalf("expected length to remain 6 after mutation, got %d", len(value))
	}
}
