package mutator

import "testing"

func TestPointerMutatorDelegatesComplexity(t *testing.T) {
	inner := NewUint8()
	m := NewPointer[uint8, IntCache, IntMutStep, IntArbStep, IntToken](inner)

	var value uint8 = 9
	ptr := &value

	cache, ok := m.ValidateValue(ptr)
	if !ok {
		t.Fatalf("expected ValidateValue to succeed")
	}

	if m.Complexity(ptr, cache) != inner.Complexity(value, cache) {
		t.Fatalf("expected pointer complexity to equal inner complexity")
	}
}

func TestPointerMutatorValidateValueRejectsNil(t *testing.T) {
	m := NewPointer[uint8, IntCache, IntMutStep, IntArbStep, IntToken](NewUint8())

	if _, ok := m.ValidateValue(nil); ok {
		t.Fatalf("expected nil pointer to fail validation")
	}
}

func TestPointerMutatorMutateUnmutateRoundTrip(t *testing.T) {
	m := NewPointer[uint8, IntCache, IntMutStep, IntArbStep, IntToken](NewUint8())

	var value uint8 = 3
	ptr := &value

	cache, _ := m.ValidateValue(ptr)
	original := *ptr

	token, _ := m.RandomMutate(nil, &ptr, &cache, 100)
	m.Unmutate(&ptr, &cache, token)

	if *ptr != original {
		t.Fatalf("expected value restored to %d, got %d", original, *ptr)
	}
}
