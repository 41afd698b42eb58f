package mutator

import "testing"

func twoTagVariants() *VariantsMutator {
	return NewVariants(
		AsAnyErased[struct{}](NewUnit()),
		AsAnyErased[uint8](NewUint8()),
	)
}

func TestVariantsValidateValueRejectsMismatchedTagAndPayload(t *testing.T) {
	m := twoTagVariants()

	if _, ok := m.ValidateValue(Variant{Tag: 0, Payload: uint8(1)}); ok {
		t.Fatalf("expected tag 0 (unit payload) to reject a uint8 payload")
	}

	if _, ok := m.ValidateValue(Variant{Tag: 0, Payload: struct{}{}}); !ok {
		t.Fatalf("expected tag 0 with a unit payload to validate")
	}

	if _, ok := m.ValidateValue(Variant{Tag: 1, Payload: uint8(7)}); !ok {
		t.Fatalf("expected tag 1 with a uint8 payload to validate")
	}
}

func TestVariantsRandomMutateThenUnmutateRestoresValue(t *testing.T) {
	m := twoTagVariants()

	value := Variant{Tag: 1, Payload: uint8(3)}
	cache, ok := m.ValidateValue(value)
	if !ok {
		t.Fatalf("expected initial value to validate")
	}

	token, _ := m.RandomMutate(nil, &value, &cache, 1000)
	m.Unmutate(&value, &cache, token)

	if value.Tag != 1 || value.Payload.(uint8) != 3 {
		t.Fatalf("expected value restored to {1, 3}, got %+v", value)
	}
}
