package coverage

import "testing"

func TestSensorGetObservationsIncludesRawAndVirtualCounters(t *testing.T) {
	guard := NewGuardTable([]uint32{3, 0, 5})

	rec := FunctionRecord{
		Name:        "fn",
		FileIDs:     []int{1},
		Expressions: []Expression{Normalize([]int{0, 2}, nil)},
	}

	s, err := Attach(guard, []FunctionRecord{rec}, AllowAll, DefaultABIVersion)
	if err != nil {
		t.Fatalf("unexpected Attach error: %v", err)
	}

	s.StartRecording()
	s.StopRecording()

	obs := s.GetObservations()

	foundRaw := false
	foundVirtual := false

	for _, o := range obs {
		if o.Index == 0 && o.Value == 3 {
			foundRaw = true
		}

		if o.Index == guard.Len() && o.Value == 8 {
			foundVirtual = true
		}
	}

	if !foundRaw {
		t.Fatalf("expected raw counter 0 with value 3 in observations, got %+v", obs)
	}

	if !foundVirtual {
		t.Fatalf("expected virtual counter at index %d with value 8, got %+v", guard.Len(), obs)
	}
}

func TestAttachRejectsIncompatibleABIVersion(t *testing.T) {
	guard := NewGuardTable([]uint32{1})

	if _, err := Attach(guard, nil, nil, "2.0.0"); err == nil {
		t.Fatalf("expected Attach to refuse an ABI version outside sancovabi.SupportedRange")
	}
}

func TestSensorFileFilterExcludesRecord(t *testing.T) {
	guard := NewGuardTable([]uint32{1})

	rec := FunctionRecord{
		Name:        "fn",
		FileIDs:     []int{9},
		Expressions: []Expression{Normalize([]int{0}, nil)},
	}

	denyAll := func(int) bool { return false }

	s, err := Attach(guard, []FunctionRecord{rec}, denyAll, DefaultABIVersion)
	if err != nil {
		t.Fatalf("unexpected Attach error: %v", err)
	}

	s.StopRecording()

	obs := s.GetObservations()

	for _, o := range obs {
		if o.Index == guard.Len() {
			t.Fatalf("expected filtered-out record to contribute no virtual counter, got %+v", obs)
		}
	}
}
