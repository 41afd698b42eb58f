package pool

import "testing"

func TestMaximizeEachIndexPoolAdmitsOnHigherCounterValue(t *testing.T) {
	p := NewMaximizeEachIndexPool[string]("test")

	d1 := p.Process("first", []IndexedObservation{{Index: 1, Value: 4}}, 1.21)
	if len(d1.Added) != 1 {
		t.Fatalf("expected first candidate admitted, got delta %+v", d1)
	}

	d2 := p.Process("second", []IndexedObservation{{Index: 2, Value: 2}}, 2.21)
	if len(d2.Added) != 1 || len(d2.Removed) != 0 {
		t.Fatalf("expected second candidate admitted with no eviction, got %+v", d2)
	}

	d3 := p.Process("third", []IndexedObservation{{Index: 2, Value: 3}, {Index: 3, Value: 3}}, 1.11)
	if len(d3.Added) != 1 {
		t.Fatalf("expected third candidate admitted, got %+v", d3)
	}

	if len(d3.Removed) != 1 {
		t.Fatalf("expected exactly one eviction when third overtakes index 2, got %+v", d3)
	}

	if got := p.Stats().RetainedCases; got != 2 {
		t.Fatalf("expected 2 retained cases (first and third), got %d", got)
	}
}

func TestMaximizeEachIndexPoolTieBreaksOnLowerComplexity(t *testing.T) {
	p := NewMaximizeEachIndexPool[string]("test")

	p.Process("a", []IndexedObservation{{Index: 1, Value: 5}}, 3.0)
	delta := p.Process("b", []IndexedObservation{{Index: 1, Value: 5}}, 1.0)

	if len(delta.Added) != 1 || len(delta.Removed) != 1 {
		t.Fatalf("expected equal-value, lower-complexity candidate to evict the prior holder, got %+v", delta)
	}
}

func TestMaximizeEachIndexPoolRejectsEqualOrLowerValueHigherComplexity(t *testing.T) {
	p := NewMaximizeEachIndexPool[string]("test")

	p.Process("a", []IndexedObservation{{Index: 1, Value: 5}}, 1.0)
	delta := p.Process("b", []IndexedObservation{{Index: 1, Value: 5}}, 3.0)

	if !delta.IsEmpty() {
		t.Fatalf("expected equal-value, higher-complexity candidate to be rejected, got %+v", delta)
	}

	delta2 := p.Process("c", []IndexedObservation{{Index: 1, Value: 4}}, 0.1)
	if !delta2.IsEmpty() {
		t.Fatalf("expected lower-value candidate to be rejected, got %+v", delta2)
	}
}

func TestMaximizeEachIndexPoolAdmissionIdempotent(t *testing.T) {
	p := NewMaximizeEachIndexPool[string]("test")

	obs := []IndexedObservation{{Index: 1, Value: 9}}

	first := p.Process("a", obs, 1.0)
	if first.IsEmpty() {
		t.Fatalf("expected first offer to admit")
	}

	second := p.Process("a-again", obs, 1.0)
	if !second.IsEmpty() {
		t.Fatalf("expected identical (obs, cplx) offered twice to admit only once, got %+v", second)
	}
}

func TestMaximizeEachIndexPoolGetRandomIndexSamplesRetainedCases(t *testing.T) {
	p := NewMaximizeEachIndexPool[int]("test")

	p.Process(1, []IndexedObservation{{Index: 1, Value: 1}}, 1.0)
	p.Process(2, []IndexedObservation{{Index: 2, Value: 1}}, 1.0)

	seen := make(map[PoolStorageIndex]bool)

	for i := 0; i < 200; i++ {
		idx, ok := p.GetRandomIndex(rngForTest())
		if !ok {
			t.Fatalf("expected a retained case to be sampleable")
		}

		seen[idx] = true
	}

	if len(seen) == 0 {
		t.Fatalf("expected at least one distinct index sampled")
	}
}
