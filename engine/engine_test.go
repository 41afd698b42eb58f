package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fuzzcheck-go/fuzzcheck/allocsensor"
	"github.com/fuzzcheck-go/fuzzcheck/fzconfig"
	"github.com/fuzzcheck-go/fuzzcheck/fzerr"
	"github.com/fuzzcheck-go/fuzzcheck/internal/corpuswatch"
	"github.com/fuzzcheck-go/fuzzcheck/mutator"
)

func sixByteMutator() *mutator.FixedVectorMutator[uint8, mutator.IntCache, mutator.IntMutStep, mutator.IntArbStep, mutator.IntToken] {
	return mutator.NewFixedVector[uint8](mutator.NewUint8(), 6)
}

func TestEngineStopsOnMaxIterations(t *testing.T) {
	cfg := fzconfig.Default()
	cfg.MaxIterations = 50

	e := New(sixByteMutator(), func(v *[]uint8) bool { return true }, cfg)

	res := e.Run(context.Background())

	if res.Reason != StopMaxIterations {
		t.Fatalf("expected StopMaxIterations, got %v", res.Reason)
	}

	if res.Iterations != 50 {
		t.Fatalf("expected 50 iterations, got %d", res.Iterations)
	}
}

func TestEngineStopsOnMaxDuration(t *testing.T) {
	cfg := fzconfig.Default()
	cfg.MaxDuration = 20 * time.Millisecond

	e := New(sixByteMutator(), func(v *[]uint8) bool { return true }, cfg)

	res := e.Run(context.Background())

	if res.Reason != StopMaxDuration {
		t.Fatalf("expected StopMaxDuration, got %v", res.Reason)
	}
}

func TestEngineStopsAfterFirstPredicateFailure(t *testing.T) {
	cfg := fzconfig.Default()
	cfg.StopAfterFirstFailure = true
	cfg.MaxIterations = 1000

	e := New(sixByteMutator(), func(v *[]uint8) bool { return false }, cfg)

	res := e.Run(context.Background())

	if res.Reason != StopTestFailure {
		t.Fatalf("expected StopTestFailure, got %v", res.Reason)
	}

	if res.Iterations != 1 {
		t.Fatalf("expected exactly one iteration before stopping, got %d", res.Iterations)
	}

	if res.Failure == nil || res.Failure.Kind != fzerr.FailurePredicate {
		t.Fatalf("expected a predicate failure, got %+v", res.Failure)
	}

	if e.ArtifactCount() != 1 {
		t.Fatalf("expected one distinct retained failure, got %d", e.ArtifactCount())
	}
}

func TestEngineReachesStoppingState(t *testing.T) {
	cfg := fzconfig.Default()
	cfg.MaxIterations = 3

	e := New(sixByteMutator(), func(v *[]uint8) bool { return true }, cfg)
	e.Run(context.Background())

	if e.State() != StateStopping {
		t.Fatalf("expected StateStopping after Run returns, got %v", e.State())
	}
}

func TestEngineClassifiesPanicsWithStableID(t *testing.T) {
	cfg := fzconfig.Default()
	cfg.StopAfterFirstFailure = true
	cfg.MaxIterations = 10

	e := New(sixByteMutator(), func(v *[]uint8) bool { panic("boom") }, cfg)

	res := e.Run(context.Background())

	if res.Reason != StopTestFailure {
		t.Fatalf("expected StopTestFailure, got %v", res.Reason)
	}

	if res.Failure == nil || res.Failure.Kind != fzerr.FailurePanic {
		t.Fatalf("expected a panic failure, got %+v", res.Failure)
	}

	if res.Failure.ID != panicFailureID("boom") {
		t.Fatalf("expected stable panic id, got %q", res.Failure.ID)
	}
}

func TestPanicFailureIDIsStableAcrossCalls(t *testing.T) {
	if panicFailureID("boom") != panicFailureID("boom") {
		t.Fatalf("expected panicFailureID to be deterministic for the same panic value")
	}

	if panicFailureID("boom") == panicFailureID("bang") {
		t.Fatalf("expected distinct panic values to hash to distinct ids")
	}
}

func TestEngineAllocationSensorFeedsPoolOnFirstIteration(t *testing.T) {
	cfg := fzconfig.Default()
	cfg.MaxIterations = 1

	alloc := allocsensor.New()

	e := New(sixByteMutator(), func(v *[]uint8) bool {
		leak := make([]byte, 64)
		_ = leak
		return true
	}, cfg, WithAllocationSensor[[]uint8, mutator.FixedVectorCache[mutator.IntCache], mutator.FixedVectorMutStep[mutator.IntMutStep], mutator.FixedVectorArbStep[mutator.IntArbStep], mutator.FixedVectorToken[mutator.IntToken]](alloc))

	res := e.Run(context.Background())

	if res.Reason != StopMaxIterations {
		t.Fatalf("expected StopMaxIterations, got %v", res.Reason)
	}

	stats := e.PoolStats()
	if stats.RetainedCases == 0 {
		t.Fatalf("expected the allocation observation to admit at least one retained case")
	}
}

func TestEngineCorpusWatchMaterializesDecodedSeedFirst(t *testing.T) {
	dir := t.TempDir()

	watcher, err := corpuswatch.New(dir)
	if err != nil {
		t.Fatalf("corpuswatch.New: %v", err)
	}
	defer watcher.Close()

	want := []byte{9, 9, 9, 9, 9, 9}
	if err := os.WriteFile(filepath.Join(dir, "seed-1"), want, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	decode := func(data []byte) ([]uint8, bool) {
		v := make([]uint8, 6)
		copy(v, data)
		return v, true
	}

	cfg := fzconfig.Default()

	e := New(sixByteMutator(), func(v *[]uint8) bool { return true }, cfg,
		WithCorpusWatch[[]uint8, mutator.FixedVectorCache[mutator.IntCache], mutator.FixedVectorMutStep[mutator.IntMutStep], mutator.FixedVectorArbStep[mutator.IntArbStep], mutator.FixedVectorToken[mutator.IntToken]](watcher, decode))

	// fsnotify's Create event arrives asynchronously; poll the engine's own
	// drain path (the same one Run calls each iteration) until it picks the
	// notification up.
	deadline := time.Now().Add(2 * time.Second)
	for len(e.pendingSeeds) == 0 && time.Now().Before(deadline) {
		e.drainCorpusWatch()
		if len(e.pendingSeeds) == 0 {
			time.Sleep(10 * time.Millisecond)
		}
	}

	if len(e.pendingSeeds) == 0 {
		t.Fatalf("timed out waiting for drainCorpusWatch to observe the seed file")
	}

	value, _, _, fromPool := e.materialize()
	if fromPool {
		t.Fatalf("expected the watched seed, not a pool-restored value")
	}

	if len(e.pendingSeeds) != 0 {
		t.Fatalf("expected materialize to consume the pending seed, %d left", len(e.pendingSeeds))
	}

	for i, b := range want {
		if value[i] != b {
			t.Fatalf("expected decoded seed %v, got %v", want, value)
		}
	}
}
