// Package engine drives the fuzzing loop: select a stored case or generate
// a fresh one, mutate it under a complexity budget, run the target
// function inside a sensor recording window, offer the observations to the
// pool, then unwind the mutation. The state machine and nine per-iteration
// steps are fixed; everything else (mutator, sensors, pools, sinks) is
// supplied by the caller.
package engine

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"os"
	"time"

	"github.com/fuzzcheck-go/fuzzcheck/allocsensor"
	"github.com/fuzzcheck-go/fuzzcheck/coverage"
	"github.com/fuzzcheck-go/fuzzcheck/fzconfig"
	"github.com/fuzzcheck-go/fuzzcheck/fzerr"
	"github.com/fuzzcheck-go/fuzzcheck/fzlog"
	"github.com/fuzzcheck-go/fuzzcheck/internal/corpuswatch"
	"github.com/fuzzcheck-go/fuzzcheck/internal/metrics"
	"github.com/fuzzcheck-go/fuzzcheck/mutator"
	"github.com/fuzzcheck-go/fuzzcheck/pool"
)

// allocObservationBase offsets allocation-sensor indices above any
// coverage raw/virtual counter index so the two observation spaces can
// share one MaximizeEachIndexPool without colliding, per spec.md §4.4's
// "maximize-each-observation" generalization: any (index, value)-shaped
// sensor can feed the same pool type.
const allocObservationBase = 1 << 30

// State names the fuzzing loop's state machine position.
type State int

const (
	StateInitializing State = iota
	StateGenerating
	StateRunning
	StateObserving
	StateUpdating
	StateStopping
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateGenerating:
		return "generating"
	case StateRunning:
		return "running"
	case StateObserving:
		return "observing"
	case StateUpdating:
		return "updating"
	case StateStopping:
		return "stopping"
	default:
		return "unknown"
	}
}

// StopReason names why the loop left Stopping.
type StopReason int

const (
	StopNone StopReason = iota
	StopMaxDuration
	StopMaxIterations
	StopTestFailure
)

func (r StopReason) String() string {
	switch r {
	case StopMaxDuration:
		return "max_duration"
	case StopMaxIterations:
		return "max_iterations"
	case StopTestFailure:
		return "test_failure"
	default:
		return "none"
	}
}

// Result summarizes why Run returned.
type Result struct {
	Reason     StopReason
	Iterations uint64
	Failure    *fzerr.TestFailure
}

// candidate is what the pool actually stores: a value alongside the cache
// needed to keep mutating it on a future Select.
type candidate[T, C any] struct {
	value      T
	cache      C
	complexity float64
}

// maxChainedMutations bounds the mutation-depth stack per iteration, per
// spec.md §5's resource-bounds note ("small constant, e.g. <= 2").
const maxChainedMutations = 2

// Engine runs the fuzzing loop for one mutator instantiation.
type Engine[T, C, S, A, U any] struct {
	mut  mutator.Mutator[T, C, S, A, U]
	test func(*T) bool

	cfg fzconfig.Config
	log *fzlog.Logger
	rec *metrics.Recorder

	coverageSensor *coverage.Sensor
	allocSensor    *allocsensor.Sensor

	pool      *pool.MaximizeEachIndexPool[candidate[T, C]]
	artifacts *pool.ArtifactPool[T]

	rng                *rand.Rand
	arbStep            A
	arbitraryExhausted bool

	signals *signalSlot

	corpusWatch  *corpuswatch.Watcher
	decodeSeed   func([]byte) (T, bool)
	pendingSeeds []T

	state State
}

// Option configures optional engine collaborators.
type Option[T, C, S, A, U any] func(*Engine[T, C, S, A, U])

// WithCoverageSensor attaches a coverage sensor whose observations feed the
// pool.
func WithCoverageSensor[T, C, S, A, U any](s *coverage.Sensor) Option[T, C, S, A, U] {
	return func(e *Engine[T, C, S, A, U]) { e.coverageSensor = s }
}

// WithAllocationSensor attaches the allocation sensor; its two observations
// are offset into the same pool's index space (see allocObservationBase).
func WithAllocationSensor[T, C, S, A, U any](s *allocsensor.Sensor) Option[T, C, S, A, U] {
	return func(e *Engine[T, C, S, A, U]) { e.allocSensor = s }
}

// WithLogger overrides the default logger.
func WithLogger[T, C, S, A, U any](l *fzlog.Logger) Option[T, C, S, A, U] {
	return func(e *Engine[T, C, S, A, U]) { e.log = l }
}

// WithRecorder attaches an in-memory stats recorder.
func WithRecorder[T, C, S, A, U any](r *metrics.Recorder) Option[T, C, S, A, U] {
	return func(e *Engine[T, C, S, A, U]) { e.rec = r }
}

// WithRNG overrides the default deterministic RNG.
func WithRNG[T, C, S, A, U any](rng *rand.Rand) Option[T, C, S, A, U] {
	return func(e *Engine[T, C, S, A, U]) { e.rng = rng }
}

// WithCorpusWatch treats every file notified by w as a new raw seed: Run
// decodes its bytes with decode and, on success, feeds the resulting
// value through materialize ahead of the stored corpus and
// ordered_arbitrary, matching spec.md's "a new raw seed is available"
// notification semantics. A decode failure is silently dropped, the same
// tolerance StopRecording already shows for one corrupt record not
// blinding the rest.
func WithCorpusWatch[T, C, S, A, U any](w *corpuswatch.Watcher, decode func([]byte) (T, bool)) Option[T, C, S, A, U] {
	return func(e *Engine[T, C, S, A, U]) {
		e.corpusWatch = w
		e.decodeSeed = decode
	}
}

// New builds an Engine. test reports pass (true) or predicate-failure
// (false); panics are recovered and classified as FailurePanic.
func New[T, C, S, A, U any](
	mut mutator.Mutator[T, C, S, A, U],
	test func(*T) bool,
	cfg fzconfig.Config,
	opts ...Option[T, C, S, A, U],
) *Engine[T, C, S, A, U] {
	e := &Engine[T, C, S, A, U]{
		mut:       mut,
		test:      test,
		cfg:       cfg,
		log:       fzlog.Default(),
		pool:      pool.NewMaximizeEachIndexPool[candidate[T, C]]("coverage"),
		artifacts: pool.NewArtifactPool[T](8),
		rng:       rand.New(rand.NewSource(1)),
		arbStep:   mut.DefaultArbitraryStep(),
		signals:   newSignalSlot(),
		state:     StateInitializing,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.coverageSensor == nil {
		s, err := coverage.Attach(coverage.NewGuardTable(nil), nil, nil, coverage.DefaultABIVersion)
		if err != nil {
			e.log.EngineError(err)
			panic("engine: default coverage sensor rejected by its own declared ABI version: " + err.Error())
		}

		e.coverageSensor = s
	}

	return e
}

// Run drives the loop until a stop condition fires or ctx is cancelled.
func (e *Engine[T, C, S, A, U]) Run(ctx context.Context) Result {
	stopSignals := e.startSignalWatcher()
	defer stopSignals()

	start := time.Now()

	var iterations uint64

	for {
		select {
		case <-ctx.Done():
			return e.stopResult(StopNone, iterations, nil)
		default:
		}

		if e.cfg.MaxDuration > 0 && time.Since(start) >= e.cfg.MaxDuration {
			return e.stopResult(StopMaxDuration, iterations, nil)
		}

		if e.cfg.MaxIterations > 0 && iterations >= e.cfg.MaxIterations {
			return e.stopResult(StopMaxIterations, iterations, nil)
		}

		e.drainCorpusWatch()

		failure := e.iterate(iterations)
		iterations++

		if failure != nil && e.cfg.StopAfterFirstFailure {
			return e.stopResult(StopTestFailure, iterations, failure)
		}
	}
}

func (e *Engine[T, C, S, A, U]) stopResult(reason StopReason, iterations uint64, failure *fzerr.TestFailure) Result {
	e.state = StateStopping
	e.log.Stopping(reason.String())

	return Result{Reason: reason, Iterations: iterations, Failure: failure}
}

// State reports the loop's current position in the
// Initializing/Generating/Running/Observing/Updating/Stopping state
// machine.
func (e *Engine[T, C, S, A, U]) State() State {
	return e.state
}

// iterate runs exactly one Select/Materialize/Mutate/Run/Observe/Offer/
// Settle/Unwind/Stats cycle, returning the observed failure, if any.
func (e *Engine[T, C, S, A, U]) iterate(iteration uint64) *fzerr.TestFailure {
	e.log.IterationStarted(iteration)

	e.state = StateGenerating

	value, cache, complexity, fromPool := e.materialize()

	tokens, finalComplexity := e.mutate(&value, &cache, complexity)

	defer e.unwind(&value, &cache, tokens)

	e.state = StateRunning

	passed, failure := e.runTest(&value)

	e.state = StateObserving

	if failure != nil {
		e.artifacts.Offer(value, *failure, finalComplexity)
		e.log.TestFailure(failure.Kind.String(), failure.ID)
	}

	if sig := e.signals.takeAndClear(); sig != nil {
		failure = sig
		e.artifacts.Offer(value, *sig, finalComplexity)
		e.log.TestFailure(sig.Kind.String(), sig.ID)
	}

	observations := e.observe()

	e.state = StateUpdating

	delta := e.pool.Process(candidate[T, C]{value: value, cache: cache, complexity: finalComplexity}, observations, finalComplexity)

	if !delta.IsEmpty() {
		poolName := e.pool.Stats().Name

		for _, id := range delta.Added {
			e.log.PoolAdmitted(poolName, uint64(id), finalComplexity)
		}

		for _, id := range delta.Removed {
			e.log.PoolEvicted(poolName, uint64(id))
		}
	}

	if e.rec != nil {
		e.rec.Inc("iterations", 1)
		if !delta.IsEmpty() {
			e.rec.Inc("pool_admissions", 1)
		}
		if failure != nil {
			e.rec.Inc("failures", 1)
		}
	}

	_ = passed
	_ = fromPool

	return failure
}

// drainCorpusWatch non-blockingly consumes every pending notification
// from the corpus watcher, decoding each into a seed value materialize
// will hand out before falling back to the stored corpus or
// ordered_arbitrary.
func (e *Engine[T, C, S, A, U]) drainCorpusWatch() {
	if e.corpusWatch == nil {
		return
	}

	for {
		select {
		case ev := <-e.corpusWatch.Seeds():
			data, err := os.ReadFile(ev.Path)
			if err != nil {
				e.log.EngineError(err)
				continue
			}

			v, ok := e.decodeSeed(data)
			if !ok {
				continue
			}

			e.pendingSeeds = append(e.pendingSeeds, v)
		case err := <-e.corpusWatch.Errors():
			e.log.EngineError(err)
		default:
			return
		}
	}
}

func (e *Engine[T, C, S, A, U]) materialize() (value T, cache C, complexity float64, fromPool bool) {
	if n := len(e.pendingSeeds); n > 0 {
		v := e.pendingSeeds[n-1]
		e.pendingSeeds = e.pendingSeeds[:n-1]

		c, ok := e.mut.ValidateValue(v)
		if ok {
			return v, c, e.mut.Complexity(v, c), false
		}
	}

	if id, ok := e.pool.GetRandomIndex(e.rng); ok {
		if cand, ok := e.pool.Value(id); ok {
			return cand.value, cand.cache, cand.complexity, true
		}
	}

	if !e.arbitraryExhausted {
		v, cplx, ok := e.mut.OrderedArbitrary(&e.arbStep, e.cfg.MaxInputComplexity)
		if ok {
			c, _ := e.mut.ValidateValue(v)

			return v, c, cplx, false
		}

		e.arbitraryExhausted = true
		e.log.SearchSpaceExhausted("root mutator ordered_arbitrary")
	}

	v, cplx := e.mut.RandomArbitrary(e.rng, e.cfg.MaxInputComplexity)
	c, _ := e.mut.ValidateValue(v)

	return v, c, cplx, false
}

func (e *Engine[T, C, S, A, U]) mutate(value *T, cache *C, complexity float64) ([]U, float64) {
	n := 1 + e.rng.Intn(maxChainedMutations)

	tokens := make([]U, 0, n)

	for i := 0; i < n; i++ {
		tok, cplx := e.mut.RandomMutate(e.rng, value, cache, e.cfg.MaxInputComplexity)
		tokens = append(tokens, tok)
		complexity = cplx
	}

	return tokens, complexity
}

func (e *Engine[T, C, S, A, U]) unwind(value *T, cache *C, tokens []U) {
	for i := len(tokens) - 1; i >= 0; i-- {
		e.mut.Unmutate(value, cache, tokens[i])
	}
}

func (e *Engine[T, C, S, A, U]) observe() []pool.IndexedObservation {
	obs := e.coverageSensor.GetObservations()

	if e.allocSensor != nil {
		a := e.allocSensor.GetObservations()
		obs = append(obs,
			pool.IndexedObservation{Index: allocObservationBase, Value: a.AllocBlocks},
			pool.IndexedObservation{Index: allocObservationBase + 1, Value: a.AllocBytes},
		)
	}

	return obs
}

type testResult struct {
	passed   bool
	panicVal any
}

// runTest invokes the target inside the sensors' recording window. A
// wall-clock timeout (if configured) runs the target on its own goroutine
// and races it against a timer rather than attempting to longjmp out of
// it: Go cannot force-unwind a running goroutine the way the original
// engine's signal handler can, so a timed-out call is reported as a
// FailureTimeout while its goroutine is abandoned to finish (or never
// does) in the background. This is the documented divergence in
// crash-recovery fidelity SPEC_FULL.md §4.6 calls out.
func (e *Engine[T, C, S, A, U]) runTest(value *T) (passed bool, failure *fzerr.TestFailure) {
	e.coverageSensor.StartRecording()

	if e.allocSensor != nil {
		e.allocSensor.StartRecording()
	}

	resCh := make(chan testResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				resCh <- testResult{panicVal: r}
			}
		}()

		resCh <- testResult{passed: e.test(value)}
	}()

	var res testResult

	if e.cfg.PerIterationTimeout > 0 {
		timer := time.NewTimer(e.cfg.PerIterationTimeout)
		defer timer.Stop()

		select {
		case res = <-resCh:
		case <-timer.C:
			if e.allocSensor != nil {
				e.allocSensor.StopRecording()
			}

			e.coverageSensor.StopRecording()

			return false, &fzerr.TestFailure{
				Kind:  fzerr.FailureTimeout,
				ID:    "timeout",
				Debug: fmt.Sprintf("exceeded per-iteration timeout of %s", e.cfg.PerIterationTimeout),
			}
		}
	} else {
		res = <-resCh
	}

	if e.allocSensor != nil {
		e.allocSensor.StopRecording()
	}

	e.coverageSensor.StopRecording()

	if res.panicVal != nil {
		return false, &fzerr.TestFailure{
			Kind:  fzerr.FailurePanic,
			ID:    panicFailureID(res.panicVal),
			Debug: fmt.Sprint(res.panicVal),
		}
	}

	if !res.passed {
		return false, &fzerr.TestFailure{
			Kind:  fzerr.FailurePredicate,
			ID:    "predicate",
			Debug: "test function returned false",
		}
	}

	return true, nil
}

// PoolStats returns the coverage/maximize-each-index pool's current
// snapshot (retained case count and sum of per-index highest values).
func (e *Engine[T, C, S, A, U]) PoolStats() pool.Stats {
	return e.pool.Stats()
}

// ArtifactCount returns the number of distinct failure ids the artifact
// pool has retained a witness for.
func (e *Engine[T, C, S, A, U]) ArtifactCount() int {
	return e.artifacts.DistinctFailures()
}

func panicFailureID(r any) string {
	h := fnv.New64a()
	fmt.Fprint(h, r)

	return fmt.Sprintf("panic-%x", h.Sum64())
}
