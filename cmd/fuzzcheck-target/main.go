// Command fuzzcheck-target is an illustrative fuzz target: it wires the
// engine, a six-byte fixed-vector mutator, the coverage and allocation
// sensors, the Prometheus-text metrics sink, and (when -corpus-watch is
// set) a corpus directory watcher together the way an embedding binary
// is expected to.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/fuzzcheck-go/fuzzcheck/allocsensor"
	"github.com/fuzzcheck-go/fuzzcheck/coverage"
	"github.com/fuzzcheck-go/fuzzcheck/engine"
	"github.com/fuzzcheck-go/fuzzcheck/fzconfig"
	"github.com/fuzzcheck-go/fuzzcheck/fzlog"
	"github.com/fuzzcheck-go/fuzzcheck/internal/corpuswatch"
	"github.com/fuzzcheck-go/fuzzcheck/internal/metrics"
	"github.com/fuzzcheck-go/fuzzcheck/mutator"
)

func main() {
	cfg := fzconfig.Default()

	fs := flag.NewFlagSet("fuzzcheck-target", flag.ExitOnError)
	fzconfig.RegisterFlags(fs, &cfg)
	_ = fs.Parse(os.Args[1:])

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := fzlog.New(os.Stderr, levelFromString(cfg.LogLevel))
	rec := metrics.NewRecorder()

	if cfg.MetricsAddr != "" {
		addr, stop, err := metrics.StartServer(cfg.MetricsAddr, map[string]metrics.CollectorFunc{
			"fuzzcheck": rec.Snapshot,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, "metrics server:", err)
			os.Exit(1)
		}

		defer func() { _ = stop(context.Background()) }()

		fmt.Fprintln(os.Stderr, "metrics listening on", addr)
	}

	target := mutator.NewFixedVector[uint8](mutator.NewUint8(), 6)
	alloc := allocsensor.New()

	cov, err := coverage.Attach(coverage.NewGuardTable(nil), nil, nil, coverage.DefaultABIVersion)
	if err != nil {
		fmt.Fprintln(os.Stderr, "coverage sensor:", err)
		os.Exit(1)
	}

	opts := []engine.Option[[]uint8, mutator.FixedVectorCache[mutator.IntCache], mutator.FixedVectorMutStep[mutator.IntMutStep], mutator.FixedVectorArbStep[mutator.IntArbStep], mutator.FixedVectorToken[mutator.IntToken]]{
		engine.WithCoverageSensor[[]uint8, mutator.FixedVectorCache[mutator.IntCache], mutator.FixedVectorMutStep[mutator.IntMutStep], mutator.FixedVectorArbStep[mutator.IntArbStep], mutator.FixedVectorToken[mutator.IntToken]](cov),
		engine.WithAllocationSensor[[]uint8, mutator.FixedVectorCache[mutator.IntCache], mutator.FixedVectorMutStep[mutator.IntMutStep], mutator.FixedVectorArbStep[mutator.IntArbStep], mutator.FixedVectorToken[mutator.IntToken]](alloc),
		engine.WithLogger[[]uint8, mutator.FixedVectorCache[mutator.IntCache], mutator.FixedVectorMutStep[mutator.IntMutStep], mutator.FixedVectorArbStep[mutator.IntArbStep], mutator.FixedVectorToken[mutator.IntToken]](logger),
		engine.WithRecorder[[]uint8, mutator.FixedVectorCache[mutator.IntCache], mutator.FixedVectorMutStep[mutator.IntMutStep], mutator.FixedVectorArbStep[mutator.IntArbStep], mutator.FixedVectorToken[mutator.IntToken]](rec),
	}

	if cfg.CorpusWatch != "" {
		watcher, err := corpuswatch.New(cfg.CorpusWatch)
		if err != nil {
			fmt.Fprintln(os.Stderr, "corpus watch:", err)
			os.Exit(1)
		}

		defer func() { _ = watcher.Close() }()

		opts = append(opts, engine.WithCorpusWatch[[]uint8, mutator.FixedVectorCache[mutator.IntCache], mutator.FixedVectorMutStep[mutator.IntMutStep], mutator.FixedVectorArbStep[mutator.IntArbStep], mutator.FixedVectorToken[mutator.IntToken]](watcher, decodeFixedSeed))
	}

	eng := engine.New(target, leakOnEachMatchingByte, cfg, opts...)

	res := eng.Run(context.Background())

	fmt.Printf("stopped: reason=%s iterations=%d pool=%s artifacts=%d\n",
		res.Reason, res.Iterations, eng.PoolStats(), eng.ArtifactCount())

	if res.Failure != nil {
		fmt.Printf("failure: kind=%s id=%s\n", res.Failure.Kind, res.Failure.ID)
	}
}

// leakOnEachMatchingByte is scenario 5 of the test suite, made concrete:
// it leaks one heap object per byte of v equal to its own index, so the
// allocation sensor's alloc_blocks climbs with how much of the fixed
// pattern the candidate matches.
func leakOnEachMatchingByte(v *[]uint8) bool {
	leaks := make([][]byte, 0, len(*v))

	for i, b := range *v {
		if int(b) == i {
			leaks = append(leaks, make([]byte, 8))
		}
	}

	_ = leaks

	return true
}

// decodeFixedSeed turns a raw seed file's bytes into the six-byte value
// this target mutates: truncated or zero-padded to the fixed length, so
// a watched directory can hold seeds of any size without decode ever
// failing.
func decodeFixedSeed(data []byte) ([]uint8, bool) {
	v := make([]uint8, 6)
	copy(v, data)

	return v, true
}

func levelFromString(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
