// Package fzconfig is the engine's configuration surface: flag-parsed
// command-line defaults (matching the teacher's flat flag.XxxVar style)
// optionally overridden by an on-disk HJSON file so a fuzz target's
// config may carry comments, loaded via the same library
// calvinalkan-agent-task uses for its own human-edited config.
package fzconfig

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/tailscale/hujson"

	"github.com/fuzzcheck-go/fuzzcheck/fzerr"
)

// Config holds the stop-condition fields spec.md §6 names plus the
// ambient knobs this expansion adds (metrics address, log level, corpus
// watch directory).
type Config struct {
	MaxDuration           time.Duration `json:"max_duration,omitempty"`
	MaxIterations         uint64        `json:"max_iterations,omitempty"`
	StopAfterFirstFailure bool          `json:"stop_after_first_failure,omitempty"`
	MaxInputComplexity    float64       `json:"max_input_complexity,omitempty"`

	PerIterationTimeout time.Duration `json:"per_iteration_timeout,omitempty"`

	MetricsAddr string `json:"metrics_addr,omitempty"`
	LogLevel    string `json:"log_level,omitempty"`
	CorpusWatch string `json:"corpus_watch,omitempty"`
}

// Default returns the engine's built-in defaults.
func Default() Config {
	return Config{
		MaxDuration:        0,
		MaxIterations:      0,
		MaxInputComplexity: 4096.0,
		LogLevel:           "info",
	}
}

// RegisterFlags binds cfg's fields to command-line flags using the flag
// package directly, the same flat registration style as
// cmd/orizon-fuzz/main.go.
func RegisterFlags(fs *flag.FlagSet, cfg *Config) {
	fs.DurationVar(&cfg.MaxDuration, "max-duration", cfg.MaxDuration, "maximum fuzzing duration (0=unlimited)")
	fs.Uint64Var(&cfg.MaxIterations, "max-iterations", cfg.MaxIterations, "maximum iteration count (0=unlimited)")
	fs.BoolVar(&cfg.StopAfterFirstFailure, "stop-after-first-failure", cfg.StopAfterFirstFailure, "stop after the first observed test failure")
	fs.Float64Var(&cfg.MaxInputComplexity, "max-input-complexity", cfg.MaxInputComplexity, "maximum complexity budget per input")
	fs.DurationVar(&cfg.PerIterationTimeout, "per-iteration-timeout", cfg.PerIterationTimeout, "per-iteration wall-clock timeout (0=unlimited)")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "address to serve Prometheus-text /metrics on (empty=disabled)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug|info|warn|error)")
	fs.StringVar(&cfg.CorpusWatch, "corpus-watch", cfg.CorpusWatch, "directory to watch for externally-added seeds (empty=disabled)")
}

// LoadFile overlays an HJSON config file onto cfg. A missing file is not
// an error; a malformed one is.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return fzerr.InvalidConfig("file", fmt.Sprintf("could not read %q: %v", path, err))
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fzerr.InvalidConfig("file", fmt.Sprintf("invalid HJSON in %q: %v", path, err))
	}

	if err := json.Unmarshal(standardized, cfg); err != nil {
		return fzerr.InvalidConfig("file", fmt.Sprintf("invalid config JSON in %q: %v", path, err))
	}

	return nil
}

// Validate rejects internally inconsistent configuration.
func (c Config) Validate() error {
	if c.MaxInputComplexity <= 0 {
		return fzerr.InvalidConfig("MaxInputComplexity", "must be > 0")
	}

	return nil
}
