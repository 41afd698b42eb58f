package coverage

import (
	"github.com/fuzzcheck-go/fuzzcheck/internal/sancovabi"
	"github.com/fuzzcheck-go/fuzzcheck/pool"
)

// FileFilter decides, per source file id, whether a FunctionRecord's
// regions should contribute indices to the observation stream — the
// allow/deny filtering spec.md describes for pruning entire records
// before they reach a pool.
type FileFilter func(fileID int) bool

// AllowAll is the default filter: every file contributes.
func AllowAll(int) bool { return true }

// DefaultABIVersion is the SanCov ABI version this engine build declares
// when no instrumented binary has reported one, e.g. for the no-op guard
// table Engine.New falls back to. It is always within
// sancovabi.SupportedRange.
const DefaultABIVersion = "1.0.0"

// Sensor is the coverage sensor: it owns the guard table (raw counters)
// and the parsed function records (expression/virtual counters), and
// exposes both through one (index, value) observation list. Raw counter
// indices occupy [0, guard.Len()); virtual (expression) counters continue
// past that range, one per (function, expression) pair in parse order.
type Sensor struct {
	guard   *GuardTable
	records []FunctionRecord
	filter  FileFilter

	virtualBase    int
	exprIndexOf    map[exprKey]int
	lastVirtual    map[int]uint64
}

type exprKey struct {
	funcIdx int
	exprIdx int
}

// Attach binds a sensor to a guard table and parsed function records,
// after checking abiVersion (the instrumented binary's declared SanCov
// ABI version) against sancovabi.SupportedRange. An incompatible or
// unparseable ABI version refuses attachment with a categorized
// fzerr.StandardError rather than silently reading a counter layout the
// engine does not understand. The sensor assigns each (function,
// expression) pair a stable virtual counter index, starting immediately
// after the raw counter range.
func Attach(guard *GuardTable, records []FunctionRecord, filter FileFilter, abiVersion string) (*Sensor, error) {
	if _, err := sancovabi.Gate(abiVersion); err != nil {
		return nil, err
	}

	if filter == nil {
		filter = AllowAll
	}

	s := &Sensor{
		guard:       guard,
		records:     records,
		filter:      filter,
		virtualBase: guard.Len(),
		exprIndexOf: make(map[exprKey]int),
		lastVirtual: make(map[int]uint64),
	}

	next := s.virtualBase

	for fi, rec := range records {
		if !recordPassesFilter(rec, filter) {
			continue
		}

		for ei := range rec.Expressions {
			s.exprIndexOf[exprKey{funcIdx: fi, exprIdx: ei}] = next
			next++
		}
	}

	return s, nil
}

func recordPassesFilter(rec FunctionRecord, filter FileFilter) bool {
	if len(rec.FileIDs) == 0 {
		return true
	}

	for _, fid := range rec.FileIDs {
		if filter(fid) {
			return true
		}
	}

	return false
}

// StartRecording is a no-op: counters are cumulative and never reset: the
// pool consumes the diff implicitly by comparing against its own stored
// max, exactly as spec.md §4.4 specifies.
func (s *Sensor) StartRecording() {}

// StopRecording resolves every registered virtual counter's expression
// against the current guard table snapshot. Unresolvable expressions
// (see Normalize/Evaluate) are skipped rather than aborting the whole
// sensor, so one corrupt function record cannot blind the rest.
func (s *Sensor) StopRecording() {
	resolved := make(map[int]uint64, len(s.exprIndexOf))

	for key, idx := range s.exprIndexOf {
		expr := s.records[key.funcIdx].Expressions[key.exprIdx]

		v, err := expr.Evaluate(s.guard, resolved)
		if err != nil {
			continue
		}

		resolved[idx] = v
	}

	s.lastVirtual = resolved
}

// GetObservations returns the unified raw + virtual counter list.
func (s *Sensor) GetObservations() []pool.IndexedObservation {
	out := make([]pool.IndexedObservation, 0, s.guard.Len()+len(s.lastVirtual))

	for i := 0; i < s.guard.Len(); i++ {
		if v := s.guard.Value(i); v > 0 {
			out = append(out, pool.IndexedObservation{Index: i, Value: uint64(v)})
		}
	}

	for idx, v := range s.lastVirtual {
		if v > 0 {
			out = append(out, pool.IndexedObservation{Index: idx, Value: v})
		}
	}

	return out
}
