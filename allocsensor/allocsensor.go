// Package allocsensor implements the allocation sensor: the Go-idiomatic
// substitute for the original engine's global-allocator hook. Go gives
// library code no way to intercept the runtime allocator, but
// runtime.MemStats exposes the same two cumulative counters (object count
// and byte count) the spec's allocation sensor needs, sampled around the
// same start/stop-recording boundary the coverage sensor uses.
package allocsensor

import "runtime"

// Observation is the (alloc_blocks, alloc_bytes) pair produced for one
// recorded run: the number of heap objects and bytes allocated strictly
// between StartRecording and StopRecording.
type Observation struct {
	AllocBlocks uint64
	AllocBytes  uint64
}

// Sensor diffs runtime.MemStats.Mallocs/TotalAlloc across a recording
// window. Like the coverage sensor, it never resets cumulative state on
// StartRecording; it simply snapshots the baseline to diff against at
// StopRecording.
type Sensor struct {
	baseMallocs uint64
	baseBytes   uint64
	last        Observation
}

func New() *Sensor { return &Sensor{} }

func (s *Sensor) StartRecording() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	s.baseMallocs = m.Mallocs
	s.baseBytes = m.TotalAlloc
}

func (s *Sensor) StopRecording() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	s.last = Observation{
		AllocBlocks: m.Mallocs - s.baseMallocs,
		AllocBytes:  m.TotalAlloc - s.baseBytes,
	}
}

func (s *Sensor) GetObservations() Observation { return s.last }
