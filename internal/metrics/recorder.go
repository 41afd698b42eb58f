package metrics

import "sync"

// Recorder is an in-memory stats sink for embedders and tests that poll
// rather than scrape an HTTP endpoint.
type Recorder struct {
	mu      sync.Mutex
	counts  map[string]uint64
	gauges  map[string]float64
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		counts: make(map[string]uint64),
		gauges: make(map[string]float64),
	}
}

// Inc increments a named counter by delta.
func (r *Recorder) Inc(name string, delta uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.counts[name] += delta
}

// Set assigns a named gauge value.
func (r *Recorder) Set(name string, value float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.gauges[name] = value
}

// Count returns the current value of a named counter.
func (r *Recorder) Count(name string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.counts[name]
}

// Gauge returns the current value of a named gauge.
func (r *Recorder) Gauge(name string) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.gauges[name]
}

// Snapshot returns every recorded value (counters and gauges merged) as a
// single map, suitable for use as a CollectorFunc.
func (r *Recorder) Snapshot() map[string]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]float64, len(r.counts)+len(r.gauges))
	for k, v := range r.counts {
		out[k] = float64(v)
	}

	for k, v := range r.gauges {
		out[k] = v
	}

	return out
}
