package pool

import "math/rand"

// ObservationMode selects how an AndPool's two component pools read
// observations: DifferentObservations means each pool owns its own
// sensor's readings; SameObservations means the same observation set is
// broadcast to both.
type ObservationMode int

const (
	DifferentObservations ObservationMode = iota
	SameObservations
)

// AndPool composes two pools by direct sum, exposing both through one
// process/sample surface with a tunable split for which pool is consulted
// first when sampling.
type AndPool[T any] struct {
	first  *MaximizeEachIndexPool[T]
	second *MaximizeEachIndexPool[T]

	mode               ObservationMode
	percentChooseFirst int
}

func NewAndPool[T any](first, second *MaximizeEachIndexPool[T], mode ObservationMode, percentChooseFirst int) *AndPool[T] {
	return &AndPool[T]{first: first, second: second, mode: mode, percentChooseFirst: percentChooseFirst}
}

// Process offers the candidate to both component pools. When mode is
// SameObservations, obsFirst is broadcast to both; when
// DifferentObservations, obsSecond is used for the second pool.
func (p *AndPool[T]) Process(value T, obsFirst, obsSecond []IndexedObservation, complexity float64) CorpusDelta {
	if p.mode == SameObservations {
		obsSecond = obsFirst
	}

	d1 := p.first.Process(value, obsFirst, complexity)
	d2 := p.second.Process(value, obsSecond, complexity)

	return CorpusDelta{
		Added:   append(append([]PoolStorageIndex{}, d1.Added...), d2.Added...),
		Removed: append(append([]PoolStorageIndex{}, d1.Removed...), d2.Removed...),
	}
}

func (p *AndPool[T]) GetRandomIndex(rng *rand.Rand) (PoolStorageIndex, bool) {
	if rng.Intn(100) < p.percentChooseFirst {
		if idx, ok := p.first.GetRandomIndex(rng); ok {
			return idx, true
		}

		return p.second.GetRandomIndex(rng)
	}

	if idx, ok := p.second.GetRandomIndex(rng); ok {
		return idx, true
	}

	return p.first.GetRandomIndex(rng)
}

func (p *AndPool[T]) Stats() (Stats, Stats) {
	return p.first.Stats(), p.second.Stats()
}
