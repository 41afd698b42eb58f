package pool

// CounterMaximizingPool is the spec's counter-maximizing pool: the
// maximize-each-observation pool specialized to coverage counter indices.
// Kept as a thin named wrapper (rather than a type alias) so call sites
// read as "the coverage pool" even though the underlying mechanism is
// shared with any other (index, value) sensor.
type CounterMaximizingPool[T any] struct {
	*MaximizeEachIndexPool[T]
}

func NewCounterMaximizingPool[T any]() *CounterMaximizingPool[T] {
	return &CounterMaximizingPool[T]{MaximizeEachIndexPool: NewMaximizeEachIndexPool[T]("counter-maximizing")}
}
