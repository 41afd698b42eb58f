package pool

import (
	"sort"

	"github.com/fuzzcheck-go/fuzzcheck/fzerr"
)

// ArtifactEntry is one retained failing witness.
type ArtifactEntry[T any] struct {
	Value      T
	Complexity float64
	Failure    fzerr.TestFailure
}

// ArtifactPool is the separate pool that receives TestFailure observations
// from the signal/panic handler and retains, per distinct failure id, up
// to Limit witnesses ordered by ascending complexity — the lowest-
// complexity witness for a given failure class is always entry zero.
type ArtifactPool[T any] struct {
	Limit int

	byID map[string][]ArtifactEntry[T]
}

func NewArtifactPool[T any](limit int) *ArtifactPool[T] {
	if limit <= 0 {
		limit = 1
	}

	return &ArtifactPool[T]{Limit: limit, byID: make(map[string][]ArtifactEntry[T])}
}

// Offer admits value as a witness of failure if its failure id has not
// yet reached Limit retained entries, or if it beats the current
// worst-ranked entry for that id by complexity. Returns whether it was
// admitted.
func (p *ArtifactPool[T]) Offer(value T, failure fzerr.TestFailure, complexity float64) bool {
	entries := p.byID[failure.ID]

	entry := ArtifactEntry[T]{Value: value, Complexity: complexity, Failure: failure}

	if len(entries) < p.Limit {
		entries = append(entries, entry)
		sort.Slice(entries, func(i, j int) bool { return entries[i].Complexity < entries[j].Complexity })
		p.byID[failure.ID] = entries

		return true
	}

	worst := entries[len(entries)-1]
	if complexity >= worst.Complexity {
		return false
	}

	entries[len(entries)-1] = entry
	sort.Slice(entries, func(i, j int) bool { return entries[i].Complexity < entries[j].Complexity })
	p.byID[failure.ID] = entries

	return true
}

// Best returns the lowest-complexity retained witness for a failure id.
func (p *ArtifactPool[T]) Best(failureID string) (ArtifactEntry[T], bool) {
	entries, ok := p.byID[failureID]
	if !ok || len(entries) == 0 {
		return ArtifactEntry[T]{}, false
	}

	return entries[0], true
}

func (p *ArtifactPool[T]) DistinctFailures() int { return len(p.byID) }
