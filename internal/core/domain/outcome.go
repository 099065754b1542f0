package domain

import (
	"iter"
	"sync"
)

// ArtifactOutcome is a successfully materialized artifact.
type ArtifactOutcome struct {
	Coordinates ArtifactCoordinates
	// Path is the path callers should consume: the output-tree path for downloads,
	// the local repository path otherwise.
	Path string
	// LocalPath is the file in the local repository.
	LocalPath  string
	Descriptor ContentDescriptor
}

// ArtifactResult is the deferred outcome of materializing one artifact.
// A failure is only raised when Get is called.
type ArtifactResult struct {
	coordinates ArtifactCoordinates
	get         func() (ArtifactOutcome, error)
}

// NewArtifactResult returns a result computed on first access.
func NewArtifactResult(c ArtifactCoordinates, compute func() (ArtifactOutcome, error)) *ArtifactResult {
	return &ArtifactResult{coordinates: c, get: sync.OnceValues(compute)}
}

// SucceededArtifact returns a completed successful result.
func SucceededArtifact(o ArtifactOutcome) *ArtifactResult {
	return NewArtifactResult(o.Coordinates, func() (ArtifactOutcome, error) { return o, nil })
}

// FailedArtifact returns a result that raises err when accessed.
func FailedArtifact(c ArtifactCoordinates, err error) *ArtifactResult {
	return NewArtifactResult(c, func() (ArtifactOutcome, error) { return ArtifactOutcome{}, err })
}

// Coordinates returns the requested coordinates.
func (r *ArtifactResult) Coordinates() ArtifactCoordinates { return r.coordinates }

// Get returns the outcome or the deferred failure.
func (r *ArtifactResult) Get() (ArtifactOutcome, error) { return r.get() }

// ArtifactResults maps coordinates to results in input order.
type ArtifactResults struct {
	order   []ArtifactCoordinates
	results map[ArtifactCoordinates]*ArtifactResult
}

// NewArtifactResults returns an empty result map.
func NewArtifactResults() *ArtifactResults {
	return &ArtifactResults{results: make(map[ArtifactCoordinates]*ArtifactResult)}
}

// Put stores a result. Existing coordinates keep their position.
func (r *ArtifactResults) Put(res *ArtifactResult) {
	c := res.Coordinates()
	if _, ok := r.results[c]; !ok {
		r.order = append(r.order, c)
	}
	r.results[c] = res
}

// Get returns the result for c.
func (r *ArtifactResults) Get(c ArtifactCoordinates) (*ArtifactResult, bool) {
	res, ok := r.results[c]
	return res, ok
}

// Len returns the number of results.
func (r *ArtifactResults) Len() int { return len(r.order) }

// All iterates results in input order.
func (r *ArtifactResults) All() iter.Seq2[ArtifactCoordinates, *ArtifactResult] {
	return func(yield func(ArtifactCoordinates, *ArtifactResult) bool) {
		for _, c := range r.order {
			if !yield(c, r.results[c]) {
				return
			}
		}
	}
}

// UniqueCoordinates drops repeated coordinates, keeping first occurrences in order.
func UniqueCoordinates(coords []ArtifactCoordinates) []ArtifactCoordinates {
	seen := make(map[ArtifactCoordinates]struct{}, len(coords))
	out := make([]ArtifactCoordinates, 0, len(coords))
	for _, c := range coords {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
