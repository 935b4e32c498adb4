package cqm

import "errors"

// ErrSamplerUnavailable signals a boundary failure while talking to the
// sampler. The core never retries; callers decide whether to abort or retry.
var ErrSamplerUnavailable = errors.New("sampler unavailable")

// Candidate is one scored assignment returned by a sampler. Feasible is the
// sampler's own claim and is re-verified downstream.
type Candidate struct {
	Assignment Assignment `json:"sample"`
	Energy     float64    `json:"energy"`
	Feasible   bool       `json:"feasible"`
}

// Sampler submits a model and returns a finite, fully materialized batch of
// scored candidate assignments. An empty batch is a valid result. The solving
// strategy is unspecified and replaceable.
type Sampler interface {
	Sample(model QuadraticModel, reads int) ([]Candidate, error)
}
