package cqm

import (
	"math/rand/v2"
	"slices"
)

// RandomBatch produces size random candidates for a model, each tagged with
// its true energy and feasibility. Useful for exercising downstream
// processing without a real sampler.
func RandomBatch(model QuadraticModel, size int) []Candidate {
	batch := make([]Candidate, 0, size)
	for range size {
		assignment := make(Assignment, model.Variables)
		for i := range assignment {
			if rand.Float32() < 0.5 {
				assignment[i] = 1
			}
		}
		batch = append(batch, Candidate{
			Assignment: assignment,
			Energy:     model.Energy(assignment),
			Feasible:   model.CheckFeasible(assignment),
		})
	}
	return batch
}

// AssertBatchSorted reports whether a batch is ordered by ascending energy.
func AssertBatchSorted(batch []Candidate) bool {
	return slices.IsSortedFunc(batch, func(a, b Candidate) int {
		if a.Energy < b.Energy {
			return -1
		} else if a.Energy > b.Energy {
			return 1
		}
		return 0
	})
}
