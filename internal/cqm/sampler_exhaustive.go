package cqm

import (
	"fmt"
	"slices"
)

// Exhaustive enumeration is only viable for small instances.
const maxExhaustiveVariables = 20

type exhaustiveSampler struct{}

// NewExhaustiveSampler returns an exact Sampler that enumerates every
// assignment. It keeps the lowest-energy assignments seen, feasible and
// infeasible tracked separately so that an exact feasible optimum always
// survives truncation, then merges both lists ordered by energy.
func NewExhaustiveSampler() Sampler {
	return &exhaustiveSampler{}
}

func (sampler *exhaustiveSampler) Sample(model QuadraticModel, reads int) ([]Candidate, error) {
	if model.Variables > maxExhaustiveVariables {
		return nil, fmt.Errorf("%w: exhaustive sampler is limited to %v variables, got %v", ErrSamplerUnavailable, maxExhaustiveVariables, model.Variables)
	}
	if reads <= 0 {
		return []Candidate{}, nil
	}

	feasible := bestList{limit: reads}
	infeasible := bestList{limit: reads}

	assignment := make(Assignment, model.Variables)
	for mask := 0; mask < 1<<model.Variables; mask++ {
		for i := range assignment {
			assignment[i] = uint8(mask >> i & 1)
		}

		candidate := Candidate{
			Assignment: slices.Clone(assignment),
			Energy:     model.Energy(assignment),
			Feasible:   model.CheckFeasible(assignment),
		}
		if candidate.Feasible {
			feasible.add(candidate)
		} else {
			infeasible.add(candidate)
		}
	}

	batch := append(feasible.candidates, infeasible.candidates...)
	slices.SortStableFunc(batch, func(a, b Candidate) int {
		if a.Energy < b.Energy {
			return -1
		} else if a.Energy > b.Energy {
			return 1
		}
		return 0
	})
	return batch, nil
}

// bestList keeps at most limit candidates ordered by ascending energy.
type bestList struct {
	limit      int
	candidates []Candidate
}

func (list *bestList) add(candidate Candidate) {
	// Upper-bound insertion keeps first-seen order among equal energies.
	position, _ := slices.BinarySearchFunc(list.candidates, candidate, func(a, b Candidate) int {
		if a.Energy <= b.Energy {
			return -1
		}
		return 1
	})
	if position >= list.limit {
		return
	}
	list.candidates = slices.Insert(list.candidates, position, candidate)
	if len(list.candidates) > list.limit {
		list.candidates = list.candidates[:list.limit]
	}
}
