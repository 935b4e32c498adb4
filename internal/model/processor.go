package model

import (
	"slices"

	"github.com/samber/lo"

	"paintshop/internal/cqm"
)

// RankedSolution is a feasible, deduplicated assignment together with its
// recomputed switch count and the energy reported by the sampler.
type RankedSolution struct {
	Assignment cqm.Assignment
	Switches   int
	Energy     float64
}

// ProcessCandidates filters, deduplicates, independently scores and ranks a
// candidate batch into at most topK distinct feasible solutions.
//
// Candidates are dropped when their feasibility flag is false or when an
// independent recheck of the constraints fails; the flag is a sampler claim,
// not a fact. Duplicated assignments collapse into one entry carrying the
// lower reported energy. The result is ordered by (energy, switch count,
// first-seen order). An empty batch is not an error and yields an empty
// result.
func ProcessCandidates(model cqm.QuadraticModel, batch []cqm.Candidate, topK int) []RankedSolution {
	if topK <= 0 {
		return []RankedSolution{}
	}

	survivors := lo.Filter(batch, func(candidate cqm.Candidate, _ int) bool {
		return candidate.Feasible &&
			len(candidate.Assignment) == model.Variables &&
			model.CheckFeasible(candidate.Assignment)
	})

	solutions := make([]RankedSolution, 0, len(survivors))
	seen := make(map[string]int, len(survivors))
	for _, candidate := range survivors {
		key := string(candidate.Assignment)
		if position, ok := seen[key]; ok {
			if candidate.Energy < solutions[position].Energy {
				solutions[position].Energy = candidate.Energy
			}
			continue
		}
		seen[key] = len(solutions)
		solutions = append(solutions, RankedSolution{
			Assignment: candidate.Assignment,
			Switches:   SwitchCount(candidate.Assignment),
			Energy:     candidate.Energy,
		})
	}

	// Stable sort preserves first-seen order among full ties
	slices.SortStableFunc(solutions, func(a, b RankedSolution) int {
		if a.Energy < b.Energy {
			return -1
		} else if a.Energy > b.Energy {
			return 1
		}
		return a.Switches - b.Switches
	})

	if len(solutions) > topK {
		solutions = solutions[:topK]
	}
	return solutions
}
