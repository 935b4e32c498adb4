package model

import (
	"fmt"

	"paintshop/internal/cqm"
)

// Optimizer runs the full pipeline: build the quadratic model, submit it to
// the sampler boundary, then verify, deduplicate and rank the returned batch.
type Optimizer interface {
	// Optimize returns up to topK distinct feasible solutions ordered by
	// reported energy. An empty result means no feasible candidate was
	// returned; a non-nil error means the instance was invalid or the
	// sampler boundary failed.
	Optimize(instance ProblemInstance, mode ObjectiveMode, topK int) ([]RankedSolution, error)

	// Verify re-checks a solution against a freshly derived constraint set
	// and its recomputed switch count.
	Verify(solution RankedSolution, instance ProblemInstance) bool
}

func NewOptimizer(sampler cqm.Sampler, reads int) Optimizer {
	return &paintOptimizer{sampler: sampler, reads: reads}
}

type paintOptimizer struct {
	sampler cqm.Sampler
	reads   int
}

func (optimizer *paintOptimizer) Optimize(instance ProblemInstance, mode ObjectiveMode, topK int) ([]RankedSolution, error) {
	model, err := BuildModel(instance, mode)
	if err != nil {
		return nil, err
	}

	batch, err := optimizer.sampler.Sample(model, optimizer.reads)
	if err != nil {
		return nil, fmt.Errorf("sampling failed: %w", err)
	}

	return ProcessCandidates(model, batch, topK), nil
}

func (optimizer *paintOptimizer) Verify(solution RankedSolution, instance ProblemInstance) bool {
	if len(solution.Assignment) != instance.Cars() {
		return false
	}
	for _, constraint := range buildConstraints(instance) {
		black := 0
		for _, position := range constraint.Positions {
			if solution.Assignment[position] == 1 {
				black++
			}
		}
		if black != constraint.Quota {
			return false
		}
	}
	return SwitchCount(solution.Assignment) == solution.Switches
}
