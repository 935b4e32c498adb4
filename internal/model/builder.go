package model

import (
	"fmt"
	"slices"

	"paintshop/internal/cqm"
)

// ObjectiveMode selects between the two equivalent objective formulations.
type ObjectiveMode string

const (
	// ModeSwitchCount sums (x_i - x_{i+1})^2 over adjacent pairs. Its minimum
	// equals the true number of color switches.
	ModeSwitchCount ObjectiveMode = "switch-count"
	// ModeSameColorReward sums -(2x_i - 1)(2x_{i+1} - 1) over adjacent pairs,
	// the spin-domain product from Yarkoni et al.
	// (https://arxiv.org/pdf/2109.07876.pdf) encoded in binary variables.
	// Related to ModeSwitchCount by N - 1 + f2 = 2*f1; its energies are NOT
	// switch counts and must never be reported as such.
	ModeSameColorReward ObjectiveMode = "same-color-reward"
)

// BuildModel turns an instance into a constrained quadratic model: the
// selected objective over one binary variable per car plus one equality
// constraint per ensemble. Purely functional.
func BuildModel(instance ProblemInstance, mode ObjectiveMode) (cqm.QuadraticModel, error) {
	if err := validateInstance(instance.sequence, instance.counts); err != nil {
		return cqm.QuadraticModel{}, err
	}

	cars := instance.Cars()
	model := cqm.NewQuadraticModel(cars)

	switch mode {
	case ModeSwitchCount:
		// (x_i - x_{i+1})^2 = x_i + x_{i+1} - 2*x_i*x_{i+1} on binaries
		for i := 0; i < cars-1; i++ {
			model.AddLinear(i, 1)
			model.AddLinear(i+1, 1)
			model.AddQuadratic(i, i+1, -2)
		}
	case ModeSameColorReward:
		// -(2x_i - 1)(2x_{i+1} - 1) = -4*x_i*x_{i+1} + 2*x_i + 2*x_{i+1} - 1
		for i := 0; i < cars-1; i++ {
			model.AddLinear(i, 2)
			model.AddLinear(i+1, 2)
			model.AddQuadratic(i, i+1, -4)
			model.Offset--
		}
	default:
		return cqm.QuadraticModel{}, fmt.Errorf("unknown objective mode %q", mode)
	}

	model.Constraints = buildConstraints(instance)
	return model, nil
}

// buildConstraints groups positions by ensemble; every position appears in
// exactly one constraint.
func buildConstraints(instance ProblemInstance) []cqm.Constraint {
	positions := make(map[int][]int)
	for i, ensemble := range instance.sequence {
		positions[ensemble] = append(positions[ensemble], i)
	}

	ensembles := make([]int, 0, len(positions))
	for ensemble := range positions {
		ensembles = append(ensembles, ensemble)
	}
	slices.Sort(ensembles)

	constraints := make([]cqm.Constraint, 0, len(ensembles))
	for _, ensemble := range ensembles {
		constraints = append(constraints, cqm.Constraint{
			Ensemble:  ensemble,
			Positions: positions[ensemble],
			Quota:     instance.counts[ensemble],
		})
	}
	return constraints
}

// SwitchCount is the canonical switch count of an assignment, computed by
// direct pairwise comparison. It is never derived from a sampler's reported
// energy, whose scale depends on the objective mode.
func SwitchCount(assignment cqm.Assignment) int {
	switches := 0
	for i := 0; i < len(assignment)-1; i++ {
		if assignment[i] != assignment[i+1] {
			switches++
		}
	}
	return switches
}
