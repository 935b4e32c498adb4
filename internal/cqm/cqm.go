package cqm

// Assignment is a color per car position: 1 = black, 0 = white.
type Assignment []uint8

// Constraint is a linear equality over one ensemble's positions: the number
// of black cars among Positions must equal Quota.
type Constraint struct {
	Ensemble  int
	Positions []int
	Quota     int
}

// QuadraticModel is a quadratic objective over binary variables plus a list
// of linear equality constraints. Quadratic keys are normalized to i < j;
// squared terms are folded into Linear since x*x = x on binaries.
type QuadraticModel struct {
	Variables   int
	Linear      []float64
	Quadratic   map[[2]int]float64
	Offset      float64
	Constraints []Constraint
}

func NewQuadraticModel(variables int) QuadraticModel {
	return QuadraticModel{
		Variables: variables,
		Linear:    make([]float64, variables),
		Quadratic: make(map[[2]int]float64),
	}
}

func (model *QuadraticModel) AddLinear(i int, coefficient float64) {
	model.Linear[i] += coefficient
}

func (model *QuadraticModel) AddQuadratic(i, j int, coefficient float64) {
	if i == j {
		model.Linear[i] += coefficient
		return
	}
	if i > j {
		i, j = j, i
	}
	model.Quadratic[[2]int{i, j}] += coefficient
}

// Energy evaluates the objective on an assignment.
func (model QuadraticModel) Energy(assignment Assignment) float64 {
	energy := model.Offset
	for i, coefficient := range model.Linear {
		if assignment[i] == 1 {
			energy += coefficient
		}
	}
	for pair, coefficient := range model.Quadratic {
		if assignment[pair[0]] == 1 && assignment[pair[1]] == 1 {
			energy += coefficient
		}
	}
	return energy
}

// CheckFeasible reports whether every equality constraint holds. Samplers tag
// their candidates with it, and the solution processor re-runs it on every
// candidate since the sampler's own flag is untrusted input.
func (model QuadraticModel) CheckFeasible(assignment Assignment) bool {
	for _, constraint := range model.Constraints {
		black := 0
		for _, position := range constraint.Positions {
			if assignment[position] == 1 {
				black++
			}
		}
		if black != constraint.Quota {
			return false
		}
	}
	return true
}
