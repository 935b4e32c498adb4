package cqm

// ToBQM folds every equality constraint into the objective as
// penalty*(lhs - rhs)^2, assuming only linear equality constraints are
// present. The result carries no constraint list and can be fed to samplers
// that only understand unconstrained quadratic models.
func ToBQM(model QuadraticModel, penalty float64) QuadraticModel {
	bqm := NewQuadraticModel(model.Variables)
	bqm.Offset = model.Offset
	copy(bqm.Linear, model.Linear)
	for pair, coefficient := range model.Quadratic {
		bqm.AddQuadratic(pair[0], pair[1], coefficient)
	}

	for _, constraint := range model.Constraints {
		quota := float64(constraint.Quota)
		// (sum x_i - q)^2 = sum x_i + 2*sum_{i<j} x_i*x_j - 2q*sum x_i + q^2
		for _, position := range constraint.Positions {
			bqm.AddLinear(position, penalty*(1-2*quota))
		}
		for i := 0; i < len(constraint.Positions)-1; i++ {
			for j := i + 1; j < len(constraint.Positions); j++ {
				bqm.AddQuadratic(constraint.Positions[i], constraint.Positions[j], 2*penalty)
			}
		}
		bqm.Offset += penalty * quota * quota
	}

	return bqm
}
