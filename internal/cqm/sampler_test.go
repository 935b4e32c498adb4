package cqm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func switchModel(variables int, constraints []Constraint) QuadraticModel {
	model := NewQuadraticModel(variables)
	for i := 0; i < variables-1; i++ {
		model.AddLinear(i, 1)
		model.AddLinear(i+1, 1)
		model.AddQuadratic(i, i+1, -2)
	}
	model.Constraints = constraints
	return model
}

func TestExhaustiveSampler(t *testing.T) {
	t.Run("finds the feasible optimum", func(t *testing.T) {
		// Arrange
		model := switchModel(6, []Constraint{
			{Ensemble: 0, Positions: []int{0, 3}, Quota: 1},
			{Ensemble: 1, Positions: []int{1, 4}, Quota: 1},
			{Ensemble: 2, Positions: []int{2, 5}, Quota: 1},
		})
		sampler := NewExhaustiveSampler()

		// Act
		batch, err := sampler.Sample(model, 10)

		// Assert
		assert.Nil(t, err)
		assert.True(t, AssertBatchSorted(batch))

		var bestFeasible *Candidate
		for i := range batch {
			if batch[i].Feasible {
				bestFeasible = &batch[i]
				break
			}
		}
		assert.NotNil(t, bestFeasible)
		// 1 1 1 0 0 0 is a known optimum with a single switch
		assert.InDelta(t, 1, bestFeasible.Energy, 1e-9)
	})

	t.Run("feasibility tags are consistent with the constraints", func(t *testing.T) {
		model := switchModel(8, []Constraint{
			{Ensemble: 0, Positions: []int{0, 1, 2, 3, 4, 5, 6, 7}, Quota: 3},
		})
		sampler := NewExhaustiveSampler()

		batch, err := sampler.Sample(model, 25)

		assert.Nil(t, err)
		for _, candidate := range batch {
			assert.Equal(t, model.CheckFeasible(candidate.Assignment), candidate.Feasible)
			assert.InDelta(t, model.Energy(candidate.Assignment), candidate.Energy, 1e-9)
		}
	})

	t.Run("refuses oversized instances", func(t *testing.T) {
		model := NewQuadraticModel(maxExhaustiveVariables + 1)
		sampler := NewExhaustiveSampler()

		batch, err := sampler.Sample(model, 10)

		assert.Nil(t, batch)
		assert.ErrorIs(t, err, ErrSamplerUnavailable)
	})

	t.Run("non-positive reads yield an empty batch", func(t *testing.T) {
		model := switchModel(4, nil)
		sampler := NewExhaustiveSampler()

		batch, err := sampler.Sample(model, 0)

		assert.Nil(t, err)
		assert.Empty(t, batch)
	})
}

func TestParseBatch(t *testing.T) {
	model := switchModel(3, []Constraint{
		{Ensemble: 0, Positions: []int{0, 1, 2}, Quota: 1},
	})

	t.Run("valid output", func(t *testing.T) {
		output, _ := json.Marshal([]sampleResponse{
			{Sample: []uint8{1, 0, 0}, Energy: 1},
			{Sample: []uint8{1, 1, 0}, Energy: 1},
		})

		batch, err := ParseBatch(output, model)

		assert.Nil(t, err)
		assert.Len(t, batch, 2)
		assert.True(t, batch[0].Feasible)  // quota of one black car holds
		assert.False(t, batch[1].Feasible) // two black cars violate the quota
	})

	t.Run("malformed output", func(t *testing.T) {
		_, err := ParseBatch([]byte("not json"), model)
		assert.ErrorIs(t, err, ErrSamplerUnavailable)
	})

	t.Run("sample length mismatch", func(t *testing.T) {
		output, _ := json.Marshal([]sampleResponse{{Sample: []uint8{1, 0}, Energy: 0}})
		_, err := ParseBatch(output, model)
		assert.ErrorIs(t, err, ErrSamplerUnavailable)
	})
}
