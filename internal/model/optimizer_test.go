package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"paintshop/internal/cqm"
)

func TestOptimizeSingleEnsemble(t *testing.T) {
	t.Run("quota eight of fourteen", func(t *testing.T) {
		// Arrange
		instance := mustInstance(t, make([]int, 14), map[int]int{0: 8})
		optimizer := NewOptimizer(cqm.NewExhaustiveSampler(), 100)

		// Act
		solutions, err := optimizer.Optimize(instance, ModeSwitchCount, 5)

		// Assert
		assert.Nil(t, err)
		assert.Len(t, solutions, 5)

		// A single block of eight black cars at either end switches only once
		assert.InDelta(t, 1, solutions[0].Energy, 1e-9)
		assert.Equal(t, 1, solutions[0].Switches)
		assert.Equal(t, 1, solutions[1].Switches)
		assert.NotEqual(t, solutions[0].Assignment, solutions[1].Assignment)

		for _, solution := range solutions {
			assert.True(t, optimizer.Verify(solution, instance))
		}
	})

	t.Run("quota zero forces all-white", func(t *testing.T) {
		instance := mustInstance(t, make([]int, 10), map[int]int{0: 0})
		optimizer := NewOptimizer(cqm.NewExhaustiveSampler(), 50)

		solutions, err := optimizer.Optimize(instance, ModeSwitchCount, 3)

		assert.Nil(t, err)
		assert.Len(t, solutions, 1)
		assert.Equal(t, 0, solutions[0].Switches)
		assert.Equal(t, cqm.Assignment(make([]uint8, 10)), solutions[0].Assignment)
	})
}

func TestOptimizeSameColorReward(t *testing.T) {
	// Arrange
	instance := mustInstance(t, []int{1, 2, 3, 1, 2, 3}, map[int]int{1: 1, 2: 1, 3: 1})
	optimizer := NewOptimizer(cqm.NewExhaustiveSampler(), 100)

	// Act
	solutions, err := optimizer.Optimize(instance, ModeSameColorReward, 3)

	// Assert
	assert.Nil(t, err)
	assert.NotEmpty(t, solutions)

	// Reported energies are on the reward scale; switch counts are recomputed
	// from the vector and obey the affine identity
	cars := instance.Cars()
	for _, solution := range solutions {
		assert.InDelta(t, float64(solution.Switches), (float64(cars-1)+solution.Energy)/2, 1e-9)
		assert.True(t, optimizer.Verify(solution, instance))
	}
	assert.Equal(t, 1, solutions[0].Switches)
}

func TestOptimizeModesAgreeOnBestSwitchCount(t *testing.T) {
	instance, err := RandomInstance(12, 3, 0, 0, 7)
	assert.Nil(t, err)
	optimizer := NewOptimizer(cqm.NewExhaustiveSampler(), 200)

	bySwitches, err := optimizer.Optimize(instance, ModeSwitchCount, 1)
	assert.Nil(t, err)
	byReward, err := optimizer.Optimize(instance, ModeSameColorReward, 1)
	assert.Nil(t, err)

	assert.NotEmpty(t, bySwitches)
	assert.NotEmpty(t, byReward)
	assert.Equal(t, bySwitches[0].Switches, byReward[0].Switches)
}

type failingSampler struct{}

func (sampler failingSampler) Sample(cqm.QuadraticModel, int) ([]cqm.Candidate, error) {
	return nil, cqm.ErrSamplerUnavailable
}

type emptySampler struct{}

func (sampler emptySampler) Sample(cqm.QuadraticModel, int) ([]cqm.Candidate, error) {
	return []cqm.Candidate{}, nil
}

func TestOptimizeBoundaryErrors(t *testing.T) {
	instance := mustInstance(t, []int{0, 0}, map[int]int{0: 1})

	t.Run("sampler failure is propagated", func(t *testing.T) {
		optimizer := NewOptimizer(failingSampler{}, 10)

		solutions, err := optimizer.Optimize(instance, ModeSwitchCount, 3)

		assert.Nil(t, solutions)
		assert.ErrorIs(t, err, cqm.ErrSamplerUnavailable)
	})

	t.Run("empty batch is a valid outcome", func(t *testing.T) {
		optimizer := NewOptimizer(emptySampler{}, 10)

		solutions, err := optimizer.Optimize(instance, ModeSwitchCount, 3)

		assert.Nil(t, err)
		assert.Empty(t, solutions)
	})

	t.Run("invalid instance fails before sampling", func(t *testing.T) {
		optimizer := NewOptimizer(failingSampler{}, 10)

		_, err := optimizer.Optimize(ProblemInstance{}, ModeSwitchCount, 3)

		var invalid InvalidInstanceError
		assert.ErrorAs(t, err, &invalid)
	})
}

func TestVerify(t *testing.T) {
	instance := mustInstance(t, []int{0, 1, 0, 1}, map[int]int{0: 1, 1: 1})
	optimizer := NewOptimizer(cqm.NewExhaustiveSampler(), 10)

	valid := RankedSolution{Assignment: cqm.Assignment{1, 1, 0, 0}, Switches: 1, Energy: 1}
	assert.True(t, optimizer.Verify(valid, instance))

	wrongQuota := RankedSolution{Assignment: cqm.Assignment{1, 1, 1, 0}, Switches: 1}
	assert.False(t, optimizer.Verify(wrongQuota, instance))

	wrongSwitches := RankedSolution{Assignment: cqm.Assignment{1, 1, 0, 0}, Switches: 2}
	assert.False(t, optimizer.Verify(wrongSwitches, instance))

	wrongLength := RankedSolution{Assignment: cqm.Assignment{1, 0}, Switches: 1}
	assert.False(t, optimizer.Verify(wrongLength, instance))
}
