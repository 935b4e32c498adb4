package model

import (
	"fmt"
	"log"
	"math/rand/v2"
	"slices"
)

// RandomInstance generates a seeded random paint shop problem. Each car is
// assigned one of ensembles uniformly; the quota of an ensemble with n
// occurrences is drawn from [n/3, max(n/3+1, 2n/3)) unless minBlack/maxBlack
// (when positive) override those bounds. The result is always a valid
// instance and is fully determined by the seed.
func RandomInstance(cars, ensembles, minBlack, maxBlack int, seed uint64) (ProblemInstance, error) {
	if cars <= 0 {
		return ProblemInstance{}, InvalidInstanceError{Reason: fmt.Sprintf("cannot generate %v cars", cars)}
	}
	if ensembles <= 0 {
		return ProblemInstance{}, InvalidInstanceError{Reason: fmt.Sprintf("cannot generate %v ensembles", ensembles)}
	}

	rng := rand.New(rand.NewPCG(seed, seed))

	sequence := make([]int, cars)
	for i := range sequence {
		sequence[i] = rng.IntN(ensembles)
	}

	occurrences := ensembleOccurrences(sequence)

	// Quotas are drawn in sorted ensemble order; ranging over the map would
	// consume the PCG stream in a different order on every call
	present := make([]int, 0, len(occurrences))
	for ensemble := range occurrences {
		present = append(present, ensemble)
	}
	slices.Sort(present)

	counts := make(map[int]int)
	for _, ensemble := range present {
		size := occurrences[ensemble]
		low := size / 3
		if minBlack > 0 {
			low = minBlack
		}
		high := size * 2 / 3
		if maxBlack > 0 {
			high = maxBlack
		}
		if high <= low {
			high = low + 1
		}

		quota := low + rng.IntN(high-low)
		if quota > size {
			quota = size
		}
		counts[ensemble] = quota
	}

	instance, err := NewProblemInstance(sequence, counts)
	if err != nil {
		log.Panicf("generated instance is invalid: %v", err)
	}
	return instance, nil
}
