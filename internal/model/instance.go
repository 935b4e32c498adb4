package model

import "fmt"

// InvalidInstanceError reports malformed or inconsistent problem data. It is
// returned before any model is built; no partial instance escapes.
type InvalidInstanceError struct {
	Reason string
}

func (err InvalidInstanceError) Error() string {
	return fmt.Sprintf("invalid instance: %v", err.Reason)
}

// ProblemInstance is a car sequence plus per-ensemble black-count quotas.
// Constructed once through NewProblemInstance and immutable thereafter.
type ProblemInstance struct {
	sequence []int
	counts   map[int]int
}

// NewProblemInstance validates the sequence and quotas and returns an
// immutable instance. Checks, in order: sequence non-empty; every ensemble
// referenced in the sequence has a quota; every quota lies within
// [0, occurrences of that ensemble].
func NewProblemInstance(sequence []int, counts map[int]int) (ProblemInstance, error) {
	if err := validateInstance(sequence, counts); err != nil {
		return ProblemInstance{}, err
	}

	instance := ProblemInstance{
		sequence: make([]int, len(sequence)),
		counts:   make(map[int]int, len(counts)),
	}
	copy(instance.sequence, sequence)
	for ensemble, quota := range counts {
		instance.counts[ensemble] = quota
	}
	return instance, nil
}

func validateInstance(sequence []int, counts map[int]int) error {
	if len(sequence) == 0 {
		return InvalidInstanceError{Reason: "sequence is empty"}
	}

	occurrences := ensembleOccurrences(sequence)
	for ensemble := range occurrences {
		if _, ok := counts[ensemble]; !ok {
			return InvalidInstanceError{Reason: fmt.Sprintf("ensemble %v has no black-count quota", ensemble)}
		}
	}
	for ensemble, quota := range counts {
		if quota < 0 {
			return InvalidInstanceError{Reason: fmt.Sprintf("ensemble %v has a negative quota %v", ensemble, quota)}
		}
		if quota > occurrences[ensemble] {
			return InvalidInstanceError{Reason: fmt.Sprintf("ensemble %v has quota %v but only %v cars", ensemble, quota, occurrences[ensemble])}
		}
	}
	return nil
}

func ensembleOccurrences(sequence []int) map[int]int {
	occurrences := make(map[int]int)
	for _, ensemble := range sequence {
		occurrences[ensemble]++
	}
	return occurrences
}

// Cars is the number of positions in the sequence.
func (instance ProblemInstance) Cars() int {
	return len(instance.sequence)
}

// Ensembles is the number of distinct car ensembles.
func (instance ProblemInstance) Ensembles() int {
	return len(instance.counts)
}

// Sequence returns the ensemble index per car position. Callers must not
// modify the returned slice.
func (instance ProblemInstance) Sequence() []int {
	return instance.sequence
}

// Counts returns the black-count quota per ensemble. Callers must not modify
// the returned map.
func (instance ProblemInstance) Counts() map[int]int {
	return instance.counts
}
