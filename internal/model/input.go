package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// InstanceInput is the persisted instance format: an ordered list of
// ensemble indices per car and a mapping from ensemble to black quota.
type InstanceInput struct {
	Sequence []int          `mapstructure:"sequence"`
	Counts   map[string]int `mapstructure:"counts"`
}

func (input InstanceInput) GetCounts() map[int]int {
	result := make(map[int]int)
	for k, v := range input.Counts {
		key, err := strconv.Atoi(k)
		if err != nil {
			panic(fmt.Sprintf("cannot transform dictionary: %v", err))
		}
		result[key] = v
	}
	return result
}

// ToInstance validates the loaded data into a ProblemInstance.
func (input InstanceInput) ToInstance() (ProblemInstance, error) {
	return NewProblemInstance(input.Sequence, input.GetCounts())
}

func InputFromYaml(file string) (InstanceInput, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return InstanceInput{}, err
	}

	var inputYaml map[string]any
	if err := yaml.Unmarshal(bytes, &inputYaml); err != nil {
		return InstanceInput{}, err
	}

	// Weak decoding stringifies the integer ensemble keys YAML may produce
	var input InstanceInput
	if err := mapstructure.WeakDecode(inputYaml, &input); err != nil {
		return InstanceInput{}, err
	}

	return input, nil
}

// SaveInstance writes an instance in the same YAML format InputFromYaml
// reads.
func SaveInstance(instance ProblemInstance, file string) error {
	counts := make(map[string]int, instance.Ensembles())
	for ensemble, quota := range instance.Counts() {
		counts[strconv.Itoa(ensemble)] = quota
	}

	bytes, err := yaml.Marshal(map[string]any{
		"sequence": instance.Sequence(),
		"counts":   counts,
	})
	if err != nil {
		return err
	}

	if dir := filepath.Dir(file); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(file, bytes, 0666)
}
