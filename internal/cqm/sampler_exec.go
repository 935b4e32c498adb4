package cqm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/samber/lo"
)

type execSampler struct {
	command string
	args    []string
}

// NewExecSampler returns a Sampler that shells out to an external sampler
// binary, feeding the model as JSON on its standard input and reading a JSON
// batch of samples from its standard output.
func NewExecSampler(command string, args ...string) Sampler {
	return &execSampler{command: command, args: args}
}

type quadraticTerm struct {
	I           int     `json:"i"`
	J           int     `json:"j"`
	Coefficient float64 `json:"coefficient"`
}

type constraintRequest struct {
	Ensemble  int   `json:"ensemble"`
	Positions []int `json:"positions"`
	Quota     int   `json:"quota"`
}

type samplerRequest struct {
	Variables   int                 `json:"variables"`
	Linear      []float64           `json:"linear"`
	Quadratic   []quadraticTerm     `json:"quadratic"`
	Offset      float64             `json:"offset"`
	Constraints []constraintRequest `json:"constraints"`
	Reads       int                 `json:"reads"`
}

type sampleResponse struct {
	Sample []uint8 `json:"sample"`
	Energy float64 `json:"energy"`
}

func (sampler *execSampler) Sample(model QuadraticModel, reads int) ([]Candidate, error) {
	request := encodeRequest(model, reads)
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("cannot encode sampler request: %w", err)
	}

	cmd := exec.Command(sampler.command, sampler.args...)
	cmd.Stdin = bytes.NewReader(payload) // Feed the model into the sampler's standard input

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%w: %v : %v", ErrSamplerUnavailable, err, stderr.String())
	}

	return ParseBatch(stdOut.Bytes(), model)
}

func encodeRequest(model QuadraticModel, reads int) samplerRequest {
	quadratic := make([]quadraticTerm, 0, len(model.Quadratic))
	for pair, coefficient := range model.Quadratic {
		quadratic = append(quadratic, quadraticTerm{I: pair[0], J: pair[1], Coefficient: coefficient})
	}

	return samplerRequest{
		Variables: model.Variables,
		Linear:    model.Linear,
		Quadratic: quadratic,
		Offset:    model.Offset,
		Constraints: lo.Map(model.Constraints, func(constraint Constraint, _ int) constraintRequest {
			return constraintRequest{
				Ensemble:  constraint.Ensemble,
				Positions: constraint.Positions,
				Quota:     constraint.Quota,
			}
		}),
		Reads: reads,
	}
}

// ParseBatch decodes a sampler's JSON output into candidates. The sampler's
// energies are taken as reported; feasibility is established locally through
// CheckFeasible rather than trusted from the sampler process.
func ParseBatch(output []byte, model QuadraticModel) ([]Candidate, error) {
	var responses []sampleResponse
	if err := json.Unmarshal(output, &responses); err != nil {
		return nil, fmt.Errorf("%w: invalid sampler output: %v", ErrSamplerUnavailable, err)
	}

	candidates := make([]Candidate, 0, len(responses))
	for _, response := range responses {
		if len(response.Sample) != model.Variables {
			return nil, fmt.Errorf("%w: sample length %v does not match %v variables", ErrSamplerUnavailable, len(response.Sample), model.Variables)
		}
		assignment := Assignment(response.Sample)
		candidates = append(candidates, Candidate{
			Assignment: assignment,
			Energy:     response.Energy,
			Feasible:   model.CheckFeasible(assignment),
		})
	}
	return candidates, nil
}
