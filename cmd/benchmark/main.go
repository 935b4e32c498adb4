package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"paintshop/internal/cqm"
	"paintshop/internal/model"
)

// Experiment is one row of the experiment file: a randomly generated
// instance identified by its generation parameters.
type Experiment struct {
	Name      string `yaml:"name"`
	Cars      int    `yaml:"cars"`
	Ensembles int    `yaml:"ensembles"`
	Seed      uint64 `yaml:"seed"`
	Reads     int    `yaml:"reads"`
}

type benchmarkResult struct {
	Experiment Experiment
	Mode       model.ObjectiveMode
	Form       string // "cqm" or "bqm"
	Duration   time.Duration
	Solved     bool
	BestEnergy float64
	Switches   int
}

var modes = []model.ObjectiveMode{model.ModeSwitchCount, model.ModeSameColorReward}

func main() {
	experimentsPtr := flag.String("experiments", "benchmark_experiments.yml", "Path to the YAML experiment list")
	outPtr := flag.String("out", "", "Path to the CSV results file; if empty, results are written to the standard output")
	penaltyPtr := flag.Float64("penalty", 2.0, "Penalty strength used when folding constraints into a BQM")
	flag.Parse()

	experiments, err := experimentsFromYaml(*experimentsPtr)
	if err != nil {
		log.Fatalf("cannot load experiments: %v", err)
	}

	results := make([]benchmarkResult, 0, len(experiments)*len(modes)*2)
	for _, experiment := range experiments {
		for _, mode := range modes {
			for _, form := range []string{"cqm", "bqm"} {
				fmt.Fprintf(os.Stderr, "Benchmarking %q with mode %q and form %q\n", experiment.Name, mode, form)
				results = append(results, run(experiment, mode, form, *penaltyPtr))
			}
		}
	}

	if err := writeResults(results, *outPtr); err != nil {
		log.Fatalf("cannot write results: %v", err)
	}
}

func run(experiment Experiment, mode model.ObjectiveMode, form string, penalty float64) benchmarkResult {
	instance, err := model.RandomInstance(experiment.Cars, experiment.Ensembles, 0, 0, experiment.Seed)
	if err != nil {
		log.Fatalf("cannot generate instance for %q: %v", experiment.Name, err)
	}

	constrained, err := model.BuildModel(instance, mode)
	if err != nil {
		log.Fatalf("cannot build model for %q: %v", experiment.Name, err)
	}

	sampled := constrained
	if form == "bqm" {
		sampled = cqm.ToBQM(constrained, penalty)
	}

	reads := experiment.Reads
	if reads <= 0 {
		reads = 100
	}

	start := time.Now()
	batch, err := cqm.NewExhaustiveSampler().Sample(sampled, reads)
	duration := time.Since(start)
	if err != nil {
		log.Fatalf("sampling failed for %q: %v", experiment.Name, err)
	}

	// Ranking always runs against the constrained model so BQM candidates
	// that merely pay the penalty are still rejected
	for i := range batch {
		batch[i].Feasible = constrained.CheckFeasible(batch[i].Assignment)
	}
	solutions := model.ProcessCandidates(constrained, batch, 1)

	result := benchmarkResult{
		Experiment: experiment,
		Mode:       mode,
		Form:       form,
		Duration:   duration,
	}
	if len(solutions) > 0 {
		result.Solved = true
		result.BestEnergy = solutions[0].Energy
		result.Switches = solutions[0].Switches
	}
	return result
}

func experimentsFromYaml(file string) ([]Experiment, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var experiments []Experiment
	if err := yaml.Unmarshal(bytes, &experiments); err != nil {
		return nil, err
	}
	return experiments, nil
}

func writeResults(results []benchmarkResult, out string) error {
	handle := os.Stdout
	if out != "" {
		var err error
		handle, err = os.Create(out)
		if err != nil {
			return err
		}
		defer handle.Close()
	}

	writer := csv.NewWriter(handle)
	defer writer.Flush()

	if err := writer.Write([]string{"experiment", "cars", "ensembles", "seed", "mode", "form", "duration_ms", "solved", "best_energy", "switches"}); err != nil {
		return err
	}
	for _, result := range results {
		record := []string{
			result.Experiment.Name,
			strconv.Itoa(result.Experiment.Cars),
			strconv.Itoa(result.Experiment.Ensembles),
			strconv.FormatUint(result.Experiment.Seed, 10),
			string(result.Mode),
			result.Form,
			strconv.FormatInt(result.Duration.Milliseconds(), 10),
			strconv.FormatBool(result.Solved),
			strconv.FormatFloat(result.BestEnergy, 'f', 2, 64),
			strconv.Itoa(result.Switches),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	return nil
}
