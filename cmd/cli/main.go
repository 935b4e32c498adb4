package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"slices"
	"strings"

	"paintshop/internal/cqm"
	"paintshop/internal/model"
	"paintshop/internal/render"
)

var (
	validModes    = []string{string(model.ModeSwitchCount), string(model.ModeSameColorReward)}
	validSamplers = []string{"exhaustive", "exec"}
)

func main() {
	// Define arguments
	filePtr := flag.String("file", "", "Path to a YAML instance file. When set, the random generation flags are ignored")
	carsPtr := flag.Int("cars", 10, "Number of cars in the generated sequence")
	ensemblesPtr := flag.Int("ensembles", 3, "Maximum number of car ensembles in the generated sequence")
	seedPtr := flag.Uint64("seed", 111, "Seed for random sequence generation")
	minBlackPtr := flag.Int("min-black", 0, "Minimum number of black cars per ensemble (0 derives it from the ensemble size)")
	maxBlackPtr := flag.Int("max-black", 0, "Maximum number of black cars per ensemble (0 derives it from the ensemble size)")
	modePtr := flag.String("mode", string(model.ModeSwitchCount), `Objective formulation. Allowed values are:
- "switch-count" ((x_i - x_{i+1})^2 per adjacent pair; energies equal switch counts),
- "same-color-reward" (-(2x_i - 1)(2x_{i+1} - 1) per adjacent pair), where "switch-count" is the default`)
	topPtr := flag.Int("top", 3, "Number of best distinct feasible solutions to print")
	samplerPtr := flag.String("sampler", "exhaustive", "Sampler to use. Allowed values are: \"exhaustive\", \"exec\", where \"exhaustive\" is the default")
	samplerCmdPtr := flag.String("sampler-cmd", "", "External sampler command for the \"exec\" sampler (the model is fed as JSON on stdin)")
	readsPtr := flag.Int("reads", 100, "Number of candidate assignments requested from the sampler")
	imagesPtr := flag.String("images", "images", "Directory for rendered color sequence images; empty disables rendering")
	saveSequencePtr := flag.Bool("save-sequence", false, "Save the generated random sequence to a file")
	sequenceNamePtr := flag.String("sequence-name", "", "File name to use when saving the generated random sequence")
	flag.Parse()
	mode := strings.ToLower(*modePtr)
	samplerStr := strings.ToLower(*samplerPtr)

	// Validate arguments
	if !slices.Contains(validModes, mode) {
		log.Fatalf("%v is not a valid objective mode", mode)
	} else if !slices.Contains(validSamplers, samplerStr) {
		log.Fatalf("%v is not a valid sampler", samplerStr)
	} else if samplerStr == "exec" && *samplerCmdPtr == "" {
		log.Fatal("the exec sampler requires -sampler-cmd")
	} else if *topPtr <= 0 {
		log.Fatalf("the number of solutions to print must be positive: %v", *topPtr)
	} else if *readsPtr <= 0 {
		log.Fatalf("the number of reads must be positive: %v", *readsPtr)
	}

	// Extract or generate the instance
	instance, err := loadInstance(*filePtr, *carsPtr, *ensemblesPtr, *minBlackPtr, *maxBlackPtr, *seedPtr)
	if err != nil {
		log.Fatalf("cannot obtain a problem instance: %v", err)
	}
	if *saveSequencePtr && *filePtr == "" {
		name := *sequenceNamePtr
		if name == "" {
			name = filepath.Join("data", fmt.Sprintf("sequence_%v_%v_%v.yml", *carsPtr, *ensemblesPtr, *seedPtr))
		}
		if err := model.SaveInstance(instance, name); err != nil {
			log.Fatalf("cannot save the generated sequence: %v", err)
		}
		fmt.Printf("Saved sequence to %v\n", name)
	}

	fmt.Println("Problem")
	fmt.Println("-------")
	fmt.Printf("Number of cars: %v\n", instance.Cars())
	fmt.Printf("Number of car ensembles: %v\n", instance.Ensembles())
	if instance.Ensembles() <= 10 {
		fmt.Printf("Number of cars to be painted black: %v\n", instance.Counts())
	}

	// Initialize engines
	sampler := buildSampler(samplerStr, *samplerCmdPtr)
	optimizer := model.NewOptimizer(sampler, *readsPtr)

	// Optimize
	solutions, err := optimizer.Optimize(instance, model.ObjectiveMode(mode), *topPtr)
	if errors.Is(err, cqm.ErrSamplerUnavailable) {
		log.Fatalf("sampler boundary failure: %v", err)
	} else if err != nil {
		log.Fatalf("an error occurred during optimization: %v", err)
	}

	fmt.Println("\nSolutions")
	fmt.Println("---------")
	if len(solutions) == 0 {
		fmt.Println("No feasible solution found.")
		return
	}

	for index, solution := range solutions {
		if !optimizer.Verify(solution, instance) {
			log.Fatalf("solution %v failed verification", index+1)
		}

		fmt.Printf("%v\n", index+1)
		fmt.Printf("Objective: %8.2f, Number of switches: %8d\n", solution.Energy, solution.Switches)

		if *imagesPtr != "" {
			name := filepath.Join(*imagesPtr, fmt.Sprintf("color_sequence_image_%v_%v.png", index, mode))
			if err := render.Bars(solution.Assignment, name); err != nil {
				log.Fatalf("cannot render solution %v: %v", index+1, err)
			}
			fmt.Printf("Saved solution to %v\n", name)
		}
	}
}

func loadInstance(file string, cars, ensembles, minBlack, maxBlack int, seed uint64) (model.ProblemInstance, error) {
	if file == "" {
		return model.RandomInstance(cars, ensembles, minBlack, maxBlack, seed)
	}

	input, err := model.InputFromYaml(file)
	if err != nil {
		return model.ProblemInstance{}, err
	}
	return input.ToInstance()
}

func buildSampler(sampler, samplerCmd string) cqm.Sampler {
	if sampler == "exec" {
		parts := strings.Fields(samplerCmd)
		return cqm.NewExecSampler(parts[0], parts[1:]...)
	}
	return cqm.NewExhaustiveSampler()
}
