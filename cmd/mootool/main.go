// Command mootool scores Pareto-front approximation sets from the command
// line. It runs either a full YAML study or a single indicator against one
// dataset file.
//
// Usage:
//
//	mootool -config study.yaml
//	mootool -data front.dat -indicator hypervolume -reference "6,6"
//	mootool -data front.dat -indicator epsilon -reference-set pf.dat
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/auto-optimization/mootools/infrastructure/datasets"
	"github.com/auto-optimization/mootools/internal/application"
	"github.com/auto-optimization/mootools/internal/ports"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to a YAML study configuration")
		dataPath   = flag.String("data", "", "Path to a dataset file for single-indicator mode")
		indicator  = flag.String("indicator", "hypervolume", "Indicator type for single-indicator mode")
		reference  = flag.String("reference", "", "Comma-separated reference point, e.g. \"6,6\"")
		refSetPath = flag.String("reference-set", "", "Path to a reference set file for epsilon and distance indicators")
		maximise   = flag.Bool("maximise", false, "Treat all objectives as maximised")
	)
	flag.Parse()

	switch {
	case *configPath != "":
		if err := runStudy(*configPath); err != nil {
			log.Fatalf("study failed: %v", err)
		}
	case *dataPath != "":
		if err := runSingle(*dataPath, *indicator, *reference, *refSetPath, *maximise); err != nil {
			log.Fatalf("evaluation failed: %v", err)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func runStudy(configPath string) error {
	raw, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	cfg, err := application.ParseStudyConfig(raw)
	if err != nil {
		return err
	}

	runner := application.NewRunner(
		application.NewDefaultIndicatorRegistry(),
		datasets.NewFileReader(),
		nil,
	)
	results, err := runner.Run(context.Background(), cfg)
	if err != nil {
		return err
	}
	for _, r := range results {
		printResult(r.Dataset, r.Result)
	}
	return nil
}

func runSingle(dataPath, indicatorType, reference, refSetPath string, maximise bool) error {
	reader := datasets.NewFileReader()
	ds, err := reader.ReadFile(dataPath)
	if err != nil {
		return err
	}

	params := defaultParams(indicatorType)
	req := ports.Request{Data: ds}
	if reference != "" {
		point, err := parsePoint(reference)
		if err != nil {
			return err
		}
		params["reference"] = point
		req.ReferencePoint = point
	}
	if refSetPath != "" {
		refSet, err := reader.ReadFile(refSetPath)
		if err != nil {
			return fmt.Errorf("loading reference set: %w", err)
		}
		req.Reference = refSet.Points()
	}
	if maximise {
		flags := make([]bool, ds.NumObjectives())
		for j := range flags {
			flags[j] = true
		}
		req.Maximise = flags
	}

	registry := application.NewDefaultIndicatorRegistry()
	ind, err := registry.Create(indicatorType, indicatorType, params)
	if err != nil {
		return err
	}
	result, err := ind.Evaluate(context.Background(), req)
	if err != nil {
		return err
	}
	printResult(dataPath, result)
	return nil
}

// defaultParams supplies the minimal configuration of indicator types whose
// required parameters the single-indicator flags cannot express. Studies
// configure these explicitly; the command line picks the conventional
// variant.
func defaultParams(indicatorType string) map[string]any {
	switch indicatorType {
	case "epsilon":
		return map[string]any{"variant": "additive"}
	case "distance":
		return map[string]any{"metric": "igd"}
	default:
		return map[string]any{}
	}
}

func parsePoint(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	point := make([]float64, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("parsing reference point %q: %w", s, err)
		}
		point[i] = v
	}
	return point, nil
}

func printResult(dataset string, result ports.Result) {
	switch {
	case result.Values != nil:
		fmt.Printf("%s\t%s\t%v\n", dataset, result.Indicator, result.Values)
	case !result.Points.IsEmpty():
		fmt.Printf("%s\t%s\tlevel=%g\n", dataset, result.Indicator, result.Value)
		for i := 0; i < result.Points.Rows(); i++ {
			fmt.Printf("\t%v\n", result.Points.Row(i))
		}
	default:
		fmt.Printf("%s\t%s\t%g\n", dataset, result.Indicator, result.Value)
	}
}
