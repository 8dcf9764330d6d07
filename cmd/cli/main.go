package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"ventilation-voi/internal/analysis"
	"ventilation-voi/internal/config"
	"ventilation-voi/internal/corrosion"
	"ventilation-voi/internal/data"
	"ventilation-voi/internal/decision"
	"ventilation-voi/internal/dist"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "decide":
		cmdDecide(os.Args[2:])
	case "voi":
		cmdVoi(os.Args[2:])
	case "corrosion":
		cmdCorrosion(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli decide --config examples/config.yaml [--occupancy 30]")
	fmt.Println("  cli voi --config examples/config.yaml --out results/voi.csv")
	fmt.Println("  cli corrosion --data data/inspections.csv --critical 6 --horizon 25")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - decide picks the cheapest ventilation action (expected total cost)")
	fmt.Println("  - voi writes a per-sample ledger and reports the expected value of perfect information")
	fmt.Println("  - corrosion fits the wall-loss growth model and values a perfect inspection")
}

func cmdDecide(args []string) {
	fs := flag.NewFlagSet("decide", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	occupancy := fs.Int("occupancy", -1, "Optional: decide for a known occupancy count (-1 = use prior)")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}
	sc, err := cfg.ToScenario()
	if err != nil {
		panic(err)
	}

	ev, err := decision.NewEvaluator(sc)
	if err != nil {
		panic(err)
	}

	var weights []decision.Weighted
	if *occupancy >= 0 {
		weights = []decision.Weighted{{Occupancy: *occupancy, Weight: 1}}
	} else {
		samples := drawSamples(cfg)
		weights = decision.WeightsFromSamples(samples)
	}

	dec, err := ev.Decide(weights)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%-20s %-14s\n", "action", "expected_cost")
	for i, a := range sc.Actions {
		marker := " "
		if i == dec.ActionIndex {
			marker = "*"
		}
		fmt.Printf("%-20s $%-13.2f %s\n", a.Name, dec.CostByAction[i], marker)
	}
	fmt.Printf("\nChosen: %s ($%.2f expected)\n", dec.Action.Name, dec.ExpectedCost)
}

func cmdVoi(args []string) {
	fs := flag.NewFlagSet("voi", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	outPath := fs.String("out", "results/voi.csv", "Output CSV path")
	n := fs.Int("n", 0, "Optional: override sampling.samples (0=config value)")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}
	if *n > 0 {
		cfg.Sampling.Samples = *n
	}
	sc, err := cfg.ToScenario()
	if err != nil {
		panic(err)
	}

	samples := drawSamples(cfg)

	engine := decision.New()
	res, err := engine.Run(samples, sc)
	if err != nil {
		panic(err)
	}

	// ensure output dir exists
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	if err := decision.WriteLedgerCSV(*outPath, res.Ledger); err != nil {
		panic(err)
	}

	summary := analysis.Summarize(res.Ledger)
	fmt.Printf("Wrote %d rows to %s\n", len(res.Ledger), *outPath)
	fmt.Printf("Prior action=%s expected cost=$%.2f\n", res.Prior.Action.Name, res.Prior.ExpectedCost)
	fmt.Printf("Mean cost with perfect occupancy info=$%.2f\n", res.MeanPosteriorCost)
	fmt.Printf("EVPI=$%.2f (expected cost reduction)\n", res.EVPI)

	names := make([]string, 0, len(summary.PosteriorActionShare))
	for name := range summary.PosteriorActionShare {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println("\nInformed decision shares:")
	for _, name := range names {
		fmt.Printf("  %-20s %5.1f%%\n", name, 100*summary.PosteriorActionShare[name])
	}
}

func cmdCorrosion(args []string) {
	fs := flag.NewFlagSet("corrosion", flag.ExitOnError)
	dataPath := fs.String("data", "data/inspections.csv", "Path to inspection measurements CSV")
	iters := fs.Int("iters", 20000, "MCMC iterations")
	seed := fs.Int64("seed", 1, "MCMC seed")
	critical := fs.Float64("critical", 6.0, "Critical wall loss (mm)")
	horizon := fs.Float64("horizon", 25, "Planning horizon (years since install)")
	repairCost := fs.Float64("repair-cost", 5000, "Repair cost ($)")
	failureCost := fs.Float64("failure-cost", 60000, "Failure cost ($)")
	_ = fs.Parse(args)

	ms, err := corrosion.LoadMeasurementsCSV(*dataPath)
	if err != nil {
		panic(err)
	}

	post, err := corrosion.Fit(ms, corrosion.FitOptions{Iterations: *iters, Seed: *seed})
	if err != nil {
		panic(err)
	}

	fmt.Printf("Fit %d measurements: %d draws, accept rate %.2f\n",
		len(ms), len(post.Rate), float64(post.Accepted)/float64(post.Proposals))
	fmt.Printf("Posterior growth rate: %.4f mm/yr (intercept %.3f mm)\n", post.RateMean(), post.InterceptMean())

	plan, err := corrosion.EvaluatePlan(post, corrosion.InspectionPlan{
		CriticalDepthMM: *critical,
		HorizonYears:    *horizon,
		RepairCostUSD:   *repairCost,
		FailureCostUSD:  *failureCost,
	})
	if err != nil {
		panic(err)
	}

	fmt.Printf("\nP(wall loss > %.1fmm at year %.0f) = %.3f\n", *critical, *horizon, plan.FailureProbability)
	fmt.Printf("Repair now: $%.2f  Do nothing: $%.2f\n", plan.RepairNowCost, plan.DoNothingCost)
	fmt.Printf("Chosen: %s ($%.2f expected)\n", plan.ChosenAction, plan.ExpectedCost)
	fmt.Printf("Value of a perfect inspection: $%.2f\n", plan.InspectionValue)
}

// drawSamples builds the configured prior and draws the stratified sample.
func drawSamples(cfg *config.Config) []int {
	prior := buildPrior(cfg)
	samples, err := dist.StratifiedSample(prior, cfg.Sampling.Samples)
	if err != nil {
		panic(err)
	}
	return samples
}

func buildPrior(cfg *config.Config) dist.Discrete {
	switch cfg.Prior.Type {
	case "poisson":
		p, err := dist.NewPoisson(cfg.Prior.Mean)
		if err != nil {
			panic(err)
		}
		return p
	case "empirical":
		survey, err := data.LoadOccupancyJSON(cfg.Prior.ObservationsFile)
		if err != nil {
			panic(err)
		}
		e, err := dist.NewEmpirical(data.Counts(survey, cfg.Prior.Room))
		if err != nil {
			panic(err)
		}
		return e
	default:
		panic(fmt.Errorf("unsupported prior: %q", cfg.Prior.Type))
	}
}
