package main

import (
	"flag"
	"fmt"

	"ventilation-voi/internal/config"
	"ventilation-voi/internal/decision"
	"ventilation-voi/internal/dist"
	"ventilation-voi/internal/model"
)

// Demo:
// - Build the canonical lecture-hall scenario (or load one via --config)
// - Draw a stratified occupancy sample
// - Run the preposterior analysis and show the first rows of the ledger
func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	n := flag.Int("n", 1000, "Number of stratified occupancy samples")
	outCSV := flag.String("out", "", "Optional path to write ledger CSV (e.g. results/voi.csv)")
	flag.Parse()

	// Defaults (can be overridden via --config).
	sc := model.Scenario{
		Room: model.RoomParams{
			VolumeM3:               300,
			BreathingRateM3PerHour: 0.5,
			EmissionQuantaPerHour:  0.05,
			InfectiousDoseQuanta:   1.0,
			HorizonHours:           8,
			Steps:                  96,
		},
		Actions: []model.VentilationAction{
			{Name: "Poorly_Ventilated", FixedCostUSD: 5, LossRatePerHour: 1.17},
			{Name: "Standard", FixedCostUSD: 30, LossRatePerHour: 3.87},
			{Name: "Well_Ventilated", FixedCostUSD: 45, LossRatePerHour: 6.87},
			{Name: "Hospital_Grade", FixedCostUSD: 90, LossRatePerHour: 12.87},
		},
		SickCostPerCase: 345,
	}
	var prior dist.Discrete
	prior, err := dist.NewPoisson(30)
	if err != nil {
		panic(err)
	}

	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
		sc, err = cfg.ToScenario()
		if err != nil {
			panic(err)
		}
		if cfg.Prior.Type != "poisson" {
			panic(fmt.Errorf("unsupported prior in demo: %q", cfg.Prior.Type))
		}
		prior, err = dist.NewPoisson(cfg.Prior.Mean)
		if err != nil {
			panic(err)
		}
	}

	samples, err := dist.StratifiedSample(prior, *n)
	if err != nil {
		panic(err)
	}

	engine := decision.New()
	result, err := engine.Run(samples, sc)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Prior=%s, %d stratified samples\n", prior.Name(), len(samples))
	fmt.Printf("Prior decision: %s ($%.2f expected)\n\n", result.Prior.Action.Name, result.Prior.ExpectedCost)

	for i := 0; i < min(12, len(result.Ledger)); i++ {
		r := result.Ledger[i]
		fmt.Printf(
			"occ=%3d  prior=%-17s $%7.2f  informed=%-17s $%7.2f  p(inf)=%.4f  gain=%6.2f\n",
			r.Occupancy,
			r.PriorAction,
			r.PriorActionCost,
			r.PosteriorAction,
			r.PosteriorCost,
			r.InfectionProb,
			r.InformationGain,
		)
	}

	if *outCSV != "" {
		if err := decision.WriteLedgerCSV(*outCSV, result.Ledger); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote CSV: %s\n", *outCSV)
	}

	fmt.Printf("\nDone. Mean informed cost=$%.2f  EVPI=$%.2f\n", result.MeanPosteriorCost, result.EVPI)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
