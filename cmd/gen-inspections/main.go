package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"ventilation-voi/internal/corrosion"
)

// Generates a synthetic inspection measurement CSV for the corrosion case
// study: linear wall-loss growth plus tool noise, with a few missing readings.
func main() {
	outPath := flag.String("out", "data/inspections.csv", "Output CSV path")
	n := flag.Int("n", 24, "Number of inspection records")
	rate := flag.Float64("rate", 0.18, "True growth rate (mm/yr)")
	intercept := flag.Float64("intercept", 0.4, "Initial wall loss (mm)")
	noise := flag.Float64("noise", 0.25, "Measurement noise sd (mm)")
	missingEvery := flag.Int("missing-every", 7, "Mark every k-th record as missing (0=none)")
	seed := flag.Int64("seed", 42, "RNG seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	ms := make([]corrosion.Measurement, 0, *n)
	for i := 0; i < *n; i++ {
		years := 2 + rng.Float64()*20
		m := corrosion.Measurement{
			ErrorSDMM:         *noise,
			YearsSinceInstall: years,
		}
		if *missingEvery > 0 && (i+1)%*missingEvery == 0 {
			m.Missing = true
		} else {
			m.WallLossMM = *intercept + *rate*years + rng.NormFloat64()**noise
			if m.WallLossMM < 0 {
				m.WallLossMM = 0
			}
		}
		ms = append(ms, m)
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	if err := corrosion.WriteMeasurementsCSV(*outPath, ms); err != nil {
		panic(err)
	}
	fmt.Printf("Wrote %d records to %s (true rate %.3f mm/yr)\n", len(ms), *outPath, *rate)
}
