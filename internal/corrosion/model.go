package corrosion

import (
	"errors"
	"fmt"
)

// Measurement is one inspection record of wall loss on a structural member.
// Missing marks a scheduled inspection whose depth reading was unusable; the
// fit imputes those depths from the growth model.
type Measurement struct {
	WallLossMM        float64
	ErrorSDMM         float64 // measurement-error magnitude reported by the tool
	YearsSinceInstall float64
	Missing           bool
}

// FitError is a distinct, reportable failure from the growth-model fit.
type FitError struct {
	Code    string
	Message string
}

func (e *FitError) Error() string { return e.Message }

// ErrNotConverged is returned (wrapped in a FitError via errors.Is-compatible
// chaining) when the sampler's convergence diagnostic fails. Non-convergence
// is fatal to the run, never silently treated as a usable posterior.
var ErrNotConverged = errors.New("sampler did not converge")

func validateMeasurements(ms []Measurement) error {
	if len(ms) < 3 {
		return &FitError{Code: "TOO_FEW_MEASUREMENTS", Message: fmt.Sprintf("need at least 3 measurements, got %d", len(ms))}
	}
	observed := 0
	for i, m := range ms {
		if m.ErrorSDMM <= 0 {
			return &FitError{Code: "INVALID_MEASUREMENT", Message: fmt.Sprintf("measurement %d: error sd must be > 0", i)}
		}
		if m.YearsSinceInstall < 0 {
			return &FitError{Code: "INVALID_MEASUREMENT", Message: fmt.Sprintf("measurement %d: years must be >= 0", i)}
		}
		if !m.Missing {
			if m.WallLossMM < 0 {
				return &FitError{Code: "INVALID_MEASUREMENT", Message: fmt.Sprintf("measurement %d: wall loss must be >= 0", i)}
			}
			observed++
		}
	}
	if observed < 2 {
		return &FitError{Code: "TOO_FEW_MEASUREMENTS", Message: "need at least 2 non-missing depths to identify the growth rate"}
	}
	return nil
}
