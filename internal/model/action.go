package model

import (
	"errors"
	"fmt"
)

// VentilationAction is one member of the finite action set: a named ventilation
// level with a fixed running cost and a total first-order loss rate.
//
// LossRatePerHour bundles air changes + deposition + viral decay (1/h).
// Keep Name values stable; they are intended for CSV and JSON output.
type VentilationAction struct {
	Name            string  `json:"name" yaml:"name"`
	FixedCostUSD    float64 `json:"fixed_cost_usd" yaml:"fixed_cost_usd"`
	LossRatePerHour float64 `json:"loss_rate_per_hour" yaml:"loss_rate_per_hour"`
}

// ValidateActions checks an action set for use by the decision evaluator.
// Order matters: ties are broken by the first-listed action.
func ValidateActions(actions []VentilationAction) error {
	if len(actions) == 0 {
		return errors.New("action set must not be empty")
	}
	seen := map[string]bool{}
	for i, a := range actions {
		if a.Name == "" {
			return fmt.Errorf("action %d: Name is required", i)
		}
		if seen[a.Name] {
			return fmt.Errorf("action %q listed twice", a.Name)
		}
		seen[a.Name] = true
		if a.FixedCostUSD < 0 {
			return fmt.Errorf("action %q: FixedCostUSD must be >= 0", a.Name)
		}
		if a.LossRatePerHour <= 0 {
			return fmt.Errorf("action %q: LossRatePerHour must be > 0", a.Name)
		}
	}
	return nil
}
