package model

import (
	"errors"
	"fmt"
)

// Scenario bundles everything the decision engine consumes for one run:
// room physics, the candidate action set, and the economic constants.
type Scenario struct {
	Room            RoomParams
	Actions         []VentilationAction
	SickCostPerCase float64 // $ per infection (lost sick days)
}

func (s Scenario) Validate() error {
	if err := s.Room.Validate(); err != nil {
		return fmt.Errorf("room invalid: %w", err)
	}
	if err := ValidateActions(s.Actions); err != nil {
		return fmt.Errorf("actions invalid: %w", err)
	}
	if s.SickCostPerCase < 0 {
		return errors.New("SickCostPerCase must be >= 0")
	}
	return nil
}
