package airborne

import (
	"fmt"
	"math"

	"ventilation-voi/internal/model"
)

// InfectionProbability maps an occupancy count and a total loss rate to the
// per-person probability of infection over the room's exposure horizon.
//
// The well-mixed-room concentration obeys
//
//	C' = occupancy*E/V - lossRate*C, C(0) = 0
//
// integrated on a fixed grid of room.Steps steps using the exact exponential
// update per step. The inhaled dose accumulates the exact per-step integral of
// breathingRate*C, and the result is the exponential dose-response law
// 1 - exp(-dose/D). Deterministic given inputs; the step count is part of the
// contract, so two runs with the same parameters match bit-for-bit.
func InfectionProbability(occupancy int, lossRatePerHour float64, room model.RoomParams) (float64, error) {
	if err := room.Validate(); err != nil {
		return 0, err
	}
	if occupancy < 0 {
		return 0, fmt.Errorf("occupancy must be >= 0, got %d", occupancy)
	}
	if lossRatePerHour <= 0 || math.IsNaN(lossRatePerHour) {
		return 0, fmt.Errorf("loss rate must be > 0, got %v", lossRatePerHour)
	}
	if occupancy == 0 {
		return 0, nil
	}

	source := float64(occupancy) * room.EmissionQuantaPerHour / room.VolumeM3 // quanta/(m^3 h)
	ceq := source / lossRatePerHour                                           // steady-state concentration
	dt := room.HorizonHours / float64(room.Steps)
	decay := math.Exp(-lossRatePerHour * dt)

	conc := 0.0
	dose := 0.0
	for k := 0; k < room.Steps; k++ {
		// Exact integral of C over [t, t+dt] given C(t) = conc.
		integral := ceq*dt + (conc-ceq)*(1-decay)/lossRatePerHour
		dose += room.BreathingRateM3PerHour * integral
		conc = ceq + (conc-ceq)*decay
	}

	p := 1 - math.Exp(-dose/room.InfectiousDoseQuanta)
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return p, nil
}
