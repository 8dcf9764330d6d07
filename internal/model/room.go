package model

import (
	"errors"
)

// RoomParams defines the physical and exposure parameters of a shared room.
// Units:
// - VolumeM3: m^3
// - BreathingRateM3PerHour: m^3/h inhaled per occupant
// - EmissionQuantaPerHour: expected quanta/h emitted per occupant (prevalence-scaled)
// - InfectiousDoseQuanta: quanta scale of the exponential dose-response law
// - HorizonHours: exposure duration in hours
// - Steps: number of fixed time steps used to integrate the concentration ODE
type RoomParams struct {
	VolumeM3               float64
	BreathingRateM3PerHour float64
	EmissionQuantaPerHour  float64
	InfectiousDoseQuanta   float64
	HorizonHours           float64
	Steps                  int
}

func (p RoomParams) Validate() error {
	if p.VolumeM3 <= 0 {
		return errors.New("VolumeM3 must be > 0")
	}
	if p.BreathingRateM3PerHour <= 0 {
		return errors.New("BreathingRateM3PerHour must be > 0")
	}
	if p.EmissionQuantaPerHour <= 0 {
		return errors.New("EmissionQuantaPerHour must be > 0")
	}
	if p.InfectiousDoseQuanta <= 0 {
		return errors.New("InfectiousDoseQuanta must be > 0")
	}
	if p.HorizonHours <= 0 {
		return errors.New("HorizonHours must be > 0")
	}
	if p.Steps <= 0 {
		return errors.New("Steps must be > 0")
	}
	return nil
}
