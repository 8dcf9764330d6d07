package models

// VoiRequest represents the request body for a value-of-information run
type VoiRequest struct {
	Config  ScenarioConfig `json:"config" binding:"required"`
	Prior   PriorSpec      `json:"prior" binding:"required"`
	Options RunOptions     `json:"options,omitempty"`
}

// DecideRequest represents a single decision. If occupancy is set, the
// decision conditions on that known count; otherwise it uses the prior.
type DecideRequest struct {
	Config    ScenarioConfig `json:"config" binding:"required"`
	Prior     *PriorSpec     `json:"prior,omitempty"`
	Occupancy *int           `json:"occupancy,omitempty"`
	Options   RunOptions     `json:"options,omitempty"`
}

// ScenarioConfig contains room physics, the action set, and economics
type ScenarioConfig struct {
	RoomFile           string       `json:"room_file,omitempty"`
	Room               RoomSpec     `json:"room,omitempty"`
	Actions            []ActionSpec `json:"actions" binding:"required"`
	SickCostPerCaseUSD float64      `json:"sick_cost_per_case_usd"`
}

// RoomSpec defines room and exposure parameters
type RoomSpec struct {
	Name                   string  `json:"name,omitempty"`
	VolumeM3               float64 `json:"volume_m3"`
	BreathingRateM3PerHour float64 `json:"breathing_rate_m3_per_hour"`
	EmissionQuantaPerHour  float64 `json:"emission_quanta_per_hour"`
	InfectiousDoseQuanta   float64 `json:"infectious_dose_quanta"`
	HorizonHours           float64 `json:"horizon_hours"`
	Steps                  int     `json:"steps"`
}

// ActionSpec defines one ventilation action
type ActionSpec struct {
	Name            string  `json:"name" binding:"required"`
	FixedCostUSD    float64 `json:"fixed_cost_usd"`
	LossRatePerHour float64 `json:"loss_rate_per_hour"`
}

// PriorSpec selects the occupancy prior: "poisson" with a mean, or
// "empirical" with inline observed counts
type PriorSpec struct {
	Type         string  `json:"type" binding:"required"`
	Mean         float64 `json:"mean,omitempty"`
	Observations []int   `json:"observations,omitempty"`
}

// RunOptions contains optional run parameters
type RunOptions struct {
	Samples       int  `json:"samples,omitempty"`        // 0 = default (1000)
	IncludeLedger bool `json:"include_ledger,omitempty"` // default: false
}

// CorrosionFitRequest represents a corrosion growth-model fit request
type CorrosionFitRequest struct {
	Measurements []MeasurementSpec  `json:"measurements" binding:"required"`
	Plan         *PlanSpec          `json:"plan,omitempty"`
	Options      CorrosionFitOptions `json:"options,omitempty"`
}

// MeasurementSpec is one inspection record
type MeasurementSpec struct {
	WallLossMM        float64 `json:"wall_loss_mm"`
	ErrorSDMM         float64 `json:"error_sd_mm"`
	YearsSinceInstall float64 `json:"years"`
	Missing           bool    `json:"missing,omitempty"`
}

// PlanSpec frames the repair-now vs do-nothing decision
type PlanSpec struct {
	CriticalDepthMM float64 `json:"critical_depth_mm"`
	HorizonYears    float64 `json:"horizon_years"`
	RepairCostUSD   float64 `json:"repair_cost_usd"`
	FailureCostUSD  float64 `json:"failure_cost_usd"`
}

// CorrosionFitOptions controls the sampler
type CorrosionFitOptions struct {
	Iterations int   `json:"iterations,omitempty"`
	Seed       int64 `json:"seed,omitempty"`
}
