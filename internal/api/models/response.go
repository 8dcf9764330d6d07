package models

// VoiResponse represents the response from a value-of-information run
type VoiResponse struct {
	Status  string      `json:"status"`
	Summary VoiSummary  `json:"summary"`
	Ledger  []LedgerRow `json:"ledger,omitempty"`
}

// VoiSummary contains the aggregated run results
type VoiSummary struct {
	Samples int    `json:"samples"`
	Prior   string `json:"prior"`

	PriorAction       string  `json:"prior_action"`
	PriorExpectedCost float64 `json:"prior_expected_cost"`
	MeanPosteriorCost float64 `json:"mean_posterior_cost"`

	// EVPI is reported as an expected cost reduction (non-negative up to
	// Monte Carlo error).
	EVPI float64 `json:"evpi"`

	CostByAction         []ActionCost       `json:"cost_by_action"`
	PosteriorActionShare map[string]float64 `json:"posterior_action_share,omitempty"`

	MinOccupancy  int     `json:"min_occupancy"`
	MaxOccupancy  int     `json:"max_occupancy"`
	MeanOccupancy float64 `json:"mean_occupancy"`
}

// ActionCost pairs an action with its prior expected total cost
type ActionCost struct {
	Action       string  `json:"action"`
	ExpectedCost float64 `json:"expected_cost"`
}

// LedgerRow represents one sample in the value-of-information ledger
type LedgerRow struct {
	Index           int     `json:"index"`
	Occupancy       int     `json:"occupancy"`
	PriorAction     string  `json:"prior_action"`
	PriorActionCost float64 `json:"prior_action_cost"`
	PosteriorAction string  `json:"posterior_action"`
	PosteriorCost   float64 `json:"posterior_cost"`
	InfectionProb   float64 `json:"infection_prob"`
	InformationGain float64 `json:"information_gain"`
}

// DecideResponse represents a single decision
type DecideResponse struct {
	Action       string       `json:"action"`
	ExpectedCost float64      `json:"expected_cost"`
	CostByAction []ActionCost `json:"cost_by_action"`
}

// CorrosionFitResponse represents the result of a growth-model fit
type CorrosionFitResponse struct {
	Status string `json:"status"`

	Draws         int     `json:"draws"`
	AcceptRate    float64 `json:"accept_rate"`
	RateMeanMM    float64 `json:"rate_mean_mm_per_year"`
	InterceptMean float64 `json:"intercept_mean_mm"`

	ImputedDepthMeansMM []float64 `json:"imputed_depth_means_mm,omitempty"`

	Plan *PlanResult `json:"plan,omitempty"`
}

// PlanResult reports the repair decision and inspection value
type PlanResult struct {
	FailureProbability float64 `json:"failure_probability"`
	RepairNowCost      float64 `json:"repair_now_cost"`
	DoNothingCost      float64 `json:"do_nothing_cost"`
	ChosenAction       string  `json:"chosen_action"`
	ExpectedCost       float64 `json:"expected_cost"`
	InspectionValue    float64 `json:"inspection_value"`
}

// RoomInfo represents information about a room preset
type RoomInfo struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	File  string    `json:"file"`
	Specs RoomSpecs `json:"specs"`
}

// RoomSpecs contains headline room parameters
type RoomSpecs struct {
	VolumeM3     float64 `json:"volume_m3"`
	HorizonHours float64 `json:"horizon_hours"`
}

// PriorInfo represents information about a supported prior
type PriorInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a prior parameter
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "float", "int", "string"
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
