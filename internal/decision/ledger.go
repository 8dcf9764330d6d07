package decision

// LedgerRow is one row of per-sample output from a value-of-information run.
// This is the primary artifact for "what happened": which action the prior
// decision commits to, what the re-solved decision would do if this sample's
// occupancy were known, and how much knowing it is worth.
type LedgerRow struct {
	Index     int
	Occupancy int

	PriorAction     string
	PriorActionCost float64 // prior action's expected cost at this occupancy

	PosteriorAction string
	PosteriorCost   float64
	InfectionProb   float64 // per-person, under the posterior action

	InformationGain  float64 // PriorActionCost - PosteriorCost, >= 0 per row
	CumMeanPosterior float64
}

type Result struct {
	Ledger []LedgerRow

	Prior             Decision
	MeanPosteriorCost float64

	// EVPI is the expected value of perfect information: the prior expected
	// cost minus the sample-averaged re-solved expected cost, reported by
	// convention as a (non-negative) cost reduction.
	EVPI float64
}
