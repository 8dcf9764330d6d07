package decision

import (
	"fmt"

	"ventilation-voi/internal/model"
)

type Engine struct{}

func New() *Engine { return &Engine{} }

// Run executes the full preposterior analysis over a sampled occupancy prior:
// one "no data" decision against the whole sample, then a re-solved decision
// per sample value treated as known with certainty. EVPI is the difference of
// the two expected costs.
func (e *Engine) Run(samples []int, sc model.Scenario) (*Result, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("no occupancy samples")
	}

	ev, err := NewEvaluator(sc)
	if err != nil {
		return nil, err
	}

	priorWeights := WeightsFromSamples(samples)
	prior, err := ev.Decide(priorWeights)
	if err != nil {
		return nil, fmt.Errorf("prior decision: %w", err)
	}

	ledger := make([]LedgerRow, 0, len(samples))
	sumPosterior := 0.0

	for idx, occ := range samples {
		point := []Weighted{{Occupancy: occ, Weight: 1}}

		post, err := ev.Decide(point)
		if err != nil {
			return nil, fmt.Errorf("sample %d (occupancy %d): %w", idx, occ, err)
		}
		priorActionCost := post.CostByAction[prior.ActionIndex]
		infProb, err := ev.InfectionProbability(post.ActionIndex, occ)
		if err != nil {
			return nil, fmt.Errorf("sample %d (occupancy %d): %w", idx, occ, err)
		}

		sumPosterior += post.ExpectedCost

		ledger = append(ledger, LedgerRow{
			Index:     idx,
			Occupancy: occ,

			PriorAction:     prior.Action.Name,
			PriorActionCost: priorActionCost,

			PosteriorAction: post.Action.Name,
			PosteriorCost:   post.ExpectedCost,
			InfectionProb:   infProb,

			InformationGain:  priorActionCost - post.ExpectedCost,
			CumMeanPosterior: sumPosterior / float64(idx+1),
		})
	}

	meanPosterior := sumPosterior / float64(len(samples))
	return &Result{
		Ledger:            ledger,
		Prior:             prior,
		MeanPosteriorCost: meanPosterior,
		EVPI:              prior.ExpectedCost - meanPosterior,
	}, nil
}
