package decision

import (
	"fmt"
	"math"

	"ventilation-voi/internal/airborne"
	"ventilation-voi/internal/dist"
	"ventilation-voi/internal/model"
)

// EvalError is a distinct, reportable evaluation failure. It replaces the
// silent-zero behavior a solver wrapper could fall into: a non-finite expected
// cost aborts the run with a code the API layer can surface.
type EvalError struct {
	Code    string
	Message string
}

func (e *EvalError) Error() string { return e.Message }

// Weighted is one occupancy realization with its probability weight.
type Weighted struct {
	Occupancy int
	Weight    float64
}

// WeightsFromSamples turns a (stratified) sample into equal-weight scenario
// weights, collapsing duplicate occupancy values.
func WeightsFromSamples(samples []int) []Weighted {
	if len(samples) == 0 {
		return nil
	}
	counts := map[int]int{}
	order := make([]int, 0, len(samples))
	for _, s := range samples {
		if counts[s] == 0 {
			order = append(order, s)
		}
		counts[s]++
	}
	w := 1.0 / float64(len(samples))
	out := make([]Weighted, 0, len(order))
	for _, occ := range order {
		out = append(out, Weighted{Occupancy: occ, Weight: float64(counts[occ]) * w})
	}
	return out
}

// Decision is the outcome of a single-stage expected-cost minimization.
type Decision struct {
	Action       model.VentilationAction
	ActionIndex  int
	ExpectedCost float64
	// CostByAction holds the expected total cost for every action, in the
	// order the action set lists them.
	CostByAction []float64
}

// Evaluator computes expected costs for a fixed scenario. Infection
// probabilities are memoized per (action, occupancy) pair because the
// preposterior loop re-evaluates the same pairs for every sample.
type Evaluator struct {
	scenario model.Scenario
	probs    *probCache
}

func NewEvaluator(sc model.Scenario) (*Evaluator, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{scenario: sc, probs: newProbCache()}, nil
}

func (e *Evaluator) Scenario() model.Scenario { return e.scenario }

// InfectionProbability returns the (cached) per-person infection probability
// for one action at one occupancy count.
func (e *Evaluator) InfectionProbability(actionIdx, occupancy int) (float64, error) {
	if actionIdx < 0 || actionIdx >= len(e.scenario.Actions) {
		return 0, fmt.Errorf("action index %d out of range", actionIdx)
	}
	if p, ok := e.probs.Get(actionIdx, occupancy); ok {
		return p, nil
	}
	p, err := airborne.InfectionProbability(occupancy, e.scenario.Actions[actionIdx].LossRatePerHour, e.scenario.Room)
	if err != nil {
		return 0, err
	}
	e.probs.Set(actionIdx, occupancy, p)
	return p, nil
}

// ExpectedCost returns fixed action cost plus the expected sickness cost under
// the given occupancy weights. The sickness expectation is taken over the full
// binomial infection-count distribution for each occupancy realization.
func (e *Evaluator) ExpectedCost(actionIdx int, occ []Weighted) (float64, error) {
	if len(occ) == 0 {
		return 0, &EvalError{Code: "EMPTY_DISTRIBUTION", Message: "occupancy distribution has no mass"}
	}
	a := e.scenario.Actions[actionIdx]
	cost := a.FixedCostUSD
	for _, w := range occ {
		if w.Weight == 0 {
			continue
		}
		p, err := e.InfectionProbability(actionIdx, w.Occupancy)
		if err != nil {
			return 0, err
		}
		pmf, err := dist.BinomialPMF(w.Occupancy, p)
		if err != nil {
			return 0, err
		}
		cost += w.Weight * dist.BinomialMean(pmf) * e.scenario.SickCostPerCase
	}
	if math.IsNaN(cost) || math.IsInf(cost, 0) {
		return 0, &EvalError{
			Code:    "NONFINITE_COST",
			Message: fmt.Sprintf("expected cost for action %q is not finite", a.Name),
		}
	}
	return cost, nil
}

// Decide enumerates the action set and returns the expected-cost minimizer.
// Ties go to the first-listed action.
func (e *Evaluator) Decide(occ []Weighted) (Decision, error) {
	costs := make([]float64, len(e.scenario.Actions))
	best := 0
	for i := range e.scenario.Actions {
		c, err := e.ExpectedCost(i, occ)
		if err != nil {
			return Decision{}, err
		}
		costs[i] = c
		if c < costs[best] {
			best = i
		}
	}
	return Decision{
		Action:       e.scenario.Actions[best],
		ActionIndex:  best,
		ExpectedCost: costs[best],
		CostByAction: costs,
	}, nil
}
