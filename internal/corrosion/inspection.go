package corrosion

import (
	"errors"
	"fmt"
)

// InspectionPlan frames the repair decision for one member:
// repair now at a fixed cost, or leave it and carry the expected failure cost
// if projected wall loss exceeds the critical depth at the planning horizon.
type InspectionPlan struct {
	CriticalDepthMM float64
	HorizonYears    float64 // years past installation at which failure matters
	RepairCostUSD   float64
	FailureCostUSD  float64
}

func (p InspectionPlan) Validate() error {
	if p.CriticalDepthMM <= 0 {
		return errors.New("CriticalDepthMM must be > 0")
	}
	if p.HorizonYears <= 0 {
		return errors.New("HorizonYears must be > 0")
	}
	if p.RepairCostUSD < 0 || p.FailureCostUSD < 0 {
		return errors.New("costs must be >= 0")
	}
	return nil
}

// PlanResult reports the repair decision and the value of a perfect
// inspection, using the same prior-minus-preposterior convention as the
// ventilation case.
type PlanResult struct {
	FailureProbability float64

	RepairNowCost   float64
	DoNothingCost   float64
	ChosenAction    string // "REPAIR_NOW" or "DO_NOTHING"
	ExpectedCost    float64
	InspectionValue float64 // expected cost reduction from a perfect inspection
}

// EvaluatePlan decides repair-now vs do-nothing against posterior growth
// draws, and computes the expected value of perfectly observing the member's
// true trajectory before deciding.
func EvaluatePlan(post *Posterior, plan InspectionPlan) (*PlanResult, error) {
	if post == nil || len(post.Rate) == 0 {
		return nil, &FitError{Code: "EMPTY_POSTERIOR", Message: "no posterior draws to evaluate"}
	}
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("plan invalid: %w", err)
	}

	exceed := 0
	preposteriorSum := 0.0
	for i := range post.Rate {
		depth := post.Intercept[i] + post.Rate[i]*plan.HorizonYears
		fails := depth > plan.CriticalDepthMM
		if fails {
			exceed++
		}
		// With the trajectory known, do-nothing costs either 0 or the full
		// failure cost; the informed decision takes the cheaper branch.
		informed := plan.RepairCostUSD
		if !fails {
			informed = 0
		} else if plan.FailureCostUSD < plan.RepairCostUSD {
			informed = plan.FailureCostUSD
		}
		preposteriorSum += informed
	}

	n := float64(len(post.Rate))
	pFail := float64(exceed) / n

	res := &PlanResult{
		FailureProbability: pFail,
		RepairNowCost:      plan.RepairCostUSD,
		DoNothingCost:      pFail * plan.FailureCostUSD,
	}
	if res.RepairNowCost <= res.DoNothingCost {
		res.ChosenAction = "REPAIR_NOW"
		res.ExpectedCost = res.RepairNowCost
	} else {
		res.ChosenAction = "DO_NOTHING"
		res.ExpectedCost = res.DoNothingCost
	}
	res.InspectionValue = res.ExpectedCost - preposteriorSum/n
	return res, nil
}
