package analysis

import (
	"math"
	"sort"

	"ventilation-voi/internal/decision"
)

// RunSummary is a run-level digest of a value-of-information ledger, suitable
// for ranking scenarios or printing a one-screen report. It carries both raw
// occupancy stats and the posterior cost spread.
type RunSummary struct {
	Count int

	MinOccupancy  int
	MaxOccupancy  int
	MeanOccupancy float64

	MeanPosteriorCost float64
	P05PosteriorCost  float64
	P95PosteriorCost  float64

	// PosteriorActionShare is the fraction of samples for which each action
	// would be chosen if the occupancy were known.
	PosteriorActionShare map[string]float64
}

func Summarize(ledger []decision.LedgerRow) RunSummary {
	s := RunSummary{PosteriorActionShare: map[string]float64{}}
	if len(ledger) == 0 {
		return s
	}
	s.Count = len(ledger)

	minOcc := math.MaxInt
	maxOcc := 0
	occSum := 0.0
	costs := make([]float64, 0, len(ledger))
	costSum := 0.0
	counts := map[string]int{}

	for _, r := range ledger {
		if r.Occupancy < minOcc {
			minOcc = r.Occupancy
		}
		if r.Occupancy > maxOcc {
			maxOcc = r.Occupancy
		}
		occSum += float64(r.Occupancy)
		costs = append(costs, r.PosteriorCost)
		costSum += r.PosteriorCost
		counts[r.PosteriorAction]++
	}
	sort.Float64s(costs)

	s.MinOccupancy = minOcc
	s.MaxOccupancy = maxOcc
	s.MeanOccupancy = occSum / float64(s.Count)
	s.MeanPosteriorCost = costSum / float64(s.Count)
	s.P05PosteriorCost = percentileSorted(costs, 0.05)
	s.P95PosteriorCost = percentileSorted(costs, 0.95)
	for name, c := range counts {
		s.PosteriorActionShare[name] = float64(c) / float64(s.Count)
	}
	return s
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
