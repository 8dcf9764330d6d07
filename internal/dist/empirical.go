package dist

import (
	"fmt"
	"sort"
)

// Empirical is a count distribution built from observed occupancy counts,
// e.g. badge or sensor data loaded from a survey file.
type Empirical struct {
	counts map[int]int
	keys   []int // sorted support
	total  int
}

func NewEmpirical(observations []int) (*Empirical, error) {
	if len(observations) == 0 {
		return nil, fmt.Errorf("empirical distribution needs at least one observation")
	}
	counts := map[int]int{}
	for i, v := range observations {
		if v < 0 {
			return nil, fmt.Errorf("observation %d: count must be >= 0, got %d", i, v)
		}
		counts[v]++
	}
	keys := make([]int, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return &Empirical{counts: counts, keys: keys, total: len(observations)}, nil
}

func (e *Empirical) Name() string { return fmt.Sprintf("empirical(n=%d)", e.total) }

func (e *Empirical) PMF(k int) float64 {
	return float64(e.counts[k]) / float64(e.total)
}

func (e *Empirical) CDF(k int) float64 {
	sum := 0.0
	for _, v := range e.keys {
		if v > k {
			break
		}
		sum += e.PMF(v)
	}
	return sum
}

func (e *Empirical) Quantile(q float64) int {
	cum := 0.0
	for _, v := range e.keys {
		cum += e.PMF(v)
		if cum >= q {
			return v
		}
	}
	return e.keys[len(e.keys)-1]
}

func (e *Empirical) Mean() float64 {
	sum := 0.0
	for _, v := range e.keys {
		sum += float64(v) * e.PMF(v)
	}
	return sum
}
