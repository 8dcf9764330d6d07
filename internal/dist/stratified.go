package dist

import "fmt"

// StratifiedSample draws a deterministic, space-filling sample of size n from
// a discrete distribution by evaluating its quantile function at the stratum
// midpoints (i+0.5)/n. Compared to pseudo-random draws this reduces Monte
// Carlo variance in downstream expected-cost estimates and makes runs
// reproducible without seeding.
//
// The output is ordered (non-decreasing) because the quantile function is.
func StratifiedSample(d Discrete, n int) ([]int, error) {
	if d == nil {
		return nil, fmt.Errorf("distribution is nil")
	}
	if n <= 0 {
		return nil, fmt.Errorf("sample count must be > 0, got %d", n)
	}
	out := make([]int, n)
	for i := 0; i < n; i++ {
		q := (float64(i) + 0.5) / float64(n)
		out[i] = d.Quantile(q)
	}
	return out, nil
}
