package dist

import (
	"fmt"
	"math"
)

// BinomialPMF returns the probability mass over {0, ..., n} for the number of
// successes among n independent trials with per-trial probability p.
func BinomialPMF(n int, p float64) ([]float64, error) {
	if n < 0 {
		return nil, fmt.Errorf("population size must be >= 0, got %d", n)
	}
	if p < 0 || p > 1 || math.IsNaN(p) {
		return nil, fmt.Errorf("probability must be in [0,1], got %v", p)
	}
	pmf := make([]float64, n+1)
	switch {
	case p == 0:
		pmf[0] = 1
	case p == 1:
		pmf[n] = 1
	default:
		// Log-space binomial coefficients via Lgamma.
		lgN, _ := math.Lgamma(float64(n) + 1)
		lp := math.Log(p)
		lq := math.Log(1 - p)
		for k := 0; k <= n; k++ {
			lgK, _ := math.Lgamma(float64(k) + 1)
			lgNK, _ := math.Lgamma(float64(n-k) + 1)
			pmf[k] = math.Exp(lgN - lgK - lgNK + float64(k)*lp + float64(n-k)*lq)
		}
	}
	return pmf, nil
}

// BinomialMean returns the expectation of a pmf produced by BinomialPMF.
func BinomialMean(pmf []float64) float64 {
	sum := 0.0
	for k, w := range pmf {
		sum += float64(k) * w
	}
	return sum
}
