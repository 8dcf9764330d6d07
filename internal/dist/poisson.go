package dist

import (
	"fmt"
	"math"
)

// Poisson is a Poisson count distribution with the given mean.
type Poisson struct {
	Lambda float64
}

// NewPoisson validates the rate parameter.
func NewPoisson(lambda float64) (Poisson, error) {
	if lambda <= 0 || math.IsInf(lambda, 0) || math.IsNaN(lambda) {
		return Poisson{}, fmt.Errorf("poisson mean must be a positive finite number, got %v", lambda)
	}
	return Poisson{Lambda: lambda}, nil
}

func (p Poisson) Name() string { return fmt.Sprintf("poisson(%.3g)", p.Lambda) }

func (p Poisson) PMF(k int) float64 {
	if k < 0 {
		return 0
	}
	// Log-space to stay stable for large k / lambda.
	lg, _ := math.Lgamma(float64(k) + 1)
	return math.Exp(float64(k)*math.Log(p.Lambda) - p.Lambda - lg)
}

func (p Poisson) CDF(k int) float64 {
	if k < 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i <= k; i++ {
		sum += p.PMF(i)
	}
	if sum > 1 {
		return 1
	}
	return sum
}

// Quantile scans the cumulative mass. The scan is bounded well past the mean
// so pathological p values close to 1 still terminate.
func (p Poisson) Quantile(q float64) int {
	if q <= 0 {
		return 0
	}
	limit := int(p.Lambda + 20*math.Sqrt(p.Lambda) + 20)
	cum := 0.0
	for k := 0; k <= limit; k++ {
		cum += p.PMF(k)
		if cum >= q {
			return k
		}
	}
	return limit
}

func (p Poisson) Mean() float64 { return p.Lambda }
