package dist

// Discrete is a probability distribution over non-negative integer counts.
type Discrete interface {
	Name() string
	// PMF returns P(X = k). Zero for k < 0 or outside the support.
	PMF(k int) float64
	// CDF returns P(X <= k).
	CDF(k int) float64
	// Quantile returns the smallest k with CDF(k) >= p, for p in (0,1).
	Quantile(p float64) int
	// Mean returns E[X].
	Mean() float64
}
