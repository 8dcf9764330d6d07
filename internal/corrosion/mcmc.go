package corrosion

import (
	"fmt"
	"math"
	"math/rand"
)

// FitOptions controls the random-walk Metropolis sampler.
type FitOptions struct {
	Iterations int     // total iterations before thinning (default 20000)
	BurnIn     int     // discarded leading iterations (default Iterations/4)
	Thin       int     // keep every Thin-th draw (default 5)
	Seed       int64   // deterministic chains for reproducible figures
	StepScale  float64 // proposal sd scale (default 0.1)

	// ConvergenceZ is the split-half drift threshold in Monte Carlo standard
	// errors above which the fit reports ErrNotConverged (default 5).
	ConvergenceZ float64
}

func (o *FitOptions) applyDefaults() {
	if o.Iterations <= 0 {
		o.Iterations = 20000
	}
	if o.BurnIn <= 0 {
		o.BurnIn = o.Iterations / 4
	}
	if o.Thin <= 0 {
		o.Thin = 5
	}
	if o.StepScale <= 0 {
		o.StepScale = 0.1
	}
	if o.ConvergenceZ <= 0 {
		o.ConvergenceZ = 5
	}
}

// Posterior holds thinned post-burn-in draws from the growth-model fit.
//
// The model: wallLoss_i ~ Normal(intercept + rate*years_i, sqrt(sd_i^2 + sigma^2)),
// with sigma an extra member-to-member scatter term. Missing depths are imputed
// from the posterior predictive at each kept iteration.
type Posterior struct {
	Intercept []float64
	Rate      []float64
	Sigma     []float64

	// ImputedMM[i] holds draws for the i-th missing measurement, in the order
	// missing rows appear in the input.
	ImputedMM [][]float64

	Accepted  int
	Proposals int
}

func (p *Posterior) RateMean() float64      { return mean(p.Rate) }
func (p *Posterior) InterceptMean() float64 { return mean(p.Intercept) }

// Fit runs a random-walk Metropolis chain over (intercept, rate, log sigma)
// and returns the posterior, or ErrNotConverged when the split-half
// diagnostic rejects the chain.
func Fit(ms []Measurement, opts FitOptions) (*Posterior, error) {
	if err := validateMeasurements(ms); err != nil {
		return nil, err
	}
	opts.applyDefaults()
	rng := rand.New(rand.NewSource(opts.Seed))

	// Least-squares-ish starting point from the observed rows.
	intercept, rate := roughLine(ms)
	logSigma := 0.0

	logPost := func(b0, b1, ls float64) float64 {
		sigma := math.Exp(ls)
		lp := 0.0
		for _, m := range ms {
			if m.Missing {
				continue
			}
			sd := math.Sqrt(m.ErrorSDMM*m.ErrorSDMM + sigma*sigma)
			z := (m.WallLossMM - b0 - b1*m.YearsSinceInstall) / sd
			lp += -0.5*z*z - math.Log(sd)
		}
		// Weakly informative priors keep the chain proper when data are thin.
		lp += -0.5 * (b0 / 10) * (b0 / 10)
		lp += -0.5 * (b1 / 10) * (b1 / 10)
		lp += -0.5 * (ls / 2) * (ls / 2)
		return lp
	}

	missing := make([]int, 0)
	for i, m := range ms {
		if m.Missing {
			missing = append(missing, i)
		}
	}

	post := &Posterior{ImputedMM: make([][]float64, len(missing))}
	cur := logPost(intercept, rate, logSigma)

	for iter := 0; iter < opts.Iterations; iter++ {
		// One joint random-walk proposal per iteration.
		pb0 := intercept + rng.NormFloat64()*opts.StepScale
		pb1 := rate + rng.NormFloat64()*opts.StepScale*0.1
		pls := logSigma + rng.NormFloat64()*opts.StepScale
		prop := logPost(pb0, pb1, pls)
		post.Proposals++
		if prop-cur > math.Log(rng.Float64()+1e-300) {
			intercept, rate, logSigma = pb0, pb1, pls
			cur = prop
			post.Accepted++
		}

		if iter < opts.BurnIn || (iter-opts.BurnIn)%opts.Thin != 0 {
			continue
		}

		post.Intercept = append(post.Intercept, intercept)
		post.Rate = append(post.Rate, rate)
		post.Sigma = append(post.Sigma, math.Exp(logSigma))
		// Posterior-predictive imputation for missing depths: given the
		// parameters, a missing row contributes nothing to the likelihood.
		for j, idx := range missing {
			m := ms[idx]
			sd := math.Sqrt(m.ErrorSDMM*m.ErrorSDMM + math.Exp(2*logSigma))
			draw := intercept + rate*m.YearsSinceInstall + rng.NormFloat64()*sd
			post.ImputedMM[j] = append(post.ImputedMM[j], draw)
		}
	}

	if len(post.Rate) < 20 {
		return nil, &FitError{Code: "TOO_FEW_DRAWS", Message: fmt.Sprintf("only %d posterior draws kept; increase iterations", len(post.Rate))}
	}
	if z := splitHalfZ(post.Rate); z > opts.ConvergenceZ {
		return nil, fmt.Errorf("rate chain split-half drift z=%.2f exceeds %.2f: %w", z, opts.ConvergenceZ, ErrNotConverged)
	}
	if z := splitHalfZ(post.Intercept); z > opts.ConvergenceZ {
		return nil, fmt.Errorf("intercept chain split-half drift z=%.2f exceeds %.2f: %w", z, opts.ConvergenceZ, ErrNotConverged)
	}
	return post, nil
}

// splitHalfZ compares first- and second-half means in units of a batch-means
// Monte Carlo standard error. Batch means absorb the chain's autocorrelation,
// so a stationary chain stays small while a drifting chain grows with its
// trend.
func splitHalfZ(draws []float64) float64 {
	half := len(draws) / 2
	m1, se1 := batchMeanSE(draws[:half])
	m2, se2 := batchMeanSE(draws[half:])
	se := math.Sqrt(se1*se1 + se2*se2)
	if se == 0 {
		return 0
	}
	return math.Abs(m1-m2) / se
}

func batchMeanSE(draws []float64) (m, se float64) {
	const batches = 10
	n := len(draws)
	if n < 2*batches {
		return mean(draws), stddev(draws) / math.Sqrt(float64(n))
	}
	size := n / batches
	bm := make([]float64, batches)
	for b := 0; b < batches; b++ {
		bm[b] = mean(draws[b*size : (b+1)*size])
	}
	return mean(draws[:batches*size]), stddev(bm) / math.Sqrt(batches)
}

func roughLine(ms []Measurement) (intercept, slope float64) {
	var sx, sy, sxx, sxy, n float64
	for _, m := range ms {
		if m.Missing {
			continue
		}
		sx += m.YearsSinceInstall
		sy += m.WallLossMM
		sxx += m.YearsSinceInstall * m.YearsSinceInstall
		sxy += m.YearsSinceInstall * m.WallLossMM
		n++
	}
	den := n*sxx - sx*sx
	if den == 0 {
		return sy / n, 0
	}
	slope = (n*sxy - sx*sy) / den
	intercept = (sy - slope*sx) / n
	return intercept, slope
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func stddev(xs []float64) float64 {
	m := mean(xs)
	sum := 0.0
	for _, x := range xs {
		sum += (x - m) * (x - m)
	}
	return math.Sqrt(sum / float64(len(xs)-1))
}
