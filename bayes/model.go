package bayes

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/arloliu/segfit/internal/options"
	"github.com/arloliu/segfit/internal/pool"
	"github.com/arloliu/segfit/regression"
)

// Draw is one posterior draw of the regression parameters.
type Draw struct {
	Intercept float64
	Slope     float64
	Sigma     float64
}

// Interval summarizes a posterior quantity by its median and credible bounds.
type Interval struct {
	Median float64
	Lower  float64
	Upper  float64
}

// Model is a Bayesian linear fit of y = a + b*t(x) under the conjugate
// normal-inverse-gamma prior.
type Model struct {
	// Intercept and Slope are the posterior means of a and b.
	Intercept float64
	Slope     float64
	// Sigma is the posterior mean of the residual standard deviation.
	Sigma float64
	// R2 is the Bayesian R²: explained-to-total variance ratio per posterior
	// draw, summarized by median and credible interval.
	R2 Interval
	// Draws holds the posterior draws the summaries were computed from.
	Draws []Draw
	// N is the number of observations the model was fitted on.
	N int

	level float64
	logX  bool
}

// Fit fits a single (unsegmented) Bayesian linear model of y on x.
//
// Rows with missing values are dropped under the same policy as the regression
// package. Fewer than two usable rows, or zero predictor variance, return
// regression.ErrInsufficientData.
func Fit(x, y []float64, opts ...Option) (*Model, error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	xs, ys, err := cleanXY(x, y, cfg.LogX)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, 0))

	return fitConjugate(transform(xs, cfg.LogX), ys, cfg, rng)
}

// Predict evaluates the posterior mean function at x on the original scale.
func (m *Model) Predict(x float64) float64 {
	z := x
	if m.logX {
		if x <= 0 {
			return math.NaN()
		}
		z = math.Log(x)
	}

	return m.Intercept + m.Slope*z
}

// PredictInterval evaluates the posterior mean function at x per draw and
// returns its median and credible bounds. This is the credible band of the
// fitted mean, not the posterior predictive of a new observation.
func (m *Model) PredictInterval(x float64) Interval {
	z := x
	if m.logX {
		z = math.Log(x)
	}

	vals, cleanup := pool.GetFloat64Slice(len(m.Draws))
	defer cleanup()
	for i, d := range m.Draws {
		vals[i] = d.Intercept + d.Slope*z
	}

	return summarize(vals, m.level)
}

// Formula returns a human-readable representation of the posterior mean model.
func (m *Model) Formula() string {
	if m.logX {
		return fmt.Sprintf("y = %.4f + %.4f * ln(x)", m.Intercept, m.Slope)
	}

	return fmt.Sprintf("y = %.4f + %.4f * x", m.Intercept, m.Slope)
}

// String returns a string representation of the model.
func (m *Model) String() string {
	return fmt.Sprintf("Model{N: %d, R²: %.4f [%.4f, %.4f], Formula: %s}",
		m.N, m.R2.Median, m.R2.Lower, m.R2.Upper, m.Formula())
}

// fitConjugate computes the normal-inverse-gamma posterior on the already
// transformed predictor z and samples cfg.Draws parameter draws.
//
// Posterior (zero prior mean, prior precision I/g):
//
//	P_n = X'X + I/g
//	m_n = P_n⁻¹ X'y
//	a_n = a0 + n/2
//	b_n = b0 + (y'y - m_n' P_n m_n) / 2
//
// sigma² draws come from the inverse-gamma(a_n, b_n); coefficient draws from
// N(m_n, sigma² P_n⁻¹).
func fitConjugate(z, y []float64, cfg Config, rng *rand.Rand) (*Model, error) {
	n := len(z)
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 observations, got %d", regression.ErrInsufficientData, n)
	}
	if !hasVariance(z) {
		return nil, fmt.Errorf("%w: predictor has zero variance across %d observations", regression.ErrInsufficientData, n)
	}

	// Accumulate X'X, X'y, y'y for the [1, z] design.
	var sumZ, sumZ2, sumY, sumZY, sumY2 float64
	for i := range z {
		sumZ += z[i]
		sumZ2 += z[i] * z[i]
		sumY += y[i]
		sumZY += z[i] * y[i]
		sumY2 += y[i] * y[i]
	}

	tau := 1.0 / cfg.PriorScale
	prec := mat.NewSymDense(2, []float64{
		float64(n) + tau, sumZ,
		sumZ, sumZ2 + tau,
	})

	var chol mat.Cholesky
	if ok := chol.Factorize(prec); !ok {
		return nil, fmt.Errorf("%w: posterior precision is not positive definite", regression.ErrInsufficientData)
	}

	xty := mat.NewVecDense(2, []float64{sumY, sumZY})
	var mn mat.VecDense
	if err := chol.SolveVecTo(&mn, xty); err != nil {
		return nil, fmt.Errorf("posterior mean solve failed: %w", err)
	}

	// b_n = b0 + (y'y - m_n' P_n m_n)/2; the quadratic form reuses X'y since
	// P_n m_n = X'y.
	quad := mn.AtVec(0)*sumY + mn.AtVec(1)*sumZY
	an := cfg.PriorShape + float64(n)/2
	bn := cfg.PriorRate + (sumY2-quad)/2
	if bn <= 0 {
		// Exact fits can round the residual mass below zero.
		bn = cfg.PriorRate
	}

	// Covariance factor for coefficient draws: V_n = P_n⁻¹, sampled via the
	// lower Cholesky factor of V_n.
	var vn mat.SymDense
	if err := chol.InverseTo(&vn); err != nil {
		return nil, fmt.Errorf("posterior covariance inversion failed: %w", err)
	}
	var vnChol mat.Cholesky
	if ok := vnChol.Factorize(&vn); !ok {
		return nil, fmt.Errorf("%w: posterior covariance is not positive definite", regression.ErrInsufficientData)
	}
	var lower mat.TriDense
	vnChol.LTo(&lower)

	gamma := distuv.Gamma{Alpha: an, Beta: bn, Src: rng}
	norm := distuv.Normal{Mu: 0, Sigma: 1, Src: rng}

	draws := make([]Draw, cfg.Draws)
	varZ := stat.Variance(z, nil)
	r2s, r2Cleanup := pool.GetFloat64Slice(cfg.Draws)
	defer r2Cleanup()
	sigmaSum := 0.0

	for i := range draws {
		// sigma² ~ InvGamma(a_n, b_n) via the reciprocal of a Gamma(a_n, rate b_n) draw.
		sigma2 := 1.0 / gamma.Rand()
		sigma := math.Sqrt(sigma2)

		z0 := norm.Rand()
		z1 := norm.Rand()
		draws[i] = Draw{
			Intercept: mn.AtVec(0) + sigma*(lower.At(0, 0)*z0),
			Slope:     mn.AtVec(1) + sigma*(lower.At(1, 0)*z0+lower.At(1, 1)*z1),
			Sigma:     sigma,
		}
		sigmaSum += sigma

		// Bayesian R² for this draw: Var(fit)/(Var(fit)+sigma²), with
		// Var(fit) = slope² * Var(z) for a single-predictor linear fit.
		fitVar := draws[i].Slope * draws[i].Slope * varZ
		r2s[i] = fitVar / (fitVar + sigma2)
	}

	return &Model{
		Intercept: mn.AtVec(0),
		Slope:     mn.AtVec(1),
		Sigma:     sigmaSum / float64(cfg.Draws),
		R2:        summarize(r2s, cfg.CredibleLevel),
		Draws:     draws,
		N:         n,
		level:     cfg.CredibleLevel,
		logX:      cfg.LogX,
	}, nil
}

// summarize sorts a copy-free scratch slice in place and reports its median and
// equal-tailed credible bounds at the given level.
func summarize(vals []float64, level float64) Interval {
	sort.Float64s(vals)
	alpha := (1 - level) / 2

	return Interval{
		Median: stat.Quantile(0.5, stat.Empirical, vals, nil),
		Lower:  stat.Quantile(alpha, stat.Empirical, vals, nil),
		Upper:  stat.Quantile(1-alpha, stat.Empirical, vals, nil),
	}
}

// cleanXY mirrors the regression package's missing-data policy: drop rows where
// x or y is not finite, and rows with non-positive x under the log transform.
func cleanXY(x, y []float64, logX bool) (xs, ys []float64, err error) {
	if len(x) != len(y) {
		return nil, nil, fmt.Errorf("mismatched data lengths: %d x vs %d y", len(x), len(y))
	}

	xs = make([]float64, 0, len(x))
	ys = make([]float64, 0, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) || math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			continue
		}
		if logX && x[i] <= 0 {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}

	return xs, ys, nil
}

func transform(x []float64, logX bool) []float64 {
	z := make([]float64, len(x))
	for i, v := range x {
		if logX {
			z[i] = math.Log(v)
		} else {
			z[i] = v
		}
	}

	return z
}

func hasVariance(vs []float64) bool {
	for i := 1; i < len(vs); i++ {
		if vs[i] != vs[0] {
			return true
		}
	}

	return false
}
