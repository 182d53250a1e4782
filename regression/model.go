package regression

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// LinearModel is one fitted linear model: y = Intercept + Slope * t(x), where
// t is ln when the log-x transform is active and identity otherwise.
type LinearModel struct {
	// Intercept is the fitted intercept a.
	Intercept float64
	// Slope is the fitted slope b on the (possibly log-transformed) predictor.
	Slope float64
	// RSquared is the coefficient of determination (goodness of fit, 0-1).
	RSquared float64
	// RMSE is the root mean square error of the fit.
	RMSE float64
	// Residuals holds observed minus predicted, in input order.
	Residuals []float64
	// N is the number of observations the model was fitted on.
	N int

	logX bool
}

// Predict evaluates the model at x on the original scale.
func (m *LinearModel) Predict(x float64) float64 {
	z := x
	if m.logX {
		if x <= 0 {
			return math.NaN()
		}
		z = math.Log(x)
	}

	return m.Intercept + m.Slope*z
}

// Formula returns a human-readable representation of the model.
func (m *LinearModel) Formula() string {
	if m.logX {
		return fmt.Sprintf("y = %.4f + %.4f * ln(x)", m.Intercept, m.Slope)
	}

	return fmt.Sprintf("y = %.4f + %.4f * x", m.Intercept, m.Slope)
}

// String returns a string representation of the model.
func (m *LinearModel) String() string {
	return fmt.Sprintf("LinearModel{N: %d, R²: %.4f, RMSE: %.4f, Formula: %s}",
		m.N, m.RSquared, m.RMSE, m.Formula())
}

// fitLinear fits y = a + b*z by ordinary least squares on the already
// transformed predictor z. It requires at least two observations and non-zero
// predictor variance; anything less cannot identify a slope and returns
// ErrInsufficientData.
func fitLinear(z, y []float64, logX bool) (*LinearModel, error) {
	n := len(z)
	if n != len(y) {
		return nil, fmt.Errorf("mismatched data lengths: %d x vs %d y", n, len(y))
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 observations, got %d", ErrInsufficientData, n)
	}
	if !hasVariance(z) {
		return nil, fmt.Errorf("%w: predictor has zero variance across %d observations", ErrInsufficientData, n)
	}

	alpha, beta := stat.LinearRegression(z, y, nil, false)

	residuals := make([]float64, n)
	sumSq := 0.0
	for i := range z {
		residuals[i] = y[i] - (alpha + beta*z[i])
		sumSq += residuals[i] * residuals[i]
	}

	return &LinearModel{
		Intercept: alpha,
		Slope:     beta,
		RSquared:  rSquared(y, residuals),
		RMSE:      math.Sqrt(sumSq / float64(n)),
		Residuals: residuals,
		N:         n,
		logX:      logX,
	}, nil
}

// rSquared calculates the coefficient of determination from observed values and
// residuals: R² = 1 - SS_res/SS_tot. A constant outcome (SS_tot = 0) yields 1
// when the residuals are zero too, else 0.
func rSquared(observed, residuals []float64) float64 {
	mean := stat.Mean(observed, nil)

	ssTot := 0.0
	ssRes := 0.0
	for i := range observed {
		d := observed[i] - mean
		ssTot += d * d
		ssRes += residuals[i] * residuals[i]
	}

	if ssTot == 0 {
		if ssRes < 1e-12 {
			return 1
		}

		return 0
	}

	return 1.0 - (ssRes / ssTot)
}

// hasVariance reports whether the slice holds at least two distinct values.
func hasVariance(vs []float64) bool {
	for i := 1; i < len(vs); i++ {
		if vs[i] != vs[0] {
			return true
		}
	}

	return false
}

// rangeRSS fits y = a + b*z on a contiguous range by least squares and returns
// the residual sum of squares. It is the estimator's inner objective and avoids
// allocating a model per candidate cut. ok is false when the range cannot
// identify a slope (fewer than 2 rows or zero predictor variance).
func rangeRSS(z, y []float64) (rss float64, ok bool) {
	n := len(z)
	if n < 2 || !hasVariance(z) {
		return 0, false
	}

	alpha, beta := stat.LinearRegression(z, y, nil, false)
	for i := range z {
		r := y[i] - (alpha + beta*z[i])
		rss += r * r
	}

	return rss, true
}

// cleanXY applies the documented missing-data policy: rows where x or y is not
// finite are dropped, and under the log transform rows with x <= 0 are dropped
// as well (ln is undefined there). idx maps each kept row back to its original
// position.
func cleanXY(x, y []float64, logX bool) (xs, ys []float64, idx []int, err error) {
	if len(x) != len(y) {
		return nil, nil, nil, fmt.Errorf("mismatched data lengths: %d x vs %d y", len(x), len(y))
	}

	xs = make([]float64, 0, len(x))
	ys = make([]float64, 0, len(y))
	idx = make([]int, 0, len(x))

	for i := range x {
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) || math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			continue
		}
		if logX && x[i] <= 0 {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
		idx = append(idx, i)
	}

	return xs, ys, idx, nil
}

// transform returns z = ln(x) when logX is set, else a copy of x.
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

// fromTransformed maps a transformed-scale value back to the original x scale.
func fromTransformed(z float64, logX bool) float64 {
	if logX {
		return math.Exp(z)
	}

	return z
}
