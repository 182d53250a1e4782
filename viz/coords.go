package viz

import (
	"errors"
	"fmt"

	"github.com/arloliu/segfit/bayes"
)

var errBadRange = errors.New("invalid sampling range")

// Curve is a fitted model that predicts an outcome at a predictor value.
// Both least-squares and Bayesian piecewise fits satisfy it.
type Curve interface {
	Predict(x float64) (float64, error)
}

// Bander is a Curve that also reports a credible interval at each point.
type Bander interface {
	Curve
	Band(x float64) (bayes.Interval, error)
}

// Coordinates samples a curve at n evenly spaced points across [xmin, xmax]
// and returns the predictor values with their predictions.
func Coordinates(c Curve, xmin, xmax float64, n int) (xs, ys []float64, err error) {
	if err := checkRange(xmin, xmax, n); err != nil {
		return nil, nil, err
	}

	xs = make([]float64, n)
	ys = make([]float64, n)
	step := (xmax - xmin) / float64(n-1)
	for i := range n {
		xs[i] = xmin + float64(i)*step
		if i == n-1 {
			// Pin the last sample to xmax exactly so rounding cannot push it
			// past the training range.
			xs[i] = xmax
		}
		ys[i], err = c.Predict(xs[i])
		if err != nil {
			return nil, nil, fmt.Errorf("sample curve at x=%g: %w", xs[i], err)
		}
	}

	return xs, ys, nil
}

// BandCoordinates samples a banded curve at n evenly spaced points and
// returns the predictor values with the median, lower, and upper band edges.
func BandCoordinates(b Bander, xmin, xmax float64, n int) (xs, med, lo, hi []float64, err error) {
	if err := checkRange(xmin, xmax, n); err != nil {
		return nil, nil, nil, nil, err
	}

	xs = make([]float64, n)
	med = make([]float64, n)
	lo = make([]float64, n)
	hi = make([]float64, n)
	step := (xmax - xmin) / float64(n-1)
	for i := range n {
		xs[i] = xmin + float64(i)*step
		if i == n-1 {
			xs[i] = xmax
		}
		iv, err := b.Band(xs[i])
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("sample band at x=%g: %w", xs[i], err)
		}
		med[i] = iv.Median
		lo[i] = iv.Lower
		hi[i] = iv.Upper
	}

	return xs, med, lo, hi, nil
}

func checkRange(xmin, xmax float64, n int) error {
	if n < 2 {
		return fmt.Errorf("%w: need at least 2 samples, got %d", errBadRange, n)
	}
	if !(xmin < xmax) {
		return fmt.Errorf("%w: xmin %g must be below xmax %g", errBadRange, xmin, xmax)
	}

	return nil
}
