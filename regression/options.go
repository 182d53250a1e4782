package regression

import (
	"fmt"

	"github.com/arloliu/segfit/internal/options"
)

// FitConfig holds configuration shared by the breakpoint estimator and the
// piecewise fitter.
type FitConfig struct {
	// LogX applies the natural-log transform to x before fitting (y ~ ln x).
	LogX bool
	// MaxIterations bounds the breakpoint refinement sweeps.
	MaxIterations int
	// Tolerance is the minimum total-RSS improvement that keeps refinement going.
	Tolerance float64
	// MinSegmentSize is the smallest number of observations a segment may own.
	MinSegmentSize int
}

// defaultFitConfig returns the default config (log-x transform, 30 refinement
// sweeps, RSS tolerance 1e-9, at least 2 rows per segment).
func defaultFitConfig() FitConfig {
	return FitConfig{
		LogX:           true,
		MaxIterations:  30,
		Tolerance:      1e-9,
		MinSegmentSize: 2,
	}
}

// FitOption is a functional option for FitConfig.
type FitOption = options.Option[*FitConfig]

// WithLogX enables or disables the natural-log transform of x.
func WithLogX(enabled bool) FitOption {
	return options.NoError(func(cfg *FitConfig) {
		cfg.LogX = enabled
	})
}

// WithMaxIterations sets the maximum number of breakpoint refinement sweeps.
func WithMaxIterations(n int) FitOption {
	return options.New(func(cfg *FitConfig) error {
		if n <= 0 {
			return fmt.Errorf("max iterations must be positive, got %d", n)
		}
		cfg.MaxIterations = n

		return nil
	})
}

// WithTolerance sets the RSS improvement threshold that stops refinement.
func WithTolerance(tol float64) FitOption {
	return options.New(func(cfg *FitConfig) error {
		if tol < 0 {
			return fmt.Errorf("tolerance must be non-negative, got %g", tol)
		}
		cfg.Tolerance = tol

		return nil
	})
}

// WithMinSegmentSize sets the minimum number of observations per segment.
// Values below 2 cannot support a linear fit and are rejected.
func WithMinSegmentSize(n int) FitOption {
	return options.New(func(cfg *FitConfig) error {
		if n < 2 {
			return fmt.Errorf("min segment size must be at least 2, got %d", n)
		}
		cfg.MinSegmentSize = n

		return nil
	})
}
