package bayes

import (
	"fmt"

	"github.com/arloliu/segfit/internal/options"
)

// Config holds configuration for Bayesian segment fitting.
type Config struct {
	// LogX applies the natural-log transform to x before fitting.
	LogX bool
	// Draws is the number of posterior draws per segment.
	Draws int
	// Seed seeds the draw source; a fixed seed gives reproducible results.
	Seed uint64
	// PriorScale is g in the N(0, g*sigma^2*I) coefficient prior. Large values
	// make the prior weakly informative.
	PriorScale float64
	// PriorShape and PriorRate parameterize the inverse-gamma prior on sigma^2.
	PriorShape float64
	PriorRate  float64
	// CredibleLevel is the mass of reported credible intervals (e.g. 0.95).
	CredibleLevel float64
	// MinSegmentSize is the smallest number of observations a segment may own.
	MinSegmentSize int
}

// defaultConfig returns the default config: log-x transform, 4000 draws,
// weakly informative priors, 95% credible intervals.
func defaultConfig() Config {
	return Config{
		LogX:           true,
		Draws:          4000,
		Seed:           1,
		PriorScale:     100,
		PriorShape:     0.001,
		PriorRate:      0.001,
		CredibleLevel:  0.95,
		MinSegmentSize: 2,
	}
}

// Option is a functional option for Config.
type Option = options.Option[*Config]

// WithLogX enables or disables the natural-log transform of x.
func WithLogX(enabled bool) Option {
	return options.NoError(func(cfg *Config) {
		cfg.LogX = enabled
	})
}

// WithDraws sets the number of posterior draws per segment.
func WithDraws(n int) Option {
	return options.New(func(cfg *Config) error {
		if n < 100 {
			return fmt.Errorf("draw count must be at least 100, got %d", n)
		}
		cfg.Draws = n

		return nil
	})
}

// WithSeed seeds the posterior draw source.
func WithSeed(seed uint64) Option {
	return options.NoError(func(cfg *Config) {
		cfg.Seed = seed
	})
}

// WithCredibleLevel sets the credible interval mass, e.g. 0.9 for 90%.
func WithCredibleLevel(level float64) Option {
	return options.New(func(cfg *Config) error {
		if level <= 0 || level >= 1 {
			return fmt.Errorf("credible level must be in (0, 1), got %g", level)
		}
		cfg.CredibleLevel = level

		return nil
	})
}

// WithMinSegmentSize sets the minimum number of observations per segment.
func WithMinSegmentSize(n int) Option {
	return options.New(func(cfg *Config) error {
		if n < 2 {
			return fmt.Errorf("min segment size must be at least 2, got %d", n)
		}
		cfg.MinSegmentSize = n

		return nil
	})
}
