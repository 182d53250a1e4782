package regression

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/arloliu/segfit/internal/options"
	"github.com/arloliu/segfit/internal/pool"
)

// Estimate locates breakpoint positions for a segmented linear fit of y on x.
//
// One breakpoint is estimated per initial guess. The estimator first fits an
// unsegmented linear model as a baseline, then iteratively refines each
// breakpoint position over candidate cuts (midpoints between consecutive
// distinct transformed-x values), locally minimizing the total residual sum of
// squares across all independent per-segment fits. Refinement stops when a full
// sweep improves total RSS by less than the configured tolerance or when
// MaxIterations is reached.
//
// Guesses and returned breakpoints are on the original x scale; the search runs
// on the transformed scale when the log-x transform is active.
//
// Parameters:
//   - x: Predictor values
//   - y: Outcome values
//   - guesses: Initial breakpoint locations, one per desired breakpoint
//   - opts: Fit options (transform, iteration limit, tolerance, segment size)
//
// Returns:
//   - Breakpoints: Estimated breakpoints, strictly increasing, strictly inside
//     the data range, and validated before return
//   - error: ErrInsufficientData when the rows cannot support the requested
//     number of segments; ErrInvalidBreakpoint when a guess falls outside the
//     data range, guesses collapse onto the same cut, or refinement converges
//     to a degenerate configuration
//
// Example:
//
//	bps, err := regression.Estimate(gdp, mismanaged, []float64{5000})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pw, err := regression.FitPiecewise(gdp, mismanaged, bps)
func Estimate(x, y, guesses []float64, opts ...FitOption) (Breakpoints, error) {
	cfg := defaultFitConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	xs, ys, _, err := cleanXY(x, y, cfg.LogX)
	if err != nil {
		return nil, err
	}

	k := len(guesses)
	if need := (k + 1) * cfg.MinSegmentSize; len(xs) < need {
		return nil, fmt.Errorf("%w: %d usable observations cannot support %d segments of at least %d rows",
			ErrInsufficientData, len(xs), k+1, cfg.MinSegmentSize)
	}

	xmin := floats.Min(xs)
	xmax := floats.Max(xs)

	// Sort observations by predictor; segments become contiguous ranges of the
	// sorted arrays, so candidate evaluation needs no per-cut copying.
	n := len(xs)
	ord := make([]int, n)
	for i := range ord {
		ord[i] = i
	}
	sort.Slice(ord, func(a, b int) bool { return xs[ord[a]] < xs[ord[b]] })

	sz, szCleanup := pool.GetFloat64Slice(n)
	defer szCleanup()
	sy, syCleanup := pool.GetFloat64Slice(n)
	defer syCleanup()
	for i, o := range ord {
		if cfg.LogX {
			sz[i] = math.Log(xs[o])
		} else {
			sz[i] = xs[o]
		}
		sy[i] = ys[o]
	}

	// Unsegmented baseline fit. If even the full range cannot identify a slope
	// there is nothing to segment.
	if _, ok := rangeRSS(sz, sy); !ok {
		return nil, fmt.Errorf("%w: unsegmented baseline fit is degenerate", ErrInsufficientData)
	}

	if k == 0 {
		return Breakpoints{}, nil
	}

	// Candidate cuts: midpoints between consecutive distinct transformed values.
	cand := make([]float64, 0, n-1)
	for i := 0; i+1 < n; i++ {
		if sz[i+1] > sz[i] {
			cand = append(cand, (sz[i]+sz[i+1])/2)
		}
	}
	if len(cand) < k {
		return nil, fmt.Errorf("%w: only %d distinct cut positions for %d breakpoints",
			ErrInsufficientData, len(cand), k)
	}

	cuts, err := snapGuesses(guesses, cand, xmin, xmax, cfg.LogX)
	if err != nil {
		return nil, err
	}

	objective := func(cs []float64) float64 {
		total := 0.0
		lo := 0
		for _, c := range cs {
			hi := sort.SearchFloat64s(sz[:n], c)
			rss, ok := rangeRSS(sz[lo:hi], sy[lo:hi])
			if !ok || hi-lo < cfg.MinSegmentSize {
				return math.Inf(1)
			}
			total += rss
			lo = hi
		}
		rss, ok := rangeRSS(sz[lo:n], sy[lo:n])
		if !ok || n-lo < cfg.MinSegmentSize {
			return math.Inf(1)
		}

		return total + rss
	}

	current := objective(cuts)
	for iter := 0; iter < cfg.MaxIterations; iter++ {
		sweepStart := current
		for i := range cuts {
			lower := math.Inf(-1)
			if i > 0 {
				lower = cuts[i-1]
			}
			upper := math.Inf(1)
			if i+1 < len(cuts) {
				upper = cuts[i+1]
			}

			bestVal := current
			bestCut := cuts[i]
			orig := cuts[i]
			for _, c := range cand {
				if c <= lower || c >= upper || c == orig {
					continue
				}
				cuts[i] = c
				if v := objective(cuts); v < bestVal {
					bestVal = v
					bestCut = c
				}
			}
			cuts[i] = bestCut
			current = bestVal
		}

		if math.IsInf(sweepStart, 1) && math.IsInf(current, 1) {
			break
		}
		if sweepStart-current < cfg.Tolerance {
			break
		}
	}

	if math.IsInf(current, 1) {
		return nil, fmt.Errorf("%w: refinement could not find a configuration with at least %d rows per segment",
			ErrInsufficientData, cfg.MinSegmentSize)
	}

	bps := make(Breakpoints, k)
	for i, c := range cuts {
		bps[i] = fromTransformed(c, cfg.LogX)
	}
	if err := bps.Validate(xmin, xmax); err != nil {
		return nil, fmt.Errorf("estimator converged to degenerate breakpoints: %w", err)
	}

	return bps, nil
}

// snapGuesses maps each original-scale guess onto the nearest candidate cut on
// the transformed scale and returns the cut values in increasing order.
func snapGuesses(guesses, cand []float64, xmin, xmax float64, logX bool) ([]float64, error) {
	cuts := make([]float64, len(guesses))
	for i, g := range guesses {
		if math.IsNaN(g) || math.IsInf(g, 0) {
			return nil, fmt.Errorf("%w: initial guess %d is not finite", ErrInvalidBreakpoint, i)
		}
		if g <= xmin || g >= xmax {
			return nil, fmt.Errorf("%w: initial guess %d (%g) outside open data range (%g, %g)",
				ErrInvalidBreakpoint, i, g, xmin, xmax)
		}

		zg := g
		if logX {
			zg = math.Log(g)
		}

		// Nearest candidate by transformed distance.
		j := sort.SearchFloat64s(cand, zg)
		switch {
		case j == 0:
			cuts[i] = cand[0]
		case j == len(cand):
			cuts[i] = cand[len(cand)-1]
		case zg-cand[j-1] <= cand[j]-zg:
			cuts[i] = cand[j-1]
		default:
			cuts[i] = cand[j]
		}
	}

	sort.Float64s(cuts)
	for i := 1; i < len(cuts); i++ {
		if cuts[i] == cuts[i-1] {
			return nil, fmt.Errorf("%w: initial guesses collapse onto the same cut position %g",
				ErrInvalidBreakpoint, cuts[i])
		}
	}

	return cuts, nil
}
