package regression

import (
	"fmt"
	"math"
	"sort"
)

// Breakpoints is an ordered sequence of thresholds on the predictor, expressed
// on the original x scale. k breakpoints partition the domain into k+1
// contiguous segments.
type Breakpoints []float64

// Validate checks that the breakpoints are usable against the observed data
// range: every value finite, strictly increasing, and strictly inside
// (xmin, xmax). An empty breakpoint set is valid and yields a single segment.
//
// Violations return an error wrapping ErrInvalidBreakpoint; values are never
// clamped into range.
func (b Breakpoints) Validate(xmin, xmax float64) error {
	for i, bp := range b {
		if math.IsNaN(bp) || math.IsInf(bp, 0) {
			return fmt.Errorf("%w: breakpoint %d is not finite", ErrInvalidBreakpoint, i)
		}
		if bp <= xmin || bp >= xmax {
			return fmt.Errorf("%w: breakpoint %d (%g) outside open data range (%g, %g)",
				ErrInvalidBreakpoint, i, bp, xmin, xmax)
		}
		if i > 0 && bp <= b[i-1] {
			return fmt.Errorf("%w: breakpoints must be strictly increasing, got %g after %g",
				ErrInvalidBreakpoint, bp, b[i-1])
		}
	}

	return nil
}

// SegmentCount returns the number of segments the breakpoints induce.
func (b Breakpoints) SegmentCount() int {
	return len(b) + 1
}

// segmentIndex returns the index of the segment owning value v under half-open
// membership: segment i covers [b[i-1], b[i]), the first segment is open on the
// left and the last on the right. Every finite v maps to exactly one segment.
func (b Breakpoints) segmentIndex(v float64) int {
	// Number of breakpoints <= v. A value equal to breakpoint i belongs to
	// segment i+1, keeping the intervals half-open on the right.
	return sort.Search(len(b), func(i int) bool { return b[i] > v })
}

// Partition assigns each observation to exactly one segment and returns the
// per-row segment index. The assignment covers every row (no gap) and each row
// lands in a single segment (no overlap); rows with NaN x are rejected since
// no segment can own them.
func Partition(x []float64, bps Breakpoints) ([]int, error) {
	assign := make([]int, len(x))
	for i, v := range x {
		if math.IsNaN(v) {
			return nil, fmt.Errorf("%w: observation %d has NaN predictor", ErrInsufficientData, i)
		}
		assign[i] = bps.segmentIndex(v)
	}

	return assign, nil
}
