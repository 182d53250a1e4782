// Package regression provides segmented (piecewise) linear regression over one
// numeric predictor.
//
// The package partitions the predictor domain at a set of breakpoints into
// contiguous segments, fits an independent linear model per segment (on
// log-transformed x by default), and aggregates per-segment diagnostics for
// side-by-side comparison.
//
// # Key Features
//
//   - **Breakpoint Estimation**: Iterative refinement of breakpoint positions to
//     locally minimize total residual sum of squares across all segments
//   - **Exact Partitioning**: Half-open interval membership guarantees every
//     observation lands in exactly one segment
//   - **Independent Segment Fits**: Each segment owns its own ordinary
//     least-squares fit; no parameters are shared across segments
//   - **Explicit Extrapolation Handling**: Evaluation outside the training range
//     returns ErrExtrapolation instead of a silent value
//
// # Usage Patterns
//
// ## Estimate Breakpoints, Then Fit
//
//	bps, err := regression.Estimate(x, y, []float64{5000})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pw, err := regression.FitPiecewise(x, y, bps)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	yhat, err := pw.Predict(12000)
//
// ## Fit With Caller-Chosen Breakpoints
//
// The estimator output may be rounded or adjusted before fitting. FitPiecewise
// validates whatever breakpoints it receives:
//
//	pw, err := regression.FitPiecewise(x, y, regression.Breakpoints{3000, 20000})
//
// ## Segment Diagnostics
//
//	for _, d := range pw.Diagnostics() {
//	    fmt.Printf("segment %d: n=%d R²=%.3f |resid|=%.3f sd(y)=%.3f\n",
//	        d.Segment, d.N, d.RSquared, d.MeanAbsResidual, d.YStdDev)
//	}
//
// # Model
//
// Within segment i the fitted model is
//
//	y = a_i + b_i * ln(x)    (default)
//	y = a_i + b_i * x        (with WithLogX(false))
//
// Breakpoints and segment bounds are always expressed on the original x scale;
// the log transform is internal to the fit.
//
// # Missing Data Policy
//
// Rows where x or y is NaN (or x is non-positive under the log transform) are
// dropped before segmentation. The dataset package reports how many rows a
// selection dropped; this package applies the same row-drop policy defensively
// on its raw-slice entry points.
//
// # Error Conditions
//
//   - ErrInsufficientData: a segment holds fewer than MinSegmentSize rows, or
//     too few rows remain after the missing-data drop
//   - ErrInvalidBreakpoint: breakpoints are not strictly increasing or fall
//     outside the open data range (never silently clamped)
//   - ErrExtrapolation: Predict called outside [min x, max x] of training data
//
// All errors are recoverable by the caller; a run is a one-shot batch
// computation with no retry machinery.
package regression
