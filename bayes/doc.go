// Package bayes provides Bayesian linear regression for segmented fits.
//
// Each segment's model y = a + b*t(x) is fitted with the conjugate
// normal-inverse-gamma prior, giving a closed-form posterior. Uncertainty is
// propagated by posterior draws of (intercept, slope, sigma), from which the
// package derives:
//
//   - Bayesian R²: the explained-to-total variance ratio computed per posterior
//     draw rather than as a single point estimate, reported as a posterior
//     median with a credible interval
//   - Credible bands: per-x quantiles of the posterior mean function, suitable
//     for plotting alongside the observations
//
// The segmented entry point shares the regression package's partitioner and
// error taxonomy: segments are fully independent fits, breakpoints are
// validated, and evaluation outside the training range reports
// regression.ErrExtrapolation.
//
// # Usage
//
//	pw, err := bayes.FitPiecewise(x, y, regression.Breakpoints{5000}, bayes.WithSeed(7))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, d := range bayes.Compare(pw) {
//	    fmt.Printf("segment %d: R²=%.3f [%.3f, %.3f]\n", d.Segment, d.R2.Median, d.R2.Lower, d.R2.Upper)
//	}
//
// Draws are generated from a seedable source, so results are reproducible for a
// fixed seed and draw count.
package bayes
