// Package viz renders fitted segmented models as plots.
//
// It works against small interfaces so both least-squares and Bayesian
// piecewise fits can be drawn: anything with a Predict method is a Curve, and
// anything that also exposes a credible Band gets an uncertainty ribbon.
//
// Coordinates and BandCoordinates sample a model across its training range
// for callers that render elsewhere. RenderPNG is the one-call path:
//
//	err := viz.RenderPNG("fit.png", x, y, model,
//		viz.WithTitle("Mismanaged waste vs GDP"),
//		viz.WithLabels("GDP per capita", "share mismanaged"))
//
// Sampling never crosses outside the model's training range, so rendering
// cannot trip the extrapolation guard.
package viz
