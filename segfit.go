// Package segfit fits segmented regression models to tabular data.
//
// The root package is a thin convenience layer over the focused packages:
//
//   - dataset: typed tables, CSV loading, transparent decompression
//   - regression: breakpoint estimation and least-squares segment fits
//   - bayes: Bayesian per-segment fits with credible intervals
//   - viz: plotting fitted models
//
// A typical pipeline loads a dataset, picks predictor and outcome columns,
// and fits in one call:
//
//	ds, err := segfit.Open(ctx, "mismanaged_waste.csv.gz")
//	if err != nil {
//		return err
//	}
//
//	model, err := segfit.Fit(ds, "gdp", "waste_pct", []float64{5000})
//	if err != nil {
//		return err
//	}
//	fmt.Println(model)
//
// Callers needing finer control use the focused packages directly; everything
// the wrappers do is public there.
package segfit

import (
	"context"
	"strings"

	"github.com/arloliu/segfit/bayes"
	"github.com/arloliu/segfit/dataset"
	"github.com/arloliu/segfit/regression"
)

// Open loads a dataset from a local file path or an HTTP(S) URL, with
// transparent decompression based on the filename extension.
func Open(ctx context.Context, source string, opts ...dataset.Option) (*dataset.Dataset, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return dataset.Fetch(ctx, source, opts...)
	}

	return dataset.Load(source, opts...)
}

// Estimate extracts the predictor and outcome columns from ds, drops rows
// with missing values, and estimates breakpoint locations starting from the
// initial guesses.
func Estimate(ds *dataset.Dataset, xCol, yCol string, guesses []float64, opts ...regression.FitOption) (regression.Breakpoints, error) {
	x, y, _, err := ds.XY(xCol, yCol)
	if err != nil {
		return nil, err
	}

	return regression.Estimate(x, y, guesses, opts...)
}

// Fit runs the full least-squares pipeline on dataset columns: extract the
// predictor and outcome with the row-drop policy, estimate breakpoints from
// the initial guesses, and fit an independent model per segment.
func Fit(ds *dataset.Dataset, xCol, yCol string, guesses []float64, opts ...regression.FitOption) (*regression.Piecewise, error) {
	x, y, _, err := ds.XY(xCol, yCol)
	if err != nil {
		return nil, err
	}

	bps, err := regression.Estimate(x, y, guesses, opts...)
	if err != nil {
		return nil, err
	}

	return regression.FitPiecewise(x, y, bps, opts...)
}

// FitXY is Fit on raw slices instead of dataset columns.
func FitXY(x, y, guesses []float64, opts ...regression.FitOption) (*regression.Piecewise, error) {
	bps, err := regression.Estimate(x, y, guesses, opts...)
	if err != nil {
		return nil, err
	}

	return regression.FitPiecewise(x, y, bps, opts...)
}

// FitBayes fits Bayesian models on the segments induced by bps, extracting
// the columns from ds with the row-drop policy. Breakpoints usually come
// from Estimate.
func FitBayes(ds *dataset.Dataset, xCol, yCol string, bps regression.Breakpoints, opts ...bayes.Option) (*bayes.Piecewise, error) {
	x, y, _, err := ds.XY(xCol, yCol)
	if err != nil {
		return nil, err
	}

	return bayes.FitPiecewise(x, y, bps, opts...)
}
