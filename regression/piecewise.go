package regression

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/arloliu/segfit/format"
	"github.com/arloliu/segfit/internal/options"
)

// Segment is one contiguous sub-range of the predictor with its own independent
// linear fit.
type Segment struct {
	// Index is the segment position, left to right.
	Index int
	// Lower and Upper bound the segment on the original x scale. The first
	// segment's Lower is -Inf and the last segment's Upper is +Inf; interior
	// bounds follow half-open membership [Lower, Upper).
	Lower float64
	Upper float64
	// Rows holds the indices (into the caller's input slices) of the
	// observations this segment owns.
	Rows []int
	// Model is the segment's independent linear fit.
	Model *LinearModel
	// YMean and YStdDev summarize the observed outcome within the segment.
	YMean   float64
	YStdDev float64
}

// SegmentDiagnostics is one row of the per-segment comparison table.
type SegmentDiagnostics struct {
	Segment         int
	N               int
	Intercept       float64
	Slope           float64
	RSquared        float64
	RMSE            float64
	MeanAbsResidual float64
	YStdDev         float64
	Formula         string
}

// Piecewise is a fitted segmented regression model: independent linear fits
// over contiguous ranges of the predictor, evaluable at arbitrary x within the
// training range.
type Piecewise struct {
	// Breakpoints are the thresholds that partition the segments.
	Breakpoints Breakpoints
	// Segments holds one fitted segment per partition cell, left to right.
	Segments []*Segment
	// XMin and XMax bound the training data on the original x scale.
	// Evaluation outside [XMin, XMax] is extrapolation and is refused.
	XMin float64
	XMax float64
	// Dropped is the number of input rows excluded by the missing-data policy.
	Dropped int

	logX bool
}

// FitPiecewise partitions the observations at the given breakpoints and fits an
// independent linear model per segment.
//
// Rows with missing (NaN/Inf) predictor or outcome are dropped before
// segmentation, as are rows with non-positive x under the log transform; the
// count of dropped rows is reported on the returned model. Breakpoints are
// validated against the cleaned data range and never adjusted.
//
// Returns:
//   - *Piecewise: The fitted piecewise model
//   - error: ErrInvalidBreakpoint for unusable breakpoints;
//     ErrInsufficientData when any segment owns fewer than MinSegmentSize rows
//     (the caller must merge segments or abort, per the error-handling policy)
func FitPiecewise(x, y []float64, bps Breakpoints, opts ...FitOption) (*Piecewise, error) {
	cfg := defaultFitConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	xs, ys, idx, err := cleanXY(x, y, cfg.LogX)
	if err != nil {
		return nil, err
	}
	if len(xs) < cfg.MinSegmentSize {
		return nil, fmt.Errorf("%w: %d usable observations", ErrInsufficientData, len(xs))
	}

	xmin := floats.Min(xs)
	xmax := floats.Max(xs)
	if err := bps.Validate(xmin, xmax); err != nil {
		return nil, err
	}

	assign, err := Partition(xs, bps)
	if err != nil {
		return nil, err
	}

	segCount := bps.SegmentCount()
	segRows := make([][]int, segCount)
	for row, seg := range assign {
		segRows[seg] = append(segRows[seg], row)
	}

	segments := make([]*Segment, segCount)
	for s := 0; s < segCount; s++ {
		rows := segRows[s]
		if len(rows) < cfg.MinSegmentSize {
			return nil, fmt.Errorf("%w: segment %d owns %d observations, need at least %d",
				ErrInsufficientData, s, len(rows), cfg.MinSegmentSize)
		}

		segX := make([]float64, len(rows))
		segY := make([]float64, len(rows))
		origRows := make([]int, len(rows))
		for i, r := range rows {
			segX[i] = xs[r]
			segY[i] = ys[r]
			origRows[i] = idx[r]
		}

		model, err := fitLinear(transform(segX, cfg.LogX), segY, cfg.LogX)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", s, err)
		}

		lower := math.Inf(-1)
		if s > 0 {
			lower = bps[s-1]
		}
		upper := math.Inf(1)
		if s < len(bps) {
			upper = bps[s]
		}

		mean, std := stat.MeanStdDev(segY, nil)
		segments[s] = &Segment{
			Index:   s,
			Lower:   lower,
			Upper:   upper,
			Rows:    origRows,
			Model:   model,
			YMean:   mean,
			YStdDev: std,
		}
	}

	return &Piecewise{
		Breakpoints: bps,
		Segments:    segments,
		XMin:        xmin,
		XMax:        xmax,
		Dropped:     len(x) - len(xs),
		logX:        cfg.LogX,
	}, nil
}

// Method reports the per-segment fitting method.
func (p *Piecewise) Method() format.FitMethod {
	return format.MethodOLS
}

// SegmentFor returns the segment owning x under half-open membership. It does
// not range-check x; use Predict for extrapolation-safe evaluation.
func (p *Piecewise) SegmentFor(x float64) *Segment {
	return p.Segments[p.Breakpoints.segmentIndex(x)]
}

// Predict evaluates the piecewise function at x, choosing the owning segment.
//
// Evaluation outside [XMin, XMax] is extrapolation: no segment mathematically
// owns that region, so ErrExtrapolation is returned instead of a value.
func (p *Piecewise) Predict(x float64) (float64, error) {
	if math.IsNaN(x) {
		return math.NaN(), fmt.Errorf("%w: NaN evaluation point", ErrExtrapolation)
	}
	if x < p.XMin || x > p.XMax {
		return math.NaN(), fmt.Errorf("%w: x=%g outside training range [%g, %g]",
			ErrExtrapolation, x, p.XMin, p.XMax)
	}

	return p.SegmentFor(x).Model.Predict(x), nil
}

// PredictAll evaluates the piecewise function at every point of xs, failing on
// the first extrapolating point.
func (p *Piecewise) PredictAll(xs []float64) ([]float64, error) {
	out := make([]float64, len(xs))
	for i, v := range xs {
		yhat, err := p.Predict(v)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		out[i] = yhat
	}

	return out, nil
}

// Diagnostics reports the per-segment comparison table: goodness of fit, mean
// absolute residual, and observed-outcome spread side by side.
func (p *Piecewise) Diagnostics() []SegmentDiagnostics {
	out := make([]SegmentDiagnostics, len(p.Segments))
	for i, seg := range p.Segments {
		sumAbs := 0.0
		for _, r := range seg.Model.Residuals {
			sumAbs += math.Abs(r)
		}

		out[i] = SegmentDiagnostics{
			Segment:         seg.Index,
			N:               seg.Model.N,
			Intercept:       seg.Model.Intercept,
			Slope:           seg.Model.Slope,
			RSquared:        seg.Model.RSquared,
			RMSE:            seg.Model.RMSE,
			MeanAbsResidual: sumAbs / float64(seg.Model.N),
			YStdDev:         seg.YStdDev,
			Formula:         seg.Model.Formula(),
		}
	}

	return out
}

// String returns a human-readable summary of the piecewise model.
func (p *Piecewise) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Piecewise{segments: %d, breakpoints: %v, range: [%g, %g]}",
		len(p.Segments), []float64(p.Breakpoints), p.XMin, p.XMax)

	return sb.String()
}
