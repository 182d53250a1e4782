package viz

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/arloliu/segfit/internal/options"
)

type plotConfig struct {
	title   string
	xLabel  string
	yLabel  string
	width   vg.Length
	height  vg.Length
	samples int
}

func defaultPlotConfig() plotConfig {
	return plotConfig{
		title:   "Segmented fit",
		xLabel:  "x",
		yLabel:  "y",
		width:   6 * vg.Inch,
		height:  4 * vg.Inch,
		samples: 200,
	}
}

// Option configures plot rendering.
type Option = options.Option[*plotConfig]

// WithTitle sets the plot title.
func WithTitle(title string) Option {
	return options.NoError(func(c *plotConfig) {
		c.title = title
	})
}

// WithLabels sets the axis labels.
func WithLabels(x, y string) Option {
	return options.NoError(func(c *plotConfig) {
		c.xLabel = x
		c.yLabel = y
	})
}

// WithSize sets the output size in inches. Defaults to 6x4.
func WithSize(widthInch, heightInch float64) Option {
	return options.New(func(c *plotConfig) error {
		if widthInch <= 0 || heightInch <= 0 {
			return fmt.Errorf("%w: size %gx%g inches", errBadRange, widthInch, heightInch)
		}
		c.width = vg.Length(widthInch) * vg.Inch
		c.height = vg.Length(heightInch) * vg.Inch

		return nil
	})
}

// WithSamples sets how many points the fitted curve is sampled at.
// Defaults to 200.
func WithSamples(n int) Option {
	return options.New(func(c *plotConfig) error {
		if n < 2 {
			return fmt.Errorf("%w: need at least 2 samples, got %d", errBadRange, n)
		}
		c.samples = n

		return nil
	})
}

var (
	observationColor = color.RGBA{R: 70, G: 110, B: 180, A: 255}
	fitColor         = color.RGBA{R: 200, G: 60, B: 60, A: 255}
	bandColor        = color.RGBA{R: 200, G: 60, B: 60, A: 48}
)

// RenderPNG writes a scatter of the observations with the fitted curve drawn
// across [xmin, xmax] to a PNG file. When the model also exposes a credible
// band, the band is drawn as a shaded ribbon behind the curve.
//
// The sampling range is derived from the observations, so RenderPNG expects
// x and y as passed to the fitting function (after any row drops).
func RenderPNG(path string, x, y []float64, model Curve, xmin, xmax float64, opts ...Option) error {
	cfg := defaultPlotConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return err
	}
	if len(x) != len(y) {
		return fmt.Errorf("%w: %d x values for %d y values", errBadRange, len(x), len(y))
	}

	p := plot.New()
	p.Title.Text = cfg.title
	p.X.Label.Text = cfg.xLabel
	p.Y.Label.Text = cfg.yLabel

	if banded, ok := model.(Bander); ok {
		if err := addBand(p, banded, xmin, xmax, cfg.samples); err != nil {
			return err
		}
	}

	if err := addFitLine(p, model, xmin, xmax, cfg.samples); err != nil {
		return err
	}

	if err := addObservations(p, x, y); err != nil {
		return err
	}

	if err := p.Save(cfg.width, cfg.height, path); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}

	return nil
}

func addObservations(p *plot.Plot, x, y []float64) error {
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("build scatter: %w", err)
	}
	scatter.GlyphStyle.Color = observationColor
	scatter.GlyphStyle.Radius = vg.Points(2.5)

	p.Add(scatter)
	p.Legend.Add("observed", scatter)

	return nil
}

func addFitLine(p *plot.Plot, model Curve, xmin, xmax float64, samples int) error {
	xs, ys, err := Coordinates(model, xmin, xmax, samples)
	if err != nil {
		return err
	}

	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("build fit line: %w", err)
	}
	line.LineStyle.Color = fitColor
	line.LineStyle.Width = vg.Points(1.5)

	p.Add(line)
	p.Legend.Add("fitted", line)

	return nil
}

// addBand draws the credible interval as a closed polygon: the lower edge
// left to right, then the upper edge right to left.
func addBand(p *plot.Plot, model Bander, xmin, xmax float64, samples int) error {
	xs, _, lo, hi, err := BandCoordinates(model, xmin, xmax, samples)
	if err != nil {
		return err
	}

	ring := make(plotter.XYs, 0, 2*len(xs))
	for i := range xs {
		ring = append(ring, plotter.XY{X: xs[i], Y: lo[i]})
	}
	for i := len(xs) - 1; i >= 0; i-- {
		ring = append(ring, plotter.XY{X: xs[i], Y: hi[i]})
	}

	poly, err := plotter.NewPolygon(ring)
	if err != nil {
		return fmt.Errorf("build credible band: %w", err)
	}
	poly.Color = bandColor
	poly.LineStyle.Color = color.Transparent

	p.Add(poly)

	return nil
}
