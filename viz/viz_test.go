package viz

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/segfit/bayes"
	"github.com/arloliu/segfit/regression"
)

type lineCurve struct {
	slope float64
}

func (c lineCurve) Predict(x float64) (float64, error) {
	return c.slope * x, nil
}

type failingCurve struct{}

func (failingCurve) Predict(x float64) (float64, error) {
	return 0, errors.New("boom")
}

func TestCoordinates(t *testing.T) {
	xs, ys, err := Coordinates(lineCurve{slope: 2}, 0, 10, 5)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 2.5, 5, 7.5, 10}, xs)
	assert.Equal(t, []float64{0, 5, 10, 15, 20}, ys)
}

func TestCoordinatesErrors(t *testing.T) {
	_, _, err := Coordinates(lineCurve{}, 0, 10, 1)
	require.Error(t, err)

	_, _, err = Coordinates(lineCurve{}, 10, 10, 5)
	require.Error(t, err)

	_, _, err = Coordinates(failingCurve{}, 0, 10, 5)
	require.Error(t, err)
}

func fitTestData() (x, y []float64) {
	x = []float64{1, 2, 3, 4, 10, 20, 30, 40}
	y = []float64{2, 4, 6, 8, 5, 10, 15, 20}

	return x, y
}

func TestRenderPNGLeastSquares(t *testing.T) {
	x, y := fitTestData()
	model, err := regression.FitPiecewise(x, y, regression.Breakpoints{7},
		regression.WithLogX(false))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "fit.png")
	err = RenderPNG(path, x, y, model, model.XMin, model.XMax,
		WithTitle("two segments"),
		WithLabels("x", "y"),
		WithSamples(50))
	require.NoError(t, err)

	assertPNG(t, path)
}

func TestRenderPNGBayesBand(t *testing.T) {
	x, y := fitTestData()
	model, err := bayes.FitPiecewise(x, y, regression.Breakpoints{7},
		bayes.WithLogX(false), bayes.WithDraws(500), bayes.WithSeed(7))
	require.NoError(t, err)

	xs, med, lo, hi, err := BandCoordinates(model, model.XMin, model.XMax, 20)
	require.NoError(t, err)
	require.Len(t, xs, 20)
	for i := range xs {
		assert.LessOrEqual(t, lo[i], med[i])
		assert.LessOrEqual(t, med[i], hi[i])
	}

	path := filepath.Join(t.TempDir(), "bayes.png")
	err = RenderPNG(path, x, y, model, model.XMin, model.XMax)
	require.NoError(t, err)

	assertPNG(t, path)
}

func TestRenderPNGOptionErrors(t *testing.T) {
	x, y := fitTestData()

	err := RenderPNG("unused.png", x, y, lineCurve{}, 1, 40, WithSize(-1, 4))
	require.Error(t, err)

	err = RenderPNG("unused.png", x, y, lineCurve{}, 1, 40, WithSamples(1))
	require.Error(t, err)

	err = RenderPNG("unused.png", x[:2], y, lineCurve{}, 1, 40)
	require.Error(t, err)
}

func assertPNG(t *testing.T, path string) {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data[:4], "file must carry the PNG signature")
}
