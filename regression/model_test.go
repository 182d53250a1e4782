package regression

import (
	"errors"
	"math"
	"testing"
)

const tol = 1e-9

func TestFitLinearExactLine(t *testing.T) {
	// y = 3 + 2x with zero noise.
	z := []float64{1, 2, 3, 4, 5}
	y := []float64{5, 7, 9, 11, 13}

	m, err := fitLinear(z, y, false)
	if err != nil {
		t.Fatalf("fitLinear failed: %v", err)
	}

	if math.Abs(m.Intercept-3) > tol {
		t.Errorf("intercept = %g, want 3", m.Intercept)
	}
	if math.Abs(m.Slope-2) > tol {
		t.Errorf("slope = %g, want 2", m.Slope)
	}
	if math.Abs(m.RSquared-1) > tol {
		t.Errorf("R² = %g, want 1", m.RSquared)
	}
	if m.RMSE > tol {
		t.Errorf("RMSE = %g, want ~0", m.RMSE)
	}
	for i, r := range m.Residuals {
		if math.Abs(r) > tol {
			t.Errorf("residual %d = %g, want ~0", i, r)
		}
	}
}

func TestFitLinearRSquaredBounds(t *testing.T) {
	// Noisy but correlated data: R² must land in [0, 1].
	z := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	y := []float64{2.1, 3.9, 6.2, 7.8, 10.3, 11.7, 14.2, 15.8}

	m, err := fitLinear(z, y, false)
	if err != nil {
		t.Fatalf("fitLinear failed: %v", err)
	}
	if m.RSquared < 0 || m.RSquared > 1 {
		t.Errorf("R² = %g, want within [0, 1]", m.RSquared)
	}
	if m.RSquared < 0.99 {
		t.Errorf("R² = %g, expected near-perfect fit on this data", m.RSquared)
	}
}

func TestFitLinearInsufficientData(t *testing.T) {
	tests := []struct {
		name string
		z    []float64
		y    []float64
	}{
		{"empty", nil, nil},
		{"single observation", []float64{1}, []float64{2}},
		{"zero predictor variance", []float64{3, 3, 3}, []float64{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fitLinear(tt.z, tt.y, false)
			if !errors.Is(err, ErrInsufficientData) {
				t.Fatalf("expected ErrInsufficientData, got %v", err)
			}
		})
	}
}

func TestLinearModelPredictLogX(t *testing.T) {
	// y = 1 + 2*ln(x) fitted on exact points.
	x := []float64{1, math.E, math.E * math.E}
	y := []float64{1, 3, 5}

	m, err := fitLinear(transform(x, true), y, true)
	if err != nil {
		t.Fatalf("fitLinear failed: %v", err)
	}

	got := m.Predict(math.E)
	if math.Abs(got-3) > 1e-9 {
		t.Errorf("Predict(e) = %g, want 3", got)
	}
	if !math.IsNaN(m.Predict(-1)) {
		t.Error("Predict of non-positive x under log transform should be NaN")
	}
}

func TestCleanXY(t *testing.T) {
	x := []float64{1, math.NaN(), 3, -2, 5, math.Inf(1)}
	y := []float64{1, 2, math.NaN(), 4, 5, 6}

	xs, ys, idx, err := cleanXY(x, y, true)
	if err != nil {
		t.Fatalf("cleanXY failed: %v", err)
	}

	// Rows 1 (NaN x), 2 (NaN y), 3 (x<=0 under log), 5 (Inf x) drop.
	wantIdx := []int{0, 4}
	if len(xs) != len(wantIdx) || len(ys) != len(wantIdx) {
		t.Fatalf("expected %d kept rows, got %d", len(wantIdx), len(xs))
	}
	for i, w := range wantIdx {
		if idx[i] != w {
			t.Errorf("kept index %d = %d, want %d", i, idx[i], w)
		}
	}

	// Without the log transform, negative x survives.
	xs, _, _, err = cleanXY(x, y, false)
	if err != nil {
		t.Fatalf("cleanXY failed: %v", err)
	}
	if len(xs) != 3 {
		t.Fatalf("expected 3 kept rows without log transform, got %d", len(xs))
	}
}

func TestCleanXYMismatchedLengths(t *testing.T) {
	_, _, _, err := cleanXY([]float64{1, 2}, []float64{1}, false)
	if err == nil {
		t.Fatal("expected error for mismatched lengths")
	}
}
