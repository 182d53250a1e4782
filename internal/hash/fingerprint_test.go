package hash

import (
	"math"
	"testing"
)

func TestSum64Deterministic(t *testing.T) {
	a := Sum64("gdp_per_capita")
	b := Sum64("gdp_per_capita")
	if a != b {
		t.Fatalf("Sum64 not deterministic: %d != %d", a, b)
	}
	if Sum64("gdp_per_capita") == Sum64("mismanaged_share") {
		t.Fatal("distinct strings should not collide in this test vector")
	}
}

func TestColumnsFingerprint(t *testing.T) {
	names := []string{"x", "y"}
	cols := [][]float64{{1, 2, 3}, {4, 5, 6}}

	fp1 := Columns(names, cols)
	fp2 := Columns(names, [][]float64{{1, 2, 3}, {4, 5, 6}})
	if fp1 != fp2 {
		t.Fatalf("identical columns produced different fingerprints: %d != %d", fp1, fp2)
	}

	// Changing a single cell must change the fingerprint.
	fp3 := Columns(names, [][]float64{{1, 2, 3}, {4, 5, 6.000001}})
	if fp1 == fp3 {
		t.Fatal("cell change did not change fingerprint")
	}

	// Column order matters.
	fp4 := Columns([]string{"y", "x"}, [][]float64{{4, 5, 6}, {1, 2, 3}})
	if fp1 == fp4 {
		t.Fatal("column order should be part of the fingerprint")
	}
}

func TestColumnsCanonicalNaN(t *testing.T) {
	// Any NaN payload must hash identically.
	nan1 := math.NaN()
	nan2 := math.Float64frombits(math.Float64bits(math.NaN()) | 0xABC)

	fp1 := Columns([]string{"x"}, [][]float64{{1, nan1, 3}})
	fp2 := Columns([]string{"x"}, [][]float64{{1, nan2, 3}})
	if fp1 != fp2 {
		t.Fatalf("NaN payloads hashed differently: %d != %d", fp1, fp2)
	}
}
