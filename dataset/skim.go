package dataset

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// ColumnSummary holds per-column summary statistics produced by Skim.
// Statistics are computed over non-missing cells only.
type ColumnSummary struct {
	Name    string
	N       int // non-missing cells
	Missing int
	Mean    float64
	StdDev  float64
	Min     float64
	P25     float64
	Median  float64
	P75     float64
	Max     float64
	Hist    string // eight-bin sparkline of the value distribution
}

// Skim computes a summary for every numeric column, in column order.
func (d *Dataset) Skim() []ColumnSummary {
	out := make([]ColumnSummary, 0, len(d.names))
	for _, name := range d.names {
		out = append(out, summarizeColumn(name, d.cols[name]))
	}

	return out
}

// SkimString renders the Skim summaries as an aligned text table.
func (d *Dataset) SkimString() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-20s %6s %5s %12s %12s %12s %12s %12s  %s\n",
		"column", "n", "miss", "mean", "sd", "min", "median", "max", "hist")
	for _, s := range d.Skim() {
		fmt.Fprintf(&sb, "%-20s %6d %5d %12.4g %12.4g %12.4g %12.4g %12.4g  %s\n",
			s.Name, s.N, s.Missing, s.Mean, s.StdDev, s.Min, s.Median, s.Max, s.Hist)
	}

	return sb.String()
}

func summarizeColumn(name string, col []float64) ColumnSummary {
	vals := make([]float64, 0, len(col))
	missing := 0
	for _, v := range col {
		if finite(v) {
			vals = append(vals, v)
		} else {
			missing++
		}
	}

	s := ColumnSummary{Name: name, N: len(vals), Missing: missing}
	if len(vals) == 0 {
		s.Mean = math.NaN()
		s.StdDev = math.NaN()
		s.Min = math.NaN()
		s.P25 = math.NaN()
		s.Median = math.NaN()
		s.P75 = math.NaN()
		s.Max = math.NaN()

		return s
	}

	sort.Float64s(vals)
	s.Mean, s.StdDev = stat.MeanStdDev(vals, nil)
	s.Min = vals[0]
	s.Max = vals[len(vals)-1]
	s.P25 = stat.Quantile(0.25, stat.Empirical, vals, nil)
	s.Median = stat.Quantile(0.5, stat.Empirical, vals, nil)
	s.P75 = stat.Quantile(0.75, stat.Empirical, vals, nil)
	s.Hist = sparkline(vals, 8)

	return s
}

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// sparkline renders a tiny histogram of sorted values using block runes.
func sparkline(sorted []float64, bins int) string {
	lo, hi := sorted[0], sorted[len(sorted)-1]
	if hi == lo {
		return strings.Repeat(string(sparkRunes[len(sparkRunes)-1]), 1)
	}

	counts := make([]int, bins)
	width := (hi - lo) / float64(bins)
	for _, v := range sorted {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}

	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}

	runes := make([]rune, bins)
	for i, c := range counts {
		level := 0
		if c > 0 {
			level = (c*(len(sparkRunes)-1) + maxCount - 1) / maxCount
		}
		runes[i] = sparkRunes[level]
	}

	return string(runes)
}
