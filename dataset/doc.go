// Package dataset provides typed, immutable in-memory tables for regression
// analysis.
//
// A Dataset replaces the ambient "loaded dataframe" of exploratory analysis
// with an explicit value: named float64 columns over a fixed row count,
// validated at load time, passed into fitting functions rather than mutated in
// place. Non-numeric source columns (country or course names) are retained as
// label columns.
//
// # Loading
//
// Datasets load from delimited text via an io.Reader, a local file, or a URL:
//
//	ds, err := dataset.Load("mismanaged_waste.csv.gz")
//	ds, err = dataset.Fetch(ctx, "https://example.org/plastic_waste.csv")
//
// File and URL loaders decompress transparently based on the filename
// extension (.gz, .zst, .lz4, .s2) before parsing. Parsing is delegated to the
// gota dataframe reader; cells that fail numeric parsing become NaN and are
// handled downstream by the documented row-drop policy.
//
// # Missing Data Policy
//
// Missing cells are represented as NaN inside columns. XY extracts an (x, y)
// pair of columns with every row dropped where either value is missing, and
// reports how many rows were dropped. This is the single, explicit policy for
// the whole module: rows with a missing predictor or outcome never reach
// segmentation.
//
// # Summaries
//
// Skim produces a minimal per-column summary table (count, missing, mean,
// standard deviation, quartiles, histogram sparkline) for a quick look at a
// freshly loaded dataset.
package dataset
