package dataset

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/arloliu/segfit/internal/hash"
)

var (
	// ErrUnknownColumn indicates a column name not present in the dataset.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrSchema indicates a structural problem with the loaded table, such as
	// columns of unequal length or a table with no rows.
	ErrSchema = errors.New("invalid dataset schema")

	errInvalidDelimiter = errors.New("invalid delimiter")
	errNilHTTPClient    = errors.New("nil http client")
)

// Dataset is an immutable table of named columns over a fixed row count.
// Numeric columns hold float64 values with NaN marking missing cells; label
// columns hold strings.
type Dataset struct {
	name   string
	names  []string // numeric column order
	cols   map[string][]float64
	labels map[string][]string
	nrow   int
}

// New creates a Dataset from numeric columns. Column order follows names,
// which must match the keys of cols. All columns must share the same non-zero
// length.
func New(name string, names []string, cols map[string][]float64) (*Dataset, error) {
	if len(names) == 0 || len(names) != len(cols) {
		return nil, fmt.Errorf("%w: %d column names for %d columns", ErrSchema, len(names), len(cols))
	}

	nrow := -1
	copied := make(map[string][]float64, len(cols))
	for _, n := range names {
		col, ok := cols[n]
		if !ok {
			return nil, fmt.Errorf("%w: column %q missing from values", ErrSchema, n)
		}
		if nrow == -1 {
			nrow = len(col)
		} else if len(col) != nrow {
			return nil, fmt.Errorf("%w: column %q has %d rows, expected %d", ErrSchema, n, len(col), nrow)
		}
		copied[n] = slices.Clone(col)
	}
	if nrow == 0 {
		return nil, fmt.Errorf("%w: dataset has no rows", ErrSchema)
	}

	return &Dataset{
		name:  name,
		names: slices.Clone(names),
		cols:  copied,
		nrow:  nrow,
	}, nil
}

// Name returns the dataset name.
func (d *Dataset) Name() string { return d.name }

// NumRows returns the row count.
func (d *Dataset) NumRows() int { return d.nrow }

// NumCols returns the number of numeric columns.
func (d *Dataset) NumCols() int { return len(d.names) }

// Columns returns the numeric column names in order.
func (d *Dataset) Columns() []string { return slices.Clone(d.names) }

// Column returns a copy of the named numeric column.
func (d *Dataset) Column(name string) ([]float64, error) {
	col, ok := d.cols[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}

	return slices.Clone(col), nil
}

// Labels returns a copy of the named label column. Label columns come from
// non-numeric source columns and are not part of the numeric schema.
func (d *Dataset) Labels(name string) ([]string, error) {
	col, ok := d.labels[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}

	return slices.Clone(col), nil
}

// LabelColumns returns the label column names in sorted order.
func (d *Dataset) LabelColumns() []string {
	names := make([]string, 0, len(d.labels))
	for n := range d.labels {
		names = append(names, n)
	}
	slices.Sort(names)

	return names
}

// XY extracts a predictor/outcome column pair, dropping every row where
// either value is NaN or infinite. It returns the cleaned slices and the
// number of rows dropped.
func (d *Dataset) XY(xCol, yCol string) (x []float64, y []float64, dropped int, err error) {
	xs, ok := d.cols[xCol]
	if !ok {
		return nil, nil, 0, fmt.Errorf("%w: %q", ErrUnknownColumn, xCol)
	}
	ys, ok := d.cols[yCol]
	if !ok {
		return nil, nil, 0, fmt.Errorf("%w: %q", ErrUnknownColumn, yCol)
	}

	x = make([]float64, 0, d.nrow)
	y = make([]float64, 0, d.nrow)
	for i := range d.nrow {
		if !finite(xs[i]) || !finite(ys[i]) {
			dropped++

			continue
		}
		x = append(x, xs[i])
		y = append(y, ys[i])
	}

	return x, y, dropped, nil
}

// Fingerprint returns a stable xxHash64 fingerprint over the numeric column
// names and values. Two datasets with identical schemas and cell values share
// a fingerprint, so it can key caches of fitted models.
func (d *Dataset) Fingerprint() uint64 {
	cols := make([][]float64, len(d.names))
	for i, n := range d.names {
		cols[i] = d.cols[n]
	}

	return hash.Columns(d.names, cols)
}

// String returns a short human-readable description.
func (d *Dataset) String() string {
	return fmt.Sprintf("Dataset(%s: %d rows, %d columns)", d.name, d.nrow, len(d.names))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
