package dataset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/arloliu/segfit/compress"
	"github.com/arloliu/segfit/format"
	"github.com/arloliu/segfit/internal/options"
)

// ReadCSV parses a delimited text table from r. The first row is treated as
// the header. Columns whose cells parse as numbers become numeric columns;
// the rest become label columns.
func ReadCSV(r io.Reader, opts ...Option) (*Dataset, error) {
	cfg := defaultLoadConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	return readTable(r, cfg)
}

// Load reads a dataset from a local file, decompressing transparently based
// on the filename extension (.gz, .zst, .zstd, .lz4, .s2). The dataset name
// defaults to the file's base name unless WithName overrides it.
func Load(path string, opts ...Option) (*Dataset, error) {
	cfg := defaultLoadConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.name == "" {
		cfg.name = baseName(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset file: %w", err)
	}

	data, err = maybeDecompress(data, path)
	if err != nil {
		return nil, err
	}

	return readTable(bytes.NewReader(data), cfg)
}

// Fetch downloads a dataset over HTTP. Compressed responses are decompressed
// based on the URL path extension, the same as Load. The dataset name
// defaults to the URL's base name unless WithName overrides it.
func Fetch(ctx context.Context, rawURL string, opts ...Option) (*Dataset, error) {
	cfg := defaultLoadConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse dataset url: %w", err)
	}
	if cfg.name == "" {
		cfg.name = baseName(u.Path)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build dataset request: %w", err)
	}

	resp, err := cfg.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch dataset: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read dataset response: %w", err)
	}

	data, err = maybeDecompress(data, u.Path)
	if err != nil {
		return nil, err
	}

	return readTable(bytes.NewReader(data), cfg)
}

func readTable(r io.Reader, cfg loadConfig) (*Dataset, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.WithDelimiter(cfg.delimiter),
		dataframe.NaNValues(cfg.naValues),
		dataframe.DetectTypes(true),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("parse dataset: %w", df.Err)
	}
	if df.Nrow() == 0 {
		return nil, fmt.Errorf("%w: dataset has no rows", ErrSchema)
	}

	name := cfg.name
	if name == "" {
		name = "dataset"
	}

	var numeric []string
	cols := make(map[string][]float64)
	labels := make(map[string][]string)
	for _, colName := range df.Names() {
		col := df.Col(colName)
		switch col.Type() {
		case series.Float, series.Int, series.Bool:
			numeric = append(numeric, colName)
			cols[colName] = col.Float()
		default:
			labels[colName] = col.Records()
		}
	}
	if len(numeric) == 0 {
		return nil, fmt.Errorf("%w: dataset has no numeric columns", ErrSchema)
	}

	ds, err := New(name, numeric, cols)
	if err != nil {
		return nil, err
	}
	ds.labels = labels

	return ds, nil
}

// maybeDecompress decompresses data when the path carries a recognized
// compression extension, and returns it unchanged otherwise.
func maybeDecompress(data []byte, path string) ([]byte, error) {
	ctype := format.DetectCompression(path)
	if ctype == format.CompressionNone {
		return data, nil
	}

	codec, err := compress.CreateCodec(ctype, "dataset")
	if err != nil {
		return nil, err
	}

	out, err := codec.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("decompress dataset %s: %w", filepath.Ext(path), err)
	}

	return out, nil
}

// baseName strips the directory and any compression extension from path, so
// "data/waste.csv.gz" names the dataset "waste.csv".
func baseName(path string) string {
	base := filepath.Base(path)
	if format.DetectCompression(base) != format.CompressionNone {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return base
}
