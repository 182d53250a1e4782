package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/segfit/compress"
	"github.com/arloliu/segfit/format"
)

const sampleCSV = `country,gdp,waste_pct
Albania,4500,55.2
Bolivia,3100,60.1
Chile,15000,NA
Denmark,61000,2.3
`

func TestReadCSV(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, "dataset", ds.Name())
	assert.Equal(t, 4, ds.NumRows())
	assert.ElementsMatch(t, []string{"gdp", "waste_pct"}, ds.Columns())
	assert.Equal(t, []string{"country"}, ds.LabelColumns())

	labels, err := ds.Labels("country")
	require.NoError(t, err)
	assert.Equal(t, []string{"Albania", "Bolivia", "Chile", "Denmark"}, labels)

	x, y, dropped, err := ds.XY("gdp", "waste_pct")
	require.NoError(t, err)
	assert.Equal(t, 1, dropped, "NA cell must drop its row")
	assert.Equal(t, []float64{4500, 3100, 61000}, x)
	assert.Equal(t, []float64{55.2, 60.1, 2.3}, y)
}

func TestReadCSVOptions(t *testing.T) {
	tsv := "x\ty\n1\t2\n3\t4\n"
	ds, err := ReadCSV(strings.NewReader(tsv), WithDelimiter('\t'), WithName("tabbed"))
	require.NoError(t, err)
	assert.Equal(t, "tabbed", ds.Name())
	assert.Equal(t, 2, ds.NumRows())

	_, err = ReadCSV(strings.NewReader(tsv), WithDelimiter(0))
	require.Error(t, err)
}

func TestReadCSVCustomNAValues(t *testing.T) {
	csv := "x,y\n1,10\n2,missing\n3,30\n"
	ds, err := ReadCSV(strings.NewReader(csv), WithNAValues([]string{"missing"}))
	require.NoError(t, err)

	_, _, dropped, err := ds.XY("x", "y")
	require.NoError(t, err)
	assert.Equal(t, 1, dropped)
}

func TestReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("x,y\n"))
	require.Error(t, err)

	_, err = ReadCSV(strings.NewReader("a,b\nfoo,bar\n"))
	require.ErrorIs(t, err, ErrSchema, "all-label table has no numeric columns")
}

func TestLoadPlainAndCompressed(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "waste.csv")
	require.NoError(t, os.WriteFile(plain, []byte(sampleCSV), 0o644))

	ds, err := Load(plain)
	require.NoError(t, err)
	assert.Equal(t, "waste.csv", ds.Name())
	assert.Equal(t, 4, ds.NumRows())
	want := ds.Fingerprint()

	for _, ctype := range []format.CompressionType{
		format.CompressionGzip,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := compress.GetCodec(ctype)
		require.NoError(t, err)

		packed, err := codec.Compress([]byte(sampleCSV))
		require.NoError(t, err)

		path := filepath.Join(dir, "waste.csv"+extFor(ctype))
		require.NoError(t, os.WriteFile(path, packed, 0o644))

		got, err := Load(path)
		require.NoError(t, err, "load %s", ctype)
		assert.Equal(t, "waste.csv", got.Name(), "compression extension stripped from name")
		assert.Equal(t, want, got.Fingerprint(), "decompressed content must match %s", ctype)
	}
}

func extFor(ctype format.CompressionType) string {
	switch ctype {
	case format.CompressionGzip:
		return ".gz"
	case format.CompressionZstd:
		return ".zst"
	case format.CompressionS2:
		return ".s2"
	case format.CompressionLZ4:
		return ".lz4"
	default:
		return ""
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	ds, err := Fetch(context.Background(), srv.URL+"/plastic_waste.csv")
	require.NoError(t, err)
	assert.Equal(t, "plastic_waste.csv", ds.Name())
	assert.Equal(t, 4, ds.NumRows())
}

func TestFetchCompressed(t *testing.T) {
	codec, err := compress.GetCodec(format.CompressionGzip)
	require.NoError(t, err)
	packed, err := codec.Compress([]byte(sampleCSV))
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(packed)
	}))
	defer srv.Close()

	ds, err := Fetch(context.Background(), srv.URL+"/plastic_waste.csv.gz")
	require.NoError(t, err)
	assert.Equal(t, "plastic_waste.csv", ds.Name())
	assert.Equal(t, 4, ds.NumRows())
}

func TestFetchErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), srv.URL+"/missing.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Fetch(ctx, srv.URL+"/plastic_waste.csv")
	require.Error(t, err)
}
