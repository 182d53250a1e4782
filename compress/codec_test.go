package compress

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/segfit/format"
)

// sampleCSV is a realistic payload: delimited text with repeated country names
// compresses well under every codec.
var sampleCSV = []byte(strings.Repeat("entity,year,gdp_per_capita,mismanaged_share\n", 3) +
	"Albania,2010,4094.35,0.232\n" +
	"Albania,2011,4437.18,0.229\n" +
	"Algeria,2010,4480.72,0.198\n" +
	"Angola,2010,3587.88,0.312\n")

func TestCodecRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		codec Codec
	}{
		{"noop", NewNoOpCompressor()},
		{"zstd", NewZstdCompressor()},
		{"s2", NewS2Compressor()},
		{"lz4", NewLZ4Compressor()},
		{"gzip", NewGzipCompressor()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compressed, err := tt.codec.Compress(sampleCSV)
			require.NoError(t, err)
			require.NotEmpty(t, compressed)

			decompressed, err := tt.codec.Decompress(compressed)
			require.NoError(t, err)
			require.True(t, bytes.Equal(sampleCSV, decompressed),
				"round trip should reproduce the original payload")
		})
	}
}

func TestCodecEmptyInput(t *testing.T) {
	codecs := []Codec{
		NewNoOpCompressor(),
		NewZstdCompressor(),
		NewS2Compressor(),
		NewLZ4Compressor(),
		NewGzipCompressor(),
	}

	for _, codec := range codecs {
		compressed, err := codec.Compress(nil)
		require.NoError(t, err)
		require.Nil(t, compressed)

		decompressed, err := codec.Decompress(nil)
		require.NoError(t, err)
		require.Nil(t, decompressed)
	}
}

func TestCodecCorruptedInput(t *testing.T) {
	garbage := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x01, 0x02, 0x03}

	for _, tt := range []struct {
		name  string
		codec Codec
	}{
		{"zstd", NewZstdCompressor()},
		{"gzip", NewGzipCompressor()},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.codec.Decompress(garbage)
			require.Error(t, err, "corrupted %s input should fail", tt.name)
		})
	}
}

func TestCreateCodec(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
		format.CompressionGzip,
	} {
		codec, err := CreateCodec(ct, "dataset")
		require.NoError(t, err)
		require.NotNil(t, codec)
	}

	_, err := CreateCodec(format.CompressionType(0xFF), "dataset")
	require.Error(t, err)
	require.Contains(t, err.Error(), "dataset")
}

func TestGetCodec(t *testing.T) {
	codec, err := GetCodec(format.CompressionGzip)
	require.NoError(t, err)
	require.NotNil(t, codec)

	_, err = GetCodec(format.CompressionType(0xFF))
	require.Error(t, err)
}
