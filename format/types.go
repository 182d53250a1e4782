package format

import (
	"path/filepath"
	"strings"
)

type (
	CompressionType uint8
	FitMethod       uint8
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 block compression.
	CompressionGzip CompressionType = 0x5 // CompressionGzip represents gzip compression.

	MethodOLS   FitMethod = 0x1 // MethodOLS represents ordinary least squares fitting.
	MethodBayes FitMethod = 0x2 // MethodBayes represents Bayesian conjugate fitting.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionGzip:
		return "Gzip"
	default:
		return "Unknown"
	}
}

func (m FitMethod) String() string {
	switch m {
	case MethodOLS:
		return "OLS"
	case MethodBayes:
		return "Bayes"
	default:
		return "Unknown"
	}
}

// DetectCompression infers the compression type of a dataset file from its
// filename extension. Unrecognized extensions (including plain .csv and .tsv)
// map to CompressionNone.
func DetectCompression(path string) CompressionType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return CompressionZstd
	case ".s2":
		return CompressionS2
	case ".lz4":
		return CompressionLZ4
	case ".gz", ".gzip":
		return CompressionGzip
	default:
		return CompressionNone
	}
}
