package format

import "testing"

func TestDetectCompression(t *testing.T) {
	tests := []struct {
		path string
		want CompressionType
	}{
		{"waste.csv", CompressionNone},
		{"waste.tsv", CompressionNone},
		{"waste.csv.zst", CompressionZstd},
		{"waste.csv.zstd", CompressionZstd},
		{"waste.csv.s2", CompressionS2},
		{"waste.csv.lz4", CompressionLZ4},
		{"waste.csv.gz", CompressionGzip},
		{"WASTE.CSV.GZ", CompressionGzip},
		{"data/evals.csv.gzip", CompressionGzip},
		{"noext", CompressionNone},
	}

	for _, tt := range tests {
		if got := DetectCompression(tt.path); got != tt.want {
			t.Errorf("DetectCompression(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}
}

func TestCompressionTypeString(t *testing.T) {
	tests := []struct {
		typ  CompressionType
		want string
	}{
		{CompressionNone, "None"},
		{CompressionZstd, "Zstd"},
		{CompressionS2, "S2"},
		{CompressionLZ4, "LZ4"},
		{CompressionGzip, "Gzip"},
		{CompressionType(0xFF), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("CompressionType(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestFitMethodString(t *testing.T) {
	if MethodOLS.String() != "OLS" {
		t.Errorf("MethodOLS.String() = %q", MethodOLS.String())
	}
	if MethodBayes.String() != "Bayes" {
		t.Errorf("MethodBayes.String() = %q", MethodBayes.String())
	}
	if FitMethod(0).String() != "Unknown" {
		t.Errorf("FitMethod(0).String() = %q", FitMethod(0).String())
	}
}
