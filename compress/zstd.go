package compress

// ZstdCompressor provides Zstandard compression for dataset files.
//
// Zstandard offers the best compression ratio of the supported codecs and is the
// recommended format for archiving cleaned datasets:
//   - Long-term retention of cleaned observation tables
//   - Shipping datasets to analysis hosts where bandwidth is limited
//
// Two implementations are selected at build time:
//   - cgo builds use valyala/gozstd (libzstd bindings, fastest)
//   - non-cgo builds fall back to the pure-Go klauspost/compress/zstd
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec with default settings.
//
// Example:
//
//	codec := compress.NewZstdCompressor()
//	raw, err := codec.Decompress(fileBytes)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
