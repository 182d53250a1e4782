// Package compress provides compression and decompression codecs for dataset
// files loaded by the dataset package.
//
// Tabular source files (delimited text, usually CSV) are frequently stored or
// cached compressed. The loader detects the compression type from the filename
// extension (see format.DetectCompression) and routes the raw bytes through the
// matching codec before parsing.
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// Five codecs are provided:
//   - None: pass-through (plain .csv/.tsv files)
//   - Zstd: Zstandard (cgo gozstd implementation, pure-Go fallback without cgo)
//   - S2: S2 block compression (cached intermediate datasets)
//   - LZ4: LZ4 frame format
//   - Gzip: gzip, the most common wire format for published CSV datasets
//
// # Usage
//
//	codec, err := compress.GetCodec(format.DetectCompression("waste.csv.gz"))
//	if err != nil {
//	    return err
//	}
//	raw, err := codec.Decompress(fileBytes)
//
// All codecs treat empty input as empty output. Returned slices are newly
// allocated and owned by the caller; input slices are never modified.
package compress
