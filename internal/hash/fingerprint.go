package hash

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Sum64 computes the xxHash64 of the given string.
func Sum64(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Columns computes an order-sensitive xxHash64 fingerprint over named float64
// columns. The digest covers each column name followed by the little-endian IEEE
// 754 bits of its values, so two datasets with identical names and cells produce
// the same fingerprint. NaN cells hash to the canonical quiet NaN bit pattern.
func Columns(names []string, cols [][]float64) uint64 {
	d := xxhash.New()
	var buf [8]byte

	for i, name := range names {
		_, _ = d.WriteString(name)
		for _, v := range cols[i] {
			bits := math.Float64bits(v)
			if v != v {
				bits = math.Float64bits(math.NaN())
			}
			binary.LittleEndian.PutUint64(buf[:], bits)
			_, _ = d.Write(buf[:])
		}
	}

	return d.Sum64()
}
