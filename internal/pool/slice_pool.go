package pool

import "sync"

// Slice pools for efficient reuse of float64 scratch buffers.
// The breakpoint estimator evaluates many candidate cuts per refinement sweep and
// the Bayesian sampler materializes thousands of posterior draws; both reuse
// buffers from here instead of allocating per candidate or per draw.
var float64SlicePool = sync.Pool{
	New: func() any { return &[]float64{} },
}

// GetFloat64Slice retrieves and resizes a float64 slice from the pool.
//
// The returned slice has length equal to size. If the pooled slice has
// insufficient capacity a new slice is allocated. The caller must call the
// returned cleanup function (typically with defer) to return the slice to the
// pool.
//
// Example:
//
//	resid, cleanup := pool.GetFloat64Slice(len(y))
//	defer cleanup()
//	// Use resid...
func GetFloat64Slice(size int) ([]float64, func()) {
	ptr, _ := float64SlicePool.Get().(*[]float64)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]float64, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
	}

	return slice, func() { float64SlicePool.Put(ptr) }
}
