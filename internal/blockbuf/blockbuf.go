// Package blockbuf pools the scratch buffers the data-region builder uses to
// read each storage block's compressed payload before handing it to a
// decompressor, amortizing allocation across blocks within one parse and
// across separate parses in the same process.
package blockbuf

import "github.com/go-unity/unitybundle/internal/pool"

// DefaultSize is the initial capacity of a pooled buffer, sized for a
// typical compressed storage block.
const DefaultSize = 64 * 1024

// MaxRetained is the capacity ceiling above which a buffer is discarded
// instead of being returned to the pool, so one oversized block does not
// pin a large allocation in the pool indefinitely.
const MaxRetained = 8 * 1024 * 1024

var blockPool = pool.NewByteBufferPool(DefaultSize, MaxRetained)

// Get returns a pooled buffer whose length is exactly n, growing its
// capacity first if needed.
func Get(n int) *pool.ByteBuffer {
	bb := blockPool.Get()
	bb.Reset()
	bb.Grow(n)
	bb.SetLength(n)

	return bb
}

// Put returns bb to the pool for reuse.
func Put(bb *pool.ByteBuffer) {
	blockPool.Put(bb)
}
