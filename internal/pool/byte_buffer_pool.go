// Package pool implements a sync.Pool-backed scratch-buffer pool. It backs
// internal/blockbuf, which hands out per-storage-block read buffers and
// returns them once a block's compressed payload has been decompressed.
package pool

import "sync"

// ByteBuffer is a reusable, growable byte slice.
type ByteBuffer struct {
	B []byte
}

// defaultGrowIncrement is the fixed step Grow uses for small buffers to
// minimize reallocations before switching to proportional growth.
const defaultGrowIncrement = 1024 * 16

// NewByteBuffer creates a ByteBuffer with the given initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer without releasing its backing array.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// SetLength sets the buffer's length to n. Panics if n is negative or
// exceeds the current capacity; callers must Grow first.
func (bb *ByteBuffer) SetLength(n int) {
	if n < 0 || n > cap(bb.B) {
		panic("pool: SetLength: invalid length")
	}
	bb.B = bb.B[:n]
}

// Grow ensures the buffer can hold requiredBytes more bytes without a
// further reallocation.
//
// Growth strategy:
//   - Small buffers (<64KB) grow by defaultGrowIncrement, keeping
//     reallocations rare across a long run of small block reads.
//   - Larger buffers grow by 25% of current capacity, balancing reallocation
//     cost against memory pinned by one oversized block.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := defaultGrowIncrement
	if cap(bb.B) > 4*defaultGrowIncrement {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// ByteBufferPool pools ByteBuffers that start at a given default size,
// discarding any buffer whose capacity has grown past maxThreshold instead
// of retaining it.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool whose fresh buffers start at defaultSize.
// maxThreshold of 0 disables the retention ceiling.
func NewByteBufferPool(defaultSize, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any { return NewByteBuffer(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool, allocating a fresh one if empty.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns bb to the pool, unless its capacity exceeds maxThreshold, in
// which case it is discarded so one oversized block doesn't pin a large
// allocation in the pool indefinitely.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}
