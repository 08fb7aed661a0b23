package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDefaultSize = 1024 * 16

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	require.NotNil(t, bb.B)
	assert.Equal(t, 0, len(bb.B))
	assert.Equal(t, 1024, cap(bb.B))
}

func TestByteBuffer_Bytes(t *testing.T) {
	bb := NewByteBuffer(testDefaultSize)
	bb.Grow(5)
	bb.SetLength(5)
	copy(bb.B, []byte("hello"))

	got := bb.Bytes()
	assert.Equal(t, []byte("hello"), got)
	assert.True(t, &bb.B[0] == &got[0], "Bytes should return the same underlying array")
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(testDefaultSize)
	bb.Grow(9)
	bb.SetLength(9)
	originalCap := cap(bb.B)

	bb.Reset()

	assert.Equal(t, 0, len(bb.B))
	assert.Equal(t, originalCap, cap(bb.B))
}

func TestByteBuffer_SetLength(t *testing.T) {
	bb := NewByteBuffer(testDefaultSize)
	bb.SetLength(100)
	assert.Equal(t, 100, len(bb.B))
}

func TestByteBuffer_SetLength_PanicsOnNegative(t *testing.T) {
	bb := NewByteBuffer(testDefaultSize)
	assert.Panics(t, func() { bb.SetLength(-1) })
}

func TestByteBuffer_SetLength_PanicsBeyondCapacity(t *testing.T) {
	bb := NewByteBuffer(16)
	assert.Panics(t, func() { bb.SetLength(32) })
}

func TestByteBuffer_Grow_SufficientCapacity(t *testing.T) {
	bb := NewByteBuffer(testDefaultSize)
	originalCap := cap(bb.B)

	bb.Grow(100)

	assert.Equal(t, originalCap, cap(bb.B), "should not reallocate when capacity is sufficient")
}

func TestByteBuffer_Grow_SmallBuffer(t *testing.T) {
	bb := NewByteBuffer(testDefaultSize)
	bb.SetLength(testDefaultSize)

	bb.Grow(1024)

	assert.GreaterOrEqual(t, cap(bb.B), testDefaultSize+1024)
	assert.Equal(t, testDefaultSize, len(bb.B), "length should not change")
}

func TestByteBuffer_Grow_LargeBuffer(t *testing.T) {
	largeSize := 4*testDefaultSize + 1024
	bb := NewByteBuffer(largeSize)
	bb.SetLength(largeSize)

	bb.Grow(2048)

	assert.GreaterOrEqual(t, cap(bb.B), largeSize+2048)
}

func TestByteBuffer_Grow_PreservesData(t *testing.T) {
	bb := NewByteBuffer(testDefaultSize)
	testData := []byte("important data that must be preserved")
	bb.Grow(len(testData))
	bb.SetLength(len(testData))
	copy(bb.B, testData)

	bb.Grow(testDefaultSize * 2)

	assert.Equal(t, testData, bb.B)
}

func TestByteBuffer_Grow_ZeroBytes(t *testing.T) {
	bb := NewByteBuffer(testDefaultSize)
	originalCap := cap(bb.B)

	bb.Grow(0)

	assert.Equal(t, originalCap, cap(bb.B))
}

func TestNewByteBufferPool(t *testing.T) {
	pool := NewByteBufferPool(8192, 65536)

	require.NotNil(t, pool)

	bb := pool.Get()
	require.NotNil(t, bb)
	assert.GreaterOrEqual(t, cap(bb.B), 8192)

	pool.Put(bb)
}

func TestByteBufferPool_CustomSizes(t *testing.T) {
	tests := []struct {
		name         string
		defaultSize  int
		maxThreshold int
	}{
		{"small pool", 1024, 4096},
		{"medium pool", 16384, 131072},
		{"large pool", 1048576, 8388608},
		{"no threshold", 8192, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewByteBufferPool(tt.defaultSize, tt.maxThreshold)
			bb := pool.Get()
			assert.GreaterOrEqual(t, cap(bb.B), tt.defaultSize)
			pool.Put(bb)
		})
	}
}

func TestByteBufferPool_MaxThreshold_Discard(t *testing.T) {
	pool := NewByteBufferPool(1024, 4096)

	bb := pool.Get()
	bb.Grow(10000)
	assert.Greater(t, cap(bb.B), 4096)

	assert.NotPanics(t, func() { pool.Put(bb) })

	bb2 := pool.Get()
	assert.LessOrEqual(t, cap(bb2.B), 4096*2, "should not reuse a buffer larger than the threshold")
}

func TestByteBufferPool_MaxThreshold_Zero(t *testing.T) {
	pool := NewByteBufferPool(1024, 0)

	bb := pool.Get()
	bb.Grow(1024 * 1024)
	assert.Greater(t, cap(bb.B), 100000)

	pool.Put(bb)

	bb2 := pool.Get()
	assert.NotNil(t, bb2)
}

func TestByteBufferPool_Put_Nil(t *testing.T) {
	pool := NewByteBufferPool(1024, 4096)

	assert.NotPanics(t, func() {
		pool.Put(nil)
	})
}

func TestByteBufferPool_ConcurrentAccess(t *testing.T) {
	pool := NewByteBufferPool(1024, 65536)

	const numGoroutines = 100
	const numIterations = 1000

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < numIterations; j++ {
				bb := pool.Get()
				bb.Grow(4)
				bb.SetLength(4)
				copy(bb.B, []byte("data"))
				assert.Equal(t, 4, len(bb.B))
				pool.Put(bb)
			}
		}()
	}

	wg.Wait()
}
