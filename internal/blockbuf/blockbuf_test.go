package blockbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ExactLength(t *testing.T) {
	bb := Get(100)
	require.NotNil(t, bb)
	assert.Equal(t, 100, len(bb.Bytes()))

	Put(bb)
}

func TestGet_GrowsBeyondDefaultSize(t *testing.T) {
	bb := Get(DefaultSize * 2)
	assert.Equal(t, DefaultSize*2, len(bb.Bytes()))

	Put(bb)
}

func TestGet_Zero(t *testing.T) {
	bb := Get(0)
	assert.Equal(t, 0, len(bb.Bytes()))

	Put(bb)
}

func TestPut_DiscardsOversizedBuffer(t *testing.T) {
	bb := Get(MaxRetained + 1)
	assert.Greater(t, cap(bb.Bytes()), MaxRetained)

	// Should not panic even though the buffer exceeds the retention ceiling.
	assert.NotPanics(t, func() { Put(bb) })
}

func TestGetPut_Reuse(t *testing.T) {
	bb1 := Get(10)
	bb1.Bytes()[0] = 0xFF
	Put(bb1)

	bb2 := Get(10)
	assert.Equal(t, 10, len(bb2.Bytes()))
	Put(bb2)
}
