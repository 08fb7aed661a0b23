package compress

import (
	"bytes"
	"testing"

	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz/lzma"

	"github.com/go-unity/unitybundle/errs"
	"github.com/go-unity/unitybundle/format"
)

func TestDefaultRegistry_HasAllFiveTags(t *testing.T) {
	reg := DefaultRegistry()

	for _, tag := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionLZMA,
		format.CompressionLZ4,
		format.CompressionLZ4HC,
		format.CompressionLZHAM,
	} {
		_, ok := reg[tag]
		assert.True(t, ok, "registry missing tag %v", tag)
	}
}

func TestDecompress_NoOp(t *testing.T) {
	reg := DefaultRegistry()
	payload := []byte("hello unityfs")

	out, err := Decompress(reg, payload, len(payload), format.CompressionNone)
	require.NoError(t, err)
	assert.Equal(t, payload, out)
}

func TestDecompress_UnknownTag(t *testing.T) {
	reg := Registry{}

	_, err := Decompress(reg, []byte{1, 2, 3}, 3, format.CompressionNone)
	require.Error(t, err)

	var unsupported *errs.UnsupportedCompression
	assert.ErrorAs(t, err, &unsupported)
}

func TestDecompress_LZHAMStub(t *testing.T) {
	reg := DefaultRegistry()

	_, err := Decompress(reg, []byte{1, 2, 3}, 3, format.CompressionLZHAM)
	require.Error(t, err)

	var unsupported *errs.UnsupportedCompression
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, uint8(4), unsupported.Tag)
}

func TestDecompress_SizeMismatchWrapped(t *testing.T) {
	reg := Registry{format.CompressionNone: shortDecompressor{}}

	_, err := Decompress(reg, []byte{1, 2, 3}, 10, format.CompressionNone)
	require.Error(t, err)

	var mismatch *errs.DecompressionSizeMismatch
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 2, mismatch.Actual)
	assert.Equal(t, 10, mismatch.Expected)
}

func TestLZ4Decompressor_RoundTrip(t *testing.T) {
	plain := bytes.Repeat([]byte("unityfs storage block payload "), 64)

	compressed := make([]byte, len(plain)*2)
	n, err := lz4.CompressBlock(plain, compressed, nil)
	require.NoError(t, err)
	require.Greater(t, n, 0)

	dec := LZ4Decompressor{}
	out, err := dec.Decompress(compressed[:n], len(plain))
	require.NoError(t, err)
	assert.Equal(t, plain, out)
}

func TestLZ4Decompressor_ZeroSize(t *testing.T) {
	dec := LZ4Decompressor{}
	out, err := dec.Decompress(nil, 0)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestLZMADecompressor_RoundTrip(t *testing.T) {
	plain := bytes.Repeat([]byte("unityfs bundle directory bytes "), 32)

	var buf bytes.Buffer
	w, err := lzma.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(plain)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	full := buf.Bytes()
	require.Greater(t, len(full), 13, "lzma stream should include its 13-byte classic header")

	dec := LZMADecompressor{}
	out, err := dec.Decompress(full[13:], len(plain))
	require.NoError(t, err)
	assert.Equal(t, plain, out)
}

func TestLZMADecompressor_ZeroSize(t *testing.T) {
	dec := LZMADecompressor{}
	out, err := dec.Decompress(nil, 0)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestLZMADictSize_GrowsWithInput(t *testing.T) {
	small := lzmaDictSize(1024)
	large := lzmaDictSize(1024 * 1024 * 64)

	assert.Less(t, small, large)
}

// shortDecompressor always returns one byte fewer than the data it is given,
// used to exercise Decompress's size-equality enforcement.
type shortDecompressor struct{}

func (shortDecompressor) Decompress(data []byte, expectedSize int) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}

	return data[:len(data)-1], nil
}
