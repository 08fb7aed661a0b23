package compress

import (
	"github.com/pierrec/lz4/v4"
)

// LZ4Decompressor handles compression_type LZ4 and LZ4HC. Both share the
// same block wire format; LZ4HC only changes how the (out of scope, write
// side) encoder searches for matches, so one decompressor serves both tags.
type LZ4Decompressor struct{}

var _ Decompressor = LZ4Decompressor{}

// Decompress inflates an LZ4 block into a buffer sized exactly expectedSize,
// since the header/block table always states the uncompressed size up front
// and this capability's contract requires that exact length back.
func (LZ4Decompressor) Decompress(data []byte, expectedSize int) ([]byte, error) {
	if expectedSize == 0 {
		return nil, nil
	}

	dst := make([]byte, expectedSize)

	n, err := lz4.UncompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}
