package compress

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ulikunitz/xz/lzma"
)

// LZMADecompressor handles compression_type LZMA.
//
// UnityFS stores a raw LZMA stream per compressed payload: no container
// header, just the encoder's output. github.com/ulikunitz/xz/lzma only reads
// the classic ".lzma" framing (a 5-byte properties/dictionary-size header
// followed by an 8-byte little-endian uncompressed size), so this
// implementation synthesizes that 13-byte header from the properties Unity's
// encoder uses (lc=3, lp=0, pb=2, the de facto default for every LZMA SDK
// caller that doesn't negotiate custom properties) and the size this
// capability already knows from the block/BlocksInfo table, then feeds the
// combined stream to lzma.NewReader.
type LZMADecompressor struct{}

// lzmaDictSize returns the dictionary size written into the synthesized
// header: the smallest 2<<i or 3<<i (i from 11 to 30) that is at least
// uncompressedSize, or 1<<26 when none is.
func lzmaDictSize(uncompressedSize int) uint32 {
	size := uint32(uncompressedSize)
	for i := uint32(11); i <= 30; i++ {
		if size <= (2 << i) {
			return 2 << i
		}
		if size <= (3 << i) {
			return 3 << i
		}
	}

	return 1 << 26
}

var _ Decompressor = LZMADecompressor{}

const lzmaDefaultPropsByte = 0x5D // lc=3, lp=0, pb=2

func (LZMADecompressor) Decompress(data []byte, expectedSize int) ([]byte, error) {
	if expectedSize == 0 {
		return nil, nil
	}

	header := make([]byte, 13)
	header[0] = lzmaDefaultPropsByte
	binary.LittleEndian.PutUint32(header[1:5], lzmaDictSize(expectedSize))
	binary.LittleEndian.PutUint64(header[5:13], uint64(expectedSize))

	stream := make([]byte, 0, len(header)+len(data))
	stream = append(stream, header...)
	stream = append(stream, data...)

	r, err := lzma.NewReader(bytes.NewReader(stream))
	if err != nil {
		return nil, fmt.Errorf("lzma: init reader: %w", err)
	}

	dst := make([]byte, expectedSize)
	n, err := io.ReadFull(r, dst)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("lzma: decompress: %w", err)
	}

	return dst[:n], nil
}
