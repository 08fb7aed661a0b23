package compress

import "github.com/go-unity/unitybundle/errs"

// LZHAMDecompressor is a placeholder for compression_type LZHAM.
//
// No maintained Go binding for LZHAM exists: it is a C++-only codec with no
// pure-Go port and no actively maintained cgo wrapper in the module
// ecosystem. The tag is still structurally valid, so this capability
// recognizes it rather than silently misrouting it to another codec, and
// reports UnsupportedCompression until a host supplies a real
// implementation through a custom Registry (see DefaultRegistry).
type LZHAMDecompressor struct{}

var _ Decompressor = LZHAMDecompressor{}

func (LZHAMDecompressor) Decompress(data []byte, expectedSize int) ([]byte, error) {
	return nil, &errs.UnsupportedCompression{Tag: 4}
}
