package compress

import (
	"github.com/go-unity/unitybundle/errs"
	"github.com/go-unity/unitybundle/format"
)

// Decompressor inflates a single compressed payload. Implementations must
// return exactly expectedSize bytes on success; Decompress (below) enforces
// that contract uniformly so individual codecs only need to decompress.
//
// Thread Safety: every builtin Decompressor in this package is stateless and
// safe for concurrent use.
type Decompressor interface {
	Decompress(data []byte, expectedSize int) ([]byte, error)
}

// Registry maps a compression tag to the Decompressor that handles it. A
// host can copy DefaultRegistry's result and override or add entries (for
// example, a real LZHAM codec) without forking this package.
type Registry map[format.CompressionType]Decompressor

// DefaultRegistry returns a new Registry populated with this package's
// builtin codecs: None, LZMA, LZ4, LZ4HC (sharing LZ4's decompressor, since
// "HC" only changes how the encoder searches for matches), and a stub LZHAM
// entry that always reports errs.UnsupportedCompression.
func DefaultRegistry() Registry {
	return Registry{
		format.CompressionNone:  NoOpDecompressor{},
		format.CompressionLZMA:  LZMADecompressor{},
		format.CompressionLZ4:   LZ4Decompressor{},
		format.CompressionLZ4HC: LZ4Decompressor{},
		format.CompressionLZHAM: LZHAMDecompressor{},
	}
}

// Decompress looks up algo in reg, decompresses data, and verifies the
// result is exactly expectedSize bytes long — the single place that enforces
// every codec's size-equality contract.
func Decompress(reg Registry, data []byte, expectedSize int, algo format.CompressionType) ([]byte, error) {
	dec, ok := reg[algo]
	if !ok {
		return nil, &errs.UnsupportedCompression{Tag: uint8(algo)}
	}

	out, err := dec.Decompress(data, expectedSize)
	if err != nil {
		return nil, err
	}

	if len(out) != expectedSize {
		return nil, &errs.DecompressionSizeMismatch{
			Actual:   len(out),
			Expected: expectedSize,
			Where:    "compress." + algo.String(),
		}
	}

	return out, nil
}
