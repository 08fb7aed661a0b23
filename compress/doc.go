// Package compress implements the decompressor capability: a pure function
// from (compressed bytes, expected output size, algorithm tag) to
// decompressed bytes, used to inflate both the BlocksInfo directory and
// individual storage-block payloads.
//
// # Supported algorithms
//
// UnityFS's compression_type is a closed 6-bit field with five legal values:
//
//	None   (0) - payload copied verbatim; size equality is still enforced
//	LZMA   (1) - github.com/ulikunitz/xz/lzma
//	LZ4    (2) - github.com/pierrec/lz4/v4
//	LZ4HC  (3) - same wire format as LZ4; "HC" only affects the encoder
//	LZHAM  (4) - no maintained Go binding exists; see LZHAMDecompressor
//
// Every codec here is stateless and safe for concurrent use. Decompress is
// the single entry point that enforces the "output length equals
// expected_output_size" contract; individual Decompressor implementations
// only need to decompress.
package compress
