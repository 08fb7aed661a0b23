package compress

// NoOpDecompressor handles compression_type None: the payload was written
// verbatim, so decompression is a passthrough. The outer Decompress entry
// point still enforces that the payload's length equals the declared
// uncompressed size.
type NoOpDecompressor struct{}

var _ Decompressor = NoOpDecompressor{}

// Decompress returns data unchanged, sharing its underlying array.
//
// Note: the returned slice aliases the input. Callers must not mutate data
// after calling this method if they intend to keep using the result.
func (NoOpDecompressor) Decompress(data []byte, expectedSize int) ([]byte, error) {
	return data, nil
}
