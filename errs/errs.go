// Package errs defines the error taxonomy surfaced by unitybundle.
//
// Simple, context-free conditions are sentinel errors. Conditions that must
// carry structured context (an offending path, a byte range, a bitmask, an
// expected-vs-actual size) are small exported struct types implementing
// error and, where they wrap an inner cause, Unwrap. Callers should use
// errors.Is/errors.As rather than inspecting message strings.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrNotSeekable is returned when the input source does not support seeking.
	ErrNotSeekable = errors.New("unitybundle: source is not seekable")

	// ErrInvalidBlockCount is returned when BlocksInfo declares a negative block count.
	ErrInvalidBlockCount = errors.New("unitybundle: invalid block count")

	// ErrInvalidNodeCount is returned when BlocksInfo declares a negative node count.
	ErrInvalidNodeCount = errors.New("unitybundle: invalid node count")

	// ErrEmptyBlocksInfo is returned when the compressed BlocksInfo input is empty.
	ErrEmptyBlocksInfo = errors.New("unitybundle: empty blocksinfo input")

	// ErrBlocksInfoTooSmall is returned when the declared uncompressed size cannot
	// even hold the 16-byte hash prefix.
	ErrBlocksInfoTooSmall = errors.New("unitybundle: blocksinfo too small for hash")

	// ErrTruncatedBlocksInfo is returned when the decompressed BlocksInfo blob
	// ends before a table entry or string is fully readable.
	ErrTruncatedBlocksInfo = errors.New("unitybundle: truncated blocksinfo")

	// ErrEmptyBlockList is returned when the data-region builder is given zero blocks.
	ErrEmptyBlockList = errors.New("unitybundle: empty block list")

	// ErrDataRegionTooLarge is returned when the summed uncompressed block sizes
	// overflow or exceed the configured ceiling.
	ErrDataRegionTooLarge = errors.New("unitybundle: data region exceeds maximum buffer size")

	// ErrPathTooLong is returned when a node or string path exceeds the configured
	// or default maximum length.
	ErrPathTooLong = errors.New("unitybundle: path exceeds maximum length")
)

// Truncated is returned by the endian reader on a short read.
type Truncated struct {
	// Want is the number of bytes the reader needed.
	Want int
	// Got is the number of bytes actually available.
	Got int
}

func (e *Truncated) Error() string {
	return fmt.Sprintf("unitybundle: truncated read: want %d bytes, got %d", e.Want, e.Got)
}

// InvalidUtf8 is returned when a null-terminated string fails UTF-8 validation
// or exceeds its maximum allowed length before a terminator is found.
type InvalidUtf8 struct {
	MaxLen int
}

func (e *InvalidUtf8) Error() string {
	return fmt.Sprintf("unitybundle: invalid utf8 string (max %d bytes)", e.MaxLen)
}

// NonZeroPadding is returned when opt-in alignment verification finds a
// non-zero byte in the padding region.
type NonZeroPadding struct {
	Offset int64
	Value  byte
}

func (e *NonZeroPadding) Error() string {
	return fmt.Sprintf("unitybundle: non-zero padding byte 0x%02x at offset %d", e.Value, e.Offset)
}

// InvalidSignature is returned when the file's leading bytes do not equal "UnityFS".
type InvalidSignature struct {
	Observed string
}

func (e *InvalidSignature) Error() string {
	return fmt.Sprintf("unitybundle: invalid signature: %q", e.Observed)
}

// UnsupportedVersion is returned when the header version is not in {6, 7}.
type UnsupportedVersion struct {
	Version uint32
}

func (e *UnsupportedVersion) Error() string {
	return fmt.Sprintf("unitybundle: unsupported version: %d", e.Version)
}

// MalformedHeader is returned for flag-bit violations, arithmetic failures,
// header-stage I/O failures, and layout-precondition violations.
type MalformedHeader struct {
	Reason string
	Err    error
}

func (e *MalformedHeader) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unitybundle: malformed header: %s: %v", e.Reason, e.Err)
	}

	return "unitybundle: malformed header: " + e.Reason
}

func (e *MalformedHeader) Unwrap() error { return e.Err }

// UnsupportedCompression is returned when a decompressor capability is asked
// to handle an algorithm tag it does not implement.
type UnsupportedCompression struct {
	Tag uint8
}

func (e *UnsupportedCompression) Error() string {
	return fmt.Sprintf("unitybundle: unsupported compression algorithm: %d", e.Tag)
}

// DecompressionSizeMismatch is returned when a decompressor's output length
// disagrees with the size declared by the header or block table.
type DecompressionSizeMismatch struct {
	Actual   int
	Expected int
	Where    string
}

func (e *DecompressionSizeMismatch) Error() string {
	return fmt.Sprintf("unitybundle: decompression size mismatch in %s: got %d bytes, want %d",
		e.Where, e.Actual, e.Expected)
}

// BlocksInfoParse is returned for BlocksInfo-stage structural violations not
// covered by a more specific type: truncation, negative counts, invalid
// UTF-8, non-zero padding when checked, an empty block list.
type BlocksInfoParse struct {
	Reason string
	Err    error
}

func (e *BlocksInfoParse) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unitybundle: blocksinfo parse failed: %s: %v", e.Reason, e.Err)
	}

	return "unitybundle: blocksinfo parse failed: " + e.Reason
}

func (e *BlocksInfoParse) Unwrap() error { return e.Err }

// BlockFlagsReserved is returned when a storage block sets a reserved flag bit.
type BlockFlagsReserved struct {
	Mask uint16
}

func (e *BlockFlagsReserved) Error() string {
	return fmt.Sprintf("unitybundle: storage block has reserved flag bits set: 0x%04x", e.Mask)
}

// BlockDecompressionFailed is returned for any block-stage fault not
// classified more specifically, including buffer-ceiling exceedance.
type BlockDecompressionFailed struct {
	Index  int
	Reason string
	Err    error
}

func (e *BlockDecompressionFailed) Error() string {
	msg := fmt.Sprintf("unitybundle: block %d decompression failed", e.Index)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *BlockDecompressionFailed) Unwrap() error { return e.Err }

// ByteRange describes a half-open [Offset, Offset+Size) range used in
// OutOfBounds and NodeOverlap diagnostics.
type ByteRange struct {
	Offset int64
	Size   int64
}

func (r ByteRange) End() int64 { return r.Offset + r.Size }

// OutOfBounds is returned when a node or resolved slice range exceeds its container.
type OutOfBounds struct {
	Path         string
	Range        ByteRange
	RegionLength int64
}

func (e *OutOfBounds) Error() string {
	return fmt.Sprintf("unitybundle: %q range [%d, %d) exceeds region length %d",
		e.Path, e.Range.Offset, e.Range.End(), e.RegionLength)
}

// DuplicateNode is returned when two nodes share the same path.
type DuplicateNode struct {
	Path string
}

func (e *DuplicateNode) Error() string {
	return fmt.Sprintf("unitybundle: duplicate node path: %q", e.Path)
}

// NodeOverlap is returned when two non-zero-size nodes' byte ranges intersect.
type NodeOverlap struct {
	PathA  string
	RangeA ByteRange
	PathB  string
	RangeB ByteRange
}

func (e *NodeOverlap) Error() string {
	return fmt.Sprintf("unitybundle: node %q [%d, %d) overlaps %q [%d, %d)",
		e.PathA, e.RangeA.Offset, e.RangeA.End(), e.PathB, e.RangeB.Offset, e.RangeB.End())
}

// StreamingInfo is returned for path-resolution or inner-slice failures in
// the streaming-reference resolver.
type StreamingInfo struct {
	Reason string
}

func (e *StreamingInfo) Error() string {
	return "unitybundle: streaming reference error: " + e.Reason
}

// BundleError is the orchestrator-level envelope: it names the pipeline
// state in which an unexpected failure occurred and wraps the underlying cause.
type BundleError struct {
	State string
	Err   error
}

func (e *BundleError) Error() string {
	return fmt.Sprintf("unitybundle: bundle parse failed in state %s: %v", e.State, e.Err)
}

func (e *BundleError) Unwrap() error { return e.Err }
