// Package blocksinfo decompresses and decodes the BlocksInfo directory: the
// hash prefix, the storage-block table, and the node table that together
// describe how a bundle's data region is chunked and addressed.
package blocksinfo

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-unity/unitybundle/compress"
	"github.com/go-unity/unitybundle/endian"
	"github.com/go-unity/unitybundle/errs"
	"github.com/go-unity/unitybundle/format"
)

const hashSize = 16

// StorageBlock describes one contiguous compressed (or uncompressed) chunk
// contributing to the data region.
type StorageBlock struct {
	UncompressedSize uint32
	CompressedSize   uint32
	Flags            uint16
}

const (
	blockCompressionMask = format.CompressionMask
	blockStreamedBit     = 1 << 6
	blockReservedMask    = 0xFF80
)

// CompressionType returns the block's compression algorithm, bits 0-5 of Flags.
func (b StorageBlock) CompressionType() format.CompressionType {
	return format.CompressionType(b.Flags & blockCompressionMask)
}

// IsStreamed reports bit 6, which is purely informational.
func (b StorageBlock) IsStreamed() bool {
	return b.Flags&blockStreamedBit != 0
}

// NodeInfo describes one virtual file within the bundle's data region.
type NodeInfo struct {
	Offset int64
	Size   int64
	Flags  uint32
	Path   string
}

// BlocksInfo is the fully decoded directory: an unverified hash, the ordered
// storage-block table, and the ordered node table.
type BlocksInfo struct {
	Hash   [hashSize]byte
	Blocks []StorageBlock
	Nodes  []NodeInfo
}

// TotalUncompressedSize sums every block's UncompressedSize with checked
// arithmetic, matching the size the data-region builder must allocate.
func (b BlocksInfo) TotalUncompressedSize() (int64, error) {
	var total int64
	for i, blk := range b.Blocks {
		size := int64(blk.UncompressedSize)
		if total > (1<<63-1)-size {
			return 0, &errs.BlockDecompressionFailed{Index: i, Reason: "total uncompressed size overflows"}
		}
		total += size
	}

	return total, nil
}

// Parse decompresses compressed (the raw BlocksInfo bytes as read from the
// file) into expectedUncompressedSize bytes using algo via reg, then decodes
// the hash prefix, block table, and node table.
func Parse(reg compress.Registry, compressed []byte, expectedUncompressedSize int, algo format.CompressionType, pathMaxLen int) (BlocksInfo, error) {
	var bi BlocksInfo

	if len(compressed) == 0 {
		return bi, errs.ErrEmptyBlocksInfo
	}
	if expectedUncompressedSize < hashSize {
		return bi, &errs.BlocksInfoParse{Reason: "too small for hash", Err: errs.ErrBlocksInfoTooSmall}
	}

	blob, err := compress.Decompress(reg, compressed, expectedUncompressedSize, algo)
	if err != nil {
		var sizeMismatch *errs.DecompressionSizeMismatch
		var unsupported *errs.UnsupportedCompression
		if errors.As(err, &sizeMismatch) || errors.As(err, &unsupported) {
			return bi, err
		}

		return bi, &errs.BlocksInfoParse{Reason: "decompression failed", Err: err}
	}

	r := endian.NewReader(bytes.NewReader(blob), endian.GetBigEndianEngine(), 0)

	hashBytes, err := r.ReadBytes(hashSize)
	if err != nil {
		return bi, &errs.BlocksInfoParse{Reason: "truncated", Err: fmt.Errorf("%w: %w", errs.ErrTruncatedBlocksInfo, err)}
	}
	copy(bi.Hash[:], hashBytes)

	blockCount, err := r.ReadInt32()
	if err != nil {
		return bi, &errs.BlocksInfoParse{Reason: "truncated", Err: fmt.Errorf("%w: %w", errs.ErrTruncatedBlocksInfo, err)}
	}
	if blockCount < 0 {
		return bi, &errs.BlocksInfoParse{Reason: "invalid block count", Err: errs.ErrInvalidBlockCount}
	}

	bi.Blocks = make([]StorageBlock, blockCount)
	for i := range bi.Blocks {
		uncompressedSize, err := r.ReadUint32()
		if err != nil {
			return bi, &errs.BlocksInfoParse{Reason: "truncated", Err: fmt.Errorf("%w: %w", errs.ErrTruncatedBlocksInfo, err)}
		}
		compressedSize, err := r.ReadUint32()
		if err != nil {
			return bi, &errs.BlocksInfoParse{Reason: "truncated", Err: fmt.Errorf("%w: %w", errs.ErrTruncatedBlocksInfo, err)}
		}
		flags, err := r.ReadUint16()
		if err != nil {
			return bi, &errs.BlocksInfoParse{Reason: "truncated", Err: fmt.Errorf("%w: %w", errs.ErrTruncatedBlocksInfo, err)}
		}

		bi.Blocks[i] = StorageBlock{
			UncompressedSize: uncompressedSize,
			CompressedSize:   compressedSize,
			Flags:            flags,
		}
	}

	nodeCount, err := r.ReadInt32()
	if err != nil {
		return bi, &errs.BlocksInfoParse{Reason: "truncated", Err: fmt.Errorf("%w: %w", errs.ErrTruncatedBlocksInfo, err)}
	}
	if nodeCount < 0 {
		return bi, &errs.BlocksInfoParse{Reason: "invalid node count", Err: errs.ErrInvalidNodeCount}
	}

	if pathMaxLen <= 0 {
		pathMaxLen = endian.DefaultMaxStringLen
	}

	bi.Nodes = make([]NodeInfo, nodeCount)
	for i := range bi.Nodes {
		offset, err := r.ReadInt64()
		if err != nil {
			return bi, &errs.BlocksInfoParse{Reason: "truncated", Err: fmt.Errorf("%w: %w", errs.ErrTruncatedBlocksInfo, err)}
		}
		size, err := r.ReadInt64()
		if err != nil {
			return bi, &errs.BlocksInfoParse{Reason: "truncated", Err: fmt.Errorf("%w: %w", errs.ErrTruncatedBlocksInfo, err)}
		}
		flags, err := r.ReadUint32()
		if err != nil {
			return bi, &errs.BlocksInfoParse{Reason: "truncated", Err: fmt.Errorf("%w: %w", errs.ErrTruncatedBlocksInfo, err)}
		}
		path, err := r.ReadCString(pathMaxLen)
		if err != nil {
			var invalidUtf8 *errs.InvalidUtf8
			if errors.As(err, &invalidUtf8) {
				return bi, &errs.BlocksInfoParse{Reason: "node path exceeds maximum length", Err: errs.ErrPathTooLong}
			}

			return bi, &errs.BlocksInfoParse{Reason: "truncated", Err: fmt.Errorf("%w: %w", errs.ErrTruncatedBlocksInfo, err)}
		}

		bi.Nodes[i] = NodeInfo{Offset: offset, Size: size, Flags: flags, Path: path}
	}

	return bi, nil
}

// ValidateBlockFlags checks every block's reserved bits (7-15), returning
// BlockFlagsReserved for the first violation found. The data-region builder
// applies the same reserved-bit check inline, per block, in order, as it
// consumes the table; this helper lets callers run that check ahead of time
// (e.g. inside a dry-run validator).
func ValidateBlockFlags(blocks []StorageBlock) error {
	for _, blk := range blocks {
		if blk.Flags&blockReservedMask != 0 {
			return &errs.BlockFlagsReserved{Mask: blk.Flags & blockReservedMask}
		}
	}

	return nil
}
