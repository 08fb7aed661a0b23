package bundle

import (
	"github.com/go-unity/unitybundle/blocksinfo"
	"github.com/go-unity/unitybundle/compress"
	"github.com/go-unity/unitybundle/endian"
	"github.com/go-unity/unitybundle/errs"
	"github.com/go-unity/unitybundle/internal/blockbuf"
)

const blockReservedMask = 0xFF80

// maxDataRegionSize is the default ceiling on the summed uncompressed block
// sizes, chosen to stay addressable on 32-bit-indexed implementations.
const maxDataRegionSize = 1<<31 - 1

// DataRegion is the immutable concatenation of every storage block's
// decompressed output. Node offsets are interpreted against it.
type DataRegion struct {
	buf []byte
}

// Length returns the data region's total byte length.
func (d *DataRegion) Length() int64 {
	return int64(len(d.buf))
}

// Slice returns a borrow of d.buf[offset:offset+size], bounds-checked with
// overflow-safe arithmetic.
func (d *DataRegion) Slice(offset, size int64) ([]byte, error) {
	if offset < 0 || size < 0 {
		return nil, &errs.OutOfBounds{Range: errs.ByteRange{Offset: offset, Size: size}, RegionLength: d.Length()}
	}
	if offset > d.Length()-size {
		return nil, &errs.OutOfBounds{Range: errs.ByteRange{Offset: offset, Size: size}, RegionLength: d.Length()}
	}

	return d.buf[offset : offset+size], nil
}

// buildDataRegion implements C6: it reads every storage block's compressed
// payload from r (already positioned at dataRegionPosition) in declaration
// order, decompresses each through reg, and concatenates the results into one
// contiguous buffer.
func buildDataRegion(r *endian.Reader, blocks []blocksinfo.StorageBlock, reg compress.Registry, maxSize int64) (*DataRegion, error) {
	if len(blocks) == 0 {
		return nil, &errs.BlocksInfoParse{Reason: "empty blocks", Err: errs.ErrEmptyBlockList}
	}

	if maxSize <= 0 {
		maxSize = maxDataRegionSize
	}

	var total int64
	for i, blk := range blocks {
		size := int64(blk.UncompressedSize)
		if total > maxSize-size {
			return nil, &errs.BlockDecompressionFailed{Index: i, Reason: "exceeds maximum buffer size", Err: errs.ErrDataRegionTooLarge}
		}
		total += size
	}

	out := make([]byte, total)
	writeOffset := int64(0)

	for i, blk := range blocks {
		if blk.Flags&blockReservedMask != 0 {
			return nil, &errs.BlockFlagsReserved{Mask: blk.Flags & blockReservedMask}
		}

		compSize := int(blk.CompressedSize)
		bb := blockbuf.Get(compSize)

		if err := r.ReadInto(bb.Bytes()); err != nil {
			blockbuf.Put(bb)
			return nil, &errs.BlockDecompressionFailed{Index: i, Reason: "failed to read", Err: err}
		}

		decompressed, err := compress.Decompress(reg, bb.Bytes(), int(blk.UncompressedSize), blk.CompressionType())
		blockbuf.Put(bb)
		if err != nil {
			return nil, &errs.BlockDecompressionFailed{Index: i, Reason: "", Err: err}
		}

		copy(out[writeOffset:], decompressed)
		writeOffset += int64(len(decompressed))
	}

	return &DataRegion{buf: out}, nil
}
