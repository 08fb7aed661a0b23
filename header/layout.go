package header

import (
	"fmt"

	"github.com/go-unity/unitybundle/endian"
	"github.com/go-unity/unitybundle/errs"
)

// Location describes where the compressed BlocksInfo directory and the data
// region begin, both as absolute file offsets.
type Location struct {
	BlocksInfoPosition int64
	DataRegionPosition int64
	AlignmentPadding   int64
}

// Locate computes a Location from h and the bundle's total file length,
// applying the embedded/streamed layout rules:
//
//	aligned = ceil(header_end_position / alignment_size) * alignment_size
//
//	blocksinfo_at_end:
//	    blocksinfo_position = file_length - compressed_blocksinfo_size
//	    data_region_position = aligned
//	else:
//	    blocksinfo_position = aligned
//	    data_region_position = aligned + compressed_blocksinfo_size
func Locate(h Header, fileLength int64) (Location, error) {
	if fileLength < 0 {
		return Location{}, &errs.MalformedHeader{Reason: fmt.Sprintf("negative file length %d", fileLength)}
	}

	compressedSize := int64(h.CompressedSize)
	if h.BlocksInfoAtEnd() && fileLength < compressedSize {
		return Location{}, &errs.MalformedHeader{
			Reason: fmt.Sprintf("file length %d is smaller than compressed_blocksinfo_size %d", fileLength, compressedSize),
		}
	}

	aligned := endian.AlignedPosition(h.HeaderEndPosition, h.AlignmentSize())
	padding := aligned - h.HeaderEndPosition

	loc := Location{AlignmentPadding: padding}
	if h.BlocksInfoAtEnd() {
		loc.BlocksInfoPosition = fileLength - compressedSize
		loc.DataRegionPosition = aligned
	} else {
		loc.BlocksInfoPosition = aligned
		loc.DataRegionPosition = aligned + compressedSize
	}

	return loc, nil
}
