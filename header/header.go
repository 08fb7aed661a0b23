// Package header implements the fixed UnityFS header parser (C3) and the
// layout calculator (C4) that locates BlocksInfo and the data region.
package header

import (
	"fmt"

	"github.com/go-unity/unitybundle/endian"
	"github.com/go-unity/unitybundle/errs"
	"github.com/go-unity/unitybundle/format"
)

const signature = "UnityFS"

// Flag bit positions within the header's 32-bit flags field.
const (
	compressionMask      = format.CompressionMask
	blocksInfoAtEndBit   = 1 << 7
	needsPaddingStartBit = 1 << 9
	reservedMask         = ^uint32(compressionMask | blocksInfoAtEndBit | needsPaddingStartBit)
)

// Header is the fixed portion of a UnityFS bundle, read big-endian from the
// start of the file.
type Header struct {
	Version        format.Version
	UnityVersion   string
	UnityRevision  string
	TotalSize      int64
	CompressedSize uint32 // compressed_blocksinfo_size
	Uncompressed   uint32 // uncompressed_blocksinfo_size
	Flags          uint32

	// HeaderEndPosition is the absolute byte offset immediately after Flags.
	HeaderEndPosition int64
}

// CompressionType returns the BlocksInfo compression algorithm encoded in
// bits 0-5 of Flags.
func (h Header) CompressionType() format.CompressionType {
	return format.CompressionType(h.Flags & compressionMask)
}

// BlocksInfoAtEnd reports whether bit 7 ("streamed layout") is set.
func (h Header) BlocksInfoAtEnd() bool {
	return h.Flags&blocksInfoAtEndBit != 0
}

// NeedsPaddingAtStart reports whether bit 9 is set. Only meaningful for
// version 7+; Parse rejects it being set on version 6.
func (h Header) NeedsPaddingAtStart() bool {
	return h.Flags&needsPaddingStartBit != 0
}

// AlignmentSize returns 16 for version 7+, 4 otherwise.
func (h Header) AlignmentSize() int64 {
	return h.Version.AlignmentSize()
}

// Parse reads a Header from r, which must be positioned at offset 0 of the
// bundle. All fields are big-endian per the UnityFS wire format.
func Parse(r *endian.Reader) (Header, error) {
	var h Header

	sig, err := r.ReadCString(0)
	if err != nil {
		return h, &errs.MalformedHeader{Reason: "failed to read signature", Err: err}
	}
	if sig != signature {
		return h, &errs.InvalidSignature{Observed: sig}
	}

	version, err := r.ReadUint32()
	if err != nil {
		return h, &errs.MalformedHeader{Reason: "failed to read version", Err: err}
	}
	h.Version = format.Version(version)
	if !h.Version.Valid() {
		return h, &errs.UnsupportedVersion{Version: version}
	}

	if h.UnityVersion, err = r.ReadCString(0); err != nil {
		return h, &errs.MalformedHeader{Reason: "failed to read unity_version", Err: err}
	}
	if h.UnityRevision, err = r.ReadCString(0); err != nil {
		return h, &errs.MalformedHeader{Reason: "failed to read unity_revision", Err: err}
	}

	totalSize, err := r.ReadInt64()
	if err != nil {
		return h, &errs.MalformedHeader{Reason: "failed to read total_size", Err: err}
	}
	h.TotalSize = totalSize

	if h.CompressedSize, err = r.ReadUint32(); err != nil {
		return h, &errs.MalformedHeader{Reason: "failed to read compressed_blocksinfo_size", Err: err}
	}
	if h.Uncompressed, err = r.ReadUint32(); err != nil {
		return h, &errs.MalformedHeader{Reason: "failed to read uncompressed_blocksinfo_size", Err: err}
	}
	if h.Flags, err = r.ReadUint32(); err != nil {
		return h, &errs.MalformedHeader{Reason: "failed to read flags", Err: err}
	}

	h.HeaderEndPosition = r.Pos()

	if err := h.validateFlags(); err != nil {
		return h, err
	}

	return h, nil
}

func (h Header) validateFlags() error {
	if h.CompressionType() > format.MaxCompressionType {
		return &errs.MalformedHeader{
			Reason: fmt.Sprintf("compression_type %d exceeds maximum %d", h.CompressionType(), format.MaxCompressionType),
		}
	}

	if h.Flags&reservedMask != 0 {
		return &errs.MalformedHeader{
			Reason: fmt.Sprintf("reserved flag bits set: 0x%08x", h.Flags&reservedMask),
		}
	}

	if h.NeedsPaddingAtStart() && h.Version < format.Version7 {
		return &errs.MalformedHeader{
			Reason: "needs_padding_at_start set on version < 7",
		}
	}

	return nil
}
