// Package bundle implements the data-region builder (C6), node extractor
// (C7), streaming resolver (C8), and parse orchestrator (C9): everything
// downstream of a decoded BlocksInfo directory.
package bundle

import (
	"errors"
	"io"

	"github.com/go-unity/unitybundle/blocksinfo"
	"github.com/go-unity/unitybundle/compress"
	"github.com/go-unity/unitybundle/endian"
	"github.com/go-unity/unitybundle/errs"
	"github.com/go-unity/unitybundle/header"
	"github.com/go-unity/unitybundle/internal/pathindex"
)

// Bundle is the fully parsed, immutable UnityFS artifact.
type Bundle struct {
	Header     header.Header
	Location   header.Location
	BlocksInfo blocksinfo.BlocksInfo
	region     *DataRegion
	index      *pathindex.Index
}

// DataRegionLength returns the bundle's reconstructed data-region length.
func (b *Bundle) DataRegionLength() int64 {
	return b.region.Length()
}

// Node returns the node with an exact path match, or nil if none exists.
func (b *Bundle) Node(path string) *blocksinfo.NodeInfo {
	return b.index.Lookup(path)
}

// Nodes returns a defensive copy of every node in declaration order; callers
// may freely mutate the result without affecting the Bundle.
func (b *Bundle) Nodes() []blocksinfo.NodeInfo {
	out := make([]blocksinfo.NodeInfo, len(b.BlocksInfo.Nodes))
	copy(out, b.BlocksInfo.Nodes)

	return out
}

// NodeBytes returns the bounds-validated payload of the node at path.
func (b *Bundle) NodeBytes(path string) ([]byte, error) {
	node := b.Node(path)
	if node == nil {
		return nil, &errs.OutOfBounds{Path: path, RegionLength: b.region.Length()}
	}

	return ReadNode(b.region, *node)
}

// ResolveStreaming resolves ref against the bundle's node list and data
// region (C8).
func (b *Bundle) ResolveStreaming(ref StreamingRef) ([]byte, error) {
	return ResolveStreamingRef(b.BlocksInfo.Nodes, b.region, ref)
}

// state names the orchestrator's pipeline stage, used only to annotate
// BundleError when an unexpected failure occurs.
type state string

const (
	stateStart            state = "Start"
	stateHeaderValid      state = "HeaderValid"
	stateBlocksInfoRead   state = "BlocksInfoRead"
	stateBlocksInfoParsed state = "BlocksInfoParsed"
	stateDataRegionReady  state = "DataRegionReady"
)

// Config collects C9's tunables: the decompressor registry, the maximum
// node-path length accepted while decoding BlocksInfo, the maximum data
// region size, whether to run C7's opt-in overlap check, and whether to
// verify the v7 alignment padding before BlocksInfo is read.
type Config struct {
	Registry          compress.Registry
	PathMaxLen        int
	MaxDataRegionSize int64
	CheckOverlap      bool
	VerifyPadding     bool
}

// Source is the seekable byte source the orchestrator reads from.
type Source interface {
	io.Reader
	io.Seeker
}

// Parse drives C3->C4->C5->C6->C7 as the linear state machine described by
// C9, reading src (which must report its own total length via fileLength)
// and returning an immutable Bundle.
func Parse(src Source, fileLength int64, cfg Config) (*Bundle, error) {
	reg := cfg.Registry
	if reg == nil {
		reg = compress.DefaultRegistry()
	}

	st := stateStart

	r := endian.NewReader(src, endian.GetBigEndianEngine(), 0)

	h, err := header.Parse(r)
	if err != nil {
		return nil, &errs.BundleError{State: string(st), Err: err}
	}
	st = stateHeaderValid

	if h.Version >= 7 {
		if _, err := r.SkipToAlignment(h.AlignmentSize(), cfg.VerifyPadding); err != nil {
			var padding *errs.NonZeroPadding
			if errors.As(err, &padding) {
				return nil, &errs.BundleError{State: string(st), Err: &errs.BlocksInfoParse{Reason: "non-zero padding", Err: err}}
			}

			return nil, &errs.BundleError{State: string(st), Err: err}
		}
	}

	loc, err := header.Locate(h, fileLength)
	if err != nil {
		return nil, &errs.BundleError{State: string(st), Err: err}
	}

	var dirBytes []byte
	if h.BlocksInfoAtEnd() {
		if _, err := r.Seek(loc.BlocksInfoPosition, io.SeekStart); err != nil {
			return nil, &errs.BundleError{State: string(st), Err: err}
		}

		dirBytes, err = r.ReadBytes(int(h.CompressedSize))
		if err != nil {
			return nil, &errs.BundleError{State: string(st), Err: &errs.BlocksInfoParse{Reason: "failed to read", Err: err}}
		}

		if _, err := r.Seek(loc.DataRegionPosition, io.SeekStart); err != nil {
			return nil, &errs.BundleError{State: string(st), Err: err}
		}
	} else {
		dirBytes, err = r.ReadBytes(int(h.CompressedSize))
		if err != nil {
			return nil, &errs.BundleError{State: string(st), Err: &errs.BlocksInfoParse{Reason: "failed to read", Err: err}}
		}
	}
	st = stateBlocksInfoRead

	dataRegionPosition := r.Pos()

	bi, err := blocksinfo.Parse(reg, dirBytes, int(h.Uncompressed), h.CompressionType(), cfg.PathMaxLen)
	if err != nil {
		return nil, &errs.BundleError{State: string(st), Err: err}
	}
	st = stateBlocksInfoParsed

	if r.Pos() != dataRegionPosition {
		if _, err := r.Seek(dataRegionPosition, io.SeekStart); err != nil {
			return nil, &errs.BundleError{State: string(st), Err: err}
		}
	}

	region, err := buildDataRegion(r, bi.Blocks, reg, cfg.MaxDataRegionSize)
	if err != nil {
		return nil, &errs.BundleError{State: string(st), Err: err}
	}
	st = stateDataRegionReady

	if err := validateNodeBounds(bi.Nodes, region.Length()); err != nil {
		return nil, &errs.BundleError{State: string(st), Err: err}
	}
	if err := validateNoDuplicates(bi.Nodes); err != nil {
		return nil, &errs.BundleError{State: string(st), Err: err}
	}
	if cfg.CheckOverlap {
		if err := validateNoOverlap(bi.Nodes); err != nil {
			return nil, &errs.BundleError{State: string(st), Err: err}
		}
	}

	return &Bundle{
		Header:     h,
		Location:   loc,
		BlocksInfo: bi,
		region:     region,
		index:      pathindex.Build(bi.Nodes),
	}, nil
}
