package bundle

import (
	"sort"

	"github.com/go-unity/unitybundle/blocksinfo"
	"github.com/go-unity/unitybundle/errs"
)

// validateNodeBounds implements the per-node half of C7: every node's
// [offset, offset+size) range must fall within the data region, using
// overflow-safe addition.
func validateNodeBounds(nodes []blocksinfo.NodeInfo, regionLength int64) error {
	for _, n := range nodes {
		if n.Offset < 0 || n.Size < 0 {
			return &errs.OutOfBounds{
				Path:         n.Path,
				Range:        errs.ByteRange{Offset: n.Offset, Size: n.Size},
				RegionLength: regionLength,
			}
		}

		if n.Offset > regionLength-n.Size {
			return &errs.OutOfBounds{
				Path:         n.Path,
				Range:        errs.ByteRange{Offset: n.Offset, Size: n.Size},
				RegionLength: regionLength,
			}
		}
	}

	return nil
}

// validateNoDuplicates scans nodes once for a case-sensitive, byte-identical
// path collision.
func validateNoDuplicates(nodes []blocksinfo.NodeInfo) error {
	seen := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		if _, ok := seen[n.Path]; ok {
			return &errs.DuplicateNode{Path: n.Path}
		}
		seen[n.Path] = struct{}{}
	}

	return nil
}

// validateNoOverlap sorts a copy of nodes by offset (stable on original
// index) and asserts each adjacent pair of non-zero-size nodes is
// non-overlapping. Zero-size nodes never overlap anything.
func validateNoOverlap(nodes []blocksinfo.NodeInfo) error {
	ordered := make([]blocksinfo.NodeInfo, len(nodes))
	copy(ordered, nodes)

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Offset < ordered[j].Offset
	})

	var prev *blocksinfo.NodeInfo
	for i := range ordered {
		next := &ordered[i]
		if next.Size == 0 {
			continue
		}

		if prev != nil && prev.Offset+prev.Size > next.Offset {
			return &errs.NodeOverlap{
				PathA:  prev.Path,
				RangeA: errs.ByteRange{Offset: prev.Offset, Size: prev.Size},
				PathB:  next.Path,
				RangeB: errs.ByteRange{Offset: next.Offset, Size: next.Size},
			}
		}
		prev = next
	}

	return nil
}

// ReadNode returns a bounds-validated borrow of region covering node.
func ReadNode(region *DataRegion, node blocksinfo.NodeInfo) ([]byte, error) {
	if node.Offset < 0 || node.Size < 0 || node.Offset > region.Length()-node.Size {
		return nil, &errs.OutOfBounds{
			Path:         node.Path,
			Range:        errs.ByteRange{Offset: node.Offset, Size: node.Size},
			RegionLength: region.Length(),
		}
	}

	return region.Slice(node.Offset, node.Size)
}
