package bundle

import (
	"strings"

	"github.com/go-unity/unitybundle/blocksinfo"
	"github.com/go-unity/unitybundle/errs"
)

// StreamingRef is an external (path, offset, size) reference resolved
// against a matching node rather than against the data region directly.
type StreamingRef struct {
	Path   string
	Offset int64
	Size   int64
}

// resolveStreamingNode implements the path-match half of C8: an exact
// case-sensitive match wins; failing that, a basename-suffix match against
// {basename, stem+".resource", stem+".assets.resS", stem+".resS"} is tried,
// still case-sensitive.
func resolveStreamingNode(nodes []blocksinfo.NodeInfo, path string) (*blocksinfo.NodeInfo, error) {
	for i := range nodes {
		if nodes[i].Path == path {
			return &nodes[i], nil
		}
	}

	base := basename(path)
	stem := strings.TrimSuffix(base, extension(base))
	candidates := []string{base, stem + ".resource", stem + ".assets.resS", stem + ".resS"}

	for i := range nodes {
		for _, c := range candidates {
			if strings.HasSuffix(nodes[i].Path, c) {
				return &nodes[i], nil
			}
		}
	}

	return nil, &errs.StreamingInfo{Reason: "path does not match any node"}
}

func basename(path string) string {
	if idx := strings.LastIndexAny(path, "/\\"); idx >= 0 {
		return path[idx+1:]
	}

	return path
}

func extension(name string) string {
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		return name[idx:]
	}

	return ""
}

// ResolveStreamingRef implements C8 in full: it locates the node matching
// ref.Path, validates ref's bounds against that node, and returns the slice
// of region addressed by node.Offset+ref.Offset.
func ResolveStreamingRef(nodes []blocksinfo.NodeInfo, region *DataRegion, ref StreamingRef) ([]byte, error) {
	node, err := resolveStreamingNode(nodes, ref.Path)
	if err != nil {
		return nil, err
	}

	if ref.Offset < 0 || ref.Size < 0 {
		return nil, &errs.StreamingInfo{Reason: "negative offset or size"}
	}
	if ref.Size == 0 {
		return []byte{}, nil
	}
	if ref.Size > node.Size {
		return nil, &errs.StreamingInfo{Reason: "size exceeds node size"}
	}
	if ref.Offset > node.Size-ref.Size {
		return nil, &errs.StreamingInfo{Reason: "offset exceeds node size"}
	}

	if node.Offset < 0 {
		return nil, &errs.StreamingInfo{Reason: "node has negative offset"}
	}

	const maxInt64 = 1<<63 - 1
	if node.Offset > maxInt64-ref.Offset {
		return nil, &errs.StreamingInfo{Reason: "node offset plus ref offset overflows"}
	}

	absOffset := node.Offset + ref.Offset

	return region.Slice(absOffset, ref.Size)
}
