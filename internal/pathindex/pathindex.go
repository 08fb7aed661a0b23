// Package pathindex provides an O(1) node-path lookup keyed by an xxHash64
// digest of the path string, avoiding a linear scan per lookup once a bundle
// holds more than a handful of nodes.
package pathindex

import (
	"github.com/go-unity/unitybundle/blocksinfo"
	"github.com/go-unity/unitybundle/internal/hash"
)

// Index maps a node path's xxHash64 digest to its NodeInfo. Paths are
// compared case-sensitively as raw bytes, so the digest is computed over the
// exact path string with no normalization.
type Index struct {
	byHash map[uint64][]*blocksinfo.NodeInfo
}

// Build constructs an Index over nodes. nodes must outlive the returned
// Index; entries store pointers into the slice's backing array.
func Build(nodes []blocksinfo.NodeInfo) *Index {
	idx := &Index{byHash: make(map[uint64][]*blocksinfo.NodeInfo, len(nodes))}
	for i := range nodes {
		h := hash.ID(nodes[i].Path)
		idx.byHash[h] = append(idx.byHash[h], &nodes[i])
	}

	return idx
}

// Lookup returns the node with an exact path match, or nil if none exists.
// A hash collision between two distinct paths is resolved by re-comparing
// each candidate's Path field before returning it.
func (idx *Index) Lookup(path string) *blocksinfo.NodeInfo {
	for _, node := range idx.byHash[hash.ID(path)] {
		if node.Path == path {
			return node
		}
	}

	return nil
}
