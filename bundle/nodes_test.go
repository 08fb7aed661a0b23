package bundle

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-unity/unitybundle/blocksinfo"
	"github.com/go-unity/unitybundle/errs"
)

func TestValidateNodeBounds_OutOfBounds(t *testing.T) {
	cases := []struct {
		name   string
		nodes  []blocksinfo.NodeInfo
		region int64
	}{
		{
			name:   "offset plus size exceeds region",
			nodes:  []blocksinfo.NodeInfo{{Path: "a", Offset: 5, Size: 10}},
			region: 10,
		},
		{
			name:   "negative offset",
			nodes:  []blocksinfo.NodeInfo{{Path: "a", Offset: -1, Size: 1}},
			region: 10,
		},
		{
			name:   "negative size",
			nodes:  []blocksinfo.NodeInfo{{Path: "a", Offset: 0, Size: -1}},
			region: 10,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateNodeBounds(tc.nodes, tc.region)
			require.Error(t, err)

			var outOfBounds *errs.OutOfBounds
			require.ErrorAs(t, err, &outOfBounds)
		})
	}
}

func TestValidateNodeBounds_WithinRegionOK(t *testing.T) {
	nodes := []blocksinfo.NodeInfo{{Path: "a", Offset: 0, Size: 10}}
	require.NoError(t, validateNodeBounds(nodes, 10))
}

func TestValidateNoDuplicates_DuplicatePath(t *testing.T) {
	nodes := []blocksinfo.NodeInfo{
		{Path: "CAB-abc/CAB-abc.resS", Offset: 0, Size: 10},
		{Path: "CAB-abc/CAB-abc.resS", Offset: 10, Size: 10},
	}

	err := validateNoDuplicates(nodes)
	require.Error(t, err)

	var dup *errs.DuplicateNode
	require.ErrorAs(t, err, &dup)
	require.Equal(t, "CAB-abc/CAB-abc.resS", dup.Path)
}

func TestValidateNoDuplicates_DistinctPathsOK(t *testing.T) {
	nodes := []blocksinfo.NodeInfo{
		{Path: "node1", Offset: 0, Size: 5},
		{Path: "node2", Offset: 5, Size: 5},
	}
	require.NoError(t, validateNoDuplicates(nodes))
}

func TestReadNode_OutOfBounds(t *testing.T) {
	region := &DataRegion{buf: make([]byte, 10)}
	node := blocksinfo.NodeInfo{Path: "a", Offset: 5, Size: 10}

	_, err := ReadNode(region, node)
	require.Error(t, err)

	var outOfBounds *errs.OutOfBounds
	require.ErrorAs(t, err, &outOfBounds)
}
