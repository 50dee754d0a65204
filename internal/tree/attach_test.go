package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachNodeToInternalNode(t *testing.T) {
	internal := &Node{Name: "internal", ID: 1, Children: []*Node{{Name: "leaf", ID: 2}}}
	tr := &Tree{Root: internal}

	leaf, err := AttachNode(tr, 1, "query1", "20A", 3)
	require.NoError(t, err)

	assert.Equal(t, "query1_new", leaf.Name)
	assert.Equal(t, "New", leaf.NodeType)
	assert.Equal(t, "20A", leaf.Clade)
	assert.Equal(t, float64(3), leaf.Divergence)
	require.Len(t, internal.Children, 2)
	assert.Same(t, leaf, internal.Children[1])
}

func TestAttachNodeSplitsLeafIntoAuxiliaryAndNewLeaf(t *testing.T) {
	target := &Node{Name: "taxon", ID: 5, Divergence: 2}
	tr := &Tree{Root: target}

	newLeaf, err := AttachNode(tr, 5, "query2", "19B", 1)
	require.NoError(t, err)

	require.Len(t, target.Children, 2)
	aux := target.Children[0]
	assert.Equal(t, "taxon", aux.Name)
	assert.Equal(t, 5, aux.ID)
	assert.Empty(t, aux.BranchMutations)
	assert.Equal(t, "taxon_parent", target.Name)
	assert.Same(t, newLeaf, target.Children[1])
	assert.Equal(t, float64(3), newLeaf.Divergence)
}

func TestAttachNodePerSiteDivergenceNormalized(t *testing.T) {
	target := &Node{Name: "taxon", ID: 5, Divergence: 0.1}
	tr := &Tree{Root: target, PerSiteDivergence: true, RefLength: 10}

	newLeaf, err := AttachNode(tr, 5, "query3", "clade", 2)
	require.NoError(t, err)

	assert.InDelta(t, 0.1+2.0/10.0, newLeaf.Divergence, 1e-9)
}

func TestAttachNodeNotFound(t *testing.T) {
	tr := &Tree{Root: &Node{ID: 0}}
	_, err := AttachNode(tr, 99, "x", "c", 0)
	require.Error(t, err)
	var notFound *NodeNotFoundError
	require.ErrorAs(t, err, &notFound)
}
