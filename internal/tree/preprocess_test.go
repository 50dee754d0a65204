package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextstrain/nextclade-sub000/internal/alphabet"
)

func TestPreprocessAccumulatesAndReverts(t *testing.T) {
	root := &Node{
		Name: "root",
		Children: []*Node{
			{
				Name:            "child",
				BranchMutations: map[int]alphabet.Nucleotide{5: alphabet.NucT},
				Children: []*Node{
					{
						Name: "grandchild",
						// reverts position 5 back to the root letter, and
						// adds a brand new mutation at 9.
						BranchMutations: map[int]alphabet.Nucleotide{
							5: alphabet.NucA,
							9: alphabet.NucGap,
						},
					},
				},
			},
		},
	}
	rootSeq := make([]alphabet.Nucleotide, 20)
	for i := range rootSeq {
		rootSeq[i] = alphabet.NucA
	}

	Preprocess(root, rootSeq)

	assert.Equal(t, 0, root.ID)
	assert.Empty(t, root.Mutations)

	child := root.Children[0]
	assert.Equal(t, 1, child.ID)
	assert.Equal(t, map[int]alphabet.Nucleotide{5: alphabet.NucT}, child.Mutations)
	assert.Equal(t, map[int]alphabet.Nucleotide{5: alphabet.NucT}, child.Substitutions)

	grandchild := child.Children[0]
	assert.Equal(t, 2, grandchild.ID)
	require.Equal(t, map[int]alphabet.Nucleotide{9: alphabet.NucGap}, grandchild.Mutations)
	assert.Empty(t, grandchild.Substitutions) // gap filtered out, position 5 reverted away entirely
}

func TestPostprocessClearsTemporaries(t *testing.T) {
	root := &Node{Children: []*Node{{}}}
	rootSeq := make([]alphabet.Nucleotide, 4)
	Preprocess(root, rootSeq)

	Postprocess(&Tree{Root: root})

	Walk(root, func(n *Node) {
		assert.Nil(t, n.Mutations)
		assert.Nil(t, n.Substitutions)
	})
}
