package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nextstrain/nextclade-sub000/internal/alphabet"
	"github.com/nextstrain/nextclade-sub000/internal/mutation"
)

func buildTestTree() *Node {
	root := &Node{
		Name: "root",
		Children: []*Node{
			{
				Name:            "close",
				BranchMutations: map[int]alphabet.Nucleotide{10: alphabet.NucT},
			},
			{
				Name:            "far",
				BranchMutations: map[int]alphabet.Nucleotide{10: alphabet.NucT, 20: alphabet.NucC, 30: alphabet.NucG},
			},
		},
	}
	rootSeq := make([]alphabet.Nucleotide, 50)
	for i := range rootSeq {
		rootSeq[i] = alphabet.NucA
	}
	Preprocess(root, rootSeq)
	return root
}

func TestFindNearestNodePicksExactMatch(t *testing.T) {
	root := buildTestTree()

	nuc := &mutation.NucChangesReport{
		Substitutions:  []*mutation.Substitution{{Pos: 10, QueryNuc: alphabet.NucT}},
		AlignmentStart: 0,
		AlignmentEnd:   50,
	}

	nearest, d := FindNearestNode(root, nuc, nil)

	assert.Equal(t, "close", nearest.Name)
	assert.Equal(t, 0, d)
}

func TestFindNearestNodeUndeterminedSitesExcludedFromDistance(t *testing.T) {
	root := buildTestTree()
	far := root.Children[1]

	// Query matches "far" at position 10 but never sequenced 20 or 30.
	nuc := &mutation.NucChangesReport{
		Substitutions:  []*mutation.Substitution{{Pos: 10, QueryNuc: alphabet.NucT}},
		AlignmentStart: 0,
		AlignmentEnd:   25, // covers pos 10 and 20 but not 30
	}
	missing := []mutation.NucleotideRange{{Begin: 18, End: 22}} // masks pos 20 too

	nearest, d := FindNearestNode(far, nuc, missing)

	assert.Equal(t, "far", nearest.Name)
	// far has 3 substitutions, query has 1, 1 shared identical, 2 undetermined (20, 30).
	assert.Equal(t, 3+1-2*1-0-2, d)
}

func TestFindNearestNodeTieBrokenBySmallestID(t *testing.T) {
	root := &Node{
		Children: []*Node{
			{Name: "first"},
			{Name: "second"},
		},
	}
	rootSeq := make([]alphabet.Nucleotide, 10)
	Preprocess(root, rootSeq)

	nuc := &mutation.NucChangesReport{AlignmentStart: 0, AlignmentEnd: 10}
	nearest, _ := FindNearestNode(root, nuc, nil)

	assert.Equal(t, root, nearest) // root itself has id 0 and distance 0, ties beat children
}
