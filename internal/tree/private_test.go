package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nextstrain/nextclade-sub000/internal/alphabet"
	"github.com/nextstrain/nextclade-sub000/internal/mutation"
)

func TestFindPrivateMutationsSubstitutions(t *testing.T) {
	node := &Node{
		Mutations: map[int]alphabet.Nucleotide{
			10: alphabet.NucT, // node mutated here, query agrees -> not private
			20: alphabet.NucC, // node mutated here, query differs -> private, refNuc = node's letter
		},
	}
	rootSeq := make([]alphabet.Nucleotide, 30)
	for i := range rootSeq {
		rootSeq[i] = alphabet.NucA
	}

	nuc := &mutation.NucChangesReport{
		Substitutions: []*mutation.Substitution{
			{Pos: 10, QueryNuc: alphabet.NucT},
			{Pos: 20, QueryNuc: alphabet.NucG},
			{Pos: 25, QueryNuc: alphabet.NucT}, // not in node at all -> private vs root
		},
		AlignmentStart: 0,
		AlignmentEnd:   30,
	}

	got := FindPrivateMutations(node, nuc, nil, rootSeq)

	assert.Equal(t, []PrivateSubstitution{
		{RefNuc: alphabet.NucC, Pos: 20, QueryNuc: alphabet.NucG},
		{RefNuc: alphabet.NucA, Pos: 25, QueryNuc: alphabet.NucT},
	}, got.Substitutions)
}

func TestFindPrivateMutationsReversionDetected(t *testing.T) {
	node := &Node{
		Mutations: map[int]alphabet.Nucleotide{
			10: alphabet.NucT, // node mutated here, query never mentions it -> reversion
		},
	}
	rootSeq := make([]alphabet.Nucleotide, 30)
	for i := range rootSeq {
		rootSeq[i] = alphabet.NucA
	}

	nuc := &mutation.NucChangesReport{AlignmentStart: 0, AlignmentEnd: 30}

	got := FindPrivateMutations(node, nuc, nil, rootSeq)

	assert.Equal(t, []PrivateSubstitution{{RefNuc: alphabet.NucT, Pos: 10, QueryNuc: alphabet.NucA}}, got.Substitutions)
}

func TestFindPrivateMutationsReversionSkippedWhenNotSequenced(t *testing.T) {
	node := &Node{Mutations: map[int]alphabet.Nucleotide{10: alphabet.NucT}}
	rootSeq := make([]alphabet.Nucleotide, 30)

	nuc := &mutation.NucChangesReport{AlignmentStart: 20, AlignmentEnd: 30} // pos 10 not sequenced

	got := FindPrivateMutations(node, nuc, nil, rootSeq)

	assert.Empty(t, got.Substitutions)
}

func TestFindPrivateMutationsDeletions(t *testing.T) {
	node := &Node{
		Mutations: map[int]alphabet.Nucleotide{
			5: alphabet.NucGap, // node already deleted here -> not private
			6: alphabet.NucT,   // node substituted (not gap) -> private deletion
		},
	}
	rootSeq := make([]alphabet.Nucleotide, 10)
	for i := range rootSeq {
		rootSeq[i] = alphabet.NucA
	}

	nuc := &mutation.NucChangesReport{
		Deletions:      []*mutation.Deletion{{Start: 5, Length: 3}}, // [5,8)
		AlignmentStart: 0,
		AlignmentEnd:   10,
	}

	got := FindPrivateMutations(node, nuc, nil, rootSeq)

	assert.Equal(t, []PrivateDeletion{
		{RefNuc: alphabet.NucT, Pos: 6},
		{RefNuc: alphabet.NucA, Pos: 7},
	}, got.Deletions)
}
