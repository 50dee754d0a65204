package mutation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextstrain/nextclade-sub000/internal/gene"
)

func TestLinkNucAndAaChangesInPlaceSubstitution(t *testing.T) {
	nucSub := &Substitution{Pos: 31}
	nucChanges := NucChangesReport{Substitutions: []*Substitution{nucSub}}

	aaSub := &AminoacidSubstitution{CodonNucRange: gene.Range{Begin: 30, End: 33}}
	aaChanges := AaChangesReport{Substitutions: []*AminoacidSubstitution{aaSub}}

	LinkNucAndAaChangesInPlace(&nucChanges, &aaChanges)

	require.Len(t, nucSub.AaSubstitutions, 1)
	assert.Same(t, aaSub, nucSub.AaSubstitutions[0])
	require.Len(t, aaSub.NucSubstitutions, 1)
	assert.Same(t, nucSub, aaSub.NucSubstitutions[0])
}

func TestLinkNucAndAaChangesInPlaceDeletionIntersection(t *testing.T) {
	nucDel := &Deletion{Start: 32, Length: 4} // [32,36)
	nucChanges := NucChangesReport{Deletions: []*Deletion{nucDel}}

	aaDel := &AminoacidDeletion{CodonNucRange: gene.Range{Begin: 30, End: 33}} // [30,33) overlaps [32,36)
	aaChanges := AaChangesReport{Deletions: []*AminoacidDeletion{aaDel}}

	LinkNucAndAaChangesInPlace(&nucChanges, &aaChanges)

	require.Len(t, nucDel.AaDeletions, 1)
	assert.Same(t, aaDel, nucDel.AaDeletions[0])
	require.Len(t, aaDel.NucDeletions, 1)
	assert.Same(t, nucDel, aaDel.NucDeletions[0])
}

func TestLinkNucAndAaChangesInPlaceNoOverlap(t *testing.T) {
	nucSub := &Substitution{Pos: 100}
	nucChanges := NucChangesReport{Substitutions: []*Substitution{nucSub}}

	aaSub := &AminoacidSubstitution{CodonNucRange: gene.Range{Begin: 30, End: 33}}
	aaChanges := AaChangesReport{Substitutions: []*AminoacidSubstitution{aaSub}}

	LinkNucAndAaChangesInPlace(&nucChanges, &aaChanges)

	assert.Empty(t, nucSub.AaSubstitutions)
	assert.Empty(t, aaSub.NucSubstitutions)
}
