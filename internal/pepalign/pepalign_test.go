package pepalign

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextstrain/nextclade-sub000/internal/align"
	"github.com/nextstrain/nextclade-sub000/internal/alphabet"
)

func flatGapOpenClose(length, penalty int) []int {
	v := make([]int, length+2)
	for i := range v {
		v[i] = penalty
	}
	return v
}

func TestCountGaps(t *testing.T) {
	seq := []alphabet.Aminoacid{alphabet.AaGap, alphabet.AaM, alphabet.AaGap, alphabet.AaK, alphabet.AaGap, alphabet.AaGap}
	counts := CountGaps(seq, alphabet.AaGap)
	assert.Equal(t, GapCounts{Leading: 1, Internal: 1, Trailing: 2, Total: 4}, counts)
}

func TestDeriveParams(t *testing.T) {
	queryGaps := GapCounts{Leading: 2, Internal: 6}
	refGaps := GapCounts{Internal: 3}
	bandWidth, shift := DeriveParams(queryGaps, refGaps)
	assert.Equal(t, 5, bandWidth)
	assert.Equal(t, 4, shift)
}

func TestAlignDelegatesToAligner(t *testing.T) {
	ref := []alphabet.Aminoacid{alphabet.AaM, alphabet.AaK, alphabet.AaT}
	query := []alphabet.Aminoacid{alphabet.AaM, alphabet.AaK, alphabet.AaT}
	params := align.Parameters{ScoreMatch: 3, PenaltyMismatch: -1, PenaltyGapOpen: -6, PenaltyGapExtend: 0, MaxIndel: 400, MinimalLength: 1}
	seedParams := align.SeedParameters{SeedLength: 5, MinSeeds: 2, SeedSpacing: 100, MismatchesAllowed: 1}

	res, err := Align(query, ref, params, seedParams, flatGapOpenClose(len(ref), params.PenaltyGapOpen))
	require.NoError(t, err)
	assert.Equal(t, 9, res.Score)
}
