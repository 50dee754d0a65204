package coordmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextstrain/nextclade-sub000/internal/alphabet"
)

func nucs(t *testing.T, s string) []alphabet.Nucleotide {
	t.Helper()
	out := make([]alphabet.Nucleotide, len(s))
	for i := 0; i < len(s); i++ {
		n, err := alphabet.NucleotideFromChar(s[i])
		require.NoError(t, err)
		out[i] = n
	}
	return out
}

func TestBuild(t *testing.T) {
	ref := nucs(t, "ACTC---CGTG---A")
	m := Build(ref)
	assert.Equal(t, Map{0, 1, 2, 3, 7, 8, 9, 10, 14}, m)
}

func TestBuildReverse(t *testing.T) {
	ref := nucs(t, "ACTC---CGTG---A")
	m := BuildReverse(ref)
	assert.Equal(t, ReverseMap{0, 1, 2, 3, 3, 3, 3, 4, 5, 6, 7, 7, 7, 7, 8}, m)
}

func TestInverseRoundTrip(t *testing.T) {
	ref := nucs(t, "ACTC---CGTG---A")
	fwd := Build(ref)
	rev := BuildReverse(ref)
	for refPos, alnPos := range fwd {
		assert.Equal(t, refPos, rev[alnPos])
	}
}
