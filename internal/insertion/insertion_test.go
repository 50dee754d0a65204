package insertion

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

func nucString(seq []alphabet.Nucleotide) string {
	b := make([]byte, len(seq))
	for i, n := range seq {
		b[i] = alphabet.CharFromNucleotide(n)
	}
	return string(b)
}

func TestStripSingleInsertion(t *testing.T) {
	ref := nucs(t, "ACT---CTCTACTCTAC")
	query := nucs(t, "ACTGCGCTCTAC---AC")

	res := Strip(ref, query)
	assert.Equal(t, "ACTCTCTAC---AC", nucString(res.Stripped))
	require.Len(t, res.Insertions, 1)
	assert.Equal(t, 3, res.Insertions[0].Pos)
	assert.Equal(t, "GCG", nucString(res.Insertions[0].Seq))
}

func TestStripInsertionAtEnds(t *testing.T) {
	ref := nucs(t, "---ACGCTC---")
	query := nucs(t, "GCCACGCTCGCT")
	res := Strip(ref, query)
	assert.Equal(t, "ACGCTC", nucString(res.Stripped))
	require.Len(t, res.Insertions, 2)
	assert.Equal(t, 0, res.Insertions[0].Pos)
	assert.Equal(t, "GCC", nucString(res.Insertions[0].Seq))
	assert.Equal(t, 6, res.Insertions[1].Pos)
	assert.Equal(t, "GCT", nucString(res.Insertions[1].Seq))
}

func TestStripLengthInvariant(t *testing.T) {
	ref := nucs(t, "A-CGT-")
	query := nucs(t, "AACGTT")
	res := Strip(ref, query)
	assert.LessOrEqual(t, len(res.Stripped), len(ref))
}
