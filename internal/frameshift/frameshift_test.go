package frameshift

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

func TestDetectSingleDeletionFrameShift(t *testing.T) {
	ref := nucs(t, "CTTGGAGGTTCCGTGGCTATAGATAACAGAACATTCTTGGAATGCTGATC")
	query := nucs(t, "CTTGGAGGTTCCGTGGCT-TAGATAACAGAACATTCTTGGAATGCTGATC")

	ranges := Detect(ref, query)
	require.Len(t, ranges, 1)
	assert.Equal(t, Range{Begin: 19, End: 50}, ranges[0])
}

func TestDetectNoShiftOnPureSubstitution(t *testing.T) {
	ref := nucs(t, "CTTGGAGGTTCCGTGGCTATAGATAACAGAACATTCTTGGAATGCTGATC")
	query := nucs(t, "CTTGGAGGTTCCGTGGCTGTAGATAACAGAACATTCTTGGAATGCTGATC")
	assert.Empty(t, Detect(ref, query))
}

func TestDetectRebalancedShift(t *testing.T) {
	// Three single-nucleotide deletions in the query; the first two leave the
	// frame shifted throughout (net shift not a multiple of three), the third
	// brings it back to zero and closes the reported range.
	ref := nucs(t, "AAACCCGGGTTTAAACCCGGGTTT")
	query := nucs(t, "AAA-CCGGGT-TAAACC-GGGTTT")
	ranges := Detect(ref, query)
	require.Len(t, ranges, 1)
	assert.Equal(t, Range{Begin: 4, End: 17}, ranges[0])
}
