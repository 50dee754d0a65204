// Package pepalign derives peptide-alignment parameters from the gap
// pattern of a gene already extracted as part of the nucleotide alignment,
// then reuses the generic aligner (package align) with amino-acid scoring.
package pepalign

import (
	"github.com/nextstrain/nextclade-sub000/internal/align"
	"github.com/nextstrain/nextclade-sub000/internal/alphabet"
)

// GapCounts tallies leading, internal, and trailing gap runs of a sequence.
type GapCounts struct {
	Leading, Internal, Trailing, Total int
}

// CountGaps classifies every gap in seq as leading (before the first
// non-gap), trailing (after the last non-gap), or internal.
func CountGaps[L comparable](seq []L, gap L) GapCounts {
	n := len(seq)
	if n == 0 {
		return GapCounts{}
	}
	if n == 1 {
		leading := 0
		if seq[0] == gap {
			leading = 1
		}
		return GapCounts{Leading: leading}
	}

	begin := 0
	for begin < n && seq[begin] == gap {
		begin++
	}
	end := n - 1
	for end >= 0 && seq[end] == gap {
		end--
	}

	internal := 0
	for i := begin; i < end; i++ {
		if seq[i] == gap {
			internal++
		}
	}

	leading := begin
	trailing := n - 1 - end
	return GapCounts{
		Leading:  leading,
		Internal: internal,
		Trailing: trailing,
		Total:    leading + internal + trailing,
	}
}

// DeriveParams computes the band width and shift used to align a gene's
// translated peptide against the reference peptide, from the gap counts of
// the nucleotide sequences the peptides were extracted from.
//
// The constant 3 added to the band width gives slack beyond what the
// nucleotide alignment's internal gaps alone would suggest.
func DeriveParams(queryGaps, refGaps GapCounts) (bandWidth, shift int) {
	internal := queryGaps.Internal
	if refGaps.Internal > internal {
		internal = refGaps.Internal
	}
	bandWidth = internal/3 + 3
	shift = queryGaps.Leading + bandWidth/2
	return bandWidth, shift
}

// Align aligns a translated query peptide against the reference peptide
// using a flat (non-codon-aware) gap-open-close vector, since codons are
// already collapsed to single letters by this point.
func Align(queryPeptide, refPeptide []alphabet.Aminoacid, params align.Parameters, seedParams align.SeedParameters, gapOpenClose []int) (align.Result[alphabet.Aminoacid], error) {
	return align.Align(queryPeptide, refPeptide, gapOpenClose, params, seedParams, align.AminoacidScorer())
}
