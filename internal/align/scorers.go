package align

import "github.com/nextstrain/nextclade-sub000/internal/alphabet"

// NucleotideScorer is the Scorer used for nucleotide-nucleotide alignment:
// IUPAC-aware compatibility, N as the ambiguous seed-anchor exclusion.
func NucleotideScorer() Scorer[alphabet.Nucleotide] {
	return Scorer[alphabet.Nucleotide]{
		Gap:         alphabet.NucGap,
		Match:       alphabet.NucleotidesMatch,
		IsAmbiguous: alphabet.Nucleotide.IsUnknown,
	}
}

// AminoacidScorer is the Scorer used for peptide-peptide alignment: identity
// compatibility, X as the ambiguous seed-anchor exclusion.
func AminoacidScorer() Scorer[alphabet.Aminoacid] {
	return Scorer[alphabet.Aminoacid]{
		Gap: alphabet.AaGap,
		Match: func(a, b alphabet.Aminoacid) bool {
			return a == b
		},
		IsAmbiguous: func(a alphabet.Aminoacid) bool {
			return a == alphabet.AaX
		},
	}
}
