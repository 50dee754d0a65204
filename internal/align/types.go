// Package align implements the banded, seeded, affine-gap Needleman-Wunsch
// aligner shared by the nucleotide and peptide alignment stages. It is
// generic over the letter alphabet: callers supply a Scorer that knows how
// to compare and classify letters of that alphabet.
package align

// Parameters bundles the score/penalty configuration of one alignment run.
// Penalties are negative numbers; |PenaltyGapOpenOutOfFrame| >
// |PenaltyGapOpenInFrame| > |PenaltyGapOpen| (an out-of-frame gap costs the
// most) is expected of callers that build a codon-aware GapOpenClose vector; plain
// callers (peptide alignment) use a single flat PenaltyGapOpen value instead
// and pass a GapOpenClose vector filled uniformly.
type Parameters struct {
	ScoreMatch                int
	PenaltyMismatch           int
	PenaltyGapOpen            int
	PenaltyGapOpenInFrame     int
	PenaltyGapOpenOutOfFrame  int
	PenaltyGapExtend          int
	MaxIndel                  int
	MinimalLength             int
}

// SeedParameters configures the seed-matching step that estimates the band.
type SeedParameters struct {
	SeedLength         int
	MinSeeds           int
	SeedSpacing        int
	MismatchesAllowed  int
}

// Scorer supplies the letter-alphabet-specific operations the aligner needs:
// gap value, compatibility test, and "ambiguous" classification used to pick
// good seed anchor positions.
type Scorer[L comparable] struct {
	Gap L
	// Match reports whether two letters are compatible (IUPAC-aware for
	// nucleotides, identity for amino acids).
	Match func(a, b L) bool
	// IsAmbiguous reports whether a letter should never be used to anchor a
	// seed (N for nucleotides, X for amino acids).
	IsAmbiguous func(l L) bool
}

// Result is one banded NW alignment of equal-length gapped sequences.
type Result[L comparable] struct {
	Ref   []L
	Qry   []L
	Score int
}

// path bitmask values, mirroring the bits used by the reference
// implementation's traceback matrix.
const (
	pathMatch         = 1 << 0
	pathRefGap        = 1 << 1
	pathQryGap        = 1 << 2
	pathRefGapExtend  = 1 << 3
	pathQryGapExtend  = 1 << 4
	endOfSequence     = -1
)

// seedAlignmentResult is the output of the seed step: the estimated
// diagonal shift and the half-width of the band to compute around it.
type seedAlignmentResult struct {
	meanShift int
	bandWidth int
}
