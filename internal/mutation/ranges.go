package mutation

import "github.com/nextstrain/nextclade-sub000/internal/alphabet"

// NucleotideRange is a maximal run of positions sharing a single character,
// used to report "missing" (N) and "nonACGTN" stretches.
type NucleotideRange struct {
	Begin     int
	End       int
	Length    int
	Character alphabet.Nucleotide
}

// FindNucleotideRanges scans seq for maximal contiguous runs of letters
// satisfying pred, reporting each run's character (all positions in a run
// share the same letter, not merely the same predicate outcome).
func FindNucleotideRanges(seq []alphabet.Nucleotide, pred func(alphabet.Nucleotide) bool) []NucleotideRange {
	var ranges []NucleotideRange
	length := len(seq)

	i := 0
	for i < length {
		c := seq[i]
		if !pred(c) {
			i++
			continue
		}
		begin := i
		for i < length && seq[i] == c {
			i++
		}
		ranges = append(ranges, NucleotideRange{Begin: begin, End: i, Length: i - begin, Character: c})
	}

	return ranges
}

// FindMissing reports runs of the fully-ambiguous N code.
func FindMissing(seq []alphabet.Nucleotide) []NucleotideRange {
	return FindNucleotideRanges(seq, func(n alphabet.Nucleotide) bool { return n == alphabet.NucN })
}

// FindNonACGTN reports runs of letters that are none of A, C, G, T, N, or gap
// (i.e. the narrower IUPAC ambiguity codes R, Y, S, W, K, M, B, D, H, V).
func FindNonACGTN(seq []alphabet.Nucleotide) []NucleotideRange {
	return FindNucleotideRanges(seq, func(n alphabet.Nucleotide) bool {
		switch n {
		case alphabet.NucA, alphabet.NucC, alphabet.NucG, alphabet.NucT, alphabet.NucN, alphabet.NucGap:
			return false
		default:
			return true
		}
	})
}

// NucleotideComposition counts every letter occurring in seq, aligned or
// not (gap included, since the source counts over the full aligned query).
func NucleotideComposition(seq []alphabet.Nucleotide) map[alphabet.Nucleotide]int {
	result := make(map[alphabet.Nucleotide]int)
	for _, n := range seq {
		result[n]++
	}
	return result
}
