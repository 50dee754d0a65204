// Package insertion strips query insertions (positions where the reference
// carries a gap) out of an aligned pair, producing the ungapped-relative-
// to-reference query sequence plus the list of stripped insertions.
package insertion

import "github.com/nextstrain/nextclade-sub000/internal/alphabet"

// Insertion is a run of query letters the reference alignment has no
// counterpart for. Pos is the reference coordinate immediately preceding
// the insertion (the count of non-gap reference letters consumed so far);
// Seq holds the inserted letters themselves.
type Insertion[L any] struct {
	Pos int
	Seq []L
}

// Result bundles the insertion-stripped query with the insertions removed
// from it.
type Result[L any] struct {
	Stripped   []L
	Insertions []Insertion[L]
}

// Strip walks ref and query in lockstep; wherever ref carries a gap, the
// corresponding query letter is accumulated into a pending insertion
// instead of being copied to the output. Invariant: len(Stripped) <= len(ref).
func Strip(ref, query []alphabet.Nucleotide) Result[alphabet.Nucleotide] {
	return StripGeneric(ref, query, alphabet.NucGap)
}

// StripGeneric is Strip generalized to any letter type, so the same
// walk-and-accumulate logic serves both the nucleotide alignment and the
// per-gene peptide alignment (where insertions are stripped the same way,
// one amino-acid at a time).
func StripGeneric[L comparable](ref, query []L, gap L) Result[L] {
	result := Result[L]{Stripped: make([]L, 0, len(ref))}

	insertionStart := -1
	var current []L

	flush := func() {
		if len(current) == 0 {
			return
		}
		result.Insertions = append(result.Insertions, Insertion[L]{
			Pos: insertionStart,
			Seq: current,
		})
		current = nil
		insertionStart = -1
	}

	for i, r := range ref {
		if r == gap {
			if len(current) == 0 {
				insertionStart = len(result.Stripped)
			}
			current = append(current, query[i])
			continue
		}
		result.Stripped = append(result.Stripped, query[i])
		flush()
	}
	flush()

	return result
}
