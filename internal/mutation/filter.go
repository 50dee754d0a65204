package mutation

import (
	"github.com/nextstrain/nextclade-sub000/internal/alphabet"
	"github.com/nextstrain/nextclade-sub000/internal/frameshift"
)

// FilterAminoacidChangesInPlace drops amino-acid changes that fall inside a
// gene's frame-shifted codon range, since the translated peptide there is
// meaningless garbage rather than a real change. A substitution that reads
// as a stop codon is kept regardless, since stop-gain is reported even
// under a frame shift.
func FilterAminoacidChangesInPlace(aa *AaChangesReport, frameShifts []frameshift.CodonRange) {
	aa.Substitutions = filterSlice(aa.Substitutions, func(sub *AminoacidSubstitution) bool {
		if sub.QueryAA == alphabet.AaStop {
			return true
		}
		for _, fs := range frameShifts {
			if sub.Codon >= fs.Begin && sub.Codon < fs.End {
				return false
			}
		}
		return true
	})

	aa.Deletions = filterSlice(aa.Deletions, func(del *AminoacidDeletion) bool {
		for _, fs := range frameShifts {
			if del.Codon >= fs.Begin && del.Codon < fs.End {
				return false
			}
		}
		return true
	})
}

func filterSlice[T any](in []T, keep func(T) bool) []T {
	out := in[:0]
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
