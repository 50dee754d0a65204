package mutation

import (
	"github.com/nextstrain/nextclade-sub000/internal/alphabet"
	"github.com/nextstrain/nextclade-sub000/internal/primers"
)

// PcrPrimerChange groups the substitutions that fall within one primer's
// footprint.
type PcrPrimerChange struct {
	Primer        primers.PcrPrimer
	Substitutions []*Substitution
}

// shouldReportPrimerMutation decides whether mut should be considered a
// change to primer: it must fall within the primer's range, and must not be
// an already-expected ambiguity position (one the primer itself carries a
// matching IUPAC code for).
func shouldReportPrimerMutation(mut *Substitution, primer primers.PcrPrimer) bool {
	if !primer.Range.Contains(mut.Pos) {
		return false
	}
	for _, nonACGT := range primer.NonAcgts {
		if nonACGT.Pos == mut.Pos && alphabet.NucleotidesMatch(nonACGT.Nuc, mut.QueryNuc) {
			return false
		}
	}
	return true
}

// AddPrimerChangesInPlace attaches, to every substitution, the list of
// primers whose footprint it falls in and isn't already explained by the
// primer's own ambiguity codes.
func AddPrimerChangesInPlace(substitutions []*Substitution, prms []primers.PcrPrimer) {
	for _, mut := range substitutions {
		for _, primer := range prms {
			if shouldReportPrimerMutation(mut, primer) {
				mut.PcrPrimersChanged = append(mut.PcrPrimersChanged, primer)
			}
		}
	}
}

// GetPcrPrimerChanges groups substitutions by the primer(s) they affect.
func GetPcrPrimerChanges(substitutions []*Substitution, prms []primers.PcrPrimer) []PcrPrimerChange {
	var result []PcrPrimerChange
	for _, primer := range prms {
		var selected []*Substitution
		for _, mut := range substitutions {
			if shouldReportPrimerMutation(mut, primer) {
				selected = append(selected, mut)
			}
		}
		if len(selected) > 0 {
			result = append(result, PcrPrimerChange{Primer: primer, Substitutions: selected})
		}
	}
	return result
}
