package mutation

import "github.com/nextstrain/nextclade-sub000/internal/gene"

// LinkNucAndAaChangesInPlace records, bidirectionally, which amino-acid
// changes are spatially associated with which nucleotide changes. A
// substitution links to every amino-acid change whose codon range contains
// its position; a deletion links to every amino-acid change whose codon
// range intersects the deletion's span. This is spatial locality, not
// claimed causation.
func LinkNucAndAaChangesInPlace(nuc *NucChangesReport, aa *AaChangesReport) {
	for _, aaSub := range aa.Substitutions {
		for _, nucSub := range nuc.Substitutions {
			if aaSub.CodonNucRange.Contains(nucSub.Pos) {
				nucSub.AaSubstitutions = append(nucSub.AaSubstitutions, aaSub)
				aaSub.NucSubstitutions = append(aaSub.NucSubstitutions, nucSub)
			}
		}
		for _, nucDel := range nuc.Deletions {
			delRange := gene.Range{Begin: nucDel.Start, End: nucDel.End()}
			if delRange.Intersects(aaSub.CodonNucRange) {
				nucDel.AaSubstitutions = append(nucDel.AaSubstitutions, aaSub)
				aaSub.NucDeletions = append(aaSub.NucDeletions, nucDel)
			}
		}
	}

	for _, aaDel := range aa.Deletions {
		for _, nucSub := range nuc.Substitutions {
			if aaDel.CodonNucRange.Contains(nucSub.Pos) {
				nucSub.AaDeletions = append(nucSub.AaDeletions, aaDel)
				aaDel.NucSubstitutions = append(aaDel.NucSubstitutions, nucSub)
			}
		}
		for _, nucDel := range nuc.Deletions {
			delRange := gene.Range{Begin: nucDel.Start, End: nucDel.End()}
			if delRange.Intersects(aaDel.CodonNucRange) {
				nucDel.AaDeletions = append(nucDel.AaDeletions, aaDel)
				aaDel.NucDeletions = append(aaDel.NucDeletions, nucDel)
			}
		}
	}
}
