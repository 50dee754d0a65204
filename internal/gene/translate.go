package gene

import "github.com/nextstrain/nextclade-sub000/internal/alphabet"

// Translate decodes a nucleotide sequence, whose length must be a multiple
// of three, into a peptide. When translatePastStop is false, translation
// halts at (and includes) the first non-ambiguous stop codon; when true,
// every codon is decoded regardless of stops encountered along the way.
func Translate(seq []alphabet.Nucleotide, translatePastStop bool) []alphabet.Aminoacid {
	n := len(seq) / 3
	peptide := make([]alphabet.Aminoacid, 0, n)
	for i := 0; i < n; i++ {
		j := i * 3
		aa := alphabet.DecodeCodon(seq[j], seq[j+1], seq[j+2])
		peptide = append(peptide, aa)
		if !translatePastStop && aa.IsStop() {
			break
		}
	}
	return peptide
}
