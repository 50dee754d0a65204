// Package primers holds the PCR primer data model: a primer's location on
// the reference genome plus the non-ACGT positions within it, produced by
// parsing the primer CSV against a root sequence.
package primers

import "github.com/nextstrain/nextclade-sub000/internal/alphabet"

// NucleotideLocation names a single position and the letter found there.
type NucleotideLocation struct {
	Pos int
	Nuc alphabet.Nucleotide
}

// PcrPrimer is one row of the primer CSV, resolved against the reference:
// Range is where the oligonucleotide was found on the reference, and
// NonAcgts lists the ambiguous positions within that range (offset to
// reference coordinates) that should not be reported as primer-affecting
// mutations when the query carries a matching ambiguity code there.
type PcrPrimer struct {
	Name           string
	Target         string
	Source         string
	RootOligonuc   []alphabet.Nucleotide
	PrimerOligonuc []alphabet.Nucleotide
	Range          Range
	NonAcgts       []NucleotideLocation
}

// Range is a half-open [Begin, End) interval on the reference, duplicated
// here (rather than imported from internal/gene) to keep this package a
// leaf with no dependency beyond the alphabet.
type Range struct {
	Begin int
	End   int
}

// Contains reports whether pos falls inside the half-open range.
func (r Range) Contains(pos int) bool {
	return pos >= r.Begin && pos < r.End
}
