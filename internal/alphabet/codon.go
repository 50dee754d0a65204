package alphabet

// codonTable maps a non-ambiguous codon string (3 uppercase nucleotide
// characters) to its translated residue. Adapted from the standard genetic
// code table in translate.go of the teacher, extended with explicit STOP
// handling rather than eliding stop codons.
var codonTable = map[[3]byte]Aminoacid{
	{'A', 'A', 'A'}: AaK, {'A', 'A', 'C'}: AaN, {'A', 'A', 'G'}: AaK, {'A', 'A', 'T'}: AaN,
	{'A', 'C', 'A'}: AaT, {'A', 'C', 'C'}: AaT, {'A', 'C', 'G'}: AaT, {'A', 'C', 'T'}: AaT,
	{'A', 'G', 'A'}: AaR, {'A', 'G', 'C'}: AaS, {'A', 'G', 'G'}: AaR, {'A', 'G', 'T'}: AaS,
	{'A', 'T', 'A'}: AaI, {'A', 'T', 'C'}: AaI, {'A', 'T', 'G'}: AaM, {'A', 'T', 'T'}: AaI,
	{'C', 'A', 'A'}: AaQ, {'C', 'A', 'C'}: AaH, {'C', 'A', 'G'}: AaQ, {'C', 'A', 'T'}: AaH,
	{'C', 'C', 'A'}: AaP, {'C', 'C', 'C'}: AaP, {'C', 'C', 'G'}: AaP, {'C', 'C', 'T'}: AaP,
	{'C', 'G', 'A'}: AaR, {'C', 'G', 'C'}: AaR, {'C', 'G', 'G'}: AaR, {'C', 'G', 'T'}: AaR,
	{'C', 'T', 'A'}: AaL, {'C', 'T', 'C'}: AaL, {'C', 'T', 'G'}: AaL, {'C', 'T', 'T'}: AaL,
	{'G', 'A', 'A'}: AaE, {'G', 'A', 'C'}: AaD, {'G', 'A', 'G'}: AaE, {'G', 'A', 'T'}: AaD,
	{'G', 'C', 'A'}: AaA, {'G', 'C', 'C'}: AaA, {'G', 'C', 'G'}: AaA, {'G', 'C', 'T'}: AaA,
	{'G', 'G', 'A'}: AaG, {'G', 'G', 'C'}: AaG, {'G', 'G', 'G'}: AaG, {'G', 'G', 'T'}: AaG,
	{'G', 'T', 'A'}: AaV, {'G', 'T', 'C'}: AaV, {'G', 'T', 'G'}: AaV, {'G', 'T', 'T'}: AaV,
	{'T', 'A', 'A'}: AaStop, {'T', 'A', 'C'}: AaY, {'T', 'A', 'G'}: AaStop, {'T', 'A', 'T'}: AaY,
	{'T', 'C', 'A'}: AaS, {'T', 'C', 'C'}: AaS, {'T', 'C', 'G'}: AaS, {'T', 'C', 'T'}: AaS,
	{'T', 'G', 'A'}: AaStop, {'T', 'G', 'C'}: AaC, {'T', 'G', 'G'}: AaW, {'T', 'G', 'T'}: AaC,
	{'T', 'T', 'A'}: AaL, {'T', 'T', 'C'}: AaF, {'T', 'T', 'G'}: AaL, {'T', 'T', 'T'}: AaF,
}

// DecodeCodon translates a three-nucleotide codon into an amino acid.
// (GAP,GAP,GAP) decodes to GAP. Any codon containing ambiguity that does not
// resolve to a single canonical codon decodes to X.
func DecodeCodon(a, b, c Nucleotide) Aminoacid {
	if a == NucGap && b == NucGap && c == NucGap {
		return AaGap
	}
	key, ok := canonicalCodon(a, b, c)
	if !ok {
		return AaX
	}
	aa, ok := codonTable[key]
	if !ok {
		return AaX
	}
	return aa
}

// canonicalCodon returns the upper-case ASCII triplet for a codon composed
// only of unambiguous bases (A/C/G/T), and false otherwise.
func canonicalCodon(a, b, c Nucleotide) ([3]byte, bool) {
	var key [3]byte
	for i, n := range [3]Nucleotide{a, b, c} {
		switch n {
		case NucA, NucC, NucG, NucT:
			key[i] = CharFromNucleotide(n)
		default:
			return key, false
		}
	}
	return key, true
}
