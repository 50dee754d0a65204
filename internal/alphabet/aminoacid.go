package alphabet

// Aminoacid is one of the 20 canonical residues plus ambiguity codes,
// the rare residues O/U, STOP, and GAP.
type Aminoacid byte

const (
	AaA Aminoacid = iota
	AaC
	AaD
	AaE
	AaF
	AaG
	AaH
	AaI
	AaK
	AaL
	AaM
	AaN
	AaP
	AaQ
	AaR
	AaS
	AaT
	AaV
	AaW
	AaY
	AaB
	AaJ
	AaZ
	AaX
	AaO
	AaU
	AaStop
	AaGap
	aaSize
)

var aaToChar = [aaSize]byte{
	AaA: 'A', AaC: 'C', AaD: 'D', AaE: 'E', AaF: 'F', AaG: 'G', AaH: 'H',
	AaI: 'I', AaK: 'K', AaL: 'L', AaM: 'M', AaN: 'N', AaP: 'P', AaQ: 'Q',
	AaR: 'R', AaS: 'S', AaT: 'T', AaV: 'V', AaW: 'W', AaY: 'Y',
	AaB: 'B', AaJ: 'J', AaZ: 'Z', AaX: 'X', AaO: 'O', AaU: 'U',
	AaStop: '*', AaGap: '-',
}

var charToAa = buildCharToAa()

func buildCharToAa() map[byte]Aminoacid {
	m := make(map[byte]Aminoacid, aaSize)
	for a, c := range aaToChar {
		m[c] = Aminoacid(a)
	}
	return m
}

// AminoacidFromChar validates and converts a character to an Aminoacid.
func AminoacidFromChar(c byte) (Aminoacid, error) {
	a, ok := charToAa[c]
	if !ok {
		return 0, &InvalidLetterError{Alphabet: "aminoacid", Char: c}
	}
	return a, nil
}

// CharFromAminoacid converts an Aminoacid back to its one-letter code.
func CharFromAminoacid(a Aminoacid) byte { return aaToChar[a] }

func (a Aminoacid) IsGap() bool  { return a == AaGap }
func (a Aminoacid) IsStop() bool { return a == AaStop }

func (a Aminoacid) String() string { return string(CharFromAminoacid(a)) }

// LookupAaScore returns match when a and b are identical residues (GAP only
// matches GAP), else mismatch. Ambiguous residues only match themselves,
// mirroring the nucleotide table's treatment of exact identity for
// non-IUPAC-expandable codes.
func LookupAaScore(a, b Aminoacid, match, mismatch int) int {
	if a == b {
		return match
	}
	return mismatch
}
