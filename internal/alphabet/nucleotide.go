// Package alphabet implements the IUPAC nucleotide and amino-acid alphabets
// used throughout the aligner and mutation caller: closed, byte-sized,
// totally ordered letter enums, match-score lookup tables and the codon
// decoder.
package alphabet

import "fmt"

// Nucleotide is one of the 16 IUPAC nucleotide ambiguity codes plus GAP.
type Nucleotide byte

// The nucleotide enumeration. Values double as indices into nucMatchTable,
// so their order must not change without updating the table.
const (
	NucU Nucleotide = iota
	NucT
	NucA
	NucW
	NucC
	NucY
	NucM
	NucH
	NucG
	NucK
	NucR
	NucD
	NucS
	NucB
	NucV
	NucN
	NucGap
	nucSize
)

var nucToChar = [nucSize]byte{
	NucU: 'U', NucT: 'T', NucA: 'A', NucW: 'W', NucC: 'C', NucY: 'Y', NucM: 'M',
	NucH: 'H', NucG: 'G', NucK: 'K', NucR: 'R', NucD: 'D', NucS: 'S', NucB: 'B',
	NucV: 'V', NucN: 'N', NucGap: '-',
}

var charToNuc = buildCharToNuc()

func buildCharToNuc() map[byte]Nucleotide {
	m := make(map[byte]Nucleotide, nucSize)
	for n, c := range nucToChar {
		m[c] = Nucleotide(n)
	}
	return m
}

// InvalidLetterError reports a character that does not belong to an alphabet.
type InvalidLetterError struct {
	Alphabet string
	Char     byte
}

func (e *InvalidLetterError) Error() string {
	return fmt.Sprintf("invalid %s letter: %q", e.Alphabet, e.Char)
}

// NucleotideFromChar validates and converts a character to a Nucleotide.
func NucleotideFromChar(c byte) (Nucleotide, error) {
	n, ok := charToNuc[c]
	if !ok {
		return 0, &InvalidLetterError{Alphabet: "nucleotide", Char: c}
	}
	return n, nil
}

// CharFromNucleotide converts a Nucleotide back to its IUPAC character.
func CharFromNucleotide(n Nucleotide) byte {
	return nucToChar[n]
}

// IsGap reports whether n is the alignment gap symbol.
func (n Nucleotide) IsGap() bool { return n == NucGap }

// IsACGT reports whether n is one of the four canonical bases (no ambiguity,
// no gap).
func (n Nucleotide) IsACGT() bool {
	switch n {
	case NucA, NucC, NucG, NucT:
		return true
	default:
		return false
	}
}

// IsUnknown reports whether n is the fully ambiguous N code.
func (n Nucleotide) IsUnknown() bool { return n == NucN }

func (n Nucleotide) String() string { return string(CharFromNucleotide(n)) }

// nucMatchTable[a][b] is 1 when a and b share at least one IUPAC
// interpretation, else 0. Symmetric. GAP matches only itself and N; N
// matches everything (including GAP).
//
// Row/column order: U T A W C Y M H G K R D S B V N -
var nucMatchTable = [nucSize][nucSize]int{
	NucU:   {1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0},
	NucT:   {0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0},
	NucA:   {0, 0, 1, 1, 0, 0, 1, 1, 0, 0, 1, 1, 0, 0, 1, 1, 0},
	NucW:   {0, 1, 1, 1, 0, 1, 1, 1, 0, 1, 1, 1, 0, 1, 1, 1, 0},
	NucC:   {0, 0, 0, 0, 1, 1, 1, 1, 0, 0, 0, 0, 1, 1, 1, 1, 0},
	NucY:   {0, 1, 0, 1, 1, 1, 1, 1, 0, 1, 0, 1, 1, 1, 1, 1, 0},
	NucM:   {0, 0, 1, 1, 1, 1, 1, 1, 0, 0, 1, 1, 1, 1, 1, 1, 0},
	NucH:   {0, 1, 1, 1, 1, 1, 1, 1, 0, 1, 1, 1, 1, 1, 1, 1, 0},
	NucG:   {0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 0},
	NucK:   {0, 1, 0, 1, 0, 1, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0},
	NucR:   {0, 0, 1, 1, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0},
	NucD:   {0, 1, 1, 1, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0},
	NucS:   {0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0},
	NucB:   {0, 1, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0},
	NucV:   {0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0},
	NucN:   {1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	NucGap: {0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1},
}

// NucleotidesMatch reports whether a and b share any IUPAC interpretation.
func NucleotidesMatch(a, b Nucleotide) bool {
	return nucMatchTable[a][b] != 0
}

// LookupNucScore returns the match score when the letters are compatible,
// else the mismatch score.
func LookupNucScore(a, b Nucleotide, match, mismatch int) int {
	if NucleotidesMatch(a, b) {
		return match
	}
	return mismatch
}

// ReverseComplement reverse-complements a nucleotide sequence. Ambiguity
// codes are complemented symbol-for-symbol (e.g. R <-> Y), GAP maps to
// itself.
func ReverseComplement(seq []Nucleotide) []Nucleotide {
	out := make([]Nucleotide, len(seq))
	for i, n := range seq {
		out[len(seq)-1-i] = complementNuc[n]
	}
	return out
}

var complementNuc = [nucSize]Nucleotide{
	NucA: NucT, NucT: NucA, NucU: NucA, NucC: NucG, NucG: NucC,
	NucW: NucW, NucS: NucS, NucM: NucK, NucK: NucM, NucR: NucY, NucY: NucR,
	NucB: NucV, NucV: NucB, NucD: NucH, NucH: NucD, NucN: NucN, NucGap: NucGap,
}
