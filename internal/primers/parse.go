package primers

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/nextstrain/nextclade-sub000/internal/alphabet"
)

var nucleotideComplements = map[alphabet.Nucleotide]alphabet.Nucleotide{
	alphabet.NucA: alphabet.NucT,
	alphabet.NucC: alphabet.NucG,
	alphabet.NucG: alphabet.NucC,
	alphabet.NucT: alphabet.NucA,
	alphabet.NucY: alphabet.NucR,
	alphabet.NucR: alphabet.NucY,
	alphabet.NucW: alphabet.NucW,
	alphabet.NucS: alphabet.NucS,
	alphabet.NucK: alphabet.NucM,
	alphabet.NucM: alphabet.NucK,
	alphabet.NucD: alphabet.NucH,
	alphabet.NucV: alphabet.NucB,
	alphabet.NucH: alphabet.NucD,
	alphabet.NucB: alphabet.NucV,
	alphabet.NucN: alphabet.NucN,
}

// UnknownComplementError reports a nucleotide with no defined complement
// (only A/C/G/T and the two/three-fold ambiguity codes plus N have one).
type UnknownComplementError struct {
	Nuc alphabet.Nucleotide
}

func (e *UnknownComplementError) Error() string {
	return fmt.Sprintf("primers: no known complement for nucleotide %q", alphabet.CharFromNucleotide(e.Nuc))
}

func complement(n alphabet.Nucleotide) (alphabet.Nucleotide, error) {
	c, ok := nucleotideComplements[n]
	if !ok {
		return 0, &UnknownComplementError{Nuc: n}
	}
	return c, nil
}

func reverseComplement(seq []alphabet.Nucleotide) ([]alphabet.Nucleotide, error) {
	out := make([]alphabet.Nucleotide, len(seq))
	for i, n := range seq {
		c, err := complement(n)
		if err != nil {
			return nil, err
		}
		out[len(seq)-1-i] = c
	}
	return out, nil
}

func toNucleotides(s string) ([]alphabet.Nucleotide, error) {
	out := make([]alphabet.Nucleotide, len(s))
	for i := 0; i < len(s); i++ {
		n, err := alphabet.NucleotideFromChar(s[i])
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func nucleotidesToString(seq []alphabet.Nucleotide) string {
	var b strings.Builder
	b.Grow(len(seq))
	for _, n := range seq {
		b.WriteByte(alphabet.CharFromNucleotide(n))
	}
	return b.String()
}

// findPrimerInRootSeq locates primer within rootSeq by building a regex
// that treats every non-ACGT letter of primer as "any character", since
// ambiguity codes in a primer can match any of several reference letters.
// A warning is appended (not returned as an error) when more than one
// match is found; only the first is used.
func findPrimerInRootSeq(name string, primer, rootSeq []alphabet.Nucleotide, warnings *[]string) (begin int, rootOligonuc []alphabet.Nucleotide, found bool) {
	rootStr := nucleotidesToString(rootSeq)
	primerStr := nucleotidesToString(primer)

	var pattern strings.Builder
	for i := 0; i < len(primerStr); i++ {
		c := primerStr[i]
		if c == 'A' || c == 'C' || c == 'G' || c == 'T' {
			pattern.WriteByte(c)
		} else {
			pattern.WriteByte('.')
		}
	}

	re, err := regexp.Compile(pattern.String())
	if err != nil {
		return 0, nil, false
	}

	locs := re.FindAllStringIndex(rootStr, -1)
	if len(locs) == 0 {
		return 0, nil, false
	}
	if len(locs) > 1 {
		*warnings = append(*warnings, fmt.Sprintf(
			"when searching fragments of PCR primer %q (oligonucleotide: %q) in the root sequence: found more than one match (%d); using only the first",
			name, primerStr, len(locs)))
	}

	loc := locs[0]
	rootOligo, err := toNucleotides(rootStr[loc[0]:loc[1]])
	if err != nil {
		return 0, nil, false
	}
	return loc[0], rootOligo, true
}

func findNonAcgt(seq []alphabet.Nucleotide, offset int) []NucleotideLocation {
	var out []NucleotideLocation
	for i, n := range seq {
		if !n.IsACGT() {
			out = append(out, NucleotideLocation{Pos: i + offset, Nuc: n})
		}
	}
	return out
}

// convertRow resolves one CSV row against rootSeq. A nil, nil return means
// the primer could not be located and a warning describing why was
// appended; the row is skipped rather than failing the whole parse.
func convertRow(source, target, name, primerOligonucStr string, rootSeq []alphabet.Nucleotide, warnings *[]string) (*PcrPrimer, error) {
	primerOligonuc, err := toNucleotides(primerOligonucStr)
	if err != nil {
		*warnings = append(*warnings, fmt.Sprintf(
			"PCR primer %q: oligonucleotide %q is not a valid nucleotide sequence, skipped", name, primerOligonucStr))
		return nil, nil
	}

	candidate := primerOligonuc
	if strings.HasSuffix(name, "_R") {
		candidate, err = reverseComplement(primerOligonuc)
		if err != nil {
			return nil, err
		}
	}

	begin, rootOligonuc, found := findPrimerInRootSeq(name, candidate, rootSeq, warnings)
	if !found {
		reversed, err := reverseComplement(candidate)
		if err != nil {
			return nil, err
		}
		candidate = reversed
		begin, rootOligonuc, found = findPrimerInRootSeq(name, candidate, rootSeq, warnings)
	}
	if !found {
		*warnings = append(*warnings, fmt.Sprintf(
			"unable to find PCR primer %q (oligonucleotide: %q) in the root sequence", name, primerOligonucStr))
		return nil, nil
	}

	end := begin + len(rootOligonuc)
	return &PcrPrimer{
		Name:           name,
		Target:         target,
		Source:         source,
		RootOligonuc:   rootOligonuc,
		PrimerOligonuc: primerOligonuc,
		Range:          Range{Begin: begin, End: end},
		NonAcgts:       findNonAcgt(candidate, begin),
	}, nil
}

// MissingColumnError reports a PCR primer CSV lacking one of its four
// required columns.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("primers: missing required column %q", e.Column)
}

var requiredColumns = []string{"Country (Institute)", "Target", "Oligonucleotide", "Sequence"}

// Parse reads a PCR primer CSV (columns "Country (Institute)", "Target",
// "Oligonucleotide", "Sequence") and resolves each row's oligonucleotide
// against rootSeq. Rows whose primer cannot be located in rootSeq are
// skipped with a warning rather than failing the parse; only a structural
// problem (missing column, unreadable CSV, an unknown-complement
// nucleotide) is returned as an error.
func Parse(r io.Reader, rootSeq []alphabet.Nucleotide) ([]PcrPrimer, []string, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'

	header, err := reader.Read()
	if err != nil {
		return nil, nil, err
	}
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(col)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, nil, &MissingColumnError{Column: col}
		}
	}

	var primers []PcrPrimer
	var warnings []string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}

		source := row[index["Country (Institute)"]]
		target := row[index["Target"]]
		name := row[index["Oligonucleotide"]]
		oligonuc := row[index["Sequence"]]

		primer, err := convertRow(source, target, name, oligonuc, rootSeq, &warnings)
		if err != nil {
			return nil, nil, err
		}
		if primer != nil {
			primers = append(primers, *primer)
		}
	}
	return primers, warnings, nil
}
