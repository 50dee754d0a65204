package gene

import (
	"fmt"

	"github.com/nextstrain/nextclade-sub000/internal/alphabet"
	"github.com/nextstrain/nextclade-sub000/internal/coordmap"
)

// ExtractGeneLengthInvalidError reports a gene whose gap-stripped extracted
// length is not a whole number of codons.
type ExtractGeneLengthInvalidError struct {
	GeneName string
	NumGaps  int
}

func (e *ExtractGeneLengthInvalidError) Error() string {
	return fmt.Sprintf("gene %q: extracted length invalid, stripped %d gap(s), not a multiple of 3", e.GeneName, e.NumGaps)
}

// ExtractRef returns the reference's own gene slice — no coordinate
// projection needed since the reference alignment coordinates equal its own
// un-gapped coordinates by construction.
func ExtractRef(ref []alphabet.Nucleotide, g Gene) []alphabet.Nucleotide {
	return ref[g.Start:g.End]
}

// ExtractAligned projects gene.start/end through coordMap into alignment
// coordinates and returns a copy of that window of alignedSeq. It is used
// on both the aligned reference and the aligned query, so the two windows
// it returns for a given gene are always the same length and share the
// same gap columns wherever the alignment placed an insertion. The
// returned slice is a copy, not a view, so callers can mutate it (to
// protect a codon or mask a frame shift) without disturbing the
// whole-genome alignment it came from.
func ExtractAligned(alignedSeq []alphabet.Nucleotide, g Gene, coordMap coordmap.Map) []alphabet.Nucleotide {
	start := coordMap[g.Start]
	end := len(alignedSeq)
	if g.End < len(coordMap) {
		end = coordMap[g.End]
	}
	out := make([]alphabet.Nucleotide, end-start)
	copy(out, alignedSeq[start:end])
	return out
}

// ExtractQuery projects gene.start/end through the coordinate map into
// alignment coordinates, slices the aligned query, and strips gaps. Fails
// with ExtractGeneLengthInvalidError when the number of stripped gaps is
// not a multiple of three (the caller is expected to downgrade this into a
// per-gene warning and otherwise continue).
func ExtractQuery(alignedQuery []alphabet.Nucleotide, g Gene, coordMap coordmap.Map) ([]alphabet.Nucleotide, error) {
	unstripped := ExtractAligned(alignedQuery, g, coordMap)
	stripped := RemoveGaps(unstripped)

	numGaps := len(unstripped) - len(stripped)
	if numGaps%3 != 0 {
		return nil, &ExtractGeneLengthInvalidError{GeneName: g.Name, NumGaps: numGaps}
	}
	return stripped, nil
}

// RemoveGaps returns seq with every gap character dropped.
func RemoveGaps(seq []alphabet.Nucleotide) []alphabet.Nucleotide {
	out := make([]alphabet.Nucleotide, 0, len(seq))
	for _, n := range seq {
		if !n.IsGap() {
			out = append(out, n)
		}
	}
	return out
}

// ProtectFirstCodon replaces leading gaps within the gene's first codon slot
// with N, in place, so that subsequent gap-stripping cannot shift the
// reading frame of the remainder of the gene.
func ProtectFirstCodon(seq []alphabet.Nucleotide) {
	limit := 3
	if len(seq) < limit {
		limit = len(seq)
	}
	for i := 0; i < limit; i++ {
		if !seq[i].IsGap() {
			break
		}
		seq[i] = alphabet.NucN
	}
}
