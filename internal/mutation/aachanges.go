package mutation

import (
	"github.com/nextstrain/nextclade-sub000/internal/alphabet"
	"github.com/nextstrain/nextclade-sub000/internal/gene"
)

// AminoacidSubstitution is a single-codon amino-acid change, carrying the
// surrounding nucleotide context (one codon either side) for display.
type AminoacidSubstitution struct {
	Gene            string
	RefAA           alphabet.Aminoacid
	Codon           int
	QueryAA         alphabet.Aminoacid
	CodonNucRange   gene.Range
	RefContext      []alphabet.Nucleotide
	QueryContext    []alphabet.Nucleotide
	ContextNucRange gene.Range
	NucSubstitutions []*Substitution
	NucDeletions     []*Deletion
}

// AminoacidDeletion is a codon position where the query peptide carries a
// gap.
type AminoacidDeletion struct {
	Gene            string
	RefAA           alphabet.Aminoacid
	Codon           int
	CodonNucRange   gene.Range
	RefContext      []alphabet.Nucleotide
	QueryContext    []alphabet.Nucleotide
	ContextNucRange gene.Range
	NucSubstitutions []*Substitution
	NucDeletions     []*Deletion
}

// AaChangesReport is the result of GetAminoacidChanges.
type AaChangesReport struct {
	Substitutions []*AminoacidSubstitution
	Deletions     []*AminoacidDeletion
}

// Peptide pairs a translated sequence with the name of the gene it was
// translated from, so ref/query peptides can be zipped by gene.
type Peptide struct {
	GeneName string
	Seq      []alphabet.Aminoacid
}

func clamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// getAminoacidChangesForGene compares one gene's ref/query peptides codon
// by codon, skipping codons outside alignmentRange, and appends every
// substitution/deletion found (with surrounding nucleotide context) onto
// report.
func getAminoacidChangesForGene(
	ref, query []alphabet.Nucleotide,
	refPeptide, queryPeptide []alphabet.Aminoacid,
	g gene.Gene,
	alignmentRange gene.Range,
	report *AaChangesReport,
) {
	numNucs := len(query)
	numCodons := len(queryPeptide)

	for codon := 0; codon < numCodons; codon++ {
		refAA := refPeptide[codon]
		queryAA := queryPeptide[codon]

		codonBegin := g.Start + codon*3
		codonEnd := codonBegin + 3

		if !alignmentRange.Contains(codonBegin) || codonEnd > alignmentRange.End {
			continue
		}

		contextBegin := clamp(codonBegin-3, 0, numNucs)
		contextEnd := clamp(codonEnd+3, 0, numNucs)

		refContext := append([]alphabet.Nucleotide(nil), ref[contextBegin:contextEnd]...)
		queryContext := append([]alphabet.Nucleotide(nil), query[contextBegin:contextEnd]...)

		codonRange := gene.Range{Begin: codonBegin, End: codonEnd}
		contextRange := gene.Range{Begin: contextBegin, End: contextEnd}

		switch {
		case queryAA.IsGap():
			report.Deletions = append(report.Deletions, &AminoacidDeletion{
				Gene:            g.Name,
				RefAA:           refAA,
				Codon:           codon,
				CodonNucRange:   codonRange,
				RefContext:      refContext,
				QueryContext:    queryContext,
				ContextNucRange: contextRange,
			})
		case queryAA != refAA && queryAA != alphabet.AaX:
			report.Substitutions = append(report.Substitutions, &AminoacidSubstitution{
				Gene:            g.Name,
				RefAA:           refAA,
				Codon:           codon,
				QueryAA:         queryAA,
				CodonNucRange:   codonRange,
				RefContext:      refContext,
				QueryContext:    queryContext,
				ContextNucRange: contextRange,
			})
		}
	}
}

// GetAminoacidChanges compares ref/query peptides gene by gene, looking up
// each peptide's gene in geneMap. Nucleotide sequences and peptides must
// already be insertion-stripped. refPeptides and queryPeptides must name
// the same genes in the same order.
func GetAminoacidChanges(
	ref, query []alphabet.Nucleotide,
	refPeptides, queryPeptides []Peptide,
	alignmentRange gene.Range,
	geneMap gene.Map,
) (AaChangesReport, error) {
	var report AaChangesReport

	for i, refPeptide := range refPeptides {
		queryPeptide := queryPeptides[i]

		g, err := geneMap.Lookup(refPeptide.GeneName)
		if err != nil {
			return AaChangesReport{}, err
		}

		getAminoacidChangesForGene(ref, query, refPeptide.Seq, queryPeptide.Seq, g, alignmentRange, &report)
	}

	return report, nil
}
