// Package analyze wires together every stage of single-sequence analysis —
// nucleotide alignment, per-gene translation and peptide alignment,
// frame-shift detection, insertion stripping, nucleotide and amino-acid
// change calling, nearest-tree-node assignment, and QC scoring — into the
// one function the pipeline worker pool calls per record.
package analyze

import (
	"fmt"

	"github.com/nextstrain/nextclade-sub000/internal/align"
	"github.com/nextstrain/nextclade-sub000/internal/alphabet"
	"github.com/nextstrain/nextclade-sub000/internal/gapvector"
	"github.com/nextstrain/nextclade-sub000/internal/gene"
	"github.com/nextstrain/nextclade-sub000/internal/mutation"
	"github.com/nextstrain/nextclade-sub000/internal/primers"
	"github.com/nextstrain/nextclade-sub000/internal/qc"
	"github.com/nextstrain/nextclade-sub000/internal/tree"
)

// Context bundles every input that is computed once per run and then
// shared, read-only, across every worker and every query sequence:
// the reference itself, its annotated genes and their translated
// peptides, the gap-open-close vectors the aligner uses, the alignment
// parameters, the preprocessed reference tree, the QC thresholds and the
// PCR primer set.
type Context struct {
	RefSeq            []alphabet.Nucleotide
	RefPeptides       []mutation.Peptide
	GeneMap           gene.Map
	SelectedGenes     []string
	GapOpenClose      gapvector.Vector
	AlignParams       align.Parameters
	SeedParams        align.SeedParameters
	AaAlignParams     align.Parameters
	AaSeedParams      align.SeedParameters
	Tree              *tree.Tree
	QcConfig          qc.Config
	Primers           []primers.PcrPrimer
	TranslatePastStop bool
}

// NewContext builds a Context from a reference sequence and gene map,
// translating every selected gene's reference peptide once and building
// the codon-aware nucleotide gap-open-close vector selected genes need.
// selectedGenes controls both which genes are translated and the order
// RefPeptides (and therefore every per-record QueryPeptide slice) is built
// in.
func NewContext(
	refSeq []alphabet.Nucleotide,
	geneMap gene.Map,
	selectedGenes []string,
	alignParams align.Parameters,
	seedParams align.SeedParameters,
	aaAlignParams align.Parameters,
	aaSeedParams align.SeedParameters,
	refTree *tree.Tree,
	qcConfig qc.Config,
	prms []primers.PcrPrimer,
	translatePastStop bool,
) (*Context, error) {
	gapOpenClose, err := gapvector.CodonAware(len(refSeq), geneMap, selectedGenes,
		alignParams.PenaltyGapOpenInFrame, alignParams.PenaltyGapOpenOutOfFrame)
	if err != nil {
		return nil, fmt.Errorf("analyze: building gap-open-close vector: %w", err)
	}

	refPeptides := make([]mutation.Peptide, 0, len(selectedGenes))
	for _, name := range selectedGenes {
		g, err := geneMap.Lookup(name)
		if err != nil {
			return nil, fmt.Errorf("analyze: %w", err)
		}
		refGeneSeq := gene.ExtractRef(refSeq, g)
		refPeptides = append(refPeptides, mutation.Peptide{
			GeneName: name,
			Seq:      gene.Translate(refGeneSeq, translatePastStop),
		})
	}

	return &Context{
		RefSeq:            refSeq,
		RefPeptides:       refPeptides,
		GeneMap:           geneMap,
		SelectedGenes:     selectedGenes,
		GapOpenClose:      gapOpenClose,
		AlignParams:       alignParams,
		SeedParams:        seedParams,
		AaAlignParams:     aaAlignParams,
		AaSeedParams:      aaSeedParams,
		Tree:              refTree,
		QcConfig:          qcConfig,
		Primers:           prms,
		TranslatePastStop: translatePastStop,
	}, nil
}
