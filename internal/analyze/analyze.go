package analyze

import (
	"fmt"
	"sort"

	"github.com/nextstrain/nextclade-sub000/internal/align"
	"github.com/nextstrain/nextclade-sub000/internal/alphabet"
	"github.com/nextstrain/nextclade-sub000/internal/coordmap"
	"github.com/nextstrain/nextclade-sub000/internal/frameshift"
	"github.com/nextstrain/nextclade-sub000/internal/gapvector"
	"github.com/nextstrain/nextclade-sub000/internal/gene"
	"github.com/nextstrain/nextclade-sub000/internal/insertion"
	"github.com/nextstrain/nextclade-sub000/internal/mask"
	"github.com/nextstrain/nextclade-sub000/internal/mutation"
	"github.com/nextstrain/nextclade-sub000/internal/pepalign"
	"github.com/nextstrain/nextclade-sub000/internal/pipeline"
	"github.com/nextstrain/nextclade-sub000/internal/qc"
	"github.com/nextstrain/nextclade-sub000/internal/tree"
)

// GeneFrameShift names one frame-shifted run found within a single gene,
// in both nucleotide (gene-relative) and codon coordinates.
type GeneFrameShift struct {
	GeneName   string
	NucRange   frameshift.Range
	CodonRange frameshift.CodonRange
}

// GeneWarning records a gene this sequence could not be translated or
// aligned for; the gene is simply omitted from the rest of the result
// rather than failing the whole sequence.
type GeneWarning struct {
	GeneName string
	Message  string
}

// Result is everything one query sequence's analysis produced.
type Result struct {
	SeqName                string
	AlignmentScore         int
	NucChanges             mutation.NucChangesReport
	Insertions             []insertion.Insertion[alphabet.Nucleotide]
	AminoacidChanges       mutation.AaChangesReport
	FrameShifts            []GeneFrameShift
	Missing                []mutation.NucleotideRange
	NonACGTN               []mutation.NucleotideRange
	NucleotideComposition  map[alphabet.Nucleotide]int
	PcrPrimerChanges       []mutation.PcrPrimerChange
	NearestNodeID          int
	NearestNodeDistance    int
	Clade                  string
	PrivateMutations       tree.PrivateMutations
	Qc                     qc.Result
	Warnings               []GeneWarning
	AlignedQuery           []alphabet.Nucleotide
	QueryPeptides          []mutation.Peptide
}

// toNucleotides decodes a raw FASTA byte sequence into the nucleotide
// alphabet, failing on the first letter no IUPAC code covers.
func toNucleotides(raw []byte) ([]alphabet.Nucleotide, error) {
	out := make([]alphabet.Nucleotide, len(raw))
	for i, c := range raw {
		n, err := alphabet.NucleotideFromChar(c)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// NewAnalyzeFunc returns a pipeline.AnalyzeFunc closing over ctx. ctx is
// read-only and safe to share across every worker; no per-worker scratch
// state is needed since every intermediate buffer below is allocated fresh
// per call.
func (ctx *Context) NewAnalyzeFunc() pipeline.AnalyzeFunc[Result] {
	return func(rec pipeline.Record) (Result, error) {
		return ctx.analyzeOne(rec)
	}
}

func (ctx *Context) analyzeOne(rec pipeline.Record) (Result, error) {
	query, err := toNucleotides(rec.Seq)
	if err != nil {
		return Result{}, fmt.Errorf("analyze %q: %w", rec.Name, err)
	}

	alignment, err := align.Align(query, ctx.RefSeq, ctx.GapOpenClose, ctx.AlignParams, ctx.SeedParams, align.NucleotideScorer())
	if err != nil {
		return Result{}, fmt.Errorf("analyze %q: aligning: %w", rec.Name, err)
	}

	alignedRef := alignment.Ref
	alignedQuery := alignment.Qry
	cm := coordmap.Build(alignedRef)

	result := Result{SeqName: rec.Name, AlignmentScore: alignment.Score}

	var refPeptides []mutation.Peptide
	var queryPeptides []mutation.Peptide
	var qcPeptides []qc.QueryPeptide

	for _, name := range ctx.SelectedGenes {
		g, err := ctx.GeneMap.Lookup(name)
		if err != nil {
			return Result{}, fmt.Errorf("analyze %q: %w", rec.Name, err)
		}

		refWindow := gene.ExtractAligned(alignedRef, g, cm)
		queryWindow := gene.ExtractAligned(alignedQuery, g, cm)

		queryGaps := pepalign.CountGaps(queryWindow, alphabet.NucGap)
		if queryGaps.Total >= len(queryWindow) || len(queryWindow) == 0 {
			result.Warnings = append(result.Warnings, GeneWarning{
				GeneName: name,
				Message:  fmt.Sprintf("gene %q consists entirely of gaps in this sequence and was not analyzed", name),
			})
			continue
		}

		// Protect the first codon before anything below can strip a gap out
		// of it and silently shift the reading frame of the rest of the gene.
		gene.ProtectFirstCodon(refWindow)
		gene.ProtectFirstCodon(queryWindow)

		nucFrameShifts := frameshift.Detect(refWindow, queryWindow)
		frameshift.MaskNucInPlace(queryWindow, nucFrameShifts)

		codonRanges := make([]frameshift.CodonRange, len(nucFrameShifts))
		for i, r := range nucFrameShifts {
			cr := frameshift.ToCodonRange(r, g)
			codonRanges[i] = cr
			result.FrameShifts = append(result.FrameShifts, GeneFrameShift{GeneName: name, NucRange: r, CodonRange: cr})
		}
		// Widening each frame shift out to whole codons (frameshift.ToCodonRange)
		// can make neighboring ranges overlap; collapse them before masking so
		// the peptide is masked with one disjoint set of codon ranges instead
		// of redundant overlapping ones. The amino-acid change filter further
		// down is given the unmerged per-event ranges in result.FrameShifts,
		// which cover the same codons.
		codonRanges = mergeCodonRanges(codonRanges)

		strippedQuery := gene.RemoveGaps(queryWindow)
		if len(strippedQuery)%3 != 0 {
			result.Warnings = append(result.Warnings, GeneWarning{
				GeneName: name,
				Message:  fmt.Sprintf("gene %q: extracted length is not a multiple of 3 after masking, gene skipped", name),
			})
			continue
		}

		queryPeptide := gene.Translate(strippedQuery, ctx.TranslatePastStop)

		refPeptide, err := lookupPeptide(ctx.RefPeptides, name)
		if err != nil {
			return Result{}, fmt.Errorf("analyze %q: %w", rec.Name, err)
		}

		flatGapOpenCloseAA := gapvector.Flat(len(refPeptide), ctx.AaAlignParams.PenaltyGapOpen)
		aaResult, err := pepalign.Align(queryPeptide, refPeptide, ctx.AaAlignParams, ctx.AaSeedParams, flatGapOpenCloseAA)
		if err != nil {
			result.Warnings = append(result.Warnings, GeneWarning{
				GeneName: name,
				Message:  fmt.Sprintf("gene %q: peptide alignment failed: %v", name, err),
			})
			continue
		}

		stripped := insertion.StripGeneric(aaResult.Ref, aaResult.Qry, alphabet.AaGap)
		maskPeptideCodonRanges(stripped.Stripped, codonRanges)

		refPeptides = append(refPeptides, mutation.Peptide{GeneName: name, Seq: refPeptide})
		queryPeptides = append(queryPeptides, mutation.Peptide{GeneName: name, Seq: stripped.Stripped})
		qcPeptides = append(qcPeptides, qc.QueryPeptide{GeneName: name, Seq: stripped.Stripped})
	}

	strippedNuc := insertion.Strip(alignedRef, alignedQuery)
	result.Insertions = strippedNuc.Insertions
	result.AlignedQuery = strippedNuc.Stripped
	result.QueryPeptides = queryPeptides
	result.NucChanges = mutation.FindNucChanges(ctx.RefSeq, strippedNuc.Stripped)
	result.Missing = mutation.FindMissing(strippedNuc.Stripped)
	result.NonACGTN = mutation.FindNonACGTN(strippedNuc.Stripped)
	result.NucleotideComposition = mutation.NucleotideComposition(strippedNuc.Stripped)

	alignmentRange := gene.Range{Begin: result.NucChanges.AlignmentStart, End: result.NucChanges.AlignmentEnd}
	if alignmentRange.Begin < 0 {
		alignmentRange = gene.Range{}
	}

	aaChanges, err := mutation.GetAminoacidChanges(ctx.RefSeq, strippedNuc.Stripped, refPeptides, queryPeptides, alignmentRange, ctx.GeneMap)
	if err != nil {
		return Result{}, fmt.Errorf("analyze %q: %w", rec.Name, err)
	}
	filterAminoacidChangesByGene(&aaChanges, result.FrameShifts)
	result.AminoacidChanges = aaChanges

	mutation.LinkNucAndAaChangesInPlace(&result.NucChanges, &result.AminoacidChanges)

	mutation.AddPrimerChangesInPlace(result.NucChanges.Substitutions, ctx.Primers)
	result.PcrPrimerChanges = mutation.GetPcrPrimerChanges(result.NucChanges.Substitutions, ctx.Primers)

	nearestNode, distance := tree.FindNearestNode(ctx.Tree.Root, &result.NucChanges, result.Missing)
	result.NearestNodeID = nearestNode.ID
	result.NearestNodeDistance = distance
	result.Clade = nearestNode.Clade

	result.PrivateMutations = tree.FindPrivateMutations(nearestNode, &result.NucChanges, result.Missing, ctx.RefSeq)

	result.Qc = qc.Run(ctx.QcConfig, qc.Inputs{
		NucleotideComposition:    result.NucleotideComposition,
		PrivateSubstitutions:     len(result.PrivateMutations.Substitutions),
		PrivateDeletions:         len(result.PrivateMutations.Deletions),
		PrivateMutationPositions: privateMutationPositions(result.PrivateMutations),
		TotalFrameShifts:         len(result.FrameShifts),
		Peptides:                 qcPeptides,
	})

	return result, nil
}

func lookupPeptide(peptides []mutation.Peptide, name string) ([]alphabet.Aminoacid, error) {
	for _, p := range peptides {
		if p.GeneName == name {
			return p.Seq, nil
		}
	}
	return nil, fmt.Errorf("no reference peptide for gene %q", name)
}

// mergeCodonRanges collapses a gene's frame-shift codon ranges into their
// disjoint union via mask.Merge.
func mergeCodonRanges(ranges []frameshift.CodonRange) []frameshift.CodonRange {
	if len(ranges) == 0 {
		return ranges
	}
	generic := make([]mask.Range, len(ranges))
	for i, r := range ranges {
		generic[i] = mask.Range{Begin: r.Begin, End: r.End}
	}
	merged := mask.Merge(generic)
	out := make([]frameshift.CodonRange, len(merged))
	for i, r := range merged {
		out[i] = frameshift.CodonRange{Begin: r.Begin, End: r.End}
	}
	return out
}

// maskPeptideCodonRanges overwrites every codon position of seq that falls
// within one of ranges with X, mirroring the nucleotide masking step: the
// peptide there was translated from a frame-shifted stretch and cannot be
// trusted.
func maskPeptideCodonRanges(seq []alphabet.Aminoacid, ranges []frameshift.CodonRange) {
	for _, r := range ranges {
		for i := r.Begin; i < r.End && i < len(seq); i++ {
			if i >= 0 {
				seq[i] = alphabet.AaX
			}
		}
	}
}

// filterAminoacidChangesByGene applies mutation.FilterAminoacidChangesInPlace
// once per gene, so a frame shift's codon range in one gene never masks a
// substitution at the same codon index in a different gene.
func filterAminoacidChangesByGene(aa *mutation.AaChangesReport, allFrameShifts []GeneFrameShift) {
	byGene := make(map[string][]frameshift.CodonRange)
	for _, fs := range allFrameShifts {
		byGene[fs.GeneName] = append(byGene[fs.GeneName], fs.CodonRange)
	}
	if len(byGene) == 0 {
		return
	}

	subsByGene := make(map[string][]*mutation.AminoacidSubstitution)
	for _, s := range aa.Substitutions {
		subsByGene[s.Gene] = append(subsByGene[s.Gene], s)
	}
	delsByGene := make(map[string][]*mutation.AminoacidDeletion)
	for _, d := range aa.Deletions {
		delsByGene[d.Gene] = append(delsByGene[d.Gene], d)
	}

	genes := make(map[string]bool, len(subsByGene)+len(delsByGene))
	for name := range subsByGene {
		genes[name] = true
	}
	for name := range delsByGene {
		genes[name] = true
	}

	var keptSubs []*mutation.AminoacidSubstitution
	var keptDels []*mutation.AminoacidDeletion
	for geneName := range genes {
		scoped := mutation.AaChangesReport{Substitutions: subsByGene[geneName], Deletions: delsByGene[geneName]}
		mutation.FilterAminoacidChangesInPlace(&scoped, byGene[geneName])
		keptSubs = append(keptSubs, scoped.Substitutions...)
		keptDels = append(keptDels, scoped.Deletions...)
	}

	sort.Slice(keptSubs, func(i, j int) bool {
		if keptSubs[i].Gene != keptSubs[j].Gene {
			return keptSubs[i].Gene < keptSubs[j].Gene
		}
		return keptSubs[i].Codon < keptSubs[j].Codon
	})
	sort.Slice(keptDels, func(i, j int) bool {
		if keptDels[i].Gene != keptDels[j].Gene {
			return keptDels[i].Gene < keptDels[j].Gene
		}
		return keptDels[i].Codon < keptDels[j].Codon
	})
	aa.Substitutions = keptSubs
	aa.Deletions = keptDels
}

func privateMutationPositions(pm tree.PrivateMutations) []int {
	positions := make([]int, 0, len(pm.Substitutions)+len(pm.Deletions))
	for _, s := range pm.Substitutions {
		positions = append(positions, s.Pos)
	}
	for _, d := range pm.Deletions {
		positions = append(positions, d.Pos)
	}
	sort.Ints(positions)
	return positions
}
