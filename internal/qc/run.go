package qc

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/nextstrain/nextclade-sub000/internal/alphabet"
)

// Result bundles every enabled rule's outcome plus the overall score/status
// derived from them. A nil field means that rule was disabled.
type Result struct {
	MissingData      *MissingDataResult
	MixedSites       *MixedSitesResult
	PrivateMutations *PrivateMutationsResult
	SnpClusters      *SnpClustersResult
	FrameShifts      *FrameShiftsResult
	StopCodons       *StopCodonsResult
	OverallScore     float64
	OverallStatus    string
}

// Inputs is everything Run needs from a completed analysis to evaluate
// every rule.
type Inputs struct {
	NucleotideComposition    map[alphabet.Nucleotide]int
	PrivateSubstitutions     int
	PrivateInsertions        int
	PrivateDeletions         int
	PrivateMutationPositions []int // sorted ascending
	TotalFrameShifts         int
	Peptides                 []QueryPeptide
}

// Run evaluates every rule cfg enables and combines their scores into an
// overall score (the Euclidean norm of the individual rule scores) and
// status.
func Run(cfg Config, in Inputs) Result {
	result := Result{
		MissingData:      RuleMissingData(in.NucleotideComposition, cfg.MissingData),
		MixedSites:       RuleMixedSites(in.NucleotideComposition, cfg.MixedSites),
		PrivateMutations: RulePrivateMutations(in.PrivateSubstitutions, in.PrivateInsertions, in.PrivateDeletions, cfg.PrivateMutations),
		SnpClusters:      RuleSnpClusters(in.PrivateMutationPositions, cfg.SnpClusters),
		FrameShifts:      RuleFrameShifts(in.TotalFrameShifts, cfg.FrameShifts),
		StopCodons:       RuleStopCodons(in.Peptides, cfg.StopCodons),
	}

	scores := make([]float64, 0, 6)
	if result.MissingData != nil {
		scores = append(scores, result.MissingData.Score)
	}
	if result.MixedSites != nil {
		scores = append(scores, result.MixedSites.Score)
	}
	if result.PrivateMutations != nil {
		scores = append(scores, result.PrivateMutations.Score)
	}
	if result.SnpClusters != nil {
		scores = append(scores, result.SnpClusters.Score)
	}
	if result.FrameShifts != nil {
		scores = append(scores, result.FrameShifts.Score)
	}
	if result.StopCodons != nil {
		scores = append(scores, result.StopCodons.Score)
	}

	overall := math.Sqrt(floats.Dot(scores, scores))
	result.OverallScore = overall
	result.OverallStatus = Status(overall)
	return result
}
