package qc

import "github.com/nextstrain/nextclade-sub000/internal/alphabet"

// RuleResult is the score/status pair every rule reports, embedded in each
// rule's richer result.
type RuleResult struct {
	Score  float64
	Status string
}

// MissingDataResult is the outcome of RuleMissingData.
type MissingDataResult struct {
	RuleResult
	TotalMissing         int
	MissingDataThreshold float64
}

// RuleMissingData scores the count of fully-ambiguous N bases against
// config.MissingDataThreshold, after subtracting config.ScoreBias.
func RuleMissingData(composition map[alphabet.Nucleotide]int, cfg *MissingDataConfig) *MissingDataResult {
	if cfg == nil || !cfg.Enabled {
		return nil
	}
	totalMissing := composition[alphabet.NucN]
	score := maxZero((float64(totalMissing)-cfg.ScoreBias) * 100 / cfg.MissingDataThreshold)
	return &MissingDataResult{
		RuleResult:           RuleResult{Score: score, Status: Status(score)},
		TotalMissing:         totalMissing,
		MissingDataThreshold: cfg.MissingDataThreshold + cfg.ScoreBias,
	}
}

// MixedSitesResult is the outcome of RuleMixedSites.
type MixedSitesResult struct {
	RuleResult
	TotalMixedSites     int
	MixedSitesThreshold float64
}

func isGoodNucleotide(n alphabet.Nucleotide) bool {
	switch n {
	case alphabet.NucA, alphabet.NucC, alphabet.NucG, alphabet.NucT, alphabet.NucN, alphabet.NucGap:
		return true
	default:
		return false
	}
}

// RuleMixedSites scores the count of ambiguity codes outside {A,C,G,T,N,gap}
// against config.MixedSitesThreshold.
func RuleMixedSites(composition map[alphabet.Nucleotide]int, cfg *MixedSitesConfig) *MixedSitesResult {
	if cfg == nil || !cfg.Enabled {
		return nil
	}
	total := 0
	for nuc, count := range composition {
		if !isGoodNucleotide(nuc) {
			total += count
		}
	}
	score := maxZero(100 * float64(total) / cfg.MixedSitesThreshold)
	return &MixedSitesResult{
		RuleResult:          RuleResult{Score: score, Status: Status(score)},
		TotalMixedSites:     total,
		MixedSitesThreshold: cfg.MixedSitesThreshold,
	}
}

// PrivateMutationsResult is the outcome of RulePrivateMutations.
type PrivateMutationsResult struct {
	RuleResult
	Total  float64
	Excess float64
	Cutoff float64
}

// RulePrivateMutations scores an excess, beyond config.Typical, of private
// substitutions/insertions/deletions against config.Cutoff.
func RulePrivateMutations(substitutions, insertions, deletions int, cfg *PrivateMutationsConfig) *PrivateMutationsResult {
	if cfg == nil || !cfg.Enabled {
		return nil
	}
	total := float64(substitutions + insertions + deletions)
	excess := total - cfg.Typical
	score := maxZero(excess) * 100 / cfg.Cutoff
	return &PrivateMutationsResult{
		RuleResult: RuleResult{Score: score, Status: Status(score)},
		Total:      total,
		Excess:     excess,
		Cutoff:     cfg.Cutoff,
	}
}

// FrameShiftsResult is the outcome of RuleFrameShifts.
type FrameShiftsResult struct {
	RuleResult
	TotalFrameShifts int
}

// RuleFrameShifts scores 100 if any frame shift was detected, else 0.
func RuleFrameShifts(totalFrameShifts int, cfg *FrameShiftsConfig) *FrameShiftsResult {
	if cfg == nil || !cfg.Enabled {
		return nil
	}
	score := 0.0
	if totalFrameShifts > 0 {
		score = 100.0
	}
	return &FrameShiftsResult{
		RuleResult:       RuleResult{Score: score, Status: Status(score)},
		TotalFrameShifts: totalFrameShifts,
	}
}

// StopCodonLocation names a premature stop codon found mid-peptide.
type StopCodonLocation struct {
	GeneName string
	Codon    int
}

// StopCodonsResult is the outcome of RuleStopCodons.
type StopCodonsResult struct {
	RuleResult
	StopCodons      []StopCodonLocation
	TotalStopCodons int
}

// QueryPeptide is the minimal shape RuleStopCodons needs from a translated
// gene: its name and amino-acid sequence.
type QueryPeptide struct {
	GeneName string
	Seq      []alphabet.Aminoacid
}

// RuleStopCodons scans every peptide for an internal stop codon (the final
// codon is expected to be a stop and is not counted), scoring 100 if any
// were found.
func RuleStopCodons(peptides []QueryPeptide, cfg *StopCodonsConfig) *StopCodonsResult {
	if cfg == nil || !cfg.Enabled {
		return nil
	}
	var stopCodons []StopCodonLocation
	for _, peptide := range peptides {
		lengthMinusOne := len(peptide.Seq) - 1
		for codon := 0; codon < lengthMinusOne; codon++ {
			if peptide.Seq[codon].IsStop() {
				stopCodons = append(stopCodons, StopCodonLocation{GeneName: peptide.GeneName, Codon: codon})
			}
		}
	}
	score := 0.0
	if len(stopCodons) > 0 {
		score = 100.0
	}
	return &StopCodonsResult{
		RuleResult:      RuleResult{Score: score, Status: Status(score)},
		StopCodons:      stopCodons,
		TotalStopCodons: len(stopCodons),
	}
}
