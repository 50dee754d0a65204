// Package qc scores a completed analysis against a fixed set of quality-
// control rules: missing data, mixed (ambiguous) sites, an excess of
// private mutations, clusters of private SNPs, frame shifts and premature
// stop codons. Each rule is independently enabled/disabled and contributes
// its score to an overall status.
package qc

// MissingDataConfig thresholds the count of N bases in the query.
type MissingDataConfig struct {
	Enabled              bool
	ScoreBias            float64
	MissingDataThreshold float64
}

// MixedSitesConfig thresholds the count of ambiguous (non-ACGTN, non-gap)
// bases in the query.
type MixedSitesConfig struct {
	Enabled             bool
	MixedSitesThreshold float64
}

// PrivateMutationsConfig thresholds the number of mutations private to the
// query beyond what is "typical" for an attachment.
type PrivateMutationsConfig struct {
	Enabled bool
	Typical float64
	Cutoff  float64
}

// SnpClustersConfig thresholds dense local clusters of private mutations.
type SnpClustersConfig struct {
	Enabled       bool
	WindowSize    int
	ClusterCutOff int
	ScoreWeight   float64
}

// FrameShiftsConfig and StopCodonsConfig are binary rules: any occurrence
// scores 100.
type FrameShiftsConfig struct{ Enabled bool }
type StopCodonsConfig struct{ Enabled bool }

// Config bundles every rule's configuration. A nil sub-config (or one with
// Enabled == false) skips that rule entirely.
type Config struct {
	MissingData      *MissingDataConfig
	MixedSites       *MixedSitesConfig
	PrivateMutations *PrivateMutationsConfig
	SnpClusters      *SnpClustersConfig
	FrameShifts      *FrameShiftsConfig
	StopCodons       *StopCodonsConfig
}
