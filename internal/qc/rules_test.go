package qc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextstrain/nextclade-sub000/internal/alphabet"
)

func TestRuleMissingDataDisabledReturnsNil(t *testing.T) {
	assert.Nil(t, RuleMissingData(nil, nil))
	assert.Nil(t, RuleMissingData(nil, &MissingDataConfig{Enabled: false}))
}

func TestRuleMissingDataScoresAboveThreshold(t *testing.T) {
	composition := map[alphabet.Nucleotide]int{alphabet.NucN: 100}
	cfg := &MissingDataConfig{Enabled: true, ScoreBias: 10, MissingDataThreshold: 30}

	got := RuleMissingData(composition, cfg)

	require.NotNil(t, got)
	assert.InDelta(t, (100.0-10.0)*100/30.0, got.Score, 1e-9)
	assert.Equal(t, "bad", got.Status)
	assert.Equal(t, 100, got.TotalMissing)
}

func TestRuleMixedSitesCountsOnlyAmbiguous(t *testing.T) {
	composition := map[alphabet.Nucleotide]int{
		alphabet.NucA: 1000,
		alphabet.NucR: 5,
		alphabet.NucY: 3,
	}
	cfg := &MixedSitesConfig{Enabled: true, MixedSitesThreshold: 8}

	got := RuleMixedSites(composition, cfg)

	require.NotNil(t, got)
	assert.Equal(t, 8, got.TotalMixedSites)
	assert.InDelta(t, 100.0, got.Score, 1e-9)
}

func TestRulePrivateMutationsBelowTypicalScoresZero(t *testing.T) {
	cfg := &PrivateMutationsConfig{Enabled: true, Typical: 5, Cutoff: 10}

	got := RulePrivateMutations(2, 0, 1, cfg)

	require.NotNil(t, got)
	assert.Equal(t, 0.0, got.Score)
	assert.Equal(t, "good", got.Status)
}

func TestRulePrivateMutationsExcessScoresProportionally(t *testing.T) {
	cfg := &PrivateMutationsConfig{Enabled: true, Typical: 5, Cutoff: 10}

	got := RulePrivateMutations(10, 0, 5, cfg) // total 15, excess 10, cutoff 10 -> score 100

	require.NotNil(t, got)
	assert.InDelta(t, 100.0, got.Score, 1e-9)
}

func TestRuleFrameShiftsBinary(t *testing.T) {
	cfg := &FrameShiftsConfig{Enabled: true}
	assert.Equal(t, 0.0, RuleFrameShifts(0, cfg).Score)
	assert.Equal(t, 100.0, RuleFrameShifts(1, cfg).Score)
}

func TestRuleStopCodonsIgnoresFinalCodon(t *testing.T) {
	cfg := &StopCodonsConfig{Enabled: true}
	peptide := QueryPeptide{GeneName: "S", Seq: []alphabet.Aminoacid{alphabet.AaM, alphabet.AaStop}}

	got := RuleStopCodons([]QueryPeptide{peptide}, cfg)

	require.NotNil(t, got)
	assert.Equal(t, 0, got.TotalStopCodons)
	assert.Equal(t, 0.0, got.Score)
}

func TestRuleStopCodonsDetectsPrematureStop(t *testing.T) {
	cfg := &StopCodonsConfig{Enabled: true}
	peptide := QueryPeptide{GeneName: "S", Seq: []alphabet.Aminoacid{alphabet.AaM, alphabet.AaStop, alphabet.AaK}}

	got := RuleStopCodons([]QueryPeptide{peptide}, cfg)

	require.NotNil(t, got)
	require.Len(t, got.StopCodons, 1)
	assert.Equal(t, StopCodonLocation{GeneName: "S", Codon: 1}, got.StopCodons[0])
	assert.Equal(t, 100.0, got.Score)
}
