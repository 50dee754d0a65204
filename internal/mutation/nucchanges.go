// Package mutation calls nucleotide and amino-acid changes between a
// reference and an aligned, insertion-stripped query: substitutions,
// deletion runs, missing/non-ACGTN ranges, nucleotide composition,
// amino-acid substitutions/deletions linked back to their driving
// nucleotide changes, and PCR primer mismatches.
package mutation

import (
	"github.com/nextstrain/nextclade-sub000/internal/alphabet"
	"github.com/nextstrain/nextclade-sub000/internal/primers"
)

// Substitution is a single-position nucleotide change: query differs from
// reference and the query letter is unambiguous ACGT.
type Substitution struct {
	RefNuc            alphabet.Nucleotide
	Pos               int
	QueryNuc          alphabet.Nucleotide
	PcrPrimersChanged []primers.PcrPrimer
	AaSubstitutions   []*AminoacidSubstitution
}

// Deletion is a contiguous run of query gap positions.
type Deletion struct {
	Start           int
	Length          int
	AaSubstitutions []*AminoacidSubstitution
	AaDeletions     []*AminoacidDeletion
}

// End returns the position one past the deletion run, i.e. [Start, End).
func (d Deletion) End() int { return d.Start + d.Length }

// NucChangesReport is the result of FindNucChanges.
type NucChangesReport struct {
	Substitutions  []*Substitution
	Deletions      []*Deletion
	AlignmentStart int
	AlignmentEnd   int
}

// FindNucChanges walks the insertion-stripped reference and query in
// lockstep and reports substitutions, deletion runs, and the half-open
// [AlignmentStart, AlignmentEnd) span of the query that actually aligned
// (i.e. excluding leading/trailing gap padding).
//
// alignmentStart/End bracket the first and one-past-last non-gap query
// position; a deletion run only opens once alignment has started, since
// leading query gaps are alignment padding, not deletions.
func FindNucChanges(refStripped, queryStripped []alphabet.Nucleotide) NucChangesReport {
	var report NucChangesReport
	report.AlignmentStart = -1
	report.AlignmentEnd = -1

	nDel := 0
	delPos := -1
	beforeAlignment := true

	for i, q := range queryStripped {
		if !q.IsGap() {
			if beforeAlignment {
				report.AlignmentStart = i
				beforeAlignment = false
			} else if nDel > 0 {
				report.Deletions = append(report.Deletions, &Deletion{Start: delPos, Length: nDel})
				nDel = 0
			}
			report.AlignmentEnd = i + 1
		}

		refNuc := refStripped[i]
		switch {
		case !q.IsGap() && q != refNuc && q.IsACGT():
			report.Substitutions = append(report.Substitutions, &Substitution{
				RefNuc:   refNuc,
				Pos:      i,
				QueryNuc: q,
			})
		case q.IsGap() && !beforeAlignment:
			if nDel == 0 {
				delPos = i
			}
			nDel++
		}
	}

	return report
}
