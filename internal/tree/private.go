package tree

import (
	"sort"

	"github.com/nextstrain/nextclade-sub000/internal/alphabet"
	"github.com/nextstrain/nextclade-sub000/internal/mutation"
)

// PrivateSubstitution is a single-position difference between the query and
// its nearest reference node.
type PrivateSubstitution struct {
	RefNuc   alphabet.Nucleotide
	Pos      int
	QueryNuc alphabet.Nucleotide
}

// PrivateDeletion is a single deleted position, relative to the nearest
// reference node, that the node itself did not already have deleted.
type PrivateDeletion struct {
	RefNuc alphabet.Nucleotide
	Pos    int
}

// PrivateMutations is the set of changes the query carries beyond what its
// nearest reference node already accounts for.
type PrivateMutations struct {
	Substitutions []PrivateSubstitution
	Deletions     []PrivateDeletion
}

// FindPrivateMutations compares the query's nucleotide changes against node's
// accumulated mutation map (which, unlike node.Substitutions, still carries
// gap entries, needed to recognize a shared deletion). Every query
// substitution or deletion position is marked covered so the final pass over
// node's own mutations only reports true reversions: a position the node
// mutated but the query did not, which is itself only reportable when the
// query actually sequenced that position.
func FindPrivateMutations(node *Node, nuc *mutation.NucChangesReport, missing []mutation.NucleotideRange, refSeq []alphabet.Nucleotide) PrivateMutations {
	covered := make(map[int]bool)
	var subs []PrivateSubstitution
	var dels []PrivateDeletion

	for _, s := range nuc.Substitutions {
		covered[s.Pos] = true
		if nodeNuc, ok := node.Mutations[s.Pos]; ok {
			if s.QueryNuc != nodeNuc {
				subs = append(subs, PrivateSubstitution{RefNuc: nodeNuc, Pos: s.Pos, QueryNuc: s.QueryNuc})
			}
		} else {
			subs = append(subs, PrivateSubstitution{RefNuc: refSeq[s.Pos], Pos: s.Pos, QueryNuc: s.QueryNuc})
		}
	}

	for _, d := range nuc.Deletions {
		for pos := d.Start; pos < d.End(); pos++ {
			covered[pos] = true
			if nodeNuc, ok := node.Mutations[pos]; ok {
				if !nodeNuc.IsGap() {
					dels = append(dels, PrivateDeletion{RefNuc: nodeNuc, Pos: pos})
				}
			} else {
				dels = append(dels, PrivateDeletion{RefNuc: refSeq[pos], Pos: pos})
			}
		}
	}

	for pos, nodeNuc := range node.Mutations {
		if covered[pos] || nodeNuc.IsGap() {
			continue
		}
		if !isSequenced(pos, nuc.AlignmentStart, nuc.AlignmentEnd, missing) {
			continue
		}
		subs = append(subs, PrivateSubstitution{RefNuc: nodeNuc, Pos: pos, QueryNuc: refSeq[pos]})
	}

	sort.Slice(subs, func(i, j int) bool { return subs[i].Pos < subs[j].Pos })
	sort.Slice(dels, func(i, j int) bool { return dels[i].Pos < dels[j].Pos })

	return PrivateMutations{Substitutions: subs, Deletions: dels}
}
