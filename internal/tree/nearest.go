package tree

import (
	"github.com/nextstrain/nextclade-sub000/internal/alphabet"
	"github.com/nextstrain/nextclade-sub000/internal/mutation"
)

// isSequenced reports whether pos falls inside the query's alignment range
// and outside every missing (N) range, i.e. whether the query's state at pos
// is actually known.
func isSequenced(pos, alignmentStart, alignmentEnd int, missing []mutation.NucleotideRange) bool {
	for _, m := range missing {
		if pos >= m.Begin && pos < m.End {
			return false
		}
	}
	return pos >= alignmentStart && pos < alignmentEnd
}

// distance implements the overlap formula: shared identical substitutions
// count twice against the total (once for each side's tally), shared
// positions with differing letters count once, and node substitutions at
// positions the query never sequenced are excluded from either side's favor.
func distance(node *Node, querySubs map[int]alphabet.Nucleotide, alignmentStart, alignmentEnd int, missing []mutation.NucleotideRange) int {
	sharedDifferences := 0
	sharedSites := 0
	for pos, queryNuc := range querySubs {
		if nodeNuc, ok := node.Substitutions[pos]; ok {
			if nodeNuc == queryNuc {
				sharedDifferences++
			} else {
				sharedSites++
			}
		}
	}

	undetermined := 0
	for pos := range node.Substitutions {
		if !isSequenced(pos, alignmentStart, alignmentEnd, missing) {
			undetermined++
		}
	}

	return len(node.Substitutions) + len(querySubs) - 2*sharedDifferences - sharedSites - undetermined
}

// FindNearestNode returns the reference-tree node minimizing distance to the
// query's nucleotide changes, along with that distance. Ties are broken in
// favor of the first node visited in pre-order, i.e. the smallest ID, since
// a later candidate only replaces the current best on a strictly smaller
// distance.
func FindNearestNode(root *Node, nuc *mutation.NucChangesReport, missing []mutation.NucleotideRange) (*Node, int) {
	querySubs := make(map[int]alphabet.Nucleotide, len(nuc.Substitutions))
	for _, s := range nuc.Substitutions {
		querySubs[s.Pos] = s.QueryNuc
	}

	var best *Node
	bestDistance := 0
	Walk(root, func(node *Node) {
		d := distance(node, querySubs, nuc.AlignmentStart, nuc.AlignmentEnd, missing)
		if best == nil || d < bestDistance {
			best = node
			bestDistance = d
		}
	})

	return best, bestDistance
}
