package tree

import (
	"fmt"

	"github.com/nextstrain/nextclade-sub000/internal/alphabet"
)

func copyMutationMap(m map[int]alphabet.Nucleotide) map[int]alphabet.Nucleotide {
	if m == nil {
		return nil
	}
	out := make(map[int]alphabet.Nucleotide, len(m))
	for pos, nuc := range m {
		out[pos] = nuc
	}
	return out
}

// NodeNotFoundError reports an attachment request naming a node ID absent
// from the tree.
type NodeNotFoundError struct {
	ID int
}

func (e *NodeNotFoundError) Error() string {
	return fmt.Sprintf("tree: no node with id %d", e.ID)
}

// AttachNode attaches a new leaf for seqName under the reference node
// identified by nearestNodeID. If that node is currently a leaf, it is first
// split: a copy of it, with no further branch mutations of its own, becomes
// its only child, preserving the original taxon as a terminal node, while
// the node itself keeps its original branch mutations unchanged and becomes
// a purely internal point the new leaf can attach beside as a sibling.
// divergence is the nearest node's own divergence plus privateMutationCount,
// normalized by t.RefLength when the tree records per-site divergence.
func AttachNode(t *Tree, nearestNodeID int, seqName, clade string, privateMutationCount int) (*Node, error) {
	target := findByID(t.Root, nearestNodeID)
	if target == nil {
		return nil, &NodeNotFoundError{ID: nearestNodeID}
	}

	if target.IsLeaf() {
		aux := &Node{
			Name:            target.Name,
			Clade:           target.Clade,
			Divergence:      target.Divergence,
			NodeType:        target.NodeType,
			BranchMutations: map[int]alphabet.Nucleotide{},
			Mutations:       copyMutationMap(target.Mutations),
			Substitutions:   copyMutationMap(target.Substitutions),
			IsReference:     target.IsReference,
			ID:              target.ID,
		}
		target.Name = target.Name + "_parent"
		target.Children = append(target.Children, aux)
	}

	divergence := target.Divergence + float64(privateMutationCount)
	if t.PerSiteDivergence && t.RefLength > 0 {
		divergence = target.Divergence + float64(privateMutationCount)/float64(t.RefLength)
	}

	newLeaf := &Node{
		Name:        seqName + "_new",
		Clade:       clade,
		Divergence:  divergence,
		NodeType:    "New",
		IsReference: false,
		ID:          -1,
	}
	target.Children = append(target.Children, newLeaf)

	return newLeaf, nil
}

// AttachResult is the subset of a completed analysis AttachAll needs to
// graft a new leaf onto the tree.
type AttachResult struct {
	SeqName              string
	Clade                string
	NearestNodeID        int
	PrivateMutationCount int
}

// AttachAll attaches every result's new leaf. It runs once, after every
// worker has finished searching the read-only tree, since splitting a leaf
// to insert an auxiliary node changes node identities that a concurrent
// search could otherwise observe mid-mutation.
func AttachAll(t *Tree, results []AttachResult) error {
	for _, r := range results {
		if _, err := AttachNode(t, r.NearestNodeID, r.SeqName, r.Clade, r.PrivateMutationCount); err != nil {
			return err
		}
	}
	return nil
}
