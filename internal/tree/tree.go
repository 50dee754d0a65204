// Package tree implements the reference-tree side of the pipeline: loading an
// Auspice v2 tree into a pre-order-numbered, mutation-annotated form, finding
// the nearest reference node for a query, extracting the mutations private to
// the query relative to that node, and attaching the query as a new leaf once
// all per-sequence analysis has finished.
package tree

import "github.com/nextstrain/nextclade-sub000/internal/alphabet"

// Node is one node of the reference tree, in memory. BranchMutations holds
// the mutations recorded on the branch leading to this node (parsed from the
// input tree's branch_attrs.mutations.nuc before Preprocess runs). Mutations
// and Substitutions are temporary fields computed by Preprocess: the former
// is the full root-to-node accumulated map, the latter the same with gap
// entries removed. ID is likewise a temporary pre-order index assigned by
// Preprocess. All three are cleared by Postprocess.
type Node struct {
	Name            string
	Clade           string
	Divergence      float64
	NodeType        string
	BranchMutations map[int]alphabet.Nucleotide
	Mutations       map[int]alphabet.Nucleotide
	Substitutions   map[int]alphabet.Nucleotide
	Children        []*Node
	IsReference     bool
	ID              int
}

// IsLeaf reports whether node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Tree wraps the root node plus the divergence convention used by the input
// Auspice tree, needed to compute a new leaf's divergence in Component N.
type Tree struct {
	Root              *Node
	PerSiteDivergence bool
	RefLength         int
}

// findByID searches the subtree rooted at node for the node carrying id.
func findByID(node *Node, id int) *Node {
	if node.ID == id {
		return node
	}
	for _, child := range node.Children {
		if found := findByID(child, id); found != nil {
			return found
		}
	}
	return nil
}

// Walk visits node and every descendant in pre-order.
func Walk(node *Node, visit func(*Node)) {
	visit(node)
	for _, child := range node.Children {
		Walk(child, visit)
	}
}
