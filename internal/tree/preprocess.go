package tree

import "github.com/nextstrain/nextclade-sub000/internal/alphabet"

// Preprocess walks root in pre-order, assigning each node a unique ID and the
// mutation map accumulated from the root: a branch mutation that reverts a
// position back to rootSeq's letter is removed from the carried map rather
// than recorded, so Mutations always reflects the node's true state relative
// to the root. Substitutions is Mutations with gap entries filtered out,
// since a recorded deletion is not a "substitution" for nearest-node
// distance purposes. Every visited node is marked as belonging to the
// reference tree.
func Preprocess(root *Node, rootSeq []alphabet.Nucleotide) {
	id := 0
	var walk func(node *Node, inherited map[int]alphabet.Nucleotide)
	walk = func(node *Node, inherited map[int]alphabet.Nucleotide) {
		node.ID = id
		node.NodeType = "Reference"
		node.IsReference = true

		carried := make(map[int]alphabet.Nucleotide, len(inherited))
		for pos, nuc := range inherited {
			carried[pos] = nuc
		}
		for pos, nuc := range node.BranchMutations {
			if pos < len(rootSeq) && rootSeq[pos] == nuc {
				delete(carried, pos)
			} else {
				carried[pos] = nuc
			}
		}

		node.Mutations = carried
		node.Substitutions = make(map[int]alphabet.Nucleotide, len(carried))
		for pos, nuc := range carried {
			if !nuc.IsGap() {
				node.Substitutions[pos] = nuc
			}
		}

		for _, child := range node.Children {
			id++
			walk(child, carried)
		}
	}
	walk(root, map[int]alphabet.Nucleotide{})
}

// Postprocess strips the temporary annotations Preprocess introduced
// (Mutations, Substitutions, ID) from every node, once nearest-node search,
// private-mutation extraction and tree attachment have all completed.
func Postprocess(t *Tree) {
	Walk(t.Root, func(n *Node) {
		n.Mutations = nil
		n.Substitutions = nil
		n.ID = 0
	})
}
