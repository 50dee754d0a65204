// Package treeio de/serializes the Auspice v2 tree JSON format: the
// `{"meta": ..., "tree": ...}` document a reference tree is shipped as, and
// the same schema (plus two node_attrs extensions) the analyzer re-emits
// after attaching query sequences as new leaves.
package treeio

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/nextstrain/nextclade-sub000/internal/alphabet"
	"github.com/nextstrain/nextclade-sub000/internal/tree"
)

// AttrValue is the `{"value": ...}` shape every node_attrs / branch_attrs
// label entry uses in the Auspice schema.
type AttrValue struct {
	Value json.RawMessage `json:"value"`
}

func stringAttr(s string) AttrValue {
	encoded, _ := json.Marshal(s)
	return AttrValue{Value: encoded}
}

func (a AttrValue) asString() (string, bool) {
	var s string
	if err := json.Unmarshal(a.Value, &s); err != nil {
		return "", false
	}
	return s, true
}

func (a AttrValue) asFloat() (float64, bool) {
	var f float64
	if err := json.Unmarshal(a.Value, &f); err != nil {
		return 0, false
	}
	return f, true
}

// Mutations is branch_attrs.mutations: only the nucleotide list is kept;
// other keys (such as per-gene amino-acid lists) are dropped when a
// document is read and are not written back.
type Mutations struct {
	Nuc []string `json:"nuc,omitempty"`
}

// BranchAttrs is the per-branch metadata attached to a tree node.
type BranchAttrs struct {
	Labels    map[string]string `json:"labels,omitempty"`
	Mutations *Mutations        `json:"mutations,omitempty"`
}

// Node is one entry of the Auspice `tree` object. node_attrs is kept as a
// raw map of AttrValue so domain-specific extensions (clade_membership,
// "Node type", and anything a dataset author added) survive a read-modify-
// write cycle without this package needing to know about every one of them.
// FromTree, which builds the output document from the in-memory tree, emits
// only clade_membership, "Node type" and div.
type Node struct {
	Name        string               `json:"name"`
	BranchAttrs *BranchAttrs         `json:"branch_attrs,omitempty"`
	NodeAttrs   map[string]AttrValue `json:"node_attrs,omitempty"`
	Children    []*Node              `json:"children,omitempty"`
}

// Document is the full Auspice v2 JSON file: `{"meta": ..., "tree": ...,
// "version": ...}`. meta and version are opaque to this package — they are
// read and re-emitted unchanged.
type Document struct {
	Meta    json.RawMessage `json:"meta"`
	Tree    *Node           `json:"tree"`
	Version string          `json:"version,omitempty"`
}

// Read parses an Auspice v2 JSON document.
func Read(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("treeio: %w", err)
	}
	if doc.Tree == nil {
		return nil, fmt.Errorf("treeio: document has no \"tree\"")
	}
	return &doc, nil
}

// Write serializes doc back to Auspice v2 JSON, pretty-printed the way
// Auspice's own tooling emits it.
func Write(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// MutationCodecError reports a branch_attrs.mutations.nuc entry that isn't
// shaped like "<refNuc><1-based pos><queryNuc>".
type MutationCodecError struct {
	Raw string
}

func (e *MutationCodecError) Error() string {
	return fmt.Sprintf("treeio: malformed nucleotide mutation %q, expected <ref><pos><query>", e.Raw)
}

// decodeMutation parses one "A123T"-shaped entry into a zero-based position
// and the query-side nucleotide (the letter the branch mutation records).
func decodeMutation(raw string) (pos int, queryNuc alphabet.Nucleotide, err error) {
	if len(raw) < 3 {
		return 0, 0, &MutationCodecError{Raw: raw}
	}
	refChar := raw[0]
	queryChar := raw[len(raw)-1]
	posStr := raw[1 : len(raw)-1]

	if _, err := alphabet.NucleotideFromChar(refChar); err != nil {
		return 0, 0, &MutationCodecError{Raw: raw}
	}
	pos1, err := strconv.Atoi(posStr)
	if err != nil || pos1 < 1 {
		return 0, 0, &MutationCodecError{Raw: raw}
	}
	queryNuc, err = alphabet.NucleotideFromChar(queryChar)
	if err != nil {
		return 0, 0, &MutationCodecError{Raw: raw}
	}
	return pos1 - 1, queryNuc, nil
}

// encodeMutation formats a branch mutation back into "<ref><1-based
// pos><query>" form.
func encodeMutation(pos int, refNuc, queryNuc alphabet.Nucleotide) string {
	return fmt.Sprintf("%c%d%c", alphabet.CharFromNucleotide(refNuc), pos+1, alphabet.CharFromNucleotide(queryNuc))
}

// ToTree converts a parsed Auspice document into the in-memory tree.Tree
// Preprocess/FindNearestNode/AttachNode operate on. Each mutation
// string's reference letter is validated and then discarded, keeping only
// the query-side letter; only rootSeq's length is used, as the tree's
// RefLength.
func ToTree(doc *Document, rootSeq []alphabet.Nucleotide) (*tree.Tree, error) {
	root, err := toNode(doc.Tree, rootSeq)
	if err != nil {
		return nil, err
	}
	return &tree.Tree{Root: root, RefLength: len(rootSeq)}, nil
}

func toNode(n *Node, rootSeq []alphabet.Nucleotide) (*tree.Node, error) {
	out := &tree.Node{Name: n.Name, BranchMutations: map[int]alphabet.Nucleotide{}}

	if clade, ok := n.NodeAttrs["clade_membership"]; ok {
		if s, ok := clade.asString(); ok {
			out.Clade = s
		}
	}
	if div, ok := n.NodeAttrs["div"]; ok {
		if f, ok := div.asFloat(); ok {
			out.Divergence = f
		}
	}

	if n.BranchAttrs != nil && n.BranchAttrs.Mutations != nil {
		for _, raw := range n.BranchAttrs.Mutations.Nuc {
			pos, queryNuc, err := decodeMutation(raw)
			if err != nil {
				return nil, err
			}
			out.BranchMutations[pos] = queryNuc
		}
	}

	for _, child := range n.Children {
		childNode, err := toNode(child, rootSeq)
		if err != nil {
			return nil, err
		}
		out.Children = append(out.Children, childNode)
	}
	return out, nil
}

// FromTree converts an in-memory tree.Tree back into an Auspice document
// ready to write. rootSeq supplies the reference letter for each branch
// mutation's string encoding. meta/version are carried over verbatim from
// the document the tree was originally read from.
func FromTree(t *tree.Tree, rootSeq []alphabet.Nucleotide, meta json.RawMessage, version string) *Document {
	return &Document{
		Meta:    meta,
		Version: version,
		Tree:    fromNode(t.Root, rootSeq),
	}
}

func fromNode(n *tree.Node, rootSeq []alphabet.Nucleotide) *Node {
	out := &Node{Name: n.Name}

	attrs := map[string]AttrValue{}
	if n.Clade != "" {
		attrs["clade_membership"] = stringAttr(n.Clade)
	}
	if n.NodeType == "New" {
		attrs["Node type"] = stringAttr("New")
	}
	divEncoded, _ := json.Marshal(n.Divergence)
	attrs["div"] = AttrValue{Value: divEncoded}
	if len(attrs) > 0 {
		out.NodeAttrs = attrs
	}

	if len(n.BranchMutations) > 0 {
		positions := make([]int, 0, len(n.BranchMutations))
		for pos := range n.BranchMutations {
			positions = append(positions, pos)
		}
		sort.Ints(positions)

		nuc := make([]string, 0, len(positions))
		for _, pos := range positions {
			refNuc := alphabet.NucN
			if pos >= 0 && pos < len(rootSeq) {
				refNuc = rootSeq[pos]
			}
			nuc = append(nuc, encodeMutation(pos, refNuc, n.BranchMutations[pos]))
		}
		out.BranchAttrs = &BranchAttrs{Mutations: &Mutations{Nuc: nuc}}
	}

	for _, child := range n.Children {
		out.Children = append(out.Children, fromNode(child, rootSeq))
	}
	return out
}
