// Package coordmap maps between reference coordinates (positions in the
// un-gapped reference) and alignment coordinates (positions in the gapped,
// aligned reference), used to project annotated gene ranges into a
// particular query's alignment.
package coordmap

import "github.com/nextstrain/nextclade-sub000/internal/alphabet"

// Map projects a reference-coordinate index to an alignment-coordinate
// index. Its length equals the un-gapped reference length.
type Map []int

// ReverseMap projects an alignment-coordinate index to a reference-coordinate
// index. Its length equals the aligned (gapped) reference length; gap
// columns are assigned the index of the preceding non-gap position.
type ReverseMap []int

// Build returns the forward coordinate map: for each non-gap position in
// alignedRef, the index of that position in the alignment.
func Build(alignedRef []alphabet.Nucleotide) Map {
	m := make(Map, 0, len(alignedRef))
	for i, n := range alignedRef {
		if !n.IsGap() {
			m = append(m, i)
		}
	}
	return m
}

// BuildReverse returns the reverse coordinate map: for each alignment
// position, the index in the un-gapped reference.
func BuildReverse(alignedRef []alphabet.Nucleotide) ReverseMap {
	m := make(ReverseMap, 0, len(alignedRef))
	refPos := 0
	for _, n := range alignedRef {
		if n.IsGap() {
			prev := 0
			if len(m) > 0 {
				prev = m[len(m)-1]
			}
			m = append(m, prev)
		} else {
			m = append(m, refPos)
			refPos++
		}
	}
	return m
}
