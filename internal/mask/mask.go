// Package mask merges overlapping integer ranges using an
// interval tree, the same structure the teacher's repeat-masking tooling
// uses to cull contained BLAST hits.
package mask

import (
	"sort"

	"github.com/biogo/store/interval"
)

// Range is a half-open integer interval in whatever coordinate space the
// caller is working in (codon indices, nucleotide positions, ...).
type Range struct {
	Begin, End int
}

type node struct {
	begin, end int
	id         uintptr
}

func (n node) Overlap(b interval.IntRange) bool { return n.begin < b.End && b.Start < n.end }
func (n node) ID() uintptr                      { return n.id }
func (n node) Range() interval.IntRange {
	return interval.IntRange{Start: n.begin, End: n.end}
}

// Merge collapses a set of possibly-overlapping ranges into their disjoint
// union, sorted by start position. Two ranges are merged whenever they
// overlap, including when one fully contains the other; ranges that only
// touch (one ends where the next begins) stay separate, and a range is
// never split. An interval tree finds the overlaps so the cost
// stays near-linear instead of the quadratic all-pairs comparison a
// hand-rolled sweep would need once ranges arrive out of order.
func Merge(ranges []Range) []Range {
	if len(ranges) == 0 {
		return nil
	}

	var tree interval.IntTree
	for i, r := range ranges {
		if err := tree.Insert(node{begin: r.Begin, end: r.End, id: uintptr(i)}, true); err != nil {
			panic(err)
		}
	}
	tree.AdjustRanges()

	visited := make([]bool, len(ranges))
	merged := make([]Range, 0, len(ranges))

	for i, r := range ranges {
		if visited[i] {
			continue
		}
		visited[i] = true
		cur := r

		for grew := true; grew; {
			grew = false
			for _, hit := range tree.Get(node{begin: cur.Begin, end: cur.End}) {
				h := hit.(node)
				if visited[h.id] {
					continue
				}
				visited[h.id] = true
				grew = true
				if h.begin < cur.Begin {
					cur.Begin = h.begin
				}
				if h.end > cur.End {
					cur.End = h.end
				}
			}
		}
		merged = append(merged, cur)
	}

	sort.Slice(merged, func(i, j int) bool { return merged[i].Begin < merged[j].Begin })
	return merged
}
