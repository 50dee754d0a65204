// Package gapvector builds the per-position gap-open penalty vector that
// lets the aligner favor gap placement at codon boundaries of selected
// genes.
package gapvector

import "github.com/nextstrain/nextclade-sub000/internal/gene"

// Vector is the gap-open-close cost used by the aligner, indexed 0..refLen+1
// inclusive.
type Vector []int

// Flat returns a vector with every position set to the out-of-frame
// penalty — used for peptide alignment, where codons are already collapsed.
func Flat(refLength, gapOpenOutOfFrame int) Vector {
	v := make(Vector, refLength+2)
	for i := range v {
		v[i] = gapOpenOutOfFrame
	}
	return v
}

// CodonAware returns Flat(refLength, gapOpenOutOfFrame) with every codon
// start position of the named genes set to gapOpenInFrame instead.
func CodonAware(refLength int, geneMap gene.Map, selectedGenes []string, gapOpenInFrame, gapOpenOutOfFrame int) (Vector, error) {
	v := Flat(refLength, gapOpenOutOfFrame)
	for _, name := range selectedGenes {
		g, err := geneMap.Lookup(name)
		if err != nil {
			return nil, err
		}
		for i := g.Start; i <= g.End && i < len(v); i += 3 {
			v[i] = gapOpenInFrame
		}
	}
	return v, nil
}
