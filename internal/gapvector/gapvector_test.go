package gapvector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextstrain/nextclade-sub000/internal/gene"
)

func TestFlat(t *testing.T) {
	v := Flat(10, -6)
	assert.Len(t, v, 12)
	for _, x := range v {
		assert.Equal(t, -6, x)
	}
}

func TestCodonAware(t *testing.T) {
	geneMap := gene.Map{
		"S": gene.Gene{Name: "S", Start: 2, End: 20, Strand: "+", Frame: 2, Length: 18},
	}
	v, err := CodonAware(23, geneMap, []string{"S"}, -5, -6)
	require.NoError(t, err)
	assert.Equal(t, -5, v[2])
	assert.Equal(t, -5, v[5])
	assert.Equal(t, -5, v[20])
	assert.Equal(t, -6, v[1])
	assert.Equal(t, -6, v[21])
}

func TestCodonAwareGeneNotFound(t *testing.T) {
	_, err := CodonAware(23, gene.Map{}, []string{"S"}, -5, -6)
	require.Error(t, err)
	var notFound *gene.GeneNotFoundError
	assert.ErrorAs(t, err, &notFound)
}
