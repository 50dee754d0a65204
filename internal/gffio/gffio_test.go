package gffio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `##gff-version 3
seq1	.	gene	1	9	.	+	1	gene_name "ORF1"
seq1	.	CDS	1	9	.	+	1	gene_name "ORF1"
seq1	.	gene	10	21	.	-	1	gene_name "ORF2"
`

func TestParseKeepsOnlyGeneFeatureRows(t *testing.T) {
	genes, err := Parse(strings.NewReader(sample), 30)
	require.NoError(t, err)
	require.Len(t, genes, 2)

	orf1, err := genes.Lookup("ORF1")
	require.NoError(t, err)
	assert.Equal(t, 0, orf1.Start)
	assert.Equal(t, 9, orf1.End)
	assert.Equal(t, "+", orf1.Strand)
	assert.Equal(t, 0, orf1.Frame)
	assert.Equal(t, 9, orf1.Length)

	orf2, err := genes.Lookup("ORF2")
	require.NoError(t, err)
	assert.Equal(t, 9, orf2.Start)
	assert.Equal(t, 21, orf2.End)
	assert.Equal(t, "-", orf2.Strand)
}

func TestParseRejectsDuplicateGeneName(t *testing.T) {
	dup := `seq1	.	gene	1	9	.	+	1	gene_name "ORF1"
seq1	.	gene	10	18	.	+	1	gene_name "ORF1"
`
	_, err := Parse(strings.NewReader(dup), 30)
	require.Error(t, err)
	var dupErr *DuplicateGeneNameError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "ORF1", dupErr.GeneName)
}

func TestParseRejectsMissingGeneName(t *testing.T) {
	missing := "seq1\t.\tgene\t1\t9\t.\t+\t1\tnote \"hi\"\n"
	_, err := Parse(strings.NewReader(missing), 30)
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestParseRejectsInvalidGeneInvariant(t *testing.T) {
	// length 8 is not a multiple of 3.
	bad := "seq1\t.\tgene\t1\t8\t.\t+\t1\tgene_name \"ORF1\"\n"
	_, err := Parse(strings.NewReader(bad), 30)
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestParseIgnoresEmptyInput(t *testing.T) {
	genes, err := Parse(strings.NewReader(""), 30)
	require.NoError(t, err)
	assert.Empty(t, genes)
}
