package fastaio

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterResiduesUppercasesAndDropsJunk(t *testing.T) {
	got := filterResidues([]byte("acgt-N.?*123 \n"))
	assert.Equal(t, "ACGTN.?*", string(got))
}

func TestReaderStreamsRecordsInOrder(t *testing.T) {
	input := ">seq1\nACGT\n>seq2\nacgtn\n"
	r := NewReader(strings.NewReader(input))

	rec1, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "seq1", rec1.Name)
	assert.Equal(t, "ACGT", string(rec1.Seq))

	rec2, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "seq2", rec2.Name)
	assert.Equal(t, "ACGTN", string(rec2.Seq))

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestNextFuncReportsNoParseErrorsForWellFormedInput(t *testing.T) {
	input := ">seq1\nACGT\n>seq2\nTTTT\n"
	r := NewReader(strings.NewReader(input))

	var seen []*ParseError
	next := r.NextFunc(func(pe *ParseError) { seen = append(seen, pe) })

	name, seq, err := next()
	require.NoError(t, err)
	assert.Equal(t, "seq1", name)
	assert.Equal(t, "ACGT", string(seq))

	name, seq, err = next()
	require.NoError(t, err)
	assert.Equal(t, "seq2", name)
	assert.Equal(t, "TTTT", string(seq))

	_, _, err = next()
	assert.Equal(t, io.EOF, err)
	assert.Empty(t, seen)
}

func TestWriterRoundTripsThroughReader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.Write(Record{Name: "q1", Seq: []byte("ACGTACGT")}))

	r := NewReader(&buf)
	rec, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "q1", rec.Name)
	assert.Equal(t, "ACGTACGT", string(rec.Seq))
}
