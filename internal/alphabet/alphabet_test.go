package alphabet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNucleotideFromChar(t *testing.T) {
	n, err := NucleotideFromChar('R')
	require.NoError(t, err)
	assert.Equal(t, NucR, n)
	assert.Equal(t, byte('R'), CharFromNucleotide(n))

	_, err = NucleotideFromChar('X')
	assert.Error(t, err)
}

func TestNucleotidesMatch(t *testing.T) {
	assert.True(t, NucleotidesMatch(NucN, NucGap))
	assert.True(t, NucleotidesMatch(NucR, NucA))
	assert.True(t, NucleotidesMatch(NucR, NucG))
	assert.False(t, NucleotidesMatch(NucR, NucC))
	assert.True(t, NucleotidesMatch(NucGap, NucGap))
	assert.False(t, NucleotidesMatch(NucGap, NucA))
}

func TestReverseComplement(t *testing.T) {
	in := []Nucleotide{NucA, NucC, NucG, NucT, NucN, NucGap}
	out := ReverseComplement(in)
	want := []Nucleotide{NucGap, NucN, NucA, NucC, NucG, NucT}
	assert.Equal(t, want, out)
}

func TestAminoacidFromChar(t *testing.T) {
	a, err := AminoacidFromChar('W')
	require.NoError(t, err)
	assert.Equal(t, AaW, a)

	stop, err := AminoacidFromChar('*')
	require.NoError(t, err)
	assert.True(t, stop.IsStop())
}

func TestDecodeCodon(t *testing.T) {
	cases := []struct {
		a, b, c Nucleotide
		want    Aminoacid
	}{
		{NucA, NucT, NucG, AaM},
		{NucT, NucA, NucA, AaStop},
		{NucT, NucG, NucA, AaStop},
		{NucGap, NucGap, NucGap, AaGap},
		{NucN, NucT, NucG, AaX},
		{NucR, NucT, NucG, AaX},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, DecodeCodon(c.a, c.b, c.c))
	}
}
