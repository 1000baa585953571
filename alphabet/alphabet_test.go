package alphabet_test

import (
	"testing"

	"github.com/grailbio/bio/alphabet"
	"github.com/grailbio/testutil/assert"
)

func TestIdx(t *testing.T) {
	cases := []struct {
		b    byte
		want byte
	}{
		{'A', 0}, {'a', 0},
		{'C', 1}, {'c', 1},
		{'G', 2}, {'g', 2},
		{'T', 3}, {'t', 3},
		{'U', 3}, {'u', 3},
		{'N', alphabet.Ambiguous},
		{'n', alphabet.Ambiguous},
		{' ', alphabet.Ambiguous},
	}
	for _, c := range cases {
		assert.EQ(t, alphabet.Idx(c.b), c.want)
	}
}

func TestIsStandard(t *testing.T) {
	assert.True(t, alphabet.IsStandard('A'))
	assert.True(t, alphabet.IsStandard('u'))
	assert.False(t, alphabet.IsStandard('N'))
	assert.False(t, alphabet.IsStandard('-'))
}

func TestComplementIdx(t *testing.T) {
	assert.EQ(t, alphabet.ComplementIdx(alphabet.Idx('A')), alphabet.Idx('T'))
	assert.EQ(t, alphabet.ComplementIdx(alphabet.Idx('C')), alphabet.Idx('G'))
	assert.EQ(t, alphabet.ComplementIdx(alphabet.Idx('G')), alphabet.Idx('C'))
	assert.EQ(t, alphabet.ComplementIdx(alphabet.Idx('T')), alphabet.Idx('A'))
}

func TestIUPACProbs(t *testing.T) {
	probs, ok := alphabet.IUPACProbs('N')
	assert.True(t, ok)
	assert.EQ(t, probs, [4]float64{0.25, 0.25, 0.25, 0.25})

	probs, ok = alphabet.IUPACProbs('r')
	assert.True(t, ok)
	assert.EQ(t, probs, [4]float64{0.5, 0, 0.5, 0})

	_, ok = alphabet.IUPACProbs('Z')
	assert.False(t, ok)
}
