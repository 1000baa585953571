package motif_test

import (
	"testing"

	"github.com/grailbio/bio/background"
	"github.com/grailbio/bio/motif"
	"github.com/grailbio/testutil/assert"
)

func TestNewSetPreservesOrderWithNoDuplicates(t *testing.T) {
	m1, err := motif.FromConsensus("AC")
	assert.NoError(t, err)
	m1.Name = "one"
	m2, err := motif.FromConsensus("GT")
	assert.NoError(t, err)
	m2.Name = "two"

	set, err := motif.NewSet([]*motif.Motif{m1, m2}, false)
	assert.NoError(t, err)
	assert.EQ(t, set.Motifs[0].Name, "one")
	assert.EQ(t, set.Motifs[1].Name, "two")
}

func TestNewSetFailsOnDuplicateNamesWithoutDedup(t *testing.T) {
	m1, err := motif.FromConsensus("AC")
	assert.NoError(t, err)
	m1.Name = "dup"
	m2, err := motif.FromConsensus("GT")
	assert.NoError(t, err)
	m2.Name = "dup"

	_, err = motif.NewSet([]*motif.Motif{m1, m2}, false)
	assert.Error(t, err)
}

func TestNewSetSuffixesDuplicateNamesWhenAllowed(t *testing.T) {
	m1, err := motif.FromConsensus("AC")
	assert.NoError(t, err)
	m1.Name = "dup"
	m1.SourceLine = 1
	m2, err := motif.FromConsensus("GT")
	assert.NoError(t, err)
	m2.Name = "dup"
	m2.SourceLine = 5

	set, err := motif.NewSet([]*motif.Motif{m1, m2}, true)
	assert.NoError(t, err)
	assert.EQ(t, set.Motifs[0].Name, "dup__N1_L1")
	assert.EQ(t, set.Motifs[1].Name, "dup__N2_L5")
}

func TestPrepareAllSurfacesPrepareError(t *testing.T) {
	m1, err := motif.FromConsensus("AC")
	assert.NoError(t, err)
	set, err := motif.NewSet([]*motif.Motif{m1}, false)
	assert.NoError(t, err)
	assert.NoError(t, set.PrepareAll(background.Uniform, 1e-5, nil))
	// Preparing an already-Prepared set must surface the state error.
	assert.Error(t, set.PrepareAll(background.Uniform, 1e-5, nil))
}
