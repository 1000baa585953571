package motif_test

import (
	"testing"

	"github.com/grailbio/bio/background"
	"github.com/grailbio/bio/motif"
	"github.com/grailbio/testutil/assert"
)

func TestFromPPMBuildsWidthAndState(t *testing.T) {
	rows := [][4]float64{
		{0.7, 0.1, 0.1, 0.1},
		{0.1, 0.7, 0.1, 0.1},
	}
	m, err := motif.FromPPM("m1", 10, rows, background.Uniform, 1000, 1, nil)
	assert.NoError(t, err)
	assert.EQ(t, m.Width, 2)
	assert.EQ(t, m.State(), motif.Built)
	assert.EQ(t, m.SourceLine, 10)
	assert.True(t, m.MaxScore() >= m.MinScore())
}

func TestFromPPMRejectsBadRowSum(t *testing.T) {
	rows := [][4]float64{{0.9, 0.9, 0.9, 0.9}}
	_, err := motif.FromPPM("bad", 1, rows, background.Uniform, 1000, 1, nil)
	assert.Error(t, err)
}

func TestFromPPMWarnsAndRenormalizesSmallDeviation(t *testing.T) {
	rows := [][4]float64{{0.25, 0.25, 0.25, 0.30}}
	var warned string
	_, err := motif.FromPPM("m", 1, rows, background.Uniform, 1000, 1, func(msg string) { warned = msg })
	assert.NoError(t, err)
	assert.True(t, warned != "")
}

func TestFromPPMRejectsOversizedWidth(t *testing.T) {
	rows := make([][4]float64, motif.MaxWidth+1)
	for i := range rows {
		rows[i] = [4]float64{0.25, 0.25, 0.25, 0.25}
	}
	_, err := motif.FromPPM("toobig", 1, rows, background.Uniform, 1000, 1, nil)
	assert.Error(t, err)
}

func TestFromPCMBuildsFromCounts(t *testing.T) {
	rows := [][4]int{
		{70, 10, 10, 10},
		{10, 70, 10, 10},
	}
	m, err := motif.FromPCM("m1", 5, rows, background.Uniform, 1000, 1, nil)
	assert.NoError(t, err)
	assert.EQ(t, m.Width, 2)
}

func TestFromPCMRejectsMismatchedColumnSums(t *testing.T) {
	rows := [][4]int{
		{70, 10, 10, 10},
		{10, 70, 10, 30},
	}
	_, err := motif.FromPCM("m1", 5, rows, background.Uniform, 1000, 1, nil)
	assert.Error(t, err)
}

func TestFromConsensusBuildsWidthAndState(t *testing.T) {
	m, err := motif.FromConsensus("ACGT")
	assert.NoError(t, err)
	assert.EQ(t, m.Width, 4)
	assert.EQ(t, m.State(), motif.Built)
}

func TestFromConsensusRejectsUnknownLetter(t *testing.T) {
	_, err := motif.FromConsensus("ACGZ")
	assert.Error(t, err)
}

func TestForwardAndReverseScoresAreComplementary(t *testing.T) {
	m, err := motif.FromConsensus("AG")
	assert.NoError(t, err)
	fwd := m.ForwardScores()
	rev := m.ReverseScores()
	// position 0 forward base A (col 0) reverse-complements into the last
	// RC row's T column (col 3).
	assert.EQ(t, fwd[0][0], rev[len(rev)-1][3])
}
