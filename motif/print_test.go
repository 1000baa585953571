package motif_test

import (
	"bytes"
	"testing"

	"github.com/grailbio/bio/background"
	"github.com/grailbio/bio/motif"
	"github.com/grailbio/testutil/assert"
)

func TestWriteSummaryIncludesNameAndPWM(t *testing.T) {
	m, err := motif.FromConsensus("AC")
	assert.NoError(t, err)
	assert.NoError(t, m.Prepare(background.Uniform, 1e-5, nil))

	var buf bytes.Buffer
	assert.NoError(t, m.WriteSummary(&buf, 1))
	out := buf.String()
	assert.True(t, len(out) > 0)
	assert.HasSubstr(t, out, "Motif: AC")
	assert.HasSubstr(t, out, "Motif PWM:")
}

func TestWriteSummaryMarksUnreachableThreshold(t *testing.T) {
	rows := [][4]float64{
		{0.3, 0.3, 0.2, 0.2},
		{0.3, 0.2, 0.3, 0.2},
	}
	m, err := motif.FromPPM("weak", 1, rows, background.Uniform, 1000, 1, nil)
	assert.NoError(t, err)
	assert.NoError(t, m.Prepare(background.Uniform, 1e-30, nil))
	assert.True(t, m.Unreachable)

	var buf bytes.Buffer
	assert.NoError(t, m.WriteSummary(&buf, 1))
	assert.HasSubstr(t, buf.String(), "[exceeds max]")
}
