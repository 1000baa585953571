package scan_test

import (
	"testing"

	"github.com/grailbio/bio/background"
	"github.com/grailbio/bio/encoding/fasta"
	"github.com/grailbio/bio/motif"
	"github.com/grailbio/bio/scan"
	"github.com/grailbio/testutil/assert"
)

func prepareConsensus(t *testing.T, consensus string, alpha float64) *motif.Motif {
	m, err := motif.FromConsensus(consensus)
	assert.NoError(t, err)
	assert.NoError(t, m.Prepare(background.Uniform, alpha, nil))
	return m
}

// TestConsensusExactMatch covers the literal scenario in spec §8.1: a
// consensus motif ACGT against "TTACGTAA" must find exactly one forward
// hit at 1-based [3,6], plus one reverse hit at the same coordinates
// since ACGT is its own reverse complement.
func TestConsensusExactMatch(t *testing.T) {
	m := prepareConsensus(t, "ACGT", 1e-5)
	seqs := []*fasta.Record{{Name: "s1", Seq: []byte("TTACGTAA"), SourceLine: 1}}

	var hits []scan.Hit
	scan.New(scan.Options{}).Scan(m, seqs, func(h scan.Hit) { hits = append(hits, h) })

	assert.EQ(t, len(hits), 2)
	assert.EQ(t, hits[0].Reverse, false)
	assert.EQ(t, hits[0].Start, 3)
	assert.EQ(t, hits[0].End, 6)
	assert.EQ(t, hits[0].Match, "ACGT")

	assert.EQ(t, hits[1].Reverse, true)
	assert.EQ(t, hits[1].Start, 3)
	assert.EQ(t, hits[1].End, 6)
}

func TestConsensusForwardOnly(t *testing.T) {
	m := prepareConsensus(t, "ACGT", 1e-5)
	seqs := []*fasta.Record{{Name: "s1", Seq: []byte("TTACGTAA"), SourceLine: 1}}

	var hits []scan.Hit
	scan.New(scan.Options{ForwardOnly: true}).Scan(m, seqs, func(h scan.Hit) { hits = append(hits, h) })

	assert.EQ(t, len(hits), 1)
	assert.EQ(t, hits[0].Reverse, false)
}

// TestAmbiguityIsolation covers spec §8.2: a window containing an
// ambiguous byte can never score a hit, regardless of threshold.
func TestAmbiguityIsolation(t *testing.T) {
	m, err := motif.FromPPM("m", 1, [][4]float64{
		{0.97, 0.01, 0.01, 0.01},
		{0.01, 0.97, 0.01, 0.01},
		{0.01, 0.01, 0.01, 0.97},
	}, background.Uniform, 1000, 1, nil)
	assert.NoError(t, err)
	assert.NoError(t, m.Prepare(background.Uniform, 1.0, nil))

	seqs := []*fasta.Record{{Name: "s", Seq: []byte("ACNGT"), SourceLine: 1}}
	var hits []scan.Hit
	scan.New(scan.Options{ForwardOnly: true}).Scan(m, seqs, func(h scan.Hit) { hits = append(hits, h) })

	for _, h := range hits {
		assert.True(t, h.Start != 2)
	}
}

// TestUnreachableThresholdSkipsScan covers spec §8.4: a vanishingly
// small p-value on a near-uniform motif yields zero hits and the
// motif's Unreachable flag is set.
func TestUnreachableThresholdSkipsScan(t *testing.T) {
	rows := make([][4]float64, 4)
	for i := range rows {
		rows[i] = [4]float64{0.25, 0.25, 0.25, 0.25}
	}
	m, err := motif.FromPPM("m", 1, rows, background.Uniform, 1000, 1, nil)
	assert.NoError(t, err)
	assert.NoError(t, m.Prepare(background.Uniform, 1e-30, nil))
	assert.True(t, m.Unreachable)

	seqs := []*fasta.Record{{Name: "s", Seq: []byte("ACGTACGTACGT"), SourceLine: 1}}
	var hits []scan.Hit
	scan.New(scan.Options{}).Scan(m, seqs, func(h scan.Hit) { hits = append(hits, h) })
	assert.EQ(t, len(hits), 0)
}

func TestScanOrdersBySequenceThenStrandThenPosition(t *testing.T) {
	m := prepareConsensus(t, "AC", 1.0)
	seqs := []*fasta.Record{
		{Name: "s1", Seq: []byte("ACAC"), SourceLine: 1},
		{Name: "s2", Seq: []byte("ACAC"), SourceLine: 3},
	}
	var hits []scan.Hit
	scan.New(scan.Options{}).Scan(m, seqs, func(h scan.Hit) { hits = append(hits, h) })

	// s1 forward (asc start), s1 reverse (asc start), s2 forward, s2 reverse.
	assert.True(t, len(hits) > 0)
	lastSeq, lastRev, lastStart := "", false, -1
	seenSeqs := map[string]bool{}
	for _, h := range hits {
		if h.SeqName != lastSeq {
			assert.True(t, !seenSeqs[h.SeqName])
			seenSeqs[h.SeqName] = true
			lastSeq = h.SeqName
			lastRev = false
			lastStart = -1
		}
		if h.Reverse != lastRev {
			assert.True(t, h.Reverse) // forward group must come first
			lastRev = true
			lastStart = -1
		}
		assert.True(t, h.Start > lastStart)
		lastStart = h.Start
	}
}
