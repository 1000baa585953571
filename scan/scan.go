// Package scan implements motifscan's hot path: the per-window PWM
// score sum against every loaded sequence, on both strands, emitting a
// Hit for every window whose score clears a motif's integer threshold.
package scan

import (
	"math"

	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/grailbio/bio/alphabet"
	"github.com/grailbio/bio/encoding/fasta"
	"github.com/grailbio/bio/motif"
)

// Hit is one reported PWM match, fields in the tab-separated output
// order of spec §4.6.
type Hit struct {
	SeqName    string
	Start      int // 1-based, inclusive
	End        int // inclusive
	Reverse    bool
	MotifName  string
	PValue     float64
	Score      float64 // raw integer score / motif.Multiplier
	PctOfMax   float64 // 100 * score / S_max; NaN if S_max <= 0
	Match      string  // forward-strand bytes, length W
}

// Strand renders + or -.
func (h Hit) Strand() byte {
	if h.Reverse {
		return '-'
	}
	return '+'
}

// Options controls which strands are scanned.
type Options struct {
	ForwardOnly bool
}

// Scanner evaluates prepared motifs against loaded sequences.
type Scanner struct {
	opts Options
}

// New builds a Scanner.
func New(opts Options) *Scanner {
	return &Scanner{opts: opts}
}

// Scan runs motif m (which must be Prepared) against every sequence in
// order, calling emit for each hit in the canonical order of spec §4.6
// and §5: ascending sequence index, forward strand before reverse,
// ascending window start within a strand.
func (s *Scanner) Scan(m *motif.Motif, seqs []*fasta.Record, emit func(Hit)) {
	if m.Unreachable || m.State() != motif.Prepared {
		return
	}
	w := m.Width
	for _, seq := range seqs {
		if len(seq.Seq) < w {
			continue
		}
		scanStrand(m, seq, w, false, emit)
		if !s.opts.ForwardOnly {
			scanStrand(m, seq, w, true, emit)
		}
	}
}

func scanStrand(m *motif.Motif, seq *fasta.Record, w int, reverse bool, emit func(Hit)) {
	table := m.ForwardScores()
	if reverse {
		table = m.ReverseScores()
	}
	data := seq.Seq
	threshold := m.Threshold
	sMax := m.MaxScore()

	for i := 0; i+w <= len(data); i++ {
		var score int32
		for j := 0; j < w; j++ {
			score += table[j][alphabet.Idx(data[i+j])]
		}
		if score < threshold {
			continue
		}
		pct := math.NaN()
		if sMax > 0 {
			pct = 100 * float64(score) / float64(sMax)
		}
		emit(Hit{
			SeqName:   seq.Name,
			Start:     i + 1,
			End:       i + w,
			Reverse:   reverse,
			MotifName: m.Name,
			PValue:    m.PValue(score),
			Score:     float64(score) / motif.Multiplier,
			PctOfMax:  pct,
			Match:     gunsafe.BytesToString(data[i : i+w]),
		})
	}
}
