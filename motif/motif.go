// Package motif builds integer-scored position weight matrices from PPM,
// PCM, or IUPAC consensus inputs, derives score thresholds from p-values
// via an exact discrete convolution, and carries the per-motif state a
// scan needs. It is the core of motifscan: every other package either
// feeds it (encoding/motifio, encoding/fasta) or consumes it (scan).
package motif

import (
	"fmt"
	"math"

	"github.com/grailbio/bio/alphabet"
	"github.com/grailbio/bio/background"
	"github.com/pkg/errors"
)

// AMB is the sentinel score assigned to the ambiguity column. It is far
// below any reachable motif score: with MaxWidth positions it can drag a
// window's total to roughly -5e8, nowhere near INT32_MIN, while still
// guaranteeing no threshold derived from a finite p-value can be crossed.
const AMB = -10_000_000

// Multiplier scales log-odds into the integer domain the scanner and CDF
// engine operate on.
const Multiplier = 1000.0

// MaxWidth is the largest motif width accepted, per spec: 1 <= W <= 50.
const MaxWidth = 50

// MaxCDFSize bounds the exact discrete distribution's length. A motif
// whose background makes this unreachable fails to load with a clear
// error rather than silently consuming unbounded memory.
const MaxCDFSize = 2_097_152

// Row is one position's per-column integer log-odds score: columns
// 0..3 are A/C/G/T, column alphabet.Ambiguous (4) is always AMB.
type Row [alphabet.NCol]int32

// State is a motif's position in its load -> prepare -> scan -> release
// lifecycle (spec §4.7).
type State int

const (
	// Created is never directly observed: motifs are constructed
	// straight into Built by the From* functions below.
	Created State = iota
	// Built means the forward and reverse-complement score tables are
	// filled, but no CDF or threshold has been computed yet.
	Built
	// Prepared means the CDF and integer score threshold are ready;
	// this is the only state in which scanning is legal.
	Prepared
	// Released means the CDF buffer has been freed, either because
	// scanning finished or because the motif's threshold turned out
	// to be unreachable.
	Released
)

// Motif is an immutable (after Build) position weight matrix plus the
// machinery to turn a p-value into an integer score threshold.
type Motif struct {
	Name string
	// SourceLine is the 1-based line in the motif file this motif's
	// header appeared on; used for duplicate-name error messages and
	// suffixing.
	SourceLine int
	Width      int

	scores   []Row
	scoresRC []Row

	sMin, sMax int32 // min/max single-cell score across the 4 base rows
	SMax, SMin int32 // aggregate achievable motif-score bounds

	// forceExact marks motifs built from an IUPAC consensus: their
	// threshold is pinned to SMax regardless of the requested p-value,
	// so only exact matches are ever reported.
	forceExact bool

	cdf         []float64
	Threshold   int32
	Unreachable bool

	state State
}

// DedupName and DedupLine implement dedupe.Named.
func (m *Motif) DedupName() string { return m.Name }
func (m *Motif) DedupLine() int    { return m.SourceLine }

// State reports the motif's current lifecycle state.
func (m *Motif) State() State { return m.state }

func (s State) String() string {
	switch s {
	case Created:
		return "Created"
	case Built:
		return "Built"
	case Prepared:
		return "Prepared"
	case Released:
		return "Released"
	default:
		return "Unknown"
	}
}

// calcScore applies bjmt/minimotif's pseudocount smoothing and returns
// the integer log-odds score 1000*log2(p'/bkg), where p' is prob
// smoothed by nsites and pseudocount. The cast to int32 truncates toward
// zero, matching the C reference's "(int)" cast.
func calcScore(prob, bkg float64, nsites, pseudocount int) int32 {
	x := prob*float64(nsites) + float64(pseudocount)/4.0
	x /= float64(nsites) + float64(pseudocount)
	return int32(math.Log2(x/bkg) * Multiplier)
}

func newMotif(name string, line, width int) (*Motif, error) {
	if width < 1 || width > MaxWidth {
		return nil, errors.Errorf("motif %q: width %d outside [1,%d]", name, width, MaxWidth)
	}
	return &Motif{
		Name:       name,
		SourceLine: line,
		Width:      width,
		scores:     make([]Row, width),
		scoresRC:   make([]Row, width),
		state:      Created,
	}, nil
}

// FromPPM builds a motif from a position-probability matrix: rows[i] is
// the (A, C, G, T) probability vector at position i. Each row's sum must
// be within 0.1 of 1 (error) and is renormalized with a warning if it
// deviates by more than 0.02 (spec §4.2).
func FromPPM(name string, line int, rows [][4]float64, bkg background.Background, nsites, pseudocount int, warn func(string)) (*Motif, error) {
	m, err := newMotif(name, line, len(rows))
	if err != nil {
		return nil, err
	}
	for i, probs := range rows {
		sum := probs[0] + probs[1] + probs[2] + probs[3]
		if absf(sum-1.0) > 0.1 {
			return nil, errors.Errorf("motif %q: position %d does not add up to 1 (sum=%.3g)", name, i+1, sum)
		}
		if absf(sum-1.0) > 0.02 {
			if warn != nil {
				warn(fmtSumWarning(name, sum))
			}
			for k := range probs {
				probs[k] /= sum
			}
		}
		for k := 0; k < alphabet.NBase; k++ {
			m.scores[i][k] = calcScore(probs[k], bkg[k], nsites, pseudocount)
		}
		m.scores[i][alphabet.Ambiguous] = AMB
	}
	m.finishBuild()
	return m, nil
}

// FromPCM builds a motif from a position-count matrix: rows[i] is the
// (A, C, G, T) integer count vector at position i. n is taken from the
// column-0 row sum; every other column's sum must match n within ±1
// (spec §4.2).
func FromPCM(name string, line int, rows [][4]int, bkg background.Background, nsites, pseudocount int, warn func(string)) (*Motif, error) {
	m, err := newMotif(name, line, len(rows))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.Errorf("motif %q: empty count matrix", name)
	}
	n := rows[0][0] + rows[0][1] + rows[0][2] + rows[0][3]
	for i, counts := range rows {
		sum := counts[0] + counts[1] + counts[2] + counts[3]
		diff := sum - n
		if diff < 0 {
			diff = -diff
		}
		if diff > 1 {
			return nil, errors.Errorf("motif %q: column sums are not equal (col %d=%d, col 0=%d)", name, i+1, sum, n)
		}
		if diff == 1 && warn != nil {
			warn(fmtColSumWarning(name))
		}
		for k := 0; k < alphabet.NBase; k++ {
			prob := float64(counts[k]) / float64(n)
			m.scores[i][k] = calcScore(prob, bkg[k], nsites, pseudocount)
		}
		m.scores[i][alphabet.Ambiguous] = AMB
	}
	m.finishBuild()
	return m, nil
}

// FromConsensus builds a single motif from an IUPAC consensus string.
// Per spec §4.2, smoothing always uses n=1000, c=1 under a uniform
// background, and the resulting motif's threshold is forced to SMax:
// only exact matches are ever reported.
func FromConsensus(consensus string) (*Motif, error) {
	m, err := newMotif(consensus, 0, len(consensus))
	if err != nil {
		return nil, err
	}
	const (
		consensusNSites      = 1000
		consensusPseudocount = 1
	)
	bkg := background.Uniform
	for i := 0; i < len(consensus); i++ {
		probs, ok := alphabet.IUPACProbs(consensus[i])
		if !ok {
			return nil, errors.Errorf("unknown letter in consensus: %q", consensus[i])
		}
		for k := 0; k < alphabet.NBase; k++ {
			m.scores[i][k] = calcScore(probs[k], bkg[k], consensusNSites, consensusPseudocount)
		}
		m.scores[i][alphabet.Ambiguous] = AMB
	}
	m.forceExact = true
	m.finishBuild()
	return m, nil
}

// finishBuild fills the reverse-complement table, computes per-cell and
// aggregate score bounds, and transitions the motif to Built.
func (m *Motif) finishBuild() {
	for i := 0; i < m.Width; i++ {
		rc := m.Width - 1 - i
		m.scoresRC[rc][0] = m.scores[i][3]
		m.scoresRC[rc][1] = m.scores[i][2]
		m.scoresRC[rc][2] = m.scores[i][1]
		m.scoresRC[rc][3] = m.scores[i][0]
		m.scoresRC[rc][alphabet.Ambiguous] = AMB
	}

	m.sMin = m.scores[0][0]
	m.sMax = m.scores[0][0]
	for _, row := range m.scores {
		for k := 0; k < alphabet.NBase; k++ {
			if row[k] < m.sMin {
				m.sMin = row[k]
			}
			if row[k] > m.sMax {
				m.sMax = row[k]
			}
		}
	}
	for _, row := range m.scores {
		rowMin, rowMax := row[0], row[0]
		for k := 1; k < alphabet.NBase; k++ {
			if row[k] < rowMin {
				rowMin = row[k]
			}
			if row[k] > rowMax {
				rowMax = row[k]
			}
		}
		m.SMin += rowMin
		m.SMax += rowMax
	}
	m.state = Built
}

// ForwardScores and ReverseScores expose the per-position score rows the
// scanner sums over.
func (m *Motif) ForwardScores() []Row { return m.scores }
func (m *Motif) ReverseScores() []Row { return m.scoresRC }

// MaxScore and MinScore are the aggregate achievable motif-score bounds
// (S_max, S_min in spec §3).
func (m *Motif) MaxScore() int32 { return m.SMax }
func (m *Motif) MinScore() int32 { return m.SMin }

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func fmtSumWarning(name string, sum float64) string {
	return fmt.Sprintf("position for %s does not add up to 1, adjusting (sum=%.3g)", name, sum)
}

func fmtColSumWarning(name string) string {
	return fmt.Sprintf("found difference of 1 between column sums for motif %s", name)
}
