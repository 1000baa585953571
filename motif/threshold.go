package motif

import (
	"fmt"

	"github.com/grailbio/base/log"
	"github.com/grailbio/bio/background"
	"github.com/pkg/errors"
)

// unreachableSlack is how far above 1.0 the ratio minPValue/alpha may
// sit before it's still treated as "reachable", absorbing floating point
// noise around the CDF boundary (spec §4.5: "> 1.0001").
const unreachableSlack = 1.0001

// Prepare computes m's CDF and derives its integer score threshold for
// p-value alpha, transitioning Built -> Prepared (or directly to
// Released if the threshold turns out unreachable; spec §4.7). warn,
// when non-nil, receives the text of any non-fatal warning raised along
// the way (CDF renormalization, unreachable threshold), so the CLI can
// gate these behind -v/-w per spec §7; pass nil when that surfacing
// isn't needed (e.g. in tests).
func (m *Motif) Prepare(bkg background.Background, alpha float64, warn func(string)) error {
	if m.state != Built {
		return errors.Errorf("motif %q: Prepare called in state %v, want Built", m.Name, m.state)
	}
	if err := m.buildCDF(bkg, warn); err != nil {
		return err
	}

	// Consensus motifs ignore alpha entirely: their threshold is pinned
	// to S_max regardless of how that compares to the requested
	// p-value, so only exact matches are ever reported (spec §4.2).
	if m.forceExact {
		m.Threshold = m.SMax
		m.state = Prepared
		return nil
	}

	thresholdIdx := len(m.cdf)
	for i, p := range m.cdf {
		if p < alpha {
			thresholdIdx = i
			break
		}
	}
	threshold := int32(thresholdIdx) + m.sMin*int32(m.Width)

	minPValue := m.scoreToPValue(m.SMax)
	if minPValue/alpha > unreachableSlack {
		msg := fmt.Sprintf("motif %q: minimum possible p-value %.4g exceeds threshold %.4g, marking unreachable",
			m.Name, minPValue, alpha)
		log.Debug.Printf(msg)
		if warn != nil {
			warn(msg)
		}
		m.Unreachable = true
		m.Threshold = 0
		m.release() // unreachable motifs transition straight to Released, per spec §4.7.
		return nil
	}

	m.Threshold = threshold
	m.state = Prepared
	return nil
}

// PValue returns the p-value associated with a raw motif score. Legal
// only once the motif is Prepared.
func (m *Motif) PValue(score int32) float64 {
	return m.scoreToPValue(score)
}

// release frees the CDF buffer and transitions to Released.
func (m *Motif) release() {
	m.cdf = nil
	m.state = Released
}

// Release frees m's CDF buffer once every sequence has been scanned
// against it. Calling Release on an already-Released motif is a no-op.
func (m *Motif) Release() {
	if m.state == Released {
		return
	}
	m.release()
}
