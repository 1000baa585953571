package motif

import (
	"fmt"

	"github.com/grailbio/base/log"
	"github.com/grailbio/bio/alphabet"
	"github.com/grailbio/bio/background"
	"github.com/pkg/errors"
)

// buildCDF computes the exact discrete score distribution of m under bkg
// via convolution (spec §4.4), then converts it to a right-tail CDF in
// place. It reuses two R-length buffers across all W positions, swapping
// them instead of allocating per position. warn, when non-nil, receives
// the renormalization message so callers can gate it behind -v/-w.
func (m *Motif) buildCDF(bkg background.Background, warn func(string)) error {
	d := int(m.sMax - m.sMin)
	r := m.Width*d + 1
	if r > MaxCDFSize {
		return errors.Errorf("motif %q: CDF size %d exceeds maximum %d (background may have values too close to %.3g)",
			m.Name, r, MaxCDFSize, background.MinValue)
	}

	cur := make([]float64, r)
	next := make([]float64, r)
	cur[0] = 1.0

	for i := 0; i < m.Width; i++ {
		maxStep := i * d
		clearTo := maxStep + d + 1
		for j := 0; j < clearTo; j++ {
			next[j] = 0
		}
		for k := 0; k < alphabet.NBase; k++ {
			s := int(m.scores[i][k] - m.sMin)
			bk := bkg[k]
			for t := 0; t <= maxStep; t++ {
				if cur[t] != 0 {
					next[t+s] += cur[t] * bk
				}
			}
		}
		cur, next = next, cur
	}

	var sum float64
	for _, v := range cur {
		sum += v
	}
	if absf(sum-1.0) > 0.0001 {
		msg := fmt.Sprintf("motif %q: PDF sum %.6g deviates from 1.0, renormalizing", m.Name, sum)
		log.Debug.Printf(msg)
		if warn != nil {
			warn(msg)
		}
		for i := range cur {
			cur[i] /= sum
		}
	}

	for i := r - 2; i >= 0; i-- {
		cur[i] += cur[i+1]
	}

	m.cdf = cur
	return nil
}

// scoreToPValue returns the right-tail p-value for a raw motif score,
// clamped to the CDF's valid index range.
func (m *Motif) scoreToPValue(score int32) float64 {
	idx := int(score) - int(m.sMin)*m.Width
	if idx < 0 {
		idx = 0
	}
	if idx >= len(m.cdf) {
		idx = len(m.cdf) - 1
	}
	return m.cdf[idx]
}
