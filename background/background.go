// Package background validates and normalizes the per-base null model
// that PWM construction and the CDF engine score against.
package background

import (
	"fmt"

	"github.com/grailbio/base/log"
	"github.com/grailbio/bio/alphabet"
	"github.com/pkg/errors"
)

// MinValue is the smallest probability any single base is allowed to
// carry. Values below this push the CDF's achievable score range wide
// enough to blow past the CDF size cap, so loading pads them up instead.
const MinValue = 0.001

// Background is the per-base null-model probability vector (A, C, G, T).
type Background [alphabet.NBase]float64

// Uniform is the default background, used when neither the user nor the
// motif file supplies one.
var Uniform = Background{0.25, 0.25, 0.25, 0.25}

// Validate normalizes b in place: any entry below MinValue is bumped up
// by MinValue uniformly (a warning, not an error), and the vector is
// rescaled to sum to 1. It mirrors bjmt/minimotif's check_and_load_bkg.
// warn, when non-nil, is additionally called with the same text as the
// ambient log.Debug line, so the CLI's -v/-w gating (spec §7) can
// surface it; warn may be nil (e.g. in tests) when that surfacing
// isn't needed.
func Validate(b Background, warn func(string)) (Background, error) {
	min := b[0]
	for _, v := range b {
		if v < min {
			min = v
		}
	}
	if min < MinValue {
		msg := fmt.Sprintf("background value below minimum (%.3g < %.3g), padding all entries", min, MinValue)
		log.Debug.Printf(msg)
		if warn != nil {
			warn(msg)
		}
		for i := range b {
			b[i] += MinValue
		}
	}
	var sum float64
	for _, v := range b {
		sum += v
	}
	if sum <= 0 {
		return Background{}, errors.Errorf("background values sum to %.3g, cannot normalize", sum)
	}
	if abs(sum-1.0) > 0.001 {
		msg := fmt.Sprintf("background values sum to %.3g, renormalizing", sum)
		log.Debug.Printf(msg)
		if warn != nil {
			warn(msg)
		}
	}
	for i := range b {
		b[i] /= sum
	}
	return b, nil
}

// FromSlice builds a Background from exactly 4 values, in (A, C, G, T)
// order, failing if fewer were supplied.
func FromSlice(vals []float64, warn func(string)) (Background, error) {
	if len(vals) < alphabet.NBase {
		return Background{}, errors.Errorf("too few background values found (need %d, got %d)", alphabet.NBase, len(vals))
	}
	var b Background
	copy(b[:], vals[:alphabet.NBase])
	return Validate(b, warn)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
