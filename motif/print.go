package motif

import (
	"fmt"
	"io"
)

// WriteSummary pretty-prints m the way motifscan shows motifs when no
// sequence file is supplied (spec §6.4): the PWM, its max score and
// threshold, and representative p-values at S_min, S_min/2, 0, S_max/2,
// and S_max.
func (m *Motif) WriteSummary(w io.Writer, index int) error {
	if _, err := fmt.Fprintf(w, "Motif: %s (N%d L%d)\n", m.Name, index, m.SourceLine); err != nil {
		return err
	}
	if m.Unreachable {
		if _, err := fmt.Fprintf(w, "MaxScore=%.2f\tThreshold=[exceeds max]\n", float64(m.SMax)/Multiplier); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(w, "MaxScore=%.2f\tThreshold=%.2f\n", float64(m.SMax)/Multiplier, float64(m.Threshold)/Multiplier); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Motif PWM:\n\tA\tC\tG\tT\n"); err != nil {
		return err
	}
	for i, row := range m.scores {
		if _, err := fmt.Fprintf(w, "%d:\t%.2f\t%.2f\t%.2f\t%.2f\n", i+1,
			float64(row[0])/Multiplier, float64(row[1])/Multiplier,
			float64(row[2])/Multiplier, float64(row[3])/Multiplier); err != nil {
			return err
		}
	}
	if m.cdf == nil {
		// CDF already released (e.g. an unreachable motif): the
		// representative p-value rows can't be computed anymore.
		return nil
	}
	points := []int32{m.SMin, m.SMin / 2, 0, m.SMax / 2, m.SMax}
	for _, score := range points {
		if _, err := fmt.Fprintf(w, "Score=%.2f\t-->     p=%.2g\n", float64(score)/Multiplier, m.scoreToPValue(score)); err != nil {
			return err
		}
	}
	return nil
}
