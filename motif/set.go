package motif

import (
	"github.com/grailbio/bio/background"
	"github.com/grailbio/bio/dedupe"
)

// Set is an ordered collection of motifs with duplicate names resolved.
type Set struct {
	Motifs []*Motif
}

// NewSet resolves duplicate names across motifs (appending the bounded
// __N{index}_L{line} suffix when allowDedup is true, failing otherwise)
// and returns the resulting Set, preserving input order.
func NewSet(motifs []*Motif, allowDedup bool) (*Set, error) {
	named := make([]dedupe.Named, len(motifs))
	for i, m := range motifs {
		named[i] = m
	}
	names, err := dedupe.Resolve("motif", named, allowDedup)
	if err != nil {
		return nil, err
	}
	for i, m := range motifs {
		m.Name = names[i]
	}
	return &Set{Motifs: motifs}, nil
}

// PrepareAll prepares every motif in the set against the given background
// for the given p-value threshold, stopping at the first error. warn is
// forwarded to each Motif.Prepare call; it may be nil.
func (s *Set) PrepareAll(bkg background.Background, alpha float64, warn func(string)) error {
	for _, m := range s.Motifs {
		if err := m.Prepare(bkg, alpha, warn); err != nil {
			return err
		}
	}
	return nil
}
