// Package stats computes the per-sequence diagnostics motifscan prints
// when no motif file is supplied (spec §6.4): length, GC%, and
// non-standard-base count, plus an optional content fingerprint used to
// confirm two runs scanned byte-identical input.
package stats

import (
	"hash"

	"blainsmith.com/go/seahash"
	"github.com/grailbio/bio/encoding/fasta"
)

// SequenceStats is one row of the per-sequence stats table.
type SequenceStats struct {
	Index          int // 1-based
	SourceLine     int
	Name           string
	Length         int
	GCPercent      float64 // NaN if the sequence has no A/C/G/T/U bytes
	NonStandardLen int
}

// Compute derives stats for one record, mirroring
// bjmt/minimotif's print_seq_stats/calc_gc/standard_base_count.
func Compute(index int, r *fasta.Record) SequenceStats {
	var counts [256]int
	for _, b := range r.Seq {
		counts[b]++
	}
	standard := counts['A'] + counts['a'] + counts['C'] + counts['c'] +
		counts['G'] + counts['g'] + counts['T'] + counts['t'] +
		counts['U'] + counts['u']
	gc := nan()
	if len(r.Seq) > 0 && standard > 0 {
		gc = float64(counts['G']+counts['g']+counts['C']+counts['c']) / float64(standard) * 100.0
	}
	return SequenceStats{
		Index:          index,
		SourceLine:     r.SourceLine,
		Name:           r.Name,
		Length:         len(r.Seq),
		GCPercent:      gc,
		NonStandardLen: len(r.Seq) - standard,
	}
}

func nan() float64 {
	var zero float64
	return zero / zero
}

// Fingerprint returns a content hash of a record's name and sequence
// bytes, letting -w confirm two runs scanned byte-identical input
// without diffing whole FASTA files. Grounded on
// cmd/bio-pamtool/checksum.go's hashField pattern.
func Fingerprint(r *fasta.Record) uint64 {
	h := newHasher()
	h.Write([]byte(r.Name))
	h.Write(r.Seq)
	return h.Sum64()
}

func newHasher() hash.Hash64 {
	return seahash.New()
}
