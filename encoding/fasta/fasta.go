// Package fasta reads FASTA-formatted nucleotide sequences for
// motifscan's scanner. Briefly, FASTA files consist of a number of
// named sequences that may be interrupted by newlines. For example:
//
// >chr7
// ACGTAC
// GAGGAC
// GCG
// >chr8
// ACGT
//
// Note: a sequence's default name is its entire header line, minus the
// leading '>'. Truncation at the first embedded whitespace only
// happens when requested via Record.TrimName (-r; spec §6.1); absent
// that flag, '>chr1 A viral sequence' keeps the full 'chr1 A viral
// sequence' name.
//
// Unlike a random-access FASTA reader, ReadAll preserves byte case (the
// scanner treats ambiguous bytes specially; see alphabet.Idx) and
// returns records in file order, since hit output is ordered by
// sequence index, not by name (spec §4.6).
package fasta

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

const (
	mib            = 1024 * 1024
	bufferInitSize = 300 * mib
)

// Record is one named sequence as loaded from a FASTA file.
type Record struct {
	Name string
	// Seq holds the raw, case-preserved sequence bytes. Space
	// characters found in the source file are stripped; any other
	// non-ACGTUacgtu byte is kept and scored as ambiguous at scan time.
	Seq []byte
	// SourceLine is the 1-based line number of this record's '>'
	// header, used for duplicate-name error messages and suffixing.
	SourceLine int
}

// DedupName and DedupLine implement dedupe.Named.
func (r *Record) DedupName() string { return r.Name }
func (r *Record) DedupLine() int    { return r.SourceLine }

// TrimName truncates r.Name at its first embedded whitespace,
// implementing -r (spec §6.1).
func (r *Record) TrimName() {
	if i := strings.IndexAny(r.Name, " \t"); i >= 0 {
		r.Name = r.Name[:i]
	}
}

// ReadAll reads every record from r in file order. The whole file is
// held in memory at once, matching how motifscan loads sequences: they
// must be immutable for the duration of a scan (spec §4.6).
func ReadAll(r io.Reader) ([]*Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, bufferInitSize)

	var records []*Record
	var cur *Record
	var seq strings.Builder
	lineNum := 0

	flush := func() {
		if cur == nil {
			return
		}
		cur.Seq = []byte(seq.String())
		records = append(records, cur)
		seq.Reset()
	}

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			flush()
			cur = &Record{Name: line[1:], SourceLine: lineNum}
			continue
		}
		if cur == nil {
			return nil, errors.Errorf("malformed FASTA file: sequence data before first '>' header (L%d)", lineNum)
		}
		if strings.ContainsRune(line, ' ') {
			line = strings.ReplaceAll(line, " ", "")
		}
		seq.WriteString(line)
	}
	if scanner.Err() != nil {
		return nil, errors.Wrap(scanner.Err(), "couldn't read FASTA data")
	}
	flush()
	return records, nil
}
