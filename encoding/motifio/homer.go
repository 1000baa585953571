package motifio

import (
	"bytes"
	"strings"

	"github.com/grailbio/bio/motif"
	"github.com/pkg/errors"
)

// parseHOMER implements spec §6.2's HOMER grammar: a
// ">consensus\tname\tlogodds..." header followed by W rows of four
// whitespace-separated probabilities.
func parseHOMER(data []byte, opts Options) (*ParseResult, error) {
	lines, err := readAllLines(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "reading HOMER motif file")
	}

	var motifs []*motif.Motif
	var curName string
	var curLine int
	var curRows [][4]float64

	flush := func() error {
		if curName == "" {
			return nil
		}
		bkg := resolveBackground(nil, opts)
		m, err := motif.FromPPM(curName, curLine, curRows, bkg, opts.NSites, opts.Pseudocount, opts.Warn)
		if err != nil {
			return err
		}
		motifs = append(motifs, m)
		curName = ""
		curRows = nil
		return nil
	}

	for i, line := range lines {
		lineNum := i + 1
		if len(line) > 0 && line[0] == '>' {
			if err := flush(); err != nil {
				return nil, err
			}
			curName = parseHOMERName(line)
			curLine = lineNum
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if curName == "" {
			continue
		}
		if len(curRows) >= motif.MaxWidth {
			return nil, errors.Errorf("motif %q is too large (max=%d)", curName, motif.MaxWidth)
		}
		probs, err := parseProbRow(line, curName, 4)
		if err != nil {
			return nil, err
		}
		curRows = append(curRows, [4]float64{probs[0], probs[1], probs[2], probs[3]})
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(motifs) == 0 {
		return nil, errNoMotifsFound("HOMER")
	}
	return &ParseResult{Motifs: motifs}, nil
}

// parseHOMERName extracts the second tab-separated field of a HOMER
// header line: ">consensus\tname\tlogodds...".
func parseHOMERName(line string) string {
	fields := strings.Split(strings.TrimPrefix(line, ">"), "\t")
	if len(fields) < 2 {
		return strings.TrimSpace(strings.TrimPrefix(line, ">"))
	}
	return fields[1]
}
