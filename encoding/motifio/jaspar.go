package motifio

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/grailbio/bio/motif"
	"github.com/pkg/errors"
)

// parseJASPAR implements spec §6.2's JASPAR grammar: a ">name" header
// followed by exactly four rows labeled A/C/G/T(or U), each holding
// bracketed integer counts.
func parseJASPAR(data []byte, opts Options) (*ParseResult, error) {
	lines, err := readAllLines(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "reading JASPAR motif file")
	}

	var motifs []*motif.Motif
	var curName string
	var curLine int
	var rows [4][]int
	var haveRow [4]bool
	var width int

	flush := func() error {
		if curName == "" {
			return nil
		}
		for i, ok := range haveRow {
			if !ok {
				return errors.Errorf("motif %q is missing row %q", curName, string("ACGT"[i]))
			}
		}
		pcmRows := make([][4]int, width)
		for i := 0; i < width; i++ {
			pcmRows[i] = [4]int{rows[0][i], rows[1][i], rows[2][i], rows[3][i]}
		}
		bkg := resolveBackground(nil, opts)
		m, err := motif.FromPCM(curName, curLine, pcmRows, bkg, opts.NSites, opts.Pseudocount, opts.Warn)
		if err != nil {
			return err
		}
		motifs = append(motifs, m)
		curName = ""
		rows = [4][]int{}
		haveRow = [4]bool{}
		width = 0
		return nil
	}

	for i, line := range lines {
		lineNum := i + 1
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return nil, err
			}
			curName = strings.TrimRight(line[1:], "\r\n")
			curLine = lineNum
			continue
		}
		if curName == "" {
			continue
		}
		rowIdx, counts, err := parseJASPARRow(line, curName)
		if err != nil {
			return nil, err
		}
		if haveRow[rowIdx] {
			return nil, errors.Errorf("motif %q has a duplicate %q row", curName, string("ACGT"[rowIdx]))
		}
		if width != 0 && len(counts) != width {
			return nil, errors.Errorf("motif %q has rows with differing numbers of counts", curName)
		}
		width = len(counts)
		rows[rowIdx] = counts
		haveRow[rowIdx] = true
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(motifs) == 0 {
		return nil, errNoMotifsFound("JASPAR")
	}
	return &ParseResult{Motifs: motifs}, nil
}

// parseJASPARRow parses one "A  [ 3 1 0 5 ]"-shaped row, returning the
// 0..3 base index (A,C,G,T/U) and the bracketed integer counts.
func parseJASPARRow(line, name string) (int, []int, error) {
	rowIdx := -1
	for _, c := range line {
		switch c {
		case 'a', 'A':
			rowIdx = 0
		case 'c', 'C':
			rowIdx = 1
		case 'g', 'G':
			rowIdx = 2
		case 'u', 'U', 't', 'T':
			rowIdx = 3
		}
		if rowIdx != -1 {
			break
		}
	}
	if rowIdx == -1 {
		return 0, nil, errors.Errorf("couldn't find ACGTU in motif %q row names", name)
	}
	left := strings.IndexByte(line, '[')
	right := strings.IndexByte(line, ']')
	if left == -1 || right == -1 || right < left {
		return 0, nil, errors.Errorf("couldn't find '[]' in motif %q row", name)
	}
	fields := strings.Fields(line[left+1 : right])
	if len(fields) == 0 {
		return 0, nil, errors.Errorf("motif %q has an empty row", name)
	}
	counts := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return 0, nil, errors.Wrapf(err, "motif %q: malformed count %q", name, f)
		}
		counts[i] = v
	}
	return rowIdx, counts, nil
}
