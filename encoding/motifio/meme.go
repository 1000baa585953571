package motifio

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/grailbio/bio/background"
	"github.com/grailbio/bio/motif"
	"github.com/pkg/errors"
)

// parseMEME implements spec §6.2's MEME grammar: ALPHABET=, strands:,
// "Background letter frequencies" (one line, consumed on the line that
// follows it), MOTIF headers, and "letter-probability matrix" followed
// by W rows of four probabilities, terminated by a blank/-/* line.
func parseMEME(data []byte, opts Options) (*ParseResult, error) {
	lines, err := readAllLines(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "reading MEME motif file")
	}

	var (
		motifs                               []*motif.Motif
		declaredBkg                          *background.Background
		alphDetected, strandDetected         bool
		bkgFreqLine                          int // 1-based line number of the header, 0 if absent
		curName                              string
		curLine                              int
		curRows                              [][4]float64
		liveMotif                            bool
		lpmLine                              int
		pos                                  int
	)

	flush := func() error {
		if curName == "" {
			return nil
		}
		// The background declaration, if any, always precedes every
		// MOTIF line (enforced in the loop below), so it is already resolved by
		// the time any motif is flushed.
		m, err := motif.FromPPM(curName, curLine, curRows, resolveBackground(declaredBkg, opts), opts.NSites, opts.Pseudocount, opts.Warn)
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
		switch {
		case strings.Contains(line, "Background letter frequencies"):
			if bkgFreqLine != 0 {
				return nil, errors.Errorf("detected multiple background definition lines in MEME file (L%d)", lineNum)
			}
			if len(motifs) > 0 || curName != "" {
				return nil, errors.Errorf("found background definition line after motifs (L%d)", lineNum)
			}
			bkgFreqLine = lineNum

		case bkgFreqLine != 0 && bkgFreqLine == lineNum-1:
			if opts.UserBackground == nil {
				bkg, err := parseMEMEBackground(line, lineNum, opts)
				if err != nil {
					return nil, err
				}
				declaredBkg = &bkg
			}

		case strings.Contains(line, "ALPHABET"):
			if alphDetected {
				return nil, errors.Errorf("detected multiple alphabet definition lines in MEME file (L%d)", lineNum)
			}
			if len(motifs) > 0 || curName != "" {
				return nil, errors.Errorf("found alphabet definition line after motifs (L%d)", lineNum)
			}
			if strings.Contains(line, "ALPHABET= ACDEFGHIKLMNPQRSTVWY") {
				return nil, errors.Errorf("detected protein alphabet (L%d)", lineNum)
			}
			alphDetected = true

		case strings.Contains(line, "strands:"):
			if strandDetected {
				return nil, errors.Errorf("detected multiple strand information lines in MEME file (L%d)", lineNum)
			}
			if len(motifs) > 0 || curName != "" {
				return nil, errors.Errorf("found strand information line after motifs (L%d)", lineNum)
			}
			strandDetected = true

		case strings.Contains(line, "MOTIF"):
			if err := flush(); err != nil {
				return nil, err
			}
			curName = parseMEMEName(line)
			curLine = lineNum
			pos = 0
			liveMotif = false

		case strings.Contains(line, "letter-probability matrix"):
			if pos != 0 {
				return nil, errors.Errorf("possible malformed MEME motif (L%d)", lineNum)
			}
			lpmLine = lineNum
			liveMotif = true

		case liveMotif:
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.ContainsRune(line, '-') || strings.ContainsRune(line, '*') {
				liveMotif = false
				continue
			}
			if lineNum != lpmLine+pos+1 {
				liveMotif = false
				continue
			}
			if pos >= motif.MaxWidth {
				return nil, errors.Errorf("motif %q is too large (max=%d)", curName, motif.MaxWidth)
			}
			probs, err := parseProbRow(line, curName, 4)
			if err != nil {
				return nil, err
			}
			curRows = append(curRows, [4]float64{probs[0], probs[1], probs[2], probs[3]})
			pos++
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(motifs) == 0 {
		return nil, errNoMotifsFound("MEME")
	}
	return &ParseResult{Motifs: motifs, Background: declaredBkg}, nil
}

func parseMEMEBackground(line string, lineNum int, opts Options) (background.Background, error) {
	fields := strings.Fields(line)
	var bkg background.Background
	labels := []string{"A", "C", "G", "T"}
	if len(fields) < 8 {
		return bkg, errors.Errorf("malformed MEME background line (L%d)", lineNum)
	}
	for i, label := range labels {
		tokIdx := i * 2
		if fields[tokIdx] != label && !(label == "T" && fields[tokIdx] == "U") {
			return bkg, errors.Errorf("expected %q at position %d of MEME background line (L%d)", label, tokIdx, lineNum)
		}
		v, err := strconv.ParseFloat(fields[tokIdx+1], 64)
		if err != nil {
			return bkg, errors.Wrapf(err, "malformed MEME background value (L%d)", lineNum)
		}
		bkg[i] = v
	}
	validated, err := background.Validate(bkg, func(msg string) { warn(opts, fmt.Sprintf("MEME background (L%d): %s", lineNum, msg)) })
	if err != nil {
		return bkg, errors.Wrapf(err, "MEME background (L%d)", lineNum)
	}
	return validated, nil
}

// parseMEMEName extracts the first whitespace-separated token after
// "MOTIF".
func parseMEMEName(line string) string {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}
