// Package motifio parses motif definitions in MEME, JASPAR, and HOMER
// text formats, auto-detecting which one a file uses the way
// bjmt/minimotif's detect_motif_fmt does: scan non-blank lines until a
// format fingerprint appears, then rewind.
package motifio

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/bio/background"
	"github.com/grailbio/bio/motif"
	"github.com/pkg/errors"
)

// Format identifies a motif file's textual layout.
type Format int

const (
	Unknown Format = iota
	MEME
	JASPAR
	HOMER
)

func (f Format) String() string {
	switch f {
	case MEME:
		return "MEME"
	case JASPAR:
		return "JASPAR"
	case HOMER:
		return "HOMER"
	default:
		return "unknown"
	}
}

// Detect sniffs fmt from the leading lines of data, per spec §6.2: a
// "MEME version " line means MEME; otherwise the first '>' header's
// next non-empty line decides: one starting with '0' or '1' means
// HOMER, one starting with 'A' means JASPAR, and anything else means
// Unknown.
func Detect(data []byte) Format {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	jasparOrHomer := false
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.Contains(line, "MEME version ") {
			return MEME
		}
		if jasparOrHomer {
			switch {
			case strings.HasPrefix(line, "0") || strings.HasPrefix(line, "1"):
				return HOMER
			case strings.HasPrefix(line, "A"):
				return JASPAR
			}
			return Unknown
		} else if strings.HasPrefix(line, ">") {
			jasparOrHomer = true
		}
	}
	return Unknown
}

// ParseResult holds the motifs found in a file plus any background the
// file itself declared (MEME only).
type ParseResult struct {
	Motifs     []*motif.Motif
	Background *background.Background
}

// Options controls motif construction parameters shared by every parser.
type Options struct {
	NSites      int
	Pseudocount int
	// UserBackground, when non-nil, takes precedence over any
	// background declared by the motif file (spec §3, source
	// precedence: explicit user override > MEME file > uniform).
	UserBackground *background.Background
	Warn           func(string)
}

// Parse reads every motif from data, auto-detecting its format.
func Parse(data []byte, opts Options) (*ParseResult, error) {
	switch fmt := Detect(data); fmt {
	case MEME:
		return parseMEME(data, opts)
	case JASPAR:
		return parseJASPAR(data, opts)
	case HOMER:
		return parseHOMER(data, opts)
	default:
		return nil, errors.New("failed to detect any motifs: unrecognized motif file format")
	}
}

// splitFields splits a row of whitespace-separated tokens, matching
// get_line_probs's tolerance for repeated/leading/trailing whitespace.
func splitFields(line string) []string {
	return strings.Fields(line)
}

func parseProbRow(line, name string, ncols int) ([]float64, error) {
	fields := splitFields(line)
	if len(fields) == 0 {
		return nil, errors.Errorf("motif %q has an empty row", name)
	}
	if len(fields) > ncols {
		return nil, errors.Errorf("motif %q has too many columns (need %d)", name, ncols)
	}
	if len(fields) < ncols {
		return nil, errors.Errorf("motif %q has too few columns (need %d)", name, ncols)
	}
	probs := make([]float64, ncols)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "motif %q: malformed probability %q", name, f)
		}
		probs[i] = v
	}
	return probs, nil
}

func resolveBackground(declared *background.Background, opts Options) background.Background {
	if opts.UserBackground != nil {
		return *opts.UserBackground
	}
	if declared != nil {
		return *declared
	}
	return background.Uniform
}

func warn(opts Options, msg string) {
	if opts.Warn != nil {
		opts.Warn(msg)
	}
}

var errNoMotifsFound = func(fmtName string) error {
	return errors.Errorf("failed to detect any motifs in %s file", fmtName)
}

func readAllLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, 1<<20)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
