// Package config defines motifscan's command-line surface (spec §6.1)
// and the flags -> Config mapping, in the flat (non-subcommand) flag
// style of cmd/bio-fusion/main.go and cmd/bio-bam-gindex/main.go.
package config

import (
	"flag"
	"strconv"
	"strings"

	"github.com/grailbio/bio/background"
	"github.com/pkg/errors"
)

// Config holds every parsed CLI option.
type Config struct {
	MotifsPath    string
	Consensus     string
	SeqsPath      string
	OutputPath    string
	BackgroundCSV string
	ForwardOnly   bool
	PValue        float64
	Pseudocount   int
	NSites        int
	Dedup         bool
	TrimNames     bool
	Progress      bool
	Verbose       bool
	VeryVerbose   bool
}

// Register binds Config's fields to flag.FlagSet fs, matching the
// flat flag.StringVar/BoolVar/Float64Var/IntVar style the teacher uses
// in its non-subcommand command mains.
func Register(fs *flag.FlagSet, c *Config) {
	fs.StringVar(&c.MotifsPath, "m", "", "Motifs file (MEME/JASPAR/HOMER; auto-detected).")
	fs.StringVar(&c.Consensus, "1", "", "Single IUPAC consensus motif, as an alternative to -m.")
	fs.StringVar(&c.SeqsPath, "s", "", "FASTA sequences file, or - for standard input.")
	fs.StringVar(&c.OutputPath, "o", "", "Output file (default stdout).")
	fs.StringVar(&c.BackgroundCSV, "b", "", `User background "a,c,g,t"; overrides any file-declared background.`)
	fs.BoolVar(&c.ForwardOnly, "f", false, "Scan the forward strand only.")
	fs.Float64Var(&c.PValue, "t", 1e-5, "p-value threshold.")
	fs.IntVar(&c.Pseudocount, "p", 1, "Pseudocount (positive integer).")
	fs.IntVar(&c.NSites, "n", 1000, "Nominal site count for smoothing.")
	fs.BoolVar(&c.Dedup, "d", false, "Deduplicate duplicate motif/sequence names instead of aborting.")
	fs.BoolVar(&c.TrimNames, "r", false, "Trim sequence names at first whitespace.")
	fs.BoolVar(&c.Progress, "g", false, "Show a progress bar on stderr.")
	fs.BoolVar(&c.Verbose, "v", false, "Verbose diagnostics.")
	fs.BoolVar(&c.VeryVerbose, "w", false, "Very verbose diagnostics.")
}

// Validate checks option combinations Register can't express on its own.
// Per spec §6.4, -m/-1 and -s are each individually optional (their
// absence selects the motif-dump or sequence-stats fallback mode
// respectively), but at least one of the two must be given.
func (c *Config) Validate() error {
	if c.MotifsPath != "" && c.Consensus != "" {
		return errors.New("-m and -1 are mutually exclusive")
	}
	if c.MotifsPath == "" && c.Consensus == "" && c.SeqsPath == "" {
		return errors.New("at least one of -m, -1, or -s is required")
	}
	if c.Pseudocount <= 0 {
		return errors.New("-p must be a positive integer")
	}
	if c.NSites <= 0 {
		return errors.New("-n must be a positive integer")
	}
	return nil
}

// ParseBackground parses a "-b" value of the form "a,c,g,t" into a
// background.Background, validating and renormalizing per spec §4.3.
// warn, when non-nil, receives any renormalization warning so the
// caller can gate it behind -v/-w (spec §7).
func ParseBackground(csv string, warn func(string)) (background.Background, error) {
	var bkg background.Background
	fields := strings.Split(csv, ",")
	if len(fields) < 4 {
		return bkg, errors.Errorf("background requires 4 values, got %d", len(fields))
	}
	vals := make([]float64, 4)
	for i := 0; i < 4; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(fields[i]), 64)
		if err != nil {
			return bkg, errors.Wrapf(err, "malformed background value %q", fields[i])
		}
		vals[i] = v
	}
	return background.FromSlice(vals, warn)
}
