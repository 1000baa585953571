// Command motifscan scans FASTA sequences for PWM motif matches.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/bio/background"
	"github.com/grailbio/bio/config"
	"github.com/grailbio/bio/dedupe"
	"github.com/grailbio/bio/encoding/fasta"
	"github.com/grailbio/bio/encoding/motifio"
	"github.com/grailbio/bio/motif"
	"github.com/grailbio/bio/progress"
	"github.com/grailbio/bio/scan"
	"github.com/grailbio/bio/stats"
	"github.com/klauspost/compress/gzip"
)

func main() {
	shutdown := grail.Init()
	defer shutdown()

	var cfg config.Config
	config.Register(flag.CommandLine, &cfg)
	flag.Parse()

	if err := run(vcontext.Background(), &cfg, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "motifscan: %s\n", err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, progressOut io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	warn := func(msg string) {
		if cfg.Verbose || cfg.VeryVerbose {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", msg)
		}
	}

	var userBkg *background.Background
	if cfg.BackgroundCSV != "" {
		b, err := config.ParseBackground(cfg.BackgroundCSV, warn)
		if err != nil {
			return errors.E(err, "parsing -b")
		}
		userBkg = &b
	}

	out, closeOut, err := openOutput(ctx, cfg.OutputPath)
	if err != nil {
		return err
	}
	defer closeOut()

	haveMotifs := cfg.MotifsPath != "" || cfg.Consensus != ""

	// No motifs supplied: per-sequence stats fallback (spec §6.4).
	if !haveMotifs {
		seqs, err := loadSequences(ctx, cfg)
		if err != nil {
			return err
		}
		return statsOnly(out, seqs, cfg.VeryVerbose)
	}

	motifs, resolvedBkg, err := loadMotifs(ctx, cfg, userBkg, warn)
	if err != nil {
		return err
	}

	if err := motifs.PrepareAll(resolvedBkg, cfg.PValue, warn); err != nil {
		return errors.E(err, "preparing motifs")
	}

	// No sequences supplied: pretty-print motifs fallback (spec §6.4).
	if cfg.SeqsPath == "" {
		for i, m := range motifs.Motifs {
			if err := m.WriteSummary(out, i+1); err != nil {
				return errors.E(err, "printing motif summary")
			}
		}
		return nil
	}

	writer := scan.NewWriter(out)
	writer.WriteHeader(fmt.Sprintf("motifscan, %s motif(s), background=%.3g,%.3g,%.3g,%.3g",
		stats.Thousands(len(motifs.Motifs)), resolvedBkg[0], resolvedBkg[1], resolvedBkg[2], resolvedBkg[3]))

	seqs, err := loadSequences(ctx, cfg)
	if err != nil {
		return err
	}

	scanner := scan.New(scan.Options{ForwardOnly: cfg.ForwardOnly})
	var bar *progress.Bar
	if cfg.Progress {
		bar = progress.New(progressOut)
	}
	for i, m := range motifs.Motifs {
		scanner.Scan(m, seqs, writer.Write)
		m.Release()
		if bar != nil {
			bar.Set(float64(i+1) / float64(len(motifs.Motifs)))
		}
	}
	if bar != nil {
		bar.Done()
	}
	log.Printf("scanned %s sequence(s) against %s motif(s)", stats.Thousands(len(seqs)), stats.Thousands(len(motifs.Motifs)))
	return writer.Flush()
}

func loadMotifs(ctx context.Context, cfg *config.Config, userBkg *background.Background, warn func(string)) (*motif.Set, background.Background, error) {
	if cfg.Consensus != "" {
		m, err := motif.FromConsensus(cfg.Consensus)
		if err != nil {
			return nil, background.Background{}, errors.E(err, "parsing -1 consensus")
		}
		set, err := motif.NewSet([]*motif.Motif{m}, cfg.Dedup)
		if err != nil {
			return nil, background.Background{}, err
		}
		bkg := background.Uniform
		if userBkg != nil {
			bkg = *userBkg
		}
		return set, bkg, nil
	}

	data, err := readAll(ctx, cfg.MotifsPath)
	if err != nil {
		return nil, background.Background{}, errors.E(err, "reading motifs file")
	}
	res, err := motifio.Parse(data, motifio.Options{
		NSites:         cfg.NSites,
		Pseudocount:    cfg.Pseudocount,
		UserBackground: userBkg,
		Warn:           warn,
	})
	if err != nil {
		return nil, background.Background{}, errors.E(err, "parsing motifs file")
	}
	set, err := motif.NewSet(res.Motifs, cfg.Dedup)
	if err != nil {
		return nil, background.Background{}, err
	}
	bkg := background.Uniform
	switch {
	case userBkg != nil:
		bkg = *userBkg
	case res.Background != nil:
		bkg = *res.Background
	}
	return set, bkg, nil
}

func loadSequences(ctx context.Context, cfg *config.Config) ([]*fasta.Record, error) {
	var r io.Reader
	if cfg.SeqsPath == "-" {
		r = os.Stdin
	} else {
		f, err := file.Open(ctx, cfg.SeqsPath)
		if err != nil {
			return nil, errors.E(err, "opening sequences file")
		}
		defer f.Close(ctx)
		r, err = maybeGunzip(cfg.SeqsPath, f.Reader(ctx))
		if err != nil {
			return nil, errors.E(err, "opening gzip sequences file")
		}
	}
	records, err := fasta.ReadAll(r)
	if err != nil {
		return nil, errors.E(err, "reading sequences file")
	}
	if cfg.TrimNames {
		for _, rec := range records {
			rec.TrimName()
		}
	}
	named := make([]dedupe.Named, len(records))
	for i, rec := range records {
		named[i] = rec
	}
	resolved, err := dedupe.Resolve("sequence", named, cfg.Dedup)
	if err != nil {
		return nil, err
	}
	for i, rec := range records {
		rec.Name = resolved[i]
	}
	return records, nil
}

func openOutput(ctx context.Context, path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := file.Create(ctx, path)
	if err != nil {
		return nil, nil, errors.E(err, "creating output file")
	}
	return f.Writer(ctx), func() { _ = f.Close(ctx) }, nil
}

// statsOnly is invoked when no motif source is supplied at all; it
// mirrors bjmt/minimotif's print_seq_stats fallback (spec §6.4). Under
// -w, an extra content-fingerprint column is appended so a user can
// confirm two runs scanned byte-identical input.
func statsOnly(out io.Writer, seqs []*fasta.Record, fingerprint bool) error {
	for i, rec := range seqs {
		st := stats.Compute(i+1, rec)
		gc := "nan"
		if st.Length > 0 {
			gc = fmt.Sprintf("%.2f", st.GCPercent)
		}
		line := fmt.Sprintf("%d\t%d\t%s\t%d\t%s\t%d",
			st.Index, st.SourceLine, st.Name, st.Length, gc, st.NonStandardLen)
		if fingerprint {
			line += fmt.Sprintf("\t%016x", stats.Fingerprint(rec))
		}
		if _, err := fmt.Fprintf(out, "%s\n", line); err != nil {
			return err
		}
	}
	return nil
}

func readAll(ctx context.Context, path string) ([]byte, error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer f.Close(ctx)
	r, err := maybeGunzip(path, f.Reader(ctx))
	if err != nil {
		return nil, errors.E(err, "opening gzip motifs file")
	}
	return ioutil.ReadAll(r)
}

// maybeGunzip wraps r in a gzip.Reader when path's extension indicates
// a gzip-compressed file (spec AMBIENT STACK: gzip auto-detection on
// both motif and sequence input), otherwise it returns r unchanged.
func maybeGunzip(path string, r io.Reader) (io.Reader, error) {
	if fileio.DetermineType(path) != fileio.Gzip {
		return r, nil
	}
	return gzip.NewReader(r)
}
