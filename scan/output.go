package scan

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Writer emits tab-separated hit lines to an underlying io.Writer,
// buffering writes the way the teacher's driver loops buffer sequence
// output before a final flush.
type Writer struct {
	w   *bufio.Writer
	err error
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteHeader writes one "##"-prefixed informational line.
func (hw *Writer) WriteHeader(line string) {
	if hw.err != nil {
		return
	}
	_, hw.err = fmt.Fprintf(hw.w, "##%s\n", line)
}

// Write emits one hit in the field order of spec §4.6.
func (hw *Writer) Write(h Hit) {
	if hw.err != nil {
		return
	}
	pct := "nan"
	if !isNaN(h.PctOfMax) {
		pct = fmt.Sprintf("%.1f", h.PctOfMax)
	}
	_, hw.err = fmt.Fprintf(hw.w, "%s\t%d\t%d\t%c\t%s\t%.9g\t%.3f\t%s\t%s\n",
		h.SeqName, h.Start, h.End, h.Strand(), h.MotifName, h.PValue, h.Score, pct, h.Match)
}

// Flush flushes the underlying buffer and returns the first write error
// encountered, if any.
func (hw *Writer) Flush() error {
	if hw.err != nil {
		return errors.Wrap(hw.err, "writing hit output")
	}
	if err := hw.w.Flush(); err != nil {
		return errors.Wrap(err, "flushing hit output")
	}
	return nil
}

func isNaN(f float64) bool { return f != f }
