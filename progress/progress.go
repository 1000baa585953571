// Package progress renders a single-line stderr progress bar, enabled
// by -g (spec §6.1). No progress-bar library appears anywhere in the
// retrieval pack, so this stays a small self-contained writer in the
// teacher's plain-fmt style, grounded on bjmt/minimotif's print_pb.
package progress

import (
	"fmt"
	"io"
	"strings"
)

const width = 40

// Bar renders fractional progress as a fixed-width bracketed bar,
// overwriting the previous line with a carriage return.
type Bar struct {
	w io.Writer
}

// New returns a Bar writing to w (normally os.Stderr).
func New(w io.Writer) *Bar {
	return &Bar{w: w}
}

// Set renders progress at fraction done in [0,1].
func (b *Bar) Set(done float64) {
	if done < 0 {
		done = 0
	}
	if done > 1 {
		done = 1
	}
	left := int(done * width)
	right := width - left
	fmt.Fprintf(b.w, "\r[%s%s] %3d%%", strings.Repeat("=", left), strings.Repeat(" ", right), int(done*100.0))
}

// Done terminates the bar with a trailing newline.
func (b *Bar) Done() {
	fmt.Fprintln(b.w)
}
