// Package dedupe implements the bounded duplicate-name resolution shared
// by motif and sequence loading: bjmt/minimotif used the same
// dedup_char_array/char_arrays_are_equal pair for both motif names and
// sequence names, just parametrized by which fixed-size buffer it was
// mutating. This package is that shared logic, generalized to Go strings.
package dedupe

import (
	"fmt"

	"github.com/pkg/errors"
)

// MaxNameLen is the largest name motifscan will carry through loading,
// per spec: names are bounded identifiers.
const MaxNameLen = 255

// maxPrintedDupes caps how many duplicate names get individually listed
// in the abort error, matching bjmt/minimotif's "to_print = 5" cutoff.
const maxPrintedDupes = 5

// suffix formats the bounded disambiguator bjmt/minimotif appends to a
// duplicate name: __N{1-based index}_L{1-based source line}.
func suffix(index, line int) string {
	return fmt.Sprintf("__N%d_L%d", index, line)
}

// appendSuffix appends the dedup suffix to name if the result still fits
// within MaxNameLen bytes. It never reallocates past that bound — minimotif's
// design note is "fail fast on overflow rather than reallocating".
func appendSuffix(name string, index, line int) (string, bool) {
	s := suffix(index, line)
	if len(name)+len(s) > MaxNameLen {
		return "", false
	}
	return name + s, true
}

// Named is anything with a display name and the 1-based source line it
// was parsed from, the two fields bjmt/minimotif's dedup needs.
type Named interface {
	DedupName() string
	DedupLine() int
}

// Resolve finds names repeated in items. Any name longer than MaxNameLen
// is an error. If none repeat, it returns the names unchanged. If some
// repeat and allow is false, it returns an error
// listing (up to maxPrintedDupes of) the offending entries. If allow is
// true, it returns a same-length slice of resolved names — duplicates get
// the __N{index}_L{line} suffix appended, others are returned unchanged —
// or an error if a suffixed name would overflow MaxNameLen.
func Resolve(kind string, items []Named, allow bool) ([]string, error) {
	n := len(items)
	names := make([]string, n)
	for i, it := range items {
		names[i] = it.DedupName()
		if len(names[i]) > MaxNameLen {
			return nil, errors.Errorf("%s #%d name is too long (max=%d)", kind, i+1, MaxNameLen)
		}
	}
	if n < 2 {
		return names, nil
	}
	isDup := make([]bool, n)
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			if isDup[j] {
				continue
			}
			if names[i] == names[j] {
				isDup[i] = true
				isDup[j] = true
			}
		}
	}
	dupCount := 0
	for _, d := range isDup {
		if d {
			dupCount++
		}
	}
	if dupCount == 0 {
		return names, nil
	}
	if !allow {
		msg := fmt.Sprintf("encountered duplicate %s name (use -d to deduplicate)", kind)
		printed := 0
		for i, d := range isDup {
			if !d {
				continue
			}
			msg += fmt.Sprintf("\n    L%d #%d: %s", items[i].DedupLine(), i+1, names[i])
			printed++
			if printed == maxPrintedDupes {
				break
			}
		}
		if dupCount > maxPrintedDupes {
			msg += fmt.Sprintf("\n    ...\n    found %d total non-unique names", dupCount)
		}
		return nil, errors.New(msg)
	}
	resolved := make([]string, n)
	copy(resolved, names)
	for i, d := range isDup {
		if !d {
			continue
		}
		deduped, ok := appendSuffix(names[i], i+1, items[i].DedupLine())
		if !ok {
			return nil, errors.Errorf("failed to deduplicate %s #%d, name is too large", kind, i+1)
		}
		resolved[i] = deduped
	}
	return resolved, nil
}
