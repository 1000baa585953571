// Package alphabet defines the fixed 4-letter nucleotide alphabet used
// throughout motifscan, plus the ambiguity handling and IUPAC expansion
// rules the rest of the packages build on.
//
// There is no protein support, and none is planned: motifscan's scoring
// model assumes exactly 4 informative columns (A, C, G, T) plus a 5th
// sentinel column for everything else, the way asciiToSeq8Table and
// friends in biosimd map bytes through fixed 256-entry tables rather than
// branching in the hot path.
package alphabet

// NBase is the number of informative alphabet symbols (A, C, G, T).
const NBase = 4

// Ambiguous is the index used for any byte that isn't A/C/G/T/U
// (case-insensitive). Motif score tables reserve a 5th column for it.
const Ambiguous = 4

// NCol is the width of a per-position score row: 4 bases plus the
// ambiguity column.
const NCol = NBase + 1

// idxTable maps every possible byte value to {0,1,2,3,4}, following the
// same flat 256-entry lookup idiom as asciiToSeq8Table in biosimd: A/a->0,
// C/c->1, G/g->2, T/t/U/u->3, everything else->4 (Ambiguous).
var idxTable = [256]byte{
	// Default initialized to zero; filled in init() since Go array
	// literals can't cheaply express "fill with 4 except these".
}

func init() {
	for i := range idxTable {
		idxTable[i] = Ambiguous
	}
	idxTable['A'], idxTable['a'] = 0, 0
	idxTable['C'], idxTable['c'] = 1, 1
	idxTable['G'], idxTable['g'] = 2, 2
	idxTable['T'], idxTable['t'] = 3, 3
	idxTable['U'], idxTable['u'] = 3, 3
}

// Idx maps a raw sequence byte to its score-table column: 0..3 for
// A/C/G/T (U folds to T), case-insensitively, or Ambiguous for anything
// else. Idx is total: every byte value has a defined mapping.
func Idx(b byte) byte {
	return idxTable[b]
}

// IsStandard reports whether b is one of A/C/G/T/U, case-insensitively.
func IsStandard(b byte) bool {
	return idxTable[b] != Ambiguous
}

// complementIdx maps a base index to the index of its Watson-Crick
// complement: A<->T, C<->G.
var complementIdx = [NBase]byte{3, 2, 1, 0}

// ComplementIdx returns the complementary base index of i (i must be in
// [0, NBase)).
func ComplementIdx(i byte) byte {
	return complementIdx[i]
}

// iupacTable holds, for every IUPAC ambiguity code (plus the 4 standard
// bases), the fractional probability vector over (A, C, G, T). Values
// match bjmt/minimotif's consensus2probs table.
var iupacTable = map[byte][4]float64{
	'A': {1, 0, 0, 0},
	'C': {0, 1, 0, 0},
	'G': {0, 0, 1, 0},
	'T': {0, 0, 0, 1},
	'U': {0, 0, 0, 1},
	'R': {0.5, 0, 0.5, 0},
	'Y': {0, 0.5, 0, 0.5},
	'W': {0.5, 0, 0, 0.5},
	'S': {0, 0.5, 0.5, 0},
	'K': {0, 0, 0.5, 0.5},
	'M': {0.5, 0.5, 0, 0},
	'D': {1.0 / 3, 0, 1.0 / 3, 1.0 / 3},
	'V': {1.0 / 3, 1.0 / 3, 1.0 / 3, 0},
	'H': {1.0 / 3, 1.0 / 3, 0, 1.0 / 3},
	'B': {0, 1.0 / 3, 1.0 / 3, 1.0 / 3},
	'N': {0.25, 0.25, 0.25, 0.25},
}

// IUPACProbs returns the (A, C, G, T) probability vector for the
// upper-cased IUPAC letter c, and whether c is a recognized IUPAC code.
func IUPACProbs(c byte) (probs [4]float64, ok bool) {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	probs, ok = iupacTable[c]
	return
}
