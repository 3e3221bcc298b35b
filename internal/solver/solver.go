// internal/solver/solver.go
//
// Solver for a seven-letter Spelling Bee puzzle.
// Responsibilities:
//   - Filter a corpus down to words that satisfy the puzzle rules.
//   - Score each surviving word (length points, 4-letter floor, pangram bonus).
//   - Return results ordered by length, then by locale-aware word order.
//
// Rules (checked in order, first failure rejects):
//  1. Word has at least MinLength letters.
//  2. Word contains the center letter.
//  3. Word uses no letter outside the puzzle's letter set.
//
// Notes:
//   - Solve is pure; an incomplete letter set yields no results.
//   - Comparison is case-insensitive; the reported word is the corpus entry.
package solver

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/robalobadob/spellingbee/internal/letters"
)

const (
	// MinLength is the shortest word the game accepts.
	MinLength = 4
	// PangramBonus is added to the score of a word using every letter.
	PangramBonus = 7
)

// Result is a single scored word.
type Result struct {
	Word      string `json:"word"`
	Length    int    `json:"length"`
	IsPangram bool   `json:"isPangram"`
	Points    int    `json:"points"`
}

// Solve returns every corpus word playable with set, scored and ordered.
func Solve(set letters.Set, corpus []string) []Result {
	if !set.Complete() {
		return []Result{}
	}

	distinct := set.Distinct()
	var allowed [26]bool
	for _, c := range distinct {
		allowed[c-'a'] = true
	}
	center := set.Center()[0] - 'A' + 'a'

	out := make([]Result, 0, 64)
	for _, w := range corpus {
		lw := strings.ToLower(w)
		// entries like U+212A lower to ASCII; Word and Length must agree
		if len(lw) != len(w) || len(lw) < MinLength {
			continue
		}
		if strings.IndexByte(lw, center) < 0 {
			continue
		}
		used, ok := letterMask(lw, &allowed)
		if !ok {
			continue
		}
		pangram := isPangram(used, distinct)
		out = append(out, Result{
			Word:      w,
			Length:    len(lw),
			IsPangram: pangram,
			Points:    Points(len(lw), pangram),
		})
	}

	sortResults(out)
	return out
}

// Points scores a word of the given length.
func Points(length int, pangram bool) int {
	p := length
	if length == MinLength {
		p = 1
	}
	if pangram {
		p += PangramBonus
	}
	return p
}

// letterMask returns the set of letters used by w as a bitmask, or false
// if w contains anything outside allowed.
func letterMask(w string, allowed *[26]bool) (uint32, bool) {
	var mask uint32
	for i := 0; i < len(w); i++ {
		c := w[i]
		if c < 'a' || c > 'z' || !allowed[c-'a'] {
			return 0, false
		}
		mask |= 1 << (c - 'a')
	}
	return mask, true
}

// isPangram requires both exactly letters.Size distinct letters in the word
// and every puzzle letter present.
func isPangram(used uint32, distinct []byte) bool {
	if popcount(used) != letters.Size {
		return false
	}
	for _, c := range distinct {
		if used&(1<<(c-'a')) == 0 {
			return false
		}
	}
	return true
}

func popcount(x uint32) int {
	n := 0
	for ; x != 0; x &= x - 1 {
		n++
	}
	return n
}

// sortResults orders by length ascending, then by English collation.
// Collators are not safe for concurrent use, so each call builds its own.
func sortResults(rs []Result) {
	col := collate.New(language.English)
	sort.SliceStable(rs, func(i, j int) bool {
		if rs[i].Length != rs[j].Length {
			return rs[i].Length < rs[j].Length
		}
		return col.CompareString(rs[i].Word, rs[j].Word) < 0
	})
}
