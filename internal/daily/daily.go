// internal/daily/daily.go
//
// Deterministic "puzzle of the day" derivation.
// Responsibilities:
//   - Date keys (YYYY-MM-DD, UTC).
//   - HMAC(salt, date) based index selection.
//   - Building a seven-letter puzzle from a corpus pangram for a given date.
//
// The same (date, salt, corpus) always yields the same puzzle.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/robalobadob/spellingbee/internal/letters"
)

// ErrNoCandidates is returned when the corpus contains no pangram to build
// a puzzle around.
var ErrNoCandidates = errors.New("daily: corpus has no seven-letter pangram")

// Puzzle is one day's letter set.
type Puzzle struct {
	Date   string   `json:"date"`
	Center string   `json:"centerLetter"`
	Outer  []string `json:"outerLetters"`
}

// Letters returns the seven slots, center first.
func (p Puzzle) Letters() []string {
	return append([]string{p.Center}, p.Outer...)
}

// FetchError carries a user-facing hint alongside the cause, the way the
// puzzle endpoint reports {error, hint}.
type FetchError struct {
	Err  error
	Hint string
}

func (e *FetchError) Error() string { return e.Err.Error() }
func (e *FetchError) Unwrap() error { return e.Err }

// HintOf extracts the hint from err, if any.
func HintOf(err error) string {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Hint
	}
	return ""
}

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Index returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func Index(date time.Time, salt string, n int) int {
	return indexFor(DateKey(date), salt, n)
}

func indexFor(key, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(key))
	sum := h.Sum(nil)
	// take first 8 bytes to uint64 for modulus distribution
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// Candidates returns the corpus words with exactly seven distinct letters,
// sorted.
func Candidates(corpus []string) []string {
	var out []string
	for _, w := range corpus {
		if len(distinctLetters(w)) == letters.Size {
			out = append(out, w)
		}
	}
	sort.Strings(out)
	return out
}

// Generate builds the puzzle for date. The pangram is picked by Index over
// the candidates; the center is picked by a second index over its letters.
func Generate(date time.Time, salt string, corpus []string) (Puzzle, error) {
	cands := Candidates(corpus)
	if len(cands) == 0 {
		return Puzzle{}, &FetchError{
			Err:  ErrNoCandidates,
			Hint: "Load a larger word list or enter the letters manually.",
		}
	}
	key := DateKey(date)
	word := cands[indexFor(key, salt, len(cands))]
	ls := distinctLetters(word)
	c := indexFor(key+"/center", salt, len(ls))

	p := Puzzle{Date: key, Center: strings.ToUpper(string(ls[c]))}
	for i, l := range ls {
		if i != c {
			p.Outer = append(p.Outer, strings.ToUpper(string(l)))
		}
	}
	return p, nil
}

// distinctLetters returns the sorted distinct a–z letters of w, or nil if w
// contains anything else.
func distinctLetters(w string) []byte {
	var seen [26]bool
	var out []byte
	for i := 0; i < len(w); i++ {
		c := w[i]
		if c < 'a' || c > 'z' {
			return nil
		}
		if !seen[c-'a'] {
			seen[c-'a'] = true
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
