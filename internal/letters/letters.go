// internal/letters/letters.go
//
// Letter set for a single Spelling Bee puzzle.
// Responsibilities:
//   - Hold the seven slots (slot 0 = center, 1..6 = outer letters).
//   - Normalize raw input to a single uppercase A–Z letter or empty.
//   - Single-slot edits, bulk replace, and outer-only shuffle.
//
// Notes:
//   - Set is a value type; every mutation returns a new Set.
//   - The zero value is the cleared set.
package letters

import (
	"errors"
	"math/rand/v2"
	"strings"
)

const (
	// Size is the number of slots in a puzzle.
	Size = 7
	// CenterIndex is the slot holding the mandatory letter.
	CenterIndex = 0
)

// ErrIndex is returned for slot indexes outside 0..Size-1.
var ErrIndex = errors.New("letters: index out of range")

// Set holds one normalized letter (or "") per slot.
type Set [Size]string

// Normalize reduces arbitrary input to the last A–Z letter it contains,
// upper-cased. Input without letters normalizes to "".
func Normalize(in string) string {
	up := strings.ToUpper(in)
	for i := len(up) - 1; i >= 0; i-- {
		if c := up[i]; c >= 'A' && c <= 'Z' {
			return string(c)
		}
	}
	return ""
}

// FromSlice builds a Set from up to Size raw inputs, normalizing each one.
// Missing inputs leave their slot empty; extra inputs are ignored.
func FromSlice(in []string) Set {
	var s Set
	for i := 0; i < Size && i < len(in); i++ {
		s[i] = Normalize(in[i])
	}
	return s
}

// With writes the normalized input to slot index and returns the new set
// along with the value actually stored.
func (s Set) With(index int, in string) (Set, string, error) {
	if index < 0 || index >= Size {
		return s, "", ErrIndex
	}
	v := Normalize(in)
	s[index] = v
	return s, v, nil
}

// Shuffle randomly permutes the populated outer letters and pads the rest
// of the outer slots with empties. The center never moves.
// A nil r uses the global source.
func (s Set) Shuffle(r *rand.Rand) Set {
	outer := s.Outer()
	swap := func(i, j int) { outer[i], outer[j] = outer[j], outer[i] }
	if r != nil {
		r.Shuffle(len(outer), swap)
	} else {
		rand.Shuffle(len(outer), swap)
	}

	out := Set{CenterIndex: s[CenterIndex]}
	copy(out[1:], outer)
	return out
}

// Center returns the mandatory letter, or "" if unset.
func (s Set) Center() string { return s[CenterIndex] }

// Outer returns the populated outer letters in slot order.
func (s Set) Outer() []string {
	out := make([]string, 0, Size-1)
	for _, l := range s[1:] {
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

// Filled counts populated slots.
func (s Set) Filled() int {
	n := 0
	for _, l := range s {
		if l != "" {
			n++
		}
	}
	return n
}

// Complete reports whether every slot is populated.
func (s Set) Complete() bool { return s.Filled() == Size }

// Distinct returns the lowercase distinct letters of the populated slots,
// in slot order. Duplicate letters collapse to one entry.
func (s Set) Distinct() []byte {
	var seen [26]bool
	out := make([]byte, 0, Size)
	for _, l := range s {
		if l == "" {
			continue
		}
		c := l[0] - 'A' + 'a'
		if !seen[c-'a'] {
			seen[c-'a'] = true
			out = append(out, c)
		}
	}
	return out
}

// Slice returns the slots as a fresh slice (center first).
func (s Set) Slice() []string {
	out := make([]string, Size)
	copy(out, s[:])
	return out
}

// String renders the set as "C/OUTER" with "_" for empty slots, e.g. "A/RE_TSO".
func (s Set) String() string {
	var b strings.Builder
	for i, l := range s {
		if i == 1 {
			b.WriteByte('/')
		}
		if l == "" {
			l = "_"
		}
		b.WriteString(l)
	}
	return b.String()
}
