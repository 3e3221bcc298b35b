// internal/hints/hints.go
//
// Staged hint reveal for a solved puzzle.
// Defines:
//   - Tier: ordered disclosure level (none → total → lengths → first letters → all).
//   - Transitions: RevealNext (one step, saturating), RevealAll, Reset.
//   - State: the four boolean flags derived from a tier.
//
// The tier only moves forward, except on an explicit Reset.
package hints

import (
	"fmt"
	"strings"
)

// Tier is the current disclosure level.
type Tier int

const (
	None Tier = iota
	TotalCount
	LengthCounts
	FirstLetters
	AllWords
)

var tierNames = [...]string{"none", "total", "lengths", "first_letters", "all"}

// String returns the transport name of t.
func (t Tier) String() string {
	if t < None || t > AllWords {
		return fmt.Sprintf("tier(%d)", int(t))
	}
	return tierNames[t]
}

// ParseTier maps a transport name back to a Tier.
func ParseTier(s string) (Tier, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range tierNames {
		if n == s {
			return Tier(i), nil
		}
	}
	return None, fmt.Errorf("hints: unknown tier %q", s)
}

// RevealNext advances one tier. AllWords is terminal.
func RevealNext(t Tier) Tier {
	if t >= AllWords {
		return AllWords
	}
	if t < None {
		return TotalCount
	}
	return t + 1
}

// RevealAll jumps to the terminal tier.
func RevealAll(Tier) Tier { return AllWords }

// Reset hides everything again.
func Reset(Tier) Tier { return None }

// State is the flag view of a tier.
type State struct {
	ShowTotalCount   bool `json:"showTotalCount"`
	ShowLengthCounts bool `json:"showLengthCounts"`
	ShowFirstLetters bool `json:"showFirstLetters"`
	ShowAllWords     bool `json:"showAllWords"`
}

// State derives the flags for t. A later flag implies every earlier one.
func (t Tier) State() State {
	return State{
		ShowTotalCount:   t >= TotalCount,
		ShowLengthCounts: t >= LengthCounts,
		ShowFirstLetters: t >= FirstLetters,
		ShowAllWords:     t >= AllWords,
	}
}
