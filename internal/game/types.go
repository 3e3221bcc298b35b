// internal/game/types.go
//
// Core type definitions for a Spelling Bee puzzle session.
// Defines:
//   - Game: the letter set and hint tier of one session.
//   - CorpusProvider / PuzzleProvider: the collaborators the engine consumes.
//   - View: what a client may observe about a session.

package game

import (
	"context"
	"time"

	"github.com/robalobadob/spellingbee/internal/daily"
	"github.com/robalobadob/spellingbee/internal/hints"
	"github.com/robalobadob/spellingbee/internal/letters"
	"github.com/robalobadob/spellingbee/internal/words"
)

// Game holds the state of a single puzzle session.
type Game struct {
	ID         string      // Unique session identifier (random hex string).
	Letters    letters.Set // Slot 0 is the center letter.
	Tier       hints.Tier  // Current hint disclosure level.
	PuzzleDate string      // Date of the daily puzzle last loaded, if any.
	UpdatedAt  time.Time   // Last mutation.
}

// CorpusProvider supplies the word list the solver runs against.
type CorpusProvider interface {
	Corpus() words.Corpus
	Refresh(ctx context.Context) (int, error)
}

// PuzzleProvider supplies today's letters.
type PuzzleProvider interface {
	FetchToday(ctx context.Context) (daily.Puzzle, error)
}

// View is the client-facing snapshot of a session. Results are gated by
// the hint tier; nothing about the solution leaks below the current tier.
type View struct {
	GameID     string     `json:"gameId"`
	Letters    []string   `json:"letters"`
	Center     string     `json:"centerLetter"`
	Complete   bool       `json:"isComplete"`
	PuzzleDate string     `json:"puzzleDate,omitempty"`
	Hints      hints.View `json:"hints"`
}
