// internal/game/engine.go
//
// Session mutations and the solving engine.
// Responsibilities:
//   - Letter edits (single slot, bulk, shuffle, reset) on a Game.
//   - Hint transitions (next, all, reset) on a Game.
//   - Solving a Game against the current corpus through a memo.
//   - Applying today's puzzle from a provider, all-or-nothing.
//
// Notes:
//   - Reset clears letters and hints; Shuffle and bulk loads keep hints.
//   - A failed provider call never touches the Game.
package game

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	mrand "math/rand/v2"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/spellingbee/internal/hints"
	"github.com/robalobadob/spellingbee/internal/letters"
	"github.com/robalobadob/spellingbee/internal/solver"
)

// New constructs an empty session.
func New() *Game {
	return &Game{ID: randomID(), UpdatedAt: time.Now().UTC()}
}

// SetLetter writes one slot and returns the normalized value stored.
func (g *Game) SetLetter(index int, in string) (string, error) {
	set, v, err := g.Letters.With(index, in)
	if err != nil {
		return "", err
	}
	g.Letters = set
	g.touch()
	return v, nil
}

// SetAll replaces every slot.
func (g *Game) SetAll(in []string) {
	g.Letters = letters.FromSlice(in)
	g.touch()
}

// Reset clears the puzzle. Starting over also hides every hint.
func (g *Game) Reset() {
	g.Letters = letters.Set{}
	g.Tier = hints.Reset(g.Tier)
	g.PuzzleDate = ""
	g.touch()
}

// Shuffle permutes the outer letters. Hints are left as they are.
func (g *Game) Shuffle(r *mrand.Rand) {
	g.Letters = g.Letters.Shuffle(r)
	g.touch()
}

// RevealNext advances the hint tier by one.
func (g *Game) RevealNext() {
	g.Tier = hints.RevealNext(g.Tier)
	g.touch()
}

// RevealAll jumps to the last hint tier.
func (g *Game) RevealAll() {
	g.Tier = hints.RevealAll(g.Tier)
	g.touch()
}

// ResetHints hides every hint without touching the letters.
func (g *Game) ResetHints() {
	g.Tier = hints.Reset(g.Tier)
	g.touch()
}

// Complete reports whether all seven letters are set.
func (g *Game) Complete() bool { return g.Letters.Complete() }

func (g *Game) touch() { g.UpdatedAt = time.Now().UTC() }

// Engine solves sessions against a corpus provider.
type Engine struct {
	corpus CorpusProvider
	memo   *solver.Memo
}

// NewEngine binds the engine to a corpus provider.
func NewEngine(corpus CorpusProvider) *Engine {
	return &Engine{corpus: corpus, memo: solver.NewMemo()}
}

// Results solves g against the current corpus.
func (e *Engine) Results(g *Game) []solver.Result {
	c := e.corpus.Corpus()
	return e.memo.Solve(g.Letters, c.Fingerprint, c.Words)
}

// Summary returns every aggregate of g's results.
func (e *Engine) Summary(g *Game) solver.Summary {
	return solver.Summarize(e.Results(g))
}

// View returns what a client may see of g at its current hint tier.
func (e *Engine) View(g *Game) View {
	return View{
		GameID:     g.ID,
		Letters:    g.Letters.Slice(),
		Center:     g.Letters.Center(),
		Complete:   g.Complete(),
		PuzzleDate: g.PuzzleDate,
		Hints:      hints.Project(g.Tier, e.Results(g)),
	}
}

// FetchToday asks p for today's puzzle without touching any session.
// Callers apply the result with ApplyPuzzle once it has landed.
func (e *Engine) FetchToday(ctx context.Context, p PuzzleProvider) (letters.Set, string, error) {
	pz, err := p.FetchToday(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("fetch today's puzzle")
		return letters.Set{}, "", err
	}
	return letters.FromSlice(pz.Letters()), pz.Date, nil
}

// LoadToday fetches today's puzzle and applies it to g. On failure g is
// returned to the caller exactly as it was.
func (e *Engine) LoadToday(ctx context.Context, g *Game, p PuzzleProvider) error {
	set, date, err := e.FetchToday(ctx, p)
	if err != nil {
		return err
	}
	ApplyPuzzle(g, set, date)
	return nil
}

// ApplyPuzzle replaces g's letters with a fetched puzzle.
func ApplyPuzzle(g *Game, set letters.Set, date string) {
	g.Letters = set
	g.PuzzleDate = date
	g.touch()
}

// RefreshCorpus reloads the corpus. The previous corpus stays in use on error.
func (e *Engine) RefreshCorpus(ctx context.Context) (int, error) {
	return e.corpus.Refresh(ctx)
}

// Corpus exposes the provider's current snapshot.
func (e *Engine) Corpus() CorpusProvider { return e.corpus }

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
