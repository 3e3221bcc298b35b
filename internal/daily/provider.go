package daily

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// WordSource supplies the current corpus.
type WordSource interface {
	WordList() []string
}

// Provider serves today's puzzle. A stored puzzle for the date wins;
// otherwise one is generated from the corpus and recorded.
type Provider struct {
	store  *Store // optional
	corpus WordSource
	salt   string
	now    func() time.Time
}

// NewProvider wires a puzzle provider. store may be nil.
func NewProvider(store *Store, corpus WordSource, salt string) *Provider {
	return &Provider{store: store, corpus: corpus, salt: salt, now: time.Now}
}

// WithClock overrides the provider's clock.
func (p *Provider) WithClock(now func() time.Time) *Provider {
	p.now = now
	return p
}

// FetchToday returns the puzzle for the current UTC date.
func (p *Provider) FetchToday(ctx context.Context) (Puzzle, error) {
	return p.Fetch(ctx, p.now())
}

// Fetch returns the puzzle for the given day.
func (p *Provider) Fetch(ctx context.Context, day time.Time) (Puzzle, error) {
	date := DateKey(day)
	if p.store != nil {
		if pz, ok, err := p.store.Get(ctx, date); err != nil {
			return Puzzle{}, &FetchError{Err: fmt.Errorf("load puzzle %s: %w", date, err), Hint: "Try again, or enter the letters manually."}
		} else if ok {
			return pz, nil
		}
	}

	pz, err := Generate(day, p.salt, p.corpus.WordList())
	if err != nil {
		return Puzzle{}, err
	}
	if p.store == nil {
		return pz, nil
	}

	if err := p.store.Insert(ctx, pz); err != nil {
		log.Warn().Err(err).Str("date", date).Msg("record daily puzzle")
		return pz, nil
	}
	// another writer may have recorded the date first; theirs sticks
	stored, ok, err := p.store.Get(ctx, date)
	if err != nil || !ok {
		return pz, nil
	}
	log.Info().Str("date", date).Str("center", stored.Center).Msg("daily puzzle issued")
	return stored, nil
}
