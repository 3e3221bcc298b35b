package daily

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// Store persists the puzzle issued for each date so a day's letters stay
// fixed even if the corpus changes later.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Get returns the stored puzzle for date. found is false when none exists.
func (s *Store) Get(ctx context.Context, date string) (p Puzzle, found bool, err error) {
	var outer string
	err = s.db.QueryRowContext(ctx,
		`SELECT date, center, outer_letters FROM puzzles WHERE date=?`, date,
	).Scan(&p.Date, &p.Center, &outer)
	if errors.Is(err, sql.ErrNoRows) {
		return Puzzle{}, false, nil
	}
	if err != nil {
		return Puzzle{}, false, err
	}
	p.Outer = strings.Split(outer, "")
	return p, true, nil
}

// Insert records p unless a puzzle for its date already exists.
func (s *Store) Insert(ctx context.Context, p Puzzle) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO puzzles(date, center, outer_letters) VALUES(?,?,?)`,
		p.Date, p.Center, strings.Join(p.Outer, ""),
	)
	return err
}

// MaxRecent caps how many puzzles Recent returns.
const MaxRecent = 100

// Recent lists stored puzzles, newest first. Limits outside 1..MaxRecent
// fall back to 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]Puzzle, error) {
	if limit <= 0 || limit > MaxRecent {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT date, center, outer_letters FROM puzzles ORDER BY date DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Puzzle, 0, limit)
	for rows.Next() {
		var p Puzzle
		var outer string
		if err := rows.Scan(&p.Date, &p.Center, &outer); err != nil {
			return nil, err
		}
		p.Outer = strings.Split(outer, "")
		out = append(out, p)
	}
	return out, rows.Err()
}
