package daily

import (
	"context"
	"database/sql"
)

// Result is one player's completed daily game.
type Result struct {
	OwnerID   string `json:"ownerId"`
	Date      string `json:"date"`
	WordIndex int    `json:"wordIndex"`
	Guesses   int    `json:"guesses"`
	ElapsedMs int    `json:"elapsedMs"`
	Won       bool   `json:"won"`
}

// Store persists daily results in the daily_results table.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether owner has a recorded result for date.
func (s *Store) AlreadyPlayed(ctx context.Context, ownerID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM daily_results WHERE owner_id=? AND date=?",
		ownerID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult stores r. Only the first result per owner and date is kept.
func (s *Store) InsertResult(ctx context.Context, r Result) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(owner_id, date, word_index, guesses, elapsed_ms, won)
		VALUES(?,?,?,?,?,?)`, r.OwnerID, r.Date, r.WordIndex, r.Guesses, r.ElapsedMs, r.Won,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// DeleteResult removes owner's result for date. It undoes InsertResult when
// the matching stats update fails, so the next finished game that day counts.
func (s *Store) DeleteResult(ctx context.Context, ownerID, date string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM daily_results WHERE owner_id=? AND date=?", ownerID, date)
	return err
}

// LBRow is one leaderboard entry.
// Owner ids double as anonymous credentials, so only the username (or
// "guest") is serialised.
type LBRow struct {
	OwnerID   string `json:"-"`
	Name      string `json:"name"`
	Guesses   int    `json:"guesses"`
	ElapsedMs int    `json:"elapsedMs"`
}

// Leaderboard returns the fastest winners for date: fewest guesses first,
// then elapsed time, then insertion order.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT d.owner_id, COALESCE(u.username, 'guest'), d.guesses, d.elapsed_ms
		FROM daily_results d
		LEFT JOIN users u ON u.id = d.owner_id
		WHERE d.date=? AND d.won=1
		ORDER BY d.guesses ASC, d.elapsed_ms ASC, d.created_at ASC, d.rowid ASC
		LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.OwnerID, &r.Name, &r.Guesses, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// History lists owner's results, most recent date first.
func (s *Store) History(ctx context.Context, ownerID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 30
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT owner_id, date, word_index, guesses, elapsed_ms, won
		FROM daily_results WHERE owner_id=?
		ORDER BY date DESC LIMIT ?`, ownerID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Result{}
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.OwnerID, &r.Date, &r.WordIndex, &r.Guesses, &r.ElapsedMs, &r.Won); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
