package stats

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// sqlStore keeps the JSON record in player_stats(owner_id, key, value).
type sqlStore struct {
	db  *sql.DB
	now func() time.Time
}

// SQLOption configures the SQL store.
type SQLOption func(*sqlStore)

// WithClock sets the clock used to stamp updated_at.
func WithClock(now func() time.Time) SQLOption { return func(s *sqlStore) { s.now = now } }

// NewSQLStore returns a Store backed by the player_stats table.
func NewSQLStore(db *sql.DB, opts ...SQLOption) Store {
	s := &sqlStore{db: db, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *sqlStore) Load(ctx context.Context, ownerID string) (Stats, error) {
	var blob string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM player_stats WHERE owner_id=? AND key=?`, ownerID, Key,
	).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return Stats{}, nil
	}
	if err != nil {
		return Stats{}, err
	}
	return decode([]byte(blob))
}

func (s *sqlStore) Save(ctx context.Context, ownerID string, st Stats) error {
	blob, err := json.Marshal(st)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO player_stats (owner_id, key, value, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(owner_id, key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`,
		ownerID, Key, string(blob), s.now().UTC().Format(time.RFC3339),
	)
	return err
}
