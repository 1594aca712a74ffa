// Package stats keeps per-player game statistics behind a persistence port.
//
// The persisted record is the JSON blob
//
//	{"gamesPlayed":0,"gamesWon":0,"currentStreak":0,"maxStreak":0}
//
// stored under Key. Stores return zero Stats for owners with no record.
package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
)

// Key identifies the stats record in key/value backed stores.
const Key = "wordleStats"

// Stats are a player's lifetime counters.
type Stats struct {
	GamesPlayed   int `json:"gamesPlayed"`
	GamesWon      int `json:"gamesWon"`
	CurrentStreak int `json:"currentStreak"`
	MaxStreak     int `json:"maxStreak"`
}

// Record folds one completed game into s.
func (s Stats) Record(won bool) Stats {
	s.GamesPlayed++
	if !won {
		s.CurrentStreak = 0
		return s
	}
	s.GamesWon++
	s.CurrentStreak++
	if s.CurrentStreak > s.MaxStreak {
		s.MaxStreak = s.CurrentStreak
	}
	return s
}

// WinRate is the rounded percentage of games won, 0 with no games.
func (s Stats) WinRate() int {
	if s.GamesPlayed == 0 {
		return 0
	}
	return int(math.Round(float64(s.GamesWon) * 100 / float64(s.GamesPlayed)))
}

// Store is the persistence port for Stats.
type Store interface {
	Load(ctx context.Context, ownerID string) (Stats, error)
	Save(ctx context.Context, ownerID string, s Stats) error
}

// Tracker updates stats once per completed game.
type Tracker struct {
	store Store
}

// NewTracker returns a Tracker persisting to store.
func NewTracker(store Store) *Tracker { return &Tracker{store: store} }

// Load returns the current stats for ownerID.
func (t *Tracker) Load(ctx context.Context, ownerID string) (Stats, error) {
	return t.store.Load(ctx, ownerID)
}

// RecordGame loads, folds and immediately persists the result of one game.
func (t *Tracker) RecordGame(ctx context.Context, ownerID string, won bool) (Stats, error) {
	cur, err := t.store.Load(ctx, ownerID)
	if err != nil {
		return Stats{}, fmt.Errorf("load stats: %w", err)
	}
	next := cur.Record(won)
	if err := t.store.Save(ctx, ownerID, next); err != nil {
		return cur, fmt.Errorf("save stats: %w", err)
	}
	return next, nil
}

func decode(blob []byte) (Stats, error) {
	var s Stats
	if len(blob) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(blob, &s); err != nil {
		return Stats{}, fmt.Errorf("decode %s: %w", Key, err)
	}
	return s, nil
}
