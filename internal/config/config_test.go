package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/crypto-wordle/internal/game"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "SCORING_RULE", "REWARD_DELAY", "REWARD_TIMEOUT", "JWT_EXPIRES_DAYS", "NODE_ENV"} {
		t.Setenv(k, "")
	}
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":5175", cfg.Addr())
	assert.Equal(t, game.RuleIncludes, cfg.Game.ScoringRule)
	assert.Equal(t, 3*time.Second, cfg.Reward.Delay)
	assert.Equal(t, 14*24*time.Hour, cfg.Auth.JWTExpires)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SCORING_RULE", "canonical")
	t.Setenv("REWARD_DELAY", "1500")
	t.Setenv("REWARD_TIMEOUT", "5s")
	t.Setenv("CLAIM_RATE_BURST", "7")
	t.Setenv("NODE_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, game.RuleCanonical, cfg.Game.ScoringRule)
	assert.Equal(t, 1500*time.Millisecond, cfg.Reward.Delay)
	assert.Equal(t, 5*time.Second, cfg.Reward.Timeout)
	assert.Equal(t, 7, cfg.Reward.RateBurst)
	assert.True(t, cfg.IsProduction())
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("SCORING_RULE", "wordy")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("SCORING_RULE", "")
	t.Setenv("REWARD_DELAY", "soon")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("REWARD_DELAY", "10s")
	t.Setenv("REWARD_TIMEOUT", "2s")
	_, err = Load()
	assert.Error(t, err)
}
