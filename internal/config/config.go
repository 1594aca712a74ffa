// Package config reads server configuration from the environment.
// main loads .env (godotenv) before calling Load.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/robalobadob/crypto-wordle/internal/game"
)

// Config holds all server configuration.
type Config struct {
	Server  ServerConfig
	Auth    AuthConfig
	Game    GameConfig
	Reward  RewardConfig
	Logging LoggingConfig
}

// ServerConfig holds listener, storage and CORS settings.
type ServerConfig struct {
	Port         string
	DBPath       string
	ClientOrigin string
	Env          string // NODE_ENV; "production" turns on secure cookies
}

// AuthConfig holds JWT and cookie settings.
type AuthConfig struct {
	JWTSecret  string
	JWTExpires time.Duration
	CookieName string
}

// GameConfig holds word list and scoring settings.
type GameConfig struct {
	WordsFile   string // empty uses the embedded list
	ScoringRule game.Rule
	SessionTTL  time.Duration
}

// RewardConfig holds claimer and claim rate-limit settings.
type RewardConfig struct {
	Delay     time.Duration
	Timeout   time.Duration
	RateRPS   float64
	RateBurst int
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string
	Format string // "json" or "console"
}

// Load reads configuration from environment variables with defaults.
func Load() (*Config, error) {
	rule, err := game.ParseRule(getEnv("SCORING_RULE", string(game.RuleIncludes)))
	if err != nil {
		return nil, err
	}
	delay, err := getEnvDuration("REWARD_DELAY", 3*time.Second)
	if err != nil {
		return nil, err
	}
	timeout, err := getEnvDuration("REWARD_TIMEOUT", 8*time.Second)
	if err != nil {
		return nil, err
	}
	ttl, err := getEnvDuration("SESSION_TTL", 48*time.Hour)
	if err != nil {
		return nil, err
	}
	rps, err := strconv.ParseFloat(getEnv("CLAIM_RATE_RPS", "0.2"), 64)
	if err != nil {
		return nil, fmt.Errorf("CLAIM_RATE_RPS: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "5175"),
			DBPath:       getEnv("DB_PATH", "data/wordle.db"),
			ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
			Env:          getEnv("NODE_ENV", "development"),
		},
		Auth: AuthConfig{
			JWTSecret:  getEnv("JWT_SECRET", "dev_secret_change_me"),
			JWTExpires: time.Duration(getEnvInt("JWT_EXPIRES_DAYS", 14)) * 24 * time.Hour,
			CookieName: getEnv("COOKIE_NAME", "wordle_token"),
		},
		Game: GameConfig{
			WordsFile:   getEnv("WORDS_FILE", ""),
			ScoringRule: rule,
			SessionTTL:  ttl,
		},
		Reward: RewardConfig{
			Delay:     delay,
			Timeout:   timeout,
			RateRPS:   rps,
			RateBurst: getEnvInt("CLAIM_RATE_BURST", 3),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}
	if cfg.Reward.Timeout <= cfg.Reward.Delay {
		return nil, fmt.Errorf("REWARD_TIMEOUT (%s) must exceed REWARD_DELAY (%s)", cfg.Reward.Timeout, cfg.Reward.Delay)
	}
	return cfg, nil
}

// IsProduction reports whether NODE_ENV is production.
func (c *Config) IsProduction() bool { return c.Server.Env == "production" }

// Addr is the listen address.
func (c *Config) Addr() string { return ":" + c.Server.Port }

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// getEnvDuration accepts Go durations ("3s") or bare milliseconds ("3000").
func getEnvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
