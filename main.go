package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/crypto-wordle/internal/config"
	"github.com/robalobadob/crypto-wordle/internal/database"
	"github.com/robalobadob/crypto-wordle/internal/httpserver"
	"github.com/robalobadob/crypto-wordle/internal/reward"
	"github.com/robalobadob/crypto-wordle/internal/stats"
	"github.com/robalobadob/crypto-wordle/internal/store"
	"github.com/robalobadob/crypto-wordle/internal/words"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	setupLogging(cfg.Logging)

	list, err := words.Load(cfg.Game.WordsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}

	db, err := database.OpenMigrated(cfg.Server.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Server.DBPath).Msg("failed to open database")
	}
	defer db.Close()

	srv := httpserver.New(httpserver.Deps{
		Config:   cfg,
		DB:       db,
		Sessions: store.NewMemoryStore(),
		Words:    list,
		Stats:    stats.NewSQLStore(db),
		Claimer:  reward.NewMockClaimer(cfg.Reward.Delay),
		Catalog:  reward.DefaultCatalog(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go srv.PruneSessions(ctx, cfg.Game.SessionTTL, time.Hour)

	hs := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	go func() {
		<-ctx.Done()
		log.Info().Msg("shutdown signal received")
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := hs.Shutdown(sctx); err != nil {
			log.Warn().Err(err).Msg("http shutdown")
		}
	}()

	log.Info().
		Str("addr", hs.Addr).
		Int("words", list.Len()).
		Str("rule", string(cfg.Game.ScoringRule)).
		Msg("starting crypto-wordle server")
	if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

func setupLogging(c config.LoggingConfig) {
	if lvl, err := zerolog.ParseLevel(c.Level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if c.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
