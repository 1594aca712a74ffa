// internal/httpserver/server.go
//
// HTTP server wiring for the Crypto Wordle backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health".
//   - Game, daily, stats and reward endpoints (optional auth; guests get an anonymous cookie).
//   - Auth endpoints: /auth/*.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Every game belongs to an owner: the JWT user id when signed in, otherwise
//     the anonymous cookie id. Other owners see 404 for it.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/crypto-wordle/internal/config"
	"github.com/robalobadob/crypto-wordle/internal/daily"
	"github.com/robalobadob/crypto-wordle/internal/reward"
	"github.com/robalobadob/crypto-wordle/internal/stats"
	"github.com/robalobadob/crypto-wordle/internal/store"
	"github.com/robalobadob/crypto-wordle/internal/words"
)

// Deps are the collaborators a Server is built from.
type Deps struct {
	Config   *config.Config
	DB       *sql.DB
	Sessions store.Store
	Words    *words.List
	Stats    stats.Store
	Claimer  reward.Claimer
	Catalog  reward.Catalog
	// Now overrides time.Now (tests).
	Now func() time.Time
}

// Server bundles router, session store and the persistent stores.
type Server struct {
	r        *chi.Mux
	cfg      *config.Config
	db       *sql.DB
	store    store.Store
	selector *daily.Selector
	results  *daily.Store
	tracker  *stats.Tracker
	claimer  reward.Claimer
	catalog  reward.Catalog
	ledger   *reward.Ledger
	limiter  *limiter
	now      func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(d Deps) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		cfg:      d.Config,
		db:       d.DB,
		store:    d.Sessions,
		selector: daily.NewSelector(d.Words),
		results:  daily.NewStore(d.DB),
		tracker:  stats.NewTracker(d.Stats),
		claimer:  d.Claimer,
		catalog:  d.Catalog,
		ledger:   reward.NewLedger(d.DB),
		now:      d.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.limiter = newLimiter(d.Config.Reward.RateRPS, d.Config.Reward.RateBurst, s.now)
	if s.catalog == nil {
		s.catalog = reward.DefaultCatalog()
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(accessLog)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(d.Config.Reward.Timeout + 2*time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(s.cors)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "crypto-wordle",
			"endpoints": []string{
				"/health", "/daily", "/daily/leaderboard", "POST /game/new", "POST /game/guess",
				"/game/{id}", "/game/{id}/share", "/stats/me", "/rewards", "POST /reward/claim", "/auth/*",
			},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	// Everything a guest can do; decorated with the user when a token is present.
	s.r.Group(func(r chi.Router) {
		r.Use(s.withOptionalAuth())
		s.mountGame(r)
		s.mountDaily(r)
		s.mountReward(r)
		r.Get("/stats/me", s.handleStats)
	})

	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})
	return s
}

// Router exposes the internal router.
func (s *Server) Router() chi.Router { return s.r }

// ServeHTTP lets the Server be used directly as a handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.r.ServeHTTP(w, r) }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.Server.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog logs one line per request through the global zerolog logger.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// decodeJSON reads a request body of at most 64 KiB into v.
func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<16)).Decode(v)
}

func (s *Server) prune(ctx context.Context, ttl time.Duration) {
	cutoff := s.now().Add(-ttl)
	n := s.store.Prune(ctx, cutoff)
	k := s.limiter.evictIdle(cutoff)
	if n > 0 || k > 0 {
		log.Debug().Int("pruned", n).Int("limiters", k).Msg("session janitor")
	}
}

// PruneSessions drops sessions older than ttl, and rate-limit buckets idle for
// as long, every interval until ctx ends.
func (s *Server) PruneSessions(ctx context.Context, ttl, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.prune(ctx, ttl)
		}
	}
}
