// internal/httpserver/routes_game.go
//
// Game endpoints. Every game is played on the daily word for the UTC date it
// was created on.
//   - POST /game/new         → start a game, returns id and today's hint
//   - POST /game/guess       → apply a guess
//   - GET  /game/{id}        → board, keyboard and state
//   - GET  /game/{id}/share  → emoji share text (finished games)
//   - GET  /stats/me         → the caller's stats
//
// The first finished game per owner and date is recorded in daily_results and
// folded into stats; replays are scored but not counted.

package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/crypto-wordle/internal/daily"
	"github.com/robalobadob/crypto-wordle/internal/game"
	"github.com/robalobadob/crypto-wordle/internal/share"
	"github.com/robalobadob/crypto-wordle/internal/stats"
	"github.com/robalobadob/crypto-wordle/internal/store"
)

func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNewGame)
	r.Post("/game/guess", s.handleGuess)
	r.Get("/game/{id}", s.handleGetGame)
	r.Get("/game/{id}/share", s.handleShare)
}

type newGameRes struct {
	GameID     string `json:"gameId"`
	Date       string `json:"date"`
	Hint       string `json:"hint"`
	MaxGuesses int    `json:"maxGuesses"`
	WordLength int    `json:"wordLength"`
	Played     bool   `json:"played"` // a result for today is already recorded
}

// handleNewGame creates a session on today's word for the caller.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	owner := s.ownerID(w, r)
	now := s.now()
	date, idx := daily.DateKey(now), s.selector.Index(now)

	g, err := game.New(s.selector.List().At(idx),
		game.WithOwner(owner),
		game.WithDaily(date, idx),
		game.WithRule(s.cfg.Game.ScoringRule),
		game.WithClock(s.now),
	)
	if err != nil {
		log.Error().Err(err).Int("index", idx).Msg("new game")
		writeError(w, http.StatusInternalServerError, "bad_word_list")
		return
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	played, err := s.results.AlreadyPlayed(r.Context(), owner, date)
	if err != nil {
		log.Warn().Err(err).Msg("already played lookup")
	}

	log.Info().Str("gameId", g.ID).Str("date", date).Msg("game started")
	writeJSON(w, http.StatusCreated, newGameRes{
		GameID:     g.ID,
		Date:       date,
		Hint:       s.selector.List().Hint(g.Target),
		MaxGuesses: game.MaxGuesses,
		WordLength: game.WordLength,
		Played:     played,
	})
}

type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}

type guessRes struct {
	game.Turn
	Keyboard map[string]game.KeyStatus `json:"keyboard"`
	Attempts int                       `json:"attempts"`
	Answer   string                    `json:"answer,omitempty"`
	Stats    *stats.Stats              `json:"stats,omitempty"`
}

// handleGuess applies a guess under the session lock and records finished games.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	owner := s.ownerID(w, r)

	var (
		res  guessRes
		snap game.Game
	)
	err := s.store.Update(r.Context(), req.GameID, func(g *game.Game) error {
		if g.OwnerID != owner {
			return store.ErrNotFound
		}
		turn, err := g.Apply(req.Guess)
		if err != nil {
			return err
		}
		res = guessRes{Turn: turn, Keyboard: g.Keyboard(), Attempts: g.Attempts()}
		if g.Finished() {
			res.Answer = g.Target
		}
		snap = g.Clone()
		return nil
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
		return
	case errors.Is(err, game.ErrGameOver):
		writeError(w, http.StatusConflict, "game_over")
		return
	case errors.Is(err, game.ErrInvalidGuess):
		writeError(w, http.StatusBadRequest, "invalid_guess")
		return
	case err != nil:
		log.Error().Err(err).Str("gameId", req.GameID).Msg("apply guess")
		writeError(w, http.StatusInternalServerError, "guess_failed")
		return
	}

	if res.Outcome != game.OutcomeContinue {
		res.Stats = s.recordFinished(r.Context(), &snap)
	}
	writeJSON(w, http.StatusOK, res)
}

// recordFinished stores the daily result and, for the first result of the
// day, updates stats. The result row is removed again if stats cannot be
// saved. Failures are logged; the guess itself already succeeded.
func (s *Server) recordFinished(ctx context.Context, g *game.Game) *stats.Stats {
	inserted, err := s.results.InsertResult(ctx, daily.Result{
		OwnerID:   g.OwnerID,
		Date:      g.Date,
		WordIndex: g.WordIndex,
		Guesses:   g.Attempts(),
		ElapsedMs: int(g.Elapsed().Milliseconds()),
		Won:       g.Won(),
	})
	if err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("insert daily result")
		return nil
	}
	if !inserted {
		log.Debug().Str("gameId", g.ID).Msg("replay not counted")
		return nil
	}
	st, err := s.tracker.RecordGame(ctx, g.OwnerID, g.Won())
	if err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("record stats")
		// Roll the result back so the day is not marked played without stats.
		if derr := s.results.DeleteResult(context.WithoutCancel(ctx), g.OwnerID, g.Date); derr != nil {
			log.Error().Err(derr).Str("gameId", g.ID).Msg("roll back daily result")
		}
		return nil
	}
	log.Info().Str("gameId", g.ID).Bool("won", g.Won()).Int("attempts", g.Attempts()).Msg("game finished")
	return &st
}

// snapshot copies the game id out of the session store if owner owns it.
func (s *Server) snapshot(ctx context.Context, id, owner string) (game.Game, error) {
	g, err := s.store.Get(ctx, id)
	if err != nil {
		return game.Game{}, err
	}
	if g.OwnerID != owner {
		return game.Game{}, store.ErrNotFound
	}
	return g, nil
}

// ownedGame loads the {id} game if the caller owns it, writing 404 otherwise.
func (s *Server) ownedGame(w http.ResponseWriter, r *http.Request) (game.Game, bool) {
	g, err := s.snapshot(r.Context(), chi.URLParam(r, "id"), s.ownerID(w, r))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return game.Game{}, false
	}
	return g, true
}

type gameRes struct {
	GameID   string                    `json:"gameId"`
	Date     string                    `json:"date"`
	Hint     string                    `json:"hint"`
	Guesses  []string                  `json:"guesses"`
	Board    [][]game.LetterStatus     `json:"board"`
	Keyboard map[string]game.KeyStatus `json:"keyboard"`
	State    game.State                `json:"state"`
	Answer   string                    `json:"answer,omitempty"`
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, ok := s.ownedGame(w, r)
	if !ok {
		return
	}
	res := gameRes{
		GameID:   g.ID,
		Date:     g.Date,
		Hint:     s.selector.List().Hint(g.Target),
		Guesses:  g.Guesses,
		Board:    g.Board(),
		Keyboard: g.Keyboard(),
		State:    g.State,
	}
	if g.Finished() {
		res.Answer = g.Target
	}
	writeJSON(w, http.StatusOK, res)
}

type shareRes struct {
	Text  string      `json:"text"`
	Links share.Links `json:"links"`
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	g, ok := s.ownedGame(w, r)
	if !ok {
		return
	}
	if !g.Finished() {
		writeError(w, http.StatusConflict, "game_not_finished")
		return
	}
	text := share.Render(g.Date, g.Board(), g.Won(), g.Attempts())
	writeJSON(w, http.StatusOK, shareRes{Text: text, Links: share.LinksFor(text)})
}

type statsRes struct {
	stats.Stats
	WinRate int `json:"winRate"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.tracker.Load(r.Context(), s.ownerID(w, r))
	if err != nil {
		log.Error().Err(err).Msg("load stats")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, statsRes{Stats: st, WinRate: st.WinRate()})
}
