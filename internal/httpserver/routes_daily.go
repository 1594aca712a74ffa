// internal/httpserver/routes_daily.go
//
// Daily challenge endpoints:
//   - GET /daily             → today's date, hint and word count (never the word)
//   - GET /daily/leaderboard → top 20 winners for today (or ?date=YYYY-MM-DD)
//   - GET /daily/mine        → the caller's recorded results

package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/crypto-wordle/internal/daily"
)

func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/", s.handleDaily)
		r.Get("/leaderboard", s.handleLeaderboard)
		r.Get("/mine", s.handleMyResults)
	})
}

type dailyRes struct {
	Date      string `json:"date"`
	Hint      string `json:"hint"`
	WordCount int    `json:"wordCount"`
	Played    bool   `json:"played"`
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	date := daily.DateKey(now)
	played, err := s.results.AlreadyPlayed(r.Context(), s.ownerID(w, r), date)
	if err != nil {
		log.Warn().Err(err).Msg("already played lookup")
	}
	writeJSON(w, http.StatusOK, dailyRes{
		Date:      date,
		Hint:      s.selector.Hint(now),
		WordCount: s.selector.List().Len(),
		Played:    played,
	})
}

type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(s.now())
	} else if _, err := time.Parse(time.DateOnly, date); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_date")
		return
	}
	rows, err := s.results.Leaderboard(r.Context(), date, 20)
	if err != nil {
		log.Error().Err(err).Msg("leaderboard")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}

func (s *Server) handleMyResults(w http.ResponseWriter, r *http.Request) {
	rows, err := s.results.History(r.Context(), s.ownerID(w, r), 30)
	if err != nil {
		log.Error().Err(err).Msg("daily history")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
