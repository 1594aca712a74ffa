// internal/httpserver/routes_reward.go
//
// Reward endpoints:
//   - GET  /rewards?attempts=n → catalog priced with the performance multiplier
//   - POST /reward/validate    → address (and optional display name) checks for live forms
//   - POST /reward/claim       → pay out a won game, once per game and per owner per day
//   - GET  /reward/mine        → the caller's claims
//
// Claims are rate limited per client IP and bounded by the reward timeout.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/crypto-wordle/internal/game"
	"github.com/robalobadob/crypto-wordle/internal/reward"
)

func (s *Server) mountReward(r chi.Router) {
	r.Get("/rewards", s.handleRewards)
	r.Post("/reward/validate", s.handleValidate)
	r.With(s.limiter.middleware).Post("/reward/claim", s.handleClaim)
	r.Get("/reward/mine", s.handleMyClaims)
}

func (s *Server) handleRewards(w http.ResponseWriter, r *http.Request) {
	attempts := game.MaxGuesses
	if v := r.URL.Query().Get("attempts"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > game.MaxGuesses {
			writeError(w, http.StatusBadRequest, "invalid_attempts")
			return
		}
		attempts = n
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"attempts":   attempts,
		"multiplier": reward.Multiplier(attempts),
		"rewards":    s.catalog.Offers(attempts),
	})
}

type validateReq struct {
	Address     string `json:"address"`
	DisplayName string `json:"displayName"`
}

type validateRes struct {
	Valid     bool          `json:"valid"`
	Defect    reward.Defect `json:"defect,omitempty"`
	Message   string        `json:"message,omitempty"`
	NameError string        `json:"nameError,omitempty"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	res := validateRes{Valid: true}
	var ae *reward.AddressError
	if err := reward.ValidateAddress(req.Address); errors.As(err, &ae) {
		res = validateRes{Defect: ae.Defect, Message: ae.Msg}
	}
	if strings.TrimSpace(req.DisplayName) != "" {
		if err := reward.ValidateDisplayName(req.DisplayName); err != nil {
			res.Valid = false
			res.NameError = err.Error()
		}
	}
	writeJSON(w, http.StatusOK, res)
}

type claimReq struct {
	GameID      string `json:"gameId"`
	Reward      string `json:"reward"`
	Address     string `json:"address"`
	DisplayName string `json:"displayName"`
}

type claimRes struct {
	reward.Receipt
	GameID  string `json:"gameId"`
	Address string `json:"address"`
}

// handleClaim validates the request and checks the game, reserves the claim
// in the ledger, then calls the claimer with a bounded context. A failed claim
// releases its reservation; claimer failures are not retried.
func (s *Server) handleClaim(w http.ResponseWriter, r *http.Request) {
	var req claimReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	req.Address = strings.TrimSpace(req.Address)
	req.DisplayName = strings.TrimSpace(req.DisplayName)

	var ae *reward.AddressError
	if err := reward.ValidateAddress(req.Address); errors.As(err, &ae) {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid_address", "defect": string(ae.Defect), "message": ae.Msg,
		})
		return
	}
	if req.DisplayName != "" {
		if err := reward.ValidateDisplayName(req.DisplayName); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_display_name", "message": err.Error()})
			return
		}
	}
	rw, ok := s.catalog.Lookup(req.Reward)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown_reward")
		return
	}

	owner := s.ownerID(w, r)
	g, err := s.snapshot(r.Context(), req.GameID, owner)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if !g.Finished() {
		writeError(w, http.StatusConflict, "game_not_finished")
		return
	}
	if !g.Won() {
		writeError(w, http.StatusConflict, "not_won")
		return
	}
	pending := reward.Claim{
		GameID:      g.ID,
		OwnerID:     owner,
		Date:        g.Date,
		Symbol:      rw.Symbol,
		Amount:      rw.Amount(g.Attempts()),
		Address:     req.Address,
		DisplayName: req.DisplayName,
		Attempts:    g.Attempts(),
	}
	err = s.ledger.Reserve(r.Context(), pending)
	if errors.Is(err, reward.ErrAlreadyClaimed) {
		writeError(w, http.StatusConflict, "already_claimed")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("reserve claim")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Reward.Timeout)
	defer cancel()
	rc, err := s.claimer.Claim(ctx, reward.ClaimRequest{
		RewardSymbol:       rw.Symbol,
		DestinationAddress: req.Address,
		AttemptCount:       g.Attempts(),
		DisplayName:        req.DisplayName,
	})
	if err != nil {
		// The request context may be gone already.
		if rerr := s.ledger.Release(context.WithoutCancel(r.Context()), g.ID); rerr != nil {
			log.Error().Err(rerr).Str("gameId", g.ID).Msg("release claim")
		}
		status, code := claimFailure(err)
		log.Warn().Err(err).Str("gameId", g.ID).Int("status", status).Msg("reward claim failed")
		writeError(w, status, code)
		return
	}

	if err := s.ledger.Complete(context.WithoutCancel(r.Context()), g.ID, rc); err != nil {
		log.Error().Err(err).Str("tx", rc.TransactionID).Msg("complete claim")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, claimRes{Receipt: rc, GameID: g.ID, Address: req.Address})
}

// claimFailure maps claimer error kinds to HTTP status and error code.
func claimFailure(err error) (int, string) {
	switch {
	case errors.Is(err, reward.ErrInvalidDestination):
		return http.StatusBadRequest, "invalid_address"
	case errors.Is(err, reward.ErrUnknownReward):
		return http.StatusBadRequest, "unknown_reward"
	case errors.Is(err, reward.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "claim_timeout"
	case errors.Is(err, reward.ErrRejected):
		return http.StatusBadGateway, "claim_rejected"
	default:
		return http.StatusBadGateway, "claim_network_error"
	}
}

func (s *Server) handleMyClaims(w http.ResponseWriter, r *http.Request) {
	claims, err := s.ledger.ForOwner(r.Context(), s.ownerID(w, r), 20)
	if err != nil {
		log.Error().Err(err).Msg("list claims")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	if claims == nil {
		claims = []reward.Claim{}
	}
	writeJSON(w, http.StatusOK, claims)
}
