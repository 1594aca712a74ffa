package reward

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// ClaimRequest asks for one reward to be sent.
type ClaimRequest struct {
	RewardSymbol       string
	DestinationAddress string
	AttemptCount       int
	DisplayName        string
}

// Receipt confirms a sent reward.
type Receipt struct {
	TransactionID string  `json:"transactionId"`
	Symbol        string  `json:"symbol"`
	Amount        string  `json:"amount"`
	Multiplier    float64 `json:"multiplier"`
}

// Claimer sends rewards. Implementations must honour ctx and return one of
// the package's failure kinds (wrapped) on error. Callers do not retry.
type Claimer interface {
	Claim(ctx context.Context, req ClaimRequest) (Receipt, error)
}

// MockClaimer simulates a chain transfer: it validates the request, waits
// Delay and returns a random 32-byte transaction hash.
type MockClaimer struct {
	Catalog Catalog
	Delay   time.Duration
	// Fail, when set, is returned after the delay instead of a receipt.
	Fail error
}

// NewMockClaimer returns a MockClaimer over the default catalog.
func NewMockClaimer(delay time.Duration) *MockClaimer {
	return &MockClaimer{Catalog: DefaultCatalog(), Delay: delay}
}

func (m *MockClaimer) Claim(ctx context.Context, req ClaimRequest) (Receipt, error) {
	if err := ValidateAddress(req.DestinationAddress); err != nil {
		return Receipt{}, err
	}
	r, ok := m.Catalog.Lookup(req.RewardSymbol)
	if !ok {
		return Receipt{}, fmt.Errorf("%w: %q", ErrUnknownReward, req.RewardSymbol)
	}

	timer := time.NewTimer(m.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Receipt{}, fmt.Errorf("%w: %v", ErrTimeout, ctx.Err())
		}
		return Receipt{}, ctx.Err()
	case <-timer.C:
	}
	if m.Fail != nil {
		return Receipt{}, m.Fail
	}

	tx, err := TransactionID()
	if err != nil {
		return Receipt{}, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	rc := Receipt{
		TransactionID: tx,
		Symbol:        r.Symbol,
		Amount:        r.Amount(req.AttemptCount),
		Multiplier:    Multiplier(req.AttemptCount),
	}
	log.Info().
		Str("symbol", rc.Symbol).
		Str("amount", rc.Amount).
		Str("to", req.DestinationAddress).
		Str("name", req.DisplayName).
		Float64("multiplier", rc.Multiplier).
		Str("tx", rc.TransactionID).
		Msg("reward sent")
	return rc, nil
}

// TransactionID returns "0x" followed by 64 random hex characters.
func TransactionID() (string, error) {
	var b [32]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return "0x" + hex.EncodeToString(b[:]), nil
}
