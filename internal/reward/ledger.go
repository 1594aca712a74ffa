package reward

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// Claim is a recorded reward payout.
type Claim struct {
	GameID        string `json:"gameId"`
	OwnerID       string `json:"-"`
	Date          string `json:"date"`
	Symbol        string `json:"symbol"`
	Amount        string `json:"amount"`
	Address       string `json:"address"`
	DisplayName   string `json:"displayName,omitempty"`
	Attempts      int    `json:"attempts"`
	TransactionID string `json:"transactionId"`
	CreatedAt     string `json:"createdAt,omitempty"`
}

// Ledger records claims in reward_claims: at most one per game and one per
// owner per date. A row with an empty transaction_id is a pending reservation.
type Ledger struct {
	db *sql.DB
}

// NewLedger returns a Ledger over db.
func NewLedger(db *sql.DB) *Ledger { return &Ledger{db: db} }

// Reserve inserts c as a pending claim with an empty transaction id. It is
// taken before the claimer runs so that concurrent claims for one game, or
// for one owner and date, fail with ErrAlreadyClaimed instead of paying twice.
func (l *Ledger) Reserve(ctx context.Context, c Claim) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO reward_claims
			(game_id, owner_id, date, symbol, amount, address, display_name, attempts, transaction_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, '')`,
		c.GameID, c.OwnerID, c.Date, c.Symbol, c.Amount, c.Address, c.DisplayName, c.Attempts,
	)
	var se sqlite3.Error
	if errors.As(err, &se) && se.Code == sqlite3.ErrConstraint {
		return ErrAlreadyClaimed
	}
	if err != nil {
		return fmt.Errorf("reserve claim: %w", err)
	}
	return nil
}

// Complete fills a pending claim with the claimer's receipt.
func (l *Ledger) Complete(ctx context.Context, gameID string, rc Receipt) error {
	res, err := l.db.ExecContext(ctx, `
		UPDATE reward_claims SET symbol=?, amount=?, transaction_id=?
		WHERE game_id=? AND transaction_id=''`,
		rc.Symbol, rc.Amount, rc.TransactionID, gameID,
	)
	if err != nil {
		return fmt.Errorf("complete claim: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("complete claim %s: no pending reservation", gameID)
	}
	return nil
}

// Release drops a pending claim so the game can be claimed again.
func (l *Ledger) Release(ctx context.Context, gameID string) error {
	_, err := l.db.ExecContext(ctx,
		`DELETE FROM reward_claims WHERE game_id=? AND transaction_id=''`, gameID)
	return err
}

// ForOwner lists an owner's completed claims, newest first.
func (l *Ledger) ForOwner(ctx context.Context, ownerID string, limit int) ([]Claim, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := l.db.QueryContext(ctx, `
		SELECT game_id, owner_id, date, symbol, amount, address, display_name, attempts, transaction_id, created_at
		FROM reward_claims WHERE owner_id=? AND transaction_id<>''
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, ownerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Claim
	for rows.Next() {
		var c Claim
		if err := rows.Scan(&c.GameID, &c.OwnerID, &c.Date, &c.Symbol, &c.Amount, &c.Address,
			&c.DisplayName, &c.Attempts, &c.TransactionID, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
