package reward

import "errors"

// Claim failure kinds. Claimers wrap these so callers can branch with errors.Is.
var (
	ErrInvalidDestination = errors.New("invalid destination address")
	ErrUnknownReward      = errors.New("unknown reward")
	ErrNetwork            = errors.New("network failure")
	ErrRejected           = errors.New("transaction rejected")
	ErrTimeout            = errors.New("claim timed out")

	// ErrAlreadyClaimed is returned by the Ledger for a second claim on one game or day.
	ErrAlreadyClaimed = errors.New("reward already claimed")
)
