package game

import "errors"

var (
	ErrInvalidGuess  = errors.New("guess must be 5 letters A-Z")
	ErrInvalidTarget = errors.New("target must be 5 letters A-Z")
	ErrHistoryFull   = errors.New("no more guesses allowed")
	ErrGameOver      = errors.New("game finished")
)
