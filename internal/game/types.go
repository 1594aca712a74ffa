// internal/game/types.go
//
// Core type definitions for the game engine.
// Defines:
//   - LetterStatus: per-letter result of a guess (correct/present/absent).
//   - KeyStatus: best status seen for a keyboard letter across all guesses.
//   - State / Outcome: the game state machine and the result of one submission.
//   - Rule: how repeated letters are scored.

package game

import "fmt"

const (
	// MaxGuesses is the number of rows on the board.
	MaxGuesses = 6
	// WordLength is the number of letters per guess.
	WordLength = 5
)

// LetterStatus is the evaluation of one letter of a guess.
type LetterStatus string

const (
	StatusCorrect LetterStatus = "correct" // right letter, right position
	StatusPresent LetterStatus = "present" // letter occurs elsewhere in the target
	StatusAbsent  LetterStatus = "absent"  // letter not in the target
)

// KeyStatus colours a keyboard key. Ordered default < absent < present < correct.
type KeyStatus string

const (
	KeyDefault KeyStatus = "default"
	KeyAbsent  KeyStatus = "absent"
	KeyPresent KeyStatus = "present"
	KeyCorrect KeyStatus = "correct"
)

func (k KeyStatus) rank() int {
	switch k {
	case KeyAbsent:
		return 1
	case KeyPresent:
		return 2
	case KeyCorrect:
		return 3
	default:
		return 0
	}
}

// Outranks reports whether k takes precedence over o.
func (k KeyStatus) Outranks(o KeyStatus) bool { return k.rank() > o.rank() }

// KeyFor lifts a letter status onto the keyboard scale.
func KeyFor(s LetterStatus) KeyStatus {
	switch s {
	case StatusCorrect:
		return KeyCorrect
	case StatusPresent:
		return KeyPresent
	case StatusAbsent:
		return KeyAbsent
	}
	return KeyDefault
}

// State is the game's position in its state machine.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

// Terminal reports whether no further guesses are accepted.
func (s State) Terminal() bool { return s == StateWon || s == StateLost }

// Outcome is the result of a single submission.
type Outcome string

const (
	OutcomeContinue Outcome = "continue"
	OutcomeWon      Outcome = "won"
	OutcomeLost     Outcome = "lost"
)

// Rule selects how repeated letters are scored.
type Rule string

const (
	// RuleIncludes marks a letter present whenever the target contains it,
	// regardless of how many times it has already been matched.
	RuleIncludes Rule = "includes"
	// RuleCanonical caps present marks by the unmatched occurrences left in the target.
	RuleCanonical Rule = "canonical"
)

// ParseRule maps a config value onto a Rule. Empty selects RuleIncludes.
func ParseRule(s string) (Rule, error) {
	switch Rule(s) {
	case "", RuleIncludes:
		return RuleIncludes, nil
	case RuleCanonical:
		return RuleCanonical, nil
	}
	return "", fmt.Errorf("unknown scoring rule %q", s)
}
