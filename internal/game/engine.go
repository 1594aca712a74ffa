// internal/game/engine.go
//
// Guess evaluation.
// Responsibilities:
//   - Classify each letter of a guess against the target (correct/present/absent).
//   - Fold classifications of the whole history into keyboard key statuses.
//   - Decide the outcome of a submission (continue/won/lost).
//
// All functions are pure and expect upper-case ASCII input; callers normalise
// with words.Normalize first.

package game

import (
	"strings"

	"github.com/robalobadob/crypto-wordle/internal/words"
)

// ClassifyLetter classifies guess[position] == letter against target:
// correct when target has letter at position, present when target contains
// letter anywhere, absent otherwise. Repeated letters are not capped.
func ClassifyLetter(letter byte, position int, guess, target string) LetterStatus {
	if position < len(target) && target[position] == letter {
		return StatusCorrect
	}
	if strings.IndexByte(target, letter) >= 0 {
		return StatusPresent
	}
	return StatusAbsent
}

// ClassifyGuess applies ClassifyLetter to every position of guess, in order.
func ClassifyGuess(guess, target string) []LetterStatus {
	out := make([]LetterStatus, len(guess))
	for i := 0; i < len(guess); i++ {
		out[i] = ClassifyLetter(guess[i], i, guess, target)
	}
	return out
}

// Classify scores guess against target under r.
func (r Rule) Classify(guess, target string) []LetterStatus {
	if r == RuleCanonical {
		return scoreCanonical(target, guess)
	}
	return ClassifyGuess(guess, target)
}

// scoreCanonical implements the two-pass Wordle scoring algorithm.
//
// Pass 1:
//   - Mark exact matches correct.
//   - Count the remaining (unmatched) target letters.
//
// Pass 2:
//   - For each non-correct guess letter: present while a count remains for
//     that letter (decrementing it), otherwise absent.
func scoreCanonical(target, guess string) []LetterStatus {
	n := len(guess)
	res := make([]LetterStatus, n)
	var counts [26]int

	for i := 0; i < n; i++ {
		if i < len(target) && guess[i] == target[i] {
			res[i] = StatusCorrect
		} else if i < len(target) {
			counts[idx(target[i])]++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == StatusCorrect {
			continue
		}
		j := idx(guess[i])
		if j >= 0 && j < 26 && counts[j] > 0 {
			res[i] = StatusPresent
			counts[j]--
		} else {
			res[i] = StatusAbsent
		}
	}
	return res
}

// idx maps an upper-case ASCII letter to 0..25.
func idx(c byte) int { return int(c) - 'A' }

// EvaluateKeyboard returns, for every letter used in history, the best status
// it reached in any guess. Letters never guessed are omitted (KeyDefault).
func EvaluateKeyboard(history []string, target string) map[string]KeyStatus {
	return RuleIncludes.Keyboard(history, target)
}

// Keyboard is EvaluateKeyboard under r.
func (r Rule) Keyboard(history []string, target string) map[string]KeyStatus {
	keys := make(map[string]KeyStatus)
	for _, guess := range history {
		for i, s := range r.Classify(guess, target) {
			letter := string(guess[i])
			if k := KeyFor(s); k.Outranks(keys[letter]) {
				keys[letter] = k
			}
		}
	}
	return keys
}

// SubmitGuess appends guess to history and reports the outcome: won iff
// guess == target, lost iff the sixth guess misses, continue otherwise.
// history is never modified; the returned slice is a fresh copy.
func SubmitGuess(guess string, history []string, target string) ([]string, Outcome, error) {
	if !words.IsWord(guess) {
		return history, OutcomeContinue, ErrInvalidGuess
	}
	if len(history) >= MaxGuesses {
		return history, OutcomeLost, ErrHistoryFull
	}

	next := make([]string, len(history), len(history)+1)
	copy(next, history)
	next = append(next, guess)

	switch {
	case guess == target:
		return next, OutcomeWon, nil
	case len(next) == MaxGuesses:
		return next, OutcomeLost, nil
	default:
		return next, OutcomeContinue, nil
	}
}
