// internal/game/game.go
//
// A single game session on top of the evaluator.
// Responsibilities:
//   - Create games for a fixed target (6 rows x 5 letters).
//   - Normalise and validate guesses, then apply them via SubmitGuess.
//   - Track the state machine: playing → won | lost, both terminal.

package game

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/robalobadob/crypto-wordle/internal/words"
)

// Game holds the state of one game session.
type Game struct {
	ID         string    // Unique game identifier (UUID).
	OwnerID    string    // User or anonymous id the game belongs to.
	Date       string    // Daily date key the target was chosen for.
	WordIndex  int       // Index of Target in the daily word list.
	Target     string    // The solution word (upper case).
	Rule       Rule      // Duplicate-letter scoring rule.
	Guesses    []string  // Submitted guesses, oldest first.
	State      State     // playing, won or lost.
	StartedAt  time.Time // Creation time.
	FinishedAt time.Time // Zero until the game is won or lost.

	now func() time.Time
}

// Option configures a Game at construction.
type Option func(*Game)

// WithRule selects the duplicate-letter rule.
func WithRule(r Rule) Option { return func(g *Game) { g.Rule = r } }

// WithOwner attributes the game to ownerID.
func WithOwner(ownerID string) Option { return func(g *Game) { g.OwnerID = ownerID } }

// WithDaily records which daily word the target is.
func WithDaily(date string, wordIndex int) Option {
	return func(g *Game) { g.Date, g.WordIndex = date, wordIndex }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option { return func(g *Game) { g.now = now } }

// Turn is the result of applying one guess.
type Turn struct {
	Guess    string         `json:"guess"`
	Statuses []LetterStatus `json:"statuses"`
	Outcome  Outcome        `json:"outcome"`
	State    State          `json:"state"`
}

// New constructs a game for target.
func New(target string, opts ...Option) (*Game, error) {
	target = words.Normalize(target)
	if !words.IsWord(target) {
		return nil, ErrInvalidTarget
	}
	g := &Game{
		ID:      uuid.NewString(),
		Target:  target,
		Rule:    RuleIncludes,
		Guesses: []string{},
		State:   StatePlaying,
		now:     time.Now,
	}
	for _, o := range opts {
		o(g)
	}
	g.StartedAt = g.clock()
	return g, nil
}

// Apply validates and scores guess, mutating the game state.
//
// Validation rules:
//   - Game must still be playing.
//   - Guess must be exactly 5 letters A–Z after trimming and upper-casing.
//
// State transitions:
//   - Guess equals the target → won.
//   - Sixth guess misses → lost.
func (g *Game) Apply(guess string) (Turn, error) {
	if g.State.Terminal() {
		return Turn{State: g.State}, ErrGameOver
	}
	guess = words.Normalize(guess)

	next, outcome, err := SubmitGuess(guess, g.Guesses, g.Target)
	if err != nil {
		return Turn{State: g.State}, err
	}
	g.Guesses = next

	switch outcome {
	case OutcomeWon:
		g.finish(StateWon)
	case OutcomeLost:
		g.finish(StateLost)
	}
	return Turn{
		Guess:    guess,
		Statuses: g.Rule.Classify(guess, g.Target),
		Outcome:  outcome,
		State:    g.State,
	}, nil
}

func (g *Game) finish(s State) {
	g.State = s
	g.FinishedAt = g.clock()
}

func (g *Game) clock() time.Time {
	if g.now == nil {
		return time.Now()
	}
	return g.now()
}

// Board returns the statuses of every submitted guess, one row per guess.
func (g *Game) Board() [][]LetterStatus {
	return lo.Map(g.Guesses, func(guess string, _ int) []LetterStatus {
		return g.Rule.Classify(guess, g.Target)
	})
}

// Keyboard returns the aggregated key statuses for the guesses so far.
func (g *Game) Keyboard() map[string]KeyStatus {
	return g.Rule.Keyboard(g.Guesses, g.Target)
}

// Clone returns a copy of g that shares no mutable state with it.
func (g *Game) Clone() Game {
	c := *g
	c.Guesses = append([]string(nil), g.Guesses...)
	return c
}

// Attempts is the number of guesses submitted.
func (g *Game) Attempts() int { return len(g.Guesses) }

// Finished reports whether the game is won or lost.
func (g *Game) Finished() bool { return g.State.Terminal() }

// Won reports whether the game was won.
func (g *Game) Won() bool { return g.State == StateWon }

// Elapsed is the time from start to finish, or to now while playing.
func (g *Game) Elapsed() time.Duration {
	if g.Finished() {
		return g.FinishedAt.Sub(g.StartedAt)
	}
	return g.clock().Sub(g.StartedAt)
}
