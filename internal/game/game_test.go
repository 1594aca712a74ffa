package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(start time.Time, step time.Duration) func() time.Time {
	cur := start
	return func() time.Time {
		now := cur
		cur = cur.Add(step)
		return now
	}
}

func TestNewGame(t *testing.T) {
	g, err := New(" brave ", WithOwner("owner-1"), WithDaily("2024-01-01", 67))
	require.NoError(t, err)

	assert.NotEmpty(t, g.ID)
	assert.Equal(t, "BRAVE", g.Target)
	assert.Equal(t, "owner-1", g.OwnerID)
	assert.Equal(t, "2024-01-01", g.Date)
	assert.Equal(t, 67, g.WordIndex)
	assert.Equal(t, RuleIncludes, g.Rule)
	assert.Equal(t, StatePlaying, g.State)
	assert.Empty(t, g.Guesses)
	assert.False(t, g.Finished())

	other, err := New("BRAVE")
	require.NoError(t, err)
	assert.NotEqual(t, g.ID, other.ID)
}

func TestNewGameInvalidTarget(t *testing.T) {
	for _, target := range []string{"", "BRAV", "BR4VE", "BRAVES"} {
		_, err := New(target)
		assert.ErrorIs(t, err, ErrInvalidTarget, target)
	}
}

func TestApplyWinOnThirdAttempt(t *testing.T) {
	g, err := New("BRAVE")
	require.NoError(t, err)

	turn, err := g.Apply("crane")
	require.NoError(t, err)
	assert.Equal(t, "CRANE", turn.Guess)
	assert.Equal(t, OutcomeContinue, turn.Outcome)

	_, err = g.Apply("BRAKE")
	require.NoError(t, err)

	turn, err = g.Apply("BRAVE")
	require.NoError(t, err)
	assert.Equal(t, OutcomeWon, turn.Outcome)
	assert.Equal(t, StateWon, turn.State)
	assert.Equal(t, 3, g.Attempts())
	assert.True(t, g.Won())

	_, err = g.Apply("CRANE")
	assert.ErrorIs(t, err, ErrGameOver)
	assert.Equal(t, 3, g.Attempts(), "no submissions after a win")
}

func TestApplyLoseAfterSix(t *testing.T) {
	g, err := New("BRAVE")
	require.NoError(t, err)

	var outcomes []Outcome
	for i := 0; i < MaxGuesses; i++ {
		turn, err := g.Apply("CRANE")
		require.NoError(t, err)
		outcomes = append(outcomes, turn.Outcome)
	}
	assert.Equal(t, OutcomeLost, outcomes[len(outcomes)-1])
	assert.Equal(t, StateLost, g.State)
	assert.Len(t, g.Guesses, MaxGuesses)

	_, err = g.Apply("BRAVE")
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestApplyInvalidGuessLeavesStateUnchanged(t *testing.T) {
	g, err := New("BRAVE")
	require.NoError(t, err)

	for _, guess := range []string{"", "BRA", "BRAVER", "BR VE", "12345"} {
		turn, err := g.Apply(guess)
		assert.ErrorIs(t, err, ErrInvalidGuess, guess)
		assert.Equal(t, StatePlaying, turn.State)
	}
	assert.Zero(t, g.Attempts())
}

func TestBoardAndKeyboard(t *testing.T) {
	g, err := New("BRAVE")
	require.NoError(t, err)
	_, err = g.Apply("CRANE")
	require.NoError(t, err)
	_, err = g.Apply("BRAKE")
	require.NoError(t, err)

	board := g.Board()
	require.Len(t, board, 2)
	assert.Equal(t, []LetterStatus{StatusCorrect, StatusCorrect, StatusCorrect, StatusAbsent, StatusCorrect}, board[1])

	keys := g.Keyboard()
	assert.Equal(t, KeyAbsent, keys["K"])
	assert.Equal(t, KeyCorrect, keys["B"])
}

func TestCanonicalRuleGame(t *testing.T) {
	g, err := New("BRAVE", WithRule(RuleCanonical))
	require.NoError(t, err)
	turn, err := g.Apply("EERIE")
	require.NoError(t, err)
	assert.Equal(t, []LetterStatus{StatusAbsent, StatusAbsent, StatusPresent, StatusAbsent, StatusCorrect}, turn.Statuses)
}

func TestElapsed(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	g, err := New("BRAVE", WithClock(fixedClock(start, time.Second)))
	require.NoError(t, err)
	assert.Equal(t, start, g.StartedAt)

	_, err = g.Apply("BRAVE")
	require.NoError(t, err)
	assert.Equal(t, time.Second, g.Elapsed())
	assert.Equal(t, time.Second, g.Elapsed(), "finished games stop the clock")
}

func TestZeroValueGameUsesWallClock(t *testing.T) {
	g := &Game{Target: "BRAVE", State: StatePlaying}
	_, err := g.Apply("BRAVE")
	require.NoError(t, err)
	assert.False(t, g.FinishedAt.IsZero())
}
