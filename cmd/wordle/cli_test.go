package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI with stdin and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func statsFlag(t *testing.T) string {
	return "--stats=" + filepath.Join(t.TempDir(), "stats.json")
}

func TestToday(t *testing.T) {
	out, err := run(t, "", "today", "--date", "2024-01-01", "--reveal")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-01-01")
	assert.Contains(t, out, "Hint: To give reasons for or against")
	assert.Contains(t, out, "Word: ARGUE")

	out, err = run(t, "", "today", "--date", "2024-01-01")
	require.NoError(t, err)
	assert.NotContains(t, out, "ARGUE")

	_, err = run(t, "", "today", "--date", "01/01/2024")
	assert.Error(t, err)
}

func TestPlayWinAndClaim(t *testing.T) {
	sf := statsFlag(t)
	out, err := run(t, "hello!\ncable\nargue\n",
		"play", "--date", "2024-01-01", sf,
		"--claim", "ETH", "--address", "0x1234567890abcdef1234567890abcdef12345678", "--delay", "1ms")
	require.NoError(t, err)
	assert.Contains(t, out, "Enter exactly 5 letters.")
	assert.Contains(t, out, "Solved in 2/6!")
	assert.Contains(t, out, "Crypto Wordle 2024-01-01 2/6\n\n⬜🟨⬜⬜🟩\n🟩🟩🟩🟩🟩\n\nPlay and earn crypto rewards! 🚀")
	assert.Contains(t, out, "2.0x bonus")
	assert.Contains(t, out, "Sent 0.002 ETH")
	assert.Regexp(t, `Transaction: 0x[0-9a-f]{64}`, out)

	out, err = run(t, "", "stats", sf)
	require.NoError(t, err)
	assert.Contains(t, out, "Played 1 · Win % 100 · Current streak 1 · Max streak 1")
}

func TestPlayLoss(t *testing.T) {
	sf := statsFlag(t)
	out, err := run(t, strings.Repeat("cable\n", 6), "play", "--date", "2024-01-01", "--rule", "canonical", sf)
	require.NoError(t, err)
	assert.Contains(t, out, "The word was ARGUE.")
	assert.Contains(t, out, "Crypto Wordle 2024-01-01 X/6")
	assert.NotContains(t, out, "Rewards")

	out, err = run(t, "", "stats", sf)
	require.NoError(t, err)
	assert.Contains(t, out, "Played 1 · Win % 0 · Current streak 0")
}

func TestPlayAbandonedRecordsNothing(t *testing.T) {
	sf := statsFlag(t)
	out, err := run(t, "cable\n", "play", "--date", "2024-01-01", sf)
	require.NoError(t, err)
	assert.Contains(t, out, "Game abandoned")

	out, err = run(t, "", "stats", sf)
	require.NoError(t, err)
	assert.Contains(t, out, "Played 0")
}

func TestPlayRejectsBadFlags(t *testing.T) {
	_, err := run(t, "", "play", "--rule", "strict", statsFlag(t))
	assert.Error(t, err)

	_, err = run(t, "", "play", "--claim", "ETH", "--address", "0x12", statsFlag(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Address too short: 4/42 characters")
}

func TestAddress(t *testing.T) {
	out, err := run(t, "", "address", "0x1234567890abcdef1234567890abcdef12345678")
	require.NoError(t, err)
	assert.Contains(t, out, "Valid address")

	_, err = run(t, "", "address", "1234567890abcdef1234567890abcdef12345678ab")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Address must start with '0x'")
}
