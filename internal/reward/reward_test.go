package reward

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/robalobadob/crypto-wordle/internal/database"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const goodAddr = "0x1234567890abcdef1234567890ABCDEF12345678"

func TestValidateAddress(t *testing.T) {
	cases := []struct {
		in     string
		defect Defect
		msg    string
	}{
		{"", DefectRequired, "Wallet address is required"},
		{"   ", DefectRequired, "Wallet address is required"},
		{"1x1234567890abcdef1234567890abcdef12345678", DefectMissingPrefix, "Address must start with '0x'"},
		{"0x1234", DefectTooShort, "Address too short: 6/42 characters"},
		{goodAddr + "9", DefectTooLong, "Address too long: 43/42 characters"},
		{"0x1234567890abcdef1234567890abcdef1234567g", DefectInvalidChars, "Invalid characters. Only 0-9, a-f, A-F allowed after '0x'"},
	}
	for _, tc := range cases {
		err := ValidateAddress(tc.in)
		var ae *AddressError
		require.ErrorAs(t, err, &ae, tc.in)
		assert.Equal(t, tc.defect, ae.Defect, tc.in)
		assert.Equal(t, tc.msg, ae.Error(), tc.in)
		assert.ErrorIs(t, err, ErrInvalidDestination)
	}

	assert.NoError(t, ValidateAddress(goodAddr))
	assert.NoError(t, ValidateAddress("  "+goodAddr+"\n"))
}

func TestValidateDisplayName(t *testing.T) {
	for _, ok := range []string{"ab", "satoshi_21", "x-y", strings.Repeat("a", 20)} {
		assert.NoError(t, ValidateDisplayName(ok), ok)
	}
	for _, bad := range []string{"", "a", strings.Repeat("a", 21), "no spaces", "émile"} {
		assert.Error(t, ValidateDisplayName(bad), bad)
	}
}

func TestMultiplier(t *testing.T) {
	want := map[int]float64{1: 2, 2: 2, 3: 1.5, 4: 1.5, 5: 1, 6: 1}
	for n, m := range want {
		assert.Equal(t, m, Multiplier(n), "attempts=%d", n)
	}
}

func TestCatalog(t *testing.T) {
	c := DefaultCatalog()
	assert.Equal(t, []string{"ETH", "USDC", "DEGEN", "HIGHER"}, c.Symbols())

	eth, ok := c.Lookup("eth")
	require.True(t, ok)
	assert.Equal(t, "0.002", eth.Amount(2))
	assert.Equal(t, "0.001", eth.Amount(6))

	usdc, _ := c.Lookup("USDC")
	assert.Equal(t, "3.75", usdc.Amount(3))
	assert.Equal(t, "2.50", usdc.Amount(5))

	degen, _ := c.Lookup("DEGEN")
	assert.Equal(t, "100.000", degen.Amount(6))

	_, ok = c.Lookup("DOGE")
	assert.False(t, ok)

	offers := c.Offers(4)
	require.Len(t, offers, 4)
	assert.Equal(t, "75.000", offers[3].Amount)
	assert.Equal(t, 1.5, offers[3].Multiplier)
}

var txPattern = regexp.MustCompile(`^0x[0-9a-f]{64}$`)

func TestMockClaimer(t *testing.T) {
	m := NewMockClaimer(time.Millisecond)
	rc, err := m.Claim(context.Background(), ClaimRequest{
		RewardSymbol: "USDC", DestinationAddress: goodAddr, AttemptCount: 2, DisplayName: "alice",
	})
	require.NoError(t, err)
	assert.Regexp(t, txPattern, rc.TransactionID)
	assert.Equal(t, "USDC", rc.Symbol)
	assert.Equal(t, "5.00", rc.Amount)
	assert.Equal(t, 2.0, rc.Multiplier)
}

func TestMockClaimerFailures(t *testing.T) {
	ctx := context.Background()
	m := NewMockClaimer(time.Millisecond)

	_, err := m.Claim(ctx, ClaimRequest{RewardSymbol: "ETH", DestinationAddress: "nope"})
	assert.ErrorIs(t, err, ErrInvalidDestination)

	_, err = m.Claim(ctx, ClaimRequest{RewardSymbol: "DOGE", DestinationAddress: goodAddr})
	assert.ErrorIs(t, err, ErrUnknownReward)

	m.Fail = ErrRejected
	_, err = m.Claim(ctx, ClaimRequest{RewardSymbol: "ETH", DestinationAddress: goodAddr})
	assert.ErrorIs(t, err, ErrRejected)
}

func TestMockClaimerHonoursContext(t *testing.T) {
	m := NewMockClaimer(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err := m.Claim(ctx, ClaimRequest{RewardSymbol: "ETH", DestinationAddress: goodAddr})
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Less(t, time.Since(start), time.Second)

	ctx, cancel = context.WithCancel(context.Background())
	cancel()
	_, err = m.Claim(ctx, ClaimRequest{RewardSymbol: "ETH", DestinationAddress: goodAddr})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestTransactionIDUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id, err := TransactionID()
		require.NoError(t, err)
		assert.Regexp(t, txPattern, id)
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestLedger(t *testing.T) {
	ctx := context.Background()
	db, err := database.OpenMigrated(":memory:")
	require.NoError(t, err)
	defer db.Close()
	l := NewLedger(db)

	c := Claim{GameID: "g1", OwnerID: "alice", Date: "2025-06-15", Symbol: "ETH", Amount: "0.002",
		Address: goodAddr, Attempts: 2}
	require.NoError(t, l.Reserve(ctx, c))

	pending, err := l.ForOwner(ctx, "alice", 0)
	require.NoError(t, err)
	assert.Empty(t, pending, "pending reservations are not listed")

	assert.ErrorIs(t, l.Reserve(ctx, c), ErrAlreadyClaimed)
	c.GameID = "g2"
	assert.ErrorIs(t, l.Reserve(ctx, c), ErrAlreadyClaimed, "second claim same owner and day")

	require.NoError(t, l.Complete(ctx, "g1", Receipt{Symbol: "ETH", Amount: "0.002", TransactionID: "0xabc"}))
	assert.Error(t, l.Complete(ctx, "g1", Receipt{TransactionID: "0xdef"}), "already completed")
	require.NoError(t, l.Release(ctx, "g1"))
	assert.ErrorIs(t, l.Reserve(ctx, Claim{GameID: "g1", OwnerID: "bob", Date: "2025-06-17"}), ErrAlreadyClaimed,
		"release leaves completed claims alone")

	c.Date = "2025-06-16"
	require.NoError(t, l.Reserve(ctx, c))
	require.NoError(t, l.Complete(ctx, "g2", Receipt{Symbol: "ETH", Amount: "0.002", TransactionID: "0x123"}))

	require.NoError(t, l.Reserve(ctx, Claim{GameID: "g3", OwnerID: "alice", Date: "2025-06-18", Symbol: "ETH", Amount: "1"}))
	require.NoError(t, l.Release(ctx, "g3"))
	require.NoError(t, l.Reserve(ctx, Claim{GameID: "g3", OwnerID: "alice", Date: "2025-06-18", Symbol: "ETH", Amount: "1"}),
		"released reservation can be taken again")

	list, err := l.ForOwner(ctx, "alice", 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "g2", list[0].GameID)
}
