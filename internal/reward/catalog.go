package reward

import (
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Reward is one claimable token.
type Reward struct {
	Symbol     string  `json:"symbol"`
	Name       string  `json:"name"`
	Icon       string  `json:"icon"`
	BaseAmount float64 `json:"baseAmount"`
	Decimals   int     `json:"decimals"`
}

// Amount is the multiplier-adjusted amount for a win in attempts guesses,
// formatted with the reward's decimals.
func (r Reward) Amount(attempts int) string {
	return strconv.FormatFloat(r.BaseAmount*Multiplier(attempts), 'f', r.Decimals, 64)
}

// Multiplier is the performance bonus: 2x for two guesses or fewer,
// 1.5x for three or four, 1x otherwise.
func Multiplier(attempts int) float64 {
	switch {
	case attempts <= 2:
		return 2
	case attempts <= 4:
		return 1.5
	default:
		return 1
	}
}

// Catalog is an ordered set of rewards.
type Catalog []Reward

// DefaultCatalog lists the tokens offered to winners.
func DefaultCatalog() Catalog {
	return Catalog{
		{Symbol: "ETH", Name: "Ethereum", Icon: "⟠", BaseAmount: 0.001, Decimals: 3},
		{Symbol: "USDC", Name: "USD Coin", Icon: "💵", BaseAmount: 2.50, Decimals: 2},
		{Symbol: "DEGEN", Name: "Degen", Icon: "🎩", BaseAmount: 100, Decimals: 3},
		{Symbol: "HIGHER", Name: "Higher", Icon: "📈", BaseAmount: 50, Decimals: 3},
	}
}

// Lookup finds a reward by symbol, case-insensitively.
func (c Catalog) Lookup(symbol string) (Reward, bool) {
	return lo.Find(c, func(r Reward) bool { return strings.EqualFold(r.Symbol, symbol) })
}

// Symbols returns the symbols in catalog order.
func (c Catalog) Symbols() []string {
	return lo.Map(c, func(r Reward, _ int) string { return r.Symbol })
}

// Offer is a reward priced for a particular attempt count.
type Offer struct {
	Reward
	Amount     string  `json:"amount"`
	Multiplier float64 `json:"multiplier"`
}

// Offers prices every reward for attempts.
func (c Catalog) Offers(attempts int) []Offer {
	return lo.Map(c, func(r Reward, _ int) Offer {
		return Offer{Reward: r, Amount: r.Amount(attempts), Multiplier: Multiplier(attempts)}
	})
}
