// Package share renders the spoiler-free result text players post after a game.
package share

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/robalobadob/crypto-wordle/internal/game"
)

const footer = "Play and earn crypto rewards! 🚀"

// Tile maps a letter status to its emoji square.
func Tile(s game.LetterStatus) string {
	switch s {
	case game.StatusCorrect:
		return "🟩"
	case game.StatusPresent:
		return "🟨"
	default:
		return "⬜"
	}
}

// Render builds the share text: header, blank line, one emoji row per guess,
// blank line, footer. A loss shows X/6.
func Render(date string, grid [][]game.LetterStatus, won bool, attempts int) string {
	result := "X/6"
	if won {
		result = fmt.Sprintf("%d/%d", attempts, game.MaxGuesses)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Crypto Wordle %s %s\n\n", date, result)
	for _, row := range grid {
		for _, s := range row {
			b.WriteString(Tile(s))
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(footer)
	return b.String()
}

// Links are compose URLs for posting text on social networks.
type Links struct {
	X        string `json:"x"`
	Warpcast string `json:"warpcast"`
}

// LinksFor returns compose links prefilled with text.
func LinksFor(text string) Links {
	q := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return Links{
		X:        "https://twitter.com/intent/tweet?text=" + q,
		Warpcast: "https://warpcast.com/~/compose?text=" + q,
	}
}
