package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/crypto-wordle/internal/game"
	"github.com/robalobadob/crypto-wordle/internal/stats"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8B5CF6"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))

	tileBase = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("#FFFFFF"))
	tiles    = map[game.LetterStatus]lipgloss.Style{
		game.StatusCorrect: tileBase.Background(lipgloss.Color("#16A34A")),
		game.StatusPresent: tileBase.Background(lipgloss.Color("#CA8A04")),
		game.StatusAbsent:  tileBase.Background(lipgloss.Color("#4B5563")),
	}
	keys = map[game.KeyStatus]lipgloss.Style{
		game.KeyCorrect: lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A")).Bold(true),
		game.KeyPresent: lipgloss.NewStyle().Foreground(lipgloss.Color("#CA8A04")).Bold(true),
		game.KeyAbsent:  lipgloss.NewStyle().Foreground(lipgloss.Color("#4B5563")).Strikethrough(true),
		game.KeyDefault: lipgloss.NewStyle(),
	}
)

var keyboardRows = []string{"QWERTYUIOP", "ASDFGHJKL", "ZXCVBNM"}

// renderRow draws one guess as coloured tiles.
func renderRow(guess string, statuses []game.LetterStatus) string {
	cells := make([]string, len(guess))
	for i := range guess {
		cells[i] = tiles[statuses[i]].Render(string(guess[i]))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// renderKeyboard draws the QWERTY layout with each key in its best status.
func renderKeyboard(kb map[string]game.KeyStatus) string {
	lines := make([]string, len(keyboardRows))
	for i, row := range keyboardRows {
		var b strings.Builder
		for j, r := range row {
			if j > 0 {
				b.WriteByte(' ')
			}
			st, ok := kb[string(r)]
			if !ok {
				st = game.KeyDefault
			}
			b.WriteString(keys[st].Render(string(r)))
		}
		lines[i] = strings.Repeat(" ", i) + b.String()
	}
	return strings.Join(lines, "\n")
}

func printStats(w io.Writer, s stats.Stats) {
	fmt.Fprintln(w, titleStyle.Render("Statistics"))
	fmt.Fprintf(w, "Played %d · Win %% %d · Current streak %d · Max streak %d\n",
		s.GamesPlayed, s.WinRate(), s.CurrentStreak, s.MaxStreak)
}
