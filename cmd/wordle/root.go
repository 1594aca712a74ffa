package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/robalobadob/crypto-wordle/internal/daily"
	"github.com/robalobadob/crypto-wordle/internal/stats"
	"github.com/robalobadob/crypto-wordle/internal/words"
)

// localOwner keys the single player's record in the stats file.
const localOwner = "local"

type rootOptions struct {
	date      string
	wordsFile string
	statsFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "wordle",
		Short: "Crypto Wordle in the terminal",
		Long: `Guess the daily five-letter word in six tries.

Everyone gets the same word on the same UTC day. Win to preview the
crypto reward your performance earns.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.date, "date", "", "play a specific UTC day (YYYY-MM-DD); default today")
	cmd.PersistentFlags().StringVar(&opts.wordsFile, "words", os.Getenv("WORDS_FILE"), "answer list file (default embedded)")
	cmd.PersistentFlags().StringVar(&opts.statsFile, "stats", defaultStatsPath(), "stats file")

	cmd.AddCommand(
		newTodayCmd(opts),
		newPlayCmd(opts),
		newStatsCmd(opts),
		newAddressCmd(),
	)
	return cmd
}

func defaultStatsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "wordle-stats.json"
	}
	return filepath.Join(dir, "crypto-wordle", "stats.json")
}

func (o *rootOptions) day() (time.Time, error) {
	if o.date == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, o.date)
	if err != nil {
		return time.Time{}, fmt.Errorf("--date: %w", err)
	}
	return t, nil
}

func (o *rootOptions) selector() (*daily.Selector, error) {
	list, err := words.Load(o.wordsFile)
	if err != nil {
		return nil, err
	}
	return daily.NewSelector(list), nil
}

func (o *rootOptions) tracker() *stats.Tracker {
	return stats.NewTracker(stats.NewFileStore(o.statsFile))
}

func newTodayCmd(opts *rootOptions) *cobra.Command {
	var reveal bool
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show the day's hint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := opts.day()
			if err != nil {
				return err
			}
			sel, err := opts.selector()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  %s\n", titleStyle.Render("Crypto Wordle"), daily.DateKey(t))
			fmt.Fprintf(out, "Hint: %s\n", sel.Hint(t))
			if reveal {
				fmt.Fprintf(out, "Word: %s\n", sel.Word(t))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&reveal, "reveal", false, "print the answer")
	return cmd
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show your statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.tracker().Load(cmd.Context(), localOwner)
			if err != nil {
				return err
			}
			printStats(cmd.OutOrStdout(), st)
			return nil
		},
	}
}
