package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/robalobadob/crypto-wordle/internal/daily"
	"github.com/robalobadob/crypto-wordle/internal/game"
	"github.com/robalobadob/crypto-wordle/internal/reward"
	"github.com/robalobadob/crypto-wordle/internal/share"
)

type playOptions struct {
	rule    string
	claim   string
	address string
	name    string
	delay   time.Duration
	timeout time.Duration
}

func newPlayCmd(root *rootOptions) *cobra.Command {
	opts := &playOptions{}
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the daily word",
		Long: `Reads one guess per line from stdin. Statistics are saved to the
stats file when the game ends.

Winners can claim a (simulated) reward in the same run:
  wordle play --claim ETH --address 0x... --name satoshi`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, root, opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.rule, "rule", string(game.RuleIncludes), "duplicate-letter rule: includes|canonical")
	f.StringVar(&opts.claim, "claim", "", "reward symbol to claim on a win (ETH, USDC, DEGEN, HIGHER)")
	f.StringVar(&opts.address, "address", "", "wallet address for --claim")
	f.StringVar(&opts.name, "name", "", "gaming name attached to the claim")
	f.DurationVar(&opts.delay, "delay", 3*time.Second, "simulated transaction delay")
	f.DurationVar(&opts.timeout, "timeout", 10*time.Second, "give up on the claim after this long")
	return cmd
}

func runPlay(cmd *cobra.Command, root *rootOptions, opts *playOptions) error {
	rule, err := game.ParseRule(opts.rule)
	if err != nil {
		return err
	}
	if opts.claim != "" {
		if err := reward.ValidateAddress(opts.address); err != nil {
			return fmt.Errorf("--address: %w", err)
		}
		if opts.name != "" {
			if err := reward.ValidateDisplayName(opts.name); err != nil {
				return fmt.Errorf("--name: %w", err)
			}
		}
	}
	t, err := root.day()
	if err != nil {
		return err
	}
	sel, err := root.selector()
	if err != nil {
		return err
	}
	date, idx := daily.DateKey(t), sel.Index(t)
	g, err := game.New(sel.List().At(idx), game.WithRule(rule), game.WithDaily(date, idx))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s  %s\n", titleStyle.Render("Crypto Wordle"), date)
	fmt.Fprintf(out, "Hint: %s\n", sel.Hint(t))
	fmt.Fprintf(out, "Guess the %d-letter word in %d tries.\n\n", game.WordLength, game.MaxGuesses)

	in := bufio.NewScanner(cmd.InOrStdin())
	for !g.Finished() {
		fmt.Fprintf(out, "%d/%d > ", g.Attempts()+1, game.MaxGuesses)
		if !in.Scan() {
			fmt.Fprintln(out)
			fmt.Fprintln(out, mutedStyle.Render("Game abandoned; nothing recorded."))
			return in.Err()
		}
		turn, err := g.Apply(in.Text())
		if errors.Is(err, game.ErrInvalidGuess) {
			fmt.Fprintln(out, errorStyle.Render("Enter exactly 5 letters."))
			continue
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(out, renderRow(turn.Guess, turn.Statuses))
		fmt.Fprintln(out, renderKeyboard(g.Keyboard()))
		fmt.Fprintln(out)
	}

	if g.Won() {
		fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("Solved in %d/%d!", g.Attempts(), game.MaxGuesses)))
	} else {
		fmt.Fprintln(out, errorStyle.Render("Out of guesses. The word was "+g.Target+"."))
	}

	st, err := root.tracker().RecordGame(cmd.Context(), localOwner, g.Won())
	if err != nil {
		return err
	}
	printStats(out, st)
	fmt.Fprintln(out)
	fmt.Fprintln(out, share.Render(date, g.Board(), g.Won(), g.Attempts()))

	if !g.Won() {
		return nil
	}
	fmt.Fprintln(out)
	printOffers(out, g.Attempts())
	if opts.claim == "" {
		return nil
	}
	return claim(cmd.Context(), out, opts, g.Attempts())
}

func printOffers(w io.Writer, attempts int) {
	fmt.Fprintf(w, "%s (%.1fx bonus)\n", titleStyle.Render("Rewards"), reward.Multiplier(attempts))
	for _, o := range reward.DefaultCatalog().Offers(attempts) {
		fmt.Fprintf(w, "  %s %-6s %s\n", o.Icon, o.Symbol, o.Amount)
	}
}

func claim(ctx context.Context, w io.Writer, opts *playOptions, attempts int) error {
	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	fmt.Fprintln(w, mutedStyle.Render("Sending reward..."))
	rc, err := reward.NewMockClaimer(opts.delay).Claim(ctx, reward.ClaimRequest{
		RewardSymbol:       opts.claim,
		DestinationAddress: opts.address,
		AttemptCount:       attempts,
		DisplayName:        opts.name,
	})
	if err != nil {
		return fmt.Errorf("claim failed: %w", err)
	}
	fmt.Fprintln(w, successStyle.Render(fmt.Sprintf("Sent %s %s", rc.Amount, rc.Symbol)))
	fmt.Fprintf(w, "Transaction: %s\n", rc.TransactionID)
	return nil
}
