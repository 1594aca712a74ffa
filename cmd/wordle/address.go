package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/crypto-wordle/internal/reward"
)

func newAddressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "address <0x...>",
		Short: "Check a wallet address before claiming",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := reward.ValidateAddress(args[0])
			var ae *reward.AddressError
			if errors.As(err, &ae) {
				return fmt.Errorf("%s (%s)", ae.Msg, ae.Defect)
			}
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("✓ Valid address"))
			return nil
		},
	}
}
