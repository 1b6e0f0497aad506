package cmd

import (
	"fmt"

	"github.com/ardanlabs/powledger/foundation/blockchain/signature"
	"github.com/spf13/cobra"
)

func accountCmd(w *wallet) *cobra.Command {
	return &cobra.Command{
		Use:   "account",
		Short: "Print the public key for the wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			privateKey, err := w.privateKey()
			if err != nil {
				return err
			}

			pub, err := signature.PublicKey(privateKey)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), pub)
			return nil
		},
	}
}
