package cmd

import (
	"fmt"

	"github.com/ardanlabs/powledger/foundation/blockchain/signature"
	"github.com/spf13/cobra"
)

type account struct {
	Account string `json:"account"`
	Balance int64  `json:"balance"`
}

type actInfo struct {
	LatestBlock string    `json:"latest_block"`
	Pending     int       `json:"pending"`
	Accounts    []account `json:"accounts"`
}

func balanceCmd(w *wallet) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Print your balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			privateKey, err := w.privateKey()
			if err != nil {
				return err
			}

			pub, err := signature.PublicKey(privateKey)
			if err != nil {
				return err
			}

			var ai actInfo
			if err := get(cmd.Context(), w.url+"/v1/accounts/list/"+pub, &ai); err != nil {
				return err
			}

			var balance int64
			if len(ai.Accounts) > 0 {
				balance = ai.Accounts[0].Balance
			}

			fmt.Fprintf(cmd.OutOrStdout(), "account[%s] balance[%d] pending[%d]\n", pub, balance, ai.Pending)
			return nil
		},
	}
}
