package cmd

import (
	"fmt"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/spf13/cobra"
)

type submitResult struct {
	Status  string `json:"status"`
	Pending int    `json:"pending"`
}

func sendCmd(w *wallet) *cobra.Command {
	var (
		to     string
		amount int64
	)

	cmd := cobra.Command{
		Use:   "send",
		Short: "Sign a transaction and submit it to the node",
		RunE: func(cmd *cobra.Command, args []string) error {
			privateKey, err := w.privateKey()
			if err != nil {
				return err
			}

			recipient := database.PublicKey(to)
			if !recipient.IsPublicKey() {
				return fmt.Errorf("invalid recipient %q", to)
			}

			tx, err := database.NewTx(privateKey, database.Some(recipient), amount)
			if err != nil {
				return err
			}

			var res submitResult
			if err := post(cmd.Context(), w.url+"/v1/tx/submit", tx, &res); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s pending[%d]\n", tx, res.Status, res.Pending)
			return nil
		},
	}

	cmd.Flags().StringVarP(&to, "to", "t", "", "Public key of the recipient.")
	cmd.Flags().Int64VarP(&amount, "amount", "v", 0, "Amount to send.")
	cmd.MarkFlagRequired("to")

	return &cmd
}
