package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

type minedBlock struct {
	Number       int    `json:"number"`
	Hash         string `json:"hash"`
	Nonce        uint64 `json:"nonce"`
	Transactions []any  `json:"trans"`
}

func mineCmd(w *wallet) *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "Ask the node to mine the pending transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			var blk minedBlock
			if err := post(cmd.Context(), w.url+"/v1/blocks/mine", nil, &blk); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "block[%d] hash[%s] nonce[%d] txs[%d]\n", blk.Number, blk.Hash, blk.Nonce, len(blk.Transactions))
			return nil
		},
	}
}
