package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

type auditInfo struct {
	Height      int    `json:"height"`
	Valid       bool   `json:"valid"`
	Error       string `json:"error"`
	Strict      bool   `json:"strict"`
	StrictError string `json:"strict_error"`
}

func auditCmd(w *wallet) *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "Ask the node to audit its chain",
		RunE: func(cmd *cobra.Command, args []string) error {
			var ai auditInfo
			if err := get(cmd.Context(), w.url+"/v1/chain/audit", &ai); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "height[%d]\n", ai.Height)
			fmt.Fprintf(out, "mineable: %s\n", verdict(ai.Valid, ai.Error))
			fmt.Fprintf(out, "strict:   %s\n", verdict(ai.Strict, ai.StrictError))

			if !ai.Valid {
				return fmt.Errorf("chain failed audit: %s", ai.Error)
			}
			return nil
		},
	}
}

func verdict(ok bool, reason string) string {
	if ok {
		return "valid"
	}
	return "invalid: " + reason
}
