package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ardanlabs/powledger/foundation/blockchain/signature"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"
)

func generateCmd(w *wallet) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate new key pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := w.privateKeyPath()

			if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("key file %s already exists", path)
			}

			if err := os.MkdirAll(w.accountPath, 0o700); err != nil {
				return err
			}

			privateKey, err := signature.GenerateKey()
			if err != nil {
				return err
			}

			if err := crypto.SaveECDSA(path, privateKey); err != nil {
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
