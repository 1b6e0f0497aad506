// Package cmd contains the wallet commands.
package cmd

import (
	"crypto/ecdsa"
	"path/filepath"
	"strings"

	"github.com/ardanlabs/powledger/foundation/nameservice"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"
)

// wallet holds the flags shared by every command.
type wallet struct {
	accountName string
	accountPath string
	url         string
}

// New constructs the root command with all the wallet commands attached.
func New() *cobra.Command {
	var w wallet

	root := cobra.Command{
		Use:           "wallet",
		Short:         "Simple wallet for the ledger node",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVarP(&w.accountName, "account", "a", "private", "Name of the private key file.")
	root.PersistentFlags().StringVarP(&w.accountPath, "account-path", "p", "zblock/accounts/", "Path to the directory with private keys.")
	root.PersistentFlags().StringVarP(&w.url, "url", "u", "http://localhost:8080", "Url of the node.")

	root.AddCommand(
		generateCmd(&w),
		accountCmd(&w),
		sendCmd(&w),
		mineCmd(&w),
		balanceCmd(&w),
		auditCmd(&w),
	)

	return &root
}

func (w *wallet) privateKeyPath() string {
	name := w.accountName
	if !strings.HasSuffix(name, nameservice.KeyExtension) {
		name += nameservice.KeyExtension
	}

	return filepath.Join(w.accountPath, name)
}

func (w *wallet) privateKey() (*ecdsa.PrivateKey, error) {
	return crypto.LoadECDSA(w.privateKeyPath())
}
