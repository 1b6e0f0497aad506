// This program is a wallet for the ledger node. It manages key files and
// talks to the node's public API.
package main

import (
	"os"

	"github.com/ardanlabs/powledger/app/tooling/wallet/cmd"
)

func main() {
	if err := cmd.New().Execute(); err != nil {
		os.Exit(1)
	}
}
