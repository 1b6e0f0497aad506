// Package accounts maintains account balances computed by replaying the
// transactions recorded in blocks.
package accounts

import (
	"sync"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
)

// Accounts manages the balances of accounts who have transacted on
// the blockchain. Accounts never seen before have a balance of zero.
type Accounts struct {
	balances map[database.PublicKey]int64
	mu       sync.RWMutex
}

// New constructs an empty set of accounts.
func New() *Accounts {
	return &Accounts{
		balances: make(map[database.PublicKey]int64),
	}
}

// FromBlocks constructs the accounts by replaying every transaction in
// every block, in order.
func FromBlocks(blocks []database.Block) *Accounts {
	act := New()
	for _, block := range blocks {
		act.ApplyBlock(block)
	}
	return act
}

// Clone makes a copy of the current accounts.
func (act *Accounts) Clone() *Accounts {
	act.mu.RLock()
	defer act.mu.RUnlock()

	accounts := New()
	for pk, balance := range act.balances {
		accounts.balances[pk] = balance
	}
	return accounts
}

// Copy makes a copy of the current balances for all accounts.
func (act *Accounts) Copy() map[database.PublicKey]int64 {
	act.mu.RLock()
	defer act.mu.RUnlock()

	balances := make(map[database.PublicKey]int64, len(act.balances))
	for pk, balance := range act.balances {
		balances[pk] = balance
	}
	return balances
}

// Balance returns the current balance for the account.
func (act *Accounts) Balance(pk database.PublicKey) int64 {
	act.mu.RLock()
	defer act.mu.RUnlock()

	return act.balances[pk]
}

// ApplyTransaction debits the source, when there is one, and credits the
// recipient. No rules are checked here, that is the job of validation.
func (act *Accounts) ApplyTransaction(tx database.Tx) {
	act.mu.Lock()
	defer act.mu.Unlock()

	if from, ok := tx.Source.Get(); ok {
		act.balances[from] -= tx.Amount
	}
	act.balances[tx.Recipient] += tx.Amount
}

// ApplyBlock applies all the transactions in the block.
func (act *Accounts) ApplyBlock(block database.Block) {
	for _, tx := range block.Transactions() {
		act.ApplyTransaction(tx)
	}
}
