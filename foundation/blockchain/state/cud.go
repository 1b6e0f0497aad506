package state

import (
	"github.com/ardanlabs/powledger/foundation/blockchain/database"
)

// AddTransaction adds a transaction to the end of the pending pool and
// returns the size of the pool. No validation happens here, pending
// transactions are provisional until mined and audited.
func (s *State) AddTransaction(tx database.Tx) int {
	s.mu.RLock()
	n := s.mempool.Add(tx)
	s.mu.RUnlock()

	s.evHandler("state: AddTransaction: tx[%s]: pending[%d]", tx, n)

	if s.Worker != nil {
		s.Worker.SignalStartMining()
	}

	return n
}
