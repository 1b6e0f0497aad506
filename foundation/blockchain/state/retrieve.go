package state

import (
	"github.com/ardanlabs/powledger/foundation/blockchain/database"
)

// Blocks returns a copy of the blocks in the chain, genesis first.
func (s *State) Blocks() []database.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blocks := make([]database.Block, len(s.blocks))
	copy(blocks, s.blocks)
	return blocks
}

// LatestBlock returns the head of the chain.
func (s *State) LatestBlock() database.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.blocks[len(s.blocks)-1]
}

// Height returns the number of blocks in the chain, including genesis.
func (s *State) Height() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.blocks)
}

// PendingCount returns the number of transactions waiting to be mined.
func (s *State) PendingCount() int {
	return s.mempool.Count()
}

// Pending returns a copy of the transactions waiting to be mined.
func (s *State) Pending() []database.Tx {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.mempool.Copy()
}
