package state

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
)

// ErrMustMine is returned when a block is added directly to the chain.
var ErrMustMine = fmt.Errorf("must mine to add blocks to this blockchain: %w", errors.ErrUnsupported)

// =============================================================================

// AddBlock is not supported. Blocks only join the chain by being mined.
func (s *State) AddBlock(block database.Block) error {
	return ErrMustMine
}

// MineNewBlock creates a block holding the pending transactions plus a
// reward for the owner of the private key, solves the POW puzzle for it and
// appends it to the chain. Nothing changes if mining fails or the context
// is cancelled.
func (s *State) MineNewBlock(ctx context.Context, privateKey *ecdsa.PrivateKey) (database.Block, error) {
	s.mineMu.Lock()
	defer s.mineMu.Unlock()

	s.evHandler("state: MineNewBlock: MINING: create reward")

	reward, err := database.NewRewardTx(privateKey, s.reward)
	if err != nil {
		return database.Block{}, err
	}

	// The reward always goes last, after the pending transactions in the
	// order they were added.
	pending := s.mempool.Copy()
	trans := append(pending, reward)

	s.evHandler("state: MineNewBlock: MINING: perform POW: txs[%d]", len(trans))

	candidate := database.NewBlock(trans, s.LatestBlock().Hash())
	block, err := database.POW(ctx, s.difficulty, candidate, s.evHandler)
	if err != nil {
		return database.Block{}, err
	}

	// Just check one more time we were not cancelled.
	if ctx.Err() != nil {
		return database.Block{}, ctx.Err()
	}

	s.evHandler("state: MineNewBlock: MINING: update local state")

	// Balances are replaced, never changed in place, so a reader holding
	// the previous set keeps a consistent view.
	balances := s.balances().Clone()
	balances.ApplyBlock(block)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.blocks = append(s.blocks, block)
	s.accounts = balances
	s.mempool.Drop(len(pending))

	return block, nil
}
