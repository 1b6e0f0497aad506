// Package state is the core API for the blockchain and implements all the
// business rules and processing. A State owns one in-memory chain: the
// sealed blocks, starting with genesis, and the pool of transactions
// waiting to be mined.
package state

import (
	"fmt"
	"sync"

	"github.com/ardanlabs/powledger/foundation/blockchain/accounts"
	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/mempool"
)

// EventHandler defines a function that is called when events
// occur in the processing of mining blocks.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by any
// package providing support for background mining.
type Worker interface {
	Shutdown()
	SignalStartMining()
}

// =============================================================================

// Config represents the configuration required to start the blockchain.
type Config struct {
	Difficulty uint
	Reward     int64
	EvHandler  EventHandler
}

// State manages the blockchain.
type State struct {
	difficulty uint
	reward     int64
	evHandler  EventHandler

	mu      sync.RWMutex
	mineMu  sync.Mutex
	blocks   []database.Block
	accounts *accounts.Accounts
	mempool  *mempool.Mempool

	Worker Worker
}

// New constructs a new blockchain holding only the genesis block.
func New(cfg Config) (*State, error) {
	if cfg.Difficulty > database.MaxDifficulty {
		return nil, fmt.Errorf("difficulty %d is larger than the max %d", cfg.Difficulty, database.MaxDifficulty)
	}

	if cfg.Reward <= 0 {
		return nil, fmt.Errorf("reward must be greater than zero, got %d", cfg.Reward)
	}

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	state := State{
		difficulty: cfg.Difficulty,
		reward:     cfg.Reward,
		evHandler:  ev,
		blocks:     []database.Block{database.Genesis()},
		accounts:   accounts.New(),
		mempool:    mempool.New(),
	}

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start everything up and running for the node.

	return &state, nil
}

// Shutdown cleanly brings the blockchain down.
func (s *State) Shutdown() {
	if s.Worker != nil {
		s.Worker.Shutdown()
	}
}

// Difficulty returns the number of leading zero hex digits a block hash
// needs to be valid.
func (s *State) Difficulty() uint {
	return s.difficulty
}

// Reward returns the amount minted to the miner of each block.
func (s *State) Reward() int64 {
	return s.reward
}
