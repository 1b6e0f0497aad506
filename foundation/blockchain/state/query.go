package state

import (
	"github.com/ardanlabs/powledger/foundation/blockchain/accounts"
	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/validate"
)

// Balance returns the balance for the public key replayed from the mined
// blocks. Pending transactions are not included.
func (s *State) Balance(pk database.PublicKey) int64 {
	return s.balances().Balance(pk)
}

// Accounts returns the replayed balance of every account seen.
func (s *State) Accounts() map[database.PublicKey]int64 {
	return s.balances().Copy()
}

func (s *State) balances() *accounts.Accounts {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.accounts
}

// Audit checks the mined chain policy over a snapshot of the chain.
func (s *State) Audit() error {
	return validate.MineableChain(s.snapshot())
}

// AuditStrict runs the full audit over a snapshot of the chain.
func (s *State) AuditStrict() error {
	return validate.Strict(s.snapshot())
}

// =============================================================================

// snapshot is a frozen view of the chain so an audit sees one consistent
// set of blocks even while mining continues.
type snapshot struct {
	blocks     []database.Block
	difficulty uint
	reward     int64
}

func (s *State) snapshot() snapshot {
	return snapshot{
		blocks:     s.Blocks(),
		difficulty: s.difficulty,
		reward:     s.reward,
	}
}

func (s snapshot) Blocks() []database.Block { return s.blocks }
func (s snapshot) Difficulty() uint         { return s.difficulty }
func (s snapshot) Reward() int64            { return s.reward }
