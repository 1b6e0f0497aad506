package database

import (
	"context"
	"errors"
)

// MaxDifficulty is the number of hex characters in a hash. A higher
// difficulty could never be solved.
const MaxDifficulty = 64

// ErrAlreadySealed is returned when mining is attempted on a block that
// already carries a nonce and hash.
var ErrAlreadySealed = errors.New("block is already sealed")

// POW performs the work to find a nonce that solves the cryptographic POW
// puzzle for the block and returns the sealed block. The search has no upper
// bound on attempts, it only stops early when the context is cancelled.
func POW(ctx context.Context, difficulty uint, block Block, evHandler func(v string, args ...any)) (Block, error) {
	if block.IsSealed() {
		return Block{}, ErrAlreadySealed
	}

	ev := func(v string, args ...any) {
		if evHandler != nil {
			evHandler(v, args...)
		}
	}

	ev("database: POW: MINING: started: difficulty[%d] txs[%d]", difficulty, len(block.trans))
	defer ev("database: POW: MINING: completed")

	// Log the transactions that are a part of this potential block.
	for _, tx := range block.trans {
		ev("database: POW: MINING: tx[%s]", tx)
	}

	var attempts uint64
	for nonce := uint64(1); ; nonce++ {
		attempts++
		if attempts%1_000_000 == 0 {
			ev("database: POW: MINING: attempts[%d]", attempts)
		}

		// Did we timeout trying to solve the problem.
		if ctx.Err() != nil {
			ev("database: POW: MINING: CANCELLED: attempts[%d]", attempts)
			return Block{}, ctx.Err()
		}

		hash := block.CalculateHash(nonce)
		if !IsHashSolved(difficulty, hash) {
			continue
		}

		ev("database: POW: MINING: SOLVED: prevBlk[%s]: newBlk[%s]: attempts[%d]", block.prevHash, hash, attempts)

		return block.sealed(nonce, hash), nil
	}
}

// IsHashSolved checks the hash to make sure it complies with the POW rules.
// We need to match a difficulty number of leading hex 0's.
func IsHashSolved(difficulty uint, hash Hash) bool {
	if difficulty > MaxDifficulty || uint(len(hash)) < difficulty {
		return false
	}

	return hash[:difficulty] == ZeroHash[:difficulty]
}
