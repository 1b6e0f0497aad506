// Package validate provides the rules for auditing transactions, blocks and
// whole chains. Every function is a pure predicate: a nil error means the
// value is valid and a non-nil error describes the first rule that failed.
// Nothing passed in is ever modified.
package validate

import (
	"errors"
	"fmt"

	"github.com/ardanlabs/powledger/foundation/blockchain/accounts"
	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/signature"
)

// Set of findings that can be reported. Use errors.Is to check for them.
var (
	ErrInvalidAmount   = errors.New("amount must be greater than zero")
	ErrMalformed       = errors.New("malformed transaction")
	ErrBadSignature    = errors.New("signature verification failed")
	ErrUnsealed        = errors.New("block is not sealed")
	ErrHashMismatch    = errors.New("stored hash does not match block content")
	ErrMissingGenesis  = errors.New("chain is missing a genesis block")
	ErrInvalidGenesis  = errors.New("genesis block has a previous hash or transactions")
	ErrBrokenLink      = errors.New("previous hash does not match parent block")
	ErrUnsolved        = errors.New("block hash does not solve the difficulty")
	ErrMultipleRewards = errors.New("block has more than one reward transaction")
	ErrMissingReward   = errors.New("block has no reward transaction")
	ErrWrongReward     = errors.New("reward amount does not match the chain reward")
	ErrOverspend       = errors.New("insufficient funds")
)

// Ledger represents the behavior required to audit a mined chain.
type Ledger interface {
	Blocks() []database.Block
	Difficulty() uint
	Reward() int64
}

// =============================================================================

// Transaction checks the amount is positive, the keys and signature have the
// expected encoded lengths and the signature was produced over the message
// by the source. A reward transaction has no source and is signed by its
// recipient, so it is verified against the recipient.
func Transaction(tx database.Tx) error {
	if tx.Amount <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidAmount, tx.Amount)
	}

	if len(tx.Signature) != signature.SignatureLength {
		return fmt.Errorf("%w: signature length %d, exp %d", ErrMalformed, len(tx.Signature), signature.SignatureLength)
	}

	if !tx.Recipient.IsPublicKey() {
		return fmt.Errorf("%w: recipient length %d, exp %d", ErrMalformed, len(tx.Recipient), signature.PublicKeyLength)
	}

	signer := tx.Recipient
	if from, ok := tx.Source.Get(); ok {
		if !from.IsPublicKey() {
			return fmt.Errorf("%w: source length %d, exp %d", ErrMalformed, len(from), signature.PublicKeyLength)
		}
		signer = from
	}

	if !signature.Verify(string(signer), tx.Message(), tx.Signature) {
		return fmt.Errorf("%w: tx[%s]", ErrBadSignature, tx)
	}

	return nil
}

// Block checks the stored hash matches the hash recomputed from the stored
// nonce and content, and that every transaction is valid.
func Block(block database.Block) error {
	nonce, ok := block.Nonce()
	hash, hok := block.Hash().Get()
	if !ok || !hok {
		return ErrUnsealed
	}

	if got := block.CalculateHash(nonce); got != hash {
		return fmt.Errorf("%w: got %s, exp %s", ErrHashMismatch, got, hash)
	}

	for i, tx := range block.Transactions() {
		if err := Transaction(tx); err != nil {
			return fmt.Errorf("tx[%d]: %w", i, err)
		}
	}

	return nil
}

// Chain checks the chain starts with a proper genesis block and that every
// later block is sealed, linked to its parent and valid.
func Chain(blocks []database.Block) error {
	if len(blocks) == 0 {
		return ErrMissingGenesis
	}

	genesis := blocks[0]
	if genesis.PrevHash().IsSet() || len(genesis.Transactions()) != 0 {
		return ErrInvalidGenesis
	}

	for i := 1; i < len(blocks); i++ {
		block := blocks[i]

		if !block.IsSealed() {
			return fmt.Errorf("blk[%d]: %w", i, ErrUnsealed)
		}

		if parent := blocks[i-1].Hash(); !block.PrevHash().Equal(parent) {
			return fmt.Errorf("blk[%d]: %w: got %s, exp %s", i, ErrBrokenLink, block.PrevHash(), parent)
		}

		if err := Block(block); err != nil {
			return fmt.Errorf("blk[%d]: %w", i, err)
		}
	}

	return nil
}

// MineableChain audits the policy of a mined chain. Every block after
// genesis must carry a hash solving the difficulty, no block may hold more
// than one reward, every reward must equal the chain reward and no account
// may spend more than it holds. Balances are replayed in order, so a
// transaction sees every block before it plus the earlier transactions of
// its own block. A transaction may spend the whole balance it sees, only one
// that would take the balance below zero is an overspend.
//
// Signatures and hash recomputation are not checked here, use Strict for
// the full audit.
func MineableChain(l Ledger) error {
	difficulty := l.Difficulty()
	reward := l.Reward()
	act := accounts.New()

	for i, block := range l.Blocks() {

		// Genesis carries no proof of work.
		if i > 0 {
			hash, ok := block.Hash().Get()
			if !ok || !database.IsHashSolved(difficulty, hash) {
				return fmt.Errorf("blk[%d]: %w: hash[%s] difficulty[%d]", i, ErrUnsolved, block.Hash(), difficulty)
			}
		}

		var mints int
		for j, tx := range block.Transactions() {
			switch {
			case tx.IsReward():
				mints++
				if mints > 1 {
					return fmt.Errorf("blk[%d]: tx[%d]: %w", i, j, ErrMultipleRewards)
				}
				if tx.Amount != reward {
					return fmt.Errorf("blk[%d]: tx[%d]: %w: got %d, exp %d", i, j, ErrWrongReward, tx.Amount, reward)
				}

			default:
				from, _ := tx.Source.Get()
				if bal := act.Balance(from); bal < tx.Amount {
					return fmt.Errorf("blk[%d]: tx[%d]: %w: bal %d, needed %d", i, j, ErrOverspend, bal, tx.Amount)
				}
			}

			act.ApplyTransaction(tx)
		}
	}

	return nil
}

// Strict runs the full audit: the structural chain checks including hashes
// and signatures, the mined chain policy, and that every block after genesis
// holds exactly one reward.
func Strict(l Ledger) error {
	blocks := l.Blocks()

	if err := Chain(blocks); err != nil {
		return err
	}

	if err := MineableChain(l); err != nil {
		return err
	}

	for i := 1; i < len(blocks); i++ {
		var mints int
		for _, tx := range blocks[i].Transactions() {
			if tx.IsReward() {
				mints++
			}
		}
		if mints == 0 {
			return fmt.Errorf("blk[%d]: %w", i, ErrMissingReward)
		}
	}

	return nil
}
