package database

import (
	"crypto/sha256"
	"encoding/json"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
)

// Hash is the hex encoded sha256 digest of a block's content.
type Hash string

// ZeroHash represents a hash code of zeros. It is only produced when block
// content can't be serialized.
const ZeroHash Hash = "0000000000000000000000000000000000000000000000000000000000000000"

// ComputeHash returns the digest for the block content. The content is
// serialized in a fixed order: the transactions as a JSON array, the
// previous hash ("null" when absent) and the nonce in decimal. Any party
// hashing the same content gets the same value.
func ComputeHash(trans []Tx, prevHash Optional[Hash], nonce uint64) Hash {
	if trans == nil {
		trans = []Tx{}
	}

	data, err := json.Marshal(trans)
	if err != nil {
		return ZeroHash
	}

	h := sha256.New()
	h.Write(data)
	h.Write([]byte(prevHash.String()))
	h.Write([]byte(strconv.FormatUint(nonce, 10)))

	return Hash(common.Bytes2Hex(h.Sum(nil)))
}

// =============================================================================

// Block represents a group of transactions batched together. A block starts
// unsealed and is sealed exactly once by the mining engine, which sets the
// nonce and hash together.
type Block struct {
	trans    []Tx
	prevHash Optional[Hash]
	nonce    uint64
	hash     Optional[Hash]
	hasNonce bool
}

// NewBlock constructs an unsealed block. The transactions keep the order
// they are provided in.
func NewBlock(trans []Tx, prevHash Optional[Hash]) Block {
	cpy := make([]Tx, len(trans))
	copy(cpy, trans)

	return Block{
		trans:    cpy,
		prevHash: prevHash,
	}
}

// Genesis constructs the first block of every chain. It has no
// transactions, no previous hash and is never sealed.
func Genesis() Block {
	return NewBlock(nil, None[Hash]())
}

// Transactions returns a copy of the transactions in the block.
func (b Block) Transactions() []Tx {
	cpy := make([]Tx, len(b.trans))
	copy(cpy, b.trans)
	return cpy
}

// PrevHash returns the hash of the block this block follows.
func (b Block) PrevHash() Optional[Hash] {
	return b.prevHash
}

// Nonce returns the nonce that solved the block, if sealed.
func (b Block) Nonce() (uint64, bool) {
	return b.nonce, b.hasNonce
}

// Hash returns the stored hash of the block, if sealed.
func (b Block) Hash() Optional[Hash] {
	return b.hash
}

// IsSealed reports whether both the nonce and hash are set.
func (b Block) IsSealed() bool {
	return b.hasNonce && b.hash.IsSet()
}

// CalculateHash computes the hash of the block content for the nonce.
func (b Block) CalculateHash(nonce uint64) Hash {
	return ComputeHash(b.trans, b.prevHash, nonce)
}

// sealed returns a copy of the block with the nonce and hash fixed.
func (b Block) sealed(nonce uint64, hash Hash) Block {
	b.trans = b.Transactions()
	b.nonce = nonce
	b.hasNonce = true
	b.hash = Some(hash)
	return b
}

// =============================================================================

// BlockData is the wire representation of a block.
type BlockData struct {
	Hash     Optional[Hash] `json:"hash"`
	PrevHash Optional[Hash] `json:"prev_hash"`
	Nonce    *uint64        `json:"nonce"`
	Trans    []Tx           `json:"trans"`
}

// NewBlockData constructs the value to serialize.
func NewBlockData(block Block) BlockData {
	bd := BlockData{
		Hash:     block.hash,
		PrevHash: block.prevHash,
		Trans:    block.Transactions(),
	}

	if nonce, ok := block.Nonce(); ok {
		bd.Nonce = &nonce
	}

	return bd
}

// ToBlock converts a BlockData into a Block. The stored hash is kept as
// provided and is not recomputed, validation is responsible for that.
func ToBlock(bd BlockData) Block {
	b := NewBlock(bd.Trans, bd.PrevHash)
	b.hash = bd.Hash

	if bd.Nonce != nil {
		b.nonce = *bd.Nonce
		b.hasNonce = true
	}

	return b
}
