package public

import (
	"time"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/nameservice"
)

type tx struct {
	Source        database.Optional[database.PublicKey] `json:"source"`
	SourceName    string                                `json:"source_name,omitempty"`
	Recipient     database.PublicKey                    `json:"recipient"`
	RecipientName string                                `json:"recipient_name,omitempty"`
	Amount        int64                                 `json:"amount"`
	Signature     string                                `json:"signature"`
}

func toTx(ns *nameservice.NameService, tran database.Tx) tx {
	t := tx{
		Source:        tran.Source,
		Recipient:     tran.Recipient,
		RecipientName: ns.Lookup(tran.Recipient),
		Amount:        tran.Amount,
		Signature:     tran.Signature,
	}

	if src, ok := tran.Source.Get(); ok {
		t.SourceName = ns.Lookup(src)
	}

	return t
}

func toTxs(ns *nameservice.NameService, trans []database.Tx) []tx {
	txs := make([]tx, len(trans))
	for i, tran := range trans {
		txs[i] = toTx(ns, tran)
	}
	return txs
}

type block struct {
	Number       int                              `json:"number"`
	Hash         database.Optional[database.Hash] `json:"hash"`
	PrevHash     database.Optional[database.Hash] `json:"prev_hash"`
	Nonce        *uint64                          `json:"nonce"`
	Transactions []tx                             `json:"trans"`
}

func toBlock(ns *nameservice.NameService, number int, blk database.Block) block {
	bd := database.NewBlockData(blk)

	return block{
		Number:       number,
		Hash:         bd.Hash,
		PrevHash:     bd.PrevHash,
		Nonce:        bd.Nonce,
		Transactions: toTxs(ns, bd.Trans),
	}
}

type account struct {
	Account database.PublicKey `json:"account"`
	Name    string             `json:"name,omitempty"`
	Balance int64              `json:"balance"`
}

type actInfo struct {
	LatestBlock database.Optional[database.Hash] `json:"latest_block"`
	Pending     int                              `json:"pending"`
	Accounts    []account                        `json:"accounts"`
}

type genesisInfo struct {
	Date         time.Time `json:"date"`
	Difficulty   uint      `json:"difficulty"`
	MiningReward int64     `json:"mining_reward"`
	Height       int       `json:"height"`
}

type auditInfo struct {
	Height      int    `json:"height"`
	Valid       bool   `json:"valid"`
	Error       string `json:"error,omitempty"`
	Strict      bool   `json:"strict"`
	StrictError string `json:"strict_error,omitempty"`
}

// submitTx is a signed transaction sent by a wallet. Only the shape is
// checked here, the signature and amount are checked when the chain is
// audited.
type submitTx struct {
	Source    *string `json:"source" validate:"omitempty,len=66,hexadecimal"`
	Recipient string  `json:"recipient" validate:"required,len=66,hexadecimal"`
	Amount    int64   `json:"amount"`
	Signature string  `json:"signature" validate:"required,len=128,hexadecimal"`
}

func (s submitTx) toDatabase() database.Tx {
	tran := database.Tx{
		Recipient: database.PublicKey(s.Recipient),
		Amount:    s.Amount,
		Signature: s.Signature,
	}

	if s.Source != nil {
		tran.Source = database.Some(database.PublicKey(*s.Source))
	}

	return tran
}

type submitResult struct {
	Status  string `json:"status"`
	Pending int    `json:"pending"`
}
