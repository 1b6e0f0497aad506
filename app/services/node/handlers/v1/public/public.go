// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/ardanlabs/powledger/business/sys/metrics"
	"github.com/ardanlabs/powledger/business/web/errs"
	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/powledger/foundation/blockchain/state"
	"github.com/ardanlabs/powledger/foundation/events"
	"github.com/ardanlabs/powledger/foundation/nameservice"
	"github.com/ardanlabs/powledger/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log         *zap.SugaredLogger
	State       *state.State
	Gen         genesis.Genesis
	NS          *nameservice.NameService
	MinerKey    *ecdsa.PrivateKey
	MineTimeout time.Duration
	WS          websocket.Upgrader
	Evts        *events.Events
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return nil
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// Genesis returns the genesis information.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	gen := genesisInfo{
		Date:         h.Gen.Date,
		Difficulty:   h.State.Difficulty(),
		MiningReward: h.State.Reward(),
		Height:       h.State.Height(),
	}

	return web.Respond(ctx, w, gen, http.StatusOK)
}

// Blocks returns the chain, genesis first.
func (h Handlers) Blocks(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	dbBlocks := h.State.Blocks()

	blocks := make([]block, len(dbBlocks))
	for i, blk := range dbBlocks {
		blocks[i] = toBlock(h.NS, i, blk)
	}

	return web.Respond(ctx, w, blocks, http.StatusOK)
}

// Accounts returns the balances replayed from the mined blocks for every
// account, or for the account in the path.
func (h Handlers) Accounts(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var acts []account

	switch pk := database.PublicKey(web.Param(r, "account")); pk {
	case "":
		for pk, bal := range h.State.Accounts() {
			acts = append(acts, account{Account: pk, Name: h.NS.Lookup(pk), Balance: bal})
		}
		sort.Slice(acts, func(i, j int) bool { return acts[i].Account < acts[j].Account })

	default:
		if !pk.IsPublicKey() {
			return errs.NewTrusted(fmt.Errorf("invalid account %q", pk), http.StatusBadRequest)
		}
		acts = append(acts, account{Account: pk, Name: h.NS.Lookup(pk), Balance: h.State.Balance(pk)})
	}

	ai := actInfo{
		LatestBlock: h.State.LatestBlock().Hash(),
		Pending:     h.State.PendingCount(),
		Accounts:    acts,
	}

	return web.Respond(ctx, w, ai, http.StatusOK)
}

// Pending returns the set of transactions waiting to be mined.
func (h Handlers) Pending(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, toTxs(h.NS, h.State.Pending()), http.StatusOK)
}

// SubmitTransaction adds a signed transaction to the end of the pending pool.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var stx submitTx
	if err := web.Decode(r, &stx); err != nil {
		if web.IsFieldErrors(err) {
			return err
		}
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	tran := stx.toDatabase()

	h.Log.Infow("submit tran", "traceid", v.TraceID, "tx", tran)
	n := h.State.AddTransaction(tran)

	resp := submitResult{
		Status:  "transaction added to pending pool",
		Pending: n,
	}

	return web.Respond(ctx, w, resp, http.StatusAccepted)
}

// MineBlock mines the pending transactions into a new block with the
// reward going to the node's miner account.
func (h Handlers) MineBlock(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if h.MineTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.MineTimeout)
		defer cancel()
	}

	start := time.Now()
	blk, err := h.State.MineNewBlock(ctx, h.MinerKey)
	metrics.ObserveMine(time.Since(start), err)
	if err != nil {
		return errs.FromLedger(err)
	}

	return web.Respond(ctx, w, toBlock(h.NS, h.State.Height()-1, blk), http.StatusCreated)
}

// AddBlock accepts a block from a client. Blocks can only be mined on this
// chain so this always fails.
func (h Handlers) AddBlock(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var bd database.BlockData
	if err := web.Decode(r, &bd); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if err := h.State.AddBlock(database.ToBlock(bd)); err != nil {
		return errs.FromLedger(err)
	}

	return web.Respond(ctx, w, nil, http.StatusNoContent)
}

// Audit runs both audits over the chain and reports the outcome.
func (h Handlers) Audit(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	info := auditInfo{
		Height: h.State.Height(),
		Valid:  true,
		Strict: true,
	}

	if err := h.State.Audit(); err != nil {
		info.Valid = false
		info.Error = err.Error()
	}

	if err := h.State.AuditStrict(); err != nil {
		info.Strict = false
		info.StrictError = err.Error()
	}

	return web.Respond(ctx, w, info, http.StatusOK)
}
