package worker

import (
	"context"
	"errors"
)

// miningOperations handles mining.
func (w *Worker) miningOperations() {
	w.evHandler("worker: miningOperations: G started")
	defer w.evHandler("worker: miningOperations: G completed")

	for {
		select {
		case <-w.startMining:
			if !w.isShutdown() {
				w.runMiningOperation()
			}
		case <-w.shut:
			w.evHandler("worker: miningOperations: received shut signal")
			return
		}
	}
}

// runMiningOperation mines the pending transactions into a new block.
func (w *Worker) runMiningOperation() {
	w.evHandler("worker: runMiningOperation: MINING: started")
	defer w.evHandler("worker: runMiningOperation: MINING: completed")

	// Make sure there is something in the pool to mine.
	length := w.state.PendingCount()
	if length == 0 {
		w.evHandler("worker: runMiningOperation: MINING: no transactions to mine")
		return
	}

	// After running a mining operation, check if a new operation should
	// be signaled again. This is also how a timed out operation is retried.
	defer func() {
		if w.isShutdown() {
			return
		}
		if length := w.state.PendingCount(); length > 0 {
			w.evHandler("worker: runMiningOperation: MINING: signal new mining operation: txs[%d]", length)
			w.SignalStartMining()
		}
	}()

	ctx, cancel := context.WithTimeout(w.ctx, w.mineTimeout)
	defer cancel()

	block, err := w.state.MineNewBlock(ctx, w.privateKey)
	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			w.evHandler("worker: runMiningOperation: MINING: TIMEOUT: retry with the pending set: txs[%d]", length)
		case errors.Is(err, context.Canceled):
			w.evHandler("worker: runMiningOperation: MINING: CANCELLED: by request")
		default:
			w.evHandler("worker: runMiningOperation: MINING: ERROR: %s", err)
		}
		return
	}

	w.evHandler("worker: runMiningOperation: MINING: SOLVED: blk[%s]: txs[%d]", block.Hash(), len(block.Transactions()))
}
