package mempool_test

import (
	"testing"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/mempool"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestCRUD(t *testing.T) {
	type table struct {
		name string
		txs  []database.Tx
		drop int
		left []int64
	}

	tt := []table{
		{
			name: "drop-some",
			txs:  []database.Tx{{Amount: 1}, {Amount: 2}, {Amount: 3}, {Amount: 4}},
			drop: 2,
			left: []int64{3, 4},
		},
		{
			name: "drop-all",
			txs:  []database.Tx{{Amount: 1}, {Amount: 2}},
			drop: 5,
			left: []int64{},
		},
	}

	t.Log("Given the need to validate mempool api.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling a set of transaction.", testID)
			{
				f := func(t *testing.T) {
					mp := mempool.New()

					for i, tx := range tst.txs {
						if n := mp.Add(tx); n != i+1 {
							t.Fatalf("\t%s\tTest %d:\tShould get back the pool size %d, got %d.", failed, testID, i+1, n)
						}
					}
					t.Logf("\t%s\tTest %d:\tShould be able to add new transactions.", success, testID)

					for i, tx := range mp.Copy() {
						if tx.Amount != tst.txs[i].Amount {
							t.Logf("\t%s\tTest %d:\tgot: %d", failed, testID, tx.Amount)
							t.Logf("\t%s\tTest %d:\texp: %d", failed, testID, tst.txs[i].Amount)
							t.Fatalf("\t%s\tTest %d:\tShould keep insertion order.", failed, testID)
						}
					}
					t.Logf("\t%s\tTest %d:\tShould keep insertion order.", success, testID)

					mp.Drop(tst.drop)
					left := mp.Copy()
					if len(left) != len(tst.left) {
						t.Fatalf("\t%s\tTest %d:\tShould have %d transactions left, got %d.", failed, testID, len(tst.left), len(left))
					}
					for i, tx := range left {
						if tx.Amount != tst.left[i] {
							t.Fatalf("\t%s\tTest %d:\tShould drop from the front of the pool.", failed, testID)
						}
					}
					t.Logf("\t%s\tTest %d:\tShould drop from the front of the pool.", success, testID)

					if mp.Count() != len(tst.left) {
						t.Fatalf("\t%s\tTest %d:\tShould count %d transactions, got %d.", failed, testID, len(tst.left), mp.Count())
					}
					t.Logf("\t%s\tTest %d:\tShould count the pending transactions.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}
