package errs_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/ardanlabs/powledger/business/web/errs"
	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/state"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_FromLedger(t *testing.T) {
	type table struct {
		name   string
		err    error
		status int
	}

	tt := []table{
		{"mustmine", state.ErrMustMine, http.StatusMethodNotAllowed},
		{"auth", fmt.Errorf("%w: bad key", database.ErrAuthentication), http.StatusBadRequest},
		{"timeout", fmt.Errorf("mining: %w", context.DeadlineExceeded), http.StatusServiceUnavailable},
		{"cancel", context.Canceled, http.StatusServiceUnavailable},
	}

	t.Log("Given the need to map ledger errors to web errors.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				t.Logf("\tTest %d:\tWhen handling a %s error.", testID, tst.name)
				{
					err := errs.FromLedger(tst.err)

					te := errs.GetTrusted(err)
					if te == nil {
						t.Fatalf("\t%s\tTest %d:\tShould be a trusted error.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould be a trusted error.", success, testID)

					if te.Status != tst.status {
						t.Fatalf("\t%s\tTest %d:\tShould get status %d : got %d", failed, testID, tst.status, te.Status)
					}
					t.Logf("\t%s\tTest %d:\tShould get status %d.", success, testID, tst.status)

					if !errors.Is(err, tst.err) {
						t.Fatalf("\t%s\tTest %d:\tShould unwrap to the original error.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould unwrap to the original error.", success, testID)
				}
			}
			t.Run(tst.name, f)
		}

		t.Logf("\tTest %d:\tWhen handling an unexpected error.", len(tt))
		{
			err := errors.New("disk on fire")
			if errs.IsTrusted(errs.FromLedger(err)) {
				t.Fatalf("\t%s\tShould not be trusted.", failed)
			}
			t.Logf("\t%s\tShould not be trusted.", success)

			if errs.FromLedger(nil) != nil {
				t.Fatalf("\t%s\tShould pass nil through.", failed)
			}
			t.Logf("\t%s\tShould pass nil through.", success)
		}
	}
}
