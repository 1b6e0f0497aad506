package events_test

import (
	"fmt"
	"testing"

	"github.com/ardanlabs/powledger/foundation/events"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_Events(t *testing.T) {
	t.Log("Given the need to fan out events.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen two subscribers are registered.", testID)
		{
			evts := events.New()

			a := evts.Acquire("a")
			b := evts.Acquire("b")

			if n := evts.Send("mined"); n != 2 {
				t.Fatalf("\t%s\tTest %d:\tShould deliver to both subscribers, got %d.", failed, testID, n)
			}
			if <-a != "mined" || <-b != "mined" {
				t.Fatalf("\t%s\tTest %d:\tShould receive the message.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould deliver to both subscribers.", success, testID)

			if err := evts.Release("a"); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to release: %s", failed, testID, err)
			}
			if _, open := <-a; open {
				t.Fatalf("\t%s\tTest %d:\tShould close a released channel.", failed, testID)
			}
			if err := evts.Release("a"); err == nil {
				t.Fatalf("\t%s\tTest %d:\tShould fail to release twice.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould be able to release a subscriber.", success, testID)

			for i := 0; i < 200; i++ {
				evts.Send(fmt.Sprintf("msg %d", i))
			}
			t.Logf("\t%s\tTest %d:\tShould not block on a full subscriber.", success, testID)

			evts.Shutdown()
			for range b {
			}
			t.Logf("\t%s\tTest %d:\tShould close every channel on shutdown.", success, testID)
		}
	}
}
