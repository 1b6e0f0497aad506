package logger_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardanlabs/powledger/foundation/logger"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_Rotation(t *testing.T) {
	t.Log("Given the need to copy logs into a rotated file.")
	{
		t.Logf("\tTest 0:\tWhen a file name is provided.")
		{
			path := filepath.Join(t.TempDir(), "node.log")

			log, err := logger.New("TEST", logger.Rotation{Filename: path, MaxSizeMB: 1})
			if err != nil {
				t.Fatalf("\t%s\tShould be able to construct the logger : %s", failed, err)
			}
			t.Logf("\t%s\tShould be able to construct the logger.", success)

			log.Infow("mined block", "height", 2)
			log.Sync()

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("\t%s\tShould be able to read the log file : %s", failed, err)
			}
			t.Logf("\t%s\tShould be able to read the log file.", success)

			s := string(data)
			if !strings.Contains(s, `"mined block"`) || !strings.Contains(s, `"service":"TEST"`) {
				t.Fatalf("\t%s\tShould find the entry with the service : got %s", failed, s)
			}
			t.Logf("\t%s\tShould find the entry with the service.", success)
		}
	}
}
