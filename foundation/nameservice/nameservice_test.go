package nameservice_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/signature"
	"github.com/ardanlabs/powledger/foundation/nameservice"
	"github.com/ethereum/go-ethereum/crypto"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_Lookup(t *testing.T) {
	dir := t.TempDir()

	key, err := signature.GenerateKey()
	if err != nil {
		t.Fatalf("Should be able to generate a key: %s", err)
	}
	if err := crypto.SaveECDSA(filepath.Join(dir, "miner1.ecdsa"), key); err != nil {
		t.Fatalf("Should be able to save the key: %s", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0600); err != nil {
		t.Fatalf("Should be able to write the file: %s", err)
	}
	pub, _ := signature.PublicKey(key)

	t.Log("Given the need to name accounts.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen loading a folder of keys.", testID)
		{
			ns, err := nameservice.New(dir)
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to load the folder: %s", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould be able to load the folder.", success, testID)

			if got := ns.Lookup(database.PublicKey(pub)); got != "miner1" {
				t.Fatalf("\t%s\tTest %d:\tShould find the name, got %s.", failed, testID, got)
			}
			if got := ns.Lookup("unknown"); got != "unknown" {
				t.Fatalf("\t%s\tTest %d:\tShould fall back to the key, got %s.", failed, testID, got)
			}
			t.Logf("\t%s\tTest %d:\tShould look up names.", success, testID)

			pk, err := ns.PrivateKey("miner1")
			if err != nil || signature.PrivateKeyToHex(pk) != signature.PrivateKeyToHex(key) {
				t.Fatalf("\t%s\tTest %d:\tShould return the private key.", failed, testID)
			}
			if _, err := ns.PrivateKey("miner2"); err == nil {
				t.Fatalf("\t%s\tTest %d:\tShould fail for an unknown account.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould return private keys by name.", success, testID)

			if len(ns.Copy()) != 1 {
				t.Fatalf("\t%s\tTest %d:\tShould only hold key files.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould only hold key files.", success, testID)
		}
	}
}
