package cmd_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ardanlabs/powledger/app/tooling/wallet/cmd"
	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/signature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := cmd.New()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestGenerateAndAccount(t *testing.T) {
	dir := t.TempDir()

	pub, err := run(t, "generate", "-p", dir, "-a", "kennedy")
	require.NoError(t, err)
	assert.Len(t, pub, signature.PublicKeyLength)

	got, err := run(t, "account", "-p", dir, "-a", "kennedy.ecdsa")
	require.NoError(t, err)
	assert.Equal(t, pub, got)

	_, err = run(t, "generate", "-p", dir, "-a", "kennedy")
	assert.Error(t, err, "generate should not overwrite a key file")
}

func TestSend(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "generate", "-p", dir, "-a", "bill")
	require.NoError(t, err)

	recipient, err := signature.GenerateKey()
	require.NoError(t, err)
	to, err := signature.PublicKey(recipient)
	require.NoError(t, err)

	var got database.Tx
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/tx/submit", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]any{"status": "ok", "pending": 1})
	}))
	defer srv.Close()

	out, err := run(t, "send", "-p", dir, "-a", "bill", "-u", srv.URL, "-t", to, "-v", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "pending[1]")

	assert.Equal(t, database.PublicKey(to), got.Recipient)
	assert.Equal(t, int64(5), got.Amount)
	assert.True(t, got.Source.IsSet())

	src, _ := got.Source.Get()
	assert.True(t, signature.Verify(string(src), got.Message(), got.Signature))
}

func TestSendBadRecipient(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "generate", "-p", dir, "-a", "bill")
	require.NoError(t, err)

	_, err = run(t, "send", "-p", dir, "-a", "bill", "-u", "http://127.0.0.1:0", "-t", "abc", "-v", "5")
	assert.ErrorContains(t, err, "invalid recipient")
}

func TestBalance(t *testing.T) {
	dir := t.TempDir()

	pub, err := run(t, "generate", "-p", dir, "-a", "bill")
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/accounts/list/"+pub, r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"pending":  2,
			"accounts": []any{map[string]any{"account": pub, "balance": 7}},
		})
	}))
	defer srv.Close()

	out, err := run(t, "balance", "-p", dir, "-a", "bill", "-u", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "balance[7] pending[2]")
}

func TestAudit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"height": 3,
			"valid":  false,
			"error":  "overspend",
			"strict": false,
		})
	}))
	defer srv.Close()

	out, err := run(t, "audit", "-u", srv.URL)
	assert.ErrorContains(t, err, "overspend")
	assert.Contains(t, out, "height[3]")
}

func TestNodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
		json.NewEncoder(w).Encode(map[string]any{"error": "must mine to add blocks"})
	}))
	defer srv.Close()

	_, err := run(t, "mine", "-u", srv.URL)
	assert.ErrorContains(t, err, "must mine")
}
