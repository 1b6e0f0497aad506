package mid_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/ardanlabs/powledger/business/web/errs"
	"github.com/ardanlabs/powledger/business/web/mid"
	"github.com/ardanlabs/powledger/foundation/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type payload struct {
	Recipient string `json:"recipient" validate:"required"`
}

func newApp(t *testing.T) (*web.App, chan os.Signal) {
	t.Helper()

	log := zap.NewNop().Sugar()
	shutdown := make(chan os.Signal, 1)

	app := web.NewApp(shutdown, mid.Logger(log), mid.Errors(log), mid.Metrics(), mid.Cors("*"), mid.Panics())
	return app, shutdown
}

func serve(app *web.App, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(method, path, strings.NewReader(body)))
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) errs.Response {
	t.Helper()

	var er errs.Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&er))
	return er
}

func TestErrorsTrusted(t *testing.T) {
	app, _ := newApp(t)
	app.Handle(http.MethodPost, "v1", "/blocks/add", func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return errs.NewTrusted(errors.New("must mine"), http.StatusMethodNotAllowed)
	})

	w := serve(app, http.MethodPost, "/v1/blocks/add", "")

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "must mine", decodeResponse(t, w).Error)
}

func TestErrorsFields(t *testing.T) {
	app, _ := newApp(t)
	app.Handle(http.MethodPost, "v1", "/tx/submit", func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var p payload
		if err := web.Decode(r, &p); err != nil {
			return err
		}
		return web.Respond(ctx, w, p, http.StatusOK)
	})

	w := serve(app, http.MethodPost, "/v1/tx/submit", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	er := decodeResponse(t, w)
	assert.Equal(t, "data validation error", er.Error)
	assert.Contains(t, er.Fields, "recipient")
}

func TestErrorsUntrusted(t *testing.T) {
	app, shutdown := newApp(t)
	app.Handle(http.MethodGet, "", "/fail", func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return errors.New("database password is hunter2")
	})

	w := serve(app, http.MethodGet, "/fail", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), decodeResponse(t, w).Error)
	assert.Empty(t, shutdown)
}

func TestPanics(t *testing.T) {
	app, shutdown := newApp(t)
	app.Handle(http.MethodGet, "", "/panic", func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		panic("boom")
	})

	w := serve(app, http.MethodGet, "/panic", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, shutdown)
}

func TestShutdownError(t *testing.T) {
	app, shutdown := newApp(t)
	app.Handle(http.MethodGet, "", "/corrupt", func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return web.NewShutdownError("integrity failure")
	})

	serve(app, http.MethodGet, "/corrupt", "")

	require.Len(t, shutdown, 1)
}
