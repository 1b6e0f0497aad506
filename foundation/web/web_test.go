package web_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/ardanlabs/powledger/foundation/web"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

type order struct {
	Name   string `json:"name" validate:"required"`
	Amount int64  `json:"amount" validate:"gte=0"`
}

func Test_Handle(t *testing.T) {
	t.Log("Given the need to route requests through middleware.")
	{
		t.Logf("\tTest 0:\tWhen handling a request with a path parameter.")
		{
			var calls []string
			trace := func(name string) web.Middleware {
				return func(next web.Handler) web.Handler {
					return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
						calls = append(calls, name)
						return next(ctx, w, r)
					}
				}
			}

			app := web.NewApp(nil, trace("app"))

			var param, traceID string
			h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
				param = web.Param(r, "id")
				traceID = web.GetTraceID(ctx)
				return web.Respond(ctx, w, nil, http.StatusNoContent)
			}
			app.Handle(http.MethodGet, "v1", "/items/:id", h, trace("route"))

			r := httptest.NewRequest(http.MethodGet, "/v1/items/42", nil)
			w := httptest.NewRecorder()
			app.ServeHTTP(w, r)

			if w.Code != http.StatusNoContent {
				t.Fatalf("\t%s\tShould receive a 204 status : got %d", failed, w.Code)
			}
			t.Logf("\t%s\tShould receive a 204 status.", success)

			if param != "42" {
				t.Fatalf("\t%s\tShould read the path parameter : got %q", failed, param)
			}
			t.Logf("\t%s\tShould read the path parameter.", success)

			if traceID == "" || traceID == "00000000-0000-0000-0000-000000000000" {
				t.Fatalf("\t%s\tShould set a trace id : got %q", failed, traceID)
			}
			t.Logf("\t%s\tShould set a trace id.", success)

			if strings.Join(calls, ",") != "app,route" {
				t.Fatalf("\t%s\tShould run app middleware first : got %v", failed, calls)
			}
			t.Logf("\t%s\tShould run app middleware first.", success)
		}

		t.Logf("\tTest 1:\tWhen a handler returns an error.")
		{
			shutdown := make(chan os.Signal, 1)
			app := web.NewApp(shutdown)

			h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
				return errors.New("integrity issue")
			}
			app.Handle(http.MethodGet, "", "/boom", h)

			app.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

			select {
			case <-shutdown:
				t.Logf("\t%s\tShould signal a shutdown.", success)
			default:
				t.Fatalf("\t%s\tShould signal a shutdown.", failed)
			}
		}
	}
}

func Test_Decode(t *testing.T) {
	t.Log("Given the need to decode and check request bodies.")
	{
		t.Logf("\tTest 0:\tWhen the body is valid.")
		{
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"bill","amount":10}`))

			var o order
			if err := web.Decode(r, &o); err != nil {
				t.Fatalf("\t%s\tShould decode the body : %s", failed, err)
			}
			if o.Name != "bill" || o.Amount != 10 {
				t.Fatalf("\t%s\tShould decode the values : got %+v", failed, o)
			}
			t.Logf("\t%s\tShould decode the body.", success)
		}

		t.Logf("\tTest 1:\tWhen a required field is missing.")
		{
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"amount":10}`))

			var o order
			err := web.Decode(r, &o)
			if !web.IsFieldErrors(err) {
				t.Fatalf("\t%s\tShould get field errors : got %v", failed, err)
			}
			t.Logf("\t%s\tShould get field errors.", success)

			fields := web.GetFieldErrors(err).Fields()
			if _, exists := fields["name"]; !exists {
				t.Fatalf("\t%s\tShould name the json field : got %v", failed, fields)
			}
			t.Logf("\t%s\tShould name the json field.", success)
		}

		t.Logf("\tTest 2:\tWhen the body has unknown fields.")
		{
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"bill","tip":1}`))

			var o order
			err := web.Decode(r, &o)
			if err == nil || web.IsFieldErrors(err) {
				t.Fatalf("\t%s\tShould get a decode error : got %v", failed, err)
			}
			t.Logf("\t%s\tShould get a decode error.", success)
		}
	}
}

func Test_Shutdown(t *testing.T) {
	t.Log("Given the need to identify shutdown errors.")
	{
		err := web.NewShutdownError("web value missing from context")
		wrapped := errors.Join(errors.New("context"), err)

		if !web.IsShutdown(wrapped) {
			t.Fatalf("\t%s\tShould find a wrapped shutdown error.", failed)
		}
		t.Logf("\t%s\tShould find a wrapped shutdown error.", success)

		if web.IsShutdown(errors.New("other")) {
			t.Fatalf("\t%s\tShould not match other errors.", failed)
		}
		t.Logf("\t%s\tShould not match other errors.", success)
	}
}
