package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/angelmondragon/promocheck/api/responses"
	"github.com/angelmondragon/promocheck/pkg/logger"
)

func TestRequestIDPropagatesHeader(t *testing.T) {
	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "test", Output: buf})
	handler := RequestID(logg)(Logging(logg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})))

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	req.Header.Set(responses.RequestIDHeader, "req-abc")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get(responses.RequestIDHeader); got != "req-abc" {
		t.Fatalf("expected request id to be echoed, got %q", got)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"request_id":"req-abc"`)) {
		t.Fatalf("expected request id in log; entry=%s", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"status":202`)) {
		t.Fatalf("expected recorded status in log; entry=%s", buf.String())
	}
}

func TestRequestIDGeneratesWhenMissing(t *testing.T) {
	handler := RequestID(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := rec.Header().Get(responses.RequestIDHeader); len(got) != 36 {
		t.Fatalf("expected generated uuid, got %q", got)
	}
}

func TestRequestIDReplacesUnusableHeader(t *testing.T) {
	handler := RequestID(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	for _, bad := range []string{"has space", "tab\tid", strings.Repeat("a", maxRequestIDLength+1)} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(responses.RequestIDHeader, bad)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get(responses.RequestIDHeader); got == bad || len(got) != 36 {
			t.Fatalf("expected %q to be replaced by a uuid, got %q", bad, got)
		}
	}
}

func TestRecovererReturnsInternalError(t *testing.T) {
	handler := Recoverer(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/cart/promotions/validate", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 after panic, got %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte(`"INTERNAL_ERROR"`)) {
		t.Fatalf("expected internal error envelope, got %s", rec.Body.String())
	}
}
