package httpadapter

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequestIDMiddlewareGeneratesID(t *testing.T) {
	var seen string
	handler := requestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen == "" {
		t.Fatalf("expected generated request id in context")
	}
	if got := rec.Header().Get(requestIDHeader); got != seen {
		t.Fatalf("response header %q does not match context id %q", got, seen)
	}
}

func TestRequestIDMiddlewarePreservesIncomingID(t *testing.T) {
	var seen string
	handler := requestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "caller-supplied-id")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen != "caller-supplied-id" {
		t.Fatalf("expected caller id to survive, got %q", seen)
	}
	if got := rec.Header().Get(requestIDHeader); got != "caller-supplied-id" {
		t.Fatalf("unexpected response header %q", got)
	}
}

func TestRecoverMiddlewareTurnsPanicInto500(t *testing.T) {
	handler := accessLogMiddleware(recoverMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	req := httptest.NewRequest(http.MethodGet, "/v1/search", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, "internal error") {
		t.Fatalf("expected error body, got %q", body)
	}
}

func TestRecoverMiddlewareLeavesStartedResponseAlone(t *testing.T) {
	handler := accessLogMiddleware(recoverMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"partial":true`)); err != nil {
			t.Errorf("write: %v", err)
		}
		panic("mid-body")
	})))

	req := httptest.NewRequest(http.MethodGet, "/v1/search", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected original status to stand, got %d", rec.Code)
	}
	if body := rec.Body.String(); strings.Contains(body, "internal error") {
		t.Fatalf("must not append an error payload to a started body, got %q", body)
	}
}

func TestStatusRecorderCapturesStatusAndBytes(t *testing.T) {
	rec := httptest.NewRecorder()
	recorder := &statusRecorder{ResponseWriter: rec, statusCode: http.StatusOK}

	recorder.WriteHeader(http.StatusTeapot)
	if _, err := recorder.Write([]byte("short and stout")); err != nil {
		t.Fatalf("write: %v", err)
	}

	if recorder.statusCode != http.StatusTeapot {
		t.Fatalf("expected 418, got %d", recorder.statusCode)
	}
	if recorder.bytesWritten != len("short and stout") {
		t.Fatalf("expected %d bytes, got %d", len("short and stout"), recorder.bytesWritten)
	}
}
