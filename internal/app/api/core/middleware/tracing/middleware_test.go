package tracing

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

type ctxKey struct{}

func TestMiddleware_Handler_generatesId(t *testing.T) {
	m := New(WithContextIdentifier(ctxKey{}))

	var seenId string
	handler := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenId = RequestId(r.Context(), ctxKey{})
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	if seenId == "" {
		t.Fatalf("no request id in context")
	}
	if got := rr.Header().Get("X-Request-ID"); got != seenId {
		t.Errorf("response header = %q, want %q", got, seenId)
	}
}

func TestMiddleware_Handler_reusesUpstreamId(t *testing.T) {
	m := New()

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "upstream-id")

	rr := httptest.NewRecorder()
	m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).ServeHTTP(rr, req)

	if got := rr.Header().Get("X-Request-ID"); got != "upstream-id" {
		t.Errorf("response header = %q, want upstream-id", got)
	}
}
