package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend is a scripted commerce backend for retry tests. It serves
// sequential tokens from the issuance endpoint and rejects mutating
// requests until they present the expected token.
type fakeBackend struct {
	t *testing.T

	tokenCounter  atomic.Int32
	validToken    string
	cartRequests  []string // tokens seen on /api/cart, in order
	alwaysReject  bool
	rejectWith401 bool
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/csrf-token", func(w http.ResponseWriter, r *http.Request) {
		n := f.tokenCounter.Add(1)
		token := "tok-" + string(rune('0'+n))
		f.validToken = token
		_ = json.NewEncoder(w).Encode(map[string]string{"csrfToken": token})
	})

	mux.HandleFunc("POST /api/cart", func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("X-CSRF-Token")
		f.cartRequests = append(f.cartRequests, token)

		if f.rejectWith401 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		if f.alwaysReject || token != f.validToken {
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "CSRF_TOKEN_MISMATCH"})
			return
		}

		_ = json.NewEncoder(w).Encode(map[string]any{"items": []any{}, "total": 0})
	})

	return mux
}

func TestClient_send_retriesOnceOnTokenMismatch(t *testing.T) {
	backend := &fakeBackend{t: t}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	// simulate a stale token from an expired backend session
	client.Tokens().Set("tok-stale")

	_, err := client.AddToCart(context.Background(), "bag-1", 1)
	require.NoError(t, err)

	require.Len(t, backend.cartRequests, 2, "expected the original request plus exactly one replay")
	assert.Equal(t, "tok-stale", backend.cartRequests[0])
	assert.Equal(t, "tok-1", backend.cartRequests[1], "replay must carry the freshly fetched token")
	assert.EqualValues(t, 1, backend.tokenCounter.Load(), "exactly one token fetch expected")

	cached, ok := client.Tokens().Get()
	assert.True(t, ok)
	assert.Equal(t, "tok-1", cached, "cache must hold the refreshed token after the replay")
}

func TestClient_send_noSecondRetry(t *testing.T) {
	backend := &fakeBackend{t: t, alwaysReject: true}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	client.Tokens().Set("tok-stale")

	_, err := client.AddToCart(context.Background(), "bag-1", 1)
	require.ErrorIs(t, err, ErrTokenMismatch)

	// original request plus one replay, then the error propagates
	assert.Len(t, backend.cartRequests, 2, "a failing replay must not trigger another retry")
}

func TestClient_send_401ShortCircuits(t *testing.T) {
	backend := &fakeBackend{t: t, rejectWith401: true}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	client.Tokens().Set("tok-1")

	_, err := client.AddToCart(context.Background(), "bag-1", 1)
	require.ErrorIs(t, err, ErrUnauthenticated)

	assert.Len(t, backend.cartRequests, 1, "a 401 must not enter the retry path")
	assert.EqualValues(t, 0, backend.tokenCounter.Load(), "a 401 must not trigger a token fetch")
}

func TestClient_send_ordinary403IsNotRetried(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "INSUFFICIENT_ROLE", "message": "admins only"})
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	client.Tokens().Set("tok-1")

	_, err := client.UpdateOrderStatus(context.Background(), "order-1", "shipped")

	var apiErr *ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, "INSUFFICIENT_ROLE", apiErr.Code)
	assert.EqualValues(t, 1, requests.Load(), "a non-mismatch 403 must not be replayed")
}

func TestClient_send_businessErrorsPropagate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/csrf-token" {
			_ = json.NewEncoder(w).Encode(map[string]string{"csrfToken": "tok-1"})
			return
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "OUT_OF_STOCK", "message": "only 2 left"})
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	_, err := client.AddToCart(context.Background(), "bag-1", 5)

	var apiErr *ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "OUT_OF_STOCK", apiErr.Code)
	assert.Equal(t, "only 2 left", apiErr.Message)
}

func TestIsTokenMismatch_restoresBody(t *testing.T) {
	resp := httptest.NewRecorder()
	resp.WriteHeader(http.StatusForbidden)
	_, _ = resp.WriteString(`{"error":"SOMETHING_ELSE","message":"nope"}`)

	mismatch, restored := isTokenMismatch(resp.Result())
	require.False(t, mismatch)

	body, err := io.ReadAll(restored.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"SOMETHING_ELSE","message":"nope"}`, string(body))
}
