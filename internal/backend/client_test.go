package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baglio/shop-portal/internal/domain"
)

// TestClient_fullTokenLifecycle walks the complete protocol: the cache
// starts empty, the first mutating request lazily fetches tok-1, the
// backend rejects it as stale, the client refreshes to tok-2 and the replay
// succeeds.
func TestClient_fullTokenLifecycle(t *testing.T) {
	tokens := []string{"tok-1", "tok-2"}
	issued := 0
	var cartTokens []string

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/csrf-token", func(w http.ResponseWriter, r *http.Request) {
		require.Less(t, issued, len(tokens), "more token fetches than scripted")
		_ = json.NewEncoder(w).Encode(map[string]string{"csrfToken": tokens[issued]})
		issued++
	})
	mux.HandleFunc("POST /api/cart", func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("X-CSRF-Token")
		cartTokens = append(cartTokens, token)
		if token != "tok-2" {
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "CSRF_TOKEN_MISMATCH"})
			return
		}
		_ = json.NewEncoder(w).Encode(domain.Cart{
			Items: []domain.CartItem{{ItemId: "bag-1", Quantity: 1, Price: 12900}},
			Total: 12900,
		})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	cart, err := client.AddToCart(context.Background(), "bag-1", 1)
	require.NoError(t, err)
	require.NotNil(t, cart)
	assert.Equal(t, 1, cart.Count())

	assert.Equal(t, []string{"tok-1", "tok-2"}, cartTokens)
	assert.Equal(t, 2, issued)

	cached, ok := client.Tokens().Get()
	require.True(t, ok)
	assert.Equal(t, "tok-2", cached)
}

// TestClient_loginNeverCarriesToken pins the exemption contract: a login
// request has no X-CSRF-Token header under any cache state.
func TestClient_loginNeverCarriesToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/creds/login", func(w http.ResponseWriter, r *http.Request) {
		if _, present := r.Header[http.CanonicalHeaderKey("X-CSRF-Token")]; present {
			t.Errorf("login request carried an anti-forgery token header")
		}
		_ = json.NewEncoder(w).Encode(LoginResult{
			User: domain.User{Id: "user-1", Email: "shopper@example.com", Role: domain.RoleUser},
		})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	for _, cacheState := range []string{"", "tok-cached"} {
		client := newTestClient(t, srv.URL)
		if cacheState != "" {
			client.Tokens().Set(cacheState)
		}

		result, err := client.Login(context.Background(), "shopper@example.com", "secret")
		require.NoError(t, err)
		assert.EqualValues(t, "user-1", result.User.Id)
	}
}

func TestClient_Me(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantId  domain.UserIdentifier
	}{
		{
			name:   "Authenticated",
			status: http.StatusOK,
			body:   `{"id":"user-1","email":"shopper@example.com","role":"admin"}`,
			wantId: "user-1",
		},
		{
			name:    "Unauthenticated",
			status:  http.StatusUnauthorized,
			body:    `{}`,
			wantErr: ErrUnauthenticated,
		},
		{
			name:    "MissingIdentity",
			status:  http.StatusOK,
			body:    `{}`,
			wantErr: ErrUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := newTestClient(t, srv.URL)

			user, err := client.Me(context.Background())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantId, user.Id)
			assert.True(t, user.IsAdmin())
		})
	}
}

func TestClient_Logout_clearsTokenCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	client.Tokens().Set("tok-1")

	require.NoError(t, client.Logout(context.Background()))

	if _, ok := client.Tokens().Get(); ok {
		t.Errorf("logout left a token in the cache")
	}
}

func TestClient_Get_notFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"NOT_FOUND"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	_, err := client.GetItem(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegistry_perSessionClients(t *testing.T) {
	registry := NewRegistry(newTestClient(t, "https://backend.invalid").cfg, nil)

	a1, err := registry.Client("session-a")
	require.NoError(t, err)
	a2, err := registry.Client("session-a")
	require.NoError(t, err)
	b, err := registry.Client("session-b")
	require.NoError(t, err)

	assert.Same(t, a1, a2, "same portal session must reuse its backend client")
	assert.NotSame(t, a1, b, "different portal sessions must not share a backend client")

	registry.Drop("session-a")
	a3, err := registry.Client("session-a")
	require.NoError(t, err)
	assert.NotSame(t, a1, a3, "dropped session must get a fresh client")
}
