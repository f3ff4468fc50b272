package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestExemptFromToken(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		exempt bool
	}{
		{"Login", "/api/creds/login", true},
		{"Signup", "/api/creds/signup", true},
		{"Logout", "/api/creds/logout", true},
		{"LoginTrailingSlash", "/api/creds/login/", true},
		{"BareLogin", "/login", true},
		{"BareSignup", "/signup", true},
		{"BareLogout", "/logout", true},
		{"Cart", "/api/cart", false},
		{"Items", "/api/items", false},
		{"Profile", "/api/profile", false},
		// substring false-positives the old matching allowed
		{"ItemNamedLogin", "/api/items/login-bag", false},
		{"NestedLogin", "/api/creds/login/extra", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exemptFromToken(tt.path); got != tt.exempt {
				t.Errorf("exemptFromToken(%q) = %t, want %t", tt.path, got, tt.exempt)
			}
		})
	}
}

func TestClient_decorate_attachesCachedToken(t *testing.T) {
	client := newTestClient(t, "https://backend.invalid")
	client.Tokens().Set("tok-1")

	req, _ := http.NewRequest(http.MethodPost, "https://backend.invalid/api/cart", nil)
	client.decorate(context.Background(), req)

	if got := req.Header.Get(csrfHeaderName); got != "tok-1" {
		t.Errorf("decorate() header = %q, want %q", got, "tok-1")
	}
}

func TestClient_decorate_skipsReads(t *testing.T) {
	var fetches atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		_, _ = w.Write([]byte(`{"csrfToken":"tok-1"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/items", nil)
	client.decorate(context.Background(), req)

	if got := req.Header.Get(csrfHeaderName); got != "" {
		t.Errorf("decorate() attached a token to a GET request: %q", got)
	}
	if fetches.Load() != 0 {
		t.Errorf("decorate() fetched a token for a GET request")
	}
}

func TestClient_decorate_skipsExemptedEndpoints(t *testing.T) {
	client := newTestClient(t, "https://backend.invalid")
	client.Tokens().Set("tok-1")

	for _, path := range []string{"/api/creds/login", "/api/creds/signup", "/api/creds/logout"} {
		req, _ := http.NewRequest(http.MethodPost, "https://backend.invalid"+path, nil)
		client.decorate(context.Background(), req)

		if got := req.Header.Get(csrfHeaderName); got != "" {
			t.Errorf("decorate() attached a token to exempted endpoint %s: %q", path, got)
		}
	}
}

func TestClient_decorate_fetchesOnFirstUse(t *testing.T) {
	var fetches atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/csrf-token" {
			fetches.Add(1)
			_, _ = w.Write([]byte(`{"csrfToken":"tok-1"}`))
		}
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/cart", nil)
	client.decorate(context.Background(), req)

	if got := req.Header.Get(csrfHeaderName); got != "tok-1" {
		t.Errorf("decorate() header = %q, want %q", got, "tok-1")
	}
	if fetches.Load() != 1 {
		t.Errorf("decorate() fetched %d tokens, want 1", fetches.Load())
	}

	// second mutating request must reuse the cached token
	req2, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/cart", nil)
	client.decorate(context.Background(), req2)

	if got := req2.Header.Get(csrfHeaderName); got != "tok-1" {
		t.Errorf("decorate() header on reuse = %q, want %q", got, "tok-1")
	}
	if fetches.Load() != 1 {
		t.Errorf("decorate() re-fetched a cached token, %d fetches total", fetches.Load())
	}
}

func TestClient_decorate_proceedsUndecoratedOnFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/cart", nil)
	client.decorate(context.Background(), req)

	// failure is swallowed at this layer, request goes out without a token
	if got := req.Header.Get(csrfHeaderName); got != "" {
		t.Errorf("decorate() attached a token despite fetch failure: %q", got)
	}
}

func TestClient_decorate_invalidateThenRefetch(t *testing.T) {
	var fetches atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		_, _ = w.Write([]byte(`{"csrfToken":"tok-2"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	client.Tokens().Set("tok-1")
	client.Tokens().Clear()

	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/cart", nil)
	client.decorate(context.Background(), req)

	if fetches.Load() != 1 {
		t.Errorf("decorate() after Clear() fetched %d tokens, want 1", fetches.Load())
	}
	if got := req.Header.Get(csrfHeaderName); got != "tok-2" {
		t.Errorf("decorate() header = %q, want %q", got, "tok-2")
	}
}
