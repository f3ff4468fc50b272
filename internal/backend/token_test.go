package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTokenCache(t *testing.T) {
	cache := NewTokenCache()

	if _, ok := cache.Get(); ok {
		t.Errorf("Get() on a fresh cache reported a value")
	}

	cache.Set("tok-1")
	if value, ok := cache.Get(); !ok || value != "tok-1" {
		t.Errorf("Get() = %q, %t, want %q, true", value, ok, "tok-1")
	}

	cache.Set("tok-2")
	if value, _ := cache.Get(); value != "tok-2" {
		t.Errorf("Set() did not replace the cached value, got %q", value)
	}

	cache.Clear()
	if _, ok := cache.Get(); ok {
		t.Errorf("Get() after Clear() reported a value")
	}
}

func TestClient_FetchToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/csrf-token" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Method != http.MethodGet {
			t.Errorf("token fetch used method %s, want GET", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"csrfToken":"tok-1"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	token, err := client.FetchToken(context.Background())
	if err != nil {
		t.Fatalf("FetchToken() error = %v", err)
	}
	if token != "tok-1" {
		t.Errorf("FetchToken() = %q, want %q", token, "tok-1")
	}

	if cached, ok := client.Tokens().Get(); !ok || cached != "tok-1" {
		t.Errorf("token cache holds %q, %t after fetch, want %q, true", cached, ok, "tok-1")
	}
}

func TestClient_FetchToken_serverError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	client.Tokens().Set("stale")

	_, err := client.FetchToken(context.Background())

	var fetchErr *TokenFetchError
	if !errors.As(err, &fetchErr) || fetchErr.Status != http.StatusInternalServerError {
		t.Fatalf("FetchToken() error = %v, want TokenFetchError with status 500", err)
	}

	// cache must be left untouched on failure
	if cached, ok := client.Tokens().Get(); !ok || cached != "stale" {
		t.Errorf("token cache changed on fetch failure, got %q, %t", cached, ok)
	}
}

func TestClient_FetchToken_networkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from now on

	client := newTestClient(t, srv.URL)

	_, err := client.FetchToken(context.Background())

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("FetchToken() error = %v, want NetworkError", err)
	}
}
