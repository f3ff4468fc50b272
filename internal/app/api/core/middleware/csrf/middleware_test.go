package csrf

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMiddleware_Handler(t *testing.T) {
	sessionToken := "stored-token"
	sessionReader := func(r *http.Request) string {
		return sessionToken
	}
	sessionWriter := func(r *http.Request, token string) {
		sessionToken = token
	}
	m := New(sessionReader, sessionWriter)

	handler := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		method     string
		token      string
		wantStatus int
	}{
		{"ValidToken", "POST", "stored-token", http.StatusOK},
		{"ValidToken2", "PUT", "stored-token", http.StatusOK},
		{"ValidToken3", "DELETE", "stored-token", http.StatusOK},
		{"InvalidToken", "POST", "invalid-token", http.StatusForbidden},
		{"MissingToken", "POST", "", http.StatusForbidden},
		{"IgnoredMethod", "GET", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/", nil)
			if tt.token != "" {
				req.Header.Set("X-CSRF-Token", tt.token)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			if status := rr.Code; status != tt.wantStatus {
				t.Errorf("Handler() status = %d, want %d", status, tt.wantStatus)
			}
		})
	}
}

func TestMiddleware_RefreshToken(t *testing.T) {
	sessionToken := ""
	sessionWrites := 0
	sessionReader := func(r *http.Request) string {
		return sessionToken
	}
	sessionWriter := func(r *http.Request, token string) {
		sessionToken = token
		sessionWrites++
	}
	m := New(sessionReader, sessionWriter)

	handler := m.RefreshToken(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetToken(r.Context()) == "" {
			t.Errorf("RefreshToken() did not set token in context")
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if sessionToken == "" {
		t.Errorf("RefreshToken() did not set token in session")
	}

	// a second request must reuse the session token
	req = httptest.NewRequest("GET", "/", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if sessionWrites != 1 {
		t.Errorf("RefreshToken() wrote the session token %d times, want 1", sessionWrites)
	}
}

func TestTokenEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"Equal", "abc", "abc", true},
		{"NotEqual", "abc", "abd", false},
		{"EmptyGiven", "", "abc", false},
		{"EmptyStored", "abc", "", false},
		{"BothEmpty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tokenEqual(tt.a, tt.b); got != tt.want {
				t.Errorf("tokenEqual(%q, %q) = %t, want %t", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
