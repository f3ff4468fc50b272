package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baglio/shop-portal/internal/domain"
)

func identityBackend(t *testing.T, status int, user map[string]any) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/creds/me", r.URL.Path)
		w.WriteHeader(status)
		if user != nil {
			_ = json.NewEncoder(w).Encode(user)
		}
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestAuthenticationHandler_LoggedIn_noSession(t *testing.T) {
	session := &fakeSession{}
	clients := &fixedClients{}
	h := NewAuthenticationHandler(clients, session)

	nextCalled := false
	handler := h.LoggedIn()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cart/contents", nil))

	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticationHandler_LoggedIn_browserRedirect(t *testing.T) {
	session := &fakeSession{}
	h := NewAuthenticationHandler(&fixedClients{}, session)

	handler := h.LoggedIn()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/orders/history", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestAuthenticationHandler_LoggedIn_identityConfirmed(t *testing.T) {
	srv := identityBackend(t, http.StatusOK, map[string]any{
		"id": "u1", "email": "ann@example.com", "role": "user",
	})

	session := &fakeSession{data: SessionData{LoggedIn: true, UserIdentifier: "u1"}}
	clients := &fixedClients{client: newTestBackendClient(t, srv.URL)}
	h := NewAuthenticationHandler(clients, session)

	var ctxUser *domain.ContextUserInfo
	handler := h.LoggedIn()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxUser = domain.GetUserInfo(r.Context())
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cart/contents", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, ctxUser)
	assert.Equal(t, domain.UserIdentifier("u1"), ctxUser.Id)
	assert.False(t, ctxUser.IsAdmin)
}

func TestAuthenticationHandler_LoggedIn_staleSession(t *testing.T) {
	srv := identityBackend(t, http.StatusUnauthorized, nil)

	session := &fakeSession{data: SessionData{LoggedIn: true, UserIdentifier: "u1"}}
	clients := &fixedClients{client: newTestBackendClient(t, srv.URL)}
	h := NewAuthenticationHandler(clients, session)

	nextCalled := false
	handler := h.LoggedIn()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cart/contents", nil))

	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, session.destroyed)
	assert.Equal(t, 1, clients.dropped)
}

func TestAuthenticationHandler_LoggedIn_adminScope(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		wantStatus int
	}{
		{"admin allowed", "admin", http.StatusOK},
		{"user forbidden", "user", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := identityBackend(t, http.StatusOK, map[string]any{
				"id": "u1", "email": "ann@example.com", "role": tt.role,
			})

			session := &fakeSession{data: SessionData{LoggedIn: true, UserIdentifier: "u1"}}
			clients := &fixedClients{client: newTestBackendClient(t, srv.URL)}
			h := NewAuthenticationHandler(clients, session)

			handler := h.LoggedIn(ScopeAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAuthenticationHandler_LoggedIn_browserWrongRole(t *testing.T) {
	srv := identityBackend(t, http.StatusOK, map[string]any{
		"id": "u1", "email": "ann@example.com", "role": "user",
	})

	session := &fakeSession{data: SessionData{LoggedIn: true, UserIdentifier: "u1"}}
	clients := &fixedClients{client: newTestBackendClient(t, srv.URL)}
	h := NewAuthenticationHandler(clients, session)

	nextCalled := false
	handler := h.LoggedIn(ScopeAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.False(t, session.destroyed)
}

func TestAuthenticationHandler_InfoOnly(t *testing.T) {
	session := &fakeSession{}
	h := NewAuthenticationHandler(&fixedClients{}, session)

	var ctxUser *domain.ContextUserInfo
	handler := h.InfoOnly()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxUser = domain.GetUserInfo(r.Context())
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/shop/items", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, ctxUser)
	assert.Equal(t, domain.CtxUnknownUserId, ctxUser.Id)
}

func TestUserHasScopes(t *testing.T) {
	tests := []struct {
		name    string
		session SessionData
		scopes  []Scope
		want    bool
	}{
		{"no scopes", SessionData{}, nil, true},
		{"admin has all", SessionData{IsAdmin: true}, []Scope{ScopeAdmin}, true},
		{"user lacks admin", SessionData{LoggedIn: true}, []Scope{ScopeAdmin}, false},
		{"logged in suffices", SessionData{LoggedIn: true}, []Scope{"USER"}, true},
		{"anonymous fails", SessionData{}, []Scope{"USER"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserHasScopes(tt.session, tt.scopes...))
		})
	}
}
