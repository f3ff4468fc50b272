package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-pkgz/routegroup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baglio/shop-portal/internal/app/api/v0/model"
	"github.com/baglio/shop-portal/internal/backend"
	"github.com/baglio/shop-portal/internal/config"
)

// sessionBackend fakes a backend that issues its session cookie at login and
// answers credential endpoints only for requests that carry it.
func sessionBackend(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authed := false
		if cookie, err := r.Cookie("backend_sid"); err == nil && cookie.Value == "sess-1" {
			authed = true
		}

		switch r.URL.Path {
		case "/api/creds/login":
			http.SetCookie(w, &http.Cookie{Name: "backend_sid", Value: "sess-1", Path: "/"})
			_ = json.NewEncoder(w).Encode(map[string]any{
				"mfaRequired": false,
				"user": map[string]any{
					"id": "u1", "email": "ann@example.com", "firstname": "Ann", "lastname": "Bast", "role": "user",
				},
			})
		case "/api/creds/me":
			if !authed {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id": "u1", "email": "ann@example.com", "role": "user",
			})
		case "/api/creds/logout":
			if !authed {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	return srv
}

// newSessionPortal wires the auth endpoint with a real session manager and a
// real client registry, cookies included, the way the server runs it.
func newSessionPortal(t *testing.T, backendUrl string) (*httptest.Server, *backend.Registry) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Web.SessionIdentifier = "shop_session"
	cfg.Web.ExternalUrl = "http://localhost:8888"

	session := NewSessionWrapper(cfg)
	registry := backend.NewRegistry(config.BackendConfig{
		BaseUrl:        backendUrl,
		RequestTimeout: 5 * time.Second,
		TokenPath:      "/api/csrf-token",
		IdentityPath:   "/api/creds/me",
	}, nil)
	clients := NewSessionClients(session, registry)
	authenticator := NewAuthenticationHandler(clients, session)
	endpoint := NewAuthEndpoint(clients, authenticator, session, NewValidator(), &fakeBus{})

	group := routegroup.New(http.NewServeMux())
	group.Use(session.LoadAndSave)
	endpoint.RegisterRoutes(group)

	srv := httptest.NewServer(group)
	t.Cleanup(srv.Close)

	return srv, registry
}

func TestSessionClients_loginSurvivesFollowUpRequests(t *testing.T) {
	backendSrv := sessionBackend(t)
	portal, _ := newSessionPortal(t, backendSrv.URL)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	browser := &http.Client{Jar: jar}

	resp, err := browser.Post(portal.URL+"/auth/login", "application/json",
		strings.NewReader(`{"Email":"ann@example.com","Password":"secret"}`))
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	portalUrl, err := url.Parse(portal.URL)
	require.NoError(t, err)
	require.NotEmpty(t, jar.Cookies(portalUrl), "login response must commit a portal session cookie")

	resp, err = browser.Get(portal.URL + "/auth/session")
	require.NoError(t, err)
	var info model.SessionInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	_ = resp.Body.Close()
	assert.True(t, info.LoggedIn, "session state must survive into the next request")

	// Logout is identity-checked against the backend, it only succeeds when
	// the follow-up request resolves the client holding the backend cookie.
	resp, err = browser.Post(portal.URL+"/auth/logout", "application/json", nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSessionClients_visitorsGetSeparateClients(t *testing.T) {
	backendSrv := sessionBackend(t)
	portal, registry := newSessionPortal(t, backendSrv.URL)

	sessionIds := make([]string, 0, 2)
	for i := 0; i < 2; i++ {
		jar, err := cookiejar.New(nil)
		require.NoError(t, err)
		browser := &http.Client{Jar: jar}

		resp, err := browser.Post(portal.URL+"/auth/login", "application/json",
			strings.NewReader(`{"Email":"ann@example.com","Password":"secret"}`))
		require.NoError(t, err)
		_ = resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		portalUrl, err := url.Parse(portal.URL)
		require.NoError(t, err)
		for _, cookie := range jar.Cookies(portalUrl) {
			if cookie.Name == "shop_session" {
				sessionIds = append(sessionIds, cookie.Value)
			}
		}
	}

	require.Len(t, sessionIds, 2)
	require.NotEmpty(t, sessionIds[0])
	assert.NotEqual(t, sessionIds[0], sessionIds[1])

	clientA, err := registry.Client(sessionIds[0])
	require.NoError(t, err)
	clientB, err := registry.Client(sessionIds[1])
	require.NoError(t, err)
	assert.NotSame(t, clientA, clientB)
}
