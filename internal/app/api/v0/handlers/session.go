package handlers

import (
	"context"
	"encoding/gob"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/baglio/shop-portal/internal/backend"
	"github.com/baglio/shop-portal/internal/config"
)

func init() {
	gob.Register(SessionData{})
}

// SessionData is the portal-side session state. It mirrors the identity the
// commerce backend confirmed at login time; the authoritative check happens
// on every protected request against the backend identity endpoint.
type SessionData struct {
	LoggedIn bool
	IsAdmin  bool

	UserIdentifier string

	Firstname string
	Lastname  string
	Email     string

	// MfaPendingUser holds the email of a user that passed the password
	// check but still has to complete the MFA challenge.
	MfaPendingUser string

	// MfaSetupUri holds the provisioning URI of a not yet activated
	// authenticator enrollment, so the QR endpoint can render it.
	MfaSetupUri string

	CsrfToken string
}

const sessionApiV0Key = "session_api_v0"

type SessionWrapper struct {
	*scs.SessionManager
}

func NewSessionWrapper(cfg *config.Config) *SessionWrapper {
	sessionManager := scs.New()
	sessionManager.Lifetime = 24 * time.Hour
	sessionManager.Cookie.Name = cfg.Web.SessionIdentifier
	sessionManager.Cookie.Secure = strings.HasPrefix(cfg.Web.ExternalUrl, "https")
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Path = "/"
	sessionManager.Cookie.Persist = false

	wrappedSessionManager := &SessionWrapper{sessionManager}

	return wrappedSessionManager
}

func (s *SessionWrapper) SetData(ctx context.Context, value SessionData) {
	s.SessionManager.Put(ctx, sessionApiV0Key, value)
}

func (s *SessionWrapper) GetData(ctx context.Context) SessionData {
	sessionData, ok := s.SessionManager.Get(ctx, sessionApiV0Key).(SessionData)
	if !ok {
		return s.defaultSessionData()
	}
	return sessionData
}

func (s *SessionWrapper) DestroyData(ctx context.Context) {
	_ = s.SessionManager.Destroy(ctx)
}

// SessionId returns the opaque session token of the current request. Backend
// clients are keyed by it, so every portal session keeps its own backend
// cookie jar and CSRF token slot. scs only issues the token when the response
// commits, so for a fresh session one is forced here; the key must be stable
// within the request and on the requests that follow it.
func (s *SessionWrapper) SessionId(ctx context.Context) string {
	token := s.SessionManager.Token(ctx)
	if token == "" {
		if err := s.SessionManager.RenewToken(ctx); err != nil {
			slog.Error("failed to issue session token", "error", err)
			return ""
		}
		token = s.SessionManager.Token(ctx)
	}
	return token
}

// RotateId issues a fresh session token while keeping the session data, so a
// token handed out before authentication never survives it.
func (s *SessionWrapper) RotateId(ctx context.Context) {
	if err := s.SessionManager.RenewToken(ctx); err != nil {
		slog.Error("failed to renew session token", "error", err)
	}
}

func (s *SessionWrapper) defaultSessionData() SessionData {
	return SessionData{
		LoggedIn:       false,
		IsAdmin:        false,
		UserIdentifier: "",
		Firstname:      "",
		Lastname:       "",
		Email:          "",
		MfaPendingUser: "",
	}
}

// SessionClients binds the scs session of a request to the backend client
// registry, so handlers can reach the backend with the cookie jar and token
// cache that belong to the calling shopper.
type SessionClients struct {
	session  SessionIdProvider
	registry *backend.Registry
}

type SessionIdProvider interface {
	// SessionId returns the opaque session token of the current request.
	SessionId(ctx context.Context) string
}

func NewSessionClients(session SessionIdProvider, registry *backend.Registry) *SessionClients {
	return &SessionClients{
		session:  session,
		registry: registry,
	}
}

func (p *SessionClients) Client(ctx context.Context) (*backend.Client, error) {
	return p.registry.Client(p.session.SessionId(ctx))
}

func (p *SessionClients) Drop(ctx context.Context) {
	p.registry.Drop(p.session.SessionId(ctx))
}
