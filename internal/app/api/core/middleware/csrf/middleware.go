// Package csrf protects the portal's own mutating endpoints against
// Cross-Site Request Forgery. Tokens are bound to the portal session.
//
// This is independent of the anti-forgery protocol the portal speaks
// towards the commerce backend, see the backend package for that.
package csrf

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"slices"
)

type contextKey struct{}

// SessionReader returns the token stored in the portal session.
type SessionReader func(r *http.Request) string

// SessionWriter stores a token in the portal session.
type SessionWriter func(r *http.Request, token string)

// Middleware is a type that creates a new CSRF middleware.
type Middleware struct {
	o options
}

// New returns a new CSRF middleware with the provided options.
func New(sessionReader SessionReader, sessionWriter SessionWriter, opts ...Option) *Middleware {
	opts = append(opts, withSessionReader(sessionReader), withSessionWriter(sessionWriter))
	o := newOptions(opts...)

	return &Middleware{
		o: o,
	}
}

// Handler returns the CSRF validation handler. Mutating requests must carry
// the session token, otherwise the error callback is invoked.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if slices.Contains(m.o.ignoreMethods, r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		token := m.o.tokenGetter(r)
		storedToken := m.o.sessionGetter(r)

		if !tokenEqual(token, storedToken) {
			m.o.errCallback(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RefreshToken ensures the session has a CSRF token, generating one if
// needed, and passes it to subsequent handlers via the request context.
func (m *Middleware) RefreshToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetToken(r.Context()) != "" {
			// token already generated higher up in the chain
			next.ServeHTTP(w, r)
			return
		}

		token := m.o.sessionGetter(r)
		if token == "" {
			token = generateToken(m.o.tokenLength)
			m.o.sessionWriter(r, token)
		}

		r = r.WithContext(context.WithValue(r.Context(), contextKey{}, token))

		next.ServeHTTP(w, r)
	})
}

// GetToken retrieves the CSRF token from the given context. Ensure that the
// RefreshToken handler ran before, otherwise no token is populated.
func GetToken(ctx context.Context) string {
	token, ok := ctx.Value(contextKey{}).(string)
	if !ok {
		return ""
	}

	return token
}

func generateToken(length int) string {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		panic(err)
	}

	return base64.URLEncoding.EncodeToString(bytes)
}

// tokenEqual compares two tokens in constant time. Empty tokens never match.
func tokenEqual(a, b string) bool {
	if a == "" || b == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
