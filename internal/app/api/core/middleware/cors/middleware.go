// Package cors provides a middleware that handles Cross-Origin Resource
// Sharing headers and preflight requests.
package cors

import (
	"net/http"
	"strings"
)

// Middleware is a type that creates a new CORS middleware.
type Middleware struct {
	o options
}

// New returns a new CORS middleware with the provided options.
func New(opts ...Option) *Middleware {
	o := newOptions(opts...)

	return &Middleware{
		o: o,
	}
}

// Handler returns the CORS middleware handler. Preflight OPTIONS requests
// are answered directly, all other requests get the CORS headers attached.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && m.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Add("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", strings.Join(m.o.allowedMethods, ", "))
			w.Header().Set("Access-Control-Allow-Headers", strings.Join(m.o.allowedHeaders, ", "))
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) originAllowed(origin string) bool {
	for _, allowed := range m.o.allowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

type options struct {
	allowedOrigins []string
	allowedMethods []string
	allowedHeaders []string
}

// Option is a type that is used to set options for the CORS middleware.
type Option func(*options)

// WithAllowedOrigins sets the origins that may issue cross-origin requests.
// The default allows all origins.
func WithAllowedOrigins(origins ...string) Option {
	return func(o *options) {
		o.allowedOrigins = origins
	}
}

// WithAllowedHeaders sets the request headers allowed on cross-origin requests.
func WithAllowedHeaders(headers ...string) Option {
	return func(o *options) {
		o.allowedHeaders = headers
	}
}

func newOptions(opts ...Option) options {
	o := options{
		allowedOrigins: []string{"*"},
		allowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		allowedHeaders: []string{"Content-Type", "X-CSRF-Token", "X-Request-ID"},
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
