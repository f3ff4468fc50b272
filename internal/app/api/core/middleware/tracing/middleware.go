// Package tracing provides a middleware that assigns a request ID to every
// incoming request.
package tracing

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Middleware is a type that creates a new tracing middleware. The tracing
// middleware can be used to trace requests based on a request ID header.
type Middleware struct {
	o options
}

// New returns a new tracing middleware with the provided options.
func New(opts ...Option) *Middleware {
	o := newOptions(opts...)

	return &Middleware{
		o: o,
	}
}

// Handler returns the tracing middleware handler. An upstream request ID is
// reused if present, otherwise a new one is generated.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqId := r.Header.Get(m.o.headerIdentifier)
		if reqId == "" {
			reqId = uuid.NewString()
		}

		if m.o.headerIdentifier != "" {
			w.Header().Set(m.o.headerIdentifier, reqId)
		}

		if m.o.contextIdentifier != nil {
			ctx := context.WithValue(r.Context(), m.o.contextIdentifier, reqId)
			r = r.WithContext(ctx)
		}

		next.ServeHTTP(w, r)
	})
}

// RequestId extracts the request ID from the given context. It returns an
// empty string if the middleware did not run.
func RequestId(ctx context.Context, contextIdentifier any) string {
	reqId, ok := ctx.Value(contextIdentifier).(string)
	if !ok {
		return ""
	}
	return reqId
}

type options struct {
	headerIdentifier  string
	contextIdentifier any
}

// Option is a type that is used to set options for the tracing middleware.
type Option func(*options)

// WithHeaderIdentifier specifies the header name for the request id that is
// read from the request and added to the response headers.
func WithHeaderIdentifier(identifier string) Option {
	return func(o *options) {
		o.headerIdentifier = identifier
	}
}

// WithContextIdentifier specifies the context key under which the request
// id is stored. If nil, the request id is not added to the context.
func WithContextIdentifier(identifier any) Option {
	return func(o *options) {
		o.contextIdentifier = identifier
	}
}

func newOptions(opts ...Option) options {
	o := options{
		headerIdentifier: "X-Request-ID",
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
