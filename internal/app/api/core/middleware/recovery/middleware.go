// Package recovery provides a middleware that recovers from panics in
// downstream handlers.
package recovery

import (
	"log/slog"
	"net/http"
	"runtime"
)

// Middleware is a type that creates a new recovery middleware.
type Middleware struct {
	o options
}

// New returns a new recovery middleware with the provided options.
func New(opts ...Option) *Middleware {
	o := newOptions(opts...)

	return &Middleware{
		o: o,
	}
}

// Handler returns the recovery middleware handler. A panicking handler
// results in a 500 response instead of a crashed server process.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				stack := make([]byte, m.o.stackSize)
				stack = stack[:runtime.Stack(stack, false)]

				slog.Error("panic in request handler",
					"method", r.Method,
					"path", r.URL.Path,
					"panic", rec,
					"stack", string(stack),
				)

				m.o.errCallback(w, r)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

type options struct {
	stackSize   int
	errCallback func(w http.ResponseWriter, r *http.Request)
}

// Option is a type that is used to set options for the recovery middleware.
type Option func(*options)

// WithStackSize sets the maximum size of the recorded stack trace in bytes.
func WithStackSize(size int) Option {
	return func(o *options) {
		o.stackSize = size
	}
}

// WithErrorCallback sets the function that writes the error response after
// a recovered panic. The default writes a plain 500.
func WithErrorCallback(fn func(w http.ResponseWriter, r *http.Request)) Option {
	return func(o *options) {
		o.errCallback = fn
	}
}

func newOptions(opts ...Option) options {
	o := options{
		stackSize: 4 << 10,
		errCallback: func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "internal server error", http.StatusInternalServerError)
		},
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
