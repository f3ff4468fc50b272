// Package logging provides a middleware that logs HTTP requests via slog.
package logging

import (
	"log/slog"
	"net/http"
	"time"
)

// Middleware is a type that creates a new request logging middleware.
type Middleware struct {
	o options
}

// New returns a new logging middleware with the provided options.
func New(opts ...Option) *Middleware {
	o := newOptions(opts...)

	return &Middleware{
		o: o,
	}
}

// Handler returns the logging middleware handler. It logs one line per
// completed request with method, path, status and duration.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		m.o.logger.Log(r.Context(), m.o.level, "request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", recorder.status,
			"duration", time.Since(start),
			"remote", r.RemoteAddr,
		)
	})
}

// statusRecorder captures the response status code for logging.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(status int) {
	if !r.wroteHeader {
		r.status = status
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.wroteHeader = true
	}
	return r.ResponseWriter.Write(b)
}

type options struct {
	logger *slog.Logger
	level  slog.Level
}

// Option is a type that is used to set options for the logging middleware.
type Option func(*options)

// WithLogger sets the logger instance used by the middleware.
// By default, the global slog logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLevel sets the log level for request lines. The default level is debug.
func WithLevel(level slog.Level) Option {
	return func(o *options) {
		o.level = level
	}
}

func newOptions(opts ...Option) options {
	o := options{
		logger: slog.Default(),
		level:  slog.LevelDebug,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
