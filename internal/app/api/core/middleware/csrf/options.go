package csrf

import "net/http"

// options is a struct that contains options for the CSRF middleware.
// It uses the functional options pattern for flexible configuration.
type options struct {
	tokenLength   int
	ignoreMethods []string

	errCallback func(w http.ResponseWriter, r *http.Request)
	tokenGetter func(r *http.Request) string

	sessionGetter SessionReader
	sessionWriter SessionWriter
}

// Option is a type that is used to set options for the CSRF middleware.
type Option func(*options)

// WithTokenLength sets the length of generated tokens in bytes.
// The default value is 32.
func WithTokenLength(length int) Option {
	return func(o *options) {
		o.tokenLength = length
	}
}

// WithErrorCallback sets the error callback function for the CSRF middleware.
// The error callback function is called when the CSRF token is invalid.
// The default behavior is to write a 403 Forbidden response.
func WithErrorCallback(fn func(w http.ResponseWriter, r *http.Request)) Option {
	return func(o *options) {
		o.errCallback = fn
	}
}

// WithTokenGetter sets the token getter function for the CSRF middleware.
// The default behavior is to get the token from the "X-CSRF-Token" header,
// falling back to the "_csrf" form value.
func WithTokenGetter(fn func(r *http.Request) string) Option {
	return func(o *options) {
		o.tokenGetter = fn
	}
}

func withSessionReader(fn SessionReader) Option {
	return func(o *options) {
		o.sessionGetter = fn
	}
}

func withSessionWriter(fn SessionWriter) Option {
	return func(o *options) {
		o.sessionWriter = fn
	}
}

func defaultTokenGetter(r *http.Request) string {
	if t := r.Header.Get("X-CSRF-Token"); len(t) > 0 {
		return t
	}

	if t := r.FormValue("_csrf"); len(t) > 0 {
		return t
	}

	return ""
}

func defaultErrorHandler(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, "CSRF token mismatch", http.StatusForbidden)
}

func newOptions(opts ...Option) options {
	o := options{
		tokenLength:   32,
		ignoreMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		errCallback:   defaultErrorHandler,
		tokenGetter:   defaultTokenGetter,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
