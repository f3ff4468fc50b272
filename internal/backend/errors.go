package backend

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated is returned whenever the backend answers with a 401.
// Callers are expected to drop the session and redirect to the login page,
// this condition is never retried.
var ErrUnauthenticated = errors.New("backend session is not authenticated")

// ErrTokenMismatch is returned when the backend rejected the anti-forgery
// token even after a fresh token was fetched and the request was replayed.
var ErrTokenMismatch = errors.New("anti-forgery token rejected by backend")

// csrfMismatchCode is the sentinel error code the backend uses to signal a
// stale anti-forgery token. Only a 403 carrying this code is ever replayed.
const csrfMismatchCode = "CSRF_TOKEN_MISMATCH"

// NetworkError indicates that a request could not be completed at the
// transport level (DNS, TLS, connectivity). It is never retried.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("backend unreachable: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// TokenFetchError indicates that the token issuance endpoint returned a
// non-2xx status. Decoration proceeds without a token in that case, the
// error is only surfaced when a replay depends on a fresh token.
type TokenFetchError struct {
	Status int
}

func (e *TokenFetchError) Error() string {
	return fmt.Sprintf("token endpoint returned status %d", e.Status)
}

// ApiError is a business-level failure reported by the backend. The portal
// does not interpret these, it passes them through to the caller for
// user-facing messaging.
type ApiError struct {
	Status  int
	Code    string
	Message string
}

func (e *ApiError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("backend error %d (%s)", e.Status, e.Code)
}
