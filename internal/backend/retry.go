package backend

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
)

// send performs the request/response cycle with the single-replay contract:
//
//   - a transport failure is returned as NetworkError, never retried
//   - a 401 is returned as ErrUnauthenticated, never retried
//   - a 403 carrying the token-mismatch sentinel invalidates the token
//     cache, fetches a fresh token, re-attaches it to the original request
//     and resends exactly once; the replay outcome is terminal
//   - everything else is handed back to the caller untouched
//
// payload is the already-encoded request body, needed to rebuild the body
// reader for the replay.
func (c *Client) send(req *http.Request, payload []byte) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	c.metrics.BackendRequest(req.Method, resp.StatusCode)

	if resp.StatusCode == http.StatusUnauthorized {
		drain(resp)
		return nil, ErrUnauthenticated
	}

	mismatch, resp2 := isTokenMismatch(resp)
	if !mismatch {
		return resp2, nil
	}
	drain(resp2)

	// stale token: refresh and replay once
	c.tokens.Clear()
	token, err := c.FetchToken(req.Context())
	if err != nil {
		return nil, err
	}

	slog.Debug("replaying request with refreshed anti-forgery token",
		"method", req.Method, "path", req.URL.Path)
	c.metrics.TokenRetry()

	replay := req.Clone(req.Context())
	if payload != nil {
		replay.Body = io.NopCloser(bytes.NewReader(payload))
		replay.ContentLength = int64(len(payload))
	}
	replay.Header.Set(csrfHeaderName, token)

	resp, err = c.http.Do(replay)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	c.metrics.BackendRequest(replay.Method, resp.StatusCode)

	if resp.StatusCode == http.StatusUnauthorized {
		drain(resp)
		return nil, ErrUnauthenticated
	}

	// no second retry, a persistently rejecting backend must not cause a
	// retry storm
	if mismatch, resp = isTokenMismatch(resp); mismatch {
		drain(resp)
		return nil, ErrTokenMismatch
	}

	return resp, nil
}

// isTokenMismatch checks whether the response is the backend's stale-token
// rejection: a 403 whose body carries the CSRF_TOKEN_MISMATCH error code.
// Any other 403 is a regular authorization failure. Since the check has to
// read the body, a response that turns out not to be a mismatch is returned
// with its body restored.
func isTokenMismatch(resp *http.Response) (bool, *http.Response) {
	if resp.StatusCode != http.StatusForbidden {
		return false, resp
	}

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return false, resp
	}

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return false, resp
	}

	return payload.Error == csrfMismatchCode, resp
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
