package backend

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

// tokenExemptPaths lists the endpoints that never carry an anti-forgery
// token. These requests happen before a backend session exists (login,
// signup) or intentionally terminate it (logout). Matching is done on exact
// path segments, a path like /api/items/sloginbag must not match.
var tokenExemptPaths = []string{
	"/api/creds/login",
	"/api/creds/signup",
	"/api/creds/logout",
	"/login",
	"/signup",
	"/logout",
}

// exemptFromToken reports whether the given request path is excluded from
// token decoration.
func exemptFromToken(path string) bool {
	path = strings.TrimSuffix(path, "/")
	for _, exempt := range tokenExemptPaths {
		if path == exempt {
			return true
		}
	}
	return false
}

// decorate attaches the anti-forgery token to a mutating request. Reads and
// exempted auth endpoints are never decorated. If no token is cached, one is
// fetched first. A failed token resolution is logged and swallowed, the
// request proceeds undecorated; a transient token-service outage must not
// block all mutating traffic outright, the backend will answer with a 403
// which then takes the regular retry path.
func (c *Client) decorate(ctx context.Context, req *http.Request) {
	switch req.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return
	}

	if exemptFromToken(req.URL.Path) {
		return
	}

	token, ok := c.tokens.Get()
	if !ok {
		var err error
		token, err = c.FetchToken(ctx)
		if err != nil {
			slog.Warn("proceeding without anti-forgery token",
				"method", req.Method, "path", req.URL.Path, "error", err)
			return
		}
	}

	req.Header.Set(csrfHeaderName, token)
}
