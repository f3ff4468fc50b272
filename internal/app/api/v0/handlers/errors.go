package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/baglio/shop-portal/internal/app/api/core/respond"
	"github.com/baglio/shop-portal/internal/app/api/v0/model"
	"github.com/baglio/shop-portal/internal/backend"
	"github.com/baglio/shop-portal/internal/domain"
)

// respondBackendError maps an error from the backend client onto the portal
// API response. Backend rejections keep their status code and message,
// transport problems surface as 502.
func respondBackendError(w http.ResponseWriter, err error) {
	var apiErr *backend.ApiError
	var netErr *backend.NetworkError
	var tokenErr *backend.TokenFetchError

	switch {
	case errors.Is(err, backend.ErrUnauthenticated):
		respond.JSON(w, http.StatusUnauthorized,
			model.Error{Code: http.StatusUnauthorized, Message: "not logged in"})
	case errors.Is(err, domain.ErrNotFound):
		respond.JSON(w, http.StatusNotFound,
			model.Error{Code: http.StatusNotFound, Message: "not found"})
	case errors.As(err, &apiErr):
		respond.JSON(w, apiErr.Status,
			model.Error{Code: apiErr.Status, Message: apiErr.Message})
	case errors.As(err, &netErr), errors.As(err, &tokenErr):
		respond.JSON(w, http.StatusBadGateway,
			model.Error{Code: http.StatusBadGateway, Message: "shop backend unavailable"})
	default:
		respond.JSON(w, http.StatusInternalServerError,
			model.Error{Code: http.StatusInternalServerError, Message: err.Error()})
	}
}

// wantsHtml reports whether the request came from a plain browser navigation
// rather than the frontend fetch layer. Those requests get redirects instead
// of JSON error bodies.
func wantsHtml(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
