package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/baglio/shop-portal/internal/backend"
	"github.com/baglio/shop-portal/internal/domain"
)

func TestRespondBackendError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"unauthenticated", backend.ErrUnauthenticated, http.StatusUnauthorized},
		{"wrapped unauthenticated", fmt.Errorf("request failed: %w", backend.ErrUnauthenticated), http.StatusUnauthorized},
		{"not found", fmt.Errorf("%w: item gone", domain.ErrNotFound), http.StatusNotFound},
		{"backend rejection keeps status", &backend.ApiError{Status: http.StatusUnprocessableEntity, Code: "OUT_OF_STOCK"}, http.StatusUnprocessableEntity},
		{"network problem", &backend.NetworkError{Err: errors.New("connection refused")}, http.StatusBadGateway},
		{"token endpoint down", &backend.TokenFetchError{Status: http.StatusInternalServerError}, http.StatusBadGateway},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			respondBackendError(w, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestWantsHtml(t *testing.T) {
	browserReq := httptest.NewRequest(http.MethodGet, "/", nil)
	browserReq.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9")

	fetchReq := httptest.NewRequest(http.MethodGet, "/", nil)
	fetchReq.Header.Set("Accept", "application/json")

	assert.True(t, wantsHtml(browserReq))
	assert.False(t, wantsHtml(fetchReq))
	assert.False(t, wantsHtml(httptest.NewRequest(http.MethodGet, "/", nil)))
}
