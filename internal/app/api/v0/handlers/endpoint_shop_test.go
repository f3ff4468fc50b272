package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-pkgz/routegroup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baglio/shop-portal/internal/app/api/v0/model"
)

func catalogBackend(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/items":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"items": []map[string]any{
					{"id": "bag-1", "name": "Weekender", "category": r.URL.Query().Get("category"), "price": 12900, "stock": 3},
				},
				"total": 1, "page": 1, "totalPages": 1,
			})
		case "/api/items/bag-1":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id": "bag-1", "name": "Weekender", "price": 12900, "stock": 3,
			})
		default:
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "NOT_FOUND", "message": "no such item"})
		}
	}))
	t.Cleanup(srv.Close)

	return srv
}

func shopRouter(t *testing.T, backendUrl string) http.Handler {
	t.Helper()

	endpoint := NewShopEndpoint(&fixedClients{client: newTestBackendClient(t, backendUrl)})

	router := routegroup.New(http.NewServeMux())
	endpoint.RegisterRoutes(router)

	return router
}

func TestShopEndpoint_listItems(t *testing.T) {
	srv := catalogBackend(t)
	router := shopRouter(t, srv.URL)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/shop/items?category=travel", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var page model.ItemPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "bag-1", page.Items[0].Id)
	assert.Equal(t, "travel", page.Items[0].Category)
	assert.True(t, page.Items[0].InStock)
	assert.Equal(t, 1, page.Total)
}

func TestShopEndpoint_getItem(t *testing.T) {
	srv := catalogBackend(t)
	router := shopRouter(t, srv.URL)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/shop/items/bag-1", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var item model.Item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.Equal(t, "Weekender", item.Name)
	assert.Equal(t, int64(12900), item.Price)
}

func TestShopEndpoint_getItemNotFound(t *testing.T) {
	srv := catalogBackend(t)
	router := shopRouter(t, srv.URL)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/shop/items/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
