package handlers

import (
	"net/http"

	"github.com/go-pkgz/routegroup"

	"github.com/baglio/shop-portal/internal/app/api/core/request"
	"github.com/baglio/shop-portal/internal/app/api/core/respond"
	"github.com/baglio/shop-portal/internal/app/api/v0/model"
	"github.com/baglio/shop-portal/internal/domain"
)

// ShopEndpoint serves the public catalog. Listings work without a login, the
// backend client of the (possibly anonymous) portal session is used so the
// backend sees a consistent visitor.
type ShopEndpoint struct {
	clients ClientResolver
}

func NewShopEndpoint(clients ClientResolver) ShopEndpoint {
	return ShopEndpoint{
		clients: clients,
	}
}

func (e ShopEndpoint) GetName() string {
	return "ShopEndpoint"
}

func (e ShopEndpoint) RegisterRoutes(g *routegroup.Bundle) {
	apiGroup := g.Mount("/shop")

	apiGroup.HandleFunc("GET /items", e.handleItemsGet())
	apiGroup.HandleFunc("GET /items/{id}", e.handleItemGet())
}

// handleItemsGet returns a portal Handler function.
//
// @ID shop_handleItemsGet
// @Tags Shop
// @Summary Get a filtered catalog page.
// @Param search query string false "Full text filter"
// @Param category query string false "Category filter"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Produce json
// @Success 200 {object} model.ItemPage
// @Failure 502 {object} model.Error
// @Router /shop/items [get]
func (e ShopEndpoint) handleItemsGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := domain.ItemFilter{
			Search:   request.Query(r, "search"),
			Category: request.Query(r, "category"),
			Page:     request.QueryInt(r, "page", 0),
			PageSize: request.QueryInt(r, "pageSize", 0),
		}

		client, err := e.clients.Client(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		page, err := client.ListItems(r.Context(), filter)
		if err != nil {
			respondBackendError(w, err)
			return
		}

		respond.JSON(w, http.StatusOK, model.ItemPage{
			Items:      model.NewItems(page.Items),
			Total:      page.Total,
			Page:       page.Page,
			TotalPages: page.TotalPages,
		})
	}
}

// handleItemGet returns a portal Handler function.
//
// @ID shop_handleItemGet
// @Tags Shop
// @Summary Get a single catalog entry.
// @Param id path string true "Item identifier"
// @Produce json
// @Success 200 {object} model.Item
// @Failure 404 {object} model.Error
// @Router /shop/items/{id} [get]
func (e ShopEndpoint) handleItemGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := request.Path(r, "id")
		if id == "" {
			respond.JSON(w, http.StatusBadRequest,
				model.Error{Code: http.StatusBadRequest, Message: "missing item id"})
			return
		}

		client, err := e.clients.Client(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		item, err := client.GetItem(r.Context(), domain.ItemIdentifier(id))
		if err != nil {
			respondBackendError(w, err)
			return
		}

		respond.JSON(w, http.StatusOK, model.NewItem(*item))
	}
}
