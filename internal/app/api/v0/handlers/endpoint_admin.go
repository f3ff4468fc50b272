package handlers

import (
	"io"
	"net/http"

	"github.com/go-pkgz/routegroup"

	"github.com/baglio/shop-portal/internal"
	"github.com/baglio/shop-portal/internal/app/api/core/request"
	"github.com/baglio/shop-portal/internal/app/api/core/respond"
	"github.com/baglio/shop-portal/internal/app/api/v0/model"
	"github.com/baglio/shop-portal/internal/domain"
)

// maxImageUploadSize limits product image uploads to 5 MiB.
const maxImageUploadSize = 5 << 20

type AdminEndpoint struct {
	clients       ClientResolver
	authenticator Authenticator
	validate      Validator
}

func NewAdminEndpoint(
	clients ClientResolver,
	authenticator Authenticator,
	validator Validator,
) AdminEndpoint {
	return AdminEndpoint{
		clients:       clients,
		authenticator: authenticator,
		validate:      validator,
	}
}

func (e AdminEndpoint) GetName() string {
	return "AdminEndpoint"
}

func (e AdminEndpoint) RegisterRoutes(g *routegroup.Bundle) {
	apiGroup := g.Mount("/admin")
	apiGroup.Use(e.authenticator.LoggedIn(ScopeAdmin))

	apiGroup.HandleFunc("GET /stats", e.handleStatsGet())
	apiGroup.HandleFunc("GET /users", e.handleUsersGet())
	apiGroup.HandleFunc("GET /activity", e.handleActivityGet())

	apiGroup.HandleFunc("POST /items", e.handleItemPost())
	apiGroup.HandleFunc("PUT /items/{id}", e.handleItemPut())
	apiGroup.HandleFunc("DELETE /items/{id}", e.handleItemDelete())
	apiGroup.HandleFunc("POST /items/{id}/image", e.handleItemImagePost())

	apiGroup.HandleFunc("GET /orders", e.handleOrdersGet())
	apiGroup.HandleFunc("PUT /orders/{id}/status", e.handleOrderStatusPut())
}

// handleStatsGet returns a portal Handler function.
//
// @ID admin_handleStatsGet
// @Tags Admin
// @Summary Get the dashboard aggregate.
// @Produce json
// @Success 200 {object} model.Stats
// @Failure 403 {object} model.Error
// @Router /admin/stats [get]
func (e AdminEndpoint) handleStatsGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, err := e.clients.Client(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		stats, err := client.GetStats(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		respond.JSON(w, http.StatusOK, model.NewStats(stats))
	}
}

// handleUsersGet returns a portal Handler function.
//
// @ID admin_handleUsersGet
// @Tags Admin
// @Summary Get a page of registered users.
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Produce json
// @Success 200 {object} []model.User
// @Failure 403 {object} model.Error
// @Router /admin/users [get]
func (e AdminEndpoint) handleUsersGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, err := e.clients.Client(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		users, err := client.ListUsers(r.Context(),
			request.QueryInt(r, "page", 0), request.QueryInt(r, "pageSize", 0))
		if err != nil {
			respondBackendError(w, err)
			return
		}

		respond.JSON(w, http.StatusOK, model.NewUsers(users))
	}
}

// handleActivityGet returns a portal Handler function.
//
// @ID admin_handleActivityGet
// @Tags Admin
// @Summary Get a page of backend audit entries.
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Produce json
// @Success 200 {object} []model.ActivityLog
// @Failure 403 {object} model.Error
// @Router /admin/activity [get]
func (e AdminEndpoint) handleActivityGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, err := e.clients.Client(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		logs, err := client.ListActivityLogs(r.Context(),
			request.QueryInt(r, "page", 0), request.QueryInt(r, "pageSize", 0))
		if err != nil {
			respondBackendError(w, err)
			return
		}

		respond.JSON(w, http.StatusOK, model.NewActivityLogs(logs))
	}
}

// handleItemPost returns a portal Handler function.
//
// @ID admin_handleItemPost
// @Tags Admin
// @Summary Create a catalog entry.
// @Produce json
// @Success 200 {object} model.Item
// @Failure 400 {object} model.Error
// @Router /admin/items [post]
func (e AdminEndpoint) handleItemPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var itemData model.ItemRequest
		if err := request.BodyJson(r, &itemData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}
		if err := e.validate.Struct(itemData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}

		client, err := e.clients.Client(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		item, err := client.CreateItem(r.Context(), model.NewDomainItem("", itemData))
		if err != nil {
			respondBackendError(w, err)
			return
		}

		respond.JSON(w, http.StatusOK, model.NewItem(*item))
	}
}

// handleItemPut returns a portal Handler function.
//
// @ID admin_handleItemPut
// @Tags Admin
// @Summary Update a catalog entry.
// @Param id path string true "Item identifier"
// @Produce json
// @Success 200 {object} model.Item
// @Failure 400 {object} model.Error
// @Router /admin/items/{id} [put]
func (e AdminEndpoint) handleItemPut() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := request.Path(r, "id")
		if id == "" {
			respond.JSON(w, http.StatusBadRequest,
				model.Error{Code: http.StatusBadRequest, Message: "missing item id"})
			return
		}

		var itemData model.ItemRequest
		if err := request.BodyJson(r, &itemData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}
		if err := e.validate.Struct(itemData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}

		client, err := e.clients.Client(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		item, err := client.UpdateItem(r.Context(), model.NewDomainItem(domain.ItemIdentifier(id), itemData))
		if err != nil {
			respondBackendError(w, err)
			return
		}

		respond.JSON(w, http.StatusOK, model.NewItem(*item))
	}
}

// handleItemDelete returns a portal Handler function.
//
// @ID admin_handleItemDelete
// @Tags Admin
// @Summary Delete a catalog entry.
// @Param id path string true "Item identifier"
// @Produce json
// @Success 204 "No content"
// @Failure 404 {object} model.Error
// @Router /admin/items/{id} [delete]
func (e AdminEndpoint) handleItemDelete() http.HandlerFunc {
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

		if err := client.DeleteItem(r.Context(), domain.ItemIdentifier(id)); err != nil {
			respondBackendError(w, err)
			return
		}

		respond.Status(w, http.StatusNoContent)
	}
}

// handleItemImagePost returns a portal Handler function.
//
// @ID admin_handleItemImagePost
// @Tags Admin
// @Summary Upload a product image for a catalog entry.
// @Param id path string true "Item identifier"
// @Accept mpfd
// @Produce json
// @Success 200 {object} model.Item
// @Failure 400 {object} model.Error
// @Router /admin/items/{id}/image [post]
func (e AdminEndpoint) handleItemImagePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := request.Path(r, "id")
		if id == "" {
			respond.JSON(w, http.StatusBadRequest,
				model.Error{Code: http.StatusBadRequest, Message: "missing item id"})
			return
		}

		if err := r.ParseMultipartForm(maxImageUploadSize); err != nil {
			respond.JSON(w, http.StatusBadRequest,
				model.Error{Code: http.StatusBadRequest, Message: "invalid upload"})
			return
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			respond.JSON(w, http.StatusBadRequest,
				model.Error{Code: http.StatusBadRequest, Message: "missing image file"})
			return
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxImageUploadSize))
		if err != nil {
			respond.JSON(w, http.StatusBadRequest,
				model.Error{Code: http.StatusBadRequest, Message: "failed to read image file"})
			return
		}

		client, err := e.clients.Client(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		// The filename is client supplied, keep it to a sane length.
		filename := internal.TruncateString(header.Filename, 64)

		item, err := client.UploadItemImage(r.Context(), domain.ItemIdentifier(id), filename, data)
		if err != nil {
			respondBackendError(w, err)
			return
		}

		respond.JSON(w, http.StatusOK, model.NewItem(*item))
	}
}

// handleOrdersGet returns a portal Handler function.
//
// @ID admin_handleOrdersGet
// @Tags Admin
// @Summary Get a page of all orders.
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Produce json
// @Success 200 {object} []model.Order
// @Failure 403 {object} model.Error
// @Router /admin/orders [get]
func (e AdminEndpoint) handleOrdersGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, err := e.clients.Client(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		orders, err := client.ListAllOrders(r.Context(),
			request.QueryInt(r, "page", 0), request.QueryInt(r, "pageSize", 0))
		if err != nil {
			respondBackendError(w, err)
			return
		}

		respond.JSON(w, http.StatusOK, model.NewOrders(orders))
	}
}

// handleOrderStatusPut returns a portal Handler function.
//
// @ID admin_handleOrderStatusPut
// @Tags Admin
// @Summary Move an order through the fulfilment pipeline.
// @Param id path string true "Order identifier"
// @Produce json
// @Success 200 {object} model.Order
// @Failure 400 {object} model.Error
// @Router /admin/orders/{id}/status [put]
func (e AdminEndpoint) handleOrderStatusPut() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := request.Path(r, "id")
		if id == "" {
			respond.JSON(w, http.StatusBadRequest,
				model.Error{Code: http.StatusBadRequest, Message: "missing order id"})
			return
		}

		var statusData model.UpdateOrderStatusRequest
		if err := request.BodyJson(r, &statusData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}
		if err := e.validate.Struct(statusData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}

		client, err := e.clients.Client(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		order, err := client.UpdateOrderStatus(r.Context(), domain.OrderIdentifier(id),
			domain.OrderStatus(statusData.Status))
		if err != nil {
			respondBackendError(w, err)
			return
		}

		respond.JSON(w, http.StatusOK, model.NewOrder(*order))
	}
}
