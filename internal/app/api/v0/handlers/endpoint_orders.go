package handlers

import (
	"net/http"

	"github.com/go-pkgz/routegroup"

	"github.com/baglio/shop-portal/internal/app"
	"github.com/baglio/shop-portal/internal/app/api/core/request"
	"github.com/baglio/shop-portal/internal/app/api/core/respond"
	"github.com/baglio/shop-portal/internal/app/api/v0/model"
	"github.com/baglio/shop-portal/internal/domain"
)

type OrderEndpoint struct {
	clients       ClientResolver
	authenticator Authenticator
	validate      Validator
	bus           EventPublisher
}

func NewOrderEndpoint(
	clients ClientResolver,
	authenticator Authenticator,
	validator Validator,
	bus EventPublisher,
) OrderEndpoint {
	return OrderEndpoint{
		clients:       clients,
		authenticator: authenticator,
		validate:      validator,
		bus:           bus,
	}
}

func (e OrderEndpoint) GetName() string {
	return "OrderEndpoint"
}

func (e OrderEndpoint) RegisterRoutes(g *routegroup.Bundle) {
	apiGroup := g.Mount("/orders")
	apiGroup.Use(e.authenticator.LoggedIn())

	apiGroup.HandleFunc("POST /checkout", e.handleCheckoutPost())
	apiGroup.HandleFunc("GET /history", e.handleHistoryGet())
	apiGroup.HandleFunc("GET /{id}", e.handleSingleGet())
	apiGroup.HandleFunc("POST /{id}/cancel", e.handleCancelPost())
}

// handleCheckoutPost returns a portal Handler function.
//
// @ID orders_handleCheckoutPost
// @Tags Orders
// @Summary Place an order from the current cart.
// @Produce json
// @Success 200 {object} model.Order
// @Failure 400 {object} model.Error
// @Failure 422 {object} model.Error
// @Router /orders/checkout [post]
func (e OrderEndpoint) handleCheckoutPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var checkoutData model.CheckoutRequest
		if err := request.BodyJson(r, &checkoutData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}
		if err := e.validate.Struct(checkoutData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}

		client, err := e.clients.Client(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		order, err := client.PlaceOrder(r.Context(), model.NewDomainCheckout(checkoutData))
		if err != nil {
			respondBackendError(w, err)
			return
		}

		userInfo := domain.GetUserInfo(r.Context())
		e.bus.Publish(app.TopicOrderPlaced, userInfo.Id, order.Id)

		respond.JSON(w, http.StatusOK, model.NewOrder(*order))
	}
}

// handleHistoryGet returns a portal Handler function.
//
// @ID orders_handleHistoryGet
// @Tags Orders
// @Summary Get the order history of the current shopper.
// @Produce json
// @Success 200 {object} []model.Order
// @Failure 401 {object} model.Error
// @Router /orders/history [get]
func (e OrderEndpoint) handleHistoryGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, err := e.clients.Client(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		orders, err := client.ListOrders(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		respond.JSON(w, http.StatusOK, model.NewOrders(orders))
	}
}

// handleSingleGet returns a portal Handler function.
//
// @ID orders_handleSingleGet
// @Tags Orders
// @Summary Get a single order of the current shopper.
// @Param id path string true "Order identifier"
// @Produce json
// @Success 200 {object} model.Order
// @Failure 404 {object} model.Error
// @Router /orders/{id} [get]
func (e OrderEndpoint) handleSingleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := request.Path(r, "id")
		if id == "" {
			respond.JSON(w, http.StatusBadRequest,
				model.Error{Code: http.StatusBadRequest, Message: "missing order id"})
			return
		}

		client, err := e.clients.Client(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		order, err := client.GetOrder(r.Context(), domain.OrderIdentifier(id))
		if err != nil {
			respondBackendError(w, err)
			return
		}

		respond.JSON(w, http.StatusOK, model.NewOrder(*order))
	}
}

// handleCancelPost returns a portal Handler function.
//
// @ID orders_handleCancelPost
// @Tags Orders
// @Summary Cancel a not yet shipped order.
// @Param id path string true "Order identifier"
// @Produce json
// @Success 204 "No content"
// @Failure 409 {object} model.Error
// @Router /orders/{id}/cancel [post]
func (e OrderEndpoint) handleCancelPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := request.Path(r, "id")
		if id == "" {
			respond.JSON(w, http.StatusBadRequest,
				model.Error{Code: http.StatusBadRequest, Message: "missing order id"})
			return
		}

		client, err := e.clients.Client(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		if err := client.CancelOrder(r.Context(), domain.OrderIdentifier(id)); err != nil {
			respondBackendError(w, err)
			return
		}

		respond.Status(w, http.StatusNoContent)
	}
}
