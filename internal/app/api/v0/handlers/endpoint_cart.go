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

type CartEndpoint struct {
	clients       ClientResolver
	authenticator Authenticator
	validate      Validator
	bus           EventPublisher
}

func NewCartEndpoint(
	clients ClientResolver,
	authenticator Authenticator,
	validator Validator,
	bus EventPublisher,
) CartEndpoint {
	return CartEndpoint{
		clients:       clients,
		authenticator: authenticator,
		validate:      validator,
		bus:           bus,
	}
}

func (e CartEndpoint) GetName() string {
	return "CartEndpoint"
}

func (e CartEndpoint) RegisterRoutes(g *routegroup.Bundle) {
	apiGroup := g.Mount("/cart")
	apiGroup.Use(e.authenticator.LoggedIn())

	apiGroup.HandleFunc("GET /contents", e.handleCartGet())
	apiGroup.HandleFunc("GET /count", e.handleCartCountGet())
	apiGroup.HandleFunc("POST /items", e.handleCartItemPost())
	apiGroup.HandleFunc("PUT /items/{id}", e.handleCartItemPut())
	apiGroup.HandleFunc("DELETE /items/{id}", e.handleCartItemDelete())
	apiGroup.HandleFunc("DELETE /contents", e.handleCartDelete())

	wishlistGroup := g.Mount("/wishlist")
	wishlistGroup.Use(e.authenticator.LoggedIn())

	wishlistGroup.HandleFunc("GET /contents", e.handleWishlistGet())
	wishlistGroup.HandleFunc("GET /count", e.handleWishlistCountGet())
	wishlistGroup.HandleFunc("POST /items", e.handleWishlistItemPost())
	wishlistGroup.HandleFunc("DELETE /items/{id}", e.handleWishlistItemDelete())
}

// handleCartGet returns a portal Handler function.
//
// @ID cart_handleCartGet
// @Tags Cart
// @Summary Get the cart of the current shopper.
// @Produce json
// @Success 200 {object} model.Cart
// @Failure 401 {object} model.Error
// @Router /cart/contents [get]
func (e CartEndpoint) handleCartGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, err := e.clients.Client(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		cart, err := client.GetCart(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		respond.JSON(w, http.StatusOK, model.NewCart(*cart))
	}
}

// handleCartCountGet returns a portal Handler function.
//
// @ID cart_handleCartCountGet
// @Tags Cart
// @Summary Get the number of units in the cart, for the header badge.
// @Produce json
// @Success 200 {object} model.CountResponse
// @Failure 401 {object} model.Error
// @Router /cart/count [get]
func (e CartEndpoint) handleCartCountGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, err := e.clients.Client(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		cart, err := client.GetCart(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		respond.JSON(w, http.StatusOK, model.CountResponse{Count: cart.Count()})
	}
}

// handleCartItemPost returns a portal Handler function.
//
// @ID cart_handleCartItemPost
// @Tags Cart
// @Summary Put an item into the cart.
// @Produce json
// @Success 200 {object} model.Cart
// @Failure 400 {object} model.Error
// @Router /cart/items [post]
func (e CartEndpoint) handleCartItemPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var addData model.AddToCartRequest
		if err := request.BodyJson(r, &addData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}
		if err := e.validate.Struct(addData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}

		client, err := e.clients.Client(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		cart, err := client.AddToCart(r.Context(), domain.ItemIdentifier(addData.ItemId), addData.Quantity)
		if err != nil {
			respondBackendError(w, err)
			return
		}

		e.publishCartUpdate(r, cart)

		respond.JSON(w, http.StatusOK, model.NewCart(*cart))
	}
}

// handleCartItemPut returns a portal Handler function.
//
// @ID cart_handleCartItemPut
// @Tags Cart
// @Summary Change the quantity of a cart line. Quantity zero removes the line.
// @Param id path string true "Item identifier"
// @Produce json
// @Success 200 {object} model.Cart
// @Failure 400 {object} model.Error
// @Router /cart/items/{id} [put]
func (e CartEndpoint) handleCartItemPut() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := request.Path(r, "id")
		if id == "" {
			respond.JSON(w, http.StatusBadRequest,
				model.Error{Code: http.StatusBadRequest, Message: "missing item id"})
			return
		}

		var updateData model.UpdateCartRequest
		if err := request.BodyJson(r, &updateData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}
		if err := e.validate.Struct(updateData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}

		client, err := e.clients.Client(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		cart, err := client.UpdateCartItem(r.Context(), domain.ItemIdentifier(id), updateData.Quantity)
		if err != nil {
			respondBackendError(w, err)
			return
		}

		e.publishCartUpdate(r, cart)

		respond.JSON(w, http.StatusOK, model.NewCart(*cart))
	}
}

// handleCartItemDelete returns a portal Handler function.
//
// @ID cart_handleCartItemDelete
// @Tags Cart
// @Summary Remove a line from the cart.
// @Param id path string true "Item identifier"
// @Produce json
// @Success 204 "No content"
// @Failure 404 {object} model.Error
// @Router /cart/items/{id} [delete]
func (e CartEndpoint) handleCartItemDelete() http.HandlerFunc {
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

		if err := client.RemoveFromCart(r.Context(), domain.ItemIdentifier(id)); err != nil {
			respondBackendError(w, err)
			return
		}

		e.publishCartUpdate(r, nil)

		respond.Status(w, http.StatusNoContent)
	}
}

// handleCartDelete returns a portal Handler function.
//
// @ID cart_handleCartDelete
// @Tags Cart
// @Summary Empty the cart.
// @Produce json
// @Success 204 "No content"
// @Failure 401 {object} model.Error
// @Router /cart/contents [delete]
func (e CartEndpoint) handleCartDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, err := e.clients.Client(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		if err := client.ClearCart(r.Context()); err != nil {
			respondBackendError(w, err)
			return
		}

		e.publishCartUpdate(r, nil)

		respond.Status(w, http.StatusNoContent)
	}
}

// handleWishlistGet returns a portal Handler function.
//
// @ID cart_handleWishlistGet
// @Tags Wishlist
// @Summary Get the wishlist of the current shopper.
// @Produce json
// @Success 200 {object} model.Wishlist
// @Failure 401 {object} model.Error
// @Router /wishlist/contents [get]
func (e CartEndpoint) handleWishlistGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, err := e.clients.Client(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		wishlist, err := client.GetWishlist(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		respond.JSON(w, http.StatusOK, model.NewWishlist(*wishlist))
	}
}

// handleWishlistCountGet returns a portal Handler function.
//
// @ID cart_handleWishlistCountGet
// @Tags Wishlist
// @Summary Get the number of saved items, for the header badge.
// @Produce json
// @Success 200 {object} model.CountResponse
// @Failure 401 {object} model.Error
// @Router /wishlist/count [get]
func (e CartEndpoint) handleWishlistCountGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, err := e.clients.Client(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		wishlist, err := client.GetWishlist(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		respond.JSON(w, http.StatusOK, model.CountResponse{Count: len(wishlist.Items)})
	}
}

// handleWishlistItemPost returns a portal Handler function.
//
// @ID cart_handleWishlistItemPost
// @Tags Wishlist
// @Summary Save an item for later.
// @Produce json
// @Success 200 {object} model.Wishlist
// @Failure 400 {object} model.Error
// @Router /wishlist/items [post]
func (e CartEndpoint) handleWishlistItemPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var addData model.AddToWishlistRequest
		if err := request.BodyJson(r, &addData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}
		if err := e.validate.Struct(addData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}

		client, err := e.clients.Client(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		wishlist, err := client.AddToWishlist(r.Context(), domain.ItemIdentifier(addData.ItemId))
		if err != nil {
			respondBackendError(w, err)
			return
		}

		respond.JSON(w, http.StatusOK, model.NewWishlist(*wishlist))
	}
}

// handleWishlistItemDelete returns a portal Handler function.
//
// @ID cart_handleWishlistItemDelete
// @Tags Wishlist
// @Summary Remove an item from the wishlist.
// @Param id path string true "Item identifier"
// @Produce json
// @Success 204 "No content"
// @Failure 404 {object} model.Error
// @Router /wishlist/items/{id} [delete]
func (e CartEndpoint) handleWishlistItemDelete() http.HandlerFunc {
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

		if err := client.RemoveFromWishlist(r.Context(), domain.ItemIdentifier(id)); err != nil {
			respondBackendError(w, err)
			return
		}

		respond.Status(w, http.StatusNoContent)
	}
}

func (e CartEndpoint) publishCartUpdate(r *http.Request, cart *domain.Cart) {
	count := 0
	if cart != nil {
		count = cart.Count()
	}

	userInfo := domain.GetUserInfo(r.Context())
	e.bus.Publish(app.TopicCartUpdated, userInfo.Id, count)
}
